// Package badger persists node metadata in an embedded BadgerDB.
//
// Key layout:
//
//	n:<id>                 JSON-encoded models.Node, id as big-endian uint64 so prefix scans run in id order
//	c:<parent id><name>    sibling index, parent id 0 for root level; value is the child id
//	seq:node               last assigned id
package badger

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	badgerdb "github.com/dgraph-io/badger/v4"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
)

const maxConflictRetries = 3

var (
	prefixNode  = []byte("n:")
	prefixChild = []byte("c:")
	keySequence = []byte("seq:node")
)

type Store struct {
	db  *badgerdb.DB
	now func() time.Time
}

// New opens (or creates) a store in dir.
func New(dir string) (*Store, error) {
	opts := badgerdb.DefaultOptions(dir).WithLoggingLevel(badgerdb.WARNING)
	return open(opts)
}

// NewInMemory opens a store that lives only as long as the process.
func NewInMemory() (*Store, error) {
	opts := badgerdb.DefaultOptions("").WithInMemory(true).WithLoggingLevel(badgerdb.WARNING)
	return open(opts)
}

func open(opts badgerdb.Options) (*Store, error) {
	db, err := badgerdb.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open BadgerDB at %q: %w", opts.Dir, err)
	}
	return &Store{db: db, now: time.Now}, nil
}

// ExecTx runs fn in a read-write transaction, retrying when badger reports a write conflict.
func (s *Store) ExecTx(ctx context.Context, fn func(database.Tx) error) error {
	var err error
	for attempt := 0; attempt < maxConflictRetries; attempt++ {
		if err = ctx.Err(); err != nil {
			return err
		}
		err = s.db.Update(func(txn *badgerdb.Txn) error {
			return fn(&badgerTx{txn: txn, now: s.now})
		})
		if !errors.Is(err, badgerdb.ErrConflict) {
			return err
		}
	}
	return err
}

func (s *Store) View(ctx context.Context, fn func(database.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.db.View(func(txn *badgerdb.Txn) error {
		return fn(&badgerTx{txn: txn, now: s.now})
	})
}

func (s *Store) Close() error {
	return s.db.Close()
}

type badgerTx struct {
	txn *badgerdb.Txn
	now func() time.Time
}

func keyNode(id int64) []byte {
	k := make([]byte, len(prefixNode)+8)
	copy(k, prefixNode)
	binary.BigEndian.PutUint64(k[len(prefixNode):], uint64(id))
	return k
}

func keyChild(parentID *int64, name string) []byte {
	var pid int64
	if parentID != nil {
		pid = *parentID
	}
	k := make([]byte, len(prefixChild)+8, len(prefixChild)+8+len(name))
	copy(k, prefixChild)
	binary.BigEndian.PutUint64(k[len(prefixChild):], uint64(pid))
	return append(k, name...)
}

func (tx *badgerTx) GetNode(ctx context.Context, id int64) (*models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	item, err := tx.txn.Get(keyNode(id))
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return nil, database.ErrNodeNotFound
	}
	if err != nil {
		return nil, err
	}
	var node models.Node
	if err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &node)
	}); err != nil {
		return nil, fmt.Errorf("decode node %d: %w", id, err)
	}
	return &node, nil
}

func (tx *badgerTx) nextID() (int64, error) {
	var last uint64
	item, err := tx.txn.Get(keySequence)
	switch {
	case errors.Is(err, badgerdb.ErrKeyNotFound):
	case err != nil:
		return 0, err
	default:
		if err := item.Value(func(val []byte) error {
			last = binary.BigEndian.Uint64(val)
			return nil
		}); err != nil {
			return 0, err
		}
	}
	next := last + 1
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, next)
	if err := tx.txn.Set(keySequence, buf); err != nil {
		return 0, err
	}
	return int64(next), nil
}

func (tx *badgerTx) put(n *models.Node) error {
	data, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("encode node %d: %w", n.ID, err)
	}
	return tx.txn.Set(keyNode(n.ID), data)
}

func (tx *badgerTx) InsertNode(ctx context.Context, arg database.CreateNodeParams) (*models.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	taken, err := tx.SiblingExists(ctx, arg.Name, arg.ParentID, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, database.ErrDuplicateNodeName
	}
	id, err := tx.nextID()
	if err != nil {
		return nil, err
	}
	node := database.NewNode(id, arg, tx.now())
	if err := tx.put(&node); err != nil {
		return nil, err
	}
	if err := tx.txn.Set(keyChild(node.ParentID, node.Name), keyNode(id)[len(prefixNode):]); err != nil {
		return nil, err
	}
	return &node, nil
}

func (tx *badgerTx) UpdateNode(ctx context.Context, id int64, arg database.UpdateNodeParams) (*models.Node, error) {
	current, err := tx.GetNode(ctx, id)
	if err != nil {
		return nil, err
	}
	updated := database.CloneNode(current)
	arg.Apply(updated)

	if updated.Name != current.Name || !models.SameParent(updated.ParentID, current.ParentID) {
		taken, err := tx.SiblingExists(ctx, updated.Name, updated.ParentID, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, database.ErrDuplicateNodeName
		}
		if err := tx.txn.Delete(keyChild(current.ParentID, current.Name)); err != nil {
			return nil, err
		}
		if err := tx.txn.Set(keyChild(updated.ParentID, updated.Name), keyNode(id)[len(prefixNode):]); err != nil {
			return nil, err
		}
	}
	if err := tx.put(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

func (tx *badgerTx) DeleteNode(ctx context.Context, id int64) error {
	current, err := tx.GetNode(ctx, id)
	if err != nil {
		return err
	}
	if err := tx.txn.Delete(keyChild(current.ParentID, current.Name)); err != nil {
		return err
	}
	return tx.txn.Delete(keyNode(id))
}

func (tx *badgerTx) ScanNodes(ctx context.Context, match func(*models.Node) bool) ([]models.Node, error) {
	opts := badgerdb.DefaultIteratorOptions
	opts.Prefix = prefixNode
	it := tx.txn.NewIterator(opts)
	defer it.Close()

	out := []models.Node{}
	for it.Rewind(); it.Valid(); it.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		var node models.Node
		if err := it.Item().Value(func(val []byte) error {
			return json.Unmarshal(val, &node)
		}); err != nil {
			return nil, err
		}
		if match == nil || match(&node) {
			out = append(out, node)
		}
	}
	return out, nil
}

func (tx *badgerTx) SiblingExists(ctx context.Context, name string, parentID *int64, excludeID *int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	item, err := tx.txn.Get(keyChild(parentID, name))
	if errors.Is(err, badgerdb.ErrKeyNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if excludeID == nil {
		return true, nil
	}
	var childID int64
	if err := item.Value(func(val []byte) error {
		childID = int64(binary.BigEndian.Uint64(val))
		return nil
	}); err != nil {
		return false, err
	}
	return childID != *excludeID, nil
}
