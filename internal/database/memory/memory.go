// Package memory keeps node metadata in process memory.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
)

type Store struct {
	mu     sync.RWMutex
	nodes  map[int64]*models.Node
	nextID int64
	now    func() time.Time
}

func NewStore() *Store {
	return &Store{
		nodes:  make(map[int64]*models.Node),
		nextID: 1,
		now:    time.Now,
	}
}

// ExecTx runs fn against a private copy of the data and swaps it in only when fn succeeds.
func (s *Store) ExecTx(ctx context.Context, fn func(database.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{nodes: make(map[int64]*models.Node, len(s.nodes)), nextID: s.nextID, now: s.now}
	for id, n := range s.nodes {
		tx.nodes[id] = database.CloneNode(n)
	}
	if err := fn(tx); err != nil {
		return err
	}
	s.nodes = tx.nodes
	s.nextID = tx.nextID
	return nil
}

func (s *Store) View(ctx context.Context, fn func(database.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&memTx{nodes: s.nodes, nextID: s.nextID, now: s.now, readOnly: true})
}

func (s *Store) Close() error { return nil }

type memTx struct {
	nodes    map[int64]*models.Node
	nextID   int64
	now      func() time.Time
	readOnly bool
}

var errReadOnly = errors.New("write in a read-only transaction")

func (tx *memTx) GetNode(_ context.Context, id int64) (*models.Node, error) {
	n, ok := tx.nodes[id]
	if !ok {
		return nil, database.ErrNodeNotFound
	}
	return database.CloneNode(n), nil
}

func (tx *memTx) InsertNode(ctx context.Context, arg database.CreateNodeParams) (*models.Node, error) {
	if tx.readOnly {
		return nil, errReadOnly
	}
	taken, err := tx.SiblingExists(ctx, arg.Name, arg.ParentID, nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, database.ErrDuplicateNodeName
	}
	n := database.NewNode(tx.nextID, arg, tx.now())
	tx.nextID++
	tx.nodes[n.ID] = &n
	return database.CloneNode(&n), nil
}

func (tx *memTx) UpdateNode(ctx context.Context, id int64, arg database.UpdateNodeParams) (*models.Node, error) {
	if tx.readOnly {
		return nil, errReadOnly
	}
	n, ok := tx.nodes[id]
	if !ok {
		return nil, database.ErrNodeNotFound
	}
	updated := database.CloneNode(n)
	arg.Apply(updated)
	if updated.Name != n.Name || !models.SameParent(updated.ParentID, n.ParentID) {
		taken, err := tx.SiblingExists(ctx, updated.Name, updated.ParentID, &id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, database.ErrDuplicateNodeName
		}
	}
	tx.nodes[id] = updated
	return database.CloneNode(updated), nil
}

func (tx *memTx) DeleteNode(_ context.Context, id int64) error {
	if tx.readOnly {
		return errReadOnly
	}
	if _, ok := tx.nodes[id]; !ok {
		return database.ErrNodeNotFound
	}
	delete(tx.nodes, id)
	return nil
}

func (tx *memTx) ScanNodes(ctx context.Context, match func(*models.Node) bool) ([]models.Node, error) {
	out := []models.Node{}
	for _, n := range tx.nodes {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if match == nil || match(n) {
			out = append(out, *database.CloneNode(n))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (tx *memTx) SiblingExists(_ context.Context, name string, parentID *int64, excludeID *int64) (bool, error) {
	for _, n := range tx.nodes {
		if excludeID != nil && n.ID == *excludeID {
			continue
		}
		if n.Name == name && models.SameParent(n.ParentID, parentID) {
			return true, nil
		}
	}
	return false, nil
}
