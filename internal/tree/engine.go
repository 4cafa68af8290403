// Package tree keeps the node metadata and the physical storage in step. Every mutation runs
// under one engine-wide lock inside one store transaction: validate, touch storage, then write
// metadata. A storage failure aborts the transaction so metadata is never half applied.
package tree

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/metrics"
	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/paths"
	"menedzer-plikow/internal/storage"
)

// Event types published after a successful commit.
const (
	EventNodeCreated  = "node_created"
	EventNodeUpdated  = "node_updated"
	EventNodeMoved    = "node_moved"
	EventNodeTrashed  = "node_trashed"
	EventNodeRestored = "node_restored"
	EventNodeDeleted  = "node_deleted"
	EventTrashEmptied = "trash_emptied"
)

type Publisher interface {
	Publish(eventType string, payload any)
}

type Options struct {
	RootPrefix     string
	Owner          string
	MaxUploadBytes int64
	Logger         *slog.Logger
	Metrics        *metrics.Metrics
	Publisher      Publisher
	Now            func() time.Time
}

type Engine struct {
	mu      sync.Mutex
	store   database.Store
	storage storage.Storage

	rootPrefix     string
	owner          string
	maxUploadBytes int64
	log            *slog.Logger
	metrics        *metrics.Metrics
	events         Publisher
	now            func() time.Time
}

func New(store database.Store, st storage.Storage, opts Options) *Engine {
	e := &Engine{
		store:          store,
		storage:        st,
		rootPrefix:     opts.RootPrefix,
		owner:          opts.Owner,
		maxUploadBytes: opts.MaxUploadBytes,
		log:            opts.Logger,
		metrics:        opts.Metrics,
		events:         opts.Publisher,
		now:            opts.Now,
	}
	if e.rootPrefix == "" {
		e.rootPrefix = paths.DefaultRootPrefix
	}
	if e.owner == "" {
		e.owner = "me"
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

func (e *Engine) RootPrefix() string { return e.rootPrefix }

// mutate runs fn as one serialized, atomic tree operation.
func (e *Engine) mutate(ctx context.Context, op string, fn func(tx database.Tx) error) error {
	start := time.Now()
	e.mu.Lock()
	err := e.store.ExecTx(ctx, fn)
	e.mu.Unlock()
	return e.finish(op, start, err)
}

// view runs fn against a consistent read-only snapshot.
func (e *Engine) view(ctx context.Context, fn func(tx database.Tx) error) error {
	return e.store.View(ctx, fn)
}

func (e *Engine) finish(op string, start time.Time, err error) error {
	err = classify(op, err)
	result := "ok"
	if err != nil {
		result = string(KindOf(err))
		if KindOf(err) == KindIOFailure {
			e.log.Error("operation failed", "op", op, "error", err)
		} else {
			e.log.Debug("operation rejected", "op", op, "kind", result, "error", err)
		}
	}
	e.metrics.ObserveOperation(op, result, time.Since(start))
	return err
}

// mismatch records that storage disagreed with metadata; the operation carries on.
func (e *Engine) mismatch(op, path string, err error) {
	e.metrics.RecordMismatch(op)
	e.log.Warn("physical storage mismatch",
		"op", op,
		"kind", KindPhysicalStorageMismatch,
		"path", path,
		"error", err,
	)
}

func (e *Engine) publish(eventType string, payload any) {
	if e.events != nil {
		e.events.Publish(eventType, payload)
	}
}

func (e *Engine) timestamp() *time.Time {
	now := e.now().UTC()
	return &now
}

func (e *Engine) getNode(ctx context.Context, tx database.Tx, id int64) (*models.Node, error) {
	n, err := tx.GetNode(ctx, id)
	if errors.Is(err, database.ErrNodeNotFound) {
		return nil, notFound("node %d does not exist", id)
	}
	return n, err
}

// resolveParent loads the folder a new child goes into; nil means root level.
func (e *Engine) resolveParent(ctx context.Context, tx database.Tx, parentID *int64) (*models.Node, error) {
	if parentID == nil {
		return nil, nil
	}
	parent, err := tx.GetNode(ctx, *parentID)
	if errors.Is(err, database.ErrNodeNotFound) {
		return nil, notFound("parent folder %d does not exist", *parentID)
	}
	if err != nil {
		return nil, err
	}
	if !parent.IsFolder() {
		return nil, invalidTarget("node %d is not a folder", *parentID)
	}
	return parent, nil
}

func (e *Engine) childPath(parent *models.Node, name string) (string, error) {
	p, err := paths.Resolve(e.rootPrefix, parent, name)
	if err != nil {
		return "", invalidArgument("%v", err)
	}
	return p, nil
}

func validName(name string) (string, error) {
	name, err := paths.ValidateName(name)
	if err != nil {
		return "", invalidArgument("%v", err)
	}
	return name, nil
}

// Get returns one node by id.
func (e *Engine) Get(ctx context.Context, id int64) (*models.Node, error) {
	var node *models.Node
	err := e.view(ctx, func(tx database.Tx) error {
		var err error
		node, err = e.getNode(ctx, tx, id)
		return err
	})
	if err != nil {
		return nil, classify("get", err)
	}
	return node, nil
}
