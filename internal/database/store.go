package database

import (
	"context"
	"errors"
	"time"

	"menedzer-plikow/internal/models"
)

var (
	ErrNodeNotFound      = errors.New("node not found")
	ErrDuplicateNodeName = errors.New("a node with the same name already exists in this folder")
)

// Store is the transactional metadata store behind the tree engine.
// ExecTx commits only when fn returns nil; View never writes.
type Store interface {
	ExecTx(ctx context.Context, fn func(Tx) error) error
	View(ctx context.Context, fn func(Tx) error) error
	Close() error
}

type Tx interface {
	GetNode(ctx context.Context, id int64) (*models.Node, error)
	InsertNode(ctx context.Context, arg CreateNodeParams) (*models.Node, error)
	UpdateNode(ctx context.Context, id int64, arg UpdateNodeParams) (*models.Node, error)
	DeleteNode(ctx context.Context, id int64) error
	// ScanNodes returns every node accepted by match, ordered by id. A nil match accepts all.
	ScanNodes(ctx context.Context, match func(*models.Node) bool) ([]models.Node, error)
	// SiblingExists reports whether a node named name lives under parentID, ignoring excludeID.
	SiblingExists(ctx context.Context, name string, parentID *int64, excludeID *int64) (bool, error)
}

type CreateNodeParams struct {
	ParentID   *int64
	Name       string
	Type       string
	Size       int64
	Path       string
	MimeType   string
	Owner      string
	Starred    bool
	Deleted    bool
	Shared     bool
	CreatedAt  time.Time
	ModifiedAt time.Time
}

// UpdateNodeParams changes only the non-nil fields. MoveToRoot clears ParentID.
type UpdateNodeParams struct {
	Name       *string
	Path       *string
	ParentID   *int64
	MoveToRoot bool
	Starred    *bool
	Deleted    *bool
	Shared     *bool
	ModifiedAt *time.Time
}

// NewNode builds the record an insert stores, filling unset timestamps with now.
func NewNode(id int64, arg CreateNodeParams, now time.Time) models.Node {
	created, modified := arg.CreatedAt, arg.ModifiedAt
	if created.IsZero() {
		created = now
	}
	if modified.IsZero() {
		modified = created
	}
	return models.Node{
		ID:         id,
		ParentID:   cloneID(arg.ParentID),
		Name:       arg.Name,
		Type:       arg.Type,
		Size:       arg.Size,
		Path:       arg.Path,
		MimeType:   arg.MimeType,
		Owner:      arg.Owner,
		Starred:    arg.Starred,
		Deleted:    arg.Deleted,
		Shared:     arg.Shared,
		CreatedAt:  created.UTC(),
		ModifiedAt: modified.UTC(),
	}
}

// Apply writes the set fields of arg onto n.
func (arg UpdateNodeParams) Apply(n *models.Node) {
	if arg.Name != nil {
		n.Name = *arg.Name
	}
	if arg.Path != nil {
		n.Path = *arg.Path
	}
	if arg.MoveToRoot {
		n.ParentID = nil
	} else if arg.ParentID != nil {
		n.ParentID = cloneID(arg.ParentID)
	}
	if arg.Starred != nil {
		n.Starred = *arg.Starred
	}
	if arg.Deleted != nil {
		n.Deleted = *arg.Deleted
	}
	if arg.Shared != nil {
		n.Shared = *arg.Shared
	}
	if arg.ModifiedAt != nil {
		n.ModifiedAt = arg.ModifiedAt.UTC()
	}
}

func cloneID(id *int64) *int64 {
	if id == nil {
		return nil
	}
	v := *id
	return &v
}

// CloneNode returns a deep copy of n.
func CloneNode(n *models.Node) *models.Node {
	c := *n
	c.ParentID = cloneID(n.ParentID)
	return &c
}
