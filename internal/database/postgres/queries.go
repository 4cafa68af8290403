package postgres

import (
	"context"
	"errors"
	"time"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// DBTX is satisfied by both the pool and a pgx.Tx.
type DBTX interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type Queries struct {
	db  DBTX
	now func() time.Time
}

func New(db DBTX) *Queries {
	return &Queries{db: db, now: time.Now}
}

const nodeColumns = `id, parent_id, name, type, size, path, mime_type, owner, starred, deleted, shared, created_at, modified_at`

func scanNode(row pgx.Row) (*models.Node, error) {
	var node models.Node
	err := row.Scan(
		&node.ID,
		&node.ParentID,
		&node.Name,
		&node.Type,
		&node.Size,
		&node.Path,
		&node.MimeType,
		&node.Owner,
		&node.Starred,
		&node.Deleted,
		&node.Shared,
		&node.CreatedAt,
		&node.ModifiedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	node.CreatedAt = node.CreatedAt.UTC()
	node.ModifiedAt = node.ModifiedAt.UTC()
	return &node, nil
}

func mapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return database.ErrNodeNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return database.ErrDuplicateNodeName
	}
	return err
}

func (q *Queries) GetNode(ctx context.Context, id int64) (*models.Node, error) {
	query := `SELECT ` + nodeColumns + ` FROM nodes WHERE id = $1`
	return scanNode(q.db.QueryRow(ctx, query, id))
}

func (q *Queries) InsertNode(ctx context.Context, arg database.CreateNodeParams) (*models.Node, error) {
	query := `
		INSERT INTO nodes (parent_id, name, type, size, path, mime_type, owner, starred, deleted, shared, created_at, modified_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING ` + nodeColumns
	node := database.NewNode(0, arg, q.now())

	row := q.db.QueryRow(ctx, query,
		node.ParentID,
		node.Name,
		node.Type,
		node.Size,
		node.Path,
		node.MimeType,
		node.Owner,
		node.Starred,
		node.Deleted,
		node.Shared,
		node.CreatedAt,
		node.ModifiedAt,
	)
	return scanNode(row)
}

func (q *Queries) UpdateNode(ctx context.Context, id int64, arg database.UpdateNodeParams) (*models.Node, error) {
	query := `
		UPDATE nodes
		SET
			name = COALESCE($2::text, name),
			path = COALESCE($3::text, path),
			parent_id = CASE WHEN $4::boolean THEN NULL ELSE COALESCE($5::bigint, parent_id) END,
			starred = COALESCE($6::boolean, starred),
			deleted = COALESCE($7::boolean, deleted),
			shared = COALESCE($8::boolean, shared),
			modified_at = COALESCE($9::timestamptz, modified_at)
		WHERE id = $1
		RETURNING ` + nodeColumns

	row := q.db.QueryRow(ctx, query,
		id,
		arg.Name,
		arg.Path,
		arg.MoveToRoot,
		arg.ParentID,
		arg.Starred,
		arg.Deleted,
		arg.Shared,
		arg.ModifiedAt,
	)
	return scanNode(row)
}

func (q *Queries) DeleteNode(ctx context.Context, id int64) error {
	res, err := q.db.Exec(ctx, `DELETE FROM nodes WHERE id = $1`, id)
	if err != nil {
		return mapError(err)
	}
	if res.RowsAffected() == 0 {
		return database.ErrNodeNotFound
	}
	return nil
}

func (q *Queries) ScanNodes(ctx context.Context, match func(*models.Node) bool) ([]models.Node, error) {
	rows, err := q.db.Query(ctx, `SELECT `+nodeColumns+` FROM nodes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	nodes := []models.Node{}
	for rows.Next() {
		node, err := scanNode(rows)
		if err != nil {
			return nil, err
		}
		if match == nil || match(node) {
			nodes = append(nodes, *node)
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return nodes, nil
}

func (q *Queries) SiblingExists(ctx context.Context, name string, parentID *int64, excludeID *int64) (bool, error) {
	query := `
		SELECT EXISTS(
			SELECT 1 FROM nodes
			WHERE name = $1
			  AND parent_id IS NOT DISTINCT FROM $2::bigint
			  AND ($3::bigint IS NULL OR id <> $3::bigint)
		)
	`
	var exists bool
	if err := q.db.QueryRow(ctx, query, name, parentID, excludeID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
