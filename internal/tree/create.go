package tree

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/gabriel-vasile/mimetype"

	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/models"
	"menedzer-plikow/internal/paths"
	"menedzer-plikow/internal/storage"
)

// sniffLen is how much of an upload is buffered for MIME detection.
const sniffLen = 3072

// CreateFolder adds an empty folder under parentID (nil for root level).
// Deleted siblings still hold their name.
func (e *Engine) CreateFolder(ctx context.Context, name string, parentID *int64) (*models.Node, error) {
	var created *models.Node
	err := e.mutate(ctx, "create_folder", func(tx database.Tx) error {
		name, err := validName(name)
		if err != nil {
			return err
		}
		parent, err := e.resolveParent(ctx, tx, parentID)
		if err != nil {
			return err
		}
		taken, err := tx.SiblingExists(ctx, name, parentID, nil)
		if err != nil {
			return err
		}
		if taken {
			return conflict("a node named %q already exists in this folder", name)
		}
		p, err := e.childPath(parent, name)
		if err != nil {
			return err
		}

		if err := e.storage.MkdirAll(ctx, p); err != nil {
			return ioFailure(err, "failed to create directory %q", p)
		}

		now := *e.timestamp()
		created, err = tx.InsertNode(ctx, database.CreateNodeParams{
			ParentID:   parentID,
			Name:       name,
			Type:       models.TypeFolder,
			Path:       p,
			Owner:      e.owner,
			CreatedAt:  now,
			ModifiedAt: now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	e.log.Info("folder created", "op", "create_folder", "id", created.ID, "path", created.Path)
	e.publish(EventNodeCreated, created)
	return created, nil
}

// UploadFile stores r under parentID. When the name is taken the stored name gets a " (n)"
// suffix before the extension; the returned node carries the name actually used.
func (e *Engine) UploadFile(ctx context.Context, name string, parentID *int64, r io.Reader) (*models.Node, error) {
	var created *models.Node
	err := e.mutate(ctx, "upload_file", func(tx database.Tx) error {
		name, err := validName(name)
		if err != nil {
			return err
		}
		parent, err := e.resolveParent(ctx, tx, parentID)
		if err != nil {
			return err
		}

		finalName, err := paths.Unique(
			func(n int) string { return paths.UploadCandidate(name, n) },
			func(candidate string) (bool, error) {
				p, err := e.childPath(parent, candidate)
				if err != nil {
					return false, err
				}
				exists, err := e.storage.Exists(ctx, p)
				if err != nil {
					return false, ioFailure(err, "failed to check %q", p)
				}
				if exists {
					return true, nil
				}
				return tx.SiblingExists(ctx, candidate, parentID, nil)
			},
		)
		if err != nil {
			return err
		}
		p, err := e.childPath(parent, finalName)
		if err != nil {
			return err
		}

		head := make([]byte, sniffLen)
		n, err := io.ReadFull(r, head)
		if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
			return ioFailure(err, "failed to read upload")
		}
		head = head[:n]
		mime := mimetype.Detect(head).String()

		body := io.MultiReader(bytes.NewReader(head), r)
		if e.maxUploadBytes > 0 {
			body = io.LimitReader(body, e.maxUploadBytes+1)
		}
		size, err := e.storage.Save(ctx, p, body)
		if err != nil {
			return ioFailure(err, "failed to save %q", p)
		}
		if e.maxUploadBytes > 0 && size > e.maxUploadBytes {
			if rmErr := e.storage.Remove(ctx, p); rmErr != nil && !errors.Is(rmErr, storage.ErrNotExist) {
				e.log.Error("failed to remove oversized upload", "op", "upload_file", "path", p, "error", rmErr)
			}
			return invalidArgument("file exceeds the upload limit of %d bytes", e.maxUploadBytes)
		}

		now := *e.timestamp()
		created, err = tx.InsertNode(ctx, database.CreateNodeParams{
			ParentID:   parentID,
			Name:       finalName,
			Type:       paths.ClassifyType(finalName),
			Size:       size,
			Path:       p,
			MimeType:   mime,
			Owner:      e.owner,
			CreatedAt:  now,
			ModifiedAt: now,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	e.metrics.AddUploadedBytes(created.Size)
	e.log.Info("file uploaded", "op", "upload_file", "id", created.ID, "path", created.Path, "size", created.Size)
	e.publish(EventNodeCreated, created)
	return created, nil
}
