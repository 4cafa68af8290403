// Package app opens the metadata store and the byte storage selected in the configuration.
package app

import (
	"context"
	"fmt"

	"menedzer-plikow/internal/config"
	"menedzer-plikow/internal/database"
	"menedzer-plikow/internal/database/badger"
	"menedzer-plikow/internal/database/memory"
	"menedzer-plikow/internal/database/postgres"
	"menedzer-plikow/internal/storage"
)

func OpenStore(ctx context.Context, cfg config.MetadataConfig) (database.Store, error) {
	switch cfg.Type {
	case "memory":
		return memory.NewStore(), nil
	case "badger":
		store, err := badger.New(cfg.Badger.Path)
		if err != nil {
			return nil, fmt.Errorf("open badger store at %s: %w", cfg.Badger.Path, err)
		}
		return store, nil
	case "postgres":
		return postgres.Connect(ctx, cfg.Postgres.Source)
	default:
		return nil, fmt.Errorf("unknown metadata type %q", cfg.Type)
	}
}

func OpenStorage(ctx context.Context, cfg config.StorageConfig) (storage.Storage, error) {
	switch cfg.Type {
	case "local":
		return storage.NewLocalStorage(cfg.Path)
	case "memory":
		return storage.NewMemoryStorage()
	case "s3":
		return storage.NewS3StorageFromConfig(ctx, storage.S3Config{
			Bucket:          cfg.S3.Bucket,
			Region:          cfg.S3.Region,
			Endpoint:        cfg.S3.Endpoint,
			KeyPrefix:       cfg.S3.KeyPrefix,
			ForcePathStyle:  cfg.S3.ForcePathStyle,
			AccessKeyID:     cfg.S3.AccessKeyID,
			SecretAccessKey: cfg.S3.SecretAccessKey,
		})
	default:
		return nil, fmt.Errorf("unknown storage type %q", cfg.Type)
	}
}

// Describe is a one-line summary of where metadata and bytes live, for startup logs.
func Describe(cfg *config.Config) string {
	where := cfg.Storage.Type
	switch cfg.Storage.Type {
	case "local":
		where = "local:" + cfg.Storage.Path
	case "s3":
		where = "s3://" + cfg.Storage.S3.Bucket
	}
	meta := cfg.Metadata.Type
	if cfg.Metadata.Type == "badger" {
		meta = "badger:" + cfg.Metadata.Badger.Path
	}
	return fmt.Sprintf("storage=%s metadata=%s root=%s", where, meta, cfg.Storage.RootPrefix)
}
