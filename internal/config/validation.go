package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"

	"menedzer-plikow/internal/storage"
)

var validate = validator.New()

// Validate checks struct tags first, then the rules that depend on the chosen backends.
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return formatValidationError(err)
	}
	return validateCustomRules(cfg)
}

func validateCustomRules(cfg *Config) error {
	prefix := cfg.Storage.RootPrefix
	if strings.HasPrefix(prefix, "/") || strings.HasSuffix(prefix, "/") || strings.Contains(prefix, "\\") {
		return fmt.Errorf("storage.root_prefix: %q must be a relative path without leading or trailing slashes", prefix)
	}
	for _, seg := range strings.Split(prefix, "/") {
		if seg == "" || seg == "." || seg == ".." {
			return fmt.Errorf("storage.root_prefix: %q contains an empty or relative segment", prefix)
		}
	}
	if first, _, _ := strings.Cut(prefix, "/"); first == storage.StagingDir {
		return fmt.Errorf("storage.root_prefix: %q is reserved for uploads in flight", storage.StagingDir)
	}

	switch cfg.Storage.Type {
	case "local":
		if cfg.Storage.Path == "" {
			return fmt.Errorf("storage.path: required for local storage")
		}
	case "s3":
		if cfg.Storage.S3.Bucket == "" {
			return fmt.Errorf("storage.s3.bucket: required for s3 storage")
		}
		if (cfg.Storage.S3.AccessKeyID == "") != (cfg.Storage.S3.SecretAccessKey == "") {
			return fmt.Errorf("storage.s3: access_key_id and secret_access_key must be set together")
		}
	}

	switch cfg.Metadata.Type {
	case "badger":
		if cfg.Metadata.Badger.Path == "" {
			return fmt.Errorf("metadata.badger.path: required for the badger store")
		}
	case "postgres":
		if cfg.Metadata.Postgres.Source == "" {
			return fmt.Errorf("metadata.postgres.source: required for the postgres store")
		}
	}
	return nil
}

func formatValidationError(err error) error {
	if validationErrs, ok := err.(validator.ValidationErrors); ok && len(validationErrs) > 0 {
		e := validationErrs[0]
		return fmt.Errorf("%s: validation failed on '%s' tag (value: %v)", e.Namespace(), e.Tag(), e.Value())
	}
	return err
}
