package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	AppHost  string         `mapstructure:"host" validate:"required"`
	Owner    string         `mapstructure:"owner" validate:"required"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Metadata MetadataConfig `mapstructure:"metadata"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	CORS     CORSConfig     `mapstructure:"cors"`
	Events   EventsConfig   `mapstructure:"events"`
}

type StorageConfig struct {
	Type           string   `mapstructure:"type" validate:"oneof=local memory s3"`
	Path           string   `mapstructure:"path"`
	RootPrefix     string   `mapstructure:"root_prefix" validate:"required"`
	MaxUploadBytes int64    `mapstructure:"max_upload_bytes" validate:"gte=0"`
	S3             S3Config `mapstructure:"s3"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	Endpoint        string `mapstructure:"endpoint" validate:"omitempty,url"`
	KeyPrefix       string `mapstructure:"key_prefix"`
	ForcePathStyle  bool   `mapstructure:"force_path_style"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
}

type MetadataConfig struct {
	Type     string         `mapstructure:"type" validate:"oneof=memory badger postgres"`
	Badger   BadgerConfig   `mapstructure:"badger"`
	Postgres PostgresConfig `mapstructure:"postgres"`
}

type BadgerConfig struct {
	Path string `mapstructure:"path"`
}

type PostgresConfig struct {
	Source string `mapstructure:"source"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level" validate:"omitempty,oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Format string `mapstructure:"format" validate:"omitempty,oneof=text json"`
	Output string `mapstructure:"output"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type EventsConfig struct {
	JournalSize int `mapstructure:"journal_size" validate:"gt=0"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", ":8080")
	v.SetDefault("owner", "me")

	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.path", "./data/files")
	v.SetDefault("storage.root_prefix", "uploads")
	v.SetDefault("storage.max_upload_bytes", 100<<20)
	v.SetDefault("storage.s3.bucket", "")
	v.SetDefault("storage.s3.region", "us-east-1")
	v.SetDefault("storage.s3.endpoint", "")
	v.SetDefault("storage.s3.key_prefix", "")
	v.SetDefault("storage.s3.force_path_style", false)
	v.SetDefault("storage.s3.access_key_id", "")
	v.SetDefault("storage.s3.secret_access_key", "")

	v.SetDefault("metadata.type", "badger")
	v.SetDefault("metadata.badger.path", "./data/metadata")
	v.SetDefault("metadata.postgres.source", "")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output", "stdout")

	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("events.journal_size", 1000)
}

// Load reads settings.yml from ./configs or /configs; a missing file leaves the defaults.
// Environment variables override both, with "." replaced by "_" (STORAGE_TYPE=s3).
func Load() (*Config, error) {
	return LoadFile("")
}

// LoadFile is Load with an explicit config file instead of the search paths.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath("./configs")
		v.AddConfigPath("/configs")
		v.SetConfigName("settings")
		v.SetConfigType("yml")
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
