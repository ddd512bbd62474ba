// Package config loads recruitledger settings from defaults, an optional
// YAML file, a .env file and RECRUITLEDGER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment override, e.g. RECRUITLEDGER_STORAGE_DRIVER.
const EnvPrefix = "RECRUITLEDGER"

// Config is the root configuration.
type Config struct {
	Storage StorageConfig `mapstructure:"storage"`
	Blob    BlobConfig    `mapstructure:"blob"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

// StorageConfig selects the persistent store backend.
type StorageConfig struct {
	Driver      string `mapstructure:"driver"` // memory|sqlite|postgres
	SQLitePath  string `mapstructure:"sqlite_path"`
	PostgresDSN string `mapstructure:"postgres_dsn"`
}

// BlobConfig selects where snapshots are archived.
type BlobConfig struct {
	Driver string   `mapstructure:"driver"` // fs|s3|memory
	FSRoot string   `mapstructure:"fs_root"`
	S3     S3Config `mapstructure:"s3"`
}

// S3Config configures the S3 or MinIO snapshot bucket. Credentials come from
// the default AWS chain.
type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Endpoint  string `mapstructure:"endpoint"`
	PathStyle bool   `mapstructure:"path_style"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // json|console
}

// MetricsConfig configures prometheus collectors.
type MetricsConfig struct {
	Namespace string `mapstructure:"namespace"`
}

var (
	storageDrivers = []string{"memory", "sqlite", "postgres"}
	blobDrivers    = []string{"fs", "s3", "memory"}
	logFormats     = []string{"json", "console"}
)

// Load reads configuration with precedence env > file > defaults. An empty
// path searches ./config and the working directory for config.yaml; a
// missing file is not an error then.
func Load(path string) (*Config, error) {
	// .env is optional; values already set in the environment win.
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.sqlite_path", "recruiting.sqlite")
	v.SetDefault("storage.postgres_dsn", "")

	v.SetDefault("blob.driver", "fs")
	v.SetDefault("blob.fs_root", "./snapshots")
	v.SetDefault("blob.s3.bucket", "")
	v.SetDefault("blob.s3.region", "us-east-1")
	v.SetDefault("blob.s3.endpoint", "")
	v.SetDefault("blob.s3.path_style", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("metrics.namespace", "recruitledger")
}

// Validate checks driver names and the settings each driver requires.
func (c *Config) Validate() error {
	if !oneOf(c.Storage.Driver, storageDrivers) {
		return fmt.Errorf("config: storage.driver must be one of %s, got %q", strings.Join(storageDrivers, "|"), c.Storage.Driver)
	}
	if c.Storage.Driver == "postgres" && strings.TrimSpace(c.Storage.PostgresDSN) == "" {
		return fmt.Errorf("config: storage.postgres_dsn is required for the postgres driver")
	}
	if !oneOf(c.Blob.Driver, blobDrivers) {
		return fmt.Errorf("config: blob.driver must be one of %s, got %q", strings.Join(blobDrivers, "|"), c.Blob.Driver)
	}
	if c.Blob.Driver == "s3" && strings.TrimSpace(c.Blob.S3.Bucket) == "" {
		return fmt.Errorf("config: blob.s3.bucket is required for the s3 driver")
	}
	if !oneOf(c.Log.Format, logFormats) {
		return fmt.Errorf("config: log.format must be json or console, got %q", c.Log.Format)
	}
	if strings.TrimSpace(c.Metrics.Namespace) == "" {
		return fmt.Errorf("config: metrics.namespace must not be empty")
	}
	return nil
}

func oneOf(v string, allowed []string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
