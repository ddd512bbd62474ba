package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(prev) })
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "sqlite" || cfg.Storage.SQLitePath != "recruiting.sqlite" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Blob.Driver != "fs" || cfg.Blob.S3.Region != "us-east-1" {
		t.Fatalf("unexpected blob defaults: %+v", cfg.Blob)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Fatalf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Metrics.Namespace != "recruitledger" {
		t.Fatalf("unexpected namespace %q", cfg.Metrics.Namespace)
	}
}

func TestLoadFileAndEnvOverride(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	path := filepath.Join(dir, "ledger.yaml")
	body := "storage:\n  driver: memory\nlog:\n  level: debug\n  format: console\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("RECRUITLEDGER_LOG_LEVEL", "warn")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Storage.Driver != "memory" {
		t.Fatalf("expected file driver, got %q", cfg.Storage.Driver)
	}
	if cfg.Log.Level != "warn" {
		t.Fatalf("expected env to override file, got %q", cfg.Log.Level)
	}
	if cfg.Log.Format != "console" {
		t.Fatalf("expected console format, got %q", cfg.Log.Format)
	}
}

func TestLoadReadsDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("RECRUITLEDGER_METRICS_NAMESPACE=athletics\n"), 0o600); err != nil {
		t.Fatalf("write .env: %v", err)
	}
	t.Cleanup(func() { _ = os.Unsetenv("RECRUITLEDGER_METRICS_NAMESPACE") })

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Metrics.Namespace != "athletics" {
		t.Fatalf("expected .env namespace, got %q", cfg.Metrics.Namespace)
	}
}

func TestLoadMissingExplicitFile(t *testing.T) {
	chdir(t, t.TempDir())
	if _, err := Load("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected error for missing explicit config file")
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		return Config{
			Storage: StorageConfig{Driver: "sqlite"},
			Blob:    BlobConfig{Driver: "fs"},
			Log:     LogConfig{Level: "info", Format: "json"},
			Metrics: MetricsConfig{Namespace: "recruitledger"},
		}
	}
	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"ok", func(*Config) {}, ""},
		{"unknown storage", func(c *Config) { c.Storage.Driver = "mongo" }, "storage.driver"},
		{"postgres without dsn", func(c *Config) { c.Storage.Driver = "postgres" }, "postgres_dsn"},
		{"postgres with dsn", func(c *Config) {
			c.Storage.Driver = "postgres"
			c.Storage.PostgresDSN = "postgres://localhost/db"
		}, ""},
		{"unknown blob", func(c *Config) { c.Blob.Driver = "gcs" }, "blob.driver"},
		{"s3 without bucket", func(c *Config) { c.Blob.Driver = "s3" }, "blob.s3.bucket"},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
		{"empty namespace", func(c *Config) { c.Metrics.Namespace = " " }, "metrics.namespace"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if tc.want == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %q, got %v", tc.want, err)
			}
		})
	}
}
