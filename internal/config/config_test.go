package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	_ "time/tzdata"
)

func writeYAML(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write yaml: %v", err)
	}
	return path
}

const validYAML = `
log:
  level: "debug"
  format: "pretty"

storage:
  driver: "postgres"
  bank_key: "wrongBank"

database:
  dsn: "postgres://u:p@localhost:5432/testdb"
  max_conns: 2

quiz:
  default_mode: "meaning2word"
  export_timezone: "Asia/Seoul"
  export_prefix: "review"
  export_format: "csv"

server:
  host: "127.0.0.1"
  port: 9090
  read_timeout: "5s"
`

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Log.Level != "debug" {
		t.Errorf("log.level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Log.Format != "pretty" {
		t.Errorf("log.format = %q, want %q", cfg.Log.Format, "pretty")
	}
	if cfg.Storage.Driver != DriverPostgres {
		t.Errorf("storage.driver = %q, want %q", cfg.Storage.Driver, DriverPostgres)
	}
	if cfg.Database.MaxConns != 2 {
		t.Errorf("database.max_conns = %d, want 2", cfg.Database.MaxConns)
	}
	if cfg.Quiz.DefaultMode != "meaning2word" {
		t.Errorf("quiz.default_mode = %q", cfg.Quiz.DefaultMode)
	}
	if cfg.Quiz.ExportPrefix != "review" {
		t.Errorf("quiz.export_prefix = %q", cfg.Quiz.ExportPrefix)
	}
	if cfg.Quiz.ExportLocation == nil || cfg.Quiz.ExportLocation.String() != "Asia/Seoul" {
		t.Errorf("quiz.export_location = %v, want Asia/Seoul", cfg.Quiz.ExportLocation)
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("server.port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout != 5*time.Second {
		t.Errorf("server.read_timeout = %v, want 5s", cfg.Server.ReadTimeout)
	}
	// Not set in YAML, so the default applies.
	if cfg.Server.WriteTimeout != 30*time.Second {
		t.Errorf("server.write_timeout = %v, want 30s", cfg.Server.WriteTimeout)
	}
}

func TestLoad_EnvOnlyDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Storage.Driver != DriverSQLite {
		t.Errorf("storage.driver = %q, want %q", cfg.Storage.Driver, DriverSQLite)
	}
	if cfg.Storage.BankKey != "wrongBank" {
		t.Errorf("storage.bank_key = %q, want wrongBank", cfg.Storage.BankKey)
	}
	if cfg.Quiz.DefaultMode != "word2meaning" {
		t.Errorf("quiz.default_mode = %q, want word2meaning", cfg.Quiz.DefaultMode)
	}
	if cfg.Quiz.ExportPrefix != "오답노트" {
		t.Errorf("quiz.export_prefix = %q, want 오답노트", cfg.Quiz.ExportPrefix)
	}
	if cfg.Quiz.ExportFormat != "xlsx" {
		t.Errorf("quiz.export_format = %q, want xlsx", cfg.Quiz.ExportFormat)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("log.format = %q, want json", cfg.Log.Format)
	}
	if cfg.Server.UploadsPerMinute != 30 {
		t.Errorf("server.uploads_per_minute = %d, want 30", cfg.Server.UploadsPerMinute)
	}
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := writeYAML(t, dir, validYAML)
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("SERVER_PORT", "7070")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Storage.Driver != DriverMemory {
		t.Errorf("storage.driver = %q, want memory", cfg.Storage.Driver)
	}
	if cfg.Server.Port != 7070 {
		t.Errorf("server.port = %d, want 7070", cfg.Server.Port)
	}
}

func TestLoad_ExplicitPathMissing(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "nope.yaml"))

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing explicit config file")
	}
}

func validConfig() Config {
	return Config{
		Log:     LogConfig{Level: "info", Format: "json"},
		Storage: StorageConfig{Driver: DriverSQLite, SQLitePath: "x.db", BankKey: "wrongBank"},
		Quiz: QuizConfig{
			DefaultMode:    "word2meaning",
			ExportTimezone: "Asia/Seoul",
			ExportPrefix:   "오답노트",
			ExportFormat:   "xlsx",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "memory driver", mutate: func(c *Config) { c.Storage.Driver = DriverMemory }},
		{
			name:    "bad log format",
			mutate:  func(c *Config) { c.Log.Format = "xml" },
			wantErr: "log.format",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Storage.Driver = "redis" },
			wantErr: "driver",
		},
		{
			name:    "postgres without dsn",
			mutate:  func(c *Config) { c.Storage.Driver = DriverPostgres },
			wantErr: "database.dsn",
		},
		{
			name:    "empty sqlite path",
			mutate:  func(c *Config) { c.Storage.SQLitePath = " " },
			wantErr: "sqlite_path",
		},
		{
			name:    "empty bank key",
			mutate:  func(c *Config) { c.Storage.BankKey = "" },
			wantErr: "bank_key",
		},
		{
			name:    "bad mode",
			mutate:  func(c *Config) { c.Quiz.DefaultMode = "both" },
			wantErr: "default_mode",
		},
		{
			name:    "bad export format",
			mutate:  func(c *Config) { c.Quiz.ExportFormat = "xls" },
			wantErr: "export_format",
		},
		{
			name:    "negative upload limit",
			mutate:  func(c *Config) { c.Server.UploadsPerMinute = -1 },
			wantErr: "uploads_per_minute",
		},
		{
			name:    "bad timezone",
			mutate:  func(c *Config) { c.Quiz.ExportTimezone = "Mars/Olympus" },
			wantErr: "export_timezone",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
