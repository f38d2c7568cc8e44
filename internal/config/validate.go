package config

import (
	"fmt"
	"strings"
	"time"
)

var (
	validLogFormats    = []string{"json", "text", "pretty"}
	validDrivers       = []string{DriverSQLite, DriverPostgres, DriverMemory}
	validModes         = []string{"word2meaning", "meaning2word"}
	validExportFormats = []string{"xlsx", "csv"}
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := oneOf("log.format", strings.ToLower(c.Log.Format), validLogFormats); err != nil {
		return err
	}

	if err := c.Storage.validate(); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if c.Storage.Driver == DriverPostgres && strings.TrimSpace(c.Database.DSN) == "" {
		return fmt.Errorf("database.dsn is required when storage.driver is %q", DriverPostgres)
	}

	if err := c.Quiz.validate(); err != nil {
		return fmt.Errorf("quiz: %w", err)
	}

	if c.Server.UploadsPerMinute < 0 {
		return fmt.Errorf("server.uploads_per_minute must not be negative (got %d)", c.Server.UploadsPerMinute)
	}

	return nil
}

func (s *StorageConfig) validate() error {
	if err := oneOf("driver", s.Driver, validDrivers); err != nil {
		return err
	}
	if s.Driver == DriverSQLite && strings.TrimSpace(s.SQLitePath) == "" {
		return fmt.Errorf("sqlite_path is required for the sqlite driver")
	}
	if strings.TrimSpace(s.BankKey) == "" {
		return fmt.Errorf("bank_key must not be empty")
	}
	return nil
}

func (q *QuizConfig) validate() error {
	if err := oneOf("default_mode", q.DefaultMode, validModes); err != nil {
		return err
	}
	if err := oneOf("export_format", q.ExportFormat, validExportFormats); err != nil {
		return err
	}
	if strings.TrimSpace(q.ExportPrefix) == "" {
		return fmt.Errorf("export_prefix must not be empty")
	}

	loc, err := time.LoadLocation(q.ExportTimezone)
	switch {
	case err == nil:
		q.ExportLocation = loc
	case q.ExportTimezone == "Asia/Seoul":
		// Hosts without zoneinfo still name files by the Korean date.
		q.ExportLocation = time.FixedZone("KST", 9*60*60)
	default:
		return fmt.Errorf("export_timezone %q: %w", q.ExportTimezone, err)
	}

	return nil
}

func oneOf(field, value string, allowed []string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("%s must be one of %s (got %q)", field, strings.Join(allowed, ", "), value)
}
