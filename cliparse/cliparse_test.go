// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

// noEnvFile points -env-file somewhere empty so a stray .env cannot leak in
func noEnvFile(t *testing.T) []string {
	return []string{"-env-file", filepath.Join(t.TempDir(), "missing.env")}
}

func clearConfigEnv(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "DATABASE_TYPE", "DATA_DIR", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestParseFlags_Defaults(t *testing.T) {
	clearConfigEnv(t)

	cfg, err := ParseFlags(noEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 5000 {
		t.Errorf("expected port 5000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != TypeSQLite {
		t.Errorf("expected sqlite, got %q", cfg.DatabaseType)
	}
	if cfg.DatabaseURL != DefaultSQLitePath {
		t.Errorf("expected default sqlite path, got %q", cfg.DatabaseURL)
	}
	if cfg.LogLevel != "info" || cfg.LogFormat != "text" {
		t.Errorf("unexpected log settings %q/%q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := ParseFlags(noEnvFile(t))
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseType != TypePostgres || cfg.DatabaseURL != "postgres://test" {
		t.Errorf("unexpected database config %q %q", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("expected json log format, got %q", cfg.LogFormat)
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "9000")

	args := append(noEnvFile(t), "-p", "8080", "-d", "events.sqlite")
	cfg, err := ParseFlags(args)
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "events.sqlite" {
		t.Errorf("expected events.sqlite, got %q", cfg.DatabaseURL)
	}
}

func TestParseFlags_EnvFile(t *testing.T) {
	clearConfigEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	content := "PORT=7070\nDATABASE_TYPE=file\nDATA_DIR=/var/lib/questbridge\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 7070 {
		t.Errorf("expected port from env file, got %d", cfg.Port)
	}
	if cfg.DatabaseType != TypeFile || cfg.DataDir != "/var/lib/questbridge" {
		t.Errorf("unexpected storage config %q %q", cfg.DatabaseType, cfg.DataDir)
	}
}

func TestParseFlags_EnvironmentBeatsEnvFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("PORT", "6000")

	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("PORT=7070\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := ParseFlags([]string{"-env-file", path})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Port != 6000 {
		t.Errorf("expected process env to win, got %d", cfg.Port)
	}
}

func TestParseFlags_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"postgres without url", map[string]string{"DATABASE_TYPE": "postgres"}, nil},
		{"unknown type", nil, []string{"-t", "mongo"}},
		{"port out of range", nil, []string{"-p", "70000"}},
		{"non-numeric env port", map[string]string{"PORT": "eighty"}, nil},
		{"file without dir", nil, []string{"-t", "file", "-data-dir", ""}},
		{"unknown flag", nil, []string{"-admin-salt", "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := ParseFlags(append(noEnvFile(t), tt.args...)); err == nil {
				t.Error("expected error")
			}
		})
	}
}
