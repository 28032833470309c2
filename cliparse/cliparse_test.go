// cliparse/cliparse_test.go
package cliparse

import (
	"os"
	"testing"
)

// setEnv applies the given environment for one test, restoring a clean
// slate afterwards.
func setEnv(t *testing.T, env map[string]string) {
	t.Helper()
	os.Clearenv()
	for k, v := range env {
		os.Setenv(k, v)
	}
	t.Cleanup(os.Clearenv)
}

func TestParseFlagsDefaults(t *testing.T) {
	setEnv(t, map[string]string{
		"DATABASE_URL":      "next-read.db",
		"OPERATOR_KEY_SALT": "salt",
	})

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 3419 {
		t.Errorf("Expected default port 3419, got %d", cfg.Port)
	}
	if cfg.DatabaseType != "sqlite" {
		t.Errorf("Expected default type sqlite, got %s", cfg.DatabaseType)
	}
}

func TestParseFlagsEnvVariables(t *testing.T) {
	setEnv(t, map[string]string{
		"PORT":              "8080",
		"DATABASE_URL":      "postgres://localhost/nextread",
		"DATABASE_TYPE":     "postgres",
		"OPERATOR_KEY_SALT": "env-salt",
	})

	cfg, err := ParseFlags(nil)
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 8080 {
		t.Errorf("Expected port 8080, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/nextread" {
		t.Errorf("Unexpected database URL: %s", cfg.DatabaseURL)
	}
	if cfg.DatabaseType != "postgres" {
		t.Errorf("Expected postgres, got %s", cfg.DatabaseType)
	}
	if cfg.OperatorKeySalt != "env-salt" {
		t.Errorf("Unexpected salt: %s", cfg.OperatorKeySalt)
	}
}

func TestParseFlagsCLIOverridesEnv(t *testing.T) {
	setEnv(t, map[string]string{
		"PORT":              "8080",
		"DATABASE_URL":      "env.db",
		"OPERATOR_KEY_SALT": "env-salt",
	})

	cfg, err := ParseFlags([]string{"-p", "9000", "-d", "cli.db", "-operator-salt", "cli-salt"})
	if err != nil {
		t.Fatalf("ParseFlags failed: %v", err)
	}

	if cfg.Port != 9000 {
		t.Errorf("CLI port should win, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "cli.db" {
		t.Errorf("CLI database should win, got %s", cfg.DatabaseURL)
	}
	if cfg.OperatorKeySalt != "cli-salt" {
		t.Errorf("CLI salt should win, got %s", cfg.OperatorKeySalt)
	}
}

func TestParseFlagsErrors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{
			name: "missing database URL",
			env:  map[string]string{"OPERATOR_KEY_SALT": "salt"},
		},
		{
			name: "missing operator salt",
			env:  map[string]string{"DATABASE_URL": "next-read.db"},
		},
		{
			name: "invalid port env",
			env: map[string]string{
				"PORT":              "not-a-number",
				"DATABASE_URL":      "next-read.db",
				"OPERATOR_KEY_SALT": "salt",
			},
		},
		{
			name: "unsupported database type",
			env: map[string]string{
				"DATABASE_URL":      "next-read.db",
				"OPERATOR_KEY_SALT": "salt",
			},
			args: []string{"-t", "mongodb"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnv(t, tt.env)
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}
