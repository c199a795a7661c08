package config

import (
	"os"
	"strings"
	"testing"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		config      Config
		wantErr     bool
		errorString string
	}{
		{
			name: "valid sqlite backend config",
			config: Config{
				Port:         "8081",
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
			},
			wantErr: false,
		},
		{
			name: "valid memory backend config",
			config: Config{
				Port:        "8081",
				DataBackend: "memory",
			},
			wantErr: false,
		},
		{
			name: "invalid port - non-numeric",
			config: Config{
				Port:         "abc",
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
			},
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name: "invalid port - out of range low",
			config: Config{
				Port:         "0",
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
			},
			wantErr:     true,
			errorString: "invalid port 0: must be between 1 and 65535",
		},
		{
			name: "invalid port - out of range high",
			config: Config{
				Port:         "70000",
				DataBackend:  "sqlite",
				SQLiteDBPath: "./test.db",
			},
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name: "invalid data backend",
			config: Config{
				Port:        "8080",
				DataBackend: "invalid",
			},
			wantErr:     true,
			errorString: "invalid data backend 'invalid': must be one of [memory sqlite]",
		},
		{
			name: "sqlite backend missing database path",
			config: Config{
				Port:         "8080",
				DataBackend:  "sqlite",
				SQLiteDBPath: "",
			},
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestLoad(t *testing.T) {
	// Save original env vars
	originalVars := map[string]string{
		"PORT":             os.Getenv("PORT"),
		"DATA_BACKEND":     os.Getenv("DATA_BACKEND"),
		"SQLITE_DB_PATH":   os.Getenv("SQLITE_DB_PATH"),
		"SEED_SAMPLE_DATA": os.Getenv("SEED_SAMPLE_DATA"),
	}

	for key := range originalVars {
		os.Unsetenv(key)
	}

	defer func() {
		for key, value := range originalVars {
			if value != "" {
				os.Setenv(key, value)
			} else {
				os.Unsetenv(key)
			}
		}
	}()

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.Port != "8081" {
			t.Errorf("Load() Port = %v, want 8081", cfg.Port)
		}
		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/cantiere.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/cantiere.db", cfg.SQLiteDBPath)
		}
		if !cfg.SeedSampleData {
			t.Errorf("Load() SeedSampleData = false, want true by default")
		}
	})

	t.Run("seed sample data disabled", func(t *testing.T) {
		os.Setenv("SEED_SAMPLE_DATA", "false")
		defer os.Unsetenv("SEED_SAMPLE_DATA")

		if cfg := Load(); cfg.SeedSampleData {
			t.Errorf("Load() SeedSampleData = true, want false")
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		os.Setenv("PORT", "9090")
		os.Setenv("DATA_BACKEND", "memory")
		os.Setenv("SQLITE_DB_PATH", "/tmp/test.db")

		cfg := Load()

		if cfg.Port != "9090" {
			t.Errorf("Load() Port = %v, want 9090", cfg.Port)
		}
		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
	})
}
