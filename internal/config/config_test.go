package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"travelbrowser/internal/catalog"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.VisibleThreshold != 0.3 {
		t.Errorf("Expected VisibleThreshold 0.3, got %v", cfg.VisibleThreshold)
	}
	if cfg.Locale != "en" {
		t.Errorf("Expected Locale 'en', got '%s'", cfg.Locale)
	}
	if cfg.InitialSort != catalog.Natural {
		t.Errorf("Expected natural initial sort, got %v", cfg.InitialSort)
	}
	if cfg.FetchTimeout != 5*time.Second {
		t.Errorf("Expected FetchTimeout 5s, got %v", cfg.FetchTimeout)
	}
	if !cfg.Seed {
		t.Error("Expected Seed to be true by default")
	}
	if cfg.GraphEnabled() || cfg.GuideEnabled() {
		t.Error("Expected graph and guide to be disabled by default")
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		field   string
		wantErr bool
	}{
		{name: "valid default config", cfg: DefaultConfig()},
		{name: "threshold above one", cfg: DefaultConfig().WithVisibleThreshold(1.5), field: "VisibleThreshold", wantErr: true},
		{name: "negative threshold", cfg: DefaultConfig().WithVisibleThreshold(-0.1), field: "VisibleThreshold", wantErr: true},
		{name: "narrow cards", cfg: DefaultConfig().WithCardWidth(4), field: "CardWidth", wantErr: true},
		{name: "empty locale", cfg: DefaultConfig().WithLocale(""), field: "Locale", wantErr: true},
		{
			name: "graph without interval",
			cfg: func() Config {
				c := DefaultConfig()
				c.Neo4jURI = "bolt://localhost:7687"
				c.GraphSyncInterval = 0
				return c
			}(),
			field:   "GraphSyncInterval",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr {
				return
			}
			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected *ConfigError, got %T", err)
			}
			if cfgErr.Field != tt.field {
				t.Errorf("Expected field %s, got %s", tt.field, cfgErr.Field)
			}
		})
	}
}

func TestWithModifiersReturnCopies(t *testing.T) {
	base := DefaultConfig()
	modified := base.WithDBPath("/tmp/x.db").WithInitialSort(catalog.Descending).WithCardWidth(40)

	if base.DBPath != "" || base.InitialSort != catalog.Natural || base.CardWidth != 30 {
		t.Error("Expected original config to be unchanged")
	}
	if modified.DBPath != "/tmp/x.db" || modified.InitialSort != catalog.Descending || modified.CardWidth != 40 {
		t.Errorf("Modifiers not applied: %+v", modified)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("TRAVEL_DB_PATH", "/tmp/catalog.db")
	t.Setenv("TRAVEL_LOCALE", "de")
	t.Setenv("TRAVEL_SORT", "z-a")
	t.Setenv("TRAVEL_THRESHOLD", "0.5")
	t.Setenv("NEO4J_URI", "bolt://graph:7687")
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := FromEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.DBPath != "/tmp/catalog.db" || cfg.Locale != "de" {
		t.Errorf("Unexpected store settings: %+v", cfg)
	}
	if cfg.InitialSort != catalog.Descending {
		t.Errorf("Expected descending sort, got %v", cfg.InitialSort)
	}
	if cfg.VisibleThreshold != 0.5 {
		t.Errorf("Expected threshold 0.5, got %v", cfg.VisibleThreshold)
	}
	if !cfg.GraphEnabled() || !cfg.GuideEnabled() {
		t.Error("Expected graph and guide to be enabled")
	}
	if cfg.Neo4jUser != "neo4j" {
		t.Errorf("Expected default neo4j user to survive, got %s", cfg.Neo4jUser)
	}
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("TRAVEL_THRESHOLD", "lots")
	if _, err := FromEnv(DefaultConfig()); err == nil {
		t.Error("Expected error for malformed threshold")
	}

	t.Setenv("TRAVEL_THRESHOLD", "")
	t.Setenv("TRAVEL_SORT", "sideways")
	if _, err := FromEnv(DefaultConfig()); err == nil {
		t.Error("Expected error for unknown sort order")
	}
}

func TestLoadEnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	content := "# comment\nTRAVEL_TEST_KEY=\"quoted value\"\n\nTRAVEL_TEST_OTHER = plain\nbroken line\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("TRAVEL_TEST_KEY", "")
	t.Setenv("TRAVEL_TEST_OTHER", "")

	LoadEnvFile(path)

	if got := os.Getenv("TRAVEL_TEST_KEY"); got != "quoted value" {
		t.Errorf("Expected 'quoted value', got %q", got)
	}
	if got := os.Getenv("TRAVEL_TEST_OTHER"); got != "plain" {
		t.Errorf("Expected 'plain', got %q", got)
	}

	LoadEnvFile(filepath.Join(dir, "missing.env"))
}

func TestFromEnvStoreTuning(t *testing.T) {
	t.Setenv("TRAVEL_DB_THREADS", "2")
	t.Setenv("TRAVEL_DB_MEMORY_MB", "512")
	t.Setenv("TRAVEL_GRAPH_RESET_ON_STOP", "true")

	cfg, err := FromEnv(DefaultConfig())
	if err != nil {
		t.Fatalf("FromEnv failed: %v", err)
	}
	if cfg.DBThreads != 2 || cfg.DBMemoryMB != 512 || !cfg.GraphResetOnStop {
		t.Errorf("Unexpected tuning: threads=%d memory=%d reset=%v", cfg.DBThreads, cfg.DBMemoryMB, cfg.GraphResetOnStop)
	}

	t.Setenv("TRAVEL_DB_THREADS", "many")
	if _, err := FromEnv(DefaultConfig()); err == nil {
		t.Error("Expected error for malformed thread count")
	}

	cfg = DefaultConfig()
	cfg.DBMemoryMB = -1
	var cfgErr *ConfigError
	if err := cfg.Validate(); !errors.As(err, &cfgErr) || cfgErr.Field != "DBMemoryMB" {
		t.Errorf("Expected DBMemoryMB error, got %v", err)
	}
}
