package config_test

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/examtrack/backend/internal/infrastructure/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("SERVER_ADDRESS", ":9090")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
}

func TestFromEnv_Defaults(t *testing.T) {
	setRequired(t)
	for _, k := range []string{"DB_DRIVER", "DB_DSN", "CORS_ORIGINS", "GRADING_WORKERS", "ANALYSIS_ENABLED", "LLM_URL", "LLM_MODEL", "LOG_LEVEL", "LOG_FORMAT"} {
		t.Setenv(k, "")
	}

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.ServerAddress != ":9090" || cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("unexpected server settings %+v", cfg)
	}
	if cfg.DBDriver != "sqlite" || cfg.DBDSN != "" {
		t.Errorf("expected sqlite with default DSN, got %q %q", cfg.DBDriver, cfg.DBDSN)
	}
	if cfg.GradingWorkers < 1 {
		t.Errorf("expected at least one worker, got %d", cfg.GradingWorkers)
	}
	if !cfg.AnalysisEnabled || cfg.LLMModel != "qwen3-8b" {
		t.Errorf("unexpected LLM settings %+v", cfg)
	}
	if cfg.LogLevel != slog.LevelInfo || cfg.LogFormat != "json" {
		t.Errorf("unexpected log settings %v %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("DB_DRIVER", "Postgres")
	t.Setenv("DB_DSN", "postgres://db/exams")
	t.Setenv("CORS_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("GRADING_WORKERS", "3")
	t.Setenv("ANALYSIS_ENABLED", "false")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "TEXT")

	cfg, err := config.FromEnv()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.DBDriver != "postgres" || cfg.DBDSN != "postgres://db/exams" {
		t.Errorf("unexpected db settings %q %q", cfg.DBDriver, cfg.DBDSN)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSOrigins, want) {
		t.Errorf("expected %v, got %v", want, cfg.CORSOrigins)
	}
	if cfg.GradingWorkers != 3 || cfg.AnalysisEnabled {
		t.Errorf("unexpected workers/analysis %d %v", cfg.GradingWorkers, cfg.AnalysisEnabled)
	}
	if cfg.LogLevel != slog.LevelDebug || cfg.LogFormat != "text" {
		t.Errorf("unexpected log settings %v %q", cfg.LogLevel, cfg.LogFormat)
	}
}

func TestFromEnv_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing address", map[string]string{"SERVER_ADDRESS": ""}},
		{"bad timeout", map[string]string{"SHUTDOWN_TIMEOUT": "soon"}},
		{"bad driver", map[string]string{"DB_DRIVER": "mysql"}},
		{"bad workers", map[string]string{"GRADING_WORKERS": "0"}},
		{"bad level", map[string]string{"LOG_LEVEL": "loud"}},
		{"bad format", map[string]string{"LOG_FORMAT": "xml"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setRequired(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := config.FromEnv(); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
