package config

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Storage
	DBDriver string // "sqlite" or "postgres"
	DBDSN    string // empty means the driver's default

	CORSOrigins    []string
	GradingWorkers int // bulk regrade pool size

	// LLM study analysis
	AnalysisEnabled bool
	LLMURL          string // OpenAI-compatible endpoint, e.g. "http://localhost:1234"
	LLMModel        string // model name, e.g. "qwen3-8b"

	LogLevel  slog.Level
	LogFormat string // "json" or "text"
}

// Load reads .env (if present) and the environment. It exits the process when
// a required variable is missing or malformed.
func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the current environment.
func FromEnv() (*Config, error) {
	addr, err := required("SERVER_ADDRESS")
	if err != nil {
		return nil, err
	}
	shutdown, err := requiredDuration("SHUTDOWN_TIMEOUT")
	if err != nil {
		return nil, err
	}

	driver := strings.ToLower(getenvDefault("DB_DRIVER", "sqlite"))
	if driver != "sqlite" && driver != "postgres" {
		return nil, fmt.Errorf("DB_DRIVER=%q must be sqlite or postgres", driver)
	}

	workers, err := strconv.Atoi(getenvDefault("GRADING_WORKERS", strconv.Itoa(runtime.NumCPU())))
	if err != nil || workers < 1 {
		return nil, fmt.Errorf("GRADING_WORKERS must be a positive integer")
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(getenvDefault("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	format := strings.ToLower(getenvDefault("LOG_FORMAT", "json"))
	if format != "json" && format != "text" {
		return nil, fmt.Errorf("LOG_FORMAT=%q must be json or text", format)
	}

	return &Config{
		ServerAddress:   addr,
		ShutdownTimeout: shutdown,
		DBDriver:        driver,
		DBDSN:           os.Getenv("DB_DSN"),
		CORSOrigins:     csvDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:3000"),
		GradingWorkers:  workers,
		AnalysisEnabled: boolDefault("ANALYSIS_ENABLED", true),
		LLMURL:          getenvDefault("LLM_URL", "http://localhost:1234"),
		LLMModel:        getenvDefault("LLM_MODEL", "qwen3-8b"),
		LogLevel:        level,
		LogFormat:       format,
	}, nil
}

func required(k string) (string, error) {
	v := os.Getenv(k)
	if v == "" {
		return "", fmt.Errorf("required environment variable %s is not set", k)
	}
	return v, nil
}

func requiredDuration(k string) (time.Duration, error) {
	v, err := required(k)
	if err != nil {
		return 0, err
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not a valid duration: %w", k, v, err)
	}
	return d, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

func boolDefault(k string, fallback bool) bool {
	switch strings.ToLower(os.Getenv(k)) {
	case "1", "true", "yes":
		return true
	case "0", "false", "no":
		return false
	default:
		return fallback
	}
}

func csvDefault(k, fallback string) []string {
	var out []string
	for _, p := range strings.Split(getenvDefault(k, fallback), ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
