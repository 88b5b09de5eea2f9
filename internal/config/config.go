package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	apperrors "github.com/ironlog/liftpredict/internal/errors"
)

// Config holds the full pipeline configuration, read from the environment
// with defaults. A .env file in the working directory is honored if present.
type Config struct {
	// Input files
	DataFile     string
	PersonalFile string

	// Filtering
	MinYear int

	// Splitting and reproducibility
	Seed         int64
	TestFraction float64

	// Random forest
	Trees       int
	MinNodeSize int

	// Neural network
	Epochs          int
	BatchSize       int
	Patience        int
	ValidationSplit float64
	LearningRate    float64

	LogLevel slog.Level
}

// Load reads configuration from the environment, applying defaults.
func Load() (*Config, error) {
	// Missing .env is fine; explicit env vars win either way
	_ = godotenv.Load()

	cfg := &Config{
		DataFile:        getEnvOrDefault("DATA_FILE", "data/openpowerlifting.csv"),
		PersonalFile:    getEnvOrDefault("PERSONAL_FILE", "data/personal.csv"),
		MinYear:         getEnvIntOrDefault("MIN_YEAR", 2010),
		Seed:            int64(getEnvIntOrDefault("SEED", 42)),
		TestFraction:    getEnvFloatOrDefault("TEST_FRACTION", 0.2),
		Trees:           getEnvIntOrDefault("FOREST_TREES", 100),
		MinNodeSize:     getEnvIntOrDefault("FOREST_MIN_NODE_SIZE", 5),
		Epochs:          getEnvIntOrDefault("NN_EPOCHS", 50),
		BatchSize:       getEnvIntOrDefault("NN_BATCH_SIZE", 16),
		Patience:        getEnvIntOrDefault("NN_PATIENCE", 5),
		ValidationSplit: getEnvFloatOrDefault("NN_VALIDATION_SPLIT", 0.2),
		LearningRate:    getEnvFloatOrDefault("NN_LEARNING_RATE", 0.001),
		LogLevel:        parseLogLevel(getEnvOrDefault("LOG_LEVEL", "info")),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.DataFile == "" {
		return apperrors.NewConfigurationError("DATA_FILE must not be empty", nil)
	}
	if c.PersonalFile == "" {
		return apperrors.NewConfigurationError("PERSONAL_FILE must not be empty", nil)
	}
	if c.MinYear <= 0 {
		return apperrors.NewConfigurationError("MIN_YEAR must be positive", nil)
	}
	if c.TestFraction <= 0 || c.TestFraction >= 1 {
		return apperrors.NewConfigurationError("TEST_FRACTION must be in (0,1)", nil)
	}
	if c.ValidationSplit <= 0 || c.ValidationSplit >= 1 {
		return apperrors.NewConfigurationError("NN_VALIDATION_SPLIT must be in (0,1)", nil)
	}
	if c.Trees <= 0 || c.MinNodeSize <= 0 {
		return apperrors.NewConfigurationError("forest parameters must be positive", nil)
	}
	if c.Epochs <= 0 || c.BatchSize <= 0 || c.Patience <= 0 {
		return apperrors.NewConfigurationError("network parameters must be positive", nil)
	}
	if c.LearningRate <= 0 {
		return apperrors.NewConfigurationError("NN_LEARNING_RATE must be positive", nil)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func parseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
