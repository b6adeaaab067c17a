package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	// DefaultDirName is the data folder under the user's home directory.
	DefaultDirName = ".tm"
	// DefaultEnvFile is read from the working directory when present.
	DefaultEnvFile = ".env"
)

// HomeDir returns the data directory, ~/.tm unless TM_HOME is set.
func HomeDir() (string, error) {
	if override := strings.TrimSpace(os.Getenv("TM_HOME")); override != "" {
		if strings.HasPrefix(override, "~") {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("cannot determine home directory: %w", err)
			}
			override = filepath.Join(home, strings.TrimPrefix(override, "~"))
		}
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, DefaultDirName), nil
}

// applyEnv loads the optional .env file (TM_ENV_FILE overrides its path) and
// lets TM_* variables override file values. Variables already set in the
// environment win over the .env file.
func applyEnv(cfg *Config) error {
	envFile := getEnv("TM_ENV_FILE", DefaultEnvFile)
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading env file %s: %w", envFile, err)
	}

	cfg.DailyWorkHours = getEnvAsFloat("TM_DAILY_WORK_HOURS", cfg.DailyWorkHours)
	cfg.WorkingDaysPerWeek = getEnvAsInt("TM_WORKING_DAYS_PER_WEEK", cfg.WorkingDaysPerWeek)
	cfg.Language = getEnv("TM_LANGUAGE", cfg.Language)
	cfg.Portal.URL = getEnv("TM_PORTAL_URL", cfg.Portal.URL)
	return nil
}

func getEnv(key string, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(name string, defaultVal int) int {
	if val, err := strconv.Atoi(getEnv(name, "")); err == nil {
		return val
	}
	return defaultVal
}

func getEnvAsFloat(name string, defaultVal float64) float64 {
	if val, err := strconv.ParseFloat(getEnv(name, ""), 64); err == nil {
		return val
	}
	return defaultVal
}
