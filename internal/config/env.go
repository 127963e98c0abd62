package config

import (
	"errors"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
)

const (
	configDirName   = "CHANCE_CONFIG_DIR"
	profileName     = "CHANCE_PROFILE"
	logLevelName    = "CHANCE_LOG_LEVEL"
	metricsFileName = "CHANCE_METRICS_FILE"
)

// Env holds process-level settings. Flags override them.
type Env struct {
	ConfigDir   string
	Profile     string
	LogLevel    string
	MetricsFile string
}

// LoadEnv reads an optional dotenv file, then the CHANCE_* variables.
// Variables already set in the environment are not overwritten by the file.
func LoadEnv(path string) (Env, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, err
		}
	}
	return Env{
		ConfigDir:   getEnv(configDirName, "configs"),
		Profile:     os.Getenv(profileName),
		LogLevel:    getEnv(logLevelName, "info"),
		MetricsFile: os.Getenv(metricsFileName),
	}, nil
}

func getEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}
