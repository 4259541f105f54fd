package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultAPIURL = "http://localhost:8000"
	APIURLEnv     = "TASK_TRACKER_API_URL"
)

type Config struct {
	APIURL      string `json:"api_url"`
	DBPath      string `json:"db_path"`
	DownloadDir string `json:"download_dir"`
	LogPath     string `json:"log_path"`
	LogLevel    string `json:"log_level"`
}

func Default() Config {
	return Config{APIURL: DefaultAPIURL, LogLevel: "info"}
}

func DefaultConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "lazytracker", "config.json"), nil
}

func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}

func Load(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return config, nil
		}
		return Config{}, err
	}

	if err := json.Unmarshal(data, &config); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return config, nil
}

func Save(path string, cfg Config) error {
	if err := EnsureDir(path); err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o644)
}

// ApplyEnv lets the environment, including a .env file in the working
// directory, override the API address from the file. Variables already set
// in the process win over .env entries.
func ApplyEnv(cfg Config) Config {
	_ = godotenv.Load()
	if value := strings.TrimSpace(os.Getenv(APIURLEnv)); value != "" {
		cfg.APIURL = value
	}
	return cfg
}

// FillDefaults resolves empty paths relative to the config file location.
func FillDefaults(cfg Config, configPath string) Config {
	base := filepath.Dir(configPath)
	if strings.TrimSpace(cfg.APIURL) == "" {
		cfg.APIURL = DefaultAPIURL
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	if cfg.DBPath == "" {
		cfg.DBPath = filepath.Join(base, "lazytracker.db")
	}
	if cfg.LogPath == "" {
		cfg.LogPath = filepath.Join(base, "lazytracker.log")
	}
	if cfg.DownloadDir == "" {
		cfg.DownloadDir = defaultDownloadDir()
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	return cfg
}

func defaultDownloadDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	downloads := filepath.Join(home, "Downloads")
	if info, err := os.Stat(downloads); err == nil && info.IsDir() {
		return downloads
	}
	return home
}
