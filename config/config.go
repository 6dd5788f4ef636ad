package config

import (
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Config of the solsta command
type Config struct {
	DataDir   string `yaml:"data_dir"`
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"` // text or json
	History   bool   `yaml:"history"`    // record executions in the data dir
}

// GetDataDir is used to fetch the configured data dir
func GetDataDir() string {
	b := os.Getenv("SOLSTA_DATA_DIR")
	if b == "" {
		b = filepath.Join(os.TempDir(), "solsta")
	}
	return b
}

// Default configuration, from the environment
func Default() *Config {
	level := os.Getenv("SOLSTA_LOG_LEVEL")
	if level == "" {
		level = "info"
	}
	return &Config{
		DataDir:   GetDataDir(),
		LogLevel:  level,
		LogFormat: "text",
		History:   true,
	}
}

// Load reads a YAML file over the default configuration. An empty path is
// the default configuration.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	err = yaml.Unmarshal(raw, cfg)
	if err != nil {
		return nil, err
	}
	cfg.DataDir = strings.TrimRight(cfg.DataDir, "/")
	return cfg, nil
}

// StorePath is the bbolt file of the history
func (c *Config) StorePath() string {
	return filepath.Join(c.DataDir, "store", "solsta.store")
}

// EnsureDirs creates needed directories
func (c *Config) EnsureDirs() error {
	for _, sub := range [1]string{"store"} {
		err := os.MkdirAll(filepath.Join(c.DataDir, sub), 0755)
		if err != nil {
			return err
		}
	}
	return nil
}

// Logger configures a logrus logger
func (c *Config) Logger() (*log.Logger, error) {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	logger := log.New()
	logger.SetLevel(level)
	switch c.LogFormat {
	case "json":
		logger.SetFormatter(&log.JSONFormatter{})
	default:
		logger.SetFormatter(&log.TextFormatter{
			DisableColors: true,
			FullTimestamp: true,
		})
	}
	return logger, nil
}
