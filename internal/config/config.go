package config

import (
	"os"
	"path/filepath"
	"time"
)

const (
	defaultConfigPath = "./config/config.yaml"
	defaultBaseURL    = "https://e3lanootopia.com"
)

type Config struct {
	Server  Server  `yaml:"server"`
	API     API     `yaml:"api"`
	Storage Storage `yaml:"storage"`
}

type Server struct {
	Port int `yaml:"port"`
	// FlashLifetime bounds the cookie session holding flash messages.
	FlashLifetime time.Duration `yaml:"flashLifetime"`
}

type API struct {
	BaseURL string `yaml:"baseURL"`
	// Timeout applies per request; zero disables it.
	Timeout time.Duration `yaml:"timeout"`
}

type StorageBackend string

const (
	StorageJSON   StorageBackend = "json"
	StorageMemory StorageBackend = "memory"
	StorageRedis  StorageBackend = "redis"
)

type Storage struct {
	Backend  StorageBackend `yaml:"backend"`
	Path     string         `yaml:"path"`
	RedisURL string         `yaml:"redisURL"`
	Prefix   string         `yaml:"prefix"`
}

// New builds the config from defaults, then the yaml file named by
// TOURPAL_CONFIG (or ./config/config.yaml when present), then the
// environment.
func New() (*Config, error) {
	c := defaults()

	path := os.Getenv("TOURPAL_CONFIG")
	explicit := path != ""
	if !explicit {
		path = defaultConfigPath
	}

	err := c.loadFile(path)
	if err != nil && (explicit || !os.IsNotExist(err)) {
		return nil, err
	}

	if err := c.loadEnv(); err != nil {
		return nil, err
	}

	if err := c.validate(); err != nil {
		return nil, err
	}

	return c, nil
}

func defaults() *Config {
	return &Config{
		Server: Server{
			Port:          8123,
			FlashLifetime: time.Minute * 10,
		},
		API: API{
			BaseURL: defaultBaseURL,
			Timeout: time.Second * 30,
		},
		Storage: Storage{
			Backend: StorageJSON,
			Path:    defaultStoragePath(),
			Prefix:  "tourpal",
		},
	}
}

func defaultStoragePath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "tourpal-session.json"
	}
	return filepath.Join(dir, "tourpal", "session.json")
}
