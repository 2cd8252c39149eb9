package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var (
	errMissingBaseURL  = errors.New("api base url is required")
	errUnknownBackend  = errors.New("unknown storage backend")
	errMissingRedisURL = errors.New("redis storage requires a redis url")
)

func (c *Config) loadFile(path string) error {
	filename, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	yamlFile, err := os.ReadFile(filename)
	if err != nil {
		return err
	}

	if err := yaml.Unmarshal(yamlFile, c); err != nil {
		return errors.Wrapf(err, "failed to parse %s", filename)
	}

	return nil
}

func (c *Config) loadEnv() error {
	if v, ok := os.LookupEnv("TOURPAL_PORT"); ok {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.Wrap(err, "failed to parse TOURPAL_PORT")
		}
		c.Server.Port = port
	}

	if v, ok := os.LookupEnv("TOURPAL_API_BASE_URL"); ok {
		c.API.BaseURL = v
	}

	if v, ok := os.LookupEnv("TOURPAL_API_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return errors.Wrap(err, "failed to parse TOURPAL_API_TIMEOUT")
		}
		c.API.Timeout = d
	}

	if v, ok := os.LookupEnv("TOURPAL_STORAGE"); ok {
		c.Storage.Backend = StorageBackend(v)
	}

	if v, ok := os.LookupEnv("TOURPAL_STORAGE_PATH"); ok {
		c.Storage.Path = v
	}

	if v, ok := os.LookupEnv("TOURPAL_REDIS_URL"); ok {
		c.Storage.RedisURL = v
	}

	return nil
}

func (c *Config) validate() error {
	if c.API.BaseURL == "" {
		return errMissingBaseURL
	}
	if _, err := url.Parse(c.API.BaseURL); err != nil {
		return errors.Wrap(err, "invalid api base url")
	}

	switch c.Storage.Backend {
	case StorageJSON, StorageMemory:
	case StorageRedis:
		if c.Storage.RedisURL == "" {
			return errMissingRedisURL
		}
	default:
		return errors.Wrapf(errUnknownBackend, "%q", c.Storage.Backend)
	}

	return nil
}
