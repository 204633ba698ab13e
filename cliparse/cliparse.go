package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Store type names accepted by -store / STORE_TYPE.
const (
	StoreMemory   = "memory"
	StoreBolt     = "bolt"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

type Config struct {
	Port        int
	StoreType   string
	StorePath   string
	DatabaseURL string
}

// fileConfig is the optional YAML config file shape.
type fileConfig struct {
	Port        int    `yaml:"port"`
	StoreType   string `yaml:"store"`
	StorePath   string `yaml:"path"`
	DatabaseURL string `yaml:"database_url"`
}

// ParseFlags resolves configuration with precedence
// flags > env > config file > defaults.
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var configFile string

	fs := flag.NewFlagSet("straw-poll", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "store", "", "Store type (memory, bolt, sqlite or postgres)")
	fs.StringVar(&cfg.StorePath, "path", "", "Store file path (bolt and sqlite)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL (postgres)")
	fs.StringVar(&configFile, "c", "", "YAML config file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		}
	}
	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
	}
	if cfg.StorePath == "" {
		cfg.StorePath = os.Getenv("STORE_PATH")
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if configFile == "" {
		configFile = os.Getenv("CONFIG_FILE")
	}

	// Fill remaining gaps from the config file, then defaults
	if configFile != "" {
		if err := applyFile(&cfg, configFile); err != nil {
			return Config{}, err
		}
	}

	if cfg.Port == 0 {
		cfg.Port = 3318 // default
	}
	if cfg.StoreType == "" {
		cfg.StoreType = StoreSQLite
	}
	if cfg.StorePath == "" {
		if cfg.StoreType == StoreBolt {
			cfg.StorePath = "straw-poll.bolt"
		} else {
			cfg.StorePath = "straw-poll.db"
		}
	}

	switch cfg.StoreType {
	case StoreMemory, StoreBolt, StoreSQLite:
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown store type %q (memory, bolt, sqlite or postgres)", cfg.StoreType)
	}

	return cfg, nil
}

// applyFile fills fields still unset after flags and env from a YAML
// config file.
func applyFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if cfg.Port == 0 {
		cfg.Port = fc.Port
	}
	if cfg.StoreType == "" {
		cfg.StoreType = fc.StoreType
	}
	if cfg.StorePath == "" {
		cfg.StorePath = fc.StorePath
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fc.DatabaseURL
	}
	return nil
}
