package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Storage backends
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeFile     = "file"
)

// DefaultSQLitePath is used when DATABASE_URL is unset for sqlite
const DefaultSQLitePath = "questbridge.sqlite"

type Config struct {
	Port         int    `env:"PORT" envDefault:"5000"`
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseType string `env:"DATABASE_TYPE" envDefault:"sqlite"`
	DataDir      string `env:"DATA_DIR" envDefault:"/tmp/questbridge"`
	LogLevel     string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"LOG_FORMAT" envDefault:"text"`
}

// ParseFlags loads .env, reads the environment, then applies CLI flags on top
func ParseFlags(args []string) (Config, error) {
	var port int
	var dbURL, dbType, dataDir, envFile string

	fs := flag.NewFlagSet("questbridge", flag.ContinueOnError)

	fs.IntVar(&port, "p", 0, "Server port")
	fs.StringVar(&dbURL, "d", "", "Database URL (sqlite path or postgres DSN)")
	fs.StringVar(&dbType, "t", "", "Storage type (sqlite, postgres or file)")
	fs.StringVar(&dataDir, "data-dir", "", "Directory for the file storage type")
	fs.StringVar(&envFile, "env-file", ".env", "Dotenv file to load if present")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// Existing environment variables win over the dotenv file
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", envFile, err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("invalid environment: %w", err)
	}

	// CLI overrides env
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "p":
			cfg.Port = port
		case "d":
			cfg.DatabaseURL = dbURL
		case "t":
			cfg.DatabaseType = dbType
		case "data-dir":
			cfg.DataDir = dataDir
		}
	})

	if cfg.Port <= 0 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("invalid port %d", cfg.Port)
	}

	switch cfg.DatabaseType {
	case TypeSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = DefaultSQLitePath
		}
	case TypePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	case TypeFile:
		if cfg.DataDir == "" {
			return Config{}, errors.New("data directory required for file storage (use -data-dir or DATA_DIR env)")
		}
	default:
		return Config{}, fmt.Errorf("unknown database type %q (want sqlite, postgres or file)", cfg.DatabaseType)
	}

	return cfg, nil
}
