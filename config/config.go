package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

const (
	BackendJSON     = "json"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"

	AdapterPGX  = "pgx"
	AdapterSQL  = "sql"
	AdapterSQLX = "sqlx"

	appDirName     = "babytracker"
	dataFileName   = "data.json"
	sqliteFileName = "babytracker.db"
)

var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the settings read from BABYTRACKER_* environment variables.
type Config struct {
	Backend         string     `env:"BABYTRACKER_BACKEND"          envDefault:"json" validate:"oneof=json sqlite postgres"`
	DataFile        string     `env:"BABYTRACKER_DATA_FILE"`
	SQLitePath      string     `env:"BABYTRACKER_SQLITE_PATH"`
	PostgresDSN     string     `env:"BABYTRACKER_POSTGRES_DSN"                       validate:"required_if=Backend postgres"`
	PostgresAdapter string     `env:"BABYTRACKER_POSTGRES_ADAPTER" envDefault:"pgx"  validate:"oneof=pgx sql sqlx"`
	SQLiteAdapter   string     `env:"BABYTRACKER_SQLITE_ADAPTER"   envDefault:"sql"  validate:"oneof=sql sqlx"`
	LogLevel        slog.Level `env:"BABYTRACKER_LOG_LEVEL"        envDefault:"WARN"`
}

// Load parses and validates the process environment.
func Load() (Config, error) {
	return load(env.Options{})
}

// LoadFrom parses and validates the given variables instead of the process environment.
func LoadFrom(environment map[string]string) (Config, error) {
	return load(env.Options{Environment: environment})
}

func load(opts env.Options) (Config, error) {
	var cfg Config

	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.Struct(cfg); err != nil {
		return Config{}, errors.Join(ErrInvalidConfig, err)
	}

	return cfg, nil
}

// DataFilePath returns BABYTRACKER_DATA_FILE, or data.json in the user's config directory.
func (c Config) DataFilePath() (string, error) {
	return c.pathOrDefault(c.DataFile, dataFileName)
}

// SQLiteFilePath returns BABYTRACKER_SQLITE_PATH, or babytracker.db in the user's config directory.
func (c Config) SQLiteFilePath() (string, error) {
	return c.pathOrDefault(c.SQLitePath, sqliteFileName)
}

func (c Config) pathOrDefault(path string, fileName string) (string, error) {
	if path != "" {
		return filepath.Clean(path), nil
	}

	dir, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Join(ErrInvalidConfig, err)
	}

	return filepath.Join(dir, appDirName, fileName), nil
}
