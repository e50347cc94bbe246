package storage

import (
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/rohankatakam/gitclock/internal/config"
	"github.com/rohankatakam/gitclock/internal/errors"
)

// Open creates the store selected by cfg.Type
func Open(cfg config.StorageConfig, logger *logrus.Logger) (Store, error) {
	var (
		store Store
		err   error
	)

	if cfg.LocalPath == "" {
		cfg.LocalPath = config.DefaultLocalPath(cfg.Type)
	}

	switch strings.ToLower(cfg.Type) {
	case "", "sqlite":
		store, err = NewSQLiteStore(cfg.LocalPath, logger)
	case "bolt":
		store, err = NewBoltStore(cfg.LocalPath, logger)
	case "postgres":
		if cfg.PostgresDSN == "" {
			return nil, errors.ConfigErrorf("storage type postgres requires storage.postgres_dsn")
		}
		store, err = NewPostgresStore(cfg.PostgresDSN, logger)
	default:
		return nil, errors.ConfigErrorf("unknown storage type '%s'", cfg.Type)
	}

	if err != nil {
		return nil, errors.StorageErrorf(err, "could not open %s store", cfg.Type)
	}
	return store, nil
}
