package app

import (
	"fmt"
	"strings"

	"github.com/shrimpsizemoose/trekker/logger"

	"github.com/shrimpsizemoose/eduspace/internal/store"
	"github.com/shrimpsizemoose/eduspace/internal/store/bolt"
	"github.com/shrimpsizemoose/eduspace/internal/store/postgres"
	"github.com/shrimpsizemoose/eduspace/internal/store/rediskv"
	"github.com/shrimpsizemoose/eduspace/internal/store/sqlite"
)

func NewStore(dsn, migrationsDir string) (store.KV, error) {
	dbType := store.DetectType(dsn)
	logger.Debug.Printf("Opening %s store", dbType)

	switch dbType {
	case store.DBTypePostgres:
		return postgres.NewPostgresStore(dsn, migrationsDir)
	case store.DBTypeSQLite:
		return sqlite.NewSQLiteStore(dsn, migrationsDir)
	case store.DBTypeRedis:
		return rediskv.NewRedisStore(dsn)
	case store.DBTypeBolt:
		return bolt.NewBoltStore(strings.TrimPrefix(dsn, "bolt://"))
	case store.DBTypeMemory:
		return store.NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unable to determine database type from DSN: %s", dsn)
	}
}
