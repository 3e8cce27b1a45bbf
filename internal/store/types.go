package store

import (
	"context"
	"strings"
)

type DatabaseType string

const (
	DBTypePostgres DatabaseType = "postgres"
	DBTypeSQLite   DatabaseType = "sqlite"
	DBTypeRedis    DatabaseType = "redis"
	DBTypeBolt     DatabaseType = "bolt"
	DBTypeMemory   DatabaseType = "memory"
)

// DetectType picks a backend from the DSN scheme. Anything unrecognised is a sqlite path.
func DetectType(dsn string) DatabaseType {
	switch {
	case strings.HasPrefix(dsn, "postgres"):
		return DBTypePostgres
	case strings.HasPrefix(dsn, "redis://"), strings.HasPrefix(dsn, "rediss://"):
		return DBTypeRedis
	case strings.HasPrefix(dsn, "bolt://"):
		return DBTypeBolt
	case strings.HasPrefix(dsn, "memory://"):
		return DBTypeMemory
	default:
		return DBTypeSQLite
	}
}

type prefixed struct {
	kv     KV
	prefix string
}

// WithPrefix scopes every key under prefix. Closing the scoped view leaves the parent open.
func WithPrefix(kv KV, prefix string) KV {
	return &prefixed{kv: kv, prefix: prefix}
}

func (p *prefixed) Get(ctx context.Context, key string) (string, bool, error) {
	return p.kv.Get(ctx, p.prefix+key)
}

func (p *prefixed) Set(ctx context.Context, key, value string) error {
	return p.kv.Set(ctx, p.prefix+key, value)
}

func (p *prefixed) Close() error {
	return nil
}
