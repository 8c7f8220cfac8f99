package storage

import (
	"fmt"
	"strings"

	"github.com/julianstephens/daybook/internal/storage/jsonfile"
	"github.com/julianstephens/daybook/internal/storage/memory"
	"github.com/julianstephens/daybook/internal/storage/postgres"
	"github.com/julianstephens/daybook/internal/storage/redis"
	"github.com/julianstephens/daybook/internal/storage/sqlite"
)

// Kind names the medium a locator resolves to.
type Kind string

const (
	KindSQLite   Kind = "sqlite"
	KindJSON     Kind = "json"
	KindPostgres Kind = "postgres"
	KindRedis    Kind = "redis"
	KindMemory   Kind = "memory"
)

// Options carries the settings needed to open any medium.
type Options struct {
	Locator       string
	RedisPassword string
	RedisDB       int
	RedisPrefix   string
}

// KindOf classifies a store locator.
func KindOf(locator string) Kind {
	switch {
	case strings.HasPrefix(locator, "memory:"):
		return KindMemory
	case postgres.IsURL(locator):
		return KindPostgres
	case strings.HasPrefix(locator, "redis://"), strings.HasPrefix(locator, "rediss://"):
		return KindRedis
	case strings.HasSuffix(strings.ToLower(locator), ".json"):
		return KindJSON
	default:
		return KindSQLite
	}
}

// Open constructs the medium for opts.Locator. The medium is not yet
// initialized or loaded.
func Open(opts Options) (Medium, error) {
	switch KindOf(opts.Locator) {
	case KindMemory:
		return memory.New(), nil
	case KindPostgres:
		return postgres.New(opts.Locator), nil
	case KindRedis:
		s, err := redis.Open(redis.Config{
			URL:      opts.Locator,
			Password: opts.RedisPassword,
			DB:       opts.RedisDB,
			Prefix:   opts.RedisPrefix,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to open redis store: %w", err)
		}
		return s, nil
	case KindJSON:
		return jsonfile.New(opts.Locator), nil
	default:
		return sqlite.New(opts.Locator), nil
	}
}
