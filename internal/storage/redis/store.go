// Package redis stores each slot as a plain string key in Redis.
package redis

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	apperrors "github.com/julianstephens/daybook/internal/errors"
)

const (
	DefaultPrefix = "daybook:"

	opTimeout  = 5 * time.Second
	markerKey  = "meta:initialized"
	slotPrefix = "slot:"
)

// Config mirrors the connection settings accepted from the environment.
type Config struct {
	URL      string
	Password string
	DB       int
	Prefix   string
}

type Store struct {
	client *goredis.Client
	prefix string
	addr   string
}

// New wraps an existing client; prefix namespaces every key.
func New(client *goredis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix, addr: client.Options().Addr}
}

// Open dials Redis from a redis:// URL. An explicit password or DB in cfg
// overrides whatever the URL carries.
func Open(cfg Config) (*Store, error) {
	opts, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	if cfg.Password != "" {
		opts.Password = cfg.Password
	}
	if cfg.DB != 0 {
		opts.DB = cfg.DB
	}
	return New(goredis.NewClient(opts), cfg.Prefix), nil
}

func (s *Store) ctx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), opTimeout)
}

func (s *Store) slotKey(key string) string {
	return s.prefix + slotPrefix + key
}

func (s *Store) Init() error {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if err := s.client.Set(ctx, s.prefix+markerKey, time.Now().UTC().Format(time.RFC3339), 0).Err(); err != nil {
		return fmt.Errorf("failed to initialize redis store: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	ctx, cancel := s.ctx()
	defer cancel()

	n, err := s.client.Exists(ctx, s.prefix+markerKey).Result()
	if err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	if n == 0 {
		return apperrors.ErrNotInitialized
	}
	return nil
}

func (s *Store) Close() error {
	return s.client.Close()
}

func (s *Store) Get(key string) (string, bool, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	value, err := s.client.Get(ctx, s.slotKey(key)).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get slot %s: %w", key, err)
	}
	return value, true, nil
}

func (s *Store) Set(key, value string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Set(ctx, s.slotKey(key), value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set slot %s: %w", key, err)
	}
	return nil
}

func (s *Store) Delete(key string) error {
	ctx, cancel := s.ctx()
	defer cancel()

	if err := s.client.Del(ctx, s.slotKey(key)).Err(); err != nil {
		return fmt.Errorf("failed to delete slot %s: %w", key, err)
	}
	return nil
}

// Keys walks the keyspace with SCAN rather than KEYS so a shared server is
// never blocked.
func (s *Store) Keys() ([]string, error) {
	ctx, cancel := s.ctx()
	defer cancel()

	var keys []string
	iter := s.client.Scan(ctx, 0, s.prefix+slotPrefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, strings.TrimPrefix(iter.Val(), s.prefix+slotPrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	sort.Strings(keys)
	return keys, nil
}

func (s *Store) GetConfigPath() string {
	return "redis://" + s.addr + "/" + strings.TrimSuffix(s.prefix, ":")
}
