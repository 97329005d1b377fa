// Package cache реализует JSON-кеш поверх Redis для списков, которые читаются
// чаще, чем меняются: тарифные планы и расписание занятий.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/magabrotheeeer/gym-manager/internal/config"
)

// Пространства имён кеша. Значения хранятся под ключом текущего поколения,
// см. VersionedKey.
const (
	KeyPlans   = "gym:plans:all"
	KeyClasses = "gym:classes:all"
)

func generationKey(ns string) string {
	return ns + ":gen"
}

func versioned(ns string, gen int64) string {
	return fmt.Sprintf("%s:v%d", ns, gen)
}

// Cache хранит значения в Redis в виде JSON.
type Cache struct {
	Db *redis.Client
}

// InitServer подключается к Redis и проверяет соединение.
func InitServer(ctx context.Context, cfg config.RedisConnection) (*Cache, error) {
	const op = "cache.InitServer"
	db := redis.NewClient(&redis.Options{
		Addr:         cfg.AddressRedis,
		Password:     cfg.Password,
		DB:           cfg.DB,
		Username:     cfg.User,
		MaxRetries:   cfg.MaxRetries,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.TimeoutRedis,
		WriteTimeout: cfg.TimeoutRedis,
	})

	if err := db.Ping(ctx).Err(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &Cache{Db: db}, nil
}

// Get читает значение по ключу в result. Возвращает false, если ключа нет.
func (c *Cache) Get(ctx context.Context, key string, result any) (bool, error) {
	const op = "cache.Get"
	val, err := c.Db.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if err = json.Unmarshal(val, result); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Set сохраняет значение с временем жизни expiration.
func (c *Cache) Set(ctx context.Context, key string, value any, expiration time.Duration) error {
	const op = "cache.Set"
	jsonData, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err = c.Db.Set(ctx, key, jsonData, expiration).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// VersionedKey возвращает ключ текущего поколения пространства имён ns.
// Значение, прочитанное из хранилища до Invalidate, записывается под ключом
// старого поколения и уже никем не читается.
func (c *Cache) VersionedKey(ctx context.Context, ns string) (string, error) {
	const op = "cache.VersionedKey"
	gen, err := c.Db.Get(ctx, generationKey(ns)).Int64()
	if errors.Is(err, redis.Nil) {
		return versioned(ns, 0), nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return versioned(ns, gen), nil
}

// Invalidate переводит пространства имён на новое поколение.
// Значения старых поколений истекают по своему TTL.
func (c *Cache) Invalidate(ctx context.Context, namespaces ...string) error {
	const op = "cache.Invalidate"
	if len(namespaces) == 0 {
		return nil
	}
	_, err := c.Db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, ns := range namespaces {
			pipe.Incr(ctx, generationKey(ns))
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close закрывает соединение с Redis.
func (c *Cache) Close() error {
	return c.Db.Close()
}

// Noop кеш-заглушка для запуска без Redis: всегда промах.
type Noop struct{}

// Get всегда сообщает о промахе.
func (Noop) Get(context.Context, string, any) (bool, error) { return false, nil }

// Set ничего не делает.
func (Noop) Set(context.Context, string, any, time.Duration) error { return nil }

// VersionedKey возвращает ns без поколения.
func (Noop) VersionedKey(_ context.Context, ns string) (string, error) { return ns, nil }

// Invalidate ничего не делает.
func (Noop) Invalidate(context.Context, ...string) error { return nil }
