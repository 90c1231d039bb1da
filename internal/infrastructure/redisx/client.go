package redisx

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/lucasvrs/baixa-estoque-api/pkg/config"
)

// Client encapsula as operações Redis que o motor usa: contador com TTL para
// o cooldown de alertas e lock SETNX para a varredura periódica.
type Client struct {
	raw *redis.Client
}

// New conecta e verifica o Redis.
func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("redis url ou address é obrigatório")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Client{raw: raw}, nil
}

// Close encerra a conexão.
func (c *Client) Close() error { return c.raw.Close() }

// IncrWithTTL incrementa e garante o TTL da chave no primeiro incremento.
// Contagem 1 significa "primeira ocorrência dentro da janela".
func (c *Client) IncrWithTTL(ctx context.Context, chave string, ttl time.Duration) (int64, error) {
	count, err := c.raw.Incr(ctx, chave).Result()
	if err != nil {
		return 0, err
	}
	if ttl > 0 && count == 1 {
		if err := c.raw.Expire(ctx, chave, ttl).Err(); err != nil {
			return count, err
		}
	}
	return count, nil
}

// AdquirirLock tenta SETNX com TTL; true quando este processo virou o dono.
func (c *Client) AdquirirLock(ctx context.Context, chave, dono string, ttl time.Duration) (bool, error) {
	ok, err := c.raw.SetNX(ctx, chave, dono, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("setnx: %w", err)
	}
	return ok, nil
}

// LiberarLock remove o lock somente se ainda pertence ao dono informado.
func (c *Client) LiberarLock(ctx context.Context, chave, dono string) error {
	atual, err := c.raw.Get(ctx, chave).Result()
	if errors.Is(err, redis.Nil) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("get lock: %w", err)
	}
	if atual != dono {
		return nil
	}
	if err := c.raw.Del(ctx, chave).Err(); err != nil {
		return fmt.Errorf("del lock: %w", err)
	}
	return nil
}
