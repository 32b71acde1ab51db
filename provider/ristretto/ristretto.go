// Package ristretto keeps snapshot blobs in an in-process, cost-bounded
// dgraph-io/ristretto cache. Cost is the blob length in bytes, so MaxCost is
// a memory budget.
package ristretto

import (
	"context"
	"errors"
	"time"

	rc "github.com/dgraph-io/ristretto"

	pr "github.com/unkn0wn-root/typedjson/provider"
)

var ErrInvalidConfig = errors.New("ristretto provider: invalid config")

type Provider struct {
	c *rc.Cache
}

var _ pr.Provider = (*Provider)(nil)

type Config struct {
	NumCounters int64 // ~10x the expected number of snapshots
	MaxCost     int64 // total bytes held
	BufferItems int64 // 64 is the ristretto recommendation
	Metrics     bool
}

func New(cfg Config) (*Provider, error) {
	if cfg.NumCounters <= 0 || cfg.MaxCost <= 0 || cfg.BufferItems <= 0 {
		return nil, ErrInvalidConfig
	}
	c, err := rc.NewCache(&rc.Config{
		NumCounters: cfg.NumCounters,
		MaxCost:     cfg.MaxCost,
		BufferItems: cfg.BufferItems,
		Metrics:     cfg.Metrics,
	})
	if err != nil {
		return nil, err
	}
	return &Provider{c: c}, nil
}

func (p *Provider) Get(_ context.Context, key string) ([]byte, bool, error) {
	v, ok := p.c.Get(key)
	if !ok {
		return nil, false, nil
	}
	b, _ := v.([]byte)
	if b == nil {
		p.c.Del(key)
		return nil, false, nil
	}
	return b, true, nil
}

// Set admits value and waits for the write buffers to drain, so a Load right
// after a Save observes it. ok=false means the admission policy dropped it.
func (p *Provider) Set(_ context.Context, key string, value []byte, cost int64, ttl time.Duration) (bool, error) {
	if cost <= 0 {
		cost = int64(len(value))
	}
	if ttl < 0 {
		ttl = 0
	}
	if !p.c.SetWithTTL(key, value, cost, ttl) {
		return false, nil
	}
	p.c.Wait()
	_, ok := p.c.Get(key)
	return ok, nil
}

func (p *Provider) Del(_ context.Context, key string) error {
	p.c.Del(key)
	return nil
}

func (p *Provider) Close(_ context.Context) error {
	p.c.Wait()
	p.c.Close()
	return nil
}

// Metrics exposes ristretto counters when Config.Metrics is set.
func (p *Provider) Metrics() *rc.Metrics { return p.c.Metrics }
