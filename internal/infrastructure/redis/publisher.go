package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/config"
	"github.com/redis/go-redis/v9"
)

var _ inventory.EventPublisher = (*Publisher)(nil)

type publishCmdable interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

// Publisher publica StockChangedEvent como JSON en un canal Redis (pub/sub).
type Publisher struct {
	client  publishCmdable
	raw     *redis.Client
	channel string
}

// NewPublisher conecta a Redis y verifica conectividad.
func NewPublisher(ctx context.Context, cfg config.RedisConfig) (*Publisher, error) {
	if cfg.URL == "" {
		return nil, errors.New("redis url es requerida")
	}
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	p := newPublisher(raw, cfg.Channel)
	p.raw = raw
	return p, nil
}

func newPublisher(client publishCmdable, channel string) *Publisher {
	if channel == "" {
		channel = "stock.changed"
	}
	return &Publisher{client: client, channel: channel}
}

// PublishStockChanged implementa inventory.EventPublisher.
func (p *Publisher) PublishStockChanged(ctx context.Context, evt inventory.StockChangedEvent) error {
	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal stock event: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", p.channel, err)
	}
	return nil
}

// Close cierra la conexión si la abrió NewPublisher.
func (p *Publisher) Close() error {
	if p.raw == nil {
		return nil
	}
	return p.raw.Close()
}
