// Package redis publishes room events to Redis pub/sub so processes
// outside this one can follow rooms.
package redis

import (
	"context"
	"encoding/json"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/mcoot/truthdare-go/internal/api/response"
	"github.com/mcoot/truthdare-go/internal/dependencies/clock"
	"github.com/mcoot/truthdare-go/internal/model"
	"github.com/mcoot/truthdare-go/internal/services/session"
)

// EventRoomClosed is published when a room is torn down
const EventRoomClosed = "ROOM_CLOSED"

// Publisher is a Redis-backed room broadcaster
type Publisher struct {
	client *redis.Client
	cfg    Config
	clock  clock.Clock
	logger *slog.Logger
}

var _ session.Broadcaster = (*Publisher)(nil)

// New connects to Redis and creates a Publisher
func New(cfg Config, clock clock.Clock, logger *slog.Logger) (*Publisher, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, err
	}

	return NewWithClient(client, cfg, clock, logger), nil
}

// NewWithClient creates a Publisher with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config, clock clock.Clock, logger *slog.Logger) *Publisher {
	return &Publisher{
		client: client,
		cfg:    cfg,
		clock:  clock,
		logger: logger.With(slog.String("component", "redis-publisher")),
	}
}

// Close closes the Redis connection
func (p *Publisher) Close() error {
	return p.client.Close()
}

// BroadcastEvent publishes a typed room event on the room's channel
func (p *Publisher) BroadcastEvent(ctx context.Context, code model.RoomCode, event model.Event) {
	envelope := response.EventFromModel(event)
	data, ok := p.encode(code, envelope)
	if !ok {
		return
	}

	ctx, cancel := p.timeout(ctx)
	defer cancel()
	if err := p.client.Publish(ctx, roomChannel(p.cfg.KeyPrefix, code), data).Err(); err != nil {
		p.logFailure(code, envelope.EventType, err)
	}
}

// BroadcastState publishes a ROOM_STATE snapshot and stores it as the
// room's last known state. A snapshot no newer than the stored one, or
// one for a closed room, is neither stored nor published.
func (p *Publisher) BroadcastState(ctx context.Context, snapshot model.RoomSnapshot) {
	envelope := response.StateEvent(snapshot, p.clock.Now().UnixMilli())
	data, ok := p.encode(snapshot.Code, envelope)
	if !ok {
		return
	}

	ctx, cancel := p.timeout(ctx)
	defer cancel()
	stored, err := storeState.Run(ctx, p.client,
		p.keys(snapshot.Code),
		string(snapshot.ID),
		snapshot.CreatedAt.UnixMilli(),
		strconv.FormatUint(snapshot.Version, 10),
		data,
		p.cfg.StateTTL.Milliseconds(),
	).Int()
	if err != nil {
		p.logFailure(snapshot.Code, envelope.EventType, err)
		return
	}
	if stored == 0 {
		p.logger.Debug("redis state write refused",
			slog.String("room_code", string(snapshot.Code)),
			slog.Uint64("version", snapshot.Version))
	}
}

// RoomClosed publishes a ROOM_CLOSED signal and replaces the stored state
// with a closed marker
func (p *Publisher) RoomClosed(ctx context.Context, snapshot model.RoomSnapshot) {
	envelope := response.Event{EventType: EventRoomClosed, Timestamp: p.clock.Now().UnixMilli()}
	data, ok := p.encode(snapshot.Code, envelope)
	if !ok {
		return
	}

	ctx, cancel := p.timeout(ctx)
	defer cancel()
	err := markClosed.Run(ctx, p.client,
		p.keys(snapshot.Code),
		string(snapshot.ID),
		snapshot.CreatedAt.UnixMilli(),
		data,
		p.cfg.ClosedTTL.Milliseconds(),
	).Err()
	if err != nil {
		p.logFailure(snapshot.Code, EventRoomClosed, err)
	}
}

// LastState returns the raw ROOM_STATE envelope last published for a
// room. A closed room has none.
func (p *Publisher) LastState(ctx context.Context, code model.RoomCode) ([]byte, bool, error) {
	vals, err := p.client.HMGet(ctx, stateKey(p.cfg.KeyPrefix, code), "data", "closed").Result()
	if err != nil {
		return nil, false, err
	}
	data, ok := vals[0].(string)
	if !ok || vals[1] != nil {
		return nil, false, nil
	}
	return []byte(data), true, nil
}

// Subscribe follows a room's channel
func (p *Publisher) Subscribe(ctx context.Context, code model.RoomCode) *redis.PubSub {
	return p.client.Subscribe(ctx, roomChannel(p.cfg.KeyPrefix, code))
}

func (p *Publisher) keys(code model.RoomCode) []string {
	return []string{stateKey(p.cfg.KeyPrefix, code), roomChannel(p.cfg.KeyPrefix, code)}
}

// timeout detaches from the caller's cancellation so a finished request
// does not abort the publish
func (p *Publisher) timeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), p.cfg.PublishTimeout)
}

func (p *Publisher) encode(code model.RoomCode, envelope response.Event) ([]byte, bool) {
	data, err := json.Marshal(envelope)
	if err != nil {
		p.logger.Error("redis failed to encode event",
			slog.String("room_code", string(code)),
			slog.String("event_type", envelope.EventType),
			slog.Any("error", err))
		return nil, false
	}
	return data, true
}

func (p *Publisher) logFailure(code model.RoomCode, eventType string, err error) {
	p.logger.Warn("redis publish failed",
		slog.String("room_code", string(code)),
		slog.String("event_type", eventType),
		slog.Any("error", err))
}
