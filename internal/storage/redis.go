package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/thornsfall/lore-engine/pkg/state"
)

// RedisStorage keeps save slots in Redis under save:slot:N keys. Useful when
// the game runs somewhere without a durable local filesystem.
type RedisStorage struct {
	client   *redis.Client
	numSlots int
	logger   *slog.Logger
}

var _ Storage = (*RedisStorage)(nil)

// NewRedisStorage connects to Redis using a redis:// URL.
func NewRedisStorage(redisURL string, numSlots int, logger *slog.Logger) (*RedisStorage, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}
	return &RedisStorage{
		client:   redis.NewClient(opts),
		numSlots: numSlots,
		logger:   logger,
	}, nil
}

func slotKey(slot int) string {
	return fmt.Sprintf("save:slot:%d", slot)
}

func (r *RedisStorage) SaveSlot(ctx context.Context, slot int, st *state.StoryState) error {
	if err := validateSlot(slot, r.numSlots); err != nil {
		return err
	}

	data, err := encodeContainer(st)
	if err != nil {
		r.logger.Error("Failed to encode save", "slot", slot, "error", err)
		return err
	}

	if err := r.client.Set(ctx, slotKey(slot), string(data), 0).Err(); err != nil {
		r.logger.Error("Failed to save slot", "slot", slot, "error", err)
		return fmt.Errorf("failed to save slot: %w", err)
	}
	return nil
}

func (r *RedisStorage) LoadSlot(ctx context.Context, slot int) (*state.StoryState, error) {
	if err := validateSlot(slot, r.numSlots); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, slotKey(slot)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, fmt.Errorf("%w: %d", ErrSlotNotFound, slot)
		}
		r.logger.Error("Failed to load slot", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to load slot: %w", err)
	}

	st, _, err := decodeContainer([]byte(data))
	if err != nil {
		r.logger.Error("Failed to decode save", "slot", slot, "error", err)
		return nil, err
	}
	return st, nil
}

func (r *RedisStorage) ListSlots(ctx context.Context) ([]SlotInfo, error) {
	var slots []SlotInfo
	for slot := 1; slot <= r.numSlots; slot++ {
		data, err := r.client.Get(ctx, slotKey(slot)).Result()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			r.logger.Error("Failed to read slot", "slot", slot, "error", err)
			return nil, fmt.Errorf("failed to list slots: %w", err)
		}
		st, container, err := decodeContainer([]byte(data))
		if err != nil {
			r.logger.Warn("Skipping malformed save", "slot", slot, "error", err)
			continue
		}
		slots = append(slots, SlotInfo{
			Slot:    slot,
			SavedAt: time.Unix(container.Timestamp, 0),
			Name:    st.Name,
			Chapter: st.Chapter,
		})
	}
	return slots, nil
}

func (r *RedisStorage) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}
	return nil
}

func (r *RedisStorage) Close() error {
	if err := r.client.Close(); err != nil {
		r.logger.Error("Failed to close Redis connection", "error", err)
		return err
	}
	return nil
}
