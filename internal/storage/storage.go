package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/thornsfall/lore-engine/pkg/state"
)

const saveVersion = 1

var (
	// ErrInvalidSlot is returned for slot numbers outside the configured
	// range, before any I/O is attempted.
	ErrInvalidSlot = errors.New("slot number out of range")

	// ErrSlotNotFound is returned when loading a slot that holds no save.
	ErrSlotNotFound = errors.New("no save found in slot")
)

// SaveContainer wraps a serialized state record with version and timestamp
// metadata. The payload stays human-readable JSON.
type SaveContainer struct {
	Version   int             `json:"version"`
	Timestamp int64           `json:"timestamp"`
	State     json.RawMessage `json:"state"`
}

// SlotInfo describes one occupied save slot.
type SlotInfo struct {
	Slot    int       `json:"slot"`
	SavedAt time.Time `json:"saved_at"`
	Name    string    `json:"name"`
	Chapter int       `json:"chapter"`
}

// Storage persists story states to numbered slots.
type Storage interface {
	SaveSlot(ctx context.Context, slot int, st *state.StoryState) error
	LoadSlot(ctx context.Context, slot int) (*state.StoryState, error)
	ListSlots(ctx context.Context) ([]SlotInfo, error)
	Ping(ctx context.Context) error
	Close() error
}

func encodeContainer(st *state.StoryState) ([]byte, error) {
	payload, err := json.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal story state: %w", err)
	}
	data, err := json.MarshalIndent(SaveContainer{
		Version:   saveVersion,
		Timestamp: time.Now().Unix(),
		State:     payload,
	}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal save container: %w", err)
	}
	return data, nil
}

func decodeContainer(data []byte) (*state.StoryState, *SaveContainer, error) {
	var container SaveContainer
	if err := json.Unmarshal(data, &container); err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal save container: %w", err)
	}
	st, err := state.Load(container.State)
	if err != nil {
		return nil, nil, err
	}
	return st, &container, nil
}

func validateSlot(slot, numSlots int) error {
	if slot < 1 || slot > numSlots {
		return fmt.Errorf("%w: %d (valid: 1-%d)", ErrInvalidSlot, slot, numSlots)
	}
	return nil
}
