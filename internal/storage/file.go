package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/thornsfall/lore-engine/pkg/state"
)

// FileStorage keeps one JSON file per slot under a save directory.
type FileStorage struct {
	saveDir  string
	numSlots int
	logger   *slog.Logger
}

var _ Storage = (*FileStorage)(nil)

// NewFileStorage creates the save directory if needed.
func NewFileStorage(saveDir string, numSlots int, logger *slog.Logger) (*FileStorage, error) {
	if err := os.MkdirAll(saveDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create save directory: %w", err)
	}
	return &FileStorage{
		saveDir:  saveDir,
		numSlots: numSlots,
		logger:   logger,
	}, nil
}

func (f *FileStorage) slotPath(slot int) string {
	return filepath.Join(f.saveDir, fmt.Sprintf("slot_%d.json", slot))
}

func (f *FileStorage) SaveSlot(ctx context.Context, slot int, st *state.StoryState) error {
	if err := validateSlot(slot, f.numSlots); err != nil {
		return err
	}

	data, err := encodeContainer(st)
	if err != nil {
		f.logger.Error("Failed to encode save", "slot", slot, "error", err)
		return err
	}

	if err := os.WriteFile(f.slotPath(slot), data, 0o644); err != nil {
		f.logger.Error("Failed to write save file", "slot", slot, "error", err)
		return fmt.Errorf("failed to write save file: %w", err)
	}
	return nil
}

func (f *FileStorage) LoadSlot(ctx context.Context, slot int) (*state.StoryState, error) {
	if err := validateSlot(slot, f.numSlots); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.slotPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %d", ErrSlotNotFound, slot)
		}
		f.logger.Error("Failed to read save file", "slot", slot, "error", err)
		return nil, fmt.Errorf("failed to read save file: %w", err)
	}

	st, _, err := decodeContainer(data)
	if err != nil {
		f.logger.Error("Failed to decode save file", "slot", slot, "error", err)
		return nil, err
	}
	return st, nil
}

func (f *FileStorage) ListSlots(ctx context.Context) ([]SlotInfo, error) {
	var slots []SlotInfo
	for slot := 1; slot <= f.numSlots; slot++ {
		data, err := os.ReadFile(f.slotPath(slot))
		if err != nil {
			continue // empty or unreadable slot
		}
		st, container, err := decodeContainer(data)
		if err != nil {
			f.logger.Warn("Skipping malformed save file", "slot", slot, "error", err)
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

func (f *FileStorage) Ping(ctx context.Context) error {
	if _, err := os.Stat(f.saveDir); err != nil {
		return fmt.Errorf("save directory unavailable: %w", err)
	}
	return nil
}

func (f *FileStorage) Close() error {
	return nil
}
