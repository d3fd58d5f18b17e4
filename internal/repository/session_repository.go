package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

const (
	timetableKeyPrefix = "timetable:"
	memoryKeyPrefix    = "memory:"
)

// TimetableRepository persists generated timetables per session.
type TimetableRepository struct {
	store Store
	ttl   time.Duration
}

// NewTimetableRepository constructs a timetable repository.
func NewTimetableRepository(store Store, ttl time.Duration) *TimetableRepository {
	return &TimetableRepository{store: store, ttl: ttl}
}

// Save replaces the record stored for record.SessionID.
func (r *TimetableRepository) Save(ctx context.Context, record *models.TimetableRecord) error {
	if record == nil || record.SessionID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	if err := r.store.Set(ctx, timetableKeyPrefix+record.SessionID, record, r.ttl); err != nil {
		return fmt.Errorf("save timetable %s: %w", record.SessionID, err)
	}
	return nil
}

// Get loads the record of a session or returns ErrSessionNotFound.
func (r *TimetableRepository) Get(ctx context.Context, sessionID string) (*models.TimetableRecord, error) {
	var record models.TimetableRecord
	if err := r.store.Get(ctx, timetableKeyPrefix+sessionID, &record); err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, appErrors.ErrSessionNotFound
		}
		return nil, fmt.Errorf("load timetable %s: %w", sessionID, err)
	}
	return &record, nil
}

// MemoryRepository persists the short-term input memory of a session.
type MemoryRepository struct {
	store Store
	ttl   time.Duration
}

// NewMemoryRepository constructs a memory repository.
func NewMemoryRepository(store Store, ttl time.Duration) *MemoryRepository {
	return &MemoryRepository{store: store, ttl: ttl}
}

// Get returns the memory of a session, or nil when none is stored.
func (r *MemoryRepository) Get(ctx context.Context, sessionID string) (*models.SessionMemory, error) {
	var memory models.SessionMemory
	if err := r.store.Get(ctx, memoryKeyPrefix+sessionID, &memory); err != nil {
		if errors.Is(err, appErrors.ErrCacheMiss) {
			return nil, nil
		}
		return nil, fmt.Errorf("load memory %s: %w", sessionID, err)
	}
	return &memory, nil
}

// Save writes memory and restarts its TTL.
func (r *MemoryRepository) Save(ctx context.Context, sessionID string, memory *models.SessionMemory) error {
	if sessionID == "" {
		return appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	if err := r.store.Set(ctx, memoryKeyPrefix+sessionID, memory, r.ttl); err != nil {
		return fmt.Errorf("save memory %s: %w", sessionID, err)
	}
	return nil
}

// Delete clears the memory of a session and reports whether it existed.
func (r *MemoryRepository) Delete(ctx context.Context, sessionID string) (bool, error) {
	removed, err := r.store.Delete(ctx, memoryKeyPrefix+sessionID)
	if err != nil {
		return false, fmt.Errorf("clear memory %s: %w", sessionID, err)
	}
	return removed, nil
}
