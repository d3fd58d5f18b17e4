package service

import (
	"context"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type sessionMemoryStore interface {
	Get(ctx context.Context, sessionID string) (*models.SessionMemory, error)
	Save(ctx context.Context, sessionID string, memory *models.SessionMemory) error
	Delete(ctx context.Context, sessionID string) (bool, error)
}

// MemoryService manages the short-term input memory of sessions.
type MemoryService struct {
	repo      sessionMemoryStore
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
}

// NewMemoryService constructs a memory service.
func NewMemoryService(repo sessionMemoryStore, validate *validator.Validate, logger *zap.Logger) *MemoryService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MemoryService{repo: repo, validator: validate, logger: logger, now: time.Now}
}

// Get returns the memory of a session.
func (s *MemoryService) Get(ctx context.Context, sessionID string) (*models.SessionMemory, error) {
	memory, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session memory")
	}
	if memory == nil {
		return nil, appErrors.ErrSessionNotFound
	}
	return memory, nil
}

// Merge applies the non-null fields of patch, creating the memory when absent.
func (s *MemoryService) Merge(ctx context.Context, sessionID string, patch dto.MemoryPatch) (*models.SessionMemory, error) {
	if sessionID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "session id is required")
	}
	if err := s.validator.Struct(patch); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid memory payload")
	}
	memory, err := s.repo.Get(ctx, sessionID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session memory")
	}
	if memory == nil {
		memory = &models.SessionMemory{}
	}
	applyMemoryPatch(memory, patch)
	memory.LastUpdated = s.now().UTC()
	if err := s.repo.Save(ctx, sessionID, memory); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save session memory")
	}
	return memory, nil
}

// Clear removes the memory of a session.
func (s *MemoryService) Clear(ctx context.Context, sessionID string) error {
	removed, err := s.repo.Delete(ctx, sessionID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear session memory")
	}
	if !removed {
		return appErrors.ErrSessionNotFound
	}
	s.logger.Info("session memory cleared", zap.String("session_id", sessionID))
	return nil
}

func applyMemoryPatch(memory *models.SessionMemory, patch dto.MemoryPatch) {
	if patch.Teachers != nil {
		memory.Teachers = patch.Teachers
	}
	if patch.Subjects != nil {
		memory.Subjects = patch.Subjects
	}
	if patch.Classrooms != nil {
		memory.Classrooms = patch.Classrooms
	}
	if patch.TimeSlots != nil {
		memory.TimeSlots = patch.TimeSlots
	}
	if patch.Days != nil {
		memory.Days = patch.Days
	}
	if patch.Semesters != nil {
		memory.Semesters = patch.Semesters
	}
	if patch.Preferences != nil {
		memory.Preferences = patch.Preferences
	}
}
