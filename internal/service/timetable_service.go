package service

import (
	"context"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/dto"
	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
	appErrors "github.com/noah-isme/sma-timetable-api/pkg/errors"
)

type timetableStore interface {
	Save(ctx context.Context, record *models.TimetableRecord) error
	Get(ctx context.Context, sessionID string) (*models.TimetableRecord, error)
}

type timetableGenerator interface {
	Generate(in scheduler.Input) scheduler.Result
}

// TimetableService runs the generator and keeps per-session results.
type TimetableService struct {
	generator  timetableGenerator
	timetables timetableStore
	memories   sessionMemoryStore
	metrics    *MetricsService
	validator  *validator.Validate
	logger     *zap.Logger
	newID      func() string
	now        func() time.Time
}

// NewTimetableService wires timetable dependencies.
func NewTimetableService(
	generator timetableGenerator,
	timetables timetableStore,
	memories sessionMemoryStore,
	metrics *MetricsService,
	validate *validator.Validate,
	logger *zap.Logger,
) *TimetableService {
	if generator == nil {
		generator = scheduler.NewGenerator(scheduler.Config{Logger: logger})
	}
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TimetableService{
		generator:  generator,
		timetables: timetables,
		memories:   memories,
		metrics:    metrics,
		validator:  validate,
		logger:     logger,
		newID:      uuid.NewString,
		now:        time.Now,
	}
}

// Generate builds a timetable from the request, falling back to session
// memory for omitted inputs, and stores the result under a session id.
func (s *TimetableService) Generate(ctx context.Context, req dto.GenerateTimetableRequest) (*dto.GenerateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generate payload")
	}

	var remembered models.SessionMemory
	if req.SessionID != "" {
		memory, err := s.loadMemory(ctx, req.SessionID)
		if err != nil {
			return nil, err
		}
		if memory != nil {
			remembered = *memory
		}
	}

	memory := &models.SessionMemory{
		Teachers:    pick(req.Teachers, remembered.Teachers),
		Subjects:    pick(req.Subjects, remembered.Subjects),
		Classrooms:  pick(req.Classrooms, remembered.Classrooms),
		TimeSlots:   pick(req.TimeSlots, remembered.TimeSlots),
		Days:        pick(req.Days, remembered.Days),
		Semesters:   pick(req.Semesters, remembered.Semesters),
		Preferences: remembered.Preferences,
	}
	if req.Preferences != nil {
		memory.Preferences = req.Preferences
	}
	if len(memory.Teachers) == 0 || len(memory.Subjects) == 0 || len(memory.Classrooms) == 0 ||
		len(memory.TimeSlots) == 0 || len(memory.Days) == 0 {
		return nil, appErrors.ErrMissingData
	}

	start := time.Now()
	result := s.generator.Generate(scheduler.Input{
		Teachers:   memory.Teachers,
		Subjects:   memory.Subjects,
		Classrooms: memory.Classrooms,
		TimeSlots:  memory.TimeSlots,
		Days:       memory.Days,
		Semesters:  memory.Semesters,
	})
	elapsed := time.Since(start)
	s.metrics.ObserveGeneration(elapsed, len(result.Timetable), result.Conflicts)

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = s.newID()
	}
	now := s.now().UTC()
	record := &models.TimetableRecord{
		SessionID: sessionID,
		Timetable: result.Timetable,
		Conflicts: result.Conflicts,
		Metadata: models.TimetableMetadata{
			Classrooms: memory.Classrooms,
			Days:       memory.Days,
			TimeSlots:  memory.TimeSlots,
			Semesters:  memory.Semesters,
		},
		UpdatedAt: now,
	}
	if err := s.timetables.Save(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable")
	}
	memory.LastUpdated = now
	if err := s.memories.Save(ctx, sessionID, memory); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session memory")
	}

	s.logger.Info("timetable generated",
		zap.String("session_id", sessionID),
		zap.Int("entries", len(result.Timetable)),
		zap.Int("conflicts", len(result.Conflicts)),
		zap.Duration("duration", elapsed),
	)

	return &dto.GenerateTimetableResponse{
		Success:   true,
		SessionID: sessionID,
		Timetable: result.Timetable,
		Conflicts: result.Conflicts,
		Memory:    memory,
	}, nil
}

// Update replaces the entries of a session and re-detects clashes.
// Memory updates apply only when the session already has memory.
func (s *TimetableService) Update(ctx context.Context, req dto.UpdateTimetableRequest) (*dto.UpdateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid update payload")
	}
	record, err := s.loadRecord(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	entries := req.Timetable
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	record.Timetable = entries
	record.Conflicts = scheduler.DetectConflicts(entries)
	record.UpdatedAt = s.now().UTC()
	if err := s.timetables.Save(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store timetable")
	}
	s.metrics.ObserveConflicts(record.Conflicts)

	memory, err := s.loadMemory(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if memory != nil && req.MemoryUpdates != nil {
		applyMemoryPatch(memory, *req.MemoryUpdates)
		memory.LastUpdated = record.UpdatedAt
		if err := s.memories.Save(ctx, req.SessionID, memory); err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store session memory")
		}
	}

	s.logger.Info("timetable updated",
		zap.String("session_id", req.SessionID),
		zap.Int("entries", len(entries)),
		zap.Int("conflicts", len(record.Conflicts)),
	)

	return &dto.UpdateTimetableResponse{Success: true, Conflicts: record.Conflicts, Memory: memory}, nil
}

// Validate checks a standalone entry list for resource clashes.
func (s *TimetableService) Validate(ctx context.Context, req dto.ValidateTimetableRequest) (*dto.ValidateTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid timetable payload")
	}
	conflicts := scheduler.DetectConflicts(req.Timetable)
	s.metrics.ObserveConflicts(conflicts)
	return &dto.ValidateTimetableResponse{Valid: len(conflicts) == 0, Conflicts: conflicts}, nil
}

// Conflicts returns the stored conflicts of a session.
func (s *TimetableService) Conflicts(ctx context.Context, sessionID string) ([]models.Conflict, error) {
	record, err := s.loadRecord(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if record.Conflicts == nil {
		return []models.Conflict{}, nil
	}
	return record.Conflicts, nil
}

// Record returns the stored timetable of a session.
func (s *TimetableService) Record(ctx context.Context, sessionID string) (*models.TimetableRecord, error) {
	return s.loadRecord(ctx, sessionID)
}

func (s *TimetableService) loadRecord(ctx context.Context, sessionID string) (*models.TimetableRecord, error) {
	start := time.Now()
	record, err := s.timetables.Get(ctx, sessionID)
	s.metrics.RecordStoreLookup(err == nil, time.Since(start))
	if err != nil {
		if errors.Is(err, appErrors.ErrSessionNotFound) {
			return nil, appErrors.ErrSessionNotFound
		}
		s.logger.Warn("timetable lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load timetable")
	}
	return record, nil
}

func (s *TimetableService) loadMemory(ctx context.Context, sessionID string) (*models.SessionMemory, error) {
	start := time.Now()
	memory, err := s.memories.Get(ctx, sessionID)
	s.metrics.RecordStoreLookup(err == nil && memory != nil, time.Since(start))
	if err != nil {
		s.logger.Warn("memory lookup failed", zap.String("session_id", sessionID), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load session memory")
	}
	return memory, nil
}

// pick prefers the request value when it was supplied, even if empty.
func pick[T any](requested, remembered []T) []T {
	if requested != nil {
		return requested
	}
	return remembered
}
