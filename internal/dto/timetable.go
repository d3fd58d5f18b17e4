package dto

import "github.com/noah-isme/sma-timetable-api/internal/models"

// GenerateTimetableRequest carries generator inputs. Omitted (null) fields
// are filled from the session memory of SessionID when one is given.
type GenerateTimetableRequest struct {
	SessionID   string           `json:"session_id"`
	Teachers    []models.Teacher `json:"teachers" validate:"omitempty,dive"`
	Subjects    []models.Subject `json:"subjects" validate:"omitempty,dive"`
	Classrooms  []string         `json:"classrooms"`
	TimeSlots   []string         `json:"timeSlots"`
	Days        []string         `json:"days"`
	Semesters   []string         `json:"semesters"`
	Preferences map[string]any   `json:"preferences"`
}

// GenerateTimetableResponse is returned after a generation run.
type GenerateTimetableResponse struct {
	Success   bool                   `json:"success"`
	SessionID string                 `json:"session_id"`
	Timetable []models.ScheduleEntry `json:"timetable"`
	Conflicts []models.Conflict      `json:"conflicts"`
	Memory    *models.SessionMemory  `json:"memory"`
}

// MemoryPatch updates session memory. Null fields are left untouched.
type MemoryPatch struct {
	Teachers    []models.Teacher `json:"teachers" validate:"omitempty,dive"`
	Subjects    []models.Subject `json:"subjects" validate:"omitempty,dive"`
	Classrooms  []string         `json:"classrooms"`
	TimeSlots   []string         `json:"timeSlots"`
	Days        []string         `json:"days"`
	Semesters   []string         `json:"semesters"`
	Preferences map[string]any   `json:"preferences"`
}

// UpdateTimetableRequest replaces the entries of a stored session.
type UpdateTimetableRequest struct {
	SessionID     string                 `json:"session_id" validate:"required"`
	Timetable     []models.ScheduleEntry `json:"timetable" validate:"dive"`
	MemoryUpdates *MemoryPatch           `json:"memory_updates"`
}

// UpdateTimetableResponse reports clashes after a manual edit.
type UpdateTimetableResponse struct {
	Success   bool                  `json:"success"`
	Conflicts []models.Conflict     `json:"conflicts"`
	Memory    *models.SessionMemory `json:"memory"`
}

// ValidateTimetableRequest is a standalone entry list to check for clashes.
type ValidateTimetableRequest struct {
	Timetable []models.ScheduleEntry `json:"timetable" validate:"dive"`
}

// ValidateTimetableResponse lists resource clashes only.
type ValidateTimetableResponse struct {
	Valid     bool              `json:"valid"`
	Conflicts []models.Conflict `json:"conflicts"`
}

// ConflictsResponse wraps the stored conflicts of a session.
type ConflictsResponse struct {
	Success   bool              `json:"success"`
	Conflicts []models.Conflict `json:"conflicts"`
}

// MemoryResponse wraps the memory of a session.
type MemoryResponse struct {
	Success bool                  `json:"success"`
	Memory  *models.SessionMemory `json:"memory,omitempty"`
}
