package models

import "time"

// DefaultCohort groups subjects that do not declare a semester.
const DefaultCohort = "General"

// Teacher is an input roster row for a generation run.
type Teacher struct {
	Name     string   `json:"name" yaml:"name" validate:"required"`
	Subjects []string `json:"subjects" yaml:"subjects"`
	// Availability restricts listed days to the given slots. Days that are
	// not listed are fully open.
	Availability map[string][]string `json:"availability,omitempty" yaml:"availability,omitempty"`
}

// Subject describes weekly demand for a cohort.
type Subject struct {
	Name            string `json:"name" yaml:"name" validate:"required"`
	Semester        string `json:"semester,omitempty" yaml:"semester,omitempty"`
	SessionsPerWeek *int   `json:"sessions_per_week,omitempty" yaml:"sessions_per_week,omitempty" validate:"omitempty,min=0"`
}

// Cohort returns the semester the subject belongs to.
func (s Subject) Cohort() string {
	if s.Semester == "" {
		return DefaultCohort
	}
	return s.Semester
}

// ScheduleEntry is one placed session.
type ScheduleEntry struct {
	Day          string `json:"day" yaml:"day" validate:"required"`
	TimeSlot     string `json:"time_slot" yaml:"time_slot" validate:"required"`
	Subject      string `json:"subject" yaml:"subject" validate:"required"`
	Teacher      string `json:"teacher" yaml:"teacher" validate:"required"`
	Classroom    string `json:"classroom" yaml:"classroom" validate:"required"`
	Semester     string `json:"semester,omitempty" yaml:"semester,omitempty"`
	SubjectColor string `json:"subject_color,omitempty" yaml:"subject_color,omitempty"`
}

// Cohort returns the semester of the entry.
func (e ScheduleEntry) Cohort() string {
	if e.Semester == "" {
		return DefaultCohort
	}
	return e.Semester
}

// ConflictType tags conflict records.
type ConflictType string

const (
	ConflictUnplaced  ConflictType = "unplaced"
	ConflictTeacher   ConflictType = "teacher"
	ConflictClassroom ConflictType = "classroom"
	ConflictCohort    ConflictType = "cohort"
)

// Conflict reports either missing sessions for a subject or a resource clash.
type Conflict struct {
	Type            ConflictType `json:"type" yaml:"type"`
	Semester        string       `json:"semester,omitempty" yaml:"semester,omitempty"`
	Teacher         string       `json:"teacher,omitempty" yaml:"teacher,omitempty"`
	Classroom       string       `json:"classroom,omitempty" yaml:"classroom,omitempty"`
	Day             string       `json:"day,omitempty" yaml:"day,omitempty"`
	TimeSlot        string       `json:"time_slot,omitempty" yaml:"time_slot,omitempty"`
	Subjects        []string     `json:"subjects" yaml:"subjects"`
	MissingSessions int          `json:"missing_sessions,omitempty" yaml:"missing_sessions,omitempty"`
	Suggestions     []string     `json:"suggestions,omitempty" yaml:"suggestions,omitempty"`
}

// IsClash reports whether the conflict is a resource clash.
func (c Conflict) IsClash() bool {
	return c.Type != ConflictUnplaced
}

// TimetableMetadata keeps the grid axes needed to render a stored timetable.
type TimetableMetadata struct {
	Classrooms []string `json:"classrooms"`
	Days       []string `json:"days"`
	TimeSlots  []string `json:"time_slots"`
	Semesters  []string `json:"semesters"`
}

// TimetableRecord is the stored result of a generation run.
type TimetableRecord struct {
	SessionID string            `json:"session_id"`
	Timetable []ScheduleEntry   `json:"timetable"`
	Conflicts []Conflict        `json:"conflicts"`
	Metadata  TimetableMetadata `json:"metadata"`
	UpdatedAt time.Time         `json:"updated_at"`
}

// SessionMemory holds the last inputs a caller supplied for a session.
type SessionMemory struct {
	Teachers    []Teacher      `json:"teachers,omitempty"`
	Subjects    []Subject      `json:"subjects,omitempty"`
	Classrooms  []string       `json:"classrooms,omitempty"`
	TimeSlots   []string       `json:"timeSlots,omitempty"`
	Days        []string       `json:"days,omitempty"`
	Semesters   []string       `json:"semesters,omitempty"`
	Preferences map[string]any `json:"preferences,omitempty"`
	LastUpdated time.Time      `json:"last_updated"`
}
