package scheduler

import (
	"math"
	"math/rand"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const (
	defaultAttemptsPerSession = 300
	defaultMaxSuggestions     = 5
	defaultSessionsPerWeek    = 2
)

// Input carries everything a generation run consumes.
type Input struct {
	Teachers   []models.Teacher
	Subjects   []models.Subject
	Classrooms []string
	TimeSlots  []string
	Days       []string
	// Semesters is informational. The cohort set is derived from subjects.
	Semesters []string
}

// Result is the output of a generation run.
type Result struct {
	Timetable []models.ScheduleEntry
	Conflicts []models.Conflict
}

// Config governs generator behaviour.
type Config struct {
	// AttemptsPerSession bounds the placement loop at required*AttemptsPerSession attempts.
	AttemptsPerSession int
	MaxSuggestions     int
	// DefaultSessions applies to subjects that omit sessions_per_week.
	DefaultSessions int
	// NewRand returns the random source for one run.
	NewRand func() *rand.Rand
	Logger  *zap.Logger
}

// Generator places weekly sessions into (day, slot, teacher, classroom) tuples.
// It holds no run state and is safe for concurrent use.
type Generator struct {
	cfg Config
}

// NewGenerator applies defaults to cfg.
func NewGenerator(cfg Config) *Generator {
	if cfg.AttemptsPerSession <= 0 {
		cfg.AttemptsPerSession = defaultAttemptsPerSession
	}
	if cfg.MaxSuggestions <= 0 {
		cfg.MaxSuggestions = defaultMaxSuggestions
	}
	if cfg.DefaultSessions <= 0 {
		cfg.DefaultSessions = defaultSessionsPerWeek
	}
	if cfg.NewRand == nil {
		cfg.NewRand = func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	return &Generator{cfg: cfg}
}

// SeededRand returns a NewRand func that seeds every run identically.
func SeededRand(seed int64) func() *rand.Rand {
	return func() *rand.Rand {
		return rand.New(rand.NewSource(seed))
	}
}

// Generate runs the greedy placement loop for every subject in input order,
// then re-scans the timetable for clashes. It never fails: shortfalls and
// clashes are reported as conflicts.
func (g *Generator) Generate(in Input) Result {
	r := &run{
		cfg:   g.cfg,
		in:    in,
		grids: newGrids(),
		load:  make(loadTracker),
		rng:   g.cfg.NewRand(),
	}
	for _, subject := range in.Subjects {
		r.placeSubject(subject)
	}

	conflicts := append(r.conflicts, DetectConflicts(r.entries)...)
	if conflicts == nil {
		conflicts = []models.Conflict{}
	}
	entries := r.entries
	if entries == nil {
		entries = []models.ScheduleEntry{}
	}
	return Result{Timetable: entries, Conflicts: conflicts}
}

// run is the mutable state of a single generation call.
type run struct {
	cfg       Config
	in        Input
	grids     *grids
	load      loadTracker
	rng       *rand.Rand
	entries   []models.ScheduleEntry
	conflicts []models.Conflict
}

func (r *run) sessionsFor(subject models.Subject) int {
	if subject.SessionsPerWeek == nil {
		return r.cfg.DefaultSessions
	}
	if *subject.SessionsPerWeek < 0 {
		return 0
	}
	return *subject.SessionsPerWeek
}

// attemptBudget saturates at math.MaxInt instead of wrapping negative.
func attemptBudget(required, perSession int) int {
	if required > 0 && required > math.MaxInt/perSession {
		return math.MaxInt
	}
	return required * perSession
}

func (r *run) placeSubject(subject models.Subject) {
	required := r.sessionsFor(subject)
	budget := attemptBudget(required, r.cfg.AttemptsPerSession)
	teachers := r.teachersFor(subject)

	placed := 0
	for attempts := 0; placed < required && attempts < budget; attempts++ {
		if !r.placeOnce(subject, teachers) {
			// state did not change, another pass would fail identically
			break
		}
		placed++
	}
	if placed >= required {
		return
	}

	missing := required - placed
	suggestions := r.suggest(subject, teachers, r.cfg.MaxSuggestions)
	r.cfg.Logger.Debug("subject not fully placed",
		zap.String("subject", subject.Name),
		zap.String("semester", subject.Cohort()),
		zap.Int("missing", missing),
		zap.Int("suggestions", len(suggestions)),
	)
	r.conflicts = append(r.conflicts, models.Conflict{
		Type:            models.ConflictUnplaced,
		Semester:        subject.Cohort(),
		Subjects:        []string{subject.Name},
		MissingSessions: missing,
		Suggestions:     suggestions,
	})
}

// placeOnce commits at most one session: the first feasible (teacher,
// classroom) pair found while walking ranked candidates.
func (r *run) placeOnce(subject models.Subject, teachers []models.Teacher) bool {
	if len(teachers) == 0 {
		return false
	}
	cohort := subject.Cohort()
	order := make([]models.Teacher, len(teachers))
	for _, cand := range rankCandidates(r.in.Days, r.in.TimeSlots, r.load, cohort) {
		copy(order, teachers)
		r.rng.Shuffle(len(order), func(i, j int) { order[i], order[j] = order[j], order[i] })
		for _, teacher := range order {
			if r.grids.teachers.busy(teacher.Name, cand.key) || !teacherAvailable(teacher, cand.key.Day, cand.key.Slot) {
				continue
			}
			rooms := r.freeClassrooms(cand.key)
			r.rng.Shuffle(len(rooms), func(i, j int) { rooms[i], rooms[j] = rooms[j], rooms[i] })
			for _, room := range rooms {
				if r.canPlace(subject, teacher, room, cand.key) {
					r.commit(subject, teacher, room, cand.key)
					return true
				}
			}
		}
	}
	return false
}

// canPlace is the feasibility check across all three grids plus the
// teacher's availability map.
func (r *run) canPlace(subject models.Subject, teacher models.Teacher, classroom string, key slotKey) bool {
	if r.grids.teachers.busy(teacher.Name, key) {
		return false
	}
	if r.grids.classrooms.busy(classroom, key) {
		return false
	}
	if r.grids.cohorts.busy(subject.Cohort(), key) {
		return false
	}
	return teacherAvailable(teacher, key.Day, key.Slot)
}

func (r *run) commit(subject models.Subject, teacher models.Teacher, classroom string, key slotKey) {
	entry := models.ScheduleEntry{
		Day:          key.Day,
		TimeSlot:     key.Slot,
		Subject:      subject.Name,
		Teacher:      teacher.Name,
		Classroom:    classroom,
		Semester:     subject.Cohort(),
		SubjectColor: SubjectColor(subject.Name),
	}
	r.grids.reserve(entry)
	r.load.inc(entry.Semester, key.Day)
	r.entries = append(r.entries, entry)
}

func (r *run) freeClassrooms(key slotKey) []string {
	free := make([]string, 0, len(r.in.Classrooms))
	for _, room := range r.in.Classrooms {
		if !r.grids.classrooms.busy(room, key) {
			free = append(free, room)
		}
	}
	return free
}

// teachersFor matches subject names case-insensitively.
func (r *run) teachersFor(subject models.Subject) []models.Teacher {
	var matched []models.Teacher
	for _, teacher := range r.in.Teachers {
		for _, name := range teacher.Subjects {
			if strings.EqualFold(name, subject.Name) {
				matched = append(matched, teacher)
				break
			}
		}
	}
	return matched
}
