package scheduler

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

func sessions(n int) *int {
	return &n
}

func weekdays() []string {
	return []string{"Mon", "Tue", "Wed", "Thu", "Fri"}
}

func newSeededGenerator(seed int64) *Generator {
	return NewGenerator(Config{NewRand: SeededRand(seed)})
}

func countBySubject(entries []models.ScheduleEntry) map[string]int {
	counts := make(map[string]int)
	for _, entry := range entries {
		counts[entry.Subject]++
	}
	return counts
}

func unplacedBySubject(conflicts []models.Conflict) map[string][]models.Conflict {
	result := make(map[string][]models.Conflict)
	for _, c := range conflicts {
		if c.Type == models.ConflictUnplaced {
			result[c.Subjects[0]] = append(result[c.Subjects[0]], c)
		}
	}
	return result
}

func TestGenerateSingleTeacherPlacesAllSessions(t *testing.T) {
	gen := newSeededGenerator(1)

	result := gen.Generate(Input{
		Teachers:   []models.Teacher{{Name: "Ana", Subjects: []string{"Math"}}},
		Subjects:   []models.Subject{{Name: "Math", Semester: "A", SessionsPerWeek: sessions(3)}},
		Classrooms: []string{"R1"},
		TimeSlots:  []string{"08:00", "09:00"},
		Days:       weekdays(),
	})

	require.Len(t, result.Timetable, 3)
	assert.Empty(t, result.Conflicts)
	for _, entry := range result.Timetable {
		assert.Equal(t, "Math", entry.Subject)
		assert.Equal(t, "Ana", entry.Teacher)
		assert.Equal(t, "R1", entry.Classroom)
		assert.Equal(t, "A", entry.Semester)
		assert.Equal(t, SubjectColor("Math"), entry.SubjectColor)
	}
}

func TestGenerateSpreadsSessionsAcrossLeastLoadedDays(t *testing.T) {
	gen := newSeededGenerator(7)

	result := gen.Generate(Input{
		Teachers:   []models.Teacher{{Name: "Ana", Subjects: []string{"Math"}}},
		Subjects:   []models.Subject{{Name: "Math", Semester: "A", SessionsPerWeek: sessions(5)}},
		Classrooms: []string{"R1"},
		TimeSlots:  []string{"08:00", "09:00"},
		Days:       weekdays(),
	})

	require.Len(t, result.Timetable, 5)
	days := make(map[string]int)
	for _, entry := range result.Timetable {
		days[entry.Day]++
		// the first slot of an empty day always ranks ahead
		assert.Equal(t, "08:00", entry.TimeSlot)
	}
	assert.Len(t, days, 5)
}

func TestGenerateCohortGridBlocksSecondSubject(t *testing.T) {
	gen := newSeededGenerator(3)

	result := gen.Generate(Input{
		Teachers: []models.Teacher{
			{Name: "Ana", Subjects: []string{"Math"}},
			{Name: "Ben", Subjects: []string{"Physics"}},
		},
		Subjects: []models.Subject{
			{Name: "Math", Semester: "A", SessionsPerWeek: sessions(2)},
			{Name: "Physics", Semester: "A", SessionsPerWeek: sessions(2)},
		},
		Classrooms: []string{"R1", "R2"},
		TimeSlots:  []string{"08:00"},
		Days:       []string{"Mon"},
	})

	require.Len(t, result.Timetable, 1)
	assert.Equal(t, "Math", result.Timetable[0].Subject)

	unplaced := unplacedBySubject(result.Conflicts)
	require.Len(t, unplaced["Math"], 1)
	require.Len(t, unplaced["Physics"], 1)
	assert.Equal(t, 1, unplaced["Math"][0].MissingSessions)
	assert.Equal(t, 2, unplaced["Physics"][0].MissingSessions)
	assert.Equal(t, 3, unplaced["Math"][0].MissingSessions+unplaced["Physics"][0].MissingSessions)
	assert.Empty(t, unplaced["Physics"][0].Suggestions)
	for _, c := range result.Conflicts {
		assert.False(t, c.IsClash(), "generated timetable must not clash: %+v", c)
	}
}

func TestGenerateHonoursTeacherAvailability(t *testing.T) {
	gen := newSeededGenerator(11)

	result := gen.Generate(Input{
		Teachers: []models.Teacher{{
			Name:     "Ana",
			Subjects: []string{"math"},
			Availability: map[string][]string{
				"Mon": {"09:00"},
				"Tue": {},
			},
		}},
		Subjects:   []models.Subject{{Name: "Math", SessionsPerWeek: sessions(3)}},
		Classrooms: []string{"R1"},
		TimeSlots:  []string{"08:00", "09:00"},
		Days:       []string{"Mon", "Tue", "Wed"},
	})

	require.Len(t, result.Timetable, 3)
	assert.Empty(t, result.Conflicts)
	for _, entry := range result.Timetable {
		assert.NotEqual(t, "Tue", entry.Day)
		if entry.Day == "Mon" {
			assert.Equal(t, "09:00", entry.TimeSlot)
		}
		assert.Equal(t, models.DefaultCohort, entry.Semester)
	}
}

func TestGenerateWithoutMatchingTeacherReportsShortfall(t *testing.T) {
	gen := newSeededGenerator(5)

	result := gen.Generate(Input{
		Teachers:   []models.Teacher{{Name: "Ana", Subjects: []string{"Math"}}},
		Subjects:   []models.Subject{{Name: "Chemistry", Semester: "B", SessionsPerWeek: sessions(2)}},
		Classrooms: []string{"R1"},
		TimeSlots:  []string{"08:00"},
		Days:       weekdays(),
	})

	assert.Empty(t, result.Timetable)
	require.Len(t, result.Conflicts, 1)
	conflict := result.Conflicts[0]
	assert.Equal(t, models.ConflictUnplaced, conflict.Type)
	assert.Equal(t, "B", conflict.Semester)
	assert.Equal(t, []string{"Chemistry"}, conflict.Subjects)
	assert.Equal(t, 2, conflict.MissingSessions)
	assert.Empty(t, conflict.Suggestions)
}

func TestGenerateEmptyAxesDegradeGracefully(t *testing.T) {
	gen := newSeededGenerator(5)

	result := gen.Generate(Input{
		Teachers: []models.Teacher{{Name: "Ana", Subjects: []string{"Math"}}},
		Subjects: []models.Subject{{Name: "Math", SessionsPerWeek: sessions(1)}},
	})

	assert.NotNil(t, result.Timetable)
	assert.Empty(t, result.Timetable)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, 1, result.Conflicts[0].MissingSessions)
}

func TestGenerateDefaultsAndZeroSessions(t *testing.T) {
	gen := newSeededGenerator(9)

	result := gen.Generate(Input{
		Teachers: []models.Teacher{{Name: "Ana", Subjects: []string{"Math", "Art"}}},
		Subjects: []models.Subject{
			{Name: "Math"},
			{Name: "Art", SessionsPerWeek: sessions(0)},
		},
		Classrooms: []string{"R1"},
		TimeSlots:  []string{"08:00"},
		Days:       weekdays(),
	})

	counts := countBySubject(result.Timetable)
	assert.Equal(t, defaultSessionsPerWeek, counts["Math"])
	assert.Zero(t, counts["Art"])
	assert.Empty(t, result.Conflicts)
}

func TestGenerateOneAttemptPerSessionIsEnough(t *testing.T) {
	gen := NewGenerator(Config{NewRand: SeededRand(1), AttemptsPerSession: 1})

	result := gen.Generate(Input{
		Teachers:   []models.Teacher{{Name: "Ana", Subjects: []string{"Math"}}},
		Subjects:   []models.Subject{{Name: "Math", SessionsPerWeek: sessions(4)}},
		Classrooms: []string{"R1"},
		TimeSlots:  []string{"08:00", "09:00"},
		Days:       weekdays(),
	})

	assert.Len(t, result.Timetable, 4)
}

func TestGenerateHugeSessionCountFillsEveryFreeSlot(t *testing.T) {
	gen := newSeededGenerator(1)
	required := math.MaxInt/defaultAttemptsPerSession + 1

	result := gen.Generate(Input{
		Teachers:   []models.Teacher{{Name: "Ana", Subjects: []string{"Math"}}},
		Subjects:   []models.Subject{{Name: "Math", SessionsPerWeek: sessions(required)}},
		Classrooms: []string{"R1"},
		TimeSlots:  []string{"S1", "S2"},
		Days:       []string{"Mon", "Tue"},
	})

	assert.Len(t, result.Timetable, 4)
	require.Len(t, result.Conflicts, 1)
	assert.Equal(t, models.ConflictUnplaced, result.Conflicts[0].Type)
	assert.Equal(t, required-4, result.Conflicts[0].MissingSessions)
	assert.Empty(t, result.Conflicts[0].Suggestions)
}

func TestAttemptBudgetSaturates(t *testing.T) {
	assert.Equal(t, 600, attemptBudget(2, 300))
	assert.Equal(t, 0, attemptBudget(0, 300))
	assert.Equal(t, math.MaxInt, attemptBudget(math.MaxInt/300+1, 300))
	assert.Equal(t, math.MaxInt, attemptBudget(3, math.MaxInt))
}

func TestGenerateSameSeedIsDeterministic(t *testing.T) {
	in := crowdedInput()

	first := newSeededGenerator(42).Generate(in)
	second := newSeededGenerator(42).Generate(in)

	assert.Equal(t, first, second)
}

func TestGenerateNeverDoubleBooks(t *testing.T) {
	in := crowdedInput()
	for seed := int64(0); seed < 25; seed++ {
		result := newSeededGenerator(seed).Generate(in)

		assert.Empty(t, DetectConflicts(result.Timetable), "seed %d", seed)

		counts := countBySubject(result.Timetable)
		unplaced := unplacedBySubject(result.Conflicts)
		for _, subject := range in.Subjects {
			required := *subject.SessionsPerWeek
			placed := counts[subject.Name]
			assert.LessOrEqual(t, placed, required, "seed %d subject %s", seed, subject.Name)
			if placed < required {
				require.Len(t, unplaced[subject.Name], 1, "seed %d subject %s", seed, subject.Name)
				assert.Equal(t, required-placed, unplaced[subject.Name][0].MissingSessions)
			} else {
				assert.Empty(t, unplaced[subject.Name])
			}
		}
	}
}

func crowdedInput() Input {
	teachers := []models.Teacher{
		{Name: "Ana", Subjects: []string{"Math", "Physics"}},
		{Name: "Ben", Subjects: []string{"Math", "Statistics"}, Availability: map[string][]string{"Mon": {"1", "2"}}},
		{Name: "Cid", Subjects: []string{"History", "Art"}},
		{Name: "Dee", Subjects: []string{"Biology", "CHEMISTRY"}, Availability: map[string][]string{"Fri": {}}},
	}
	subjects := []models.Subject{
		{Name: "Math", Semester: "S1", SessionsPerWeek: sessions(5)},
		{Name: "Physics", Semester: "S1", SessionsPerWeek: sessions(4)},
		{Name: "History", Semester: "S1", SessionsPerWeek: sessions(3)},
		{Name: "Statistics", Semester: "S2", SessionsPerWeek: sessions(5)},
		{Name: "Biology", Semester: "S2", SessionsPerWeek: sessions(4)},
		{Name: "Chemistry", Semester: "S2", SessionsPerWeek: sessions(6)},
		{Name: "Art", SessionsPerWeek: sessions(3)},
		{Name: "Music", SessionsPerWeek: sessions(2)},
	}
	slots := make([]string, 0, 3)
	for i := 1; i <= 3; i++ {
		slots = append(slots, fmt.Sprintf("%d", i))
	}
	return Input{
		Teachers:   teachers,
		Subjects:   subjects,
		Classrooms: []string{"R1", "R2"},
		TimeSlots:  slots,
		Days:       weekdays(),
	}
}
