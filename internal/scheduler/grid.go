package scheduler

import "github.com/noah-isme/sma-timetable-api/internal/models"

type slotKey struct {
	Day  string
	Slot string
}

// occupancy is a boolean table over (day, slot) for a set of named resources.
// A missing cell means free.
type occupancy map[string]map[slotKey]bool

func (o occupancy) busy(name string, key slotKey) bool {
	return o[name][key]
}

func (o occupancy) reserve(name string, key slotKey) {
	cells := o[name]
	if cells == nil {
		cells = make(map[slotKey]bool)
		o[name] = cells
	}
	cells[key] = true
}

// grids tracks the three independent resource dimensions of a run.
type grids struct {
	teachers   occupancy
	classrooms occupancy
	cohorts    occupancy
}

func newGrids() *grids {
	return &grids{
		teachers:   make(occupancy),
		classrooms: make(occupancy),
		cohorts:    make(occupancy),
	}
}

func (g *grids) reserve(entry models.ScheduleEntry) {
	key := slotKey{Day: entry.Day, Slot: entry.TimeSlot}
	g.teachers.reserve(entry.Teacher, key)
	g.classrooms.reserve(entry.Classroom, key)
	g.cohorts.reserve(entry.Cohort(), key)
}

// loadTracker counts placed sessions per cohort and day.
type loadTracker map[string]map[string]int

func (l loadTracker) get(cohort, day string) int {
	return l[cohort][day]
}

func (l loadTracker) inc(cohort, day string) {
	days := l[cohort]
	if days == nil {
		days = make(map[string]int)
		l[cohort] = days
	}
	days[day]++
}

// teacherAvailable applies the open-with-exceptions rule: a day missing from
// the availability map is open on every slot.
func teacherAvailable(teacher models.Teacher, day, slot string) bool {
	allowed, restricted := teacher.Availability[day]
	if !restricted {
		return true
	}
	for _, candidate := range allowed {
		if candidate == slot {
			return true
		}
	}
	return false
}
