package scheduler

import (
	"fmt"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

// suggest lists up to limit "day @ slot" positions where the subject could
// still go given the current grids. Days then slots, in input order.
func (r *run) suggest(subject models.Subject, teachers []models.Teacher, limit int) []string {
	suggestions := make([]string, 0, limit)
	if limit <= 0 {
		return suggestions
	}
	cohort := subject.Cohort()
	for _, day := range r.in.Days {
		for _, slot := range r.in.TimeSlots {
			key := slotKey{Day: day, Slot: slot}
			if r.grids.cohorts.busy(cohort, key) {
				continue
			}
			if !r.anyTeacherFree(teachers, key) {
				continue
			}
			if len(r.freeClassrooms(key)) == 0 {
				continue
			}
			suggestions = append(suggestions, fmt.Sprintf("%s @ %s", day, slot))
			if len(suggestions) >= limit {
				return suggestions
			}
		}
	}
	return suggestions
}

func (r *run) anyTeacherFree(teachers []models.Teacher, key slotKey) bool {
	for _, teacher := range teachers {
		if !r.grids.teachers.busy(teacher.Name, key) && teacherAvailable(teacher, key.Day, key.Slot) {
			return true
		}
	}
	return false
}
