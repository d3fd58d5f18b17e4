package scheduler

import "github.com/noah-isme/sma-timetable-api/internal/models"

// DetectConflicts scans any entry list for (day, slot) groups that share a
// teacher, classroom, or cohort. It assumes nothing about how the entries
// were produced. Records come out in first-appearance order: by (day, slot),
// then teacher clashes, classroom clashes, cohort clashes.
func DetectConflicts(entries []models.ScheduleEntry) []models.Conflict {
	var order []slotKey
	groups := make(map[slotKey][]models.ScheduleEntry)
	for _, entry := range entries {
		key := slotKey{Day: entry.Day, Slot: entry.TimeSlot}
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], entry)
	}

	conflicts := make([]models.Conflict, 0)
	for _, key := range order {
		group := groups[key]
		if len(group) < 2 {
			continue
		}
		for _, clash := range clashesBy(group, func(e models.ScheduleEntry) string { return e.Teacher }) {
			conflicts = append(conflicts, models.Conflict{
				Type: models.ConflictTeacher, Teacher: clash.name, Day: key.Day, TimeSlot: key.Slot, Subjects: clash.subjects,
			})
		}
		for _, clash := range clashesBy(group, func(e models.ScheduleEntry) string { return e.Classroom }) {
			conflicts = append(conflicts, models.Conflict{
				Type: models.ConflictClassroom, Classroom: clash.name, Day: key.Day, TimeSlot: key.Slot, Subjects: clash.subjects,
			})
		}
		for _, clash := range clashesBy(group, models.ScheduleEntry.Cohort) {
			conflicts = append(conflicts, models.Conflict{
				Type: models.ConflictCohort, Semester: clash.name, Day: key.Day, TimeSlot: key.Slot, Subjects: clash.subjects,
			})
		}
	}
	return conflicts
}

type clash struct {
	name     string
	subjects []string
}

func clashesBy(group []models.ScheduleEntry, keyOf func(models.ScheduleEntry) string) []clash {
	var names []string
	subjects := make(map[string][]string)
	for _, entry := range group {
		name := keyOf(entry)
		if _, seen := subjects[name]; !seen {
			names = append(names, name)
		}
		subjects[name] = append(subjects[name], entry.Subject)
	}
	var result []clash
	for _, name := range names {
		if len(subjects[name]) > 1 {
			result = append(result, clash{name: name, subjects: subjects[name]})
		}
	}
	return result
}
