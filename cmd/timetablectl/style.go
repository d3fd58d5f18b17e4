package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

var flagNoColor bool

var (
	bold   = color.New(color.Bold).SprintFunc()
	dim    = color.New(color.Faint).SprintFunc()
	green  = color.New(color.FgGreen).SprintFunc()
	red    = color.New(color.Bold, color.FgRed).SprintFunc()
	yellow = color.New(color.FgYellow).SprintFunc()
)

func applyColorSetting() {
	if flagNoColor {
		color.NoColor = true
	}
}

// printSummary writes a one line count followed by one line per conflict.
func printSummary(w io.Writer, entries int, conflicts []models.Conflict) {
	var unplaced, clashes int
	for _, c := range conflicts {
		if c.IsClash() {
			clashes++
		} else {
			unplaced++
		}
	}
	fmt.Fprintf(w, "%s %d entries, %d unplaced, %d clashes\n", bold("timetable:"), entries, unplaced, clashes)
	if len(conflicts) == 0 {
		fmt.Fprintln(w, green("no conflicts"))
		return
	}
	for _, c := range conflicts {
		fmt.Fprintln(w, "  "+describeConflict(c))
	}
}

func describeConflict(c models.Conflict) string {
	switch c.Type {
	case models.ConflictUnplaced:
		line := fmt.Sprintf("%s %v (%s) missing %d", yellow("unplaced"), c.Subjects, c.Semester, c.MissingSessions)
		if len(c.Suggestions) > 0 {
			line += dim(fmt.Sprintf(" try %v", c.Suggestions))
		}
		return line
	case models.ConflictTeacher:
		return fmt.Sprintf("%s %s at %s %s: %v", red("teacher clash"), c.Teacher, c.Day, c.TimeSlot, c.Subjects)
	case models.ConflictClassroom:
		return fmt.Sprintf("%s %s at %s %s: %v", red("classroom clash"), c.Classroom, c.Day, c.TimeSlot, c.Subjects)
	case models.ConflictCohort:
		return fmt.Sprintf("%s %s at %s %s: %v", red("cohort clash"), c.Semester, c.Day, c.TimeSlot, c.Subjects)
	}
	return fmt.Sprintf("%s %v", c.Type, c.Subjects)
}
