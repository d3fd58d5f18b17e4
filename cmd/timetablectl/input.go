package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
)

// generateInput mirrors the body of POST /generate. JSON files parse too
// since YAML is a superset of JSON.
type generateInput struct {
	Teachers   []models.Teacher `yaml:"teachers"`
	Subjects   []models.Subject `yaml:"subjects"`
	Classrooms []string         `yaml:"classrooms"`
	TimeSlots  []string         `yaml:"timeSlots"`
	Days       []string         `yaml:"days"`
	Semesters  []string         `yaml:"semesters"`
}

func (in generateInput) toSchedulerInput() scheduler.Input {
	return scheduler.Input{
		Teachers:   in.Teachers,
		Subjects:   in.Subjects,
		Classrooms: in.Classrooms,
		TimeSlots:  in.TimeSlots,
		Days:       in.Days,
		Semesters:  in.Semesters,
	}
}

func (in generateInput) missing() []string {
	var out []string
	if len(in.Teachers) == 0 {
		out = append(out, "teachers")
	}
	if len(in.Subjects) == 0 {
		out = append(out, "subjects")
	}
	if len(in.Classrooms) == 0 {
		out = append(out, "classrooms")
	}
	if len(in.TimeSlots) == 0 {
		out = append(out, "timeSlots")
	}
	if len(in.Days) == 0 {
		out = append(out, "days")
	}
	return out
}

func readGenerateInput(path string) (generateInput, error) {
	var in generateInput
	raw, err := os.ReadFile(path)
	if err != nil {
		return in, fmt.Errorf("read input: %w", err)
	}
	if err := yaml.Unmarshal(raw, &in); err != nil {
		return in, fmt.Errorf("parse input %s: %w", path, err)
	}
	if missing := in.missing(); len(missing) > 0 {
		return in, fmt.Errorf("missing required data: %v", missing)
	}
	return in, nil
}

// readRecord accepts either a full result document or a bare entry list.
func readRecord(path string) (*models.TimetableRecord, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read timetable: %w", err)
	}
	var doc struct {
		Timetable []models.ScheduleEntry `yaml:"timetable"`
		Conflicts []models.Conflict      `yaml:"conflicts"`
		Metadata  struct {
			Classrooms []string `yaml:"classrooms"`
			Days       []string `yaml:"days"`
			TimeSlots  []string `yaml:"time_slots"`
			Semesters  []string `yaml:"semesters"`
		} `yaml:"metadata"`
	}
	if err := yaml.Unmarshal(raw, &doc); err == nil {
		return &models.TimetableRecord{
			Timetable: doc.Timetable,
			Conflicts: doc.Conflicts,
			Metadata: models.TimetableMetadata{
				Classrooms: doc.Metadata.Classrooms,
				Days:       doc.Metadata.Days,
				TimeSlots:  doc.Metadata.TimeSlots,
				Semesters:  doc.Metadata.Semesters,
			},
		}, nil
	}
	var entries []models.ScheduleEntry
	if err := yaml.Unmarshal(raw, &entries); err != nil {
		return nil, fmt.Errorf("parse timetable %s: %w", path, err)
	}
	return &models.TimetableRecord{Timetable: entries}, nil
}
