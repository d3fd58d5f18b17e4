package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"

	"github.com/noah-isme/sma-timetable-api/internal/models"
	"github.com/noah-isme/sma-timetable-api/internal/scheduler"
	"github.com/noah-isme/sma-timetable-api/internal/service"
)

var errClashesFound = errors.New("clashes found")

func newGenerateCmd() *cobra.Command {
	var (
		file   string
		output string
		seed   int64
	)
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a timetable from an input file",
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := readGenerateInput(file)
			if err != nil {
				return err
			}
			cfg := scheduler.Config{}
			if seed != 0 {
				cfg.NewRand = scheduler.SeededRand(seed)
			}
			result := scheduler.NewGenerator(cfg).Generate(in.toSchedulerInput())
			record := models.TimetableRecord{
				Timetable: result.Timetable,
				Conflicts: result.Conflicts,
				Metadata: models.TimetableMetadata{
					Classrooms: in.Classrooms,
					Days:       in.Days,
					TimeSlots:  in.TimeSlots,
					Semesters:  in.Semesters,
				},
				UpdatedAt: time.Now().UTC(),
			}
			if err := writeJSON(cmd.OutOrStdout(), output, record); err != nil {
				return err
			}
			printSummary(cmd.ErrOrStderr(), len(record.Timetable), record.Conflicts)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "input file (yaml or json)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the result to this file instead of stdout")
	cmd.Flags().Int64Var(&seed, "seed", 0, "seed the random source for reproducible runs")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newValidateCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check a timetable for teacher, classroom and cohort clashes",
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := readRecord(file)
			if err != nil {
				return err
			}
			validate := validator.New()
			for i, entry := range record.Timetable {
				if err := validate.Struct(entry); err != nil {
					return fmt.Errorf("invalid timetable entry %d: %w", i, err)
				}
			}
			conflicts := scheduler.DetectConflicts(record.Timetable)
			printSummary(cmd.OutOrStdout(), len(record.Timetable), conflicts)
			if len(conflicts) > 0 {
				return errClashesFound
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "timetable file: a generate result or an entry list")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func newExportCmd() *cobra.Command {
	var (
		file   string
		format string
		output string
		title  string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Render a generate result as xlsx, pdf or csv",
		RunE: func(cmd *cobra.Command, args []string) error {
			exportFormat, err := service.ParseExportFormat(format)
			if err != nil {
				return err
			}
			record, err := readRecord(file)
			if err != nil {
				return err
			}
			svc := service.NewExportService(nil, service.ExportConfig{Title: title}, nil, nil, nil, nil)
			rendered, err := svc.Render(record, exportFormat)
			if err != nil {
				return err
			}
			if output == "" {
				output = rendered.Filename
			}
			if err := os.WriteFile(output, rendered.Payload, 0o644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%d bytes)\n", green("wrote"), output, len(rendered.Payload))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "generate result file")
	cmd.Flags().StringVar(&format, "format", "xlsx", "xlsx, pdf or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default timetable_<timestamp>.<ext>)")
	cmd.Flags().StringVar(&title, "title", "", "document title")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func writeJSON(stdout io.Writer, path string, v interface{}) error {
	payload, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	payload = append(payload, '\n')
	if path == "" {
		_, err = stdout.Write(payload)
		return err
	}
	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
