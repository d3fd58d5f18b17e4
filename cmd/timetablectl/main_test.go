package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/sma-timetable-api/internal/models"
)

const sampleInput = `
teachers:
  - name: Ana
    subjects: [Math]
    availability:
      Tue: []
  - name: Ben
    subjects: [Art]
subjects:
  - name: Math
    semester: S1
    sessions_per_week: 2
  - name: Art
    semester: S2
classrooms: [R1, R2]
timeSlots: ["08:00", "09:00"]
days: [Mon, Tue]
`

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	flagNoColor = false
	root := newRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--no-color"}, args...))
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestGenerateCommand(t *testing.T) {
	input := writeFile(t, "input.yaml", sampleInput)

	stdout, stderr, err := runCLI(t, "generate", "-f", input, "--seed", "3")
	require.NoError(t, err)

	var record models.TimetableRecord
	require.NoError(t, json.Unmarshal([]byte(stdout), &record))
	assert.Len(t, record.Timetable, 4)
	assert.Empty(t, record.Conflicts)
	for _, e := range record.Timetable {
		if e.Teacher == "Ana" {
			assert.Equal(t, "Mon", e.Day)
		}
	}
	assert.Equal(t, []string{"Mon", "Tue"}, record.Metadata.Days)
	assert.Contains(t, stderr, "4 entries, 0 unplaced, 0 clashes")
}

func TestGenerateCommandMissingData(t *testing.T) {
	input := writeFile(t, "input.json", `{"teachers":[{"name":"Ana","subjects":["Math"]}],"subjects":[{"name":"Math"}]}`)

	_, _, err := runCLI(t, "generate", "-f", input)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "classrooms")
}

func TestValidateCommand(t *testing.T) {
	clean := writeFile(t, "clean.json", `[{"day":"Mon","time_slot":"08:00","subject":"Math","teacher":"Ana","classroom":"R1"}]`)
	stdout, _, err := runCLI(t, "validate", "-f", clean)
	require.NoError(t, err)
	assert.Contains(t, stdout, "no conflicts")

	clash := writeFile(t, "clash.json", `{"timetable":[
		{"day":"Mon","time_slot":"08:00","subject":"Math","teacher":"Ana","classroom":"R1","semester":"S1"},
		{"day":"Mon","time_slot":"08:00","subject":"Art","teacher":"Ana","classroom":"R2","semester":"S2"}]}`)
	stdout, _, err = runCLI(t, "validate", "-f", clash)
	assert.ErrorIs(t, err, errClashesFound)
	assert.Contains(t, stdout, "teacher clash Ana at Mon 08:00: [Math Art]")
}

func TestValidateCommandRejectsIncompleteEntries(t *testing.T) {
	path := writeFile(t, "bad.json", `[{"day":"Mon"}]`)
	_, _, err := runCLI(t, "validate", "-f", path)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errClashesFound)
}

func TestExportCommand(t *testing.T) {
	input := writeFile(t, "input.yaml", sampleInput)
	result := filepath.Join(t.TempDir(), "result.json")
	_, _, err := runCLI(t, "generate", "-f", input, "--seed", "3", "-o", result)
	require.NoError(t, err)

	for format, prefix := range map[string]string{"xlsx": "PK", "pdf": "%PDF-", "csv": "\xEF\xBB\xBF"} {
		out := filepath.Join(t.TempDir(), "timetable."+format)
		stdout, _, err := runCLI(t, "export", "-f", result, "--format", format, "-o", out)
		require.NoError(t, err, format)
		assert.Contains(t, stdout, "wrote "+out)
		payload, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(payload, []byte(prefix)), format)
	}

	_, _, err = runCLI(t, "export", "-f", result, "--format", "docx")
	assert.Error(t, err)
}

func TestDescribeConflict(t *testing.T) {
	flagNoColor = true
	applyColorSetting()
	line := describeConflict(models.Conflict{Type: models.ConflictUnplaced, Semester: "S1", Subjects: []string{"Math"}, MissingSessions: 2, Suggestions: []string{"Tue @ 08:00"}})
	assert.Equal(t, "unplaced [Math] (S1) missing 2 try [Tue @ 08:00]", line)
}
