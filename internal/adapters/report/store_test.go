package report_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/report"
	"go.trai.ch/buildlogic/internal/core/domain"
)

func TestStore_WriteRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "report.yaml")
	store := report.NewStore()

	want := domain.BuildReport{
		Success: false,
		Failure: "task execution failed",
		Tasks: []domain.TaskResult{
			{Path: ":prepare", Outcome: domain.OutcomeUpToDate},
			{Path: ":compile", Outcome: domain.OutcomeFailed},
		},
	}
	require.NoError(t, store.Write(path, want))

	got, err := store.Read(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestStore_WriteFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	store := report.NewStore()

	require.NoError(t, store.Write(path, domain.BuildReport{
		Success: true,
		Tasks:   []domain.TaskResult{{Path: ":clean", Outcome: domain.OutcomeSuccess}},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "success: true")
	assert.Contains(t, string(data), "outcome: SUCCESS")
	assert.NotContains(t, string(data), "failure")
}

func TestStore_ReadMissing(t *testing.T) {
	_, err := report.NewStore().Read(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrReportReadFailed.Error())
}

func TestStore_ReadRejectsUnknownOutcome(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("success: true\ntasks:\n  - path: :a\n    outcome: DONE\n"), domain.FilePerm))

	_, err := report.NewStore().Read(path)
	require.Error(t, err)
	assert.ErrorContains(t, err, domain.ErrReportReadFailed.Error())
}

func TestStore_ReadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tasks: [unterminated"), domain.FilePerm))

	_, err := report.NewStore().Read(path)
	require.Error(t, err)
}
