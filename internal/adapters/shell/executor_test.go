package shell_test

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/shell"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/zerr"
)

func TestExecutor_Execute_MultiLineOutput(t *testing.T) {
	executor := shell.NewPipeExecutor()

	task := &domain.Task{
		Name:       domain.NewInternedString("test-task"),
		Command:    []string{"sh", "-c", "echo line1; echo line2"},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "line1\nline2\n", stdout.String())
}

func TestExecutor_Execute_SeparateStderr(t *testing.T) {
	executor := shell.NewPipeExecutor()

	task := &domain.Task{
		Name:       domain.NewInternedString("test-stderr"),
		Command:    []string{"sh", "-c", "echo out; echo err >&2"},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	var stdout, stderr bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, &stderr)
	require.NoError(t, err)
	assert.Equal(t, "out\n", stdout.String())
	assert.Equal(t, "err\n", stderr.String())
}

func TestExecutor_Execute_EnvironmentVariables(t *testing.T) {
	executor := shell.NewPipeExecutor()

	task := &domain.Task{
		Name:        domain.NewInternedString("test-env"),
		Command:     []string{"sh", "-c", "echo $TEST_VAR"},
		Environment: map[string]string{"TEST_VAR": "test-value-123"},
		WorkingDir:  domain.NewInternedString(t.TempDir()),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "test-value-123", strings.TrimSpace(stdout.String()))
}

func TestExecutor_Execute_TaskEnvOverridesExtraEnv(t *testing.T) {
	executor := shell.NewPipeExecutor()

	task := &domain.Task{
		Name:        domain.NewInternedString("test-env-priority"),
		Command:     []string{"sh", "-c", "echo $A-$B"},
		Environment: map[string]string{"B": "task"},
		WorkingDir:  domain.NewInternedString(t.TempDir()),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, []string{"A=extra", "B=extra"}, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "extra-task", strings.TrimSpace(stdout.String()))
}

func TestExecutor_Execute_FiltersSystemEnv(t *testing.T) {
	t.Setenv("BUILDLOGIC_SECRET_VAR", "leaked")
	executor := shell.NewPipeExecutor()

	task := &domain.Task{
		Name:       domain.NewInternedString("test-hermetic-env"),
		Command:    []string{"sh", "-c", "echo \"[$BUILDLOGIC_SECRET_VAR]\""},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "[]", strings.TrimSpace(stdout.String()))
}

func TestExecutor_Execute_WorkingDir(t *testing.T) {
	executor := shell.NewPipeExecutor()

	tmpDir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(tmpDir, "marker.txt"), []byte("here"), domain.FilePerm))

	task := &domain.Task{
		Name:       domain.NewInternedString("test-dir"),
		Command:    []string{"cat", "marker.txt"},
		WorkingDir: domain.NewInternedString(tmpDir),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "here", stdout.String())
}

func TestExecutor_Execute_InvalidCommand(t *testing.T) {
	executor := shell.NewPipeExecutor()

	task := &domain.Task{
		Name:       domain.NewInternedString("test-invalid"),
		Command:    []string{"nonexistent-command-xyz123"},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	err := executor.Execute(context.Background(), task, nil, io.Discard, io.Discard)
	require.Error(t, err)
	assert.ErrorContains(t, err, "failed to start command")
}

func TestExecutor_Execute_CommandFailure(t *testing.T) {
	executor := shell.NewPipeExecutor()

	task := &domain.Task{
		Name:       domain.NewInternedString("test-fail"),
		Command:    []string{"sh", "-c", "exit 42"},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	err := executor.Execute(context.Background(), task, nil, io.Discard, io.Discard)
	require.Error(t, err)
	assert.ErrorContains(t, err, "command failed")

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	assert.Equal(t, 42, zErr.Metadata()["exit_code"])
}

func TestExecutor_Execute_EmptyCommand(t *testing.T) {
	executor := shell.NewExecutor()

	task := &domain.Task{
		Name:       domain.NewInternedString("test-empty"),
		Command:    []string{},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	err := executor.Execute(context.Background(), task, nil, io.Discard, io.Discard)
	require.NoError(t, err)
}

func TestExecutor_Execute_AbsolutePath(t *testing.T) {
	executor := shell.NewExecutor()

	task := &domain.Task{
		Name:       domain.NewInternedString("test-absolute"),
		Command:    []string{"/bin/sh", "-c", "echo test"},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "test")
}

func TestExecutor_Execute_PathFromExtraEnv(t *testing.T) {
	executor := shell.NewPipeExecutor()

	binDir := t.TempDir()
	cmdName := "my-build-tool"
	//nolint:gosec // Test requires executable file
	require.NoError(t, os.WriteFile(filepath.Join(binDir, cmdName), []byte("#!/bin/sh\necho success\n"), 0o700))

	task := &domain.Task{
		Name:       domain.NewInternedString("test-path"),
		Command:    []string{cmdName},
		WorkingDir: domain.NewInternedString(binDir),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, []string{"PATH=" + binDir + ":/bin:/usr/bin"}, &stdout, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "success\n", stdout.String())
}

func TestExecutor_Execute_StreamsOutput(t *testing.T) {
	executor := shell.NewExecutor()

	ansiRed := "\033[31m"
	ansiReset := "\033[0m"
	msg := "Hello Red World"
	task := &domain.Task{
		Name:       domain.NewInternedString("test-ansi"),
		Command:    []string{"sh", "-c", "printf '" + ansiRed + msg + ansiReset + "'"},
		WorkingDir: domain.NewInternedString(t.TempDir()),
	}

	var stdout bytes.Buffer
	err := executor.Execute(context.Background(), task, nil, &stdout, io.Discard)
	require.NoError(t, err)

	output := stdout.String()
	assert.Contains(t, output, ansiRed)
	assert.Contains(t, output, msg)
}
