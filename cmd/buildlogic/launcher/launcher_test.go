package launcher_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/buildlogic/internal/adapters/console"
	"go.trai.ch/buildlogic/internal/adapters/report"
	"go.trai.ch/buildlogic/internal/adapters/telemetry"
	"go.trai.ch/buildlogic/internal/app"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/buildlogic/internal/core/ports/mocks"
	"go.trai.ch/buildlogic/internal/engine/scheduler"
	"go.trai.ch/buildlogic/cmd/buildlogic/launcher"
	"go.uber.org/mock/gomock"
)

func TestRunWith_InitializationError(t *testing.T) {
	provider := func(context.Context, io.Writer) (*app.Components, error) {
		return nil, errors.New("init failed")
	}

	stderr := new(bytes.Buffer)
	exitCode := launcher.RunWith(context.Background(), []string{"version"}, io.Discard, stderr, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr.String(), "Error: init failed")
}

func mockComponents(t *testing.T) (launcher.ComponentProvider, *mocks.MockConfigLoader, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	loader := mocks.NewMockConfigLoader(ctrl)
	log := mocks.NewMockLogger(ctrl)

	sched := scheduler.NewScheduler(
		mocks.NewMockExecutor(ctrl),
		mocks.NewMockBuildInfoStore(ctrl),
		mocks.NewMockBuildCache(ctrl),
		mocks.NewMockHasher(ctrl),
		mocks.NewMockInputResolver(ctrl),
		telemetry.NewNoOpTracer(),
	)
	newRenderer := func(w io.Writer) ports.Renderer { return console.NewRenderer(w) }
	application := app.New(loader, sched, newRenderer, report.NewStore(), mocks.NewMockPluginResolver(ctrl), log)

	provider := func(context.Context, io.Writer) (*app.Components, error) {
		return &app.Components{App: application, Logger: log}, nil
	}
	return provider, loader, log
}

func TestRunWith_BuildFailureIsNotLoggedTwice(t *testing.T) {
	provider, loader, _ := mockComponents(t)
	loader.EXPECT().Load(".").Return(nil, domain.ErrSettingsNotFound)

	stdout := new(bytes.Buffer)
	exitCode := launcher.RunWith(context.Background(), []string{"run", "build"}, stdout, io.Discard, provider)

	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stdout.String(), "BUILD FAILED")
}

func TestRunWith_CommandErrorIsLogged(t *testing.T) {
	provider, loader, log := mockComponents(t)
	loader.EXPECT().Load("/nowhere").Return(nil, domain.ErrSettingsNotFound)
	log.EXPECT().Error(gomock.Any())

	exitCode := launcher.RunWith(context.Background(), []string{"tasks", "-p", "/nowhere"}, io.Discard, io.Discard, provider)
	assert.Equal(t, 1, exitCode)
}

// TestRun_Wired drives a real build through the registered components.
func TestRun_Wired(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.SettingsFileName), []byte("rootProject: wired\n"), domain.FilePerm))
	require.NoError(t, os.WriteFile(filepath.Join(dir, domain.BuildFileName), []byte(`plugins: [base]
tasks:
  assertBase:
    assert:
      hasPlugin: [base]
      tasks: [clean]
`), domain.FilePerm))
	reportFile := filepath.Join(t.TempDir(), "report.yaml")

	stdout := new(bytes.Buffer)
	stderr := new(bytes.Buffer)
	exitCode := launcher.Run(context.Background(), []string{
		"run", "assertBase",
		"--project-dir", dir,
		"--home", t.TempDir(),
		"--report-file", reportFile,
	}, stdout, stderr)
	require.Equal(t, 0, exitCode, "stdout:\n%s\nstderr:\n%s", stdout, stderr)
	assert.Contains(t, stdout.String(), "> Task :assertBase")
	assert.Contains(t, stdout.String(), "BUILD SUCCESSFUL")

	rep, err := report.NewStore().Read(reportFile)
	require.NoError(t, err)
	assert.True(t, rep.Success)
	assert.Equal(t, domain.OutcomeSuccess, rep.Task("assertBase").Outcome)
}
