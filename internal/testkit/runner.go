package testkit

import (
	"context"
	"errors"
	"io"
	"os/exec"

	"go.trai.ch/zerr"
)

// Invocation describes one build of a sandbox project.
type Invocation struct {
	ProjectDir string
	Home       string
	ReportFile string
	Args       []string
	Output     io.Writer
}

// Argv returns the command line passed to the build tool.
func (i Invocation) Argv() []string {
	argv := []string{
		"run",
		"--project-dir", i.ProjectDir,
		"--home", i.Home,
		"--report-file", i.ReportFile,
	}
	return append(argv, i.Args...)
}

// Runner executes the build tool for an invocation and returns its exit code.
// A non-nil error means the tool could not be started at all.
type Runner interface {
	Run(ctx context.Context, inv Invocation) (int, error)
}

// MainFunc is an in-process entry point of the build tool.
type MainFunc func(ctx context.Context, args []string, stdout, stderr io.Writer) int

// InProcessRunner runs the build tool inside the test process.
type InProcessRunner struct {
	Main MainFunc
}

// Run implements Runner.
func (r InProcessRunner) Run(ctx context.Context, inv Invocation) (int, error) {
	if r.Main == nil {
		return 0, zerr.New("in-process runner has no entry point")
	}
	return r.Main(ctx, inv.Argv(), inv.Output, inv.Output), nil
}

// ExecRunner runs a built binary of the build tool as a subprocess.
type ExecRunner struct {
	Binary string
	Env    []string
}

// Run implements Runner.
func (r ExecRunner) Run(ctx context.Context, inv Invocation) (int, error) {
	//nolint:gosec // the binary is chosen by the test suite
	cmd := exec.CommandContext(ctx, r.Binary, inv.Argv()...)
	cmd.Dir = inv.ProjectDir
	cmd.Stdout = inv.Output
	cmd.Stderr = inv.Output
	if len(r.Env) > 0 {
		cmd.Env = append(cmd.Environ(), r.Env...)
	}

	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, zerr.With(zerr.Wrap(err, "failed to start build tool"), "binary", r.Binary)
}
