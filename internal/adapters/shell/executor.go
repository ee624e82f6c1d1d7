// Package shell provides a shell-based executor for running task commands.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/zerr"
)

var _ ports.Executor = (*Executor)(nil)

// Process represents a running command.
type Process interface {
	Wait() error
}

type ptyProcess struct {
	cmd    *exec.Cmd
	ioDone <-chan struct{}
}

func (p *ptyProcess) Wait() error {
	err := p.cmd.Wait()
	<-p.ioDone
	return err
}

type pipeProcess struct {
	cmd *exec.Cmd
}

func (p *pipeProcess) Wait() error {
	return p.cmd.Wait()
}

// Executor implements ports.Executor using os/exec. Commands run in a PTY
// when one is available so that tools keep their interactive formatting,
// and fall back to plain pipes otherwise.
type Executor struct {
	usePTY bool
}

// NewExecutor creates a new Executor that prefers a PTY.
func NewExecutor() *Executor {
	return &Executor{usePTY: true}
}

// NewPipeExecutor creates an Executor that never allocates a PTY.
// Stdout and stderr stay separate.
func NewPipeExecutor() *Executor {
	return &Executor{}
}

// Start launches the task's command. It returns nil for tasks without a command.
func (e *Executor) Start(
	ctx context.Context,
	task *domain.Task,
	env []string,
	stdout, stderr io.Writer,
) (Process, error) {
	if len(task.Command) == 0 {
		return nil, nil
	}

	name := task.Command[0]
	cmdEnv := resolveEnvironment(os.Environ(), env, task.Environment)

	executable := name
	if !filepath.IsAbs(name) && !strings.ContainsRune(name, filepath.Separator) {
		if lp, err := lookPath(name, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, task.Command[1:]...) //nolint:gosec // user provided command
	if len(cmd.Args) > 0 {
		cmd.Args[0] = name
	}
	if dir := task.WorkingDir.String(); dir != "" {
		cmd.Dir = dir
	}
	cmd.Env = cmdEnv

	if e.usePTY {
		if ptmx, err := pty.Start(cmd); err == nil {
			ioDone := make(chan struct{})
			go func() {
				defer close(ioDone)
				defer func() { _ = ptmx.Close() }()
				// The PTY merges stdout and stderr.
				_, _ = io.Copy(stdout, ptmx)
			}()
			return &ptyProcess{cmd: cmd, ioDone: ioDone}, nil
		}
		// No PTY available (for example in a sandboxed CI runner). The
		// command is rebuilt because a failed start leaves it unusable.
		cmd = rebuild(ctx, cmd)
	}

	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Start(); err != nil {
		return nil, zerr.With(zerr.Wrap(err, "failed to start command"), "command", name)
	}
	return &pipeProcess{cmd: cmd}, nil
}

func rebuild(ctx context.Context, cmd *exec.Cmd) *exec.Cmd {
	fresh := exec.CommandContext(ctx, cmd.Path, cmd.Args[1:]...) //nolint:gosec // same command as before
	fresh.Args[0] = cmd.Args[0]
	fresh.Dir = cmd.Dir
	fresh.Env = cmd.Env
	return fresh
}

// Execute runs the task's command and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, task *domain.Task, env []string, stdout, stderr io.Writer) error {
	proc, err := e.Start(ctx, task, env, stdout, stderr)
	if err != nil {
		return err
	}
	if proc == nil {
		return nil
	}

	if err := proc.Wait(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}

// allowListedEnvVars are the system environment variables a task inherits.
var allowListedEnvVars = map[string]struct{}{
	"HOME":             {},
	"TERM":             {},
	"USER":             {},
	"PATH":             {},
	"ANDROID_SDK_ROOT": {},
}

// resolveEnvironment merges, in increasing priority, the allow-listed
// system environment, the extra variables and the task environment.
func resolveEnvironment(sysEnv, extraEnv []string, taskEnv map[string]string) []string {
	envMap := filterSystemEnv(sysEnv)

	for _, entry := range extraEnv {
		if k, v, ok := strings.Cut(entry, "="); ok {
			envMap[k] = v
		}
	}

	for k, v := range taskEnv {
		envMap[k] = v
	}

	result := make([]string, 0, len(envMap))
	for k, v := range envMap {
		result = append(result, k+"="+v)
	}
	return result
}

func filterSystemEnv(sysEnv []string) map[string]string {
	envMap := make(map[string]string)
	for _, entry := range sysEnv {
		k, v, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			envMap[k] = v
		}
	}
	return envMap
}

// lookPath searches for an executable in the PATH of env.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
