// Package launcher runs the buildlogic command line against explicit
// arguments and streams, so that the binary and in-process callers such as
// functional tests share one entry point.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/grindlemire/graft"
	"go.trai.ch/buildlogic/cmd/buildlogic/commands"
	"go.trai.ch/buildlogic/internal/adapters/logger"
	"go.trai.ch/buildlogic/internal/app"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	_ "go.trai.ch/buildlogic/internal/wiring" // Register all Graft nodes.
)

// ComponentProvider returns the application components for one invocation.
type ComponentProvider func(ctx context.Context, stderr io.Writer) (*app.Components, error)

// Run executes the command line args and returns the process exit code.
// Every call builds its own components, so concurrent calls do not share
// loggers or consoles.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	return RunWith(ctx, args, stdout, stderr, DefaultComponents)
}

// DefaultComponents resolves the components from the registered Graft nodes,
// logging to stderr.
func DefaultComponents(ctx context.Context, stderr io.Writer) (*app.Components, error) {
	c, _, err := graft.ExecuteFor[*app.Components](ctx,
		graft.DisableCache(),
		graft.PatchValue[ports.Logger](logger.NewWithWriter(stderr)),
	)
	return c, err
}

// RunWith is Run with a custom component provider.
func RunWith(
	ctx context.Context,
	args []string,
	stdout, stderr io.Writer,
	provider ComponentProvider,
) int {
	// 1. Initialize application components
	components, err := provider(ctx, stderr)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = fmt.Fprintln(stderr, "Error: "+err.Error())
		return 1
	}

	// 2. Interface - CLI
	cli := commands.New(components.App)
	cli.SetArgs(args)
	cli.SetOutput(stdout, stderr)

	// 3. Execution
	if err := cli.Execute(ctx); err != nil {
		// The console already described a failed build.
		if errors.Is(err, domain.ErrBuildExecutionFailed) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
