// Package app implements the application layer for buildlogic.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"runtime"

	"go.trai.ch/buildlogic/internal/adapters/telemetry"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/buildlogic/internal/engine/scheduler"
	"go.trai.ch/buildlogic/internal/plugins"
	"go.trai.ch/zerr"
)

// App represents the main application logic.
type App struct {
	configLoader ports.ConfigLoader
	scheduler    *scheduler.Scheduler
	newRenderer  ports.RendererFactory
	reports      ports.ReportStore
	resolver     ports.PluginResolver
	logger       ports.Logger
	registry     *plugins.Registry
}

// New creates a new App instance.
func New(
	loader ports.ConfigLoader,
	sched *scheduler.Scheduler,
	newRenderer ports.RendererFactory,
	reports ports.ReportStore,
	resolver ports.PluginResolver,
	log ports.Logger,
) *App {
	return &App{
		configLoader: loader,
		scheduler:    sched,
		newRenderer:  newRenderer,
		reports:      reports,
		resolver:     resolver,
		logger:       log,
		registry:     plugins.Default,
	}
}

// WithRegistry replaces the plugin implementation registry used by Plugins.
func (a *App) WithRegistry(r *plugins.Registry) *App {
	a.registry = r
	return a
}

// RunOptions configuration for the Run method.
type RunOptions struct {
	// ProjectDir is the directory holding settings.yaml. Defaults to ".".
	ProjectDir string
	// Home holds state shared between builds, such as the build cache.
	Home string
	// Exclude lists tasks to skip.
	Exclude []string
	// NoCache forces every task to execute.
	NoCache bool
	// ReportFile receives the YAML build report when set.
	ReportFile string
	// Parallelism bounds concurrent tasks. Defaults to the number of CPUs.
	Parallelism int
	// Stdout receives the console output. Defaults to os.Stdout.
	Stdout io.Writer
}

// Run configures the project and executes the specified targets.
// Any failure is reported on the console and in the report file, and the
// returned error then wraps domain.ErrBuildExecutionFailed.
func (a *App) Run(ctx context.Context, targetNames []string, opts RunOptions) error {
	if opts.ProjectDir == "" {
		opts.ProjectDir = "."
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = runtime.NumCPU()
	}
	stdout := opts.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}

	// 1. Initialize Renderer and Telemetry
	renderer := a.newRenderer(stdout)
	provider := telemetry.NewProvider(renderer)
	defer func() {
		_ = provider.Shutdown(context.WithoutCancel(ctx))
	}()
	tracer := telemetry.NewOTelTracer(provider, renderer)

	ctx, span := tracer.Start(ctx, "build")
	results, err := a.build(ctx, tracer, targetNames, opts)
	if err != nil {
		span.RecordError(err)
	}
	span.End()

	// 2. Report
	renderer.OnBuildFinish(err)
	_ = renderer.Stop()

	if opts.ReportFile != "" {
		report := domain.BuildReport{Success: err == nil, Tasks: results}
		if err != nil {
			report.Failure = err.Error()
		}
		if writeErr := a.reports.Write(opts.ReportFile, report); writeErr != nil {
			a.logger.Error(writeErr)
		}
	}

	if err != nil {
		return errors.Join(domain.ErrBuildExecutionFailed, err)
	}
	return nil
}

func (a *App) build(
	ctx context.Context,
	tracer ports.Tracer,
	targetNames []string,
	opts RunOptions,
) ([]domain.TaskResult, error) {
	project, err := a.configLoader.Load(opts.ProjectDir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	if len(targetNames) == 0 {
		return nil, domain.ErrNoTargetsSpecified
	}

	return a.scheduler.WithTracer(tracer).Run(ctx, project.Tasks(), scheduler.Options{
		Targets:     targetNames,
		Exclude:     opts.Exclude,
		Parallelism: opts.Parallelism,
		NoCache:     opts.NoCache,
		Home:        opts.Home,
	})
}

// Plugins returns every plugin id resolvable with the given classpath.
func (a *App) Plugins(_ context.Context, classpath []string) ([]string, error) {
	registrations, err := a.resolver.Resolve(classpath)
	if err != nil {
		return nil, err
	}
	return plugins.NewManager(a.registry, registrations).Available(), nil
}

// Tasks configures the project in dir and returns its tasks in name order.
func (a *App) Tasks(_ context.Context, dir string) ([]domain.Task, error) {
	project, err := a.configLoader.Load(dir)
	if err != nil {
		return nil, zerr.Wrap(err, "failed to load configuration")
	}

	graph := project.Tasks()
	names := graph.TaskNames()
	tasks := make([]domain.Task, 0, len(names))
	for _, name := range names {
		task, _ := graph.GetTask(domain.NewInternedString(name))
		tasks = append(tasks, task)
	}
	return tasks, nil
}
