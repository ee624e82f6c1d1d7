// Package scheduler implements the task execution scheduler.
package scheduler

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/zerr"
	"golang.org/x/sync/errgroup"
)

// AllTasks is the target name that selects every task in the graph.
const AllTasks = "all"

// Options configures a single scheduler run.
type Options struct {
	// Targets are the requested task names, with or without a leading ':'.
	Targets []string
	// Exclude lists tasks that are reported as SKIPPED instead of running.
	// Their dependencies are not pulled into the run on their behalf.
	Exclude []string
	// Parallelism bounds the number of tasks running at once.
	Parallelism int
	// NoCache disables up-to-date checks and shared cache restores.
	NoCache bool
	// Home is the directory holding the shared build cache. Empty disables it.
	Home string
}

// Scheduler manages the execution of tasks in the dependency graph.
type Scheduler struct {
	executor ports.Executor
	store    ports.BuildInfoStore
	cache    ports.BuildCache
	hasher   ports.Hasher
	resolver ports.InputResolver
	tracer   ports.Tracer
}

// NewScheduler creates a new Scheduler with the given dependencies.
func NewScheduler(
	executor ports.Executor,
	store ports.BuildInfoStore,
	cache ports.BuildCache,
	hasher ports.Hasher,
	resolver ports.InputResolver,
	tracer ports.Tracer,
) *Scheduler {
	return &Scheduler{
		executor: executor,
		store:    store,
		cache:    cache,
		hasher:   hasher,
		resolver: resolver,
		tracer:   tracer,
	}
}

// WithTracer returns a scheduler sharing s's adapters that reports to tracer.
// Every build gets its own tracer so its console output stays separate.
func (s *Scheduler) WithTracer(tracer ports.Tracer) *Scheduler {
	return NewScheduler(s.executor, s.store, s.cache, s.hasher, s.resolver, tracer)
}

// Run executes the requested targets and their dependencies.
// The returned results are in completion order and include failed and
// skipped tasks. Tasks that never ran because a dependency failed are
// absent. The error joins every task failure.
func (s *Scheduler) Run(ctx context.Context, graph *domain.Graph, opts Options) ([]domain.TaskResult, error) {
	// Explicitly validate the graph to ensure executionOrder is populated
	if err := graph.Validate(); err != nil {
		return nil, err
	}

	state, err := s.newRunState(ctx, graph, opts)
	if err != nil {
		return nil, err
	}

	// Filter the graph's full topological order to only include tasks in this run
	plannedTasks := make([]string, 0, len(state.tasks))
	for task := range graph.Walk() {
		if _, ok := state.tasks[task.Name]; ok {
			plannedTasks = append(plannedTasks, task.Name.String())
		}
	}
	s.tracer.EmitPlan(ctx, plannedTasks, state.targets)

	err = state.runExecutionLoop()
	return state.results, err
}

type result struct {
	task    domain.InternedString
	outcome domain.TaskOutcome
	err     error
}

type schedulerRunState struct {
	s           *Scheduler
	ctx         context.Context
	graph       *domain.Graph
	opts        Options
	targets     []string
	excluded    map[domain.InternedString]bool
	inDegree    map[domain.InternedString]int
	tasks       map[domain.InternedString]domain.Task
	outcomes    map[domain.InternedString]domain.TaskOutcome
	ready       []domain.InternedString
	active      int
	group       *errgroup.Group
	resultsCh   chan result
	results     []domain.TaskResult
	errs        error
	parallelism int
}

func (s *Scheduler) newRunState(
	ctx context.Context,
	graph *domain.Graph,
	opts Options,
) (*schedulerRunState, error) {
	excluded := make(map[domain.InternedString]bool, len(opts.Exclude))
	for _, nameStr := range opts.Exclude {
		name := domain.NewInternedString(domain.TaskNameFromPath(nameStr))
		if _, ok := graph.GetTask(name); !ok {
			return nil, zerr.With(domain.ErrTaskNotFound, "task", name.String())
		}
		excluded[name] = true
	}

	targets, tasksToRun, err := resolveTasksToRun(graph, opts.Targets, excluded)
	if err != nil {
		return nil, err
	}

	inDegree := make(map[domain.InternedString]int, len(tasksToRun))
	tasks := make(map[domain.InternedString]domain.Task, len(tasksToRun))

	for name := range tasksToRun {
		task, _ := graph.GetTask(name)
		tasks[name] = task

		// Calculate in-degree based only on dependencies that are also in tasksToRun
		degree := 0
		if !excluded[name] {
			for _, dep := range task.Dependencies {
				if tasksToRun[dep] {
					degree++
				}
			}
		}
		inDegree[name] = degree
	}

	// Seed the ready queue in graph order so equal-priority tasks start
	// deterministically.
	var ready []domain.InternedString
	for task := range graph.Walk() {
		if degree, ok := inDegree[task.Name]; ok && degree == 0 {
			ready = append(ready, task.Name)
		}
	}

	parallelism := max(opts.Parallelism, 1)
	group := new(errgroup.Group)
	group.SetLimit(parallelism)

	return &schedulerRunState{
		s:           s,
		ctx:         ctx,
		graph:       graph,
		opts:        opts,
		targets:     targets,
		excluded:    excluded,
		inDegree:    inDegree,
		tasks:       tasks,
		outcomes:    make(map[domain.InternedString]domain.TaskOutcome, len(tasks)),
		ready:       ready,
		group:       group,
		resultsCh:   make(chan result, parallelism),
		parallelism: parallelism,
	}, nil
}

// resolveTasksToRun returns the normalized target names and the set of
// tasks they require.
func resolveTasksToRun(
	graph *domain.Graph,
	targetNames []string,
	excluded map[domain.InternedString]bool,
) ([]string, map[domain.InternedString]bool, error) {
	if len(targetNames) == 0 {
		return nil, nil, domain.ErrNoTargetsSpecified
	}

	if slices.Contains(targetNames, AllTasks) {
		tasksToRun := make(map[domain.InternedString]bool, graph.TaskCount())
		for task := range graph.Walk() {
			tasksToRun[task.Name] = true
		}
		return graph.TaskNames(), tasksToRun, nil
	}

	targets := make([]domain.InternedString, 0, len(targetNames))
	names := make([]string, 0, len(targetNames))
	for _, nameStr := range targetNames {
		name := domain.NewInternedString(domain.TaskNameFromPath(nameStr))
		if _, ok := graph.GetTask(name); !ok {
			return nil, nil, zerr.With(domain.ErrTaskNotFound, "task", name.String())
		}
		targets = append(targets, name)
		names = append(names, name.String())
	}

	return names, collectDependencies(graph, targets, excluded), nil
}

func collectDependencies(
	graph *domain.Graph,
	targets []domain.InternedString,
	excluded map[domain.InternedString]bool,
) map[domain.InternedString]bool {
	tasksToRun := make(map[domain.InternedString]bool)

	// Use a queue for BFS to collect all dependencies
	queue := slices.Clone(targets)
	for len(queue) > 0 {
		currentName := queue[0]
		queue = queue[1:]

		if tasksToRun[currentName] {
			continue
		}
		tasksToRun[currentName] = true

		if excluded[currentName] {
			continue
		}

		task, _ := graph.GetTask(currentName)
		for _, dep := range task.Dependencies {
			if !tasksToRun[dep] {
				queue = append(queue, dep)
			}
		}
	}

	return tasksToRun
}

func (state *schedulerRunState) runExecutionLoop() error {
	for !state.isDone() {
		state.schedule()

		if state.isDone() {
			break
		}

		if state.ctx.Err() != nil {
			// Drain the running tasks; nothing new is scheduled.
			if state.active == 0 {
				break
			}
			state.handleResult(<-state.resultsCh)
			continue
		}

		select {
		case res := <-state.resultsCh:
			state.handleResult(res)
		case <-state.ctx.Done():
		}
	}

	// Results are delivered before the workers return.
	_ = state.group.Wait()

	if state.ctx.Err() != nil {
		state.errs = errors.Join(state.errs, state.ctx.Err())
	}

	return state.errs
}

func (state *schedulerRunState) isDone() bool {
	return state.active == 0 && len(state.ready) == 0
}

func (state *schedulerRunState) schedule() {
	for len(state.ready) > 0 && state.active < state.parallelism && state.ctx.Err() == nil {
		taskName := state.ready[0]
		state.ready = state.ready[1:]
		state.active++

		t := state.tasks[taskName]
		skip := state.excluded[taskName] || t.Disabled
		depsUpToDate := state.dependenciesUpToDate(&t)

		state.group.Go(func() error {
			state.executeTask(&t, skip, depsUpToDate)
			return nil
		})
	}
}

// dependenciesUpToDate reports whether none of t's dependencies in this run
// did any work. A task without actions is UP_TO_DATE in that case.
func (state *schedulerRunState) dependenciesUpToDate(t *domain.Task) bool {
	for _, dep := range t.Dependencies {
		if outcome, ok := state.outcomes[dep]; ok && outcome.Executed() {
			return false
		}
	}
	return true
}

func (state *schedulerRunState) executeTask(t *domain.Task, skip, depsUpToDate bool) {
	// Execute the task logic within a function to ensure the span is ended
	// BEFORE we send the result to the channel.
	res := func() result {
		ctx, span := state.s.tracer.Start(state.ctx, t.Name.String(), ports.WithTask())
		defer span.End()

		var (
			outcome domain.TaskOutcome
			err     error
		)
		if skip {
			outcome = domain.OutcomeSkipped
		} else {
			outcome, err = state.runTask(ctx, t, span, depsUpToDate)
		}
		if err != nil {
			span.RecordError(err)
			outcome = domain.OutcomeFailed
		}
		span.SetAttribute(ports.OutcomeAttribute, string(outcome))

		return result{task: t.Name, outcome: outcome, err: err}
	}()

	state.resultsCh <- res
}

// runTask decides whether t needs to run and runs it.
func (state *schedulerRunState) runTask(
	ctx context.Context,
	t *domain.Task,
	span ports.Span,
	depsUpToDate bool,
) (domain.TaskOutcome, error) {
	root := state.graph.Root()

	var inputs []string
	if len(t.Inputs) > 0 {
		var err error
		inputs, err = state.s.resolver.ResolveInputs(internedStrings(t.Inputs), root)
		if err != nil {
			return domain.OutcomeFailed, zerr.Wrap(err, domain.ErrInputResolutionFailed.Error())
		}
		if len(inputs) == 0 {
			return domain.OutcomeNoSource, nil
		}
	}

	if !t.HasWork() {
		if depsUpToDate {
			return domain.OutcomeUpToDate, nil
		}
		return domain.OutcomeSuccess, nil
	}

	// Tasks without declared outputs always run.
	if len(t.Outputs) == 0 {
		return domain.OutcomeSuccess, state.execute(ctx, t, span)
	}

	outputs := internedStrings(t.Outputs)
	hash, err := state.s.hasher.ComputeInputHash(t, t.Environment, inputs, root)
	if err != nil {
		return domain.OutcomeFailed, zerr.Wrap(err, domain.ErrInputHashComputationFailed.Error())
	}

	if !state.opts.NoCache {
		upToDate, err := state.s.isUpToDate(t, hash, outputs, root)
		if err != nil {
			return domain.OutcomeFailed, err
		}
		if upToDate {
			return domain.OutcomeUpToDate, nil
		}

		if state.useSharedCache(t) {
			restored, err := state.s.cache.Restore(state.opts.Home, hash, root, outputs)
			if err != nil {
				warn(span, err)
			}
			if restored {
				state.recordBuildInfo(t, hash, outputs, span)
				return domain.OutcomeFromCache, nil
			}
		}
	}

	if err := validateAndCleanOutputs(root, outputs); err != nil {
		return domain.OutcomeFailed, err
	}

	if err := state.execute(ctx, t, span); err != nil {
		return domain.OutcomeFailed, err
	}

	state.recordBuildInfo(t, hash, outputs, span)
	if state.useSharedCache(t) {
		if err := state.s.cache.Store(state.opts.Home, hash, root, outputs); err != nil {
			warn(span, err)
		}
	}

	return domain.OutcomeSuccess, nil
}

// execute runs the task's action and then its command.
func (state *schedulerRunState) execute(ctx context.Context, t *domain.Task, span ports.Span) error {
	if t.Action != nil {
		if err := t.Action(ctx, span); err != nil {
			return err
		}
	}
	if len(t.Command) > 0 {
		return state.s.executor.Execute(ctx, t, nil, span, span)
	}
	return nil
}

func (state *schedulerRunState) useSharedCache(t *domain.Task) bool {
	return t.Cacheable && state.opts.Home != ""
}

// recordBuildInfo stores the hashes a later build compares against.
// A failure only costs the next build its up-to-date check.
func (state *schedulerRunState) recordBuildInfo(t *domain.Task, hash string, outputs []string, span ports.Span) {
	root := state.graph.Root()
	outputHash, err := state.s.hasher.ComputeOutputHash(outputs, root)
	if err != nil {
		warn(span, err)
		return
	}

	err = state.s.store.Put(root, domain.BuildInfo{
		TaskName:   t.Name.String(),
		InputHash:  hash,
		OutputHash: outputHash,
		Timestamp:  time.Now(),
	})
	if err != nil {
		warn(span, err)
	}
}

// isUpToDate compares the stored build info of t against the current state.
func (s *Scheduler) isUpToDate(t *domain.Task, hash string, outputs []string, root string) (bool, error) {
	info, err := s.store.Get(root, t.Name.String())
	if err != nil {
		return false, zerr.Wrap(err, domain.ErrStoreReadFailed.Error())
	}

	if info == nil || info.InputHash != hash {
		return false, nil
	}

	outputHash, err := s.hasher.ComputeOutputHash(outputs, root)
	if err != nil {
		// If error (e.g. file missing), treat as cache miss
		return false, nil
	}

	return info.OutputHash == outputHash, nil
}

func validateAndCleanOutputs(root string, outputs []string) error {
	rootAbs, err := filepath.Abs(root)
	if err != nil {
		return zerr.Wrap(err, domain.ErrFailedToGetRoot.Error())
	}

	for _, out := range outputs {
		outAbs := out
		if !filepath.IsAbs(outAbs) {
			outAbs = filepath.Join(rootAbs, out)
		}

		rel, err := filepath.Rel(rootAbs, outAbs)
		if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return zerr.With(domain.ErrOutputPathOutsideRoot, "file", out)
		}

		// Use the validated absolute path for removal to ensure we delete
		// exactly what was validated.
		if err := os.RemoveAll(outAbs); err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrFailedToCleanOutput.Error()), "file", out)
		}
	}

	return nil
}

func (state *schedulerRunState) handleResult(res result) {
	state.active--
	state.outcomes[res.task] = res.outcome
	state.results = append(state.results, domain.TaskResult{
		Path:    domain.TaskPath(res.task.String()),
		Outcome: res.outcome,
	})

	if res.err != nil {
		// Enhance error with task name
		msg := fmt.Sprintf("%s for '%s'", domain.ErrTaskExecutionFailed.Error(), domain.TaskPath(res.task.String()))
		state.errs = errors.Join(state.errs, zerr.With(zerr.Wrap(res.err, msg), "task", res.task.String()))
		return
	}

	for _, dep := range state.graph.Dependents(res.task) {
		// Only consider dependents that are part of the current execution
		if _, ok := state.tasks[dep]; !ok || state.excluded[dep] {
			continue
		}
		state.inDegree[dep]--
		if state.inDegree[dep] == 0 {
			state.ready = append(state.ready, dep)
		}
	}
}

func warn(span ports.Span, err error) {
	_, _ = fmt.Fprintf(span, "warning: %v\n", err)
}

func internedStrings(values []domain.InternedString) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = v.String()
	}
	return out
}
