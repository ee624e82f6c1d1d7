// Package domain contains the core domain models of the build tool: projects,
// plugins, version catalogs, tasks and their dependency graph.
package domain

import (
	"iter"
	"slices"
	"strings"

	"go.trai.ch/zerr"
)

// Graph represents a dependency graph of tasks.
type Graph struct {
	root           string
	tasks          map[InternedString]Task
	dependents     map[InternedString][]InternedString
	executionOrder []InternedString
}

// NewGraph creates a new empty Graph.
func NewGraph() *Graph {
	return &Graph{
		tasks:      make(map[InternedString]Task),
		dependents: make(map[InternedString][]InternedString),
	}
}

// SetRoot sets the project root directory the tasks run against.
func (g *Graph) SetRoot(root string) {
	g.root = root
}

// Root returns the project root directory.
func (g *Graph) Root() string {
	return g.root
}

// AddTask adds a task to the graph.
// It returns an error if a task with the same name already exists.
func (g *Graph) AddTask(t *Task) error {
	if strings.ContainsAny(t.Name.String(), ": ") || t.Name.String() == "" {
		return zerr.With(ErrInvalidTaskName, "task_name", t.Name.String())
	}
	if _, exists := g.tasks[t.Name]; exists {
		return zerr.With(ErrTaskAlreadyExists, "task_name", t.Name.String())
	}
	g.tasks[t.Name] = *t
	return nil
}

// ConfigureTask applies fn to an existing task in place.
func (g *Graph) ConfigureTask(name InternedString, fn func(*Task)) error {
	t, ok := g.tasks[name]
	if !ok {
		return zerr.With(ErrTaskNotFound, "task", name.String())
	}
	fn(&t)
	t.Name = name
	g.tasks[name] = t
	return nil
}

// GetTask returns the task with the given name.
func (g *Graph) GetTask(name InternedString) (Task, bool) {
	t, ok := g.tasks[name]
	return t, ok
}

// TaskCount returns the number of tasks in the graph.
func (g *Graph) TaskCount() int {
	return len(g.tasks)
}

// TaskNames returns all task names in lexical order.
func (g *Graph) TaskNames() []string {
	names := make([]string, 0, len(g.tasks))
	for name := range g.tasks {
		names = append(names, name.String())
	}
	slices.Sort(names)
	return names
}

// Dependents returns the tasks that depend directly on name.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Dependents(name InternedString) []InternedString {
	return g.dependents[name]
}

// Validate checks for missing dependencies and cycles using a topological sort.
// It populates the execution order and reverse edges if successful.
// Tasks are visited in name order so that the execution order is deterministic.
func (g *Graph) Validate() error {
	g.executionOrder = make([]InternedString, 0, len(g.tasks))
	g.dependents = make(map[InternedString][]InternedString, len(g.tasks))
	visited := make(map[InternedString]int) // 0: unvisited, 1: visiting, 2: visited
	var path []InternedString

	var visit func(u InternedString) error
	visit = func(u InternedString) error {
		visited[u] = 1
		path = append(path, u)

		task, exists := g.tasks[u]
		if !exists {
			return zerr.With(ErrMissingDependency, "dependency", u.String())
		}

		for _, dep := range task.Dependencies {
			if _, ok := g.tasks[dep]; !ok {
				err := zerr.With(ErrMissingDependency, "dependency", dep.String())
				return zerr.With(err, "task", u.String())
			}
			g.dependents[dep] = append(g.dependents[dep], u)
			if visited[dep] == 1 {
				return g.buildCycleError(path, dep)
			}
			if visited[dep] == 0 {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}

		visited[u] = 2
		path = path[:len(path)-1]
		g.executionOrder = append(g.executionOrder, u)
		return nil
	}

	for _, name := range g.TaskNames() {
		key := NewInternedString(name)
		if visited[key] == 0 {
			if err := visit(key); err != nil {
				return err
			}
		}
	}

	return nil
}

// buildCycleError constructs an error with cycle path metadata.
func (g *Graph) buildCycleError(path []InternedString, dep InternedString) error {
	var b strings.Builder
	startIdx := slices.Index(path, dep)
	for i := startIdx; i < len(path); i++ {
		b.WriteString(path[i].String())
		b.WriteString(" -> ")
	}
	b.WriteString(dep.String())
	return zerr.With(ErrCycleDetected, "cycle", b.String())
}

// Walk returns an iterator that yields tasks in execution order.
// It assumes Validate() has been called and returned nil.
func (g *Graph) Walk() iter.Seq[Task] {
	return func(yield func(Task) bool) {
		for _, name := range g.executionOrder {
			if !yield(g.tasks[name]) {
				return
			}
		}
	}
}
