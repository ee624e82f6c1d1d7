package domain

import (
	"context"
	"io"
	"strings"
)

// Action is an in-process task body contributed by a plugin or a build script.
type Action func(ctx context.Context, out io.Writer) error

// Task represents a unit of work in the build system.
// It uses InternedString for fields that are frequently repeated to save memory.
type Task struct {
	Name         InternedString
	Description  string
	Group        string
	Command      []string
	Action       Action
	Inputs       []InternedString
	Outputs      []InternedString
	Dependencies []InternedString
	Environment  map[string]string
	WorkingDir   InternedString
	Disabled     bool
	Cacheable    bool
}

// Path returns the task path as printed in build output (":name").
func (t *Task) Path() string {
	return TaskPath(t.Name.String())
}

// HasWork reports whether the task has a command or an action to run.
func (t *Task) HasWork() bool {
	return len(t.Command) > 0 || t.Action != nil
}

// TaskPath normalizes a task name or path to its ":name" form.
func TaskPath(name string) string {
	if strings.HasPrefix(name, ":") {
		return name
	}
	return ":" + name
}

// TaskNameFromPath strips the leading ":" of a task path.
func TaskNameFromPath(path string) string {
	return strings.TrimPrefix(path, ":")
}
