package domain

// TaskResult records the outcome of one task.
type TaskResult struct {
	Path    string      `yaml:"path"`
	Outcome TaskOutcome `yaml:"outcome"`
}

// BuildReport is the structured result of one build invocation.
// It is written by the build tool and read back by the test kit.
type BuildReport struct {
	Success bool         `yaml:"success"`
	Failure string       `yaml:"failure,omitempty"`
	Tasks   []TaskResult `yaml:"tasks"`
}

// Task returns the result for the given task name or path, or nil if the
// task did not take part in the build.
func (r *BuildReport) Task(path string) *TaskResult {
	path = TaskPath(path)
	for i := range r.Tasks {
		if r.Tasks[i].Path == path {
			return &r.Tasks[i]
		}
	}
	return nil
}

// TaskPaths returns the paths of all tasks in report order.
func (r *BuildReport) TaskPaths() []string {
	paths := make([]string, len(r.Tasks))
	for i, t := range r.Tasks {
		paths[i] = t.Path
	}
	return paths
}

// TasksWithOutcome returns the paths of tasks that finished with outcome.
func (r *BuildReport) TasksWithOutcome(outcome TaskOutcome) []string {
	var paths []string
	for _, t := range r.Tasks {
		if t.Outcome == outcome {
			paths = append(paths, t.Path)
		}
	}
	return paths
}
