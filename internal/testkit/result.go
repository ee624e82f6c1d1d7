package testkit

import (
	"errors"
	"io/fs"
	"os"

	"go.trai.ch/buildlogic/internal/adapters/report"
	"go.trai.ch/buildlogic/internal/core/domain"
)

// Result is the outcome of one build invocation. Task lookups come from the
// embedded report; a task that did not run has no entry.
type Result struct {
	domain.BuildReport

	ExitCode int
	Output   string
}

// Outcome returns the outcome of the task at path, or "" if it did not run.
func (r *Result) Outcome(path string) domain.TaskOutcome {
	if task := r.Task(path); task != nil {
		return task.Outcome
	}
	return ""
}

// newResult builds a Result from the exit code and the report at reportFile.
// A build that failed before writing a report yields a failed result with
// no tasks.
func newResult(exitCode int, reportFile, output string) (*Result, error) {
	res := &Result{ExitCode: exitCode, Output: output}

	if _, err := os.Stat(reportFile); errors.Is(err, fs.ErrNotExist) {
		res.Success = exitCode == 0
		return res, nil
	}

	rep, err := report.NewStore().Read(reportFile)
	if err != nil {
		return nil, err
	}
	res.BuildReport = rep
	res.Success = rep.Success && exitCode == 0
	return res, nil
}
