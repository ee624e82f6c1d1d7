// Package console renders build progress as plain, line-oriented output in
// the style of a Gradle console: one "> Task :name" header per task followed
// by that task's output, then the build result.
package console

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/muesli/termenv"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/core/ports"
	"go.trai.ch/buildlogic/internal/ui/output"
	"go.trai.ch/buildlogic/internal/ui/style"
)

var _ ports.Renderer = (*Renderer)(nil)

// Renderer implements ports.Renderer for captured and non-interactive output.
// Task output is held back until the task completes so that tasks running in
// parallel never interleave.
type Renderer struct {
	out *termenv.Output
	now func() time.Time

	mu        sync.Mutex
	started   time.Time
	tasks     map[string]*taskState
	completed []domain.TaskOutcome
}

type taskState struct {
	name   string
	output bytes.Buffer
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithClock replaces the clock used to measure the build duration.
func WithClock(now func() time.Time) Option {
	return func(r *Renderer) {
		r.now = now
	}
}

// NewRenderer creates a Renderer writing to w (stdout when nil).
func NewRenderer(w io.Writer, opts ...Option) *Renderer {
	if w == nil {
		w = os.Stdout
	}
	r := &Renderer{
		out:   output.NewWithProfile(w, output.ColorProfileANSI),
		now:   time.Now,
		tasks: make(map[string]*taskState),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.started = r.now()
	return r
}

// OnPlanEmit resets the build clock.
func (r *Renderer) OnPlanEmit(_ []string, _ []string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.started = r.now()
}

// OnTaskStart registers a running task.
func (r *Renderer) OnTaskStart(spanID, name string, _ time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tasks[spanID] = &taskState{name: name}
}

// OnTaskLog buffers output for a running task. Carriage returns written by
// pseudo-terminals are dropped.
func (r *Renderer) OnTaskLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	task.output.Write(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))
}

// OnTaskComplete prints the task header and its buffered output.
func (r *Renderer) OnTaskComplete(spanID string, _ time.Time, outcome domain.TaskOutcome, _ error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	task, ok := r.tasks[spanID]
	if !ok {
		return
	}
	delete(r.tasks, spanID)
	r.completed = append(r.completed, outcome)

	header := "> Task " + domain.TaskPath(task.name)
	if label := outcome.Label(); label != "" {
		header += " " + label
	}
	if outcome == domain.OutcomeFailed {
		header = r.out.String(header).Foreground(termenv.RGBColor(string(style.Red))).String()
	}
	r.println(header)

	if task.output.Len() > 0 {
		text := task.output.String()
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
		_, _ = io.WriteString(r.out, text)
	}
}

// OnBuildFinish prints the failure description, if any, and the build result.
func (r *Renderer) OnBuildFinish(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	duration := formatDuration(r.now().Sub(r.started))

	if err != nil {
		r.println("")
		r.println("FAILURE: Build failed with an exception.")
		r.println("")
		r.println("* What went wrong:")
		r.println(err.Error())
		r.println("")
		r.println(r.out.String("BUILD FAILED in " + duration).
			Foreground(termenv.RGBColor(string(style.Red))).Bold().String())
	} else {
		r.println("")
		r.println(r.out.String("BUILD SUCCESSFUL in " + duration).
			Foreground(termenv.RGBColor(string(style.Green))).Bold().String())
	}

	if summary := summarize(r.completed); summary != "" {
		r.println(summary)
	}
}

// Stop prints output of tasks that never completed.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for spanID, task := range r.tasks {
		if task.output.Len() > 0 {
			_, _ = io.WriteString(r.out, task.output.String())
		}
		delete(r.tasks, spanID)
	}
	return nil
}

func (r *Renderer) println(line string) {
	_, _ = io.WriteString(r.out, line+"\n")
}

// summarize renders the actionable task counts, e.g.
// "3 actionable tasks: 1 executed, 1 from cache, 1 up-to-date".
func summarize(outcomes []domain.TaskOutcome) string {
	var executed, fromCache, upToDate int
	for _, o := range outcomes {
		switch o {
		case domain.OutcomeSuccess, domain.OutcomeFailed:
			executed++
		case domain.OutcomeFromCache:
			fromCache++
		case domain.OutcomeUpToDate:
			upToDate++
		case domain.OutcomeSkipped, domain.OutcomeNoSource:
		}
	}

	total := executed + fromCache + upToDate
	if total == 0 {
		return ""
	}

	var parts []string
	if executed > 0 {
		parts = append(parts, fmt.Sprintf("%d executed", executed))
	}
	if fromCache > 0 {
		parts = append(parts, fmt.Sprintf("%d from cache", fromCache))
	}
	if upToDate > 0 {
		parts = append(parts, fmt.Sprintf("%d up-to-date", upToDate))
	}

	noun := "tasks"
	if total == 1 {
		noun = "task"
	}
	return fmt.Sprintf("%d actionable %s: %s", total, noun, strings.Join(parts, ", "))
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	d = d.Round(time.Second)
	if d < time.Minute {
		return fmt.Sprintf("%ds", int(d.Seconds()))
	}
	return fmt.Sprintf("%dm %ds", int(d.Minutes()), int(d.Seconds())%60)
}
