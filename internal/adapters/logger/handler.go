package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/buildlogic/internal/core/domain"
	"go.trai.ch/buildlogic/internal/ui/output"
	"go.trai.ch/buildlogic/internal/ui/style"
)

// Attribute keys of the error layout. An error record carries the metadata
// of the outermost error as plain attributes and one causeKey group per
// cause, each holding a messageKey attribute and that cause's metadata.
const (
	causeKey   = "cause"
	messageKey = "message"
)

const (
	headerIndent = "       "
	causeIndent  = "      "
)

// Handler is a slog.Handler for the build tool's terminal output.
// Error records are laid out as an "Error:" line followed by their causes;
// metadata the adapters attach is labelled the way the build console names
// tasks, plugins and classpath entries.
type Handler struct {
	out    *termenv.Output
	level  slog.Leveler
	attrs  []slog.Attr
	groups []string
}

// NewHandler creates a Handler writing to w.
func NewHandler(w io.Writer, opts *slog.HandlerOptions) *Handler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &Handler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle writes one record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *Handler) Handle(_ context.Context, r slog.Record) error {
	attrs := slices.Clone(h.attrs)
	var causes [][]slog.Attr
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == causeKey && a.Value.Kind() == slog.KindGroup {
			causes = append(causes, a.Value.Group())
			return true
		}
		attrs = append(attrs, h.qualify(a))
		return true
	})

	var text string
	var color termenv.Color
	switch {
	case r.Level >= slog.LevelError:
		text = style.Cross + " " + layoutError(r.Message, attrs, causes)
		color = termenv.RGBColor(string(style.Red))
	case r.Level >= slog.LevelWarn:
		text = style.Warning + " " + inline(r.Message, attrs)
		color = termenv.RGBColor(string(style.Yellow))
	default:
		text = inline(r.Message, attrs)
		color = termenv.RGBColor(string(style.Slate))
	}

	_, err := h.out.WriteString(h.out.String(text).Foreground(color).String() + "\n")
	return err
}

// WithAttrs returns a Handler that adds attrs to every record.
func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, a := range attrs {
		next.attrs = append(next.attrs, h.qualify(a))
	}
	return next
}

// WithGroup returns a Handler that prefixes later attribute keys with name.
func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.groups = append(next.groups, name)
	return next
}

func (h *Handler) clone() *Handler {
	return &Handler{
		out:    h.out,
		level:  h.level,
		attrs:  slices.Clone(h.attrs),
		groups: slices.Clone(h.groups),
	}
}

func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return a
	}
	return slog.Attr{Key: strings.Join(h.groups, ".") + "." + a.Key, Value: a.Value}
}

// inline renders "message label=value ...".
func inline(msg string, attrs []slog.Attr) string {
	parts := []string{msg}
	for _, a := range attrs {
		label, value := describe(a)
		parts = append(parts, label+"="+value)
	}
	return strings.Join(parts, " ")
}

// layoutError renders the message, its metadata and the causes.
func layoutError(msg string, attrs []slog.Attr, causes [][]slog.Attr) string {
	msgLines := strings.Split(msg, "\n")
	lines := []string{"Error: " + msgLines[0]}
	for _, line := range msgLines[1:] {
		lines = append(lines, headerIndent+line)
	}
	lines = append(lines, metadataLines(attrs, headerIndent)...)

	for i, cause := range causes {
		if i == 0 {
			lines = append(lines, "", "  Caused by:")
		}

		var causeMsg string
		var meta []slog.Attr
		for _, a := range cause {
			if a.Key == messageKey {
				causeMsg = a.Value.String()
				continue
			}
			meta = append(meta, a)
		}

		causeLines := strings.Split(causeMsg, "\n")
		lines = append(lines, "    "+style.Arrow+" "+causeLines[0])
		for _, line := range causeLines[1:] {
			lines = append(lines, causeIndent+line)
		}
		lines = append(lines, metadataLines(meta, causeIndent)...)
	}

	return strings.Join(lines, "\n")
}

// metadataLines renders "label: value" lines sorted by label.
func metadataLines(attrs []slog.Attr, indent string) []string {
	type labelled struct{ label, value string }
	items := make([]labelled, 0, len(attrs))
	for _, a := range attrs {
		label, value := describe(a)
		items = append(items, labelled{label, value})
	}
	slices.SortStableFunc(items, func(a, b labelled) int { return strings.Compare(a.label, b.label) })

	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, indent+it.label+": "+it.value)
	}
	return lines
}

// describe maps the metadata keys of the build domain to console labels and
// values: tasks as ":name" paths, plugin ids quoted as in build failures.
func describe(a slog.Attr) (string, string) {
	value := a.Value.Resolve().String()
	switch a.Key {
	case "task", "task_name":
		return "task", domain.TaskPath(value)
	case "plugin_id", "plugin":
		return "plugin", "'" + value + "'"
	case "classpath_entry":
		return "classpath entry", value
	case "project_dir":
		return "project dir", value
	default:
		return a.Key, value
	}
}
