package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/same-cargo/internal/ui/output"
	"go.trai.ch/same-cargo/internal/ui/style"
)

// ProjectKey is the attribute rendered as a "project | " line prefix instead
// of a key=value pair, matching the prefix of concurrent toolchain output.
const ProjectKey = "project"

// PrettyHandler is a slog.Handler that writes one colored line per record.
type PrettyHandler struct {
	out     *termenv.Output
	level   slog.Leveler
	attrs   []string
	project string
	group   string
}

// NewPrettyHandler creates a new PrettyHandler writing to w, or stderr when w is nil.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}

	return &PrettyHandler{
		out:   output.New(w),
		level: level,
	}
}

// Enabled reports whether the handler handles records at the given level.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

// Handle formats and outputs the log record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	project := h.project
	parts := append([]string(nil), h.attrs...)
	r.Attrs(func(attr slog.Attr) bool {
		if h.group == "" && attr.Key == ProjectKey {
			project = attr.Value.String()
			return true
		}
		parts = appendAttr(parts, h.group, attr)
		return true
	})

	msg, color := h.decorate(r.Level, r.Message)
	if len(parts) > 0 {
		msg += " " + strings.Join(parts, " ")
	}

	line := h.out.String(msg).Foreground(color).String()
	if project != "" {
		line = h.out.String(project+" |").Faint().String() + " " + line
	}

	_, err := h.out.WriteString(line + "\n")
	return err
}

func (h *PrettyHandler) decorate(level slog.Level, msg string) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross + " " + msg, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning + " " + msg, termenv.RGBColor(string(style.Yellow))
	case strings.HasPrefix(msg, style.Prompt+" "):
		return msg, termenv.RGBColor(string(style.Iris))
	default:
		return msg, termenv.RGBColor(string(style.Slate))
	}
}

// WithAttrs returns a new Handler with the given attributes appended.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	next := h.clone()
	for _, attr := range attrs {
		if h.group == "" && attr.Key == ProjectKey {
			next.project = attr.Value.String()
			continue
		}
		next.attrs = appendAttr(next.attrs, h.group, attr)
	}
	return next
}

// WithGroup returns a new Handler that qualifies later attributes with name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	next := h.clone()
	next.group = qualify(h.group, name)
	return next
}

func (h *PrettyHandler) clone() *PrettyHandler {
	return &PrettyHandler{
		out:     h.out,
		level:   h.level,
		attrs:   append([]string(nil), h.attrs...),
		project: h.project,
		group:   h.group,
	}
}

// appendAttr renders attr as key=value, flattening group values.
func appendAttr(parts []string, group string, attr slog.Attr) []string {
	attr.Value = attr.Value.Resolve()
	if attr.Equal(slog.Attr{}) {
		return parts
	}
	if attr.Value.Kind() == slog.KindGroup {
		inner := group
		if attr.Key != "" {
			inner = qualify(group, attr.Key)
		}
		for _, a := range attr.Value.Group() {
			parts = appendAttr(parts, inner, a)
		}
		return parts
	}
	return append(parts, qualify(group, attr.Key)+"="+attr.Value.String())
}

func qualify(group, key string) string {
	if group == "" {
		return key
	}
	return group + "." + key
}
