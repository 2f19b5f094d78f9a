package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/masonry/pkg/observability"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Packed 42 boxes (1ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks logs layout and export events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l.WithPrefix("layout")}
}

func (h *logHooks) OnPassStart(context.Context, string) {}

func (h *logHooks) OnPassComplete(_ context.Context, trigger string, packed bool, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("pass failed", "trigger", trigger, "err", err)
		return
	}
	h.logger.Debug("pass", "trigger", trigger, "packed", packed, "took", d.Round(time.Microsecond))
}

func (h *logHooks) OnPack(_ context.Context, columns, boxes int, height float64) {
	h.logger.Debug("pack", "columns", columns, "boxes", boxes, "height", height)
}

func (h *logHooks) OnResize(_ context.Context, width float64, columns int) {
	h.logger.Debug("resize", "width", width, "columns", columns)
}

func (h *logHooks) OnExport(_ context.Context, format string, size int) {
	h.logger.Debug("export", "format", format, "bytes", size)
}

var (
	_ observability.LayoutHooks = (*logHooks)(nil)
	_ observability.SinkHooks   = (*logHooks)(nil)
)
