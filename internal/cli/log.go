package cli

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/flowbasis/pkg/basis"
)

// heartbeatInterval is the period of progress log lines during a search.
const heartbeatInterval = 10 * time.Second

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
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Searched network.txt: 42 checked, 3 repeats (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// heartbeat logs the latest search snapshot at a fixed interval. Update may
// be called from the searching goroutine while the heartbeat runs.
type heartbeat struct {
	logger   *log.Logger
	interval time.Duration

	mu     sync.Mutex
	last   basis.Progress
	seen   bool
	start  time.Time
	stop   chan struct{}
	exited chan struct{}
	once   sync.Once
}

func newHeartbeat(l *log.Logger, interval time.Duration) *heartbeat {
	return &heartbeat{
		logger:   l,
		interval: interval,
		stop:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Update records p as the latest snapshot.
func (h *heartbeat) Update(p basis.Progress) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = p
	h.seen = true
}

// Start begins logging in a new goroutine.
func (h *heartbeat) Start() {
	h.start = time.Now()
	go func() {
		defer close(h.exited)
		ticker := time.NewTicker(h.interval)
		defer ticker.Stop()
		for {
			select {
			case <-h.stop:
				return
			case <-ticker.C:
				h.beat()
			}
		}
	}()
}

func (h *heartbeat) beat() {
	h.mu.Lock()
	p, seen := h.last, h.seen
	h.mu.Unlock()
	if !seen {
		h.logger.Info("searching", "elapsed", time.Since(h.start).Round(time.Second))
		return
	}
	h.logger.Info("searching",
		"candidates", p.Leaves,
		"feasible", p.Feasible,
		"repeats", p.Repeats,
		"discarded", p.Discarded,
		"elapsed", p.Elapsed.Round(time.Second))
}

// Stop ends the heartbeat and waits for its goroutine. It is safe to call
// more than once.
func (h *heartbeat) Stop() {
	h.once.Do(func() { close(h.stop) })
	<-h.exited
}

// ctxKey is the type for context keys used in this package.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
