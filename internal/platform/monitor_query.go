package platform

import (
	"errors"
	"log"

	"github.com/1broseidon/fullframe/internal/window"
)

// PrimaryMonitorQuery adapts a Backend to window.MonitorQuery. Failures are
// reported to the builder as "no monitor"; the underlying error is kept for
// diagnostics.
type PrimaryMonitorQuery struct {
	Backend Backend
	// Logf receives one line per failed query. Defaults to log.Printf.
	Logf func(format string, args ...any)

	openErr error
	lastErr error
}

var _ window.MonitorQuery = (*PrimaryMonitorQuery)(nil)

// NewPrimaryMonitorQuery returns a query over b. A nil backend always
// reports ErrNoDisplay.
func NewPrimaryMonitorQuery(b Backend) *PrimaryMonitorQuery {
	return &PrimaryMonitorQuery{Backend: b}
}

// DisconnectedMonitorQuery is a query for a backend that failed to open.
// Every query reports openErr.
func DisconnectedMonitorQuery(openErr error) *PrimaryMonitorQuery {
	return &PrimaryMonitorQuery{openErr: openErr}
}

// QueryPrimary implements window.MonitorQuery.
func (q *PrimaryMonitorQuery) QueryPrimary() *window.MonitorInfo {
	q.lastErr = nil

	if q.Backend == nil {
		err := q.openErr
		if err == nil {
			err = ErrNoDisplay
		}
		q.fail(err)
		return nil
	}

	display, err := q.Backend.PrimaryDisplay()
	if err != nil {
		q.fail(err)
		return nil
	}

	info := display.MonitorInfo()
	if info == nil {
		q.fail(ErrNoMonitor)
		return nil
	}
	return info
}

// LastErr returns why the most recent query reported no monitor, or nil.
func (q *PrimaryMonitorQuery) LastErr() error {
	return q.lastErr
}

func (q *PrimaryMonitorQuery) fail(err error) {
	q.lastErr = err

	logf := q.Logf
	if logf == nil {
		logf = log.Printf
	}
	switch {
	case errors.Is(err, ErrNoDisplay):
		logf("Monitor query: no display, fullscreen will not be sized: %v", err)
	case errors.Is(err, ErrNoMonitor):
		logf("Monitor query: no active monitor, fullscreen will not be sized: %v", err)
	default:
		logf("Monitor query failed, fullscreen will not be sized: %v", err)
	}
}

// Unavailable is a query for headless use; it never reports a monitor.
func Unavailable() window.MonitorQuery {
	return window.MonitorQueryFunc(func() *window.MonitorInfo { return nil })
}
