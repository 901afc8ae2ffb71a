// Package exporter drives batch clip exports: it walks an ordered list of
// clip rows, supervises one external encoder process at a time, honors an
// asynchronous stop request, and aggregates a run summary.
package exporter

import "errors"

// ProgressEventName is the event name the shell subscribes to.
const ProgressEventName = "export-progress"

// Run statuses carried on progress events.
const (
	StatusRunning = "running"
	StatusStopped = "stopped"
	StatusDone    = "done"
)

// Per-row results carried on progress events.
const (
	RowRunning = "running"
	RowSuccess = "success"
	RowFailed  = "failed"
)

// ProgressEvent is an outbound, fire-and-forget notification to the shell.
// Events for a run are emitted in strictly increasing row order.
type ProgressEvent struct {
	Total       int    `json:"total"`
	Completed   int    `json:"completed"`
	CurrentClip string `json:"current_clip"`
	Status      string `json:"status"`
	Message     string `json:"message"`
	RowIndex    *int   `json:"row_index,omitempty"`
	RowResult   string `json:"row_result,omitempty"`
}

// Emitter receives progress events. Implementations must not block; the
// export worker fires and forgets.
type Emitter interface {
	Emit(event string, p ProgressEvent)
}

// EmitterFunc adapts a function to the Emitter interface.
type EmitterFunc func(event string, p ProgressEvent)

func (f EmitterFunc) Emit(event string, p ProgressEvent) {
	f(event, p)
}

// Summary is the terminal, immutable result of one run. Errors are ordered
// by row processing order.
type Summary struct {
	TotalRows int      `json:"total_rows"`
	Exported  int      `json:"exported"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors"`
}

// ErrToolMissing indicates the encoder binary could not be resolved on the
// execution path. Fatal before any row is processed.
var ErrToolMissing = errors.New("ffmpeg not found in PATH")

// ErrRunActive is returned when an export is requested while another run
// is still in flight.
var ErrRunActive = errors.New("an export run is already active")
