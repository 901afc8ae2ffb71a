package exporter

import (
	"log/slog"
	"sync"

	"github.com/lithammer/shortuuid/v4"
)

// RunStatus is a point-in-time snapshot of the service for status queries.
type RunStatus struct {
	Active    bool   `json:"active"`
	RunID     string `json:"run_id,omitempty"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

// Service serializes export runs: at most one run is in flight at a time,
// and a finished run's summary stays queryable until the next one starts.
type Service struct {
	engine *Engine
	state  *RunState
	logger *slog.Logger

	mu        sync.Mutex
	running   bool
	runID     string
	total     int
	completed int
	last      *Summary
	lastErr   error
}

func NewService(engine *Engine, logger *slog.Logger) *Service {
	return &Service{
		engine: engine,
		state:  NewRunState(),
		logger: logger,
	}
}

// Start begins an export run on a background goroutine. It returns the run
// ID immediately, or ErrRunActive when a run is already in flight.
func (s *Service) Start(req Request, emit Emitter) (string, error) {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return "", ErrRunActive
	}
	runID := shortuuid.New()
	s.running = true
	s.runID = runID
	s.total = 0
	s.completed = 0
	s.last = nil
	s.lastErr = nil
	s.mu.Unlock()

	req.RunID = runID

	go func() {
		summary, err := s.engine.Run(s.state, req, s.trackProgress(emit))

		s.mu.Lock()
		s.running = false
		s.last = summary
		s.lastErr = err
		s.mu.Unlock()

		if err != nil {
			s.logger.Error("export run failed", "run_id", runID, "error", err)
		}
	}()

	return runID, nil
}

// Stop requests cancellation of the run in flight. Safe to call when no run
// is active.
func (s *Service) Stop() error {
	return s.state.Stop()
}

// Status reports whether a run is active and how far along it is.
func (s *Service) Status() RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return RunStatus{
		Active:    s.running,
		RunID:     s.runID,
		Total:     s.total,
		Completed: s.completed,
	}
}

// LastRun returns the most recent run's summary, or the run-level error
// that aborted it. Both are nil when no run has completed yet.
func (s *Service) LastRun() (*Summary, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last, s.lastErr
}

// trackProgress wraps the caller's emitter so status queries can report
// run progress without touching the engine.
func (s *Service) trackProgress(next Emitter) Emitter {
	return EmitterFunc(func(event string, p ProgressEvent) {
		s.mu.Lock()
		s.total = p.Total
		s.completed = p.Completed
		s.mu.Unlock()
		if next != nil {
			next.Emit(event, p)
		}
	})
}
