package exporter

import (
	"fmt"
	"os/exec"
	"sync"
	"sync/atomic"
)

// RunState is the pair of (active encoder process, cancellation flag)
// shared between the export worker and the external stop trigger. The
// handle exists only while one row's encode is in flight; it is cleared
// before the next row begins so a concurrent stop never kills a stale
// process. Callers construct one RunState per agent and pass it into the
// engine, keeping runs testable in isolation.
type RunState struct {
	mu     sync.Mutex
	active *exec.Cmd
	stop   atomic.Bool
}

func NewRunState() *RunState {
	return &RunState{}
}

// Stop sets the cancellation flag and kills the active encoder process if
// one is registered. Idempotent and safe to call when no run is active:
// with no handle registered it only sets the flag.
func (s *RunState) Stop() error {
	s.stop.Store(true)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != nil && s.active.Process != nil {
		if err := s.active.Process.Kill(); err != nil {
			return fmt.Errorf("failed to stop encoder: %w", err)
		}
	}
	return nil
}

// StopRequested reports whether cancellation has been requested for the
// run in flight.
func (s *RunState) StopRequested() bool {
	return s.stop.Load()
}

// reset clears the cancellation flag on entry to a new run.
func (s *RunState) reset() {
	s.stop.Store(false)
}

func (s *RunState) register(cmd *exec.Cmd) {
	s.mu.Lock()
	s.active = cmd
	s.mu.Unlock()
}

// clear removes the handle, verifying it is the one that was registered.
// A mismatch means the single-live-process invariant broke somewhere.
func (s *RunState) clear(cmd *exec.Cmd) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active != cmd {
		return false
	}
	s.active = nil
	return true
}
