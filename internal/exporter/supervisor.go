package exporter

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"time"
)

const maxStderrBytes = 8 * 1024 // tail of encoder stderr kept for diagnostics

// spawnAndWait runs one encoder process under the shared run state and
// polls for its exit on a fixed interval, so the state stays inspectable
// by a concurrent stop request throughout. The handle is registered before
// the first poll and cleared before return.
//
// waitErr is the process's exit error (nil on success). fatal is non-nil
// only for run-level problems: a spawn failure or a broken handle
// invariant.
func (e *Engine) spawnAndWait(state *RunState, cmd *exec.Cmd, stderr *bytes.Buffer) (waitErr error, fatal error) {
	cmd.Stdin = nil
	cmd.Stdout = io.Discard
	cmd.Stderr = &tailWriter{buf: stderr, limit: maxStderrBytes}

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start encoder process: %w", err)
	}
	state.register(cmd)

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	ticker := time.NewTicker(e.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case waitErr = <-done:
			if !state.clear(cmd) {
				return waitErr, errors.New("internal error: encoder process handle missing")
			}
			return waitErr, nil
		case <-ticker.C:
			// Cancellation kills the child through RunState.Stop; the exit
			// then surfaces on the done channel. The tick only bounds how
			// long the loop goes between checks.
			if state.StopRequested() {
				continue
			}
		}
	}
}

// tailWriter keeps only the last limit bytes written.
type tailWriter struct {
	buf   *bytes.Buffer
	limit int
}

func (w *tailWriter) Write(p []byte) (int, error) {
	n := len(p)
	w.buf.Write(p)
	if w.buf.Len() > w.limit {
		b := w.buf.Bytes()
		tail := make([]byte, w.limit)
		copy(tail, b[len(b)-w.limit:])
		w.buf.Reset()
		w.buf.Write(tail)
	}
	return n, nil
}
