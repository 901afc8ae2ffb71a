package exporter

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/lithammer/shortuuid/v4"
	"github.com/shirou/gopsutil/v3/disk"

	"github.com/nickmaccarthy/ClipChop/internal/clips"
	"github.com/nickmaccarthy/ClipChop/internal/config"
	"github.com/nickmaccarthy/ClipChop/internal/encode"
	"github.com/nickmaccarthy/ClipChop/internal/logging"
	"github.com/nickmaccarthy/ClipChop/internal/timecode"
)

// Engine executes export runs. It is stateless across runs; per-run state
// lives in the caller-owned RunState.
type Engine struct {
	ffmpegBin    string
	pollInterval time.Duration
	minFreeDisk  uint64
	logger       *slog.Logger
}

func NewEngine(cfg config.Config, logger *slog.Logger) *Engine {
	return &Engine{
		ffmpegBin:    cfg.FFmpegBin(),
		pollInterval: cfg.PollInterval(),
		minFreeDisk:  cfg.MinFreeDiskBytes(),
		logger:       logging.WithComponent(logger, "exporter"),
	}
}

// Request describes one export run. EditedRows, when non-nil, takes the
// place of the CSV as the row source.
type Request struct {
	RunID      string
	CSVPath    string
	VideoPath  string
	OutputDir  string
	Settings   encode.Settings
	EditedRows []clips.Row
}

// Run drives a full export pass: precondition checks, then one encoder
// process per row in order, emitting progress along the way. Row-level
// failures are counted and recorded but never abort the run; only
// cancellation stops it early. The returned error is non-nil only for
// run-level (precondition or internal) failures.
func (e *Engine) Run(state *RunState, req Request, emit Emitter) (*Summary, error) {
	state.reset()
	settings := req.Settings.Normalize()

	runID := req.RunID
	if runID == "" {
		runID = shortuuid.New()
	}
	log := logging.WithRunID(e.logger, runID)

	if _, err := exec.LookPath(e.ffmpegBin); err != nil {
		return nil, fmt.Errorf("%w: install ffmpeg before running exports", ErrToolMissing)
	}

	var rows []clips.Row
	var err error
	if req.EditedRows != nil {
		rows, err = clips.Normalize(req.EditedRows)
	} else {
		rows, err = clips.Load(req.CSVPath)
	}
	if err != nil {
		return nil, err
	}

	total := len(rows)
	if total == 0 {
		return nil, fmt.Errorf("%w: csv has no rows", clips.ErrNoRows)
	}

	if _, err := os.Stat(req.VideoPath); err != nil {
		return nil, fmt.Errorf("video file not found: %s", req.VideoPath)
	}

	if err := os.MkdirAll(req.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}
	e.checkFreeDisk(log, req.OutputDir)

	log.Info("export run starting",
		"total_rows", total,
		"mode", string(settings.ProcessingMode),
		"video", logging.SanitizePath(req.VideoPath),
	)

	var (
		exported int
		skipped  int
		failed   int
		errs     []string
	)

	emit.Emit(ProgressEventName, ProgressEvent{
		Total:   total,
		Status:  StatusRunning,
		Message: "Starting export...",
	})

	for idx, row := range rows {
		if state.StopRequested() {
			emit.Emit(ProgressEventName, rowEvent(total, idx, idx, row.Name,
				StatusStopped, "Export stopped by user", RowFailed))
			break
		}

		rowNum := idx + 2

		startSec, ok := timecode.Parse(row.Start)
		if !ok {
			skipped++
			msg := fmt.Sprintf("Row %d skipped: invalid start time '%s'", rowNum, row.Start)
			errs = append(errs, msg)
			emit.Emit(ProgressEventName, rowEvent(total, idx+1, idx, row.Name,
				StatusRunning, msg, RowFailed))
			continue
		}

		endSec, ok := timecode.Parse(row.End)
		if !ok {
			skipped++
			msg := fmt.Sprintf("Row %d skipped: invalid end time '%s'", rowNum, row.End)
			errs = append(errs, msg)
			emit.Emit(ProgressEventName, rowEvent(total, idx+1, idx, row.Name,
				StatusRunning, msg, RowFailed))
			continue
		}

		if endSec <= startSec {
			skipped++
			msg := fmt.Sprintf("Row %d skipped: end time must be greater than start time", rowNum)
			errs = append(errs, msg)
			emit.Emit(ProgressEventName, rowEvent(total, idx+1, idx, row.Name,
				StatusRunning, msg, RowFailed))
			continue
		}

		ext := encode.OutputExt(settings.ProcessingMode, req.VideoPath)
		destination := filepath.Join(req.OutputDir, encode.OutputName(idx+1, row.Name, row.Start, ext))
		args := encode.BuildArgs(settings, req.VideoPath, destination, startSec, endSec)

		emit.Emit(ProgressEventName, rowEvent(total, idx, idx, row.Name,
			StatusRunning, fmt.Sprintf("Exporting clip %d of %d", idx+1, total), RowRunning))

		log.Debug("spawning encoder", "row", rowNum, "args", args)

		var stderr bytes.Buffer
		waitErr, fatal := e.spawnAndWait(state, exec.Command(e.ffmpegBin, args...), &stderr)
		if fatal != nil {
			return nil, fatal
		}

		if state.StopRequested() {
			failed++
			errs = append(errs, fmt.Sprintf("Stopped while exporting row %d", rowNum))
			break
		}

		success := waitErr == nil && fileExists(destination)
		if success {
			exported++
		} else {
			failed++
			errs = append(errs, fmt.Sprintf("Row %d failed (%s)", rowNum, row.Name))
			log.Warn("encoder failed",
				"row", rowNum,
				"error", waitErr,
				"stderr_tail", stderr.String(),
			)
		}

		result := RowSuccess
		if !success {
			result = RowFailed
		}
		emit.Emit(ProgressEventName, rowEvent(total, idx+1, idx, row.Name,
			StatusRunning, fmt.Sprintf("Finished clip %d of %d", idx+1, total), result))
	}

	status := StatusDone
	if state.StopRequested() {
		status = StatusStopped
	}

	emit.Emit(ProgressEventName, ProgressEvent{
		Total:     total,
		Completed: exported + failed + skipped,
		Status:    status,
		Message:   fmt.Sprintf("Done. Exported: %d, Skipped: %d, Failed: %d", exported, skipped, failed),
	})

	log.Info("export run finished",
		"status", status,
		"exported", exported,
		"skipped", skipped,
		"failed", failed,
	)

	return &Summary{
		TotalRows: total,
		Exported:  exported,
		Skipped:   skipped,
		Failed:    failed,
		Errors:    errs,
	}, nil
}

// checkFreeDisk warns when the output directory is low on space. The
// precondition set is closed, so this never fails the run.
func (e *Engine) checkFreeDisk(log *slog.Logger, dir string) {
	if e.minFreeDisk == 0 {
		return
	}
	usage, err := disk.Usage(dir)
	if err != nil {
		log.Warn("could not check free disk space", "dir", logging.SanitizePath(dir), "error", err)
		return
	}
	if usage.Free < e.minFreeDisk {
		log.Warn("low free disk space in output directory",
			"free_bytes", usage.Free,
			"threshold_bytes", e.minFreeDisk,
		)
	}
}

func rowEvent(total, completed, idx int, clip, status, message, result string) ProgressEvent {
	rowIdx := idx
	return ProgressEvent{
		Total:       total,
		Completed:   completed,
		CurrentClip: clip,
		Status:      status,
		Message:     message,
		RowIndex:    &rowIdx,
		RowResult:   result,
	}
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
