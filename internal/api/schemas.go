package api

import (
	"github.com/nickmaccarthy/ClipChop/internal/clips"
	"github.com/nickmaccarthy/ClipChop/internal/encode"
)

type HealthResponse struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	UptimeS  int64  `json:"uptime_s"`
	DeviceID string `json:"device_id"`
}

type StatusResponse struct {
	State     string `json:"state"`
	RunID     string `json:"run_id,omitempty"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
}

type PreviewRequest struct {
	CSVPath string `json:"csv_path"`
}

type ExportRequest struct {
	CSVPath    string           `json:"csv_path"`
	VideoPath  string           `json:"video_path"`
	OutputDir  string           `json:"output_dir"`
	Settings   *encode.Settings `json:"settings,omitempty"`
	EditedRows []clips.Row      `json:"edited_rows,omitempty"`
}

type ExportResponse struct {
	RunID string `json:"run_id"`
}

type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
