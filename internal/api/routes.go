package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nickmaccarthy/ClipChop/internal/clips"
	"github.com/nickmaccarthy/ClipChop/internal/config"
	"github.com/nickmaccarthy/ClipChop/internal/encode"
	"github.com/nickmaccarthy/ClipChop/internal/exporter"
	"github.com/nickmaccarthy/ClipChop/internal/store"
)

func NewRouter(cfg ServerConfig) *chi.Mux {
	r := chi.NewRouter()

	r.Use(RequestIDMiddleware())
	r.Use(RecoveryMiddleware(cfg.Logger))
	r.Use(LoggingMiddleware(cfg.Logger))

	r.Get("/health", healthHandler(cfg))
	r.Get("/events", eventsHandler(cfg))

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(cfg.Repository, cfg.Logger))

		r.Get("/status", statusHandler(cfg))
		r.Post("/preview", previewHandler(cfg))
		r.Post("/export", exportHandler(cfg))
		r.Post("/export/stop", stopHandler(cfg))
		r.Get("/runs/last", lastRunHandler(cfg))
		r.Get("/settings", getSettingsHandler(cfg))
		r.Put("/settings", putSettingsHandler(cfg))
	})

	return r
}

func healthHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := int64(time.Since(cfg.StartTime).Seconds())
		WriteJSON(w, http.StatusOK, HealthResponse{
			Status:   "ok",
			Version:  config.Version,
			UptimeS:  uptime,
			DeviceID: cfg.DeviceID,
		})
	}
}

func statusHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		st := cfg.Exporter.Status()

		state := "idle"
		if st.Active {
			state = "exporting"
		}

		WriteJSON(w, http.StatusOK, StatusResponse{
			State:     state,
			RunID:     st.RunID,
			Total:     st.Total,
			Completed: st.Completed,
		})
	}
}

func previewHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req PreviewRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}
		if req.CSVPath == "" {
			WriteError(w, http.StatusBadRequest, "csv_path is required", "BAD_REQUEST")
			return
		}

		preview, err := clips.PreviewCSV(req.CSVPath)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error(), "BAD_REQUEST")
			return
		}

		WriteJSON(w, http.StatusOK, preview)
	}
}

func exportHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ExportRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		if req.VideoPath == "" {
			WriteError(w, http.StatusBadRequest, "video_path is required", "BAD_REQUEST")
			return
		}
		if req.OutputDir == "" {
			WriteError(w, http.StatusBadRequest, "output_dir is required", "BAD_REQUEST")
			return
		}
		if req.CSVPath == "" && req.EditedRows == nil {
			WriteError(w, http.StatusBadRequest, "csv_path or edited_rows is required", "BAD_REQUEST")
			return
		}

		settings := resolveSettings(r, cfg, req.Settings)

		runID, err := cfg.Exporter.Start(exporter.Request{
			CSVPath:    req.CSVPath,
			VideoPath:  req.VideoPath,
			OutputDir:  req.OutputDir,
			Settings:   settings,
			EditedRows: req.EditedRows,
		}, cfg.Broadcaster)
		if err != nil {
			if errors.Is(err, exporter.ErrRunActive) {
				WriteError(w, http.StatusConflict, err.Error(), "RUN_ACTIVE")
				return
			}
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}

		rememberPaths(r, cfg, req)

		WriteJSON(w, http.StatusAccepted, ExportResponse{RunID: runID})
	}
}

// resolveSettings prefers the request's settings, then the persisted
// defaults, then the built-in defaults.
func resolveSettings(r *http.Request, cfg ServerConfig, reqSettings *encode.Settings) encode.Settings {
	if reqSettings != nil {
		return *reqSettings
	}
	saved, err := cfg.Repository.GetSettings(r.Context())
	if err != nil {
		cfg.Logger.Warn("failed to load saved settings", "error", err)
	}
	if saved != nil {
		return *saved
	}
	return encode.DefaultSettings()
}

// rememberPaths stores the last-used paths so the shell can pre-fill them
// next session. Best effort only.
func rememberPaths(r *http.Request, cfg ServerConfig, req ExportRequest) {
	pairs := map[string]string{
		store.KeyLastCSVPath:   req.CSVPath,
		store.KeyLastVideoPath: req.VideoPath,
		store.KeyLastOutputDir: req.OutputDir,
	}
	for key, value := range pairs {
		if value == "" {
			continue
		}
		if err := cfg.Repository.SetConfig(r.Context(), key, value); err != nil {
			cfg.Logger.Warn("failed to remember path", "key", key, "error", err)
		}
	}
}

func stopHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := cfg.Exporter.Stop(); err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error(), "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, map[string]string{"status": "stopping"})
	}
}

func lastRunHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		summary, err := cfg.Exporter.LastRun()
		if err != nil {
			WriteJSON(w, http.StatusOK, map[string]string{"error": err.Error()})
			return
		}
		if summary == nil {
			WriteError(w, http.StatusNotFound, "no export run has completed", "NOT_FOUND")
			return
		}
		WriteJSON(w, http.StatusOK, summary)
	}
}

func getSettingsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		saved, err := cfg.Repository.GetSettings(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to load settings", "INTERNAL_ERROR")
			return
		}
		if saved == nil {
			defaults := encode.DefaultSettings()
			WriteJSON(w, http.StatusOK, defaults)
			return
		}
		WriteJSON(w, http.StatusOK, saved)
	}
}

func putSettingsHandler(cfg ServerConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var s encode.Settings
		if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
			WriteError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
			return
		}

		normalized := s.Normalize()
		if err := cfg.Repository.SetSettings(r.Context(), normalized); err != nil {
			WriteError(w, http.StatusInternalServerError, "failed to save settings", "INTERNAL_ERROR")
			return
		}
		WriteJSON(w, http.StatusOK, normalized)
	}
}
