// Package store persists agent state that outlives a process: the device
// identity, the local auth token, last-used paths, and the default export
// settings the shell pre-fills from.
package store

import (
	"context"
	"database/sql"

	"github.com/nickmaccarthy/ClipChop/internal/encode"
)

// Config keys used by the agent.
const (
	KeyDeviceID      = "device_id"
	KeyAuthToken     = "auth_token"
	KeyLastCSVPath   = "last_csv_path"
	KeyLastVideoPath = "last_video_path"
	KeyLastOutputDir = "last_output_dir"
)

type Repository interface {
	GetConfig(ctx context.Context, key string) (string, error)
	SetConfig(ctx context.Context, key, value string) error

	// GetSettings returns the persisted default export settings, or nil
	// when none have been saved yet.
	GetSettings(ctx context.Context) (*encode.Settings, error)
	SetSettings(ctx context.Context, s encode.Settings) error
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetConfig(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM config WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	return value, err
}

func (r *SQLiteRepository) SetConfig(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO config (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	return err
}

func (r *SQLiteRepository) GetSettings(ctx context.Context) (*encode.Settings, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT processing_mode, preset, crf, resolution, audio_codec, audio_bitrate_kbps, fps
		FROM export_settings WHERE id = 1
	`)

	var s encode.Settings
	var mode, preset, resolution, audio string
	var fps sql.NullFloat64
	err := row.Scan(&mode, &preset, &s.CRF, &resolution, &audio, &s.AudioBitrateKbps, &fps)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	s.ProcessingMode = encode.ProcessingMode(mode)
	s.Preset = encode.Preset(preset)
	s.Resolution = encode.Resolution(resolution)
	s.AudioCodec = encode.AudioCodec(audio)
	if fps.Valid {
		v := fps.Float64
		s.FPS = &v
	}
	return &s, nil
}

func (r *SQLiteRepository) SetSettings(ctx context.Context, s encode.Settings) error {
	var fps sql.NullFloat64
	if s.FPS != nil {
		fps = sql.NullFloat64{Float64: *s.FPS, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO export_settings (id, processing_mode, preset, crf, resolution, audio_codec, audio_bitrate_kbps, fps, updated_at)
		VALUES (1, ?, ?, ?, ?, ?, ?, ?, datetime('now'))
		ON CONFLICT(id) DO UPDATE SET
			processing_mode = excluded.processing_mode,
			preset = excluded.preset,
			crf = excluded.crf,
			resolution = excluded.resolution,
			audio_codec = excluded.audio_codec,
			audio_bitrate_kbps = excluded.audio_bitrate_kbps,
			fps = excluded.fps,
			updated_at = datetime('now')
	`, string(s.ProcessingMode), string(s.Preset), s.CRF, string(s.Resolution), string(s.AudioCodec), s.AudioBitrateKbps, fps)
	return err
}
