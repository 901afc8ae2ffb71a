// Package encode maps clip specifications and export settings onto ffmpeg
// argument lists. Settings cross the API boundary as plain text; Normalize
// is the single translation point from untrusted text to the closed types
// used everywhere else.
package encode

import "math"

// ProcessingMode selects the trimming strategy.
type ProcessingMode string

const (
	// ModeCopyFast seeks before the input and stream-copies. Fastest,
	// cut points limited to keyframe boundaries.
	ModeCopyFast ProcessingMode = "copy_fast"
	// ModeReencodeFastSeek seeks before the input, then re-encodes.
	// Fast but the start point is approximate.
	ModeReencodeFastSeek ProcessingMode = "reencode_fast_seek"
	// ModeReencodePrecise seeks after opening the input for frame-accurate
	// trimming at the cost of decoding from the start.
	ModeReencodePrecise ProcessingMode = "reencode_precise"
)

// Preset is an x264 speed preset. Only the faster half of the ladder is
// exposed; clip exports are expected to be quick.
type Preset string

const (
	PresetUltrafast Preset = "ultrafast"
	PresetSuperfast Preset = "superfast"
	PresetVeryfast  Preset = "veryfast"
	PresetFaster    Preset = "faster"
	PresetFast      Preset = "fast"
	PresetMedium    Preset = "medium"
)

// Resolution is a fixed output size, letterboxed to preserve aspect ratio.
type Resolution string

const (
	ResSource Resolution = "source"
	Res1080p  Resolution = "1080p"
	Res720p   Resolution = "720p"
	Res480p   Resolution = "480p"
)

// AudioCodec selects audio handling on the re-encode paths.
type AudioCodec string

const (
	AudioAAC  AudioCodec = "aac"
	AudioCopy AudioCodec = "copy"
	AudioNone AudioCodec = "none"
)

const (
	MinCRF = 16
	MaxCRF = 35

	MinAudioBitrateKbps = 64
	MaxAudioBitrateKbps = 320

	MinFPS = 1.0
	MaxFPS = 120.0
)

// Settings holds the per-run export options. Quality, resolution and audio
// fields apply only to the re-encode modes; copy_fast ignores them.
type Settings struct {
	ProcessingMode   ProcessingMode `json:"processing_mode"`
	Preset           Preset         `json:"preset"`
	CRF              int            `json:"crf"`
	Resolution       Resolution     `json:"resolution"`
	AudioCodec       AudioCodec     `json:"audio_codec"`
	AudioBitrateKbps int            `json:"audio_bitrate_kbps"`
	FPS              *float64       `json:"fps,omitempty"`
}

// DefaultSettings returns the settings used when the shell supplies none.
func DefaultSettings() Settings {
	return Settings{
		ProcessingMode:   ModeCopyFast,
		Preset:           PresetUltrafast,
		CRF:              20,
		Resolution:       ResSource,
		AudioCodec:       AudioAAC,
		AudioBitrateKbps: 128,
	}
}

// Normalize clamps and defaults every field to a valid member. Invalid
// input never propagates into command construction: unrecognized enum text
// falls back to its default, numbers are clamped into range, and an
// out-of-range or non-finite fps is dropped rather than rejected.
func (s Settings) Normalize() Settings {
	out := s

	switch s.ProcessingMode {
	case ModeCopyFast, ModeReencodeFastSeek, ModeReencodePrecise:
	default:
		out.ProcessingMode = ModeCopyFast
	}

	switch s.Preset {
	case PresetUltrafast, PresetSuperfast, PresetVeryfast, PresetFaster, PresetFast, PresetMedium:
	default:
		out.Preset = PresetUltrafast
	}

	switch s.Resolution {
	case ResSource, Res1080p, Res720p, Res480p:
	default:
		out.Resolution = ResSource
	}

	switch s.AudioCodec {
	case AudioAAC, AudioCopy, AudioNone:
	default:
		out.AudioCodec = AudioAAC
	}

	out.CRF = clamp(s.CRF, MinCRF, MaxCRF)
	out.AudioBitrateKbps = clamp(s.AudioBitrateKbps, MinAudioBitrateKbps, MaxAudioBitrateKbps)

	out.FPS = nil
	if s.FPS != nil {
		v := *s.FPS
		if !math.IsNaN(v) && !math.IsInf(v, 0) && v >= MinFPS && v <= MaxFPS {
			fps := v
			out.FPS = &fps
		}
	}

	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
