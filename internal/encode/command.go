package encode

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

// DefaultContainer is the output container for re-encoded clips, and the
// fallback when a stream-copied source has no usable extension.
const DefaultContainer = "mp4"

// OutputExt resolves the destination extension (without dot). Stream copy
// keeps the source container; the re-encode modes always produce the
// default container.
func OutputExt(mode ProcessingMode, sourceVideo string) string {
	if mode == ModeCopyFast {
		ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(sourceVideo), "."))
		if ext != "" {
			return ext
		}
	}
	return DefaultContainer
}

// OutputName builds the deterministic destination filename for a row:
// zero-padded ordinal, sanitized clip name and colon-stripped start label,
// joined with hyphens.
func OutputName(ordinal int, clipName, startTime, ext string) string {
	label := strings.ReplaceAll(startTime, ":", "")
	return fmt.Sprintf("%03d-%s-%s.%s", ordinal, SanitizeName(clipName), label, ext)
}

// SanitizeName reduces a clip name to filename-safe characters. ASCII
// letters, digits, hyphens and underscores survive; everything else,
// spaces included, collapses into single hyphens. An empty result falls
// back to a generic name.
func SanitizeName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}

	parts := strings.Split(b.String(), "-")
	kept := parts[:0]
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	compact := strings.Join(kept, "-")

	if compact == "" {
		return "clip"
	}
	return compact
}

// BuildArgs constructs the full ffmpeg argument list (binary excluded) for
// one clip. Settings must already be normalized.
func BuildArgs(s Settings, sourceVideo, destination string, startSec, endSec float64) []string {
	args := make([]string, 0, 32)
	args = append(args, "-y", "-loglevel", "error", "-nostats")

	duration := endSec - startSec

	switch s.ProcessingMode {
	case ModeCopyFast:
		// Seek before the input and remux without re-encoding.
		args = append(args,
			"-ss", formatFloat(startSec),
			"-i", sourceVideo,
			"-t", formatFloat(duration),
			"-c", "copy",
		)

	case ModeReencodeFastSeek:
		args = append(args,
			"-ss", formatFloat(startSec),
			"-i", sourceVideo,
			"-t", formatFloat(duration),
		)
		args = appendVideoCodec(args, s)
		args = appendAudioCodec(args, s)

	default:
		// Precise: seek after the input so trimming is frame-accurate,
		// bounded by an explicit end time instead of a duration.
		args = append(args,
			"-i", sourceVideo,
			"-ss", formatFloat(startSec),
			"-to", formatFloat(endSec),
		)
		args = appendVideoCodec(args, s)
		args = appendAudioCodec(args, s)
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(destination), "."))
	if ext == "mp4" || ext == "m4v" {
		// Front-load the moov atom for progressive playback.
		args = append(args, "-movflags", "+faststart")
	}

	args = append(args, destination)
	return args
}

func appendVideoCodec(args []string, s Settings) []string {
	args = append(args,
		"-c:v", "libx264",
		"-preset", string(s.Preset),
		"-crf", strconv.Itoa(s.CRF),
	)
	if filter := scaleFilter(s.Resolution); filter != "" {
		args = append(args, "-vf", filter)
	}
	if s.FPS != nil {
		args = append(args, "-r", formatFloat(*s.FPS))
	}
	return args
}

func appendAudioCodec(args []string, s Settings) []string {
	switch s.AudioCodec {
	case AudioNone:
		return append(args, "-an")
	case AudioCopy:
		return append(args, "-c:a", "copy")
	default:
		return append(args,
			"-c:a", "aac",
			"-b:a", fmt.Sprintf("%dk", s.AudioBitrateKbps),
		)
	}
}

// scaleFilter returns a scale+pad chain that fits the frame inside the
// fixed dimensions and letterboxes the remainder.
func scaleFilter(res Resolution) string {
	var w, h int
	switch res {
	case Res1080p:
		w, h = 1920, 1080
	case Res720p:
		w, h = 1280, 720
	case Res480p:
		w, h = 854, 480
	default:
		return ""
	}
	return fmt.Sprintf(
		"scale=%d:%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2",
		w, h, w, h,
	)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
