package encode

import (
	"math"
	"testing"
)

func floatPtr(v float64) *float64 {
	return &v
}

func TestNormalize_ClampsAndDefaults(t *testing.T) {
	in := Settings{
		ProcessingMode:   "bogus",
		Preset:           "placebo",
		CRF:              5,
		Resolution:       "4k",
		AudioCodec:       "opus",
		AudioBitrateKbps: 1000,
	}

	got := in.Normalize()

	if got.ProcessingMode != ModeCopyFast {
		t.Fatalf("ProcessingMode = %q, want %q", got.ProcessingMode, ModeCopyFast)
	}
	if got.Preset != PresetUltrafast {
		t.Fatalf("Preset = %q, want %q", got.Preset, PresetUltrafast)
	}
	if got.CRF != MinCRF {
		t.Fatalf("CRF = %d, want %d", got.CRF, MinCRF)
	}
	if got.Resolution != ResSource {
		t.Fatalf("Resolution = %q, want %q", got.Resolution, ResSource)
	}
	if got.AudioCodec != AudioAAC {
		t.Fatalf("AudioCodec = %q, want %q", got.AudioCodec, AudioAAC)
	}
	if got.AudioBitrateKbps != MaxAudioBitrateKbps {
		t.Fatalf("AudioBitrateKbps = %d, want %d", got.AudioBitrateKbps, MaxAudioBitrateKbps)
	}
}

func TestNormalize_ValidInputUnchanged(t *testing.T) {
	in := Settings{
		ProcessingMode:   ModeReencodePrecise,
		Preset:           PresetMedium,
		CRF:              23,
		Resolution:       Res720p,
		AudioCodec:       AudioCopy,
		AudioBitrateKbps: 192,
		FPS:              floatPtr(29.97),
	}

	got := in.Normalize()

	if got.ProcessingMode != ModeReencodePrecise || got.Preset != PresetMedium ||
		got.CRF != 23 || got.Resolution != Res720p || got.AudioCodec != AudioCopy ||
		got.AudioBitrateKbps != 192 {
		t.Fatalf("Normalize() = %+v, want input unchanged", got)
	}
	if got.FPS == nil || *got.FPS != 29.97 {
		t.Fatalf("FPS = %v, want 29.97", got.FPS)
	}
}

func TestNormalize_FPS(t *testing.T) {
	tests := []struct {
		name string
		fps  *float64
		want *float64
	}{
		{"nil stays nil", nil, nil},
		{"in range kept", floatPtr(60), floatPtr(60)},
		{"lower bound kept", floatPtr(1), floatPtr(1)},
		{"below range dropped", floatPtr(0.5), nil},
		{"above range dropped", floatPtr(240), nil},
		{"nan dropped", floatPtr(math.NaN()), nil},
		{"inf dropped", floatPtr(math.Inf(1)), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Settings{FPS: tt.fps}.Normalize()
			if tt.want == nil {
				if got.FPS != nil {
					t.Fatalf("FPS = %v, want nil", *got.FPS)
				}
				return
			}
			if got.FPS == nil || *got.FPS != *tt.want {
				t.Fatalf("FPS = %v, want %v", got.FPS, *tt.want)
			}
		})
	}
}

func TestNormalize_DoesNotMutateInput(t *testing.T) {
	fps := math.NaN()
	in := Settings{ProcessingMode: "junk", FPS: &fps}
	in.Normalize()

	if in.ProcessingMode != "junk" {
		t.Fatalf("input mutated: ProcessingMode = %q", in.ProcessingMode)
	}
	if in.FPS != &fps {
		t.Fatal("input mutated: FPS pointer replaced")
	}
}
