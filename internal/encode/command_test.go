package encode

import (
	"reflect"
	"strings"
	"testing"
)

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Intro", "Intro"},
		{"My Clip", "My-Clip"},
		{"a/b\\c", "a-b-c"},
		{"hello__world", "hello__world"},
		{"--a--b--", "a-b"},
		{"!!!", "clip"},
		{"", "clip"},
		{"snake_case-kebab", "snake_case-kebab"},
		{"émoji 🎬 here", "moji-here"},
	}

	for _, tt := range tests {
		if got := SanitizeName(tt.in); got != tt.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestOutputName(t *testing.T) {
	got := OutputName(3, "My Clip!", "1:02:03", "mp4")
	want := "003-My-Clip-10203.mp4"
	if got != want {
		t.Fatalf("OutputName() = %q, want %q", got, want)
	}
}

func TestOutputExt(t *testing.T) {
	tests := []struct {
		mode   ProcessingMode
		source string
		want   string
	}{
		{ModeCopyFast, "/videos/a.MKV", "mkv"},
		{ModeCopyFast, "/videos/a.mp4", "mp4"},
		{ModeCopyFast, "/videos/noext", "mp4"},
		{ModeReencodeFastSeek, "/videos/a.mkv", "mp4"},
		{ModeReencodePrecise, "/videos/a.avi", "mp4"},
	}

	for _, tt := range tests {
		if got := OutputExt(tt.mode, tt.source); got != tt.want {
			t.Errorf("OutputExt(%q, %q) = %q, want %q", tt.mode, tt.source, got, tt.want)
		}
	}
}

func TestBuildArgs_CopyFast(t *testing.T) {
	s := DefaultSettings()

	got := BuildArgs(s, "/in/video.mkv", "/out/001-a-5.mkv", 5, 15)
	want := []string{
		"-y", "-loglevel", "error", "-nostats",
		"-ss", "5", "-i", "/in/video.mkv", "-t", "10", "-c", "copy",
		"/out/001-a-5.mkv",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildArgs() = %v, want %v", got, want)
	}
}

func TestBuildArgs_CopyFastIgnoresQuality(t *testing.T) {
	s := DefaultSettings()
	s.Resolution = Res1080p
	s.FPS = floatPtr(30)

	got := BuildArgs(s, "/in/v.mp4", "/out/c.mkv", 0, 1)
	joined := strings.Join(got, " ")
	for _, flag := range []string{"-c:v", "-vf", "-r", "-crf"} {
		if strings.Contains(joined, flag+" ") {
			t.Fatalf("copy_fast args contain %s: %v", flag, got)
		}
	}
}

func TestBuildArgs_FastSeek(t *testing.T) {
	s := DefaultSettings()
	s.ProcessingMode = ModeReencodeFastSeek
	s.CRF = 22

	got := BuildArgs(s, "/in/video.mkv", "/out/001-a-5.mp4", 5, 15)
	want := []string{
		"-y", "-loglevel", "error", "-nostats",
		"-ss", "5", "-i", "/in/video.mkv", "-t", "10",
		"-c:v", "libx264", "-preset", "ultrafast", "-crf", "22",
		"-c:a", "aac", "-b:a", "128k",
		"-movflags", "+faststart",
		"/out/001-a-5.mp4",
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("BuildArgs() = %v, want %v", got, want)
	}
}

func TestBuildArgs_Precise(t *testing.T) {
	s := DefaultSettings()
	s.ProcessingMode = ModeReencodePrecise

	got := BuildArgs(s, "/in/video.mkv", "/out/001-a-5.mp4", 5, 15)

	joined := strings.Join(got, " ")
	if !strings.Contains(joined, "-i /in/video.mkv -ss 5 -to 15") {
		t.Fatalf("precise mode must seek after the input: %v", got)
	}
	if strings.Contains(joined, "-t ") {
		t.Fatalf("precise mode must use -to, not -t: %v", got)
	}
}

func TestBuildArgs_ScaleFilter(t *testing.T) {
	s := DefaultSettings()
	s.ProcessingMode = ModeReencodePrecise
	s.Resolution = Res720p

	got := strings.Join(BuildArgs(s, "/in/v.mp4", "/out/c.mp4", 0, 1), " ")
	want := "scale=1280:720:force_original_aspect_ratio=decrease,pad=1280:720:(ow-iw)/2:(oh-ih)/2"
	if !strings.Contains(got, "-vf "+want) {
		t.Fatalf("args missing scale filter %q: %v", want, got)
	}
}

func TestBuildArgs_AudioVariants(t *testing.T) {
	base := DefaultSettings()
	base.ProcessingMode = ModeReencodePrecise

	none := base
	none.AudioCodec = AudioNone
	if got := strings.Join(BuildArgs(none, "/v.mp4", "/c.mp4", 0, 1), " "); !strings.Contains(got, "-an") {
		t.Fatalf("audio none missing -an: %v", got)
	}

	cp := base
	cp.AudioCodec = AudioCopy
	if got := strings.Join(BuildArgs(cp, "/v.mp4", "/c.mp4", 0, 1), " "); !strings.Contains(got, "-c:a copy") {
		t.Fatalf("audio copy missing -c:a copy: %v", got)
	}

	aac := base
	aac.AudioBitrateKbps = 192
	if got := strings.Join(BuildArgs(aac, "/v.mp4", "/c.mp4", 0, 1), " "); !strings.Contains(got, "-c:a aac -b:a 192k") {
		t.Fatalf("audio aac missing bitrate args: %v", got)
	}
}

func TestBuildArgs_FaststartByContainer(t *testing.T) {
	s := DefaultSettings()

	mp4 := strings.Join(BuildArgs(s, "/in/v.mp4", "/out/c.mp4", 0, 1), " ")
	if !strings.Contains(mp4, "-movflags +faststart") {
		t.Fatalf("mp4 output missing faststart: %v", mp4)
	}

	mkv := strings.Join(BuildArgs(s, "/in/v.mkv", "/out/c.mkv", 0, 1), " ")
	if strings.Contains(mkv, "faststart") {
		t.Fatalf("mkv output must not get faststart: %v", mkv)
	}
}

func TestBuildArgs_FractionalTimes(t *testing.T) {
	s := DefaultSettings()

	got := strings.Join(BuildArgs(s, "/v.mp4", "/c.mp4", 1.5, 3.25), " ")
	if !strings.Contains(got, "-ss 1.5") || !strings.Contains(got, "-t 1.75") {
		t.Fatalf("fractional times mangled: %v", got)
	}
}
