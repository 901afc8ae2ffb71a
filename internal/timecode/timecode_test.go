package timecode

import (
	"math"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  float64
		ok    bool
	}{
		{"seconds only", "90", 90, true},
		{"fractional seconds", "1.5", 1.5, true},
		{"minutes seconds", "1:30", 90, true},
		{"hours minutes seconds", "1:02:03", 3723, true},
		{"hours minutes seconds frames", "1:02:03:15", 3723.5, true},
		{"frames divide by thirty", "0:0:0:15", 0.5, true},
		{"leading zeros", "00:05", 5, true},
		{"surrounding whitespace", "  1:30  ", 90, true},
		{"zero", "0", 0, true},
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"five fields", "1:2:3:4:5", 0, false},
		{"non numeric field", "1:xx", 0, false},
		{"empty field", "1::30", 0, false},
		{"internal spaces", "1: 30", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.input)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.input, ok, tt.ok)
			}
			if !tt.ok {
				return
			}
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Parse(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParse_FieldWeights(t *testing.T) {
	// The same trailing fields must mean the same thing regardless of how
	// many leading fields are present.
	twoField, _ := Parse("2:05")
	threeField, _ := Parse("0:2:05")
	if twoField != threeField {
		t.Fatalf("2:05 = %v but 0:2:05 = %v", twoField, threeField)
	}

	fourField, _ := Parse("0:0:2:30")
	if want := 3.0; fourField != want {
		t.Fatalf("0:0:2:30 = %v, want %v", fourField, want)
	}
}
