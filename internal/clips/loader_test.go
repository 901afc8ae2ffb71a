package clips

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "clips.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write csv fixture: %v", err)
	}
	return path
}

func TestLoad_CanonicalHeader(t *testing.T) {
	path := writeCSV(t, "Clip Name,Clip Start Time,Clip End Time\nIntro,0:05,0:10\nOutro,1:00,1:30\n")

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "Intro" || rows[0].Start != "0:05" || rows[0].End != "0:10" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
}

func TestLoad_HeaderAliases(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"short aliases", "name,start,end"},
		{"in and out", "clip,in,out"},
		{"underscores", "clip_name,start_time,end_time"},
		{"hyphens and case", "CLIP-NAME,Start-Time,End-Time"},
		{"extra whitespace", " Clip  Name , Start Time , End Time "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, tt.header+"\na,1,2\n")
			rows, err := Load(path)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if len(rows) != 1 {
				t.Fatalf("len(rows) = %d, want 1", len(rows))
			}
		})
	}
}

func TestLoad_BOMHeader(t *testing.T) {
	path := writeCSV(t, "\ufeffClip Name,Clip Start Time,Clip End Time\na,1,2\n")

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("len(rows) = %d, want 1", len(rows))
	}
}

func TestLoad_MissingColumn(t *testing.T) {
	path := writeCSV(t, "Clip Name,Clip End Time\na,2\n")

	_, err := Load(path)
	var missing *MissingColumnError
	if !errors.As(err, &missing) {
		t.Fatalf("Load() error = %v, want MissingColumnError", err)
	}
	if missing.Column != "clip start time" {
		t.Fatalf("missing.Column = %q, want %q", missing.Column, "clip start time")
	}
}

func TestLoad_DropsAllBlankRows(t *testing.T) {
	path := writeCSV(t, "name,start,end\na,1,2\n,,\n  ,  ,  \nb,3,4\n")

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[1].Name != "b" {
		t.Fatalf("rows[1].Name = %q, want %q", rows[1].Name, "b")
	}
}

func TestLoad_BlankNameDefaults(t *testing.T) {
	path := writeCSV(t, "name,start,end\n,1,2\n")

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rows[0].Name != DefaultName {
		t.Fatalf("rows[0].Name = %q, want %q", rows[0].Name, DefaultName)
	}
}

func TestLoad_ShortRecords(t *testing.T) {
	// Rows with fewer fields than the header are padded with blanks rather
	// than rejected.
	path := writeCSV(t, "name,start,end\na,1\n")

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if rows[0].End != "" {
		t.Fatalf("rows[0].End = %q, want empty", rows[0].End)
	}
}

func TestLoad_HeaderOnly(t *testing.T) {
	path := writeCSV(t, "name,start,end\n")

	rows, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(rows) != 0 {
		t.Fatalf("len(rows) = %d, want 0", len(rows))
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.csv"))
	if err == nil {
		t.Fatal("Load() error = nil, want error")
	}
}

func TestNormalize(t *testing.T) {
	rows, err := Normalize([]Row{
		{Name: " a ", Start: " 1 ", End: " 2 "},
		{Name: "", Start: "", End: ""},
		{Name: "", Start: "3", End: "4"},
	})
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0].Name != "a" || rows[0].Start != "1" {
		t.Fatalf("rows[0] = %+v", rows[0])
	}
	if rows[1].Name != DefaultName {
		t.Fatalf("rows[1].Name = %q, want %q", rows[1].Name, DefaultName)
	}
}

func TestNormalize_Empty(t *testing.T) {
	_, err := Normalize([]Row{{Name: "", Start: "", End: ""}})
	if !errors.Is(err, ErrNoRows) {
		t.Fatalf("Normalize() error = %v, want ErrNoRows", err)
	}
}

func TestPreviewCSV(t *testing.T) {
	path := writeCSV(t, "name,start,end\na,0:05,0:10\nb,bogus,0:20\nc,0:30,\n")

	preview, err := PreviewCSV(path)
	if err != nil {
		t.Fatalf("PreviewCSV() error = %v", err)
	}
	if preview.TotalRows != 3 {
		t.Fatalf("TotalRows = %d, want 3", preview.TotalRows)
	}
	if len(preview.ValidationErrors) != 2 {
		t.Fatalf("ValidationErrors = %v, want 2 entries", preview.ValidationErrors)
	}
	if preview.ValidationErrors[0] != "Row 3 invalid start time: bogus" {
		t.Fatalf("ValidationErrors[0] = %q", preview.ValidationErrors[0])
	}
	if preview.ValidationErrors[1] != "Row 4 missing start/end time" {
		t.Fatalf("ValidationErrors[1] = %q", preview.ValidationErrors[1])
	}
}
