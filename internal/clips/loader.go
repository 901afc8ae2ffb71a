package clips

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nickmaccarthy/ClipChop/internal/timecode"
)

// ErrNoRows indicates an input that produced zero clip rows after
// filtering. Deliberately strict: a run over nothing is treated as a
// mistake, not a trivial success.
var ErrNoRows = errors.New("no clip rows to export")

// MissingColumnError reports which logical column could not be resolved
// from the CSV header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("csv missing %s column", e.Column)
}

// Header aliases per logical column. Matching is case-insensitive and
// treats underscores, hyphens and runs of whitespace as a single space.
var (
	nameAliases  = []string{"clip name", "name", "clip"}
	startAliases = []string{"clip start time", "start time", "start", "in"}
	endAliases   = []string{"clip end time", "end time", "end", "out"}
)

// Load reads clip rows from a CSV file. The header row is required;
// flexible field counts per row are tolerated. Rows where all three fields
// are blank are dropped as filler, and a present-but-blank name defaults
// to DefaultName. A header-only CSV yields zero rows without error.
func Load(csvPath string) ([]Row, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("csv file not found: %s", csvPath)
		}
		return nil, fmt.Errorf("failed to open csv: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed reading csv header: %w", err)
	}

	idxName, ok := findHeaderIndex(header, nameAliases)
	if !ok {
		return nil, &MissingColumnError{Column: "clip name"}
	}
	idxStart, ok := findHeaderIndex(header, startAliases)
	if !ok {
		return nil, &MissingColumnError{Column: "clip start time"}
	}
	idxEnd, ok := findHeaderIndex(header, endAliases)
	if !ok {
		return nil, &MissingColumnError{Column: "clip end time"}
	}

	var rows []Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed reading csv rows: %w", err)
		}

		name := field(record, idxName)
		start := field(record, idxStart)
		end := field(record, idxEnd)

		if name == "" && start == "" && end == "" {
			continue
		}
		if name == "" {
			name = DefaultName
		}

		rows = append(rows, Row{Name: name, Start: start, End: end})
	}

	return rows, nil
}

// Normalize applies the loader's row rules to a pre-supplied list of rows,
// typically edited in the shell after a CSV was loaded. Unlike Load, an
// input that filters down to nothing is a hard error.
func Normalize(raw []Row) ([]Row, error) {
	rows := make([]Row, 0, len(raw))
	for _, r := range raw {
		name := strings.TrimSpace(r.Name)
		start := strings.TrimSpace(r.Start)
		end := strings.TrimSpace(r.End)

		if name == "" && start == "" && end == "" {
			continue
		}
		if name == "" {
			name = DefaultName
		}

		rows = append(rows, Row{Name: name, Start: start, End: end})
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: load a CSV first", ErrNoRows)
	}
	return rows, nil
}

// PreviewCSV performs full column resolution and per-row timecode
// validation without triggering any export. Row numbers in messages are
// CSV line numbers (the first data row is row 2).
func PreviewCSV(csvPath string) (*Preview, error) {
	rows, err := Load(csvPath)
	if err != nil {
		return nil, err
	}

	var issues []string
	for i, row := range rows {
		rowNum := i + 2
		if row.Start == "" || row.End == "" {
			issues = append(issues, fmt.Sprintf("Row %d missing start/end time", rowNum))
			continue
		}
		if _, ok := timecode.Parse(row.Start); !ok {
			issues = append(issues, fmt.Sprintf("Row %d invalid start time: %s", rowNum, row.Start))
		}
		if _, ok := timecode.Parse(row.End); !ok {
			issues = append(issues, fmt.Sprintf("Row %d invalid end time: %s", rowNum, row.End))
		}
	}

	return &Preview{TotalRows: len(rows), Rows: rows, ValidationErrors: issues}, nil
}

func field(record []string, idx int) string {
	if idx < len(record) {
		return strings.TrimSpace(record[idx])
	}
	return ""
}

func findHeaderIndex(header []string, aliases []string) (int, bool) {
	for i, h := range header {
		normalized := normalizeHeader(h)
		for _, alias := range aliases {
			if normalized == alias {
				return i, true
			}
		}
	}
	return 0, false
}

// normalizeHeader strips a UTF-8 byte-order marker, lowercases, and folds
// underscores, hyphens and whitespace runs into single spaces so that
// "Clip_Name", "clip-name" and " CLIP NAME " all resolve alike.
func normalizeHeader(input string) string {
	input = strings.TrimPrefix(input, "\ufeff")
	input = strings.ToLower(strings.TrimSpace(input))
	input = strings.NewReplacer("_", " ", "-", " ").Replace(input)
	return strings.Join(strings.Fields(input), " ")
}
