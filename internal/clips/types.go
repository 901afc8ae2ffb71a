package clips

// DefaultName is substituted for a blank clip name during normalization.
const DefaultName = "clip"

// Row is one clip specification: a named sub-range of the source video.
// Start and End remain the raw timestamp text; they are trimmed but never
// defaulted, so a blank value surfaces as a per-row validation failure at
// export time rather than a load failure.
type Row struct {
	Name  string `json:"clip_name"`
	Start string `json:"start_time"`
	End   string `json:"end_time"`
}

// Preview is the result of validating a CSV without exporting anything.
// ValidationErrors collects every row-level issue rather than stopping at
// the first.
type Preview struct {
	TotalRows        int      `json:"total_rows"`
	Rows             []Row    `json:"rows"`
	ValidationErrors []string `json:"validation_errors"`
}
