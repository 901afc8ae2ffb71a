// Package timecode converts textual timestamps into seconds.
package timecode

import (
	"strconv"
	"strings"
)

// Four-field timecodes carry a trailing frame count. The source frame rate
// is not probed, so frames are converted at an assumed 30fps.
const assumedFPS = 30.0

// Parse interprets a colon-delimited timestamp as seconds. One to four
// numeric fields are accepted, read right-to-left as SS, MM:SS, HH:MM:SS
// or HH:MM:SS:FF. The second return value is false for empty input,
// non-numeric fields, or any other field count.
func Parse(text string) (float64, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, false
	}

	parts := strings.Split(text, ":")
	if len(parts) > 4 {
		return 0, false
	}

	fields := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(part, 64)
		if err != nil {
			return 0, false
		}
		fields[i] = v
	}

	switch len(fields) {
	case 1:
		return fields[0], true
	case 2:
		return fields[0]*60 + fields[1], true
	case 3:
		return fields[0]*3600 + fields[1]*60 + fields[2], true
	default:
		return fields[0]*3600 + fields[1]*60 + fields[2] + fields[3]/assumedFPS, true
	}
}
