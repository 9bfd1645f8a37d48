package types

import "fmt"

// SyntaxError is returned when chart text does not match the grammar.
//
// Parsing stops at the first syntax error; no partial chart is returned.
type SyntaxError struct {
	Path   string
	Line   int    // 1-based line number in the chart
	Text   string // offending line, without terminator
	Reason string
}

func (e *SyntaxError) Error() string {
	loc := fmt.Sprintf("line %d", e.Line)
	if e.Path != "" {
		loc = fmt.Sprintf("%s:%d", e.Path, e.Line)
	}
	if e.Text != "" {
		return fmt.Sprintf("%s: syntax error: %s (near %q)", loc, e.Reason, e.Text)
	}
	return fmt.Sprintf("%s: syntax error: %s", loc, e.Reason)
}

// MetadataNeededError is returned when a required header (TITLE, BPM, WAVE)
// is missing from an otherwise well-formed chart.
type MetadataNeededError struct {
	Path string
	Key  string
}

func (e *MetadataNeededError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: missing required metadata %s", e.Path, e.Key)
	}
	return fmt.Sprintf("missing required metadata %s", e.Key)
}

// InvalidMetadataError is returned when a header value cannot be interpreted,
// such as a non-numeric BPM or an unknown COURSE.
type InvalidMetadataError struct {
	Path  string
	Key   string
	Value string
	Err   error
}

func (e *InvalidMetadataError) Error() string {
	prefix := ""
	if e.Path != "" {
		prefix = e.Path + ": "
	}
	return fmt.Sprintf("%sinvalid %s value %q: %v", prefix, e.Key, e.Value, e.Err)
}

func (e *InvalidMetadataError) Unwrap() error {
	return e.Err
}

// Warning represents a non-fatal issue encountered while building a song.
//
// Examples include:
//   - A balloon note with no matching BALLOON count
//   - Notes after the last measure terminator of a track
//   - A drumroll left open at #END
type Warning struct {
	// Stage where the warning occurred
	Stage string // "metadata", "timing"

	// Warning message
	Message string

	// Course the warning belongs to, empty for header-level warnings
	Course string
}

// String returns a human-readable warning message.
func (w Warning) String() string {
	if w.Course != "" {
		return fmt.Sprintf("%s [%s]: %s", w.Stage, w.Course, w.Message)
	}
	return fmt.Sprintf("%s: %s", w.Stage, w.Message)
}
