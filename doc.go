// Package tjachart parses TJA rhythm-game charts into time-resolved songs.
//
// A TJA file is a line-oriented text chart: KEY:VALUE headers followed by
// one note track per difficulty, each delimited by #START and #END. tjachart
// validates the grammar, then replays every track against its tempo and
// time-signature commands to produce notes and barlines with absolute times
// in seconds.
//
// # Quick Start
//
// Reading a chart from disk:
//
//	song, err := tjachart.Open("songs/Ready to/Ready to.tja")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("%s (%.0f BPM)\n", song.Title, song.BPM)
//	if oni := song.Difficulty(tjachart.CourseOni); oni != nil {
//		fmt.Printf("Oni ★%d: %d notes\n", oni.StarLevel, len(oni.Notes))
//	}
//
// Parsing text that is already in memory:
//
//	song, err := tjachart.Parse(text)
//
// # Supported Syntax
//
//   - Headers: TITLE, SUBTITLE, BPM, WAVE, OFFSET, DEMOSTART, COURSE, LEVEL, BALLOON
//     (other headers are kept in Song.Metadata)
//   - Notes: digits 0-9 (rest, don, ka, big notes, drumrolls, balloons)
//   - Commands: #START [P1|P2], #END, #GOGOSTART, #GOGOEND, #MEASURE,
//     #BPMCHANGE, #SCROLL, #DELAY, #BARLINEON, #BARLINEOFF, #SECTION
//   - Comments: // to end of line
//   - Encodings: UTF-8 (with or without BOM), UTF-16 with BOM, Shift-JIS
//
// Branching charts (#BRANCHSTART and friends) are rejected as syntax errors.
//
// # Architecture
//
//	[Open/ParseBytes]  - Decode bytes (internal/textenc)
//	  └─ [Parse]       - Entry point for text
//	       ├─ [tja]    - Grammar: comments, headers, note tracks
//	       └─ [timing] - Time resolution per course
//
// The grammar stage is all-or-nothing: any line that does not fit it fails
// the whole chart. The timing stage is lenient and reports recoverable
// problems as warnings.
//
// # Error Handling
//
// tjachart distinguishes between fatal errors and warnings:
//
//   - *SyntaxError: the text does not match the grammar (with line number)
//   - *MetadataNeededError: TITLE, BPM or WAVE is missing
//   - *InvalidMetadataError: a header value cannot be interpreted
//   - Warnings: balloons without a hit count, notes after the last comma,
//     unterminated drumrolls
//
// Check song.Warnings after a successful parse:
//
//	for _, w := range song.Warnings {
//		log.Printf("Warning: %s", w)
//	}
//
// # Libraries
//
// Scan a directory of song folders concurrently:
//
//	lib, err := tjachart.ScanLibrary(ctx, "songs", tjachart.WithLogger(slog.Default()))
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, f := range lib.Failures {
//		log.Printf("skipped %s", f)
//	}
//
// Parsing is pure and holds no shared state, so Parse and Open are safe to
// call from multiple goroutines.
package tjachart
