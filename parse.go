package tjachart

import (
	"fmt"

	"github.com/simonhull/tjachart/internal/textenc"
	"github.com/simonhull/tjachart/internal/timing"
	"github.com/simonhull/tjachart/internal/tja"
)

// Parse parses chart text into a time-resolved Song.
//
// Parse is pure: it performs no I/O and keeps no state between calls, so
// it is safe to call concurrently. A syntax error anywhere in the chart
// fails the whole parse with a *SyntaxError. A chart without TITLE, BPM or
// WAVE fails with a *MetadataNeededError naming the first missing key.
//
// Example:
//
//	song, err := tjachart.Parse(text)
//	if err != nil {
//		return err
//	}
//	oni := song.Difficulty(tjachart.CourseOni)
func Parse(text string, opts ...Option) (*Song, error) {
	return parse(text, "", applyOptions(opts))
}

// ParseBytes decodes raw chart bytes and parses them.
//
// The encoding is detected unless set with WithEncoding.
func ParseBytes(data []byte, opts ...Option) (*Song, error) {
	o := applyOptions(opts)
	text, _, err := textenc.Decode(data, o.encoding)
	if err != nil {
		return nil, err
	}
	return parse(text, "", o)
}

func parse(text, path string, o *openOptions) (*Song, error) {
	song, err := build(text, path)
	if err != nil {
		return nil, err
	}
	return finish(song, o)
}

// build runs the grammar and timing stages.
func build(text, path string) (*Song, error) {
	chart, err := tja.ParseFile(text)
	if err != nil {
		return nil, withPath(err, path)
	}

	song, err := timing.BuildSong(chart.Items, chart.Metadata)
	if err != nil {
		return nil, withPath(err, path)
	}
	song.Path = path
	return song, nil
}

// finish logs warnings and applies the strict and ignore-warnings options.
func finish(song *Song, o *openOptions) (*Song, error) {
	for _, w := range song.Warnings {
		o.logger.Debug("chart warning", "path", song.Path, "stage", w.Stage, "course", w.Course, "msg", w.Message)
	}

	if o.strictParsing && len(song.Warnings) > 0 {
		return nil, fmt.Errorf("strict parsing failed: %s", song.Warnings[0])
	}
	if o.ignoreWarnings {
		song.Warnings = nil
	}

	return song, nil
}
