package tja

import (
	"errors"
	"strings"

	"github.com/simonhull/tjachart/internal/types"
)

// RequiredKeys are the headers every chart must define, in the order they
// are checked.
var RequiredKeys = []string{"TITLE", "BPM", "WAVE"}

// Chart is a grammatically valid chart whose notes are not yet timed.
type Chart struct {
	// Items in source order.
	Items []types.ChartItem

	// Metadata maps every header key to its last value.
	Metadata map[string]string
}

// chartItems recognizes a whole file: header lines and note-track blocks in
// any order, separated by blank lines.
func chartItems(s string) ([]types.ChartItem, string, error) {
	var items []types.ChartItem

	for {
		s = skipSpace(s)
		if s == "" {
			return items, s, nil
		}

		if s[0] == '#' {
			track, rest, err := noteTrack(s)
			if err != nil {
				return nil, s, err
			}
			items = append(items, track)
			s = rest
			continue
		}

		key, value, rest, err := metadataPair(s)
		if err != nil {
			return nil, s, err
		}
		items = append(items, types.Metadata{Key: key, Value: value})
		s = rest
	}
}

// ParseFile parses chart text into its item list and checks the required
// headers.
//
// A grammar failure anywhere in the file is returned as a *types.SyntaxError.
// A missing or empty TITLE, BPM or WAVE is returned as a
// *types.MetadataNeededError naming the first missing key.
func ParseFile(text string) (*Chart, error) {
	src := Preprocess(text)

	items, _, err := chartItems(src)
	if err != nil {
		return nil, syntaxError(src, err)
	}

	meta := make(map[string]string)
	for _, item := range items {
		if m, ok := item.(types.Metadata); ok {
			meta[m.Key] = m.Value
		}
	}

	for _, key := range RequiredKeys {
		if meta[key] == "" {
			return nil, &types.MetadataNeededError{Key: key}
		}
	}

	return &Chart{Items: items, Metadata: meta}, nil
}

// syntaxError converts a grammar failure into a line-numbered error.
func syntaxError(src string, err error) error {
	var pe *parseError
	if !errors.As(err, &pe) {
		return err
	}

	offset := len(src) - len(pe.rest)
	if offset < 0 || offset > len(src) {
		offset = len(src)
	}

	start := strings.LastIndexByte(src[:offset], '\n') + 1
	line, _ := restOfLine(src[start:])

	return &types.SyntaxError{
		Line:   strings.Count(src[:offset], "\n") + 1,
		Text:   strings.TrimSpace(line),
		Reason: pe.reason,
	}
}
