package tjachart

import (
	"errors"

	"github.com/simonhull/tjachart/internal/types"
)

// SyntaxError is an alias to types.SyntaxError.
// Re-exporting from internal/types to maintain public API.
type SyntaxError = types.SyntaxError

// MetadataNeededError is an alias to types.MetadataNeededError.
// Re-exporting from internal/types to maintain public API.
type MetadataNeededError = types.MetadataNeededError

// InvalidMetadataError is an alias to types.InvalidMetadataError.
// Re-exporting from internal/types to maintain public API.
type InvalidMetadataError = types.InvalidMetadataError

// Warning is an alias to types.Warning.
// Re-exporting from internal/types to maintain public API.
type Warning = types.Warning

// ErrNoChart is returned for a song directory that contains no .tja file.
var ErrNoChart = errors.New("no .tja chart found")

// withPath records the chart path in parse errors that carry one.
func withPath(err error, path string) error {
	if path == "" {
		return err
	}

	var syn *SyntaxError
	var needed *MetadataNeededError
	var invalid *InvalidMetadataError
	switch {
	case errors.As(err, &syn):
		syn.Path = path
	case errors.As(err, &needed):
		needed.Path = path
	case errors.As(err, &invalid):
		invalid.Path = path
	}
	return err
}
