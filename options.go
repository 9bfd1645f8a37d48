package tjachart

import (
	"log/slog"
	"runtime"

	"github.com/simonhull/tjachart/internal/textenc"
)

// Option configures how charts are read and parsed.
//
// Options use the functional options pattern for clean, extensible APIs.
//
// Example:
//
//	song, err := tjachart.Open("songs/Ready to/Ready to.tja",
//	    tjachart.WithStrictParsing(),
//	    tjachart.WithEncoding(tjachart.EncodingShiftJIS),
//	)
type Option func(*openOptions)

// openOptions holds configuration for parsing charts.
type openOptions struct {
	strictParsing  bool         // Fail on any warning
	ignoreWarnings bool         // Suppress all warnings
	encoding       Encoding     // Text encoding of chart files
	probeAudio     bool         // Read the WAVE file header in Open
	concurrency    int          // Parallel parses in OpenMany and ScanLibrary
	logger         *slog.Logger // Receives warnings and scan failures
}

// defaultOptions returns the default configuration.
func defaultOptions() *openOptions {
	return &openOptions{
		encoding:    EncodingAuto,
		concurrency: runtime.NumCPU(),
		logger:      slog.New(slog.DiscardHandler),
	}
}

func applyOptions(opts []Option) *openOptions {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Encoding is an alias to textenc.Encoding.
type Encoding = textenc.Encoding

// Supported chart encodings.
const (
	EncodingAuto     = textenc.Auto
	EncodingUTF8     = textenc.UTF8
	EncodingShiftJIS = textenc.ShiftJIS
	EncodingUTF16    = textenc.UTF16
)

// ParseEncoding is a wrapper around textenc.ParseEncoding.
func ParseEncoding(name string) (Encoding, error) {
	return textenc.ParseEncoding(name)
}

// WithStrictParsing treats any warning as a fatal error.
//
// By default, tjachart returns a Song alongside warnings for issues such as
// balloons without a hit count or notes after the last measure terminator.
// With strict parsing enabled the first warning becomes an error.
func WithStrictParsing() Option {
	return func(o *openOptions) {
		o.strictParsing = true
	}
}

// WithIgnoreWarnings suppresses all warnings.
//
// Song.Warnings will always be empty. Warnings are still logged at debug
// level if a logger is set.
func WithIgnoreWarnings() Option {
	return func(o *openOptions) {
		o.ignoreWarnings = true
	}
}

// WithEncoding forces the text encoding of chart files.
//
// The default, EncodingAuto, honours a BOM, accepts valid UTF-8 and falls
// back to Shift-JIS. Parse ignores this option since its input is already
// a string.
func WithEncoding(enc Encoding) Option {
	return func(o *openOptions) {
		o.encoding = enc
	}
}

// WithConcurrency limits how many charts OpenMany and ScanLibrary parse at
// once. Values below 1 are ignored. Default is runtime.NumCPU().
func WithConcurrency(n int) Option {
	return func(o *openOptions) {
		if n > 0 {
			o.concurrency = n
		}
	}
}

// WithLogger sets the logger for chart warnings and library scan failures.
//
// Default discards everything.
//
// Example:
//
//	lib, err := tjachart.ScanLibrary(ctx, "songs",
//	    tjachart.WithLogger(slog.Default()),
//	)
func WithLogger(l *slog.Logger) Option {
	return func(o *openOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithAudioProbe reads the header of each chart's WAVE file in Open,
// OpenMany and ScanLibrary.
//
// Song.Audio is filled with the codec, sample rate and length of Ogg
// (Vorbis, Opus) and WAV files. A missing or corrupt audio file, or a chart
// that runs past the end of its audio, adds an "audio" warning. Other audio
// formats are skipped silently.
func WithAudioProbe() Option {
	return func(o *openOptions) {
		o.probeAudio = true
	}
}
