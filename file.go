package tjachart

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/simonhull/tjachart/internal/audioprobe"
	"github.com/simonhull/tjachart/internal/textenc"
)

// Open reads a chart file and parses it.
//
// The file's text encoding is detected (BOM, UTF-8, then Shift-JIS) unless
// WithEncoding is given. Song.Path is set to path, and Song.AudioFilename is
// resolved against the chart's directory. With WithAudioProbe the audio file
// is also inspected to fill Song.Audio.
//
// Options can be provided to customize parsing behavior:
//
//	song, err := tjachart.Open("songs/Ready to/Ready to.tja",
//	    tjachart.WithStrictParsing(),
//	)
//
// Example:
//
//	song, err := tjachart.Open("Ready to.tja")
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s (%.0f BPM)\n", song.Title, song.BPM)
func Open(path string, opts ...Option) (*Song, error) {
	return openFile(path, applyOptions(opts))
}

func openFile(path string, o *openOptions) (*Song, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	text, enc, err := textenc.Decode(data, o.encoding)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	o.logger.Debug("decoded chart", "path", path, "encoding", enc, "bytes", len(data))

	song, err := build(text, path)
	if err != nil {
		return nil, err
	}

	if song.AudioFilename != "" && !filepath.IsAbs(song.AudioFilename) {
		song.AudioFilename = filepath.Join(filepath.Dir(path), song.AudioFilename)
	}
	if o.probeAudio {
		probeAudio(song, o)
	}
	return finish(song, o)
}

// probeAudio fills Song.Audio and warns when the audio is missing,
// unreadable or shorter than a chart.
func probeAudio(song *Song, o *openOptions) {
	info, err := audioprobe.Probe(song.AudioFilename)
	switch {
	case errors.Is(err, audioprobe.ErrUnsupported):
		o.logger.Debug("audio format not probed", "path", song.AudioFilename)
		return
	case err != nil:
		song.Warnings = append(song.Warnings, Warning{
			Stage:   "audio",
			Message: fmt.Sprintf("cannot read audio: %v", err),
		})
		return
	}
	song.Audio = info

	// Note times start at the first measure, which plays at -Offset in the audio.
	audioEnd := info.Duration.Seconds()
	for course, d := range song.Courses() {
		if end := d.Duration() - song.Offset; end > audioEnd {
			song.Warnings = append(song.Warnings, Warning{
				Stage:   "audio",
				Message: fmt.Sprintf("chart ends at %.2fs but the audio is %.2fs long", end, audioEnd),
				Course:  course.String(),
			})
		}
	}
}

// OpenContext opens a chart with context support for cancellation.
//
// Parsing a chart is fast and synchronous, so the context is only checked
// before reading starts.
func OpenContext(ctx context.Context, path string, opts ...Option) (*Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return Open(path, opts...)
}

// OpenMany opens multiple charts concurrently.
//
// Charts are parsed in parallel using up to runtime.NumCPU() goroutines,
// or the limit set with WithConcurrency. Results are returned in the same
// order as the input paths.
//
// If any chart fails to open, OpenMany returns the first error and no songs.
// Use ScanLibrary to tolerate broken charts.
//
// Example:
//
//	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
//	defer cancel()
//
//	songs, err := tjachart.OpenMany(ctx, paths...)
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, s := range songs {
//		fmt.Printf("%s: %s\n", s.Path, s.Title)
//	}
func OpenMany(ctx context.Context, paths []string, opts ...Option) ([]*Song, error) {
	if len(paths) == 0 {
		return nil, nil
	}
	o := applyOptions(opts)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.concurrency)

	results := make([]*Song, len(paths))

	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			song, err := openFile(path, o)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			results[i] = song
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
