package tjachart

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/remeh/sizedwaitgroup"
)

// Library is the result of scanning a song directory.
type Library struct {
	// Root directory that was scanned
	Root string

	// Songs that parsed successfully, ordered by path
	Songs []*Song

	// Directories that could not be loaded, ordered by path
	Failures []Failure
}

// Failure records a song directory that could not be loaded.
type Failure struct {
	Path string // chart path, or the song directory when no chart was found
	Err  error
}

func (f Failure) Error() string {
	return fmt.Sprintf("%s: %v", f.Path, f.Err)
}

func (f Failure) Unwrap() error {
	return f.Err
}

// ScanLibrary loads every song under dir.
//
// Each immediate subdirectory of dir is a song directory. Its chart is
// <name>/<name>.tja when present, otherwise the first .tja file in the
// directory by name. Directories without a chart fail with ErrNoChart.
//
// Unlike OpenMany, a broken chart does not stop the scan: it is logged at
// warn level and recorded in Library.Failures. ScanLibrary only returns an
// error when dir cannot be read or ctx is cancelled.
//
// Example:
//
//	lib, err := tjachart.ScanLibrary(ctx, "songs",
//	    tjachart.WithConcurrency(4),
//	    tjachart.WithLogger(slog.Default()),
//	)
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%d songs, %d failures\n", len(lib.Songs), len(lib.Failures))
func ScanLibrary(ctx context.Context, dir string, opts ...Option) (*Library, error) {
	o := applyOptions(opts)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read library: %w", err)
	}

	lib := &Library{Root: dir}
	var mu sync.Mutex
	fail := func(path string, err error) {
		o.logger.Warn("skipping song", "path", path, "err", err)
		mu.Lock()
		lib.Failures = append(lib.Failures, Failure{Path: path, Err: err})
		mu.Unlock()
	}

	wg := sizedwaitgroup.New(o.concurrency)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if err := wg.AddWithContext(ctx); err != nil {
			break
		}
		go func(songDir string) {
			defer wg.Done()

			chart, err := findChart(songDir)
			if err != nil {
				fail(songDir, err)
				return
			}
			song, err := openFile(chart, o)
			if err != nil {
				fail(chart, err)
				return
			}

			mu.Lock()
			lib.Songs = append(lib.Songs, song)
			mu.Unlock()
		}(filepath.Join(dir, e.Name()))
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	slices.SortFunc(lib.Songs, func(a, b *Song) int { return cmp.Compare(a.Path, b.Path) })
	slices.SortFunc(lib.Failures, func(a, b Failure) int { return cmp.Compare(a.Path, b.Path) })
	o.logger.Info("library scanned", "root", dir, "songs", len(lib.Songs), "failures", len(lib.Failures))

	return lib, nil
}

// findChart picks the chart file of a song directory.
func findChart(songDir string) (string, error) {
	named := filepath.Join(songDir, filepath.Base(songDir)+".tja")
	if fi, err := os.Stat(named); err == nil && fi.Mode().IsRegular() {
		return named, nil
	}

	entries, err := os.ReadDir(songDir)
	if err != nil {
		return "", err
	}
	// ReadDir returns entries sorted by filename
	for _, e := range entries {
		if e.Type().IsRegular() && strings.EqualFold(filepath.Ext(e.Name()), ".tja") {
			return filepath.Join(songDir, e.Name()), nil
		}
	}
	return "", ErrNoChart
}
