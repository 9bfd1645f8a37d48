// Package audioprobe reads the length and format of a song's audio file
// from its container header, without decoding any audio.
//
// Supported containers are Ogg (Vorbis or Opus) and RIFF WAVE, which cover
// nearly every chart's WAVE file.
package audioprobe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/simonhull/tjachart/internal/types"
)

// ErrUnsupported is returned for audio formats the probe cannot read.
var ErrUnsupported = errors.New("unsupported audio format")

// Probe opens path and reads its audio header.
func Probe(path string) (*types.AudioInfo, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	stat, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat file: %w", err)
	}
	return ProbeReader(f, stat.Size(), path)
}

// ProbeReader reads an audio header from r. The format is detected from the
// leading magic bytes, not from the file extension.
func ProbeReader(r io.ReaderAt, size int64, path string) (*types.AudioInfo, error) {
	sr := newSafeReader(r, size, path)

	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, 0, "magic"); err != nil {
		return nil, err
	}

	var info *types.AudioInfo
	var err error
	switch string(magic) {
	case "OggS":
		info, err = probeOgg(sr)
	case "RIFF":
		info, err = probeWAV(sr)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupported)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return info, nil
}
