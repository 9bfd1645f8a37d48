package audioprobe

import (
	"fmt"
	"io"
	"time"

	"github.com/go-audio/wav"

	"github.com/simonhull/tjachart/internal/types"
)

const containerWAV = "WAV"

// probeWAV reads the "fmt " chunk and the size of the "data" chunk. No
// samples are decoded.
func probeWAV(sr *safeReader) (*types.AudioInfo, error) {
	header := make([]byte, 12)
	if err := sr.ReadAt(header, 0, "RIFF header"); err != nil {
		return nil, err
	}
	if string(header[0:4]) != "RIFF" || string(header[8:12]) != "WAVE" {
		return nil, fmt.Errorf("not a RIFF/WAVE file")
	}

	d := wav.NewDecoder(io.NewSectionReader(sr.r, 0, sr.size))
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return nil, fmt.Errorf("read WAVE header: %w", err)
	}
	if d.SampleRate == 0 || d.AvgBytesPerSec == 0 {
		return nil, fmt.Errorf("WAVE file has no usable fmt chunk")
	}

	format := d.Format()
	info := &types.AudioInfo{
		Codec:      wavCodec(d.WavAudioFormat),
		Container:  containerWAV,
		SampleRate: format.SampleRate,
		Channels:   format.NumChannels,
	}

	// Timed from the data chunk size; zero when there is none
	if err := d.FwdToPCM(); err == nil && d.PCMSize > 0 {
		// Streams written without a final size leave it past EOF
		size := min(int64(d.PCMSize), sr.size)
		info.Duration = time.Duration(size) * time.Second / time.Duration(d.AvgBytesPerSec)
	}
	return info, nil
}

func wavCodec(format uint16) string {
	switch format {
	case 0x0001:
		return "PCM"
	case 0x0003:
		return "IEEE float"
	case 0xFFFE:
		return "PCM (extensible)"
	default:
		return fmt.Sprintf("WAVE format 0x%04x", format)
	}
}
