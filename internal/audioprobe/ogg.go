package audioprobe

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/simonhull/tjachart/internal/types"
)

const (
	containerOgg = "Ogg"
	opusRate     = 48000 // Opus granule positions always count 48kHz samples
)

// oggPage is the part of an Ogg page header the probe needs.
type oggPage struct {
	HeaderType      byte // 0x01=continued, 0x02=BOS, 0x04=EOS
	GranulePosition int64
	Data            []byte
}

// readPage reads the Ogg page at offset.
func readPage(sr *safeReader, offset int64) (*oggPage, error) {
	magic := make([]byte, 4)
	if err := sr.ReadAt(magic, offset, "Ogg magic"); err != nil {
		return nil, err
	}
	if string(magic) != "OggS" {
		return nil, fmt.Errorf("invalid Ogg page at offset %d", offset)
	}

	version, err := readLE[uint8](sr, offset+4, "version")
	if err != nil {
		return nil, err
	}
	if version != 0 {
		return nil, fmt.Errorf("unsupported Ogg version: %d", version)
	}

	headerType, err := readLE[uint8](sr, offset+5, "header type")
	if err != nil {
		return nil, err
	}
	granule, err := readLE[uint64](sr, offset+6, "granule position")
	if err != nil {
		return nil, err
	}
	segmentCount, err := readLE[uint8](sr, offset+26, "segment count")
	if err != nil {
		return nil, err
	}

	segments := make([]byte, segmentCount)
	if err := sr.ReadAt(segments, offset+27, "segment table"); err != nil {
		return nil, err
	}
	dataSize := 0
	for _, seg := range segments {
		dataSize += int(seg)
	}

	data := make([]byte, dataSize)
	if err := sr.ReadAt(data, offset+27+int64(segmentCount), "page data"); err != nil {
		return nil, err
	}

	return &oggPage{
		HeaderType:      headerType,
		GranulePosition: int64(granule),
		Data:            data,
	}, nil
}

// lastGranulePosition scans the tail of the file for the final page.
func lastGranulePosition(sr *safeReader) (int64, error) {
	// Search last 64KB (max page size)
	searchStart := max(sr.size-65536, 0)
	buf := make([]byte, sr.size-searchStart)
	if err := sr.ReadAt(buf, searchStart, "search region"); err != nil {
		return 0, err
	}

	for i := len(buf) - 27; i >= 0; i-- {
		if buf[i] == 'O' && buf[i+1] == 'g' && buf[i+2] == 'g' && buf[i+3] == 'S' {
			return int64(binary.LittleEndian.Uint64(buf[i+6 : i+14])), nil
		}
	}
	return 0, fmt.Errorf("could not find last Ogg page")
}

// probeOgg reads the identification header from the first page and the
// length from the last page's granule position.
func probeOgg(sr *safeReader) (*types.AudioInfo, error) {
	first, err := readPage(sr, 0)
	if err != nil {
		return nil, err
	}
	if first.HeaderType&0x02 == 0 {
		return nil, fmt.Errorf("first Ogg page is not a stream start")
	}

	info := &types.AudioInfo{Container: containerOgg}
	var preSkip, rate int64

	switch id := first.Data; {
	case len(id) >= 7 && id[0] == 0x01 && string(id[1:7]) == "vorbis":
		if len(id) < 30 {
			return nil, fmt.Errorf("identification header too short: %d bytes", len(id))
		}
		if v := binary.LittleEndian.Uint32(id[7:11]); v != 0 {
			return nil, fmt.Errorf("unsupported Vorbis version: %d", v)
		}
		info.Codec = "Vorbis"
		info.Channels = int(id[11])
		info.SampleRate = int(binary.LittleEndian.Uint32(id[12:16]))
		rate = int64(info.SampleRate)

	case len(id) >= 8 && string(id[0:8]) == "OpusHead":
		if len(id) < 19 {
			return nil, fmt.Errorf("OpusHead packet too short: %d bytes (need at least 19)", len(id))
		}
		if id[8] != 1 {
			return nil, fmt.Errorf("unsupported Opus version: %d", id[8])
		}
		info.Codec = "Opus"
		info.Channels = int(id[9])
		info.SampleRate = opusRate
		preSkip = int64(binary.LittleEndian.Uint16(id[10:12]))
		rate = opusRate

	default:
		return nil, fmt.Errorf("%w: unknown Ogg codec", ErrUnsupported)
	}

	if rate <= 0 {
		return nil, fmt.Errorf("invalid sample rate %d", rate)
	}

	granule, err := lastGranulePosition(sr)
	if err != nil {
		return nil, err
	}
	if samples := granule - preSkip; samples > 0 {
		info.Duration = time.Duration(samples) * time.Second / time.Duration(rate)
	}
	return info, nil
}
