package types

import (
	"fmt"
	"strings"
	"time"
)

// AudioInfo describes the song's audio file as read from its container
// header. Only a chart opened with audio probing enabled carries one.
type AudioInfo struct {
	Codec      string // "Vorbis", "Opus", "PCM"
	Container  string // "Ogg", "WAV"
	Duration   time.Duration
	SampleRate int
	Channels   int
}

// String returns a human-readable representation of the audio info.
// Example output: "Vorbis 44.1kHz stereo".
func (a AudioInfo) String() string {
	parts := []string{a.Codec}
	if a.SampleRate > 0 {
		parts = append(parts, fmt.Sprintf("%.1fkHz", float64(a.SampleRate)/1000))
	}
	if ch := channelDescription(a.Channels); ch != "" {
		parts = append(parts, ch)
	}
	return strings.Join(parts, " ")
}

// channelDescription returns a human-readable channel description.
func channelDescription(channels int) string {
	switch channels {
	case 0:
		return ""
	case 1:
		return "mono"
	case 2:
		return "stereo"
	default:
		return fmt.Sprintf("%dch", channels)
	}
}
