package timing

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/simonhull/tjachart/internal/types"
)

var (
	errNotPositive = errors.New("must be a positive number")
	errNotFinite   = errors.New("must be a finite number")
)

// course is the header state that applies to the next note track.
type course struct {
	course   types.Course
	level    int
	balloons []int
}

// BuildSong times every note track of a parsed chart and files it under the
// course declared before it.
//
// Headers are applied in source order and stay in effect until redefined,
// so COURSE, LEVEL and BALLOON affect every track that follows them. Without
// a COURSE header tracks go to Oni.
// A #START P2 block fills Difficulty.Player2; a second block for the same
// side replaces the first, with a warning.
func BuildSong(items []types.ChartItem, meta map[string]string) (*types.Song, error) {
	bpm, err := parseFloat("BPM", meta["BPM"])
	if err != nil {
		return nil, err
	}
	if bpm <= 0 {
		return nil, &types.InvalidMetadataError{Key: "BPM", Value: meta["BPM"], Err: errNotPositive}
	}

	song := &types.Song{
		Metadata:      meta,
		Title:         meta["TITLE"],
		Subtitle:      trimSubtitle(meta["SUBTITLE"]),
		AudioFilename: meta["WAVE"],
		BPM:           bpm,
	}

	if v, ok := meta["OFFSET"]; ok && v != "" {
		if song.Offset, err = parseFloat("OFFSET", v); err != nil {
			return nil, err
		}
	}
	if v, ok := meta["DEMOSTART"]; ok && v != "" {
		if song.DemoStart, err = parseFloat("DEMOSTART", v); err != nil {
			return nil, err
		}
	}

	cur := course{course: types.CourseOni}

	for _, item := range items {
		switch it := item.(type) {
		case types.Metadata:
			if err := cur.set(it); err != nil {
				return nil, err
			}
		case types.NoteTrack:
			addTrack(song, cur, it, bpm)
		}
	}

	return song, nil
}

// set applies a per-course header.
func (c *course) set(m types.Metadata) error {
	switch m.Key {
	case "COURSE":
		v, err := types.ParseCourse(m.Value)
		if err != nil {
			return &types.InvalidMetadataError{Key: m.Key, Value: m.Value, Err: err}
		}
		c.course = v
	case "LEVEL":
		if m.Value == "" {
			c.level = 0
			return nil
		}
		v, err := strconv.Atoi(m.Value)
		if err != nil {
			return &types.InvalidMetadataError{Key: m.Key, Value: m.Value, Err: err}
		}
		c.level = v
	case "BALLOON":
		v, err := parseBalloons(m.Value)
		if err != nil {
			return &types.InvalidMetadataError{Key: m.Key, Value: m.Value, Err: err}
		}
		c.balloons = v
	}
	return nil
}

// addTrack times one note track and stores its spans in the song.
// LEVEL and BALLOON are taken from the latest block of the course, so a
// header between the P1 and P2 blocks updates the difficulty.
func addTrack(s *types.Song, c course, track types.NoteTrack, bpm float64) {
	spans, msgs := Build(track, bpm, c.balloons)
	addWarnings(s, c.course, msgs)

	d := s.Difficulties[c.course]
	if d == nil {
		d = &types.Difficulty{Course: c.course}
		s.Difficulties[c.course] = d
	}
	d.StarLevel = c.level
	d.Balloons = c.balloons

	for _, span := range spans {
		if span.Player == types.Player2 {
			if d.Player2 != nil {
				addWarnings(s, c.course, []string{"duplicate #START P2 block replaces the previous one"})
			}
			t := span.Track
			d.Player2 = &t
			continue
		}
		if d.Notes != nil || d.Barlines != nil {
			addWarnings(s, c.course, []string{"duplicate chart replaces the previous one"})
		}
		d.Track = span.Track
	}
}

func addWarnings(s *types.Song, c types.Course, msgs []string) {
	for _, msg := range msgs {
		s.Warnings = append(s.Warnings, types.Warning{
			Stage:   "timing",
			Message: msg,
			Course:  c.String(),
		})
	}
}

func parseFloat(key, value string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return 0, &types.InvalidMetadataError{Key: key, Value: value, Err: err}
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &types.InvalidMetadataError{Key: key, Value: value, Err: errNotFinite}
	}
	return v, nil
}

// parseBalloons parses a BALLOON list such as "10,20". Empty entries, which
// some editors leave behind, are skipped.
func parseBalloons(value string) ([]int, error) {
	var out []int
	for field := range strings.SplitSeq(value, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("hit count %d %w", n, errNotPositive)
		}
		out = append(out, n)
	}
	return out, nil
}

// trimSubtitle drops the "--" or "++" display marker from a SUBTITLE.
func trimSubtitle(s string) string {
	if strings.HasPrefix(s, "--") || strings.HasPrefix(s, "++") {
		return s[2:]
	}
	return s
}
