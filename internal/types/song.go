// Package types provides core data structures for parsed TJA charts.
//
// This package defines the grammar items produced by the parser (ChartItem,
// NoteTrackEntry, TrackCommand, NoteType) and the time-resolved Song model
// built from them. These types are internal; the public API re-exports them
// from the root tjachart package.
package types

import (
	"fmt"
	"iter"
	"strings"
)

// Course identifies a difficulty slot of a song.
type Course int

const (
	// CourseEasy is the easiest course.
	CourseEasy Course = iota
	// CourseNormal is the second course.
	CourseNormal
	// CourseHard is the third course.
	CourseHard
	// CourseOni is the hardest regular course and the default when COURSE is omitted.
	CourseOni
	// CourseUra is the hidden extra course (COURSE:Edit).
	CourseUra
)

// NumCourses is the number of difficulty slots in a Song.
const NumCourses = 5

var courseNames = [NumCourses]string{"Easy", "Normal", "Hard", "Oni", "Ura"}

func (c Course) String() string {
	if c < 0 || c >= NumCourses {
		return fmt.Sprintf("Course(%d)", int(c))
	}
	return courseNames[c]
}

// ParseCourse parses a COURSE value. Names are case-insensitive; "Edit" is
// an alias for Ura and the digits 0-4 select a course by index.
func ParseCourse(s string) (Course, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "0":
		return CourseEasy, nil
	case "normal", "1":
		return CourseNormal, nil
	case "hard", "2":
		return CourseHard, nil
	case "oni", "3":
		return CourseOni, nil
	case "edit", "ura", "4":
		return CourseUra, nil
	}
	return 0, fmt.Errorf("unknown course %q", s)
}

// TimedNote is a note placed at an absolute time.
type TimedNote struct {
	Type NoteType
	// Time in seconds from the start of the track.
	Time float64
	// ScrollSpeed is the multiplier in effect when the note was placed.
	ScrollSpeed float64
	// Gogo is set for notes inside #GOGOSTART ... #GOGOEND.
	Gogo bool
	// Hits is the required hit count of a balloon, zero for other notes.
	Hits int
}

// TimedBarline is a measure boundary placed at an absolute time.
type TimedBarline struct {
	Time        float64
	ScrollSpeed float64
	Visible     bool
}

// Track holds the timed output of one #START ... #END block.
type Track struct {
	Notes    []TimedNote
	Barlines []TimedBarline
}

// Duration returns the time of the last note or barline.
func (t *Track) Duration() float64 {
	var end float64
	if n := len(t.Notes); n > 0 {
		end = t.Notes[n-1].Time
	}
	if n := len(t.Barlines); n > 0 && t.Barlines[n-1].Time > end {
		end = t.Barlines[n-1].Time
	}
	return end
}

// Difficulty is one course of a song.
//
// The embedded Track is the single-player chart, or the P1 side of a
// double-play chart. Player2 is set only when the course has a #START P2 block.
type Difficulty struct {
	Track
	Course    Course
	StarLevel int
	Balloons  []int
	Player2   *Track
}

// Song is a fully parsed chart.
type Song struct {
	// Metadata holds every header pair, last value wins.
	Metadata map[string]string

	Title    string
	Subtitle string
	// AudioFilename is the WAVE value. Open and ScanLibrary resolve it
	// relative to the chart's directory.
	AudioFilename string
	// Path of the chart file, empty when parsed from memory.
	Path string

	// BPM is the initial tempo.
	BPM float64
	// Offset is the OFFSET header in seconds: the audio time of the first measure
	// is -Offset. Note times are not shifted by it.
	Offset float64
	// DemoStart is the preview start position in the audio, in seconds.
	DemoStart float64

	// Audio is read from the WAVE file when audio probing is enabled.
	Audio *AudioInfo

	Difficulties [NumCourses]*Difficulty

	// Warnings encountered while building (non-fatal issues).
	Warnings []Warning
}

// Difficulty returns the given course, or nil if the chart has none.
func (s *Song) Difficulty(c Course) *Difficulty {
	if c < 0 || c >= NumCourses {
		return nil
	}
	return s.Difficulties[c]
}

// Courses iterates over the courses present in the song, easiest first.
func (s *Song) Courses() iter.Seq2[Course, *Difficulty] {
	return func(yield func(Course, *Difficulty) bool) {
		for i, d := range s.Difficulties {
			if d == nil {
				continue
			}
			if !yield(Course(i), d) {
				return
			}
		}
	}
}
