package tjachart

import (
	"github.com/simonhull/tjachart/internal/types"
)

// Song is an alias to types.Song.
// Re-exporting from internal/types to maintain public API.
type Song = types.Song

// Difficulty is an alias to types.Difficulty.
type Difficulty = types.Difficulty

// Track is an alias to types.Track.
type Track = types.Track

// TimedNote is an alias to types.TimedNote.
type TimedNote = types.TimedNote

// TimedBarline is an alias to types.TimedBarline.
type TimedBarline = types.TimedBarline

// AudioInfo is an alias to types.AudioInfo.
type AudioInfo = types.AudioInfo

// Course is an alias to types.Course.
type Course = types.Course

// Re-export all course constants.
const (
	CourseEasy   = types.CourseEasy
	CourseNormal = types.CourseNormal
	CourseHard   = types.CourseHard
	CourseOni    = types.CourseOni
	CourseUra    = types.CourseUra
)

// NumCourses is the number of difficulty slots in a Song.
const NumCourses = types.NumCourses

// ParseCourse is a wrapper around types.ParseCourse.
func ParseCourse(s string) (Course, error) {
	return types.ParseCourse(s)
}

// NoteType is an alias to types.NoteType.
type NoteType = types.NoteType

// Re-export all note type constants.
const (
	NoteRest        = types.NoteRest
	NoteDon         = types.NoteDon
	NoteKat         = types.NoteKat
	NoteBigDon      = types.NoteBigDon
	NoteBigKat      = types.NoteBigKat
	NoteDrumroll    = types.NoteDrumroll
	NoteBigDrumroll = types.NoteBigDrumroll
	NoteBalloon     = types.NoteBalloon
	NoteRollEnd     = types.NoteRollEnd
	NoteKusudama    = types.NoteKusudama
)
