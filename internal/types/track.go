package types

import "fmt"

// Player selects a side in a double-play chart.
type Player int

const (
	// PlayerNone is a single-player block (#START without designator).
	PlayerNone Player = iota
	// Player1 is the left side (#START P1).
	Player1
	// Player2 is the right side (#START P2).
	Player2
)

func (p Player) String() string {
	switch p {
	case Player1:
		return "P1"
	case Player2:
		return "P2"
	default:
		return ""
	}
}

// NoteTrackEntry is one element of a parsed note track.
//
// The set of implementations is closed: every TrackCommand, Notes and
// EndMeasure. Consumers switch on the concrete type.
type NoteTrackEntry interface {
	noteTrackEntry()
}

// TrackCommand is a control line inside a note track, such as #GOGOSTART.
type TrackCommand interface {
	NoteTrackEntry
	trackCommand()
}

// Notes is a run of note digits, in time order.
type Notes []NoteType

// EndMeasure is the comma terminating a measure.
type EndMeasure struct{}

// StartCommand opens a note track (#START, #START P1, #START P2).
type StartCommand struct {
	Player Player
}

// EndCommand closes a note track (#END).
type EndCommand struct{}

// GogoStartCommand begins gogo time (#GOGOSTART).
type GogoStartCommand struct{}

// GogoEndCommand ends gogo time (#GOGOEND).
type GogoEndCommand struct{}

// MeasureCommand sets the time signature (#MEASURE 3/4).
type MeasureCommand struct {
	Numerator   int
	Denominator int
}

// BPMChangeCommand changes the tempo (#BPMCHANGE 180).
type BPMChangeCommand struct {
	BPM float64
}

// ScrollCommand sets the scroll speed multiplier (#SCROLL 1.5).
type ScrollCommand struct {
	Speed float64
}

// DelayCommand shifts the time cursor by Seconds (#DELAY 0.5).
type DelayCommand struct {
	Seconds float64
}

// BarlineOnCommand shows barlines again (#BARLINEON).
type BarlineOnCommand struct{}

// BarlineOffCommand hides barlines (#BARLINEOFF).
type BarlineOffCommand struct{}

// SectionCommand marks a section boundary (#SECTION). It has no effect on timing.
type SectionCommand struct{}

func (Notes) noteTrackEntry()      {}
func (EndMeasure) noteTrackEntry() {}

func (StartCommand) noteTrackEntry()      {}
func (EndCommand) noteTrackEntry()        {}
func (GogoStartCommand) noteTrackEntry()  {}
func (GogoEndCommand) noteTrackEntry()    {}
func (MeasureCommand) noteTrackEntry()    {}
func (BPMChangeCommand) noteTrackEntry()  {}
func (ScrollCommand) noteTrackEntry()     {}
func (DelayCommand) noteTrackEntry()      {}
func (BarlineOnCommand) noteTrackEntry()  {}
func (BarlineOffCommand) noteTrackEntry() {}
func (SectionCommand) noteTrackEntry()    {}

func (StartCommand) trackCommand()      {}
func (EndCommand) trackCommand()        {}
func (GogoStartCommand) trackCommand()  {}
func (GogoEndCommand) trackCommand()    {}
func (MeasureCommand) trackCommand()    {}
func (BPMChangeCommand) trackCommand()  {}
func (ScrollCommand) trackCommand()     {}
func (DelayCommand) trackCommand()      {}
func (BarlineOnCommand) trackCommand()  {}
func (BarlineOffCommand) trackCommand() {}
func (SectionCommand) trackCommand()    {}

// String renders the command in chart syntax.
func (c StartCommand) String() string {
	if c.Player == PlayerNone {
		return "#START"
	}
	return "#START " + c.Player.String()
}

func (c MeasureCommand) String() string {
	return fmt.Sprintf("#MEASURE %d/%d", c.Numerator, c.Denominator)
}

func (c BPMChangeCommand) String() string {
	return fmt.Sprintf("#BPMCHANGE %g", c.BPM)
}

func (c ScrollCommand) String() string {
	return fmt.Sprintf("#SCROLL %g", c.Speed)
}

func (c DelayCommand) String() string {
	return fmt.Sprintf("#DELAY %g", c.Seconds)
}

// ChartItem is a top-level element of a chart file.
type ChartItem interface {
	chartItem()
}

// Metadata is a KEY:VALUE header line.
type Metadata struct {
	Key   string
	Value string
}

// NoteTrack is a #START ... #END block. The closing #END is not included.
type NoteTrack []NoteTrackEntry

func (Metadata) chartItem()  {}
func (NoteTrack) chartItem() {}
