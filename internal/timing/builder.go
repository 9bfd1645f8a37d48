// Package timing converts parsed note tracks into time-stamped notes and
// barlines.
//
// A measure lasts 60/bpm * 4 * numerator/denominator seconds. The digits
// written for a measure, across however many lines, divide it into equal
// slots; rests take a slot but produce no note. Each #START begins an
// independent timing scope whose clock starts at zero.
package timing

import (
	"fmt"

	"github.com/simonhull/tjachart/internal/types"
)

// Span is the timed output of one #START block.
type Span struct {
	Player types.Player
	types.Track
}

// state is the running tempo, signature and presentation flags of a span.
type state struct {
	bpm     float64
	measure types.MeasureCommand
	scroll  float64
	gogo    bool
	barline bool

	// cursor is the start time of the next measure.
	cursor float64
}

func newState(bpm float64) state {
	return state{
		bpm:     bpm,
		measure: types.MeasureCommand{Numerator: 4, Denominator: 4},
		scroll:  1,
		barline: true,
	}
}

// beats returns the length of a measure in quarter notes.
func (s *state) beats() float64 {
	return 4 * float64(s.measure.Numerator) / float64(s.measure.Denominator)
}

// MeasureDuration returns the length in seconds of a measure with the given
// time signature at the given tempo.
func MeasureDuration(bpm float64, m types.MeasureCommand) float64 {
	return 60 / bpm * 4 * float64(m.Numerator) / float64(m.Denominator)
}

// builder folds a note track into spans.
type builder struct {
	initialBPM float64
	balloons   []int

	spans    []Span
	current  *Span
	st       state
	pending  []types.NoteTrackEntry
	slots    int
	balloon  int
	openRoll bool

	warnings []string
}

// Build resolves the times of every note and barline in entries.
//
// bpm is the chart's initial tempo. balloons lists the hit counts assigned,
// in order, to balloon notes of each span. Build returns one Span per
// #START, plus messages for non-fatal problems such as a balloon without a
// hit count.
func Build(entries []types.NoteTrackEntry, bpm float64, balloons []int) ([]Span, []string) {
	b := &builder{initialBPM: bpm, balloons: balloons}

	for _, entry := range entries {
		switch e := entry.(type) {
		case types.StartCommand:
			b.finishSpan()
			b.beginSpan(e.Player)
		case types.EndCommand:
			b.finishSpan()
		case types.Notes:
			b.ensureSpan()
			b.pending = append(b.pending, e)
			b.slots += len(e)
		case types.EndMeasure:
			b.ensureSpan()
			b.closeMeasure(true)
		case types.TrackCommand:
			b.ensureSpan()
			b.pending = append(b.pending, e)
		}
	}
	b.finishSpan()

	return b.spans, b.warnings
}

func (b *builder) warnf(format string, args ...any) {
	b.warnings = append(b.warnings, fmt.Sprintf(format, args...))
}

func (b *builder) beginSpan(p types.Player) {
	b.current = &Span{Player: p}
	b.st = newState(b.initialBPM)
	b.pending = b.pending[:0]
	b.slots = 0
	b.balloon = 0
	b.openRoll = false
}

// ensureSpan opens an implicit span for entries that precede any #START.
func (b *builder) ensureSpan() {
	if b.current == nil {
		b.beginSpan(types.PlayerNone)
	}
}

func (b *builder) finishSpan() {
	if b.current == nil {
		return
	}
	if b.slots > 0 {
		b.warnf("notes after the last ',' of a %s block", spanName(b.current.Player))
		b.closeMeasure(false)
	}
	if b.openRoll {
		b.warnf("roll left open at #END")
	}
	b.spans = append(b.spans, *b.current)
	b.current = nil
	b.pending = b.pending[:0]
	b.slots = 0
}

// closeMeasure places the pending entries of one measure.
//
// Commands written before the measure's first digit take effect at the
// measure start, including #MEASURE. Commands between digits take effect at
// that slot; a #MEASURE there only affects the following measures.
func (b *builder) closeMeasure(barline bool) {
	st := &b.st

	i := 0
	for ; i < len(b.pending); i++ {
		cmd, ok := b.pending[i].(types.TrackCommand)
		if !ok {
			break
		}
		b.apply(cmd)
	}

	start := st.cursor
	if barline {
		b.current.Barlines = append(b.current.Barlines, types.TimedBarline{
			Time:        start,
			ScrollSpeed: st.scroll,
			Visible:     st.barline,
		})
	}

	if b.slots == 0 {
		st.cursor = start + st.beats()*60/st.bpm
		b.pending = b.pending[:0]
		return
	}

	slotBeats := st.beats() / float64(b.slots)

	// Slots are timed from the last tempo change so that an unchanged
	// tempo gives start + k/slots * duration exactly.
	segStart, segSlots := start, 0
	for _, entry := range b.pending[i:] {
		switch e := entry.(type) {
		case types.Notes:
			for _, n := range e {
				at := segStart + float64(segSlots)*slotBeats*60/st.bpm
				if !n.IsRest() {
					b.emit(n, at)
				}
				segSlots++
			}
		case types.TrackCommand:
			at := segStart + float64(segSlots)*slotBeats*60/st.bpm
			b.apply(e)
			if d, ok := e.(types.DelayCommand); ok {
				at += d.Seconds
			}
			segStart, segSlots = at, 0
		}
	}

	st.cursor = segStart + float64(segSlots)*slotBeats*60/st.bpm
	b.pending = b.pending[:0]
	b.slots = 0
}

// apply updates the running state for a command.
func (b *builder) apply(cmd types.TrackCommand) {
	st := &b.st
	switch c := cmd.(type) {
	case types.MeasureCommand:
		st.measure = c
	case types.BPMChangeCommand:
		st.bpm = c.BPM
	case types.ScrollCommand:
		st.scroll = c.Speed
	case types.DelayCommand:
		st.cursor += c.Seconds
	case types.GogoStartCommand:
		st.gogo = true
	case types.GogoEndCommand:
		st.gogo = false
	case types.BarlineOnCommand:
		st.barline = true
	case types.BarlineOffCommand:
		st.barline = false
	case types.SectionCommand, types.StartCommand, types.EndCommand:
	}
}

func (b *builder) emit(n types.NoteType, at float64) {
	note := types.TimedNote{
		Type:        n,
		Time:        at,
		ScrollSpeed: b.st.scroll,
		Gogo:        b.st.gogo,
	}

	switch {
	case n.IsBalloon():
		if b.balloon < len(b.balloons) {
			note.Hits = b.balloons[b.balloon]
		} else {
			b.warnf("balloon at %.3fs has no BALLOON count", at)
		}
		b.balloon++
	case n == types.NoteRollEnd && !b.openRoll:
		b.warnf("roll end at %.3fs without a roll", at)
	}
	if n.IsRollStart() {
		b.openRoll = true
	} else if n == types.NoteRollEnd {
		b.openRoll = false
	}

	b.current.Notes = append(b.current.Notes, note)
}

func spanName(p types.Player) string {
	if p == types.PlayerNone {
		return "#START"
	}
	return "#START " + p.String()
}
