package timing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tjachart/internal/types"
)

const eps = 1e-9

var (
	don  = types.NoteDon
	kat  = types.NoteKat
	rest = types.NoteRest
)

func noteTimes(notes []types.TimedNote) []float64 {
	out := make([]float64, len(notes))
	for i, n := range notes {
		out[i] = n.Time
	}
	return out
}

func barlineTimes(bars []types.TimedBarline) []float64 {
	out := make([]float64, len(bars))
	for i, b := range bars {
		out[i] = b.Time
	}
	return out
}

func buildOne(t *testing.T, bpm float64, entries ...types.NoteTrackEntry) Span {
	t.Helper()
	spans, warnings := Build(entries, bpm, nil)
	require.Empty(t, warnings)
	require.Len(t, spans, 1)
	return spans[0]
}

func TestMeasureDuration(t *testing.T) {
	four := MeasureDuration(120, types.MeasureCommand{Numerator: 4, Denominator: 4})
	five := MeasureDuration(120, types.MeasureCommand{Numerator: 5, Denominator: 4})

	assert.InDelta(t, 2.0, four, eps)
	assert.InDelta(t, 2.5, five, eps)
	assert.InDelta(t, 1.25, five/four, eps)
}

func TestBuild_EvenSlots(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.Notes{don, don, rest, rest},
		types.EndMeasure{},
		types.Notes{don, don, rest, rest},
		types.EndMeasure{},
		types.Notes{kat},
		types.EndMeasure{},
		types.EndMeasure{},
	)

	assert.InDeltaSlice(t, []float64{0, 0.5, 2, 2.5, 4}, noteTimes(span.Notes), eps)
	assert.InDeltaSlice(t, []float64{0, 2, 4, 6}, barlineTimes(span.Barlines), eps)
	assert.Equal(t, kat, span.Notes[4].Type)
	for _, n := range span.Notes {
		assert.Equal(t, 1.0, n.ScrollSpeed)
		assert.False(t, n.Gogo)
	}
}

func TestBuild_SplitGroupsShareMeasure(t *testing.T) {
	split := buildOne(t, 150,
		types.StartCommand{},
		types.Notes{don, rest},
		types.Notes{kat, rest, kat, rest},
		types.Notes{don, rest},
		types.EndMeasure{},
	)
	whole := buildOne(t, 150,
		types.StartCommand{},
		types.Notes{don, rest, kat, rest, kat, rest, don, rest},
		types.EndMeasure{},
	)

	assert.Equal(t, whole, split)
	assert.InDeltaSlice(t, []float64{0, 0.4, 0.8, 1.2}, noteTimes(split.Notes), eps)
}

func TestBuild_MeasureCommand(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.MeasureCommand{Numerator: 5, Denominator: 4},
		types.Notes{don},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
	)

	// 5/4 at 120 BPM lasts 2.5s instead of 2s.
	assert.InDeltaSlice(t, []float64{0, 2.5}, noteTimes(span.Notes), eps)
	assert.InDeltaSlice(t, []float64{0, 2.5}, barlineTimes(span.Barlines), eps)
}

func TestBuild_MeasureMidMeasureAppliesNext(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.Notes{don, rest},
		types.MeasureCommand{Numerator: 2, Denominator: 4},
		types.Notes{don, rest},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
	)

	assert.InDeltaSlice(t, []float64{0, 1, 2, 3}, noteTimes(span.Notes), eps)
}

func TestBuild_EmptyMeasure(t *testing.T) {
	span := buildOne(t, 60,
		types.StartCommand{},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
	)

	assert.InDeltaSlice(t, []float64{4}, noteTimes(span.Notes), eps)
	assert.InDeltaSlice(t, []float64{0, 4}, barlineTimes(span.Barlines), eps)
}

func TestBuild_RestsKeepSpacing(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.Notes{rest, rest, rest, don},
		types.EndMeasure{},
	)

	require.Len(t, span.Notes, 1)
	assert.InDelta(t, 1.5, span.Notes[0].Time, eps)
}

func TestBuild_BPMChangeMidMeasure(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.Notes{don, rest},
		types.BPMChangeCommand{BPM: 60},
		types.Notes{don, rest},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
	)

	// Two quarter notes at 120 BPM, then two at 60 BPM.
	assert.InDeltaSlice(t, []float64{0, 1, 3}, noteTimes(span.Notes), eps)
	assert.InDeltaSlice(t, []float64{0, 3}, barlineTimes(span.Barlines), eps)
}

func TestBuild_BPMChangeAtMeasureStart(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.Notes{don},
		types.EndMeasure{},
		types.BPMChangeCommand{BPM: 240},
		types.Notes{don, don},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
	)

	assert.InDeltaSlice(t, []float64{0, 2, 2.5, 3}, noteTimes(span.Notes), eps)
}

func TestBuild_ScrollGogoBarline(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.ScrollCommand{Speed: 2},
		types.GogoStartCommand{},
		types.Notes{don},
		types.EndMeasure{},
		types.BarlineOffCommand{},
		types.GogoEndCommand{},
		types.Notes{don, kat},
		types.EndMeasure{},
		types.BarlineOnCommand{},
		types.SectionCommand{},
		types.Notes{don},
		types.ScrollCommand{Speed: 0.5},
		types.Notes{kat},
		types.EndMeasure{},
	)

	require.Len(t, span.Notes, 5)
	assert.True(t, span.Notes[0].Gogo)
	assert.False(t, span.Notes[1].Gogo)
	assert.Equal(t, 2.0, span.Notes[0].ScrollSpeed)
	assert.Equal(t, 2.0, span.Notes[3].ScrollSpeed)
	assert.Equal(t, 0.5, span.Notes[4].ScrollSpeed)

	require.Len(t, span.Barlines, 3)
	assert.True(t, span.Barlines[0].Visible)
	assert.False(t, span.Barlines[1].Visible)
	assert.True(t, span.Barlines[2].Visible)
	assert.Equal(t, 2.0, span.Barlines[2].ScrollSpeed)
}

func TestBuild_Delay(t *testing.T) {
	span := buildOne(t, 120,
		types.StartCommand{},
		types.Notes{don},
		types.EndMeasure{},
		types.DelayCommand{Seconds: 0.5},
		types.Notes{don, don},
		types.DelayCommand{Seconds: 0.25},
		types.Notes{don, don},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
	)

	assert.InDeltaSlice(t, []float64{0, 2.5, 3, 3.75, 4.25, 4.75}, noteTimes(span.Notes), eps)
	assert.InDeltaSlice(t, []float64{0, 2.5, 4.75}, barlineTimes(span.Barlines), eps)
}

func TestBuild_StartResetsClock(t *testing.T) {
	spans, warnings := Build([]types.NoteTrackEntry{
		types.StartCommand{Player: types.Player1},
		types.BPMChangeCommand{BPM: 60},
		types.Notes{don},
		types.EndMeasure{},
		types.Notes{don},
		types.EndMeasure{},
		types.StartCommand{Player: types.Player2},
		types.Notes{kat},
		types.EndMeasure{},
		types.Notes{kat},
		types.EndMeasure{},
	}, 120, nil)

	require.Empty(t, warnings)
	require.Len(t, spans, 2)
	assert.Equal(t, types.Player1, spans[0].Player)
	assert.Equal(t, types.Player2, spans[1].Player)
	assert.InDeltaSlice(t, []float64{0, 4}, noteTimes(spans[0].Notes), eps)
	assert.InDeltaSlice(t, []float64{0, 2}, noteTimes(spans[1].Notes), eps)
}

func TestBuild_Balloons(t *testing.T) {
	spans, warnings := Build([]types.NoteTrackEntry{
		types.StartCommand{},
		types.Notes{types.NoteBalloon, rest, types.NoteRollEnd, rest},
		types.EndMeasure{},
		types.Notes{types.NoteKusudama, types.NoteRollEnd},
		types.EndMeasure{},
		types.Notes{types.NoteBalloon, types.NoteRollEnd},
		types.EndMeasure{},
	}, 120, []int{10, 20})

	require.Len(t, spans, 1)
	notes := spans[0].Notes
	require.Len(t, notes, 6)
	assert.Equal(t, 10, notes[0].Hits)
	assert.Equal(t, 20, notes[2].Hits)
	assert.Equal(t, 0, notes[4].Hits)
	assert.Equal(t, 0, notes[1].Hits)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "no BALLOON count")
}

func TestBuild_TrailingNotes(t *testing.T) {
	spans, warnings := Build([]types.NoteTrackEntry{
		types.StartCommand{},
		types.Notes{don},
		types.EndMeasure{},
		types.Notes{don, kat},
	}, 120, nil)

	require.Len(t, spans, 1)
	assert.InDeltaSlice(t, []float64{0, 2, 3}, noteTimes(spans[0].Notes), eps)
	assert.Len(t, spans[0].Barlines, 1)
	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "after the last ','")
}

func TestBuild_OpenRoll(t *testing.T) {
	_, warnings := Build([]types.NoteTrackEntry{
		types.StartCommand{},
		types.Notes{types.NoteDrumroll, rest},
		types.EndMeasure{},
	}, 120, nil)

	require.Len(t, warnings, 1)
	assert.Contains(t, warnings[0], "roll left open")
}

func TestBuild_Monotonic(t *testing.T) {
	span := buildOne(t, 133,
		types.StartCommand{},
		types.Notes{don, kat, don, kat, don, kat, don},
		types.EndMeasure{},
		types.MeasureCommand{Numerator: 7, Denominator: 8},
		types.BPMChangeCommand{BPM: 97.5},
		types.Notes{don, don, don},
		types.BPMChangeCommand{BPM: 210},
		types.Notes{kat, kat, kat, kat},
		types.EndMeasure{},
		types.EndMeasure{},
		types.Notes{don, rest, rest, rest, rest, don},
		types.EndMeasure{},
	)

	for i := 1; i < len(span.Notes); i++ {
		assert.LessOrEqual(t, span.Notes[i-1].Time, span.Notes[i].Time)
	}
	for i := 1; i < len(span.Barlines); i++ {
		assert.LessOrEqual(t, span.Barlines[i-1].Time, span.Barlines[i].Time)
	}
}

func TestBuild_WithoutStart(t *testing.T) {
	spans, warnings := Build([]types.NoteTrackEntry{
		types.BPMChangeCommand{BPM: 60},
		types.Notes{don, kat},
		types.EndMeasure{},
	}, 120, nil)

	assert.Empty(t, warnings)
	require.Len(t, spans, 1)
	assert.Equal(t, types.PlayerNone, spans[0].Player)
	assert.InDeltaSlice(t, []float64{0, 2}, noteTimes(spans[0].Notes), eps)
	assert.InDeltaSlice(t, []float64{0}, barlineTimes(spans[0].Barlines), eps)
}
