package timing

import (
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simonhull/tjachart/internal/tja"
	"github.com/simonhull/tjachart/internal/types"
)

func buildSong(t *testing.T, src string) *types.Song {
	t.Helper()
	chart, err := tja.ParseFile(src)
	require.NoError(t, err)
	song, err := BuildSong(chart.Items, chart.Metadata)
	require.NoError(t, err)
	return song
}

func TestBuildSong_Header(t *testing.T) {
	song := buildSong(t, `TITLE:Song Name
SUBTITLE:--Composer
BPM:142
WAVE:song.ogg
OFFSET:-1.5
DEMOSTART:30.25

#START
1,
#END
`)

	assert.Equal(t, "Song Name", song.Title)
	assert.Equal(t, "Composer", song.Subtitle)
	assert.Equal(t, 142.0, song.BPM)
	assert.Equal(t, "song.ogg", song.AudioFilename)
	assert.Equal(t, -1.5, song.Offset)
	assert.Equal(t, 30.25, song.DemoStart)
	assert.Equal(t, "--Composer", song.Metadata["SUBTITLE"])

	// No COURSE header: the chart is Oni.
	oni := song.Difficulty(types.CourseOni)
	require.NotNil(t, oni)
	assert.Len(t, oni.Notes, 1)
	for c, d := range song.Courses() {
		assert.Equal(t, types.CourseOni, c)
		assert.Same(t, oni, d)
	}
}

func TestBuildSong_Courses(t *testing.T) {
	song := buildSong(t, `TITLE:x
BPM:120
WAVE:x.ogg

COURSE:Easy
LEVEL:2
BALLOON:4
#START
7008,
#END

COURSE:Oni
LEVEL:9
BALLOON:15,25
#START
7008,
9008,
#END

COURSE:Edit
LEVEL:10
#START
1111,
#END
`)

	easy := song.Difficulty(types.CourseEasy)
	require.NotNil(t, easy)
	assert.Equal(t, 2, easy.StarLevel)
	assert.Equal(t, []int{4}, easy.Balloons)
	assert.Equal(t, 4, easy.Notes[0].Hits)

	oni := song.Difficulty(types.CourseOni)
	require.NotNil(t, oni)
	assert.Equal(t, 9, oni.StarLevel)
	assert.Equal(t, 15, oni.Notes[0].Hits)
	assert.Equal(t, 25, oni.Notes[2].Hits)

	ura := song.Difficulty(types.CourseUra)
	require.NotNil(t, ura)
	assert.Equal(t, 10, ura.StarLevel)
	assert.Len(t, ura.Notes, 4)

	assert.Nil(t, song.Difficulty(types.CourseNormal))
	assert.Nil(t, song.Difficulty(types.CourseHard))
	assert.Empty(t, song.Warnings)

	var courses []types.Course
	for c := range song.Courses() {
		courses = append(courses, c)
	}
	assert.Equal(t, []types.Course{types.CourseEasy, types.CourseOni, types.CourseUra}, courses)
}

func TestBuildSong_DoublePlay(t *testing.T) {
	song := buildSong(t, `TITLE:x
BPM:120
WAVE:x.ogg
COURSE:Hard
STYLE:Double

#START P1
1,
#END

#START P2
,
2,
#END
`)

	hard := song.Difficulty(types.CourseHard)
	require.NotNil(t, hard)
	require.Len(t, hard.Notes, 1)
	assert.Equal(t, types.NoteDon, hard.Notes[0].Type)

	require.NotNil(t, hard.Player2)
	require.Len(t, hard.Player2.Notes, 1)
	assert.Equal(t, types.NoteKat, hard.Player2.Notes[0].Type)
	assert.InDelta(t, 2.0, hard.Player2.Notes[0].Time, eps)
}

func TestBuildSong_DoublePlayHeadersBetweenBlocks(t *testing.T) {
	song := buildSong(t, `TITLE:x
BPM:120
WAVE:x.ogg
COURSE:Oni
LEVEL:8
BALLOON:3

#START P1
7008,
#END

LEVEL:9
BALLOON:12

#START P2
7008,
#END
`)

	oni := song.Difficulty(types.CourseOni)
	require.NotNil(t, oni)
	assert.Equal(t, 9, oni.StarLevel)
	assert.Equal(t, []int{12}, oni.Balloons)

	require.Len(t, oni.Notes, 2)
	assert.Equal(t, 3, oni.Notes[0].Hits)
	require.NotNil(t, oni.Player2)
	require.Len(t, oni.Player2.Notes, 2)
	assert.Equal(t, 12, oni.Player2.Notes[0].Hits)
}

func TestBuildSong_InvalidHeaders(t *testing.T) {
	tests := []struct {
		name string
		src  string
		key  string
	}{
		{"bpm text", "TITLE:x\nBPM:fast\nWAVE:x.ogg\n", "BPM"},
		{"bpm zero", "TITLE:x\nBPM:0\nWAVE:x.ogg\n", "BPM"},
		{"course", "TITLE:x\nBPM:120\nWAVE:x.ogg\nCOURSE:Impossible\n", "COURSE"},
		{"level", "TITLE:x\nBPM:120\nWAVE:x.ogg\nLEVEL:ten\n", "LEVEL"},
		{"balloon", "TITLE:x\nBPM:120\nWAVE:x.ogg\nBALLOON:5,x\n", "BALLOON"},
		{"offset", "TITLE:x\nBPM:120\nWAVE:x.ogg\nOFFSET:soon\n", "OFFSET"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chart, err := tja.ParseFile(tt.src)
			require.NoError(t, err)

			_, err = BuildSong(chart.Items, chart.Metadata)
			var invalid *types.InvalidMetadataError
			require.True(t, errors.As(err, &invalid), "got %v", err)
			assert.Equal(t, tt.key, invalid.Key)
		})
	}
}

func TestBuildSong_Warnings(t *testing.T) {
	song := buildSong(t, "TITLE:x\nBPM:120\nWAVE:x.ogg\nCOURSE:Normal\n#START\n7008,\n#END\n")

	require.Len(t, song.Warnings, 1)
	assert.Equal(t, "timing", song.Warnings[0].Stage)
	assert.Equal(t, "Normal", song.Warnings[0].Course)
}

func TestBuildSong_RealChart(t *testing.T) {
	data, err := os.ReadFile("../tja/testdata/ready_to.tja")
	require.NoError(t, err)

	song := buildSong(t, string(data))
	assert.Equal(t, "Ready to", song.Title)
	assert.Equal(t, "Taiko Sample Band", song.Subtitle)
	assert.Empty(t, song.Warnings)

	want := map[types.Course]int{
		types.CourseEasy:   2,
		types.CourseNormal: 4,
		types.CourseHard:   6,
		types.CourseOni:    8,
	}
	for c, level := range want {
		d := song.Difficulty(c)
		require.NotNil(t, d, "course %s", c)
		assert.Equal(t, level, d.StarLevel)
		assert.NotEmpty(t, d.Notes)

		for i := 1; i < len(d.Notes); i++ {
			assert.LessOrEqual(t, d.Notes[i-1].Time, d.Notes[i].Time)
		}
		for i := 1; i < len(d.Barlines); i++ {
			assert.LessOrEqual(t, d.Barlines[i-1].Time, d.Barlines[i].Time)
		}
	}

	oni := song.Difficulty(types.CourseOni)
	var hidden, gogo int
	for _, b := range oni.Barlines {
		if !b.Visible {
			hidden++
		}
	}
	for _, n := range oni.Notes {
		if n.Gogo {
			gogo++
		}
	}
	assert.Equal(t, 1, hidden)
	assert.Positive(t, gogo)
}

func TestBuildSong_Idempotent(t *testing.T) {
	data, err := os.ReadFile("../tja/testdata/ready_to.tja")
	require.NoError(t, err)

	assert.Equal(t, buildSong(t, string(data)), buildSong(t, string(data)))
}
