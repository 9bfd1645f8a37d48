package tja

import "github.com/simonhull/tjachart/internal/types"

// notes recognizes a run of note digits. The ',' that usually follows is
// left in the remainder and handled by noteTrack as a separate EndMeasure.
func notes(s string) (types.Notes, string, error) {
	i := 0
	for i < len(s) && isDigit(s[i]) {
		i++
	}
	if i == 0 {
		return nil, s, fail(s, "expected note digits")
	}

	out := make(types.Notes, i)
	for j := range i {
		out[j], _ = types.NoteFromDigit(s[j])
	}
	return out, s[i:], nil
}

// noteTrack recognizes a #START ... #END block.
//
// Commands, digit runs and ',' terminators are collected in source order.
// The opening #START is the first entry; the closing #END is consumed but
// not recorded. A ',' with no digits before it is an empty measure and
// still yields its own EndMeasure.
func noteTrack(s string) (types.NoteTrack, string, error) {
	start, rest, err := startCommand(s)
	if err != nil {
		return nil, s, err
	}
	track := types.NoteTrack{start}

	for {
		rest = skipSpace(rest)
		switch {
		case rest == "":
			return nil, s, fail(rest, "missing #END")

		case rest[0] == ',':
			track = append(track, types.EndMeasure{})
			rest = rest[1:]

		case isDigit(rest[0]):
			var n types.Notes
			n, rest, _ = notes(rest)
			track = append(track, n)

		case rest[0] == '#':
			if name, _, _ := commandName(rest); name == "END" {
				_, after, err := endCommand(rest)
				if err != nil {
					return nil, s, err
				}
				return track, after, nil
			}
			var cmd types.TrackCommand
			cmd, rest, err = innerTrackCommand(rest)
			if err != nil {
				return nil, s, err
			}
			track = append(track, cmd)

		default:
			return nil, s, fail(rest, "unexpected %q in note track", rest[0])
		}
	}
}
