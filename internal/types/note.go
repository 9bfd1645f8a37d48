package types

// NoteType is a playable symbol in a note track.
//
// The zero value NoteRest fills a time slot without producing a note.
type NoteType int

const (
	// NoteRest is an empty slot (digit 0).
	NoteRest NoteType = iota // Rest
	// NoteDon is a small red note (digit 1).
	NoteDon // Don
	// NoteKat is a small blue note (digit 2).
	NoteKat // Kat
	// NoteBigDon is a large red note (digit 3).
	NoteBigDon // BigDon
	// NoteBigKat is a large blue note (digit 4).
	NoteBigKat // BigKat
	// NoteDrumroll starts a drumroll (digit 5).
	NoteDrumroll // Drumroll
	// NoteBigDrumroll starts a large drumroll (digit 6).
	NoteBigDrumroll // BigDrumroll
	// NoteBalloon starts a balloon (digit 7).
	NoteBalloon // Balloon
	// NoteRollEnd closes the current drumroll or balloon (digit 8).
	NoteRollEnd // RollEnd
	// NoteKusudama starts a large balloon (digit 9).
	NoteKusudama // Kusudama
)

var noteNames = [...]string{
	NoteRest:        "Rest",
	NoteDon:         "Don",
	NoteKat:         "Kat",
	NoteBigDon:      "BigDon",
	NoteBigKat:      "BigKat",
	NoteDrumroll:    "Drumroll",
	NoteBigDrumroll: "BigDrumroll",
	NoteBalloon:     "Balloon",
	NoteRollEnd:     "RollEnd",
	NoteKusudama:    "Kusudama",
}

// String returns the note name.
func (n NoteType) String() string {
	if n < 0 || int(n) >= len(noteNames) {
		return "Unknown"
	}
	return noteNames[n]
}

// NoteFromDigit maps a chart digit to its note type.
//
// Every digit '0'-'9' has a mapping. ok is false for any other byte.
func NoteFromDigit(c byte) (n NoteType, ok bool) {
	if c < '0' || c > '9' {
		return NoteRest, false
	}
	return NoteType(c - '0'), true
}

// IsRest reports whether n occupies a slot without emitting a note.
func (n NoteType) IsRest() bool {
	return n == NoteRest
}

// IsBig reports whether n is drawn as a large note.
func (n NoteType) IsBig() bool {
	switch n {
	case NoteBigDon, NoteBigKat, NoteBigDrumroll, NoteKusudama:
		return true
	default:
		return false
	}
}

// IsBalloon reports whether n starts a balloon that takes a hit count.
func (n NoteType) IsBalloon() bool {
	return n == NoteBalloon || n == NoteKusudama
}

// IsRollStart reports whether n opens a span closed by NoteRollEnd.
func (n NoteType) IsRollStart() bool {
	switch n {
	case NoteDrumroll, NoteBigDrumroll, NoteBalloon, NoteKusudama:
		return true
	default:
		return false
	}
}
