package tja

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/simonhull/tjachart/internal/types"
)

var errMeasureFormat = errors.New("expected two positive integers a/b")

// commandName returns the keyword of a #COMMAND line without the '#'.
func commandName(s string) (string, string, bool) {
	if !strings.HasPrefix(s, "#") {
		return "", s, false
	}
	name, rest := identifier(s[1:])
	return name, rest, name != ""
}

// startCommand recognizes #START, #START P1 or #START P2 on its own line.
// The designator follows exactly one space. Leading blank lines are skipped.
func startCommand(s string) (types.TrackCommand, string, error) {
	s = skipSpace(s)
	name, rest, ok := commandName(s)
	if !ok || name != "START" {
		return nil, s, fail(s, "expected #START")
	}

	player := types.PlayerNone
	if rest != "" && rest[0] == ' ' {
		switch designator := rest[1:]; {
		case strings.HasPrefix(designator, "P1"):
			player, rest = types.Player1, designator[2:]
		case strings.HasPrefix(designator, "P2"):
			player, rest = types.Player2, designator[2:]
		default:
			return nil, s, fail(rest, "#START accepts only P1 or P2")
		}
	}

	rest, ok = lineEnd(rest)
	if !ok {
		return nil, s, fail(rest, "unexpected text after #START")
	}
	return types.StartCommand{Player: player}, rest, nil
}

// endCommand recognizes #END with nothing after it on the line.
// Leading blank lines are skipped.
func endCommand(s string) (types.TrackCommand, string, error) {
	s = skipSpace(s)
	name, rest, ok := commandName(s)
	if !ok || name != "END" {
		return nil, s, fail(s, "expected #END")
	}
	rest, ok = lineEnd(rest)
	if !ok {
		return nil, s, fail(rest, "#END takes no arguments")
	}
	return types.EndCommand{}, rest, nil
}

// innerTrackCommand recognizes a command line that may appear between
// #START and #END. Commands without parameters must stand alone on their
// line; the others take exactly one argument.
func innerTrackCommand(s string) (types.TrackCommand, string, error) {
	s = skipSpace(s)
	name, after, ok := commandName(s)
	if !ok {
		return nil, s, fail(s, "expected command")
	}

	line, rest := restOfLine(after)
	if line != "" && line[0] != ' ' && line[0] != '\t' {
		return nil, s, fail(after, "malformed #%s", name)
	}
	arg := strings.TrimSpace(line)

	switch name {
	case "GOGOSTART", "GOGOEND", "BARLINEON", "BARLINEOFF", "SECTION":
		if arg != "" {
			return nil, s, fail(after, "#%s takes no arguments", name)
		}
		return noArgCommand(name), rest, nil
	case "MEASURE":
		cmd, err := parseMeasure(arg)
		if err != nil {
			return nil, s, fail(after, "#MEASURE: %v", err)
		}
		return cmd, rest, nil
	case "BPMCHANGE":
		bpm, err := parseFloatArg(arg)
		if err != nil || bpm <= 0 {
			return nil, s, fail(after, "#BPMCHANGE needs a positive tempo, got %q", arg)
		}
		return types.BPMChangeCommand{BPM: bpm}, rest, nil
	case "SCROLL":
		speed, err := parseFloatArg(arg)
		if err != nil {
			return nil, s, fail(after, "#SCROLL needs a number, got %q", arg)
		}
		return types.ScrollCommand{Speed: speed}, rest, nil
	case "DELAY":
		seconds, err := parseFloatArg(arg)
		if err != nil || seconds < 0 {
			return nil, s, fail(after, "#DELAY needs a non-negative number of seconds, got %q", arg)
		}
		return types.DelayCommand{Seconds: seconds}, rest, nil
	case "START", "END":
		return nil, s, fail(s, "unexpected #%s", name)
	}
	return nil, s, fail(s, "unknown command #%s", name)
}

func noArgCommand(name string) types.TrackCommand {
	switch name {
	case "GOGOSTART":
		return types.GogoStartCommand{}
	case "GOGOEND":
		return types.GogoEndCommand{}
	case "BARLINEON":
		return types.BarlineOnCommand{}
	case "BARLINEOFF":
		return types.BarlineOffCommand{}
	default:
		return types.SectionCommand{}
	}
}

// parseMeasure parses the "a/b" argument of #MEASURE.
func parseMeasure(arg string) (types.MeasureCommand, error) {
	num, den, ok := strings.Cut(arg, "/")
	if !ok {
		return types.MeasureCommand{}, errMeasureFormat
	}
	n, err := strconv.Atoi(strings.TrimSpace(num))
	if err != nil || n <= 0 {
		return types.MeasureCommand{}, errMeasureFormat
	}
	d, err := strconv.Atoi(strings.TrimSpace(den))
	if err != nil || d <= 0 {
		return types.MeasureCommand{}, errMeasureFormat
	}
	return types.MeasureCommand{Numerator: n, Denominator: d}, nil
}

func parseFloatArg(arg string) (float64, error) {
	v, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, strconv.ErrRange
	}
	return v, nil
}
