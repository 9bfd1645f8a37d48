// Package tja implements the TJA chart grammar.
//
// Parsing happens in three steps: Preprocess strips comments, the grammar
// functions turn the text into an ordered list of types.ChartItem, and
// ParseFile validates the required headers. Timing is resolved separately
// by the timing package.
//
// Grammar functions follow one convention: they take the remaining input and
// return the recognized value together with the input left after it. On
// failure they return a *parseError that points into the input, so the
// caller can report a line number.
package tja

import (
	"fmt"
	"strings"
)

// parseError is a grammar failure at the start of rest.
type parseError struct {
	rest   string
	reason string
}

func (e *parseError) Error() string {
	return e.reason
}

func fail(rest, format string, args ...any) error {
	return &parseError{rest: rest, reason: fmt.Sprintf(format, args...)}
}

// skipSpace drops blanks and line terminators, i.e. blank lines.
func skipSpace(s string) string {
	return strings.TrimLeft(s, " \t\r\n")
}

// skipBlank drops spaces and tabs within a line.
func skipBlank(s string) string {
	return strings.TrimLeft(s, " \t")
}

// lineEnd consumes trailing blanks and exactly one line terminator.
// End of input counts as a terminator.
func lineEnd(s string) (string, bool) {
	s = skipBlank(s)
	switch {
	case s == "":
		return s, true
	case strings.HasPrefix(s, "\r\n"):
		return s[2:], true
	case s[0] == '\n':
		return s[1:], true
	case s == "\r":
		return "", true
	}
	return s, false
}

// restOfLine splits s at the first line terminator. The terminator is
// consumed and excluded from line.
func restOfLine(s string) (line, rest string) {
	i := strings.IndexByte(s, '\n')
	if i < 0 {
		return strings.TrimSuffix(s, "\r"), ""
	}
	return strings.TrimSuffix(s[:i], "\r"), s[i+1:]
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isUpperAlnum(c byte) bool {
	return (c >= 'A' && c <= 'Z') || isDigit(c)
}

// identifier returns the leading run of uppercase letters and digits.
func identifier(s string) (string, string) {
	i := 0
	for i < len(s) && isUpperAlnum(s[i]) {
		i++
	}
	return s[:i], s[i:]
}
