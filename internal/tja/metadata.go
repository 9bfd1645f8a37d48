package tja

import "strings"

// tagName recognizes an uppercase alphanumeric header key. The ':' that must
// follow it is left in the remainder.
func tagName(s string) (string, string, error) {
	name, rest := identifier(s)
	if name == "" {
		return "", s, fail(s, "expected header name")
	}
	if !strings.HasPrefix(rest, ":") {
		return "", s, fail(rest, "expected ':' after %s", name)
	}
	return name, rest, nil
}

// metadataPair recognizes a KEY:VALUE line. The value runs to the end of the
// line and is trimmed of surrounding blanks; the terminator is consumed.
func metadataPair(s string) (key, value, rest string, err error) {
	key, rest, err = tagName(s)
	if err != nil {
		return "", "", s, err
	}
	value, rest = restOfLine(rest[1:])
	return strings.Clone(key), strings.Clone(strings.TrimSpace(value)), rest, nil
}
