package tja

import "strings"

// Preprocess removes // comments from chart text.
//
// Everything from // to the end of the line is dropped, including a // inside
// a header value such as a URL in WAVE. Line terminators are
// kept, so line numbers in the result match the input.
func Preprocess(text string) string {
	if !strings.Contains(text, "//") {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))

	for text != "" {
		line, rest, found := strings.Cut(text, "\n")
		if i := strings.Index(line, "//"); i >= 0 {
			// Keep a \r so CRLF files stay CRLF.
			cr := strings.HasSuffix(line, "\r")
			line = line[:i]
			if cr {
				line += "\r"
			}
		}
		b.WriteString(line)
		if found {
			b.WriteByte('\n')
		}
		text = rest
	}

	return b.String()
}
