// Package textenc decodes chart files to UTF-8.
//
// TJA files in the wild are mostly Shift-JIS, with newer ones in UTF-8
// (often with a BOM) and the odd UTF-16 file written by Windows editors.
package textenc

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Encoding selects how chart bytes are decoded.
type Encoding int

const (
	// Auto detects the encoding from a BOM or from UTF-8 validity, falling
	// back to Shift-JIS.
	Auto Encoding = iota
	// UTF8 decodes as UTF-8, dropping a leading BOM.
	UTF8
	// ShiftJIS decodes as Shift-JIS (code page 932).
	ShiftJIS
	// UTF16 decodes as UTF-16 with a BOM, little-endian without one.
	UTF16
)

func (e Encoding) String() string {
	switch e {
	case Auto:
		return "auto"
	case UTF8:
		return "utf-8"
	case ShiftJIS:
		return "shift-jis"
	case UTF16:
		return "utf-16"
	default:
		return fmt.Sprintf("Encoding(%d)", int(e))
	}
}

// ParseEncoding parses a user-supplied encoding name such as "sjis".
func ParseEncoding(name string) (Encoding, error) {
	switch name {
	case "", "auto":
		return Auto, nil
	case "utf8", "utf-8":
		return UTF8, nil
	case "sjis", "shift-jis", "shift_jis", "cp932":
		return ShiftJIS, nil
	case "utf16", "utf-16":
		return UTF16, nil
	}
	return Auto, fmt.Errorf("unknown encoding %q", name)
}

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Detect guesses the encoding of data.
func Detect(data []byte) Encoding {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return UTF8
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		return UTF16
	case utf8.Valid(data):
		return UTF8
	default:
		return ShiftJIS
	}
}

// Decode converts data to a UTF-8 string and reports the encoding used.
func Decode(data []byte, enc Encoding) (string, Encoding, error) {
	if enc == Auto {
		enc = Detect(data)
	}

	var dec *encoding.Decoder
	switch enc {
	case UTF8:
		data = bytes.TrimPrefix(data, bomUTF8)
		if !utf8.Valid(data) {
			return "", enc, fmt.Errorf("decode %s: invalid UTF-8", enc)
		}
		return string(data), enc, nil
	case ShiftJIS:
		dec = japanese.ShiftJIS.NewDecoder()
	case UTF16:
		dec = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	default:
		return "", enc, fmt.Errorf("decode: unsupported encoding %s", enc)
	}

	out, _, err := transform.Bytes(dec, data)
	if err != nil {
		return "", enc, fmt.Errorf("decode %s: %w", enc, err)
	}
	return string(out), enc, nil
}
