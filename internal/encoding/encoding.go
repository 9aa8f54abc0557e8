// Package encoding normalizes uploaded CSV files to UTF-8 before
// parsing. Exported bank statements come in whatever encoding the
// user's spreadsheet tool picked.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const peekSize = 4096

// NewUTF8Reader wraps r so its content reads as UTF-8: BOMs are honored,
// already-valid UTF-8 passes through, otherwise chardet guesses and
// Windows-1252 is the last resort.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(peekSize)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(head, []byte{0xEF, 0xBB, 0xBF}) {
		_, _ = br.Discard(3)
		return br, nil
	}

	if bytes.HasPrefix(head, []byte{0xFF, 0xFE}) {
		return decode(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)), nil
	}

	if bytes.HasPrefix(head, []byte{0xFE, 0xFF}) {
		return decode(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if enc := detect(head); enc != nil {
		return decode(br, enc), nil
	}

	return decode(br, charmap.Windows1252), nil
}

func decode(r io.Reader, enc encoding.Encoding) io.Reader {
	return transform.NewReader(r, enc.NewDecoder())
}

// detect maps a chardet guess to a decoder for the charsets we expect
// from spreadsheet exports. Anything else falls through to the caller's
// Windows-1252 fallback.
func detect(head []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "ISO-8859-1", "windows-1252":
		return charmap.Windows1252
	case "ISO-8859-15":
		return charmap.ISO8859_15
	case "UTF-16LE":
		return unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM)
	case "UTF-16BE":
		return unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM)
	default:
		return nil
	}
}
