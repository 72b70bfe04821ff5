// Package textio reads coordinate text from files or stdin and decodes it to
// UTF-8 with Unix line endings.
package textio

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// MaxInputBytes caps what Read accepts from a file or stdin.
const MaxInputBytes = 32 << 20

// ErrTooLarge is returned when the input exceeds MaxInputBytes.
var ErrTooLarge = errors.New("input too large")

var (
	bomUTF8    = []byte{0xef, 0xbb, 0xbf}
	bomUTF16LE = []byte{0xff, 0xfe}
	bomUTF16BE = []byte{0xfe, 0xff}
)

type textDecoder struct {
	name   string
	decode func([]byte) (string, error)
}

func decodeUTF8(data []byte) (string, error) {
	if !utf8.Valid(data) {
		return "", fmt.Errorf("invalid utf-8")
	}
	return string(data), nil
}

func decodeWith(enc encoding.Encoding) func([]byte) (string, error) {
	return func(b []byte) (string, error) {
		return enc.NewDecoder().String(string(b))
	}
}

// candidates are tried in order; single byte code pages accept anything, so
// they come last.
func candidates(data []byte) []textDecoder {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		return []textDecoder{{name: "utf-8", decode: decodeUTF8}}
	case bytes.HasPrefix(data, bomUTF16LE):
		return []textDecoder{{name: "utf-16le", decode: decodeWith(unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM))}}
	case bytes.HasPrefix(data, bomUTF16BE):
		return []textDecoder{{name: "utf-16be", decode: decodeWith(unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM))}}
	}

	return []textDecoder{
		{name: "utf-8", decode: decodeUTF8},
		{name: "windows-1252", decode: decodeWith(charmap.Windows1252)},
	}
}

// Decode converts raw input to a UTF-8 string, drops a byte order mark and
// turns CRLF and lone CR line endings into LF. It returns the name of the
// encoding that was used.
func Decode(data []byte) (string, string, error) {
	for _, dec := range candidates(data) {
		text, err := dec.decode(data)
		if err != nil {
			continue
		}

		text = strings.TrimPrefix(text, "\uFEFF")
		return normalizeNewlines(text), dec.name, nil
	}

	return "", "", fmt.Errorf("unable to decode input with supported encodings")
}

func normalizeNewlines(s string) string {
	if !strings.Contains(s, "\r") {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

// Read loads and decodes path, or stdin when path is empty or "-".
func Read(path string) (string, string, error) {
	if path == "" || path == "-" {
		return ReadFrom(os.Stdin)
	}

	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer func() { _ = f.Close() }()

	return ReadFrom(f)
}

// ReadFrom decodes everything r yields, up to MaxInputBytes.
func ReadFrom(r io.Reader) (string, string, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxInputBytes+1))
	if err != nil {
		return "", "", err
	}
	if len(data) > MaxInputBytes {
		return "", "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, MaxInputBytes)
	}

	return Decode(data)
}
