package csvio

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrNotText is returned by Decode for content that cannot be read as text.
var ErrNotText = errors.New("content is not text")

var (
	utf16LEBOM = []byte{0xFF, 0xFE}
	utf16BEBOM = []byte{0xFE, 0xFF}
)

// Decode turns uploaded bytes into text. A leading byte-order mark selects the
// encoding (UTF-8 or UTF-16) and is removed; content without one must be UTF-8.
func Decode(raw []byte) (string, error) {
	hasUTF16BOM := bytes.HasPrefix(raw, utf16LEBOM) || bytes.HasPrefix(raw, utf16BEBOM)
	if !hasUTF16BOM && !utf8.Valid(raw) {
		return "", ErrNotText
	}

	decoded, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), raw)
	if err != nil {
		return "", fmt.Errorf("transform.Bytes() > %w", err)
	}
	if bytes.IndexByte(decoded, 0) >= 0 {
		return "", ErrNotText
	}
	return string(decoded), nil
}
