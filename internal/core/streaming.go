package core

import (
	"io"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// NewSanitizingReader wraps r so that a leading UTF-8 byte order mark is
// dropped and ill-formed UTF-8 is replaced with U+FFFD.
//
// Spreadsheet exports routinely carry a BOM, which would otherwise end up
// glued to the first header name.
func NewSanitizingReader(r io.Reader) io.Reader {
	return transform.NewReader(r, transform.Chain(
		unicode.BOMOverride(transform.Nop),
		runes.ReplaceIllFormed(),
	))
}
