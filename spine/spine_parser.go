package spine

import (
	"fmt"
	"io"

	"github.com/tidwall/jsonc"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse reads a rig document.
func Parse(r io.Reader) (*Object, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(data)
}

// ParseBytes parses document bytes. A leading BOM is honoured (UTF-16 input
// is decoded to UTF-8), and comments or trailing commas are tolerated.
func ParseBytes(data []byte) (*Object, error) {
	text, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	var doc Object
	if err := doc.UnmarshalJSON(jsonc.ToJSON(text)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	return &doc, nil
}
