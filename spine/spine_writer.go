package spine

import (
	"bytes"
	"encoding/json"
)

// Marshal encodes doc compactly, or indented when indent is not empty.
// Key order and number text are preserved.
func Marshal(doc *Object, indent string) ([]byte, error) {
	data, err := doc.MarshalJSON()
	if err != nil {
		return nil, err
	}
	if indent == "" {
		return data, nil
	}
	var out bytes.Buffer
	if err := json.Indent(&out, data, "", indent); err != nil {
		return nil, err
	}
	out.WriteByte('\n')
	return out.Bytes(), nil
}
