package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Encode renders a document as two-space indented JSON with a trailing
// newline. HTML in descriptions is written as-is.
func Encode(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode document %s: %w", doc.Key, err)
	}
	return buf.Bytes(), nil
}
