package glossary

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/tidwall/jsonc"
)

// Parse decodes a glossary document. Comments and trailing commas are
// tolerated. The document must be a JSON array of subjects and must pass
// Validate.
func Parse(data []byte) (*Document, error) {
	stripped := bytes.TrimSpace(jsonc.ToJSON(data))
	if len(stripped) == 0 || stripped[0] != '[' {
		return nil, fmt.Errorf("document must be a JSON array of subjects")
	}

	var subjects []Subject
	if err := json.Unmarshal(stripped, &subjects); err != nil {
		return nil, fmt.Errorf("decoding document: %w", err)
	}

	doc := &Document{Subjects: subjects}
	if err := doc.Validate(); err != nil {
		return nil, fmt.Errorf("invalid document: %w", err)
	}
	return doc, nil
}

// MarshalJSON encodes the document as a bare array of subjects, the same
// shape Parse accepts.
func (d Document) MarshalJSON() ([]byte, error) {
	if d.Subjects == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Subjects)
}

// UnmarshalJSON decodes a bare array of subjects.
func (d *Document) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, &d.Subjects)
}
