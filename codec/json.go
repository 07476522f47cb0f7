package codec

import (
	"encoding/json"
)

// JSON encodes with encoding/json using two-space indentation so summaries
// stay readable next to the text artifacts.
type JSON struct{}

// Marshal encodes the value to indented JSON followed by a newline.
func (JSON) Marshal(v any) ([]byte, error) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

// Unmarshal decodes the JSON data into v.
func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

// Name returns the unique name of the codec ("json").
func (JSON) Name() string { return "json" }
