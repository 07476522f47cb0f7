package codec

import "gopkg.in/yaml.v3"

// YAML encodes with gopkg.in/yaml.v3. Field names come from yaml struct
// tags, or the lowercased Go field name when absent.
type YAML struct{}

// Marshal encodes the value to YAML.
func (YAML) Marshal(v any) ([]byte, error) { return yaml.Marshal(v) }

// Unmarshal decodes the YAML data into v.
func (YAML) Unmarshal(data []byte, v any) error { return yaml.Unmarshal(data, v) }

// Name returns the unique name of the codec ("yaml").
func (YAML) Name() string { return "yaml" }
