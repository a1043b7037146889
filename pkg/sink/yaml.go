package sink

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// RenderYAML encodes v as YAML with two space indentation.
func RenderYAML(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
