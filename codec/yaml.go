package codec

import (
	"gopkg.in/yaml.v3"
)

// YAML carries trees as YAML documents using gopkg.in/yaml.v3.
// The zero value is ready to use.
type YAML struct{}

var _ Format = YAML{}

func (YAML) Name() string        { return "yaml" }
func (YAML) ContentType() string { return "application/yaml" }

func (YAML) Encode(tree any) ([]byte, error) {
	norm, err := Normalize(tree)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(norm)
}

func (c YAML) Decode(b []byte, hook Hook) (any, error) {
	var v any
	if err := yaml.Unmarshal(b, &v); err != nil {
		return nil, formatError(c.Name(), -1, err)
	}
	return walkDecoded(c.Name(), v, hook)
}
