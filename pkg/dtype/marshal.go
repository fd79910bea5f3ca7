package dtype

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Datatypes appear by name in operator description files (YAML) and in the
// derive API (JSON). Decoding resolves the name immediately so that an
// unknown datatype fails at parse time, not mid-generation.

func (d DataType) MarshalYAML() (any, error) {
	return d.name, nil
}

func (d *DataType) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}
	parsed, err := Parse(name)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d DataType) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.name)), nil
}

func (d *DataType) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("%w: %s", ErrUnknownType, string(data))
	}
	parsed, err := Parse(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
