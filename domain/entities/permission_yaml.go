package entities

import (
	"bytes"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
)

type permissionYAML struct {
	Data     yaml.Node      `yaml:"data"`
	Required *bool          `yaml:"required,omitempty"`
	Type     PermissionType `yaml:"type"`
}

// MarshalYAML writes custom json.RawMessage data as plain YAML instead of binary.
func (p Permission) MarshalYAML() (interface{}, error) {
	data := p.Data
	if raw, ok := data.(json.RawMessage); ok {
		var v any
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &v); err != nil {
				return nil, fmt.Errorf("failed to decode %s data: %w", p.Type, err)
			}
		}
		data = v
	}
	return struct {
		Data     any            `yaml:"data"`
		Required *bool          `yaml:"required,omitempty"`
		Type     PermissionType `yaml:"type"`
	}{Data: data, Required: p.Required, Type: p.Type}, nil
}

// UnmarshalYAML decodes Data into the typed struct matching Type, mirroring UnmarshalJSON.
func (p *Permission) UnmarshalYAML(value *yaml.Node) error {
	var raw permissionYAML
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Type == "" {
		return fmt.Errorf("permission type is required")
	}

	target := newPermissionData(raw.Type)
	if target == nil {
		var v any
		if err := raw.Data.Decode(&v); err != nil {
			return fmt.Errorf("failed to decode %s data: %w", raw.Type, err)
		}
		encoded, err := json.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to encode %s data: %w", raw.Type, err)
		}
		p.Data = json.RawMessage(encoded)
	} else {
		if raw.Data.Kind == 0 {
			return fmt.Errorf("failed to decode %s data: missing data", raw.Type)
		}
		if err := decodeStrict(&raw.Data, target); err != nil {
			return fmt.Errorf("failed to decode %s data: %w", raw.Type, err)
		}
		p.Data = derefPermissionData(target)
	}

	p.Type = raw.Type
	p.Required = raw.Required
	return nil
}

// decodeStrict decodes node into target, rejecting keys target has no field for.
// Node.Decode ignores the KnownFields setting of the outer decoder.
func decodeStrict(node *yaml.Node, target any) error {
	encoded, err := yaml.Marshal(node)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(encoded))
	dec.KnownFields(true)
	return dec.Decode(target)
}
