package daq

import (
	"fmt"

	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"EnigmaNetz/Enigma-Go-DAQ/internal/module"
)

// Proto renders the config as a protobuf Struct. Variables are exported as
// an ordered list so that newest-first order survives the round trip. When
// reg is non-nil the module handle is resolved to its descriptor.
func (c *Config) Proto(reg *module.Registry) (*structpb.Struct, error) {
	if c == nil {
		return nil, fmt.Errorf("export config: %w", ErrInvalidArgument)
	}

	vars := make([]interface{}, 0, c.vars.Len())
	for _, v := range c.VariableList() {
		entry := map[string]interface{}{"key": v.Key}
		if v.HasValue {
			entry["value"] = v.Value
		} else {
			entry["value"] = nil
		}
		vars = append(vars, entry)
	}

	mod := map[string]interface{}{"handle": c.module.String()}
	if reg != nil {
		desc, err := reg.Descriptor(c.module)
		if err != nil {
			return nil, fmt.Errorf("export config: %w", err)
		}
		mod["name"] = desc.Name
		mod["version"] = float64(desc.Version)
		mod["type"] = desc.Type.String()
		mod["link_type"] = desc.LinkType.String()
	}

	s, err := structpb.NewStruct(map[string]interface{}{
		"module":    mod,
		"input":     c.input,
		"snaplen":   float64(c.snaplen),
		"timeout":   float64(c.timeout),
		"mode":      c.mode.String(),
		"flags":     float64(c.flags),
		"variables": vars,
	})
	if err != nil {
		return nil, fmt.Errorf("export config: %w", err)
	}
	return s, nil
}

// MarshalJSON renders the exported Struct as indented JSON
func MarshalJSON(s *structpb.Struct) ([]byte, error) {
	return protojson.MarshalOptions{Multiline: true, Indent: "  "}.Marshal(s)
}
