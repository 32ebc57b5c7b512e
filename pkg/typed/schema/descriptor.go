// Package schema converts types to and from JSON-Schema-like descriptors that
// editor forms consume.
package schema

import (
	"encoding/json"

	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
	"gopkg.in/yaml.v3"
)

type Type string

const (
	TypeBoolean Type = "boolean"
	TypeNumber  Type = "number"
	TypeInteger Type = "integer"
	TypeString  Type = "string"
	TypeArray   Type = "array"
	TypeObject  Type = "object"
)

type Descriptor struct {
	Type        Type                   `json:"type" yaml:"type"`
	Items       *Descriptor            `json:"items,omitempty" yaml:"items,omitempty"`
	Properties  map[string]*Descriptor `json:"properties,omitempty" yaml:"properties,omitempty"`
	Default     any                    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string                 `json:"description,omitempty" yaml:"description,omitempty"`

	// MinItems and MaxItems are both set to the length of fixed length
	// arrays.
	MinItems *int `json:"minItems,omitempty" yaml:"minItems,omitempty"`
	MaxItems *int `json:"maxItems,omitempty" yaml:"maxItems,omitempty"`

	// typed caches the type this descriptor was created from.
	typed *typed.Type
}

// Typed returns the type the descriptor was created from by `ToSchema`. The
// boolean is false for descriptors that were decoded or built by hand.
func (d *Descriptor) Typed() (typed.Type, bool) {
	if d.typed == nil {
		return typed.Type{}, false
	}

	return typed.Clone(*d.typed), true
}

// Clone returns a deep copy of the descriptor. `Default` values are copied by
// reference.
func (d *Descriptor) Clone() *Descriptor {
	clone := &Descriptor{
		Type:        d.Type,
		Default:     d.Default,
		Description: d.Description,
		MinItems:    copyInt(d.MinItems),
		MaxItems:    copyInt(d.MaxItems),
		typed:       d.typed,
	}

	if d.Items != nil {
		clone.Items = d.Items.Clone()
	}

	if d.Properties != nil {
		clone.Properties = make(map[string]*Descriptor, len(d.Properties))

		for n, p := range d.Properties {
			clone.Properties[n] = p.Clone()
		}
	}

	return clone
}

func (d *Descriptor) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}

func (d *Descriptor) YAML() ([]byte, error) {
	return yaml.Marshal(d)
}

// Decode decodes a JSON descriptor. YAML is a superset of JSON, so YAML
// documents are accepted as well.
func Decode(data []byte) (*Descriptor, error) {
	var d Descriptor

	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, err
	}

	return &d, nil
}

func copyInt(i *int) *int {
	if i == nil {
		return nil
	}

	v := *i
	return &v
}
