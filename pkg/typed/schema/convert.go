package schema

import (
	"github.com/popingalex/flowgram.ai-sub002/internal/maps"
	"github.com/popingalex/flowgram.ai-sub002/internal/ptr"
	"github.com/popingalex/flowgram.ai-sub002/pkg/typed"
)

type options struct {
	defaults    bool
	description string
}

type Option func(*options)

// WithDefaults fills the `Default` of every produced descriptor with the
// default value of its type.
func WithDefaults() Option {
	return func(o *options) {
		o.defaults = true
	}
}

// WithDescription sets the description of the root descriptor.
func WithDescription(description string) Option {
	return func(o *options) {
		o.description = description
	}
}

// ToSchema converts a type into a descriptor. Arrays become properly nested
// `array` descriptors, one per dimension, even though a type stores its
// dimensions as a flat list. Unknown primitives become `object` descriptors.
//
// Every produced descriptor remembers the type it was created from, which
// lets `FromSchema` convert it back without loss.
func ToSchema(t typed.Type, opts ...Option) *Descriptor {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	d := toSchema(t, &o)
	d.Description = o.description

	return d
}

func toSchema(t typed.Type, o *options) *Descriptor {
	var d *Descriptor

	if dims := t.Dimensions(); len(dims) > 0 {
		d = toSchema(t.Base(), o)

		// Wrap from the innermost dimension to the outermost one.
		inner := t.Base()
		for i := len(dims) - 1; i >= 0; i -= 1 {
			inner = typed.ArrayType(inner, dims[i])
			d = arrayDescriptor(d, dims[i])
			d.typed = ptr.V(inner)

			if o.defaults {
				d.Default = typed.DefaultValue(inner)
			}
		}

		return d
	}

	if attrs := t.Attributes(); len(attrs) > 0 {
		d = &Descriptor{
			Type:       TypeObject,
			Properties: make(map[string]*Descriptor, len(attrs)),
		}

		for _, a := range attrs {
			d.Properties[a.ID] = toSchema(a.Type, o)
		}
	} else {
		d = &Descriptor{Type: primitiveSchemaType(t)}
	}

	d.typed = ptr.V(typed.Clone(t))

	if o.defaults {
		d.Default = typed.DefaultValue(t)
	}

	return d
}

func arrayDescriptor(items *Descriptor, length int) *Descriptor {
	d := &Descriptor{
		Type:  TypeArray,
		Items: items,
	}

	if length != typed.DynamicLength {
		d.MinItems = ptr.V(length)
		d.MaxItems = ptr.V(length)
	}

	return d
}

func primitiveSchemaType(t typed.Type) Type {
	p, _ := t.Primitive()

	switch p {
	case typed.PrimitiveBoolean:
		return TypeBoolean
	case typed.PrimitiveNumber:
		return TypeNumber
	case typed.PrimitiveString:
		return TypeString
	}

	return TypeObject
}

// FromSchema converts a descriptor back into a type. Descriptors created by
// `ToSchema` return their original type. For other descriptors the type is
// reconstructed from `type`, `items` and `properties`:
//
//   - `boolean`, `number`, `integer` and `string` become primitives
//   - `array` becomes the item type with one more dimension prepended, dynamic
//     unless `minItems` and `maxItems` agree
//   - `object` with properties becomes an object whose attributes are sorted
//     by name, since descriptor properties are unordered
//   - anything else, including `object` without properties, is unknown
func FromSchema(d *Descriptor) typed.Type {
	if d == nil {
		return typed.Unknown()
	}

	if t, ok := d.Typed(); ok {
		return t
	}

	switch d.Type {
	case TypeBoolean:
		return typed.PrimitiveType(typed.PrimitiveBoolean)
	case TypeNumber, TypeInteger:
		return typed.PrimitiveType(typed.PrimitiveNumber)
	case TypeString:
		return typed.PrimitiveType(typed.PrimitiveString)
	case TypeArray:
		return typed.ArrayType(FromSchema(d.Items), fixedLength(d))
	case TypeObject:
		if len(d.Properties) == 0 {
			return typed.Unknown()
		}

		attrs := make([]typed.Attribute, 0, len(d.Properties))
		for _, n := range maps.Keys(d.Properties) {
			attrs = append(attrs, typed.Attribute{
				ID:   n,
				Type: FromSchema(d.Properties[n]),
			})
		}

		return typed.ObjectType(attrs...)
	}

	return typed.Unknown()
}

func fixedLength(d *Descriptor) int {
	if d.MinItems != nil && d.MaxItems != nil && *d.MinItems == *d.MaxItems {
		return *d.MinItems
	}

	return typed.DynamicLength
}
