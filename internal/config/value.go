// Package config holds the optional "configuration" value that can be
// attached to a Promise or to a Plan request — a variant selector such as
// "@debug" attached to a subject or a dependency.
package config

import (
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// Value is an optional, dynamically-typed configuration selector.
//
// It wraps cty.Value the way the rest of the teacher's planning layer
// carries opaque dynamically-typed data, but adds an explicit "not set"
// state rather than overloading cty.NilVal, since a configuration-less
// Promise is a distinct, common case that deserves to be unambiguous at the
// call site.
type Value struct {
	set bool
	v   cty.Value
}

// None is the absence of a configuration selector.
func None() Value {
	return Value{}
}

// Of wraps a concrete cty.Value as a configuration selector.
func Of(v cty.Value) Value {
	return Value{set: true, v: v}
}

// IsSet reports whether a configuration selector was provided.
func (c Value) IsSet() bool {
	return c.set
}

// Raw returns the underlying cty.Value. It is cty.NilVal when IsSet is
// false.
func (c Value) Raw() cty.Value {
	return c.v
}

// Key returns a string identifying the configuration, suitable for use
// inside a comparable struct used as a map key (Promise identity, notably).
// It is the value's JSON encoding against its own type, which does not record
// the type itself: values whose encodings coincide (for example a list and a
// tuple with the same elements) share a key.
//
// Unset configurations key as the empty string, which can never collide
// with a set configuration's key because the JSON encoding of a value is
// never empty.
func (c Value) Key() string {
	if !c.set {
		return ""
	}
	b, err := ctyjson.Marshal(c.v, c.v.Type())
	if err != nil {
		// cty values built from literals and parsed HCL are always
		// marshalable; a failure here means a caller constructed a cty.Value
		// containing something exotic (e.g. a raw capsule type) that this
		// package was never meant to carry as a configuration selector.
		panic("config: value is not marshalable as a configuration key: " + err.Error())
	}
	return string(b)
}

// Equal reports whether c and other represent the same configuration
// selector.
func (c Value) Equal(other Value) bool {
	return c.Key() == other.Key()
}

func (c Value) String() string {
	if !c.set {
		return "<none>"
	}
	return c.v.GoString()
}
