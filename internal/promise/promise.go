// Package promise defines Promise, the handle identifying "product P for
// subject S under configuration C" that some Plan in the execution graph
// will eventually satisfy.
package promise

import (
	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
	"github.com/pantsbuild/plangraph/internal/product"
)

// Promise is an immutable value object identifying a pending product. Two
// Promises are equal if and only if they have the same product type, the
// same subject *primary* (alternate is deliberately excluded), and the same
// configuration — see Key.
type Promise struct {
	ProductType product.Type
	Subject     addrs.Subject
	Config      config.Value
}

// New builds a Promise. subject is lifted with addrs.Of if it is not already
// a Subject, matching the data model's rule that any non-Subject value used
// where a subject is expected is wrapped.
func New(productType product.Type, subject any, cfg config.Value) Promise {
	return Promise{
		ProductType: productType,
		Subject:     addrs.Of(subject),
		Config:      cfg,
	}
}

// Key is the comparable identity of a Promise: (product type, subject
// primary, configuration). It deliberately omits the subject's alternate so
// that consumer-side identity stays stable regardless of which alternate a
// particular planning path happened to attach.
type Key struct {
	productType addrs.UniqueKey
	subject     addrs.UniqueKey
	config      string
}

// Key computes the Promise's identity key, suitable for use as a map key.
func (p Promise) Key() Key {
	return Key{
		productType: addrs.KeyOf(p.ProductType),
		subject:     p.Subject.UniqueKey(),
		config:      p.Config.Key(),
	}
}

// Equal reports whether p and other identify the same promise.
func (p Promise) Equal(other Promise) bool {
	return p.Key() == other.Key()
}

// Rebind returns a new Promise with the same product type and configuration
// but a different subject. Planners use this to reuse a dependency's promise
// under a different subject identity without re-deriving it from scratch.
func (p Promise) Rebind(subject any) Promise {
	p.Subject = addrs.Of(subject)
	return p
}

func (p Promise) String() string {
	return string(p.ProductType) + "@" + p.Config.String()
}
