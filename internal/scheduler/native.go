package scheduler

import (
	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/product"
)

// NativeProductProvider is implemented by subject primary objects that
// already carry one or more products without any planner running — a
// source file target that already "has" Sources, for instance.
type NativeProductProvider interface {
	NativeProducts() product.Set
}

// nativeProductsOf returns subject's native product set, or an empty set if
// its primary object doesn't implement NativeProductProvider.
func nativeProductsOf(subject addrs.Subject) product.Set {
	if p, ok := subject.Primary().(NativeProductProvider); ok {
		return p.NativeProducts()
	}
	return product.NewSet()
}
