package plan

import (
	"fmt"
	"reflect"

	"github.com/pantsbuild/plangraph/internal/promise"
)

// NodeKind tags which shape an input tree Node takes.
type NodeKind int

const (
	// KindLeaf is opaque data: anything that is not a Promise, a mapping, or
	// a sequence. Strings are always leaves, even though they are iterable.
	KindLeaf NodeKind = iota
	// KindPromise is a pending dependency that Plan.Bind will resolve.
	KindPromise
	// KindMapping is name->Node.
	KindMapping
	// KindSequence is an ordered list of Node.
	KindSequence
)

// Node is one element of a Plan's input tree: a tagged union of leaf data, a
// Promise, a mapping, or an ordered sequence. Implemented as an explicit
// sum type, per the design notes, rather than an interface hierarchy or
// reflection-driven walk.
type Node struct {
	kind     NodeKind
	leaf     any
	promise  promise.Promise
	mapping  map[string]Node
	sequence []Node
}

// Leaf wraps opaque data as a leaf Node.
func Leaf(v any) Node {
	return Node{kind: KindLeaf, leaf: v}
}

// PromiseNode wraps a Promise as a Node.
func PromiseNode(p promise.Promise) Node {
	return Node{kind: KindPromise, promise: p}
}

// Mapping wraps a name->Node map as a Node.
func Mapping(m map[string]Node) Node {
	return Node{kind: KindMapping, mapping: m}
}

// Sequence wraps an ordered list of Node as a Node.
func Sequence(s []Node) Node {
	return Node{kind: KindSequence, sequence: s}
}

// Kind reports which shape the Node takes.
func (n Node) Kind() NodeKind {
	return n.kind
}

// AsLeaf returns the leaf value and true if n is a leaf.
func (n Node) AsLeaf() (any, bool) {
	if n.kind != KindLeaf {
		return nil, false
	}
	return n.leaf, true
}

// AsPromise returns the Promise and true if n is a promise node.
func (n Node) AsPromise() (promise.Promise, bool) {
	if n.kind != KindPromise {
		return promise.Promise{}, false
	}
	return n.promise, true
}

// AsMapping returns the backing map and true if n is a mapping node.
func (n Node) AsMapping() (map[string]Node, bool) {
	if n.kind != KindMapping {
		return nil, false
	}
	return n.mapping, true
}

// AsSequence returns the backing slice and true if n is a sequence node.
func (n Node) AsSequence() ([]Node, bool) {
	if n.kind != KindSequence {
		return nil, false
	}
	return n.sequence, true
}

// FromValue lifts a plain Go value into an input tree Node: a Promise
// becomes KindPromise, any map with string keys becomes KindMapping
// (recursively lifted), any slice or array becomes KindSequence (recursively
// lifted), and anything else — including string, which is deliberately
// excluded even though it satisfies a "sequence of runes" description —
// becomes a KindLeaf.
func FromValue(v any) Node {
	switch val := v.(type) {
	case Node:
		return val
	case promise.Promise:
		return PromiseNode(val)
	case string:
		return Leaf(val)
	case map[string]any:
		m := make(map[string]Node, len(val))
		for k, item := range val {
			m[k] = FromValue(item)
		}
		return Mapping(m)
	case []any:
		s := make([]Node, len(val))
		for i, item := range val {
			s[i] = FromValue(item)
		}
		return Sequence(s)
	}

	// Fall back to reflection for named slice/map types so callers aren't
	// forced to pre-convert everything to map[string]any/[]any.
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return Leaf(v)
		}
		m := make(map[string]Node, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = FromValue(iter.Value().Interface())
		}
		return Mapping(m)
	case reflect.Slice, reflect.Array:
		n := rv.Len()
		s := make([]Node, n)
		for i := 0; i < n; i++ {
			s[i] = FromValue(rv.Index(i).Interface())
		}
		return Sequence(s)
	default:
		return Leaf(v)
	}
}

// Promises returns every Promise reachable from n, in a pseudorandom order
// with duplicates removed by promise identity.
func (n Node) Promises() []promise.Promise {
	seen := make(map[promise.Key]struct{})
	var out []promise.Promise
	n.collectPromises(seen, &out)
	return out
}

func (n Node) collectPromises(seen map[promise.Key]struct{}, out *[]promise.Promise) {
	switch n.kind {
	case KindPromise:
		key := n.promise.Key()
		if _, ok := seen[key]; !ok {
			seen[key] = struct{}{}
			*out = append(*out, n.promise)
		}
	case KindMapping:
		for _, child := range n.mapping {
			child.collectPromises(seen, out)
		}
	case KindSequence:
		for _, child := range n.sequence {
			child.collectPromises(seen, out)
		}
	}
}

// Resolver looks up the concrete product value a Promise resolved to.
type Resolver func(p promise.Promise) (any, error)

// Bind replaces every Promise leaf reachable from n with the value resolve
// returns for it, leaving every other leaf untouched, and returns the result
// as a plain Go value tree (map[string]any / []any / leaf) suitable for
// handing to a task.
func (n Node) Bind(resolve Resolver) (any, error) {
	switch n.kind {
	case KindPromise:
		return resolve(n.promise)
	case KindMapping:
		out := make(map[string]any, len(n.mapping))
		for k, child := range n.mapping {
			v, err := child.Bind(resolve)
			if err != nil {
				return nil, err
			}
			out[k] = v
		}
		return out, nil
	case KindSequence:
		out := make([]any, len(n.sequence))
		for i, child := range n.sequence {
			v, err := child.Bind(resolve)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	default:
		return n.leaf, nil
	}
}

// hashable converts n into a plain value tree suitable for
// mitchellh/hashstructure, converting Promise leaves into their identity key
// so structurally-equal plans that depend on equal-but-distinct Promise
// values still hash equal.
func (n Node) hashable() any {
	switch n.kind {
	case KindPromise:
		// hashstructure only walks exported struct fields, and every field
		// of promise.Key is unexported by design (it exists to be opaque,
		// not to be introspected). fmt's %v does handle unexported fields,
		// so we flatten through a string instead of handing the struct to
		// hashstructure directly.
		return fmt.Sprintf("%v", n.promise.Key())
	case KindMapping:
		out := make(map[string]any, len(n.mapping))
		for k, child := range n.mapping {
			out[k] = child.hashable()
		}
		return out
	case KindSequence:
		out := make([]any, len(n.sequence))
		for i, child := range n.sequence {
			out[i] = child.hashable()
		}
		return out
	default:
		return n.leaf
	}
}
