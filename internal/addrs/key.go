// Package addrs holds the identity primitives the planner uses to talk about
// "the thing a product is produced for": subjects, their unique keys, and
// the address-resolution boundary the BUILD-file graph sits behind.
package addrs

// UniqueKey is a comparable value that stands in for some other, possibly
// uncomparable or reflectively-expensive, value for the purposes of set
// membership and map lookups.
//
// This mirrors the UniqueKey/UniqueKeyer split used throughout the teacher
// codebase's addrs package: rather than requiring every identity-bearing
// type to itself be a valid, stable map key, each type gets to decide what
// its key looks like, and the sigil method keeps arbitrary values from
// accidentally satisfying the interface.
type UniqueKey interface {
	uniqueKeySigil()
}

// UniqueKeyer is implemented by types that have a well-defined identity key
// distinct from their own Go equality.
type UniqueKeyer interface {
	UniqueKey() UniqueKey
}

// rawKey wraps an arbitrary comparable value so it can serve as a UniqueKey.
// Used for primary values that don't implement UniqueKeyer themselves; the
// underlying value must be comparable or lookups using it will panic, which
// is the same contract the teacher's addrs package places on raw address
// values used as map keys.
type rawKey struct {
	value any
}

func (rawKey) uniqueKeySigil() {}

// KeyOf returns the UniqueKey for an arbitrary value: if it implements
// UniqueKeyer, its own key is used; otherwise the value itself becomes the
// key, and the caller is responsible for that value being comparable.
func KeyOf(value any) UniqueKey {
	if keyer, ok := value.(UniqueKeyer); ok {
		return keyer.UniqueKey()
	}
	return rawKey{value: value}
}
