package addrs

// Subject pairs a primary addressable object with an optional alternate.
//
// Equality and hashing depend only on Primary; Alternate is metadata that
// planners may consult (for example, a "debug" alternate identity used only
// in diagnostics) but which must never affect which plan a promise resolves
// to. See UniqueKey.
type Subject struct {
	primary   any
	alternate any
	hasAlt    bool
}

// New constructs a Subject from a primary object and an optional alternate.
// Passing more than one alternate is a programmer error and panics, the same
// way the teacher's addrs constructors reject malformed input eagerly rather
// than silently taking the first value.
func New(primary any, alternate ...any) Subject {
	switch len(alternate) {
	case 0:
		return Subject{primary: primary}
	case 1:
		return Subject{primary: primary, alternate: alternate[0], hasAlt: true}
	default:
		panic("addrs.New: at most one alternate may be supplied")
	}
}

// Of lifts an arbitrary value into a Subject: if it is already a Subject it
// is returned unchanged, otherwise it becomes the primary of a new Subject
// with no alternate.
func Of(value any) Subject {
	if s, ok := value.(Subject); ok {
		return s
	}
	return Subject{primary: value}
}

// Primary returns the subject's primary identity object.
func (s Subject) Primary() any {
	return s.primary
}

// Alternate returns the subject's alternate identity object and whether one
// was set.
func (s Subject) Alternate() (any, bool) {
	return s.alternate, s.hasAlt
}

// All returns Primary first, then Alternate if present, matching the
// iteration order defined in the data model.
func (s Subject) All() []any {
	if s.hasAlt {
		return []any{s.primary, s.alternate}
	}
	return []any{s.primary}
}

// UniqueKey implements UniqueKeyer. It depends only on Primary, which is
// precisely what makes Subject's notion of identity ignore Alternate.
func (s Subject) UniqueKey() UniqueKey {
	return subjectKey{KeyOf(s.primary)}
}

type subjectKey struct {
	primary UniqueKey
}

func (subjectKey) uniqueKeySigil() {}

// WithAlternate returns a copy of s with its alternate replaced. Useful for
// planners that want to attach diagnostic context to a subject they're about
// to hand off without changing its identity.
func (s Subject) WithAlternate(alternate any) Subject {
	s.alternate = alternate
	s.hasAlt = true
	return s
}
