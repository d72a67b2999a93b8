// Package mapper implements ProductMapper, the registry from Promise to the
// Plan that will satisfy it.
package mapper

import (
	"sync"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
	"github.com/pantsbuild/plangraph/internal/plan"
	"github.com/pantsbuild/plangraph/internal/product"
	"github.com/pantsbuild/plangraph/internal/promise"
)

// ProductMapper maps promises to the plans that will satisfy them, and owns
// plan interning: a plan that is structurally equal (per Plan.Digest) to one
// already registered is replaced by the existing pointer before any promise
// key is written, so pointer-identity dedup downstream (ExecutionGraph.Walk)
// collapses repeated work into a single visit.
//
// The planner itself is single-threaded and synchronous (see spec.md §5),
// but the mutex here costs nothing and protects a host that chooses to share
// one ProductMapper across goroutines for read-only lookups while a
// LocalScheduler is still populating it.
type ProductMapper struct {
	mu       sync.RWMutex
	plans    map[promise.Key]*plan.Plan
	byDigest map[uint64]*plan.Plan
}

// New returns an empty ProductMapper.
func New() *ProductMapper {
	return &ProductMapper{
		plans:    make(map[promise.Key]*plan.Plan),
		byDigest: make(map[uint64]*plan.Plan),
	}
}

// intern returns the canonical pointer for p: if a structurally-equal plan
// is already known, that pointer is returned instead of p.
func (m *ProductMapper) intern(p *plan.Plan) *plan.Plan {
	if existing, ok := m.byDigest[p.Digest()]; ok {
		return existing
	}
	m.byDigest[p.Digest()] = p
	return p
}

// RegisterPromises records p (after interning) as the plan satisfying, for
// every subject in p.Subjects, the promise (productType, subject, cfg).
//
// If primarySubject is non-nil it must be a member of p.Subjects; if it is
// not, RegisterPromises returns an InvalidRegistrationError and registers
// nothing. If primarySubject is non-nil and valid, the Promise for that
// subject is returned; otherwise a zero Promise and a nil error are
// returned.
func (m *ProductMapper) RegisterPromises(productType product.Type, p *plan.Plan, primarySubject *addrs.Subject, cfg config.Value) (promise.Promise, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if primarySubject != nil && !p.Subjects.Has(*primarySubject) {
		return promise.Promise{}, &InvalidRegistrationError{Plan: p, PrimarySubject: *primarySubject}
	}

	canonical := m.intern(p)

	var primaryPromise promise.Promise
	var havePrimary bool
	for _, subj := range p.Subjects {
		pr := promise.New(productType, subj, cfg)
		m.plans[pr.Key()] = canonical
		if primarySubject != nil && subj.UniqueKey() == primarySubject.UniqueKey() {
			primaryPromise = pr
			havePrimary = true
		}
	}

	if primarySubject != nil && !havePrimary {
		// p.Subjects.Has already confirmed membership above, so this would
		// only happen if Subjects were mutated concurrently, which the
		// immutability contract on Plan rules out.
		return promise.Promise{}, &InvalidRegistrationError{Plan: p, PrimarySubject: *primarySubject}
	}

	return primaryPromise, nil
}

// Promised looks up the plan registered for p, or nil if none has been
// planned yet.
func (m *ProductMapper) Promised(p promise.Promise) *plan.Plan {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.plans[p.Key()]
}

// RegisterForAllSubjects re-registers p (after interning) under productType
// for every subject in p.Subjects, without requiring a primary subject. This
// is the re-registration step LocalScheduler's finalization pass performs
// when a planner's FinalizePlans replaces the plan set for an output type.
func (m *ProductMapper) RegisterForAllSubjects(productType product.Type, p *plan.Plan, cfg config.Value) {
	m.mu.Lock()
	defer m.mu.Unlock()

	canonical := m.intern(p)
	for _, subj := range p.Subjects {
		pr := promise.New(productType, subj, cfg)
		m.plans[pr.Key()] = canonical
	}
}
