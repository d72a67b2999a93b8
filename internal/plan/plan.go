// Package plan defines Plan, Binding, and the Categorization/Node types that
// together make up a bound, serializable unit of planned work.
package plan

import (
	"fmt"
	"sort"

	"github.com/mitchellh/hashstructure/v2"

	"github.com/pantsbuild/plangraph/internal/addrs"
)

// Inputs is a Plan's input tree: a mapping from input name to a Node (leaf,
// Promise, mapping, or sequence).
type Inputs map[string]Node

// Plan is an immutable, bound invocation: a task plus the frozen set of
// subjects it was planned for plus its input tree.
//
// Plan equality and hashing are structural over (task, subjects, inputs),
// which is what lets two distinct planning paths that happen to produce
// identical work collapse into a single plan (see ProductMapper).
type Plan struct {
	Task     Categorization
	Subjects addrs.Set[addrs.Subject]
	Inputs   Inputs

	digest uint64
}

// New constructs a Plan from a raw task value (classified via Classify), a
// set of subjects, and a raw input map whose values are lifted with
// FromValue.
func New(task any, subjects []addrs.Subject, inputs map[string]any) (*Plan, error) {
	cat, err := Classify(task)
	if err != nil {
		return nil, err
	}
	subjSet := addrs.MakeSet(subjects...)
	lifted := make(Inputs, len(inputs))
	for k, v := range inputs {
		lifted[k] = FromValue(v)
	}
	p := &Plan{Task: cat, Subjects: subjSet, Inputs: lifted}
	p.digest = p.computeDigest()
	return p, nil
}

// Promises returns every Promise reachable anywhere in the plan's input
// tree — its outgoing dependency edges in the plan DAG.
func (p *Plan) Promises() []Node {
	var out []Node
	seen := make(map[string]struct{})
	for _, node := range p.Inputs {
		for _, pr := range node.Promises() {
			key := fmt.Sprintf("%v", pr.Key())
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, PromiseNode(pr))
		}
	}
	return out
}

// Digest returns the plan's structural hash, used by ProductMapper to
// deduplicate structurally-equal plans produced along different planning
// paths.
func (p *Plan) Digest() uint64 {
	return p.digest
}

// Equal reports structural equality: same task identity, same subject set,
// same (canonicalized) inputs. Implemented as hash equality, the same
// pragmatic tradeoff the wider example corpus makes when using
// mitchellh/hashstructure for exactly this kind of dedup key — collisions
// are astronomically unlikely for the input shapes this planner deals with.
func (p *Plan) Equal(other *Plan) bool {
	if p == other {
		return true
	}
	if other == nil {
		return false
	}
	return p.digest == other.digest
}

func (p *Plan) computeDigest() uint64 {
	subjectKeys := make([]string, 0, p.Subjects.Len())
	for _, s := range p.Subjects {
		subjectKeys = append(subjectKeys, fmt.Sprintf("%v", s.UniqueKey()))
	}
	sort.Strings(subjectKeys)

	hashableInputs := make(map[string]any, len(p.Inputs))
	for name, node := range p.Inputs {
		hashableInputs[name] = node.hashable()
	}

	digest, err := hashstructure.Hash(struct {
		Task     string
		Subjects []string
		Inputs   map[string]any
	}{
		Task:     fmt.Sprintf("%v", p.Task.identityKey()),
		Subjects: subjectKeys,
		Inputs:   hashableInputs,
	}, hashstructure.FormatV2, nil)
	if err != nil {
		// Every value reachable here is either a string, a basic scalar, a
		// map[string]any, or a []any built by Node.hashable — all of which
		// hashstructure supports unconditionally.
		panic("plan: unable to compute structural digest: " + err.Error())
	}
	return digest
}
