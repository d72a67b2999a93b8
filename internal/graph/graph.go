// Package graph implements ExecutionGraph, the acyclic plan DAG rooted at
// the promises a scheduling request asked for.
package graph

import (
	"context"
	"fmt"

	"github.com/xlab/treeprint"

	"github.com/pantsbuild/plangraph/internal/mapper"
	"github.com/pantsbuild/plangraph/internal/plan"
	"github.com/pantsbuild/plangraph/internal/promise"
)

// UnplannedPromiseError reports that a promise reachable from the graph's
// roots (or from some plan's input tree) has no plan registered for it —
// planning finished without actually satisfying everything it promised.
type UnplannedPromiseError struct {
	Promise promise.Promise
}

func (e *UnplannedPromiseError) Error() string {
	return fmt.Sprintf("execution graph: no plan registered for promise %s", e.Promise)
}

// ExecutionGraph is the DAG of Plans reachable from a fixed set of root
// promises, resolved lazily through a ProductMapper rather than materialized
// up front — the mapper remains the single source of truth for what plan
// satisfies a promise, per spec.md §4.6.
type ExecutionGraph struct {
	Roots  []promise.Promise
	Mapper *mapper.ProductMapper
}

// New builds an ExecutionGraph over the given mapper, rooted at roots.
func New(m *mapper.ProductMapper, roots []promise.Promise) *ExecutionGraph {
	return &ExecutionGraph{Roots: roots, Mapper: m}
}

// VisitFunc is called once per distinct plan during a Walk, after every plan
// it depends on has already been visited.
type VisitFunc func(p *plan.Plan) error

// Walk performs a post-order depth-first traversal of the graph: a plan is
// visited only after everything it depends on has been visited, and a plan
// reached along more than one path is visited exactly once, identified by
// pointer — which is why ProductMapper interns structurally-equal plans to
// the same pointer before Walk ever runs (see scenario S6).
func (g *ExecutionGraph) Walk(ctx context.Context, visit VisitFunc) error {
	seen := make(map[*plan.Plan]struct{})
	for _, root := range g.Roots {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := g.walkPromise(ctx, root, seen, visit); err != nil {
			return err
		}
	}
	return nil
}

func (g *ExecutionGraph) walkPromise(ctx context.Context, p promise.Promise, seen map[*plan.Plan]struct{}, visit VisitFunc) error {
	satisfiedBy := g.Mapper.Promised(p)
	if satisfiedBy == nil {
		return &UnplannedPromiseError{Promise: p}
	}
	return g.walkPlan(ctx, satisfiedBy, seen, visit)
}

func (g *ExecutionGraph) walkPlan(ctx context.Context, p *plan.Plan, seen map[*plan.Plan]struct{}, visit VisitFunc) error {
	if _, ok := seen[p]; ok {
		return nil
	}
	seen[p] = struct{}{}

	if err := ctx.Err(); err != nil {
		return err
	}
	for _, node := range p.Promises() {
		dep, _ := node.AsPromise()
		if err := g.walkPromise(ctx, dep, seen, visit); err != nil {
			return err
		}
	}
	return visit(p)
}

// DebugTree renders the graph as indented text for logging and test
// failures, using github.com/xlab/treeprint the way the teacher's CLI
// tooling renders its own dependency trees. A plan reached more than once is
// rendered in full the first time and as a "shared" leaf thereafter, since a
// tree cannot otherwise express a DAG's sharing.
func (g *ExecutionGraph) DebugTree() string {
	root := treeprint.New()
	seen := make(map[*plan.Plan]bool)
	for _, r := range g.Roots {
		satisfiedBy := g.Mapper.Promised(r)
		if satisfiedBy == nil {
			root.AddNode(fmt.Sprintf("%s: <unplanned>", r))
			continue
		}
		renderPlan(root, r, satisfiedBy, g.Mapper, seen)
	}
	return root.String()
}

func renderPlan(parent treeprint.Tree, via promise.Promise, p *plan.Plan, m *mapper.ProductMapper, seen map[*plan.Plan]bool) {
	label := fmt.Sprintf("%s -> %s", via, p.Task)
	if seen[p] {
		parent.AddMetaNode("shared", label)
		return
	}
	seen[p] = true

	branch := parent.AddBranch(label)
	for _, node := range p.Promises() {
		dep, _ := node.AsPromise()
		satisfiedBy := m.Promised(dep)
		if satisfiedBy == nil {
			branch.AddNode(fmt.Sprintf("%s: <unplanned>", dep))
			continue
		}
		renderPlan(branch, dep, satisfiedBy, m, seen)
	}
}
