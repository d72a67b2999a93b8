package graph

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/pantsbuild/plangraph/internal/plan"
)

// validUnquotedID and quoteForDot mirror the quoting rules the teacher's own
// dag/graphviz package applies when rendering a compiled execution graph:
// leave an identifier bare when Graphviz would accept it unquoted, quote and
// escape everything else.
var validUnquotedID = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

func quoteForDot(s string) string {
	if validUnquotedID.MatchString(s) {
		return s
	}
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteByte('"')
	return b.String()
}

// WriteDOT renders the graph in Graphviz's DOT language, assigning each
// distinct plan a stable "planN" identifier in first-visit (dependency
// first) order. Where the teacher's compiled operation graph has its own
// dedicated Graphviz renderer over a generic dag.Graph, this one walks the
// plan DAG directly: plans here are already deduplicated by pointer, so no
// separate vertex-coalescing step is needed.
func (g *ExecutionGraph) WriteDOT(w io.Writer) error {
	ids := make(map[*plan.Plan]string)
	var order []*plan.Plan
	var edges [][2]string

	assign := func(p *plan.Plan) string {
		if id, ok := ids[p]; ok {
			return id
		}
		id := fmt.Sprintf("plan%d", len(ids))
		ids[p] = id
		order = append(order, p)
		return id
	}

	err := g.Walk(context.Background(), func(p *plan.Plan) error {
		to := assign(p)
		for _, node := range p.Promises() {
			dep, _ := node.AsPromise()
			depPlan := g.Mapper.Promised(dep)
			if depPlan == nil {
				continue
			}
			edges = append(edges, [2]string{assign(depPlan), to})
		}
		return nil
	})
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.WriteString("digraph {\n"); err != nil {
		return err
	}
	for _, p := range order {
		if _, err := fmt.Fprintf(bw, "  %s [label=%s];\n", ids[p], quoteForDot(p.Task.String())); err != nil {
			return err
		}
	}
	for _, e := range edges {
		if _, err := fmt.Fprintf(bw, "  %s -> %s;\n", e[0], e[1]); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("}\n"); err != nil {
		return err
	}
	return bw.Flush()
}
