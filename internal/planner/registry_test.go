package planner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantsbuild/plangraph/internal/product"
)

func TestRegistryIndexesByGoalAndOutput(t *testing.T) {
	compile := &fakePlanner{
		goal: "compile",
		outputs: []ProductSpec{
			{Type: "Classes", Formula: product.Formula{product.Clause{"Sources"}}},
		},
	}
	test := &fakePlanner{
		goal: "test",
		outputs: []ProductSpec{
			{Type: "TestResults", Formula: product.Formula{product.Clause{"Classes"}}},
		},
	}

	reg, err := NewRegistry([]Planner{compile, test})
	require.NoError(t, err)

	assert.ElementsMatch(t, []Planner{compile}, reg.Goal("compile"))
	assert.True(t, reg.IsOutputProduct("Classes"))
	assert.True(t, reg.IsOutputProduct("TestResults"))
	assert.False(t, reg.IsOutputProduct("Docs"))

	reqs := reg.RequirementsFor("Classes")
	assert.Contains(t, reqs, Planner(compile))
}

func TestRegistryRejectsEmptyFormula(t *testing.T) {
	bad := &fakePlanner{
		goal: "compile",
		outputs: []ProductSpec{
			{Type: "Classes", Formula: product.Formula{}},
		},
	}
	_, err := NewRegistry([]Planner{bad})
	require.Error(t, err)
}

func TestRegistryRejectsEmptyGoalName(t *testing.T) {
	bad := &fakePlanner{outputs: []ProductSpec{{Type: "Classes", Formula: product.Formula{{"Sources"}}}}}
	_, err := NewRegistry([]Planner{bad})
	require.Error(t, err)
}

func TestOutputTypesForGoalDeduplicates(t *testing.T) {
	a := &fakePlanner{goal: "compile", outputs: []ProductSpec{{Type: "Classes", Formula: product.Formula{{"Sources"}}}}}
	b := &fakePlanner{goal: "compile", outputs: []ProductSpec{{Type: "Classes", Formula: product.Formula{{"PrecompiledClasses"}}}}}

	reg, err := NewRegistry([]Planner{a, b})
	require.NoError(t, err)
	assert.Equal(t, []product.Type{"Classes"}, reg.OutputTypesForGoal("compile"))
}

// TestOutputTypesForGoalPreservesDeclarationOrder guards spec.md §5's
// "within a subject, product types in registration order" guarantee: a
// planner declaring several outputs must have them come back in the exact
// order ProductTypes lists them, every time, not in whatever order a map
// would have iterated them.
func TestOutputTypesForGoalPreservesDeclarationOrder(t *testing.T) {
	multi := &fakePlanner{
		goal: "compile",
		outputs: []ProductSpec{
			{Type: "Classes", Formula: product.Formula{{"Sources"}}},
			{Type: "SourceMaps", Formula: product.Formula{{"Sources"}}},
			{Type: "Docs", Formula: product.Formula{{"Sources"}}},
		},
	}

	for i := 0; i < 20; i++ {
		reg, err := NewRegistry([]Planner{multi})
		require.NoError(t, err)
		assert.Equal(t, []product.Type{"Classes", "SourceMaps", "Docs"}, reg.OutputTypesForGoal("compile"))
	}
}
