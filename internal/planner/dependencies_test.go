package planner

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantsbuild/plangraph/internal/addrs"
)

type fakeConfig struct {
	name string
	deps []DependencyRef
}

func (c fakeConfig) Name() string                   { return c.name }
func (c fakeConfig) Dependencies() []DependencyRef { return c.deps }

type fakeSubject struct {
	addr    string
	configs []Configuration
}

func (s fakeSubject) Configurations() []Configuration { return s.configs }

type fakeGraph struct {
	objects map[addrs.Address]any
}

func (g fakeGraph) Resolve(_ context.Context, addr addrs.Address) (any, error) {
	obj, ok := g.objects[addr]
	if !ok {
		return nil, assertNotFoundError(addr)
	}
	return obj, nil
}

type notFoundError addrs.Address

func (e notFoundError) Error() string { return "not found: " + string(e) }

func assertNotFoundError(addr addrs.Address) error { return notFoundError(addr) }

func TestIterConfiguredDependenciesNoSuffix(t *testing.T) {
	dep := fakeSubject{addr: "//dep"}
	g := fakeGraph{objects: map[addrs.Address]any{"//dep": dep}}
	subject := addrs.New(fakeSubject{
		addr: "//lib",
		configs: []Configuration{
			fakeConfig{name: "default", deps: []DependencyRef{"//dep"}},
		},
	})

	resolved, err := IterConfiguredDependencies(context.Background(), g, subject)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.Equal(t, dep, resolved[0].Dependency)
	assert.Nil(t, resolved[0].Configuration)
}

func TestIterConfiguredDependenciesWithSuffix(t *testing.T) {
	dep := fakeSubject{
		addr: "//dep",
		configs: []Configuration{
			fakeConfig{name: "debug"},
			fakeConfig{name: "release"},
		},
	}
	g := fakeGraph{objects: map[addrs.Address]any{"//dep": dep}}
	subject := addrs.New(fakeSubject{
		addr: "//lib",
		configs: []Configuration{
			fakeConfig{name: "default", deps: []DependencyRef{"//dep@debug"}},
		},
	})

	resolved, err := IterConfiguredDependencies(context.Background(), g, subject)
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	require.NotNil(t, resolved[0].Configuration)
	assert.Equal(t, "debug", resolved[0].Configuration.Name())
}

func TestIterConfiguredDependenciesMissingConfigErrors(t *testing.T) {
	dep := fakeSubject{
		addr:    "//dep",
		configs: []Configuration{fakeConfig{name: "release"}},
	}
	g := fakeGraph{objects: map[addrs.Address]any{"//dep": dep}}
	subject := addrs.New(fakeSubject{
		addr: "//lib",
		configs: []Configuration{
			fakeConfig{name: "default", deps: []DependencyRef{"//dep@debug"}},
		},
	})

	_, err := IterConfiguredDependencies(context.Background(), g, subject)
	require.Error(t, err)
	var missing *MissingConfigurationError
	require.ErrorAs(t, err, &missing)
	assert.False(t, missing.HasNoConfigs)
}

func TestIterConfiguredDependenciesSuffixOnUnconfigurableErrors(t *testing.T) {
	dep := "//dep-as-plain-string" // does not implement Configurable
	g := fakeGraph{objects: map[addrs.Address]any{"//dep": dep}}
	subject := addrs.New(fakeSubject{
		addr: "//lib",
		configs: []Configuration{
			fakeConfig{name: "default", deps: []DependencyRef{"//dep@debug"}},
		},
	})

	_, err := IterConfiguredDependencies(context.Background(), g, subject)
	require.Error(t, err)
	var missing *MissingConfigurationError
	require.ErrorAs(t, err, &missing)
	assert.True(t, missing.HasNoConfigs)
}

func TestIterConfiguredDependenciesSubjectWithoutConfigurations(t *testing.T) {
	subject := addrs.New("just-a-string")
	resolved, err := IterConfiguredDependencies(context.Background(), fakeGraph{}, subject)
	require.NoError(t, err)
	assert.Nil(t, resolved)
}
