package planner

import (
	"context"
	"fmt"
	"strings"

	"github.com/pantsbuild/plangraph/internal/addrs"
)

// Configurable is implemented by subject objects that carry configurations
// (variant selectors such as "@debug").
type Configurable interface {
	Configurations() []Configuration
}

// Configuration is one named variant of a configurable subject or
// dependency, which may itself declare dependencies.
type Configuration interface {
	Name() string
	// Dependencies returns this configuration's declared dependency
	// references. A configuration with no dependency semantics (most
	// configurations) returns nil.
	Dependencies() []DependencyRef
}

// DependencyRef is a raw dependency address, possibly carrying an
// "@config-name" suffix selecting a specific configuration of the target.
type DependencyRef string

// Parse splits a DependencyRef into its address and, if present, the
// selected configuration name.
func (d DependencyRef) Parse() (addr addrs.Address, configName string, hasConfig bool) {
	s := string(d)
	if idx := strings.LastIndexByte(s, '@'); idx >= 0 {
		return addrs.Address(s[:idx]), s[idx+1:], true
	}
	return addrs.Address(s), "", false
}

// MissingConfigurationError reports a malformed configuration selector on a
// dependency: either an "@name" suffix on a dependency that has no
// configurations at all, or one naming a configuration the dependency
// doesn't have.
type MissingConfigurationError struct {
	Dependency    DependencyRef
	ConfigName    string
	HasNoConfigs  bool
	AvailableOpts []string
}

func (e *MissingConfigurationError) Error() string {
	if e.HasNoConfigs {
		return fmt.Sprintf("planner: dependency %q requests configuration %q but has no configurations", e.Dependency, e.ConfigName)
	}
	return fmt.Sprintf("planner: dependency %q has no configuration named %q (available: %v)", e.Dependency, e.ConfigName, e.AvailableOpts)
}

// ResolvedDependency is one yielded element of IterConfiguredDependencies: a
// resolved dependency object and, if an "@config" suffix selected one, the
// Configuration it selected.
type ResolvedDependency struct {
	Dependency    any
	Configuration Configuration
}

// IterConfiguredDependencies walks subject's configurations, extracts their
// declared dependencies, resolves each dependency address through graph,
// parses any "@config-name" suffix, and resolves that suffix against the
// dependency's own configurations.
//
// Subjects with no dependency semantics (those that don't implement
// Configurable, or whose configurations declare no dependencies) simply
// yield nothing.
func IterConfiguredDependencies(ctx context.Context, g addrs.Graph, subject addrs.Subject) ([]ResolvedDependency, error) {
	confHaver, ok := subject.Primary().(Configurable)
	if !ok {
		return nil, nil
	}

	var out []ResolvedDependency
	for _, cfg := range confHaver.Configurations() {
		for _, ref := range cfg.Dependencies() {
			addr, configName, hasConfig := ref.Parse()
			depObj, err := g.Resolve(ctx, addr)
			if err != nil {
				return nil, err
			}

			var selected Configuration
			if hasConfig {
				depConfHaver, ok := depObj.(Configurable)
				if !ok {
					return nil, &MissingConfigurationError{Dependency: ref, ConfigName: configName, HasNoConfigs: true}
				}
				opts := depConfHaver.Configurations()
				found := false
				names := make([]string, 0, len(opts))
				for _, c := range opts {
					names = append(names, c.Name())
					if c.Name() == configName {
						selected = c
						found = true
						break
					}
				}
				if len(opts) == 0 {
					return nil, &MissingConfigurationError{Dependency: ref, ConfigName: configName, HasNoConfigs: true}
				}
				if !found {
					return nil, &MissingConfigurationError{Dependency: ref, ConfigName: configName, AvailableOpts: names}
				}
			}

			out = append(out, ResolvedDependency{Dependency: depObj, Configuration: selected})
		}
	}
	return out, nil
}
