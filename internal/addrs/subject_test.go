package addrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubjectIdentityIgnoresAlternate(t *testing.T) {
	a := New("//src/main:lib", "alt-a")
	b := New("//src/main:lib", "alt-b")

	assert.Equal(t, a.UniqueKey(), b.UniqueKey(), "identity must ignore alternate")

	alt, ok := a.Alternate()
	require.True(t, ok)
	assert.Equal(t, "alt-a", alt)
}

func TestSubjectDifferentPrimaryDifferentIdentity(t *testing.T) {
	a := New("//src/main:lib")
	b := New("//src/main:other")

	assert.NotEqual(t, a.UniqueKey(), b.UniqueKey())
}

func TestSubjectAllIteration(t *testing.T) {
	noAlt := New("//src/main:lib")
	assert.Equal(t, []any{"//src/main:lib"}, noAlt.All())

	withAlt := New("//src/main:lib", "debug-name")
	assert.Equal(t, []any{"//src/main:lib", "debug-name"}, withAlt.All())
}

func TestOfLiftsNonSubjectValues(t *testing.T) {
	s := Of("//src/main:lib")
	assert.Equal(t, "//src/main:lib", s.Primary())
	_, hasAlt := s.Alternate()
	assert.False(t, hasAlt)

	already := New("//src/main:lib", "x")
	assert.Equal(t, already, Of(already))
}

type customKeyed struct {
	id string
}

func (c customKeyed) UniqueKey() UniqueKey { return customKeyedKey{c.id} }

type customKeyedKey struct{ id string }

func (customKeyedKey) uniqueKeySigil() {}

func TestSubjectDelegatesToUniqueKeyer(t *testing.T) {
	a := New(customKeyed{id: "x"})
	b := New(customKeyed{id: "x"})
	c := New(customKeyed{id: "y"})

	assert.Equal(t, a.UniqueKey(), b.UniqueKey())
	assert.NotEqual(t, a.UniqueKey(), c.UniqueKey())
}
