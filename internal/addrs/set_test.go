package addrs

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDeduplicatesByUniqueKey(t *testing.T) {
	a := New("//src/main:lib", "first")
	b := New("//src/main:lib", "second")

	s := MakeSet(a, b)
	assert.Equal(t, 1, s.Len(), "same primary must collapse to one entry")
	assert.True(t, s.Has(New("//src/main:lib")))
}

func TestSetAddRemove(t *testing.T) {
	s := Set[Subject]{}
	x := New("//a")
	s.Add(x)
	assert.True(t, s.Has(x))

	s.Remove(x)
	assert.False(t, s.Has(x))
}
