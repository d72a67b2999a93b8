package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestNoneIsNotSet(t *testing.T) {
	v := None()
	assert.False(t, v.IsSet())
	assert.Equal(t, "", v.Key())
}

func TestOfIsComparableByKey(t *testing.T) {
	a := Of(cty.StringVal("debug"))
	b := Of(cty.StringVal("debug"))
	c := Of(cty.StringVal("release"))

	assert.True(t, a.Equal(b))
	assert.False(t, a.Equal(c))
	assert.NotEqual(t, a.Key(), None().Key())
}

func TestKeyDistinguishesTypes(t *testing.T) {
	str := Of(cty.StringVal("1"))
	num := Of(cty.NumberIntVal(1))
	assert.NotEqual(t, str.Key(), num.Key())
}
