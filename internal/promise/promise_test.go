package promise

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"

	"github.com/pantsbuild/plangraph/internal/addrs"
	"github.com/pantsbuild/plangraph/internal/config"
)

// snapshot flattens a Promise into a plain, exported-field-only value:
// Promise itself (and the addrs.Subject/config.Value it embeds) carries
// unexported fields by design, so it is snapshotted rather than handed to
// cmp.Diff directly.
type snapshot struct {
	ProductType string
	Subject     string
	Config      string
}

func snapshotOf(p Promise) snapshot {
	return snapshot{
		ProductType: string(p.ProductType),
		Subject:     fmt.Sprintf("%v", p.Subject.Primary()),
		Config:      p.Config.Key(),
	}
}

func TestIdentityIgnoresAlternate(t *testing.T) {
	a := New("Classes", addrs.New("//src:lib", "alt-a"), config.None())
	b := New("Classes", addrs.New("//src:lib", "alt-b"), config.None())

	assert.True(t, a.Equal(b))
	assert.Equal(t, a.Key(), b.Key(), "keys must match despite differing alternate")
}

func TestDifferentConfigIsDifferentPromise(t *testing.T) {
	subject := addrs.New("//src:lib")
	a := New("Classes", subject, config.None())
	b := New("Classes", subject, config.Of(cty.StringVal("debug")))

	assert.False(t, a.Equal(b))
}

func TestRebindChangesSubjectOnly(t *testing.T) {
	original := New("Classes", addrs.New("//src:lib"), config.None())
	rebound := original.Rebind(addrs.New("//src:other"))

	wantRebound := snapshotOf(original)
	wantRebound.Subject = "//src:other"
	if diff := cmp.Diff(wantRebound, snapshotOf(rebound)); diff != "" {
		t.Errorf("Rebind changed more than the subject (-want +got):\n%s", diff)
	}
	assert.False(t, original.Equal(rebound))
}

func TestIdempotentPromising(t *testing.T) {
	subject := addrs.New("//src:lib")
	p1 := New("Classes", subject, config.None())
	p2 := New("Classes", subject, config.None())
	assert.Equal(t, p1.Key(), p2.Key())
}
