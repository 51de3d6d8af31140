package runtime

import (
	"testing"

	"github.com/aretw0/substrate/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestNodeRegistry_Toggle(t *testing.T) {
	var r NodeRegistry
	a, b := domain.C(0, 0), domain.C(1, -1)

	assert.True(t, r.Toggle(domain.RoleInput, a), "first toggle adds")
	assert.True(t, r.Toggle(domain.RoleInput, b))
	assert.Equal(t, []domain.Coord{a, b}, r.Inputs())
	assert.True(t, r.Contains(domain.RoleInput, a))
	assert.False(t, r.Contains(domain.RoleOutput, a))

	assert.False(t, r.Toggle(domain.RoleInput, a), "second toggle removes")
	assert.Equal(t, []domain.Coord{b}, r.Inputs())
	assert.False(t, r.Contains(domain.RoleInput, a))
}

func TestNodeRegistry_DoubleToggleReappendsAtEnd(t *testing.T) {
	var r NodeRegistry
	a, b, c := domain.C(0, 0), domain.C(1, 0), domain.C(2, 0)
	for _, p := range []domain.Coord{a, b, c} {
		r.Toggle(domain.RoleOutput, p)
	}

	// Toggling the last element twice restores the exact list.
	r.Toggle(domain.RoleOutput, c)
	r.Toggle(domain.RoleOutput, c)
	assert.Equal(t, []domain.Coord{a, b, c}, r.Outputs())

	// Toggling an earlier element twice keeps membership but moves it to the end.
	r.Toggle(domain.RoleOutput, a)
	assert.Equal(t, []domain.Coord{b, c}, r.Outputs())
	r.Toggle(domain.RoleOutput, a)
	assert.Equal(t, []domain.Coord{b, c, a}, r.Outputs())
	assert.ElementsMatch(t, []domain.Coord{a, b, c}, r.Outputs())
}

func TestNodeRegistry_InputAndOutputAreIndependent(t *testing.T) {
	// The same point may be both an input and an output.
	var r NodeRegistry
	p := domain.C(4, 4)

	r.Toggle(domain.RoleInput, p)
	r.Toggle(domain.RoleOutput, p)

	assert.True(t, r.Contains(domain.RoleInput, p))
	assert.True(t, r.Contains(domain.RoleOutput, p))
	assert.True(t, r.Registered(p))

	r.Toggle(domain.RoleInput, p)
	assert.False(t, r.Contains(domain.RoleInput, p))
	assert.True(t, r.Registered(p), "still registered as output")
}

func TestNodeRegistry_CopiesAreDetached(t *testing.T) {
	var r NodeRegistry
	r.Toggle(domain.RoleInput, domain.C(1, 1))

	got := r.Inputs()
	got[0] = domain.C(9, 9)
	assert.Equal(t, []domain.Coord{domain.C(1, 1)}, r.Inputs())

	assert.NotNil(t, r.Outputs(), "empty lists are non-nil")
	assert.Empty(t, r.Outputs())
}

func TestNodeRegistry_UnknownRoleIsIgnored(t *testing.T) {
	var r NodeRegistry
	assert.False(t, r.Toggle(domain.Role(0), domain.C(0, 0)))
	assert.False(t, r.Contains(domain.Role(0), domain.C(0, 0)))
	assert.Empty(t, r.Inputs())
	assert.Empty(t, r.Outputs())
}
