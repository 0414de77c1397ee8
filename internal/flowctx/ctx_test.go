package flowctx

import (
	"testing"

	"github.com/stretchr/testify/require"

	flowerrors "github.com/flowlang/flow/pkg/errors"
)

func TestGetMissingNameIsUnbound(t *testing.T) {
	t.Parallel()

	c := New()
	_, err := c.Get("a")

	var unbound *flowerrors.NameUnbound
	require.ErrorAs(t, err, &unbound)
	require.Equal(t, "a", unbound.Name)
}

func TestPushThenGetReturnsTopmostBinding(t *testing.T) {
	t.Parallel()

	c := New().Push("a", 1).Push("a", 2)

	v, err := c.Get("a")
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestShadowingIsLexical(t *testing.T) {
	t.Parallel()

	c := New().Push("a", 1)
	shadowed := c.Push("a", 2)

	v, err := shadowed.Get("a")
	require.NoError(t, err)
	require.Equal(t, 2, v)

	// The original context is untouched: Ctx values are persistent.
	v, err = c.Get("a")
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestPopRemovesOnlyTopmostShadow(t *testing.T) {
	t.Parallel()

	c := New().Push("a", 1).Push("a", 2)

	popped, err := c.Pop("a")
	require.NoError(t, err)

	v, err := popped.Get("a")
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestPopPreservesBindingsAboveTheRemovedOne(t *testing.T) {
	t.Parallel()

	c := New().Push("a", 1).Push("b", 2).Push("c", 3)

	popped, err := c.Pop("b")
	require.NoError(t, err)

	av, err := popped.Get("a")
	require.NoError(t, err)
	require.Equal(t, 1, av)

	cv, err := popped.Get("c")
	require.NoError(t, err)
	require.Equal(t, 3, cv)

	_, err = popped.Get("b")
	require.Error(t, err)
}

func TestPopMissingNameFails(t *testing.T) {
	t.Parallel()

	c := New().Push("a", 1)
	_, err := c.Pop("z")

	var unbound *flowerrors.NameUnbound
	require.ErrorAs(t, err, &unbound)
}

func TestBindingsListsTopmostFirst(t *testing.T) {
	t.Parallel()

	c := New().Push("a", 1).Push("b", 2)

	bindings := c.Bindings()
	require.Equal(t, []Binding{{Name: "b", Value: 2}, {Name: "a", Value: 1}}, bindings)
}
