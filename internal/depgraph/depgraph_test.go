package depgraph

import (
	"testing"

	"github.com/stretchr/testify/require"

	flowerrors "github.com/flowlang/flow/pkg/errors"
)

func TestPopEmptyQueueFails(t *testing.T) {
	t.Parallel()

	idx := New[string, string]()
	_, _, err := idx.Pop()

	var qe *flowerrors.QueueEmpty
	require.ErrorAs(t, err, &qe)
}

func TestPutWithNoDepsIsImmediatelyReady(t *testing.T) {
	t.Parallel()

	idx := New[string, string]()
	idx.Put("a", "A")

	require.Equal(t, 1, idx.Len())
	item, deps, err := idx.Pop()
	require.NoError(t, err)
	require.Equal(t, "A", item)
	require.Empty(t, deps)
}

func TestDependentBecomesReadyOnceAllDepsPopped(t *testing.T) {
	t.Parallel()

	idx := New[string, string]()
	idx.Put("a", "A")
	idx.Put("b", "B")
	idx.Put("c", "C", "a", "b")

	require.Equal(t, 3, idx.Pending())
	require.Equal(t, 2, idx.Len()) // a and b ready; c waits

	_, _, err := idx.Pop() // pops a (or b)
	require.NoError(t, err)
	require.Equal(t, 1, idx.Len()) // c still not ready; one of a/b remains ready

	_, _, err = idx.Pop() // pops the other of a/b
	require.NoError(t, err)
	require.Equal(t, 1, idx.Len()) // c now ready

	item, deps, err := idx.Pop()
	require.NoError(t, err)
	require.Equal(t, "C", item)
	require.ElementsMatch(t, []string{"A", "B"}, deps)
}

func TestDepsReturnedInDeclarationOrder(t *testing.T) {
	t.Parallel()

	idx := New[string, string]()
	idx.Put("z", "Z")
	idx.Put("a", "A")
	idx.Put("parent", "P", "z", "a")

	_, _, err := idx.Pop() // z
	require.NoError(t, err)
	_, _, err = idx.Pop() // a
	require.NoError(t, err)

	_, deps, err := idx.Pop() // parent
	require.NoError(t, err)
	require.Equal(t, []string{"Z", "A"}, deps)
}

func TestDependencyPutAfterDependentStillConnects(t *testing.T) {
	t.Parallel()

	idx := New[string, string]()
	idx.Put("child", "CHILD", "late")
	require.Equal(t, 0, idx.Len())

	idx.Put("late", "LATE")
	require.Equal(t, 1, idx.Len())

	item, deps, err := idx.Pop()
	require.NoError(t, err)
	require.Equal(t, "LATE", item)
	require.Empty(t, deps)

	item, deps, err = idx.Pop()
	require.NoError(t, err)
	require.Equal(t, "CHILD", item)
	require.Equal(t, []string{"LATE"}, deps)
}
