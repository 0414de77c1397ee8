package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/op"
)

func TestWithBindsNameForBody(t *testing.T) {
	t.Parallel()
	tree := op.NewWith([]string{"x"}, []op.Op{op.NewCon(5)}, op.NewVar("x"))
	v, err := executortest.Run(t, tree)
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestWithValsSeeEnclosingBindingsNotSiblings(t *testing.T) {
	t.Parallel()
	// y's Val reads x from the outer With (5), not the x=7 bound beside it:
	// every Val is evaluated before any of the same With's names is pushed.
	tree := op.NewWith(
		[]string{"x"},
		[]op.Op{op.NewCon(5)},
		op.NewWith(
			[]string{"x", "y"},
			[]op.Op{op.NewCon(7), op.NewVar("x")},
			op.NewVar("y"),
		),
	)
	v, err := executortest.Run(t, tree)
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestWithRestoresShadowedBindingAfterBody(t *testing.T) {
	t.Parallel()
	// outer With binds x=1; inner With shadows x=2 around Var("x"); the
	// final Seq reads x again after the inner With has popped its shadow.
	inner := op.NewWith([]string{"x"}, []op.Op{op.NewCon(2)}, op.NewVar("x"))
	tree := op.NewWith(
		[]string{"x"},
		[]op.Op{op.NewCon(1)},
		op.NewSeq([]op.Op{inner, op.NewVar("x")}),
	)
	v, err := executortest.Run(t, tree)
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestWithUnboundNameAfterScopeFails(t *testing.T) {
	t.Parallel()
	tree := op.NewSeq([]op.Op{
		op.NewWith([]string{"x"}, []op.Op{op.NewCon(1)}, op.NewVar("x")),
		op.NewVar("x"),
	})
	_, err := executortest.Run(t, tree)
	require.Error(t, err)
}
