package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/op"
)

func TestMapAppliesBodyToEachElement(t *testing.T) {
	t.Parallel()
	iter := op.NewCon(op.List{1, 2, 3})
	body := op.Add(op.NewVar("x"), op.NewCon(1))
	v, err := executortest.RunWith(t, op.NewMap("x", iter, body), withExprEvaluator())
	require.NoError(t, err)
	require.Equal(t, op.List{2, 3, 4}, v)
}

func TestMapOfEmptyListYieldsEmptyList(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewMap("x", op.NewCon(op.List{}), op.NewVar("x")))
	require.NoError(t, err)
	require.Equal(t, op.List{}, v)
}

func TestMapOverNonListIsNotIterable(t *testing.T) {
	t.Parallel()
	_, err := executortest.Run(t, op.NewMap("x", op.NewCon(42), op.NewVar("x")))
	require.Error(t, err)
}

func TestFilKeepsOnlyTruthyElements(t *testing.T) {
	t.Parallel()
	iter := op.NewCon(op.List{1, 2, 3, 4})
	pred := op.Eq(op.Mod(op.NewVar("x"), op.NewCon(2)), op.NewCon(0))
	v, err := executortest.RunWith(t, op.NewFil("x", iter, pred), withExprEvaluator())
	require.NoError(t, err)
	require.Equal(t, op.List{2, 4}, v)
}

func TestIterAccumulatesOverSequence(t *testing.T) {
	t.Parallel()
	// next(acc) always yields a Pair; Next == None signals termination
	// after this (final) item's Body still runs.
	next := op.NewEval([]op.Op{op.NewVar("acc")}, op.NestedFunc(func(_ flowctx.Ctx, args []op.Value) any {
		acc := args[0].(int)
		if acc >= 3 {
			return op.Pair{Item: acc, Next: op.None{}}
		}
		return op.Pair{Item: acc, Next: acc + 1}
	}), true)
	body := op.NewVar("acc")
	v, err := executortest.Run(t, op.NewIter("acc", op.NewCon(0), next, body))
	require.NoError(t, err)
	require.Equal(t, 3, v)
}
