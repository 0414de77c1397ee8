package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/op"
)

func TestCallBindsArgsAndEvaluatesBody(t *testing.T) {
	t.Parallel()
	fn, err := op.NewFun([]string{"x", "y"}, op.Add(op.NewVar("x"), op.NewVar("y")))
	require.NoError(t, err)
	v, err := executortest.RunWith(t, op.NewCall(fn, []op.Op{op.NewCon(2), op.NewCon(3)}), withExprEvaluator())
	require.NoError(t, err)
	require.Equal(t, 5, v)
}

func TestCallWithTooFewArgsFailsMissingArgs(t *testing.T) {
	t.Parallel()
	fn, err := op.NewFun([]string{"x", "y"}, op.NewVar("x"))
	require.NoError(t, err)
	_, err = executortest.Run(t, op.NewCall(fn, []op.Op{op.NewCon(1)}))
	require.Error(t, err)
}

func TestCallWithTooManyArgsFailsExtraArgs(t *testing.T) {
	t.Parallel()
	fn, err := op.NewFun([]string{"x"}, op.NewVar("x"))
	require.NoError(t, err)
	_, err = executortest.Run(t, op.NewCall(fn, []op.Op{op.NewCon(1), op.NewCon(2)}))
	require.Error(t, err)
}

func TestFunWithDuplicateParamFailsAtConstruction(t *testing.T) {
	t.Parallel()
	_, err := op.NewFun([]string{"x", "x"}, op.NewVar("x"))
	require.Error(t, err)
}

func TestFunBodyCanRecurseViaCall(t *testing.T) {
	t.Parallel()
	// fact(n) = n <= 1 ? 1 : n * fact(n-1), realized via Match and a
	// nested Call that references the same Fun value through a binding.
	var fact op.Op
	body := op.NewMatch("n", op.NewVar("n"), []op.MatchCase{
		{Pred: op.Le(op.NewVar("n"), op.NewCon(1)), Result: op.NewCon(1)},
		{Pred: op.NewCon(true), Result: op.Mul(
			op.NewVar("n"),
			op.NewCall(op.NewVar("fact"), []op.Op{op.Sub(op.NewVar("n"), op.NewCon(1))}),
		)},
	})
	fn, err := op.NewFun([]string{"n"}, body)
	require.NoError(t, err)
	fact = fn

	tree := op.NewWith([]string{"fact"}, []op.Op{fact}, op.NewCall(op.NewVar("fact"), []op.Op{op.NewCon(4)}))
	v, err := executortest.RunWith(t, tree, withExprEvaluator())
	require.NoError(t, err)
	require.Equal(t, 24, v)
}
