package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/op"
)

func TestMatchReturnsFirstTruthyCaseResult(t *testing.T) {
	t.Parallel()
	tree := op.NewMatch("v", op.NewCon(2), []op.MatchCase{
		{Pred: op.Eq(op.NewVar("v"), op.NewCon(1)), Result: op.NewCon("one")},
		{Pred: op.Eq(op.NewVar("v"), op.NewCon(2)), Result: op.NewCon("two")},
		{Pred: op.NewCon(true), Result: op.NewCon("fallback")},
	})
	v, err := executortest.RunWith(t, tree, withExprEvaluator())
	require.NoError(t, err)
	require.Equal(t, "two", v)
}

func TestMatchFallsThroughToDefaultCase(t *testing.T) {
	t.Parallel()
	tree := op.NewMatch("v", op.NewCon(99), []op.MatchCase{
		{Pred: op.Eq(op.NewVar("v"), op.NewCon(1)), Result: op.NewCon("one")},
		{Pred: op.NewCon(true), Result: op.NewCon("fallback")},
	})
	v, err := executortest.RunWith(t, tree, withExprEvaluator())
	require.NoError(t, err)
	require.Equal(t, "fallback", v)
}

func TestMatchExhaustedIsUnmatched(t *testing.T) {
	t.Parallel()
	tree := op.NewMatch("v", op.NewCon(1), []op.MatchCase{
		{Pred: op.NewCon(false), Result: op.NewCon("never")},
	})
	_, err := executortest.Run(t, tree)
	require.Error(t, err)
}

func TestMatchWithNoCasesIsUnmatched(t *testing.T) {
	t.Parallel()
	_, err := executortest.Run(t, op.NewMatch("v", op.NewCon(1), nil))
	require.Error(t, err)
}
