package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/op"
)

func TestConYieldsItsValue(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewCon("hello"))
	require.NoError(t, err)
	require.Equal(t, "hello", v)
}

func TestVarYieldsBoundValue(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewWith([]string{"x"}, []op.Op{op.NewCon(1)}, op.NewVar("x")))
	require.NoError(t, err)
	require.Equal(t, 1, v)
}

func TestVarUnboundFails(t *testing.T) {
	t.Parallel()
	_, err := executortest.Run(t, op.NewVar("missing"))
	require.Error(t, err)
}

func TestWrapPassesThroughExistingOp(t *testing.T) {
	t.Parallel()
	v := op.NewVar("x")
	require.Same(t, v, op.Wrap(v))
}

func TestWrapLiftsRawValueAsCon(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.Wrap(9))
	require.NoError(t, err)
	require.Equal(t, 9, v)
}
