package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/op"
)

func TestSeqEmptyYieldsNone(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewSeq(nil))
	require.NoError(t, err)
	require.True(t, op.IsNone(v))
}

func TestSeqOfOneYieldsRawValue(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewSeq([]op.Op{op.NewCon(42)}))
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestSeqYieldsLastValue(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewSeq([]op.Op{
		op.NewCon(1),
		op.NewCon(2),
		op.NewCon(3),
	}))
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestParCollectsListInOrder(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewPar([]op.Op{op.NewCon(1), op.NewCon(2), op.NewCon(3)}))
	require.NoError(t, err)
	require.Equal(t, op.List{1, 2, 3}, v)
}

func TestArrCollectsTupleInOrder(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewArr([]op.Op{op.NewCon("a"), op.NewCon("b")}))
	require.NoError(t, err)
	require.Equal(t, op.Tuple{"a", "b"}, v)
}
