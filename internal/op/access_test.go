package op_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/op"
)

func TestGetAttrReadsMapKey(t *testing.T) {
	t.Parallel()
	obj := op.NewCon(map[string]op.Value{"name": "ada"})
	v, err := executortest.Run(t, op.NewGetAttr(obj, "name", nil))
	require.NoError(t, err)
	require.Equal(t, "ada", v)
}

func TestGetAttrMissingWithoutDefaultFails(t *testing.T) {
	t.Parallel()
	obj := op.NewCon(map[string]op.Value{"name": "ada"})
	_, err := executortest.Run(t, op.NewGetAttr(obj, "age", nil))
	require.Error(t, err)
}

func TestGetAttrMissingUsesDefault(t *testing.T) {
	t.Parallel()
	obj := op.NewCon(map[string]op.Value{"name": "ada"})
	v, err := executortest.Run(t, op.NewGetAttr(obj, "age", op.NewCon(0)))
	require.NoError(t, err)
	require.Equal(t, 0, v)
}

func TestGetAttrLenOfList(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewGetAttr(op.NewCon(op.List{1, 2, 3}), "len", nil))
	require.NoError(t, err)
	require.Equal(t, 3, v)
}

func TestGetItemIndexesList(t *testing.T) {
	t.Parallel()
	v, err := executortest.Run(t, op.NewGetItem(op.NewCon(op.List{"a", "b", "c"}), op.NewCon(1)))
	require.NoError(t, err)
	require.Equal(t, "b", v)
}

func TestGetItemMissingKeyFails(t *testing.T) {
	t.Parallel()
	_, err := executortest.Run(t, op.NewGetItem(op.NewCon(map[string]op.Value{"a": 1}), op.NewCon("b")))
	require.Error(t, err)
}

func TestGetItemOutOfRangeFails(t *testing.T) {
	t.Parallel()
	_, err := executortest.Run(t, op.NewGetItem(op.NewCon(op.List{1, 2}), op.NewCon(5)))
	require.Error(t, err)
}
