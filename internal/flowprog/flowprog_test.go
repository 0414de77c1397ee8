package flowprog_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/flowlang/flow/internal/executortest"
	"github.com/flowlang/flow/internal/flowprog"
)

func TestCompileConLiteral(t *testing.T) {
	t.Parallel()
	tree, err := flowprog.Compile(flowprog.Node{Con: 42})
	require.NoError(t, err)
	v, err := executortest.Run(t, tree)
	require.NoError(t, err)
	require.Equal(t, 42, v)
}

func TestCompileSeqOfLiterals(t *testing.T) {
	t.Parallel()
	tree, err := flowprog.Compile(flowprog.Node{Seq: []flowprog.Node{
		{Con: 1},
		{Con: 2},
	}})
	require.NoError(t, err)
	v, err := executortest.Run(t, tree)
	require.NoError(t, err)
	require.Equal(t, 2, v)
}

func TestCompileWithBindsAndReadsVar(t *testing.T) {
	t.Parallel()
	tree, err := flowprog.Compile(flowprog.Node{With: &flowprog.WithNode{
		Names: []string{"x"},
		Vals:  []flowprog.Node{{Con: 7}},
		Body:  flowprog.Node{Var: "x"},
	}})
	require.NoError(t, err)
	v, err := executortest.Run(t, tree)
	require.NoError(t, err)
	require.Equal(t, 7, v)
}
