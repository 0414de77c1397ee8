// Package executortest provides a minimal driver for exercising operation
// trees from other packages' tests without each of them constructing an
// Executor by hand.
package executortest

import (
	"context"
	"testing"

	"github.com/flowlang/flow/internal/executor"
	"github.com/flowlang/flow/internal/op"
)

// Run drives root to completion with a bare executor (no evaluator or
// logger configured) and fails the test immediately on a nil root.
func Run(t *testing.T, root op.Op) (op.Value, error) {
	t.Helper()
	if root == nil {
		t.Fatal("executortest.Run: nil root operation")
	}
	ex := executor.New()
	return ex.Execute(context.Background(), root)
}

// RunWith drives root to completion with the given executor options
// (e.g. executor.WithEvaluator).
func RunWith(t *testing.T, root op.Op, opts ...executor.Option) (op.Value, error) {
	t.Helper()
	ex := executor.New(opts...)
	return ex.Execute(context.Background(), root)
}
