package op_test

import (
	"context"
	"fmt"

	"github.com/flowlang/flow/internal/executor"
	"github.com/flowlang/flow/internal/op"
)

// fakeEvaluator implements op.Evaluator for tests without depending on the
// real host-expression package: it recognizes exactly the handful of
// expression shapes this package's sugar constructors emit.
type fakeEvaluator struct{}

func (fakeEvaluator) Eval(_ context.Context, expr string, env map[string]op.Value) (op.Value, error) {
	a, aok := env["a"].(int)
	b, bok := env["b"].(int)
	switch expr {
	case "a + b":
		return a + b, nil
	case "a - b":
		return a - b, nil
	case "a * b":
		return a * b, nil
	case "a / b":
		return a / b, nil
	case "a % b":
		return a % b, nil
	case "a == b":
		if aok && bok {
			return a == b, nil
		}
		return env["a"] == env["b"], nil
	case "a != b":
		if aok && bok {
			return a != b, nil
		}
		return env["a"] != env["b"], nil
	case "a < b":
		return a < b, nil
	case "a <= b":
		return a <= b, nil
	case "a > b":
		return a > b, nil
	case "a >= b":
		return a >= b, nil
	case "a && b":
		return env["a"].(bool) && env["b"].(bool), nil
	case "a || b":
		return env["a"].(bool) || env["b"].(bool), nil
	case "!a":
		return !env["a"].(bool), nil
	case "-a":
		return -a, nil
	}
	return nil, fmt.Errorf("fakeEvaluator: unsupported expression %q", expr)
}

func withExprEvaluator() executor.Option {
	return executor.WithEvaluator(fakeEvaluator{})
}
