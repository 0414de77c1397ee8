// Package hostexpr implements op.Evaluator over github.com/expr-lang/expr,
// the host expression language the Eval operation's string-expression
// family compiles and runs against the bound argument environment. The
// dependency is sourced from the wider example pack's manifest surface
// (several retrieved repos declare it as their embedded-expression
// engine) rather than from the teacher itself, which has no host
// expression language of its own — see DESIGN.md for the justification.
package hostexpr

import (
	"context"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/flowlang/flow/internal/op"
)

// Evaluator compiles and runs expr-lang programs, caching compiled
// programs by source text since the same expression string is typically
// evaluated many times (once per Map/Fil/Iter element).
type Evaluator struct {
	mu      sync.Mutex
	cache   map[string]*vm.Program
	options []expr.Option
}

// New constructs an Evaluator. Extra expr.Option values (e.g. custom
// functions) are applied to every compilation.
func New(options ...expr.Option) *Evaluator {
	return &Evaluator{cache: make(map[string]*vm.Program), options: options}
}

// Eval implements op.Evaluator.
func (e *Evaluator) Eval(_ context.Context, source string, env map[string]op.Value) (op.Value, error) {
	program, err := e.compile(source, env)
	if err != nil {
		return nil, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (e *Evaluator) compile(source string, env map[string]op.Value) (*vm.Program, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if program, ok := e.cache[source]; ok {
		return program, nil
	}
	opts := append([]expr.Option{expr.Env(env), expr.AllowUndefinedVariables()}, e.options...)
	program, err := expr.Compile(source, opts...)
	if err != nil {
		return nil, err
	}
	e.cache[source] = program
	return program, nil
}

var _ op.Evaluator = (*Evaluator)(nil)
