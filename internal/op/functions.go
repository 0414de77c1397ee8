package op

import (
	"context"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Fun constructs a first-class closure value: calling it binds each
// argument to its corresponding parameter and evaluates Body. Fun itself
// has no dependencies; its Exec simply produces the FunValue.
type Fun struct {
	Base
	Params []string
	Body   Op
}

// NewFun constructs a Fun operation. It fails at construction time if
// Params contains a repeated name.
func NewFun(params []string, body Op) (Op, error) {
	at := loc.Capture(1)
	seen := make(map[string]struct{}, len(params))
	for _, p := range params {
		if _, dup := seen[p]; dup {
			return nil, &flowerrors.DuplicateArg{Name: p, At: at}
		}
		seen[p] = struct{}{}
	}
	return &Fun{Base: Base{At: at}, Params: params, Body: body}, nil
}

func (f *Fun) Exec(_ context.Context, fctx flowctx.Ctx, _ []Value) (flowctx.Ctx, Value, error) {
	return fctx, FunValue{Params: f.Params, Body: f.Body, At: f.At}, nil
}

// callPrep bridges Call's Exec (which resolves and arity-checks the
// callee) to its PostDeps (which binds the arguments and schedules the
// body).
type callPrep struct {
	Fn   FunValue
	Args []Value
}

// Call invokes Fn with Args: each argument is bound to the matching
// parameter name and Body is evaluated under those bindings.
type Call struct {
	Base
	Fn   Op
	Args []Op
}

// NewCall constructs a Call operation.
func NewCall(fn Op, args []Op) Op {
	return &Call{Base: Base{At: loc.Capture(1)}, Fn: fn, Args: args}
}

func (c *Call) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	deps := make([]Op, 0, 1+len(c.Args))
	deps = append(deps, c.Fn)
	deps = append(deps, c.Args...)
	return fctx, deps, nil
}

func (c *Call) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	fn, ok := depResults[0].(FunValue)
	if !ok {
		return fctx, nil, flowerrors.NewValidationError("call", "callee is not a function value", nil)
	}
	args := depResults[1:]
	if len(args) < len(fn.Params) {
		return fctx, nil, &flowerrors.MissingArgs{Want: len(fn.Params), Got: len(args), At: c.At}
	}
	if len(args) > len(fn.Params) {
		return fctx, nil, &flowerrors.ExtraArgs{Want: len(fn.Params), Got: len(args), At: c.At}
	}
	return fctx, callPrep{Fn: fn, Args: append([]Value(nil), args...)}, nil
}

func (c *Call) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	prep := execResult.(callPrep)
	vals := make([]Op, len(prep.Args))
	for i, a := range prep.Args {
		vals[i] = NewCon(a)
	}
	body := &With{Base: Base{At: c.At}, Names: prep.Fn.Params, Vals: vals, Body: prep.Fn.Body}
	return fctx, []Op{body}, nil
}

func (c *Call) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, postDepResults[0], nil
}
