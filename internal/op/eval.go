package op

import (
	"context"
	"fmt"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Eval evaluates a host expression, a host callable, or a deferred nested
// operation against the evaluated Args. Body must be one of: string (the
// string-expression family, compiled and run by the Evaluator threaded
// through the context under EvaluatorCtxKey), Callable (the host-callable
// family, invoked directly), or NestedFunc (the deferred-operation family,
// whose result is folded in as a PostDep — see Wrap for how a non-Op
// result is handled).
type Eval struct {
	Base
	Args []Op
	Body any
	Wrap bool
}

// NewEval constructs an Eval operation.
func NewEval(args []Op, body any, wrap bool) Op {
	return &Eval{Base: Base{At: loc.Capture(1)}, Args: args, Body: body, Wrap: wrap}
}

func (e *Eval) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, e.Args, nil
}

// deferredResult carries a NestedFunc's raw return value from Exec to
// PostDeps, distinguishing it from an ordinary already-final value.
type deferredResult struct{ v any }

func (e *Eval) Exec(ctx context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	switch body := e.Body.(type) {
	case string:
		ev, err := evaluatorFrom(fctx, e.At)
		if err != nil {
			return fctx, nil, err
		}
		env := buildEnv(depResults)
		v, err := ev.Eval(ctx, body, env)
		if err != nil {
			return fctx, nil, err
		}
		return fctx, v, nil
	case Callable:
		v, err := body(depResults)
		if err != nil {
			return fctx, nil, err
		}
		return fctx, v, nil
	case NestedFunc:
		return fctx, deferredResult{v: body(fctx, depResults)}, nil
	default:
		return fctx, nil, flowerrors.NewValidationError("eval", fmt.Sprintf("unsupported eval body type %T (at %s)", e.Body, e.At), nil)
	}
}

func (e *Eval) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	dr, ok := execResult.(deferredResult)
	if !ok {
		return fctx, nil, nil
	}
	if nestedOp, ok := dr.v.(Op); ok {
		return fctx, []Op{nestedOp}, nil
	}
	if !e.Wrap {
		return fctx, nil, &flowerrors.EvalBodyNotOp{At: e.At}
	}
	return fctx, []Op{NewCon(dr.v)}, nil
}

func (e *Eval) PostExec(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	if _, deferred := execResult.(deferredResult); deferred {
		return fctx, postDepResults[0], nil
	}
	return fctx, execResult, nil
}

// buildEnv binds positional argument values to both the letter names
// (a, b, c, ...) and the indexed names (x0, x1, ...) host expressions may
// reference, per the embedded-evaluator convention.
func buildEnv(args []Value) map[string]Value {
	env := make(map[string]Value, len(args)*2)
	for i, v := range args {
		env[fmt.Sprintf("x%d", i)] = v
		if i < 26 {
			env[string(rune('a'+i))] = v
		}
	}
	return env
}

// Log evaluates node and forwards its value unchanged, emitting a
// diagnostic line as a side effect. Log is always pass-through and never
// alters error propagation.
type Log struct {
	Base
	Name string
	Msg  string
	Node Op
}

// NewLog constructs a Log operation.
func NewLog(name, msg string, node Op) Op {
	return &Log{Base: Base{At: loc.Capture(1)}, Name: name, Msg: msg, Node: node}
}

func (l *Log) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{l.Node}, nil
}

func (l *Log) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	if logger := loggerFrom(fctx); logger != nil {
		msg := l.Msg
		if msg == "" {
			msg = l.Name
		}
		if msg == "" {
			msg = fmt.Sprintf("log (at %s)", l.At)
		}
		logger.Info(msg)
	}
	return fctx, depResults[0], nil
}

// Err evaluates Args then fails UserError with Msg formatted against the
// resulting values.
type Err struct {
	Base
	Msg  string
	Args []Op
}

// NewErr constructs an Err operation.
func NewErr(msg string, args []Op) Op {
	return &Err{Base: Base{At: loc.Capture(1)}, Msg: msg, Args: args}
}

func (e *Err) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, e.Args, nil
}

func (e *Err) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	formatted := e.Msg
	if len(depResults) > 0 {
		formatted = fmt.Sprintf(e.Msg, depResults...)
	}
	return fctx, nil, &flowerrors.UserError{Message: formatted, At: e.At}
}
