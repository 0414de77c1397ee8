// Package flow is the module's public surface: the operation algebra
// constructors, the executor, and the context type, re-exported from
// their internal packages for ergonomic construction by callers outside
// this module. Callers needing the lower-level lifecycle contract itself
// (to write a new operation variant) import internal/op directly; it is
// unexported from outside the module on purpose, mirroring the teacher's
// own split between a small public entry point (cmd/streamy) and a large
// internal/ implementation surface.
package flow

import (
	"context"

	"github.com/flowlang/flow/internal/executor"
	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	"github.com/flowlang/flow/internal/op"
	"github.com/flowlang/flow/internal/trace"
)

// Value is the dynamically-typed result of any operation.
type Value = op.Value

// Op is the operation lifecycle contract.
type Op = op.Op

// Ctx is the persistent lexical-binding context threaded through
// evaluation.
type Ctx = flowctx.Ctx

// NewCtx returns an empty Ctx.
func NewCtx() Ctx { return flowctx.New() }

// Executor evaluates operation trees to a final Value.
type Executor = executor.Executor

// Option configures an Executor.
type Option = executor.Option

// WithEvaluator threads a host-expression evaluator through the executor.
func WithEvaluator(ev op.Evaluator) Option { return executor.WithEvaluator(ev) }

// WithLogger threads a diagnostic logger through the executor.
func WithLogger(l op.Logger) Option { return executor.WithLogger(l) }

// WithSink records a trace.Record for every completed job.
func WithSink(sink trace.Sink) Option { return executor.WithSink(sink) }

// NewExecutor constructs an Executor.
func NewExecutor(opts ...Option) *Executor { return executor.New(opts...) }

// Execute drives root to completion with a default executor. Callers
// needing evaluator/logger/trace wiring should construct an Executor via
// NewExecutor instead.
func Execute(ctx context.Context, root Op) (Value, error) {
	return executor.New().Execute(ctx, root)
}

// --- Operation algebra constructors -----------------------------------
//
// Every constructor below is a thin wrapper around internal/op's own
// NewXxx — the only way code outside this module can build an Op, since
// internal/op is unexported. Each op.NewXxx captures its own immediate
// caller's source location for diagnostics, which would otherwise always
// resolve to the line in this file rather than the caller's. Each
// wrapper here captures its own caller's location first and relocates
// the constructed Op to it, so a consumer's error/trace output reports
// their own call site.

// Con wraps a raw value as a literal operation.
func Con(v Value) Op { return op.Relocate(op.NewCon(v), loc.Capture(1)) }

// Var looks up name in the current context.
func Var(name string) Op { return op.Relocate(op.NewVar(name), loc.Capture(1)) }

// GetAttr resolves a named member of o, falling back to def (nil for
// none) if absent.
func GetAttr(o Op, name string, def Op) Op {
	return op.Relocate(op.NewGetAttr(o, name, def), loc.Capture(1))
}

// GetItem indexes o by k.
func GetItem(o, k Op) Op { return op.Relocate(op.NewGetItem(o, k), loc.Capture(1)) }

// Eval evaluates a host expression, host callable, or deferred nested
// operation against Args.
func Eval(args []Op, body any, wrap bool) Op {
	return op.Relocate(op.NewEval(args, body, wrap), loc.Capture(1))
}

// Log evaluates node and forwards its value, emitting a diagnostic line.
func Log(name, msg string, node Op) Op {
	return op.Relocate(op.NewLog(name, msg, node), loc.Capture(1))
}

// Err evaluates Args then fails with msg formatted against them.
func Err(msg string, args []Op) Op { return op.Relocate(op.NewErr(msg, args), loc.Capture(1)) }

// Seq evaluates ops strictly in order, yielding the last one's value
// (the raw value, for a single operand; None for zero operands).
func Seq(ops []Op) Op { return op.Relocate(op.NewSeq(ops), loc.Capture(1)) }

// Par evaluates ops as simultaneous dependencies, returning a List.
func Par(ops []Op) Op { return op.Relocate(op.NewPar(ops), loc.Capture(1)) }

// Arr evaluates ops as simultaneous dependencies, returning a Tuple.
func Arr(ops []Op) Op { return op.Relocate(op.NewArr(ops), loc.Capture(1)) }

// Map evaluates iter to a list, then body once per element with v bound
// to that element, collecting the results into a List.
func Map(v string, iter, body Op) Op { return op.Relocate(op.NewMap(v, iter, body), loc.Capture(1)) }

// Fil evaluates iter to a list, keeping elements whose pred is truthy.
func Fil(v string, iter, pred Op) Op { return op.Relocate(op.NewFil(v, iter, pred), loc.Capture(1)) }

// With binds names to vals in order, evaluates body under those
// bindings, then restores whatever the names were bound to before.
func With(names []string, vals []Op, body Op) Op {
	return op.Relocate(op.NewWith(names, vals, body), loc.Capture(1))
}

// Iter folds next/body over the implicit sequence next generates from
// init, yielding the last triggered body value.
func Iter(v string, init, next, body Op) Op {
	return op.Relocate(op.NewIter(v, init, next, body), loc.Capture(1))
}

// MatchCase pairs a predicate with the result to use when it is the
// first truthy predicate encountered.
type MatchCase = op.MatchCase

// Match evaluates value once, then the first truthy case's result.
func Match(v string, value Op, cases []MatchCase) Op {
	return op.Relocate(op.NewMatch(v, value, cases), loc.Capture(1))
}

// Fun constructs a closure value; fails at construction time on a
// repeated parameter name.
func Fun(params []string, body Op) (Op, error) {
	at := loc.Capture(1)
	fn, err := op.NewFun(params, body)
	if err != nil {
		return nil, err
	}
	return op.Relocate(fn, at), nil
}

// Call invokes fn with args.
func Call(fn Op, args []Op) Op { return op.Relocate(op.NewCall(fn, args), loc.Capture(1)) }

// Defer lifts a host closure into a deferred operation per the
// lambda-as-deferred convention: fn resolves free variables via Ctx.Get
// against the context live when the executor reaches it.
func Defer(fn func(Ctx) (Value, error)) Op {
	return op.Relocate(op.NewDefer(op.DeferFunc(fn)), loc.Capture(1))
}

// --- Operator sugar ----------------------------------------------------
//
// Each of these synthesizes an Eval node several frames down (through
// op's own binExpr helper), so — same reasoning as above — the location
// is captured here and relocated rather than left to op's capture.

// Add synthesizes Eval(l, r, "a + b").
func Add(l, r Op) Op { return op.Relocate(op.Add(l, r), loc.Capture(1)) }

// Sub synthesizes Eval(l, r, "a - b").
func Sub(l, r Op) Op { return op.Relocate(op.Sub(l, r), loc.Capture(1)) }

// Mul synthesizes Eval(l, r, "a * b").
func Mul(l, r Op) Op { return op.Relocate(op.Mul(l, r), loc.Capture(1)) }

// Div synthesizes Eval(l, r, "a / b").
func Div(l, r Op) Op { return op.Relocate(op.Div(l, r), loc.Capture(1)) }

// Mod synthesizes Eval(l, r, "a % b").
func Mod(l, r Op) Op { return op.Relocate(op.Mod(l, r), loc.Capture(1)) }

// Eq synthesizes Eval(l, r, "a == b").
func Eq(l, r Op) Op { return op.Relocate(op.Eq(l, r), loc.Capture(1)) }

// Ne synthesizes Eval(l, r, "a != b").
func Ne(l, r Op) Op { return op.Relocate(op.Ne(l, r), loc.Capture(1)) }

// Lt synthesizes Eval(l, r, "a < b").
func Lt(l, r Op) Op { return op.Relocate(op.Lt(l, r), loc.Capture(1)) }

// Le synthesizes Eval(l, r, "a <= b").
func Le(l, r Op) Op { return op.Relocate(op.Le(l, r), loc.Capture(1)) }

// Gt synthesizes Eval(l, r, "a > b").
func Gt(l, r Op) Op { return op.Relocate(op.Gt(l, r), loc.Capture(1)) }

// Ge synthesizes Eval(l, r, "a >= b").
func Ge(l, r Op) Op { return op.Relocate(op.Ge(l, r), loc.Capture(1)) }

// And synthesizes Eval(l, r, "a && b").
func And(l, r Op) Op { return op.Relocate(op.And(l, r), loc.Capture(1)) }

// Or synthesizes Eval(l, r, "a || b").
func Or(l, r Op) Op { return op.Relocate(op.Or(l, r), loc.Capture(1)) }

// Not synthesizes Eval(x, "!a").
func Not(x Op) Op { return op.Relocate(op.Not(x), loc.Capture(1)) }

// Neg synthesizes Eval(x, "-a").
func Neg(x Op) Op { return op.Relocate(op.Neg(x), loc.Capture(1)) }
