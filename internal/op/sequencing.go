package op

import (
	"context"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
)

// seq executes its operands strictly in order, threading results through,
// and yields the value of the last one. It is built as a head/tail
// recursion: Deps requests the head; PostDeps requests Seq of the tail;
// PostExec returns the tail's value once the recursion bottoms out at a
// single remaining operand, whose raw value is returned instead of a
// one-element list (the source has two variants here; the raw value
// agrees with the majority of tests and the With(v,Con(x),Var(v))-style
// algebraic laws).
type seq struct {
	Base
	Ops []Op
}

// NewSeq constructs a Seq operation. Seq() yields None.
func NewSeq(ops []Op) Op {
	at := loc.Capture(1)
	if len(ops) == 0 {
		return &Con{Base: Base{At: at}, V: None{}}
	}
	return &seq{Base: Base{At: at}, Ops: ops}
}

func (s *seq) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{s.Ops[0]}, nil
}

func (s *seq) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, depResults[0], nil
}

func (s *seq) PostDeps(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value) (flowctx.Ctx, []Op, error) {
	if len(s.Ops) == 1 {
		return fctx, nil, nil
	}
	return fctx, []Op{&seq{Base: Base{At: s.At}, Ops: s.Ops[1:]}}, nil
}

func (s *seq) PostExec(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	if len(postDepResults) == 0 {
		return fctx, execResult, nil
	}
	return fctx, postDepResults[0], nil
}

// par evaluates every operand as a simultaneous dependency and returns
// their values as a List in operand order. Parallelism is an allowance,
// not a requirement: the executor may run independent ready jobs
// concurrently, but sequential evaluation produces identical results.
type par struct {
	Base
	Ops []Op
}

// NewPar constructs a Par operation. Par() yields an empty List.
func NewPar(ops []Op) Op {
	return &par{Base: Base{At: loc.Capture(1)}, Ops: ops}
}

func (p *par) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, p.Ops, nil
}

func (p *par) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, List(append([]Value(nil), depResults...)), nil
}

// arr is identical to par except it contractually returns a fixed Tuple
// rather than a List.
type arr struct {
	Base
	Ops []Op
}

// NewArr constructs an Arr operation. Arr() yields an empty Tuple.
func NewArr(ops []Op) Op {
	return &arr{Base: Base{At: loc.Capture(1)}, Ops: ops}
}

func (a *arr) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, a.Ops, nil
}

func (a *arr) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, Tuple(append([]Value(nil), depResults...)), nil
}
