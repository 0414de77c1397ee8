package op

import (
	"context"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Map evaluates Iter to a List, then evaluates Body once per element with
// Var bound to that element, collecting the per-element results into a
// List in source order.
type Map struct {
	Base
	Var  string
	Iter Op
	Body Op
}

// NewMap constructs a Map operation.
func NewMap(v string, iter, body Op) Op {
	return &Map{Base: Base{At: loc.Capture(1)}, Var: v, Iter: iter, Body: body}
}

func (m *Map) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{m.Iter}, nil
}

func (m *Map) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	list, err := asList(depResults[0], m.At)
	if err != nil {
		return fctx, nil, err
	}
	return fctx, list, nil
}

func (m *Map) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	list := execResult.(List)
	ops := make([]Op, len(list))
	for i, e := range list {
		ops[i] = &With{Base: Base{At: m.At}, Names: []string{m.Var}, Vals: []Op{NewCon(e)}, Body: m.Body}
	}
	return fctx, ops, nil
}

func (m *Map) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	out := make(List, len(postDepResults))
	copy(out, postDepResults)
	return fctx, out, nil
}

// Fil evaluates Iter to a List, then evaluates Pred once per element with
// Var bound to that element, keeping only the elements whose predicate
// result is truthy, in source order.
type Fil struct {
	Base
	Var  string
	Iter Op
	Pred Op
}

// NewFil constructs a Fil operation.
func NewFil(v string, iter, pred Op) Op {
	return &Fil{Base: Base{At: loc.Capture(1)}, Var: v, Iter: iter, Pred: pred}
}

func (f *Fil) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{f.Iter}, nil
}

func (f *Fil) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	list, err := asList(depResults[0], f.At)
	if err != nil {
		return fctx, nil, err
	}
	return fctx, list, nil
}

func (f *Fil) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	list := execResult.(List)
	ops := make([]Op, len(list))
	for i, e := range list {
		ops[i] = &With{
			Base:  Base{At: f.At},
			Names: []string{f.Var},
			Vals:  []Op{NewCon(e)},
			Body:  &arr{Base: Base{At: f.At}, Ops: []Op{NewVar(f.Var), f.Pred}},
		}
	}
	return fctx, ops, nil
}

func (f *Fil) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	kept := make(List, 0, len(postDepResults))
	for _, r := range postDepResults {
		pair := r.(Tuple)
		if truthy(pair[1]) {
			kept = append(kept, pair[0])
		}
	}
	return fctx, kept, nil
}

// iterStep is the recursive engine behind Iter: it binds Var to the
// current accumulator, evaluates Next under that binding, and spawns the
// per-item Body for the produced item. Unless the Pair's Next is None, it
// also spawns a continuation iterStep seeded with that next accumulator.
// Its own value is the continuation's value, or this step's Body value on
// the terminal step, where no continuation was spawned.
type iterStep struct {
	Base
	Var  string
	Next Op
	Body Op
	Acc  Value
}

func (s *iterStep) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx.Push(s.Var, s.Acc), []Op{s.Next}, nil
}

func (s *iterStep) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	fctx, err := fctx.Pop(s.Var)
	if err != nil {
		return fctx, nil, err
	}
	return fctx, depResults[0], nil
}

func (s *iterStep) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	pair, ok := execResult.(Pair)
	if !ok {
		return fctx, nil, &flowerrors.NotIterable{At: s.At}
	}
	bodyOp := &With{Base: Base{At: s.At}, Names: []string{s.Var}, Vals: []Op{NewCon(pair.Item)}, Body: s.Body}
	if IsNone(pair.Next) {
		// pair.Next signals termination: evaluate Body for this last item
		// and stop — no continuation step is spawned.
		return fctx, []Op{bodyOp}, nil
	}
	cont := &iterStep{Base: s.Base, Var: s.Var, Next: s.Next, Body: s.Body, Acc: pair.Next}
	return fctx, []Op{bodyOp, cont}, nil
}

func (s *iterStep) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	if len(postDepResults) == 1 {
		return fctx, postDepResults[0], nil
	}
	return fctx, postDepResults[1], nil
}

// Iter repeatedly evaluates Next (which, under Var bound to the running
// accumulator, must produce a Pair of the next item and next accumulator)
// and Body (evaluated once per produced item, with Var bound to that item).
// A Pair whose Next is None ends the loop after that item's Body has run;
// a Next result that is not a Pair fails with NotIterable. Its value is
// the last triggered Body's value — the
// result of folding Next/Body over the implicit sequence Next generates,
// seeded by Init.
type Iter struct {
	Base
	Var  string
	Init Op
	Next Op
	Body Op
}

// NewIter constructs an Iter operation.
func NewIter(v string, init, next, body Op) Op {
	return &Iter{Base: Base{At: loc.Capture(1)}, Var: v, Init: init, Next: next, Body: body}
}

func (it *Iter) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{it.Init}, nil
}

func (it *Iter) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, depResults[0], nil
}

func (it *Iter) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	step := &iterStep{Base: it.Base, Var: it.Var, Next: it.Next, Body: it.Body, Acc: execResult}
	return fctx, []Op{step}, nil
}

func (it *Iter) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, postDepResults[0], nil
}
