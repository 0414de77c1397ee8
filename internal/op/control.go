package op

import (
	"context"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// MatchCase pairs a predicate with the result to evaluate when it is the
// first truthy predicate encountered. Both Pred and Result are evaluated
// with Var bound to the scrutinee.
type MatchCase struct {
	Pred   Op
	Result Op
}

// Match evaluates Value exactly once, then tries each Case's predicate in
// order under Var bound to that value, evaluating and returning the
// Result of the first truthy one. If no predicate matches, Unmatched is
// raised at Match's own location.
type Match struct {
	Base
	Var   string
	Value Op
	Cases []MatchCase
}

// NewMatch constructs a Match operation.
func NewMatch(v string, value Op, cases []MatchCase) Op {
	return &Match{Base: Base{At: loc.Capture(1)}, Var: v, Value: value, Cases: cases}
}

func (m *Match) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{m.Value}, nil
}

func (m *Match) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, depResults[0], nil
}

func (m *Match) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	if len(m.Cases) == 0 {
		return fctx, nil, &flowerrors.Unmatched{At: m.At}
	}
	mc := &matchCases{Base: Base{At: m.At}, Var: m.Var, Cases: m.Cases, Scrutinee: execResult, Idx: 0}
	return fctx, []Op{mc}, nil
}

func (m *Match) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, postDepResults[0], nil
}

// matchCases is the short-circuiting recursive search over Match's cases.
// It always carries Match's original source location so an eventual
// Unmatched error points at the Match expression, not the last case
// tried.
type matchCases struct {
	Base
	Var       string
	Cases     []MatchCase
	Scrutinee Value
	Idx       int
}

func (mc *matchCases) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	pred := &With{
		Base:  Base{At: mc.At},
		Names: []string{mc.Var},
		Vals:  []Op{NewCon(mc.Scrutinee)},
		Body:  mc.Cases[mc.Idx].Pred,
	}
	return fctx, []Op{pred}, nil
}

func (mc *matchCases) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, depResults[0], nil
}

func (mc *matchCases) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	if truthy(execResult) {
		result := &With{
			Base:  Base{At: mc.At},
			Names: []string{mc.Var},
			Vals:  []Op{NewCon(mc.Scrutinee)},
			Body:  mc.Cases[mc.Idx].Result,
		}
		return fctx, []Op{result}, nil
	}
	if mc.Idx+1 < len(mc.Cases) {
		next := &matchCases{Base: mc.Base, Var: mc.Var, Cases: mc.Cases, Scrutinee: mc.Scrutinee, Idx: mc.Idx + 1}
		return fctx, []Op{next}, nil
	}
	return fctx, nil, &flowerrors.Unmatched{At: mc.At}
}

func (mc *matchCases) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	return fctx, postDepResults[0], nil
}
