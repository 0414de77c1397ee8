package op

import (
	"context"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
)

// With evaluates all Vals together as its Deps, under the enclosing
// context (a Val does not see the names bound by the same With), then
// pushes each value onto the context under its paired name, in order, and
// evaluates Body under the full set of bindings as a PostDep. The pushed names are popped again in reverse
// order once Body's value is known, restoring whatever those names were
// bound to (if anything) before With ran.
type With struct {
	Base
	Names []string
	Vals  []Op
	Body  Op
}

// NewWith constructs a With operation. len(names) must equal len(vals).
func NewWith(names []string, vals []Op, body Op) Op {
	return &With{Base: Base{At: loc.Capture(1)}, Names: names, Vals: vals, Body: body}
}

func (w *With) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, w.Vals, nil
}

func (w *With) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	for i, name := range w.Names {
		fctx = fctx.Push(name, depResults[i])
	}
	return fctx, nil, nil
}

func (w *With) PostDeps(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{w.Body}, nil
}

func (w *With) PostExec(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	for i := len(w.Names) - 1; i >= 0; i-- {
		var err error
		fctx, err = fctx.Pop(w.Names[i])
		if err != nil {
			return fctx, nil, err
		}
	}
	return fctx, postDepResults[0], nil
}
