package op

import (
	"context"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
)

// DeferFunc is the lambda-as-deferred convention's payload: a host
// closure that resolves its free variables via ordinary Ctx.Get lookups
// against whatever context is live when the executor finally reaches it,
// rather than the context at the point flow.Defer was called. Wrapping a
// host closure this way makes the deferral explicit instead of relying on
// free-variable introspection, which Go's lack of expression quoting
// rules out anyway.
type DeferFunc func(fctx flowctx.Ctx) (Value, error)

// deferred is the Op a DeferFunc is lifted into.
type deferred struct {
	Base
	Fn DeferFunc
}

// NewDefer constructs an Op from a DeferFunc.
func NewDefer(fn DeferFunc) Op {
	return &deferred{Base: Base{At: loc.Capture(1)}, Fn: fn}
}

func (d *deferred) Exec(_ context.Context, fctx flowctx.Ctx, _ []Value) (flowctx.Ctx, Value, error) {
	v, err := d.Fn(fctx)
	return fctx, v, err
}
