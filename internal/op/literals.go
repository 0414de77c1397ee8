package op

import (
	"context"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Con is a literal value operation: Exec always returns v unchanged.
type Con struct {
	Base
	V Value
}

// NewCon wraps a raw value as a Con operation.
func NewCon(v Value) Op {
	return &Con{Base: Base{At: loc.Capture(1)}, V: v}
}

func (c *Con) Exec(_ context.Context, fctx flowctx.Ctx, _ []Value) (flowctx.Ctx, Value, error) {
	return fctx, c.V, nil
}

// Wrap returns v unchanged if it is already an Op, or wraps it as a Con
// otherwise. Every variadic constructor in this package accepts raw Go
// values alongside Op operands via Wrap.
func Wrap(v any) Op {
	if o, ok := v.(Op); ok {
		return o
	}
	return NewCon(v)
}

// WrapAll applies Wrap to a slice of mixed Op/raw-value operands.
func WrapAll(vs []any) []Op {
	ops := make([]Op, len(vs))
	for i, v := range vs {
		ops[i] = Wrap(v)
	}
	return ops
}

// Var looks up a name in the current context.
type Var struct {
	Base
	Name string
}

// NewVar constructs a Var operation.
func NewVar(name string) Op {
	return &Var{Base: Base{At: loc.Capture(1)}, Name: name}
}

func (v *Var) Exec(_ context.Context, fctx flowctx.Ctx, _ []Value) (flowctx.Ctx, Value, error) {
	val, err := fctx.Get(v.Name)
	if err != nil {
		return fctx, nil, &flowerrors.NameUnbound{Name: v.Name, At: v.At}
	}
	return fctx, val, nil
}
