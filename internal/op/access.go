package op

import (
	"context"
	"reflect"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// attrMissing is Exec's sentinel exec_result signalling GetAttr's PostDeps
// that the member was not found and the (possibly nil) Default operand
// must be consulted.
type attrMissing struct{}

// GetAttr resolves a named member of the evaluated operand o. The special
// name "len" returns the size of a sequence or mapping regardless of its
// concrete type. If the member is absent, Default (when non-nil) is
// evaluated lazily as a PostDep; otherwise MemberMissing is raised.
type GetAttr struct {
	Base
	O       Op
	Name    string
	Default Op // nil when no default was supplied
}

// NewGetAttr constructs a GetAttr operation. Pass a nil default to omit it.
func NewGetAttr(o Op, name string, def Op) Op {
	return &GetAttr{Base: Base{At: loc.Capture(1)}, O: o, Name: name, Default: def}
}

func (g *GetAttr) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{g.O}, nil
}

func (g *GetAttr) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	o := depResults[0]
	if g.Name == "len" {
		if n, ok := lengthOf(o); ok {
			return fctx, n, nil
		}
		return fctx, attrMissing{}, nil
	}
	v, ok := attrOf(o, g.Name)
	if !ok {
		return fctx, attrMissing{}, nil
	}
	return fctx, v, nil
}

func (g *GetAttr) PostDeps(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value) (flowctx.Ctx, []Op, error) {
	if _, missing := execResult.(attrMissing); !missing {
		return fctx, nil, nil
	}
	if g.Default == nil {
		return fctx, nil, &flowerrors.MemberMissing{Name: g.Name, At: g.At}
	}
	return fctx, []Op{g.Default}, nil
}

func (g *GetAttr) PostExec(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	if len(postDepResults) > 0 {
		return fctx, postDepResults[0], nil
	}
	return fctx, execResult, nil
}

// GetItem indexes the evaluated operand o by the evaluated key k.
type GetItem struct {
	Base
	O Op
	K Op
}

// NewGetItem constructs a GetItem operation.
func NewGetItem(o, k Op) Op {
	return &GetItem{Base: Base{At: loc.Capture(1)}, O: o, K: k}
}

func (g *GetItem) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, []Op{g.O, g.K}, nil
}

func (g *GetItem) Exec(_ context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error) {
	o, k := depResults[0], depResults[1]
	v, ok := itemOf(o, k)
	if !ok {
		return fctx, nil, &flowerrors.IndexMissing{Key: k, At: g.At}
	}
	return fctx, v, nil
}

// lengthOf returns the size of a sequence or mapping, or ok=false if v has
// no defined length.
func lengthOf(v Value) (int, bool) {
	switch x := v.(type) {
	case List:
		return len(x), true
	case Tuple:
		return len(x), true
	case string:
		return len(x), true
	case map[string]Value:
		return len(x), true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return rv.Len(), true
	}
	return 0, false
}

// attrOf resolves a named member: map[string]Value keys, an Attr(name)
// method, or an exported struct field, in that order.
func attrOf(o Value, name string) (Value, bool) {
	if m, ok := o.(map[string]Value); ok {
		v, ok := m[name]
		return v, ok
	}
	if a, ok := o.(interface {
		Attr(string) (Value, bool)
	}); ok {
		return a.Attr(name)
	}
	rv := reflect.ValueOf(o)
	for rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	if rv.Kind() == reflect.Struct {
		f := rv.FieldByName(name)
		if f.IsValid() && f.CanInterface() {
			return f.Interface(), true
		}
	}
	return nil, false
}

// itemOf indexes a sequence or mapping by k: lists/tuples by integer
// index, maps by key, strings by rune index.
func itemOf(o, k Value) (Value, bool) {
	switch seq := o.(type) {
	case List:
		i, ok := asIndex(k)
		if !ok || i < 0 || i >= len(seq) {
			return nil, false
		}
		return seq[i], true
	case Tuple:
		i, ok := asIndex(k)
		if !ok || i < 0 || i >= len(seq) {
			return nil, false
		}
		return seq[i], true
	case map[string]Value:
		key, ok := k.(string)
		if !ok {
			return nil, false
		}
		v, ok := seq[key]
		return v, ok
	case string:
		i, ok := asIndex(k)
		runes := []rune(seq)
		if !ok || i < 0 || i >= len(runes) {
			return nil, false
		}
		return string(runes[i]), true
	}
	return nil, false
}

func asIndex(k Value) (int, bool) {
	switch i := k.(type) {
	case int:
		return i, true
	case int64:
		return int(i), true
	}
	return 0, false
}
