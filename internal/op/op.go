// Package op implements the operation algebra: the closed set of AST node
// variants and the four-callback lifecycle contract each of them satisfies.
// Every variant is a value type embedding Base, which supplies identity
// (no-op) behaviour for whichever callbacks the variant does not need to
// override — the same "override only what differs" shape the teacher repo
// uses for its optional plugin interfaces (MetadataProvider,
// PluginInitializer in internal/plugin/interface.go), adapted here to a
// fixed four-callback contract instead of an open interface set.
package op

import (
	"context"
	"fmt"

	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/loc"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Value is the dynamically-typed result of any operation.
type Value = flowctx.Value

// Op is the lifecycle contract every operation variant implements. Every
// callback is pure with respect to the executor: it may return a new
// context but must not mutate shared state. The Result phase is not a
// callback — it is the executor publishing PostExec's value under the
// job's done key so other jobs can depend on this operation by key alone.
//
// Operations are referentially transparent with respect to identity: the
// same Op value may be returned as a dependency from two different parent
// jobs (e.g. a sub-tree re-entered via recursion) and the executor treats
// each occurrence as a distinct job. Identity therefore belongs to the job
// record the executor allocates, never to the Op value itself.
type Op interface {
	// Loc reports the construction site for diagnostics.
	Loc() loc.Loc

	// Deps declares the operations whose Results are needed before Exec.
	Deps(ctx context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error)

	// Exec computes the operation's primary value from its Deps results.
	Exec(ctx context.Context, fctx flowctx.Ctx, depResults []Value) (flowctx.Ctx, Value, error)

	// PostDeps declares a second round of dependencies computed from the
	// Exec result. This is the control-flow hook: branching, looping,
	// pattern matching and function invocation are all realised here.
	PostDeps(ctx context.Context, fctx flowctx.Ctx, execResult Value, depResults []Value) (flowctx.Ctx, []Op, error)

	// PostExec combines everything computed so far into the operation's
	// final value.
	PostExec(ctx context.Context, fctx flowctx.Ctx, execResult Value, depResults []Value, postDepResults []Value) (flowctx.Ctx, Value, error)
}

// Base supplies identity defaults: no dependencies, a pass-through context,
// and a PostExec that returns whatever Exec produced. Variants embed Base
// and override only the callbacks their semantics require.
type Base struct {
	At loc.Loc
}

func (b Base) Loc() loc.Loc { return b.At }

func (Base) Deps(_ context.Context, fctx flowctx.Ctx) (flowctx.Ctx, []Op, error) {
	return fctx, nil, nil
}

func (Base) Exec(_ context.Context, fctx flowctx.Ctx, _ []Value) (flowctx.Ctx, Value, error) {
	return fctx, nil, nil
}

func (Base) PostDeps(_ context.Context, fctx flowctx.Ctx, _ Value, _ []Value) (flowctx.Ctx, []Op, error) {
	return fctx, nil, nil
}

func (Base) PostExec(_ context.Context, fctx flowctx.Ctx, execResult Value, _ []Value, postDepResults []Value) (flowctx.Ctx, Value, error) {
	if len(postDepResults) > 0 {
		return fctx, postDepResults[0], nil
	}
	return fctx, execResult, nil
}

// --- Value model -----------------------------------------------------------

// None is the sentinel empty value: the result of Seq(), a terminated
// Iter's next-accumulator, and so on.
type None struct{}

// IsNone reports whether v is the None sentinel.
func IsNone(v Value) bool {
	_, ok := v.(None)
	return ok
}

// List is the dynamically-sized sequence produced by Par and Map.
type List []Value

// Tuple is the fixed-arity sequence produced by Arr.
type Tuple []Value

// Pair is the (item, next accumulator) result Iter's next operand must
// produce.
type Pair struct {
	Item Value
	Next Value
}

// FunValue is the first-class closure-by-contract value a Fun operation's
// Exec produces.
type FunValue struct {
	Params []string
	Body   Op
	At     loc.Loc
}

// Callable is the host-callable family (ii) of an Eval body: a Go function
// invoked directly with the evaluated argument values.
type Callable func(args []Value) (Value, error)

// NestedFunc is the nested-operation family (iii) of an Eval body: a host
// function invoked with the current context and evaluated argument values,
// returning either an Op to evaluate as a PostDep or a raw value to be
// wrapped (see the Wrap flag on Eval). flow.Defer does not use this type;
// its payload is DeferFunc.
type NestedFunc func(fctx flowctx.Ctx, args []Value) any

// Evaluator is the boundary the Eval operation's string-expression family
// crosses: an embedded host expression language receiving a name->value
// environment and returning a single value. Implementations are supplied
// out of band (see internal/hostexpr) and threaded through the context
// under EvaluatorCtxKey by the executor; op itself depends only on this
// interface, never on a concrete host-language implementation.
type Evaluator interface {
	Eval(ctx context.Context, expr string, env map[string]Value) (Value, error)
}

// Logger is the minimal sink Log operations write diagnostic lines to.
// internal/flowlog.Logger satisfies this interface structurally.
type Logger interface {
	Info(msg string)
}

// Reserved context binding names used to thread the host-expression
// evaluator and diagnostic logger through the lexical environment without
// widening the Op lifecycle signatures. Names are not legal surface-syntax
// identifiers (they contain '$'), so they can never collide with a user
// binding pushed through With/Call/Map/etc.
const (
	EvaluatorCtxKey = "$evaluator"
	LoggerCtxKey    = "$logger"
)

func evaluatorFrom(fctx flowctx.Ctx, at loc.Loc) (Evaluator, error) {
	v, err := fctx.Get(EvaluatorCtxKey)
	if err != nil {
		return nil, flowerrors.NewValidationError("eval", fmt.Sprintf("no host-expression evaluator configured (at %s)", at), err)
	}
	ev, ok := v.(Evaluator)
	if !ok {
		return nil, flowerrors.NewValidationError("eval", fmt.Sprintf("context value under %q is not an Evaluator (at %s)", EvaluatorCtxKey, at), nil)
	}
	return ev, nil
}

func loggerFrom(fctx flowctx.Ctx) Logger {
	v, err := fctx.Get(LoggerCtxKey)
	if err != nil {
		return nil
	}
	l, _ := v.(Logger)
	return l
}

// truthy implements the truthiness rules shared by Match and Fil. Iter's
// loop does not use it: it stops when the Pair's Next is None (IsNone).
func truthy(v Value) bool {
	switch x := v.(type) {
	case nil:
		return false
	case None:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case int:
		return x != 0
	case int64:
		return x != 0
	case float64:
		return x != 0
	case List:
		return len(x) != 0
	case Tuple:
		return len(x) != 0
	default:
		return true
	}
}

// Relocate overwrites o's recorded construction site with at and returns
// o. Every NewXxx constructor captures loc.Capture(1) itself, which only
// ever sees its own immediate caller — correct when a caller in this
// package (or a test) calls NewXxx directly, but wrong for the flow
// package's public one-line wrappers, which are themselves that
// immediate caller. flow's wrappers capture their own caller's location
// and pass it here to relocate the already-constructed Op, so consumers
// outside this module see their own call site in diagnostics rather than
// a line inside flow.go. Unhandled/unknown or nil o is returned as-is.
func Relocate(o Op, at loc.Loc) Op {
	switch v := o.(type) {
	case *Con:
		v.At = at
	case *Var:
		v.At = at
	case *GetAttr:
		v.At = at
	case *GetItem:
		v.At = at
	case *Eval:
		v.At = at
	case *Log:
		v.At = at
	case *Err:
		v.At = at
	case *seq:
		v.At = at
	case *par:
		v.At = at
	case *arr:
		v.At = at
	case *With:
		v.At = at
	case *Map:
		v.At = at
	case *Fil:
		v.At = at
	case *Iter:
		v.At = at
	case *Match:
		v.At = at
	case *Fun:
		v.At = at
	case *Call:
		v.At = at
	case *deferred:
		v.At = at
	}
	return o
}

// asList requires v to be a List, surfacing NotIterable otherwise.
func asList(v Value, at loc.Loc) (List, error) {
	l, ok := v.(List)
	if !ok {
		return nil, &flowerrors.NotIterable{At: at}
	}
	return l, nil
}
