// Package executor drives an operation tree to completion. Operations
// never call each other directly: every Deps/PostDeps round hands the
// executor a slice of child operations, which it registers as new jobs
// on an internal/depgraph.Index keyed by (job, phase) and drains via
// that index's ready-queue. The host call stack therefore stays flat
// regardless of how deep or wide the operation tree is — the same trade
// the teacher's level-by-level DAG walk makes (internal/engine/executor.go,
// internal/engine/dag_builder.go), which computes plan levels up front;
// here the "levels" are discovered lazily, job by job, because an
// operation's children are only known once its own Deps or PostDeps
// callback has run. Each job's four lifecycle callbacks are themselves
// four distinct graph keys (one per phase) rather than one mutable
// record, so a continuation phase can be registered as depending on its
// children's completion the same way any two unrelated jobs would be:
// depgraph.Put lets a dependency be declared before the key it names has
// even been put, exactly the shape this lazy discovery needs. A child is
// only resolved, in the dependency-index sense, once its own full
// lifecycle has produced a final value — not merely once it exists —
// which is why the stageDone phase exists as its own key: Popping it is
// what cascades readiness to whatever continuation depended on it.
package executor

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/flowlang/flow/internal/depgraph"
	"github.com/flowlang/flow/internal/flowctx"
	"github.com/flowlang/flow/internal/op"
	"github.com/flowlang/flow/internal/trace"
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

type stage int

const (
	stageDeps stage = iota
	stageExec
	stagePostDeps
	stagePostExec
	stageDone
)

// jobKey identifies one phase of one job in the dependency index.
type jobKey struct {
	id    int
	phase stage
}

// jobEvent is the payload depgraph.Index stores and returns for every
// key. depgraph.Index.Pop reports only items, not the keys that produced
// them, so the key is carried inside its own item to tell the driver
// loop which job and phase it just dequeued. value is populated only for
// stageDone events, where it carries the job's final result on to
// whichever continuation declared that stageDone key as a dependency.
type jobEvent struct {
	key   jobKey
	value op.Value
}

// jobRecord holds the mutable state threaded across one job's phases:
// the operation itself, its context as of the most recently completed
// phase, and the results each phase handed to the next.
type jobRecord struct {
	id   int
	op   op.Op
	fctx flowctx.Ctx

	depResults     []op.Value
	execResult     op.Value
	postDepResults []op.Value
}

// ExecFailure wraps any error an operation raises during its lifecycle,
// attaching the failing job's source location.
type ExecFailure struct {
	At  fmt.Stringer
	Err error
}

func (e *ExecFailure) Error() string {
	return fmt.Sprintf("execution failed at %s: %v", e.At, e.Err)
}

func (e *ExecFailure) Unwrap() error { return e.Err }

// Option configures an Executor.
type Option func(*Executor)

// WithEvaluator threads a host-expression evaluator through every job's
// context under op.EvaluatorCtxKey.
func WithEvaluator(ev op.Evaluator) Option {
	return func(e *Executor) { e.evaluator = ev }
}

// WithLogger threads a diagnostic logger through every job's context
// under op.LoggerCtxKey.
func WithLogger(l op.Logger) Option {
	return func(e *Executor) { e.logger = l }
}

// WithSink records a trace.Record for every completed job.
func WithSink(sink trace.Sink) Option {
	return func(e *Executor) { e.sink = sink }
}

// Executor evaluates operation trees to a final Value.
type Executor struct {
	evaluator op.Evaluator
	logger    op.Logger
	sink      trace.Sink
}

// New constructs an Executor.
func New(opts ...Option) *Executor {
	e := &Executor{}
	for _, o := range opts {
		o(e)
	}
	return e
}

func (e *Executor) baseCtx() flowctx.Ctx {
	fctx := flowctx.New()
	if e.evaluator != nil {
		fctx = fctx.Push(op.EvaluatorCtxKey, e.evaluator)
	}
	if e.logger != nil {
		fctx = fctx.Push(op.LoggerCtxKey, e.logger)
	}
	return fctx
}

// putReady registers key as immediately runnable (no dependencies): the
// phase-ready events (stageDeps/stageExec/stagePostDeps/stagePostExec)
// never depend on anything themselves — a job's wait is always expressed
// as its *continuation* depending on its children's stageDone keys.
func putReady(graph *depgraph.Index[jobKey, jobEvent], key jobKey) {
	graph.Put(key, jobEvent{key: key})
}

// Execute evaluates root to completion on a single cooperative driver
// loop and returns its final value.
func (e *Executor) Execute(ctx context.Context, root op.Op) (op.Value, error) {
	runID := uuid.NewString()
	graph := depgraph.New[jobKey, jobEvent]()
	jobs := map[int]*jobRecord{}
	nextID := 0

	alloc := func(o op.Op, fctx flowctx.Ctx) int {
		id := nextID
		nextID++
		jobs[id] = &jobRecord{id: id, op: o, fctx: fctx}
		return id
	}

	// spawnChildren registers each child as a fresh job ready to run its
	// own Deps phase immediately, and returns the stageDone keys the
	// calling phase's continuation should declare as its dependencies.
	spawnChildren := func(children []op.Op, fctx flowctx.Ctx) []jobKey {
		keys := make([]jobKey, len(children))
		for i, c := range children {
			cid := alloc(c, fctx)
			putReady(graph, jobKey{id: cid, phase: stageDeps})
			keys[i] = jobKey{id: cid, phase: stageDone}
		}
		return keys
	}

	rootID := alloc(root, e.baseCtx())
	putReady(graph, jobKey{id: rootID, phase: stageDeps})

	var finalValue op.Value
	var finalErr error

	for finalErr == nil {
		item, depItems, perr := graph.Pop()
		if perr != nil {
			break
		}
		if ctx.Err() != nil {
			finalErr = ctx.Err()
			break
		}
		k := item.key
		j := jobs[k.id]

		switch k.phase {
		case stageDeps:
			fctx2, children, err := j.op.Deps(ctx, j.fctx)
			if err != nil {
				finalErr = &ExecFailure{At: j.op.Loc(), Err: err}
				break
			}
			j.fctx = fctx2
			j.depResults = nil
			if len(children) == 0 {
				putReady(graph, jobKey{id: j.id, phase: stageExec})
			} else {
				deps := spawnChildren(children, fctx2)
				graph.Put(jobKey{id: j.id, phase: stageExec}, jobEvent{key: jobKey{id: j.id, phase: stageExec}}, deps...)
			}

		case stageExec:
			j.depResults = values(depItems)
			fctx2, v, err := j.op.Exec(ctx, j.fctx, j.depResults)
			if err != nil {
				finalErr = &ExecFailure{At: j.op.Loc(), Err: err}
				break
			}
			j.fctx = fctx2
			j.execResult = v
			putReady(graph, jobKey{id: j.id, phase: stagePostDeps})

		case stagePostDeps:
			fctx2, children, err := j.op.PostDeps(ctx, j.fctx, j.execResult, j.depResults)
			if err != nil {
				finalErr = &ExecFailure{At: j.op.Loc(), Err: err}
				break
			}
			j.fctx = fctx2
			j.postDepResults = nil
			if len(children) == 0 {
				putReady(graph, jobKey{id: j.id, phase: stagePostExec})
			} else {
				deps := spawnChildren(children, fctx2)
				graph.Put(jobKey{id: j.id, phase: stagePostExec}, jobEvent{key: jobKey{id: j.id, phase: stagePostExec}}, deps...)
			}

		case stagePostExec:
			j.postDepResults = values(depItems)
			fctx2, v, err := j.op.PostExec(ctx, j.fctx, j.execResult, j.depResults, j.postDepResults)
			if err != nil {
				finalErr = &ExecFailure{At: j.op.Loc(), Err: err}
				break
			}
			j.fctx = fctx2
			if e.sink != nil {
				e.sink.Record(trace.Record{RunID: runID, Loc: j.op.Loc(), Value: v})
			}
			if j.id == rootID {
				finalValue = v
			}
			doneKey := jobKey{id: j.id, phase: stageDone}
			graph.Put(doneKey, jobEvent{key: doneKey, value: v})

		case stageDone:
			// Nothing to compute: popping this key is what cascades
			// readiness to whatever continuation declared it as a
			// dependency (see depgraph.Index.Pop).
		}
	}

	if finalErr != nil {
		return nil, finalErr
	}
	if pending := graph.Pending(); pending > 0 {
		return nil, &flowerrors.DeadlockedGraph{Pending: pending}
	}
	return finalValue, nil
}

// values extracts each dependency event's carried result, in declaration
// order, as a job's next-phase depResults/postDepResults.
func values(events []jobEvent) []op.Value {
	if len(events) == 0 {
		return nil
	}
	vs := make([]op.Value, len(events))
	for i, ev := range events {
		vs[i] = ev.value
	}
	return vs
}
