// Package trace records per-job execution events as the executor drains
// its ready queue, mirroring the structured step records the teacher's
// internal/model package attaches to each pipeline step (StepResult,
// EvaluationResult) but keyed on operation source location instead of a
// pipeline step ID.
package trace

import "github.com/flowlang/flow/internal/loc"

// Record is one completed job's trace entry. RunID identifies the
// Executor.Execute call that produced it, so trace output from
// concurrent CLI invocations writing to the same log can be told apart.
type Record struct {
	RunID string
	Loc   loc.Loc
	Value any
}

// Sink receives Records as jobs complete. Implementations must be safe
// for the executor to call synchronously from its driver loop.
type Sink interface {
	Record(r Record)
}

// SliceSink is the simplest Sink: it appends every Record to an in-memory
// slice, useful for tests and for the CLI's --trace rendering.
type SliceSink struct {
	Records []Record
}

// NewSliceSink constructs an empty SliceSink.
func NewSliceSink() *SliceSink {
	return &SliceSink{}
}

func (s *SliceSink) Record(r Record) {
	s.Records = append(s.Records, r)
}
