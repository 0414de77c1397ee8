package errors

import (
	"fmt"

	"github.com/flowlang/flow/internal/loc"
)

// ParseError represents a YAML parsing failure with optional line metadata.
type ParseError struct {
	Path    string
	Line    int
	Message string
	Err     error
}

// NewParseError constructs a ParseError.
func NewParseError(path string, line int, err error) error {
	message := ""
	if err != nil {
		message = err.Error()
	}
	return &ParseError{Path: path, Line: line, Message: message, Err: err}
}

func (e *ParseError) Error() string {
	if e == nil {
		return ""
	}

	if e.Line > 0 {
		return fmt.Sprintf("parse error: %s:%d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error: %s: %s", e.Path, e.Message)
}

// Unwrap exposes the underlying error.
func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// ValidationError captures configuration validation issues.
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

// NewValidationError constructs a ValidationError.
func NewValidationError(field, message string, err error) error {
	return &ValidationError{Field: field, Message: message, Err: err}
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	if e.Field != "" {
		return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation error: %s", e.Message)
}

// Unwrap exposes the underlying error.
func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// NameUnbound is raised by Var lookups and Ctx.Get/Pop against a missing name.
type NameUnbound struct {
	Name string
	At   loc.Loc
}

func (e *NameUnbound) Error() string {
	return fmt.Sprintf("name %q is unbound (at %s)", e.Name, e.At)
}

// MemberMissing is raised by GetAttr when the named member is absent and no
// default was supplied.
type MemberMissing struct {
	Name string
	At   loc.Loc
}

func (e *MemberMissing) Error() string {
	return fmt.Sprintf("member %q is missing (at %s)", e.Name, e.At)
}

// IndexMissing is raised by GetItem when the index cannot be resolved.
type IndexMissing struct {
	Key any
	At  loc.Loc
}

func (e *IndexMissing) Error() string {
	return fmt.Sprintf("index %v is missing (at %s)", e.Key, e.At)
}

// Unmatched is raised when a Match exhausts its cases without a truthy one.
type Unmatched struct {
	At loc.Loc
}

func (e *Unmatched) Error() string {
	return fmt.Sprintf("match exhausted without a matching case (at %s)", e.At)
}

// EvalBodyNotOp is raised when an Eval of the nested-op family resolves to a
// non-Op final value and wrap was not requested.
type EvalBodyNotOp struct {
	At loc.Loc
}

func (e *EvalBodyNotOp) Error() string {
	return fmt.Sprintf("eval body did not resolve to an operation (at %s)", e.At)
}

// NotIterable is raised when Map or Fil's iter operand does not produce a list.
type NotIterable struct {
	At loc.Loc
}

func (e *NotIterable) Error() string {
	return fmt.Sprintf("value is not iterable (at %s)", e.At)
}

// MissingArgs is raised by Call when too few arguments are supplied.
type MissingArgs struct {
	Want, Got int
	At        loc.Loc
}

func (e *MissingArgs) Error() string {
	return fmt.Sprintf("missing arguments: want %d, got %d (at %s)", e.Want, e.Got, e.At)
}

// ExtraArgs is raised by Call when too many arguments are supplied.
type ExtraArgs struct {
	Want, Got int
	At        loc.Loc
}

func (e *ExtraArgs) Error() string {
	return fmt.Sprintf("extra arguments: want %d, got %d (at %s)", e.Want, e.Got, e.At)
}

// DuplicateArg is raised at Fun construction time when two parameters share a name.
type DuplicateArg struct {
	Name string
	At   loc.Loc
}

func (e *DuplicateArg) Error() string {
	return fmt.Sprintf("duplicate parameter %q (at %s)", e.Name, e.At)
}

// UserError is raised by the Err operation.
type UserError struct {
	Message string
	At      loc.Loc
}

func (e *UserError) Error() string {
	return fmt.Sprintf("%s (at %s)", e.Message, e.At)
}

// QueueEmpty is raised by the dependency index's Pop when no item is ready.
type QueueEmpty struct{}

func (e *QueueEmpty) Error() string {
	return "dependency queue is empty"
}

// DeadlockedGraph is raised by the executor driver loop when the ready
// queue empties while registered job phases remain unpopped.
type DeadlockedGraph struct {
	Pending int
}

func (e *DeadlockedGraph) Error() string {
	return fmt.Sprintf("dependency graph deadlocked with %d job(s) still pending", e.Pending)
}
