// Package flowctx implements the persistent, lexically-shadowing variable
// environment threaded through every phase of an operation's lifecycle.
package flowctx

import (
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Value is the dynamically-typed value stored in a Ctx binding.
type Value = any

// Binding is one (name, value) pair, surfaced for diagnostics.
type Binding struct {
	Name  string
	Value Value
}

// node is one frame of the persistent binding stack. A nil node is the
// empty context.
type node struct {
	name  string
	value Value
	next  *node
}

// Ctx is an immutable stack of named bindings. The zero value is the empty
// context. Push and Pop return new Ctx values; the receiver is never
// mutated, so a Ctx may be freely shared between sibling jobs.
type Ctx struct {
	top *node
}

// New returns the empty context.
func New() Ctx {
	return Ctx{}
}

// Get returns the value of the topmost binding for name, scanning from the
// most recently pushed binding toward the root.
func (c Ctx) Get(name string) (Value, error) {
	for n := c.top; n != nil; n = n.next {
		if n.name == name {
			return n.value, nil
		}
	}
	return nil, &flowerrors.NameUnbound{Name: name}
}

// Push returns a new context extending c with a binding of name to v. The
// new binding shadows any prior binding of the same name.
func (c Ctx) Push(name string, v Value) Ctx {
	return Ctx{top: &node{name: name, value: v, next: c.top}}
}

// Pop returns a new context with the topmost binding of name removed. It
// fails if no binding of that name exists. Only the topmost shadow is
// removed; any deeper binding of the same name remains visible.
func (c Ctx) Pop(name string) (Ctx, error) {
	// Find the topmost node with the matching name, then splice it out
	// while preserving every other frame above and below it.
	var above []*node
	for n := c.top; n != nil; n = n.next {
		if n.name == name {
			rest := Ctx{top: n.next}
			for i := len(above) - 1; i >= 0; i-- {
				rest = rest.Push(above[i].name, above[i].value)
			}
			return rest, nil
		}
		above = append(above, n)
	}
	return c, &flowerrors.NameUnbound{Name: name}
}

// Bindings returns every binding from topmost to bottommost, for
// diagnostics (trace snapshots).
func (c Ctx) Bindings() []Binding {
	var out []Binding
	for n := c.top; n != nil; n = n.next {
		out = append(out, Binding{Name: n.name, Value: n.value})
	}
	return out
}
