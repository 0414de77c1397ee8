// Package depgraph implements the keyed bipartite dependency index that
// drives flow's executor: a forward/reverse edge map plus a ready-queue,
// generalized from the teacher's step-id keyed DAG
// (internal/engine.Graph/BuildDAG) to an arbitrary comparable key and to
// incremental, rather than batch, readiness.
package depgraph

import (
	flowerrors "github.com/flowlang/flow/pkg/errors"
)

// Index is a keyed dependency structure. K identifies an item; T is the
// item payload. It is not safe for concurrent use without external
// synchronization — per the executor's single-writer invariant, only one
// goroutine mutates an Index at a time.
type Index[K comparable, T any] struct {
	values      map[K]T
	deps        map[K][]K            // key -> prerequisite keys, in declaration order
	forward     map[K]map[K]struct{} // key -> set of keys it still waits on
	reverse     map[K]map[K]struct{} // key -> set of keys waiting on it
	ready       []K
	queued      map[K]struct{}
	poppedCount int
}

// New creates an empty Index.
func New[K comparable, T any]() *Index[K, T] {
	return &Index[K, T]{
		values:  make(map[K]T),
		deps:    make(map[K][]K),
		forward: make(map[K]map[K]struct{}),
		reverse: make(map[K]map[K]struct{}),
		queued:  make(map[K]struct{}),
	}
}

// Put registers item under key with zero or more prerequisite keys. A
// prerequisite need not have been Put yet; the edge is recorded and
// resolves once that key is later Put and popped. If every declared
// prerequisite has already resolved (or none were declared), item becomes
// ready immediately.
func (idx *Index[K, T]) Put(key K, item T, deps ...K) {
	idx.values[key] = item
	idx.deps[key] = append([]K(nil), deps...)

	pending := make(map[K]struct{}, len(deps))
	for _, dep := range deps {
		if _, resolved := idx.resolved(dep); resolved {
			continue
		}
		pending[dep] = struct{}{}
		if idx.reverse[dep] == nil {
			idx.reverse[dep] = make(map[K]struct{})
		}
		idx.reverse[dep][key] = struct{}{}
	}

	if len(pending) == 0 {
		idx.enqueue(key)
		return
	}
	idx.forward[key] = pending
}

// resolved reports whether key has already been put and has no outstanding
// forward edges recorded against it, i.e. it has already become ready (and
// may or may not have been popped). Keys never put at all are not resolved.
func (idx *Index[K, T]) resolved(key K) (T, bool) {
	v, known := idx.values[key]
	if !known {
		return v, false
	}
	if deps, hasForward := idx.forward[key]; hasForward && len(deps) > 0 {
		return v, false
	}
	return v, true
}

func (idx *Index[K, T]) enqueue(key K) {
	if _, already := idx.queued[key]; already {
		return
	}
	idx.queued[key] = struct{}{}
	idx.ready = append(idx.ready, key)
}

// Pop dequeues the next ready item along with its (now-resolved)
// prerequisite items, in the order they were declared to Put. All edges
// touching key are then removed; any item whose last outstanding
// prerequisite was key becomes ready and is enqueued, in the order in
// which they became ready.
func (idx *Index[K, T]) Pop() (T, []T, error) {
	var zero T
	if len(idx.ready) == 0 {
		return zero, nil, &flowerrors.QueueEmpty{}
	}

	key := idx.ready[0]
	idx.ready = idx.ready[1:]
	delete(idx.queued, key)
	idx.poppedCount++

	item := idx.values[key]
	depKeys := idx.deps[key]
	depItems := make([]T, len(depKeys))
	for i, dk := range depKeys {
		depItems[i] = idx.values[dk]
	}
	delete(idx.forward, key)

	var newlyReady []K
	for dependent := range idx.reverse[key] {
		waiting := idx.forward[dependent]
		delete(waiting, key)
		if len(waiting) == 0 {
			delete(idx.forward, dependent)
			newlyReady = append(newlyReady, dependent)
		}
	}
	delete(idx.reverse, key)

	for _, dependent := range newlyReady {
		idx.enqueue(dependent)
	}

	return item, depItems, nil
}

// Len reports how many items are currently ready to pop.
func (idx *Index[K, T]) Len() int {
	return len(idx.ready)
}

// Pending reports how many registered items have not yet been popped.
func (idx *Index[K, T]) Pending() int {
	return len(idx.values) - idx.poppedCount
}
