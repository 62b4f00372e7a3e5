// Copyright (c) 2026 Andrey Kriulin
// Licensed under the MIT License.
// See the LICENSE file in the project root for full license text.

package voronoi

import (
	"container/heap"
	"slices"
)

type queueItem struct {
	ev  Event
	seq uint64
}

// eventHeap orders events by trigger y, largest first, then by insertion.
type eventHeap []queueItem

func (h eventHeap) Len() int { return len(h) }

func (h eventHeap) Less(i, j int) bool {
	return before(h[i], h[j])
}

func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *eventHeap) Push(x any) {
	*h = append(*h, x.(queueItem))
}

func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	it := old[n-1]
	old[n-1] = queueItem{}
	*h = old[:n-1]
	return it
}

func before(a, b queueItem) bool {
	ya, yb := a.ev.Point().Y, b.ev.Point().Y
	if ya != yb {
		return ya > yb
	}
	return a.seq < b.seq
}

type eventQueue struct {
	h   eventHeap
	seq uint64
}

func (q *eventQueue) Len() int {
	return len(q.h)
}

func (q *eventQueue) push(ev Event) {
	heap.Push(&q.h, queueItem{ev: ev, seq: q.seq})
	q.seq++
}

func (q *eventQueue) pop() Event {
	return heap.Pop(&q.h).(queueItem).ev
}

func (q *eventQueue) peek() Event {
	if len(q.h) == 0 {
		return nil
	}
	return q.h[0].ev
}

// removeIf drops every queued event matching pred and returns how many were
// dropped.
func (q *eventQueue) removeIf(pred func(Event) bool) int {
	n := len(q.h)
	q.h = slices.DeleteFunc(q.h, func(it queueItem) bool { return pred(it.ev) })
	if len(q.h) != n {
		heap.Init(&q.h)
	}
	return n - len(q.h)
}

// snapshot returns the queued events in pop order.
func (q *eventQueue) snapshot() []Event {
	items := slices.Clone(q.h)
	slices.SortFunc(items, func(a, b queueItem) int {
		if before(a, b) {
			return -1
		}
		if before(b, a) {
			return 1
		}
		return 0
	})
	out := make([]Event, len(items))
	for i, it := range items {
		out[i] = it.ev
	}
	return out
}
