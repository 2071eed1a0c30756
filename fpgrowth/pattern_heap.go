/*
 * Licensed to the Apache Software Foundation (ASF) under one or more
 * contributor license agreements.  See the NOTICE file distributed with
 * this work for additional information regarding copyright ownership.
 * The ASF licenses this file to You under the Apache License, Version 2.0
 * (the "License"); you may not use this file except in compliance with
 * the License.  You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package fpgrowth

import (
	"container/heap"
	"errors"
	"fmt"
	"sort"
)

// patternQueue is a min-at-top heap over retained patterns, ordered by
// support. The minimum sits at index 0, so the eviction threshold is a peek.
type patternQueue []*Pattern

func (q patternQueue) Len() int           { return len(q) }
func (q patternQueue) Less(i, j int) bool { return q[i].support < q[j].support }
func (q patternQueue) Swap(i, j int)      { q[i], q[j] = q[j], q[i] }

func (q *patternQueue) Push(x any) {
	*q = append(*q, x.(*Pattern))
}

func (q *patternQueue) Pop() any {
	old := *q
	n := len(old)
	p := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return p
}

// FrequentPatternMaxHeap keeps the top maxSize patterns by support out of an
// arbitrarily long stream of candidates. Each mining partition owns one heap
// and feeds it every candidate pattern the pass discovers; once full, a
// candidate displaces the current minimum only when its support is strictly
// greater.
//
// With subPatternCheck enabled the heap also refuses to retain two patterns
// at the same support level where one's item set contains the other's: the
// more specific pattern wins and the redundant one is dropped. The check is
// scoped to patterns of exactly equal support. Subsumption between patterns
// of different support is deliberately not detected; widening the check
// would change the per-candidate cost during mining.
//
// A heap instance is single-owner: exactly one goroutine may mutate it, and
// traversals must not overlap mutation. Parallel mining keeps one heap per
// partition and fans results in through AddAll.
type FrequentPatternMaxHeap struct {
	maxSize         int
	subPatternCheck bool
	queue           patternQueue
	patternIndex    map[int64]map[*Pattern]struct{}
}

// NewFrequentPatternMaxHeap returns a heap retaining at most maxSize
// patterns. subPatternCheck enables the per-support subsumption index.
func NewFrequentPatternMaxHeap(maxSize int, subPatternCheck bool) (*FrequentPatternMaxHeap, error) {
	if maxSize < 1 {
		return nil, errors.New("maxSize must be at least 1")
	}
	h := &FrequentPatternMaxHeap{
		maxSize:         maxSize,
		subPatternCheck: subPatternCheck,
		queue:           make(patternQueue, 0, maxSize),
	}
	if subPatternCheck {
		h.patternIndex = make(map[int64]map[*Pattern]struct{})
	}
	return h, nil
}

// Addable reports whether a candidate with the given support could still be
// admitted: always while the heap is filling, otherwise only when the support
// strictly exceeds the current minimum. Callers use it to skip building
// patterns that Insert would reject on the support axis; the subsumption rule
// is checked only inside Insert.
func (h *FrequentPatternMaxHeap) Addable(support int64) bool {
	return len(h.queue) < h.maxSize || support > h.queue[0].support
}

// Insert offers a candidate pattern to the heap. Zero-length patterns are
// ignored. When the heap is full, a candidate whose support does not strictly
// exceed LeastSupport is rejected without any state change; an admitted
// candidate evicts exactly one pattern carrying the pre-insert minimum
// support. A candidate rejected or substituted by the subsumption rule never
// triggers an eviction.
//
// The heap takes ownership of admitted patterns; callers must not mutate a
// pattern after inserting it.
func (h *FrequentPatternMaxHeap) Insert(p *Pattern) {
	if p.Length() == 0 {
		return
	}
	if len(h.queue) == h.maxSize {
		if p.support <= h.queue[0].support {
			return
		}
		if h.addPattern(p) {
			evicted := heap.Pop(&h.queue).(*Pattern)
			if h.subPatternCheck {
				h.removeFromIndex(evicted)
			}
		}
	} else {
		h.addPattern(p)
	}
}

// addPattern runs the subsumption rule and pushes the pattern onto the
// queue. It returns true only when the retained set grew by one; a
// subsumption rejection or an in-place substitution returns false.
func (h *FrequentPatternMaxHeap) addPattern(p *Pattern) bool {
	if !h.subPatternCheck {
		heap.Push(&h.queue, p)
		return true
	}
	bucket, ok := h.patternIndex[p.support]
	if !ok {
		bucket = make(map[*Pattern]struct{})
		h.patternIndex[p.support] = bucket
	}
	for retained := range bucket {
		if p.IsSubPatternOf(retained) {
			// A retained pattern at the same support already covers the
			// candidate.
			return false
		}
		if retained.IsSubPatternOf(p) {
			// The candidate covers a retained pattern at the same support;
			// substitute without changing the retained count.
			h.removeFromQueue(retained)
			delete(bucket, retained)
			heap.Push(&h.queue, p)
			bucket[p] = struct{}{}
			return false
		}
	}
	heap.Push(&h.queue, p)
	bucket[p] = struct{}{}
	return true
}

// removeFromQueue drops one specific pattern from the queue. maxSize is
// small, so a linear scan for its position is fine.
func (h *FrequentPatternMaxHeap) removeFromQueue(p *Pattern) {
	for i, retained := range h.queue {
		if retained == p {
			heap.Remove(&h.queue, i)
			return
		}
	}
}

func (h *FrequentPatternMaxHeap) removeFromIndex(p *Pattern) {
	if bucket, ok := h.patternIndex[p.support]; ok {
		delete(bucket, p)
		if len(bucket) == 0 {
			delete(h.patternIndex, p.support)
		}
	}
}

// AddAll folds another heap's retained patterns into this one, each extended
// by one leading attribute. For every pattern the other heap retains, the
// candidate support is min(attributeSupport, pattern support); if that
// support could still be admitted, a clone of the pattern is extended with
// the attribute and inserted. The other heap is only read, never mutated,
// and its patterns are never aliased into this heap.
//
// This is the fan-in step of a mining traversal: a child partition's top
// patterns become candidates for its parent, one conditional attribute
// deeper. A child running with subPatternCheck only ever exposes its
// deduplicated set, so patterns it already pruned are not promoted.
func (h *FrequentPatternMaxHeap) AddAll(other *FrequentPatternMaxHeap, attribute uint32, attributeSupport int64) {
	for it := other.Iterator(); it.Next(); {
		p := it.Pattern()
		support := min(attributeSupport, p.Support())
		if h.Addable(support) {
			extended := p.Clone()
			extended.Extend(attribute, support)
			h.Insert(extended)
		}
	}
}

// Count returns the number of patterns currently retained.
func (h *FrequentPatternMaxHeap) Count() int {
	return len(h.queue)
}

// MaxSize returns the fixed retention capacity.
func (h *FrequentPatternMaxHeap) MaxSize() int {
	return h.maxSize
}

// IsFull returns true once Count has reached the capacity.
func (h *FrequentPatternMaxHeap) IsFull() bool {
	return len(h.queue) == h.maxSize
}

// LeastSupport returns the lowest support among retained patterns, or 0 when
// the heap is empty. Once the heap is full this is the strict admission
// threshold, and it never decreases across subsequent insertions.
func (h *FrequentPatternMaxHeap) LeastSupport() int64 {
	if len(h.queue) == 0 {
		return 0
	}
	return h.queue[0].support
}

// Patterns returns a snapshot of the retained patterns ranked by descending
// support. The order among equal supports is unspecified. Callers must treat
// the returned patterns as read-only.
func (h *FrequentPatternMaxHeap) Patterns() []*Pattern {
	view := make([]*Pattern, len(h.queue))
	copy(view, h.queue)
	sort.Slice(view, func(i, j int) bool {
		return view[i].support > view[j].support
	})
	return view
}

func (h *FrequentPatternMaxHeap) String() string {
	return fmt.Sprintf("FrequentPatternMaxHeap{count: %d, maxSize: %d, least: %d}",
		len(h.queue), h.maxSize, h.LeastSupport())
}
