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

// PatternIterator is a read-only traversal over the patterns a heap
// currently retains, in internal heap order. Any mutation of the heap
// invalidates outstanding iterators; obtain a fresh one afterwards.
type PatternIterator struct {
	patterns      []*Pattern
	index         int
	isInitialized bool
}

// Iterator returns a traversal over the currently retained patterns. With
// subPatternCheck enabled the retained set is already deduplicated, so the
// traversal never yields a subsumed pattern.
func (h *FrequentPatternMaxHeap) Iterator() *PatternIterator {
	return &PatternIterator{patterns: h.queue}
}

// Next advances the iterator and reports whether a pattern is available.
func (s *PatternIterator) Next() bool {
	if !s.isInitialized {
		s.index = 0
		s.isInitialized = true
	} else {
		s.index++
	}
	return s.index < len(s.patterns)
}

// Pattern returns the pattern at the current position.
//
// Don't call this before calling Next() for the first time
// or after getting false from Next().
func (s *PatternIterator) Pattern() *Pattern {
	return s.patterns[s.index]
}
