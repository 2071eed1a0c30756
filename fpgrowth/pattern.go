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
	"encoding/binary"
	"fmt"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/twmb/murmur3"
)

const defaultPatternHashSeed = uint64(9001)

// Pattern is an ordered itemset discovered during a mining pass, paired with
// the number of transactions containing it (its support).
//
// The item order is the prefix order under which the pattern was discovered,
// not a sorted-set order. Alongside the ordered slice the pattern keeps a
// roaring bitmap of its item set so that containment checks do not depend on
// item order and stay cheap for long patterns.
//
// A pattern is mutated only through Extend; every other method treats it as a
// value. Patterns are ranked strictly by support: equal supports compare
// equal, and callers must not rely on any tie-break among them.
type Pattern struct {
	items   []uint32
	itemSet *roaring.Bitmap
	support int64
	hash    uint64
	dirty   bool
}

// NewPattern returns a pattern over a copy of the given item sequence with
// the given support.
func NewPattern(items []uint32, support int64) *Pattern {
	p := NewEmptyPattern()
	p.items = append(p.items, items...)
	p.itemSet.AddMany(items)
	p.support = support
	return p
}

// NewEmptyPattern returns the zero-length pattern. A mining branch starts
// from an empty pattern and grows it one attribute at a time via Extend; the
// empty pattern itself is never a valid candidate for retention.
func NewEmptyPattern() *Pattern {
	return &Pattern{
		itemSet: roaring.New(),
		dirty:   true,
	}
}

// Length returns the number of items in the pattern.
func (p *Pattern) Length() int {
	return len(p.items)
}

// Support returns the pattern's current support count.
func (p *Pattern) Support() int64 {
	return p.support
}

// Items returns a copy of the pattern's item sequence in discovery order.
func (p *Pattern) Items() []uint32 {
	items := make([]uint32, len(p.items))
	copy(items, p.items)
	return items
}

// Extend appends one attribute to the pattern and replaces its support with
// newSupport. The caller guarantees newSupport does not exceed the
// pre-extension support; specializing an itemset can only shrink the set of
// transactions containing it, and this type does not re-check the contract.
func (p *Pattern) Extend(attribute uint32, newSupport int64) {
	p.items = append(p.items, attribute)
	p.itemSet.Add(attribute)
	p.support = newSupport
	p.dirty = true
}

// Clone returns a deep, independently owned copy of the pattern.
func (p *Pattern) Clone() *Pattern {
	items := make([]uint32, len(p.items))
	copy(items, p.items)
	return &Pattern{
		items:   items,
		itemSet: p.itemSet.Clone(),
		support: p.support,
		hash:    p.hash,
		dirty:   p.dirty,
	}
}

// IsSubPatternOf returns true if every item of this pattern appears in
// other's item set, irrespective of item order and of either support.
func (p *Pattern) IsSubPatternOf(other *Pattern) bool {
	if other == nil || p.itemSet.GetCardinality() > other.itemSet.GetCardinality() {
		return false
	}
	return p.itemSet.AndCardinality(other.itemSet) == p.itemSet.GetCardinality()
}

// CompareTo orders patterns by support only: -1 if p ranks below other, 1 if
// above, 0 when the supports are equal.
func (p *Pattern) CompareTo(other *Pattern) int {
	switch {
	case p.support < other.support:
		return -1
	case p.support > other.support:
		return 1
	default:
		return 0
	}
}

// Hash returns a 64-bit hash over the item sequence and support. The value
// is cached and recomputed lazily after an Extend.
func (p *Pattern) Hash() uint64 {
	if p.dirty {
		buf := make([]byte, 4*len(p.items)+8)
		for i, item := range p.items {
			binary.LittleEndian.PutUint32(buf[i<<2:], item)
		}
		binary.LittleEndian.PutUint64(buf[4*len(p.items):], uint64(p.support))
		p.hash = murmur3.SeedSum64(defaultPatternHashSeed, buf)
		p.dirty = false
	}
	return p.hash
}

// Equals returns true if other holds the same item sequence and support.
func (p *Pattern) Equals(other *Pattern) bool {
	if other == nil || p.support != other.support || len(p.items) != len(other.items) {
		return false
	}
	if p.Hash() != other.Hash() {
		return false
	}
	for i := range p.items {
		if p.items[i] != other.items[i] {
			return false
		}
	}
	return true
}

func (p *Pattern) String() string {
	return fmt.Sprintf("%v:%d", p.items, p.support)
}
