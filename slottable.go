// Copyright 2019 Peter Mattis
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or
// implied. See the License for the specific language governing
// permissions and limitations under the License. See the AUTHORS file
// for names of contributors.

package intset

// uword is the set of widths a slot table can be instantiated over. Only
// the four plain (unsigned, non-aliased) widths are ever used as T: the
// type switch in homeOf relies on that.
type uword interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64
}

// homeOf computes the home slot for x in a table of the given mask
// (length-1, length a power of two), using the width-specific mixing
// function for each width: a byte-mixing multiplier for 8-bit values, a
// 32-bit intermediate mix for 16-bit values, and the standard Fibonacci
// multiplicative mixer for 32- and 64-bit values.
func homeOf[T uword](x T, mask uint64) uint64 {
	switch v := any(x).(type) {
	case uint8:
		return mix8(v) & mask
	case uint16:
		return mix16(v) & mask
	case uint32:
		return mix32(v) & mask
	case uint64:
		return mix64(v) & mask
	default:
		panic("intset: unsupported slot width")
	}
}

// maxOf returns the maximum representable value of T, which doubles as the
// fixed sentinel for every width but 64 (where the sentinel is instead
// relocatable; see relocTable).
func maxOf[T uword]() T {
	var zero T
	return zero - 1
}

type probeKind uint8

const (
	probePresent probeKind = iota
	probeEmpty
	probeRicher
)

type probeResult struct {
	kind probeKind
	idx  uint64
}

// robinTable is a fixed-width, open-addressed Robin-Hood hash table with a
// sentinel value standing in for empty slots, parameterized over any of
// the four admissible widths.
type robinTable[T uword] struct {
	slots    []T
	sentinel T
	count    uint32
}

// newRobinTable allocates a table with rawCap slots (must be a power of
// two), all initialized to sentinel.
func newRobinTable[T uword](rawCap int, sentinel T) *robinTable[T] {
	slots := make([]T, rawCap)
	for i := range slots {
		slots[i] = sentinel
	}
	return &robinTable[T]{slots: slots, sentinel: sentinel}
}

func (t *robinTable[T]) mask() uint64 { return uint64(len(t.slots) - 1) }

// search locates x starting from its home slot: walk forward until the sentinel (absent), x itself
// (present), or an occupant richer than us (correct insertion point).
func (t *robinTable[T]) search(x T) probeResult {
	return t.searchFrom(x, homeOf(x, t.mask()))
}

// searchFrom is Search starting at an arbitrary index, used by the steal
// loop to resume probing for a displaced element from where it landed.
func (t *robinTable[T]) searchFrom(x T, start uint64) probeResult {
	mask := t.mask()
	home := homeOf(x, mask)
	dist := (start - home) & mask
	i := start
	for {
		cur := t.slots[i]
		if cur == t.sentinel {
			return probeResult{probeEmpty, i}
		}
		if cur == x {
			return probeResult{probePresent, i}
		}
		hisDist := (i - homeOf(cur, mask)) & mask
		if hisDist < dist {
			return probeResult{probeRicher, i}
		}
		i = (i + 1) & mask
		dist++
	}
}

// contains reports whether x is present, without regard to whether x is
// admissible at this width -- callers must perform that check themselves
// (containsWord below does, for the heap-form dispatch in set.go).
func (t *robinTable[T]) contains(x T) bool {
	return t.search(x).kind == probePresent
}

// insert adds x, returning true iff it was not already present. On a
// Richer hit it performs the steal: the new element takes the rich slot,
// and the displaced occupant is walked forward (via searchFrom) until it
// reaches an empty slot, swapping with every further Richer occupant along
// the way. This terminates because each steal strictly increases the
// probe distance of the slot's new occupant, so total probe distance
// across the table strictly decreases.
func (t *robinTable[T]) insert(x T) bool {
	res := t.search(x)
	switch res.kind {
	case probePresent:
		return false
	case probeEmpty:
		t.slots[res.idx] = x
		t.count++
		return true
	default:
		t.count++
		i := res.idx
		displaced := t.slots[i]
		t.slots[i] = x
		for {
			r := t.searchFrom(displaced, i)
			switch r.kind {
			case probeEmpty:
				t.slots[r.idx] = displaced
				return true
			case probeRicher:
				i = r.idx
				t.slots[i], displaced = displaced, t.slots[i]
			case probePresent:
				panic("intset: steal loop found a duplicate of a displaced element")
			}
		}
	}
}

// remove deletes x via backward-shift delete: the slots following the
// vacated one are pulled backward one at a time, decrementing each one's
// effective probe distance, until an empty slot or one already at its own
// home (distance zero) is reached. No tombstone is ever written.
func (t *robinTable[T]) remove(x T) bool {
	res := t.search(x)
	if res.kind != probePresent {
		return false
	}
	t.count--
	mask := t.mask()
	i := res.idx
	for {
		j := (i + 1) & mask
		next := t.slots[j]
		if next == t.sentinel || (j-homeOf(next, mask))&mask == 0 {
			t.slots[i] = t.sentinel
			return true
		}
		t.slots[i] = next
		i = j
	}
}

// resize grows (or shrinks) the table to newRawCap slots, reinserting every
// live element into the fresh array.
func (t *robinTable[T]) resize(newRawCap int) {
	old := t.slots
	sentinel := t.sentinel
	t.slots = make([]T, newRawCap)
	for i := range t.slots {
		t.slots[i] = sentinel
	}
	t.count = 0
	for _, v := range old {
		if v != sentinel {
			t.insert(v)
		}
	}
}

func (t *robinTable[T]) len() int    { return int(t.count) }
func (t *robinTable[T]) rawLen() int { return len(t.slots) }

// each calls fn for every live element, in unspecified order, skipping
// sentinel slots -- the shared traversal both Iter and Drain build on.
func (t *robinTable[T]) each(fn func(T) bool) {
	for _, v := range t.slots {
		if v != t.sentinel {
			if !fn(v) {
				return
			}
		}
	}
}

// The Word-suffixed methods below adapt robinTable's T-typed operations to
// the uint64-typed heapSet interface that the adaptive Set and Map dispatch
// through, so a single interface value can stand for "heap storage of some
// width T" without boxing small forms (which never implement heapSet) into
// an interface.

func (t *robinTable[T]) containsWord(x uint64) bool {
	if x >= uint64(t.sentinel) {
		return false
	}
	return t.contains(T(x))
}

func (t *robinTable[T]) insertWord(x uint64) bool {
	return t.insert(T(x))
}

func (t *robinTable[T]) removeWord(x uint64) bool {
	if x >= uint64(t.sentinel) {
		return false
	}
	return t.remove(T(x))
}

func (t *robinTable[T]) eachWord(fn func(uint64) bool) {
	t.each(func(v T) bool { return fn(uint64(v)) })
}
