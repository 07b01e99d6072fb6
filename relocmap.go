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

// relocMapTable is relocTable's map counterpart: a Robin-Hood key array over
// the full uint64 range with a relocatable sentinel, plus a parallel value
// array of matching width.
type relocMapTable struct {
	keys     []uint64
	vals     []uint64
	sentinel uint64
	count    uint32
}

func newRelocMapTable(rawCap int) *relocMapTable {
	keys := make([]uint64, rawCap)
	sentinel := ^uint64(0)
	for i := range keys {
		keys[i] = sentinel
	}
	return &relocMapTable{keys: keys, vals: make([]uint64, rawCap), sentinel: sentinel}
}

func (t *relocMapTable) mask() uint64 { return uint64(len(t.keys) - 1) }

func (t *relocMapTable) search(x uint64) probeResult {
	return t.searchFrom(x, mix64(x)&t.mask())
}

func (t *relocMapTable) searchFrom(x uint64, start uint64) probeResult {
	mask := t.mask()
	home := mix64(x) & mask
	dist := (start - home) & mask
	i := start
	for {
		cur := t.keys[i]
		if cur == t.sentinel {
			return probeResult{probeEmpty, i}
		}
		if cur == x {
			return probeResult{probePresent, i}
		}
		hisDist := (i - mix64(cur)&mask) & mask
		if hisDist < dist {
			return probeResult{probeRicher, i}
		}
		i = (i + 1) & mask
		dist++
	}
}

func (t *relocMapTable) getWord(x uint64) (uint64, bool) {
	if x == t.sentinel {
		return 0, false
	}
	res := t.search(x)
	if res.kind != probePresent {
		return 0, false
	}
	return t.vals[res.idx], true
}

func (t *relocMapTable) containsWord(x uint64) bool {
	_, ok := t.getWord(x)
	return ok
}

func (t *relocMapTable) relocateSentinel(key uint64) {
	if key != t.sentinel {
		return
	}
	old := t.sentinel
	next := old - 1
	for t.containsWord(next) || next == old {
		next--
	}
	t.sentinel = next
	for i, k := range t.keys {
		if k == old {
			t.keys[i] = next
		}
	}
}

// insertWord inserts or overwrites the value for key x, returning the
// previously associated value (if any) and whether one existed.
func (t *relocMapTable) insertWord(x, v uint64) (uint64, bool) {
	t.relocateSentinel(x)
	res := t.search(x)
	switch res.kind {
	case probePresent:
		old := t.vals[res.idx]
		t.vals[res.idx] = v
		return old, true
	case probeEmpty:
		t.keys[res.idx] = x
		t.vals[res.idx] = v
		t.count++
		return 0, false
	default:
		t.count++
		i := res.idx
		dispKey, dispVal := t.keys[i], t.vals[i]
		t.keys[i], t.vals[i] = x, v
		for {
			r := t.searchFrom(dispKey, i)
			switch r.kind {
			case probeEmpty:
				t.keys[r.idx], t.vals[r.idx] = dispKey, dispVal
				return 0, false
			case probeRicher:
				i = r.idx
				t.keys[i], dispKey = dispKey, t.keys[i]
				t.vals[i], dispVal = dispVal, t.vals[i]
			case probePresent:
				panic("intset: steal loop found a duplicate of a displaced key")
			}
		}
	}
}

func (t *relocMapTable) removeWord(x uint64) bool {
	if x == t.sentinel {
		return false
	}
	res := t.search(x)
	if res.kind != probePresent {
		return false
	}
	t.count--
	mask := t.mask()
	i := res.idx
	for {
		j := (i + 1) & mask
		nextKey := t.keys[j]
		if nextKey == t.sentinel || (j-mix64(nextKey)&mask)&mask == 0 {
			t.keys[i] = t.sentinel
			return true
		}
		t.keys[i] = nextKey
		t.vals[i] = t.vals[j]
		i = j
	}
}

func (t *relocMapTable) resize(newRawCap int) {
	oldKeys, oldVals := t.keys, t.vals
	oldSentinel := t.sentinel
	t.keys = make([]uint64, newRawCap)
	t.sentinel = ^uint64(0)
	for i := range t.keys {
		t.keys[i] = t.sentinel
	}
	t.vals = make([]uint64, newRawCap)
	t.count = 0
	for i, k := range oldKeys {
		if k != oldSentinel {
			t.insertWord(k, oldVals[i])
		}
	}
}

func (t *relocMapTable) len() int    { return int(t.count) }
func (t *relocMapTable) rawLen() int { return len(t.keys) }

func (t *relocMapTable) eachWord(fn func(uint64, uint64) bool) {
	for i, k := range t.keys {
		if k != t.sentinel {
			if !fn(k, t.vals[i]) {
				return
			}
		}
	}
}
