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

import "iter"

// mapKind mirrors setKind: the key's width adapts exactly as a Set's would,
// following the same promotion rules. Values are a different story -- in
// every inline form the value is stored at a fixed 8-bit width, favoring
// density over value range, while every heap form stores values at the
// same width as its keys.
type mapKind uint8

const (
	mapS8 mapKind = iota
	mapH8
	mapS16
	mapH16
	mapS32
	mapH32
	mapS64
	mapH64R
)

// heapMap is satisfied by robinMapTable[T] (widths 8/16/32) and
// relocMapTable (width 64), the map analogue of heapSet.
type heapMap interface {
	len() int
	rawLen() int
	getWord(x uint64) (uint64, bool)
	containsWord(x uint64) bool
	insertWord(x, v uint64) (uint64, bool)
	removeWord(x uint64) bool
	eachWord(fn func(uint64, uint64) bool)
	resize(newRawCap int)
}

// Map is an associative map keyed by 64-bit-representable integers, whose
// values are stored at 8 bits in the inline forms and at the key width in
// the heap forms (see mapKind, and TypedMap for a codec-based typed
// wrapper). The zero value is an empty map ready to use.
type Map struct {
	kind   mapKind
	length uint32
	k8     [capS8]uint8
	k16    [capS16]uint16
	k32    [capS32]uint32
	k64    [capS64]uint64
	vals   [capS8]uint8 // inline-form values, always byte width
	heap   heapMap
}

// NewMap returns an empty Map.
func NewMap() *Map { return &Map{} }

// MapWithCapacity returns an empty Map that can hold at least capacity
// key/value pairs of unknown key magnitude without reallocating.
func MapWithCapacity(capacity int) *Map {
	m := &Map{}
	m.Reserve(capacity)
	return m
}

// MapWithMaxAndCapacity returns an empty Map sized to hold at least capacity
// pairs, none of whose keys exceed max, without reallocating.
func MapWithMaxAndCapacity(max uint64, capacity int) *Map {
	m := &Map{}
	m.ReserveWithMax(max, capacity)
	return m
}

// Len returns the number of key/value pairs in the map.
func (m *Map) Len() int {
	if m.heap != nil {
		return m.heap.len()
	}
	return int(m.length)
}

func (m *Map) width() int {
	switch m.kind {
	case mapS8, mapH8:
		return 8
	case mapS16, mapH16:
		return 16
	case mapS32, mapH32:
		return 32
	default:
		return 64
	}
}

func mapSmallKindFor(width int) mapKind {
	switch width {
	case 8:
		return mapS8
	case 16:
		return mapS16
	case 32:
		return mapS32
	default:
		return mapS64
	}
}

// Reserve ensures the map can hold at least n more pairs at its current key
// width without reallocating.
func (m *Map) Reserve(n int) {
	count := m.Len() + n
	if m.heap == nil {
		if count > smallCapFor(m.width()) {
			m.rebuild(m.width(), count)
		}
		return
	}
	if count*11 > m.heap.rawLen()*10 {
		m.heap.resize(rawCapacity(count))
	}
}

// ReserveWithMax ensures the map can hold at least n more pairs, none of
// whose keys exceed max, without reallocating. The promotion rules mirror
// Set.ReserveWithMax exactly, since a Map's key storage adapts identically
// to a Set's element storage.
func (m *Map) ReserveWithMax(max uint64, n int) {
	count := m.Len() + n

	if max == ^uint64(0) {
		if m.kind != mapH64R {
			m.rebuildToRelocatable(count)
		} else if count*11 > m.heap.rawLen()*10 {
			m.heap.resize(rawCapacity(count))
		}
		return
	}

	neededWidth := widthForMax(max)
	curWidth := m.width()
	if neededWidth > curWidth {
		m.rebuild(neededWidth, count)
		return
	}
	if m.heap == nil {
		if count > smallCapFor(curWidth) {
			m.rebuild(curWidth, count)
		}
		return
	}
	if count*11 > m.heap.rawLen()*10 {
		m.heap.resize(rawCapacity(count))
	}
}

type mapPair struct{ key, val uint64 }

func (m *Map) collect() []mapPair {
	out := make([]mapPair, 0, m.Len())
	switch m.kind {
	case mapS8:
		for i := 0; i < int(m.length); i++ {
			out = append(out, mapPair{uint64(m.k8[i]), uint64(m.vals[i])})
		}
	case mapS16:
		for i := 0; i < int(m.length); i++ {
			out = append(out, mapPair{uint64(m.k16[i]), uint64(m.vals[i])})
		}
	case mapS32:
		for i := 0; i < int(m.length); i++ {
			out = append(out, mapPair{uint64(m.k32[i]), uint64(m.vals[i])})
		}
	case mapS64:
		for i := 0; i < int(m.length); i++ {
			out = append(out, mapPair{m.k64[i], uint64(m.vals[i])})
		}
	default:
		m.heap.eachWord(func(k, v uint64) bool {
			out = append(out, mapPair{k, v})
			return true
		})
	}
	return out
}

func (m *Map) resetTo(width int, count int) {
	m.heap = nil
	m.length = 0
	if count <= smallCapFor(width) {
		m.kind = mapSmallKindFor(width)
		return
	}
	raw := rawCapacity(count)
	switch width {
	case 8:
		m.kind = mapH8
		m.heap = newRobinMapTable[uint8](raw, maxOf[uint8]())
	case 16:
		m.kind = mapH16
		m.heap = newRobinMapTable[uint16](raw, maxOf[uint16]())
	case 32:
		m.kind = mapH32
		m.heap = newRobinMapTable[uint32](raw, maxOf[uint32]())
	default:
		m.kind = mapH64R
		m.heap = newRelocMapTable(raw)
	}
}

func (m *Map) rebuild(width int, count int) {
	pairs := m.collect()
	m.resetTo(width, count)
	for _, p := range pairs {
		m.insertUnchecked(p.key, p.val)
	}
}

func (m *Map) rebuildToRelocatable(count int) {
	pairs := m.collect()
	m.heap = newRelocMapTable(rawCapacity(count))
	m.kind = mapH64R
	m.length = 0
	for _, p := range pairs {
		m.insertUnchecked(p.key, p.val)
	}
}

// insertUnchecked inserts or overwrites the pair (k, v) assuming capacity
// has already been reserved, returning the previously associated value (if
// any) and whether one existed.
func (m *Map) insertUnchecked(k, v uint64) (uint64, bool) {
	switch m.kind {
	case mapS8:
		key, val := uint8(k), uint8(v)
		for i := 0; i < int(m.length); i++ {
			if m.k8[i] == key {
				old := m.vals[i]
				m.vals[i] = val
				return uint64(old), true
			}
		}
		m.k8[m.length] = key
		m.vals[m.length] = val
		m.length++
		return 0, false
	case mapS16:
		key, val := uint16(k), uint8(v)
		for i := 0; i < int(m.length); i++ {
			if m.k16[i] == key {
				old := m.vals[i]
				m.vals[i] = val
				return uint64(old), true
			}
		}
		m.k16[m.length] = key
		m.vals[m.length] = val
		m.length++
		return 0, false
	case mapS32:
		key, val := uint32(k), uint8(v)
		for i := 0; i < int(m.length); i++ {
			if m.k32[i] == key {
				old := m.vals[i]
				m.vals[i] = val
				return uint64(old), true
			}
		}
		m.k32[m.length] = key
		m.vals[m.length] = val
		m.length++
		return 0, false
	case mapS64:
		val := uint8(v)
		for i := 0; i < int(m.length); i++ {
			if m.k64[i] == k {
				old := m.vals[i]
				m.vals[i] = val
				return uint64(old), true
			}
		}
		m.k64[m.length] = k
		m.vals[m.length] = val
		m.length++
		return 0, false
	default:
		return m.heap.insertWord(k, v)
	}
}

// Insert sets the value associated with k, returning the value previously
// associated with k (if any) and whether one existed. v is truncated to 8
// bits in every inline form; callers needing the full key-width value
// range should force an early promotion via ReserveWithMax, or use TypedMap.
func (m *Map) Insert(k, v uint64) (uint64, bool) {
	m.ReserveWithMax(k, 1)
	return m.insertUnchecked(k, v)
}

// Get returns the value associated with k and whether k is present.
func (m *Map) Get(k uint64) (uint64, bool) {
	switch m.kind {
	case mapS8:
		if k >= uint64(maxOf[uint8]()) {
			return 0, false
		}
		key := uint8(k)
		for i := 0; i < int(m.length); i++ {
			if m.k8[i] == key {
				return uint64(m.vals[i]), true
			}
		}
		return 0, false
	case mapS16:
		if k >= uint64(maxOf[uint16]()) {
			return 0, false
		}
		key := uint16(k)
		for i := 0; i < int(m.length); i++ {
			if m.k16[i] == key {
				return uint64(m.vals[i]), true
			}
		}
		return 0, false
	case mapS32:
		if k >= uint64(maxOf[uint32]()) {
			return 0, false
		}
		key := uint32(k)
		for i := 0; i < int(m.length); i++ {
			if m.k32[i] == key {
				return uint64(m.vals[i]), true
			}
		}
		return 0, false
	case mapS64:
		if k == ^uint64(0) {
			return 0, false
		}
		for i := 0; i < int(m.length); i++ {
			if m.k64[i] == k {
				return uint64(m.vals[i]), true
			}
		}
		return 0, false
	default:
		return m.heap.getWord(k)
	}
}

// Contains reports whether k is present.
func (m *Map) Contains(k uint64) bool {
	_, ok := m.Get(k)
	return ok
}

// Remove deletes k, reporting whether it was present.
func (m *Map) Remove(k uint64) bool {
	switch m.kind {
	case mapS8:
		if k >= uint64(maxOf[uint8]()) {
			return false
		}
		return m.removeSmall8(uint8(k))
	case mapS16:
		if k >= uint64(maxOf[uint16]()) {
			return false
		}
		return m.removeSmall16(uint16(k))
	case mapS32:
		if k >= uint64(maxOf[uint32]()) {
			return false
		}
		return m.removeSmall32(uint32(k))
	case mapS64:
		return m.removeSmall64(k)
	default:
		return m.heap.removeWord(k)
	}
}

func (m *Map) removeSmall8(key uint8) bool {
	for i := 0; i < int(m.length); i++ {
		if m.k8[i] == key {
			last := int(m.length) - 1
			m.k8[i] = m.k8[last]
			m.vals[i] = m.vals[last]
			m.length--
			return true
		}
	}
	return false
}

func (m *Map) removeSmall16(key uint16) bool {
	for i := 0; i < int(m.length); i++ {
		if m.k16[i] == key {
			last := int(m.length) - 1
			m.k16[i] = m.k16[last]
			m.vals[i] = m.vals[last]
			m.length--
			return true
		}
	}
	return false
}

func (m *Map) removeSmall32(key uint32) bool {
	for i := 0; i < int(m.length); i++ {
		if m.k32[i] == key {
			last := int(m.length) - 1
			m.k32[i] = m.k32[last]
			m.vals[i] = m.vals[last]
			m.length--
			return true
		}
	}
	return false
}

func (m *Map) removeSmall64(key uint64) bool {
	for i := 0; i < int(m.length); i++ {
		if m.k64[i] == key {
			last := int(m.length) - 1
			m.k64[i] = m.k64[last]
			m.vals[i] = m.vals[last]
			m.length--
			return true
		}
	}
	return false
}

// Iter returns an iterator over the map's key/value pairs, in unspecified
// order. The container must not be mutated while an Iter-produced sequence
// is being ranged over.
func (m *Map) Iter() iter.Seq2[uint64, uint64] {
	return func(yield func(uint64, uint64) bool) {
		switch m.kind {
		case mapS8:
			for i := 0; i < int(m.length); i++ {
				if !yield(uint64(m.k8[i]), uint64(m.vals[i])) {
					return
				}
			}
		case mapS16:
			for i := 0; i < int(m.length); i++ {
				if !yield(uint64(m.k16[i]), uint64(m.vals[i])) {
					return
				}
			}
		case mapS32:
			for i := 0; i < int(m.length); i++ {
				if !yield(uint64(m.k32[i]), uint64(m.vals[i])) {
					return
				}
			}
		case mapS64:
			for i := 0; i < int(m.length); i++ {
				if !yield(m.k64[i], uint64(m.vals[i])) {
					return
				}
			}
		default:
			m.heap.eachWord(yield)
		}
	}
}

// Drain returns an iterator over the map's key/value pairs and empties the
// map; see Set.Drain for the snapshot-then-clear rationale.
func (m *Map) Drain() iter.Seq2[uint64, uint64] {
	pairs := m.collect()
	*m = Map{}
	return func(yield func(uint64, uint64) bool) {
		for _, p := range pairs {
			if !yield(p.key, p.val) {
				return
			}
		}
	}
}

// Keys returns an iterator over the map's keys alone.
func (m *Map) Keys() iter.Seq[uint64] {
	return func(yield func(uint64) bool) {
		for k := range m.Iter() {
			if !yield(k) {
				return
			}
		}
	}
}
