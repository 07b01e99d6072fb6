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

import (
	"fmt"
	"iter"
	"unicode/utf8"
)

// Codec converts between an application-level type T and the uint64 word
// that Set and Map actually store. Every codec here is a bijection onto
// some subset of the word space, so FromWord(ToWord(v)) == v always holds.
type Codec[T any] struct {
	ToWord   func(T) uint64
	FromWord func(uint64) T
}

// Uint8Codec, Uint16Codec, Uint32Codec, and Uint64Codec are the identity
// codecs for the unsigned integer types: the word IS the value.

func Uint8Codec() Codec[uint8] {
	return Codec[uint8]{
		ToWord:   func(v uint8) uint64 { return uint64(v) },
		FromWord: func(w uint64) uint8 { return uint8(w) },
	}
}

func Uint16Codec() Codec[uint16] {
	return Codec[uint16]{
		ToWord:   func(v uint16) uint64 { return uint64(v) },
		FromWord: func(w uint64) uint16 { return uint16(w) },
	}
}

func Uint32Codec() Codec[uint32] {
	return Codec[uint32]{
		ToWord:   func(v uint32) uint64 { return uint64(v) },
		FromWord: func(w uint64) uint32 { return uint32(w) },
	}
}

func Uint64Codec() Codec[uint64] {
	return Codec[uint64]{
		ToWord:   func(v uint64) uint64 { return v },
		FromWord: func(w uint64) uint64 { return w },
	}
}

// Int8Codec, Int16Codec, Int32Codec, and Int64Codec fold the sign into the
// low bit of the word (zigzag encoding), so small-magnitude negative values
// are as compact as small-magnitude positive ones -- the density property
// sign-folding is after. Zigzag is used rather than the simpler
// "(|v|<<1) | sign" formula because the latter
// literal formula loses the top bit at math.MinInt64 (its magnitude alone
// already occupies every value bit, leaving none for the sign); zigzag
// folds the sign in via XOR instead of OR and is therefore total over the
// full range, mapping math.MinInt64 to the all-ones word -- which the
// relocatable sentinel protocol already handles.

func Int8Codec() Codec[int8] {
	return Codec[int8]{
		ToWord:   func(v int8) uint64 { return uint64((uint8(v) << 1) ^ uint8(v>>7)) },
		FromWord: func(w uint64) int8 { b := uint8(w); return int8(b>>1) ^ -int8(b&1) },
	}
}

func Int16Codec() Codec[int16] {
	return Codec[int16]{
		ToWord:   func(v int16) uint64 { return uint64((uint16(v) << 1) ^ uint16(v>>15)) },
		FromWord: func(w uint64) int16 { b := uint16(w); return int16(b>>1) ^ -int16(b&1) },
	}
}

func Int32Codec() Codec[int32] {
	return Codec[int32]{
		ToWord:   func(v int32) uint64 { return uint64((uint32(v) << 1) ^ uint32(v>>31)) },
		FromWord: func(w uint64) int32 { b := uint32(w); return int32(b>>1) ^ -int32(b&1) },
	}
}

func Int64Codec() Codec[int64] {
	return Codec[int64]{
		ToWord:   func(v int64) uint64 { return (uint64(v) << 1) ^ uint64(v>>63) },
		FromWord: func(w uint64) int64 { return int64(w>>1) ^ -int64(w&1) },
	}
}

// RuneCodec stores Unicode scalar values directly as their code point.
// Both directions panic, wrapping ErrInvalidRune, on a surrogate half or a
// value outside the Unicode range, since Codec has no error return of its
// own -- codecs for non-total domains panic instead. FromWord validates
// too, since a word reaching it may have come from Raw() rather than from
// a prior ToWord call.
func RuneCodec() Codec[rune] {
	return Codec[rune]{
		ToWord: func(r rune) uint64 {
			if r < 0 || r > utf8.MaxRune || (r >= 0xD800 && r <= 0xDFFF) {
				panic(fmt.Errorf("%w: %d", ErrInvalidRune, r))
			}
			return uint64(r)
		},
		FromWord: func(w uint64) rune {
			if w > uint64(utf8.MaxRune) || (w >= 0xD800 && w <= 0xDFFF) {
				panic(fmt.Errorf("%w: %d", ErrInvalidRune, w))
			}
			return rune(w)
		},
	}
}

// TypedSet adapts Set to a Go type T via a Codec, so callers needn't
// manually convert their domain values to and from uint64 words.
type TypedSet[T any] struct {
	codec Codec[T]
	raw   *Set
}

// NewTypedSet returns an empty TypedSet using codec.
func NewTypedSet[T any](codec Codec[T]) *TypedSet[T] {
	return &TypedSet[T]{codec: codec, raw: New()}
}

// Raw exposes the underlying word-keyed Set, for callers that need to mix
// typed and untyped access.
func (s *TypedSet[T]) Raw() *Set { return s.raw }

func (s *TypedSet[T]) Len() int { return s.raw.Len() }

func (s *TypedSet[T]) Insert(v T) bool { return s.raw.Insert(s.codec.ToWord(v)) }

func (s *TypedSet[T]) Contains(v T) bool { return s.raw.Contains(s.codec.ToWord(v)) }

func (s *TypedSet[T]) Remove(v T) bool { return s.raw.Remove(s.codec.ToWord(v)) }

func (s *TypedSet[T]) Reserve(n int) { s.raw.Reserve(n) }

func (s *TypedSet[T]) Iter() iter.Seq[T] {
	return func(yield func(T) bool) {
		for w := range s.raw.Iter() {
			if !yield(s.codec.FromWord(w)) {
				return
			}
		}
	}
}

func (s *TypedSet[T]) Drain() iter.Seq[T] {
	return func(yield func(T) bool) {
		for w := range s.raw.Drain() {
			if !yield(s.codec.FromWord(w)) {
				return
			}
		}
	}
}

func (s *TypedSet[T]) Extend(seq iter.Seq[T]) {
	for v := range seq {
		s.Insert(v)
	}
}

// Equal reports whether s and other contain the same elements. It compares
// through the underlying word representation, so it is only meaningful
// when both sets were built with codecs that agree on ToWord.
func (s *TypedSet[T]) Equal(other *TypedSet[T]) bool { return s.raw.Equal(other.raw) }

func (s *TypedSet[T]) Hash() uint64 { return s.raw.Hash() }

// TypedMap adapts Map to Go types K and V via a pair of Codecs.
type TypedMap[K, V any] struct {
	keyCodec Codec[K]
	valCodec Codec[V]
	raw      *Map
}

// NewTypedMap returns an empty TypedMap using keyCodec and valCodec.
func NewTypedMap[K, V any](keyCodec Codec[K], valCodec Codec[V]) *TypedMap[K, V] {
	return &TypedMap[K, V]{keyCodec: keyCodec, valCodec: valCodec, raw: NewMap()}
}

func (m *TypedMap[K, V]) Raw() *Map { return m.raw }

func (m *TypedMap[K, V]) Len() int { return m.raw.Len() }

// Insert sets the value associated with k, returning the previously
// associated value (if any) and whether one existed. A value whose word does
// not fit in 8 bits first moves the underlying Map to its full-width heap
// form, so values of any width round-trip through the codec.
func (m *TypedMap[K, V]) Insert(k K, v V) (V, bool) {
	vw := m.valCodec.ToWord(v)
	if vw > 0xFF {
		m.raw.ReserveWithMax(^uint64(0), 1)
	}
	old, had := m.raw.Insert(m.keyCodec.ToWord(k), vw)
	if !had {
		var zero V
		return zero, false
	}
	return m.valCodec.FromWord(old), true
}

func (m *TypedMap[K, V]) Get(k K) (V, bool) {
	w, ok := m.raw.Get(m.keyCodec.ToWord(k))
	if !ok {
		var zero V
		return zero, false
	}
	return m.valCodec.FromWord(w), true
}

func (m *TypedMap[K, V]) Contains(k K) bool { return m.raw.Contains(m.keyCodec.ToWord(k)) }

func (m *TypedMap[K, V]) Remove(k K) bool { return m.raw.Remove(m.keyCodec.ToWord(k)) }

func (m *TypedMap[K, V]) Reserve(n int) { m.raw.Reserve(n) }

func (m *TypedMap[K, V]) Iter() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range m.raw.Iter() {
			if !yield(m.keyCodec.FromWord(k), m.valCodec.FromWord(v)) {
				return
			}
		}
	}
}

func (m *TypedMap[K, V]) Drain() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for k, v := range m.raw.Drain() {
			if !yield(m.keyCodec.FromWord(k), m.valCodec.FromWord(v)) {
				return
			}
		}
	}
}
