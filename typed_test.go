package intset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTypedSetRoundTrip(t *testing.T) {
	t.Parallel()

	ts := NewTypedSet[int32](Int32Codec())
	values := []int32{0, -1, 1, 2147483647, -2147483648, 42}
	for _, v := range values {
		ts.Insert(v)
	}
	for _, v := range values {
		require.True(t, ts.Contains(v))
	}
	require.Equal(t, len(values), ts.Len())

	ts.Remove(-1)
	require.False(t, ts.Contains(-1))
}

func TestTypedSetEqual(t *testing.T) {
	t.Parallel()

	a := NewTypedSet[uint8](Uint8Codec())
	b := NewTypedSet[uint8](Uint8Codec())
	for _, v := range []uint8{1, 2, 3} {
		a.Insert(v)
		b.Insert(v)
	}
	require.True(t, a.Equal(b))
	require.Equal(t, a.Hash(), b.Hash())
}

func TestZigzagCodecRoundTripsMinInt64(t *testing.T) {
	t.Parallel()

	codec := Int64Codec()
	const minInt64 = -1 << 63
	w := codec.ToWord(minInt64)
	require.Equal(t, ^uint64(0), w, "zigzag of math.MinInt64 is the all-ones word")
	require.Equal(t, int64(minInt64), codec.FromWord(w))
}

func TestZigzagCodecDensityNearZero(t *testing.T) {
	t.Parallel()

	codec := Int8Codec()
	for v := int8(-10); v < 10; v++ {
		w := codec.ToWord(v)
		require.Less(t, w, uint64(21), "small-magnitude values of either sign must map to small words")
		require.Equal(t, v, codec.FromWord(w))
	}
}

func TestTypedSetDrain(t *testing.T) {
	t.Parallel()

	ts := NewTypedSet[rune](RuneCodec())
	want := map[rune]bool{'a': true, 'b': true, '中': true}
	for r := range want {
		ts.Insert(r)
	}
	got := map[rune]bool{}
	for r := range ts.Drain() {
		got[r] = true
	}
	require.Equal(t, want, got)
	require.Equal(t, 0, ts.Len())
}
