package intset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMapZeroValueUsable(t *testing.T) {
	t.Parallel()

	var m Map
	require.Equal(t, 0, m.Len())
	_, had := m.Insert(5, 9)
	require.False(t, had)
	v, ok := m.Get(5)
	require.True(t, ok)
	require.EqualValues(t, 9, v)
}

func TestMapInsertGetOverwrite(t *testing.T) {
	t.Parallel()

	m := NewMap()
	old, had := m.Insert(1, 10)
	require.False(t, had)
	require.EqualValues(t, 0, old)
	old, had = m.Insert(1, 20)
	require.True(t, had, "inserting over an existing key must report the previous value")
	require.EqualValues(t, 10, old)
	v, ok := m.Get(1)
	require.True(t, ok)
	require.EqualValues(t, 20, v, "overwrite must replace the stored value")
	require.Equal(t, 1, m.Len())
}

func TestMapRemove(t *testing.T) {
	t.Parallel()

	m := NewMap()
	for i := uint64(0); i < 20; i++ {
		m.Insert(i, i*2)
	}
	require.True(t, m.Remove(5))
	_, ok := m.Get(5)
	require.False(t, ok)
	require.Equal(t, 19, m.Len())
	require.False(t, m.Remove(5), "removing an absent key must report false")
}

func TestMapWidthEscalationPreservesValues(t *testing.T) {
	t.Parallel()

	m := NewMap()
	m.Insert(10, 1)
	m.Insert(1000, 2)
	require.Equal(t, mapS16, m.kind)
	m.Insert(1<<40, 3)
	// Three pairs exceed width 64's 2-pair inline capacity, so the
	// escalation lands directly in the heap form, not the inline one.
	require.Equal(t, mapH64R, m.kind)

	v, ok := m.Get(10)
	require.True(t, ok)
	require.EqualValues(t, 1, v)
	v, ok = m.Get(1000)
	require.True(t, ok)
	require.EqualValues(t, 2, v)
	v, ok = m.Get(1 << 40)
	require.True(t, ok)
	require.EqualValues(t, 3, v)
}

func TestMapHeapPromotionAndIteration(t *testing.T) {
	t.Parallel()

	m := MapWithMaxAndCapacity(1<<20, 4)
	for i := uint64(0); i < 500; i++ {
		m.Insert(i, i%251)
	}
	require.Equal(t, 500, m.Len())
	seen := map[uint64]uint64{}
	for k, v := range m.Iter() {
		seen[k] = v
	}
	require.Equal(t, 500, len(seen))
	for i := uint64(0); i < 500; i++ {
		require.Equal(t, i%251, seen[i])
	}
}

func TestMapSentinelKeyForcesRelocatable(t *testing.T) {
	t.Parallel()

	m := NewMap()
	m.Insert(1, 1)
	_, had := m.Insert(^uint64(0), 42)
	require.False(t, had)
	require.Equal(t, mapH64R, m.kind)
	v, ok := m.Get(^uint64(0))
	require.True(t, ok)
	require.EqualValues(t, 42, v)
}

func TestMapDrain(t *testing.T) {
	t.Parallel()

	m := NewMap()
	want := map[uint64]uint64{}
	for i := uint64(0); i < 30; i++ {
		m.Insert(i, i+1)
		want[i] = i + 1
	}
	got := map[uint64]uint64{}
	for k, v := range m.Drain() {
		got[k] = v
	}
	require.Equal(t, want, got)
	require.Equal(t, 0, m.Len())
}

func TestTypedMapRoundTrip(t *testing.T) {
	t.Parallel()

	tm := NewTypedMap[int32, rune](Int32Codec(), RuneCodec())
	_, had := tm.Insert(-5, 'A')
	require.False(t, had)
	old, had := tm.Insert(-5, 'B')
	require.True(t, had)
	require.Equal(t, rune('A'), old)
	tm.Insert(-5, 'A')
	tm.Insert(100, '中')
	v, ok := tm.Get(-5)
	require.True(t, ok)
	require.Equal(t, rune('A'), v)
	v, ok = tm.Get(100)
	require.True(t, ok)
	require.Equal(t, '中', v)
}

func TestRuneCodecPanicsOnSurrogate(t *testing.T) {
	t.Parallel()

	codec := RuneCodec()
	require.Panics(t, func() { codec.ToWord(0xD800) })
}
