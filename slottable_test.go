package intset

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRobinTableInsertContainsRemove(t *testing.T) {
	t.Parallel()

	tbl := newRobinTable[uint16](rawCapacity(32), maxOf[uint16]())
	want := map[uint16]bool{}
	for i := uint16(0); i < 50; i++ {
		v := i * 7 % 1000
		if tbl.insert(v) {
			want[v] = true
		}
	}
	for v := range want {
		require.True(t, tbl.contains(v), "expected %d to be present", v)
	}
	require.Equal(t, len(want), tbl.len())

	// remove half of them
	n := 0
	for v := range want {
		if n%2 == 0 {
			require.True(t, tbl.remove(v))
			delete(want, v)
		}
		n++
	}
	for v := range want {
		require.True(t, tbl.contains(v))
	}
	require.Equal(t, len(want), tbl.len())
}

func TestRobinTableResizePreservesContents(t *testing.T) {
	t.Parallel()

	tbl := newRobinTable[uint32](rawCapacity(8), maxOf[uint32]())
	for i := uint32(0); i < 8; i++ {
		require.True(t, tbl.insert(i*101))
	}
	tbl.resize(rawCapacity(64))
	for i := uint32(0); i < 8; i++ {
		require.True(t, tbl.contains(i*101))
	}
	require.Equal(t, 8, tbl.len())
}

func TestRobinTableRejectsSentinel(t *testing.T) {
	t.Parallel()

	tbl := newRobinTable[uint8](rawCapacity(4), maxOf[uint8]())
	require.False(t, tbl.containsWord(uint64(maxOf[uint8]())))
	require.False(t, tbl.removeWord(uint64(maxOf[uint8]())))
}

func TestRelocTableSentinelRelocation(t *testing.T) {
	t.Parallel()

	tbl := newRelocTable(rawCapacity(16))
	firstSentinel := tbl.sentinel
	require.True(t, tbl.insertWord(^uint64(0)))
	require.NotEqual(t, firstSentinel, tbl.sentinel, "sentinel must relocate before storing the all-ones word")
	require.True(t, tbl.containsWord(^uint64(0)))
	require.False(t, tbl.containsWord(tbl.sentinel))
}

func TestRelocTableManyInsertsAndRemoves(t *testing.T) {
	t.Parallel()

	tbl := newRelocTable(rawCapacity(4))
	values := []uint64{0, 1, 2, ^uint64(0), ^uint64(0) - 1, 1 << 40, 1 << 63}
	for _, v := range values {
		tbl.insertWord(v)
	}
	for _, v := range values {
		require.True(t, tbl.containsWord(v), "expected %d present", v)
	}
	require.Equal(t, len(values), tbl.len())

	for _, v := range values[:3] {
		require.True(t, tbl.removeWord(v))
	}
	for _, v := range values[3:] {
		require.True(t, tbl.containsWord(v))
	}
}

func TestMaxOf(t *testing.T) {
	t.Parallel()

	require.Equal(t, uint8(255), maxOf[uint8]())
	require.Equal(t, uint16(65535), maxOf[uint16]())
	require.Equal(t, uint32(4294967295), maxOf[uint32]())
	require.Equal(t, ^uint64(0), maxOf[uint64]())
}

func TestRawCapacityKeepsLoadFactorBound(t *testing.T) {
	t.Parallel()

	for _, n := range []int{0, 1, 2, 5, 10, 100, 1000} {
		raw := rawCapacity(n)
		require.True(t, raw&(raw-1) == 0, "rawCapacity(%d)=%d must be a power of two", n, raw)
		require.True(t, n*11 <= raw*10 || raw == 1, "rawCapacity(%d)=%d breaches the 10/11 load factor", n, raw)
	}
}
