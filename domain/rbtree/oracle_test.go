package rbtree

import (
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/cockroachdb/pebble"
	"github.com/cockroachdb/pebble/vfs"
	"github.com/google/btree"
	"github.com/stretchr/testify/require"
)

// oracleItem orders a multiset in a google/btree: equal keys are kept
// apart by their insertion sequence.
type oracleItem struct {
	key int64
	seq uint64
}

func (a oracleItem) Less(than btree.Item) bool {
	b := than.(oracleItem)
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}

type tracked struct {
	h   Handle
	seq uint64
}

func oracleKeys(o *btree.BTree) []int64 {
	keys := make([]int64, 0, o.Len())
	o.Ascend(func(i btree.Item) bool {
		keys = append(keys, i.(oracleItem).key)
		return true
	})
	return keys
}

// runRandomOps interleaves inserts and erases and checks the tree against
// the oracle after every mutation.
func runRandomOps(t *testing.T, seed int64, ops int, keySpace int64) {
	require := require.New(t)
	rng := rand.New(rand.NewSource(seed))

	tree := New()
	oracle := btree.New(4)
	var live []tracked
	var seq uint64

	for i := 0; i < ops; i++ {
		if len(live) == 0 || rng.Intn(100) < 60 {
			k := rng.Int63n(keySpace) - keySpace/2
			h, err := tree.Insert(k)
			require.NoError(err)
			require.Equal(k, h.Key())
			seq++
			oracle.ReplaceOrInsert(oracleItem{key: k, seq: seq})
			live = append(live, tracked{h: h, seq: seq})

			found, ok := tree.Find(k)
			require.True(ok, "find after insert %d", k)
			require.Equal(k, found.Key())
		} else {
			j := rng.Intn(len(live))
			victim := live[j]
			live[j] = live[len(live)-1]
			live = live[:len(live)-1]

			require.NoError(tree.Erase(victim.h))
			require.NotNil(oracle.Delete(oracleItem{key: victim.h.Key(), seq: victim.seq}))
			if !hasKey(oracle, victim.h.Key()) {
				_, ok := tree.Find(victim.h.Key())
				require.False(ok, "find after erase of last %d", victim.h.Key())
			}
		}

		require.NoError(tree.Verify())
		require.Equal(oracle.Len(), tree.Len())
	}

	require.Equal(oracleKeys(oracle), tree.Keys())
	if tree.Len() > 0 {
		lo, _ := tree.Min()
		hi, _ := tree.Max()
		require.Equal(oracle.Min().(oracleItem).key, lo.Key())
		require.Equal(oracle.Max().(oracleItem).key, hi.Key())
	}
}

func hasKey(o *btree.BTree, k int64) bool {
	found := false
	o.AscendGreaterOrEqual(oracleItem{key: k}, func(i btree.Item) bool {
		found = i.(oracleItem).key == k
		return false
	})
	return found
}

func TestRandomInterleavingsMatchBTree(t *testing.T) {
	for _, tc := range []struct {
		name     string
		seed     int64
		ops      int
		keySpace int64
	}{
		{"sparse", 1, 3000, 1 << 20},
		{"dense-duplicates", 2, 3000, 32},
		{"tiny", 3, 500, 4},
		{"wide", 4, 2000, 1 << 40},
	} {
		t.Run(tc.name, func(t *testing.T) {
			runRandomOps(t, tc.seed, tc.ops, tc.keySpace)
		})
	}
}

func TestMonotonicRunsRoundTrip(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 17, 256, 2000} {
		asc, desc := New(), New()
		want := make([]int64, n)
		for i := 0; i < n; i++ {
			want[i] = int64(i)
			_, err := asc.Insert(int64(i))
			require.NoError(t, err)
			_, err = desc.Insert(int64(n - 1 - i))
			require.NoError(t, err)
		}
		require.NoError(t, asc.Verify())
		require.NoError(t, desc.Verify())
		require.Equal(t, want, asc.Keys())
		require.Equal(t, want, desc.Keys())
		require.Equal(t, asc.BlackHeight(), desc.BlackHeight(), "n=%d", n)

		// drain from the low end, stressing one-sided erase fixups
		for i := 0; i < n; i++ {
			h, ok := asc.Min()
			require.True(t, ok)
			require.NoError(t, asc.Erase(h))
			require.NoError(t, asc.Verify())
		}
		require.Zero(t, asc.Len())
	}
}

// orderedKey encodes k so that byte order matches signed integer order,
// followed by seq to keep duplicates distinct.
func orderedKey(k int64, seq uint64) []byte {
	var b [16]byte
	binary.BigEndian.PutUint64(b[:8], uint64(k)^(1<<63))
	binary.BigEndian.PutUint64(b[8:], seq)
	return b[:]
}

func TestExportMatchesPebbleOrdering(t *testing.T) {
	db, err := pebble.Open("", &pebble.Options{FS: vfs.NewMem()})
	require.NoError(t, err)
	defer db.Close()

	rng := rand.New(rand.NewSource(42))
	tree := New()
	for seq := uint64(1); seq <= 2000; seq++ {
		k := rng.Int63n(1000) - 500
		if rng.Intn(10) == 0 {
			k = rng.Int63() - rng.Int63()
		}
		_, err := tree.Insert(k)
		require.NoError(t, err)
		require.NoError(t, db.Set(orderedKey(k, seq), nil, pebble.NoSync))
	}
	require.NoError(t, tree.Verify())

	iter, err := db.NewIter(nil)
	require.NoError(t, err)
	var want []int64
	for iter.First(); iter.Valid(); iter.Next() {
		want = append(want, int64(binary.BigEndian.Uint64(iter.Key()[:8])^(1<<63)))
	}
	require.NoError(t, iter.Close())

	buf := make([]int64, tree.Len())
	n, err := tree.ToSortedSequence(buf)
	require.NoError(t, err)
	require.Equal(t, want, buf[:n])
}

func FuzzInsertErase(f *testing.F) {
	f.Add([]byte{})
	f.Add([]byte{20, 40, 60})
	f.Add([]byte{2, 4, 6, 8, 10, 12, 1, 3, 5, 7})
	f.Add([]byte("hello world"))

	f.Fuzz(func(t *testing.T, script []byte) {
		tree := New()
		var live []Handle
		counts := map[int64]int{}
		for _, b := range script {
			if b&1 == 0 || len(live) == 0 {
				k := int64(b >> 1)
				h, err := tree.Insert(k)
				require.NoError(t, err)
				live = append(live, h)
				counts[k]++
			} else {
				j := int(b>>1) % len(live)
				h := live[j]
				live = append(live[:j], live[j+1:]...)
				require.NoError(t, tree.Erase(h))
				counts[h.Key()]--
				_, ok := tree.Find(h.Key())
				require.Equal(t, counts[h.Key()] > 0, ok)
			}
			require.NoError(t, tree.Verify())
		}
		require.Len(t, tree.Keys(), len(live))
	})
}
