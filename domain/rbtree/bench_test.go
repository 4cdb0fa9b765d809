package rbtree

import (
	"math/rand"
	"testing"
)

func BenchmarkInsertAscending(b *testing.B) {
	tree := NewWithConfig(Config{InitialCapacity: b.N})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tree.Insert(int64(i))
	}
}

func BenchmarkInsertRandom(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	keys := make([]int64, b.N)
	for i := range keys {
		keys[i] = rng.Int63()
	}
	tree := NewWithConfig(Config{InitialCapacity: b.N})
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tree.Insert(keys[i])
	}
}

func BenchmarkFind(b *testing.B) {
	tree := New()
	for i := 0; i < 1<<16; i++ {
		_, _ = tree.Insert(int64(i))
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = tree.Find(int64(i & (1<<16 - 1)))
	}
}

func BenchmarkMixedInsertErase(b *testing.B) {
	tree := New()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h, _ := tree.Insert(int64(i))
		if i%2 == 0 {
			_ = tree.Erase(h)
		}
	}
}

func BenchmarkToSortedSequence(b *testing.B) {
	tree := New()
	for i := 0; i < 50000; i++ {
		_, _ = tree.Insert(int64(i * 31 % 50000))
	}
	buf := make([]int64, tree.Len())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if n, err := tree.ToSortedSequence(buf); err != nil || n != len(buf) {
			b.Fatalf("export returned %d, %v", n, err)
		}
	}
}

func BenchmarkHeight(b *testing.B) {
	tree := New()
	for i := 0; i < 50000; i++ {
		_, _ = tree.Insert(int64(i))
	}
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = tree.Height()
	}
}
