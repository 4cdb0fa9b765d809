package workload

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseScript(t *testing.T) {
	script := `
# build the tree
insert 10 20 30   # right-right case
find 20 99

ERASE 20
min
max
export
verify
clear
`
	ops, err := ParseScript(strings.NewReader(script))
	require.NoError(t, err)
	require.Len(t, ops, 8)

	assert.Equal(t, Op{Kind: OpInsert, Keys: []int64{10, 20, 30}, Line: 3}, ops[0])
	assert.Equal(t, Op{Kind: OpFind, Keys: []int64{20, 99}, Line: 4}, ops[1])
	assert.Equal(t, Op{Kind: OpErase, Keys: []int64{20}, Line: 6}, ops[2])
	for i, k := range []OpKind{OpMin, OpMax, OpExport, OpVerify, OpClear} {
		assert.Equal(t, k, ops[3+i].Kind)
		assert.Nil(t, ops[3+i].Keys)
	}
}

func TestParseScriptErrors(t *testing.T) {
	for _, tc := range []struct {
		script string
		line   string
	}{
		{"insert 1\nfrobnicate 2\n", "line 2"},
		{"insert\n", "line 1"},
		{"min 3\n", "line 1"},
		{"\n\nerase 1 x\n", "line 3"},
		{"find 99999999999999999999\n", "line 1"},
	} {
		_, err := ParseScript(strings.NewReader(tc.script))
		require.Error(t, err, tc.script)
		assert.True(t, errors.Is(err, ErrSyntax), "%q: %v", tc.script, err)
		assert.Contains(t, err.Error(), tc.line)
	}
}

func TestFormatScriptRoundTrip(t *testing.T) {
	ops := []Op{
		{Kind: OpInsert, Keys: []int64{-5, 0, 7}},
		{Kind: OpErase, Keys: []int64{0}},
		{Kind: OpExport},
	}
	var buf bytes.Buffer
	require.NoError(t, FormatScript(&buf, ops))
	assert.Equal(t, "insert -5 0 7\nerase 0\nexport\n", buf.String())

	parsed, err := ParseScript(&buf)
	require.NoError(t, err)
	for i := range ops {
		assert.Equal(t, ops[i].Kind, parsed[i].Kind)
		assert.Equal(t, ops[i].Keys, parsed[i].Keys)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ops.txt")
	require.NoError(t, os.WriteFile(path, []byte("insert 1 2\nexport\n"), 0o644))
	ops, err := ParseFile(path)
	require.NoError(t, err)
	assert.Len(t, ops, 2)

	_, err = ParseFile(filepath.Join(t.TempDir(), "missing.txt"))
	assert.Error(t, err)
}

func TestPatterns(t *testing.T) {
	keys := func(p Pattern, n int) []int64 {
		return Spec{Pattern: p, Count: n}.WithDefaults().Keys()
	}
	assert.Equal(t, []int64{0, 1, 2, 3, 4}, keys(Ascending, 5))
	assert.Equal(t, []int64{4, 3, 2, 1, 0}, keys(Descending, 5))
	assert.Equal(t, []int64{0, 5, 1, 4, 2, 3}, keys(Zigzag, 6))

	saw := keys(Sawtooth, 130)
	assert.Equal(t, int64(0), saw[64])
	assert.Equal(t, int64(1), saw[129])

	a, b := keys(Random, 100), keys(Random, 100)
	assert.Equal(t, a, b, "random keys must be reproducible for a seed")
	other := Spec{Pattern: Random, Count: 100, Seed: 9}.Keys()
	assert.NotEqual(t, a, other)
}

func TestZigzagIsPermutation(t *testing.T) {
	for _, n := range []int{1, 2, 7, 100} {
		got := Spec{Pattern: Zigzag, Count: n}.Keys()
		slices.Sort(got)
		for i, k := range got {
			require.Equal(t, int64(i), k, "n=%d", n)
		}
	}
}

func TestGenerate(t *testing.T) {
	ops, err := Spec{Pattern: Ascending, Count: 10, EraseRatio: 0.5}.Generate()
	require.NoError(t, err)
	require.Len(t, ops, 10+5+2)

	erased := map[int64]bool{}
	for _, op := range ops[10:15] {
		require.Equal(t, OpErase, op.Kind)
		require.False(t, erased[op.Keys[0]], "key erased twice")
		erased[op.Keys[0]] = true
	}
	assert.Equal(t, OpVerify, ops[15].Kind)
	assert.Equal(t, OpExport, ops[16].Kind)

	_, err = Spec{Pattern: "spiral"}.Generate()
	assert.Error(t, err)
	_, err = Spec{EraseRatio: 2}.Generate()
	assert.Error(t, err)
}

func TestLoadSpec(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.yaml")
	require.NoError(t, os.WriteFile(path, []byte("pattern: zigzag\ncount: 500\neraseRatio: 0.25\nverifyEvery: 50\n"), 0o644))

	s, err := LoadSpec(path)
	require.NoError(t, err)
	assert.Equal(t, Spec{Pattern: Zigzag, Count: 500, Seed: 1, EraseRatio: 0.25, VerifyEvery: 50}, s)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("pattern: random\ncolour: red\n"), 0o644))
	_, err = LoadSpec(bad)
	assert.Error(t, err, "unknown fields are rejected")

	invalid := filepath.Join(dir, "invalid.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"pattern": "ascending", "count": -3}`), 0o644))
	_, err = LoadSpec(invalid)
	assert.Error(t, err)
}

func TestEmptyWorkload(t *testing.T) {
	ops, err := Spec{Pattern: Ascending}.Generate()
	require.NoError(t, err)
	require.Len(t, ops, 2)
	assert.Equal(t, OpVerify, ops[0].Kind)
	assert.Equal(t, OpExport, ops[1].Kind)

	dir := t.TempDir()
	zero := filepath.Join(dir, "zero.yaml")
	require.NoError(t, os.WriteFile(zero, []byte("pattern: random\ncount: 0\n"), 0o644))
	s, err := LoadSpec(zero)
	require.NoError(t, err)
	assert.Zero(t, s.Count)
	assert.Empty(t, s.Keys())

	omitted := filepath.Join(dir, "omitted.yaml")
	require.NoError(t, os.WriteFile(omitted, []byte("pattern: random\n"), 0o644))
	s, err = LoadSpec(omitted)
	require.NoError(t, err)
	assert.Equal(t, 1000, s.Count)
}

func TestOpKindHelpers(t *testing.T) {
	assert.Equal(t, "insert", OpInsert.String())
	assert.Equal(t, "op(42)", OpKind(42).String())
	assert.True(t, OpErase.Mutating())
	assert.True(t, OpClear.Mutating())
	assert.False(t, OpFind.Mutating())
}
