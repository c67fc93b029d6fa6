package simp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternReturnsTheSameValueForEqualNames(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)

	a := tbl.InternString("foo")
	b := tbl.InternString("foo")
	assert.True(t, Same(a, b))

	c := tbl.InternString("bar")
	assert.False(t, Same(a, c))
}

func TestInternDistinguishesDistinctNames(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)

	names := []string{"a", "ab", "abc", "define", "lambda", "quote", "+", "-", "set-car!"}
	interned := make([]Value, len(names))
	for i, n := range names {
		interned[i] = tbl.InternString(n)
	}
	for i, n := range names {
		assert.Equal(t, n, string(interned[i].GetBytes()))
	}
}

func TestRootsEnumeratesAllInternedSymbols(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)
	tbl.InternString("a")
	tbl.InternString("b")
	tbl.InternString("a") // already interned, shouldn't duplicate

	assert.Len(t, tbl.Roots(), 2)
}

func TestBucketForIsStableAndInRange(t *testing.T) {
	for _, name := range [][]byte{[]byte("x"), []byte("hello-world"), []byte("")} {
		b := bucketFor(name)
		assert.GreaterOrEqual(t, b, 0)
		assert.Less(t, b, symbolTableSize)
	}
}
