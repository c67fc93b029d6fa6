package simp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestContext() *Context {
	cfg := NewConfig()
	return NewContext(cfg, NewInputPort(strings.NewReader("")), NewOutputPort(&strings.Builder{}), NewOutputPort(&strings.Builder{}))
}

func readOne(t *testing.T, ctx *Context, src string) Value {
	t.Helper()
	v, err := ctx.Read(NewInputPort(strings.NewReader(src)))
	assert.NoError(t, err)
	return v
}

func TestReadAtoms(t *testing.T) {
	ctx := newTestContext()

	assert.Equal(t, int64(42), readOne(t, ctx, "42").GetFixnum())
	assert.True(t, readOne(t, ctx, "42.5").IsReal())
	assert.Equal(t, "hello", string(readOne(t, ctx, `"hello"`).GetBytes()))
	assert.True(t, readOne(t, ctx, "foo").IsSymbol())
	assert.True(t, readOne(t, ctx, "   ").IsEOF())
}

func TestReadProperList(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "(a b c)")
	assert.True(t, v.IsPair())

	items, err := sliceFromList(v)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.Equal(t, "a", string(items[0].GetBytes()))
	assert.Equal(t, "c", string(items[2].GetBytes()))
}

func TestReadImproperList(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "(a . b)")
	assert.True(t, v.IsPair())
	assert.Equal(t, "a", string(v.Car().GetBytes()))
	assert.Equal(t, "b", string(v.Cdr().GetBytes()))
}

func TestReadImproperListMultipleHeadElements(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "(a b . c)")
	assert.True(t, v.IsPair())
	assert.Equal(t, "a", string(v.Car().GetBytes()))
	rest := v.Cdr()
	assert.True(t, rest.IsPair())
	assert.Equal(t, "b", string(rest.Car().GetBytes()))
	assert.Equal(t, "c", string(rest.Cdr().GetBytes()))
}

func TestReadNestedList(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "(a (b c) d)")
	items, err := sliceFromList(v)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.True(t, items[1].IsPair())

	inner, err := sliceFromList(items[1])
	assert.NoError(t, err)
	assert.Len(t, inner, 2)
}

func TestReadQuote(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "'a")
	assert.True(t, v.IsPair())
	assert.True(t, Same(v.Car(), ctx.QuoteSymbol))
	assert.Equal(t, "a", string(v.Cdr().Car().GetBytes()))
}

func TestReadQuoteInsideList(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "(a 'b c)")
	items, err := sliceFromList(v)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
	assert.True(t, items[1].IsPair())
	assert.True(t, Same(items[1].Car(), ctx.QuoteSymbol))
}

func TestReadEmptyList(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "()")
	assert.True(t, v.IsNil())
}

func TestReadUnbalancedParenIsUnexpectedEOF(t *testing.T) {
	ctx := newTestContext()
	_, err := ctx.Read(NewInputPort(strings.NewReader("(a b")))
	assert.Error(t, err)
	assert.Equal(t, ErrUnexpectedEOF, Kind(err))
}

func TestReadMismatchedDelimiterIsSyntaxError(t *testing.T) {
	ctx := newTestContext()
	_, err := ctx.Read(NewInputPort(strings.NewReader("(a b]")))
	assert.Error(t, err)
	assert.Equal(t, ErrSyntax, Kind(err))
}

func TestReadBracketVector(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "[a b c]")
	assert.True(t, v.IsVector())
	assert.False(t, v.IsPair())
	assert.Equal(t, 3, v.GetSize())
}

func TestReadCommentsAreSkipped(t *testing.T) {
	ctx := newTestContext()
	v := readOne(t, ctx, "# a comment\n42")
	assert.Equal(t, int64(42), v.GetFixnum())
}
