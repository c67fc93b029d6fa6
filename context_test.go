package simp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewContextWiresStandardPorts(t *testing.T) {
	var out strings.Builder
	cfg := NewConfig()
	ctx := NewContext(cfg, NewInputPort(strings.NewReader("")), NewOutputPort(&out), NewOutputPort(&out))

	assert.True(t, ctx.IPort.IsPort())
	assert.True(t, ctx.OPort.IsPort())
	assert.True(t, ctx.EPort.IsPort())
	assert.True(t, ctx.GlobalEnv.IsEnvironment())
	assert.True(t, ctx.QuoteSymbol.IsSymbol())
	assert.Equal(t, "quote", string(ctx.QuoteSymbol.GetBytes()))
}

func TestContextRootsKeepGlobalBindingsAlive(t *testing.T) {
	ctx := newEvalContext(t)
	evalString(t, ctx, "(define x (cons 1 2))")

	ctx.Heap.Collect()

	v := evalString(t, ctx, "x")
	assert.True(t, v.IsPair())
	assert.Equal(t, int64(1), v.Car().GetFixnum())
}

func TestContextReadDelegatesToReader(t *testing.T) {
	ctx := newTestContext()
	v, err := ctx.Read(NewInputPort(strings.NewReader("(1 2 3)")))
	assert.NoError(t, err)
	items, err := sliceFromList(v)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
}
