package simp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnvSetAndGetWithinSameFrame(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)
	env := h.MakeEnvironment(Nil())

	x := tbl.InternString("x")
	EnvSet(env, x, Fixnum(10))

	v, err := EnvGet(env, x)
	assert.NoError(t, err)
	assert.Equal(t, int64(10), v.GetFixnum())
}

func TestEnvGetWalksParentChain(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)
	outer := h.MakeEnvironment(Nil())
	inner := h.MakeEnvironment(outer)

	x := tbl.InternString("x")
	EnvSet(outer, x, Fixnum(1))

	v, err := EnvGet(inner, x)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), v.GetFixnum())
}

func TestEnvSetShadowsInnerFrameOnly(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)
	outer := h.MakeEnvironment(Nil())
	inner := h.MakeEnvironment(outer)

	x := tbl.InternString("x")
	EnvSet(outer, x, Fixnum(1))
	EnvSet(inner, x, Fixnum(2))

	innerVal, err := EnvGet(inner, x)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), innerVal.GetFixnum())

	outerVal, err := EnvGet(outer, x)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), outerVal.GetFixnum())
}

func TestEnvGetUnboundSymbolErrors(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)
	env := h.MakeEnvironment(Nil())

	_, err := EnvGet(env, tbl.InternString("nope"))
	assert.Error(t, err)
	assert.Equal(t, ErrUnbound, Kind(err))
}

func TestEnvSetOverwritesExistingBinding(t *testing.T) {
	h := NewHeap(0)
	tbl := NewSymbolTable(h)
	env := h.MakeEnvironment(Nil())
	x := tbl.InternString("x")

	EnvSet(env, x, Fixnum(1))
	EnvSet(env, x, Fixnum(2))

	v, err := EnvGet(env, x)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), v.GetFixnum())
}
