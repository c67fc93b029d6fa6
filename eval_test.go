package simp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newEvalContext(t *testing.T) *Context {
	t.Helper()
	ctx := newTestContext()
	BootstrapGlobals(ctx)
	return ctx
}

func evalString(t *testing.T, ctx *Context, src string) Value {
	t.Helper()
	expr, err := ctx.Read(NewInputPort(strings.NewReader(src)))
	assert.NoError(t, err)
	v, err := Eval(ctx, expr, ctx.GlobalEnv)
	assert.NoError(t, err)
	return v
}

func TestEvalSelfEvaluatingAtoms(t *testing.T) {
	ctx := newEvalContext(t)
	assert.Equal(t, int64(42), evalString(t, ctx, "42").GetFixnum())
	assert.Equal(t, "hi", string(evalString(t, ctx, `"hi"`).GetBytes()))
}

func TestEvalArithmetic(t *testing.T) {
	ctx := newEvalContext(t)
	assert.Equal(t, int64(6), evalString(t, ctx, "(+ 1 2 3)").GetFixnum())
	assert.Equal(t, int64(-4), evalString(t, ctx, "(- 1 2 3)").GetFixnum())
	assert.Equal(t, int64(24), evalString(t, ctx, "(* 2 3 4)").GetFixnum())
	assert.True(t, evalString(t, ctx, "(< 1 2)").IsTrue())
	assert.True(t, evalString(t, ctx, "(> 1 2)").IsFalse())
}

func TestEvalDefineAndLookup(t *testing.T) {
	ctx := newEvalContext(t)
	evalString(t, ctx, "(define x 10)")
	assert.Equal(t, int64(10), evalString(t, ctx, "x").GetFixnum())
}

func TestEvalIf(t *testing.T) {
	ctx := newEvalContext(t)
	assert.Equal(t, int64(1), evalString(t, ctx, "(if (< 1 2) 1 2)").GetFixnum())
	assert.Equal(t, int64(2), evalString(t, ctx, "(if (> 1 2) 1 2)").GetFixnum())
	assert.True(t, evalString(t, ctx, "(if (> 1 2) 1)").IsVoid())
}

func TestEvalLambdaApplication(t *testing.T) {
	ctx := newEvalContext(t)
	evalString(t, ctx, "(define add (lambda (a b) (+ a b)))")
	assert.Equal(t, int64(7), evalString(t, ctx, "(add 3 4)").GetFixnum())
}

func TestEvalLambdaVariadicTail(t *testing.T) {
	ctx := newEvalContext(t)
	evalString(t, ctx, "(define first (lambda (a . rest) a))")
	assert.Equal(t, int64(1), evalString(t, ctx, "(first 1 2 3)").GetFixnum())

	evalString(t, ctx, "(define all (lambda args args))")
	v := evalString(t, ctx, "(all 1 2 3)")
	items, err := sliceFromList(v)
	assert.NoError(t, err)
	assert.Len(t, items, 3)
}

func TestEvalMacroGetsUnevaluatedOperandsAndCallerEnv(t *testing.T) {
	ctx := newEvalContext(t)
	evalString(t, ctx, "(define my-quote (macro (env form) (car form)))")
	v := evalString(t, ctx, "(my-quote (a b c))")
	assert.True(t, v.IsSymbol())
	assert.Equal(t, "a", string(v.GetBytes()))
}

func TestEvalQuote(t *testing.T) {
	ctx := newEvalContext(t)
	v := evalString(t, ctx, "'(a b)")
	items, err := sliceFromList(v)
	assert.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestEvalConsCarCdr(t *testing.T) {
	ctx := newEvalContext(t)
	assert.Equal(t, int64(1), evalString(t, ctx, "(car (cons 1 2))").GetFixnum())
	assert.Equal(t, int64(2), evalString(t, ctx, "(cdr (cons 1 2))").GetFixnum())
}

func TestEvalUnboundSymbolErrors(t *testing.T) {
	ctx := newEvalContext(t)
	expr, err := ctx.Read(NewInputPort(strings.NewReader("no-such-name")))
	assert.NoError(t, err)
	_, err = Eval(ctx, expr, ctx.GlobalEnv)
	assert.Error(t, err)
	assert.Equal(t, ErrUnbound, Kind(err))
}

func TestEvalWrongArityErrors(t *testing.T) {
	ctx := newEvalContext(t)
	evalString(t, ctx, "(define add (lambda (a b) (+ a b)))")
	expr, err := ctx.Read(NewInputPort(strings.NewReader("(add 1)")))
	assert.NoError(t, err)
	_, err = Eval(ctx, expr, ctx.GlobalEnv)
	assert.Error(t, err)
	assert.Equal(t, ErrArity, Kind(err))
}

func TestEvalVectorBuiltins(t *testing.T) {
	ctx := newEvalContext(t)
	evalString(t, ctx, "(define v (vector 1 2 3))")
	assert.Equal(t, int64(3), evalString(t, ctx, "(vector-length v)").GetFixnum())
	assert.Equal(t, int64(2), evalString(t, ctx, "(vector-ref v 1)").GetFixnum())
	evalString(t, ctx, "(vector-set! v 0 99)")
	assert.Equal(t, int64(99), evalString(t, ctx, "(vector-ref v 0)").GetFixnum())
}

func TestEvalGCBuiltinRunsACollection(t *testing.T) {
	ctx := newEvalContext(t)
	before := evalString(t, ctx, "(gc)")
	assert.True(t, before.IsFixnum())
}
