package simp

// builtinFn is the shape every builtin operator takes: the raw,
// unevaluated operand list and the caller's environment, matching
// eval.c's `Simp (*)(Simp ctx, Simp operands, Simp env)` signature. Each
// builtin decides for itself, argument by argument, whether to
// evaluate — `if` and `define` famously don't evaluate all of theirs.
type builtinFn func(ctx *Context, operands, env Value) (Value, error)

type builtinEntry struct {
	name string
	fn   builtinFn
}

// builtinTable is indexed by the num payload of a KindBuiltin value.
// registerBuiltin is idempotent per name: calling BootstrapGlobals against
// more than one Context in the same process reuses the existing table
// entry instead of growing the table unboundedly.
var (
	builtinTable []builtinEntry
	builtinIndex = map[string]int{}
)

func registerBuiltin(name string, fn builtinFn) Value {
	if idx, ok := builtinIndex[name]; ok {
		return Value{kind: KindBuiltin, num: int64(idx)}
	}
	idx := len(builtinTable)
	builtinTable = append(builtinTable, builtinEntry{name: name, fn: fn})
	builtinIndex[name] = idx
	return Value{kind: KindBuiltin, num: int64(idx)}
}

// args is a small helper for builtins that just need their arguments
// evaluated left to right and arity-checked, mirroring eval.c's
// getargs()/GETARGS without the C macro's fixed-size array.
func args(ctx *Context, operands, env Value, min, max int) ([]Value, error) {
	items, err := sliceFromList(operands)
	if err != nil {
		return nil, newIllegalExpression("argument list is not a proper list")
	}
	if len(items) < min || (max >= 0 && len(items) > max) {
		return nil, newArityError("expected between %d and %d arguments, got %d", min, max, len(items))
	}
	out := make([]Value, len(items))
	for i, expr := range items {
		v, err := Eval(ctx, expr, env)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func wantNum(v Value) error {
	if !v.IsNum() {
		return newIllegalType("expected a number")
	}
	return nil
}

// BootstrapGlobals registers every builtin of spec.md §4.5 (plus
// SPEC_FULL.md's supplemented set) into ctx's global environment.
func BootstrapGlobals(ctx *Context) {
	bind := func(name string, fn builtinFn) {
		EnvSet(ctx.GlobalEnv, ctx.Symbols.InternString(name), registerBuiltin(name, fn))
	}

	// Arithmetic.
	bind("+", opAdd)
	bind("-", opSubtract)
	bind("*", opMultiply)
	bind("/", opDivide)
	bind("=", opNumEqual)
	bind("<", opLess)
	bind(">", opGreater)
	bind("abs", opAbs)

	// Predicates.
	bind("boolean?", opIsKind(Value.IsBool))
	bind("null?", opIsKind(Value.IsNil))
	bind("pair?", opIsKind(Value.IsPair))
	bind("port?", opIsKind(Value.IsPort))
	bind("symbol?", opIsKind(Value.IsSymbol))
	bind("string?", opIsKind(Value.IsString))
	bind("vector?", opIsKind(Value.IsVector))
	bind("procedure?", opIsKind(Value.IsClosure))
	bind("environment?", opIsKind(Value.IsEnvironment))
	bind("exception?", opIsKind(Value.IsException))
	bind("same?", opSame)
	bind("not", opNot)

	// Pair operations.
	bind("car", opCar)
	bind("cdr", opCdr)
	bind("cons", opCons)
	bind("set-car!", opSetCar)
	bind("set-cdr!", opSetCdr)

	// Vector operations (supplemented: see SPEC_FULL.md).
	bind("vector", opVector)
	bind("make-vector", opMakeVector)
	bind("vector-ref", opVectorRef)
	bind("vector-set!", opVectorSet)
	bind("vector-length", opVectorLength)

	// String operations (supplemented).
	bind("make-string", opMakeString)
	bind("string-length", opStringLength)
	bind("string-ref", opStringRef)
	bind("string-set!", opStringSet)
	bind("string-append", opStringAppend)

	// Control.
	bind("if", opIf)
	bind("quote", opQuote)

	// Binding and procedure forms.
	bind("define", opDefine)
	bind("lambda", opLambda)
	bind("macro", opMacro)

	// Environment introspection.
	bind("make-environment", opMakeEnvironment)
	bind("eval", opEval)

	// I/O.
	bind("display", opDisplay)
	bind("write", opWrite)
	bind("newline", opNewline)
	bind("read", opRead)

	// Port accessors (supplemented: eof?/error? alongside the three
	// standard ports eval.c already exposes).
	bind("current-input-port", opCurrentPort(func(c *Context) Value { return c.IPort }))
	bind("current-output-port", opCurrentPort(func(c *Context) Value { return c.OPort }))
	bind("current-error-port", opCurrentPort(func(c *Context) Value { return c.EPort }))
	bind("port-eof?", opPortEOF)
	bind("port-error?", opPortError)

	// Constants, exposed as zero-arg builtins exactly as eval.c's
	// simp_optrue/opfalse/opvoid do.
	bind("true", opConstant(True()))
	bind("false", opConstant(False()))
	bind("void", opConstant(Void()))

	// Heap introspection (supplemented).
	bind("gc", opGC)
}

func opIsKind(pred func(Value) bool) builtinFn {
	return func(ctx *Context, operands, env Value) (Value, error) {
		a, err := args(ctx, operands, env, 1, 1)
		if err != nil {
			return Value{}, err
		}
		return Bool(pred(a[0])), nil
	}
}

func opConstant(v Value) builtinFn {
	return func(ctx *Context, operands, env Value) (Value, error) {
		if _, err := args(ctx, operands, env, 0, 0); err != nil {
			return Value{}, err
		}
		return v, nil
	}
}

func opCurrentPort(get func(*Context) Value) builtinFn {
	return func(ctx *Context, operands, env Value) (Value, error) {
		if _, err := args(ctx, operands, env, 0, 0); err != nil {
			return Value{}, err
		}
		return get(ctx), nil
	}
}

func opAdd(ctx *Context, operands, env Value) (Value, error) {
	items, err := sliceFromList(operands)
	if err != nil {
		return Value{}, newIllegalExpression("argument list is not a proper list")
	}
	sum := Fixnum(0)
	for _, expr := range items {
		v, err := Eval(ctx, expr, env)
		if err != nil {
			return Value{}, err
		}
		if err := wantNum(v); err != nil {
			return Value{}, err
		}
		sum, err = Add(sum, v)
		if err != nil {
			return Value{}, err
		}
	}
	return sum, nil
}

func opSubtract(ctx *Context, operands, env Value) (Value, error) {
	items, err := sliceFromList(operands)
	if err != nil {
		return Value{}, newIllegalExpression("argument list is not a proper list")
	}
	if len(items) == 0 {
		return Value{}, newArityError("- needs at least one argument")
	}
	first, err := Eval(ctx, items[0], env)
	if err != nil {
		return Value{}, err
	}
	if err := wantNum(first); err != nil {
		return Value{}, err
	}
	if len(items) == 1 {
		return Sub(Fixnum(0), first)
	}
	acc := first
	for _, expr := range items[1:] {
		v, err := Eval(ctx, expr, env)
		if err != nil {
			return Value{}, err
		}
		if err := wantNum(v); err != nil {
			return Value{}, err
		}
		acc, err = Sub(acc, v)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func opMultiply(ctx *Context, operands, env Value) (Value, error) {
	items, err := sliceFromList(operands)
	if err != nil {
		return Value{}, newIllegalExpression("argument list is not a proper list")
	}
	prod := Fixnum(1)
	for _, expr := range items {
		v, err := Eval(ctx, expr, env)
		if err != nil {
			return Value{}, err
		}
		if err := wantNum(v); err != nil {
			return Value{}, err
		}
		prod, err = Mul(prod, v)
		if err != nil {
			return Value{}, err
		}
	}
	return prod, nil
}

func opDivide(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, -1)
	if err != nil {
		return Value{}, err
	}
	acc := a[0]
	if err := wantNum(acc); err != nil {
		return Value{}, err
	}
	for _, v := range a[1:] {
		if err := wantNum(v); err != nil {
			return Value{}, err
		}
		acc, err = Div(acc, v)
		if err != nil {
			return Value{}, err
		}
	}
	return acc, nil
}

func opAbs(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	return Abs(a[0])
}

func opNumEqual(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	c, err := Compare(a[0], a[1])
	if err != nil {
		return Value{}, err
	}
	return Bool(c == 0), nil
}

func opLess(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	c, err := Compare(a[0], a[1])
	if err != nil {
		return Value{}, err
	}
	return Bool(c < 0), nil
}

func opGreater(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	c, err := Compare(a[0], a[1])
	if err != nil {
		return Value{}, err
	}
	return Bool(c > 0), nil
}

func opSame(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	return Bool(Same(a[0], a[1])), nil
}

func opNot(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	return Bool(a[0].IsFalse()), nil
}

func opCar(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsPair() {
		return Value{}, newIllegalType("car: argument is not a pair")
	}
	return a[0].Car(), nil
}

func opCdr(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsPair() {
		return Value{}, newIllegalType("cdr: argument is not a pair")
	}
	return a[0].Cdr(), nil
}

func opCons(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	return ctx.Heap.Cons(a[0], a[1]), nil
}

func opSetCar(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsPair() {
		return Value{}, newIllegalType("set-car!: argument is not a pair")
	}
	a[0].SetCar(a[1])
	return Void(), nil
}

func opSetCdr(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsPair() {
		return Value{}, newIllegalType("set-cdr!: argument is not a pair")
	}
	a[0].SetCdr(a[1])
	return Void(), nil
}

func opVector(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 0, -1)
	if err != nil {
		return Value{}, err
	}
	return ctx.Heap.MakeVector(a), nil
}

func opMakeVector(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 2)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsFixnum() {
		return Value{}, newIllegalType("make-vector: size must be a fixnum")
	}
	n := int(a[0].GetFixnum())
	fill := Undef()
	if len(a) == 2 {
		fill = a[1]
	}
	v := ctx.Heap.MakeVectorOfSize(n)
	if n > 0 {
		items := v.GetVector()
		for i := range items {
			items[i] = fill
		}
	}
	return v, nil
}

func opVectorRef(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsVector() || !a[1].IsFixnum() {
		return Value{}, newIllegalType("vector-ref: expected a vector and a fixnum index")
	}
	return a[0].VectorRef(int(a[1].GetFixnum())), nil
}

func opVectorSet(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 3, 3)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsVector() || !a[1].IsFixnum() {
		return Value{}, newIllegalType("vector-set!: expected a vector and a fixnum index")
	}
	a[0].VectorSet(int(a[1].GetFixnum()), a[2])
	return Void(), nil
}

func opVectorLength(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsVector() {
		return Value{}, newIllegalType("vector-length: argument is not a vector")
	}
	return Fixnum(int64(a[0].GetSize())), nil
}

func opMakeString(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 2)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsFixnum() {
		return Value{}, newIllegalType("make-string: size must be a fixnum")
	}
	n := int(a[0].GetFixnum())
	fill := byte(' ')
	if len(a) == 2 {
		if !a[1].IsByte() {
			return Value{}, newIllegalType("make-string: fill must be a byte")
		}
		fill = a[1].GetByte()
	}
	b := make([]byte, n)
	for i := range b {
		b[i] = fill
	}
	return ctx.Heap.MakeString(b), nil
}

func opStringSet(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 3, 3)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsString() || !a[1].IsFixnum() || !a[2].IsByte() {
		return Value{}, newIllegalType("string-set!: expected a string, a fixnum index and a byte")
	}
	b := a[0].GetBytes()
	i := int(a[1].GetFixnum())
	if i < 0 || i >= len(b) {
		return Value{}, newIllegalType("string-set!: index out of range")
	}
	b[i] = a[2].GetByte()
	return Void(), nil
}

func opStringLength(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsString() {
		return Value{}, newIllegalType("string-length: argument is not a string")
	}
	return Fixnum(int64(a[0].GetSize())), nil
}

func opStringRef(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsString() || !a[1].IsFixnum() {
		return Value{}, newIllegalType("string-ref: expected a string and a fixnum index")
	}
	b := a[0].GetBytes()
	i := int(a[1].GetFixnum())
	if i < 0 || i >= len(b) {
		return Value{}, newIllegalType("string-ref: index out of range")
	}
	return ByteValue(b[i]), nil
}

func opStringAppend(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 0, -1)
	if err != nil {
		return Value{}, err
	}
	var out []byte
	for _, v := range a {
		if !v.IsString() {
			return Value{}, newIllegalType("string-append: argument is not a string")
		}
		out = append(out, v.GetBytes()...)
	}
	return ctx.Heap.MakeString(out), nil
}

func opIf(ctx *Context, operands, env Value) (Value, error) {
	items, err := sliceFromList(operands)
	if err != nil || len(items) < 2 || len(items) > 3 {
		return Value{}, newArityError("if takes a condition, a then-branch and an optional else-branch")
	}
	cond, err := Eval(ctx, items[0], env)
	if err != nil {
		return Value{}, err
	}
	if !cond.IsFalse() {
		return Eval(ctx, items[1], env)
	}
	if len(items) == 3 {
		return Eval(ctx, items[2], env)
	}
	return Void(), nil
}

func opQuote(ctx *Context, operands, env Value) (Value, error) {
	if !operands.IsPair() {
		return Value{}, newIllegalExpression("quote takes exactly one operand")
	}
	return operands.Car(), nil
}

func opDefine(ctx *Context, operands, env Value) (Value, error) {
	if !operands.IsPair() {
		return Value{}, newIllegalExpression("define takes a symbol and a value")
	}
	symbol := operands.Car()
	if !symbol.IsSymbol() {
		return Value{}, newIllegalExpression("define's first operand must be a symbol")
	}
	rest := operands.Cdr()
	if !rest.IsPair() || !rest.Cdr().IsNil() {
		return Value{}, newIllegalExpression("define takes exactly one value operand")
	}
	val, err := Eval(ctx, rest.Car(), env)
	if err != nil {
		return Value{}, err
	}
	EnvSet(env, symbol, val)
	return Void(), nil
}

func opLambda(ctx *Context, operands, env Value) (Value, error) {
	if !operands.IsPair() {
		return Value{}, newIllegalExpression("lambda takes a parameter list and a body")
	}
	params := operands.Car()
	body, err := sliceFromList(operands.Cdr())
	if err != nil {
		return Value{}, newIllegalExpression("lambda body is not a proper list")
	}
	return ctx.Heap.MakeClosure(params, body, env, false), nil
}

func opMacro(ctx *Context, operands, env Value) (Value, error) {
	if !operands.IsPair() {
		return Value{}, newIllegalExpression("macro takes a parameter list and a body")
	}
	params := operands.Car()
	body, err := sliceFromList(operands.Cdr())
	if err != nil {
		return Value{}, newIllegalExpression("macro body is not a proper list")
	}
	return ctx.Heap.MakeClosure(params, body, env, true), nil
}

func opMakeEnvironment(ctx *Context, operands, env Value) (Value, error) {
	if _, err := args(ctx, operands, env, 0, 0); err != nil {
		return Value{}, err
	}
	return ctx.Heap.MakeEnvironment(env), nil
}

func opEval(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 2, 2)
	if err != nil {
		return Value{}, err
	}
	if !a[1].IsEnvironment() {
		return Value{}, newIllegalType("eval: second argument must be an environment")
	}
	return Eval(ctx, a[0], a[1])
}

func opDisplay(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 2)
	if err != nil {
		return Value{}, err
	}
	port := ctx.OPort
	if len(a) == 2 {
		port = a[1]
	}
	if !port.IsPort() {
		return Value{}, newIllegalType("display: second argument must be a port")
	}
	if err := Display(port.GetPort(), a[0]); err != nil {
		return Value{}, err
	}
	return Void(), nil
}

func opWrite(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 2)
	if err != nil {
		return Value{}, err
	}
	port := ctx.OPort
	if len(a) == 2 {
		port = a[1]
	}
	if !port.IsPort() {
		return Value{}, newIllegalType("write: second argument must be a port")
	}
	if err := Write(port.GetPort(), a[0]); err != nil {
		return Value{}, err
	}
	return Void(), nil
}

func opNewline(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 0, 1)
	if err != nil {
		return Value{}, err
	}
	port := ctx.OPort
	if len(a) == 1 {
		port = a[0]
	}
	if !port.IsPort() {
		return Value{}, newIllegalType("newline: argument must be a port")
	}
	if err := port.GetPort().WriteByte('\n'); err != nil {
		return Value{}, err
	}
	return Void(), nil
}

func opRead(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 0, 1)
	if err != nil {
		return Value{}, err
	}
	port := ctx.IPort
	if len(a) == 1 {
		port = a[0]
	}
	if !port.IsPort() {
		return Value{}, newIllegalType("read: argument must be a port")
	}
	return ctx.Read(port.GetPort())
}

func opPortEOF(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsPort() {
		return Value{}, newIllegalType("port-eof?: argument is not a port")
	}
	return Bool(a[0].GetPort().IsEOF()), nil
}

func opPortError(ctx *Context, operands, env Value) (Value, error) {
	a, err := args(ctx, operands, env, 1, 1)
	if err != nil {
		return Value{}, err
	}
	if !a[0].IsPort() {
		return Value{}, newIllegalType("port-error?: argument is not a port")
	}
	return Bool(a[0].GetPort().IsErr()), nil
}

func opGC(ctx *Context, operands, env Value) (Value, error) {
	if _, err := args(ctx, operands, env, 0, 0); err != nil {
		return Value{}, err
	}
	ctx.Heap.Collect()
	live, _, _ := ctx.Heap.Stats()
	return Fixnum(int64(live)), nil
}
