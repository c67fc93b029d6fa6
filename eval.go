package simp

// Eval reduces expr to its evaluated form in env, per spec.md §4.5:
// symbols resolve through the environment chain, vectors combine an
// operator with operands, and everything else self-evaluates. This is
// simp_eval's dispatch in eval.c, generalized to the tagged Value
// union instead of a type-tag switch over a C union.
func Eval(ctx *Context, expr, env Value) (result Value, err error) {
	defer func() {
		if r := recover(); r != nil {
			msg, ok := r.(string)
			if !ok {
				panic(r)
			}
			result, err = Value{}, newIllegalType("%s", msg)
		}
	}()
	switch {
	case expr.IsSymbol():
		return EnvGet(env, expr)
	case expr.IsCompound():
		return combine(ctx, expr, env)
	default:
		return expr, nil
	}
}

// combine evaluates a vector as a combination: its car is evaluated to
// find the operator, and is then either called directly (builtin) or
// dispatched through operate (closure). Grounded on eval.c's combine().
func combine(ctx *Context, expr, env Value) (Value, error) {
	if !expr.IsPair() && !expr.IsNil() {
		return Value{}, newIllegalExpression("combination is not a list")
	}
	if expr.IsNil() {
		return Value{}, newIllegalExpression("cannot evaluate the empty combination")
	}
	operator, err := Eval(ctx, expr.Car(), env)
	if err != nil {
		return Value{}, err
	}
	operands := expr.Cdr()
	if operator.IsBuiltin() {
		fn := builtinTable[operator.num].fn
		return fn(ctx, operands, env)
	}
	return operate(ctx, operator, operands, env)
}

// evalArgs evaluates each element of an operand list left to right,
// short-circuiting on the first exception, and returns the resulting
// argument list. Grounded on eval.c's evalargs().
func evalArgs(ctx *Context, list, env Value) (Value, error) {
	var items []Value
	for cur := list; !cur.IsNil(); {
		if !cur.IsPair() {
			return Value{}, newIllegalExpression("argument list is not a proper list")
		}
		val, err := Eval(ctx, cur.Car(), env)
		if err != nil {
			return Value{}, err
		}
		items = append(items, val)
		cur = cur.Cdr()
	}
	return listFromSlice(ctx.Heap, items), nil
}

// listFromSlice builds a right-associated chain of pairs (a proper
// list) from items, in order.
func listFromSlice(h *Heap, items []Value) Value {
	list := Nil()
	for i := len(items) - 1; i >= 0; i-- {
		list = h.Cons(items[i], list)
	}
	return list
}

// sliceFromList flattens a proper list into a Go slice, erroring if the
// list is improper (ends in something other than Nil).
func sliceFromList(list Value) ([]Value, error) {
	var items []Value
	for cur := list; !cur.IsNil(); {
		if !cur.IsPair() {
			return nil, newIllegalExpression("expected a proper list")
		}
		items = append(items, cur.Car())
		cur = cur.Cdr()
	}
	return items, nil
}

// operate invokes a user-defined closure: a fresh environment frame is
// created, parameters are bound positionally (with a trailing symbol
// parameter receiving the remaining arguments as a variadic tail), and
// the body is evaluated in that frame, returning its last expression's
// value. Grounded on eval.c's operate().
func operate(ctx *Context, operator, args, env Value) (Value, error) {
	if !operator.IsClosure() {
		return Value{}, newIllegalExpression("combination operator is not callable")
	}
	cd := operator.obj.data.(*closureData)

	if cd.operative {
		// Operands are passed unevaluated for a macro-created closure.
	} else {
		evaluated, err := evalArgs(ctx, args, env)
		if err != nil {
			return Value{}, err
		}
		args = evaluated
	}

	cloEnv := ctx.Heap.MakeEnvironment(cd.env)
	param := cd.params

	if cd.operative {
		if !param.IsPair() {
			return Value{}, newIllegalExpression("operative is missing its environment parameter")
		}
		caller := param.Car()
		if !caller.IsSymbol() {
			return Value{}, newIllegalExpression("operative's environment parameter is not a symbol")
		}
		EnvSet(cloEnv, caller, env)
		param = param.Cdr()
	}

	if err := bindParams(cloEnv, param, args); err != nil {
		return Value{}, err
	}

	var result Value = Void()
	for body := cd.body; ; {
		if len(body) == 0 {
			break
		}
		var err error
		result, err = Eval(ctx, body[0], cloEnv)
		if err != nil {
			return Value{}, err
		}
		body = body[1:]
	}
	return result, nil
}

// bindParams binds param against args into env. Parameters are a list
// of symbols, same representation as any other list, but may be
// *improper*: a trailing symbol instead of Nil in the final cdr
// position binds the remaining argument list wholesale (the variadic
// tail). A bare symbol with no enclosing list binds every argument.
func bindParams(env, param, args Value) error {
	for {
		switch {
		case param.IsNil():
			if !args.IsNil() {
				return newArityError("too many arguments")
			}
			return nil
		case param.IsSymbol():
			EnvSet(env, param, args)
			return nil
		case param.IsPair():
			v := param.Car()
			if !v.IsSymbol() {
				return newIllegalExpression("parameter is not a symbol")
			}
			if args.IsNil() {
				return newArityError("too few arguments")
			}
			if !args.IsPair() {
				return newIllegalExpression("argument list is not a proper list")
			}
			EnvSet(env, v, args.Car())
			param = param.Cdr()
			args = args.Cdr()
		default:
			return newIllegalExpression("malformed parameter list")
		}
	}
}
