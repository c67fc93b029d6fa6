package simp

// Environment lookup and mutation. An environment is a Value of
// KindEnvironment backed by envData: a frame of (symbol, value)
// bindings plus a parent link. Shadowing is implemented by always
// defining into the innermost frame; lookup walks outward.

// EnvGet resolves sym starting at env and walking the parent chain.
// It returns an Unbound error if no frame binds sym.
func EnvGet(env, sym Value) (Value, error) {
	for e := env; !e.IsNil(); {
		ed := e.obj.data.(*envData)
		for _, b := range ed.bindings {
			if Same(b.sym, sym) {
				return b.val, nil
			}
		}
		e = ed.parent
	}
	return Value{}, newUnboundError("unbound symbol %q", string(sym.GetBytes()))
}

// EnvSet binds sym to val in env's own frame, overwriting any existing
// binding for sym in that frame (the shadowing rule `define` relies on)
// without touching outer frames.
func EnvSet(env, sym, val Value) {
	ed := env.obj.data.(*envData)
	for i, b := range ed.bindings {
		if Same(b.sym, sym) {
			ed.bindings[i].val = val
			return
		}
	}
	ed.bindings = append(ed.bindings, binding{sym: sym, val: val})
}

// EnvParent returns env's parent frame, or Nil at the top of the chain.
func EnvParent(env Value) Value {
	return env.obj.data.(*envData).parent
}
