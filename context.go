package simp

// Context bundles everything spec.md §4.3 says the runtime needs in one
// place: the heap, the symbol table, the three standard ports and the
// global environment. It is the Go analogue of context.c's `Context`
// struct, generalized from three fixed ports to any ports a caller
// wants to read from or write to.
type Context struct {
	Heap    *Heap
	Symbols *SymbolTable

	IPort Value
	OPort Value
	EPort Value

	GlobalEnv Value

	// QuoteSymbol is the interned `quote` symbol the reader wraps
	// around a `'datum` literal; kept here so the reader need not
	// re-intern it on every call.
	QuoteSymbol Value

	reader *Reader
}

// NewContext creates a context wired to the given standard ports, with
// an empty global environment and a fresh heap governed by cfg's GC
// threshold. Roots are wired so the heap never collects anything the
// context still considers live.
func NewContext(cfg *Config, in, out, errPort *Port) *Context {
	h := NewHeap(cfg.GetInt(ConfigGCThreshold))
	ctx := &Context{
		Heap:    h,
		Symbols: NewSymbolTable(h),
	}
	ctx.IPort = h.MakePort(in)
	ctx.OPort = h.MakePort(out)
	ctx.EPort = h.MakePort(errPort)
	ctx.GlobalEnv = h.MakeEnvironment(Nil())
	ctx.QuoteSymbol = ctx.Symbols.InternString("quote")
	ctx.reader = NewReader(ctx)

	h.SetRoots(ctx.Roots)
	return ctx
}

// Roots enumerates the context's root set: the symbol table, the three
// standard ports, and the global environment chain. It satisfies the
// Heap.rootsFn contract and is the same set spec.md §4.1 names, minus
// the reader's own stacks — those are local variables of Reader.Read
// and are already reachable only via values still referenced from
// readStack/vectorStack while a read is in progress, so nothing extra
// needs to be rooted for them between calls.
func (c *Context) Roots() []Value {
	roots := c.Symbols.Roots()
	roots = append(roots, c.IPort, c.OPort, c.EPort, c.GlobalEnv, c.QuoteSymbol)
	return roots
}

// Read parses one datum from p using this context's symbol table and
// heap.
func (c *Context) Read(p *Port) (Value, error) {
	return c.reader.Read(p)
}
