package simp

// symbolTableSize and symbolTableMult are the bucket count and
// polynomial-hash multiplier from context.c's simp_contextintern: a
// classic 389-bucket (prime) table hashed as h = h*37 + byte.
const (
	symbolTableSize = 389
	symbolTableMult = 37
)

// SymbolTable interns symbol names so that two symbols with equal bytes
// are always the identical heap value, which lets evaluator lookups use
// pointer identity (Same) instead of a byte-wise compare. Design Notes
// §9 allows a hash table in place of the original's per-bucket cons
// list; buckets here are plain slices of already-interned symbols.
type SymbolTable struct {
	heap    *Heap
	buckets [symbolTableSize][]Value
}

// NewSymbolTable creates an empty symbol table backed by h.
func NewSymbolTable(h *Heap) *SymbolTable {
	return &SymbolTable{heap: h}
}

func bucketFor(name []byte) int {
	bucket := 0
	for _, b := range name {
		bucket = bucket*symbolTableMult + int(b)
	}
	bucket %= symbolTableSize
	if bucket < 0 {
		bucket += symbolTableSize
	}
	return bucket
}

// Intern returns the unique symbol value for name, allocating a new one
// the first time name is seen and returning the existing one on every
// subsequent call.
func (t *SymbolTable) Intern(name []byte) Value {
	bucket := bucketFor(name)
	for _, sym := range t.buckets[bucket] {
		if string(sym.GetBytes()) == string(name) {
			return sym
		}
	}
	cp := make([]byte, len(name))
	copy(cp, name)
	sym := t.heap.makeRawSymbol(cp)
	t.buckets[bucket] = append(t.buckets[bucket], sym)
	return sym
}

// InternString is a convenience wrapper around Intern for Go strings.
func (t *SymbolTable) InternString(name string) Value {
	return t.Intern([]byte(name))
}

// Roots returns every interned symbol, so the collector never reclaims
// a symbol that is merely unreferenced by environments at the moment —
// symbols, like the original's symtab vector, live for the lifetime of
// the context.
func (t *SymbolTable) Roots() []Value {
	var out []Value
	for _, bucket := range t.buckets {
		out = append(out, bucket...)
	}
	return out
}
