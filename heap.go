package simp

// Heap owns every heap-resident Value and runs the mark-and-sweep
// collector described in spec.md §4.1. It is the Go analogue of the
// C implementation's `struct GC` (gc.c): two intrusive doubly-linked
// lists (`curr`, the live set; `free`, objects staged for reclamation
// during a collection) and a mark color that alternates between +1 and
// -1 so that objects which survive one cycle start the next cycle
// already "unmarked" relative to the new color, with no need to walk
// the whole heap resetting marks.
type Heap struct {
	curr      *heapObject
	free      *heapObject
	mark      int
	count     int
	threshold int
	rootsFn   func() []Value

	collections int
	allocated   int
}

// NewHeap creates an empty heap that triggers a collection once more
// than threshold objects are live. A threshold of 0 disables the
// automatic trigger (collection then only happens when Collect is
// called explicitly, e.g. by the `gc` builtin).
func NewHeap(threshold int) *Heap {
	return &Heap{mark: 1, threshold: threshold}
}

// SetRoots installs the function the collector calls to enumerate the
// root set at the start of a collection. Context wires this up once
// its global environment, ports and symbol table exist.
func (h *Heap) SetRoots(fn func() []Value) { h.rootsFn = fn }

// Stats reports the live object count and number of completed
// collections, mainly for tests and the `gc` builtin's return value.
func (h *Heap) Stats() (live, collections, allocated int) {
	return h.count, h.collections, h.allocated
}

func (h *Heap) alloc(kind ValueKind, data any) Value {
	if h.threshold > 0 && h.count >= h.threshold {
		h.Collect()
	}
	obj := &heapObject{kind: kind, data: data}
	obj.next = h.curr
	if h.curr != nil {
		h.curr.prev = obj
	}
	h.curr = obj
	h.count++
	h.allocated++
	return Value{kind: kind, obj: obj}
}

// MakeString copies b and allocates a string value. The
// empty string is the immediate KindEmptyString singleton, never a
// heap allocation, matching spec.md §3's unification of nil and the
// empty string as zero-size immediates.
func (h *Heap) MakeString(b []byte) Value {
	if len(b) == 0 {
		return emptyStr
	}
	cp := make([]byte, len(b))
	copy(cp, b)
	return h.alloc(KindString, &stringData{bytes: cp})
}

// makeRawSymbol allocates an uninterned symbol value; only symtab.go's
// intern should call this, so that every live symbol with a given name
// is the same heap object.
func (h *Heap) makeRawSymbol(b []byte) Value {
	return h.alloc(KindSymbol, &stringData{bytes: b})
}

// MakeVector allocates a vector wrapping items directly (no copy); the
// zero-length vector is the immediate Nil singleton.
func (h *Heap) MakeVector(items []Value) Value {
	if len(items) == 0 {
		return nilValue
	}
	return h.alloc(KindVector, &vectorData{items: items})
}

// MakeVectorOfSize allocates a fresh vector of n slots, each initialized
// to Undef.
func (h *Heap) MakeVectorOfSize(n int) Value {
	if n == 0 {
		return nilValue
	}
	items := make([]Value, n)
	for i := range items {
		items[i] = undefValue
	}
	return h.alloc(KindVector, &vectorData{items: items})
}

// MakeClosure allocates a closure value. operative selects macro
// semantics (unevaluated operands, caller environment bound to the
// first parameter) over applicative semantics (evaluated operands).
func (h *Heap) MakeClosure(params Value, body []Value, env Value, operative bool) Value {
	return h.alloc(KindClosure, &closureData{params: params, body: body, env: env, operative: operative})
}

// MakeEnvironment allocates a fresh, empty environment frame chained to
// parent (Nil for the top of the chain).
func (h *Heap) MakeEnvironment(parent Value) Value {
	return h.alloc(KindEnvironment, &envData{parent: parent})
}

// MakePort wraps an already-constructed Port as a heap value.
func (h *Heap) MakePort(p *Port) Value {
	return h.alloc(KindPort, p)
}

// children enumerates the heap objects directly reachable from obj's
// payload, used by the collector's worklist walk.
func children(obj *heapObject) []*heapObject {
	var out []*heapObject
	push := func(v Value) {
		if v.obj != nil {
			out = append(out, v.obj)
		}
	}
	switch d := obj.data.(type) {
	case *vectorData:
		for _, it := range d.items {
			push(it)
		}
	case *closureData:
		push(d.params)
		for _, b := range d.body {
			push(b)
		}
		push(d.env)
	case *envData:
		push(d.parent)
		for _, b := range d.bindings {
			push(b.sym)
			push(b.val)
		}
	case *exceptionData:
		push(d.payload)
	}
	return out
}

func (h *Heap) unlinkFromFree(obj *heapObject) {
	if obj.next != nil {
		obj.next.prev = obj.prev
	}
	if obj.prev != nil {
		obj.prev.next = obj.next
	} else if h.free == obj {
		h.free = obj.next
	}
	obj.prev, obj.next = nil, nil
}

func (h *Heap) pushLive(obj *heapObject) {
	obj.next = h.curr
	obj.prev = nil
	if h.curr != nil {
		h.curr.prev = obj
	}
	h.curr = obj
}

// Collect runs one mark-and-sweep cycle: every currently live object is
// moved to the "free" staging list, the root set is traversed with an
// explicit worklist (never recursion, so marking depth is bounded only
// by available Go heap, not call-stack depth — see spec.md Design Notes
// §9), and whatever is left on "free" afterwards is simply dropped,
// letting the Go runtime's own collector reclaim it.
func (h *Heap) Collect() {
	h.free = h.curr
	h.curr = nil

	var worklist []*heapObject
	if h.rootsFn != nil {
		for _, root := range h.rootsFn() {
			if root.obj != nil {
				worklist = append(worklist, root.obj)
			}
		}
	}

	for len(worklist) > 0 {
		n := len(worklist) - 1
		obj := worklist[n]
		worklist = worklist[:n]
		if obj.mark == h.mark {
			continue
		}
		obj.mark = h.mark
		h.unlinkFromFree(obj)
		h.pushLive(obj)
		worklist = append(worklist, children(obj)...)
	}

	h.free = nil
	h.count = 0
	for o := h.curr; o != nil; o = o.next {
		h.count++
	}
	h.mark *= -1
	h.collections++
}
