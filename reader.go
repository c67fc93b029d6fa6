package simp

// vsFrame is one entry of the vector-stack: the 4-tuple (parent, nmemb,
// isList, next) from lib/simp.c's simp_read, kept as a Go struct instead
// of a heap-allocated vector (Design Notes §9 permits an arena/slice
// equivalent of the original's intrusive structures).
type vsFrame struct {
	parent    Value // Nil() if this vector is being spliced at top level
	nmemb     int
	isList    bool // true for "(" ... ")", false for "[" ... "]"
	wantParen bool // delimiter kind expected to close this frame
	dotted    bool // a '.' was consumed while this frame was on top
}

// Reader implements simp_read's iterative, two-stack S-expression
// reader: readStack accumulates completed sub-objects, vectorStack
// tracks the vector currently being built at each nesting level. Both
// are local to each Read call and start empty every time.
type Reader struct {
	ctx *Context
}

// NewReader creates a reader that interns symbols and allocates vectors
// through ctx's heap and symbol table.
func NewReader(ctx *Context) *Reader { return &Reader{ctx: ctx} }

// Read parses one complete datum from p, or returns EOF() at end of
// input. A malformed program surfaces as a *simpleError with ErrSyntax
// or ErrUnexpectedEOF, per spec.md §7.
func (rd *Reader) Read(p *Port) (Value, error) {
	var readStack []Value
	var vectorStack []vsFrame
	prevTok := tokDot

	for len(readStack) == 0 || len(vectorStack) != 0 {
		tok, err := nextToken(p)
		if err != nil {
			return Value{}, err
		}

		topIsList := len(vectorStack) == 0 || vectorStack[len(vectorStack)-1].isList
		topDotted := len(vectorStack) != 0 && vectorStack[len(vectorStack)-1].dotted
		if topIsList && !topDotted && tok.kind != tokDot && tok.kind != tokEOF &&
			prevTok != tokLParen && prevTok != tokLBrace && prevTok != tokDot {
			newVirtualVector(rd.ctx.Heap, &readStack, &vectorStack)
		}

		switch tok.kind {
		case tokEOF:
			if len(readStack) != 0 {
				return Value{}, newUnexpectedEOFError("input ended inside an open list, at line %d", p.Line())
			}
			return EOF(), nil
		case tokLParen:
			gotLDelim(&readStack, &vectorStack, true)
		case tokLBrace:
			gotLDelim(&readStack, &vectorStack, false)
		case tokRParen:
			if err := gotRDelim(rd.ctx.Heap, &readStack, &vectorStack, true, p); err != nil {
				return Value{}, err
			}
		case tokRBrace:
			if err := gotRDelim(rd.ctx.Heap, &readStack, &vectorStack, false, p); err != nil {
				return Value{}, err
			}
		case tokQuote:
			datum, err := rd.Read(p)
			if err != nil {
				return Value{}, err
			}
			if datum.IsEOF() {
				return Value{}, newUnexpectedEOFError("expected a datum after ', at line %d", p.Line())
			}
			quoted := rd.ctx.Heap.Cons(rd.ctx.QuoteSymbol, rd.ctx.Heap.Cons(datum, Nil()))
			gotObject(&readStack, &vectorStack, quoted)
		case tokIdentifier:
			gotObject(&readStack, &vectorStack, rd.ctx.Symbols.Intern(tok.text))
		case tokString:
			gotObject(&readStack, &vectorStack, rd.ctx.Heap.MakeString(tok.text))
		case tokNumber:
			num, err := parseNumberToken(tok.text)
			if err != nil {
				return Value{}, err
			}
			gotObject(&readStack, &vectorStack, num)
		case tokDot:
			if len(vectorStack) == 0 {
				return Value{}, newSyntaxError("unexpected '.' at line %d", p.Line())
			}
			// Once the dotted cdr's datum is read, the delimiter that
			// closes this frame must finalize the existing 2-slot cell
			// rather than being treated as one more list element.
			vectorStack[len(vectorStack)-1].dotted = true
		case tokError:
			return Value{}, newSyntaxError("malformed token at line %d", p.Line())
		}
		prevTok = tok.kind
	}
	return readStack[0], nil
}

func fillVector(h *Heap, readStack *[]Value, n int) Value {
	if n == 0 {
		return Nil()
	}
	rs := *readStack
	items := append([]Value(nil), rs[len(rs)-n:]...)
	*readStack = rs[:len(rs)-n]
	return h.MakeVector(items)
}

func gotObject(readStack *[]Value, vectorStack *[]vsFrame, obj Value) {
	*readStack = append(*readStack, obj)
	if n := len(*vectorStack); n > 0 {
		(*vectorStack)[n-1].nmemb++
	}
}

func gotLDelim(readStack *[]Value, vectorStack *[]vsFrame, isParens bool) {
	*readStack = append(*readStack, Nil())
	if n := len(*vectorStack); n > 0 {
		(*vectorStack)[n-1].nmemb++
	}
	*vectorStack = append(*vectorStack, vsFrame{parent: Nil(), isList: isParens, wantParen: isParens})
}

func gotRDelim(h *Heap, readStack *[]Value, vectorStack *[]vsFrame, isParen bool, p *Port) error {
	n := len(*vectorStack)
	if n == 0 {
		return newSyntaxError("unexpected closing delimiter at line %d", p.Line())
	}
	top := (*vectorStack)[n-1]
	*vectorStack = (*vectorStack)[:n-1]
	if top.wantParen != isParen {
		return newSyntaxError("mismatched delimiter at line %d", p.Line())
	}
	if top.nmemb == 0 {
		return nil
	}
	vector := fillVector(h, readStack, top.nmemb)
	spliceVector(readStack, top.parent, vector)
	return nil
}

// newVirtualVector flattens "the rest of the list so far" into a nested
// 2-element vector [item, restOfList], implementing the right-associated
// pair chain a proper list is built from. This is simp_read's
// newvirtualvector(), ported from its cons-list bookkeeping to the
// slice-based readStack/vectorStack used here.
func newVirtualVector(h *Heap, readStack *[]Value, vectorStack *[]vsFrame) {
	*readStack = append(*readStack, Nil())
	top := &(*vectorStack)[len(*vectorStack)-1]
	parent := top.parent
	top.nmemb++
	newcnt := top.nmemb
	vector := fillVector(h, readStack, newcnt)
	*vectorStack = (*vectorStack)[:len(*vectorStack)-1]
	spliceVector(readStack, parent, vector)
	*vectorStack = append(*vectorStack, vsFrame{parent: vector, isList: true, wantParen: true})
}

// spliceVector installs vector as the new value of either the top of
// readStack (when parent is Nil, meaning "splice at this nesting level")
// or the last slot of parent (when continuing a virtual-vector chain).
func spliceVector(readStack *[]Value, parent Value, vector Value) {
	if parent.IsNil() {
		rs := *readStack
		rs[len(rs)-1] = vector
		return
	}
	items := parent.GetVector()
	items[len(items)-1] = vector
}
