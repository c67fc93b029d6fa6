package simp

import (
	"fmt"
	"strconv"
)

// Display writes obj's human-readable form to p: strings are printed
// raw, without quotes or escapes. Grounded on io.c/lib/simp.c's
// dowrite/putstr family, cleaned up (the original's writer was an
// unfinished draft — fixnums, pairs and ports were all still `// TODO`
// there) and extended to cover every kind spec.md §3 defines.
func Display(p *Port, obj Value) error {
	return write(p, obj, false)
}

// Write writes obj's external representation to p: strings are quoted and
// escaped, so strings, symbols, fixnums, lists and vectors read back as
// equal values. Bytes and the `#<...>` forms have no reader syntax.
func Write(p *Port, obj Value) error {
	return write(p, obj, true)
}

func write(p *Port, obj Value, quote bool) error {
	switch obj.kind {
	case KindVoid:
		return p.WriteString("#<void>")
	case KindTrue:
		return p.WriteString("#<true>")
	case KindFalse:
		return p.WriteString("#<false>")
	case KindEOF:
		return p.WriteString("#<eof>")
	case KindUndef:
		return p.WriteString("#<undef>")
	case KindNil:
		return p.WriteString("()")
	case KindFixnum:
		return p.WriteString(strconv.FormatInt(obj.num, 10))
	case KindByte:
		return p.WriteString(fmt.Sprintf("#\\x%02x", obj.num))
	case KindReal:
		return p.WriteString(strconv.FormatFloat(obj.real, 'g', -1, 64))
	case KindEmptyString:
		if quote {
			return p.WriteString(`""`)
		}
		return nil
	case KindString:
		return writeString(p, obj.GetBytes(), quote)
	case KindSymbol:
		return p.WriteString(string(obj.GetBytes()))
	case KindVector:
		return writeVectorValue(p, obj, quote)
	case KindPort:
		return p.WriteString(fmt.Sprintf("#<port %p>", obj.obj))
	case KindClosure:
		if obj.obj.data.(*closureData).operative {
			return p.WriteString("#<operative>")
		}
		return p.WriteString("#<procedure>")
	case KindBuiltin:
		return p.WriteString(fmt.Sprintf("#<builtin %s>", builtinTable[obj.num].name))
	case KindEnvironment:
		return p.WriteString("#<environment>")
	case KindException:
		kind, message, _ := obj.GetException()
		return p.WriteString(fmt.Sprintf("#<exception %s: %s>", kind, message))
	default:
		return newIllegalType("cannot write a value of kind %s", obj.kind)
	}
}

func writeString(p *Port, b []byte, quote bool) error {
	if quote {
		if err := p.WriteByte('"'); err != nil {
			return err
		}
	}
	for _, c := range b {
		var esc string
		switch c {
		case '"':
			esc = `\"`
		case '\a':
			esc = `\a`
		case '\b':
			esc = `\b`
		case '\033':
			esc = `\e`
		case '\f':
			esc = `\f`
		case '\n':
			esc = `\n`
		case '\r':
			esc = `\r`
		case '\t':
			esc = `\t`
		case '\v':
			esc = `\v`
		}
		if esc != "" && quote {
			if err := p.WriteString(esc); err != nil {
				return err
			}
			continue
		}
		if quote && (c < 0x20 || c == 0x7f) {
			if err := p.WriteString(fmt.Sprintf("\\%03o", c)); err != nil {
				return err
			}
			continue
		}
		if err := p.WriteByte(c); err != nil {
			return err
		}
	}
	if quote {
		return p.WriteByte('"')
	}
	return nil
}

// writeVectorValue prints a 2-element vector as a (possibly improper)
// list — `(a b . c)` — since that is what cons/list build; any other
// vector length (from a bracketed `[...]` literal or the `vector`/
// `make-vector` builtins) prints in `[e0 e1 ...]` form instead.
func writeVectorValue(p *Port, obj Value, quote bool) error {
	if obj.GetSize() != 2 {
		return writePlainVector(p, obj, quote)
	}
	return writeList(p, obj, quote)
}

func writePlainVector(p *Port, obj Value, quote bool) error {
	if err := p.WriteString("["); err != nil {
		return err
	}
	for i, item := range obj.GetVector() {
		if i > 0 {
			if err := p.WriteByte(' '); err != nil {
				return err
			}
		}
		if err := write(p, item, quote); err != nil {
			return err
		}
	}
	return p.WriteByte(']')
}

// writeList prints obj, a 2-element pair, as the list or dotted pair it
// represents, recursing only on car positions — a proper list is a
// right-leaning chain of pairs, so this walks it iteratively rather
// than recursing with list depth.
func writeList(p *Port, obj Value, quote bool) error {
	if err := p.WriteByte('('); err != nil {
		return err
	}
	first := true
	for {
		if !obj.IsPair() {
			if err := p.WriteString(" . "); err != nil {
				return err
			}
			if err := write(p, obj, quote); err != nil {
				return err
			}
			break
		}
		if !first {
			if err := p.WriteByte(' '); err != nil {
				return err
			}
		}
		first = false
		if err := write(p, obj.Car(), quote); err != nil {
			return err
		}
		obj = obj.Cdr()
		if obj.IsNil() {
			break
		}
	}
	return p.WriteByte(')')
}
