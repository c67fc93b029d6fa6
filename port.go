package simp

import (
	"bufio"
	"io"
)

// Port wraps a byte source or sink the way simp.h's opaque `Port` type
// does: readbyte/peekbyte/unreadbyte for input, putbyte for output, plus
// sticky eof/err flags and a line counter the reader uses in syntax
// error messages.
type Port struct {
	r    *bufio.Reader
	w    io.Writer
	eof  bool
	err  error
	line int

	unread  bool
	pending byte
}

// NewInputPort wraps r as a readable port.
func NewInputPort(r io.Reader) *Port {
	return &Port{r: bufio.NewReader(r), line: 1}
}

// NewOutputPort wraps w as a writable port.
func NewOutputPort(w io.Writer) *Port {
	return &Port{w: w}
}

// ReadByte returns the next byte, or ok=false once EOF or an error has
// been reached; check IsEOF/IsErr to tell the two apart.
func (p *Port) ReadByte() (b byte, ok bool) {
	if p.unread {
		p.unread = false
		if p.pending == '\n' {
			p.line++
		}
		return p.pending, true
	}
	if p.r == nil || p.eof || p.err != nil {
		return 0, false
	}
	c, err := p.r.ReadByte()
	if err != nil {
		if err == io.EOF {
			p.eof = true
		} else {
			p.err = err
		}
		return 0, false
	}
	if c == '\n' {
		p.line++
	}
	return c, true
}

// PeekByte returns the next byte without consuming it.
func (p *Port) PeekByte() (b byte, ok bool) {
	b, ok = p.ReadByte()
	if ok {
		p.UnreadByte(b)
	}
	return b, ok
}

// UnreadByte pushes b back so the next ReadByte returns it again. Only
// one byte of pushback is supported, matching the reader's one-token
// lookahead needs.
func (p *Port) UnreadByte(b byte) {
	if b == '\n' && p.line > 1 {
		p.line--
	}
	p.pending = b
	p.unread = true
}

// WriteByte writes a single byte to an output port.
func (p *Port) WriteByte(b byte) error {
	if p.w == nil {
		return newPortError("port is not open for output")
	}
	_, err := p.w.Write([]byte{b})
	if err != nil {
		p.err = err
	}
	return err
}

// WriteString writes s to an output port.
func (p *Port) WriteString(s string) error {
	if p.w == nil {
		return newPortError("port is not open for output")
	}
	_, err := io.WriteString(p.w, s)
	if err != nil {
		p.err = err
	}
	return err
}

// IsEOF reports whether the port has hit end-of-input.
func (p *Port) IsEOF() bool { return p.eof }

// IsErr reports whether the port has recorded an I/O error.
func (p *Port) IsErr() bool { return p.err != nil }

// Line returns the current 1-based line number, for syntax error
// messages raised by the reader.
func (p *Port) Line() int { return p.line }
