package process

import (
	"errors"
	"io"
)

// Transform rewrites one line of output. The line has no trailing newline.
type Transform func(line string) string

// Prefix returns a Transform that prepends p to every line.
func Prefix(p string) Transform {
	return func(line string) string {
		return p + line
	}
}

// relayChunk is the read size; a child's partial line is forwarded as soon
// as it arrives rather than held until its newline.
const relayChunk = 32 * 1024

// Relay copies src to dst line by line, passing each line through fn. A nil
// fn copies lines unchanged.
//
// Output is forwarded as it is read, so progress text without a trailing
// newline shows immediately. A line that arrives in pieces is transformed on
// its first piece and the rest is written as-is. "\r\n" becomes "\n"; a lone
// "\r" is kept and starts a new line, which lets spinners redraw in place.
//
// After a write to dst fails, Relay keeps reading src to EOF so the child
// never blocks on a full pipe, then returns the first write error.
func Relay(dst io.Writer, src io.Reader, fn Transform) error {
	rl := &relay{dst: dst, fn: fn, lineStart: true}
	buf := make([]byte, relayChunk)
	for {
		n, err := src.Read(buf)
		if n > 0 {
			rl.feed(buf[:n])
		}
		if err != nil {
			if rl.heldCR {
				rl.write("\r")
			}
			if errors.Is(err, io.EOF) {
				return rl.err
			}
			if rl.err != nil {
				return rl.err
			}
			return err
		}
	}
}

type relay struct {
	dst       io.Writer
	fn        Transform
	lineStart bool  // nothing of the current line written yet
	heldCR    bool  // chunk ended in '\r'; the next byte decides its meaning
	err       error // first write error; later output is discarded
}

func (r *relay) write(s string) {
	if r.err != nil || s == "" {
		return
	}
	_, r.err = io.WriteString(r.dst, s)
}

// text writes a piece of the current line.
func (r *relay) text(s string) {
	if s == "" {
		return
	}
	if r.lineStart && r.fn != nil {
		s = r.fn(s)
	}
	r.lineStart = false
	r.write(s)
}

// end terminates the current line with term. An empty line still gets its
// transform; a bare redraw does not.
func (r *relay) end(term string) {
	if r.lineStart && r.fn != nil && term == "\n" {
		r.write(r.fn(""))
	}
	r.write(term)
	r.lineStart = true
}

func (r *relay) feed(p []byte) {
	if r.heldCR {
		r.heldCR = false
		if p[0] == '\n' {
			r.end("\n")
			p = p[1:]
		} else {
			r.end("\r")
		}
	}

	start := 0
	for i := 0; i < len(p); i++ {
		switch p[i] {
		case '\n':
			r.text(string(p[start:i]))
			r.end("\n")
			start = i + 1
		case '\r':
			r.text(string(p[start:i]))
			start = i + 1
			switch {
			case i+1 == len(p):
				r.heldCR = true
			case p[i+1] == '\n':
				r.end("\n")
				i++
				start = i + 1
			default:
				r.end("\r")
			}
		}
	}
	r.text(string(p[start:]))
}
