package process

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"
)

func TestRelay(t *testing.T) {
	tests := []struct {
		name string
		in   string
		fn   Transform
		want string
	}{
		{"passthrough", "a\nb\n", nil, "a\nb\n"},
		{"prefix", "a\nb\n", Prefix("│ "), "│ a\n│ b\n"},
		{"no trailing newline", "a\nb", Prefix("> "), "> a\n> b"},
		{"crlf", "a\r\nb\r\n", nil, "a\nb\n"},
		{"empty lines kept", "a\n\nb\n", Prefix("> "), "> a\n> \n> b\n"},
		{"empty input", "", Prefix("> "), ""},
		{"carriage return redraw", "10%\r20%\r\ndone\n", Prefix("> "), "> 10%\r> 20%\n> done\n"},
		{"lone trailing cr", "50%\r", nil, "50%\r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			if err := Relay(&out, strings.NewReader(tt.in), tt.fn); err != nil {
				t.Fatalf("Relay() error = %v", err)
			}
			if out.String() != tt.want {
				t.Errorf("Relay() wrote %q, want %q", out.String(), tt.want)
			}
		})
	}
}

func TestRelay_LongLine(t *testing.T) {
	long := strings.Repeat("x", 1<<20)
	var out bytes.Buffer
	if err := Relay(&out, strings.NewReader(long+"\n"), nil); err != nil {
		t.Fatalf("Relay() error = %v", err)
	}
	if out.Len() != len(long)+1 {
		t.Errorf("Relay() wrote %d bytes, want %d", out.Len(), len(long)+1)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestRelay_WriteError(t *testing.T) {
	err := Relay(failingWriter{}, strings.NewReader("a\n"), nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Relay() error = %v, want write error", err)
	}
}

func TestRelay_SplitReads(t *testing.T) {
	in := "a\r\nbc\rde\n\nf"
	want := "> a\n> bc\r> de\n> \n> f"

	var out bytes.Buffer
	if err := Relay(&out, iotest.OneByteReader(strings.NewReader(in)), Prefix("> ")); err != nil {
		t.Fatalf("Relay() error = %v", err)
	}
	if out.String() != want {
		t.Errorf("Relay() wrote %q, want %q", out.String(), want)
	}
}

func TestRelay_PartialLineBeforeEOF(t *testing.T) {
	pr, pw := io.Pipe()
	got := make(chan string, 1)
	dst := writerFunc(func(p []byte) (int, error) {
		got <- string(p)
		return len(p), nil
	})

	done := make(chan error, 1)
	go func() { done <- Relay(dst, pr, Prefix("| ")) }()

	go func() { _, _ = pw.Write([]byte("fetching")) }()
	if s := <-got; s != "| fetching" {
		t.Errorf("first write = %q, want %q", s, "| fetching")
	}
	_ = pw.Close()
	if err := <-done; err != nil {
		t.Errorf("Relay() error = %v", err)
	}
}

type writerFunc func([]byte) (int, error)

func (f writerFunc) Write(p []byte) (int, error) { return f(p) }

// countingReader yields n bytes of newline-terminated lines and records reads.
type countingReader struct {
	left int
	read int
}

func (r *countingReader) Read(p []byte) (int, error) {
	if r.left == 0 {
		return 0, io.EOF
	}
	n := min(len(p), r.left)
	for i := range p[:n] {
		p[i] = 'x'
		if i%80 == 79 {
			p[i] = '\n'
		}
	}
	r.left -= n
	r.read += n
	return n, nil
}

func TestRelay_DrainsSourceAfterWriteError(t *testing.T) {
	src := &countingReader{left: 2 << 20}
	err := Relay(failingWriter{}, src, nil)
	if err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("Relay() error = %v, want write error", err)
	}
	if src.read != 2<<20 {
		t.Errorf("read %d bytes, want the whole source (%d)", src.read, 2<<20)
	}
}
