package lexer

import "github.com/cquaid/libpancl/internal/panclh"

// DefaultBufferSize is the refill buffer's default window size (spec.md
// section 6).
const DefaultBufferSize = 8192

// window is the refill buffer: it owns a fixed-size byte slice, a cursor
// into the unread portion, and retains a trailing partial codepoint
// across refills the way spec.md section 4.1 describes.
//
// Grounded on the teacher's yaml_parser_update_buffer (readerc.go): move
// the unread tail to the front, then offer the rest of the window to the
// source, calling it again only while fewer bytes than requested are
// available and the source is not exhausted.
type window struct {
	source Source
	data   []byte
	pos    int // cursor; data[pos:n] is unread
	n      int // valid bytes in data
	eof    bool
	size   int
}

func newWindow(source Source, size int) *window {
	if size <= 0 {
		size = DefaultBufferSize
	}
	return &window{source: source, data: make([]byte, size), size: size}
}

// ensure guarantees that at least total bytes are available starting at
// the cursor, refilling from the source as needed. It returns
// panclh.EndOfInput when there is nothing left to read and nothing
// pending (a clean end-of-input), or panclh.Utf8Truncated when some
// unread bytes were already pending (tail > 0) and the source ran out
// before total bytes accumulated.
func (w *window) ensure(total int) error {
	if w.n-w.pos >= total {
		return nil
	}
	tail := w.n - w.pos
	if w.eof {
		if tail > 0 {
			return panclh.NewError(panclh.Utf8Truncated, panclh.Position{}, "", "truncated multi-byte sequence at end of input")
		}
		return panclh.NewError(panclh.EndOfInput, panclh.Position{}, "", "")
	}

	if tail > 0 {
		copy(w.data[0:tail], w.data[w.pos:w.n])
	}
	w.pos = 0
	w.n = tail

	for w.n < total && w.n < w.size && !w.eof {
		read, err := w.source.Next(w.data[w.n:w.size])
		if err != nil {
			return err
		}
		if read == 0 {
			w.eof = true
			break
		}
		w.n += read
	}

	if w.n < total {
		if tail > 0 {
			return panclh.NewError(panclh.Utf8Truncated, panclh.Position{}, "", "truncated multi-byte sequence at end of input")
		}
		return panclh.NewError(panclh.EndOfInput, panclh.Position{}, "", "")
	}
	return nil
}

// byteAt returns the byte `offset` positions past the cursor. The caller
// must have ensured offset+1 bytes are available.
func (w *window) byteAt(offset int) byte { return w.data[w.pos+offset] }

// slice returns a view of n bytes starting `offset` positions past the
// cursor. The caller must have ensured offset+n bytes are available.
func (w *window) slice(offset, n int) []byte { return w.data[w.pos+offset : w.pos+offset+n] }

// consume advances the cursor by n bytes.
func (w *window) consume(n int) { w.pos += n }

// decodeAt decodes the codepoint starting `offset` bytes past the cursor,
// refilling as necessary. It never mutates the cursor.
func (w *window) decodeAt(offset int) (rune, int, error) {
	if err := w.ensure(offset + 1); err != nil {
		return 0, 0, err
	}
	length := SafeLength(w.byteAt(offset))
	if err := w.ensure(offset + length); err != nil {
		return 0, 0, err
	}
	return Decode(w.slice(offset, length))
}
