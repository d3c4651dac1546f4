//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package pancl

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// ByteSource is the capability the lexer pulls bytes from. It is the
// public Go shape of spec.md section 6's next(store, size) callback: Next
// fills store and reports how many bytes it wrote, signalling end of
// input with (0, nil).
type ByteSource interface {
	Next(store []byte) (int, error)
}

type readerSource struct {
	r io.Reader
}

// NewReaderSource adapts an io.Reader into a ByteSource. Read errors other
// than io.EOF are passed through unchanged; io.EOF becomes the (0, nil)
// end-of-input signal.
func NewReaderSource(r io.Reader) ByteSource {
	return &readerSource{r: r}
}

func (s *readerSource) Next(store []byte) (int, error) {
	n, err := s.r.Read(store)
	if err != nil {
		if err == io.EOF {
			return n, nil
		}
		return n, err
	}
	return n, nil
}

// NewBytesSource adapts an in-memory byte slice into a ByteSource without
// copying it.
func NewBytesSource(data []byte) ByteSource {
	return NewReaderSource(bytes.NewReader(data))
}

// NewStringSource adapts a string into a ByteSource without copying it.
func NewStringSource(data string) ByteSource {
	return NewReaderSource(strings.NewReader(data))
}

// NewTranscodingSource wraps r with enc's decoder so documents written in a
// legacy 8-bit or UTF-16 encoding can be parsed as if they were UTF-8,
// without the lexer itself knowing about any encoding but UTF-8. This has
// no analogue in the original C library, which only ever reads raw UTF-8;
// it is enabled here because the rest of the pack's examples lean on
// golang.org/x/text for exactly this kind of transcoding seam.
func NewTranscodingSource(r io.Reader, enc encoding.Encoding) ByteSource {
	return NewReaderSource(transform.NewReader(r, enc.NewDecoder()))
}
