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
	"io"

	"github.com/cquaid/libpancl/internal/lexer"
)

// config holds the tunables an Option mutates. The zero value is exactly
// the teacher's default configuration: no custom buffer size, no depth
// limit.
type config struct {
	bufferSize int
	maxDepth   int
}

// Option configures a Context at construction time, following the
// functional-options idiom (grounded on the teacher's yaml.Decoder
// options, apic.go).
type Option func(*config)

// WithBufferSize overrides the refill buffer's window size. The default,
// used when this option is omitted or size is non-positive, is
// lexer.DefaultBufferSize (8192 bytes, per spec.md section 6).
func WithBufferSize(size int) Option {
	return func(c *config) { c.bufferSize = size }
}

// WithMaxTableDepth bounds how deeply arrays, tuples (including a custom
// constructor's argument tuple) and inline tables may nest, counted
// together, before parsing fails with ErrOverflow. Zero (the default)
// means unbounded, matching the original C library's behavior; this
// is a Go-side addition since an unbounded recursive descent over
// attacker-controlled input is a stack-exhaustion risk the C original
// left to the platform stack guard page.
func WithMaxTableDepth(depth int) Option {
	return func(c *config) { c.maxDepth = depth }
}

// Context is a parse context: a single byte source paired with the lexer
// and parser that consume it. Create one with New, ParseFile, ParseBuffer
// or ParseString, then call GetNextTable repeatedly until it returns
// ErrEndOfInput.
//
// A Context is single-threaded and non-reentrant (spec.md section 5): no
// method may be called concurrently with another on the same Context.
type Context struct {
	parser *Parser
	cfg    config
}

// New builds a Context over an arbitrary ByteSource.
func New(source ByteSource, opts ...Option) *Context {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}
	lx := lexer.New(source, cfg.bufferSize)
	return &Context{parser: newParser(lx, cfg.maxDepth), cfg: cfg}
}

// ParseFile builds a Context over an already-open file handle. The caller
// retains ownership of r and is responsible for closing it; PanCL never
// closes a reader it did not open itself, matching the original C
// library's parse_file(file_handle) contract.
func ParseFile(r io.Reader, opts ...Option) *Context {
	return New(NewReaderSource(r), opts...)
}

// ParseBuffer builds a Context over an in-memory document.
func ParseBuffer(data []byte, opts ...Option) *Context {
	return New(NewBytesSource(data), opts...)
}

// ParseString builds a Context over a document held in a string.
func ParseString(data string, opts ...Option) *Context {
	return New(NewStringSource(data), opts...)
}

// GetNextTable returns the next table in the document, or ErrEndOfInput
// once the document is exhausted. See spec.md section 4.5 for the
// table-slicing rule that governs where one call's table ends and the
// next one's begins.
func (c *Context) GetNextTable() (*Table, error) {
	return c.parser.GetNextTable()
}

// ErrorPosition returns the position of the most recent parse error
// returned by GetNextTable.
func (c *Context) ErrorPosition() Position { return c.parser.ErrorPosition() }

// ErrorToken returns the offending token text of the most recent parse
// error, when the error carried one.
func (c *Context) ErrorToken() string { return c.parser.ErrorToken() }

// ParseAll drains the Context, returning every table in document order.
// It stops at the first error, including the expected terminal
// ErrEndOfInput, which it swallows as success.
func (c *Context) ParseAll() ([]*Table, error) {
	var tables []*Table
	for {
		tbl, err := c.GetNextTable()
		if err != nil {
			if ce, ok := err.(*Error); ok && ce.Code == ErrCodeEndOfInput {
				return tables, nil
			}
			return tables, err
		}
		tables = append(tables, tbl)
	}
}
