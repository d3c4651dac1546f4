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
	"strconv"

	"github.com/cquaid/libpancl/internal/lexer"
	"github.com/cquaid/libpancl/internal/numconv"
	"github.com/cquaid/libpancl/internal/panclh"
)

// Parser is a table-by-table recursive-descent reader over a token stream
// (spec.md section 4.5). It is single-threaded and non-reentrant: no
// method is safe to call concurrently with another.
//
// Grounded on the teacher's parserc.go: a mutable cursor (here, the
// embedded lexer plus one pushback slot) threaded through small
// recursive-descent helpers, one per grammar production.
type Parser struct {
	lex     *lexer.Lexer
	pending *lexer.Token
	atEnd   bool

	maxDepth int
	depth    int

	errPos panclh.Position
	errTok string
}

func newParser(lex *lexer.Lexer, maxDepth int) *Parser {
	return &Parser{lex: lex, maxDepth: maxDepth}
}

// enterNesting and leaveNesting bracket every RValue production that can
// contain nested RValues (Array, Tuple, InlineTable, Custom's Tuple).
// maxDepth of zero means unbounded.
func (p *Parser) enterNesting(pos Position) error {
	p.depth++
	if p.maxDepth > 0 && p.depth > p.maxDepth {
		return p.errAt(panclh.Overflow, pos, "", "maximum table/container nesting depth exceeded")
	}
	return nil
}

func (p *Parser) leaveNesting() { p.depth-- }

// ErrorPosition returns the position of the most recent parse error.
func (p *Parser) ErrorPosition() Position { return p.errPos }

// ErrorToken returns the offending token text for the most recent parse
// error, when one was captured.
func (p *Parser) ErrorToken() string { return p.errTok }

func (p *Parser) next() (lexer.Token, error) {
	if p.pending != nil {
		t := *p.pending
		p.pending = nil
		return t, nil
	}
	return p.lex.NextToken()
}

func (p *Parser) pushBack(t lexer.Token) {
	cp := t
	p.pending = &cp
}

func (p *Parser) fail(err error) error {
	if ce, ok := err.(*panclh.CodedError); ok {
		p.errPos = ce.Position
		p.errTok = ce.Token
	}
	return err
}

func (p *Parser) syntaxErr(code panclh.ErrorCode, tok lexer.Token) error {
	return p.fail(panclh.NewError(code, tok.Pos, tok.Text, "unexpected token"))
}

func (p *Parser) errAt(code panclh.ErrorCode, pos Position, tok, problem string) error {
	return p.fail(panclh.NewError(code, pos, tok, problem))
}

func (p *Parser) wrapNum(err error, tok lexer.Token) error {
	ce, ok := err.(*panclh.CodedError)
	if !ok {
		return p.fail(err)
	}
	return p.fail(panclh.NewError(ce.Code, tok.Pos, tok.Text, ce.Problem))
}

// skipIgnorable consumes Newline and Comment tokens, which are Ignore in
// every bracketed body (array, tuple, inline table), and returns the
// first token that is neither.
func (p *Parser) skipIgnorable() (lexer.Token, error) {
	for {
		tok, err := p.next()
		if err != nil {
			return lexer.Token{}, p.fail(err)
		}
		if tok.Kind == panclh.Newline || tok.Kind == panclh.Comment {
			continue
		}
		return tok, nil
	}
}

// GetNextTable returns one table per call, per spec.md section 4.5's
// top-level table-slicing rule: either a `[header]` table's entries up to
// (not including) the next `[`, or, on the very first call with no
// header yet seen, the root table's entries collected up to the first `[`
// or end-of-input, whichever comes first.
// Once end-of-input has been observed, subsequent calls return
// ErrEndOfInput.
func (p *Parser) GetNextTable() (*Table, error) {
	if p.atEnd {
		return nil, ErrEndOfInput
	}
	tbl, done, err := p.startTable()
	if err != nil || done {
		return tbl, err
	}
	if err := p.collectEntries(tbl); err != nil {
		return nil, err
	}
	return tbl, nil
}

func (p *Parser) startTable() (tbl *Table, done bool, err error) {
	for {
		tok, err := p.next()
		if err != nil {
			return nil, false, p.fail(err)
		}
		switch tok.Kind {
		case panclh.Newline, panclh.Comment:
			continue
		case panclh.Eof:
			// No header and no entries were ever seen for this table
			// slice: the document is empty, or holds only comments and
			// blank lines. The original C parser treats this the same as
			// an already-exhausted context (parse.c checks table->name
			// == NULL && table->data.count == 0) and reports EndOfInput
			// directly instead of handing back a spurious empty table.
			p.atEnd = true
			return nil, true, ErrEndOfInput
		case panclh.LBracket:
			name, err := p.parseTableHeader()
			if err != nil {
				return nil, false, err
			}
			return NewTable(tok.Pos, &name), false, nil
		case panclh.RawIdent, panclh.String:
			p.pushBack(tok)
			return NewTable(tok.Pos, nil), false, nil
		default:
			return nil, false, p.syntaxErr(panclh.ParserToken, tok)
		}
	}
}

// parseTableHeader consumes the body of a TableHeader production; the
// opening '[' has already been read by the caller.
func (p *Parser) parseTableHeader() (Utf8String, error) {
	nameTok, err := p.next()
	if err != nil {
		return Utf8String{}, p.fail(err)
	}
	if nameTok.Kind != panclh.RawIdent && nameTok.Kind != panclh.String {
		return Utf8String{}, p.syntaxErr(panclh.ParserTableHeader, nameTok)
	}
	name := NewUtf8StringFromBytes(nameTok.Text)

	closeTok, err := p.next()
	if err != nil {
		return Utf8String{}, p.fail(err)
	}
	if closeTok.Kind != panclh.RBracket {
		return Utf8String{}, p.syntaxErr(panclh.ParserTableHeader, closeTok)
	}

	endTok, err := p.next()
	if err != nil {
		return Utf8String{}, p.fail(err)
	}
	if endTok.Kind != panclh.Newline && endTok.Kind != panclh.Eof {
		return Utf8String{}, p.syntaxErr(panclh.ParserTableHeader, endTok)
	}
	return name, nil
}

// collectEntries reads Assignments into tbl until it meets the next `[`
// (pushed back for the following GetNextTable call) or end-of-input.
func (p *Parser) collectEntries(tbl *Table) error {
	for {
		tok, err := p.next()
		if err != nil {
			return p.fail(err)
		}
		switch tok.Kind {
		case panclh.Newline, panclh.Comment:
			continue
		case panclh.Eof:
			p.atEnd = true
			return nil
		case panclh.LBracket:
			p.pushBack(tok)
			return nil
		case panclh.RawIdent, panclh.String:
			entry, err := p.parseAssignment(tok, true)
			if err != nil {
				return err
			}
			tbl.Append(entry)
		default:
			return p.syntaxErr(panclh.ParserAssignment, tok)
		}
	}
}

// parseAssignment parses '=' RValue following a name token already read
// by the caller. When topLevel is true it also consumes the trailing
// Newline/Eof terminator; inline-table assignments leave their Comma/'}'
// terminator for the caller's body loop to inspect.
func (p *Parser) parseAssignment(nameTok lexer.Token, topLevel bool) (Entry, error) {
	name := NewUtf8StringFromBytes(nameTok.Text)

	eqTok, err := p.next()
	if err != nil {
		return Entry{}, p.fail(err)
	}
	if eqTok.Kind != panclh.Equals {
		return Entry{}, p.syntaxErr(panclh.ParserAssignment, eqTok)
	}

	val, err := p.parseRValue()
	if err != nil {
		return Entry{}, err
	}

	if topLevel {
		if err := p.expectTopLevelTerminator(); err != nil {
			return Entry{}, err
		}
	}
	return Entry{Name: name, Value: val, Pos: nameTok.Pos}, nil
}

func (p *Parser) expectTopLevelTerminator() error {
	for {
		tok, err := p.next()
		if err != nil {
			return p.fail(err)
		}
		switch tok.Kind {
		case panclh.Comment:
			continue
		case panclh.Newline, panclh.Eof:
			return nil
		default:
			return p.syntaxErr(panclh.ParserAssignment, tok)
		}
	}
}

// parseRValue parses any of the RValue alternatives, reading its own
// leading token.
func (p *Parser) parseRValue() (Value, error) {
	tok, err := p.next()
	if err != nil {
		return nil, p.fail(err)
	}
	switch tok.Kind {
	case panclh.String:
		return NewString(tok.Pos, NewUtf8StringFromBytes(tok.Text)), nil
	case panclh.True:
		return NewBool(tok.Pos, true), nil
	case panclh.False:
		return NewBool(tok.Pos, false), nil
	case panclh.IntBin:
		v, err := numconv.Int32(tok.Text, 2)
		if err != nil {
			return nil, p.wrapNum(err, tok)
		}
		return NewInt(tok.Pos, v), nil
	case panclh.IntHex:
		v, err := numconv.Int32(tok.Text, 16)
		if err != nil {
			return nil, p.wrapNum(err, tok)
		}
		return NewInt(tok.Pos, v), nil
	case panclh.IntOct:
		v, err := numconv.Int32(tok.Text, 8)
		if err != nil {
			return nil, p.wrapNum(err, tok)
		}
		return NewInt(tok.Pos, v), nil
	case panclh.IntDec:
		if hasLeadingZeros(tok.Text) {
			return nil, p.errAt(panclh.IntLeadingZeros, tok.Pos, tok.Text, "leading zero in decimal literal")
		}
		v, err := numconv.Int32(tok.Text, 10)
		if err != nil {
			return nil, p.wrapNum(err, tok)
		}
		return NewInt(tok.Pos, v), nil
	case panclh.Float:
		f, ferr := strconv.ParseFloat(tok.Text, 64)
		if ferr != nil {
			return nil, p.errAt(panclh.ParserRValue, tok.Pos, tok.Text, "invalid float literal")
		}
		return NewFloat(tok.Pos, f), nil
	case panclh.LBracket:
		return p.parseArrayBody(tok.Pos)
	case panclh.LParen:
		tup, err := p.parseTupleBody(tok.Pos)
		if err != nil {
			return nil, err
		}
		return tup, nil
	case panclh.LBrace:
		return p.parseInlineTableBody(tok.Pos)
	case panclh.RawIdent:
		return p.parseCustomOrFail(tok)
	default:
		return nil, p.syntaxErr(panclh.ParserRValue, tok)
	}
}

// hasLeadingZeros reports whether a decimal literal's digit run (after an
// optional sign) begins with '0' without being exactly "0" (or "+0"/"-0").
func hasLeadingZeros(text string) bool {
	s := text
	if len(s) > 0 && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return len(s) > 1 && s[0] == '0'
}

// parseCustomOrFail handles the one RValue alternative that needs
// lookahead past a single raw identifier: Custom ::= RawIdent Tuple. A
// RawIdent not immediately followed by '(' is not a valid RValue.
func (p *Parser) parseCustomOrFail(nameTok lexer.Token) (Value, error) {
	next, err := p.next()
	if err != nil {
		return nil, p.fail(err)
	}
	if next.Kind != panclh.LParen {
		p.pushBack(next)
		return nil, p.syntaxErr(panclh.ParserRValue, nameTok)
	}
	args, err := p.parseTupleBody(next.Pos)
	if err != nil {
		return nil, err
	}
	cv := NewCustom(nameTok.Pos, NewUtf8StringFromBytes(nameTok.Text), args)
	rv, err := rewriteCustom(cv)
	if err != nil {
		return nil, err
	}
	return rv, nil
}

// parseArrayBody parses the body of an Array after the opening '[' has
// been consumed, enforcing that every element shares the first element's
// Kind (spec.md section 3, invariant 1).
func (p *Parser) parseArrayBody(openPos Position) (Value, error) {
	if err := p.enterNesting(openPos); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	arr := NewArray(openPos)
	first, err := p.skipIgnorable()
	if err != nil {
		return nil, err
	}
	if first.Kind == panclh.RBracket {
		return arr, nil
	}
	p.pushBack(first)

	for {
		val, err := p.parseRValue()
		if err != nil {
			return nil, err
		}
		if err := arr.Append(val); err != nil {
			return nil, p.errAt(panclh.ArrayMemberType, val.Pos(), "", "array elements must share one type")
		}

		tok, err := p.skipIgnorable()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case panclh.Comma:
			next, err := p.skipIgnorable()
			if err != nil {
				return nil, err
			}
			if next.Kind == panclh.RBracket {
				return arr, nil
			}
			p.pushBack(next)
		case panclh.RBracket:
			return arr, nil
		default:
			return nil, p.syntaxErr(panclh.ParserArray, tok)
		}
	}
}

// parseTupleBody parses the body of a Tuple after the opening '(' has
// been consumed. Elements are heterogeneous.
func (p *Parser) parseTupleBody(openPos Position) (*TupleValue, error) {
	if err := p.enterNesting(openPos); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	tup := NewTuple(openPos)
	first, err := p.skipIgnorable()
	if err != nil {
		return nil, err
	}
	if first.Kind == panclh.RParen {
		return tup, nil
	}
	p.pushBack(first)

	for {
		val, err := p.parseRValue()
		if err != nil {
			return nil, err
		}
		tup.Append(val)

		tok, err := p.skipIgnorable()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case panclh.Comma:
			next, err := p.skipIgnorable()
			if err != nil {
				return nil, err
			}
			if next.Kind == panclh.RParen {
				return tup, nil
			}
			p.pushBack(next)
		case panclh.RParen:
			return tup, nil
		default:
			return nil, p.syntaxErr(panclh.ParserTuple, tok)
		}
	}
}

// parseInlineTableBody parses the body of an InlineTable after the
// opening '{' has been consumed.
func (p *Parser) parseInlineTableBody(openPos Position) (Value, error) {
	if err := p.enterNesting(openPos); err != nil {
		return nil, err
	}
	defer p.leaveNesting()

	tbl := NewTable(openPos, nil)
	first, err := p.skipIgnorable()
	if err != nil {
		return nil, err
	}
	if first.Kind == panclh.RBrace {
		return tbl, nil
	}
	p.pushBack(first)

	for {
		nameTok, err := p.skipIgnorable()
		if err != nil {
			return nil, err
		}
		if nameTok.Kind != panclh.RawIdent && nameTok.Kind != panclh.String {
			return nil, p.syntaxErr(panclh.ParserInlineTable, nameTok)
		}
		entry, err := p.parseAssignment(nameTok, false)
		if err != nil {
			return nil, err
		}
		tbl.Append(entry)

		tok, err := p.skipIgnorable()
		if err != nil {
			return nil, err
		}
		switch tok.Kind {
		case panclh.Comma:
			next, err := p.skipIgnorable()
			if err != nil {
				return nil, err
			}
			if next.Kind == panclh.RBrace {
				return tbl, nil
			}
			p.pushBack(next)
		case panclh.RBrace:
			return tbl, nil
		default:
			return nil, p.syntaxErr(panclh.ParserInlineTable, tok)
		}
	}
}
