// Package lexer implements the PanCL tokenizer: spec.md section 4.4.
//
// Grounded on the teacher's internal/parserc scanner (scannerc.go,
// readerc.go): a mutable cursor threaded through small free-standing
// scan_* helpers, one token of pushback, and position tracking done
// inline as each codepoint is consumed rather than recomputed from
// scratch per token.
package lexer

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/cquaid/libpancl/internal/panclh"
)

var (
	binRe    = regexp.MustCompile(`^[+-]?0[bB][01]+$`)
	decRe    = regexp.MustCompile(`^[+-]?[0-9]+$`)
	hexRe    = regexp.MustCompile(`^[+-]?0[xX][0-9A-Fa-f]+$`)
	octRe    = regexp.MustCompile(`^[+-]?0[oO][0-7]+$`)
	floatRe  = regexp.MustCompile(`^[+-]?(?:[0-9]+\.[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?$|^[+-]?[0-9]+[eE][+-]?[0-9]+$`)
	infNanRe = regexp.MustCompile(`^[+-]?(?:Inf|NaN)$`)
)

func isSpace(r rune) bool { return r == ' ' || r == '\t' }

func isNewlineRune(r rune) bool { return r == '\n' || r == '\r' }

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// isIdentChar implements the identifier character class from spec.md
// section 4.4: [A-Za-z0-9_+\-:.]
func isIdentChar(r rune) bool {
	if r > 127 {
		return false
	}
	b := byte(r)
	switch {
	case b >= 'A' && b <= 'Z', b >= 'a' && b <= 'z', b >= '0' && b <= '9':
		return true
	}
	switch b {
	case '_', '+', '-', ':', '.':
		return true
	}
	return false
}

// Lexer produces a stream of Tokens from a Source, with exactly one token
// of pushback.
type Lexer struct {
	win     *window
	pos     panclh.Position
	pending *Token

	errPos panclh.Position
	errTok string
}

// New builds a Lexer over source with the given refill window size (0
// selects DefaultBufferSize).
func New(source Source, bufferSize int) *Lexer {
	return &Lexer{win: newWindow(source, bufferSize)}
}

// ErrorPosition returns the position at which the most recent error was
// detected.
func (l *Lexer) ErrorPosition() panclh.Position { return l.errPos }

// ErrorToken returns the offending token text for the most recent error,
// when one was available.
func (l *Lexer) ErrorToken() string { return l.errTok }

func (l *Lexer) setErr(pos panclh.Position, tok string) {
	l.errPos = pos
	l.errTok = tok
}

func isEndOfInput(err error) bool {
	ce, ok := err.(*panclh.CodedError)
	return ok && ce.Code == panclh.EndOfInput
}

// peek returns the next codepoint without consuming it.
func (l *Lexer) peek() (rune, error) {
	r, _, err := l.win.decodeAt(0)
	return r, err
}

// peek2 returns the codepoint after the current one, without consuming
// either.
func (l *Lexer) peek2() (rune, error) {
	_, w0, err := l.win.decodeAt(0)
	if err != nil {
		return 0, err
	}
	r, _, err := l.win.decodeAt(w0)
	return r, err
}

// advance consumes exactly one logical codepoint and updates line/column
// tracking. A CRLF pair is consumed and counted as a single newline, per
// spec.md section 4.4.
func (l *Lexer) advance() (rune, error) {
	r, w, err := l.win.decodeAt(0)
	if err != nil {
		return 0, err
	}
	switch r {
	case '\n':
		l.win.consume(w)
		l.pos.Line++
		l.pos.Column = 0
	case '\r':
		nr, nw, nerr := l.win.decodeAt(w)
		if nerr == nil && nr == '\n' {
			l.win.consume(w + nw)
		} else {
			l.win.consume(w)
		}
		l.pos.Line++
		l.pos.Column = 0
	default:
		l.win.consume(w)
		l.pos.Column++
	}
	return r, nil
}

// PushBack returns t to the lexer; the next call to NextToken yields it
// again before reading any new input.
func (l *Lexer) PushBack(t Token) {
	cp := t
	l.pending = &cp
}

// NextToken returns the pushed-back token if one is pending, otherwise
// scans the input for the next token.
func (l *Lexer) NextToken() (Token, error) {
	if l.pending != nil {
		t := *l.pending
		l.pending = nil
		return t, nil
	}
	return l.scan()
}

func simpleTok(kind panclh.TokenKind, pos panclh.Position) Token {
	return Token{Kind: kind, Pos: pos}
}

func (l *Lexer) errTokenAt(pos panclh.Position, text string, err error) (Token, error) {
	l.setErr(pos, text)
	return Token{Kind: panclh.Error, Pos: pos, Text: text}, err
}

func (l *Lexer) scan() (Token, error) {
	for {
		startPos := l.pos
		r, err := l.peek()
		if err != nil {
			if isEndOfInput(err) {
				return simpleTok(panclh.Eof, startPos), nil
			}
			return l.errTokenAt(startPos, "", err)
		}

		switch {
		case isSpace(r):
			l.advance()
			continue

		case r == '\\':
			l.advance()
			nr, nerr := l.peek()
			if nerr == nil && isNewlineRune(nr) {
				l.advance()
				continue
			}
			return l.errTokenAt(startPos, "\\", panclh.NewError(panclh.ParserToken, startPos, "\\",
				"stray backslash not followed by a newline"))

		case isNewlineRune(r):
			l.advance()
			return simpleTok(panclh.Newline, startPos), nil

		case r == '#':
			return l.scanComment(startPos)

		case r == '[':
			l.advance()
			return simpleTok(panclh.LBracket, startPos), nil
		case r == ']':
			l.advance()
			return simpleTok(panclh.RBracket, startPos), nil
		case r == '(':
			l.advance()
			return simpleTok(panclh.LParen, startPos), nil
		case r == ')':
			l.advance()
			return simpleTok(panclh.RParen, startPos), nil
		case r == '{':
			l.advance()
			return simpleTok(panclh.LBrace, startPos), nil
		case r == '}':
			l.advance()
			return simpleTok(panclh.RBrace, startPos), nil
		case r == '=':
			l.advance()
			return simpleTok(panclh.Equals, startPos), nil
		case r == ',':
			l.advance()
			return simpleTok(panclh.Comma, startPos), nil

		case r == '"' || r == '\'':
			return l.scanString(startPos)

		case isIdentChar(r):
			return l.scanIdentOrNumber(startPos)

		default:
			l.advance()
			return l.errTokenAt(startPos, string(r), panclh.NewError(panclh.ParserToken, startPos, string(r),
				"unexpected character"))
		}
	}
}

func (l *Lexer) scanComment(startPos panclh.Position) (Token, error) {
	l.advance() // consume '#'
	sawBackslash := false
	for {
		r, err := l.peek()
		if err != nil {
			if isEndOfInput(err) {
				break
			}
			return l.errTokenAt(startPos, "", err)
		}
		if isNewlineRune(r) {
			if sawBackslash {
				return l.errTokenAt(startPos, "", panclh.NewError(panclh.CommentEscapedNewline, startPos, "",
					"comment terminated by an escaped newline"))
			}
			break
		}
		sawBackslash = r == '\\'
		l.advance()
	}
	return simpleTok(panclh.Comment, startPos), nil
}

func (l *Lexer) scanIdentOrNumber(startPos panclh.Position) (Token, error) {
	var tb TokenBuffer
	for {
		r, err := l.peek()
		if err != nil {
			if isEndOfInput(err) {
				break
			}
			return l.errTokenAt(startPos, tb.String(), err)
		}
		if !isIdentChar(r) {
			break
		}
		tb.AppendByte(byte(r))
		l.advance()
	}
	return classifyIdent(tb.String(), startPos), nil
}

func classifyIdent(s string, pos panclh.Position) Token {
	switch s {
	case "true":
		return Token{Kind: panclh.True, Pos: pos, Text: s}
	case "false":
		return Token{Kind: panclh.False, Pos: pos, Text: s}
	}
	if s == "" {
		return Token{Kind: panclh.RawIdent, Pos: pos, Text: s}
	}
	switch {
	case binRe.MatchString(s):
		return Token{Kind: panclh.IntBin, Pos: pos, Text: s}
	case decRe.MatchString(s):
		return Token{Kind: panclh.IntDec, Pos: pos, Text: s}
	case hexRe.MatchString(s):
		return Token{Kind: panclh.IntHex, Pos: pos, Text: s}
	case octRe.MatchString(s):
		return Token{Kind: panclh.IntOct, Pos: pos, Text: s}
	case floatRe.MatchString(s):
		return Token{Kind: panclh.Float, Pos: pos, Text: s}
	case infNanRe.MatchString(s):
		return Token{Kind: panclh.Float, Pos: pos, Text: s}
	}
	return Token{Kind: panclh.RawIdent, Pos: pos, Text: s}
}

func (l *Lexer) scanString(startPos panclh.Position) (Token, error) {
	var tb TokenBuffer
	quote, _ := l.peek()
	for {
		if err := l.scanStringBody(quote, &tb); err != nil {
			return l.errTokenAt(startPos, tb.String(), err)
		}
		matched, nextQuote, err := l.tryContinueString()
		if err != nil {
			return l.errTokenAt(startPos, tb.String(), err)
		}
		if !matched {
			break
		}
		quote = nextQuote
	}
	return Token{Kind: panclh.String, Pos: startPos, Text: tb.String()}, nil
}

func (l *Lexer) scanStringBody(quote rune, tb *TokenBuffer) error {
	openPos := l.pos
	l.advance() // consume opening quote
	raw := quote == '\''
	for {
		r, err := l.peek()
		if err != nil {
			if isEndOfInput(err) {
				return panclh.NewError(panclh.StringShort, openPos, "", "unterminated string literal")
			}
			return err
		}
		switch {
		case r == quote:
			l.advance()
			return nil
		case isNewlineRune(r):
			l.advance()
			tb.AppendByte('\n')
		case r == '\\':
			l.advance()
			if err := l.scanEscape(raw, tb); err != nil {
				return err
			}
		default:
			if err := tb.AppendRune(r); err != nil {
				return err
			}
			l.advance()
		}
	}
}

func (l *Lexer) scanEscape(raw bool, tb *TokenBuffer) error {
	escPos := l.pos
	r, err := l.peek()
	if err != nil {
		if isEndOfInput(err) {
			return panclh.NewError(panclh.StringShort, escPos, "", "unterminated escape sequence")
		}
		return err
	}
	switch r {
	case 'a':
		tb.AppendByte(0x07)
		l.advance()
		return nil
	case 'b':
		tb.AppendByte('\b')
		l.advance()
		return nil
	case 'f':
		tb.AppendByte('\f')
		l.advance()
		return nil
	case 'n':
		tb.AppendByte('\n')
		l.advance()
		return nil
	case 'r':
		tb.AppendByte('\r')
		l.advance()
		return nil
	case 't':
		tb.AppendByte('\t')
		l.advance()
		return nil
	case 'v':
		tb.AppendByte(0x0B)
		l.advance()
		return nil
	case '\\':
		tb.AppendByte('\\')
		l.advance()
		return nil
	case '\'':
		tb.AppendByte('\'')
		l.advance()
		return nil
	case '"':
		tb.AppendByte('"')
		l.advance()
		return nil
	case '\n', '\r':
		l.advance() // the escaped newline is spliced away entirely
		return nil
	case 'x':
		l.advance()
		return l.scanHexEscape(tb, escPos)
	case 'u':
		l.advance()
		return l.scanUnicodeEscape(tb, escPos, 4, panclh.UEscapeShort)
	case 'U':
		l.advance()
		return l.scanUnicodeEscape(tb, escPos, 8, panclh.UUEscapeShort)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		return l.scanOctalEscape(tb, escPos)
	default:
		if raw {
			tb.AppendByte('\\')
			if err := tb.AppendRune(r); err != nil {
				return err
			}
			l.advance()
			return nil
		}
		l.advance()
		return panclh.NewError(panclh.UnknownEscape, escPos, string(r), "unknown escape sequence")
	}
}

func (l *Lexer) scanHexEscape(tb *TokenBuffer, startPos panclh.Position) error {
	var digits []byte
	for len(digits) < 2 {
		r, err := l.peek()
		if err != nil || !isHexDigit(r) {
			break
		}
		digits = append(digits, byte(r))
		l.advance()
	}
	if len(digits) == 0 {
		return panclh.NewError(panclh.HexEscapeShort, startPos, "", `\x requires one or two hex digits`)
	}
	v, _ := strconv.ParseUint(string(digits), 16, 8)
	tb.AppendByte(byte(v))
	return nil
}

func (l *Lexer) scanUnicodeEscape(tb *TokenBuffer, startPos panclh.Position, n int, shortCode panclh.ErrorCode) error {
	var digits []byte
	for len(digits) < n {
		r, err := l.peek()
		if err != nil || !isHexDigit(r) {
			break
		}
		digits = append(digits, byte(r))
		l.advance()
	}
	if len(digits) != n {
		return panclh.NewError(shortCode, startPos, "", fmt.Sprintf("escape requires exactly %d hex digits", n))
	}
	v, _ := strconv.ParseUint(string(digits), 16, 32)
	return tb.AppendRune(rune(v))
}

func (l *Lexer) scanOctalEscape(tb *TokenBuffer, startPos panclh.Position) error {
	var digits []byte
	for len(digits) < 3 {
		r, err := l.peek()
		if err != nil || r < '0' || r > '7' {
			break
		}
		digits = append(digits, byte(r))
		l.advance()
	}
	v, _ := strconv.ParseUint(string(digits), 8, 32)
	if v > 255 {
		return panclh.NewError(panclh.OctalEscapeDomain, startPos, string(digits), "octal escape out of [0,255]")
	}
	tb.AppendByte(byte(v))
	return nil
}

// tryContinueString looks past whitespace and backslash-newline splices
// for another string-opening quote, without consuming a bare newline or
// any other token (spec.md section 4.4's adjacent-string-concatenation
// rule).
func (l *Lexer) tryContinueString() (matched bool, quote rune, err error) {
	for {
		r, perr := l.peek()
		if perr != nil {
			if isEndOfInput(perr) {
				return false, 0, nil
			}
			return false, 0, perr
		}
		switch {
		case isSpace(r):
			l.advance()
		case r == '\\':
			bsPos := l.pos
			l.advance()
			nr, nerr := l.peek()
			if nerr == nil && isNewlineRune(nr) {
				l.advance()
				continue
			}
			return false, 0, panclh.NewError(panclh.ParserToken, bsPos, "\\", "stray backslash not followed by a newline")
		case r == '"' || r == '\'':
			return true, r, nil
		default:
			return false, 0, nil
		}
	}
}
