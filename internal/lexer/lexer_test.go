package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cquaid/libpancl/internal/panclh"
)

// sliceSource is the simplest possible Source: it hands out whatever is
// left of a byte slice and reports end-of-input with (0, nil).
type sliceSource struct {
	data []byte
}

func (s *sliceSource) Next(store []byte) (int, error) {
	n := copy(store, s.data)
	s.data = s.data[n:]
	return n, nil
}

func newLexer(t *testing.T, src string) *Lexer {
	t.Helper()
	return New(&sliceSource{data: []byte(src)}, 0)
}

// scanAll drains the lexer, returning every token up to and including Eof.
// A lexer error (the Error token kind) stops the scan and is returned
// separately.
func scanAll(t *testing.T, lex *Lexer) ([]Token, error) {
	t.Helper()
	var toks []Token
	for {
		tok, err := lex.NextToken()
		if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
		if tok.Kind == panclh.Eof {
			return toks, nil
		}
	}
}

func TestPunctuation(t *testing.T) {
	toks, err := scanAll(t, newLexer(t, "[](){}=,"))
	require.NoError(t, err)
	kinds := make([]panclh.TokenKind, len(toks))
	for i, tok := range toks {
		kinds[i] = tok.Kind
	}
	require.Equal(t, []panclh.TokenKind{
		panclh.LBracket, panclh.RBracket,
		panclh.LParen, panclh.RParen,
		panclh.LBrace, panclh.RBrace,
		panclh.Equals, panclh.Comma,
		panclh.Eof,
	}, kinds)
}

// TestNewlineEquivalence covers the universal property from spec.md
// section 8: \n, \r\n and \r all count as a single newline and advance
// the line counter identically.
func TestNewlineEquivalence(t *testing.T) {
	for name, src := range map[string]string{
		"lf":   "a\nb",
		"crlf": "a\r\nb",
		"cr":   "a\rb",
	} {
		t.Run(name, func(t *testing.T) {
			toks, err := scanAll(t, newLexer(t, src))
			require.NoError(t, err)
			require.Len(t, toks, 4) // "a", newline, "b", eof
			require.Equal(t, panclh.RawIdent, toks[0].Kind)
			require.Equal(t, panclh.Position{Line: 0, Column: 0}, toks[0].Pos)
			require.Equal(t, panclh.Newline, toks[1].Kind)
			require.Equal(t, panclh.RawIdent, toks[2].Kind)
			require.Equal(t, panclh.Position{Line: 1, Column: 0}, toks[2].Pos)
		})
	}
}

func TestComment(t *testing.T) {
	toks, err := scanAll(t, newLexer(t, "# a comment\nx"))
	require.NoError(t, err)
	require.Equal(t, []panclh.TokenKind{panclh.Comment, panclh.Newline, panclh.RawIdent, panclh.Eof},
		[]panclh.TokenKind{toks[0].Kind, toks[1].Kind, toks[2].Kind, toks[3].Kind})
}

func TestCommentEscapedNewline(t *testing.T) {
	_, err := scanAll(t, newLexer(t, "# oops \\\nmore"))
	require.Error(t, err)
	ce, ok := err.(*panclh.CodedError)
	require.True(t, ok)
	require.Equal(t, panclh.CommentEscapedNewline, ce.Code)
}

func TestIdentClassification(t *testing.T) {
	cases := []struct {
		src  string
		kind panclh.TokenKind
	}{
		{"true", panclh.True},
		{"false", panclh.False},
		{"0b1010", panclh.IntBin},
		{"-0b11", panclh.IntBin},
		{"007", panclh.IntDec},
		{"-123", panclh.IntDec},
		{"0x1F", panclh.IntHex},
		{"0o17", panclh.IntOct},
		{"1.5", panclh.Float},
		{".5", panclh.Float},
		{"1e10", panclh.Float},
		{"1.5e-3", panclh.Float},
		{"Inf", panclh.Float},
		{"-Inf", panclh.Float},
		{"+NaN", panclh.Float},
		{"NaN", panclh.Float},
		{"hello_world", panclh.RawIdent},
		{"::Uint8", panclh.RawIdent},
		{"a.b.c", panclh.RawIdent},
	}
	for _, c := range cases {
		t.Run(c.src, func(t *testing.T) {
			toks, err := scanAll(t, newLexer(t, c.src))
			require.NoError(t, err)
			require.Equal(t, c.kind, toks[0].Kind)
			require.Equal(t, c.src, toks[0].Text)
		})
	}
}

func TestStringBasic(t *testing.T) {
	toks, err := scanAll(t, newLexer(t, `"hello"`))
	require.NoError(t, err)
	require.Equal(t, panclh.String, toks[0].Kind)
	require.Equal(t, "hello", toks[0].Text)
}

func TestStringEscapes(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want string
	}{
		{"named", `"a\tb\nc"`, "a\tb\nc"},
		{"hex", `"\x41\x7"`, "A\x07"},
		{"unicode4", `"\` + `u00e9"`, "é"},
		{"unicode8", `"\U0001F600"`, "\U0001F600"},
		{"octal", `"\101\1"`, "A\x01"},
		{"backslash-newline-splice", "\"a\\\nb\"", "ab"},
		{"bare-newline-canonicalized", "'a\rb'", "a\nb"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			toks, err := scanAll(t, newLexer(t, c.src))
			require.NoError(t, err)
			require.Equal(t, panclh.String, toks[0].Kind)
			require.Equal(t, c.want, toks[0].Text)
		})
	}
}

func TestStringRawQuoteUnknownEscapePassesThrough(t *testing.T) {
	toks, err := scanAll(t, newLexer(t, `'\q'`))
	require.NoError(t, err)
	require.Equal(t, panclh.String, toks[0].Kind)
	require.Equal(t, `\q`, toks[0].Text)
}

func TestStringUnknownEscapeErrorsInDoubleQuoted(t *testing.T) {
	_, err := scanAll(t, newLexer(t, `"\q"`))
	require.Error(t, err)
	ce, ok := err.(*panclh.CodedError)
	require.True(t, ok)
	require.Equal(t, panclh.UnknownEscape, ce.Code)
}

func TestStringOctalEscapeDomain(t *testing.T) {
	_, err := scanAll(t, newLexer(t, `"\777"`))
	require.Error(t, err)
	ce, ok := err.(*panclh.CodedError)
	require.True(t, ok)
	require.Equal(t, panclh.OctalEscapeDomain, ce.Code)
}

func TestStringHexEscapeShort(t *testing.T) {
	_, err := scanAll(t, newLexer(t, `"\x"`))
	require.Error(t, err)
	ce, ok := err.(*panclh.CodedError)
	require.True(t, ok)
	require.Equal(t, panclh.HexEscapeShort, ce.Code)
}

func TestStringUEscapeShort(t *testing.T) {
	_, err := scanAll(t, newLexer(t, `"\u12"`))
	require.Error(t, err)
	ce, ok := err.(*panclh.CodedError)
	require.True(t, ok)
	require.Equal(t, panclh.UEscapeShort, ce.Code)
}

func TestStringUUEscapeShort(t *testing.T) {
	_, err := scanAll(t, newLexer(t, `"\U1234"`))
	require.Error(t, err)
	ce, ok := err.(*panclh.CodedError)
	require.True(t, ok)
	require.Equal(t, panclh.UUEscapeShort, ce.Code)
}

// TestAdjacentStringConcatenation is concrete scenario 4 from spec.md
// section 8: adjacent string literals separated by whitespace or an
// escaped newline concatenate into one lexeme.
func TestAdjacentStringConcatenation(t *testing.T) {
	src := "\"a\\u00e9b\" \"c\" \\\n   \"d\\n\""
	toks, err := scanAll(t, newLexer(t, src))
	require.NoError(t, err)
	require.Equal(t, panclh.String, toks[0].Kind)
	require.Equal(t, "aébcd\n", toks[0].Text)
}

// TestUnterminatedString is concrete scenario 6: an opening quote with no
// closing quote and no newline reports StringShort at the opening quote's
// position.
func TestUnterminatedString(t *testing.T) {
	_, err := scanAll(t, newLexer(t, `"abc`))
	require.Error(t, err)
	ce, ok := err.(*panclh.CodedError)
	require.True(t, ok)
	require.Equal(t, panclh.StringShort, ce.Code)
	require.Equal(t, panclh.Position{Line: 0, Column: 0}, ce.Position)
}

// TestPushback covers the lexer's pushback-fidelity guarantee (spec.md
// section 8): a pushed-back token is handed back byte-for-byte before any
// new input is read.
func TestPushback(t *testing.T) {
	lex := newLexer(t, "a b")
	first, err := lex.NextToken()
	require.NoError(t, err)
	require.Equal(t, "a", first.Text)

	lex.PushBack(first)
	again, err := lex.NextToken()
	require.NoError(t, err)
	require.Equal(t, first, again)

	second, err := lex.NextToken()
	require.NoError(t, err)
	require.Equal(t, "b", second.Text)
}

func TestSubtypes(t *testing.T) {
	require.True(t, Token{Kind: panclh.RawIdent}.IsIdentLike())
	require.True(t, Token{Kind: panclh.String}.IsIdentLike())
	require.True(t, Token{Kind: panclh.True}.IsIdentLike())
	require.False(t, Token{Kind: panclh.IntDec}.IsIdentLike())

	require.True(t, Token{Kind: panclh.Newline}.IsNewlineLike())
	require.True(t, Token{Kind: panclh.Comment}.IsNewlineLike())
	require.False(t, Token{Kind: panclh.Eof}.IsNewlineLike())
}
