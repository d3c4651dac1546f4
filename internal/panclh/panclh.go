// Package panclh holds the types shared between the lexer, the numeric
// coercers and the parser: positions, the stable error taxonomy, and the
// token kinds produced by the lexer and consumed by the parser.
//
// It plays the role that the teacher repo's internal/yamlh package plays
// for gopkg.in/yaml.v3: a leaf package of wire types with no behavior of
// its own, imported by everything above it.
package panclh

import "fmt"

// Position is a zero-based (line, column) pair. Every token, value, entry
// and table carries its start position.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// ErrorCode is the stable, numeric error taxonomy from the specification.
// Values are part of the external contract: do not renumber.
type ErrorCode int

const (
	Success    ErrorCode = 0
	EndOfInput ErrorCode = 1

	// General.
	CtxInit    ErrorCode = iota + 8
	Internal
	Alloc
	ArgInvalid
	Overflow

	// Lexer.
	LexerRefill
	CommentEscapedNewline

	// Parser.
	ParserEof
	ParserToken
	ParserTableHeader
	ParserAssignment
	ParserRValue
	ParserArray
	ParserTuple
	ParserInlineTable
	ParserCustomArgs

	ArrayMemberType

	IntLeadingZeros

	StringShort
	HexEscapeShort
	UEscapeShort
	UUEscapeShort
	OctalEscapeDomain
	UnknownEscape

	Utf16Surrogate
	UcsNonchar
	Utf8High
	Utf8Truncated
	Utf8Decode

	StrToIntBase
	StrToIntChar
	StrToIntRange

	OptIntArgCount
	OptIntArg0NotString
	OptIntArg1NotInt
)

var errorCodeNames = map[ErrorCode]string{
	Success:               "Success",
	EndOfInput:            "EndOfInput",
	CtxInit:               "CtxInit",
	Internal:              "Internal",
	Alloc:                 "Alloc",
	ArgInvalid:            "ArgInvalid",
	Overflow:              "Overflow",
	LexerRefill:           "LexerRefill",
	CommentEscapedNewline: "CommentEscapedNewline",
	ParserEof:             "ParserEof",
	ParserToken:           "ParserToken",
	ParserTableHeader:     "ParserTableHeader",
	ParserAssignment:      "ParserAssignment",
	ParserRValue:          "ParserRValue",
	ParserArray:           "ParserArray",
	ParserTuple:           "ParserTuple",
	ParserInlineTable:     "ParserInlineTable",
	ParserCustomArgs:      "ParserCustomArgs",
	ArrayMemberType:       "ArrayMemberType",
	IntLeadingZeros:       "IntLeadingZeros",
	StringShort:           "StringShort",
	HexEscapeShort:        "HexEscapeShort",
	UEscapeShort:          "UEscapeShort",
	UUEscapeShort:         "UUEscapeShort",
	OctalEscapeDomain:     "OctalEscapeDomain",
	UnknownEscape:         "UnknownEscape",
	Utf16Surrogate:        "Utf16Surrogate",
	UcsNonchar:            "UcsNonchar",
	Utf8High:              "Utf8High",
	Utf8Truncated:         "Utf8Truncated",
	Utf8Decode:            "Utf8Decode",
	StrToIntBase:          "StrToIntBase",
	StrToIntChar:          "StrToIntChar",
	StrToIntRange:         "StrToIntRange",
	OptIntArgCount:        "OptIntArgCount",
	OptIntArg0NotString:   "OptIntArg0NotString",
	OptIntArg1NotInt:      "OptIntArg1NotInt",
}

func (c ErrorCode) String() string {
	if s, ok := errorCodeNames[c]; ok {
		return s
	}
	return fmt.Sprintf("ErrorCode(%d)", int(c))
}

// CodedError is the one error shape used throughout the lexer, the
// numeric coercers and the parser: a stable Code, the Position at which
// the deepest frame first detected the problem, and (when available) the
// offending token's text. internal/lexer and internal/numconv return
// *CodedError directly; the root package re-exports it as pancl.Error so
// callers outside this module never import internal/panclh.
type CodedError struct {
	Code     ErrorCode
	Position Position
	Token    string
	Problem  string
}

func NewError(code ErrorCode, pos Position, token, problem string) *CodedError {
	return &CodedError{Code: code, Position: pos, Token: token, Problem: problem}
}

func (e *CodedError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("pancl: %s at %s (token %q): %s", e.Code, e.Position, e.Token, e.Problem)
	}
	return fmt.Sprintf("pancl: %s at %s: %s", e.Code, e.Position, e.Problem)
}

// Is lets callers write errors.Is(err, pancl.ErrEndOfInput) and similar
// against the category sentinels declared in the root package: two
// CodedErrors are "the same" for errors.Is purposes when they share a
// Code and the target carries no position/problem text (i.e. it is one
// of the category sentinels, not a concrete instance).
func (e *CodedError) Is(target error) bool {
	sentinel, ok := target.(*CodedError)
	if !ok {
		return false
	}
	return sentinel.Code == e.Code && sentinel.Problem == "" && sentinel.Token == ""
}

// TokenKind identifies the lexical class of a Token.
type TokenKind int

const (
	NoToken TokenKind = iota

	LBracket // [
	RBracket // ]
	LParen   // (
	RParen   // )
	LBrace   // {
	RBrace   // }
	Equals   // =
	Comma    // ,

	Newline
	Comment
	Eof
	Error

	RawIdent
	String
	IntBin
	IntDec
	IntHex
	IntOct
	Float
	True
	False

	// Unset is an internal sentinel kind that the lexer never produces.
	// The lexer's and parser's pushback slots mark "nothing pushed back"
	// with a nil pointer, not with Unset.
	Unset
)

var tokenKindNames = [...]string{
	NoToken:  "NoToken",
	LBracket: "LBracket",
	RBracket: "RBracket",
	LParen:   "LParen",
	RParen:   "RParen",
	LBrace:   "LBrace",
	RBrace:   "RBrace",
	Equals:   "Equals",
	Comma:    "Comma",
	Newline:  "Newline",
	Comment:  "Comment",
	Eof:      "Eof",
	Error:    "Error",
	RawIdent: "RawIdent",
	String:   "String",
	IntBin:   "IntBin",
	IntDec:   "IntDec",
	IntHex:   "IntHex",
	IntOct:   "IntOct",
	Float:    "Float",
	True:     "True",
	False:    "False",
	Unset:    "Unset",
}

func (k TokenKind) String() string {
	if int(k) >= 0 && int(k) < len(tokenKindNames) && tokenKindNames[k] != "" {
		return tokenKindNames[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// TokenSubtype is the four-bit subtype tag mentioned in the specification:
// it marks tokens that may act as identifiers or as newlines, so the
// parser can test "is this an identifier-shaped token" without a type
// switch over every lexeme-bearing kind.
type TokenSubtype uint8

const (
	SubtypeNone TokenSubtype = 0

	// SubtypeIdent marks RawIdent, String, True and False, the
	// identifier-shaped token kinds. The parser itself accepts only
	// RawIdent and String as a table header name or assignment key.
	SubtypeIdent TokenSubtype = 1 << 0

	// SubtypeNewline marks Newline and Comment: anything that terminates
	// a top-level assignment or is skippable inside a bracketed body.
	SubtypeNewline TokenSubtype = 1 << 1
)

// SubtypeOf returns the subtype bits for a given token kind.
func SubtypeOf(k TokenKind) TokenSubtype {
	switch k {
	case RawIdent, String, True, False:
		return SubtypeIdent
	case Newline, Comment:
		return SubtypeNewline
	default:
		return SubtypeNone
	}
}
