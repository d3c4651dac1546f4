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

import "github.com/cquaid/libpancl/internal/panclh"

// ErrorCode is the stable numeric error taxonomy described by the
// specification. It is re-exported from internal/panclh so callers never
// need to import the internal package.
type ErrorCode = panclh.ErrorCode

// The stable error codes. Mirrors spec.md section 6 exactly; do not
// renumber or reuse a value.
const (
	ErrCodeSuccess    = panclh.Success
	ErrCodeEndOfInput = panclh.EndOfInput

	ErrCodeCtxInit    = panclh.CtxInit
	ErrCodeInternal   = panclh.Internal
	ErrCodeAlloc      = panclh.Alloc
	ErrCodeArgInvalid = panclh.ArgInvalid
	ErrCodeOverflow   = panclh.Overflow

	ErrCodeLexerRefill           = panclh.LexerRefill
	ErrCodeCommentEscapedNewline = panclh.CommentEscapedNewline

	ErrCodeParserEof         = panclh.ParserEof
	ErrCodeParserToken       = panclh.ParserToken
	ErrCodeParserTableHeader = panclh.ParserTableHeader
	ErrCodeParserAssignment  = panclh.ParserAssignment
	ErrCodeParserRValue      = panclh.ParserRValue
	ErrCodeParserArray       = panclh.ParserArray
	ErrCodeParserTuple       = panclh.ParserTuple
	ErrCodeParserInlineTable = panclh.ParserInlineTable
	ErrCodeParserCustomArgs  = panclh.ParserCustomArgs

	ErrCodeArrayMemberType = panclh.ArrayMemberType

	ErrCodeIntLeadingZeros = panclh.IntLeadingZeros

	ErrCodeStringShort       = panclh.StringShort
	ErrCodeHexEscapeShort    = panclh.HexEscapeShort
	ErrCodeUEscapeShort      = panclh.UEscapeShort
	ErrCodeUUEscapeShort     = panclh.UUEscapeShort
	ErrCodeOctalEscapeDomain = panclh.OctalEscapeDomain
	ErrCodeUnknownEscape     = panclh.UnknownEscape

	ErrCodeUtf16Surrogate = panclh.Utf16Surrogate
	ErrCodeUcsNonchar     = panclh.UcsNonchar
	ErrCodeUtf8High       = panclh.Utf8High
	ErrCodeUtf8Truncated  = panclh.Utf8Truncated
	ErrCodeUtf8Decode     = panclh.Utf8Decode

	ErrCodeStrToIntBase  = panclh.StrToIntBase
	ErrCodeStrToIntChar  = panclh.StrToIntChar
	ErrCodeStrToIntRange = panclh.StrToIntRange

	ErrCodeOptIntArgCount      = panclh.OptIntArgCount
	ErrCodeOptIntArg0NotString = panclh.OptIntArg0NotString
	ErrCodeOptIntArg1NotInt    = panclh.OptIntArg1NotInt
)

// Error is returned by every fallible operation in this module. It carries
// the stable Code, the Position at which the deepest frame first detected
// the problem, and (when available) the offending token's text.
//
// Stable code-to-message mapping is an external-collaborator concern (see
// spec.md section 1); Error() still renders a readable string so %v and ad
// hoc logging work out of the box, the way the teacher's buildParserError
// produces a free-text problem string alongside its ErrorType.
//
// Error is a re-export of internal/panclh.CodedError: the lexer and the
// numeric coercers build these directly so the parser never has to
// translate between two equivalent error shapes.
type Error = panclh.CodedError

func newError(code ErrorCode, pos Position, token, problem string) *Error {
	return panclh.NewError(code, pos, token, problem)
}

// Category sentinels, one per ErrorCode except Success, usable with
// errors.Is. They carry
// no position/problem text; they exist purely for comparison.
var (
	ErrEndOfInput = &Error{Code: ErrCodeEndOfInput}

	ErrCtxInit    = &Error{Code: ErrCodeCtxInit}
	ErrInternal   = &Error{Code: ErrCodeInternal}
	ErrAlloc      = &Error{Code: ErrCodeAlloc}
	ErrArgInvalid = &Error{Code: ErrCodeArgInvalid}
	ErrOverflow   = &Error{Code: ErrCodeOverflow}

	ErrLexerRefill           = &Error{Code: ErrCodeLexerRefill}
	ErrCommentEscapedNewline = &Error{Code: ErrCodeCommentEscapedNewline}

	ErrParserEof         = &Error{Code: ErrCodeParserEof}
	ErrParserToken       = &Error{Code: ErrCodeParserToken}
	ErrParserTableHeader = &Error{Code: ErrCodeParserTableHeader}
	ErrParserAssignment  = &Error{Code: ErrCodeParserAssignment}
	ErrParserRValue      = &Error{Code: ErrCodeParserRValue}
	ErrParserArray       = &Error{Code: ErrCodeParserArray}
	ErrParserTuple       = &Error{Code: ErrCodeParserTuple}
	ErrParserInlineTable = &Error{Code: ErrCodeParserInlineTable}
	ErrParserCustomArgs  = &Error{Code: ErrCodeParserCustomArgs}

	ErrArrayMemberType = &Error{Code: ErrCodeArrayMemberType}

	ErrIntLeadingZeros = &Error{Code: ErrCodeIntLeadingZeros}

	ErrStringShort       = &Error{Code: ErrCodeStringShort}
	ErrHexEscapeShort    = &Error{Code: ErrCodeHexEscapeShort}
	ErrUEscapeShort      = &Error{Code: ErrCodeUEscapeShort}
	ErrUUEscapeShort     = &Error{Code: ErrCodeUUEscapeShort}
	ErrOctalEscapeDomain = &Error{Code: ErrCodeOctalEscapeDomain}
	ErrUnknownEscape     = &Error{Code: ErrCodeUnknownEscape}

	ErrUtf16Surrogate = &Error{Code: ErrCodeUtf16Surrogate}
	ErrUcsNonchar     = &Error{Code: ErrCodeUcsNonchar}
	ErrUtf8High       = &Error{Code: ErrCodeUtf8High}
	ErrUtf8Truncated  = &Error{Code: ErrCodeUtf8Truncated}
	ErrUtf8Decode     = &Error{Code: ErrCodeUtf8Decode}

	ErrStrToIntBase  = &Error{Code: ErrCodeStrToIntBase}
	ErrStrToIntChar  = &Error{Code: ErrCodeStrToIntChar}
	ErrStrToIntRange = &Error{Code: ErrCodeStrToIntRange}

	ErrOptIntArgCount      = &Error{Code: ErrCodeOptIntArgCount}
	ErrOptIntArg0NotString = &Error{Code: ErrCodeOptIntArg0NotString}
	ErrOptIntArg1NotInt    = &Error{Code: ErrCodeOptIntArg1NotInt}
)
