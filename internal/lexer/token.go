package lexer

import "github.com/cquaid/libpancl/internal/panclh"

// Token is the unit the lexer produces and the parser consumes. A token
// carries at most one owned string (Text); pushing it back and returning
// it again hands that same string to the new owner without copying,
// satisfying invariant 5 of spec.md section 3 the way a Go value copy
// naturally does (strings are immutable and share their backing array).
type Token struct {
	Kind panclh.TokenKind
	Pos  panclh.Position
	Text string
}

// Subtype reports whether this token may act as an identifier or as a
// newline, per spec.md section 4.4's four-bit subtype tag.
func (t Token) Subtype() panclh.TokenSubtype { return panclh.SubtypeOf(t.Kind) }

func (t Token) IsIdentLike() bool { return t.Subtype()&panclh.SubtypeIdent != 0 }
func (t Token) IsNewlineLike() bool { return t.Subtype()&panclh.SubtypeNewline != 0 }
