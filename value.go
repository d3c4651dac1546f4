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

// Package pancl parses PanCL configuration documents: a sequence of named
// tables, each a sequence of key/value entries whose values belong to a
// small value algebra (booleans, integers, floats, strings, arrays,
// tuples, inline tables and named "custom" constructors).
package pancl

import (
	"fmt"
	"strings"

	"github.com/cquaid/libpancl/internal/panclh"
)

// Position is a zero-based (line, column) pair, re-exported from
// internal/panclh so callers never need that import path.
type Position = panclh.Position

// Kind discriminates the variants of Value. The original C implementation
// is a tagged union; Go's idiomatic sum-type facility is an interface with
// one concrete type per variant, so Kind exists only for callers who want
// to switch on it without a type switch (logging, tests).
type Kind int

const (
	KindBoolean Kind = iota
	KindInteger
	KindFloating
	KindString
	KindArray
	KindTuple
	KindTable
	KindCustom
	KindOptInt8
	KindOptInt16
	KindOptInt32
	KindOptInt64
	KindOptUint8
	KindOptUint16
	KindOptUint32
	KindOptUint64
)

var kindNames = [...]string{
	KindBoolean:   "Boolean",
	KindInteger:   "Integer",
	KindFloating:  "Floating",
	KindString:    "String",
	KindArray:     "Array",
	KindTuple:     "Tuple",
	KindTable:     "Table",
	KindCustom:    "Custom",
	KindOptInt8:   "OptInt8",
	KindOptInt16:  "OptInt16",
	KindOptInt32:  "OptInt32",
	KindOptInt64:  "OptInt64",
	KindOptUint8:  "OptUint8",
	KindOptUint16: "OptUint16",
	KindOptUint32: "OptUint32",
	KindOptUint64: "OptUint64",
}

func (k Kind) String() string {
	if int(k) >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Value is the sum type produced by the parser: every RValue production
// in the grammar yields one concrete type implementing Value.
type Value interface {
	Kind() Kind
	Pos() Position
}

// Utf8String is an immutable owned UTF-8 byte run. It tracks both its byte
// length and its codepoint count so IsASCII and HasEmbeddedNUL can be
// answered without rescanning the payload.
//
// The C original is NUL-terminated for convenience with a separately
// tracked logical length so embedded NULs remain legal payload; a Go
// string already carries its own length and tolerates embedded NULs, so
// the terminator has no equivalent here.
type Utf8String struct {
	data       string
	codepoints int
}

// NewUtf8String builds a Utf8String from already-validated UTF-8 bytes and
// a precomputed codepoint count. Callers that don't know the codepoint
// count up front should use NewUtf8StringFromBytes.
func NewUtf8String(data string, codepoints int) Utf8String {
	return Utf8String{data: data, codepoints: codepoints}
}

// NewUtf8StringFromBytes counts codepoints itself. Each byte that is not
// part of a valid UTF-8 sequence counts as one codepoint; the lexer's \x
// and octal escapes append raw bytes up to 0xFF, so string payloads can
// hold such bytes.
func NewUtf8StringFromBytes(data string) Utf8String {
	n := 0
	for range data {
		n++
	}
	return Utf8String{data: data, codepoints: n}
}

// Bytes returns the number of bytes in the string's payload.
func (s Utf8String) Bytes() int { return len(s.data) }

// Codepoints returns the number of Unicode codepoints in the payload.
func (s Utf8String) Codepoints() int { return s.codepoints }

// String returns the payload as a Go string.
func (s Utf8String) String() string { return s.data }

// IsASCII reports whether every byte of the payload is also a codepoint,
// i.e. the payload is pure ASCII.
func (s Utf8String) IsASCII() bool { return s.codepoints == len(s.data) }

// HasEmbeddedNUL reports whether the payload contains a zero byte
// anywhere before its end.
func (s Utf8String) HasEmbeddedNUL() bool {
	return strings.IndexByte(s.data, 0) >= 0
}

// BoolValue is the Boolean Value variant.
type BoolValue struct {
	pos Position
	V   bool
}

func NewBool(pos Position, v bool) *BoolValue { return &BoolValue{pos: pos, V: v} }
func (v *BoolValue) Kind() Kind                { return KindBoolean }
func (v *BoolValue) Pos() Position             { return v.pos }

// IntValue is the Integer Value variant: a signed 32-bit integer, from a
// decimal, hexadecimal, octal or binary literal or a ::Integer constructor.
type IntValue struct {
	pos Position
	V   int32
}

func NewInt(pos Position, v int32) *IntValue { return &IntValue{pos: pos, V: v} }
func (v *IntValue) Kind() Kind                { return KindInteger }
func (v *IntValue) Pos() Position             { return v.pos }

// FloatValue is the Floating Value variant: an IEEE-754 double.
type FloatValue struct {
	pos Position
	V   float64
}

func NewFloat(pos Position, v float64) *FloatValue { return &FloatValue{pos: pos, V: v} }
func (v *FloatValue) Kind() Kind                    { return KindFloating }
func (v *FloatValue) Pos() Position                 { return v.pos }

// StringValue is the String Value variant.
type StringValue struct {
	pos Position
	V   Utf8String
}

func NewString(pos Position, v Utf8String) *StringValue { return &StringValue{pos: pos, V: v} }
func (v *StringValue) Kind() Kind                        { return KindString }
func (v *StringValue) Pos() Position                     { return v.pos }

// ArrayValue is the Array Value variant: an ordered sequence of Value, all
// elements of the same Kind (invariant 1 of spec.md section 3).
type ArrayValue struct {
	pos   Position
	Elems []Value
}

func NewArray(pos Position) *ArrayValue { return &ArrayValue{pos: pos} }
func (v *ArrayValue) Kind() Kind         { return KindArray }
func (v *ArrayValue) Pos() Position      { return v.pos }

// Append enforces array homogeneity: every element after the first must
// share the first element's Kind. On mismatch it returns ErrArrayMemberType
// and leaves the array unmodified, satisfying the overflow-safety /
// no-partial-append testable property from spec.md section 8.
func (v *ArrayValue) Append(elem Value) error {
	if len(v.Elems) > 0 && v.Elems[0].Kind() != elem.Kind() {
		return ErrArrayMemberType
	}
	v.Elems = append(v.Elems, elem)
	return nil
}

// TupleValue is the Tuple Value variant: an ordered, heterogeneous
// sequence of Value.
type TupleValue struct {
	pos   Position
	Elems []Value
}

func NewTuple(pos Position) *TupleValue { return &TupleValue{pos: pos} }
func (v *TupleValue) Kind() Kind         { return KindTuple }
func (v *TupleValue) Pos() Position      { return v.pos }

func (v *TupleValue) Append(elem Value) {
	v.Elems = append(v.Elems, elem)
}

// Entry is a single (name, value) pair inside a Table. Name is never
// empty; order of Entries within a Table is preserved as written.
type Entry struct {
	Name  Utf8String
	Value Value
	Pos   Position
}

// Table is both the top-level container returned by GetNextTable (where
// Name is nil for the root table, the entries written before the first
// [header]) and the Value variant produced by an inline-table RValue
// (where Name is always nil).
type Table struct {
	pos     Position
	Name    *Utf8String
	Entries []Entry
}

func NewTable(pos Position, name *Utf8String) *Table {
	return &Table{pos: pos, Name: name}
}

func (v *Table) Kind() Kind    { return KindTable }
func (v *Table) Pos() Position { return v.pos }

// Append adds an entry to the table in document order.
func (v *Table) Append(e Entry) {
	v.Entries = append(v.Entries, e)
}

// Get returns the value of the first entry named name, and whether it was
// found.
func (v *Table) Get(name string) (Value, bool) {
	for _, e := range v.Entries {
		if e.Name.String() == name {
			return e.Value, true
		}
	}
	return nil, false
}

// CustomValue is the Custom Value variant: a named constructor applied to
// a tuple of arguments, e.g. Point(1, 2). Values whose Name matches one of
// the recognised numeric-coercion names are rewritten in place by the
// custom-type rewriter (see custom.go) before the parser ever returns
// them, so a CustomValue surviving to the caller is always one the
// rewriter declined to interpret.
type CustomValue struct {
	pos  Position
	Name Utf8String
	Args *TupleValue
}

func NewCustom(pos Position, name Utf8String, args *TupleValue) *CustomValue {
	return &CustomValue{pos: pos, Name: name, Args: args}
}

func (v *CustomValue) Kind() Kind    { return KindCustom }
func (v *CustomValue) Pos() Position { return v.pos }

// Fixed-width integer variants produced by the custom-type rewriter.

type OptInt8 struct {
	pos Position
	V   int8
}

func NewOptInt8(pos Position, v int8) *OptInt8 { return &OptInt8{pos: pos, V: v} }
func (v *OptInt8) Kind() Kind                  { return KindOptInt8 }
func (v *OptInt8) Pos() Position               { return v.pos }

type OptInt16 struct {
	pos Position
	V   int16
}

func NewOptInt16(pos Position, v int16) *OptInt16 { return &OptInt16{pos: pos, V: v} }
func (v *OptInt16) Kind() Kind                    { return KindOptInt16 }
func (v *OptInt16) Pos() Position                 { return v.pos }

type OptInt32 struct {
	pos Position
	V   int32
}

func NewOptInt32(pos Position, v int32) *OptInt32 { return &OptInt32{pos: pos, V: v} }
func (v *OptInt32) Kind() Kind                    { return KindOptInt32 }
func (v *OptInt32) Pos() Position                 { return v.pos }

type OptInt64 struct {
	pos Position
	V   int64
}

func NewOptInt64(pos Position, v int64) *OptInt64 { return &OptInt64{pos: pos, V: v} }
func (v *OptInt64) Kind() Kind                    { return KindOptInt64 }
func (v *OptInt64) Pos() Position                 { return v.pos }

type OptUint8 struct {
	pos Position
	V   uint8
}

func NewOptUint8(pos Position, v uint8) *OptUint8 { return &OptUint8{pos: pos, V: v} }
func (v *OptUint8) Kind() Kind                    { return KindOptUint8 }
func (v *OptUint8) Pos() Position                 { return v.pos }

type OptUint16 struct {
	pos Position
	V   uint16
}

func NewOptUint16(pos Position, v uint16) *OptUint16 { return &OptUint16{pos: pos, V: v} }
func (v *OptUint16) Kind() Kind                      { return KindOptUint16 }
func (v *OptUint16) Pos() Position                   { return v.pos }

type OptUint32 struct {
	pos Position
	V   uint32
}

func NewOptUint32(pos Position, v uint32) *OptUint32 { return &OptUint32{pos: pos, V: v} }
func (v *OptUint32) Kind() Kind                      { return KindOptUint32 }
func (v *OptUint32) Pos() Position                   { return v.pos }

type OptUint64 struct {
	pos Position
	V   uint64
}

func NewOptUint64(pos Position, v uint64) *OptUint64 { return &OptUint64{pos: pos, V: v} }
func (v *OptUint64) Kind() Kind                      { return KindOptUint64 }
func (v *OptUint64) Pos() Position                   { return v.pos }
