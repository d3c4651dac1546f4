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
	"github.com/cquaid/libpancl/internal/numconv"
)

// rewriteCustom inspects a parsed CustomValue and, if its name matches one
// of the recognised fixed-width integer constructors, replaces it with the
// typed OptIntN/OptUintN variant. Names that don't match are returned
// unchanged (spec.md section 4.8: a custom type the rewriter doesn't
// recognise is simply handed back to the caller as a CustomValue).
//
// Grounded on original_source/src/parser/custom_types.c's dispatch table:
// one name -> coercion-function mapping, checked in sequence.
func rewriteCustom(cv *CustomValue) (Value, error) {
	name := cv.Name.String()
	switch name {
	case "::Integer", "::Int8", "::Int16", "::Int32", "::Int64",
		"::Uint8", "::Uint16", "::Uint32", "::Uint64":
	default:
		return cv, nil
	}

	pos := cv.Pos()
	text, base, err := optIntArgs(cv, pos)
	if err != nil {
		return nil, err
	}

	switch name {
	case "::Integer":
		v, err := numconv.Int32(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewInt(pos, v), nil
	case "::Int8":
		v, err := numconv.Int8(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptInt8(pos, v), nil
	case "::Int16":
		v, err := numconv.Int16(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptInt16(pos, v), nil
	case "::Int32":
		v, err := numconv.Int32(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptInt32(pos, v), nil
	case "::Int64":
		v, err := numconv.Int64(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptInt64(pos, v), nil
	case "::Uint8":
		v, err := numconv.Uint8(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptUint8(pos, v), nil
	case "::Uint16":
		v, err := numconv.Uint16(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptUint16(pos, v), nil
	case "::Uint32":
		v, err := numconv.Uint32(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptUint32(pos, v), nil
	default: // "::Uint64"
		v, err := numconv.Uint64(text, base)
		if err != nil {
			return nil, wrapNumconvErr(err, pos, text)
		}
		return NewOptUint64(pos, v), nil
	}
}

// optIntArgs validates and extracts the (text, base) pair a fixed-width
// integer constructor expects: one String argument, or a String followed
// by an Integer giving an explicit base.
func optIntArgs(cv *CustomValue, pos Position) (text string, base int, err error) {
	args := cv.Args.Elems
	if len(args) != 1 && len(args) != 2 {
		return "", 0, newError(ErrCodeOptIntArgCount, pos, cv.Name.String(), "expected 1 or 2 arguments")
	}
	sv, ok := args[0].(*StringValue)
	if !ok {
		return "", 0, newError(ErrCodeOptIntArg0NotString, pos, cv.Name.String(), "first argument must be a string")
	}
	if len(args) == 1 {
		return sv.V.String(), 0, nil
	}
	iv, ok := args[1].(*IntValue)
	if !ok {
		return "", 0, newError(ErrCodeOptIntArg1NotInt, pos, cv.Name.String(), "second argument must be an integer")
	}
	return sv.V.String(), int(iv.V), nil
}

func wrapNumconvErr(err error, pos Position, token string) error {
	ce, ok := err.(*Error)
	if !ok {
		return err
	}
	return newError(ce.Code, pos, token, ce.Problem)
}
