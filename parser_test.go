package pancl_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cquaid/libpancl"
)

// TestTableSlicing is concrete scenario 1 from spec.md section 8: a root
// table's entries, a named table's entries, then end-of-input, across
// three GetNextTable calls.
func TestTableSlicing(t *testing.T) {
	ctx := pancl.ParseString("a = 1\n[t]\nb = \"x\"\n")

	root, err := ctx.GetNextTable()
	require.NoError(t, err)
	require.Nil(t, root.Name)
	require.Len(t, root.Entries, 1)
	require.Equal(t, "a", root.Entries[0].Name.String())
	require.Equal(t, int32(1), root.Entries[0].Value.(*pancl.IntValue).V)

	named, err := ctx.GetNextTable()
	require.NoError(t, err)
	require.NotNil(t, named.Name)
	require.Equal(t, "t", named.Name.String())
	require.Len(t, named.Entries, 1)
	require.Equal(t, "b", named.Entries[0].Name.String())
	require.Equal(t, "x", named.Entries[0].Value.(*pancl.StringValue).V.String())

	_, err = ctx.GetNextTable()
	require.True(t, errors.Is(err, pancl.ErrEndOfInput))
}

// TestEmptyDocumentIsEndOfInput covers a document with no table header
// and no entries before end-of-input (an empty file, or one holding only
// comments and blank lines): the very first GetNextTable call must
// report ErrEndOfInput directly rather than handing back a spurious
// empty root table.
func TestEmptyDocumentIsEndOfInput(t *testing.T) {
	for name, src := range map[string]string{
		"empty":        "",
		"blank-lines":  "\n\n\n",
		"comment-only": "# nothing here\n# still nothing\n",
	} {
		t.Run(name, func(t *testing.T) {
			ctx := pancl.ParseString(src)
			tbl, err := ctx.GetNextTable()
			require.Nil(t, tbl)
			require.True(t, errors.Is(err, pancl.ErrEndOfInput))
		})
	}
}

// TestCustomFixedWidthIntegers is concrete scenario 2: ::Uint8 and ::Int8
// constructors rewrite to the matching Opt variant, honouring an explicit
// base argument.
func TestCustomFixedWidthIntegers(t *testing.T) {
	ctx := pancl.ParseString("x = ::Uint8(\"255\")\ny = ::Int8(\"-0x80\", 0)\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	require.Len(t, tbl.Entries, 2)

	x, ok := tbl.Entries[0].Value.(*pancl.OptUint8)
	require.True(t, ok, "expected *pancl.OptUint8, got %T", tbl.Entries[0].Value)
	require.Equal(t, uint8(255), x.V)

	y, ok := tbl.Entries[1].Value.(*pancl.OptInt8)
	require.True(t, ok, "expected *pancl.OptInt8, got %T", tbl.Entries[1].Value)
	require.Equal(t, int8(-128), y.V)
}

// TestCustomIntegerKeepsSigned32 covers ::Integer, which rewrites to the
// plain signed-32 Integer variant rather than a fixed-width Opt type.
func TestCustomIntegerKeepsSigned32(t *testing.T) {
	ctx := pancl.ParseString(`n = ::Integer("42")` + "\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	v, ok := tbl.Entries[0].Value.(*pancl.IntValue)
	require.True(t, ok, "expected *pancl.IntValue, got %T", tbl.Entries[0].Value)
	require.Equal(t, int32(42), v.V)
}

// TestUnrecognisedCustomPassesThrough covers the rewriter's fallback: a
// constructor name it doesn't recognise is handed back as a CustomValue.
func TestUnrecognisedCustomPassesThrough(t *testing.T) {
	ctx := pancl.ParseString(`p = Point(1, 2)` + "\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	cv, ok := tbl.Entries[0].Value.(*pancl.CustomValue)
	require.True(t, ok, "expected *pancl.CustomValue, got %T", tbl.Entries[0].Value)
	require.Equal(t, "Point", cv.Name.String())
	require.Len(t, cv.Args.Elems, 2)
}

// TestArrayHomogeneityViolation is concrete scenario 3: a mixed-kind
// array fails with ArrayMemberType at the offending element's position.
func TestArrayHomogeneityViolation(t *testing.T) {
	ctx := pancl.ParseString(`arr = [1, "two"]` + "\n")
	_, err := ctx.GetNextTable()
	require.Error(t, err)
	ce, ok := err.(*pancl.Error)
	require.True(t, ok)
	require.Equal(t, pancl.ErrCodeArrayMemberType, ce.Code)
}

// TestAdjacentStringsAndEscapes is concrete scenario 4: multi-piece
// string literals concatenate across whitespace and an escaped newline,
// with named and numeric escapes decoded along the way.
func TestAdjacentStringsAndEscapes(t *testing.T) {
	src := "k = \"a\\u00e9b\" \"c\" \\\n   \"d\\n\"\n"
	ctx := pancl.ParseString(src)
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	sv, ok := tbl.Entries[0].Value.(*pancl.StringValue)
	require.True(t, ok)
	require.Equal(t, "aébcd\n", sv.V.String())
}

// TestLeadingZeroDecimal is concrete scenario 5: a decimal literal with a
// leading zero (that isn't exactly "0") fails with IntLeadingZeros.
func TestLeadingZeroDecimal(t *testing.T) {
	ctx := pancl.ParseString("n = 007\n")
	_, err := ctx.GetNextTable()
	require.Error(t, err)
	ce, ok := err.(*pancl.Error)
	require.True(t, ok)
	require.Equal(t, pancl.ErrCodeIntLeadingZeros, ce.Code)
}

func TestBareZeroIsNotALeadingZero(t *testing.T) {
	for _, src := range []string{"n = 0\n", "n = +0\n", "n = -0\n"} {
		ctx := pancl.ParseString(src)
		tbl, err := ctx.GetNextTable()
		require.NoError(t, err, src)
		require.Equal(t, int32(0), tbl.Entries[0].Value.(*pancl.IntValue).V)
	}
}

// TestUnterminatedStringAtEof is concrete scenario 6: an opening quote
// with neither a closing quote nor a newline before end-of-input reports
// StringShort at the opening quote's position.
func TestUnterminatedStringAtEof(t *testing.T) {
	ctx := pancl.ParseString(`s = "abc`)
	_, err := ctx.GetNextTable()
	require.Error(t, err)
	ce, ok := err.(*pancl.Error)
	require.True(t, ok)
	require.Equal(t, pancl.ErrCodeStringShort, ce.Code)
	require.Equal(t, pancl.Position{Line: 0, Column: 4}, ce.Position)
}

// TestNestedInlineTable is concrete scenario 7: inline tables nest, and a
// trailing comma before the closing brace is legal.
func TestNestedInlineTable(t *testing.T) {
	ctx := pancl.ParseString("p = { a = 1, b = { c = true }, }\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	inner, ok := tbl.Entries[0].Value.(*pancl.Table)
	require.True(t, ok, "expected *pancl.Table, got %T", tbl.Entries[0].Value)
	require.Len(t, inner.Entries, 2)

	a, _ := inner.Get("a")
	require.Equal(t, int32(1), a.(*pancl.IntValue).V)

	b, _ := inner.Get("b")
	nested, ok := b.(*pancl.Table)
	require.True(t, ok)
	c, _ := nested.Get("c")
	require.True(t, c.(*pancl.BoolValue).V)
}

func TestTupleIsHeterogeneous(t *testing.T) {
	ctx := pancl.ParseString(`t = (1, "two", true)` + "\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	tup, ok := tbl.Entries[0].Value.(*pancl.TupleValue)
	require.True(t, ok)
	require.Len(t, tup.Elems, 3)
	require.Equal(t, pancl.KindInteger, tup.Elems[0].Kind())
	require.Equal(t, pancl.KindString, tup.Elems[1].Kind())
	require.Equal(t, pancl.KindBoolean, tup.Elems[2].Kind())
}

func TestHomogeneousArraySucceeds(t *testing.T) {
	ctx := pancl.ParseString("arr = [1, 2, 3]\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	arr, ok := tbl.Entries[0].Value.(*pancl.ArrayValue)
	require.True(t, ok)
	require.Len(t, arr.Elems, 3)
}

func TestMaxTableDepthOverflow(t *testing.T) {
	ctx := pancl.ParseString("arr = [[[1]]]\n", pancl.WithMaxTableDepth(2))
	_, err := ctx.GetNextTable()
	require.Error(t, err)
	ce, ok := err.(*pancl.Error)
	require.True(t, ok)
	require.Equal(t, pancl.ErrCodeOverflow, ce.Code)
}

func TestParseAllOnEmptyDocumentReturnsNoTables(t *testing.T) {
	ctx := pancl.ParseString("")
	tables, err := ctx.ParseAll()
	require.NoError(t, err)
	require.Empty(t, tables)
}

func TestParseAllStopsAtEndOfInput(t *testing.T) {
	ctx := pancl.ParseString("a = 1\n[x]\nb = 2\n[y]\nc = 3\n")
	tables, err := ctx.ParseAll()
	require.NoError(t, err)
	require.Len(t, tables, 3)
}

func TestHexBinOctIntegers(t *testing.T) {
	ctx := pancl.ParseString("a = 0x10\nb = 0o10\nc = 0b10\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	require.Equal(t, int32(16), tbl.Entries[0].Value.(*pancl.IntValue).V)
	require.Equal(t, int32(8), tbl.Entries[1].Value.(*pancl.IntValue).V)
	require.Equal(t, int32(2), tbl.Entries[2].Value.(*pancl.IntValue).V)
}

func TestFloatLiteral(t *testing.T) {
	ctx := pancl.ParseString("f = 3.5\n")
	tbl, err := ctx.GetNextTable()
	require.NoError(t, err)
	require.InDelta(t, 3.5, tbl.Entries[0].Value.(*pancl.FloatValue).V, 0)
}

func TestOptIntArgCountError(t *testing.T) {
	ctx := pancl.ParseString(`x = ::Uint8("1", 2, 3)` + "\n")
	_, err := ctx.GetNextTable()
	require.Error(t, err)
	ce, ok := err.(*pancl.Error)
	require.True(t, ok)
	require.Equal(t, pancl.ErrCodeOptIntArgCount, ce.Code)
}

func TestOptIntArg0NotStringError(t *testing.T) {
	ctx := pancl.ParseString(`x = ::Uint8(1)` + "\n")
	_, err := ctx.GetNextTable()
	require.Error(t, err)
	ce, ok := err.(*pancl.Error)
	require.True(t, ok)
	require.Equal(t, pancl.ErrCodeOptIntArg0NotString, ce.Code)
}

func TestOptIntArg1NotIntError(t *testing.T) {
	ctx := pancl.ParseString(`x = ::Uint8("1", "2")` + "\n")
	_, err := ctx.GetNextTable()
	require.Error(t, err)
	ce, ok := err.(*pancl.Error)
	require.True(t, ok)
	require.Equal(t, pancl.ErrCodeOptIntArg1NotInt, ce.Code)
}
