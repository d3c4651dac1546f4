// Package numconv implements the overflow-safe string-to-integer coercers
// described by spec.md section 4.7: one routine, specialised to signed and
// unsigned widths 8, 16, 32 and 64, shared by the custom-type rewriter.
//
// Grounded on original_source/src/lexer/numeric.c's accumulate-then-check
// shape: before multiplying the running total by base, compare it against
// max/base so the multiply itself can never overflow a uint64 accumulator.
package numconv

import "github.com/cquaid/libpancl/internal/panclh"

// Error returned by every coercer in this package is a
// *panclh.CodedError whose Code is always one of panclh.StrToIntBase,
// panclh.StrToIntChar or panclh.StrToIntRange. Position is left zero;
// callers (the custom-type rewriter) know the position of the literal
// being coerced and fill it in.
var (
	ErrBase  = panclh.NewError(panclh.StrToIntBase, panclh.Position{}, "", "invalid base")
	ErrChar  = panclh.NewError(panclh.StrToIntChar, panclh.Position{}, "", "invalid digit")
	ErrRange = panclh.NewError(panclh.StrToIntRange, panclh.Position{}, "", "value out of range")
)

func digitValue(b byte) (int, bool) {
	switch {
	case b >= '0' && b <= '9':
		return int(b - '0'), true
	case b >= 'a' && b <= 'z':
		return int(b-'a') + 10, true
	case b >= 'A' && b <= 'Z':
		return int(b-'A') + 10, true
	default:
		return 0, false
	}
}

// prefixBase reports the base implied by a "0x"/"0o"/"0b" prefix at the
// start of s, and the number of bytes that prefix occupies. It returns
// (0, 0) when s does not begin with a recognised prefix.
func prefixBase(s string) (base, width int) {
	if len(s) < 2 || s[0] != '0' {
		return 0, 0
	}
	switch s[1] {
	case 'x', 'X':
		return 16, 2
	case 'o', 'O':
		return 8, 2
	case 'b', 'B':
		return 2, 2
	default:
		return 0, 0
	}
}

// magnitude parses the unsigned digit run of s (sign already stripped) in
// the given base, accumulating into a uint64 and failing with ErrRange if
// the value would exceed max.
func magnitude(s string, base int, max uint64) (uint64, error) {
	if base != 0 && (base < 2 || base > 36) {
		return 0, ErrBase
	}

	// Base auto-detection / prefix validation (spec.md section 4.7).
	detected, width := prefixBase(s)
	switch {
	case base == 0:
		if detected != 0 {
			base = detected
			s = s[width:]
		} else {
			base = 10
		}
	case detected != 0:
		if detected != base {
			return 0, ErrChar
		}
		s = s[width:]
	}

	if s == "" {
		return 0, ErrChar
	}

	var acc uint64
	for i := 0; i < len(s); i++ {
		d, ok := digitValue(s[i])
		if !ok || d >= base {
			return 0, ErrChar
		}
		b := uint64(base)
		if acc > max/b || (acc == max/b && uint64(d) > max%b) {
			return 0, ErrRange
		}
		acc = acc*b + uint64(d)
	}
	return acc, nil
}

func splitSign(s string, allowMinus bool) (neg bool, rest string, err error) {
	if s == "" {
		return false, s, ErrChar
	}
	switch s[0] {
	case '+':
		return false, s[1:], nil
	case '-':
		if !allowMinus {
			return false, s, ErrChar
		}
		return true, s[1:], nil
	default:
		return false, s, nil
	}
}

// ParseSigned coerces s into a signed integer whose magnitude must not
// exceed maxAbsWhenNeg when s is negative, or maxWhenPos when s is
// non-negative. This lets callers represent e.g. int8's [-128, 127] range
// with maxWhenPos=127 and maxAbsWhenNeg=128, accepting INTn_MIN exactly as
// spec.md section 4.7 requires.
func ParseSigned(s string, base int, maxWhenPos, maxAbsWhenNeg uint64) (neg bool, magnitude_ uint64, err error) {
	neg, rest, err := splitSign(s, true)
	if err != nil {
		return false, 0, err
	}
	bound := maxWhenPos
	if neg {
		bound = maxAbsWhenNeg
	}
	m, err := magnitude(rest, base, bound)
	if err != nil {
		return false, 0, err
	}
	return neg, m, nil
}

// ParseUnsigned coerces s into an unsigned integer not exceeding max. A
// leading '+' is accepted; a leading '-' is rejected with ErrChar.
func ParseUnsigned(s string, base int, max uint64) (uint64, error) {
	_, rest, err := splitSign(s, false)
	if err != nil {
		return 0, err
	}
	return magnitude(rest, base, max)
}

// Int8 coerces s into an int8, base 0 (auto) or 2..36.
func Int8(s string, base int) (int8, error) {
	neg, m, err := ParseSigned(s, base, 127, 128)
	if err != nil {
		return 0, err
	}
	if neg {
		return int8(-int64(m)), nil
	}
	return int8(m), nil
}

// Int16 coerces s into an int16.
func Int16(s string, base int) (int16, error) {
	neg, m, err := ParseSigned(s, base, 32767, 32768)
	if err != nil {
		return 0, err
	}
	if neg {
		return int16(-int64(m)), nil
	}
	return int16(m), nil
}

// Int32 coerces s into an int32.
func Int32(s string, base int) (int32, error) {
	neg, m, err := ParseSigned(s, base, 2147483647, 2147483648)
	if err != nil {
		return 0, err
	}
	if neg {
		return int32(-int64(m)), nil
	}
	return int32(m), nil
}

// Int64 coerces s into an int64.
func Int64(s string, base int) (int64, error) {
	neg, m, err := ParseSigned(s, base, 9223372036854775807, 9223372036854775808)
	if err != nil {
		return 0, err
	}
	if neg {
		if m == 9223372036854775808 {
			return -9223372036854775808, nil
		}
		return -int64(m), nil
	}
	return int64(m), nil
}

// Uint8 coerces s into a uint8.
func Uint8(s string, base int) (uint8, error) {
	m, err := ParseUnsigned(s, base, 255)
	if err != nil {
		return 0, err
	}
	return uint8(m), nil
}

// Uint16 coerces s into a uint16.
func Uint16(s string, base int) (uint16, error) {
	m, err := ParseUnsigned(s, base, 65535)
	if err != nil {
		return 0, err
	}
	return uint16(m), nil
}

// Uint32 coerces s into a uint32.
func Uint32(s string, base int) (uint32, error) {
	m, err := ParseUnsigned(s, base, 4294967295)
	if err != nil {
		return 0, err
	}
	return uint32(m), nil
}

// Uint64 coerces s into a uint64.
func Uint64(s string, base int) (uint64, error) {
	return ParseUnsigned(s, base, 18446744073709551615)
}
