// Package trits holds the length-independent algorithms shared by tryte.Tryte
// (9 trits) and word.Word (27 trits): both are fixed-length trit vectors with
// identical ripple-carry add, long-multiply, Euclidean divide, shift/rotate
// and trit-logic algorithms (spec.md 4.B/4.C), differing only in length.
package trits

import (
	"errors"

	"github.com/jtristan/jt1701/trit"
)

// ErrDivByZero is the single numeric error kind this system reports
// (overflow is expressed as data, the carry trit, never as an error).
var ErrDivByZero = errors.New("trits: division by zero")

// Add performs little-end-first ripple-carry addition over two equal-length
// trit vectors, writing the n-trit result into dst and returning the
// overall carry trit. dst, a and b may alias.
func Add(dst, a, b []trit.Trit) trit.Trit {
	var carry trit.Trit
	for i := range a {
		s, c := trit.AddWithCarry(a[i], b[i], carry)
		dst[i] = s
		carry = c
	}
	return carry
}

// Neg negates every trit of a into dst.
func Neg(dst, a []trit.Trit) {
	for i := range a {
		dst[i] = a[i].Negate()
	}
}

// Sub computes a - b as a + (-b), returning the overall carry (borrow).
func Sub(dst, a, b []trit.Trit) trit.Trit {
	nb := make([]trit.Trit, len(b))
	Neg(nb, b)
	return Add(dst, a, nb)
}

// shiftOneLeft shifts src left by one position into dst (dst[0] = 0), and
// returns the trit that fell off the top.
func shiftOneLeft(dst, src []trit.Trit) trit.Trit {
	n := len(src)
	out := src[n-1]
	for i := n - 1; i > 0; i-- {
		dst[i] = src[i-1]
	}
	dst[0] = trit.Zero
	return out
}

// Mul computes long multiplication of a by b, truncated to n trits (no
// width extension; overflow is not reported, matching spec.md 4.B).
func Mul(dst, a, b []trit.Trit) {
	n := len(a)
	acc := make([]trit.Trit, n)
	shifted := make([]trit.Trit, n)
	copy(shifted, a)
	term := make([]trit.Trit, n)
	for i := 0; i < n; i++ {
		d := b[i]
		if d != trit.Zero {
			for j := 0; j < n; j++ {
				term[j] = shifted[j].Mul(d)
			}
			Add(acc, acc, term)
		}
		if i < n-1 {
			// shift the multiplicand left by one more position each step
			tmp := make([]trit.Trit, n)
			shiftOneLeft(tmp, shifted)
			copy(shifted, tmp)
		}
	}
	copy(dst, acc)
}

// ToInt converts a little-end-first trit vector to its signed integer
// value: sum(trit[i] * 3^i).
func ToInt(a []trit.Trit) int64 {
	var v int64
	pow := int64(1)
	for _, d := range a {
		v += int64(d) * pow
		pow *= 3
	}
	return v
}

// FromInt decomposes a signed integer into a little-end-first balanced
// ternary trit vector of len(dst) trits, truncating any bits that do not
// fit. It repeatedly extracts n mod 3, mapping the digit "2" to "-1" with a
// carry of +1 into the next position, so that FromInt/ToInt round-trip over
// the representable range.
func FromInt(dst []trit.Trit, n int64) {
	for i := range dst {
		r := n % 3
		n /= 3
		switch r {
		case 0, 1, -1:
			dst[i] = trit.Trit(r)
		case 2:
			dst[i] = trit.Neg
			n++
		case -2:
			dst[i] = trit.Pos
			n--
		}
	}
}

// Compare orders two trit vectors by their signed integer value, from the
// highest position down (equivalent to comparing ToInt results).
func Compare(a, b []trit.Trit) int {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	return 0
}

// IsZero reports whether every trit of a is zero.
func IsZero(a []trit.Trit) bool {
	for _, d := range a {
		if d != trit.Zero {
			return false
		}
	}
	return true
}

// Sign returns the highest non-zero trit of a, or Zero if a is all zero.
func Sign(a []trit.Trit) trit.Trit {
	for i := len(a) - 1; i >= 0; i-- {
		if a[i] != trit.Zero {
			return a[i]
		}
	}
	return trit.Zero
}

// ShiftLeft shifts a left by k positions (k >= 0), padding with zero trits
// at the low end, truncating trits that fall off the top.
func ShiftLeft(dst, a []trit.Trit, k int) {
	n := len(a)
	tmp := make([]trit.Trit, n)
	copy(tmp, a)
	for ; k > 0; k-- {
		shiftOneLeft(tmp, tmp)
	}
	copy(dst, tmp)
}

// ShiftRight shifts a right by k positions (k >= 0), padding with zero
// trits at the high end.
func ShiftRight(dst, a []trit.Trit, k int) {
	n := len(a)
	tmp := make([]trit.Trit, n)
	copy(tmp, a)
	for ; k > 0; k-- {
		for i := 0; i < n-1; i++ {
			tmp[i] = tmp[i+1]
		}
		tmp[n-1] = trit.Zero
	}
	copy(dst, tmp)
}

// Rotate moves trits cyclically: left if k > 0, right if k < 0.
func Rotate(dst, a []trit.Trit, k int) {
	n := len(a)
	if n == 0 {
		return
	}
	k = ((k % n) + n) % n
	tmp := make([]trit.Trit, n)
	for i := 0; i < n; i++ {
		tmp[(i+k)%n] = a[i]
	}
	copy(dst, tmp)
}

// Min is the element-wise balanced-ternary "and" (lattice meet).
func Min(dst, a, b []trit.Trit) {
	for i := range a {
		dst[i] = a[i].Min(b[i])
	}
}

// Max is the element-wise balanced-ternary "or" (lattice join).
func Max(dst, a, b []trit.Trit) {
	for i := range a {
		dst[i] = a[i].Max(b[i])
	}
}

// DivMod implements balanced-ternary Euclidean division: a = q*b + r with
// 0 <= r < |b|, regardless of the signs of a or b (spec.md 4.C). Returns
// ErrDivByZero if b is zero.
//
// Both operands are converted to signed integers and divided with Go's
// truncating / and %; a negative remainder is then renormalized to the
// non-negative range [0, |b|) by adding |b| (and correcting q by the
// matching -1 or +1, following the sign of b). The quotient and remainder
// are converted back to len(a)-trit vectors. No trit-by-trit long division
// is performed.
func DivMod(a, b []trit.Trit) (q, r []trit.Trit, err error) {
	n := len(a)
	if IsZero(b) {
		return nil, nil, ErrDivByZero
	}
	av := ToInt(a)
	bv := ToInt(b)
	qv := av / bv
	rv := av % bv
	// Euclidean normalization: 0 <= r < |b|.
	if rv < 0 {
		if bv > 0 {
			rv += bv
			qv--
		} else {
			rv -= bv
			qv++
		}
	}
	q = make([]trit.Trit, n)
	r = make([]trit.Trit, n)
	FromInt(q, qv)
	FromInt(r, rv)
	return q, r, nil
}
