// Package trit implements the single balanced-ternary digit: a value in
// {-1, 0, +1} with the arithmetic and logic primitives every wider type
// (tryte, word) is built from.
package trit

import "fmt"

// Trit is a balanced-ternary digit. The zero value is Zero.
type Trit int8

const (
	Neg  Trit = -1
	Zero Trit = 0
	Pos  Trit = 1
)

// Valid reports whether t is one of the three legal trit values.
func (t Trit) Valid() bool {
	return t == Neg || t == Zero || t == Pos
}

// String renders a trit as one of "-", "0", "+".
func (t Trit) String() string {
	switch t {
	case Neg:
		return "-"
	case Pos:
		return "+"
	default:
		return "0"
	}
}

// Int returns the trit's signed integer value, -1, 0 or 1.
func (t Trit) Int() int { return int(t) }

// Negate returns the negation of t: 0 stays 0, +1 and -1 swap.
func (t Trit) Negate() Trit { return -t }

// Mul is the sign-product of two trits; 0 absorbs.
func (t Trit) Mul(o Trit) Trit { return t * o }

// Min is the balanced-ternary "and": the lattice meet.
func (t Trit) Min(o Trit) Trit {
	if t < o {
		return t
	}
	return o
}

// Max is the balanced-ternary "or": the lattice join.
func (t Trit) Max(o Trit) Trit {
	if t > o {
		return t
	}
	return o
}

// Cmp returns -1, 0 or 1 as t is numerically less than, equal to, or
// greater than o.
func (t Trit) Cmp(o Trit) int {
	switch {
	case t < o:
		return -1
	case t > o:
		return 1
	default:
		return 0
	}
}

// Add adds two trits, returning the result digit and the carry digit.
// Truth table (spec.md 4.A):
//
//	0 + x     = (x, 0)
//	(+1)+(+1) = (-1, +1)
//	(-1)+(-1) = (+1, -1)
//	(+1)+(-1) = (0, 0)
func Add(a, b Trit) (sum, carry Trit) {
	s := a + b
	switch s {
	case 2: // (+1)+(+1)
		return Neg, Pos
	case -2: // (-1)+(-1)
		return Pos, Neg
	default:
		return s, Zero
	}
}

// AddWithCarry adds three trits (two operands plus an incoming carry) and
// returns the result digit and the outgoing carry. It reduces to two pair
// additions; the two intermediate carries can never both be nonzero in
// balanced ternary, so their trit-sum is the final carry.
func AddWithCarry(a, b, c Trit) (sum, carry Trit) {
	s1, c1 := Add(a, b)
	s2, c2 := Add(s1, c)
	carry, _ = Add(c1, c2)
	return s2, carry
}

// New validates v as a trit, returning an error for any value outside
// {-1, 0, +1}.
func New(v int) (Trit, error) {
	t := Trit(v)
	if !t.Valid() {
		return Zero, fmt.Errorf("trit: %d is not a valid trit value", v)
	}
	return t, nil
}

// Pack encodes a trit into its 2-bit wire form: 00=-1, 01=0, 10=+1.
func (t Trit) Pack() uint8 {
	switch t {
	case Neg:
		return 0b00
	case Pos:
		return 0b10
	default:
		return 0b01
	}
}

// Unpack decodes a 2-bit wire form back into a trit. The pattern 0b11 is
// invalid and decodes to Zero.
func Unpack(bits uint8) Trit {
	switch bits & 0b11 {
	case 0b00:
		return Neg
	case 0b10:
		return Pos
	default:
		return Zero
	}
}
