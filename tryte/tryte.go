// Package tryte implements the 9-trit addressable unit: the smallest
// numeric type in the machine, encoding a signed integer in
// [-9841, +9841] (spec.md 4.B).
package tryte

import (
	"fmt"

	"github.com/jtristan/jt1701/internal/trits"
	"github.com/jtristan/jt1701/trit"
)

// Width is the number of trits in a Tryte.
const Width = 9

// Max is the largest representable signed value, (3^9-1)/2.
const Max = 9841

// Min is the smallest representable signed value.
const Min = -9841

// Tryte is an ordered sequence of 9 trits, little-end-first (index 0 is
// the least significant trit).
type Tryte [Width]trit.Trit

// Zero is the zero-valued tryte.
var Zero = Tryte{}

// FromInt builds a Tryte from a signed integer via balanced-ternary
// decomposition, truncating to the representable range.
func FromInt(n int64) Tryte {
	var t Tryte
	trits.FromInt(t[:], n)
	return t
}

// Int converts a Tryte to its signed integer value.
func (t Tryte) Int() int64 {
	return trits.ToInt(t[:])
}

// String renders the tryte as its signed decimal value.
func (t Tryte) String() string {
	return fmt.Sprintf("%d", t.Int())
}

// Add returns t+o and the carry trit out of the top position.
func (t Tryte) Add(o Tryte) (sum Tryte, carry trit.Trit) {
	carry = trits.Add(sum[:], t[:], o[:])
	return
}

// Sub returns t-o and the borrow/carry trit.
func (t Tryte) Sub(o Tryte) (diff Tryte, carry trit.Trit) {
	carry = trits.Sub(diff[:], t[:], o[:])
	return
}

// Neg returns the trit-wise negation of t.
func (t Tryte) Neg() Tryte {
	var r Tryte
	trits.Neg(r[:], t[:])
	return r
}

// Mul returns the 9-trit truncated product of t and o. Overflow is not
// reported.
func (t Tryte) Mul(o Tryte) Tryte {
	var r Tryte
	trits.Mul(r[:], t[:], o[:])
	return r
}

// DivMod implements balanced-ternary Euclidean division: t = q*o + r with
// 0 <= r < |o|. Returns trits.ErrDivByZero if o is zero.
func (t Tryte) DivMod(o Tryte) (q, r Tryte, err error) {
	qs, rs, err := trits.DivMod(t[:], o[:])
	if err != nil {
		return Zero, Zero, err
	}
	copy(q[:], qs)
	copy(r[:], rs)
	return q, r, nil
}

// Cmp orders two trytes by signed integer value.
func (t Tryte) Cmp(o Tryte) int {
	return trits.Compare(t[:], o[:])
}

// Sign returns the highest non-zero trit of t, or trit.Zero.
func (t Tryte) Sign() trit.Trit {
	return trits.Sign(t[:])
}

// Parity returns the trit at position 0.
func (t Tryte) Parity() trit.Trit {
	return t[0]
}

// ShiftLeft shifts t left by k positions (k>=0 shifts up, k<0 shifts down).
func (t Tryte) ShiftLeft(k int) Tryte {
	var r Tryte
	if k >= 0 {
		trits.ShiftLeft(r[:], t[:], k)
	} else {
		trits.ShiftRight(r[:], t[:], -k)
	}
	return r
}

// ShiftRight shifts t right by k positions (k>=0 shifts down, k<0 shifts up).
func (t Tryte) ShiftRight(k int) Tryte {
	return t.ShiftLeft(-k)
}

// Rotate rotates t cyclically: left for positive k, right for negative k.
func (t Tryte) Rotate(k int) Tryte {
	var r Tryte
	trits.Rotate(r[:], t[:], k)
	return r
}

// And is the element-wise balanced-ternary min.
func (t Tryte) And(o Tryte) Tryte {
	var r Tryte
	trits.Min(r[:], t[:], o[:])
	return r
}

// Or is the element-wise balanced-ternary max.
func (t Tryte) Or(o Tryte) Tryte {
	var r Tryte
	trits.Max(r[:], t[:], o[:])
	return r
}

// Not is the trit-wise negation (alias of Neg, named for the ISA's NOT op).
func (t Tryte) Not() Tryte { return t.Neg() }

// Pack encodes the tryte into its 18-bit wire form, 2 bits per trit,
// position 0 in the low bits.
func (t Tryte) Pack() uint32 {
	var v uint32
	for i := Width - 1; i >= 0; i-- {
		v = (v << 2) | uint32(t[i].Pack())
	}
	return v
}

// Unpack decodes an 18-bit packed form back into a Tryte.
func Unpack(v uint32) Tryte {
	var t Tryte
	for i := 0; i < Width; i++ {
		t[i] = trit.Unpack(uint8(v & 0b11))
		v >>= 2
	}
	return t
}
