// Package word implements the 27-trit register/address width: three
// concatenated trytes, low-first (spec.md 4.C).
package word

import (
	"fmt"

	"github.com/jtristan/jt1701/internal/trits"
	"github.com/jtristan/jt1701/trit"
	"github.com/jtristan/jt1701/tryte"
)

// Width is the number of trits in a Word.
const Width = 27

// Word is an ordered sequence of 27 trits, little-end-first, equivalent to
// three concatenated trytes: [low, mid, high].
type Word [Width]trit.Trit

// Zero is the zero-valued word.
var Zero = Word{}

// FromInt builds a Word from a signed integer via balanced-ternary
// decomposition, truncating to the representable range.
func FromInt(n int64) Word {
	var w Word
	trits.FromInt(w[:], n)
	return w
}

// Int converts a Word to its signed integer value.
func (w Word) Int() int64 {
	return trits.ToInt(w[:])
}

// String renders the word as its signed decimal value.
func (w Word) String() string {
	return fmt.Sprintf("%d", w.Int())
}

// FromTryte zero-extends a Tryte into a Word by attaching two zero trytes
// above it.
func FromTryte(t tryte.Tryte) Word {
	var w Word
	copy(w[0:tryte.Width], t[:])
	return w
}

// Low returns the low tryte of w (the word->tryte conversion, which takes
// the low tryte).
func (w Word) Low() tryte.Tryte {
	var t tryte.Tryte
	copy(t[:], w[0:tryte.Width])
	return t
}

// Mid returns the middle tryte of w.
func (w Word) Mid() tryte.Tryte {
	var t tryte.Tryte
	copy(t[:], w[tryte.Width:2*tryte.Width])
	return t
}

// High returns the high tryte of w.
func (w Word) High() tryte.Tryte {
	var t tryte.Tryte
	copy(t[:], w[2*tryte.Width:3*tryte.Width])
	return t
}

// FromTrytes composes a word from its three trytes, low-first.
func FromTrytes(low, mid, high tryte.Tryte) Word {
	var w Word
	copy(w[0:tryte.Width], low[:])
	copy(w[tryte.Width:2*tryte.Width], mid[:])
	copy(w[2*tryte.Width:3*tryte.Width], high[:])
	return w
}

// WithLow returns a copy of w with its low tryte replaced.
func (w Word) WithLow(t tryte.Tryte) Word {
	r := w
	copy(r[0:tryte.Width], t[:])
	return r
}

// WithMid returns a copy of w with its middle tryte replaced.
func (w Word) WithMid(t tryte.Tryte) Word {
	r := w
	copy(r[tryte.Width:2*tryte.Width], t[:])
	return r
}

// WithHigh returns a copy of w with its high tryte replaced.
func (w Word) WithHigh(t tryte.Tryte) Word {
	r := w
	copy(r[2*tryte.Width:3*tryte.Width], t[:])
	return r
}

// Add returns w+o and the carry trit out of the top position.
func (w Word) Add(o Word) (sum Word, carry trit.Trit) {
	carry = trits.Add(sum[:], w[:], o[:])
	return
}

// Sub returns w-o and the borrow/carry trit.
func (w Word) Sub(o Word) (diff Word, carry trit.Trit) {
	carry = trits.Sub(diff[:], w[:], o[:])
	return
}

// Neg returns the trit-wise negation of w.
func (w Word) Neg() Word {
	var r Word
	trits.Neg(r[:], w[:])
	return r
}

// Mul returns the 27-trit truncated product of w and o.
func (w Word) Mul(o Word) Word {
	var r Word
	trits.Mul(r[:], w[:], o[:])
	return r
}

// DivMod implements balanced-ternary Euclidean division.
func (w Word) DivMod(o Word) (q, r Word, err error) {
	qs, rs, err := trits.DivMod(w[:], o[:])
	if err != nil {
		return Zero, Zero, err
	}
	copy(q[:], qs)
	copy(r[:], rs)
	return q, r, nil
}

// Cmp orders two words by signed integer value.
func (w Word) Cmp(o Word) int {
	return trits.Compare(w[:], o[:])
}

// Sign returns the highest non-zero trit of w, or trit.Zero.
func (w Word) Sign() trit.Trit {
	return trits.Sign(w[:])
}

// Parity returns the trit at position 0.
func (w Word) Parity() trit.Trit {
	return w[0]
}

// ShiftLeft shifts w left by k positions (k>=0 shifts up, k<0 shifts down).
func (w Word) ShiftLeft(k int) Word {
	var r Word
	if k >= 0 {
		trits.ShiftLeft(r[:], w[:], k)
	} else {
		trits.ShiftRight(r[:], w[:], -k)
	}
	return r
}

// ShiftRight shifts w right by k positions (k>=0 shifts down, k<0 shifts up).
func (w Word) ShiftRight(k int) Word {
	return w.ShiftLeft(-k)
}

// Rotate rotates w cyclically: left for positive k, right for negative k.
func (w Word) Rotate(k int) Word {
	var r Word
	trits.Rotate(r[:], w[:], k)
	return r
}

// And is the element-wise balanced-ternary min.
func (w Word) And(o Word) Word {
	var r Word
	trits.Min(r[:], w[:], o[:])
	return r
}

// Or is the element-wise balanced-ternary max.
func (w Word) Or(o Word) Word {
	var r Word
	trits.Max(r[:], w[:], o[:])
	return r
}

// Not is the trit-wise negation (alias of Neg, named for the ISA's NOT op).
func (w Word) Not() Word { return w.Neg() }

// Pack encodes the word into its 54-bit wire form, 2 bits per trit,
// position 0 in the low bits.
func (w Word) Pack() uint64 {
	var v uint64
	for i := Width - 1; i >= 0; i-- {
		v = (v << 2) | uint64(w[i].Pack())
	}
	return v
}

// Unpack decodes a 54-bit packed form back into a Word.
func Unpack(v uint64) Word {
	var w Word
	for i := 0; i < Width; i++ {
		w[i] = trit.Unpack(uint8(v & 0b11))
		v >>= 2
	}
	return w
}
