// Package register implements the 27-register file: R̄13..R̄1, R0, R1..R13,
// each a word.Word cell with sized (word or tryte) views, plus the SP/BP
// aliases (spec.md 4.E). Structurally this mirrors the teacher's CPU
// register fields (A, X, Y, S in nes/cpu.go), generalized from four
// special-purpose bytes to a uniform indexed file.
package register

import (
	"fmt"

	"github.com/jtristan/jt1701/tryte"
	"github.com/jtristan/jt1701/word"
)

// Size selects whether a register is viewed/written as a Word or a Tryte.
type Size int

const (
	Word Size = iota
	Tryte
)

func (s Size) String() string {
	if s == Tryte {
		return "tryte"
	}
	return "word"
}

// Number identifies one of the 27 registers by a signed index in
// [-13, 13]. Negative numbers are the R̄n ("bar") register family; 0 is
// the always-zero register; positive numbers are Rn.
type Number int8

const (
	SP Number = 12 // alias: R12
	BP Number = 13 // alias: R13
)

// String renders a register number the way the spec names it: R0, R5,
// R̄5, ...
func (n Number) String() string {
	if n == 0 {
		return "R0"
	}
	if n < 0 {
		return fmt.Sprintf("R̄%d", -n)
	}
	return fmt.Sprintf("R%d", n)
}

// index maps the signed [-13,13] register number onto a dense [0,26] slot:
// R̄13..R̄1 -> 0..12, R0 -> 13, R1..R13 -> 14..26.
func (n Number) index() int { return int(n) + 13 }

// Count is the number of register slots (27).
const Count = 27

// Value is a sized register value: either a Word or the low Tryte of one.
type Value struct {
	size  Size
	word  word.Word
	tryte tryte.Tryte
}

// WordValue wraps a word-sized value.
func WordValue(w word.Word) Value { return Value{size: Word, word: w} }

// TryteValue wraps a tryte-sized value.
func TryteValue(t tryte.Tryte) Value { return Value{size: Tryte, tryte: t} }

// Size reports whether v is word- or tryte-sized.
func (v Value) Size() Size { return v.size }

// AsWord returns v widened to a Word (zero-extending if v is tryte-sized).
func (v Value) AsWord() word.Word {
	if v.size == Word {
		return v.word
	}
	return word.FromTryte(v.tryte)
}

// AsTryte returns v narrowed to a Tryte (taking the low tryte if v is
// word-sized).
func (v Value) AsTryte() tryte.Tryte {
	if v.size == Tryte {
		return v.tryte
	}
	return v.word.Low()
}

// File is the register file: 27 word-sized cells, R0 hardwired to zero.
type File struct {
	cells [Count]word.Word
}

// New returns a register file with every register zeroed.
func New() *File {
	return &File{}
}

// ReadWord reads register n as a full Word.
func (f *File) ReadWord(n Number) word.Word {
	if n == 0 {
		return word.Zero
	}
	return f.cells[n.index()]
}

// ReadTryte reads the low tryte of register n.
func (f *File) ReadTryte(n Number) tryte.Tryte {
	if n == 0 {
		return tryte.Zero
	}
	return f.cells[n.index()].Low()
}

// Read reads register n at the given size, returning a sized Value.
func (f *File) Read(n Number, size Size) Value {
	if size == Tryte {
		return TryteValue(f.ReadTryte(n))
	}
	return WordValue(f.ReadWord(n))
}

// WriteWord writes a full Word into register n. Writes to R0 are
// discarded.
func (f *File) WriteWord(n Number, w word.Word) {
	if n == 0 {
		return
	}
	f.cells[n.index()] = w
}

// WriteTryte writes a Tryte into register n. The reference behaviour
// chosen here (spec.md's open question) is to zero-extend on write: the
// upper two trytes of the cell are cleared, not preserved, so a
// tryte-sized register always reads back as a tryte-sized zero-extended
// value regardless of what word-sized write preceded it. Writes to R0 are
// discarded.
func (f *File) WriteTryte(n Number, t tryte.Tryte) {
	if n == 0 {
		return
	}
	f.cells[n.index()] = word.FromTryte(t)
}

// Write writes a sized Value into register n, at v's own size.
func (f *File) Write(n Number, v Value) {
	if v.Size() == Tryte {
		f.WriteTryte(n, v.AsTryte())
	} else {
		f.WriteWord(n, v.AsWord())
	}
}
