package isa

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundTripNamedScenario(t *testing.T) {
	// spec.md scenario 4: encode/decode a representative spread of opcodes
	// and confirm decode(encode(i)) == i for each.
	cases := []Instruction{
		{Op: HLT},
		{Op: ADD, Ra: 1, Rb: 2, Rc: 3, Imm: 4},
		{Op: MUL, Ra: -5, Rb: 6, Rc: -7, Imm: -100},
		{Op: BR_I, Imm: 729},
		{Op: MOVRI, Ra: 9, Imm: -193710244},
		{Op: CMP, Ra: 2, Rb: -2},
		{Op: LDRR, Ra: 1, Rb: 2, Rc: 3},
		{Op: STRPCI, Ra: 4, Imm: 193710244},
		{Op: INVALID},
		{Op: PUSHIMW, Imm: 12345},
		{Op: CALL, Ra: 3, Imm: 1000},
		{Op: LVB, Ra: 7, Imm: -42},
		{Op: EGPU, Ra: 6},
	}
	for _, want := range cases {
		w := Encode(want)
		got := Decode(w)
		assert.Equal(t, want, got, "round trip for %s", want.Op)
	}
}

func TestEncodeUnknownOpcodeProducesInvalid(t *testing.T) {
	bogus := Instruction{Op: Opcode(99999)}
	w := Encode(bogus)
	assert.Equal(t, INVALID, Decode(w).Op)
}

func TestDecodeOfZeroWordIsHLT(t *testing.T) {
	// HLT is opcode code 0, the all-zero-field encoding, matching the
	// convention that an unprogrammed (zeroed) memory cell halts rather
	// than executing garbage.
	got := Decode(Encode(Instruction{Op: HLT}))
	assert.Equal(t, HLT, got.Op)
}

func TestImmWideRangeRoundTrips(t *testing.T) {
	for _, v := range []int64{0, 1, -1, 9841, -9841, 193710244, -193710244} {
		i := Instruction{Op: LDRPCI, Ra: 5, Imm: v}
		got := Decode(Encode(i))
		assert.Equal(t, v, got.Imm)
	}
}

func TestEveryOpcodeEncodesAndDecodesToItself(t *testing.T) {
	for _, op := range opcodeOrder {
		i := Instruction{Op: op, Ra: 1, Rb: -2, Rc: 3, Imm: 42}
		got := Decode(Encode(i))
		assert.Equal(t, op, got.Op)
	}
}

func TestStringRendersMnemonic(t *testing.T) {
	assert.Equal(t, "HLT", HLT.String())
	i := Instruction{Op: ADD, Ra: 1, Rb: 2, Rc: 3, Imm: 4}
	assert.Contains(t, i.String(), "ADD")
}
