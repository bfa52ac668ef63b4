// Package integration exercises the complete fetch/execute pipeline --
// assembler-level isa.Instruction values through vm.Machine to an
// observable register or memory result -- the way the teacher's
// integration test ran a real cartridge through Console end to end rather
// than unit-testing CPU and PPU in isolation.
package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtristan/jt1701/isa"
	"github.com/jtristan/jt1701/register"
	"github.com/jtristan/jt1701/status"
	"github.com/jtristan/jt1701/trit"
	"github.com/jtristan/jt1701/vm"
	"github.com/jtristan/jt1701/word"
)

func assemble(instrs ...isa.Instruction) []byte {
	words := make([]word.Word, len(instrs))
	for i, ins := range instrs {
		words[i] = isa.Encode(ins)
	}
	return vm.EncodeProgram(words)
}

func newMachine(t *testing.T, instrs ...isa.Instruction) *vm.Machine {
	t.Helper()
	m := vm.NewMachine(nil)
	require.NoError(t, m.Load(assemble(instrs...), word.Zero))
	return m
}

// Factorial of 6, looping with a compare-and-branch rather than unrolling:
// R̄13 counts down from 6, R̄12 accumulates the product, R̄11 holds the
// constant 1 the loop compares and decrements against.
func TestFactorialOfSix(t *testing.T) {
	const (
		rCount register.Number = -13
		rOne   register.Number = -11
		rAcc   register.Number = -12
	)
	m := newMachine(t,
		isa.Instruction{Op: isa.LVB, Ra: rCount, Imm: 6}, // 0
		isa.Instruction{Op: isa.LVB, Ra: rOne, Imm: 1},    // 3
		isa.Instruction{Op: isa.LVB, Ra: rAcc, Imm: 1},    // 6
		isa.Instruction{Op: isa.CMP, Ra: rCount, Rb: rOne},              // 9  loop:
		isa.Instruction{Op: isa.BLEQ_I, Imm: 24},                        // 12 exit once count<=1
		isa.Instruction{Op: isa.MUL, Ra: rAcc, Rb: rAcc, Rc: rCount},    // 15 acc *= count
		isa.Instruction{Op: isa.SUB, Ra: rCount, Rb: rCount, Rc: rOne},  // 18 count -= 1
		isa.Instruction{Op: isa.BR_I, Imm: 9},                           // 21 goto loop
		isa.Instruction{Op: isa.HLT},                                   // 24 exit:
	)
	require.NoError(t, m.Run(1000))
	assert.Equal(t, vm.Halted, m.CPU.State())
	assert.Equal(t, int64(720), m.CPU.Regs.ReadWord(rAcc).Int())
}

// Stack RPN (8 + 9) * 5, using the upward-growing stack exclusively: no
// register ever holds an operand before it is popped off the stack.
func TestStackRPNExpression(t *testing.T) {
	const (
		rA register.Number = -13
		rB register.Number = -12
		rC register.Number = -11
		rD register.Number = -10
		rR register.Number = -9
	)
	m := newMachine(t,
		isa.Instruction{Op: isa.LVB, Ra: register.SP, Imm: 3000}, // 0  stack above the program
		isa.Instruction{Op: isa.PUSHIMW, Imm: 8},                 // 3
		isa.Instruction{Op: isa.PUSHIMW, Imm: 9},                 // 6
		isa.Instruction{Op: isa.POP, Ra: rA},                     // 9  rA = 9
		isa.Instruction{Op: isa.POP, Ra: rB},                     // 12 rB = 8
		isa.Instruction{Op: isa.ADD, Ra: rC, Rb: rB, Rc: rA},     // 15 rC = 8 + 9
		isa.Instruction{Op: isa.PUSHIMW, Imm: 5},                 // 18
		isa.Instruction{Op: isa.POP, Ra: rD},                     // 21 rD = 5
		isa.Instruction{Op: isa.MUL, Ra: rR, Rb: rD, Rc: rC},     // 24 rR = 5 * 17
		isa.Instruction{Op: isa.HLT},                             // 27
	)
	require.NoError(t, m.Run(1000))
	assert.Equal(t, int64(85), m.CPU.Regs.ReadWord(rR).Int())
}

// Div/rem: 19 over 4 gives quotient 4, remainder 3, no carry, positive
// sign; -19 over 4 gives quotient -5 and a non-negative remainder of 1,
// the defining property of the Euclidean division this ISA implements.
func TestDivRemPositiveOperands(t *testing.T) {
	const rNum, rDen, rQuot, rRem register.Number = 1, 2, 3, 4
	m := newMachine(t,
		isa.Instruction{Op: isa.LVB, Ra: rNum, Imm: 19},
		isa.Instruction{Op: isa.LVB, Ra: rDen, Imm: 4},
		isa.Instruction{Op: isa.EQOT, Ra: rQuot, Rb: rNum, Rc: rDen},
		isa.Instruction{Op: isa.EREM, Ra: rRem, Rb: rNum, Rc: rDen},
		isa.Instruction{Op: isa.HLT},
	)
	require.NoError(t, m.Run(1000))
	assert.Equal(t, int64(4), m.CPU.Regs.ReadWord(rQuot).Int())
	assert.Equal(t, int64(3), m.CPU.Regs.ReadWord(rRem).Int())
	assert.False(t, m.CPU.Status.Carry())
	assert.Equal(t, trit.Pos, m.CPU.Status.Sign())
}

func TestDivRemNegativeDividend(t *testing.T) {
	const rNum, rDen, rQuot, rRem register.Number = 1, 2, 3, 4
	m := newMachine(t,
		isa.Instruction{Op: isa.LVB, Ra: rNum, Imm: -19},
		isa.Instruction{Op: isa.LVB, Ra: rDen, Imm: 4},
		isa.Instruction{Op: isa.EQOT, Ra: rQuot, Rb: rNum, Rc: rDen},
		isa.Instruction{Op: isa.EREM, Ra: rRem, Rb: rNum, Rc: rDen},
		isa.Instruction{Op: isa.HLT},
	)
	require.NoError(t, m.Run(1000))
	assert.Equal(t, int64(-5), m.CPU.Regs.ReadWord(rQuot).Int())
	assert.Equal(t, int64(1), m.CPU.Regs.ReadWord(rRem).Int())
}

// Branch predicate: BNE falls through while sign is zero and jumps once
// sign is set, with no other state change in between -- the direct
// CPU-level counterpart to the machine-level scenarios above.
func TestBranchPredicateOnSign(t *testing.T) {
	m := newMachine(t, isa.Instruction{Op: isa.BNE_I, Imm: 100})
	m.CPU.Status = status.New()
	require.NoError(t, m.Step())
	assert.Equal(t, int64(3), m.CPU.PC.Int())

	m2 := newMachine(t, isa.Instruction{Op: isa.BNE_I, Imm: 100})
	m2.CPU.Status.SetSign(trit.Pos)
	require.NoError(t, m2.Step())
	assert.Equal(t, int64(100), m2.CPU.PC.Int())
}
