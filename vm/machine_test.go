package vm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtristan/jt1701/isa"
	"github.com/jtristan/jt1701/word"
)

func assembleProgram(instrs ...isa.Instruction) []byte {
	words := make([]word.Word, len(instrs))
	for i, ins := range instrs {
		words[i] = isa.Encode(ins)
	}
	return EncodeProgram(words)
}

func TestMachineRunStopsAtHalt(t *testing.T) {
	m := NewMachine(nil)
	data := assembleProgram(
		isa.Instruction{Op: isa.LVB, Ra: 1, Imm: 7},
		isa.Instruction{Op: isa.HLT},
	)
	require.NoError(t, m.Load(data, word.Zero))
	require.NoError(t, m.Run(0))
	assert.Equal(t, Halted, m.CPU.State())
	assert.Equal(t, int64(7), m.CPU.Regs.ReadWord(1).Int())
}

func TestMachineRunReturnsStillRunningWhenBudgetExhausted(t *testing.T) {
	m := NewMachine(nil)
	data := assembleProgram(
		isa.Instruction{Op: isa.BR_I, Imm: 0}, // infinite loop
	)
	require.NoError(t, m.Load(data, word.Zero))
	err := m.Run(10)
	assert.ErrorIs(t, err, ErrStillRunning)
}

type fakeSink struct {
	calls int
	lastX int64
}

func (f *fakeSink) DrawLine(x0, y0, x1, y1, r, g, b int64) {
	f.calls++
	f.lastX = x0
}

func TestMachineServicesGraphicsControlBlockAfterEGPU(t *testing.T) {
	sink := &fakeSink{}
	m := NewMachine(sink)

	// Register 1 holds the control block's base address, 1000.
	data := assembleProgram(
		isa.Instruction{Op: isa.LVB, Ra: 1, Imm: 1000},
		isa.Instruction{Op: isa.EGPU, Ra: 1},
		isa.Instruction{Op: isa.NOP},
	)
	require.NoError(t, m.Load(data, word.Zero))

	// Control block at 1000: {vectorPtr=2000, bufferSize=1, callback=0, state=1}.
	m.Mem.WriteWord(word.FromInt(1000), word.FromInt(2000))
	m.Mem.WriteWord(word.FromInt(1003), word.FromInt(1))
	m.Mem.WriteWord(word.FromInt(1006), word.Zero)
	m.Mem.WriteWord(word.FromInt(1009), word.FromInt(1))

	// One line record at 2000: x0,y0,x1,y1,r,g,b.
	fields := []int64{5, 6, 7, 8, 1, -1, 0}
	addr := word.FromInt(2000)
	for _, f := range fields {
		m.Mem.WriteWord(addr, word.FromInt(f))
		addr, _ = addr.Add(word.FromInt(wordWidth))
	}

	require.NoError(t, m.Step()) // LVB
	require.NoError(t, m.Step()) // EGPU -- the graphics poll runs in this same step
	require.NoError(t, m.Step()) // NOP -- state is already clear, nothing redrawn

	assert.Equal(t, 1, sink.calls)
	assert.Equal(t, int64(5), sink.lastX)
	// state cleared after service
	assert.Equal(t, int64(0), m.Mem.ReadWord(word.FromInt(1009)).Int())
}
