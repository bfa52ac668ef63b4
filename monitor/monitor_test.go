package monitor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jtristan/jt1701/isa"
	"github.com/jtristan/jt1701/vm"
	"github.com/jtristan/jt1701/word"
)

func newTestMachine(t *testing.T, instrs ...isa.Instruction) *vm.Machine {
	t.Helper()
	words := make([]word.Word, len(instrs))
	for i, ins := range instrs {
		words[i] = isa.Encode(ins)
	}
	m := vm.NewMachine(nil)
	require.NoError(t, m.Load(vm.EncodeProgram(words), word.Zero))
	return m
}

func TestStepCommandAdvancesMachine(t *testing.T) {
	m := newTestMachine(t, isa.Instruction{Op: isa.NOP}, isa.Instruction{Op: isa.HLT})
	mon := New(m)
	mon.run("s")
	assert.Equal(t, uint64(1), m.StepCount())
	assert.Nil(t, mon.lastErr)
}

func TestStepCommandWithCountRunsToHalt(t *testing.T) {
	m := newTestMachine(t, isa.Instruction{Op: isa.NOP}, isa.Instruction{Op: isa.HLT})
	mon := New(m)
	mon.run("s 5")
	assert.ErrorIs(t, mon.lastErr, vm.ErrHalted)
}

func TestBreakpointTogglesAndHalts(t *testing.T) {
	m := newTestMachine(t, isa.Instruction{Op: isa.NOP}, isa.Instruction{Op: isa.NOP}, isa.Instruction{Op: isa.HLT})
	mon := New(m)
	mon.run("br 3")
	assert.True(t, mon.breakpoints[3])
	mon.run("s 5")
	assert.Equal(t, int64(3), m.CPU.PC.Int())
	assert.Nil(t, mon.lastErr)
}

func TestUnknownCommandRecordsError(t *testing.T) {
	m := newTestMachine(t, isa.Instruction{Op: isa.HLT})
	mon := New(m)
	mon.run("zzz")
	assert.Error(t, mon.lastErr)
}

func TestResetZeroesPC(t *testing.T) {
	m := newTestMachine(t, isa.Instruction{Op: isa.NOP}, isa.Instruction{Op: isa.HLT})
	mon := New(m)
	mon.run("s")
	mon.run("r")
	assert.Equal(t, int64(0), m.CPU.PC.Int())
}

func TestQuitCommandSetsQuitting(t *testing.T) {
	m := newTestMachine(t, isa.Instruction{Op: isa.HLT})
	mon := New(m)
	mon.run("q")
	assert.True(t, mon.quitting)
}
