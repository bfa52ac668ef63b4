package vm

import (
	"errors"

	"github.com/golang/glog"
	"github.com/jtristan/jt1701/memory"
	"github.com/jtristan/jt1701/word"
)

// Sink receives rasterizer commands from the graphics opcodes (spec.md
// 4.L). vm depends only on this narrow interface, not on the gpu package,
// so a program can run headless with a nil Sink.
type Sink interface {
	DrawLine(x0, y0, x1, y1 int64, r, g, b int64)
}

// Machine wires a CPU to its memory, ports, interrupts and an optional
// graphics sink, mirroring the teacher's NesConsole wiring its CPU to
// PPU/APU/controller in nes/console.go. Unlike the teacher's fixed
// 6502+PPU+APU triple, a Machine's collaborators are independently
// optional: Sink may be nil for a program that never touches the control
// block.
type Machine struct {
	CPU        *CPU
	Mem        *memory.Memory
	Ports      *Ports
	Interrupts *Interrupts
	Sink       Sink

	stepCt uint64
}

// NewMachine builds a Machine with fresh memory, ports and an interrupt
// queue, and a CPU wired to all three. sink may be nil.
func NewMachine(sink Sink) *Machine {
	mem := memory.New()
	ports := NewPorts()
	interrupts := NewInterrupts()
	return &Machine{
		CPU:        New(mem, ports, interrupts),
		Mem:        mem,
		Ports:      ports,
		Interrupts: interrupts,
		Sink:       sink,
	}
}

// Load parses and installs a program image at base, the machine-level
// counterpart to the teacher's NewCartridge+NewConsole pair.
func (m *Machine) Load(data []byte, base word.Word) error {
	prog, err := LoadProgram(data)
	if err != nil {
		return err
	}
	prog.LoadInto(m.Mem, base)
	m.CPU.PC = base
	return nil
}

// ErrStillRunning is returned by Run when a step budget is exhausted
// before the CPU halted.
var ErrStillRunning = errors.New("vm: machine still running")

// Step advances the CPU by one instruction (or interrupt delivery) and
// services the graphics control block if a Sink is attached, the same
// per-step shape as NesConsole.Step driving PPU/APU off the CPU's cycle
// count.
func (m *Machine) Step() error {
	err := m.CPU.Step()
	m.stepCt++
	if m.Sink != nil && m.CPU.GPUAttached {
		m.serviceGraphics()
	}
	return err
}

// Run steps the machine until it halts, a fault surfaces, or budget steps
// have elapsed (budget<=0 means unbounded). It returns ErrStillRunning if
// the budget was exhausted without the CPU halting, the same
// bounded-run shape the monitor's "step N" command needs.
func (m *Machine) Run(budget int) error {
	for budget <= 0 || int(m.stepCt) < budget {
		if err := m.Step(); err != nil {
			if errors.Is(err, ErrHalted) {
				return nil
			}
			return err
		}
	}
	return ErrStillRunning
}

// StepCount reports how many Step calls have been issued (for the
// monitor's status line and Run's budget check).
func (m *Machine) StepCount() uint64 { return m.stepCt }

const (
	gcVectorPtr = iota
	gcBufferSize
	gcCallback
	gcState
)

// serviceGraphics polls the control block and, if state is non-zero,
// replays the vector buffer's line commands into the sink, then clears
// state, mirroring ui's per-frame "pull a finished buffer, upload it,
// clear the ready flag" cycle.
func (m *Machine) serviceGraphics() {
	ctrl := func(i int) word.Word {
		addr, _ := m.CPU.GPUBase.Add(word.FromInt(int64(i) * wordWidth))
		return m.Mem.ReadWord(addr)
	}
	state := ctrl(gcState)
	if state.Int() == 0 {
		return
	}
	vecPtr := ctrl(gcVectorPtr)
	count := ctrl(gcBufferSize).Int()
	const recordWords = 7 // x0,y0,x1,y1,r,g,b, each a packed word
	for i := int64(0); i < count; i++ {
		recAddr, _ := vecPtr.Add(word.FromInt(i * recordWords * wordWidth))
		field := func(j int64) int64 {
			a, _ := recAddr.Add(word.FromInt(j * wordWidth))
			return m.Mem.ReadWord(a).Int()
		}
		m.Sink.DrawLine(field(0), field(1), field(2), field(3), field(4), field(5), field(6))
	}
	clearAddr, _ := m.CPU.GPUBase.Add(word.FromInt(gcState * wordWidth))
	m.Mem.WriteWord(clearAddr, word.Zero)
	glog.Infof("vm: flushed %d line commands from graphics control block", count)
}
