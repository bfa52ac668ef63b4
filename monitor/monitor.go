// Package monitor implements the interactive debugger (spec.md 4.M): a
// Bubble Tea program offering the teacher's DebugConsole command set
// (s/p/br/r/q) over lipgloss-rendered output instead of bufio.Scanner and
// fmt.Println, grounded on hejops-gone/cpu/debugger.go's tea.Model shape
// (single-struct Update/View, spew.Sdump for the raw-state dump).
package monitor

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/davecgh/go-spew/spew"

	"github.com/jtristan/jt1701/isa"
	"github.com/jtristan/jt1701/vm"
	"github.com/jtristan/jt1701/word"
)

var headerStyle = lipgloss.NewStyle().Bold(true)
var errStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))

// Model is the debugger's Bubble Tea state: the machine under inspection,
// the in-progress command line, and the breakpoint set (addresses toggled
// by "br", the same linear-scan semantics as DebugConsole.checkBreak).
type Model struct {
	Machine     *vm.Machine
	input       string
	breakpoints map[int64]bool
	lastErr     error
	lastOutput  string
	quitting    bool
}

// New returns a monitor model for m, the teacher's *DebugConsole{NesConsole}
// wrapping generalized to wrapping a *vm.Machine.
func New(m *vm.Machine) Model {
	return Model{Machine: m, breakpoints: make(map[int64]bool)}
}

// Run starts the Bubble Tea event loop.
func Run(m *vm.Machine) error {
	_, err := tea.NewProgram(New(m)).Run()
	return err
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch keyMsg.Type {
	case tea.KeyCtrlC:
		m.quitting = true
		return m, tea.Quit
	case tea.KeyEnter:
		m.run(m.input)
		m.input = ""
		if m.quitting {
			return m, tea.Quit
		}
	case tea.KeyBackspace:
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
	case tea.KeySpace:
		m.input += " "
	case tea.KeyRunes:
		m.input += string(keyMsg.Runes)
	}
	return m, nil
}

// run dispatches one command line, the same five verbs
// debug_console.go's Step switch recognises.
func (m *Model) run(line string) {
	m.lastErr = nil
	args := strings.Fields(line)
	if len(args) == 0 {
		return
	}
	switch args[0] {
	case "s", "step":
		n := 1
		if len(args) > 1 {
			if v, err := strconv.Atoi(args[1]); err == nil {
				n = v
			}
		}
		m.step(n)
	case "p", "print":
		m.lastOutput = m.printState()
	case "br", "breakpoint":
		if len(args) < 2 {
			m.lastErr = fmt.Errorf("monitor: br requires an address")
			return
		}
		addr, err := strconv.ParseInt(args[1], 10, 64)
		if err != nil {
			m.lastErr = err
			return
		}
		m.breakpoints[addr] = !m.breakpoints[addr]
		m.lastOutput = fmt.Sprintf("breakpoint at %d: %v", addr, m.breakpoints[addr])
	case "r", "reset":
		m.Machine.CPU.PC = word.Zero
		m.lastOutput = "reset"
	case "q", "quit":
		m.quitting = true
	default:
		m.lastErr = fmt.Errorf("monitor: unknown command %q", args[0])
	}
}

// step advances the machine up to n instructions, stopping early on a
// fault/halt or a breakpoint hit, mirroring stepCommand's per-step
// checkBreak poll.
func (m *Model) step(n int) {
	for i := 0; i < n; i++ {
		if err := m.Machine.Step(); err != nil {
			m.lastErr = err
			m.lastOutput = m.printState()
			return
		}
		if m.breakpoints[m.Machine.CPU.PC.Int()] {
			m.lastOutput = fmt.Sprintf("breakpoint hit at %d\n%s", m.Machine.CPU.PC.Int(), m.printState())
			return
		}
	}
	m.lastOutput = m.printState()
}

// printState is the "p" command's output: PC/state/instruction-count
// summary, the upcoming instruction disassembled, and a go-spew dump of
// the register file -- the ergonomic equivalent of printstack's raw
// fmt.Printf loop.
func (m Model) printState() string {
	cpu := m.Machine.CPU
	instr := isa.Decode(cpu.Mem.ReadWord(cpu.PC))
	return fmt.Sprintf(
		"PC=%d  state=%s  instructions=%d\nnext: %s\n%s",
		cpu.PC.Int(), cpu.State(), cpu.InstructionCount(), instr,
		spew.Sdump(cpu.Regs),
	)
}

func (m Model) View() string {
	if m.quitting {
		return "quitting.\n"
	}
	cpu := m.Machine.CPU
	header := headerStyle.Render(fmt.Sprintf(
		"jt1701 monitor -- state=%s steps=%d", cpu.State(), m.Machine.StepCount()))
	body := m.lastOutput
	if m.lastErr != nil {
		body = errStyle.Render("error: " + m.lastErr.Error())
	}
	prompt := "> " + m.input
	return lipgloss.JoinVertical(lipgloss.Left, header, body, "", prompt)
}
