// Package vm implements the fetch/execute core: the CPU state machine
// (spec.md 4.H), its interaction with ports and interrupts (4.I/4.J), and
// a program loader and machine orchestrator. Grounded on the teacher's
// nes/cpu.go Do() (fetch-decode-execute-advance loop, stall/NMI handling)
// and nes/console.go (component wiring), generalized from a fixed 6502
// opcode table to the tagged-variant isa.Instruction dispatch the design
// note calls for.
package vm

import (
	"errors"

	"github.com/jtristan/jt1701/isa"
	"github.com/jtristan/jt1701/memory"
	"github.com/jtristan/jt1701/register"
	"github.com/jtristan/jt1701/status"
	"github.com/jtristan/jt1701/trit"
	"github.com/jtristan/jt1701/tryte"
	"github.com/jtristan/jt1701/word"
)

// State is one of the four fetch/execute states (spec.md 4.G).
type State int

const (
	Running State = iota
	Halted
	WaitingForInterrupt
	InInterrupt
)

func (s State) String() string {
	switch s {
	case Running:
		return "running"
	case Halted:
		return "halted"
	case WaitingForInterrupt:
		return "waiting-for-interrupt"
	case InInterrupt:
		return "in-interrupt"
	default:
		return "unknown"
	}
}

// Reserved fault interrupt numbers, delivered through the same handler
// table as any host-raised interrupt (spec.md 7: faults either raise an
// interrupt or halt).
var (
	illegalInstructionFault = tryte.FromInt(-1)
	divByZeroFault          = tryte.FromInt(-2)
)

// ErrHalted reports that Step was called after the CPU already halted.
var ErrHalted = errors.New("vm: cpu is halted")

// wordWidth is the number of trytes a word occupies in memory, i.e. the
// PC advance and stack-pointer increment for a word-wide operand.
const wordWidth = 3

// CPU is the register/status/memory/PC state plus its external
// collaborators (ports, interrupts). The register file, status word and
// memory are owned exclusively by the CPU for its whole lifetime
// (spec.md 3's lifecycle note).
type CPU struct {
	Regs       *register.File
	Mem        *memory.Memory
	Status     status.Word
	PC         word.Word
	Ports      *Ports
	Interrupts *Interrupts

	// GPUBase and GPUAttached record the address handed to EGPU, the
	// register operand that names the four-word graphics control block
	// (spec.md 6). A Machine polls GPUBase once GPUAttached is true;
	// until EGPU executes there is nothing to poll.
	GPUBase     word.Word
	GPUAttached bool

	state         State
	statusShadow  status.Word
	retPC         word.Word
	pendingSoft   *tryte.Tryte
	lastFault     error
	lastInstr     isa.Instruction
	instructionCt uint64
}

// New returns a CPU wired to the given memory, ports and interrupt queue,
// PC at 0, interrupts disabled, Running.
func New(mem *memory.Memory, ports *Ports, interrupts *Interrupts) *CPU {
	return &CPU{
		Regs:       register.New(),
		Mem:        mem,
		Ports:      ports,
		Interrupts: interrupts,
		state:      Running,
	}
}

// State reports the CPU's current fetch/execute state.
func (c *CPU) State() State { return c.state }

// LastFault reports the error that most recently halted the CPU, if any.
func (c *CPU) LastFault() error { return c.lastFault }

// InstructionCount reports how many instructions have been dispatched
// (for the monitor's status line).
func (c *CPU) InstructionCount() uint64 { return c.instructionCt }

// enterInterrupt performs the save/mask/vector sequence common to
// hardware interrupts, software INT, and faults (spec.md 4.J).
func (c *CPU) enterInterrupt(number tryte.Tryte, returnPC word.Word) {
	c.statusShadow = c.Status
	c.retPC = returnPC
	c.Status.SetInterruptsEnabled(false)
	c.Status.SetInterruptNumber(number)
	base := c.Status.HandlerTableBase()
	entryAddr, _ := word.FromTryte(base).Add(word.FromTryte(number))
	handlerLow := c.Mem.Read(entryAddr)
	c.PC = word.FromTryte(handlerLow)
	c.state = InInterrupt
}

// checkInterrupts samples the software-interrupt latch and the hardware
// interrupt queue, in that order, and delivers at most one per call. It
// returns true if an interrupt was taken (the caller should not also
// fetch an instruction this Step).
func (c *CPU) checkInterrupts() bool {
	if !c.Status.InterruptsEnabled() {
		return false
	}
	if c.pendingSoft != nil {
		n := *c.pendingSoft
		c.pendingSoft = nil
		c.enterInterrupt(n, c.PC)
		return true
	}
	if n, ok := c.Interrupts.Pending(); ok {
		c.enterInterrupt(n, c.PC)
		return true
	}
	return false
}

// fault routes an internal fault (illegal instruction, division by zero)
// to the interrupt path if interrupts are enabled, otherwise halts the
// CPU with the fault recorded (spec.md 7).
func (c *CPU) fault(number tryte.Tryte, err error) {
	if c.Status.InterruptsEnabled() {
		c.enterInterrupt(number, c.PC)
		return
	}
	c.lastFault = err
	c.state = Halted
}

// Step executes one unit of fetch/execute: in Running state this samples
// pending interrupts, then fetches, decodes and dispatches one
// instruction; in WaitingForInterrupt it polls for a wakeup; in Halted it
// returns ErrHalted; InInterrupt behaves like Running except interrupts
// are masked by the status word's own interrupt-enable flag (so
// checkInterrupts is a no-op there without special casing).
func (c *CPU) Step() error {
	switch c.state {
	case Halted:
		return ErrHalted
	case WaitingForInterrupt:
		if n, ok := c.Interrupts.Pending(); ok {
			c.enterInterrupt(n, c.PC)
		}
		return nil
	}

	if c.checkInterrupts() {
		return nil
	}

	instr := isa.Decode(c.Mem.ReadWord(c.PC))
	c.lastInstr = instr
	c.instructionCt++
	if err := c.dispatch(instr); err != nil {
		return err
	}
	if c.state == Halted && c.lastFault != nil {
		return c.lastFault
	}
	return nil
}

// LastInstruction returns the most recently decoded instruction, for the
// monitor's disassembly view.
func (c *CPU) LastInstruction() isa.Instruction { return c.lastInstr }

// dispatch is the single exhaustive switch over every opcode variant
// (spec.md 9's design note: one switch, no per-opcode dynamic dispatch).
// It always returns nil: a fault that is not routed to the interrupt path
// halts the CPU and is recorded in lastFault, which Step then returns.
func (c *CPU) dispatch(i isa.Instruction) error {
	advance := true

	switch i.Op {
	case isa.HLT:
		c.state = Halted
		advance = false

	case isa.NOP:
		// no-op

	case isa.STI:
		c.Status.SetInterruptsEnabled(false)
	case isa.BTI:
		c.Status.SetInterruptsEnabled(true)

	case isa.WFI:
		c.state = WaitingForInterrupt

	case isa.RTI:
		c.Status = c.statusShadow
		c.PC = c.retPC
		c.state = Running
		advance = false

	case isa.INT:
		n := tryte.FromInt(i.Imm)
		if c.Status.InterruptsEnabled() {
			next, _ := c.PC.Add(word.FromInt(wordWidth))
			c.enterInterrupt(n, next)
			advance = false
		} else {
			// Interrupts disabled: queue for delivery once re-enabled and
			// fall through to the normal PC advance, or this INT would
			// refetch and re-queue itself forever.
			c.pendingSoft = &n
		}

	case isa.LHT:
		c.Status.SetHandlerTableBase(c.Regs.ReadTryte(i.Ra))

	case isa.LDRI:
		addr, _ := c.Regs.ReadWord(i.Rb).Add(word.FromInt(i.Imm))
		c.Regs.WriteWord(i.Ra, c.Mem.ReadWord(addr))
	case isa.LDRR:
		addr, _ := c.Regs.ReadWord(i.Rb).Add(c.Regs.ReadWord(i.Rc))
		c.Regs.WriteWord(i.Ra, c.Mem.ReadWord(addr))
	case isa.LDRRI:
		base, _ := c.Regs.ReadWord(i.Rb).Add(c.Regs.ReadWord(i.Rc))
		addr, _ := base.Add(word.FromInt(i.Imm))
		c.Regs.WriteWord(i.Ra, c.Mem.ReadWord(addr))
	case isa.LDRPCI:
		addr, _ := c.PC.Add(word.FromInt(i.Imm))
		c.Regs.WriteWord(i.Ra, c.Mem.ReadWord(addr))

	case isa.STRI:
		addr, _ := c.Regs.ReadWord(i.Rb).Add(word.FromInt(i.Imm))
		c.Mem.WriteWord(addr, c.Regs.ReadWord(i.Ra))
	case isa.STRR:
		addr, _ := c.Regs.ReadWord(i.Rb).Add(c.Regs.ReadWord(i.Rc))
		c.Mem.WriteWord(addr, c.Regs.ReadWord(i.Ra))
	case isa.STRRI:
		base, _ := c.Regs.ReadWord(i.Rb).Add(c.Regs.ReadWord(i.Rc))
		addr, _ := base.Add(word.FromInt(i.Imm))
		c.Mem.WriteWord(addr, c.Regs.ReadWord(i.Ra))
	case isa.STRPCI:
		addr, _ := c.PC.Add(word.FromInt(i.Imm))
		c.Mem.WriteWord(addr, c.Regs.ReadWord(i.Ra))

	case isa.MOVRR:
		c.Regs.WriteWord(i.Ra, c.Regs.ReadWord(i.Rb))
	case isa.MOVRI, isa.LVB:
		c.Regs.WriteWord(i.Ra, word.FromInt(i.Imm))
	case isa.CALL:
		target, _ := c.Regs.ReadWord(i.Ra).Add(word.FromInt(i.Imm))
		ret, _ := c.PC.Add(word.FromInt(wordWidth))
		c.pushWord(ret)
		c.PC = target
		advance = false

	case isa.ADD, isa.ADDT, isa.SUB, isa.SUBT, isa.MUL, isa.MULT,
		isa.EQOT, isa.EQOTT, isa.EREM, isa.EREMT:
		if err := c.execALU(i); err != nil {
			c.fault(divByZeroFault, err)
			advance = false
		}

	case isa.NOT, isa.NOTT:
		c.execUnary(i)
	case isa.AND, isa.ANDT, isa.OR, isa.ORT:
		c.execBinaryLogic(i)
	case isa.LSHR, isa.LSHRT, isa.LSHI, isa.LSHIT,
		isa.RSHR, isa.RSHRT, isa.RSHI, isa.RSHIT,
		isa.ROTR, isa.ROTRT, isa.ROTI, isa.ROTIT:
		c.execShiftRotate(i)
	case isa.OWO, isa.OWOT, isa.UWU, isa.UWUT:
		c.execShapeMask(i)

	case isa.PUSHR3:
		r1 := c.Regs.ReadWord(i.Rb)
		r2 := c.Regs.ReadWord(i.Rc)
		v, _ := c.Regs.ReadWord(i.Ra).Add(r1.Mul(r2))
		c.pushWord(v)
	case isa.PUSHIMW:
		c.pushWord(word.FromInt(i.Imm))
	case isa.PUSHIMT:
		c.pushTryte(tryte.FromInt(i.Imm))
	case isa.PUSHMEM:
		base, _ := c.Regs.ReadWord(i.Ra).Add(c.Regs.ReadWord(i.Rb))
		offs, _ := c.Regs.ReadWord(i.Rc).Add(word.FromInt(i.Imm))
		addr := base.Mul(offs)
		c.pushWord(c.Mem.ReadWord(addr))
	case isa.POP:
		c.Regs.WriteWord(i.Ra, c.popWord())

	case isa.CMP:
		diff, carry := c.Regs.ReadWord(i.Ra).Sub(c.Regs.ReadWord(i.Rb))
		c.Status.SetFromResult(diff, carry)
	case isa.SPT:
		c.Status.SetParity(c.Regs.ReadWord(i.Ra).Parity())
	case isa.SST:
		c.Status.SetSign(c.Regs.ReadWord(i.Ra).Sign())

	case isa.BR_R, isa.BR_I, isa.BR_M,
		isa.BNE_R, isa.BNE_I, isa.BNE_M,
		isa.BGT_R, isa.BGT_I, isa.BGT_M,
		isa.BLT_R, isa.BLT_I, isa.BLT_M,
		isa.BEQ_R, isa.BEQ_I, isa.BEQ_M,
		isa.BGEQ_R, isa.BGEQ_I, isa.BGEQ_M,
		isa.BLEQ_R, isa.BLEQ_I, isa.BLEQ_M,
		isa.BOFN_R, isa.BOFN_I, isa.BOFN_M,
		isa.BOFZ_R, isa.BOFZ_I, isa.BOFZ_M,
		isa.BOFP_R, isa.BOFP_I, isa.BOFP_M,
		isa.BPN_R, isa.BPN_I, isa.BPN_M,
		isa.BPZ_R, isa.BPZ_I, isa.BPZ_M,
		isa.BPP_R, isa.BPP_I, isa.BPP_M:
		if c.branchPredicate(i.Op) {
			c.PC = c.branchTarget(i)
			advance = false
		}

	case isa.INREG:
		v, ok := c.Ports.TryIn(c.Regs.ReadTryte(i.Rb))
		if !ok {
			v = tryte.Zero
		}
		c.Regs.WriteTryte(i.Ra, v)
	case isa.OUTREG:
		c.Ports.TryOut(c.Regs.ReadTryte(i.Rb), c.Regs.ReadTryte(i.Ra))
	case isa.OUTIMM:
		c.Ports.TryOut(tryte.FromInt(i.Imm), c.Regs.ReadTryte(i.Ra))

	case isa.EGPU:
		c.GPUBase = c.Regs.ReadWord(i.Ra)
		c.GPUAttached = true

	case isa.INVALID:
		c.fault(illegalInstructionFault, errIllegalInstruction)
		advance = false

	default:
		c.fault(illegalInstructionFault, errIllegalInstruction)
		advance = false
	}

	if advance {
		c.PC, _ = c.PC.Add(word.FromInt(wordWidth))
	}
	return nil
}

var errIllegalInstruction = errors.New("vm: illegal instruction")

// pushWord and pushTryte implement the upward-growing stack: SP is
// incremented by the operand's width after the value is stored
// (spec.md 4.G).
func (c *CPU) pushWord(v word.Word) {
	sp := c.Regs.ReadWord(register.SP)
	c.Mem.WriteWord(sp, v)
	next, _ := sp.Add(word.FromInt(wordWidth))
	c.Regs.WriteWord(register.SP, next)
}

func (c *CPU) pushTryte(v tryte.Tryte) {
	sp := c.Regs.ReadWord(register.SP)
	c.Mem.Write(sp, v)
	next, _ := sp.Add(word.FromInt(1))
	c.Regs.WriteWord(register.SP, next)
}

// popWord is the word-width counterpart to pushWord (spec.md leaves POP's
// width unspecified since there is no size-selector trit on this opcode;
// this implementation always pops a full word, as every load/store
// operation and every push except PUSHIMT also works on a full word).
func (c *CPU) popWord() word.Word {
	sp, _ := c.Regs.ReadWord(register.SP).Sub(word.FromInt(wordWidth))
	c.Regs.WriteWord(register.SP, sp)
	return c.Mem.ReadWord(sp)
}

// execALU implements the ALU family's `d = s0 op (s1+imm)` shape for both
// sizes (spec.md 4.G). ADD/SUB report the add/sub chain's carry; MUL and
// the two division results clear carry. EQOT/EREM fault on division by
// zero, routed through c.fault by the caller.
func (c *CPU) execALU(i isa.Instruction) error {
	tryteSize := i.Op == isa.ADDT || i.Op == isa.SUBT || i.Op == isa.MULT ||
		i.Op == isa.EQOTT || i.Op == isa.EREMT

	if tryteSize {
		s1 := c.Regs.ReadTryte(i.Rc)
		t, _ := s1.Add(tryte.FromInt(i.Imm))
		s0 := c.Regs.ReadTryte(i.Rb)
		switch i.Op {
		case isa.ADDT:
			r, carry := s0.Add(t)
			c.Status.SetFromTryteResult(r, carry)
			c.Regs.WriteTryte(i.Ra, r)
		case isa.SUBT:
			r, carry := s0.Sub(t)
			c.Status.SetFromTryteResult(r, carry)
			c.Regs.WriteTryte(i.Ra, r)
		case isa.MULT:
			r := s0.Mul(t)
			c.Status.SetFromTryteResult(r, trit.Zero)
			c.Regs.WriteTryte(i.Ra, r)
		case isa.EQOTT, isa.EREMT:
			q, r, err := s0.DivMod(t)
			if err != nil {
				return err
			}
			if i.Op == isa.EQOTT {
				c.Status.SetFromTryteResult(q, trit.Zero)
				c.Regs.WriteTryte(i.Ra, q)
			} else {
				c.Status.SetFromTryteResult(r, trit.Zero)
				c.Regs.WriteTryte(i.Ra, r)
			}
		}
		return nil
	}

	s1 := c.Regs.ReadWord(i.Rc)
	t, _ := s1.Add(word.FromInt(i.Imm))
	s0 := c.Regs.ReadWord(i.Rb)
	switch i.Op {
	case isa.ADD:
		r, carry := s0.Add(t)
		c.Status.SetFromResult(r, carry)
		c.Regs.WriteWord(i.Ra, r)
	case isa.SUB:
		r, carry := s0.Sub(t)
		c.Status.SetFromResult(r, carry)
		c.Regs.WriteWord(i.Ra, r)
	case isa.MUL:
		r := s0.Mul(t)
		c.Status.SetFromResult(r, trit.Zero)
		c.Regs.WriteWord(i.Ra, r)
	case isa.EQOT, isa.EREM:
		q, r, err := s0.DivMod(t)
		if err != nil {
			return err
		}
		if i.Op == isa.EQOT {
			c.Status.SetFromResult(q, trit.Zero)
			c.Regs.WriteWord(i.Ra, q)
		} else {
			c.Status.SetFromResult(r, trit.Zero)
			c.Regs.WriteWord(i.Ra, r)
		}
	}
	return nil
}

// execUnary implements NOT/NOTT: rd = !rs.
func (c *CPU) execUnary(i isa.Instruction) {
	if i.Op == isa.NOTT {
		c.Regs.WriteTryte(i.Ra, c.Regs.ReadTryte(i.Rb).Not())
		return
	}
	c.Regs.WriteWord(i.Ra, c.Regs.ReadWord(i.Rb).Not())
}

// execBinaryLogic implements AND/OR (word and tryte): rd = rs0 op rs1.
func (c *CPU) execBinaryLogic(i isa.Instruction) {
	tryteSize := i.Op == isa.ANDT || i.Op == isa.ORT
	and := i.Op == isa.AND || i.Op == isa.ANDT
	if tryteSize {
		a, b := c.Regs.ReadTryte(i.Rb), c.Regs.ReadTryte(i.Rc)
		if and {
			c.Regs.WriteTryte(i.Ra, a.And(b))
		} else {
			c.Regs.WriteTryte(i.Ra, a.Or(b))
		}
		return
	}
	a, b := c.Regs.ReadWord(i.Rb), c.Regs.ReadWord(i.Rc)
	if and {
		c.Regs.WriteWord(i.Ra, a.And(b))
	} else {
		c.Regs.WriteWord(i.Ra, a.Or(b))
	}
}

// execShiftRotate implements LSH/RSH/ROT, each with a register-supplied
// or immediate shift amount, at both sizes. A negative amount is treated
// as a shift/rotate in the opposite direction (spec.md 9's open question,
// resolved this way since Word/Tryte ShiftLeft already define negative k
// that way and Rotate is direction-symmetric by construction).
func (c *CPU) execShiftRotate(i isa.Instruction) {
	var amount int64
	switch i.Op {
	case isa.LSHR, isa.LSHRT, isa.RSHR, isa.RSHRT, isa.ROTR, isa.ROTRT:
		amount = c.Regs.ReadWord(i.Rc).Int()
	default:
		amount = i.Imm
	}
	k := int(amount)

	tryteSize := i.Op == isa.LSHRT || i.Op == isa.LSHIT ||
		i.Op == isa.RSHRT || i.Op == isa.RSHIT ||
		i.Op == isa.ROTRT || i.Op == isa.ROTIT

	left := i.Op == isa.LSHR || i.Op == isa.LSHRT || i.Op == isa.LSHI || i.Op == isa.LSHIT
	rotate := i.Op == isa.ROTR || i.Op == isa.ROTRT || i.Op == isa.ROTI || i.Op == isa.ROTIT

	if tryteSize {
		s := c.Regs.ReadTryte(i.Rb)
		switch {
		case rotate:
			c.Regs.WriteTryte(i.Ra, s.Rotate(k))
		case left:
			c.Regs.WriteTryte(i.Ra, s.ShiftLeft(k))
		default:
			c.Regs.WriteTryte(i.Ra, s.ShiftRight(k))
		}
		return
	}
	s := c.Regs.ReadWord(i.Rb)
	switch {
	case rotate:
		c.Regs.WriteWord(i.Ra, s.Rotate(k))
	case left:
		c.Regs.WriteWord(i.Ra, s.ShiftLeft(k))
	default:
		c.Regs.WriteWord(i.Ra, s.ShiftRight(k))
	}
}

// execShapeMask implements OWO/UWU, the assembler's constant-synthesis
// helpers: rd = rs AND an opcode-derived trit pattern. OWO's pattern sets
// every even trit position to +1; UWU's sets every odd position to +1 --
// an implementer-chosen pair of complementary masks, since the spec names
// the instructions only as "opcode-derived pattern" without specifying
// one.
func (c *CPU) execShapeMask(i isa.Instruction) {
	odd := i.Op == isa.UWU || i.Op == isa.UWUT
	tryteSize := i.Op == isa.OWOT || i.Op == isa.UWUT
	if tryteSize {
		mask := shapeMaskTryte(odd)
		c.Regs.WriteTryte(i.Ra, c.Regs.ReadTryte(i.Rb).And(mask))
		return
	}
	mask := shapeMaskWord(odd)
	c.Regs.WriteWord(i.Ra, c.Regs.ReadWord(i.Rb).And(mask))
}

func shapeMaskTryte(odd bool) tryte.Tryte {
	var t tryte.Tryte
	for pos := 0; pos < tryte.Width; pos++ {
		if (pos%2 == 1) == odd {
			t[pos] = trit.Pos
		}
	}
	return t
}

func shapeMaskWord(odd bool) word.Word {
	var w word.Word
	for pos := 0; pos < word.Width; pos++ {
		if (pos%2 == 1) == odd {
			w[pos] = trit.Pos
		}
	}
	return w
}

// branchPredicate evaluates the condition family for a branch opcode from
// the status word (spec.md 4.G's twelve condition families).
func (c *CPU) branchPredicate(op isa.Opcode) bool {
	sign := c.Status.Sign()
	carry := c.Status.CarryTrit()
	parity := c.Status.Parity()
	switch op {
	case isa.BR_R, isa.BR_I, isa.BR_M:
		return true
	case isa.BNE_R, isa.BNE_I, isa.BNE_M:
		return sign != trit.Zero
	case isa.BGT_R, isa.BGT_I, isa.BGT_M:
		return sign == trit.Pos
	case isa.BLT_R, isa.BLT_I, isa.BLT_M:
		return sign == trit.Neg
	case isa.BEQ_R, isa.BEQ_I, isa.BEQ_M:
		return sign == trit.Zero
	case isa.BGEQ_R, isa.BGEQ_I, isa.BGEQ_M:
		return sign != trit.Neg
	case isa.BLEQ_R, isa.BLEQ_I, isa.BLEQ_M:
		return sign != trit.Pos
	case isa.BOFN_R, isa.BOFN_I, isa.BOFN_M:
		return carry == trit.Neg
	case isa.BOFZ_R, isa.BOFZ_I, isa.BOFZ_M:
		return carry == trit.Zero
	case isa.BOFP_R, isa.BOFP_I, isa.BOFP_M:
		return carry == trit.Pos
	case isa.BPN_R, isa.BPN_I, isa.BPN_M:
		return parity == trit.Neg
	case isa.BPZ_R, isa.BPZ_I, isa.BPZ_M:
		return parity == trit.Zero
	case isa.BPP_R, isa.BPP_I, isa.BPP_M:
		return parity == trit.Pos
	default:
		return false
	}
}

// branchTarget computes the jump address for the taken branch's
// addressing form (spec.md 4.G): R is (r0+r1)*r2, I is the immediate
// word itself, M loads the target word from memory at
// *((r0+r1)*(r2+imm)).
func (c *CPU) branchTarget(i isa.Instruction) word.Word {
	switch formOf(i.Op) {
	case formImmediate:
		return word.FromInt(i.Imm)
	case formMemory:
		base, _ := c.Regs.ReadWord(i.Ra).Add(c.Regs.ReadWord(i.Rb))
		offs, _ := c.Regs.ReadWord(i.Rc).Add(word.FromInt(i.Imm))
		return c.Mem.ReadWord(base.Mul(offs))
	default: // formRegister
		sum, _ := c.Regs.ReadWord(i.Ra).Add(c.Regs.ReadWord(i.Rb))
		return sum.Mul(c.Regs.ReadWord(i.Rc))
	}
}

type addrForm int

const (
	formRegister addrForm = iota
	formImmediate
	formMemory
)

// formOf classifies a branch opcode by its addressing-form suffix.
func formOf(op isa.Opcode) addrForm {
	switch op {
	case isa.BR_I, isa.BNE_I, isa.BGT_I, isa.BLT_I, isa.BEQ_I, isa.BGEQ_I,
		isa.BLEQ_I, isa.BOFN_I, isa.BOFZ_I, isa.BOFP_I, isa.BPN_I, isa.BPZ_I, isa.BPP_I:
		return formImmediate
	case isa.BR_M, isa.BNE_M, isa.BGT_M, isa.BLT_M, isa.BEQ_M, isa.BGEQ_M,
		isa.BLEQ_M, isa.BOFN_M, isa.BOFZ_M, isa.BOFP_M, isa.BPN_M, isa.BPZ_M, isa.BPP_M:
		return formMemory
	default:
		return formRegister
	}
}
