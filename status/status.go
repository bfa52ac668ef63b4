// Package status implements the CPU's Status Word: carry, sign, parity,
// interrupt-enable, privilege, interrupt-number and handler-table-base,
// all packed into one word.Word (spec.md 4.D). Trit positions are never
// exposed to callers; every field goes through a typed setter/getter pair
// that masks and merges rather than overwriting the whole word, the same
// discipline the teacher's nes/cpu.go status.encode/decodeFrom pair uses
// for its byte-packed flag register.
package status

import (
	"github.com/jtristan/jt1701/trit"
	"github.com/jtristan/jt1701/tryte"
	"github.com/jtristan/jt1701/word"
)

// Trit positions within the packed status word.
const (
	carryPos     = 0
	signPos      = 1
	parityPos    = 2
	interruptPos = 18
	privPos      = 19
)

// Word is the packed status register.
type Word struct {
	w word.Word
}

// New returns a status word with every field clear.
func New() Word {
	return Word{}
}

func (s Word) trit(pos int) trit.Trit { return s.w[pos] }

func (s *Word) setTrit(pos int, t trit.Trit) { s.w[pos] = t }

func boolToTrit(b bool) trit.Trit {
	if b {
		return trit.Pos
	}
	return trit.Zero
}

// Carry reports the carry flag.
func (s Word) Carry() bool { return s.trit(carryPos) == trit.Pos }

// SetCarryTrit sets the carry flag directly from a trit (carry is trit-valued:
// -1 means "borrow into high", 0 none, +1 "carry into high").
func (s *Word) SetCarryTrit(t trit.Trit) { s.setTrit(carryPos, t) }

// CarryTrit returns the raw carry trit.
func (s Word) CarryTrit() trit.Trit { return s.trit(carryPos) }

// SetCarry sets or clears the carry flag as a boolean.
func (s *Word) SetCarry(b bool) { s.setTrit(carryPos, boolToTrit(b)) }

// Sign reports the sign flag: Neg, Zero or Pos.
func (s Word) Sign() trit.Trit { return s.trit(signPos) }

// SetSign sets the sign flag from a trit.
func (s *Word) SetSign(t trit.Trit) { s.setTrit(signPos, t) }

// Parity reports the parity flag: Neg, Zero or Pos.
func (s Word) Parity() trit.Trit { return s.trit(parityPos) }

// SetParity sets the parity flag from a trit.
func (s *Word) SetParity(t trit.Trit) { s.setTrit(parityPos, t) }

// InterruptsEnabled reports the interrupt-enable flag.
func (s Word) InterruptsEnabled() bool { return s.trit(interruptPos) == trit.Pos }

// SetInterruptsEnabled sets or clears the interrupt-enable flag.
func (s *Word) SetInterruptsEnabled(b bool) { s.setTrit(interruptPos, boolToTrit(b)) }

// Privileged reports the privilege flag.
func (s Word) Privileged() bool { return s.trit(privPos) == trit.Pos }

// SetPrivileged sets or clears the privilege flag.
func (s *Word) SetPrivileged(b bool) { s.setTrit(privPos, boolToTrit(b)) }

// InterruptNumber returns the pending interrupt number, stored in the high
// tryte of the status word. Trits 0 and 1 of that tryte (word trits 18 and
// 19) belong to interrupt-enable and privilege, not the number, and are
// always masked out of the result.
func (s Word) InterruptNumber() tryte.Tryte {
	t := s.w.High()
	t[0] = trit.Zero
	t[1] = trit.Zero
	return t
}

// SetInterruptNumber masks-and-merges the high tryte with n, leaving every
// other field untouched -- including interrupt-enable and privilege, which
// also live in the high tryte (trits 18 and 19) and would otherwise be
// clobbered by a plain whole-tryte write.
func (s *Word) SetInterruptNumber(n tryte.Tryte) {
	cur := s.w.High()
	n[0] = cur[0]
	n[1] = cur[1]
	s.w = s.w.WithHigh(n)
}

// HandlerTableBase returns the interrupt handler table's base address,
// stored in the middle tryte of the status word.
func (s Word) HandlerTableBase() tryte.Tryte { return s.w.Mid() }

// SetHandlerTableBase masks-and-merges the middle tryte with base, leaving
// every other field untouched.
func (s *Word) SetHandlerTableBase(base tryte.Tryte) { s.w = s.w.WithMid(base) }

// Raw returns the underlying packed word, e.g. to save/restore a shadow
// copy across an interrupt.
func (s Word) Raw() word.Word { return s.w }

// FromRaw restores a status word from a previously saved packed word.
func FromRaw(w word.Word) Word { return Word{w: w} }

// SetFromResult derives sign and parity from an ALU result and sets carry
// directly from the operation's carry trit. Multiply and division clear
// carry (spec.md 4.D/4.G): callers pass trit.Zero as carry for those ops.
func (s *Word) SetFromResult(result word.Word, carry trit.Trit) {
	s.SetCarryTrit(carry)
	s.SetSign(result.Sign())
	s.SetParity(result.Parity())
}

// SetFromTryteResult is SetFromResult for tryte-sized ALU results.
func (s *Word) SetFromTryteResult(result tryte.Tryte, carry trit.Trit) {
	s.SetCarryTrit(carry)
	s.SetSign(result.Sign())
	s.SetParity(result.Parity())
}
