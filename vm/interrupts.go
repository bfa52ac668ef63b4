package vm

import "github.com/jtristan/jt1701/tryte"

// interruptQueueDepth bounds the number of interrupts a producer can have
// in flight before a send is dropped (spec.md 5: producers never block
// the CPU, and delivery failure "collapses to not yet").
const interruptQueueDepth = 16

// Interrupts is the many-producer, single-consumer channel of interrupt
// numbers feeding the CPU (spec.md 4.J/5), grounded on the teacher's
// nmiTriggered flag in nes/cpu.go generalized from a single boolean latch
// to a queue of tryte-valued interrupt numbers.
type Interrupts struct {
	ch chan tryte.Tryte
}

// NewInterrupts returns an empty interrupt queue.
func NewInterrupts() *Interrupts {
	return &Interrupts{ch: make(chan tryte.Tryte, interruptQueueDepth)}
}

// Send is the producer side: a non-blocking attempt to queue an
// interrupt. Returns false if the queue is full; the caller may retry.
func (q *Interrupts) Send(n tryte.Tryte) bool {
	select {
	case q.ch <- n:
		return true
	default:
		return false
	}
}

// Pending is the CPU side: a non-blocking poll for the next queued
// interrupt, sampled between instructions.
func (q *Interrupts) Pending() (n tryte.Tryte, ok bool) {
	select {
	case n = <-q.ch:
		return n, true
	default:
		return tryte.Zero, false
	}
}
