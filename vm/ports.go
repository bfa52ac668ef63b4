package vm

import (
	"github.com/jtristan/jt1701/tryte"
)

// PortCount is the number of addressable ports, 3^9: one per tryte value.
const PortCount = 19683

// Ports is the tryte-addressed I/O mailbox array (spec.md 4.I). Each port
// is a single-slot, non-blocking mailbox: try_in and try_out never block
// the CPU, grounded on the teacher's apu.go Step(), whose
// `select { case ch <- x: default: }` pattern is the same
// succeed-or-fail-immediately shape used here for both directions.
type Ports struct {
	toCPU   [PortCount]chan tryte.Tryte // external device -> CPU (try_in reads this)
	fromCPU [PortCount]chan tryte.Tryte // CPU -> external device (try_out writes this)
}

func portIndex(id tryte.Tryte) int { return int(id.Int()) + tryte.Max }

// NewPorts allocates a fresh port array, every slot empty.
func NewPorts() *Ports {
	p := &Ports{}
	for i := range p.toCPU {
		p.toCPU[i] = make(chan tryte.Tryte, 1)
		p.fromCPU[i] = make(chan tryte.Tryte, 1)
	}
	return p
}

// TryIn is the CPU side of a port read: it never blocks. ok is false if no
// value was waiting, in which case the CPU substitutes zero.
func (p *Ports) TryIn(id tryte.Tryte) (v tryte.Tryte, ok bool) {
	select {
	case v = <-p.toCPU[portIndex(id)]:
		return v, true
	default:
		return tryte.Zero, false
	}
}

// TryOut is the CPU side of a port write: it never blocks, and silently
// drops the value if the device hasn't drained the previous one (the
// spec leaves try_out failure handling to the implementer; this
// implementation drops rather than reports, consistent with try_in's
// silent absent-value convention).
func (p *Ports) TryOut(id tryte.Tryte, v tryte.Tryte) {
	select {
	case p.fromCPU[portIndex(id)] <- v:
	default:
	}
}

// DeviceSend is the external-device side matching TryIn: a device posts a
// value for the CPU to read. Returns false if the CPU hasn't drained the
// previous value yet.
func (p *Ports) DeviceSend(id tryte.Tryte, v tryte.Tryte) bool {
	select {
	case p.toCPU[portIndex(id)] <- v:
		return true
	default:
		return false
	}
}

// DeviceRecv is the external-device side matching TryOut: a device drains
// whatever the CPU last wrote, non-blocking.
func (p *Ports) DeviceRecv(id tryte.Tryte) (tryte.Tryte, bool) {
	select {
	case v := <-p.fromCPU[portIndex(id)]:
		return v, true
	default:
		return tryte.Zero, false
	}
}
