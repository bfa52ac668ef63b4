// Package memory implements the paged data memory: a sparse map from
// word-address to tryte, organised as 3^9-tryte pages keyed by the
// high-order word bits (spec.md 4.F). It is grounded on the teacher's
// nes/ram.go (flat addressable storage) combined with nes/mapper.go's
// address-range dispatch, because the full 3^27-tryte address space cannot
// be a flat Go array the way NES's 2KB WRAM is.
package memory

import (
	"github.com/jtristan/jt1701/tryte"
	"github.com/jtristan/jt1701/word"
)

// PageSize is the number of trytes per page, 3^9.
const PageSize = 19683

// pageOffset re-centres a signed low tryte ([-9841,+9841]) into an
// unsigned page index [0, PageSize).
func pageOffset(low tryte.Tryte) int {
	return int(low.Int()) + tryte.Max
}

// pageKey is a word address with its low tryte zeroed, identifying a page.
type pageKey struct {
	mid, high int64
}

func keyOf(addr word.Word) pageKey {
	return pageKey{mid: addr.Mid().Int(), high: addr.High().Int()}
}

type page [PageSize]tryte.Tryte

// Memory is the sparse, lazily-allocated paged address space.
type Memory struct {
	pages map[pageKey]*page
}

// New returns an empty memory with no pages allocated.
func New() *Memory {
	return &Memory{pages: make(map[pageKey]*page)}
}

// page returns (allocating if necessary) the page backing addr.
func (m *Memory) page(addr word.Word) *page {
	k := keyOf(addr)
	p, ok := m.pages[k]
	if !ok {
		p = &page{}
		m.pages[k] = p
	}
	return p
}

// Read returns the tryte at addr, allocating the backing page (zero-filled)
// if it has never been touched.
func (m *Memory) Read(addr word.Word) tryte.Tryte {
	p := m.page(addr)
	return p[pageOffset(addr.Low())]
}

// Write stores t at addr, allocating the backing page if necessary.
func (m *Memory) Write(addr word.Word, t tryte.Tryte) {
	p := m.page(addr)
	p[pageOffset(addr.Low())] = t
}

// next returns addr+1 (as a word address), wrapping silently if the
// addition overflows the word range (the overflow trit is discarded: no
// address can index outside a page by construction).
func next(addr word.Word) word.Word {
	sum, _ := addr.Add(word.FromInt(1))
	return sum
}

// ReadWord reads three consecutive trytes at addr, addr+1, addr+2 and
// assembles them low-first into a Word.
func (m *Memory) ReadWord(addr word.Word) word.Word {
	low := m.Read(addr)
	mid := m.Read(next(addr))
	high := m.Read(next(next(addr)))
	return word.FromTrytes(low, mid, high)
}

// WriteWord mirrors ReadWord: it writes w's three trytes across
// addr, addr+1, addr+2.
func (m *Memory) WriteWord(addr word.Word, w word.Word) {
	m.Write(addr, w.Low())
	m.Write(next(addr), w.Mid())
	m.Write(next(next(addr)), w.High())
}

// PageCount reports how many pages have been allocated so far (for tests
// and the monitor's memory-usage display).
func (m *Memory) PageCount() int { return len(m.pages) }
