package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/jtristan/jt1701/tryte"
	"github.com/jtristan/jt1701/word"
)

func TestReadUninitializedIsZero(t *testing.T) {
	m := New()
	assert.Equal(t, tryte.Zero, m.Read(word.FromInt(42)))
	assert.Equal(t, 1, m.PageCount())
}

func TestWriteReadRoundTrip(t *testing.T) {
	m := New()
	addr := word.FromInt(1000)
	m.Write(addr, tryte.FromInt(-500))
	assert.Equal(t, int64(-500), m.Read(addr).Int())
}

func TestWordReadWriteAcrossTrytes(t *testing.T) {
	m := New()
	addr := word.FromInt(0)
	w := word.FromInt(123456789)
	m.WriteWord(addr, w)
	assert.Equal(t, w.Int(), m.ReadWord(addr).Int())
}

func TestPageAllocationScenario(t *testing.T) {
	// spec.md scenario 5.
	m := New()
	base := word.FromTrytes(tryte.FromInt(tryte.Max), tryte.Zero, tryte.Zero)
	m.Write(base, tryte.FromInt(tryte.Max))
	assert.Equal(t, int64(tryte.Max), m.Read(base).Int())

	sum, _ := base.Add(word.FromInt(1))
	m.Write(sum, tryte.FromInt(tryte.Min))
	assert.Equal(t, int64(tryte.Min), m.Read(sum).Int())
	assert.GreaterOrEqual(t, m.PageCount(), 1)
}
