package word

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/jtristan/jt1701/tryte"
)

func TestRoundTripIntConversion(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 720, -720, 1000000, -1000000} {
		w := FromInt(n)
		assert.Equal(t, n, w.Int())
	}
}

func TestTryteZeroExtend(t *testing.T) {
	tr := tryte.FromInt(-500)
	w := FromTryte(tr)
	assert.Equal(t, tr.Int(), w.Int())
	assert.Equal(t, tr, w.Low())
	assert.Equal(t, tryte.Zero, w.Mid())
	assert.Equal(t, tryte.Zero, w.High())
}

func TestWordToTryteTakesLow(t *testing.T) {
	w := FromInt(9841 + 5) // spills into the mid tryte
	low := w.Low()
	assert.NotEqual(t, w.Int(), low.Int())
}

func TestFromTrytesComposition(t *testing.T) {
	low := tryte.FromInt(1)
	mid := tryte.FromInt(2)
	high := tryte.FromInt(3)
	w := FromTrytes(low, mid, high)
	assert.Equal(t, low, w.Low())
	assert.Equal(t, mid, w.Mid())
	assert.Equal(t, high, w.High())
	want := int64(1) + 2*19683 + 3*19683*19683
	assert.Equal(t, want, w.Int())
}

func TestAddCommutative(t *testing.T) {
	a := FromInt(123456)
	b := FromInt(-987)
	s1, c1 := a.Add(b)
	s2, c2 := b.Add(a)
	assert.Equal(t, s1, s2)
	assert.Equal(t, c1, c2)
}

func TestFactorialScenario(t *testing.T) {
	// spec.md scenario 1: 6! = 720 via repeated balanced multiply/subtract.
	acc := FromInt(1)
	one := FromInt(1)
	for n := int64(6); n > 1; n-- {
		acc = acc.Mul(FromInt(n))
	}
	assert.Equal(t, int64(720), acc.Int())
	_ = one
}

func TestRPNScenario(t *testing.T) {
	// spec.md scenario 2: (8+9)*5 = 85
	sum, _ := FromInt(8).Add(FromInt(9))
	result := sum.Mul(FromInt(5))
	assert.Equal(t, int64(85), result.Int())
}

func TestDivModEuclidean(t *testing.T) {
	q, r, err := FromInt(-19).DivMod(FromInt(4))
	require.NoError(t, err)
	assert.Equal(t, int64(-5), q.Int())
	assert.Equal(t, int64(1), r.Int())
}

func TestShiftRotateBoundary(t *testing.T) {
	a := FromInt(1)
	assert.Equal(t, a.Rotate(1).Int(), a.ShiftLeft(1).Int())
}

func TestPackRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 1000000000, -1000000000} {
		w := FromInt(n)
		assert.Equal(t, w, Unpack(w.Pack()))
	}
}
