package tryte

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTripIntConversion(t *testing.T) {
	for _, n := range []int64{0, 1, -1, 42, -42, Max, Min, 728, -728} {
		tr := FromInt(n)
		assert.Equal(t, n, tr.Int())
	}
}

func TestAddCommutative(t *testing.T) {
	a := FromInt(123)
	b := FromInt(-77)
	s1, c1 := a.Add(b)
	s2, c2 := b.Add(a)
	assert.Equal(t, s1, s2)
	assert.Equal(t, c1, c2)
}

func TestNegateInvolution(t *testing.T) {
	a := FromInt(4321)
	assert.Equal(t, a, a.Neg().Neg())
}

func TestDivModEuclidean(t *testing.T) {
	cases := []struct{ a, b int64 }{
		{19, 4}, {-19, 4}, {19, -4}, {-19, -4}, {0, 5}, {9841, 3},
	}
	for _, c := range cases {
		q, r, err := FromInt(c.a).DivMod(FromInt(c.b))
		require.NoError(t, err)
		absB := c.b
		if absB < 0 {
			absB = -absB
		}
		assert.Equalf(t, c.a, q.Int()*c.b+r.Int(), "a=%d b=%d", c.a, c.b)
		assert.GreaterOrEqualf(t, r.Int(), int64(0), "a=%d b=%d", c.a, c.b)
		assert.Lessf(t, r.Int(), absB, "a=%d b=%d", c.a, c.b)
	}
}

func TestDivByZero(t *testing.T) {
	_, _, err := FromInt(5).DivMod(Zero)
	require.Error(t, err)
}

func TestScenarioDivRem19By4(t *testing.T) {
	q, r, err := FromInt(19).DivMod(FromInt(4))
	require.NoError(t, err)
	assert.Equal(t, int64(4), q.Int())
	assert.Equal(t, int64(3), r.Int())
	assert.Equal(t, "+", r.Sign().String())
	// 3 is "+0" in balanced ternary (1*3^1 + 0*3^0), so trit 0 is zero.
	assert.Equal(t, "0", r.Parity().String())
}

func TestScenarioDivRemNeg19By4(t *testing.T) {
	q, r, err := FromInt(-19).DivMod(FromInt(4))
	require.NoError(t, err)
	assert.Equal(t, int64(-5), q.Int())
	assert.Equal(t, int64(1), r.Int())
}

func TestShiftRotateBoundary(t *testing.T) {
	a := FromInt(1)
	rotated := a.Rotate(1)
	assert.Equal(t, int64(3), rotated.Int())
	shifted := a.ShiftLeft(1)
	assert.Equal(t, int64(3), shifted.Int())
}

func TestMinMaxIdempotent(t *testing.T) {
	a := FromInt(17)
	assert.Equal(t, a, a.And(a))
	assert.Equal(t, a, a.Or(a))
}

func TestPackRoundTrip(t *testing.T) {
	for _, n := range []int64{0, 1, -1, Max, Min, 12345} {
		tr := FromInt(n)
		assert.Equal(t, tr, Unpack(tr.Pack()))
	}
}

func TestMulTruncates(t *testing.T) {
	a := FromInt(Max)
	b := FromInt(Max)
	prod := a.Mul(b)
	const modulus = 19683 // 3^9
	want := int64(Max*Max) % modulus
	if want > Max {
		want -= modulus
	}
	if want < Min {
		want += modulus
	}
	assert.Equal(t, want, prod.Int())
}
