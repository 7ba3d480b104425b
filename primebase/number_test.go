package primebase

import (
	"errors"
	"math/big"
	"testing"

	"github.com/JoshOrndorff/PrimeBase/factor"
	"github.com/JoshOrndorff/PrimeBase/primes"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSystem() *System {
	return NewSystem(Config{Registry: primes.NewRegistry()})
}

func num(t *testing.T, sys *System, v uint64) *Number {
	t.Helper()
	n, err := sys.FromUint64(v)
	require.NoError(t, err)
	return n
}

func magnitude(t *testing.T, n *Number) uint64 {
	t.Helper()
	m, err := n.Magnitude()
	require.NoError(t, err)
	require.True(t, m.IsUint64(), "magnitude %s does not fit in uint64", m)
	return m.Uint64()
}

// exponents renders the exponents of n by magnitude.
func exponents(t *testing.T, n *Number) []string {
	t.Helper()
	exps, err := n.Exponents()
	require.NoError(t, err)
	out := make([]string, len(exps))
	for i, e := range exps {
		m, err := e.Magnitude()
		require.NoError(t, err)
		out[i] = m.String()
	}
	return out
}

func TestFromMagnitudeRejectsNonPositive(t *testing.T) {
	sys := newTestSystem()

	for _, v := range []*big.Int{big.NewInt(0), big.NewInt(-7), nil} {
		n, err := sys.FromMagnitude(v)
		assert.ErrorIs(t, err, ErrDomain)
		assert.Nil(t, n)
	}

	_, err := sys.FromUint64(0)
	assert.ErrorIs(t, err, ErrDomain)
}

func TestFromMagnitudeCopiesInput(t *testing.T) {
	sys := newTestSystem()
	v := big.NewInt(12)
	n, err := sys.FromMagnitude(v)
	require.NoError(t, err)

	v.SetInt64(13)
	assert.Equal(t, uint64(12), magnitude(t, n))
	assert.Equal(t, magnitudeFresh, n.fresh, "only the magnitude is fresh after construction")
}

func TestIdentity(t *testing.T) {
	sys := newTestSystem()
	one := sys.Identity()

	assert.True(t, one.IsIdentity())
	assert.False(t, one.IsZero())
	assert.Equal(t, magnitudeFresh|factorsFresh, one.fresh)
	assert.Equal(t, uint64(1), magnitude(t, one))

	d, err := one.Dimension()
	require.NoError(t, err)
	assert.Zero(t, d.Sign())

	s, err := one.Describe()
	require.NoError(t, err)
	assert.Equal(t, "Value: 1, Factorization: []", s)

	assert.True(t, num(t, sys, 1).IsIdentity())
	assert.False(t, num(t, sys, 2).IsIdentity())
	assert.False(t, sys.Zero().IsIdentity())
}

func TestRoundTrip(t *testing.T) {
	sys := newTestSystem()

	for v := uint64(1); v <= 2000; v++ {
		n := num(t, sys, v)
		require.NoError(t, n.ensureFactorization())
		assert.NotZero(t, n.fresh&magnitudeFresh, "factoring must keep the magnitude fresh")

		// Drop the magnitude so it is rebuilt from the factorization.
		n.fresh = factorsFresh
		n.mag = nil
		assert.Equal(t, v, magnitude(t, n))
		assert.Equal(t, magnitudeFresh|factorsFresh, n.fresh)
	}
}

func TestMultiplyByMatchesMagnitudeProduct(t *testing.T) {
	sys := newTestSystem()

	for a := uint64(1); a <= 60; a++ {
		for b := uint64(1); b <= 60; b++ {
			x := num(t, sys, a)
			require.NoError(t, x.MultiplyBy(num(t, sys, b)))
			assert.Equal(t, a*b, magnitude(t, x), "%d * %d", a, b)
		}
	}
}

func TestMultiplyByInvalidatesMagnitude(t *testing.T) {
	sys := newTestSystem()
	x := num(t, sys, 6)
	require.NoError(t, x.ensureFactorization())

	require.NoError(t, x.MultiplyBy(num(t, sys, 35)))
	assert.Equal(t, factorsFresh, x.fresh)
	assert.Nil(t, x.mag)
	assert.Equal(t, []string{"1", "1", "1", "1"}, exponents(t, x))
	assert.Equal(t, uint64(210), magnitude(t, x))
}

func TestMultiplyBySelf(t *testing.T) {
	sys := newTestSystem()
	x := num(t, sys, 12)

	require.NoError(t, x.MultiplyBy(x))
	assert.Equal(t, uint64(144), magnitude(t, x))
}

func TestMultiplyByZero(t *testing.T) {
	sys := newTestSystem()

	x := num(t, sys, 12)
	require.NoError(t, x.MultiplyBy(sys.Zero()))
	assert.True(t, x.IsZero())

	z := sys.Zero()
	require.NoError(t, z.MultiplyBy(num(t, sys, 5)))
	assert.True(t, z.IsZero())
}

func TestToPowerMatchesMagnitudePower(t *testing.T) {
	sys := newTestSystem()

	for a := uint64(1); a <= 30; a++ {
		for k := uint64(0); k <= 6; k++ {
			x := num(t, sys, a)
			exp := sys.Zero()
			if k > 0 {
				exp = num(t, sys, k)
			}
			require.NoError(t, x.ToPower(exp))

			want := new(big.Int).Exp(new(big.Int).SetUint64(a), new(big.Int).SetUint64(k), nil)
			got, err := x.Magnitude()
			require.NoError(t, err)
			assert.Equal(t, want, got, "%d ^ %d", a, k)
		}
	}
}

func TestToPowerSelf(t *testing.T) {
	sys := newTestSystem()
	x := num(t, sys, 3)

	require.NoError(t, x.ToPower(x))
	assert.Equal(t, uint64(27), magnitude(t, x))
}

func TestToPowerDoesNotTouchExponent(t *testing.T) {
	sys := newTestSystem()
	x := num(t, sys, 12)
	k := num(t, sys, 3)

	require.NoError(t, x.ToPower(k))
	assert.Equal(t, uint64(1728), magnitude(t, x))
	assert.Equal(t, uint64(3), magnitude(t, k))
	assert.Equal(t, magnitudeFresh, k.fresh, "the exponent operand keeps its own views")
}

func TestIdentityLaws(t *testing.T) {
	sys := newTestSystem()

	for _, v := range []uint64{1, 2, 12, 97, 360} {
		one := sys.Identity()
		require.NoError(t, one.MultiplyBy(num(t, sys, v)))
		assert.Equal(t, v, magnitude(t, one), "1 * %d", v)

		x := num(t, sys, v)
		require.NoError(t, x.ToPower(sys.Identity()))
		assert.Equal(t, v, magnitude(t, x), "%d ^ 1", v)

		x = num(t, sys, v)
		require.NoError(t, x.ToPower(sys.Zero()))
		assert.True(t, x.IsIdentity(), "%d ^ 0", v)

		one = sys.Identity()
		require.NoError(t, one.ToPower(num(t, sys, v)))
		assert.True(t, one.IsIdentity(), "1 ^ %d", v)
	}

	z := sys.Zero()
	require.NoError(t, z.ToPower(num(t, sys, 3)))
	assert.True(t, z.IsZero())
}

func TestDimension(t *testing.T) {
	sys := newTestSystem()

	testCases := []struct {
		value    uint64
		expected int64
	}{
		{1, 0},
		{2, 1},
		{12, 3},
		{60, 4},
		{1024, 10},
		{97, 1},
	}

	for _, tc := range testCases {
		d, err := num(t, sys, tc.value).Dimension()
		require.NoError(t, err)
		assert.Equal(t, big.NewInt(tc.expected), d, "dimension of %d", tc.value)
	}

	_, err := sys.Zero().Dimension()
	assert.ErrorIs(t, err, ErrDomain)
}

func TestGreatestCommonFactorScenario(t *testing.T) {
	sys := newTestSystem()
	sixty := num(t, sys, 60)
	twentyFour := num(t, sys, 24)

	assert.Equal(t, []string{"2", "1", "1"}, exponents(t, sixty))

	gcf, err := sixty.GreatestCommonFactorWith(twentyFour)
	require.NoError(t, err)
	assert.Equal(t, factorsFresh, gcf.fresh)
	assert.Equal(t, []string{"2", "1"}, exponents(t, gcf))
	assert.Equal(t, uint64(12), magnitude(t, gcf))

	s, err := gcf.Describe()
	require.NoError(t, err)
	assert.Equal(t, "Value: 12, Factorization: [2, 1]", s)

	// Neither operand changes.
	assert.Equal(t, uint64(60), magnitude(t, sixty))
	assert.Equal(t, []string{"3", "1"}, exponents(t, twentyFour))
}

func TestGreatestCommonFactorMatchesGCD(t *testing.T) {
	sys := newTestSystem()

	for a := int64(1); a <= 100; a++ {
		for b := int64(1); b <= 100; b++ {
			x, y := num(t, sys, uint64(a)), num(t, sys, uint64(b))
			gcf, err := x.GreatestCommonFactorWith(y)
			require.NoError(t, err)

			want := new(big.Int).GCD(nil, nil, big.NewInt(a), big.NewInt(b))
			got, err := gcf.Magnitude()
			require.NoError(t, err)
			assert.Equal(t, want, got, "gcf(%d, %d)", a, b)
		}
	}
}

func TestLeastCommonMultiple(t *testing.T) {
	sys := newTestSystem()

	for a := int64(1); a <= 40; a++ {
		for b := int64(1); b <= 40; b++ {
			lcm, err := num(t, sys, uint64(a)).LeastCommonMultipleWith(num(t, sys, uint64(b)))
			require.NoError(t, err)

			g := new(big.Int).GCD(nil, nil, big.NewInt(a), big.NewInt(b))
			want := new(big.Int).Quo(big.NewInt(a*b), g)
			got, err := lcm.Magnitude()
			require.NoError(t, err)
			assert.Equal(t, want, got, "lcm(%d, %d)", a, b)
		}
	}
}

func TestCommonFactorWithZero(t *testing.T) {
	sys := newTestSystem()

	_, err := num(t, sys, 6).GreatestCommonFactorWith(sys.Zero())
	assert.ErrorIs(t, err, ErrDomain)

	_, err = sys.Zero().LeastCommonMultipleWith(num(t, sys, 6))
	assert.ErrorIs(t, err, ErrDomain)
}

func TestMutationIsolation(t *testing.T) {
	sys := newTestSystem()
	a := num(t, sys, 2)
	b := num(t, sys, 45) // 3^2 * 5

	require.NoError(t, a.MultiplyBy(b))
	assert.Equal(t, uint64(90), magnitude(t, a))

	// a now holds copies of b's exponents; changing them must not leak.
	require.NoError(t, a.ToPower(num(t, sys, 3)))
	require.NoError(t, a.MultiplyBy(num(t, sys, 15)))
	assert.Equal(t, uint64(90*90*90*15), magnitude(t, a))

	assert.Equal(t, []string{"0", "2", "1"}, exponents(t, b))
	assert.Equal(t, uint64(45), magnitude(t, b))
}

func TestExponentAtReturnsCopy(t *testing.T) {
	sys := newTestSystem()
	x := num(t, sys, 12)

	e, err := x.ExponentAt(0)
	require.NoError(t, err)
	require.NoError(t, e.MultiplyBy(num(t, sys, 5)))

	again, err := x.ExponentAt(0)
	require.NoError(t, err)
	assert.Equal(t, uint64(2), magnitude(t, again))
	assert.Equal(t, uint64(12), magnitude(t, x))
}

func TestExponentAtPastEnd(t *testing.T) {
	sys := newTestSystem()
	x := num(t, sys, 12)

	for _, ordinal := range []int{2, 3, 100} {
		e, err := x.ExponentAt(ordinal)
		require.NoError(t, err)
		assert.True(t, e.IsZero(), "ordinal %d", ordinal)
	}

	_, err := x.ExponentAt(-1)
	assert.ErrorIs(t, err, ErrDomain)

	hf, err := x.HighestFactorOrdinal()
	require.NoError(t, err)
	assert.Equal(t, 2, hf)

	hf, err = sys.Identity().HighestFactorOrdinal()
	require.NoError(t, err)
	assert.Zero(t, hf)
}

func TestFromFactorization(t *testing.T) {
	sys := newTestSystem()
	two, one := num(t, sys, 2), num(t, sys, 1)

	n, err := sys.FromFactorization([]*Number{two, nil, one})
	require.NoError(t, err)
	assert.Equal(t, factorsFresh, n.fresh, "only the factorization is fresh after construction")
	assert.Equal(t, uint64(20), magnitude(t, n))

	// The input is copied, not aliased.
	require.NoError(t, two.MultiplyBy(num(t, sys, 7)))
	assert.Equal(t, []string{"2", "0", "1"}, exponents(t, n))
}

func TestFromFactorizationTrimsTrailingZeros(t *testing.T) {
	sys := newTestSystem()

	n, err := sys.FromFactorization([]*Number{num(t, sys, 1), sys.Zero(), nil, sys.Zero()})
	require.NoError(t, err)

	hf, err := n.HighestFactorOrdinal()
	require.NoError(t, err)
	assert.Equal(t, 1, hf)
	assert.Equal(t, uint64(2), magnitude(t, n))

	equal, err := n.Equal(num(t, sys, 2))
	require.NoError(t, err)
	assert.True(t, equal)

	empty, err := sys.FromFactorization(nil)
	require.NoError(t, err)
	assert.True(t, empty.IsIdentity())
}

func TestFromFactorizationRejectsCycles(t *testing.T) {
	sys := newTestSystem()
	loop := sys.factorsNumber([]*Number{})
	loop.factors = append(loop.factors, loop)

	_, err := sys.FromFactorization([]*Number{loop})
	assert.ErrorIs(t, err, ErrWellFounded)
}

func TestAdd(t *testing.T) {
	sys := newTestSystem()

	x := num(t, sys, 12)
	require.NoError(t, x.ensureFactorization())
	require.NoError(t, x.Add(num(t, sys, 1)))
	assert.Equal(t, magnitudeFresh, x.fresh, "the stale factorization must be dropped")

	s, err := x.Describe()
	require.NoError(t, err)
	assert.Equal(t, "Value: 13, Factorization: [0, 0, 0, 0, 0, 1]", s)

	for a := uint64(1); a <= 30; a++ {
		for b := uint64(1); b <= 30; b++ {
			x := num(t, sys, a)
			require.NoError(t, x.Add(num(t, sys, b)))
			assert.Equal(t, a+b, magnitude(t, x))
		}
	}

	z := sys.Zero()
	require.NoError(t, z.Add(num(t, sys, 5)))
	assert.False(t, z.IsZero())
	assert.Equal(t, uint64(5), magnitude(t, z))
}

func TestDivideBy(t *testing.T) {
	sys := newTestSystem()

	x := num(t, sys, 60)
	require.NoError(t, x.DivideBy(num(t, sys, 12)))
	assert.Equal(t, uint64(5), magnitude(t, x))

	x = num(t, sys, 60)
	require.NoError(t, x.DivideBy(num(t, sys, 60)))
	assert.True(t, x.IsIdentity())

	testCases := []struct {
		name           string
		value, divisor uint64
	}{
		{"higher prime", 12, 5},
		{"higher power", 12, 8},
		{"not a divisor", 60, 7},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			x := num(t, sys, tc.value)
			err := x.DivideBy(num(t, sys, tc.divisor))
			assert.ErrorIs(t, err, ErrDomain)
			assert.Equal(t, tc.value, magnitude(t, x), "receiver must be unchanged")
		})
	}

	assert.ErrorIs(t, num(t, sys, 6).DivideBy(sys.Zero()), ErrDomain)
}

func TestCmpAndEqual(t *testing.T) {
	sys := newTestSystem()

	testCases := []struct {
		a, b     *Number
		expected int
	}{
		{num(t, sys, 3), num(t, sys, 5), -1},
		{num(t, sys, 12), num(t, sys, 12), 0},
		{num(t, sys, 100), num(t, sys, 99), 1},
		{sys.Zero(), num(t, sys, 1), -1},
		{num(t, sys, 1), sys.Zero(), 1},
		{sys.Zero(), sys.Zero(), 0},
	}

	for _, tc := range testCases {
		c, err := tc.a.Cmp(tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.expected, c)

		equal, err := tc.a.Equal(tc.b)
		require.NoError(t, err)
		assert.Equal(t, tc.expected == 0, equal)
	}
}

func TestClone(t *testing.T) {
	sys := newTestSystem()
	x := num(t, sys, 18)
	require.NoError(t, x.ensureFactorization())

	c := x.Clone()
	assert.Equal(t, x.fresh, c.fresh)
	require.NoError(t, c.ToPower(num(t, sys, 2)))

	assert.Equal(t, uint64(324), magnitude(t, c))
	assert.Equal(t, uint64(18), magnitude(t, x))
	if diff := cmp.Diff([]string{"1", "2"}, exponents(t, x)); diff != "" {
		t.Errorf("exponents of the original changed (-want +got):\n%s", diff)
	}
}

func TestHereditaryTower(t *testing.T) {
	sys := newTestSystem()

	// 2^(2^(2^10)): far too large to hold as a magnitude.
	tower, err := sys.Parse("[[[10]]]")
	require.NoError(t, err)

	_, err = tower.Magnitude()
	assert.ErrorIs(t, err, ErrTooLarge)

	h, err := tower.Hereditary()
	require.NoError(t, err)
	assert.Equal(t, "[[[[[], 0, []]]]]", h)
	assert.Equal(t, h, tower.String(), "String falls back to the hereditary form")

	square := tower.Clone()
	require.NoError(t, square.MultiplyBy(tower))
	want, err := sys.Parse("[[1025]]")
	require.NoError(t, err)
	equal, err := square.Equal(want)
	require.NoError(t, err)
	assert.True(t, equal, "2^(2^1024) squared is 2^(2^1025)")

	require.NoError(t, tower.ToPower(num(t, sys, 4)))
	want, err = sys.Parse("[[1026]]")
	require.NoError(t, err)
	equal, err = tower.Equal(want)
	require.NoError(t, err)
	assert.True(t, equal, "(2^(2^1024))^4 is 2^(2^1026)")
}

func TestLimits(t *testing.T) {
	reg := primes.NewRegistry()
	sys := NewSystem(Config{Registry: reg, MaxOrdinal: 10, MaxMagnitudeBits: 64})

	// 31 is the prime of ordinal 10.
	_, err := num(t, sys, 62).Dimension()
	assert.ErrorIs(t, err, ErrTooLarge)
	assert.True(t, errors.Is(err, factor.ErrLimit))

	d, err := num(t, sys, 58).Dimension()
	require.NoError(t, err)
	assert.Equal(t, big.NewInt(2), d)

	huge, err := sys.Parse("[100]")
	require.NoError(t, err)
	_, err = huge.Magnitude()
	assert.ErrorIs(t, err, ErrTooLarge)

	fits, err := sys.Parse("[63]")
	require.NoError(t, err)
	assert.Equal(t, uint64(1)<<63, magnitude(t, fits))

	long := make([]*Number, 11)
	_, err = sys.FromFactorization(long)
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestDefaultSystem(t *testing.T) {
	assert.Same(t, Default(), Default())

	x, err := FromUint64(10)
	require.NoError(t, err)
	assert.Same(t, Default(), x.System())
	assert.True(t, Identity().IsIdentity())
	assert.True(t, Zero().IsZero())

	y, err := FromFactorization([]*Number{x})
	require.NoError(t, err)
	assert.Equal(t, uint64(1024), magnitude(t, y))

	_, err = FromMagnitude(big.NewInt(0))
	assert.ErrorIs(t, err, ErrDomain)
}
