package primebase

import (
	"errors"
	"fmt"
	"math/big"
	mathbits "math/bits"

	"github.com/JoshOrndorff/PrimeBase/factor"
	"github.com/remyoudompheng/bigfft"
	"go.uber.org/zap"
)

// form records which views of a Number are fresh. It is never zero.
type form uint8

const (
	magnitudeFresh form = 1 << iota
	factorsFresh
)

// Number is a non-negative integer held as a magnitude, a factorization, or
// both. See the package documentation for the invariants.
type Number struct {
	sys   *System
	zero  bool
	fresh form

	// mag is meaningful only when fresh has magnitudeFresh.
	mag *big.Int
	// factors is meaningful only when fresh has factorsFresh. factors[i] is
	// the exponent on the i-th prime; the last entry is never zero.
	factors []*Number
}

// System returns the System n computes in.
func (n *Number) System() *System {
	return n.sys
}

// IsZero reports whether n is the additive identity.
func (n *Number) IsZero() bool {
	return n.zero
}

// IsIdentity reports whether n is 1, that is whether its dimension is zero.
func (n *Number) IsIdentity() bool {
	if n.zero {
		return false
	}
	if n.fresh&factorsFresh != 0 {
		return len(n.factors) == 0
	}
	return n.mag.Cmp(bigOne) == 0
}

// Clone returns a deep copy of n with the same fresh views.
func (n *Number) Clone() *Number {
	return n.cloneInto(n.sys)
}

func (n *Number) cloneInto(sys *System) *Number {
	c := &Number{sys: sys, zero: n.zero, fresh: n.fresh}
	if n.fresh&magnitudeFresh != 0 {
		c.mag = new(big.Int).Set(n.mag)
	}
	if n.fresh&factorsFresh != 0 {
		c.factors = make([]*Number, len(n.factors))
		for i, e := range n.factors {
			c.factors[i] = e.cloneInto(sys)
		}
	}
	return c
}

// Magnitude returns the place-value form of n, computing and caching it
// when only the factorization is fresh.
func (n *Number) Magnitude() (*big.Int, error) {
	if err := n.ensureMagnitude(); err != nil {
		return nil, err
	}
	return new(big.Int).Set(n.mag), nil
}

// setMagnitude makes m the only fresh view.
func (n *Number) setMagnitude(m *big.Int) {
	n.zero = m.Sign() == 0
	n.fresh = magnitudeFresh
	n.mag = m
	n.factors = nil
}

// setFactors makes factors the only fresh view. n takes ownership.
func (n *Number) setFactors(factors []*Number) {
	n.zero = false
	n.fresh = factorsFresh
	n.mag = nil
	n.factors = trim(factors)
}

func (n *Number) setIdentity() {
	n.zero = false
	n.fresh = magnitudeFresh | factorsFresh
	n.mag = big.NewInt(1)
	n.factors = []*Number{}
}

// ensureMagnitude computes the product of p_i^e_i. The factorization stays
// fresh.
func (n *Number) ensureMagnitude() error {
	if n.fresh&magnitudeFresh != 0 {
		return nil
	}

	powers := make([]uint64, len(n.factors))
	var bits uint64
	limit := uint64(n.sys.maxMagnitudeBits)
	for i, e := range n.factors {
		if e.zero {
			continue
		}
		if err := e.ensureMagnitude(); err != nil {
			return err
		}
		if !e.mag.IsUint64() || e.mag.Uint64() > limit {
			return tooLargeError("exponent of %d bits on prime ordinal %d", e.mag.BitLen(), i)
		}
		if i >= n.sys.maxOrdinal {
			return tooLargeError("prime ordinal %d, limit %d", i, n.sys.maxOrdinal)
		}
		powers[i] = e.mag.Uint64()
		// p^k has at least k*(bitlen(p)-1)+1 bits.
		p := n.sys.registry.At(i)
		width := uint64(mathbits.Len64(p) - 1)
		if powers[i] > (limit-bits)/width {
			return tooLargeError("magnitude beyond %d bits", limit)
		}
		bits += powers[i] * width
	}

	product := big.NewInt(1)
	base, power := new(big.Int), new(big.Int)
	for i, k := range powers {
		if k == 0 {
			continue
		}
		base.SetUint64(n.sys.registry.At(i))
		power.Exp(base, new(big.Int).SetUint64(k), nil)
		product = bigfft.Mul(product, power)
	}

	n.mag = product
	n.fresh |= magnitudeFresh
	return nil
}

// ensureFactorization factors the magnitude with the System's Factorer.
// The magnitude stays fresh.
func (n *Number) ensureFactorization() error {
	if n.fresh&factorsFresh != 0 {
		return nil
	}
	if n.zero {
		return domainError("zero has no factorization")
	}

	terms, err := n.sys.factorer.Factor(n.mag)
	if err != nil {
		n.sys.logger.Debug("factoring failed",
			zap.Int("bits", n.mag.BitLen()),
			zap.Error(err))
		switch {
		case errors.Is(err, factor.ErrDomain):
			return fmt.Errorf("%w: %w", ErrDomain, err)
		case errors.Is(err, factor.ErrLimit):
			return fmt.Errorf("%w: %w", ErrTooLarge, err)
		}
		return err
	}

	var factors []*Number
	if len(terms) > 0 {
		factors = make([]*Number, terms[len(terms)-1].Ordinal+1)
	}
	for i := range factors {
		factors[i] = n.sys.Zero()
	}
	for _, t := range terms {
		factors[t.Ordinal] = n.sys.magnitudeNumber(new(big.Int).SetUint64(t.Power))
	}

	n.factors = trim(factors)
	n.fresh |= factorsFresh
	return nil
}

var bigOne = big.NewInt(1)

// trim drops trailing zero exponents. It never returns nil.
func trim(factors []*Number) []*Number {
	end := len(factors)
	for end > 0 && factors[end-1].zero {
		end--
	}
	if factors == nil {
		return []*Number{}
	}
	return factors[:end]
}
