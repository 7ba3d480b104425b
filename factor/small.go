package factor

import (
	"math"
	"math/big"

	"github.com/JoshOrndorff/PrimeBase/primes"
	"modernc.org/mathutil"
)

// Small factors numbers that fit in 32 bits with mathutil.FactorInt.
type Small struct {
	reg        *primes.Registry
	maxOrdinal int
}

// NewSmall creates a Factorer limited to 32-bit inputs.
func NewSmall(reg *primes.Registry, maxOrdinal int) *Small {
	return &Small{reg: reg, maxOrdinal: maxOrdinal}
}

// Accepts reports whether n fits in 32 bits.
func (s *Small) Accepts(n *big.Int) bool {
	return n != nil && n.Sign() > 0 && n.IsUint64() && n.Uint64() <= math.MaxUint32
}

// Factor computes the terms of n.
func (s *Small) Factor(n *big.Int) ([]Term, error) {
	if err := checkDomain(n); err != nil {
		return nil, err
	}
	if !s.Accepts(n) {
		return NewTrialDivision(s.reg, s.maxOrdinal).Factor(n)
	}
	if n.Cmp(one) == 0 {
		return []Term{}, nil
	}

	t := tally{}
	prime := new(big.Int)
	for _, term := range mathutil.FactorInt(uint32(n.Uint64())) {
		t.add(prime.SetUint64(uint64(term.Prime)), uint64(term.Power))
	}
	return collect(s.reg, s.maxOrdinal, t)
}
