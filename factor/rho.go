package factor

import (
	"fmt"
	"math/big"

	"github.com/JoshOrndorff/PrimeBase/primes"
)

// DefaultTrialPrimes is how many small primes Rho strips by trial division
// before it starts splitting.
const DefaultTrialPrimes = 168

// maxRhoSteps bounds a single rho walk before switching to the next
// polynomial constant.
const maxRhoSteps = 1 << 20

// Rho splits numbers with Pollard's rho. Expected cost per split is
// O(n^(1/4)) multiplications; small primes are removed first by trial
// division, where rho performs poorly.
type Rho struct {
	trial       *TrialDivision
	reg         *primes.Registry
	maxOrdinal  int
	trialPrimes int
}

// NewRho creates a rho Factorer that strips the first trialPrimes primes
// by trial division.
func NewRho(reg *primes.Registry, maxOrdinal, trialPrimes int) *Rho {
	if trialPrimes < 1 {
		trialPrimes = 1
	}
	return &Rho{
		trial:       NewTrialDivision(reg, maxOrdinal),
		reg:         reg,
		maxOrdinal:  maxOrdinal,
		trialPrimes: trialPrimes,
	}
}

// Factor computes the terms of n.
func (r *Rho) Factor(n *big.Int) ([]Term, error) {
	if err := checkDomain(n); err != nil {
		return nil, err
	}
	rest := new(big.Int).Set(n)
	limit := r.trialPrimes
	if limit > r.maxOrdinal {
		limit = r.maxOrdinal
	}
	terms, err := r.trial.strip(rest, limit, false)
	if err != nil {
		return nil, err
	}
	if rest.Cmp(one) == 0 {
		return terms, nil
	}

	t := tally{}
	if err := r.split(rest, t); err != nil {
		return nil, err
	}
	tail, err := collect(r.reg, r.maxOrdinal, t)
	if err != nil {
		return nil, err
	}
	return mergeTerms(terms, tail), nil
}

// split records the prime factors of n in t.
func (r *Rho) split(n *big.Int, t tally) error {
	if n.Cmp(one) == 0 {
		return nil
	}
	if n.ProbablyPrime(20) {
		t.add(n, 1)
		return nil
	}
	d, err := rho(n)
	if err != nil {
		return err
	}
	if err := r.split(d, t); err != nil {
		return err
	}
	return r.split(new(big.Int).Quo(n, d), t)
}

// rho returns a non-trivial divisor of the composite n using Floyd cycle
// detection on x -> x^2 + c mod n.
func rho(n *big.Int) (*big.Int, error) {
	two := big.NewInt(2)
	if new(big.Int).Mod(n, two).Sign() == 0 {
		return two, nil
	}

	diff, g := new(big.Int), new(big.Int)
	for c := int64(1); c < 64; c++ {
		step := big.NewInt(c)
		x, y := big.NewInt(2), big.NewInt(2)
		g.SetInt64(1)

		for i := 0; g.Cmp(one) == 0 && i < maxRhoSteps; i++ {
			x.Mul(x, x).Add(x, step).Mod(x, n)
			y.Mul(y, y).Add(y, step).Mod(y, n)
			y.Mul(y, y).Add(y, step).Mod(y, n)
			g.GCD(nil, nil, diff.Abs(diff.Sub(x, y)), n)
		}
		if g.Cmp(one) != 0 && g.Cmp(n) != 0 {
			return new(big.Int).Set(g), nil
		}
	}
	return nil, fmt.Errorf("pollard rho found no divisor of %s: %w", n, ErrLimit)
}

// mergeTerms joins two ordinal-sorted term lists. The lists come from
// disjoint primes, but equal ordinals are summed all the same.
func mergeTerms(a, b []Term) []Term {
	out := make([]Term, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) || j < len(b) {
		switch {
		case j == len(b) || (i < len(a) && a[i].Ordinal < b[j].Ordinal):
			out = append(out, a[i])
			i++
		case i == len(a) || b[j].Ordinal < a[i].Ordinal:
			out = append(out, b[j])
			j++
		default:
			out = append(out, Term{Ordinal: a[i].Ordinal, Power: a[i].Power + b[j].Power})
			i++
			j++
		}
	}
	return out
}
