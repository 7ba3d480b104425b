package factor

import (
	"fmt"
	"math/big"

	"github.com/JoshOrndorff/PrimeBase/primes"
)

// TrialDivision divides by the registry primes in ordinal order.
type TrialDivision struct {
	reg        *primes.Registry
	maxOrdinal int
}

// NewTrialDivision creates a trial-division Factorer over reg.
func NewTrialDivision(reg *primes.Registry, maxOrdinal int) *TrialDivision {
	return &TrialDivision{reg: reg, maxOrdinal: maxOrdinal}
}

// Factor computes the terms of n. It runs in O(sqrt(n)) divisions in the
// worst case, so it is only practical for moderate inputs.
func (t *TrialDivision) Factor(n *big.Int) ([]Term, error) {
	if err := checkDomain(n); err != nil {
		return nil, err
	}
	rest := new(big.Int).Set(n)
	terms, err := t.strip(rest, t.maxOrdinal, true)
	if err != nil {
		return nil, err
	}
	if rest.Cmp(one) == 0 {
		return terms, nil
	}

	// Nothing up to sqrt(rest) divides it, so rest is prime.
	leftover := tally{}
	leftover.add(rest, 1)
	tail, err := collect(t.reg, t.maxOrdinal, leftover)
	if err != nil {
		return nil, err
	}
	return append(terms, tail...), nil
}

// strip divides rest by the primes of ordinal 0 .. limit-1, in place, and
// returns the powers found. With stopAtRoot it also stops as soon as p*p
// exceeds rest; without it, reaching limit with rest still composite is
// not an error.
func (t *TrialDivision) strip(rest *big.Int, limit int, stopAtRoot bool) ([]Term, error) {
	terms := make([]Term, 0)
	quotient, remainder := new(big.Int), new(big.Int)
	prime, square := new(big.Int), new(big.Int)

	for ordinal := 0; rest.Cmp(one) > 0; ordinal++ {
		prime.SetUint64(t.reg.At(ordinal))
		if stopAtRoot && square.Mul(prime, prime).Cmp(rest) > 0 {
			return terms, nil
		}
		if ordinal >= limit {
			if stopAtRoot {
				return nil, fmt.Errorf("trial division of %s: %w", rest, ErrLimit)
			}
			return terms, nil
		}

		var power uint64
		for {
			quotient.QuoRem(rest, prime, remainder)
			if remainder.Sign() != 0 {
				break
			}
			rest.Set(quotient)
			power++
		}
		if power > 0 {
			terms = append(terms, Term{Ordinal: ordinal, Power: power})
		}
	}
	return terms, nil
}
