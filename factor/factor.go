/*
Package factor computes the prime factorization of positive integers.

A factorization is reported as Terms: the ordinal of each prime, as kept by a
primes.Registry, together with its power. Several strategies are provided and
can be combined with Chain.

Every strategy is bounded by maxOrdinal: a factor whose prime ordinal would be
maxOrdinal or more makes Factor fail with ErrLimit. The bound caps both the
registry growth and the length of the resulting factorization, and is the
only guard against adversarial inputs.
*/
package factor

import (
	"errors"
	"fmt"
	"math/big"
	"sort"

	"github.com/JoshOrndorff/PrimeBase/primes"
)

var (
	// ErrDomain is returned for inputs smaller than one.
	ErrDomain = errors.New("factor: input must be a positive integer")
	// ErrLimit is returned when a prime factor lies beyond the ordinal limit.
	ErrLimit = errors.New("factor: prime ordinal limit exceeded")
)

// Term is one prime power of a factorization.
type Term struct {
	Ordinal int
	Power   uint64
}

// Factorer converts a magnitude into prime exponents. The returned terms are
// sorted by ordinal and every power is positive; 1 has no terms.
type Factorer interface {
	Factor(n *big.Int) ([]Term, error)
}

// Acceptor is implemented by strategies that only handle part of the domain.
type Acceptor interface {
	Accepts(n *big.Int) bool
}

var one = big.NewInt(1)

func checkDomain(n *big.Int) error {
	if n == nil || n.Sign() <= 0 {
		return fmt.Errorf("%v: %w", n, ErrDomain)
	}
	return nil
}

// tally accumulates prime powers keyed by the decimal form of the prime.
type tally map[string]*primePower

type primePower struct {
	prime *big.Int
	power uint64
}

func (t tally) add(p *big.Int, power uint64) {
	key := p.String()
	if entry, ok := t[key]; ok {
		entry.power += power
		return
	}
	t[key] = &primePower{prime: new(big.Int).Set(p), power: power}
}

// collect resolves the primes of a tally to registry ordinals.
func collect(reg *primes.Registry, maxOrdinal int, t tally) ([]Term, error) {
	terms := make([]Term, 0, len(t))
	for _, entry := range t {
		if !entry.prime.IsUint64() {
			return nil, fmt.Errorf("prime factor %s: %w", entry.prime, ErrLimit)
		}
		ordinal, err := reg.Ordinal(entry.prime.Uint64(), maxOrdinal)
		if err != nil {
			if errors.Is(err, primes.ErrCapacity) {
				return nil, fmt.Errorf("prime factor %s: %w", entry.prime, ErrLimit)
			}
			return nil, err
		}
		terms = append(terms, Term{Ordinal: ordinal, Power: entry.power})
	}
	sort.Slice(terms, func(i, j int) bool { return terms[i].Ordinal < terms[j].Ordinal })
	return terms, nil
}

// chain dispatches to the first strategy that accepts the input.
type chain struct {
	strategies []Factorer
}

// Chain returns a Factorer that uses the first strategy accepting n. A
// strategy that does not implement Acceptor accepts everything.
func Chain(strategies ...Factorer) Factorer {
	return &chain{strategies: strategies}
}

func (c *chain) Factor(n *big.Int) ([]Term, error) {
	if err := checkDomain(n); err != nil {
		return nil, err
	}
	for _, s := range c.strategies {
		if a, ok := s.(Acceptor); ok && !a.Accepts(n) {
			continue
		}
		return s.Factor(n)
	}
	return nil, fmt.Errorf("no strategy accepts %s", n)
}

// Default returns the strategy used when none is configured: mathutil for
// numbers that fit in 32 bits, Pollard's rho after a trial-division pass for
// everything larger.
func Default(reg *primes.Registry, maxOrdinal int) Factorer {
	return Chain(
		NewSmall(reg, maxOrdinal),
		NewRho(reg, maxOrdinal, DefaultTrialPrimes),
	)
}
