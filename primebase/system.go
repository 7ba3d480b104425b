package primebase

import (
	"math/big"
	"sync"

	"github.com/JoshOrndorff/PrimeBase/factor"
	"github.com/JoshOrndorff/PrimeBase/primes"
	"go.uber.org/zap"
)

const (
	// DefaultMaxOrdinal bounds the prime ordinals a factorization may use.
	DefaultMaxOrdinal = 1 << 20
	// DefaultMaxMagnitudeBits bounds the size of a computed magnitude.
	DefaultMaxMagnitudeBits = 1 << 22
)

// Config holds the collaborators and limits of a System. Zero fields are
// replaced by defaults.
type Config struct {
	Registry         *primes.Registry
	Factorer         factor.Factorer
	MaxOrdinal       int
	MaxMagnitudeBits int
	Logger           *zap.Logger
}

// System is the environment Numbers are computed in: the prime registry
// backing ordinals, the factoring strategy and the size limits. It is
// immutable once created and may be shared freely.
type System struct {
	registry         *primes.Registry
	factorer         factor.Factorer
	maxOrdinal       int
	maxMagnitudeBits int
	logger           *zap.Logger
}

// NewSystem creates a System from cfg.
func NewSystem(cfg Config) *System {
	s := &System{
		registry:         cfg.Registry,
		factorer:         cfg.Factorer,
		maxOrdinal:       cfg.MaxOrdinal,
		maxMagnitudeBits: cfg.MaxMagnitudeBits,
		logger:           cfg.Logger,
	}
	if s.registry == nil {
		s.registry = primes.Default()
	}
	if s.maxOrdinal <= 0 {
		s.maxOrdinal = DefaultMaxOrdinal
	}
	if s.maxMagnitudeBits <= 0 {
		s.maxMagnitudeBits = DefaultMaxMagnitudeBits
	}
	if s.factorer == nil {
		s.factorer = factor.Default(s.registry, s.maxOrdinal)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

var (
	defaultOnce   sync.Once
	defaultSystem *System
)

// Default returns the process-wide System built on primes.Default.
func Default() *System {
	defaultOnce.Do(func() {
		defaultSystem = NewSystem(Config{})
	})
	return defaultSystem
}

// Registry returns the prime registry of s.
func (s *System) Registry() *primes.Registry {
	return s.registry
}

// FromMagnitude returns n as a Number with only its magnitude fresh.
func (s *System) FromMagnitude(n *big.Int) (*Number, error) {
	if n == nil || n.Sign() <= 0 {
		return nil, domainError("construct from magnitude %v", n)
	}
	return s.magnitudeNumber(new(big.Int).Set(n)), nil
}

// FromUint64 returns n as a Number with only its magnitude fresh.
func (s *System) FromUint64(n uint64) (*Number, error) {
	return s.FromMagnitude(new(big.Int).SetUint64(n))
}

// Identity returns 1, with both views fresh.
func (s *System) Identity() *Number {
	return &Number{
		sys:     s,
		fresh:   magnitudeFresh | factorsFresh,
		mag:     big.NewInt(1),
		factors: []*Number{},
	}
}

// Zero returns the additive identity. It is only meaningful as an exponent
// or as an operand of Add.
func (s *System) Zero() *Number {
	return &Number{sys: s, zero: true, fresh: magnitudeFresh, mag: new(big.Int)}
}

// FromFactorization returns the Number whose exponent on the i-th prime is
// exponents[i]. The exponents are deep-copied; nil entries read as zero.
// Only the factorization is fresh.
func (s *System) FromFactorization(exponents []*Number) (*Number, error) {
	if err := checkWellFounded(exponents, map[*Number]bool{}); err != nil {
		return nil, err
	}
	if len(exponents) > s.maxOrdinal {
		return nil, tooLargeError("factorization with %d entries, limit %d", len(exponents), s.maxOrdinal)
	}
	factors := make([]*Number, len(exponents))
	for i, e := range exponents {
		if e == nil {
			factors[i] = s.Zero()
			continue
		}
		factors[i] = e.cloneInto(s)
	}
	return s.factorsNumber(factors), nil
}

func (s *System) magnitudeNumber(m *big.Int) *Number {
	return &Number{sys: s, zero: m.Sign() == 0, fresh: magnitudeFresh, mag: m}
}

// factorsNumber takes ownership of factors.
func (s *System) factorsNumber(factors []*Number) *Number {
	return &Number{sys: s, fresh: factorsFresh, factors: trim(factors)}
}

// checkWellFounded rejects exponent trees in which a Number is its own
// descendant. Non-negative exponents over primes otherwise always satisfy
// e < p^e, so the size condition needs no further check.
func checkWellFounded(exponents []*Number, path map[*Number]bool) error {
	for i, e := range exponents {
		if e == nil || e.fresh&factorsFresh == 0 {
			continue
		}
		if path[e] {
			return wellFoundedError("exponent %d contains itself", i)
		}
		path[e] = true
		if err := checkWellFounded(e.factors, path); err != nil {
			return err
		}
		delete(path, e)
	}
	return nil
}

// FromMagnitude calls Default().FromMagnitude.
func FromMagnitude(n *big.Int) (*Number, error) {
	return Default().FromMagnitude(n)
}

// FromUint64 calls Default().FromUint64.
func FromUint64(n uint64) (*Number, error) {
	return Default().FromUint64(n)
}

// Identity calls Default().Identity.
func Identity() *Number {
	return Default().Identity()
}

// Zero calls Default().Zero.
func Zero() *Number {
	return Default().Zero()
}

// FromFactorization calls Default().FromFactorization.
func FromFactorization(exponents []*Number) (*Number, error) {
	return Default().FromFactorization(exponents)
}
