package primes

import (
	"errors"
	"fmt"
	"math/big"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// DefaultSegmentSize bounds the width of a single sieve window.
const DefaultSegmentSize = 1 << 20

var (
	// ErrNotPrime is returned when an ordinal is requested for a composite.
	ErrNotPrime = errors.New("not a prime")
	// ErrCapacity is returned when answering would require growing the
	// registry past the caller's limit.
	ErrCapacity = errors.New("prime registry capacity exceeded")
)

// Registry is an append-only table of the primes in ascending order.
type Registry struct {
	mu          sync.RWMutex
	known       []uint64
	sieved      uint64 // every prime <= sieved is in known
	segmentSize uint64
	logger      *zap.Logger
}

// Option configures a Registry.
type Option func(*Registry)

// WithLogger sets the logger that records growth.
func WithLogger(logger *zap.Logger) Option {
	return func(r *Registry) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithSegmentSize sets the maximum width of a sieve window.
func WithSegmentSize(size int) Option {
	return func(r *Registry) {
		if size > 0 {
			r.segmentSize = uint64(size)
		}
	}
}

// NewRegistry creates a registry seeded with 2 and 3.
func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		known:       []uint64{2, 3},
		sieved:      3,
		segmentSize: DefaultSegmentSize,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the process-wide registry.
func Default() *Registry {
	defaultOnce.Do(func() {
		defaultRegistry = NewRegistry()
	})
	return defaultRegistry
}

// Count returns how many primes are currently known. It never grows the
// registry.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.known)
}

// Largest returns the largest known prime.
func (r *Registry) Largest() uint64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.known[len(r.known)-1]
}

// At returns the prime with the given zero-based ordinal, growing the
// registry when the ordinal is not known yet. It panics on a negative
// ordinal.
func (r *Registry) At(ordinal int) uint64 {
	if ordinal < 0 {
		panic(fmt.Sprintf("primes: negative ordinal %d", ordinal))
	}

	r.mu.RLock()
	if ordinal < len(r.known) {
		p := r.known[ordinal]
		r.mu.RUnlock()
		return p
	}
	r.mu.RUnlock()

	r.Grow(ordinal + 1)

	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.known[ordinal]
}

// Primes returns a copy of the first n primes, growing as needed.
func (r *Registry) Primes(n int) []uint64 {
	if n <= 0 {
		return []uint64{}
	}
	r.Grow(n)

	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]uint64, n)
	copy(out, r.known[:n])
	return out
}

// Grow extends the registry until it holds at least n primes.
func (r *Registry) Grow(n int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if n <= len(r.known) {
		return
	}
	target := estimateNth(n)
	for len(r.known) < n {
		r.extendTo(target)
		// The bound is exact enough that this only loops for tiny n.
		target += target / 2
	}
	r.logger.Debug("prime registry grown",
		zap.Int("count", len(r.known)),
		zap.Uint64("largest", r.known[len(r.known)-1]))
}

// Ordinal returns the ordinal of the prime p, growing the registry to at
// most maxCount entries when p is beyond the known range.
func (r *Registry) Ordinal(p uint64, maxCount int) (int, error) {
	if p < 2 {
		return 0, fmt.Errorf("ordinal of %d: %w", p, ErrNotPrime)
	}

	ordinal, found, covered := r.search(p)
	if !covered {
		if !new(big.Int).SetUint64(p).ProbablyPrime(0) {
			return 0, fmt.Errorf("ordinal of %d: %w", p, ErrNotPrime)
		}
		if err := r.growThrough(p, maxCount); err != nil {
			return 0, fmt.Errorf("ordinal of %d: %w", p, err)
		}
		ordinal, found, _ = r.search(p)
	}
	if !found {
		return 0, fmt.Errorf("ordinal of %d: %w", p, ErrNotPrime)
	}
	if ordinal >= maxCount {
		return 0, fmt.Errorf("ordinal of %d is %d, limit %d: %w", p, ordinal, maxCount, ErrCapacity)
	}
	return ordinal, nil
}

// search looks p up among the known primes. covered reports whether p lies
// inside the known range at all.
func (r *Registry) search(p uint64) (ordinal int, found, covered bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if p > r.sieved {
		return len(r.known), false, false
	}
	i := sort.Search(len(r.known), func(i int) bool { return r.known[i] >= p })
	return i, i < len(r.known) && r.known[i] == p, true
}

// growThrough grows the registry until its largest prime is at least p,
// giving up when p cannot be among the first maxCount primes.
func (r *Registry) growThrough(p uint64, maxCount int) error {
	// p is prime, so if it exceeds the bound on the maxCount-th prime its
	// ordinal is out of reach and nothing needs to be sieved.
	if maxCount <= 0 || p > estimateNth(maxCount) {
		return ErrCapacity
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.extendTo(p)
	r.logger.Debug("prime registry grown",
		zap.Int("count", len(r.known)),
		zap.Uint64("largest", r.known[len(r.known)-1]))
	return nil
}

// extendTo sieves windows above the sieved range until every integer up to
// limit has been covered. Callers hold the write lock.
func (r *Registry) extendTo(limit uint64) {
	for r.sieved < limit {
		lo := r.sieved + 1
		hi := r.sieved * r.sieved
		if hi > limit {
			hi = limit
		}
		if hi-lo+1 > r.segmentSize {
			hi = lo + r.segmentSize - 1
		}
		r.known = append(r.known, sieveWindow(lo, hi, r.known)...)
		r.sieved = hi
	}
}
