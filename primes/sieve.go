package primes

import (
	"math"

	"github.com/JoshOrndorff/PrimeBase/bitset"
)

// sieveWindow returns the primes in [lo, hi] in ascending order. base must
// hold every prime up to the square root of hi, in ascending order.
func sieveWindow(lo, hi uint64, base []uint64) []uint64 {
	if hi < lo {
		return nil
	}
	if lo < 2 {
		lo = 2
	}

	composite := bitset.New(int(hi - lo + 1))
	for _, p := range base {
		if p*p > hi {
			break
		}
		// First multiple of p inside the window, never p itself.
		first := (lo + p - 1) / p * p
		if first < p*p {
			first = p * p
		}
		if first > hi {
			continue
		}
		composite.SetStride(int(first-lo), int(p))
	}

	result := make([]uint64, 0, composite.Len()-composite.Count())
	for pos := composite.NextClear(0); pos >= 0; pos = composite.NextClear(pos + 1) {
		result = append(result, lo+uint64(pos))
	}
	return result
}

// estimateNth returns an upper bound for the n-th prime (1-based), using
// Rosser's bound p_n < n(ln n + ln ln n) for n >= 6.
func estimateNth(n int) uint64 {
	if n < 6 {
		return 13
	}
	x := float64(n)
	return uint64(x*(math.Log(x)+math.Log(math.Log(x)))) + 1
}
