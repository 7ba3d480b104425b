// Package primebase implements positive integers stored by their prime
// factorization, where every exponent is itself such a number.
//
// # Representation
//
// A Number keeps up to two views of the same value: its magnitude, the
// ordinary place-value integer, and its factorization, the list of exponents
// on the primes 2, 3, 5, ... in ordinal order. At least one view is always
// fresh. The other is computed on demand and cached:
//
//   - the magnitude is recomputed as the product of p_i^e_i,
//   - the factorization is recovered by the System's factor.Factorer.
//
// Because exponents are Numbers too, the structure is hereditary: 2^(2^100)
// is a factorization with a single exponent whose own factorization has a
// single exponent 100. Such values are cheap to multiply, raise and compare
// even though their magnitude could never be stored.
//
// Zero is not a positive integer and has no factorization. It exists as a
// value only because exponents need an additive identity; FromMagnitude
// rejects it and every operation that needs a factorization fails on it
// with ErrDomain.
//
// # Ownership
//
// A Number owns its exponents. Anything that enters or leaves a
// factorization is deep-copied, so mutating one Number never changes
// another.
//
// # Arithmetic
//
// Multiplication, powers, exact division, GCF and LCM work exponent by
// exponent on the factorization. Addition has no factorization-native
// algorithm: Add sums the magnitudes and leaves the factorization to be
// recovered lazily.
//
// A Number is not safe for concurrent mutation. Distinct Numbers sharing a
// System may be used from different goroutines.
package primebase
