// Package primes maintains an ordered, append-only table of prime numbers
// addressed by ordinal: ordinal 0 is 2, ordinal 1 is 3, and so on.
//
// # Growth
//
// A Registry starts with the seed {2, 3} and grows on demand. Growth sieves a
// window just above the largest known prime with a segmented Sieve of
// Eratosthenes. The window never extends past the square of the largest
// known prime, so the primes already in the table are enough to cross off
// every composite in it. Entries are never reordered or removed.
//
// # Concurrency
//
// A Registry may be shared between goroutines. Lookups of ordinals that are
// already known take a read lock; growth is serialized behind a single
// write lock.
package primes
