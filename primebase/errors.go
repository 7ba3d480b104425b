package primebase

import (
	"errors"
	"fmt"
)

var (
	// ErrDomain reports a value outside the positive integers: a zero where
	// a factorization is needed, or a subtraction that would leave a
	// negative exponent.
	ErrDomain = errors.New("primebase: outside the positive integers")

	// ErrWellFounded reports a factorization that contains itself.
	ErrWellFounded = errors.New("primebase: factorization is not well-founded")

	// ErrTooLarge reports a conversion that exceeds the System's limits.
	ErrTooLarge = errors.New("primebase: value exceeds configured limits")

	// ErrSyntax reports malformed input to Parse.
	ErrSyntax = errors.New("primebase: invalid syntax")
)

func domainError(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrDomain)...)
}

func wellFoundedError(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrWellFounded)...)
}

func tooLargeError(format string, args ...any) error {
	return fmt.Errorf(format+": %w", append(args, ErrTooLarge)...)
}
