// Command primebase evaluates arithmetic on prime-factorization numbers.
//
// Operands are decimals or bracketed exponent lists:
//
//	primebase describe 60 "[2, 1, 1]"
//	primebase gcf 60 24
//	primebase power "[[10]]" 4 --output yaml
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
