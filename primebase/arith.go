package primebase

import "math/big"

// MultiplyBy sets n to n*other. Exponents on the same prime are added;
// primes only other has are copied in. Zero absorbs. On error n is
// unchanged.
func (n *Number) MultiplyBy(other *Number) error {
	if n.zero {
		return nil
	}
	if other.zero {
		n.setMagnitude(new(big.Int))
		return nil
	}
	if other == n {
		other = other.Clone()
	}
	if err := n.ensureFactorization(); err != nil {
		return err
	}
	if err := other.ensureFactorization(); err != nil {
		return err
	}
	if len(other.factors) > n.sys.maxOrdinal {
		return tooLargeError("product needs %d primes, limit %d", len(other.factors), n.sys.maxOrdinal)
	}

	// Exponent sums go through the magnitudes; resolve them all before
	// touching n so a failure leaves it intact.
	for i, f := range other.factors {
		if i >= len(n.factors) || f.zero || n.factors[i].zero {
			continue
		}
		if err := n.factors[i].ensureMagnitude(); err != nil {
			return err
		}
		if err := f.ensureMagnitude(); err != nil {
			return err
		}
	}

	factors := n.factors
	for i, f := range other.factors {
		switch {
		case i >= len(factors):
			factors = append(factors, f.cloneInto(n.sys))
		case f.zero:
		case factors[i].zero:
			factors[i] = f.cloneInto(n.sys)
		default:
			factors[i].addMagnitude(f)
		}
	}
	n.setFactors(factors)
	return nil
}

// ToPower sets n to n^k. Every exponent of n is multiplied by k. Any n
// raised to zero is the identity, and the identity raised to anything
// stays the identity. On error n is unchanged.
func (n *Number) ToPower(k *Number) error {
	switch {
	case k.zero:
		n.setIdentity()
		return nil
	case n.zero, n.IsIdentity(), k.IsIdentity():
		return nil
	}
	if err := n.ensureFactorization(); err != nil {
		return err
	}

	k = k.cloneInto(n.sys)
	if err := k.ensureFactorization(); err != nil {
		return err
	}

	factors := make([]*Number, len(n.factors))
	for i, e := range n.factors {
		product := e.Clone()
		if err := product.MultiplyBy(k); err != nil {
			return err
		}
		factors[i] = product
	}
	n.setFactors(factors)
	return nil
}

// Add sets n to n+other. There is no factorization-native sum: both
// magnitudes are computed and the factorization of the result is left to
// be recovered on demand.
func (n *Number) Add(other *Number) error {
	if err := other.ensureMagnitude(); err != nil {
		return err
	}
	if err := n.ensureMagnitude(); err != nil {
		return err
	}
	n.addMagnitude(other)
	return nil
}

// addMagnitude assumes both magnitudes are fresh.
func (n *Number) addMagnitude(other *Number) {
	n.setMagnitude(new(big.Int).Add(n.mag, other.mag))
}

// DivideBy sets n to n/other when other divides n. It fails with ErrDomain
// when some exponent of other exceeds the matching exponent of n, or when
// other is zero. On error n is unchanged.
func (n *Number) DivideBy(other *Number) error {
	if other.zero {
		return domainError("division by zero")
	}
	if n.zero {
		return nil
	}
	if err := n.ensureFactorization(); err != nil {
		return err
	}
	if err := other.ensureFactorization(); err != nil {
		return err
	}
	if len(other.factors) > len(n.factors) {
		return domainError("negative exponent on prime ordinal %d", len(other.factors)-1)
	}

	factors := make([]*Number, len(n.factors))
	for i, e := range n.factors {
		if i >= len(other.factors) || other.factors[i].zero {
			factors[i] = e.Clone()
			continue
		}
		f := other.factors[i]
		if err := e.ensureMagnitude(); err != nil {
			return err
		}
		if err := f.ensureMagnitude(); err != nil {
			return err
		}
		if e.mag.Cmp(f.mag) < 0 {
			return domainError("negative exponent on prime ordinal %d", i)
		}
		factors[i] = n.sys.magnitudeNumber(new(big.Int).Sub(e.mag, f.mag))
	}
	n.setFactors(factors)
	return nil
}

// GreatestCommonFactorWith returns the number whose exponents are the
// minimum of the exponents of n and other. A prime missing from either
// operand has exponent zero. Neither operand changes.
func (n *Number) GreatestCommonFactorWith(other *Number) (*Number, error) {
	return n.combine(other, "greatest common factor", func(c int) bool { return c <= 0 })
}

// LeastCommonMultipleWith returns the number whose exponents are the
// maximum of the exponents of n and other. Neither operand changes.
func (n *Number) LeastCommonMultipleWith(other *Number) (*Number, error) {
	return n.combine(other, "least common multiple", func(c int) bool { return c >= 0 })
}

// combine builds a new factorization choosing, per ordinal, n's exponent
// when pickOwn(cmp(n_i, other_i)) holds and other's otherwise.
func (n *Number) combine(other *Number, op string, pickOwn func(int) bool) (*Number, error) {
	if n.zero || other.zero {
		return nil, domainError("%s with zero", op)
	}
	if err := n.ensureFactorization(); err != nil {
		return nil, err
	}
	if err := other.ensureFactorization(); err != nil {
		return nil, err
	}

	size := len(n.factors)
	if len(other.factors) > size {
		size = len(other.factors)
	}
	factors := make([]*Number, size)
	for i := range factors {
		e, f := n.exponent(i), other.exponent(i)
		c, err := e.Cmp(f)
		if err != nil {
			return nil, err
		}
		if pickOwn(c) {
			factors[i] = e.cloneInto(n.sys)
		} else {
			factors[i] = f.cloneInto(n.sys)
		}
	}
	return n.sys.factorsNumber(factors), nil
}

// exponent returns the exponent on ordinal i without copying it, reading
// past the end as zero. The factorization must be fresh.
func (n *Number) exponent(i int) *Number {
	if i < len(n.factors) {
		return n.factors[i]
	}
	return n.sys.Zero()
}

// Cmp compares n and other by value and returns -1, 0 or +1.
func (n *Number) Cmp(other *Number) (int, error) {
	switch {
	case n.zero && other.zero:
		return 0, nil
	case n.zero:
		return -1, nil
	case other.zero:
		return 1, nil
	}
	if n.fresh&factorsFresh != 0 && other.fresh&factorsFresh != 0 {
		if equal, err := n.equalFactors(other); err == nil && equal {
			return 0, nil
		}
	}
	if err := n.ensureMagnitude(); err != nil {
		return 0, err
	}
	if err := other.ensureMagnitude(); err != nil {
		return 0, err
	}
	return n.mag.Cmp(other.mag), nil
}

// Equal reports whether n and other have the same value. When both
// factorizations are fresh it compares them exponent by exponent, which
// works for values whose magnitude is out of reach.
func (n *Number) Equal(other *Number) (bool, error) {
	if n.zero || other.zero {
		return n.zero == other.zero, nil
	}
	if n.fresh&factorsFresh != 0 && other.fresh&factorsFresh != 0 {
		return n.equalFactors(other)
	}
	c, err := n.Cmp(other)
	return c == 0, err
}

func (n *Number) equalFactors(other *Number) (bool, error) {
	if len(n.factors) != len(other.factors) {
		return false, nil
	}
	for i, e := range n.factors {
		equal, err := e.Equal(other.factors[i])
		if err != nil || !equal {
			return false, err
		}
	}
	return true, nil
}

// Dimension returns the sum of all exponents of n.
func (n *Number) Dimension() (*big.Int, error) {
	if err := n.ensureFactorization(); err != nil {
		return nil, err
	}
	sum := new(big.Int)
	for _, e := range n.factors {
		if err := e.ensureMagnitude(); err != nil {
			return nil, err
		}
		sum.Add(sum, e.mag)
	}
	return sum, nil
}

// HighestFactorOrdinal returns one past the ordinal of the largest prime
// dividing n; zero for the identity.
func (n *Number) HighestFactorOrdinal() (int, error) {
	if err := n.ensureFactorization(); err != nil {
		return 0, err
	}
	return len(n.factors), nil
}

// ExponentAt returns a copy of the exponent on the prime of the given
// ordinal. Ordinals past the end of the factorization have exponent zero.
func (n *Number) ExponentAt(ordinal int) (*Number, error) {
	if ordinal < 0 {
		return nil, domainError("negative ordinal %d", ordinal)
	}
	if err := n.ensureFactorization(); err != nil {
		return nil, err
	}
	return n.exponent(ordinal).Clone(), nil
}

// Exponents returns a deep copy of the factorization of n.
func (n *Number) Exponents() ([]*Number, error) {
	if err := n.ensureFactorization(); err != nil {
		return nil, err
	}
	out := make([]*Number, len(n.factors))
	for i, e := range n.factors {
		out[i] = e.Clone()
	}
	return out, nil
}
