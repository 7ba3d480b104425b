package primebase

import (
	"fmt"
	"math/big"
	"strings"
	"unicode"
)

// Describe renders the magnitude of n and its exponents, for example
// "Value: 60, Factorization: [2, 1, 1]". It computes whichever view is
// stale.
func (n *Number) Describe() (string, error) {
	m, err := n.Magnitude()
	if err != nil {
		return "", err
	}
	if n.zero {
		return "Value: 0, Factorization: none", nil
	}
	if err := n.ensureFactorization(); err != nil {
		return "", err
	}

	parts := make([]string, len(n.factors))
	for i, e := range n.factors {
		em, err := e.Magnitude()
		if err != nil {
			return "", err
		}
		parts[i] = em.String()
	}
	return fmt.Sprintf("Value: %s, Factorization: [%s]", m, strings.Join(parts, ", ")), nil
}

// Hereditary renders n with every exponent expanded into its own
// factorization: zero is "0" and a positive number is the bracketed list of
// its exponents, so 1 is "[]", 2 is "[[]]" and 12 is "[[[]], []]".
func (n *Number) Hereditary() (string, error) {
	var sb strings.Builder
	if err := n.writeHereditary(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (n *Number) writeHereditary(sb *strings.Builder) error {
	if n.zero {
		sb.WriteString("0")
		return nil
	}
	if err := n.ensureFactorization(); err != nil {
		return err
	}
	sb.WriteByte('[')
	for i, e := range n.factors {
		if i > 0 {
			sb.WriteString(", ")
		}
		if err := e.writeHereditary(sb); err != nil {
			return err
		}
	}
	sb.WriteByte(']')
	return nil
}

// String implements fmt.Stringer: Describe when the magnitude is within
// limits, Hereditary otherwise.
func (n *Number) String() string {
	if s, err := n.Describe(); err == nil {
		return s
	}
	s, err := n.Hereditary()
	if err != nil {
		return "%!(primebase: " + err.Error() + ")"
	}
	return s
}

// Parse reads a positive number written either as a decimal magnitude or
// as a bracketed list of exponents. List items are decimals, which may be
// zero, or nested lists: "[2, 1, 1]", "[[1]]" and "[0, [], 3]" are all
// accepted. The output of Hereditary parses back to the same value.
func (s *System) Parse(text string) (*Number, error) {
	p := &parser{sys: s, input: text}
	p.skipSpace()
	n, err := p.number()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos != len(p.input) {
		return nil, p.errorf("unexpected %q", p.input[p.pos:])
	}
	if n.zero {
		return nil, domainError("parse %q", text)
	}
	return n, nil
}

// Parse calls Default().Parse.
func Parse(text string) (*Number, error) {
	return Default().Parse(text)
}

type parser struct {
	sys   *System
	input string
	pos   int
}

func (p *parser) errorf(format string, args ...any) error {
	return fmt.Errorf("at offset %d: %s: %w", p.pos, fmt.Sprintf(format, args...), ErrSyntax)
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func (p *parser) number() (*Number, error) {
	if p.pos >= len(p.input) {
		return nil, p.errorf("unexpected end of input")
	}
	if p.input[p.pos] == '[' {
		return p.list()
	}
	return p.decimal()
}

func (p *parser) decimal() (*Number, error) {
	start := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	if start == p.pos {
		return nil, p.errorf("expected a digit or '['")
	}
	m, ok := new(big.Int).SetString(p.input[start:p.pos], 10)
	if !ok {
		return nil, p.errorf("bad decimal %q", p.input[start:p.pos])
	}
	return p.sys.magnitudeNumber(m), nil
}

func (p *parser) list() (*Number, error) {
	p.pos++ // '['
	factors := make([]*Number, 0)
	p.skipSpace()
	if p.pos < len(p.input) && p.input[p.pos] == ']' {
		p.pos++
		return p.sys.factorsNumber(factors), nil
	}
	for {
		p.skipSpace()
		item, err := p.number()
		if err != nil {
			return nil, err
		}
		factors = append(factors, item)
		if len(factors) > p.sys.maxOrdinal {
			return nil, tooLargeError("factorization longer than %d entries", p.sys.maxOrdinal)
		}
		p.skipSpace()
		if p.pos >= len(p.input) {
			return nil, p.errorf("unterminated list")
		}
		switch p.input[p.pos] {
		case ',':
			p.pos++
		case ']':
			p.pos++
			return p.sys.factorsNumber(factors), nil
		default:
			return nil, p.errorf("expected ',' or ']'")
		}
	}
}
