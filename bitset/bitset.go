/*
Package bitset provides a fixed-size bitset backed by a slice of uint64 words.

The prime sieve uses it as its composite mask: bit i stands for the integer
lo+i of the window being sieved, and a set bit means "known composite".
*/
package bitset

import (
	"fmt"
	"math/bits"
)

// BitSet represents a bitset using a slice of uint64 values.
type BitSet struct {
	bits []uint64
	size int
}

// New creates a BitSet holding size bits, all cleared.
func New(size int) *BitSet {
	if size < 0 {
		size = 0
	}
	return &BitSet{
		bits: make([]uint64, (size+63)/64),
		size: size,
	}
}

// Len returns the number of addressable bits.
func (bs *BitSet) Len() int {
	return bs.size
}

func (bs *BitSet) check(pos int) error {
	if pos < 0 || pos >= bs.size {
		return fmt.Errorf("invalid position: %d", pos)
	}
	return nil
}

// Set sets the bit at the specified position to 1.
func (bs *BitSet) Set(pos int) error {
	if err := bs.check(pos); err != nil {
		return err
	}
	bs.bits[pos/64] |= 1 << (pos % 64)
	return nil
}

// Clear resets the bit at the specified position to 0.
func (bs *BitSet) Clear(pos int) error {
	if err := bs.check(pos); err != nil {
		return err
	}
	bs.bits[pos/64] &^= 1 << (pos % 64)
	return nil
}

// Test returns true if the bit at the specified position is set to 1.
func (bs *BitSet) Test(pos int) (bool, error) {
	if err := bs.check(pos); err != nil {
		return false, err
	}
	return bs.bits[pos/64]&(1<<(pos%64)) != 0, nil
}

// SetStride sets every bit at start, start+step, start+2*step, ... that lies
// inside the set. Positions before zero are skipped.
func (bs *BitSet) SetStride(start, step int) {
	if step <= 0 {
		return
	}
	if start < 0 {
		start += ((-start + step - 1) / step) * step
	}
	for pos := start; pos < bs.size; pos += step {
		bs.bits[pos/64] |= 1 << (pos % 64)
	}
}

// NextClear returns the position of the first cleared bit at or after from,
// or -1 when every remaining bit is set.
func (bs *BitSet) NextClear(from int) int {
	if from < 0 {
		from = 0
	}
	for index := from / 64; index < len(bs.bits); index++ {
		word := ^bs.bits[index]
		if index == from/64 {
			word &^= (1 << (from % 64)) - 1
		}
		if word == 0 {
			continue
		}
		pos := index*64 + bits.TrailingZeros64(word)
		if pos >= bs.size {
			return -1
		}
		return pos
	}
	return -1
}

// Count returns the number of bits set to 1.
func (bs *BitSet) Count() int {
	count := 0
	for _, word := range bs.bits {
		count += bits.OnesCount64(word)
	}
	return count
}
