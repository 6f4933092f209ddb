package internal

import (
	"crypto/rand"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"
)

// ErrInvalidBound is returned when a bounded draw is requested with n <= 0.
var ErrInvalidBound = errors.New("invalid random bound")

// Source returns r, or crypto/rand.Reader when r is nil.
func Source(r io.Reader) io.Reader {
	if r == nil {
		return rand.Reader
	}
	return r
}

// ReadBytes fills a fresh n-byte slice from r.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(Source(r), buf); err != nil {
		return nil, fmt.Errorf("read random: %w", err)
	}
	return buf, nil
}

// Uint32s draws n little-endian uint32 values from r with a single read.
func Uint32s(r io.Reader, n int) ([]uint32, error) {
	raw, err := ReadBytes(r, n*4)
	if err != nil {
		return nil, err
	}

	out := make([]uint32, n)
	for i := range out {
		out[i] = binary.LittleEndian.Uint32(raw[i*4:])
	}
	return out, nil
}

// Intn returns a uniform value in [0, n) drawn from r. Each attempt consumes one
// little-endian uint32; values in the biased tail are rejected and redrawn.
func Intn(r io.Reader, n int) (int, error) {
	if n <= 0 || uint64(n) > math.MaxUint32 {
		return 0, ErrInvalidBound
	}

	bound := uint64(n)
	threshold := (1 << 32) - (1<<32)%bound
	for {
		draw, err := Uint32s(r, 1)
		if err != nil {
			return 0, err
		}
		if v := uint64(draw[0]); v < threshold {
			return int(v % bound), nil
		}
	}
}

// Pick returns one byte of alphabet chosen uniformly.
func Pick(r io.Reader, alphabet string) (byte, error) {
	i, err := Intn(r, len(alphabet))
	if err != nil {
		return 0, err
	}
	return alphabet[i], nil
}

// SamplePositions returns k distinct indices in [0, n) in draw order using a
// partial Fisher-Yates shuffle.
func SamplePositions(r io.Reader, n, k int) ([]int, error) {
	if k > n {
		k = n
	}
	if k <= 0 {
		return []int{}, nil
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	for i := 0; i < k; i++ {
		j, err := Intn(r, n-i)
		if err != nil {
			return nil, err
		}
		idx[i], idx[i+j] = idx[i+j], idx[i]
	}

	return idx[:k], nil
}
