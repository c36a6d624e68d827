package utils

import (
	"crypto/rand"
	"errors"
	"io"
	"math/big"
	"runtime"
)

// RandReader is the source of randomness for all operations that draw
// entropy. It defaults to the operating system CSPRNG and is a variable so
// tests can substitute a deterministic reader.
var RandReader io.Reader = rand.Reader

var one = big.NewInt(1)

// SecureRandomBytes generates n cryptographically secure random bytes.
func SecureRandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	_, err := RandReader.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomInRange returns a uniform random integer in [1, max).
// It reads from rnd, which must be a cryptographically secure source.
func RandomInRange(rnd io.Reader, max *big.Int) (*big.Int, error) {
	if max == nil || max.Cmp(one) <= 0 {
		return nil, errors.New("max must be greater than 1")
	}
	bound := new(big.Int).Sub(max, one)
	r, err := rand.Int(rnd, bound)
	if err != nil {
		return nil, err
	}
	return r.Add(r, one), nil
}

// RandomUnit returns a uniform random element of the multiplicative group
// modulo n, i.e. an r in [1, n) with gcd(r, n) = 1. Units are dense in
// [1, n) for an RSA-style modulus, so the rejection loop terminates almost
// surely within the first couple of draws.
func RandomUnit(rnd io.Reader, n *big.Int) (*big.Int, error) {
	gcd := new(big.Int)
	for {
		r, err := RandomInRange(rnd, n)
		if err != nil {
			return nil, err
		}
		if gcd.GCD(nil, nil, r, n).Cmp(one) == 0 {
			return r, nil
		}
	}
}

// Zeroize overwrites a byte slice with zeros.
// This is used to clear sensitive data from memory.
// Uses runtime.KeepAlive to prevent compiler optimization from eliminating the stores.
func Zeroize(b []byte) {
	for i := range b {
		b[i] = 0
	}
	runtime.KeepAlive(b)
}

// ZeroizeBig overwrites the backing storage of a big.Int with zeros and
// resets the value to 0. Used to discard trapdoor values after setup.
func ZeroizeBig(x *big.Int) {
	if x == nil {
		return
	}
	bits := x.Bits()
	for i := range bits {
		bits[i] = 0
	}
	x.SetInt64(0)
	runtime.KeepAlive(bits)
}
