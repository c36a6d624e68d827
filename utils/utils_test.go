package utils

import (
	"bytes"
	"io"
	"math/big"
	"testing"
)

func TestSecureRandomBytes(t *testing.T) {
	a, err := SecureRandomBytes(32)
	if err != nil {
		t.Fatalf("SecureRandomBytes failed: %v", err)
	}
	if len(a) != 32 {
		t.Fatalf("expected 32 bytes, got %d", len(a))
	}
	b, err := SecureRandomBytes(32)
	if err != nil {
		t.Fatalf("SecureRandomBytes failed: %v", err)
	}
	if bytes.Equal(a, b) {
		t.Error("two random draws returned identical bytes")
	}
}

func TestRandomInRange(t *testing.T) {
	max := big.NewInt(1000)
	one := big.NewInt(1)
	for i := 0; i < 100; i++ {
		r, err := RandomInRange(RandReader, max)
		if err != nil {
			t.Fatalf("RandomInRange failed: %v", err)
		}
		if r.Cmp(one) < 0 || r.Cmp(max) >= 0 {
			t.Fatalf("value %v outside [1, %v)", r, max)
		}
	}

	// max = 2 leaves a single admissible value.
	r, err := RandomInRange(RandReader, big.NewInt(2))
	if err != nil {
		t.Fatalf("RandomInRange failed: %v", err)
	}
	if r.Cmp(one) != 0 {
		t.Errorf("expected 1, got %v", r)
	}

	for _, bad := range []*big.Int{nil, big.NewInt(0), big.NewInt(1), big.NewInt(-5)} {
		if _, err := RandomInRange(RandReader, bad); err == nil {
			t.Errorf("expected error for max=%v", bad)
		}
	}
}

func TestRandomUnit(t *testing.T) {
	// 1081 = 23 * 47, so roughly 6% of [1, n) are non-units.
	n := big.NewInt(1081)
	one := big.NewInt(1)
	for i := 0; i < 100; i++ {
		r, err := RandomUnit(RandReader, n)
		if err != nil {
			t.Fatalf("RandomUnit failed: %v", err)
		}
		if r.Cmp(one) < 0 || r.Cmp(n) >= 0 {
			t.Fatalf("unit %v outside [1, %v)", r, n)
		}
		if new(big.Int).GCD(nil, nil, r, n).Cmp(one) != 0 {
			t.Fatalf("value %v is not a unit mod %v", r, n)
		}
	}
}

func TestShake256Deterministic(t *testing.T) {
	a := Shake256([]byte("seed"), 64)
	b := Shake256([]byte("seed"), 64)
	if len(a) != 64 {
		t.Fatalf("expected 64 bytes, got %d", len(a))
	}
	if !bytes.Equal(a, b) {
		t.Error("same input produced different output")
	}
	c := Shake256([]byte("other"), 64)
	if bytes.Equal(a, c) {
		t.Error("different inputs produced identical output")
	}
}

func TestHashWithDomainSeparation(t *testing.T) {
	data := []byte("payload")
	a := HashWithDomain("domain-a", data)
	b := HashWithDomain("domain-b", data)
	if bytes.Equal(a, b) {
		t.Error("different domains produced identical hashes")
	}
}

func TestHashConcatBoundaries(t *testing.T) {
	// Length prefixes must keep ("ab","c") distinct from ("a","bc").
	a := HashConcat([]byte("ab"), []byte("c"))
	b := HashConcat([]byte("a"), []byte("bc"))
	if bytes.Equal(a, b) {
		t.Error("concatenation boundary ambiguity")
	}
}

func TestNewShakeReader(t *testing.T) {
	readStream := func(domain string, seed []byte) []byte {
		r := NewShakeReader(domain, seed)
		buf := make([]byte, 128)
		if _, err := io.ReadFull(r, buf); err != nil {
			t.Fatalf("reading stream: %v", err)
		}
		return buf
	}

	seed := []byte("reproducible")
	a := readStream("test-v1", seed)
	b := readStream("test-v1", seed)
	if !bytes.Equal(a, b) {
		t.Error("same domain and seed produced different streams")
	}
	c := readStream("test-v2", seed)
	if bytes.Equal(a, c) {
		t.Error("different domains produced identical streams")
	}
}

func TestZeroizeBig(t *testing.T) {
	x := new(big.Int).SetUint64(0xdeadbeefcafe)
	ZeroizeBig(x)
	if x.Sign() != 0 {
		t.Errorf("expected 0 after zeroize, got %v", x)
	}
	ZeroizeBig(nil) // must not panic
}

func TestZeroize(t *testing.T) {
	b := []byte{1, 2, 3, 4}
	Zeroize(b)
	for i, v := range b {
		if v != 0 {
			t.Errorf("byte %d not zeroed: %d", i, v)
		}
	}
}
