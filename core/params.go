// Package core provides parameter profiles and validation for lhtlp.
package core

import (
	"errors"
	"fmt"
	"math/big"

	lhtlp "github.com/BackendStack21/lhtlp-go"
	"github.com/BackendStack21/lhtlp-go/safeprime"
)

// SecurityLevel names a preset setup profile.
type SecurityLevel string

const (
	// TLP64 uses 64-bit safe primes. Factoring the modulus is trivial at
	// this size; the profile exists for tests, demos and benchmarks.
	TLP64 SecurityLevel = "TLP-64"
	// TLP1024 uses 1024-bit safe primes (2048-bit modulus).
	TLP1024 SecurityLevel = "TLP-1024"
	// TLP2048 uses 2048-bit safe primes (4096-bit modulus).
	TLP2048 SecurityLevel = "TLP-2048"
)

// Profile pairs a safe-prime bit length with a default difficulty.
// Difficulty controls the sequential solve time only; it does not affect
// setup or generation cost. A difficulty of 1e8 takes on the order of
// seconds at small modulus sizes and grows with the modulus, since each
// squaring is a multiplication at full modulus width.
type Profile struct {
	Level        SecurityLevel
	SecurityBits int      // bit length of each safe prime
	Difficulty   *big.Int // default sequential squaring count
}

// TLP64Profile is the test/demo profile: fast setup, solvable in seconds.
var TLP64Profile = Profile{
	Level:        TLP64,
	SecurityBits: 64,
	Difficulty:   big.NewInt(100_000_000),
}

// TLP1024Profile is the baseline production profile.
var TLP1024Profile = Profile{
	Level:        TLP1024,
	SecurityBits: 1024,
	Difficulty:   big.NewInt(10_000_000),
}

// TLP2048Profile is the conservative production profile.
var TLP2048Profile = Profile{
	Level:        TLP2048,
	SecurityBits: 2048,
	Difficulty:   big.NewInt(10_000_000),
}

// GetProfile returns the preset profile for the given security level.
func GetProfile(level SecurityLevel) (Profile, error) {
	switch level {
	case TLP64:
		return TLP64Profile, nil
	case TLP1024:
		return TLP1024Profile, nil
	case TLP2048:
		return TLP2048Profile, nil
	default:
		return Profile{}, fmt.Errorf("unknown security level: %s", level)
	}
}

// ValidateProfile validates a setup profile for consistency.
func ValidateProfile(p Profile) error {
	if p.SecurityBits < safeprime.MinBits {
		return fmt.Errorf("security bits must be at least %d", safeprime.MinBits)
	}
	if p.Difficulty == nil || p.Difficulty.Sign() < 0 {
		return errors.New("difficulty must be non-negative")
	}
	return nil
}

// ValidateParams performs structural checks on a parameter set. It cannot
// verify the discrete relationship between G and H without the trapdoor,
// but it rejects parameter sets that are malformed on their face.
func ValidateParams(params *lhtlp.Params) error {
	if params == nil {
		return errors.New("parameter set must not be nil")
	}
	if params.Difficulty == nil || params.N == nil || params.G == nil || params.H == nil {
		return errors.New("parameter set has missing fields")
	}
	if params.Difficulty.Sign() < 0 {
		return errors.New("difficulty must be non-negative")
	}
	n := params.N
	if n.BitLen() < 2*safeprime.MinBits-1 {
		return errors.New("modulus is too small")
	}
	if n.Bit(0) == 0 {
		return errors.New("modulus must be odd")
	}
	if n.ProbablyPrime(10) {
		return errors.New("modulus must be composite")
	}
	one := big.NewInt(1)
	for _, el := range []struct {
		name string
		v    *big.Int
	}{{"generator", params.G}, {"forcing element", params.H}} {
		if el.v.Cmp(one) < 0 || el.v.Cmp(n) >= 0 {
			return fmt.Errorf("%s must lie in [1, modulus)", el.name)
		}
		if new(big.Int).GCD(nil, nil, el.v, n).Cmp(one) != 0 {
			return fmt.Errorf("%s must be a unit modulo the modulus", el.name)
		}
	}
	return nil
}
