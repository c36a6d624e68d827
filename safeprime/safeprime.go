// Package safeprime generates safe primes, i.e. primes p such that
// (p-1)/2 is also prime.
//
// The search uses a combined sieve: candidates for q = (p-1)/2 are drawn
// once at random and then stepped by small even deltas, with cheap filters
// applied before any expensive primality test. Candidates where q or
// p = 2q+1 have a factor among the primes up to 53 are rejected via a
// single modular reduction by the product of those primes, and candidates
// with q = 1 (mod 3) are rejected outright since they force 3 | p. Only
// survivors reach the probabilistic tests: Baillie-PSW plus Miller-Rabin
// rounds on q, then Pocklington's criterion to certify p from q's
// primality.
package safeprime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/big"

	"github.com/BackendStack21/lhtlp-go/utils"
)

const (
	// initialTestRounds runs a single Baillie-PSW test, used as a fast filter.
	initialTestRounds = 1
	// fullTestRounds runs Baillie-PSW plus 14 Miller-Rabin rounds for
	// high-certainty verification.
	fullTestRounds = 15
	// maxDeltaSearch bounds the even-step search from one random base
	// before a fresh base is drawn.
	maxDeltaSearch = 1 << 20

	// MinBits is the smallest supported safe prime size. Below this the
	// sieve's small primes overlap the candidates themselves.
	MinBits = 8
)

// ErrBitsTooSmall is returned when the requested size is below MinBits.
var ErrBitsTooSmall = errors.New("safe prime size must be at least 8 bits")

var (
	one   = big.NewInt(1)
	two   = big.NewInt(2)
	three = big.NewInt(3)

	// Primes 3..53. Their product fits a uint64, so one big.Int reduction
	// per base covers the whole sieve.
	smallPrimes = [...]uint64{3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37, 41, 43, 47, 53}

	smallPrimesProduct = new(big.Int).SetUint64(16294579238595022365)
)

// Generate returns a safe prime of exactly bits bits, drawing randomness
// from utils.RandReader.
func Generate(bits int) (*big.Int, error) {
	return GenerateWithReader(utils.RandReader, bits)
}

// GenerateWithReader returns a safe prime of exactly bits bits, drawing
// randomness from rnd.
func GenerateWithReader(rnd io.Reader, bits int) (*big.Int, error) {
	return generate(context.Background(), rnd, bits)
}

// GenerateConcurrent runs several search workers and returns the first safe
// prime found. Generation time is dominated by luck with the random base,
// so concurrency shortens the tail for large bit sizes. The context bounds
// the total search time.
func GenerateConcurrent(ctx context.Context, bits, concurrency int) (*big.Int, error) {
	if concurrency < 1 {
		return nil, errors.New("concurrency must be at least 1")
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	type result struct {
		p   *big.Int
		err error
	}
	resCh := make(chan result, concurrency)
	for i := 0; i < concurrency; i++ {
		go func() {
			p, err := generate(ctx, utils.RandReader, bits)
			resCh <- result{p, err}
		}()
	}

	var firstErr error
	for i := 0; i < concurrency; i++ {
		res := <-resCh
		if res.err == nil {
			return res.p, nil
		}
		if firstErr == nil {
			firstErr = res.err
		}
	}
	return nil, firstErr
}

// IsSafePrime reports whether p is a safe prime, i.e. whether both p and
// (p-1)/2 pass high-certainty primality tests.
func IsSafePrime(p *big.Int) bool {
	if p == nil || p.Cmp(two) <= 0 || p.Bit(0) == 0 {
		return false
	}
	q := new(big.Int).Rsh(p, 1) // (p-1)/2 for odd p
	return q.ProbablyPrime(fullTestRounds) && p.ProbablyPrime(fullTestRounds)
}

func generate(ctx context.Context, rnd io.Reader, bits int) (*big.Int, error) {
	if bits < MinBits {
		return nil, ErrBitsTooSmall
	}

	qBits := bits - 1
	b := uint(qBits % 8)
	if b == 0 {
		b = 8
	}
	raw := make([]byte, (qBits+7)/8)

	q := new(big.Int)
	p := new(big.Int)
	base := new(big.Int)
	tmp := new(big.Int)
	exp := new(big.Int)

	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if _, err := io.ReadFull(rnd, raw); err != nil {
			return nil, fmt.Errorf("reading randomness: %w", err)
		}

		// Trim to qBits and set the top two bits so that products of two
		// generated primes always reach the intended modulus size.
		raw[0] &= byte(1<<b) - 1
		if b >= 2 {
			raw[0] |= 3 << (b - 2)
		} else {
			raw[0] |= 1
			if len(raw) > 1 {
				raw[1] |= 0x80
			}
		}
		// Candidates must be odd.
		raw[len(raw)-1] |= 1

		base.SetBytes(raw)

		// One reduction by the small-prime product serves the whole delta
		// search: q mod sp = (baseMod + delta) mod sp for every sieve prime.
		baseMod := tmp.Mod(base, smallPrimesProduct).Uint64()
		baseMod3 := tmp.Mod(base, three).Uint64()

	NextDelta:
		for delta := uint64(0); delta < maxDeltaSearch; delta += 2 {
			// q = 1 (mod 3) forces p = 2q+1 = 3(2q'+1), so half of all
			// candidates die here before any division.
			if (baseMod3+delta)%3 == 1 {
				continue
			}
			m := baseMod + delta
			for _, sp := range smallPrimes {
				r := m % sp
				if r == 0 {
					continue NextDelta
				}
				// p mod sp computed from q mod sp, avoiding overflow of 2m+1.
				if (2*r+1)%sp == 0 {
					continue NextDelta
				}
			}

			q.Set(base)
			if delta > 0 {
				q.Add(q, tmp.SetUint64(delta))
			}
			// Stepping past the bit boundary would shrink the modulus.
			if q.BitLen() != qBits {
				break
			}

			// Fast Baillie-PSW filter first, full verification only on
			// survivors.
			if !q.ProbablyPrime(initialTestRounds) {
				continue
			}
			if !q.ProbablyPrime(fullTestRounds) {
				continue
			}

			p.Lsh(q, 1)
			p.Add(p, one)

			// Pocklington's criterion: with q prime and 2^(p-1) = 1 (mod p),
			// p = 2q+1 is prime. One Baillie-PSW round on p guards against
			// implementation bugs.
			if tmp.Exp(two, exp.Sub(p, one), p).Cmp(one) != 0 {
				continue
			}
			if !p.ProbablyPrime(initialTestRounds) {
				continue
			}

			return new(big.Int).Set(p), nil
		}
	}
}
