// Package puzzle implements the LHTLP operations: parameter setup, puzzle
// generation, solving, and homomorphic evaluation.
//
// All operations are stateless pure functions over a shared parameter set.
// Setup, Generate and Evaluate cost a handful of modular exponentiations;
// Solve performs Difficulty sequential modular squarings and is the sole
// long-running operation. Independent calls may run concurrently without
// coordination.
package puzzle

import (
	"errors"
	"fmt"
	"io"
	"math/big"

	lhtlp "github.com/BackendStack21/lhtlp-go"
	"github.com/BackendStack21/lhtlp-go/safeprime"
	"github.com/BackendStack21/lhtlp-go/utils"
)

var (
	// ErrNoInverse indicates a modular inverse was requested for a
	// non-unit. It occurs only under parameter or puzzle corruption, e.g.
	// a puzzle opened against a mismatched parameter set.
	ErrNoInverse = errors.New("no modular inverse exists")

	// ErrInvalidParams indicates an incomplete or malformed parameter set.
	ErrInvalidParams = errors.New("invalid parameter set")

	// ErrInvalidPuzzle indicates a puzzle with missing components.
	ErrInvalidPuzzle = errors.New("invalid puzzle")
)

var one = big.NewInt(1)

// PrimeSource produces safe primes of a requested bit length. It is the
// collaborator interface behind Setup; the default implementation is the
// safeprime package, and callers can inject their own via SetupWithSource.
type PrimeSource interface {
	SafePrime(bits int) (*big.Int, error)
}

// PrimeSourceFunc adapts a plain function to the PrimeSource interface.
type PrimeSourceFunc func(bits int) (*big.Int, error)

// SafePrime calls f.
func (f PrimeSourceFunc) SafePrime(bits int) (*big.Int, error) {
	return f(bits)
}

// Setup generates the public parameters of an LHTLP instance from two fresh
// safe primes of securityBits bits each. Larger difficulty makes puzzles
// slower to solve without affecting generation cost. A difficulty of zero
// is permitted and degenerates to immediate decoding.
func Setup(securityBits int, difficulty *big.Int) (*lhtlp.Params, error) {
	return SetupWithSource(PrimeSourceFunc(safeprime.Generate), utils.RandReader, securityBits, difficulty)
}

// SetupWithSource is Setup with an explicit safe-prime source and randomness
// reader. The source's failures are surfaced unchanged; the trapdoor values
// (the prime factors and the group order) are zeroized before returning.
func SetupWithSource(src PrimeSource, rnd io.Reader, securityBits int, difficulty *big.Int) (*lhtlp.Params, error) {
	if src == nil {
		return nil, errors.New("prime source must not be nil")
	}
	if rnd == nil {
		return nil, errors.New("randomness reader must not be nil")
	}
	if securityBits < safeprime.MinBits {
		return nil, fmt.Errorf("security parameter must be at least %d bits", safeprime.MinBits)
	}
	if difficulty == nil || difficulty.Sign() < 0 {
		return nil, errors.New("difficulty must be non-negative")
	}

	p, err := src.SafePrime(securityBits)
	if err != nil {
		return nil, fmt.Errorf("generating first safe prime: %w", err)
	}
	q, err := src.SafePrime(securityBits)
	if err != nil {
		return nil, fmt.Errorf("generating second safe prime: %w", err)
	}
	// Identical draws are only a realistic concern at small sizes, but a
	// square modulus breaks the group structure outright.
	for p.Cmp(q) == 0 {
		if q, err = src.SafePrime(securityBits); err != nil {
			return nil, fmt.Errorf("generating second safe prime: %w", err)
		}
	}

	n := new(big.Int).Mul(p, q)

	r, err := utils.RandomUnit(rnd, n)
	if err != nil {
		return nil, fmt.Errorf("drawing generator seed: %w", err)
	}

	// Squaring forces quadratic-residue structure, so the generator has no
	// small-order components colliding with p-1 or q-1.
	candidate := new(big.Int).Mul(r, r)
	candidate.Mod(candidate, n)
	g := new(big.Int).ModInverse(candidate, n)
	if g == nil {
		// Unreachable for a unit r; reaching it means the factors are corrupt.
		return nil, fmt.Errorf("setup generator: %w", ErrNoInverse)
	}

	// tot2 = (p-1)(q-1)/2, the order of the quadratic-residue subgroup.
	// Both p-1 and q-1 are even for safe primes, so the division is exact.
	pm1 := new(big.Int).Sub(p, one)
	qm1 := new(big.Int).Sub(q, one)
	tot2 := new(big.Int).Mul(pm1, qm1)
	tot2.Rsh(tot2, 1)

	// Reducing 2^difficulty modulo the group order is the trapdoor
	// shortcut: it fast-forwards the difficulty squarings that Solve must
	// perform one by one.
	exponent := new(big.Int).Exp(big.NewInt(2), difficulty, tot2)
	h := new(big.Int).Exp(g, exponent, n)

	utils.ZeroizeBig(p)
	utils.ZeroizeBig(q)
	utils.ZeroizeBig(pm1)
	utils.ZeroizeBig(qm1)
	utils.ZeroizeBig(tot2)
	utils.ZeroizeBig(exponent)

	return &lhtlp.Params{
		Difficulty: new(big.Int).Set(difficulty),
		N:          n,
		G:          g,
		H:          h,
	}, nil
}

// Generate embeds a secret in a fresh randomized puzzle. Secrets are
// encoded modulo N: values at or above N wrap silently and are not
// distinguishable from their reductions, so callers must keep secrets (and
// any homomorphic sums they intend to take) below N.
func Generate(params *lhtlp.Params, secret *big.Int) (*lhtlp.Puzzle, error) {
	return GenerateWithReader(utils.RandReader, params, secret)
}

// GenerateWithReader is Generate with an explicit randomness reader.
// Repeated calls with the same secret produce unlinkable puzzles as long as
// the reader yields fresh randomness.
func GenerateWithReader(rnd io.Reader, params *lhtlp.Params, secret *big.Int) (*lhtlp.Puzzle, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	if rnd == nil {
		return nil, errors.New("randomness reader must not be nil")
	}
	if secret == nil || secret.Sign() < 0 {
		return nil, errors.New("secret must be non-negative")
	}

	n := params.N
	n2 := params.NSquare()

	r, err := utils.RandomInRange(rnd, n2)
	if err != nil {
		return nil, fmt.Errorf("drawing puzzle randomness: %w", err)
	}

	u := new(big.Int).Exp(params.G, r, n)

	// v = h^(r*n) * (1+n)^secret mod n^2. The (1+n)^secret factor is the
	// Paillier-style encoding: (1+n)^k = 1 + k*n (mod n^2).
	rn := new(big.Int).Mul(r, n)
	v := new(big.Int).Exp(params.H, rn, n2)
	enc := new(big.Int).Exp(new(big.Int).Add(n, one), secret, n2)
	v.Mul(v, enc)
	v.Mod(v, n2)

	return &lhtlp.Puzzle{U: u, V: v}, nil
}

// Solve opens a puzzle by performing Difficulty sequential modular
// squarings and returns the embedded secret (or, for a combined puzzle, the
// sum of the embedded secrets). The cost is linear in Difficulty and
// independent of the secret and of how many puzzles were combined.
func Solve(params *lhtlp.Params, z *lhtlp.Puzzle) (*big.Int, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}
	if z == nil || z.U == nil || z.V == nil {
		return nil, ErrInvalidPuzzle
	}

	n := params.N
	n2 := params.NSquare()

	// w = u^(2^difficulty) mod n. Each squaring depends on the previous
	// result; this chain is the time lock.
	w := sequentialSquare(z.U, n, params.Difficulty)

	wn := new(big.Int).Exp(w, n, n2)
	blind := new(big.Int).ModInverse(wn, n2)
	if blind == nil {
		return nil, fmt.Errorf("solve blinding factor: %w", ErrNoInverse)
	}

	decoded := new(big.Int).Mod(z.V, n2)
	decoded.Mul(decoded, blind)
	decoded.Mod(decoded, n2)

	// decoded = 1 + secret*n as an integer in [0, n^2), so the division is
	// exact for secrets below n.
	decoded.Sub(decoded, one)
	return decoded.Div(decoded, n), nil
}

// Evaluate combines puzzles generated under the same parameter set into one
// puzzle whose solution is the sum of the individual secrets, provided that
// sum stays below N. An empty input yields the identity puzzle (1, 1),
// which solves to zero. Combination adds no hardness: solving the result
// costs the same Difficulty squarings as solving any single puzzle.
func Evaluate(params *lhtlp.Params, puzzles []*lhtlp.Puzzle) (*lhtlp.Puzzle, error) {
	if err := checkParams(params); err != nil {
		return nil, err
	}

	n := params.N
	n2 := params.NSquare()
	u := big.NewInt(1)
	v := big.NewInt(1)
	for i, z := range puzzles {
		if z == nil || z.U == nil || z.V == nil {
			return nil, fmt.Errorf("puzzle %d: %w", i, ErrInvalidPuzzle)
		}
		u.Mul(u, z.U)
		u.Mod(u, n)
		v.Mul(v, z.V)
		v.Mod(v, n2)
	}
	return &lhtlp.Puzzle{U: u, V: v}, nil
}

// sequentialSquare computes u^(2^difficulty) mod n by repeated squaring.
func sequentialSquare(u, n, difficulty *big.Int) *big.Int {
	w := new(big.Int).Mod(u, n)
	if difficulty.IsUint64() {
		for t := difficulty.Uint64(); t > 0; t-- {
			w.Mul(w, w)
			w.Mod(w, n)
		}
		return w
	}
	// Difficulties beyond uint64 would take geological time to solve, but
	// the arithmetic stays well-defined.
	t := new(big.Int).Set(difficulty)
	for t.Sign() > 0 {
		w.Mul(w, w)
		w.Mod(w, n)
		t.Sub(t, one)
	}
	return w
}

func checkParams(params *lhtlp.Params) error {
	if params == nil || params.Difficulty == nil || params.N == nil || params.G == nil || params.H == nil {
		return ErrInvalidParams
	}
	if params.N.Cmp(one) <= 0 || params.Difficulty.Sign() < 0 {
		return ErrInvalidParams
	}
	return nil
}
