// Package lhtlp implements Linearly Homomorphic Time-Lock Puzzles.
//
// A time-lock puzzle encrypts a secret so that recovering it requires a
// prescribed number of sequential modular squarings, regardless of how much
// parallel compute is available. The linearly homomorphic variant
// additionally lets anyone combine puzzles generated under the same
// parameters into a single puzzle whose solution is the sum of the
// individual secrets, without knowing any of them.
//
// WARNING: the security of the construction rests on honest generation of
// the public parameters by a trusted party and on the repeated-squaring
// (RSW) hardness assumption. Do not reuse parameters whose trapdoor may
// have been retained by an untrusted setup.
package lhtlp

import (
	"math/big"

	"github.com/BackendStack21/lhtlp-go/utils"
)

// FingerprintDomain is the domain separator for parameter fingerprints.
const FingerprintDomain = "lhtlp-params-v1"

// Params is the public parameter set of one LHTLP instance.
//
// All fields are immutable once constructed. The factorization of N is not
// retained after setup, so nobody (including the setup routine) can shortcut
// solving afterwards.
type Params struct {
	// Difficulty is the number of sequential squarings required to solve a
	// puzzle. Solve time grows linearly with it; generation cost does not.
	Difficulty *big.Int

	// N is the product of two safe primes. Secrets are encoded modulo N.
	N *big.Int

	// G is a generator of the quadratic-residue subgroup of Z_N^*.
	G *big.Int

	// H is G^(2^Difficulty) mod N, precomputed at setup via the group order.
	H *big.Int
}

// Puzzle is an encrypted secret. U is a randomized group element modulo N;
// V encodes the secret modulo N^2, blinded by a value only recoverable
// through Difficulty sequential squarings of U.
//
// Puzzles are independent values with no back-reference to the parameters
// that created them; solving requires the same Params to be supplied
// separately.
type Puzzle struct {
	U *big.Int
	V *big.Int
}

// NSquare returns N^2, the modulus of the encoding space.
func (p *Params) NSquare() *big.Int {
	return new(big.Int).Mul(p.N, p.N)
}

// Fingerprint returns a domain-separated SHA3-256 digest of the parameter
// set. Puzzles are safe to combine exactly when the fingerprints of their
// originating parameter sets are equal.
func (p *Params) Fingerprint() []byte {
	return utils.HashWithDomain(FingerprintDomain, utils.HashConcat(
		p.Difficulty.Bytes(),
		p.N.Bytes(),
		p.G.Bytes(),
		p.H.Bytes(),
	))
}

// Clone returns a deep copy of the parameter set.
func (p *Params) Clone() *Params {
	if p == nil {
		return nil
	}
	return &Params{
		Difficulty: new(big.Int).Set(p.Difficulty),
		N:          new(big.Int).Set(p.N),
		G:          new(big.Int).Set(p.G),
		H:          new(big.Int).Set(p.H),
	}
}

// Clone returns a deep copy of the puzzle.
func (z *Puzzle) Clone() *Puzzle {
	if z == nil {
		return nil
	}
	return &Puzzle{
		U: new(big.Int).Set(z.U),
		V: new(big.Int).Set(z.V),
	}
}
