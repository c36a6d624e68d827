package puzzle

import (
	"math/big"
	"sync"
	"testing"

	lhtlp "github.com/BackendStack21/lhtlp-go"
	"github.com/BackendStack21/lhtlp-go/utils"
)

var (
	fuzzParamsOnce sync.Once
	fuzzParams     *lhtlp.Params
)

func fuzzSetup(t testing.TB) *lhtlp.Params {
	fuzzParamsOnce.Do(func() {
		src := &fixedPrimes{primes: []int64{167, 179}}
		rnd := utils.NewShakeReader("puzzle-fuzz-setup", []byte("fixed"))
		params, err := SetupWithSource(src, rnd, 8, big.NewInt(64))
		if err != nil {
			t.Fatalf("SetupWithSource failed: %v", err)
		}
		fuzzParams = params
	})
	return fuzzParams
}

// FuzzRoundTrip checks that any secret in the encoding space survives a
// generate/solve round trip.
func FuzzRoundTrip(f *testing.F) {
	f.Add(uint64(0))
	f.Add(uint64(1))
	f.Add(uint64(13))
	f.Add(uint64(42))
	f.Add(^uint64(0))

	f.Fuzz(func(t *testing.T, raw uint64) {
		params := fuzzSetup(t)
		secret := new(big.Int).SetUint64(raw)
		secret.Mod(secret, params.N)

		z, err := Generate(params, secret)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		got, err := Solve(params, z)
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		if got.Cmp(secret) != 0 {
			t.Errorf("round trip: got %v, want %v", got, secret)
		}
	})
}

// FuzzPairSum checks the homomorphic sum of two secrets whose total stays
// below the modulus.
func FuzzPairSum(f *testing.F) {
	f.Add(uint64(42), uint64(13))
	f.Add(uint64(0), uint64(0))
	f.Add(uint64(1), ^uint64(0))

	f.Fuzz(func(t *testing.T, rawA, rawB uint64) {
		params := fuzzSetup(t)
		half := new(big.Int).Rsh(params.N, 1)
		a := new(big.Int).Mod(new(big.Int).SetUint64(rawA), half)
		b := new(big.Int).Mod(new(big.Int).SetUint64(rawB), half)

		za, err := Generate(params, a)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		zb, err := Generate(params, b)
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		combined, err := Evaluate(params, []*lhtlp.Puzzle{za, zb})
		if err != nil {
			t.Fatalf("Evaluate failed: %v", err)
		}
		got, err := Solve(params, combined)
		if err != nil {
			t.Fatalf("Solve failed: %v", err)
		}
		want := new(big.Int).Add(a, b)
		if got.Cmp(want) != 0 {
			t.Errorf("pair sum: got %v, want %v", got, want)
		}
	})
}
