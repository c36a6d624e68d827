// Package lhtlp implements Linearly Homomorphic Time-Lock Puzzles.
// This package provides the shared value types; the operations live in
// sub-packages that can also be imported directly.
package lhtlp

// Version of the LHTLP Go implementation.
const Version = "1.0.0"

// API summary:
//
// Puzzle operations:
//   - puzzle.Setup(securityBits, difficulty) - Generate public parameters
//   - puzzle.Generate(params, secret) - Embed a secret in a fresh puzzle
//   - puzzle.Solve(params, z) - Open a puzzle by sequential squaring
//   - puzzle.Evaluate(params, puzzles) - Combine puzzles homomorphically
//
// Parameters:
//   - core.GetProfile(level) - Preset security/difficulty profiles
//   - core.ValidateParams(params) - Structural checks on a parameter set
//
// Collaborators:
//   - safeprime.Generate(bits) - Safe prime generation (combined sieve)
//   - utils.RandReader - Source of cryptographically secure randomness
