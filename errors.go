// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import "errors"

// Configuration errors. These are fatal for the instance being built.
var (
	ErrWordlistLength  = errors.New("wordlist must contain exactly 2048 words")
	ErrUnknownLanguage = errors.New("unsupported wordlist language")
)

// Invalid-input errors, surfaced to the caller before any output is produced.
var (
	ErrInvalidStrength      = errors.New("strength must be a positive multiple of 32")
	ErrInvalidEntropyLength = errors.New("entropy length in bytes must be a multiple of 4")
	ErrEntropyBudget        = errors.New("requested random byte count exceeds the 65536 byte budget")
	ErrWeakEntropyOverride  = errors.New("entropy override weaker than the supplied entropy")
	ErrInvalidWordCount     = errors.New("word count must be a multiple of 3 between 3 and 24, or raw")
	ErrInsufficientEntropy  = errors.New("raw entropy needs at least 32 bits")
	ErrIndexOutOfRange      = errors.New("derivation index must be below 2^31")
	ErrInvalidMnemonic      = errors.New("invalid mnemonic")
	ErrUnknownNetwork       = errors.New("unknown network")
	ErrUnknownCoin          = errors.New("unknown coin")
)

// ErrRandomUnavailable is returned when the secure random source fails.
// There is never a fallback to a weaker source.
var ErrRandomUnavailable = errors.New("no secure random number generator available")

// Outcomes rather than faults. Callers routinely probe arbitrary user input
// and are expected to branch on these with errors.Is.
var (
	// ErrNoEntropy means the input contained no event of any supported alphabet.
	ErrNoEntropy = errors.New("no entropy detected")

	// ErrHardenedFromPublic marks a derivation walk that requested a hardened
	// child from a public-only node.
	ErrHardenedFromPublic = errors.New("hardened derivation requested from a public-only node")
)
