// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
)

// WordCount is a requested mnemonic length in words. RawWords asks for the
// detected entropy bits to be used as-is instead of being hashed.
type WordCount int

// RawWords selects raw entropy.
const RawWords WordCount = -1

const maxHashedWords = 24

// ParseWordCount parses "raw" or a word count such as "12".
func ParseWordCount(s string) (WordCount, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "raw" {
		return RawWords, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidWordCount, s)
	}
	wc := WordCount(n)
	if err := wc.validate(); err != nil {
		return 0, err
	}
	return wc, nil
}

func (w WordCount) validate() error {
	if w == RawWords {
		return nil
	}
	if w <= 0 || w%3 != 0 || w > maxHashedWords {
		return fmt.Errorf("%w: %d", ErrInvalidWordCount, int(w))
	}
	return nil
}

// String implements fmt.Stringer.
func (w WordCount) String() string {
	if w == RawWords {
		return "raw"
	}
	return strconv.Itoa(int(w))
}

// DefaultWordCount returns the length that keeps all detected entropy:
// WordCountHint while the bits fit 24 words, RawWords beyond that.
func (r EntropyResult) DefaultWordCount() WordCount {
	if len(r.BinaryStr) > maxHashedWords/3*32 {
		return RawWords
	}
	return WordCount(r.WordCountHint())
}

// EntropyMnemonic is a phrase built from user-supplied entropy.
type EntropyMnemonic struct {
	Phrase  string
	Indices []int
	Source  EntropyResult
}

// IndexString joins the word indices with ", ".
func (e *EntropyMnemonic) IndexString() string {
	parts := make([]string, len(e.Indices))
	for i, idx := range e.Indices {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, ", ")
}

// FromEntropy builds a phrase from arbitrary entropy text such as dice
// rolls or a shuffled deck.
//
// With RawWords the detected bits are used directly. Otherwise the display
// form of the entropy is hashed with SHA-256 and truncated to the requested
// length, which must not be weaker than the entropy supplied. In both modes
// leading bits are dropped until the length is a multiple of 32.
//
// ErrNoEntropy is returned when raw holds no usable event.
func (m *Mnemonic) FromEntropy(raw string, base BaseTag, words WordCount) (*EntropyMnemonic, error) {
	if err := words.validate(); err != nil {
		return nil, err
	}

	result := FromString(raw, base)
	if len(result.BinaryStr) == 0 {
		return nil, ErrNoEntropy
	}

	bits := result.BinaryStr
	if words == RawWords {
		if len(bits) < 32 {
			return nil, fmt.Errorf("%w: detected %d bits", ErrInsufficientEntropy, len(bits))
		}
	} else {
		if int(words)/3*32 < len(result.BinaryStr) {
			return nil, fmt.Errorf("%w: %d words hold %d bits, entropy has %d",
				ErrWeakEntropyOverride, int(words), int(words)/3*32, len(result.BinaryStr))
		}
		sum := sha256.Sum256([]byte(result.CleanStr))
		bits = bytesToBits(sum[:])[:32*int(words)/3]
	}

	usable := len(bits) / 32 * 32
	bits = bits[len(bits)-usable:]

	phrase, err := m.ToMnemonic(bitsToBytes(bits))
	if err != nil {
		return nil, err
	}
	indices, _ := m.WordIndices(phrase)

	return &EntropyMnemonic{
		Phrase:  phrase,
		Indices: indices,
		Source:  result,
	}, nil
}
