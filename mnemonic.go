// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/crypto/pbkdf2"
	"golang.org/x/text/unicode/norm"
)

const (
	pbkdf2Rounds  = 2048
	seedSize      = 64
	bitsPerWord   = 11
	maxRandomRead = 65536

	defaultStrength = 128
)

// Mnemonic encodes entropy as BIP39 phrases drawn from a single wordlist.
// It is immutable after construction and safe for concurrent use.
type Mnemonic struct {
	language Language
	words    []string
	index    map[string]int
	random   io.Reader
}

// Option configures a Mnemonic.
type Option func(*Mnemonic)

// WithRandom replaces the secure random source used by Generate.
func WithRandom(r io.Reader) Option {
	return func(m *Mnemonic) {
		m.random = r
	}
}

// NewMnemonic returns a codec bound to the wordlist of l.
func NewMnemonic(l Language, opts ...Option) (*Mnemonic, error) {
	words, err := Wordlist(l)
	if err != nil {
		return nil, err
	}
	return NewMnemonicWithWordlist(l, words, opts...)
}

// NewMnemonicWithWordlist binds the codec to a caller-supplied wordlist. The
// list must hold exactly 2048 words.
func NewMnemonicWithWordlist(l Language, words []string, opts ...Option) (*Mnemonic, error) {
	if len(words) != wordlistSize {
		return nil, fmt.Errorf("%w: got %d", ErrWordlistLength, len(words))
	}

	index := make(map[string]int, len(words))
	for i, w := range words {
		if _, dup := index[w]; !dup {
			index[w] = i
		}
	}

	m := &Mnemonic{
		language: l,
		words:    words,
		index:    index,
		random:   rand.Reader,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Language returns the wordlist language.
func (m *Mnemonic) Language() Language {
	return m.language
}

// Generate returns a phrase carrying strength bits of fresh random entropy.
// A zero strength selects 128 bits.
func (m *Mnemonic) Generate(strength int) (string, error) {
	if strength == 0 {
		strength = defaultStrength
	}
	if strength < 0 || strength%32 != 0 {
		return "", fmt.Errorf("%w: %d", ErrInvalidStrength, strength)
	}

	entropy, err := m.randomBytes(strength / 8)
	if err != nil {
		return "", err
	}
	return m.ToMnemonic(entropy)
}

func (m *Mnemonic) randomBytes(n int) ([]byte, error) {
	if n > maxRandomRead {
		return nil, fmt.Errorf("%w: requested %d bytes", ErrEntropyBudget, n)
	}
	if m.random == nil {
		return nil, ErrRandomUnavailable
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(m.random, buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRandomUnavailable, err)
	}
	return buf, nil
}

// ToMnemonic encodes entropy, whose length must be a non-zero multiple of 4
// bytes, into a checksummed phrase.
func (m *Mnemonic) ToMnemonic(entropy []byte) (string, error) {
	if len(entropy) == 0 || len(entropy)%4 != 0 {
		return "", fmt.Errorf("%w: %d bytes = %d bits", ErrInvalidEntropyLength, len(entropy), len(entropy)*8)
	}

	bits := bytesToBits(entropy) + checksumBits(entropy)

	words := make([]string, 0, len(bits)/bitsPerWord)
	for i := 0; i+bitsPerWord <= len(bits); i += bitsPerWord {
		idx, _ := strconv.ParseUint(bits[i:i+bitsPerWord], 2, 16)
		words = append(words, m.words[idx])
	}
	return m.joinWords(words), nil
}

// checksumBits returns the first len(entropy)*8/32 bits of SHA-256(entropy).
func checksumBits(entropy []byte) string {
	sum := sha256.Sum256(entropy)
	return bytesToBits(sum[:])[:len(entropy)*8/32]
}

// Check reports whether phrase is a structurally valid phrase with a
// matching checksum.
func (m *Mnemonic) Check(phrase string) bool {
	entropyBits, checksum, ok := m.splitPhrase(phrase)
	if !ok {
		return false
	}
	return checksumBits(bitsToBytes(entropyBits)) == checksum
}

// ToRawEntropyHex returns the entropy a phrase encodes, as hex. The checksum
// is not verified; ok is false only for malformed phrases.
func (m *Mnemonic) ToRawEntropyHex(phrase string) (string, bool) {
	entropyBits, _, ok := m.splitPhrase(phrase)
	if !ok {
		return "", false
	}
	return hex.EncodeToString(bitsToBytes(entropyBits)), true
}

// ToRawEntropyBin is ToRawEntropyHex rendered as a bit string.
func (m *Mnemonic) ToRawEntropyBin(phrase string) (string, bool) {
	entropyBits, _, ok := m.splitPhrase(phrase)
	if !ok {
		return "", false
	}
	return entropyBits, true
}

// WordIndices returns the wordlist position of every word in phrase.
func (m *Mnemonic) WordIndices(phrase string) ([]int, bool) {
	words := splitWords(phrase)
	if len(words) == 0 || len(words)%3 != 0 {
		return nil, false
	}
	indices := make([]int, len(words))
	for i, w := range words {
		idx, ok := m.index[w]
		if !ok {
			return nil, false
		}
		indices[i] = idx
	}
	return indices, true
}

// splitPhrase turns a phrase into its entropy and checksum bit strings.
func (m *Mnemonic) splitPhrase(phrase string) (entropyBits, checksum string, ok bool) {
	indices, ok := m.WordIndices(phrase)
	if !ok {
		return "", "", false
	}

	var b strings.Builder
	for _, idx := range indices {
		fmt.Fprintf(&b, "%011b", idx)
	}
	bits := b.String()

	cut := len(bits) / 33 * 32
	return bits[:cut], bits[cut:], true
}

// ToSeed derives the 512-bit BIP39 seed of phrase under passphrase and
// returns it as hex.
func (m *Mnemonic) ToSeed(phrase, passphrase string) string {
	return hex.EncodeToString(m.SeedBytes(phrase, passphrase))
}

// SeedBytes is ToSeed without the hex encoding.
func (m *Mnemonic) SeedBytes(phrase, passphrase string) []byte {
	normalized := norm.NFKD.String(m.joinWords(splitWords(phrase)))
	salt := "mnemonic" + norm.NFKD.String(passphrase)
	return pbkdf2.Key([]byte(normalized), []byte(salt), pbkdf2Rounds, seedSize, sha512.New)
}

func (m *Mnemonic) joinWords(words []string) string {
	return strings.Join(words, m.language.separator())
}

func splitWords(phrase string) []string {
	return strings.Fields(phrase)
}

func bytesToBits(data []byte) string {
	var b strings.Builder
	b.Grow(len(data) * 8)
	for _, v := range data {
		fmt.Fprintf(&b, "%08b", v)
	}
	return b.String()
}

// bitsToBytes packs a bit string whose length is a multiple of 8.
func bitsToBytes(bits string) []byte {
	out := make([]byte, len(bits)/8)
	for i := range out {
		v, _ := strconv.ParseUint(bits[i*8:i*8+8], 2, 8)
		out[i] = byte(v)
	}
	return out
}
