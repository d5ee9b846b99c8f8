// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"crypto/sha256"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

// TestFromEntropy_Hashed verifies that the requested length is filled from
// the SHA-256 of the entropy display form.
func TestFromEntropy_Hashed(t *testing.T) {
	is := is.New(t)
	m := newEnglish(t)

	rolls := strings.Repeat("3614", 25) // 100 dice rolls
	result, err := m.FromEntropy(rolls, BaseAuto, 24)
	is.NoErr(err)
	is.Equal(result.Source.Base.Tag, BaseBase6Dice)
	is.Equal(len(result.Indices), 24)

	sum := sha256.Sum256([]byte(result.Source.CleanStr))
	want, err := m.ToMnemonic(sum[:])
	is.NoErr(err)
	is.Equal(result.Phrase, want)
	is.True(m.Check(result.Phrase))

	short, err := m.FromEntropy("0110", BaseAuto, 12)
	is.NoErr(err)
	sum = sha256.Sum256([]byte("0110"))
	want, err = m.ToMnemonic(sum[:16])
	is.NoErr(err)
	is.Equal(short.Phrase, want)
}

// TestFromEntropy_Deterministic verifies that the same rolls always give
// the same phrase and different rolls a different one.
func TestFromEntropy_Deterministic(t *testing.T) {
	is := is.New(t)
	m := newEnglish(t)

	a, err := m.FromEntropy("AH 2C KS 9D TH", BaseAuto, 12)
	is.NoErr(err)
	b, err := m.FromEntropy("ah 2c ks 9d th", BaseAuto, 12)
	is.NoErr(err)
	is.Equal(a.Phrase, b.Phrase) // display form is case-normalized

	c, err := m.FromEntropy("AH 2C KS 9D TS", BaseAuto, 12)
	is.NoErr(err)
	is.True(a.Phrase != c.Phrase)
}

// TestFromEntropy_WeakOverride verifies that a phrase shorter than the
// supplied entropy is refused.
func TestFromEntropy_WeakOverride(t *testing.T) {
	is := is.New(t)
	m := newEnglish(t)

	bits := strings.Repeat("01", 128)
	_, err := m.FromEntropy(bits, BaseAuto, 3)
	is.True(errors.Is(err, ErrWeakEntropyOverride))

	_, err = m.FromEntropy(bits, BaseAuto, 21)
	is.True(errors.Is(err, ErrWeakEntropyOverride))

	_, err = m.FromEntropy(bits, BaseAuto, 24)
	is.NoErr(err)
}

// TestFromEntropy_Raw verifies that raw mode keeps the trailing multiple of
// 32 bits.
func TestFromEntropy_Raw(t *testing.T) {
	is := is.New(t)
	m := newEnglish(t)

	result, err := m.FromEntropy(strings.Repeat("0", 32), BaseAuto, RawWords)
	is.NoErr(err)
	is.Equal(result.Phrase, "abandon abandon ability")
	is.Equal(result.Indices, []int{0, 0, 1})
	is.Equal(result.IndexString(), "0, 0, 1")

	// The leading excess bit is dropped.
	dropped, err := m.FromEntropy("1"+strings.Repeat("0", 32), BaseAuto, RawWords)
	is.NoErr(err)
	is.Equal(dropped.Phrase, result.Phrase)

	hexResult, err := m.FromEntropy(strings.Repeat("0", 32), BaseHexadecimal, RawWords)
	is.NoErr(err)
	is.Equal(hexResult.Phrase, abandonAbout)

	_, err = m.FromEntropy(strings.Repeat("0", 31), BaseAuto, RawWords)
	is.True(errors.Is(err, ErrInsufficientEntropy))
}

func TestFromEntropy_Errors(t *testing.T) {
	is := is.New(t)
	m := newEnglish(t)

	_, err := m.FromEntropy("xyz wvu!", BaseAuto, 12)
	is.True(errors.Is(err, ErrNoEntropy))

	_, err = m.FromEntropy("", BaseAuto, RawWords)
	is.True(errors.Is(err, ErrNoEntropy))

	for _, words := range []WordCount{0, 2, 13, 27, -3} {
		_, err = m.FromEntropy("0101", BaseAuto, words)
		is.True(errors.Is(err, ErrInvalidWordCount))
	}
}

// TestDefaultWordCount verifies that the default length never weakens the
// entropy, so building from it always succeeds.
func TestDefaultWordCount(t *testing.T) {
	tests := []struct {
		name  string
		bits  int
		want  WordCount
		words int
	}{
		{"short", 100, 12, 12},
		{"between", 200, 21, 21},
		{"full", 256, 24, 24},
		{"beyond 24 words", 300, RawWords, 27},
	}
	m := newEnglish(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)

			flips := strings.Repeat("1", tt.bits)
			count := FromString(flips, BaseAuto).DefaultWordCount()
			is.Equal(count, tt.want)

			result, err := m.FromEntropy(flips, BaseAuto, count)
			is.NoErr(err)
			is.Equal(len(result.Indices), tt.words)
		})
	}
}

func TestParseWordCount(t *testing.T) {
	is := is.New(t)

	for in, want := range map[string]WordCount{
		"raw": RawWords,
		"RAW": RawWords,
		"3":   3,
		"12":  12,
		" 24": 24,
	} {
		got, err := ParseWordCount(in)
		is.NoErr(err)
		is.Equal(got, want)
	}

	for _, in := range []string{"", "25", "13", "twelve", "-1"} {
		_, err := ParseWordCount(in)
		is.True(errors.Is(err, ErrInvalidWordCount))
	}

	is.Equal(RawWords.String(), "raw")
	is.Equal(WordCount(18).String(), "18")
}
