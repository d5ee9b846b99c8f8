// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"math"
	"strings"
	"testing"

	"github.com/matryer/is"
)

// TestClassify_Autodetect checks that ambiguous input resolves to the
// lowest-density alphabet that covers it.
func TestClassify_Autodetect(t *testing.T) {
	tests := []struct {
		name   string
		raw    string
		tag    BaseTag
		events int
	}{
		{"binary", "01010101", BaseBinary, 8},
		{"cards", "AH 2C KS", BaseCard, 3},
		{"dice", "123456123456", BaseBase6Dice, 12},
		{"base6", "0123450", BaseBase6, 7},
		{"base10", "7890", BaseBase10, 4},
		{"hex", "ff00ff", BaseHexadecimal, 6},
		{"hex with separators", "de:ad:be:ef", BaseHexadecimal, 8},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			base := Classify(tt.raw, BaseAuto)
			is.Equal(base.Tag, tt.tag)
			is.Equal(len(base.Events), tt.events)
		})
	}
}

// TestClassify_DiceRemapsSix verifies that a rolled six becomes a zero so
// dice share the base 6 tables.
func TestClassify_DiceRemapsSix(t *testing.T) {
	is := is.New(t)

	base := Classify("123456123456", BaseAuto)
	is.Equal(base.Tag, BaseBase6Dice)
	is.Equal(strings.Join(base.Events, ""), "123450123450")
	is.Equal(base.Ints, []int{1, 2, 3, 4, 5, 0, 1, 2, 3, 4, 5, 0})
	is.Equal(base.Radix, 6)
}

// TestClassify_Forced verifies that a forced base overrides detection.
func TestClassify_Forced(t *testing.T) {
	is := is.New(t)

	base := Classify("1212121212", BaseDice)
	is.Equal(base.Tag, BaseBase6Dice)
	is.Equal(len(base.Events), 10)
	is.True(math.Abs(base.BitsPerEvent-5.0/3.0) < 1e-9) // 1.667 bits per roll
	is.Equal(base.TotalBits(), 20)

	hex := Classify("01010101", BaseHexadecimal)
	is.Equal(hex.Tag, BaseHexadecimal)
	is.Equal(hex.TotalBits(), 32)
}

// TestClassify_Empty verifies that input without any known event yields no
// events rather than an error.
func TestClassify_Empty(t *testing.T) {
	is := is.New(t)

	for _, raw := range []string{"", "   ", "xyz!?", "ghijklmnop"} {
		result := FromString(raw, BaseAuto)
		is.True(result.Empty())
		is.Equal(result.BinaryStr, "")
	}
}

// TestFromString_Bits checks the per-event bit tables.
func TestFromString_Bits(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		base  BaseTag
		bits  string
		clean string
	}{
		{"binary", "0110", BaseAuto, "0110", "0110"},
		{"base10", "7890", BaseAuto, "11101000", "7890"},
		{"hex", "ff00ff", BaseAuto, "111111110000000011111111", "ff00ff"},
		{"base6", "0123450", BaseAuto, "00011011" + "0" + "1" + "00", "0123450"},
		{"dice", "6 1 5", BaseDice, "00" + "01" + "1", "015"},
		{"cards", "ac 2c ks", BaseAuto, "00000" + "00001" + "11", "A♣ 2♣ K♠"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			result := FromString(tt.raw, tt.base)
			is.Equal(result.BinaryStr, tt.bits)
			is.Equal(result.CleanStr, tt.clean)
			is.Equal(result.Entropy, result.CleanStr)
			is.Equal(result.Base.TotalBits(), len(tt.bits))
		})
	}
}

// TestCardTables checks the full deck layout: 32 five-bit cards, 16
// four-bit cards and 4 two-bit cards.
func TestCardTables(t *testing.T) {
	is := is.New(t)

	is.Equal(len(cardBits), 52)
	widths := map[int]int{}
	for _, bits := range cardBits {
		widths[len(bits)]++
	}
	is.Equal(widths, map[int]int{5: 32, 4: 16, 2: 4})

	is.Equal(cardIndex["ac"], 0)
	is.Equal(cardIndex["kc"], 12)
	is.Equal(cardIndex["ad"], 13)
	is.Equal(cardIndex["ks"], 51)
	is.True(math.Abs(cardBitsPerEvent-232.0/52.0) < 1e-9)
}

// TestWordCountHint checks the suggested phrase length for several entropy
// sizes.
func TestWordCountHint(t *testing.T) {
	is := is.New(t)

	is.Equal(FromString(strings.Repeat("01", 8), BaseAuto).WordCountHint(), 12)
	is.Equal(FromString(strings.Repeat("0", 128), BaseAuto).WordCountHint(), 12)
	is.Equal(FromString(strings.Repeat("0", 129), BaseAuto).WordCountHint(), 15)
	is.Equal(FromString(strings.Repeat("f", 64), BaseAuto).WordCountHint(), 24)
	is.Equal(FromString(strings.Repeat("f", 100), BaseAuto).WordCountHint(), 24)
}

func TestParseBaseTag(t *testing.T) {
	is := is.New(t)

	for in, want := range map[string]BaseTag{
		"":            BaseAuto,
		"auto":        BaseAuto,
		"Binary":      BaseBinary,
		"dice":        BaseDice,
		"base6_dice":  BaseBase6Dice,
		"hex":         BaseHexadecimal,
		"hexadecimal": BaseHexadecimal,
		"card":        BaseCard,
	} {
		got, err := ParseBaseTag(in)
		is.NoErr(err)
		is.Equal(got, want)
	}

	_, err := ParseBaseTag("base58")
	is.True(err != nil)
}
