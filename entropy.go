// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// BaseTag names the alphabet an entropy string is interpreted under.
type BaseTag string

// Supported entropy bases.
const (
	BaseBinary      BaseTag = "binary"
	BaseBase6       BaseTag = "base6"
	BaseBase6Dice   BaseTag = "base6_dice"
	BaseBase10      BaseTag = "base10"
	BaseHexadecimal BaseTag = "hexadecimal"
	BaseCard        BaseTag = "card"

	// BaseDice is accepted as a forced hint and classifies like BaseBase6Dice.
	BaseDice BaseTag = "dice"

	// BaseAuto asks Classify to detect the base.
	BaseAuto BaseTag = ""
)

// ParseBaseTag accepts the tags above, case-insensitively. "auto" and the
// empty string both select autodetection.
func ParseBaseTag(s string) (BaseTag, error) {
	switch tag := BaseTag(strings.ToLower(strings.TrimSpace(s))); tag {
	case "auto", BaseAuto:
		return BaseAuto, nil
	case BaseBinary, BaseBase6, BaseBase6Dice, BaseDice, BaseBase10, BaseHexadecimal, BaseCard:
		return tag, nil
	case "hex":
		return BaseHexadecimal, nil
	default:
		return BaseAuto, fmt.Errorf("unknown entropy base %q", s)
	}
}

// Average bits per event. Alphabets whose size is not a power of two split
// their events into two or three bit widths so that every emitted bit is
// unbiased; these are the resulting averages.
const (
	binaryBitsPerEvent = 1.0
	base6BitsPerEvent  = (4*2 + 2*1) / 6.0
	base10BitsPerEvent = (8*3 + 2*1) / 10.0
	hexBitsPerEvent    = 4.0
	cardBitsPerEvent   = (32*5 + 16*4 + 4*2) / 52.0
)

var (
	binaryMatcher = regexp.MustCompile(`[0-1]`)
	base6Matcher  = regexp.MustCompile(`[0-5]`)
	diceMatcher   = regexp.MustCompile(`[1-6]`)
	base10Matcher = regexp.MustCompile(`[0-9]`)
	hexMatcher    = regexp.MustCompile(`(?i)[0-9a-f]`)
	cardMatcher   = regexp.MustCompile(`(?i)[A2-9TJQK][CDHS]`)
)

var base6Bits = map[string]string{
	"0": "00", "1": "01", "2": "10", "3": "11",
	"4": "0", "5": "1",
}

var base10Bits = map[string]string{
	"0": "000", "1": "001", "2": "010", "3": "011",
	"4": "100", "5": "101", "6": "110", "7": "111",
	"8": "0", "9": "1",
}

var hexBits = map[string]string{
	"0": "0000", "1": "0001", "2": "0010", "3": "0011",
	"4": "0100", "5": "0101", "6": "0110", "7": "0111",
	"8": "1000", "9": "1001", "a": "1010", "b": "1011",
	"c": "1100", "d": "1101", "e": "1110", "f": "1111",
}

var binaryBits = map[string]string{"0": "0", "1": "1"}

const (
	cardRanks = "a23456789tjqk"
	cardSuits = "cdhs"
)

// cardBits maps a lowercase card token to its bits. The deck is walked suit
// by suit in rank order; the first 32 cards carry 5 bits, the next 16 carry
// 4 bits and the last 4 carry 2 bits.
var cardBits, cardIndex = buildCardTables()

func buildCardTables() (map[string]string, map[string]int) {
	bits := make(map[string]string, 52)
	index := make(map[string]int, 52)
	i := 0
	for _, suit := range cardSuits {
		for _, rank := range cardRanks {
			token := string(rank) + string(suit)
			switch {
			case i < 32:
				bits[token] = fmt.Sprintf("%05b", i)
			case i < 48:
				bits[token] = fmt.Sprintf("%04b", i-32)
			default:
				bits[token] = fmt.Sprintf("%02b", i-48)
			}
			index[token] = i
			i++
		}
	}
	return bits, index
}

func eventBits(tag BaseTag) map[string]string {
	switch tag {
	case BaseBinary:
		return binaryBits
	case BaseBase6, BaseBase6Dice:
		return base6Bits
	case BaseBase10:
		return base10Bits
	case BaseCard:
		return cardBits
	default:
		return hexBits
	}
}

// EntropyBase is the classification of a raw entropy string.
type EntropyBase struct {
	Tag BaseTag

	// Events are the matched tokens in input order. For dice input the
	// tokens are already remapped to base 6.
	Events []string

	// Ints holds the numeric value of each event. For cards the value is
	// the position in the canonical deck.
	Ints []int

	BitsPerEvent float64
	Radix        int
}

// TotalBits returns the number of bits the events expand to.
func (b EntropyBase) TotalBits() int {
	table := eventBits(b.Tag)
	n := 0
	for _, e := range b.Events {
		n += len(table[strings.ToLower(e)])
	}
	return n
}

// matchCounts holds how many events of each alphabet a string contains.
type matchCounts struct {
	binary, base6, dice, base10, hex, card int
}

func countMatches(raw string) matchCounts {
	return matchCounts{
		binary: len(binaryMatcher.FindAllString(raw, -1)),
		base6:  len(base6Matcher.FindAllString(raw, -1)),
		dice:   len(diceMatcher.FindAllString(raw, -1)),
		base10: len(base10Matcher.FindAllString(raw, -1)),
		hex:    len(hexMatcher.FindAllString(raw, -1)),
		card:   len(cardMatcher.FindAllString(raw, -1)),
	}
}

// detectionRule pairs a predicate over the match counts with the base it
// selects. Rules are evaluated top to bottom and the first hit wins, which
// keeps the lowest-density interpretation of ambiguous input.
type detectionRule struct {
	tag   BaseTag
	match func(c matchCounts) bool
}

var detectionRules = []detectionRule{
	{BaseBinary, func(c matchCounts) bool { return c.binary == c.hex && c.hex > 0 }},
	{BaseCard, func(c matchCounts) bool { return float64(c.card) >= float64(c.hex)/2 }},
	{BaseBase6Dice, func(c matchCounts) bool { return c.dice == c.hex && c.hex > 0 }},
	{BaseBase6, func(c matchCounts) bool { return c.base6 == c.hex && c.hex > 0 }},
	{BaseBase10, func(c matchCounts) bool { return c.base10 == c.hex && c.hex > 0 }},
	{BaseHexadecimal, func(matchCounts) bool { return true }},
}

// Classify interprets raw under forced, or detects the lowest-density base
// when forced is BaseAuto. A result with no events means no entropy was
// found; it is not an error.
func Classify(raw string, forced BaseTag) EntropyBase {
	tag := forced
	if tag == BaseAuto {
		counts := countMatches(raw)
		for _, rule := range detectionRules {
			if rule.match(counts) {
				tag = rule.tag
				break
			}
		}
	}
	return buildBase(raw, tag)
}

func buildBase(raw string, tag BaseTag) EntropyBase {
	switch tag {
	case BaseBinary:
		events := binaryMatcher.FindAllString(raw, -1)
		return EntropyBase{Tag: BaseBinary, Events: events, Ints: parseInts(events, 2), BitsPerEvent: binaryBitsPerEvent, Radix: 2}
	case BaseCard:
		events := cardMatcher.FindAllString(raw, -1)
		ints := make([]int, len(events))
		for i, e := range events {
			ints[i] = cardIndex[strings.ToLower(e)]
		}
		return EntropyBase{Tag: BaseCard, Events: events, Ints: ints, BitsPerEvent: cardBitsPerEvent, Radix: 52}
	case BaseDice, BaseBase6Dice:
		events := diceMatcher.FindAllString(raw, -1)
		for i, e := range events {
			if !strings.Contains("12345", e) {
				events[i] = "0"
			}
		}
		return EntropyBase{Tag: BaseBase6Dice, Events: events, Ints: parseInts(events, 6), BitsPerEvent: base6BitsPerEvent, Radix: 6}
	case BaseBase6:
		events := base6Matcher.FindAllString(raw, -1)
		return EntropyBase{Tag: BaseBase6, Events: events, Ints: parseInts(events, 6), BitsPerEvent: base6BitsPerEvent, Radix: 6}
	case BaseBase10:
		events := base10Matcher.FindAllString(raw, -1)
		return EntropyBase{Tag: BaseBase10, Events: events, Ints: parseInts(events, 10), BitsPerEvent: base10BitsPerEvent, Radix: 10}
	default:
		events := hexMatcher.FindAllString(raw, -1)
		return EntropyBase{Tag: BaseHexadecimal, Events: events, Ints: parseInts(events, 16), BitsPerEvent: hexBitsPerEvent, Radix: 16}
	}
}

func parseInts(events []string, radix int) []int {
	ints := make([]int, len(events))
	for i, e := range events {
		v, _ := strconv.ParseInt(e, radix, 8)
		ints[i] = int(v)
	}
	return ints
}

// EntropyResult is the bit-level expansion of an EntropyBase.
type EntropyResult struct {
	// BinaryStr is the concatenated per-event bit string.
	BinaryStr string

	// CleanStr is the display form. Card events are rendered as rank and
	// suit glyph pairs separated by spaces.
	CleanStr string

	// Entropy mirrors CleanStr.
	Entropy string

	Base EntropyBase
}

// Empty reports whether no entropy was detected.
func (r EntropyResult) Empty() bool {
	return len(r.Base.Events) == 0
}

// WordCountHint returns the shortest mnemonic length, in words, whose
// entropy is not weaker than the detected bits. It never exceeds 24.
func (r EntropyResult) WordCountHint() int {
	words := 3 * ((len(r.BinaryStr) + 31) / 32)
	if words < 12 {
		return 12
	}
	if words > 24 {
		return 24
	}
	return words
}

var suitGlyphs = strings.NewReplacer("C", "♣", "D", "♦", "H", "♥", "S", "♠")

// FromString classifies raw and expands the events to bits.
func FromString(raw string, forced BaseTag) EntropyResult {
	base := Classify(raw, forced)
	if len(base.Events) == 0 {
		return EntropyResult{Base: base}
	}

	table := eventBits(base.Tag)
	var bin strings.Builder
	for _, e := range base.Events {
		bin.WriteString(table[strings.ToLower(e)])
	}

	clean := strings.Join(base.Events, "")
	if base.Tag == BaseCard {
		clean = suitGlyphs.Replace(strings.ToUpper(strings.Join(base.Events, " ")))
	}

	return EntropyResult{
		BinaryStr: bin.String(),
		CleanStr:  clean,
		Entropy:   clean,
		Base:      base,
	}
}
