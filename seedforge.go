// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

// Package seedforge turns human-supplied randomness into BIP39 phrases and
// derives BIP32/BIP44 wallets from them.
//
// The flow has three stages:
//
//   - FromString classifies an entropy string (coin flips, dice, digits,
//     hex or a shuffled deck of cards) and expands it to bits.
//   - Mnemonic encodes entropy into a checksummed phrase, validates and
//     decodes phrases, and stretches them into a 64-byte seed.
//   - HDWallet walks the key tree of a seed, or of a public-only extended
//     key, and formats per-coin WalletRecords for Bitcoin, Bitcoin Cash,
//     Ethereum and Nostr.
//
// Nothing is persisted. All values other than the random source used by
// Mnemonic.Generate are immutable and safe to share.
package seedforge

import "fmt"

// WalletsFromMnemonic derives the record at index for each coin from one
// phrase. Every coin is derived from a root built with its own network
// parameters.
//
// Parameters:
//   - codec: the wordlist the phrase is written in
//   - phrase: a phrase with a valid checksum
//   - passphrase: the optional BIP39 passphrase, "" when unused
//   - index: the address index under each coin's account branch
//   - coins: the coins to derive; all supported coins when empty
//
// Returns ErrInvalidMnemonic when the phrase checksum does not match.
func WalletsFromMnemonic(codec *Mnemonic, phrase, passphrase string, index uint32, coins ...Coin) ([]WalletRecord, error) {
	if !codec.Check(phrase) {
		return nil, ErrInvalidMnemonic
	}
	if len(coins) == 0 {
		coins = Coins()
	}

	seed := codec.SeedBytes(phrase, passphrase)
	records := make([]WalletRecord, 0, len(coins))
	for _, coin := range coins {
		wallet, err := NewHDWalletFromSeed(seed, coin.Network())
		if err != nil {
			return nil, err
		}
		record, err := wallet.BuildWalletRecord(coin.Path, index, coin.Format)
		if err != nil {
			return nil, fmt.Errorf("failed to derive %s: %w", coin.Symbol, err)
		}
		record.Coin = coin.Symbol
		records = append(records, record)
	}
	return records, nil
}
