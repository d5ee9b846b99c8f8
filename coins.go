// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"fmt"
	"strings"
)

// NotAvailable is the private key placeholder of records derived from a
// public-only node.
const NotAvailable = "NA"

// WalletRecord is the formatted key material of one address.
type WalletRecord struct {
	Coin string
	Path string

	Address string

	// CashAddress and BitpayAddress are alternate encodings of Address,
	// filled for Bitcoin Cash only.
	CashAddress   string
	BitpayAddress string

	PublicKey  string
	PrivateKey string
}

// CoinFormatter turns a derived leaf into a wallet record. Formatters must
// accept invalid leaves and report the missing key material in the record
// instead of failing.
type CoinFormatter func(leaf Leaf, net *NetworkParams) (WalletRecord, error)

type coinFamily int

const (
	familyOther coinFamily = iota
	familyBitcoin
	familyBitcoinCash
)

// Coin binds a symbol to its account branch, network and formatter.
type Coin struct {
	Symbol  string
	Name    string
	Path    PathSpec
	Variant Variant
	Tier    Tier
	Format  CoinFormatter

	family coinFamily
}

// Network returns the parameters the coin's records are encoded with.
func (c Coin) Network() *NetworkParams {
	return MustLookupNetwork(c.Variant, c.Tier)
}

// WithAccount returns a copy of c deriving under account and change.
func (c Coin) WithAccount(account, change uint32) Coin {
	c.Path.Account = account
	c.Path.Change = change
	return c
}

// OnNetwork returns a copy of c whose records are encoded for net.
//
// Bitcoin coins also move to the purpose of net's address type and to the
// coin type of its tier, so m/84'/1'/... for testnet native SegWit. Bitcoin
// Cash keeps its path and takes the tier's address and WIF bytes. Ethereum
// and Nostr records do not depend on the network and are returned unchanged.
func (c Coin) OnNetwork(net *NetworkParams) Coin {
	switch c.family {
	case familyBitcoin:
		c.Variant, c.Tier = net.Variant, net.Tier
		c.Path.Purpose = net.Variant.Purpose()
		c.Path.Coin = 0
		if net.Tier != Mainnet {
			c.Path.Coin = 1
		}
		c.Format = FormatBTC
	case familyBitcoinCash:
		c.Variant, c.Tier = net.Variant, net.Tier
	}
	return c
}

var coins = []Coin{
	{Symbol: "BTC", Name: "Bitcoin", Path: BTC, Variant: VariantDefault, Tier: Mainnet, Format: FormatBTC, family: familyBitcoin},
	{Symbol: "tBTC", Name: "Bitcoin Testnet", Path: BTCTestnet, Variant: VariantP2WPKH, Tier: Testnet, Format: FormatBTCLegacy, family: familyBitcoin},
	{Symbol: "rBTC", Name: "Bitcoin Regtest", Path: BTCRegtest, Variant: VariantP2WPKH, Tier: Regtest, Format: FormatBTCLegacy, family: familyBitcoin},
	{Symbol: "BCH", Name: "Bitcoin Cash", Path: BCH, Variant: VariantDefault, Tier: Mainnet, Format: FormatBCH, family: familyBitcoinCash},
	{Symbol: "tBCH", Name: "Bitcoin Cash Testnet", Path: BCH, Variant: VariantDefault, Tier: Testnet, Format: FormatBCH, family: familyBitcoinCash},
	{Symbol: "ETH", Name: "Ethereum", Path: ETH, Variant: VariantDefault, Tier: Mainnet, Format: FormatETH},
	{Symbol: "tETH", Name: "Ethereum Testnet", Path: ETH, Variant: VariantDefault, Tier: Testnet, Format: FormatETH},
	{Symbol: "NOSTR", Name: "Nostr (NIP-06)", Path: Nostr, Variant: VariantDefault, Tier: Mainnet, Format: FormatNostr},
}

// Coins lists the supported coins.
func Coins() []Coin {
	out := make([]Coin, len(coins))
	copy(out, coins)
	return out
}

// LookupCoin finds a coin by symbol, case-insensitively.
func LookupCoin(symbol string) (Coin, error) {
	for _, c := range coins {
		if strings.EqualFold(c.Symbol, symbol) {
			return c, nil
		}
	}
	return Coin{}, fmt.Errorf("%w: %s", ErrUnknownCoin, symbol)
}
