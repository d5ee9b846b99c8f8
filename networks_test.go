// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

// TestNetworks_Registry checks that every variant is registered on every
// tier and that the tier bytes are consistent.
func TestNetworks_Registry(t *testing.T) {
	is := is.New(t)

	nets := Networks()
	is.Equal(len(nets), 15)

	for _, n := range nets {
		got, err := LookupNetwork(n.Variant, n.Tier)
		is.NoErr(err)
		is.Equal(got, n)
		is.Equal(n.MessagePrefix, "\x18Bitcoin Signed Message:\n")

		switch n.Tier {
		case Mainnet:
			is.Equal(n.Bech32HRP, "bc")
			is.Equal(n.WIF, byte(0x80))
		case Testnet:
			is.Equal(n.Bech32HRP, "tb")
			is.Equal(n.WIF, byte(0xef))
		case Regtest:
			is.Equal(n.Bech32HRP, "bcrt")
			is.Equal(n.WIF, byte(0xef))
		}
	}

	_, err := LookupNetwork(Variant("p2tr"), Mainnet)
	is.True(errors.Is(err, ErrUnknownNetwork))
}

// TestNetworks_VersionBytes checks the extended key prefixes each variant
// serializes to.
func TestNetworks_VersionBytes(t *testing.T) {
	tests := []struct {
		variant  Variant
		tier     Tier
		pub, prv string
	}{
		{VariantDefault, Mainnet, "xpub", "xprv"},
		{VariantDefault, Testnet, "tpub", "tprv"},
		{VariantP2WPKH, Mainnet, "zpub", "zprv"},
		{VariantP2WPKH, Testnet, "vpub", "vprv"},
		{VariantP2WPKHInP2SH, Mainnet, "ypub", "yprv"},
		{VariantP2WPKHInP2SH, Regtest, "upub", "uprv"},
		{VariantP2WSH, Mainnet, "Zpub", "Zprv"},
		{VariantP2WSHInP2SH, Mainnet, "Ypub", "Yprv"},
	}
	seed := newEnglish(t).SeedBytes(abandonAbout, "")

	for _, tt := range tests {
		t.Run(string(tt.variant)+"/"+string(tt.tier), func(t *testing.T) {
			is := is.New(t)

			root, err := NewRootNode(seed, MustLookupNetwork(tt.variant, tt.tier))
			is.NoErr(err)
			is.True(strings.HasPrefix(root.String(), tt.prv))

			pub, err := root.Neuter()
			is.NoErr(err)
			is.True(strings.HasPrefix(pub.String(), tt.pub))
		})
	}
}

// TestNetworks_BIP84RootKey checks the BIP84 reference root key.
func TestNetworks_BIP84RootKey(t *testing.T) {
	is := is.New(t)

	seed := newEnglish(t).SeedBytes(abandonAbout, "")
	root, err := NewRootNode(seed, MustLookupNetwork(VariantP2WPKH, Mainnet))
	is.NoErr(err)
	is.Equal(root.String(), "zprvAWgYBBk7JR8Gjrh4UJQ2uJdG1r3WNRRfURiABBE3RvMXYSrRJL62XuezvGdPvG6GFBZduosCc1YP5wixPox7zhZLfiUm8aunE96BBa4Kei5")
}

func TestParseTier(t *testing.T) {
	is := is.New(t)

	for in, want := range map[string]Tier{
		"":           Mainnet,
		"main":       Mainnet,
		"MAINNET":    Mainnet,
		"testnet":    Testnet,
		"testnet3":   Testnet,
		"regtest":    Regtest,
		"regression": Regtest,
	} {
		got, err := ParseTier(in)
		is.NoErr(err)
		is.Equal(got, want)
	}

	_, err := ParseTier("signet")
	is.True(errors.Is(err, ErrUnknownNetwork))
}

func TestParseVariant(t *testing.T) {
	is := is.New(t)

	for in, want := range map[string]Variant{
		"":               VariantDefault,
		"default":        VariantDefault,
		"P2WPKH":         VariantP2WPKH,
		"p2wpkh_in_p2sh": VariantP2WPKHInP2SH,
		"p2wpkh-p2sh":    VariantP2WPKHInP2SH,
		"p2wsh_p2sh":     VariantP2WSHInP2SH,
		"p2wsh":          VariantP2WSH,
	} {
		got, err := ParseVariant(in)
		is.NoErr(err)
		is.Equal(got, want)
	}

	_, err := ParseVariant("p2tr")
	is.True(errors.Is(err, ErrUnknownNetwork))
}

func TestChainParams(t *testing.T) {
	is := is.New(t)

	net := MustLookupNetwork(VariantP2WPKH, Testnet)
	params := net.ChainParams()
	is.Equal(params.Bech32HRPSegwit, "tb")
	is.Equal(params.PubKeyHashAddrID, byte(0x6f))
	is.Equal(params.HDPublicKeyID, net.HDPublicKeyID)

	is.Equal(MustLookupNetwork(VariantDefault, Mainnet).CashParams().CashAddressPrefix, "bitcoincash")
	is.Equal(MustLookupNetwork(VariantDefault, Testnet).CashParams().CashAddressPrefix, "bchtest")
	is.Equal(MustLookupNetwork(VariantDefault, Regtest).CashParams().CashAddressPrefix, "bchreg")
}
