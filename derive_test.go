// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func abandonWallet(t *testing.T, net *NetworkParams) *HDWallet {
	t.Helper()
	w, err := NewHDWalletFromMnemonic(newEnglish(t), abandonAbout, "", net)
	if err != nil {
		t.Fatalf("NewHDWalletFromMnemonic: %v", err)
	}
	return w
}

func TestPathFor(t *testing.T) {
	is := is.New(t)

	is.Equal(PathFor(BTC), "m/44'/0'/0'/0")
	is.Equal(PathFor(ETH), "m/44'/60'/0'/0")
	is.Equal(PathFor(PathSpec{Purpose: 84, Coin: 1, Account: 2, Change: 1}), "m/84'/1'/2'/1")
}

// TestParsePathSpec verifies leading-integer parsing and the defaults used
// for fields without one.
func TestParsePathSpec(t *testing.T) {
	tests := []struct {
		name                           string
		purpose, coin, account, change string
		want                           PathSpec
	}{
		{"plain", "49", "0", "1", "0", PathSpec{49, 0, 1, 0}},
		{"defaults", "", "x", "", "", PathSpec{44, 0, 0, 0}},
		{"trailing junk", "84'", "60h", " 7abc", "1/", PathSpec{84, 60, 7, 1}},
		{"negative", "-5", "-1", "2", "3", PathSpec{44, 0, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			is := is.New(t)
			is.Equal(ParsePathSpec(tt.purpose, tt.coin, tt.account, tt.change), tt.want)
		})
	}
}

func TestPathSpec_Validate(t *testing.T) {
	is := is.New(t)

	is.NoErr(BTC.Validate())
	is.True(errors.Is(PathSpec{Purpose: 44, Account: 1 << 31}.Validate(), ErrIndexOutOfRange))
	is.True(errors.Is(PathSpec{Purpose: 44, Change: 0xffffffff}.Validate(), ErrIndexOutOfRange))

	w := abandonWallet(t, MustLookupNetwork(VariantDefault, Mainnet))
	_, err := w.BuildWalletRecord(PathSpec{Purpose: 44, Coin: 1 << 31}, 0, FormatBTC)
	is.True(errors.Is(err, ErrIndexOutOfRange))
	_, err = w.BuildWalletRecord(BTC, 1<<31, FormatBTC)
	is.True(errors.Is(err, ErrIndexOutOfRange))
}

// TestDeriveAlongPath_Segments checks hardened markers, skipped segments
// and out of range indices.
func TestDeriveAlongPath_Segments(t *testing.T) {
	is := is.New(t)
	w := abandonWallet(t, MustLookupNetwork(VariantDefault, Mainnet))

	quoted, err := DeriveAlongPath(w.Root(), "m/44'/0'/0'/0/0")
	is.NoErr(err)
	lower, err := DeriveAlongPath(w.Root(), "m/44h/0h/0h/0/0")
	is.NoErr(err)
	upper, err := DeriveAlongPath(w.Root(), " M / 44H / 0H / 0H / 0 / 0 ")
	is.NoErr(err)

	a, _ := quoted.Node()
	b, _ := lower.Node()
	c, _ := upper.Node()
	is.Equal(a.String(), b.String())
	is.Equal(a.String(), c.String())
	is.Equal(a.Depth(), uint8(5))

	unhardened, err := DeriveAlongPath(w.Root(), "m/44/0/0/0/0")
	is.NoErr(err)
	d, _ := unhardened.Node()
	is.True(d.String() != a.String())

	self, err := DeriveAlongPath(w.Root(), "m")
	is.NoErr(err)
	root, ok := self.Node()
	is.True(ok)
	is.Equal(root.String(), w.Root().String())

	for _, path := range []string{"m/2147483648", "m/-1", "m/0/4294967296'"} {
		_, err := DeriveAlongPath(w.Root(), path)
		is.True(errors.Is(err, ErrIndexOutOfRange))
	}

	// The root is never advanced by a walk.
	is.Equal(w.Root().Depth(), uint8(0))
}

// TestDeriveAlongPath_HardenedFromPublic verifies that a hardened step on a
// neutered node yields a permanently invalid leaf.
func TestDeriveAlongPath_HardenedFromPublic(t *testing.T) {
	is := is.New(t)
	w := abandonWallet(t, MustLookupNetwork(VariantDefault, Mainnet))

	pub, err := w.Root().Neuter()
	is.NoErr(err)
	is.True(pub.IsNeutered())
	is.True(!w.Root().IsNeutered())

	leaf, err := DeriveAlongPath(pub, "m/0/44'/0")
	is.NoErr(err)
	is.True(!leaf.Valid())
	is.True(errors.Is(leaf.Err(), ErrHardenedFromPublic))

	next, err := leaf.Child(0)
	is.NoErr(err)
	is.True(!next.Valid())
	_, ok := next.Node()
	is.True(!ok)

	valid, err := DeriveAlongPath(pub, "m/0/1")
	is.NoErr(err)
	is.True(valid.Valid())
	is.NoErr(valid.Err())
}

// TestHDWallet_PublicDerivationMatchesPrivate verifies that non-hardened
// children of an account xpub match the private derivation.
func TestHDWallet_PublicDerivationMatchesPrivate(t *testing.T) {
	is := is.New(t)
	net := MustLookupNetwork(VariantDefault, Mainnet)
	w := abandonWallet(t, net)

	private, err := w.BuildWalletRecord(BTC, 4, FormatBTC)
	is.NoErr(err)

	account, err := w.AccountLeaf(BTC)
	is.NoErr(err)
	node, ok := account.Node()
	is.True(ok)
	xpub, err := node.Neuter()
	is.NoErr(err)

	parsed, err := ParseKeyNode(xpub.String())
	is.NoErr(err)
	is.True(parsed.IsNeutered())

	leaf, err := NewLeaf(parsed).Child(4)
	is.NoErr(err)
	public, err := FormatBTC(leaf, net)
	is.NoErr(err)

	is.Equal(public.Address, private.Address)
	is.Equal(public.PublicKey, private.PublicKey)
	is.Equal(public.PrivateKey, NotAvailable)
	is.True(private.PrivateKey != NotAvailable)
}

// TestHDWallet_NeuteredRoot verifies that a public-only root still yields a
// record for every coin, with the private key reported as unavailable.
func TestHDWallet_NeuteredRoot(t *testing.T) {
	is := is.New(t)
	net := MustLookupNetwork(VariantDefault, Mainnet)

	pub, err := abandonWallet(t, net).Root().Neuter()
	is.NoErr(err)
	w := NewHDWalletFromRoot(pub, net)

	for _, coin := range Coins() {
		record, err := w.BuildWalletRecord(coin.Path, 0, coin.Format)
		is.NoErr(err)
		is.Equal(record.Address, "")
		is.Equal(record.Path, PathFor(coin.Path)+"/0")
		if coin.Symbol == "ETH" || coin.Symbol == "tETH" {
			is.Equal(record.PrivateKey, "")
		} else {
			is.Equal(record.PrivateKey, NotAvailable)
		}
	}
}

func TestHDWallet_Determinism(t *testing.T) {
	is := is.New(t)
	net := MustLookupNetwork(VariantDefault, Mainnet)

	a, err := abandonWallet(t, net).BuildWalletRecord(BTC, 0, FormatBTC)
	is.NoErr(err)
	b, err := abandonWallet(t, net).BuildWalletRecord(BTC, 0, FormatBTC)
	is.NoErr(err)
	is.Equal(a, b)

	c, err := abandonWallet(t, net).BuildWalletRecord(BTC, 1, FormatBTC)
	is.NoErr(err)
	is.True(a.Address != c.Address)
	is.Equal(c.Path, "m/44'/0'/0'/0/1")

	codec := newEnglish(t)
	withPass, err := NewHDWalletFromMnemonic(codec, abandonAbout, "TREZOR", net)
	is.NoErr(err)
	d, err := withPass.BuildWalletRecord(BTC, 0, FormatBTC)
	is.NoErr(err)
	is.True(a.Address != d.Address)
}

func TestNewHDWalletFromMnemonic_Invalid(t *testing.T) {
	is := is.New(t)

	_, err := NewHDWalletFromMnemonic(newEnglish(t), "abandon abandon abandon", "", MustLookupNetwork(VariantDefault, Mainnet))
	is.True(errors.Is(err, ErrInvalidMnemonic))
}

func TestNewHDWalletFromSeed_InvalidLength(t *testing.T) {
	is := is.New(t)

	_, err := NewHDWalletFromSeed(make([]byte, 8), MustLookupNetwork(VariantDefault, Mainnet))
	is.True(err != nil)
}
