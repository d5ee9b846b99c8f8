// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"fmt"
	"strings"

	bchchaincfg "github.com/gcash/bchd/chaincfg"

	"github.com/btcsuite/btcd/chaincfg"
)

// Tier is a network tier.
type Tier string

// Network tiers.
const (
	Mainnet Tier = "mainnet"
	Testnet Tier = "testnet"
	Regtest Tier = "regtest"
)

// Variant selects the script type a network's extended keys are meant for.
// Each variant has its own BIP32 version bytes (xpub, ypub, zpub, ...).
type Variant string

// Chain variants.
const (
	VariantDefault      Variant = "default"     // legacy P2PKH, xpub/tpub
	VariantP2WPKH       Variant = "p2wpkh"      // native SegWit, zpub/vpub
	VariantP2WPKHInP2SH Variant = "p2wpkh-p2sh" // nested SegWit, ypub/upub
	VariantP2WSH        Variant = "p2wsh"       // native SegWit multisig, Zpub/Vpub
	VariantP2WSHInP2SH  Variant = "p2wsh-p2sh"  // nested SegWit multisig, Ypub/Upub
)

// Purpose returns the BIP43 purpose of single-key addresses of the variant:
// 84 for native SegWit, 49 for nested SegWit and 44 otherwise.
func (v Variant) Purpose() uint32 {
	switch v {
	case VariantP2WPKH:
		return 84
	case VariantP2WPKHInP2SH:
		return 49
	default:
		return 44
	}
}

// NetworkParams holds the static version bytes and prefixes of one chain
// variant on one tier. Values are shared and must not be modified.
type NetworkParams struct {
	Name    string
	Variant Variant
	Tier    Tier

	MessagePrefix string
	Bech32HRP     string

	HDPublicKeyID  [4]byte
	HDPrivateKeyID [4]byte

	PubKeyHashAddrID byte
	ScriptHashAddrID byte
	WIF              byte

	// BitpayPubKeyHashAddrID is the version byte of the BitPay flavour of
	// Bitcoin Cash legacy addresses.
	BitpayPubKeyHashAddrID byte

	CashAddressPrefix string
}

const bitcoinMessagePrefix = "\x18Bitcoin Signed Message:\n"

func versionBytes(v uint32) [4]byte {
	return [4]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)}
}

func newParams(variant Variant, tier Tier, pub, priv uint32) *NetworkParams {
	p := &NetworkParams{
		Name:           fmt.Sprintf("bitcoin-%s-%s", variant, tier),
		Variant:        variant,
		Tier:           tier,
		MessagePrefix:  bitcoinMessagePrefix,
		HDPublicKeyID:  versionBytes(pub),
		HDPrivateKeyID: versionBytes(priv),
	}
	switch tier {
	case Mainnet:
		p.Bech32HRP = "bc"
		p.PubKeyHashAddrID = 0x00
		p.ScriptHashAddrID = 0x05
		p.WIF = 0x80
		p.BitpayPubKeyHashAddrID = 0x1c
		p.CashAddressPrefix = "bitcoincash"
	case Testnet:
		p.Bech32HRP = "tb"
		p.PubKeyHashAddrID = 0x6f
		p.ScriptHashAddrID = 0xc4
		p.WIF = 0xef
		p.BitpayPubKeyHashAddrID = 0x6f
		p.CashAddressPrefix = "bchtest"
	case Regtest:
		p.Bech32HRP = "bcrt"
		p.PubKeyHashAddrID = 0x6f
		p.ScriptHashAddrID = 0xc4
		p.WIF = 0xef
		p.BitpayPubKeyHashAddrID = 0x6f
		p.CashAddressPrefix = "bchreg"
	}
	return p
}

type networkKey struct {
	variant Variant
	tier    Tier
}

// networks is populated once at init and only read afterwards.
var networks = map[networkKey]*NetworkParams{}

var networkOrder []networkKey

func register(p *NetworkParams) {
	key := networkKey{p.Variant, p.Tier}
	networks[key] = p
	networkOrder = append(networkOrder, key)

	// hdkeychain needs the public/private pair to neuter keys.
	if err := chaincfg.RegisterHDKeyID(p.HDPublicKeyID[:], p.HDPrivateKeyID[:]); err != nil {
		panic(fmt.Sprintf("register HD key id for %s: %v", p.Name, err))
	}
}

func init() {
	register(newParams(VariantDefault, Mainnet, 0x0488b21e, 0x0488ade4))
	register(newParams(VariantDefault, Testnet, 0x043587cf, 0x04358394))
	register(newParams(VariantDefault, Regtest, 0x043587cf, 0x04358394))

	register(newParams(VariantP2WPKH, Mainnet, 0x04b24746, 0x04b2430c))
	register(newParams(VariantP2WPKH, Testnet, 0x045f1cf6, 0x045f18bc))
	register(newParams(VariantP2WPKH, Regtest, 0x045f1cf6, 0x045f18bc))

	register(newParams(VariantP2WPKHInP2SH, Mainnet, 0x049d7cb2, 0x049d7878))
	register(newParams(VariantP2WPKHInP2SH, Testnet, 0x044a5262, 0x044a4e28))
	register(newParams(VariantP2WPKHInP2SH, Regtest, 0x044a5262, 0x044a4e28))

	register(newParams(VariantP2WSH, Mainnet, 0x02aa7ed3, 0x02aa7a99))
	register(newParams(VariantP2WSH, Testnet, 0x02575483, 0x02575048))
	register(newParams(VariantP2WSH, Regtest, 0x02575483, 0x02575048))

	register(newParams(VariantP2WSHInP2SH, Mainnet, 0x0295b43f, 0x0295b005))
	register(newParams(VariantP2WSHInP2SH, Testnet, 0x024289ef, 0x024285b5))
	register(newParams(VariantP2WSHInP2SH, Regtest, 0x024289ef, 0x024285b5))
}

// LookupNetwork returns the parameters of variant on tier.
func LookupNetwork(variant Variant, tier Tier) (*NetworkParams, error) {
	p, ok := networks[networkKey{variant, tier}]
	if !ok {
		return nil, fmt.Errorf("%w: %s/%s", ErrUnknownNetwork, variant, tier)
	}
	return p, nil
}

// MustLookupNetwork is LookupNetwork for compile-time known pairs.
func MustLookupNetwork(variant Variant, tier Tier) *NetworkParams {
	p, err := LookupNetwork(variant, tier)
	if err != nil {
		panic(err)
	}
	return p
}

// Networks lists every registered network in registration order.
func Networks() []*NetworkParams {
	out := make([]*NetworkParams, 0, len(networkOrder))
	for _, key := range networkOrder {
		out = append(out, networks[key])
	}
	return out
}

// ParseTier parses a tier name. "main", "test" and "regression" are
// accepted as aliases.
func ParseTier(s string) (Tier, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "mainnet", "main":
		return Mainnet, nil
	case "testnet", "test", "testnet3":
		return Testnet, nil
	case "regtest", "regression", "regnet":
		return Regtest, nil
	default:
		return "", fmt.Errorf("%w: tier %q", ErrUnknownNetwork, s)
	}
}

// ParseVariant parses a variant name; underscores are accepted in place of
// dashes ("p2wpkh_in_p2sh").
func ParseVariant(s string) (Variant, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.ReplaceAll(v, "_in_", "-")
	v = strings.ReplaceAll(v, "_", "-")
	switch Variant(v) {
	case "", VariantDefault:
		return VariantDefault, nil
	case VariantP2WPKH, VariantP2WPKHInP2SH, VariantP2WSH, VariantP2WSHInP2SH:
		return Variant(v), nil
	default:
		return "", fmt.Errorf("%w: variant %q", ErrUnknownNetwork, s)
	}
}

// ChainParams converts p to the btcd parameters consumed by the key engine
// and the address encoders.
func (p *NetworkParams) ChainParams() *chaincfg.Params {
	return &chaincfg.Params{
		Name: p.Name,

		PubKeyHashAddrID: p.PubKeyHashAddrID,
		ScriptHashAddrID: p.ScriptHashAddrID,
		PrivateKeyID:     p.WIF,

		Bech32HRPSegwit: p.Bech32HRP,

		HDPrivateKeyID: p.HDPrivateKeyID,
		HDPublicKeyID:  p.HDPublicKeyID,
	}
}

// CashParams returns the Bitcoin Cash parameters of p's tier.
func (p *NetworkParams) CashParams() *bchchaincfg.Params {
	switch p.Tier {
	case Testnet:
		return &bchchaincfg.TestNet3Params
	case Regtest:
		return &bchchaincfg.RegressionNetParams
	default:
		return &bchchaincfg.MainNetParams
	}
}
