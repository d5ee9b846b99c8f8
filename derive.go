// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// PathSpec describes a BIP44 account branch:
// m/purpose'/coin'/account'/change. Purpose, coin and account are hardened.
type PathSpec struct {
	Purpose uint32
	Coin    uint32
	Account uint32
	Change  uint32
}

// Preset account branches.
var (
	BTC        = PathSpec{Purpose: 44, Coin: 0}
	BTCTestnet = PathSpec{Purpose: 44, Coin: 1}
	BTCRegtest = PathSpec{Purpose: 44, Coin: 1}
	BCH        = PathSpec{Purpose: 44, Coin: 145}
	ETH        = PathSpec{Purpose: 44, Coin: 60}
	Nostr      = PathSpec{Purpose: 44, Coin: 1237}
)

const defaultPurpose = 44

// ParsePathSpec builds a PathSpec from loosely typed input. Each field uses
// its leading integer; fields without one fall back to 44 for purpose and 0
// for the others.
func ParsePathSpec(purpose, coin, account, change string) PathSpec {
	return PathSpec{
		Purpose: parseUintOr(purpose, defaultPurpose),
		Coin:    parseUintOr(coin, 0),
		Account: parseUintOr(account, 0),
		Change:  parseUintOr(change, 0),
	}
}

func parseUintOr(s string, def uint32) uint32 {
	v, ok := leadingInt(s)
	if !ok || v < 0 || v > 0xffffffff {
		return def
	}
	return uint32(v)
}

// leadingInt parses an optional sign and the run of decimal digits at the
// start of s, after leading spaces. Trailing characters are ignored.
func leadingInt(s string) (int64, bool) {
	s = strings.TrimLeft(s, " \t\n")
	end := 0
	if end < len(s) && (s[end] == '-' || s[end] == '+') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0, false
	}
	v, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// Validate checks that every field fits below the hardened offset.
func (p PathSpec) Validate() error {
	for _, v := range []uint32{p.Purpose, p.Coin, p.Account, p.Change} {
		if v >= hdkeychain.HardenedKeyStart {
			return fmt.Errorf("%w: %d", ErrIndexOutOfRange, v)
		}
	}
	return nil
}

// PathFor formats spec as m/purpose'/coin'/account'/change.
func PathFor(spec PathSpec) string {
	return fmt.Sprintf("m/%d'/%d'/%d'/%d", spec.Purpose, spec.Coin, spec.Account, spec.Change)
}

// Leaf is the outcome of walking a derivation path. An invalid Leaf carries
// no node; it results from asking a public-only node for a hardened child
// and stays invalid for every later step.
type Leaf struct {
	node *KeyNode
	err  error
}

// NewLeaf wraps a node as a valid walk result.
func NewLeaf(node *KeyNode) Leaf {
	return Leaf{node: node}
}

// Node returns the node and whether the walk produced one.
func (l Leaf) Node() (*KeyNode, bool) {
	return l.node, l.node != nil
}

// Valid reports whether the walk produced a node.
func (l Leaf) Valid() bool {
	return l.node != nil
}

// Err explains an invalid leaf. It is nil for valid leaves.
func (l Leaf) Err() error {
	if l.node == nil && l.err == nil {
		return ErrHardenedFromPublic
	}
	return l.err
}

// Child derives the non-hardened child at index.
func (l Leaf) Child(index uint32) (Leaf, error) {
	if index >= hdkeychain.HardenedKeyStart {
		return Leaf{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	return l.step(index, false)
}

// step derives one level. Engine failures are returned as errors; the
// hardened-from-public case is a policy outcome recorded in the Leaf.
func (l Leaf) step(index uint32, hardened bool) (Leaf, error) {
	if l.node == nil {
		return l, nil
	}
	if hardened && l.node.IsNeutered() {
		return Leaf{err: ErrHardenedFromPublic}, nil
	}
	child, err := l.node.child(index, hardened)
	if err != nil {
		return Leaf{}, err
	}
	return Leaf{node: child}, nil
}

// DeriveAlongPath walks path, such as "m/44'/0'/0'/0", from root. Segments
// without a leading integer (the "m" marker) are skipped, and a segment
// ending in ' or h is hardened. root is never modified.
func DeriveAlongPath(root *KeyNode, path string) (Leaf, error) {
	leaf := NewLeaf(root)
	for _, segment := range strings.Split(path, "/") {
		segment = strings.TrimSpace(segment)
		index, ok := leadingInt(segment)
		if !ok {
			continue
		}
		if index < 0 || index >= int64(hdkeychain.HardenedKeyStart) {
			return Leaf{}, fmt.Errorf("%w: segment %q", ErrIndexOutOfRange, segment)
		}
		hardened := strings.HasSuffix(segment, "'") || strings.HasSuffix(segment, "h") || strings.HasSuffix(segment, "H")

		var err error
		leaf, err = leaf.step(uint32(index), hardened)
		if err != nil {
			return Leaf{}, fmt.Errorf("failed to derive %s: %w", path, err)
		}
	}
	return leaf, nil
}

// HDWallet derives wallet records from a single root node.
type HDWallet struct {
	network *NetworkParams
	root    *KeyNode
}

// NewHDWalletFromMnemonic validates phrase with codec, derives its seed under
// passphrase and builds the root node for net.
func NewHDWalletFromMnemonic(codec *Mnemonic, phrase, passphrase string, net *NetworkParams) (*HDWallet, error) {
	if !codec.Check(phrase) {
		return nil, ErrInvalidMnemonic
	}
	return NewHDWalletFromSeed(codec.SeedBytes(phrase, passphrase), net)
}

// NewHDWalletFromSeed builds the root node of a raw seed.
func NewHDWalletFromSeed(seed []byte, net *NetworkParams) (*HDWallet, error) {
	root, err := NewRootNode(seed, net)
	if err != nil {
		return nil, err
	}
	return &HDWallet{network: net, root: root}, nil
}

// NewHDWalletFromRoot uses an existing node, possibly neutered, as the root.
func NewHDWalletFromRoot(root *KeyNode, net *NetworkParams) *HDWallet {
	return &HDWallet{network: net, root: root}
}

// Root returns the root node.
func (w *HDWallet) Root() *KeyNode {
	return w.root
}

// Network returns the parameters records are encoded for.
func (w *HDWallet) Network() *NetworkParams {
	return w.network
}

// AccountLeaf walks the account branch described by spec.
func (w *HDWallet) AccountLeaf(spec PathSpec) (Leaf, error) {
	if err := spec.Validate(); err != nil {
		return Leaf{}, err
	}
	return DeriveAlongPath(w.root, PathFor(spec))
}

// BuildWalletRecord derives the address at index under spec and formats it
// with format. An invalid walk still yields a record; its private key field
// reports that no key is available.
func (w *HDWallet) BuildWalletRecord(spec PathSpec, index uint32, format CoinFormatter) (WalletRecord, error) {
	account, err := w.AccountLeaf(spec)
	if err != nil {
		return WalletRecord{}, err
	}
	leaf, err := account.Child(index)
	if err != nil {
		return WalletRecord{}, err
	}

	record, err := format(leaf, w.network)
	if err != nil {
		return WalletRecord{}, err
	}
	record.Path = fmt.Sprintf("%s/%d", PathFor(spec), index)
	return record, nil
}
