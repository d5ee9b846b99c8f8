// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/hdkeychain"
)

// KeyNode is one node of a BIP32 key tree. A node is either extended (it
// holds private key material) or neutered (public only). Nodes are values
// produced per derivation and never shared between walks.
type KeyNode struct {
	key *hdkeychain.ExtendedKey
}

// NewRootNode derives the master node of seed using the version bytes of net.
func NewRootNode(seed []byte, net *NetworkParams) (*KeyNode, error) {
	master, err := hdkeychain.NewMaster(seed, net.ChainParams())
	if err != nil {
		return nil, fmt.Errorf("failed to create master key: %w", err)
	}
	return &KeyNode{key: master}, nil
}

// ParseKeyNode parses a serialized extended key (xprv, xpub, zpub, ...).
func ParseKeyNode(s string) (*KeyNode, error) {
	key, err := hdkeychain.NewKeyFromString(s)
	if err != nil {
		return nil, fmt.Errorf("failed to parse extended key: %w", err)
	}
	return &KeyNode{key: key}, nil
}

// IsNeutered reports whether the node lacks private key material.
func (n *KeyNode) IsNeutered() bool {
	return !n.key.IsPrivate()
}

// Neuter returns the public-only view of the node.
func (n *KeyNode) Neuter() (*KeyNode, error) {
	pub, err := n.key.Neuter()
	if err != nil {
		return nil, fmt.Errorf("failed to neuter key: %w", err)
	}
	return &KeyNode{key: pub}, nil
}

// Depth returns the number of derivations from the master node.
func (n *KeyNode) Depth() uint8 {
	return n.key.Depth()
}

func (n *KeyNode) child(index uint32, hardened bool) (*KeyNode, error) {
	i := index
	if hardened {
		i += hdkeychain.HardenedKeyStart
	}
	child, err := n.key.Derive(i)
	if err != nil {
		return nil, fmt.Errorf("failed to derive child %d: %w", index, err)
	}
	return &KeyNode{key: child}, nil
}

// PublicKey returns the node's secp256k1 public key.
func (n *KeyNode) PublicKey() (*btcec.PublicKey, error) {
	pub, err := n.key.ECPubKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get public key: %w", err)
	}
	return pub, nil
}

// PrivateKey returns the node's private key. It fails on neutered nodes.
func (n *KeyNode) PrivateKey() (*btcec.PrivateKey, error) {
	priv, err := n.key.ECPrivKey()
	if err != nil {
		return nil, fmt.Errorf("failed to get private key: %w", err)
	}
	return priv, nil
}

// String returns the serialized extended key.
func (n *KeyNode) String() string {
	return n.key.String()
}
