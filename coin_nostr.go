// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"encoding/hex"
	"fmt"

	"github.com/nbd-wtf/go-nostr/nip19"
)

// FormatNostr renders a NIP-06 Nostr identity. The address is the npub, the
// public key is the 32-byte x-only key in hex and the private key is the
// nsec.
func FormatNostr(leaf Leaf, _ *NetworkParams) (WalletRecord, error) {
	record := WalletRecord{Coin: "NOSTR", PrivateKey: NotAvailable}
	node, ok := leaf.Node()
	if !ok {
		return record, nil
	}

	pubKey, err := node.PublicKey()
	if err != nil {
		return WalletRecord{}, err
	}
	publicKeyHex := hex.EncodeToString(pubKey.SerializeCompressed()[1:])

	record.Address, err = nip19.EncodePublicKey(publicKeyHex)
	if err != nil {
		return WalletRecord{}, fmt.Errorf("failed to encode public key: %w", err)
	}
	record.PublicKey = publicKeyHex

	if !node.IsNeutered() {
		privKey, err := node.PrivateKey()
		if err != nil {
			return WalletRecord{}, err
		}
		record.PrivateKey, err = nip19.EncodePrivateKey(hex.EncodeToString(privKey.Serialize()))
		if err != nil {
			return WalletRecord{}, fmt.Errorf("failed to encode private key: %w", err)
		}
	}
	return record, nil
}
