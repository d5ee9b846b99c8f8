// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/gcash/bchutil"
)

// FormatBCH renders a Bitcoin Cash record. The key material matches
// FormatBTC; the address is additionally given in CashAddr form and in the
// BitPay legacy form.
func FormatBCH(leaf Leaf, net *NetworkParams) (WalletRecord, error) {
	record := WalletRecord{Coin: "BCH", PrivateKey: NotAvailable}
	node, ok := leaf.Node()
	if !ok {
		return record, nil
	}

	params := net.ChainParams()
	pubKey, err := node.PublicKey()
	if err != nil {
		return WalletRecord{}, err
	}
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())

	record.Address, err = deriveP2PKH(pubKey, params)
	if err != nil {
		return WalletRecord{}, err
	}
	record.CashAddress, err = cashAddress(pubKeyHash, net)
	if err != nil {
		return WalletRecord{}, err
	}
	record.BitpayAddress = base58.CheckEncode(pubKeyHash, net.BitpayPubKeyHashAddrID)

	record.PublicKey = hex.EncodeToString(pubKey.SerializeCompressed())
	record.PrivateKey, err = wifOrNA(node, params)
	if err != nil {
		return WalletRecord{}, err
	}
	return record, nil
}

// cashAddress encodes a pubkey hash as a prefixed CashAddr string such as
// "bitcoincash:qp...".
func cashAddress(pubKeyHash []byte, net *NetworkParams) (string, error) {
	addr, err := bchutil.NewAddressPubKeyHash(pubKeyHash, net.CashParams())
	if err != nil {
		return "", fmt.Errorf("failed to create cash address: %w", err)
	}
	encoded := addr.EncodeAddress()
	if !strings.Contains(encoded, ":") {
		encoded = net.CashAddressPrefix + ":" + encoded
	}
	return encoded, nil
}
