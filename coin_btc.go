// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/btcd/txscript"
)

// FormatBTC renders a Bitcoin record. The address type follows the network
// variant: P2PKH for default, P2WPKH for native SegWit and P2SH-P2WPKH for
// nested SegWit. Multisig variants fall back to P2PKH since a single key has
// no witness script.
func FormatBTC(leaf Leaf, net *NetworkParams) (WalletRecord, error) {
	return formatBTC(leaf, net, net.Variant)
}

// FormatBTCLegacy renders a Bitcoin record with a P2PKH address whatever the
// network variant. Extended keys keep the variant's version bytes. It suits
// BIP44 paths, where wallets restoring the phrase expect P2PKH addresses.
func FormatBTCLegacy(leaf Leaf, net *NetworkParams) (WalletRecord, error) {
	return formatBTC(leaf, net, VariantDefault)
}

func formatBTC(leaf Leaf, net *NetworkParams, addressType Variant) (WalletRecord, error) {
	record := WalletRecord{Coin: "BTC", PrivateKey: NotAvailable}
	node, ok := leaf.Node()
	if !ok {
		return record, nil
	}

	params := net.ChainParams()
	pubKey, err := node.PublicKey()
	if err != nil {
		return WalletRecord{}, err
	}

	switch addressType {
	case VariantP2WPKH:
		record.Address, err = deriveP2WPKH(pubKey, params)
	case VariantP2WPKHInP2SH:
		record.Address, err = deriveP2SHP2WPKH(pubKey, params)
	default:
		record.Address, err = deriveP2PKH(pubKey, params)
	}
	if err != nil {
		return WalletRecord{}, err
	}

	record.PublicKey = hex.EncodeToString(pubKey.SerializeCompressed())
	record.PrivateKey, err = wifOrNA(node, params)
	if err != nil {
		return WalletRecord{}, err
	}
	return record, nil
}

// wifOrNA returns the compressed WIF of node, or NotAvailable when node is
// neutered.
func wifOrNA(node *KeyNode, params *chaincfg.Params) (string, error) {
	if node.IsNeutered() {
		return NotAvailable, nil
	}
	privKey, err := node.PrivateKey()
	if err != nil {
		return "", err
	}
	wif, err := btcutil.NewWIF(privKey, params, true)
	if err != nil {
		return "", fmt.Errorf("failed to create WIF: %w", err)
	}
	return wif.String(), nil
}

// deriveP2PKH derives a legacy P2PKH address (1... on mainnet).
func deriveP2PKH(pubKey *btcec.PublicKey, params *chaincfg.Params) (string, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	addr, err := btcutil.NewAddressPubKeyHash(pubKeyHash, params)
	if err != nil {
		return "", fmt.Errorf("failed to create P2PKH address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// deriveP2WPKH derives a native SegWit address (bc1q... on mainnet).
func deriveP2WPKH(pubKey *btcec.PublicKey, params *chaincfg.Params) (string, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	addr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, params)
	if err != nil {
		return "", fmt.Errorf("failed to create P2WPKH address: %w", err)
	}
	return addr.EncodeAddress(), nil
}

// deriveP2SHP2WPKH derives a nested SegWit address (3... on mainnet).
func deriveP2SHP2WPKH(pubKey *btcec.PublicKey, params *chaincfg.Params) (string, error) {
	pubKeyHash := btcutil.Hash160(pubKey.SerializeCompressed())
	witnessAddr, err := btcutil.NewAddressWitnessPubKeyHash(pubKeyHash, params)
	if err != nil {
		return "", fmt.Errorf("failed to create witness address: %w", err)
	}

	witnessScript, err := txscript.PayToAddrScript(witnessAddr)
	if err != nil {
		return "", fmt.Errorf("failed to create witness script: %w", err)
	}

	addr, err := btcutil.NewAddressScriptHash(witnessScript, params)
	if err != nil {
		return "", fmt.Errorf("failed to create P2SH address: %w", err)
	}
	return addr.EncodeAddress(), nil
}
