// Copyright (c) 2025-2026 complex (complex@ft.hn)
// See LICENSE for licensing information

package seedforge

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	ethcrypto "github.com/ethereum/go-ethereum/crypto"
)

// FormatETH renders an Ethereum record. The address is the EIP-55
// checksummed Keccak-256 address of the uncompressed public key; the private
// key is raw 32-byte hex, or empty when the node is public-only.
func FormatETH(leaf Leaf, _ *NetworkParams) (WalletRecord, error) {
	record := WalletRecord{Coin: "ETH"}
	node, ok := leaf.Node()
	if !ok {
		return record, nil
	}

	pubKey, err := node.PublicKey()
	if err != nil {
		return WalletRecord{}, err
	}
	compressed := pubKey.SerializeCompressed()

	ethPubKey, err := ethcrypto.DecompressPubkey(compressed)
	if err != nil {
		return WalletRecord{}, fmt.Errorf("failed to import public key: %w", err)
	}
	record.Address = ethcrypto.PubkeyToAddress(*ethPubKey).Hex()
	record.PublicKey = hexutil.Encode(compressed)

	if !node.IsNeutered() {
		privKey, err := node.PrivateKey()
		if err != nil {
			return WalletRecord{}, err
		}
		record.PrivateKey = hexutil.Encode(ethcrypto.FromECDSA(privKey.ToECDSA()))
	}
	return record, nil
}
