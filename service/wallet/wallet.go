package wallet

import (
	"context"
	"crypto/ecdsa"
	"math/big"

	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/padx/goapi/domain"
)

// Signer abstracts the connected wallet. Interactive implementations
// may return domain.ErrUserRejected from SignTx when the user declines;
// Address reflects the currently selected account and can change
// between calls.
type Signer interface {
	Address() domain.Address
	SignTx(ctx context.Context, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error)
}

type privateKeySigner struct {
	key  *ecdsa.PrivateKey
	addr domain.Address
}

// NewPrivateKeySigner builds a Signer from a hex-encoded private key.
func NewPrivateKeySigner(hexKey string) (Signer, error) {
	key, err := crypto.HexToECDSA(hexKey)
	if err != nil {
		return nil, err
	}
	addr := crypto.PubkeyToAddress(key.PublicKey)
	return &privateKeySigner{
		key:  key,
		addr: domain.Address(addr.Hex()).ToLower(),
	}, nil
}

func (s *privateKeySigner) Address() domain.Address {
	return s.addr
}

func (s *privateKeySigner) SignTx(_ context.Context, tx *types.Transaction, chainId *big.Int) (*types.Transaction, error) {
	return types.SignTx(tx, types.LatestSignerForChainID(chainId), s.key)
}
