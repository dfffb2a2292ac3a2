// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/thor"
)

var (
	ErrNotOwner            = errors.New("signer does not control the account")
	ErrInsufficientBalance = errors.New("insufficient account balance")
	ErrMintMismatch        = errors.New("accounts hold different mints")
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountExists       = errors.New("account already exists")
	ErrAccountNotEmpty     = errors.New("account balance is not zero")
	ErrInvalidSigner       = errors.New("signer does not resolve to an address")
	ErrSelfTransfer        = errors.New("transfer to the source account")
	ErrBalanceOverflow     = errors.New("account balance overflow")
)

// Account is a transferable asset record: an amount of one mint, controlled by its owner.
type Account struct {
	Mint   thor.Address
	Owner  thor.Address
	Amount uint64
}

// Signer is the capability presented to authorize a change of an account.
type Signer interface {
	Address() (thor.Address, error)
}

// KeySigner is an identity that signed the request with its own key.
type KeySigner thor.Address

func (k KeySigner) Address() (thor.Address, error) {
	return thor.Address(k), nil
}

// DerivedSigner signs for a derived address. It carries the derivation instead of a key,
// so only code that knows the seed and parts can act for the address.
type DerivedSigner struct {
	Seed  string
	Nonce uint8
	Parts [][]byte
}

// NewDerivedSigner builds the signer for the address derived from seed, nonce and parts.
func NewDerivedSigner(seed string, nonce uint8, parts ...[]byte) DerivedSigner {
	return DerivedSigner{Seed: seed, Nonce: nonce, Parts: parts}
}

func (d DerivedSigner) Address() (thor.Address, error) {
	addr, ok := thor.DerivedAddress(d.Seed, d.Nonce, d.Parts...)
	if !ok {
		return thor.Address{}, ErrInvalidSigner
	}
	return addr, nil
}
