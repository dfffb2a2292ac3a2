// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package custody keeps token accounts and moves their control and balances.
package custody

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/thor"
)

var logger = log.WithContext("pkg", "custody")

// Registry manages token accounts within one ledger transaction.
type Registry struct {
	accounts *ledger.Records[Account]
}

func New(lctx *ledger.Context) *Registry {
	return &Registry{accounts: ledger.NewRecords[Account](lctx, "custody-account")}
}

// Get returns the account at addr.
func (r *Registry) Get(addr thor.Address) (*Account, error) {
	acc, ok, err := r.accounts.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}
	if !ok {
		return nil, errors.WithMessagef(ErrAccountNotFound, "%s", addr)
	}
	return &acc, nil
}

// Amount returns the balance held by the account at addr.
func (r *Registry) Amount(addr thor.Address) (uint64, error) {
	acc, err := r.Get(addr)
	if err != nil {
		return 0, err
	}
	return acc.Amount, nil
}

// Open creates an empty account of mint controlled by owner.
func (r *Registry) Open(addr, mint, owner thor.Address) error {
	ok, err := r.accounts.Exists(addr)
	if err != nil {
		return errors.Wrap(err, "failed to check account")
	}
	if ok {
		return errors.WithMessagef(ErrAccountExists, "%s", addr)
	}
	return r.accounts.Set(addr, Account{Mint: mint, Owner: owner})
}

// Mint credits amount of mint to the account at addr, opening it for owner if missing.
func (r *Registry) Mint(addr, mint, owner thor.Address, amount uint64) error {
	acc, ok, err := r.accounts.Get(addr)
	if err != nil {
		return errors.Wrap(err, "failed to get account")
	}
	if !ok {
		acc = Account{Mint: mint, Owner: owner}
	}
	if acc.Mint != mint {
		return ErrMintMismatch
	}
	if acc.Amount+amount < acc.Amount {
		return ErrBalanceOverflow
	}
	acc.Amount += amount
	logger.Trace("minted", "account", addr, "mint", mint, "amount", amount)
	return r.accounts.Set(addr, acc)
}

// authorize resolves signer and checks it controls acc.
func authorize(acc *Account, signer Signer) error {
	addr, err := signer.Address()
	if err != nil {
		return err
	}
	if addr != acc.Owner {
		return errors.WithMessagef(ErrNotOwner, "owner %s, signer %s", acc.Owner, addr)
	}
	return nil
}

// TransferControl hands control of the account at addr to a new owner.
func (r *Registry) TransferControl(addr thor.Address, signer Signer, to thor.Address) error {
	acc, err := r.Get(addr)
	if err != nil {
		return err
	}
	if err := authorize(acc, signer); err != nil {
		return err
	}
	acc.Owner = to
	return r.accounts.Set(addr, *acc)
}

// Transfer moves amount from one account to another of the same mint.
func (r *Registry) Transfer(from, to thor.Address, amount uint64, signer Signer) error {
	src, err := r.Get(from)
	if err != nil {
		return err
	}
	if err := authorize(src, signer); err != nil {
		return err
	}
	dst, err := r.Get(to)
	if err != nil {
		return err
	}
	if src.Mint != dst.Mint {
		return ErrMintMismatch
	}
	if src.Amount < amount {
		return errors.WithMessagef(ErrInsufficientBalance, "have %d, want %d", src.Amount, amount)
	}
	if amount == 0 {
		return nil
	}
	if from == to {
		return ErrSelfTransfer
	}
	if dst.Amount+amount < dst.Amount {
		return ErrBalanceOverflow
	}
	src.Amount -= amount
	dst.Amount += amount

	if err := r.accounts.Set(from, *src); err != nil {
		return err
	}
	return r.accounts.Set(to, *dst)
}

// Close releases an empty account.
func (r *Registry) Close(addr thor.Address, signer Signer) error {
	acc, err := r.Get(addr)
	if err != nil {
		return err
	}
	if err := authorize(acc, signer); err != nil {
		return err
	}
	if acc.Amount != 0 {
		return ErrAccountNotEmpty
	}
	return r.accounts.Delete(addr)
}
