// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"

	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/staking/reward"
	"github.com/vechain/thor-staking/staking/user"
	"github.com/vechain/thor-staking/thor"
)

// CreateUser creates the user of caller in vaultAddr. userBump must be the canonical nonce
// of the user address.
func (s *Staking) CreateUser(ctx context.Context, caller, vaultAddr thor.Address, userBump uint8) error {
	logger.Debug("creating user", "vault", vaultAddr, "owner", caller)

	userAddr, bump := user.Address(vaultAddr, caller)
	err := s.execute(ctx, "create_user", []thor.Address{vaultAddr, userAddr}, func(t *txn) error {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		if !v.IsReady() {
			return reverts.ErrVaultNotReady
		}
		exists, err := t.users.Exists(userAddr)
		if err != nil {
			return err
		}
		if exists {
			return reverts.ErrUserAlreadyExists
		}
		if userBump != bump {
			return reverts.ErrInvalidBump
		}
		if err := v.AddUser(); err != nil {
			return err
		}

		u := &user.User{
			Key:           caller,
			Vault:         vaultAddr,
			LastStakeTime: s.clock.Now(),
			Bump:          bump,
		}
		if err := t.users.Create(userAddr, u); err != nil {
			return err
		}
		return t.vaults.Set(vaultAddr, v)
	})
	if err != nil {
		logger.Info("create user failed", "vault", vaultAddr, "owner", caller, "error", err)
		return err
	}

	logger.Info("created user", "vault", vaultAddr, "user", userAddr)
	return nil
}

// CloseUser releases the user of caller. It has to hold no pending reward and no staked records.
func (s *Staking) CloseUser(ctx context.Context, caller, vaultAddr thor.Address) error {
	logger.Debug("closing user", "vault", vaultAddr, "owner", caller)

	userAddr, _ := user.Address(vaultAddr, caller)
	err := s.execute(ctx, "close_user", []thor.Address{vaultAddr, userAddr}, func(t *txn) error {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		if !v.IsReady() {
			return reverts.ErrVaultNotReady
		}
		u, err := t.getUser(userAddr, vaultAddr, caller)
		if err != nil {
			return err
		}
		if u.RewardEarnedPending > 0 {
			return reverts.ErrEarnedPendingExist
		}
		if u.MintStakedCount > 0 {
			return reverts.ErrStakedAccountsExist
		}

		if err := reward.Settle(s.clock.Now(), v.Rate(), u); err != nil {
			return err
		}
		if err := v.RemoveUser(); err != nil {
			return err
		}
		if err := t.users.Delete(userAddr, u); err != nil {
			return err
		}
		return t.vaults.Set(vaultAddr, v)
	})
	if err != nil {
		logger.Info("close user failed", "vault", vaultAddr, "owner", caller, "error", err)
		return err
	}

	logger.Info("closed user", "vault", vaultAddr, "user", userAddr)
	return nil
}
