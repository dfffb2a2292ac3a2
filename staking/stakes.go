// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/custody"
	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/staking/reward"
	"github.com/vechain/thor-staking/staking/user"
	"github.com/vechain/thor-staking/staking/vault"
	"github.com/vechain/thor-staking/thor"
)

// Stake puts record into custody of the vault on behalf of caller.
func (s *Staking) Stake(ctx context.Context, caller, vaultAddr, record thor.Address) error {
	logger.Debug("staking", "vault", vaultAddr, "owner", caller, "record", record)

	userAddr, _ := user.Address(vaultAddr, caller)
	custodyAddr, _ := vault.StakeCustodyAddress(vaultAddr, caller)
	err := s.execute(ctx, "stake", []thor.Address{vaultAddr, userAddr, record}, func(t *txn) error {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		if !v.IsReady() {
			return reverts.ErrCanNotStake
		}
		u, err := t.getUser(userAddr, vaultAddr, caller)
		if err != nil {
			return err
		}
		if u.IsFull(s.config.MaxMintLimit) {
			return reverts.ErrMaxStakeCountReached
		}
		if u.HasStaked(record) {
			return reverts.ErrAlreadyStakedAccount
		}
		amount, err := t.custody.Amount(record)
		if err != nil {
			return errors.Wrap(err, "failed to get stake account")
		}
		if amount == 0 {
			return reverts.ErrEmptyStakeAccount
		}

		// the old count earns up to now
		if err := reward.Settle(s.clock.Now(), v.Rate(), u); err != nil {
			return err
		}
		if err := u.AddStake(record); err != nil {
			return err
		}
		if err := v.AddStaked(); err != nil {
			return err
		}

		if err := t.custody.TransferControl(record, custody.KeySigner(caller), custodyAddr); err != nil {
			return errors.Wrap(err, "failed to take custody")
		}
		if err := t.users.Set(userAddr, u); err != nil {
			return err
		}
		return t.vaults.Set(vaultAddr, v)
	})
	if err != nil {
		logger.Info("stake failed", "vault", vaultAddr, "record", record, "error", err)
		return err
	}

	logger.Info("staked", "vault", vaultAddr, "record", record)
	return nil
}

// Unstake hands record back to caller. vaultStakeBump must be the canonical nonce of the
// custody address.
func (s *Staking) Unstake(ctx context.Context, caller, vaultAddr, record thor.Address, vaultStakeBump uint8) error {
	logger.Debug("unstaking", "vault", vaultAddr, "owner", caller, "record", record)

	userAddr, _ := user.Address(vaultAddr, caller)
	_, bump := vault.StakeCustodyAddress(vaultAddr, caller)
	err := s.execute(ctx, "unstake", []thor.Address{vaultAddr, userAddr, record}, func(t *txn) error {
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
		if !u.HasStaked(record) {
			return reverts.ErrNotStakedAccount
		}
		if vaultStakeBump != bump {
			return reverts.ErrInvalidBump
		}

		// the old count earns up to now
		if err := reward.Settle(s.clock.Now(), v.Rate(), u); err != nil {
			return err
		}
		if err := u.RemoveStake(record); err != nil {
			return err
		}
		if err := v.RemoveStaked(); err != nil {
			return err
		}

		signer := custody.NewDerivedSigner(vault.StakeSeed, bump, vaultAddr.Bytes(), caller.Bytes())
		if err := t.custody.TransferControl(record, signer, caller); err != nil {
			return errors.Wrap(err, "failed to release custody")
		}
		if err := t.users.Set(userAddr, u); err != nil {
			return err
		}
		return t.vaults.Set(vaultAddr, v)
	})
	if err != nil {
		logger.Info("unstake failed", "vault", vaultAddr, "record", record, "error", err)
		return err
	}

	logger.Info("unstaked", "vault", vaultAddr, "record", record)
	return nil
}

// Claim pays the settled pending reward of caller from the reward pool into rewardAccount
// and returns the paid amount.
func (s *Staking) Claim(ctx context.Context, caller, vaultAddr, rewardAccount thor.Address) (uint64, error) {
	logger.Debug("claiming", "vault", vaultAddr, "owner", caller)

	userAddr, _ := user.Address(vaultAddr, caller)
	pool, _ := vault.RewardPoolAddress(vaultAddr)
	records := []thor.Address{vaultAddr, userAddr, pool, rewardAccount}

	var claimed uint64
	err := s.execute(ctx, "claim", records, func(t *txn) error {
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
		if rewardAccount == pool {
			return reverts.ErrInvalidRewardAccount
		}
		if err := reward.Settle(s.clock.Now(), v.Rate(), u); err != nil {
			return err
		}

		balance, err := t.custody.Amount(pool)
		if err != nil {
			return errors.Wrap(err, "failed to get reward pool")
		}
		if balance < u.RewardEarnedPending {
			return reverts.ErrInsufficientRewardPool
		}
		amount, err := u.Claim()
		if err != nil {
			return err
		}

		signer := custody.NewDerivedSigner(vault.RewardSeed, v.RewardBump, vaultAddr.Bytes())
		if err := t.custody.Transfer(pool, rewardAccount, amount, signer); err != nil {
			return errors.Wrap(err, "failed to pay reward")
		}
		claimed = amount
		return t.users.Set(userAddr, u)
	})
	if err != nil {
		logger.Info("claim failed", "vault", vaultAddr, "owner", caller, "error", err)
		return 0, err
	}

	logger.Info("claimed", "vault", vaultAddr, "owner", caller, "amount", claimed)
	return claimed, nil
}
