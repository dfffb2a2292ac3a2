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
	"github.com/vechain/thor-staking/staking/vault"
	"github.com/vechain/thor-staking/thor"
)

// CreateVault initializes the vault at vaultAddr with caller as its authority, and opens
// its reward pool for rewardMint. The reward rate stays zero until the first Fund.
func (s *Staking) CreateVault(
	ctx context.Context,
	caller thor.Address,
	vaultAddr thor.Address,
	rewardMint thor.Address,
	rewardBump uint8,
	rewardDuration uint64,
	stakeTokenCount uint32,
) error {
	logger.Debug("creating vault", "vault", vaultAddr, "authority", caller,
		"rewardMint", rewardMint,
		"duration", rewardDuration,
		"stakeTokenCount", stakeTokenCount,
	)

	pool, bump := vault.RewardPoolAddress(vaultAddr)
	err := s.execute(ctx, "create_vault", []thor.Address{vaultAddr, pool}, func(t *txn) error {
		v, err := t.vaults.Get(vaultAddr)
		if err != nil {
			return err
		}
		if v.Status != vault.StatusUninitialized {
			return reverts.ErrVaultAlreadyInitialized
		}
		if rewardDuration == 0 {
			return reverts.ErrInvalidDuration
		}
		if stakeTokenCount == 0 {
			return reverts.ErrInvalidStakeTokenCount
		}
		if rewardBump != bump {
			return reverts.ErrInvalidBump
		}
		rate, err := reward.Rate(0, 0, rewardDuration, stakeTokenCount)
		if err != nil {
			return err
		}

		v = &vault.Vault{
			Authority:       caller,
			Status:          vault.StatusInitialized,
			Funders:         make([]thor.Address, s.config.FunderCapacity),
			RewardMint:      rewardMint,
			RewardBump:      bump,
			RewardDuration:  rewardDuration,
			StakeTokenCount: stakeTokenCount,
		}
		v.SetRate(rate)

		if err := t.custody.Open(pool, rewardMint, pool); err != nil {
			return errors.Wrap(err, "failed to open reward pool")
		}
		return t.vaults.Set(vaultAddr, v)
	})
	if err != nil {
		logger.Info("create vault failed", "vault", vaultAddr, "error", err)
		return err
	}

	logger.Info("created vault", "vault", vaultAddr, "pool", pool)
	return nil
}

// controlFunder loads a vault the caller may manage funders of, and applies update.
func (s *Staking) controlFunder(
	ctx context.Context,
	op string,
	caller, vaultAddr thor.Address,
	update func(v *vault.Vault) error,
) error {
	return s.execute(ctx, op, []thor.Address{vaultAddr}, func(t *txn) error {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		if v.Authority != caller {
			return reverts.ErrNotAuthority
		}
		if !v.IsReady() {
			return reverts.ErrVaultNotReady
		}
		if err := update(v); err != nil {
			return err
		}
		return t.vaults.Set(vaultAddr, v)
	})
}

// AuthorizeFunder registers funder in the first free funder slot of the vault.
func (s *Staking) AuthorizeFunder(ctx context.Context, caller, vaultAddr, funder thor.Address) error {
	logger.Debug("authorizing funder", "vault", vaultAddr, "funder", funder)

	if err := s.controlFunder(ctx, "authorize_funder", caller, vaultAddr, func(v *vault.Vault) error {
		return v.AuthorizeFunder(funder)
	}); err != nil {
		logger.Info("authorize funder failed", "vault", vaultAddr, "funder", funder, "error", err)
		return err
	}

	logger.Info("authorized funder", "vault", vaultAddr, "funder", funder)
	return nil
}

// UnauthorizeFunder frees the slot of funder. The slot can be taken by a later funder.
func (s *Staking) UnauthorizeFunder(ctx context.Context, caller, vaultAddr, funder thor.Address) error {
	logger.Debug("unauthorizing funder", "vault", vaultAddr, "funder", funder)

	if err := s.controlFunder(ctx, "unauthorize_funder", caller, vaultAddr, func(v *vault.Vault) error {
		return v.UnauthorizeFunder(funder)
	}); err != nil {
		logger.Info("unauthorize funder failed", "vault", vaultAddr, "funder", funder, "error", err)
		return err
	}

	logger.Info("unauthorized funder", "vault", vaultAddr, "funder", funder)
	return nil
}

// Fund moves amount from funderAccount into the reward pool and spreads it, plus what is
// left of the running window, over a new window of RewardDuration seconds.
func (s *Staking) Fund(ctx context.Context, caller, vaultAddr, funderAccount thor.Address, amount uint64) error {
	logger.Debug("funding vault", "vault", vaultAddr, "funder", caller, "amount", amount)

	pool, _ := vault.RewardPoolAddress(vaultAddr)
	records := []thor.Address{vaultAddr, pool, funderAccount}
	err := s.execute(ctx, "fund", records, func(t *txn) error {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		if !v.IsFunder(caller) {
			return reverts.ErrNotFunder
		}
		if !v.IsReady() {
			return reverts.ErrVaultNotReady
		}
		if amount == 0 {
			return reverts.ErrInvalidAmount
		}

		now := s.clock.Now()
		leftover, err := reward.Leftover(now, v.RewardDurationEnd, v.Rate(), v.StakeTokenCount)
		if err != nil {
			return err
		}
		rate, err := reward.Rate(amount, leftover, v.RewardDuration, v.StakeTokenCount)
		if err != nil {
			return err
		}
		end := now + v.RewardDuration
		if end < now {
			return errors.WithMessage(reverts.ErrOverflow, "reward duration end")
		}
		v.SetRate(rate)
		v.RewardDurationEnd = end

		if err := t.custody.Transfer(funderAccount, pool, amount, custody.KeySigner(caller)); err != nil {
			return errors.Wrap(err, "failed to transfer funds")
		}
		return t.vaults.Set(vaultAddr, v)
	})
	if err != nil {
		logger.Info("fund vault failed", "vault", vaultAddr, "error", err)
		return err
	}

	logger.Info("funded vault", "vault", vaultAddr, "amount", amount)
	return nil
}

// CloseVault closes a vault without users. What is left in the reward pool goes to
// refundAccount and the pool is released. The closed vault record stays, so the address
// can not be initialized again.
func (s *Staking) CloseVault(ctx context.Context, caller, vaultAddr, refundAccount thor.Address) error {
	logger.Debug("closing vault", "vault", vaultAddr, "refund", refundAccount)

	pool, _ := vault.RewardPoolAddress(vaultAddr)
	records := []thor.Address{vaultAddr, pool, refundAccount}
	err := s.execute(ctx, "close_vault", records, func(t *txn) error {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		if v.Authority != caller {
			return reverts.ErrNotAuthority
		}
		if !v.IsReady() {
			return reverts.ErrVaultNotReady
		}
		if v.UserCount != 0 {
			return reverts.ErrVaultNotEmpty
		}

		signer := custody.NewDerivedSigner(vault.RewardSeed, v.RewardBump, vaultAddr.Bytes())
		left, err := t.custody.Amount(pool)
		if err != nil {
			return err
		}
		if left > 0 {
			if err := t.custody.Transfer(pool, refundAccount, left, signer); err != nil {
				return errors.Wrap(err, "failed to refund reward pool")
			}
		}
		if err := t.custody.Close(pool, signer); err != nil {
			return errors.Wrap(err, "failed to close reward pool")
		}

		v.Status = vault.StatusClosed
		return t.vaults.Set(vaultAddr, v)
	})
	if err != nil {
		logger.Info("close vault failed", "vault", vaultAddr, "error", err)
		return err
	}

	logger.Info("closed vault", "vault", vaultAddr)
	return nil
}
