// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/clock"
	"github.com/vechain/thor-staking/custody"
	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/metrics"
	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/staking/reward"
	"github.com/vechain/thor-staking/staking/user"
	"github.com/vechain/thor-staking/staking/vault"
	"github.com/vechain/thor-staking/thor"
)

var (
	logger = log.WithContext("pkg", "staking")

	metricOpCount    = metrics.LazyLoadCounterVec("staking_op_count", []string{"op", "result"})
	metricOpDuration = metrics.LazyLoadHistogramVec("staking_op_duration_us", []string{"op"}, metrics.BucketMicros)
)

func SetLogger(l log.Logger) {
	logger = l
}

// Custody moves token accounts within one ledger transaction.
type Custody interface {
	Amount(account thor.Address) (uint64, error)
	Open(account, mint, owner thor.Address) error
	Close(account thor.Address, signer custody.Signer) error
	TransferControl(account thor.Address, signer custody.Signer, to thor.Address) error
	Transfer(from, to thor.Address, amount uint64, signer custody.Signer) error
}

// custodyRejections are the custody failures caused by the request rather than by the
// custody service itself.
var custodyRejections = []error{
	custody.ErrNotOwner,
	custody.ErrInsufficientBalance,
	custody.ErrMintMismatch,
	custody.ErrAccountNotFound,
	custody.ErrAccountExists,
	custody.ErrAccountNotEmpty,
	custody.ErrInvalidSigner,
	custody.ErrSelfTransfer,
	custody.ErrBalanceOverflow,
}

func rejection(err error) error {
	if err == nil {
		return nil
	}
	for _, r := range custodyRejections {
		if errors.Is(err, r) {
			return reverts.Wrap(err)
		}
	}
	return err
}

// revertingCustody reports custody rejections as reverts.
type revertingCustody struct {
	Custody
}

func (c revertingCustody) Amount(account thor.Address) (uint64, error) {
	amount, err := c.Custody.Amount(account)
	return amount, rejection(err)
}

func (c revertingCustody) Open(account, mint, owner thor.Address) error {
	return rejection(c.Custody.Open(account, mint, owner))
}

func (c revertingCustody) Close(account thor.Address, signer custody.Signer) error {
	return rejection(c.Custody.Close(account, signer))
}

func (c revertingCustody) TransferControl(account thor.Address, signer custody.Signer, to thor.Address) error {
	return rejection(c.Custody.TransferControl(account, signer, to))
}

func (c revertingCustody) Transfer(from, to thor.Address, amount uint64, signer custody.Signer) error {
	return rejection(c.Custody.Transfer(from, to, amount, signer))
}

// Staking runs the vault operations. Every operation is one ledger transaction over the
// records it names: it either commits completely or leaves no trace.
type Staking struct {
	ledger     *ledger.Ledger
	clock      clock.Clock
	config     thor.Config
	newCustody func(*ledger.Context) Custody
}

// New creates the engine. Zero config fields take their defaults.
func New(l *ledger.Ledger, clk clock.Clock, config thor.Config) *Staking {
	return &Staking{
		ledger: l,
		clock:  clk,
		config: config.WithDefaults(),
		newCustody: func(c *ledger.Context) Custody {
			return custody.New(c)
		},
	}
}

// Config returns the effective engine config.
func (s *Staking) Config() thor.Config {
	return s.config
}

// txn is the set of services bound to one ledger transaction.
type txn struct {
	vaults  *vault.Service
	users   *user.Service
	custody Custody
}

func (s *Staking) execute(ctx context.Context, op string, records []thor.Address, fn func(*txn) error) error {
	start := time.Now()
	err := s.ledger.Execute(ctx, records, func(c *ledger.Context) error {
		return fn(&txn{
			vaults:  vault.New(c),
			users:   user.New(c),
			custody: revertingCustody{s.newCustody(c)},
		})
	})

	result := "ok"
	if err != nil {
		result = "error"
		if reverts.IsRevertErr(err) {
			result = "revert"
		}
	}
	metricOpCount().AddWithLabel(1, map[string]string{"op": op, "result": result})
	metricOpDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"op": op})
	return err
}

func (s *Staking) view(ctx context.Context, records []thor.Address, fn func(*txn) error) error {
	return s.ledger.View(ctx, records, func(c *ledger.Context) error {
		return fn(&txn{
			vaults:  vault.New(c),
			users:   user.New(c),
			custody: revertingCustody{s.newCustody(c)},
		})
	})
}

// getUser loads the user of caller in vaultAddr and checks it belongs to both.
func (t *txn) getUser(userAddr, vaultAddr, caller thor.Address) (*user.User, error) {
	u, err := t.users.Get(userAddr)
	if err != nil {
		return nil, err
	}
	if u.Key != caller {
		return nil, reverts.ErrNotUserOwner
	}
	if u.Vault != vaultAddr {
		return nil, reverts.ErrUserVaultMismatch
	}
	return u, nil
}

//
// Getters - no state change
//

// UserAddress returns the record address of the user of owner in vault and its bump.
func (s *Staking) UserAddress(vaultAddr, owner thor.Address) (thor.Address, uint8) {
	return user.Address(vaultAddr, owner)
}

// StakeCustodyAddress returns the address controlling the records owner staked in vault, and its bump.
func (s *Staking) StakeCustodyAddress(vaultAddr, owner thor.Address) (thor.Address, uint8) {
	return vault.StakeCustodyAddress(vaultAddr, owner)
}

// RewardPoolAddress returns the reward pool account of vault and its bump.
func (s *Staking) RewardPoolAddress(vaultAddr thor.Address) (thor.Address, uint8) {
	return vault.RewardPoolAddress(vaultAddr)
}

// Vault returns the vault stored at vaultAddr.
func (s *Staking) Vault(ctx context.Context, vaultAddr thor.Address) (*vault.Vault, error) {
	var v *vault.Vault
	err := s.view(ctx, []thor.Address{vaultAddr}, func(t *txn) (err error) {
		v, err = t.vaults.GetExisting(vaultAddr)
		return err
	})
	return v, err
}

// User returns the user of owner in vaultAddr.
func (s *Staking) User(ctx context.Context, vaultAddr, owner thor.Address) (*user.User, error) {
	userAddr, _ := user.Address(vaultAddr, owner)

	var u *user.User
	err := s.view(ctx, []thor.Address{userAddr}, func(t *txn) (err error) {
		u, err = t.users.Get(userAddr)
		return err
	})
	return u, err
}

// PendingReward returns the reward owner could claim now, without settling it.
func (s *Staking) PendingReward(ctx context.Context, vaultAddr, owner thor.Address) (uint64, error) {
	userAddr, _ := user.Address(vaultAddr, owner)

	var pending uint64
	err := s.view(ctx, []thor.Address{vaultAddr, userAddr}, func(t *txn) error {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		u, err := t.getUser(userAddr, vaultAddr, owner)
		if err != nil {
			return err
		}
		if err := reward.Settle(s.clock.Now(), v.Rate(), u); err != nil {
			return err
		}
		pending = u.RewardEarnedPending
		return nil
	})
	return pending, err
}

// RewardPoolBalance returns the amount left in the reward pool of vaultAddr. A closed
// vault has released its pool and reports 0.
func (s *Staking) RewardPoolBalance(ctx context.Context, vaultAddr thor.Address) (uint64, error) {
	pool, _ := vault.RewardPoolAddress(vaultAddr)

	var amount uint64
	err := s.view(ctx, []thor.Address{vaultAddr, pool}, func(t *txn) (err error) {
		v, err := t.vaults.GetExisting(vaultAddr)
		if err != nil {
			return err
		}
		if v.Status == vault.StatusClosed {
			return nil
		}
		amount, err = t.custody.Amount(pool)
		return err
	})
	return amount, err
}

// Users returns the owners having a user in vaultAddr, in address order.
func (s *Staking) Users(ctx context.Context, vaultAddr thor.Address) ([]thor.Address, error) {
	if _, err := s.Vault(ctx, vaultAddr); err != nil {
		return nil, err
	}

	owners := make([]thor.Address, 0)
	err := s.ledger.Members(ctx, user.IndexName, vaultAddr, func(member []byte) bool {
		owners = append(owners, thor.BytesToAddress(member))
		return true
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list users")
	}
	return owners, nil
}
