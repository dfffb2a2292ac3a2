// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/clock"
	"github.com/vechain/thor-staking/custody"
	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/staking/reward"
	"github.com/vechain/thor-staking/staking/user"
	"github.com/vechain/thor-staking/staking/vault"
	"github.com/vechain/thor-staking/test/datagen"
	"github.com/vechain/thor-staking/thor"
)

const (
	startTime       = uint64(1_700_000_000)
	defaultDuration = uint64(10)
	defaultTokens   = uint32(1)
)

var (
	rewardMint = thor.BytesToAddress([]byte("reward-mint"))
	stakeMint  = thor.BytesToAddress([]byte("stake-mint"))
)

type StakingTest struct {
	*Staking
	t      *testing.T
	ctx    context.Context
	clock  *clock.Manual
	ledger *ledger.Ledger
}

func newTest(t *testing.T, config thor.Config) *StakingTest {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l, err := ledger.New(db, 0)
	require.NoError(t, err)

	clk := clock.NewManual(startTime)
	return &StakingTest{
		Staking: New(l, clk, config),
		t:       t,
		ctx:     context.Background(),
		clock:   clk,
		ledger:  l,
	}
}

// Advance moves the clock forward by `seconds`
func (ts *StakingTest) Advance(seconds uint64) *StakingTest {
	ts.clock.Advance(seconds)
	return ts
}

// Mint credits `amount` of `mint` to a new random account owned by `owner` and returns the account
func (ts *StakingTest) Mint(mint, owner thor.Address, amount uint64) thor.Address {
	account := datagen.RandAddress()
	ts.MintTo(account, mint, owner, amount)
	return account
}

func (ts *StakingTest) MintTo(account, mint, owner thor.Address, amount uint64) {
	err := ts.ledger.Execute(ts.ctx, []thor.Address{account}, func(c *ledger.Context) error {
		return custody.New(c).Mint(account, mint, owner, amount)
	})
	require.NoError(ts.t, err, "failed to mint")
}

func (ts *StakingTest) Account(addr thor.Address) *custody.Account {
	var acc *custody.Account
	err := ts.ledger.View(ts.ctx, []thor.Address{addr}, func(c *ledger.Context) (err error) {
		acc, err = custody.New(c).Get(addr)
		return err
	})
	require.NoError(ts.t, err, "failed to get account")
	return acc
}

// NewVault creates a vault with `authority` and returns its address
func (ts *StakingTest) NewVault(authority thor.Address, duration uint64, tokens uint32) thor.Address {
	vaultAddr := datagen.RandAddress()
	_, bump := vault.RewardPoolAddress(vaultAddr)
	require.NoError(ts.t, ts.CreateVault(ts.ctx, authority, vaultAddr, rewardMint, bump, duration, tokens))
	return vaultAddr
}

// NewUser creates the user of `owner` in `vaultAddr`
func (ts *StakingTest) NewUser(vaultAddr, owner thor.Address) *StakingTest {
	_, bump := user.Address(vaultAddr, owner)
	require.NoError(ts.t, ts.CreateUser(ts.ctx, owner, vaultAddr, bump))
	return ts
}

// FundVault mints `amount` reward tokens to `funder` and funds the vault with them
func (ts *StakingTest) FundVault(vaultAddr, funder thor.Address, amount uint64) *StakingTest {
	account := ts.Mint(rewardMint, funder, amount)
	require.NoError(ts.t, ts.Fund(ts.ctx, funder, vaultAddr, account, amount))
	return ts
}

// StakeNew mints a stake record for `owner` and stakes it
func (ts *StakingTest) StakeNew(vaultAddr, owner thor.Address) thor.Address {
	record := ts.Mint(stakeMint, owner, 1)
	require.NoError(ts.t, ts.Stake(ts.ctx, owner, vaultAddr, record))
	return record
}

func (ts *StakingTest) UnstakeRecord(vaultAddr, owner, record thor.Address) error {
	_, bump := vault.StakeCustodyAddress(vaultAddr, owner)
	return ts.Unstake(ts.ctx, owner, vaultAddr, record, bump)
}

// setPending overwrites the pending reward of the user, for tests of teardown rules
func (ts *StakingTest) setPending(vaultAddr, owner thor.Address, pending uint64) {
	userAddr, _ := user.Address(vaultAddr, owner)
	err := ts.ledger.Execute(ts.ctx, []thor.Address{userAddr}, func(c *ledger.Context) error {
		svc := user.New(c)
		u, err := svc.Get(userAddr)
		if err != nil {
			return err
		}
		u.RewardEarnedPending = pending
		return svc.Set(userAddr, u)
	})
	require.NoError(ts.t, err)
}

func (ts *StakingTest) GetVault(vaultAddr thor.Address) *vault.Vault {
	v, err := ts.Vault(ts.ctx, vaultAddr)
	require.NoError(ts.t, err, "failed to get vault")
	return v
}

func (ts *StakingTest) GetUser(vaultAddr, owner thor.Address) *user.User {
	u, err := ts.User(ts.ctx, vaultAddr, owner)
	require.NoError(ts.t, err, "failed to get user")
	return u
}

func (ts *StakingTest) AssertCounts(vaultAddr thor.Address, users, staked uint32) *StakingTest {
	v := ts.GetVault(vaultAddr)
	assert.Equal(ts.t, users, v.UserCount, "user count mismatch")
	assert.Equal(ts.t, staked, v.StakedCount, "staked count mismatch")
	return ts
}

func (ts *StakingTest) AssertUser(vaultAddr, owner thor.Address, staked uint32, pending, claimed uint64) *StakingTest {
	u := ts.GetUser(vaultAddr, owner)
	assert.Equal(ts.t, staked, u.MintStakedCount, "staked count mismatch")
	assert.Len(ts.t, u.MintAccounts, int(u.MintStakedCount), "stake list out of step")
	assert.Equal(ts.t, pending, u.RewardEarnedPending, "pending reward mismatch")
	assert.Equal(ts.t, claimed, u.RewardEarnedClaimed, "claimed reward mismatch")
	return ts
}

func (ts *StakingTest) AssertPoolBalance(vaultAddr thor.Address, expected uint64) *StakingTest {
	amount, err := ts.RewardPoolBalance(ts.ctx, vaultAddr)
	require.NoError(ts.t, err)
	assert.Equal(ts.t, expected, amount, "reward pool balance mismatch")
	return ts
}

// perTokenRate is the reward per stake token per second a fund of amount yields on a fresh vault.
func perTokenRate(t *testing.T, amount, duration uint64, tokens uint32) uint64 {
	rate, err := reward.Rate(amount, 0, duration, tokens)
	require.NoError(t, err)
	return rate.Uint64() / reward.CalcPrecision
}
