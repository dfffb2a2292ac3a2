// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package staking

import (
	"fmt"
	"slices"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/staking/user"
	"github.com/vechain/thor-staking/staking/vault"
	"github.com/vechain/thor-staking/test/datagen"
	"github.com/vechain/thor-staking/thor"
)

type opKind uint8

const (
	opCreateUser opKind = iota
	opStake
	opUnstake
	opClaim
	opCloseUser
	opFund
	opAdvance
	opCount
)

func (k opKind) String() string {
	return [...]string{"create-user", "stake", "unstake", "claim", "close-user", "fund", "advance"}[k]
}

type op struct {
	Kind   uint8
	Actor  uint8
	Pick   uint8
	Amount uint16
}

// sequence drives one vault with random operations and keeps its own view of the live users.
type sequence struct {
	*StakingTest
	vault     thor.Address
	authority thor.Address
	owners    []thor.Address
	live      map[thor.Address]bool
	pending   map[thor.Address]uint64
}

func (s *sequence) apply(o op) error {
	owner := s.owners[int(o.Actor)%len(s.owners)]
	switch opKind(o.Kind) % opCount {
	case opCreateUser:
		_, bump := user.Address(s.vault, owner)
		err := s.CreateUser(s.ctx, owner, s.vault, bump)
		if err == nil {
			s.live[owner] = true
			s.pending[owner] = 0
		}
		return err
	case opStake:
		record := s.Mint(stakeMint, owner, uint64(o.Amount)+1)
		return s.Stake(s.ctx, owner, s.vault, record)
	case opUnstake:
		if !s.live[owner] {
			return nil
		}
		staked := s.GetUser(s.vault, owner).MintAccounts
		if len(staked) == 0 {
			return nil
		}
		return s.UnstakeRecord(s.vault, owner, staked[int(o.Pick)%len(staked)])
	case opClaim:
		account := s.Mint(rewardMint, owner, 0)
		_, err := s.Claim(s.ctx, owner, s.vault, account)
		if err == nil {
			s.pending[owner] = 0
		}
		return err
	case opCloseUser:
		err := s.CloseUser(s.ctx, owner, s.vault)
		if err == nil {
			delete(s.live, owner)
			delete(s.pending, owner)
		}
		return err
	case opFund:
		account := s.Mint(rewardMint, s.authority, uint64(o.Amount)+1)
		return s.Fund(s.ctx, s.authority, s.vault, account, uint64(o.Amount)+1)
	default:
		s.Advance(uint64(o.Amount % 64))
		return nil
	}
}

// check asserts the invariants that must hold after every operation.
func (s *sequence) check(t *testing.T, step int) {
	v := s.GetVault(s.vault)

	var staked uint32
	for owner := range s.live {
		u := s.GetUser(s.vault, owner)
		staked += u.MintStakedCount

		assert.Len(t, u.MintAccounts, int(u.MintStakedCount), "step %d: stake list out of step", step)
		assert.LessOrEqual(t, u.MintStakedCount, s.config.MaxMintLimit, "step %d", step)
		sorted := slices.Clone(u.MintAccounts)
		slices.SortFunc(sorted, func(a, b thor.Address) int { return slices.Compare(a[:], b[:]) })
		assert.Len(t, slices.Compact(sorted), len(u.MintAccounts), "step %d: duplicate staked record", step)

		assert.GreaterOrEqual(t, u.RewardEarnedPending, s.pending[owner], "step %d: pending reward went down", step)
		s.pending[owner] = u.RewardEarnedPending
	}
	assert.Equal(t, staked, v.StakedCount, "step %d: vault staked count", step)
	assert.Equal(t, uint32(len(s.live)), v.UserCount, "step %d: vault user count", step)

	owners, err := s.Users(s.ctx, s.vault)
	require.NoError(t, err)
	assert.Len(t, owners, len(s.live), "step %d: user listing", step)
	for _, owner := range owners {
		assert.True(t, s.live[owner], "step %d: listed owner without user", step)
	}

	seen := make(map[thor.Address]bool)
	for _, f := range v.Funders {
		if f.IsZero() {
			continue
		}
		assert.False(t, seen[f], "step %d: duplicate funder", step)
		assert.NotEqual(t, v.Authority, f, "step %d: authority in funders", step)
		seen[f] = true
	}
}

func TestRandomSequences(t *testing.T) {
	for seed := range int64(8) {
		t.Run(fmt.Sprintf("seed-%d", seed), func(t *testing.T) {
			ts := newTest(t, thor.Config{FunderCapacity: 3, MaxMintLimit: 4})
			authority := datagen.RandAddress()
			seq := &sequence{
				StakingTest: ts,
				vault:       ts.NewVault(authority, 20, 2),
				authority:   authority,
				owners:      datagen.RandAddresses(3),
				live:        make(map[thor.Address]bool),
				pending:     make(map[thor.Address]uint64),
			}

			var ops []op
			fuzz.NewWithSeed(seed).NilChance(0).NumElements(100, 200).Fuzz(&ops)
			for i, o := range ops {
				err := seq.apply(o)
				if err != nil {
					require.True(t, reverts.IsRevertErr(err), "step %d %v: unexpected error %v", i, opKind(o.Kind)%opCount, err)
				}
				seq.check(t, i)
			}

			// wind down: everyone unstakes, claims and leaves
			for owner := range seq.live {
				for _, record := range seq.GetUser(seq.vault, owner).MintAccounts {
					require.NoError(t, seq.UnstakeRecord(seq.vault, owner, record))
				}
				pending, err := seq.PendingReward(ts.ctx, seq.vault, owner)
				require.NoError(t, err)
				if pool, _ := seq.RewardPoolBalance(ts.ctx, seq.vault); pool < pending {
					account := seq.Mint(rewardMint, authority, pending)
					require.NoError(t, seq.Fund(ts.ctx, authority, seq.vault, account, pending))
				}
				_, err = seq.Claim(ts.ctx, owner, seq.vault, seq.Mint(rewardMint, owner, 0))
				require.NoError(t, err)
				require.NoError(t, seq.CloseUser(ts.ctx, owner, seq.vault))
			}
			ts.AssertCounts(seq.vault, 0, 0)
			require.NoError(t, seq.CloseVault(ts.ctx, authority, seq.vault, seq.Mint(rewardMint, authority, 0)))
			assert.Equal(t, vault.StatusClosed, seq.GetVault(seq.vault).Status)
		})
	}
}
