// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package user

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/thor"
)

// Seed derives user record addresses from (vault, owner).
const Seed = "x_token_vault_user"

// User is the state of one participant within one vault.
type User struct {
	Key                 thor.Address   // the owner, immutable
	Vault               thor.Address   // the vault the user belongs to, immutable
	MintAccounts        []thor.Address // staked records, no duplicates
	MintStakedCount     uint32         // always len(MintAccounts)
	RewardEarnedPending uint64
	RewardEarnedClaimed uint64
	LastStakeTime       uint64 // time of the last settlement, never moves backwards
	Bump                uint8
}

// Address returns the record address of the user of owner in vault, with its canonical nonce.
func Address(vault, owner thor.Address) (thor.Address, uint8) {
	return thor.FindDerivedAddress(Seed, vault.Bytes(), owner.Bytes())
}

// HasStaked reports whether record is in the stake list.
func (u *User) HasStaked(record thor.Address) bool {
	return slices.Contains(u.MintAccounts, record)
}

// IsFull reports whether the stake list reached limit.
func (u *User) IsFull(limit uint32) bool {
	return uint32(len(u.MintAccounts)) >= limit
}

// AddStake appends record to the stake list. Rewards must be settled before.
func (u *User) AddStake(record thor.Address) error {
	if u.HasStaked(record) {
		return reverts.ErrAlreadyStakedAccount
	}
	if u.MintStakedCount == ^uint32(0) {
		return errors.WithMessage(reverts.ErrOverflow, "user staked count")
	}
	u.MintAccounts = append(u.MintAccounts, record)
	u.MintStakedCount++
	return nil
}

// RemoveStake drops record from the stake list. Rewards must be settled before.
func (u *User) RemoveStake(record thor.Address) error {
	idx := slices.Index(u.MintAccounts, record)
	if idx < 0 {
		return reverts.ErrNotStakedAccount
	}
	if u.MintStakedCount == 0 {
		return errors.WithMessage(reverts.ErrUnderflow, "user staked count")
	}
	u.MintAccounts = slices.Delete(u.MintAccounts, idx, idx+1)
	u.MintStakedCount--
	return nil
}

// Claim moves the pending reward into the claimed total and returns the moved amount.
func (u *User) Claim() (uint64, error) {
	amount := u.RewardEarnedPending
	claimed := u.RewardEarnedClaimed + amount
	if claimed < u.RewardEarnedClaimed {
		return 0, errors.WithMessage(reverts.ErrOverflow, "user claimed reward")
	}
	u.RewardEarnedClaimed = claimed
	u.RewardEarnedPending = 0
	return amount, nil
}
