// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults

import (
	"github.com/ethereum/go-ethereum/common/math"

	"github.com/vechain/thor-staking/staking/user"
	"github.com/vechain/thor-staking/staking/vault"
	"github.com/vechain/thor-staking/thor"
)

type Vault struct {
	Address           thor.Address          `json:"address"`
	Authority         thor.Address          `json:"authority"`
	Status            string                `json:"status"`
	Funders           []thor.Address        `json:"funders"`
	UserCount         uint32                `json:"userCount"`
	StakedCount       uint32                `json:"stakedCount"`
	RewardMint        thor.Address          `json:"rewardMint"`
	RewardBump        uint8                 `json:"rewardBump"`
	RewardRate        *math.HexOrDecimal256 `json:"rewardRate"`
	RewardDuration    uint64                `json:"rewardDuration"`
	RewardDurationEnd uint64                `json:"rewardDurationEnd"`
	StakeTokenCount   uint32                `json:"stakeTokenCount"`
}

func convertVault(addr thor.Address, v *vault.Vault) *Vault {
	funders := make([]thor.Address, 0, len(v.Funders))
	for _, f := range v.Funders {
		if !f.IsZero() {
			funders = append(funders, f)
		}
	}
	var rate *math.HexOrDecimal256
	if v.RewardRate != nil {
		rate = (*math.HexOrDecimal256)(v.RewardRate)
	}
	return &Vault{
		Address:           addr,
		Authority:         v.Authority,
		Status:            v.Status.String(),
		Funders:           funders,
		UserCount:         v.UserCount,
		StakedCount:       v.StakedCount,
		RewardMint:        v.RewardMint,
		RewardBump:        v.RewardBump,
		RewardRate:        rate,
		RewardDuration:    v.RewardDuration,
		RewardDurationEnd: v.RewardDurationEnd,
		StakeTokenCount:   v.StakeTokenCount,
	}
}

type User struct {
	Address             thor.Address   `json:"address"`
	Owner               thor.Address   `json:"owner"`
	Vault               thor.Address   `json:"vault"`
	MintAccounts        []thor.Address `json:"mintAccounts"`
	MintStakedCount     uint32         `json:"mintStakedCount"`
	RewardEarnedPending uint64         `json:"rewardEarnedPending"`
	RewardEarnedClaimed uint64         `json:"rewardEarnedClaimed"`
	LastStakeTime       uint64         `json:"lastStakeTime"`
	Bump                uint8          `json:"bump"`
}

func convertUser(addr thor.Address, u *user.User) *User {
	accounts := u.MintAccounts
	if accounts == nil {
		accounts = []thor.Address{}
	}
	return &User{
		Address:             addr,
		Owner:               u.Key,
		Vault:               u.Vault,
		MintAccounts:        accounts,
		MintStakedCount:     u.MintStakedCount,
		RewardEarnedPending: u.RewardEarnedPending,
		RewardEarnedClaimed: u.RewardEarnedClaimed,
		LastStakeTime:       u.LastStakeTime,
		Bump:                u.Bump,
	}
}

// Pending is the reward a user could claim now.
type Pending struct {
	Amount uint64 `json:"amount"`
}

// Pool is the reward pool of a vault. A closed vault has released its pool.
type Pool struct {
	Address thor.Address `json:"address"`
	Bump    uint8        `json:"bump"`
	Balance uint64       `json:"balance"`
	Open    bool         `json:"open"`
}

// Addresses lists the derived addresses of an owner in a vault.
type Addresses struct {
	User             thor.Address `json:"user"`
	UserBump         uint8        `json:"userBump"`
	StakeCustody     thor.Address `json:"stakeCustody"`
	StakeCustodyBump uint8        `json:"stakeCustodyBump"`
}
