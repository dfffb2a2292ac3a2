// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/thor"
)

const (
	// RewardSeed derives the reward pool address from the vault.
	RewardSeed = "x_token_vault_reward"
	// StakeSeed derives the custody address of staked records from (vault, owner).
	StakeSeed = "x_token_vault_stake"
)

type Status uint8

const (
	StatusUninitialized Status = iota
	StatusInitialized
	StatusClosed
)

func (s Status) String() string {
	switch s {
	case StatusUninitialized:
		return "uninitialized"
	case StatusInitialized:
		return "initialized"
	case StatusClosed:
		return "closed"
	default:
		return "unknown"
	}
}

type Vault struct {
	Authority         thor.Address
	Status            Status
	Funders           []thor.Address // fixed length, zero address marks a free slot
	UserCount         uint32
	StakedCount       uint32
	RewardMint        thor.Address
	RewardBump        uint8
	RewardRate        *big.Int // scaled by reward.CalcPrecision
	RewardDuration    uint64
	RewardDurationEnd uint64
	StakeTokenCount   uint32
}

// RewardPoolAddress returns the address of the reward pool of vault and its canonical nonce.
// The pool account is controlled by the same address.
func RewardPoolAddress(vault thor.Address) (thor.Address, uint8) {
	return thor.FindDerivedAddress(RewardSeed, vault.Bytes())
}

// StakeCustodyAddress returns the address holding the staked records of owner in vault.
func StakeCustodyAddress(vault, owner thor.Address) (thor.Address, uint8) {
	return thor.FindDerivedAddress(StakeSeed, vault.Bytes(), owner.Bytes())
}

// IsReady reports whether the vault accepts operations.
func (v *Vault) IsReady() bool {
	return v.Status == StatusInitialized
}

// Rate returns the reward rate.
func (v *Vault) Rate() *uint256.Int {
	if v.RewardRate == nil {
		return new(uint256.Int)
	}
	rate, _ := uint256.FromBig(v.RewardRate)
	return rate
}

func (v *Vault) SetRate(rate *uint256.Int) {
	v.RewardRate = rate.ToBig()
}

// IsFunder reports whether addr may fund the vault, the authority always may.
func (v *Vault) IsFunder(addr thor.Address) bool {
	if addr == v.Authority {
		return true
	}
	return !addr.IsZero() && v.funderSlot(addr) >= 0
}

func (v *Vault) funderSlot(addr thor.Address) int {
	for i, f := range v.Funders {
		if f == addr {
			return i
		}
	}
	return -1
}

// AuthorizeFunder puts funder into the first free slot.
func (v *Vault) AuthorizeFunder(funder thor.Address) error {
	if funder.IsZero() {
		return reverts.ErrInvalidFunder
	}
	if funder == v.Authority {
		return reverts.ErrOwnerCanNotBeFunder
	}
	if v.funderSlot(funder) >= 0 {
		return reverts.ErrFunderAlreadyAuthorized
	}
	free := v.funderSlot(thor.Address{})
	if free < 0 {
		return reverts.ErrFunderAlreadyFull
	}
	v.Funders[free] = funder
	return nil
}

// UnauthorizeFunder frees the slot of funder.
func (v *Vault) UnauthorizeFunder(funder thor.Address) error {
	if funder.IsZero() {
		return reverts.ErrFunderDoesNotExist
	}
	slot := v.funderSlot(funder)
	if slot < 0 {
		return reverts.ErrFunderDoesNotExist
	}
	v.Funders[slot] = thor.Address{}
	return nil
}

func (v *Vault) AddUser() error {
	if v.UserCount == ^uint32(0) {
		return errors.WithMessage(reverts.ErrOverflow, "vault user count")
	}
	v.UserCount++
	return nil
}

func (v *Vault) RemoveUser() error {
	if v.UserCount == 0 {
		return errors.WithMessage(reverts.ErrUnderflow, "vault user count")
	}
	v.UserCount--
	return nil
}

func (v *Vault) AddStaked() error {
	if v.StakedCount == ^uint32(0) {
		return errors.WithMessage(reverts.ErrOverflow, "vault staked count")
	}
	v.StakedCount++
	return nil
}

func (v *Vault) RemoveStaked() error {
	if v.StakedCount == 0 {
		return errors.WithMessage(reverts.ErrUnderflow, "vault staked count")
	}
	v.StakedCount--
	return nil
}
