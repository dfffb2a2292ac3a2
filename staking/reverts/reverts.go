// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package reverts

import (
	"errors"
)

// ErrRevert is a business rejection of an operation. Nothing the operation did is kept.
type ErrRevert struct {
	message string
	cause   error
}

func New(message string) *ErrRevert {
	return &ErrRevert{
		message: message,
	}
}

// Wrap turns a rejection raised by a collaborator into a revert. The cause stays
// reachable through errors.Is.
func Wrap(cause error) *ErrRevert {
	return &ErrRevert{
		message: cause.Error(),
		cause:   cause,
	}
}

func (e *ErrRevert) Error() string {
	return e.message
}

func (e *ErrRevert) Unwrap() error {
	return e.cause
}

func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *ErrRevert
	return errors.As(e, &ve)
}

// vault status
var (
	ErrVaultNotReady           = New("vault is not ready")
	ErrVaultNotEmpty           = New("vault still has users")
	ErrCanNotStake             = New("vault does not accept stakes")
	ErrVaultAlreadyInitialized = New("vault already initialized")
	ErrVaultNotFound           = New("vault not found")
)

// capacity and membership
var (
	ErrMaxStakeCountReached    = New("max stake count reached")
	ErrFunderAlreadyFull       = New("funder registry is full")
	ErrAlreadyStakedAccount    = New("account already staked")
	ErrFunderAlreadyAuthorized = New("funder already authorized")
	ErrFunderDoesNotExist      = New("funder does not exist")
	ErrNotStakedAccount        = New("account is not staked")
	ErrUserAlreadyExists       = New("user already exists")
	ErrUserNotFound            = New("user not found")
)

// authorization
var (
	ErrOwnerCanNotBeFunder = New("vault authority can not be a funder")
	ErrNotAuthority        = New("caller is not the vault authority")
	ErrNotFunder           = New("caller is not a funder")
	ErrNotUserOwner        = New("caller does not own the user")
	ErrUserVaultMismatch   = New("user belongs to another vault")
)

// outstanding balances
var (
	ErrEarnedPendingExist     = New("earned reward is pending")
	ErrStakedAccountsExist    = New("user still has staked accounts")
	ErrInsufficientRewardPool = New("insufficient reward pool")
	ErrEmptyStakeAccount      = New("stake account is empty")
)

// arithmetic
var (
	ErrOverflow  = New("arithmetic overflow")
	ErrUnderflow = New("arithmetic underflow")
)

// arguments
var (
	ErrInvalidBump            = New("invalid bump")
	ErrInvalidAmount          = New("invalid amount")
	ErrInvalidDuration        = New("invalid reward duration")
	ErrInvalidStakeTokenCount = New("invalid stake token count")
	ErrInvalidFunder          = New("invalid funder")
	ErrInvalidRewardAccount   = New("reward account can not be the reward pool")
)
