// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward implements reward accrual. All products are formed in 256 bits, so the
// chain of multiplications can only fail on the final narrowing.
package reward

import (
	"github.com/holiman/uint256"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/staking/user"
)

// CalcPrecision is the fixed point scale of reward rates.
const CalcPrecision = 1_000_000

// maxRateBits bounds a stored reward rate.
const maxRateBits = 128

var precision = uint256.NewInt(CalcPrecision)

// Earned returns pending plus the reward accrued by staked records over elapsed seconds:
//
//	(rate / CalcPrecision) * staked * elapsed + pending
//
// The rate is scaled down first, so the fractional part of rate/CalcPrecision is dropped.
func Earned(elapsed uint64, staked uint32, rate *uint256.Int, pending uint64) (uint64, error) {
	perToken := new(uint256.Int).Div(rate, precision)

	acc, overflow := new(uint256.Int).MulOverflow(perToken, uint256.NewInt(uint64(staked)))
	if overflow {
		return 0, errors.WithMessage(reverts.ErrOverflow, "earned reward")
	}
	if _, overflow = acc.MulOverflow(acc, uint256.NewInt(elapsed)); overflow {
		return 0, errors.WithMessage(reverts.ErrOverflow, "earned reward")
	}
	if _, overflow = acc.AddOverflow(acc, uint256.NewInt(pending)); overflow {
		return 0, errors.WithMessage(reverts.ErrOverflow, "earned reward")
	}
	if !acc.IsUint64() {
		return 0, errors.WithMessage(reverts.ErrOverflow, "earned reward")
	}
	return acc.Uint64(), nil
}

// Settle brings the pending reward of u up to now. A now earlier than the last settlement
// accrues nothing and leaves LastStakeTime where it is.
// It must run before any change of u.MintStakedCount, so the old count is charged for
// the elapsed time.
func Settle(now uint64, rate *uint256.Int, u *user.User) error {
	var elapsed uint64
	if now > u.LastStakeTime {
		elapsed = now - u.LastStakeTime
	}

	pending, err := Earned(elapsed, u.MintStakedCount, rate, u.RewardEarnedPending)
	if err != nil {
		return err
	}
	u.RewardEarnedPending = pending
	u.LastStakeTime = max(u.LastStakeTime, now)
	return nil
}

// Rate computes the reward rate spreading amount plus leftover over duration seconds and
// tokens stake tokens:
//
//	(amount + leftover) * CalcPrecision / duration / tokens
func Rate(amount, leftover, duration uint64, tokens uint32) (*uint256.Int, error) {
	if duration == 0 {
		return nil, reverts.ErrInvalidDuration
	}
	if tokens == 0 {
		return nil, reverts.ErrInvalidStakeTokenCount
	}

	rate := new(uint256.Int).Add(uint256.NewInt(amount), uint256.NewInt(leftover))
	rate.Mul(rate, precision)
	rate.Div(rate, uint256.NewInt(duration))
	rate.Div(rate, uint256.NewInt(uint64(tokens)))
	if rate.BitLen() > maxRateBits {
		return nil, errors.WithMessage(reverts.ErrOverflow, "reward rate")
	}
	return rate, nil
}

// Leftover returns the part of the running funding window that is not yet distributed:
//
//	(end - now) * rate * tokens / CalcPrecision
//
// It is zero once the window ended.
func Leftover(now, end uint64, rate *uint256.Int, tokens uint32) (uint64, error) {
	if now >= end {
		return 0, nil
	}
	left, overflow := new(uint256.Int).MulOverflow(uint256.NewInt(end-now), rate)
	if overflow {
		return 0, errors.WithMessage(reverts.ErrOverflow, "reward leftover")
	}
	if _, overflow = left.MulOverflow(left, uint256.NewInt(uint64(tokens))); overflow {
		return 0, errors.WithMessage(reverts.ErrOverflow, "reward leftover")
	}
	left.Div(left, precision)
	if !left.IsUint64() {
		return 0, errors.WithMessage(reverts.ErrOverflow, "reward leftover")
	}
	return left.Uint64(), nil
}
