// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-staking/custody"
	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/thor"
)

var (
	stakeCommand = cli.Command{
		Name:   "stake",
		Usage:  "put a record into the custody of a vault",
		Flags:  []cli.Flag{callerFlag, vaultFlag, recordFlag},
		Action: stakeAction,
	}
	unstakeCommand = cli.Command{
		Name:   "unstake",
		Usage:  "take a staked record back",
		Flags:  []cli.Flag{callerFlag, vaultFlag, recordFlag, bumpFlag},
		Action: unstakeAction,
	}
	claimCommand = cli.Command{
		Name:   "claim",
		Usage:  "pay the pending reward of caller out to a token account",
		Flags:  []cli.Flag{callerFlag, vaultFlag, accountFlag},
		Action: claimAction,
	}
	mintCommand = cli.Command{
		Name:   "mint",
		Usage:  "credit tokens to an account, opening it when missing",
		Flags:  []cli.Flag{accountFlag, mintFlag, ownerFlag, amountFlag},
		Action: mintAction,
	}
	addrCommand = cli.Command{
		Name:   "addr",
		Usage:  "print the derived addresses of an owner in a vault",
		Flags:  []cli.Flag{vaultFlag, ownerFlag},
		Action: addrAction,
	}
)

func stakeAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		record, err := requireAddress(ctx, recordFlag)
		if err != nil {
			return err
		}
		return e.staking.Stake(context.Background(), caller, vaultAddr, record)
	})
}

func unstakeAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		record, err := requireAddress(ctx, recordFlag)
		if err != nil {
			return err
		}
		_, derived := e.staking.StakeCustodyAddress(vaultAddr, caller)
		stakeBump, err := bump(ctx, derived)
		if err != nil {
			return err
		}
		return e.staking.Unstake(context.Background(), caller, vaultAddr, record, stakeBump)
	})
}

func claimAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		account, err := requireAddress(ctx, accountFlag)
		if err != nil {
			return err
		}
		amount, err := e.staking.Claim(context.Background(), caller, vaultAddr, account)
		if err != nil {
			return err
		}
		fmt.Printf("claimed %d\n", amount)
		return nil
	})
}

func mintAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		account, err := requireAddress(ctx, accountFlag)
		if err != nil {
			return err
		}
		mint, err := requireAddress(ctx, mintFlag)
		if err != nil {
			return err
		}
		owner, err := requireAddress(ctx, ownerFlag)
		if err != nil {
			return err
		}
		amount := ctx.Uint64(amountFlag.Name)
		return e.ledger.Execute(context.Background(), []thor.Address{account}, func(c *ledger.Context) error {
			return custody.New(c).Mint(account, mint, owner, amount)
		})
	})
}

func addrAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		pool, poolBump := e.staking.RewardPoolAddress(vaultAddr)
		fmt.Printf("reward pool:   %v (bump %d)\n", pool, poolBump)

		if ctx.String(ownerFlag.Name) == "" {
			return nil
		}
		owner, err := requireAddress(ctx, ownerFlag)
		if err != nil {
			return err
		}
		userAddr, userBump := e.staking.UserAddress(vaultAddr, owner)
		custodyAddr, custodyBump := e.staking.StakeCustodyAddress(vaultAddr, owner)
		fmt.Printf("user:          %v (bump %d)\n", userAddr, userBump)
		fmt.Printf("stake custody: %v (bump %d)\n", custodyAddr, custodyBump)
		return nil
	})
}
