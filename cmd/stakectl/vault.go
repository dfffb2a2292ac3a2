// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"context"
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"
)

var vaultCommand = cli.Command{
	Name:  "vault",
	Usage: "manage reward vaults",
	Subcommands: []cli.Command{
		{
			Name:   "create",
			Usage:  "initialize a vault",
			Flags:  []cli.Flag{callerFlag, vaultFlag, mintFlag, durationFlag, tokensFlag, bumpFlag},
			Action: createVaultAction,
		},
		{
			Name:   "authorize",
			Usage:  "add a funder to a vault",
			Flags:  []cli.Flag{callerFlag, vaultFlag, funderFlag},
			Action: authorizeFunderAction,
		},
		{
			Name:   "unauthorize",
			Usage:  "remove a funder from a vault",
			Flags:  []cli.Flag{callerFlag, vaultFlag, funderFlag},
			Action: unauthorizeFunderAction,
		},
		{
			Name:   "fund",
			Usage:  "move tokens into the reward pool and restart the reward window",
			Flags:  []cli.Flag{callerFlag, vaultFlag, accountFlag, amountFlag},
			Action: fundVaultAction,
		},
		{
			Name:   "close",
			Usage:  "close a vault without users and refund its reward pool",
			Flags:  []cli.Flag{callerFlag, vaultFlag, accountFlag},
			Action: closeVaultAction,
		},
		{
			Name:   "show",
			Usage:  "print a vault and its reward pool balance",
			Flags:  []cli.Flag{vaultFlag},
			Action: showVaultAction,
		},
	},
}

func createVaultAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		mint, err := requireAddress(ctx, mintFlag)
		if err != nil {
			return err
		}
		_, derived := e.staking.RewardPoolAddress(vaultAddr)
		rewardBump, err := bump(ctx, derived)
		if err != nil {
			return err
		}

		tokens := ctx.Uint(tokensFlag.Name)
		if tokens > uint(^uint32(0)) {
			return fmt.Errorf("flag --%v out of range: %d", tokensFlag.Name, tokens)
		}
		return e.staking.CreateVault(
			context.Background(),
			caller,
			vaultAddr,
			mint,
			rewardBump,
			ctx.Uint64(durationFlag.Name),
			uint32(tokens),
		)
	})
}

func authorizeFunderAction(ctx *cli.Context) error {
	return controlFunderAction(ctx, true)
}

func unauthorizeFunderAction(ctx *cli.Context) error {
	return controlFunderAction(ctx, false)
}

func controlFunderAction(ctx *cli.Context, authorize bool) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		funder, err := requireAddress(ctx, funderFlag)
		if err != nil {
			return err
		}
		if authorize {
			return e.staking.AuthorizeFunder(context.Background(), caller, vaultAddr, funder)
		}
		return e.staking.UnauthorizeFunder(context.Background(), caller, vaultAddr, funder)
	})
}

func fundVaultAction(ctx *cli.Context) error {
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
		return e.staking.Fund(context.Background(), caller, vaultAddr, account, ctx.Uint64(amountFlag.Name))
	})
}

func closeVaultAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		refund, err := requireAddress(ctx, accountFlag)
		if err != nil {
			return err
		}
		return e.staking.CloseVault(context.Background(), caller, vaultAddr, refund)
	})
}

func showVaultAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		v, err := e.staking.Vault(context.Background(), vaultAddr)
		if err != nil {
			return err
		}
		balance, err := e.staking.RewardPoolBalance(context.Background(), vaultAddr)
		if err != nil {
			return err
		}
		pool, _ := e.staking.RewardPoolAddress(vaultAddr)
		if err := printRecord(ctx, os.Stdout, v); err != nil {
			return err
		}
		fmt.Printf("reward pool %v holds %d\n", pool, balance)
		return nil
	})
}
