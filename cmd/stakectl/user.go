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

var userCommand = cli.Command{
	Name:  "user",
	Usage: "manage the users of a vault",
	Subcommands: []cli.Command{
		{
			Name:   "create",
			Usage:  "create the user of caller in a vault",
			Flags:  []cli.Flag{callerFlag, vaultFlag, bumpFlag},
			Action: createUserAction,
		},
		{
			Name:   "close",
			Usage:  "close the user of caller, it must hold no stake nor pending reward",
			Flags:  []cli.Flag{callerFlag, vaultFlag},
			Action: closeUserAction,
		},
		{
			Name:   "show",
			Usage:  "print a user and its claimable reward",
			Flags:  []cli.Flag{vaultFlag, ownerFlag},
			Action: showUserAction,
		},
		{
			Name:   "list",
			Usage:  "print the owners having a user in a vault",
			Flags:  []cli.Flag{vaultFlag},
			Action: listUsersAction,
		},
	},
}

func createUserAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		_, derived := e.staking.UserAddress(vaultAddr, caller)
		userBump, err := bump(ctx, derived)
		if err != nil {
			return err
		}
		return e.staking.CreateUser(context.Background(), caller, vaultAddr, userBump)
	})
}

func closeUserAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		caller, err := requireAddress(ctx, callerFlag)
		if err != nil {
			return err
		}
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		return e.staking.CloseUser(context.Background(), caller, vaultAddr)
	})
}

func showUserAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		owner, err := requireAddress(ctx, ownerFlag)
		if err != nil {
			return err
		}
		u, err := e.staking.User(context.Background(), vaultAddr, owner)
		if err != nil {
			return err
		}
		pending, err := e.staking.PendingReward(context.Background(), vaultAddr, owner)
		if err != nil {
			return err
		}
		if err := printRecord(ctx, os.Stdout, u); err != nil {
			return err
		}
		fmt.Printf("claimable now: %d\n", pending)
		return nil
	})
}

func listUsersAction(ctx *cli.Context) error {
	return withEnv(ctx, func(e *env) error {
		vaultAddr, err := requireAddress(ctx, vaultFlag)
		if err != nil {
			return err
		}
		owners, err := e.staking.Users(context.Background(), vaultAddr)
		if err != nil {
			return err
		}
		return printRecord(ctx, os.Stdout, owners)
	})
}
