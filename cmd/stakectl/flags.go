// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"
)

var (
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml config file, flags take precedence over its values",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory for the ledger database",
	}
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: 2,
		Usage: "log verbosity (0-4)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	funderCapacityFlag = cli.UintFlag{
		Name:  "funder-capacity",
		Usage: "number of funder slots of a new vault",
	}
	maxMintLimitFlag = cli.UintFlag{
		Name:  "max-mint-limit",
		Usage: "max number of records a user can stake",
	}
	ntpServerFlag = cli.StringFlag{
		Name:  "ntp-server",
		Value: "pool.ntp.org",
		Usage: "ntp server used to check the local clock, empty to skip the check",
	}
	dumpFlag = cli.BoolFlag{
		Name:  "dump",
		Usage: "dump records in go syntax instead of JSON",
	}

	callerFlag = cli.StringFlag{
		Name:  "caller",
		Usage: "address signing the operation",
	}
	vaultFlag = cli.StringFlag{
		Name:  "vault",
		Usage: "vault address",
	}
	ownerFlag = cli.StringFlag{
		Name:  "owner",
		Usage: "user owner address",
	}
	mintFlag = cli.StringFlag{
		Name:  "mint",
		Usage: "token mint address",
	}
	funderFlag = cli.StringFlag{
		Name:  "funder",
		Usage: "funder address",
	}
	accountFlag = cli.StringFlag{
		Name:  "account",
		Usage: "token account address",
	}
	recordFlag = cli.StringFlag{
		Name:  "record",
		Usage: "stake record address",
	}
	amountFlag = cli.Uint64Flag{
		Name:  "amount",
		Usage: "token amount",
	}
	durationFlag = cli.Uint64Flag{
		Name:  "duration",
		Usage: "reward window in seconds",
	}
	tokensFlag = cli.UintFlag{
		Name:  "tokens",
		Value: 1,
		Usage: "stake token count the rate is spread over",
	}
	bumpFlag = cli.IntFlag{
		Name:  "bump",
		Value: -1,
		Usage: "derivation nonce, derived when negative",
	}

	apiAddrFlag = cli.StringFlag{
		Name:  "api-addr",
		Value: "localhost:8669",
		Usage: "API service listening address",
	}
	apiCorsFlag = cli.StringFlag{
		Name:  "api-cors",
		Value: "",
		Usage: "comma separated list of domains from which to accept cross origin requests to API",
	}
	apiTimeoutFlag = cli.Uint64Flag{
		Name:  "api-timeout",
		Value: 10000,
		Usage: "API request timeout value in milliseconds",
	}
	enableAPILogsFlag = cli.BoolFlag{
		Name:  "enable-api-logs",
		Usage: "enables API requests logging",
	}
	apiSlowQueriesThresholdFlag = cli.Uint64Flag{
		Name:  "api-slow-queries-threshold",
		Value: 0,
		Usage: "all queries with duration longer than this threshold (in milliseconds) will be logged",
	}
	apiLog5xxErrorsFlag = cli.BoolFlag{
		Name:  "api-log-5xx-errors",
		Usage: "log all requests answered with a 5xx status",
	}
	adminAddrFlag = cli.StringFlag{
		Name:  "admin-addr",
		Usage: "admin API listening address, disabled when empty",
	}
	pprofFlag = cli.BoolFlag{
		Name:  "pprof",
		Usage: "turn on go-pprof",
	}
	enableMetricsFlag = cli.BoolFlag{
		Name:  "enable-metrics",
		Usage: "enables metrics collection",
	}
)
