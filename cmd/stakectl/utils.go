// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/mattn/go-isatty"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/thor-staking/clock"
	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/staking"
	"github.com/vechain/thor-staking/thor"
)

// max tolerated offset of the local clock, rewards accrue by it
const maxClockDrift = 5 * time.Second

func initLogger(cfg *Config, w io.Writer) *slog.LevelVar {
	var level slog.LevelVar
	level.Set(log.FromLegacyLevel(cfg.Log.Verbosity))

	var handler slog.Handler
	if cfg.Log.JSON || !isTerminal(w) {
		handler = log.JSONHandlerWithLevel(w, &level)
	} else {
		handler = log.LogfmtHandlerWithLevel(w, &level)
	}
	log.SetDefault(log.NewLogger(handler))
	return &level
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) && os.Getenv("TERM") != "dumb"
}

// checkClockDrift warns when the local clock is off. An unreachable server is not an error.
func checkClockDrift(server string) {
	if server == "" {
		return
	}
	drift, err := clock.Drift(server)
	if err != nil {
		log.Debug("failed to access NTP", "err", err)
		return
	}
	if drift > maxClockDrift || drift < -maxClockDrift {
		log.Warn("clock offset detected, rewards accrue by the local clock", "offset", drift.String())
	}
}

func openLedger(cfg *Config) (*ledger.Ledger, func(), error) {
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, nil, errors.Wrapf(err, "create data dir [%v]", cfg.DataDir)
	}
	db, err := lvldb.New(filepath.Join(cfg.DataDir, "ledger.db"), cfg.LevelDB)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open ledger database [%v]", cfg.DataDir)
	}
	l, err := ledger.New(db, 0)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return l, func() {
		log.Info("closing ledger database...")
		if err := db.Close(); err != nil {
			log.Warn("failed to close ledger database", "err", err)
		}
	}, nil
}

// env is what every command runs against.
type env struct {
	cfg      *Config
	logLevel *slog.LevelVar
	ledger   *ledger.Ledger
	staking  *staking.Staking
}

// withEnv sets up logging and the engine, then runs fn.
func withEnv(ctx *cli.Context, fn func(*env) error) error {
	cfg, err := makeConfig(ctx)
	if err != nil {
		return err
	}
	logLevel := initLogger(cfg, os.Stderr)
	checkClockDrift(cfg.NTPServer)

	l, closeDB, err := openLedger(cfg)
	if err != nil {
		return err
	}
	defer closeDB()

	return fn(&env{
		cfg:      cfg,
		logLevel: logLevel,
		ledger:   l,
		staking:  staking.New(l, clock.System{}, cfg.Engine),
	})
}

func requireAddress(ctx *cli.Context, flag cli.StringFlag) (thor.Address, error) {
	value := ctx.String(flag.Name)
	if value == "" {
		return thor.Address{}, fmt.Errorf("missing required flag --%v", flag.Name)
	}
	addr, err := thor.ParseAddress(value)
	if err != nil {
		return thor.Address{}, errors.WithMessagef(err, "flag --%v", flag.Name)
	}
	return *addr, nil
}

// bump returns the bump flag when given, derived otherwise.
func bump(ctx *cli.Context, derived uint8) (uint8, error) {
	v := ctx.Int(bumpFlag.Name)
	if v < 0 {
		return derived, nil
	}
	if v > 255 {
		return 0, fmt.Errorf("flag --%v out of range: %d", bumpFlag.Name, v)
	}
	return uint8(v), nil
}

// printRecord writes obj as indented JSON, or in go syntax with --dump.
func printRecord(ctx *cli.Context, w io.Writer, obj any) error {
	if ctx.GlobalBool(dumpFlag.Name) {
		spew.Fdump(w, obj)
		return nil
	}
	data, err := json.MarshalIndent(obj, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

// copy from go-ethereum
func defaultDataDir() string {
	// Try to place the data folder in the user's home dir
	if home := homeDir(); home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, "Library", "Application Support", "org.vechain.stakectl")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "org.vechain.stakectl")
		} else {
			return filepath.Join(home, ".org.vechain.stakectl")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

func homeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}
