// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"time"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"
	"gopkg.in/yaml.v3"

	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/thor"
)

// Config is the file form of the command line settings.
type Config struct {
	DataDir   string        `yaml:"data-dir"`
	NTPServer string        `yaml:"ntp-server"`
	Log       LogConfig     `yaml:"log"`
	LevelDB   lvldb.Options `yaml:"leveldb"`
	Engine    thor.Config   `yaml:"engine"`
	API       APIConfig     `yaml:"api"`
}

type LogConfig struct {
	Verbosity int  `yaml:"verbosity"`
	JSON      bool `yaml:"json"`
}

type APIConfig struct {
	Addr                   string `yaml:"addr"`
	Cors                   string `yaml:"cors"`
	TimeoutMs              uint64 `yaml:"timeout-ms"`
	EnableLogs             bool   `yaml:"enable-logs"`
	SlowQueriesThresholdMs uint64 `yaml:"slow-queries-threshold-ms"`
	Log5xxErrors           bool   `yaml:"log-5xx-errors"`
	AdminAddr              string `yaml:"admin-addr"`
	Pprof                  bool   `yaml:"pprof"`
	EnableMetrics          bool   `yaml:"enable-metrics"`
}

func (c APIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

func (c APIConfig) SlowQueriesThreshold() time.Duration {
	return time.Duration(c.SlowQueriesThresholdMs) * time.Millisecond
}

func defaultConfig() *Config {
	return &Config{
		DataDir:   dataDirFlag.Value,
		NTPServer: ntpServerFlag.Value,
		Log: LogConfig{
			Verbosity: verbosityFlag.Value,
		},
		Engine: thor.DefaultConfig(),
		API: APIConfig{
			Addr:      apiAddrFlag.Value,
			Cors:      apiCorsFlag.Value,
			TimeoutMs: apiTimeoutFlag.Value,
		},
	}
}

// loadConfigFile overlays the yaml file at path onto cfg. Unknown keys are rejected.
func loadConfigFile(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return errors.Wrap(err, "open config file")
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil {
		return errors.Wrapf(err, "decode config file %v", path)
	}
	return nil
}

// makeConfig builds the effective config: defaults, then the config file, then the flags set
// on the command line.
func makeConfig(ctx *cli.Context) (*Config, error) {
	cfg := defaultConfig()
	if path := ctx.GlobalString(configFlag.Name); path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			return nil, err
		}
	}

	if ctx.GlobalIsSet(dataDirFlag.Name) {
		cfg.DataDir = ctx.GlobalString(dataDirFlag.Name)
	}
	if ctx.GlobalIsSet(ntpServerFlag.Name) {
		cfg.NTPServer = ctx.GlobalString(ntpServerFlag.Name)
	}
	if ctx.GlobalIsSet(verbosityFlag.Name) {
		cfg.Log.Verbosity = ctx.GlobalInt(verbosityFlag.Name)
	}
	if ctx.GlobalIsSet(jsonLogsFlag.Name) {
		cfg.Log.JSON = ctx.GlobalBool(jsonLogsFlag.Name)
	}
	if ctx.GlobalIsSet(funderCapacityFlag.Name) {
		cfg.Engine.FunderCapacity = uint32(ctx.GlobalUint(funderCapacityFlag.Name))
	}
	if ctx.GlobalIsSet(maxMintLimitFlag.Name) {
		cfg.Engine.MaxMintLimit = uint32(ctx.GlobalUint(maxMintLimitFlag.Name))
	}

	// serve flags live on the command itself
	if ctx.IsSet(apiAddrFlag.Name) {
		cfg.API.Addr = ctx.String(apiAddrFlag.Name)
	}
	if ctx.IsSet(apiCorsFlag.Name) {
		cfg.API.Cors = ctx.String(apiCorsFlag.Name)
	}
	if ctx.IsSet(apiTimeoutFlag.Name) {
		cfg.API.TimeoutMs = ctx.Uint64(apiTimeoutFlag.Name)
	}
	if ctx.IsSet(enableAPILogsFlag.Name) {
		cfg.API.EnableLogs = ctx.Bool(enableAPILogsFlag.Name)
	}
	if ctx.IsSet(apiSlowQueriesThresholdFlag.Name) {
		cfg.API.SlowQueriesThresholdMs = ctx.Uint64(apiSlowQueriesThresholdFlag.Name)
	}
	if ctx.IsSet(apiLog5xxErrorsFlag.Name) {
		cfg.API.Log5xxErrors = ctx.Bool(apiLog5xxErrorsFlag.Name)
	}
	if ctx.IsSet(adminAddrFlag.Name) {
		cfg.API.AdminAddr = ctx.String(adminAddrFlag.Name)
	}
	if ctx.IsSet(pprofFlag.Name) {
		cfg.API.Pprof = ctx.Bool(pprofFlag.Name)
	}
	if ctx.IsSet(enableMetricsFlag.Name) {
		cfg.API.EnableMetrics = ctx.Bool(enableMetricsFlag.Name)
	}

	cfg.Engine = cfg.Engine.WithDefaults()
	return cfg, nil
}
