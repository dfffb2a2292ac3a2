// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

// Config is the configurable parameters of the staking engine. Zero fields fall back to the defaults.
type Config struct {
	FunderCapacity uint32 `json:"funderCapacity" yaml:"funder-capacity"` // number of funder slots of a vault.
	MaxMintLimit   uint32 `json:"maxMintLimit" yaml:"max-mint-limit"`     // max number of staked records per user.
}

const (
	defaultFunderCapacity uint32 = 5
	defaultMaxMintLimit   uint32 = 100
)

// DefaultConfig returns the config used when nothing is overridden.
func DefaultConfig() Config {
	return Config{
		FunderCapacity: defaultFunderCapacity,
		MaxMintLimit:   defaultMaxMintLimit,
	}
}

// WithDefaults returns a copy of the config with zero fields replaced by defaults.
func (c Config) WithDefaults() Config {
	if c.FunderCapacity == 0 {
		c.FunderCapacity = defaultFunderCapacity
	}
	if c.MaxMintLimit == 0 {
		c.MaxMintLimit = defaultMaxMintLimit
	}
	return c
}
