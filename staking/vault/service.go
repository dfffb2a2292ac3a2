// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vault

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/thor"
)

// Service stores vaults within one ledger transaction.
type Service struct {
	vaults *ledger.Records[Vault]
}

func New(lctx *ledger.Context) *Service {
	return &Service{vaults: ledger.NewRecords[Vault](lctx, "vault")}
}

// Get returns the vault at addr, or an uninitialized vault if there is none.
func (s *Service) Get(addr thor.Address) (*Vault, error) {
	v, _, err := s.vaults.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vault")
	}
	return &v, nil
}

// GetExisting returns the vault at addr and fails when there is none.
func (s *Service) GetExisting(addr thor.Address) (*Vault, error) {
	v, ok, err := s.vaults.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get vault")
	}
	if !ok {
		return nil, reverts.ErrVaultNotFound
	}
	return &v, nil
}

func (s *Service) Set(addr thor.Address, v *Vault) error {
	if err := s.vaults.Set(addr, *v); err != nil {
		return errors.Wrap(err, "failed to set vault")
	}
	return nil
}
