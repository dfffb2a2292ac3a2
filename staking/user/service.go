// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package user

import (
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/thor"
)

// IndexName names the index listing the owners of each vault.
const IndexName = "vault_users"

// Service stores users within one ledger transaction.
type Service struct {
	users  *ledger.Records[User]
	owners *ledger.Index
}

func New(lctx *ledger.Context) *Service {
	return &Service{
		users:  ledger.NewRecords[User](lctx, "user"),
		owners: ledger.NewIndex(lctx, IndexName),
	}
}

// Get returns the user stored at addr.
func (s *Service) Get(addr thor.Address) (*User, error) {
	u, ok, err := s.users.Get(addr)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get user")
	}
	if !ok {
		return nil, reverts.ErrUserNotFound
	}
	return &u, nil
}

// Exists reports whether a user is stored at addr.
func (s *Service) Exists(addr thor.Address) (bool, error) {
	ok, err := s.users.Exists(addr)
	if err != nil {
		return false, errors.Wrap(err, "failed to check user")
	}
	return ok, nil
}

// Create stores a new user and lists its owner under the vault.
func (s *Service) Create(addr thor.Address, u *User) error {
	if err := s.Set(addr, u); err != nil {
		return err
	}
	if err := s.owners.Add(u.Vault, u.Key.Bytes()); err != nil {
		return errors.Wrap(err, "failed to index user")
	}
	return nil
}

func (s *Service) Set(addr thor.Address, u *User) error {
	if err := s.users.Set(addr, *u); err != nil {
		return errors.Wrap(err, "failed to set user")
	}
	return nil
}

// Delete releases the record of u stored at addr and unlists its owner.
func (s *Service) Delete(addr thor.Address, u *User) error {
	if err := s.users.Delete(addr); err != nil {
		return errors.Wrap(err, "failed to delete user")
	}
	if err := s.owners.Remove(u.Vault, u.Key.Bytes()); err != nil {
		return errors.Wrap(err, "failed to unindex user")
	}
	return nil
}
