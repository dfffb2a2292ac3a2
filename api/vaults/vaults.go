// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults

import (
	"context"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/api/restutil"
	"github.com/vechain/thor-staking/staking/reverts"
	"github.com/vechain/thor-staking/staking/user"
	"github.com/vechain/thor-staking/staking/vault"
	"github.com/vechain/thor-staking/thor"
)

// Reader is the read side of the staking engine.
type Reader interface {
	Vault(ctx context.Context, vaultAddr thor.Address) (*vault.Vault, error)
	User(ctx context.Context, vaultAddr, owner thor.Address) (*user.User, error)
	PendingReward(ctx context.Context, vaultAddr, owner thor.Address) (uint64, error)
	RewardPoolBalance(ctx context.Context, vaultAddr thor.Address) (uint64, error)
	Users(ctx context.Context, vaultAddr thor.Address) ([]thor.Address, error)
	UserAddress(vaultAddr, owner thor.Address) (thor.Address, uint8)
	StakeCustodyAddress(vaultAddr, owner thor.Address) (thor.Address, uint8)
	RewardPoolAddress(vaultAddr thor.Address) (thor.Address, uint8)
}

type Vaults struct {
	reader Reader
}

func New(reader Reader) *Vaults {
	return &Vaults{reader}
}

// convertError maps missing records to 404, other reverts to 400.
func convertError(err error) error {
	switch {
	case errors.Is(err, reverts.ErrVaultNotFound), errors.Is(err, reverts.ErrUserNotFound):
		return restutil.NotFound(err)
	case reverts.IsRevertErr(err):
		return restutil.BadRequest(err)
	default:
		return err
	}
}

func parseVaultOwner(req *http.Request) (thor.Address, thor.Address, error) {
	vars := mux.Vars(req)
	vaultAddr, err := restutil.ParseAddress("vault", vars["vault"])
	if err != nil {
		return thor.Address{}, thor.Address{}, err
	}
	owner, err := restutil.ParseAddress("owner", vars["owner"])
	if err != nil {
		return thor.Address{}, thor.Address{}, err
	}
	return vaultAddr, owner, nil
}

func (v *Vaults) handleGetVault(w http.ResponseWriter, req *http.Request) error {
	vaultAddr, err := restutil.ParseAddress("vault", mux.Vars(req)["vault"])
	if err != nil {
		return err
	}
	vlt, err := v.reader.Vault(req.Context(), vaultAddr)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, convertVault(vaultAddr, vlt))
}

func (v *Vaults) handleGetUser(w http.ResponseWriter, req *http.Request) error {
	vaultAddr, owner, err := parseVaultOwner(req)
	if err != nil {
		return err
	}
	u, err := v.reader.User(req.Context(), vaultAddr, owner)
	if err != nil {
		return convertError(err)
	}
	userAddr, _ := v.reader.UserAddress(vaultAddr, owner)
	return restutil.WriteJSON(w, convertUser(userAddr, u))
}

func (v *Vaults) handleGetPending(w http.ResponseWriter, req *http.Request) error {
	vaultAddr, owner, err := parseVaultOwner(req)
	if err != nil {
		return err
	}
	amount, err := v.reader.PendingReward(req.Context(), vaultAddr, owner)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, &Pending{Amount: amount})
}

func (v *Vaults) handleGetPool(w http.ResponseWriter, req *http.Request) error {
	vaultAddr, err := restutil.ParseAddress("vault", mux.Vars(req)["vault"])
	if err != nil {
		return err
	}
	vlt, err := v.reader.Vault(req.Context(), vaultAddr)
	if err != nil {
		return convertError(err)
	}
	balance, err := v.reader.RewardPoolBalance(req.Context(), vaultAddr)
	if err != nil {
		return convertError(err)
	}
	pool, bump := v.reader.RewardPoolAddress(vaultAddr)
	return restutil.WriteJSON(w, &Pool{
		Address: pool,
		Bump:    bump,
		Balance: balance,
		Open:    vlt.Status != vault.StatusClosed,
	})
}

func (v *Vaults) handleGetUsers(w http.ResponseWriter, req *http.Request) error {
	vaultAddr, err := restutil.ParseAddress("vault", mux.Vars(req)["vault"])
	if err != nil {
		return err
	}
	owners, err := v.reader.Users(req.Context(), vaultAddr)
	if err != nil {
		return convertError(err)
	}
	return restutil.WriteJSON(w, owners)
}

func (v *Vaults) handleGetAddresses(w http.ResponseWriter, req *http.Request) error {
	vaultAddr, owner, err := parseVaultOwner(req)
	if err != nil {
		return err
	}
	userAddr, userBump := v.reader.UserAddress(vaultAddr, owner)
	custodyAddr, custodyBump := v.reader.StakeCustodyAddress(vaultAddr, owner)
	return restutil.WriteJSON(w, &Addresses{
		User:             userAddr,
		UserBump:         userBump,
		StakeCustody:     custodyAddr,
		StakeCustodyBump: custodyBump,
	})
}

func (v *Vaults) Mount(root *mux.Router, pathPrefix string) {
	sub := root.PathPrefix(pathPrefix).Subrouter()

	sub.Path("/{vault}").
		Methods(http.MethodGet).
		Name("vaults_get_vault").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetVault))
	sub.Path("/{vault}/pool").
		Methods(http.MethodGet).
		Name("vaults_get_pool").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetPool))
	sub.Path("/{vault}/users").
		Methods(http.MethodGet).
		Name("vaults_get_users").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetUsers))
	sub.Path("/{vault}/users/{owner}").
		Methods(http.MethodGet).
		Name("vaults_get_user").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetUser))
	sub.Path("/{vault}/users/{owner}/pending").
		Methods(http.MethodGet).
		Name("vaults_get_pending").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetPending))
	sub.Path("/{vault}/addresses/{owner}").
		Methods(http.MethodGet).
		Name("vaults_get_addresses").
		HandlerFunc(restutil.WrapHandlerFunc(v.handleGetAddresses))
}
