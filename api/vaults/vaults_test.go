// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package vaults_test

import (
	"context"
	"encoding/json"
	"io"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/api/vaults"
	"github.com/vechain/thor-staking/clock"
	"github.com/vechain/thor-staking/custody"
	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/staking"
	"github.com/vechain/thor-staking/test/datagen"
	"github.com/vechain/thor-staking/thor"
)

var (
	ts        *httptest.Server
	engine    *staking.Staking
	clk       *clock.Manual
	vaultAddr thor.Address
	authority thor.Address
	owner     thor.Address
	record    thor.Address
	led       *ledger.Ledger
	rewardMnt thor.Address
)

func TestVaults(t *testing.T) {
	initVaultServer(t)
	defer ts.Close()

	tclient := &http.Client{}
	for name, tt := range map[string]func(*testing.T, *http.Client){
		"getVault":          getVault,
		"getVaultNotFound":  getVaultNotFound,
		"getVaultBadAddr":   getVaultBadAddr,
		"getUser":           getUser,
		"getUserNotFound":   getUserNotFound,
		"getPending":        getPending,
		"getPool":           getPool,
		"getPoolNotFound":   getPoolNotFound,
		"getClosedPool":     getClosedPool,
		"getUsers":          getUsers,
		"getUsersNotFound":  getUsersNotFound,
		"getAddresses":      getAddresses,
		"getAddressBadAddr": getAddressesBadOwner,
	} {
		t.Run(name, func(t *testing.T) {
			tt(t, tclient)
		})
	}
}

func initVaultServer(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	l, err := ledger.New(db, 0)
	require.NoError(t, err)
	led = l

	clk = clock.NewManual(1_700_000_000)
	engine = staking.New(l, clk, thor.Config{})

	ctx := context.Background()
	rewardMint := datagen.RandAddress()
	rewardMnt = rewardMint
	authority = datagen.RandAddress()
	owner = datagen.RandAddress()
	vaultAddr = datagen.RandAddress()

	_, poolBump := engine.RewardPoolAddress(vaultAddr)
	require.NoError(t, engine.CreateVault(ctx, authority, vaultAddr, rewardMint, poolBump, 100, 1))

	funding := mint(t, l, rewardMint, authority, 1_000_000)
	require.NoError(t, engine.Fund(ctx, authority, vaultAddr, funding, 1_000_000))

	_, userBump := engine.UserAddress(vaultAddr, owner)
	require.NoError(t, engine.CreateUser(ctx, owner, vaultAddr, userBump))

	record = mint(t, l, datagen.RandAddress(), owner, 1)
	require.NoError(t, engine.Stake(ctx, owner, vaultAddr, record))
	clk.Advance(10)

	router := mux.NewRouter()
	vaults.New(engine).Mount(router, "/vaults")
	ts = httptest.NewServer(router)
}

func mint(t *testing.T, l *ledger.Ledger, mintAddr, owner thor.Address, amount uint64) thor.Address {
	account := datagen.RandAddress()
	err := l.Execute(context.Background(), []thor.Address{account}, func(c *ledger.Context) error {
		return custody.New(c).Mint(account, mintAddr, owner, amount)
	})
	require.NoError(t, err)
	return account
}

func httpGet(t *testing.T, client *http.Client, url string) ([]byte, int) {
	res, err := client.Get(url)
	require.NoError(t, err)
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	require.NoError(t, err)
	return body, res.StatusCode
}

func getVault(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String())
	require.Equal(t, http.StatusOK, status, string(body))

	var v vaults.Vault
	require.NoError(t, json.Unmarshal(body, &v))
	assert.Equal(t, vaultAddr, v.Address)
	assert.Equal(t, authority, v.Authority)
	assert.Equal(t, "initialized", v.Status)
	assert.Empty(t, v.Funders)
	assert.Equal(t, uint32(1), v.UserCount)
	assert.Equal(t, uint32(1), v.StakedCount)
	assert.Equal(t, uint64(100), v.RewardDuration)
	assert.Equal(t, uint64(1_700_000_100), v.RewardDurationEnd)
	require.NotNil(t, v.RewardRate)
	assert.Equal(t, big.NewInt(10_000_000_000), (*big.Int)(v.RewardRate))
}

func getVaultNotFound(t *testing.T, client *http.Client) {
	_, status := httpGet(t, client, ts.URL+"/vaults/"+datagen.RandAddress().String())
	assert.Equal(t, http.StatusNotFound, status)
}

func getVaultBadAddr(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/0xbad")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "vault")
}

func getUser(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String()+"/users/"+owner.String())
	require.Equal(t, http.StatusOK, status, string(body))

	var u vaults.User
	require.NoError(t, json.Unmarshal(body, &u))
	userAddr, bump := engine.UserAddress(vaultAddr, owner)
	assert.Equal(t, userAddr, u.Address)
	assert.Equal(t, bump, u.Bump)
	assert.Equal(t, owner, u.Owner)
	assert.Equal(t, vaultAddr, u.Vault)
	assert.Equal(t, []thor.Address{record}, u.MintAccounts)
	assert.Equal(t, uint32(1), u.MintStakedCount)
}

func getUserNotFound(t *testing.T, client *http.Client) {
	_, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String()+"/users/"+datagen.RandAddress().String())
	assert.Equal(t, http.StatusNotFound, status)
}

func getPending(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String()+"/users/"+owner.String()+"/pending")
	require.Equal(t, http.StatusOK, status, string(body))

	var p vaults.Pending
	require.NoError(t, json.Unmarshal(body, &p))
	expected, err := engine.PendingReward(context.Background(), vaultAddr, owner)
	require.NoError(t, err)
	assert.Equal(t, expected, p.Amount)
	assert.Equal(t, uint64(100_000), p.Amount)
}

func getPool(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String()+"/pool")
	require.Equal(t, http.StatusOK, status, string(body))

	var p vaults.Pool
	require.NoError(t, json.Unmarshal(body, &p))
	pool, bump := engine.RewardPoolAddress(vaultAddr)
	assert.Equal(t, pool, p.Address)
	assert.Equal(t, bump, p.Bump)
	assert.Equal(t, uint64(1_000_000), p.Balance)
	assert.True(t, p.Open)
}

func getPoolNotFound(t *testing.T, client *http.Client) {
	_, status := httpGet(t, client, ts.URL+"/vaults/"+datagen.RandAddress().String()+"/pool")
	assert.Equal(t, http.StatusNotFound, status)
}

func getClosedPool(t *testing.T, client *http.Client) {
	ctx := context.Background()
	closed := datagen.RandAddress()
	_, poolBump := engine.RewardPoolAddress(closed)
	require.NoError(t, engine.CreateVault(ctx, authority, closed, rewardMnt, poolBump, 100, 1))
	funding := mint(t, led, rewardMnt, authority, 10)
	require.NoError(t, engine.Fund(ctx, authority, closed, funding, 10))
	refund := mint(t, led, rewardMnt, authority, 0)
	require.NoError(t, engine.CloseVault(ctx, authority, closed, refund))

	body, status := httpGet(t, client, ts.URL+"/vaults/"+closed.String()+"/pool")
	require.Equal(t, http.StatusOK, status, string(body))

	var p vaults.Pool
	require.NoError(t, json.Unmarshal(body, &p))
	assert.Zero(t, p.Balance)
	assert.False(t, p.Open)
}

func getUsers(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String()+"/users")
	require.Equal(t, http.StatusOK, status, string(body))

	var owners []thor.Address
	require.NoError(t, json.Unmarshal(body, &owners))
	assert.Equal(t, []thor.Address{owner}, owners)
}

func getUsersNotFound(t *testing.T, client *http.Client) {
	_, status := httpGet(t, client, ts.URL+"/vaults/"+datagen.RandAddress().String()+"/users")
	assert.Equal(t, http.StatusNotFound, status)
}

func getAddresses(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String()+"/addresses/"+owner.String())
	require.Equal(t, http.StatusOK, status, string(body))

	var a vaults.Addresses
	require.NoError(t, json.Unmarshal(body, &a))
	userAddr, userBump := engine.UserAddress(vaultAddr, owner)
	custodyAddr, custodyBump := engine.StakeCustodyAddress(vaultAddr, owner)
	assert.Equal(t, userAddr, a.User)
	assert.Equal(t, userBump, a.UserBump)
	assert.Equal(t, custodyAddr, a.StakeCustody)
	assert.Equal(t, custodyBump, a.StakeCustodyBump)
}

func getAddressesBadOwner(t *testing.T, client *http.Client) {
	body, status := httpGet(t, client, ts.URL+"/vaults/"+vaultAddr.String()+"/addresses/nope")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, string(body), "owner")
}
