// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindDerivedAddress(t *testing.T) {
	vault := BytesToAddress([]byte("vault"))
	owner := BytesToAddress([]byte("owner"))

	addr, nonce := FindDerivedAddress("x_token_vault_user", vault.Bytes(), owner.Bytes())

	again, ok := DerivedAddress("x_token_vault_user", nonce, vault.Bytes(), owner.Bytes())
	assert.True(t, ok)
	assert.Equal(t, addr, again)
	assert.False(t, addr.IsZero())

	// every nonce above the canonical one is invalid
	for n := 255; n > int(nonce); n-- {
		_, ok := DerivedAddress("x_token_vault_user", uint8(n), vault.Bytes(), owner.Bytes())
		assert.False(t, ok, "nonce %d", n)
	}
}

func TestDerivedAddressSeparation(t *testing.T) {
	vault := BytesToAddress([]byte("vault"))
	owner := BytesToAddress([]byte("owner"))

	user, _ := FindDerivedAddress("x_token_vault_user", vault.Bytes(), owner.Bytes())
	stake, _ := FindDerivedAddress("x_token_vault_stake", vault.Bytes(), owner.Bytes())
	other, _ := FindDerivedAddress("x_token_vault_user", owner.Bytes(), vault.Bytes())

	assert.NotEqual(t, user, stake)
	assert.NotEqual(t, user, other)
}

func TestParseAddress(t *testing.T) {
	addr := BytesToAddress([]byte("some-address"))

	parsed, err := ParseAddress(addr.String())
	assert.NoError(t, err)
	assert.Equal(t, addr, *parsed)

	parsed, err = ParseAddress(addr.String()[2:])
	assert.NoError(t, err)
	assert.Equal(t, addr, *parsed)

	_, err = ParseAddress("0x1234")
	assert.EqualError(t, err, "invalid length")

	_, err = ParseAddress("1x" + addr.String()[2:])
	assert.EqualError(t, err, "invalid prefix")
}

func TestConfigWithDefaults(t *testing.T) {
	cfg := Config{FunderCapacity: 3}.WithDefaults()
	assert.Equal(t, uint32(3), cfg.FunderCapacity)
	assert.Equal(t, DefaultConfig().MaxMintLimit, cfg.MaxMintLimit)
}
