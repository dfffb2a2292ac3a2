// Copyright (c) 2024 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vechain/thor-staking/thor"
)

func RandomHash() thor.Bytes32 {
	var b32 thor.Bytes32

	rand.Read(b32[:])
	return b32
}

func RandAddress() thor.Address {
	var addr thor.Address

	rand.Read(addr[:])
	return addr
}

// RandAddresses returns n distinct random addresses.
func RandAddresses(n int) []thor.Address {
	addrs := make([]thor.Address, 0, n)
	seen := make(map[thor.Address]struct{}, n)
	for len(addrs) < n {
		addr := RandAddress()
		if _, ok := seen[addr]; ok {
			continue
		}
		seen[addr] = struct{}{}
		addrs = append(addrs, addr)
	}
	return addrs
}
