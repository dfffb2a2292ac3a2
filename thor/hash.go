// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package thor

import (
	"hash"
	"sync"

	"github.com/ethereum/go-ethereum/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// hasher is a reusable digest state. The sum is written into buf to avoid an alloc.
type hasher struct {
	hash.Hash
	buf Bytes32
}

func (h *hasher) digest(data [][]byte) Bytes32 {
	for _, b := range data {
		h.Write(b)
	}
	h.Sum(h.buf[:0])
	sum := h.buf
	h.Reset()
	return sum
}

var (
	blake2bPool = sync.Pool{
		New: func() any {
			h, _ := blake2b.New256(nil)
			return &hasher{Hash: h}
		},
	}
	keccak256Pool = sync.Pool{
		New: func() any {
			return &hasher{Hash: sha3.NewLegacyKeccak256()}
		},
	}
)

// Blake2b computes the blake2b-256 digest of the concatenated data.
// Record storage keys are built with it.
func Blake2b(data ...[]byte) Bytes32 {
	if len(data) == 1 {
		return blake2b.Sum256(data[0])
	}
	h := blake2bPool.Get().(*hasher)
	defer blake2bPool.Put(h)
	return h.digest(data)
}

// Keccak256 computes the legacy keccak-256 digest of the concatenated data.
// Derived addresses are built with it.
func Keccak256(data ...[]byte) Bytes32 {
	h := keccak256Pool.Get().(*hasher)
	defer keccak256Pool.Put(h)
	return h.digest(data)
}
