// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/thor"
)

// Records is a typed, RLP encoded record kind stored at record addresses, similar to a
// mapping(address => V) in a contract. Each kind lives in its own slot, so one address
// can hold several kinds.
type Records[V any] struct {
	context *Context
	slot    thor.Bytes32
}

// NewRecords binds the record kind named name to a transaction context.
func NewRecords[V any](context *Context, name string) *Records[V] {
	return &Records[V]{context: context, slot: thor.BytesToBytes32([]byte(name))}
}

// Get returns the record stored at addr. The bool reports whether it exists.
func (r *Records[V]) Get(addr thor.Address) (value V, exists bool, err error) {
	raw, exists, err := r.context.get(addr, r.slot)
	if err != nil || !exists {
		return value, false, err
	}
	if err := rlp.DecodeBytes(raw, &value); err != nil {
		return value, false, errors.Wrap(err, "decode record")
	}
	return value, true, nil
}

// Exists reports whether a record is stored at addr.
func (r *Records[V]) Exists(addr thor.Address) (bool, error) {
	_, exists, err := r.context.get(addr, r.slot)
	return exists, err
}

// Set stores value at addr.
func (r *Records[V]) Set(addr thor.Address, value V) error {
	raw, err := rlp.EncodeToBytes(value)
	if err != nil {
		return errors.Wrap(err, "encode record")
	}
	return r.context.put(addr, r.slot, raw)
}

// Delete releases the record stored at addr.
func (r *Records[V]) Delete(addr thor.Address) error {
	return r.context.put(addr, r.slot, nil)
}
