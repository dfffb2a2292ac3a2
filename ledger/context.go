// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"slices"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/thor"
)

var (
	// ErrUndeclaredRecord is returned when an operation touches a record it did not declare.
	ErrUndeclaredRecord = errors.New("record not declared by the operation")
	// ErrReadOnly is returned on writes inside View.
	ErrReadOnly = errors.New("ledger view is read only")
)

// Context is the view of one transaction over its declared records.
// Writes stay in the context until the ledger commits it.
type Context struct {
	ledger   *Ledger
	declared []thor.Address // sorted
	readOnly bool
	dirty    map[thor.Bytes32][]byte // nil value deletes the slot
	members  map[string]bool         // index keys, false removes
}

func newContext(l *Ledger, declared []thor.Address, readOnly bool) *Context {
	return &Context{
		ledger:   l,
		declared: declared,
		readOnly: readOnly,
		dirty:    make(map[thor.Bytes32][]byte),
		members:  make(map[string]bool),
	}
}

// Declares reports whether the transaction holds the record at addr.
func (c *Context) Declares(addr thor.Address) bool {
	_, found := slices.BinarySearchFunc(c.declared, addr, compareAddress)
	return found
}

func slotKey(addr thor.Address, slot thor.Bytes32) thor.Bytes32 {
	return thor.Blake2b(addr.Bytes(), slot.Bytes())
}

func (c *Context) get(addr thor.Address, slot thor.Bytes32) ([]byte, bool, error) {
	if !c.Declares(addr) {
		return nil, false, errors.WithMessagef(ErrUndeclaredRecord, "read %s", addr)
	}
	key := slotKey(addr, slot)
	if v, ok := c.dirty[key]; ok {
		return v, v != nil, nil
	}
	return c.ledger.load(key)
}

func (c *Context) checkWrite(addr thor.Address) error {
	if c.readOnly {
		return ErrReadOnly
	}
	if !c.Declares(addr) {
		return errors.WithMessagef(ErrUndeclaredRecord, "write %s", addr)
	}
	return nil
}

func (c *Context) put(addr thor.Address, slot thor.Bytes32, value []byte) error {
	if err := c.checkWrite(addr); err != nil {
		return err
	}
	c.dirty[slotKey(addr, slot)] = value
	return nil
}

func (c *Context) setMember(addr thor.Address, key []byte, present bool) error {
	if err := c.checkWrite(addr); err != nil {
		return err
	}
	c.members[string(key)] = present
	return nil
}
