// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"context"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/kv"
	"github.com/vechain/thor-staking/thor"
)

// Index is a named set of members grouped under a record address. Members are written
// with the records of the transaction and listed in byte order by Ledger.Members.
// Changing the members of an address needs the address to be declared.
type Index struct {
	context *Context
	name    string
}

// NewIndex binds the index named name to a transaction context.
func NewIndex(context *Context, name string) *Index {
	return &Index{context: context, name: name}
}

// Add puts member into the set of addr.
func (i *Index) Add(addr thor.Address, member []byte) error {
	return i.context.setMember(addr, indexKey(i.name, addr, member), true)
}

// Remove takes member out of the set of addr.
func (i *Index) Remove(addr thor.Address, member []byte) error {
	return i.context.setMember(addr, indexKey(i.name, addr, member), false)
}

// indexKey is len(name) | name | addr | member.
func indexKey(name string, addr thor.Address, member []byte) []byte {
	key := make([]byte, 0, 1+len(name)+len(addr)+len(member))
	key = append(key, byte(len(name)))
	key = append(key, name...)
	key = append(key, addr[:]...)
	return append(key, member...)
}

// Members calls fn with every committed member of addr in the index named name, until fn
// returns false. It reads a consistent snapshot of the store without taking record locks,
// so it never waits for running transactions. The member slice is only valid during fn.
func (l *Ledger) Members(ctx context.Context, name string, addr thor.Address, fn func(member []byte) bool) error {
	prefix := indexKey(name, addr, nil)
	it := l.index.Iterate(kv.PrefixRange(prefix))
	defer it.Release()

	for it.Next() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !fn(it.Key()[len(prefix):]) {
			break
		}
	}
	return errors.Wrap(it.Error(), "iterate index")
}
