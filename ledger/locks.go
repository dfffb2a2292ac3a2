// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package ledger

import (
	"bytes"
	"context"
	"slices"
	"sync"

	"github.com/vechain/thor-staking/thor"
)

// lockTable hands out exclusive per-record locks. Entries are reference counted and
// dropped once nobody holds or waits for them.
type lockTable struct {
	mu      sync.Mutex
	entries map[thor.Address]*lockEntry
}

type lockEntry struct {
	ch   chan struct{}
	refs int
}

func newLockTable() *lockTable {
	return &lockTable{entries: make(map[thor.Address]*lockEntry)}
}

func (t *lockTable) ref(addr thor.Address) *lockEntry {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, ok := t.entries[addr]
	if !ok {
		e = &lockEntry{ch: make(chan struct{}, 1)}
		t.entries[addr] = e
	}
	e.refs++
	return e
}

func (t *lockTable) unref(addr thor.Address) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e := t.entries[addr]
	e.refs--
	if e.refs == 0 {
		delete(t.entries, addr)
	}
}

// normalize sorts and de-duplicates the record set. A global acquisition order
// means two operations can never wait on each other in a cycle.
func normalize(addrs []thor.Address) []thor.Address {
	sorted := slices.Clone(addrs)
	slices.SortFunc(sorted, compareAddress)
	return slices.Compact(sorted)
}

func compareAddress(a, b thor.Address) int {
	return bytes.Compare(a[:], b[:])
}

// acquire locks all addrs, which must be normalized. It only blocks while waiting for
// other holders, and gives up when ctx is done.
func (t *lockTable) acquire(ctx context.Context, addrs []thor.Address) (func(), error) {
	held := make([]*lockEntry, 0, len(addrs))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i].ch
			t.unref(addrs[i])
		}
	}

	for _, addr := range addrs {
		e := t.ref(addr)
		select {
		case e.ch <- struct{}{}:
			held = append(held, e)
		case <-ctx.Done():
			t.unref(addr)
			release()
			return nil, ctx.Err()
		}
	}
	return release, nil
}
