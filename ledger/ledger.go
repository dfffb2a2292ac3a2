// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package ledger is the record substrate of the staking engine. Every operation declares
// the records it touches, runs with exclusive access to them, and either commits all of its
// writes in one batch or none of them.
package ledger

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/thor-staking/cache"
	"github.com/vechain/thor-staking/kv"
	"github.com/vechain/thor-staking/log"
	"github.com/vechain/thor-staking/metrics"
	"github.com/vechain/thor-staking/thor"
)

const (
	// storeBucket prefixes every record slot in the backing store.
	storeBucket = kv.Bucket("r")
	// indexBucket prefixes every index member.
	indexBucket = kv.Bucket("i")

	defaultCacheSize = 4096
)

var (
	logger = log.WithContext("pkg", "ledger")

	metricTxCount    = metrics.LazyLoadCounterVec("ledger_tx_count", []string{"result"})
	metricTxDuration = metrics.LazyLoadHistogramVec("ledger_tx_duration_us", []string{"kind"}, metrics.BucketMicros)
	metricCacheRate  = metrics.LazyLoadGauge("ledger_cache_hit_rate_permille")
)

// Ledger persists records and serializes access to them.
type Ledger struct {
	db    kv.Store
	store kv.Store
	index kv.Store
	locks *lockTable
	cache *cache.LRU
}

// New creates a ledger over store. A non-positive cacheSize selects the default.
func New(store kv.Store, cacheSize int) (*Ledger, error) {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	c, err := cache.NewLRU(cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "new ledger cache")
	}
	return &Ledger{
		db:    store,
		store: storeBucket.NewStore(store),
		index: indexBucket.NewStore(store),
		locks: newLockTable(),
		cache: c,
	}, nil
}

// Execute runs fn as one atomic transaction with exclusive access to records.
// Writes made by fn are committed only if fn returns nil; any error discards them all.
// ctx bounds the wait for the record locks only, a started transaction always runs to the end.
func (l *Ledger) Execute(ctx context.Context, records []thor.Address, fn func(*Context) error) error {
	return l.run(ctx, records, false, fn)
}

// View runs fn against the committed state of records. Writes are rejected.
func (l *Ledger) View(ctx context.Context, records []thor.Address, fn func(*Context) error) error {
	return l.run(ctx, records, true, fn)
}

func (l *Ledger) run(ctx context.Context, records []thor.Address, readOnly bool, fn func(*Context) error) error {
	start := time.Now()
	kind := "execute"
	if readOnly {
		kind = "view"
	}

	declared := normalize(records)
	release, err := l.locks.acquire(ctx, declared)
	if err != nil {
		logger.Debug("failed to acquire record locks", "records", len(declared), "error", err)
		return errors.Wrap(err, "acquire record locks")
	}
	defer release()

	c := newContext(l, declared, readOnly)
	if err := fn(c); err != nil {
		metricTxCount().AddWithLabel(1, map[string]string{"result": "reverted"})
		return err
	}

	if !readOnly {
		if err := l.commit(c); err != nil {
			metricTxCount().AddWithLabel(1, map[string]string{"result": "failed"})
			return err
		}
		metricTxCount().AddWithLabel(1, map[string]string{"result": "committed"})
	}
	metricTxDuration().ObserveWithLabels(time.Since(start).Microseconds(), map[string]string{"kind": kind})

	if rate, changed := l.cache.Stats().Report(); changed {
		metricCacheRate().Set(int64(rate))
		logger.Trace("cache hit rate changed", "permille", rate)
	}
	return nil
}

// commit writes the slots and index members of c in a single batch and then refreshes
// the cache. It is called while the record locks are still held.
func (l *Ledger) commit(c *Context) error {
	var (
		batch   = l.db.NewBatch()
		slots   = storeBucket.NewBatch(batch)
		members = indexBucket.NewBatch(batch)
	)
	for key, value := range c.dirty {
		var err error
		if value == nil {
			err = slots.Delete(key[:])
		} else {
			err = slots.Put(key[:], value)
		}
		if err != nil {
			return errors.Wrap(err, "stage ledger batch")
		}
	}
	for key, present := range c.members {
		var err error
		if present {
			err = members.Put([]byte(key), nil)
		} else {
			err = members.Delete([]byte(key))
		}
		if err != nil {
			return errors.Wrap(err, "stage ledger batch")
		}
	}
	if batch.Len() == 0 {
		return nil
	}
	if err := batch.Write(); err != nil {
		return errors.Wrap(err, "write ledger batch")
	}

	for key, value := range c.dirty {
		if value == nil {
			l.cache.Remove(key)
		} else {
			l.cache.Add(key, value)
		}
	}
	return nil
}

// load reads a committed slot. A missing slot returns (nil, false, nil).
func (l *Ledger) load(key thor.Bytes32) ([]byte, bool, error) {
	v, err := l.cache.GetOrLoad(key, func(any) (any, error) {
		raw, err := l.store.Get(key[:])
		if err != nil {
			if l.store.IsNotFound(err) {
				return []byte(nil), nil
			}
			return nil, err
		}
		return raw, nil
	})
	if err != nil {
		return nil, false, errors.Wrap(err, "load ledger slot")
	}
	raw := v.([]byte)
	return raw, raw != nil, nil
}
