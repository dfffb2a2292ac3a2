// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package kv

import (
	"github.com/syndtr/goleveldb/leveldb/util"
)

// Bucket provides logical bucket for kv store.
type Bucket string

func (b Bucket) key(key []byte) []byte {
	return append([]byte(b), key...)
}

// NewStore creates a bucketed store view over src. Keys passed in and out of the view
// never contain the bucket prefix.
func (b Bucket) NewStore(src Store) Store {
	return &bucketStore{bucket: b, src: src}
}

// NewBatch creates a bucketed view over the batch src, so several buckets can be
// written in one atomic batch.
func (b Bucket) NewBatch(src Batch) Batch {
	return &bucketBatch{bucket: b, Batch: src}
}

type bucketStore struct {
	bucket Bucket
	src    Store
}

func (s *bucketStore) Get(key []byte) ([]byte, error)  { return s.src.Get(s.bucket.key(key)) }
func (s *bucketStore) Has(key []byte) (bool, error)    { return s.src.Has(s.bucket.key(key)) }
func (s *bucketStore) IsNotFound(err error) bool       { return s.src.IsNotFound(err) }
func (s *bucketStore) Put(key, val []byte) error       { return s.src.Put(s.bucket.key(key), val) }
func (s *bucketStore) Delete(key []byte) error         { return s.src.Delete(s.bucket.key(key)) }
func (s *bucketStore) NewBatch() Batch                 { return s.bucket.NewBatch(s.src.NewBatch()) }
func (s *bucketStore) Iterate(r Range) Iterator {
	r.Start = s.bucket.key(r.Start)
	if len(r.Limit) == 0 {
		r.Limit = util.BytesPrefix([]byte(s.bucket)).Limit
	} else {
		r.Limit = s.bucket.key(r.Limit)
	}
	return &bucketIterator{Iterator: s.src.Iterate(r), prefixLen: len(s.bucket)}
}

type bucketBatch struct {
	bucket Bucket
	Batch
}

func (b *bucketBatch) Put(key, val []byte) error { return b.Batch.Put(b.bucket.key(key), val) }
func (b *bucketBatch) Delete(key []byte) error   { return b.Batch.Delete(b.bucket.key(key)) }

// PrefixRange returns the range of all keys starting with prefix.
func PrefixRange(prefix []byte) Range {
	r := util.BytesPrefix(prefix)
	return Range{Start: r.Start, Limit: r.Limit}
}

type bucketIterator struct {
	Iterator
	prefixLen int
}

// Key strips the bucket.
func (i *bucketIterator) Key() []byte {
	return i.Iterator.Key()[i.prefixLen:]
}
