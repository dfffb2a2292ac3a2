// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts the lookups of a cache.
type Stats struct {
	hit, miss atomic.Int64
	reported  atomic.Int32 // hit rate at the last report, per mille
}

func (s *Stats) Hit()  { s.hit.Add(1) }
func (s *Stats) Miss() { s.miss.Add(1) }

// Counts returns the number of hits and misses so far.
func (s *Stats) Counts() (hit, miss int64) {
	return s.hit.Load(), s.miss.Load()
}

// HitRate returns the share of lookups served from the cache, in per mille.
func (s *Stats) HitRate() int32 {
	hit, miss := s.Counts()
	if hit+miss == 0 {
		return 0
	}
	return int32(hit * 1000 / (hit + miss))
}

// Report returns the hit rate and whether it moved since the previous report.
func (s *Stats) Report() (int32, bool) {
	rate := s.HitRate()
	return rate, s.reported.Swap(rate) != rate
}
