// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package clock provides the time source of the staking engine.
package clock

import (
	"sync"
	"time"

	"github.com/beevik/ntp"
	"github.com/pkg/errors"
)

// Clock returns the current unix time in seconds.
type Clock interface {
	Now() uint64
}

// System reads the local wall clock.
type System struct{}

func (System) Now() uint64 {
	return uint64(time.Now().Unix())
}

// Manual is a clock moved by hand. The zero value reads 0.
type Manual struct {
	mu  sync.Mutex
	now uint64
}

// NewManual creates a manual clock reading now.
func NewManual(now uint64) *Manual {
	return &Manual{now: now}
}

func (m *Manual) Now() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.now
}

// Set moves the clock to now, backwards included.
func (m *Manual) Set(now uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// Advance moves the clock forward by seconds and returns the new reading.
func (m *Manual) Advance(seconds uint64) uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now += seconds
	return m.now
}

// Drift returns the offset of the local clock against the NTP server.
// A positive value means the local clock is behind.
func Drift(server string) (time.Duration, error) {
	resp, err := ntp.Query(server)
	if err != nil {
		return 0, errors.Wrap(err, "query ntp")
	}
	return resp.ClockOffset, nil
}
