// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package test holds helpers shared by tests across packages.
package test

import (
	"time"

	"github.com/pkg/errors"
)

// Retry calls fn every period until it succeeds or maxWait has passed since the first call.
// On timeout the last error of fn is returned.
func Retry(fn func() error, period, maxWait time.Duration) error {
	deadline := time.Now().Add(maxWait)
	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for attempt := 1; ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		if time.Now().After(deadline) {
			return errors.WithMessagef(err, "retry timeout after %d attempts", attempt)
		}
		<-ticker.C
	}
}
