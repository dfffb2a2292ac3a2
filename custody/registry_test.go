// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package custody

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/thor-staking/ledger"
	"github.com/vechain/thor-staking/lvldb"
	"github.com/vechain/thor-staking/thor"
)

var (
	mintA = thor.BytesToAddress([]byte("mintA"))
	mintB = thor.BytesToAddress([]byte("mintB"))
	alice = thor.BytesToAddress([]byte("alice"))
	bob   = thor.BytesToAddress([]byte("bob"))
)

// run executes fn in a ledger transaction declaring records.
func run(t *testing.T, l *ledger.Ledger, records []thor.Address, fn func(r *Registry) error) error {
	return l.Execute(context.Background(), records, func(c *ledger.Context) error {
		return fn(New(c))
	})
}

func newLedger(t *testing.T) *ledger.Ledger {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	l, err := ledger.New(db, 0)
	require.NoError(t, err)
	return l
}

func TestTransfer(t *testing.T) {
	l := newLedger(t)
	a := thor.BytesToAddress([]byte("acc-a"))
	b := thor.BytesToAddress([]byte("acc-b"))
	c := thor.BytesToAddress([]byte("acc-c"))
	all := []thor.Address{a, b, c}

	require.NoError(t, run(t, l, all, func(r *Registry) error {
		if err := r.Mint(a, mintA, alice, 100); err != nil {
			return err
		}
		if err := r.Open(b, mintA, bob); err != nil {
			return err
		}
		return r.Mint(c, mintB, bob, 1)
	}))

	tests := []struct {
		name    string
		from    thor.Address
		to      thor.Address
		amount  uint64
		signer  Signer
		wantErr error
	}{
		{"not owner", a, b, 1, KeySigner(bob), ErrNotOwner},
		{"insufficient", a, b, 101, KeySigner(alice), ErrInsufficientBalance},
		{"mint mismatch", a, c, 1, KeySigner(alice), ErrMintMismatch},
		{"missing", a, thor.BytesToAddress([]byte("nope")), 1, KeySigner(alice), ErrAccountNotFound},
		{"to itself", a, a, 1, KeySigner(alice), ErrSelfTransfer},
		{"nothing to itself", a, a, 0, KeySigner(alice), nil},
		{"ok", a, b, 40, KeySigner(alice), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := append([]thor.Address{tt.to}, all...)
			err := run(t, l, records, func(r *Registry) error {
				return r.Transfer(tt.from, tt.to, tt.amount, tt.signer)
			})
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	require.NoError(t, run(t, l, all, func(r *Registry) error {
		amount, err := r.Amount(a)
		require.NoError(t, err)
		assert.Equal(t, uint64(60), amount)
		amount, err = r.Amount(b)
		require.NoError(t, err)
		assert.Equal(t, uint64(40), amount)
		return nil
	}))
}

func TestTransferControl(t *testing.T) {
	l := newLedger(t)
	a := thor.BytesToAddress([]byte("acc-a"))
	records := []thor.Address{a}

	vault := thor.BytesToAddress([]byte("vault"))
	derived, nonce := thor.FindDerivedAddress("seed", vault.Bytes())

	require.NoError(t, run(t, l, records, func(r *Registry) error {
		return r.Mint(a, mintA, alice, 1)
	}))

	// alice hands control to the derived address
	require.NoError(t, run(t, l, records, func(r *Registry) error {
		return r.TransferControl(a, KeySigner(alice), derived)
	}))

	// alice no longer controls it
	err := run(t, l, records, func(r *Registry) error {
		return r.TransferControl(a, KeySigner(alice), alice)
	})
	assert.ErrorIs(t, err, ErrNotOwner)

	// wrong derivation
	err = run(t, l, records, func(r *Registry) error {
		return r.TransferControl(a, NewDerivedSigner("seed", nonce, alice.Bytes()), alice)
	})
	assert.Error(t, err)

	require.NoError(t, run(t, l, records, func(r *Registry) error {
		if err := r.TransferControl(a, NewDerivedSigner("seed", nonce, vault.Bytes()), alice); err != nil {
			return err
		}
		acc, err := r.Get(a)
		require.NoError(t, err)
		assert.Equal(t, alice, acc.Owner)
		return nil
	}))
}

func TestOpenClose(t *testing.T) {
	l := newLedger(t)
	a := thor.BytesToAddress([]byte("acc-a"))
	records := []thor.Address{a}

	require.NoError(t, run(t, l, records, func(r *Registry) error {
		return r.Open(a, mintA, alice)
	}))
	assert.ErrorIs(t, run(t, l, records, func(r *Registry) error {
		return r.Open(a, mintA, alice)
	}), ErrAccountExists)

	require.NoError(t, run(t, l, records, func(r *Registry) error {
		return r.Mint(a, mintA, alice, 5)
	}))
	assert.ErrorIs(t, run(t, l, records, func(r *Registry) error {
		return r.Mint(a, mintB, alice, 5)
	}), ErrMintMismatch)
	assert.ErrorIs(t, run(t, l, records, func(r *Registry) error {
		return r.Close(a, KeySigner(alice))
	}), ErrAccountNotEmpty)
	assert.ErrorIs(t, run(t, l, records, func(r *Registry) error {
		return r.Close(a, KeySigner(bob))
	}), ErrNotOwner)

	require.NoError(t, run(t, l, records, func(r *Registry) error {
		if err := r.Transfer(a, a, 5, KeySigner(alice)); err != nil {
			return err
		}
		acc, err := r.Get(a)
		require.NoError(t, err)
		assert.Equal(t, uint64(5), acc.Amount)
		return nil
	}))
}
