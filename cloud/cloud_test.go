/*
 Caretaker, a scheduler for ephemeral game servers.
 Copyright (C) 2025 Yannic Rieger <oss@76k.io>

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package cloud

import (
	"context"
	"errors"
	"net/netip"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPollIPWaitsForAddress(t *testing.T) {
	var (
		ctx   = context.Background()
		addr  = netip.MustParseAddr("203.0.113.10")
		calls int
	)

	srv, err := pollIP(ctx, time.Millisecond, func(ctx context.Context) (Server, error) {
		calls++
		if calls < 4 {
			return Server{ID: "42"}, nil
		}
		return Server{ID: "42", IPv4: addr}, nil
	})

	require.NoError(t, err)
	require.Equal(t, 4, calls)
	require.Equal(t, addr, srv.IPv4)
}

func TestPollIPPropagatesGetError(t *testing.T) {
	_, err := pollIP(context.Background(), time.Millisecond, func(ctx context.Context) (Server, error) {
		return Server{}, errors.New("some error")
	})
	require.Error(t, err)
}

func TestPollIPStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pollIP(ctx, time.Millisecond, func(ctx context.Context) (Server, error) {
		return Server{ID: "42"}, nil
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestWithDeployKey(t *testing.T) {
	fnErr := errors.New("create failed")
	removeErr := errors.New("remove failed")

	tests := []struct {
		name      string
		fnErr     error
		removeErr error
		check     func(*testing.T, error)
	}{
		{
			name: "key is removed on success",
			check: func(t *testing.T, err error) {
				require.NoError(t, err)
			},
		},
		{
			name:  "key is removed when fn fails",
			fnErr: fnErr,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, fnErr)
			},
		},
		{
			name:      "removal failure after success is an error",
			removeErr: removeErr,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, removeErr)
			},
		},
		{
			name:      "removal failure does not mask the fn error",
			fnErr:     fnErr,
			removeErr: removeErr,
			check: func(t *testing.T, err error) {
				require.ErrorIs(t, err, fnErr)
				require.ErrorIs(t, err, removeErr)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var removed int
			k := keyHandle[int]{
				register: func(ctx context.Context) (int, error) {
					return 7, nil
				},
				remove: func(ctx context.Context, id int) error {
					require.Equal(t, 7, id)
					removed++
					return tt.removeErr
				},
			}

			err := withDeployKey(context.Background(), k, func(id int) error {
				require.Equal(t, 7, id)
				return tt.fnErr
			})

			require.Equal(t, 1, removed)
			tt.check(t, err)
		})
	}
}

func TestWithDeployKeyRegisterFailure(t *testing.T) {
	registerErr := errors.New("register failed")
	k := keyHandle[int]{
		register: func(ctx context.Context) (int, error) {
			return 0, registerErr
		},
		remove: func(ctx context.Context, id int) error {
			t.Fatal("remove must not be called")
			return nil
		},
	}

	err := withDeployKey(context.Background(), k, func(id int) error {
		t.Fatal("fn must not be called")
		return nil
	})
	require.ErrorIs(t, err, registerErr)
}

func TestLookupOrCreateKey(t *testing.T) {
	var (
		ctx = context.Background()
		pub = "ssh-ed25519 AAAA me@host"
	)

	t.Run("known key is resolved without creating", func(t *testing.T) {
		id, err := lookupOrCreateKey(ctx, pub,
			func(ctx context.Context) (map[string]int, error) {
				return map[string]int{pub: 7}, nil
			},
			func(ctx context.Context, p string) (int, error) {
				t.Fatal("create must not be called")
				return 0, nil
			},
		)
		require.NoError(t, err)
		require.Equal(t, 7, id)
	})

	t.Run("unknown key is created", func(t *testing.T) {
		id, err := lookupOrCreateKey(ctx, pub,
			func(ctx context.Context) (map[string]int, error) {
				return map[string]int{}, nil
			},
			func(ctx context.Context, p string) (int, error) {
				require.Equal(t, pub, p)
				return 9, nil
			},
		)
		require.NoError(t, err)
		require.Equal(t, 9, id)
	})
}

func TestNewDeployKey(t *testing.T) {
	cred, err := NewDeployKey()
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(cred.AuthorizedKey, "ssh-ed25519 "))
	require.True(t, strings.HasSuffix(cred.AuthorizedKey, " caretaker-deploy"))
	require.Len(t, cred.PrivateKey, 64)
}
