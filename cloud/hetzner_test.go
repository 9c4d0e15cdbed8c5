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
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"testing"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/stretchr/testify/require"
)

func newTestHetzner(t *testing.T, handler http.Handler) *Hetzner {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewHetzner("token", "nbg1", "cx22", "docker-ce", hcloud.WithEndpoint(srv.URL))
}

func TestHetznerList(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /servers", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, hetznerLabelSelector, r.URL.Query().Get("label_selector"))
		fmt.Fprint(w, `{
			"servers": [
				{
					"id": 4711,
					"name": "caretaker-ab12cd34",
					"created": "2025-06-07T12:00:00Z",
					"public_net": {
						"ipv4": {"ip": "203.0.113.10"}
					}
				}
			],
			"meta": {
				"pagination": {"page": 1, "per_page": 25, "last_page": 1, "total_entries": 1}
			}
		}`)
	})

	servers, err := newTestHetzner(t, mux).List(context.Background())
	require.NoError(t, err)
	require.Len(t, servers, 1)
	require.Equal(t, "4711", servers[0].ID)
	require.Equal(t, "caretaker-ab12cd34", servers[0].Name)
	require.Equal(t, netip.MustParseAddr("203.0.113.10"), servers[0].IPv4)
	require.Equal(t, time.Date(2025, 6, 7, 12, 0, 0, 0, time.UTC), servers[0].Created)
}

func TestHetznerErrorMapping(t *testing.T) {
	tests := []struct {
		name string
		code string
		err  error
	}{
		{
			name: "unauthorized",
			code: "unauthorized",
			err:  ErrUnauthorized,
		},
		{
			name: "forbidden",
			code: "forbidden",
			err:  ErrUnauthorized,
		},
		{
			name: "not found",
			code: "not_found",
			err:  ErrServerNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHetzner(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				fmt.Fprintf(w, `{"error": {"code": %q, "message": "nope"}}`, tt.code)
			}))

			_, err := h.List(context.Background())
			require.ErrorIs(t, err, tt.err)
		})
	}
}

func TestHetznerSpawnRemovesDeployKey(t *testing.T) {
	tests := []struct {
		name      string
		createErr bool
	}{
		{
			name: "create succeeds",
		},
		{
			name:      "create fails",
			createErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var keyDeletes int

			mux := http.NewServeMux()
			mux.HandleFunc("POST /ssh_keys", func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(w, `{"ssh_key": {"id": 7, "name": "caretaker-deploy-key"}}`)
			})
			mux.HandleFunc("DELETE /ssh_keys/7", func(w http.ResponseWriter, r *http.Request) {
				keyDeletes++
				w.WriteHeader(http.StatusNoContent)
			})
			mux.HandleFunc("POST /servers", func(w http.ResponseWriter, r *http.Request) {
				if tt.createErr {
					w.WriteHeader(http.StatusInternalServerError)
					fmt.Fprint(w, `{"error": {"code": "unknown_error", "message": "boom"}}`)
					return
				}
				w.WriteHeader(http.StatusCreated)
				fmt.Fprint(w, `{"server": {"id": 4711, "name": "caretaker-ab12cd34"}}`)
			})

			created, err := newTestHetzner(t, mux).Spawn(context.Background(), nil)

			require.Equal(t, 1, keyDeletes)

			if tt.createErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, "4711", created.ID)
			require.IsType(t, KeyCredential{}, created.Credential)
		})
	}
}
