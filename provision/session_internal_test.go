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

package provision

import (
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/spacechunks/caretaker/cloud"
	"github.com/stretchr/testify/require"
)

type timeoutErr struct{}

func (timeoutErr) Error() string   { return "i/o timeout" }
func (timeoutErr) Timeout() bool   { return true }
func (timeoutErr) Temporary() bool { return true }

func TestRetryableDialErr(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{
			name:      "connection refused while sshd is not up yet",
			err:       fmt.Errorf("dial tcp: %w", syscall.ECONNREFUSED),
			retryable: true,
		},
		{
			name:      "host unreachable while the network comes up",
			err:       fmt.Errorf("dial tcp: %w", syscall.EHOSTUNREACH),
			retryable: true,
		},
		{
			name:      "timeout",
			err:       timeoutErr{},
			retryable: true,
		},
		{
			name:      "anything else",
			err:       errors.New("no route configured"),
			retryable: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.retryable, retryableDialErr(tt.err))
		})
	}
}

func TestAuthMethod(t *testing.T) {
	t.Run("password", func(t *testing.T) {
		m, err := authMethod(cloud.PasswordCredential{Password: "hunter2"})
		require.NoError(t, err)
		require.NotNil(t, m)
	})

	t.Run("deploy key", func(t *testing.T) {
		cred, err := cloud.NewDeployKey()
		require.NoError(t, err)

		m, err := authMethod(cred)
		require.NoError(t, err)
		require.NotNil(t, m)
	})

	t.Run("unsupported credential", func(t *testing.T) {
		_, err := authMethod(nil)
		require.Error(t, err)
	})
}
