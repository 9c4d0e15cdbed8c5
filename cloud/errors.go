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
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized means the provider rejected our credentials.
	// not retryable.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrServerNotFound is returned for operations on a stale id.
	ErrServerNotFound = errors.New("server not found")

	// ErrStartTimeout is surfaced by callers of WaitForIP once their
	// boot ceiling has elapsed without the instance getting an address.
	ErrStartTimeout = errors.New("server boot timed out")
)

// NetworkError wraps transport-level failures. the cause is
// intentionally opaque.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("network error: %v", e.Err)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// InvalidResponseError means the provider answered with an unparsable
// or unexpected payload.
type InvalidResponseError struct {
	Body string
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("unexpected response from provider: %s", e.Body)
}
