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
	"crypto/ed25519"
	"crypto/rand"
	"fmt"
	"net/netip"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	gossh "golang.org/x/crypto/ssh"
)

// how long to wait between polls while the provider has not
// assigned a public address yet.
const ipPollInterval = 500 * time.Millisecond

// Server identifies one provisioned instance. records are immutable
// once returned by a provider.
type Server struct {
	ID      string
	Name    string
	Created time.Time
	IPv4    netip.Addr
	IPv6    netip.Addr
}

// Created is the result of spawning a new instance. the credential is
// handed to the provisioning session exactly once and never persisted.
type Created struct {
	ID         string
	Credential Credential
}

// Credential is how the provisioning session authenticates against a
// freshly created instance. either the providers initial root password
// or an ephemeral deploy key generated at create time.
type Credential interface {
	credential()
}

type PasswordCredential struct {
	Password string
}

func (PasswordCredential) credential() {}

type KeyCredential struct {
	PrivateKey    ed25519.PrivateKey
	AuthorizedKey string
}

func (KeyCredential) credential() {}

// Cloud is implemented once per provider and consumed polymorphically
// by the lifecycle controller.
type Cloud interface {
	// List returns all instances belonging to us. instances are
	// filtered by tag/label, an empty result is not an error.
	List(ctx context.Context) ([]Server, error)

	// Spawn creates exactly one instance authorized for the given
	// operator ssh keys plus an ephemeral deploy key. the deploy key
	// is removed from the provider account again before Spawn returns,
	// no matter if the create call succeeded or not.
	Spawn(ctx context.Context, sshKeys []string) (Created, error)

	// Kill destroys the instance with the given id.
	Kill(ctx context.Context, id string) error

	// WaitForIP polls the instance until a public IPv4 address has
	// been assigned and returns the fully populated record. no overall
	// timeout is enforced here, bound the passed context instead.
	WaitForIP(ctx context.Context, id string) (Server, error)
}

// NewDeployKey generates the ephemeral ed25519 key pair registered
// with the provider for the duration of a single create call.
func NewDeployKey() (KeyCredential, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return KeyCredential{}, fmt.Errorf("generate deploy key: %w", err)
	}
	sshPub, err := gossh.NewPublicKey(pub)
	if err != nil {
		return KeyCredential{}, fmt.Errorf("convert deploy key: %w", err)
	}
	authorized := strings.TrimSpace(string(gossh.MarshalAuthorizedKey(sshPub))) + " caretaker-deploy"
	return KeyCredential{
		PrivateKey:    priv,
		AuthorizedKey: authorized,
	}, nil
}

func instanceName() string {
	return "caretaker-" + uuid.NewString()[:8]
}

// pollIP drives the WaitForIP implementations of all providers. get is
// called every interval until the returned record carries a public
// IPv4 address.
func pollIP(
	ctx context.Context,
	interval time.Duration,
	get func(context.Context) (Server, error),
) (Server, error) {
	for {
		srv, err := get(ctx)
		if err != nil {
			return Server{}, err
		}
		if srv.IPv4.IsValid() && !srv.IPv4.IsUnspecified() {
			return srv, nil
		}
		select {
		case <-ctx.Done():
			return Server{}, ctx.Err()
		case <-time.After(interval):
		}
	}
}

// keyHandle adapts a providers ssh key CRUD calls so that deploy key
// bookkeeping does not have to be reimplemented per provider.
type keyHandle[T any] struct {
	register func(context.Context) (T, error)
	remove   func(context.Context, T) error
}

// withDeployKey registers the ephemeral deploy key, runs fn and removes
// the key again afterwards. removal happens exactly once on both the
// success and the failure path of fn. a removal failure after fn
// succeeded is an error of its own, a removal failure after fn failed
// is attached to fns error instead of masking it.
func withDeployKey[T any](ctx context.Context, k keyHandle[T], fn func(T) error) error {
	id, err := k.register(ctx)
	if err != nil {
		return fmt.Errorf("register deploy key: %w", err)
	}

	fnErr := fn(id)

	if err := k.remove(ctx, id); err != nil {
		if fnErr != nil {
			return multierror.Append(fnErr, fmt.Errorf("remove deploy key: %w", err))
		}
		return fmt.Errorf("remove deploy key: %w", err)
	}
	return fnErr
}

// lookupOrCreateKey resolves a configured operator public key to the
// providers key id, registering the key if the account does not know
// it yet. list returns the accounts keys indexed by public key.
func lookupOrCreateKey[T any](
	ctx context.Context,
	pub string,
	list func(context.Context) (map[string]T, error),
	create func(context.Context, string) (T, error),
) (T, error) {
	var zero T
	known, err := list(ctx)
	if err != nil {
		return zero, fmt.Errorf("list ssh keys: %w", err)
	}
	if id, ok := known[strings.TrimSpace(pub)]; ok {
		return id, nil
	}
	id, err := create(ctx, pub)
	if err != nil {
		return zero, fmt.Errorf("create ssh key: %w", err)
	}
	return id, nil
}
