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

// Package provision turns a bare instance with an ip address into a
// running game server over an authenticated remote command channel.
package provision

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/netip"
	"strings"
	"syscall"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/spacechunks/caretaker/cloud"
	"golang.org/x/crypto/ssh"
)

var (
	// ErrUnauthorized means the instance rejected our credentials.
	// never retried.
	ErrUnauthorized = errors.New("invalid credentials")

	// ErrConnectTimeout means the instance did not accept a connection
	// within the dialers wall-clock ceiling.
	ErrConnectTimeout = errors.New("connection timed out")
)

// Result is the captured outcome of one remote command.
type Result struct {
	Output []byte
	Code   int
}

// Success is true only for a zero exit code.
func (r Result) Success() bool {
	return r.Code == 0
}

// Session is an open remote command channel. it is reusable for
// multiple sequential commands.
type Session interface {
	// Exec runs a single command and returns its combined output and
	// exit code. the output is fully drained before Exec returns. a
	// non-zero exit code is a Result, not an error.
	Exec(ctx context.Context, cmd string) (Result, error)

	// Close sends a graceful disconnect to the instance.
	Close() error
}

// Dialer opens a session against a freshly created instance.
type Dialer interface {
	Dial(ctx context.Context, addr netip.Addr, cred cloud.Credential) (Session, error)
}

// SSHDialer connects to port 22 as root, retrying while the instance
// is still booting. an attempt failing with a rejected credential
// aborts immediately, everything is bounded by Ceiling overall.
type SSHDialer struct {
	logger *slog.Logger

	// Interval is the fixed delay between connection attempts.
	Interval time.Duration

	// Ceiling bounds the total wall-clock time spent connecting.
	Ceiling time.Duration
}

func NewSSHDialer(logger *slog.Logger) *SSHDialer {
	return &SSHDialer{
		logger:   logger.With("component", "ssh"),
		Interval: 5 * time.Second,
		Ceiling:  5 * time.Minute,
	}
}

func (d *SSHDialer) Dial(ctx context.Context, addr netip.Addr, cred cloud.Credential) (Session, error) {
	auth, err := authMethod(cred)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, d.Ceiling)
	defer cancel()

	var (
		attempt uint
		sess    Session
	)
	op := func() error {
		attempt++
		client, err := dialOnce(addr, auth)
		if err != nil {
			if errors.Is(err, ErrUnauthorized) {
				return backoff.Permanent(err)
			}
			if !retryableDialErr(err) {
				return backoff.Permanent(err)
			}
			d.logger.WarnContext(ctx, "failed to connect", "addr", addr, "attempt", attempt, "err", err)
			return err
		}
		sess = &sshSession{client: client}
		return nil
	}

	pol := backoff.WithContext(backoff.NewConstantBackOff(d.Interval), ctx)
	if err := backoff.Retry(op, pol); err != nil {
		if ctx.Err() != nil && !errors.Is(err, ErrUnauthorized) {
			return nil, ErrConnectTimeout
		}
		return nil, err
	}
	return sess, nil
}

func dialOnce(addr netip.Addr, auth ssh.AuthMethod) (*ssh.Client, error) {
	cfg := &ssh.ClientConfig{
		User: "root",
		Auth: []ssh.AuthMethod{auth},
		// instances are ephemeral, their host keys change on every
		// provisioning run.
		HostKeyCallback: ssh.InsecureIgnoreHostKey(),
		Timeout:         10 * time.Second,
	}
	client, err := ssh.Dial("tcp", net.JoinHostPort(addr.String(), "22"), cfg)
	if err != nil {
		if strings.Contains(err.Error(), "unable to authenticate") {
			return nil, ErrUnauthorized
		}
		return nil, err
	}
	return client, nil
}

// retryableDialErr reports whether the connection attempt failed
// because the instance is not accepting connections yet.
func retryableDialErr(err error) bool {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return true
	}
	return errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.EHOSTUNREACH)
}

func authMethod(cred cloud.Credential) (ssh.AuthMethod, error) {
	switch c := cred.(type) {
	case cloud.PasswordCredential:
		return ssh.Password(c.Password), nil
	case cloud.KeyCredential:
		signer, err := ssh.NewSignerFromKey(c.PrivateKey)
		if err != nil {
			return nil, fmt.Errorf("deploy key signer: %w", err)
		}
		return ssh.PublicKeys(signer), nil
	default:
		return nil, fmt.Errorf("unsupported credential type %T", cred)
	}
}

type sshSession struct {
	client *ssh.Client
}

func (s *sshSession) Exec(ctx context.Context, cmd string) (Result, error) {
	sess, err := s.client.NewSession()
	if err != nil {
		return Result{}, fmt.Errorf("open channel: %w", err)
	}
	defer sess.Close()

	stop := context.AfterFunc(ctx, func() {
		_ = sess.Close()
	})
	defer stop()

	out, err := sess.CombinedOutput(cmd)
	if err != nil {
		var exitErr *ssh.ExitError
		if errors.As(err, &exitErr) {
			return Result{Output: out, Code: exitErr.ExitStatus()}, nil
		}
		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("exec: %w", err)
	}
	return Result{Output: out}, nil
}

func (s *sshSession) Close() error {
	return s.client.Close()
}
