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

package caretaker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/spacechunks/caretaker/cloud"
	"github.com/spacechunks/caretaker/provision"
)

// AlreadyRunningError is a control-flow signal, not a failure: an
// instance was found before provisioning a new one. the adoption logic
// consumes the conflicting record.
type AlreadyRunningError struct {
	Server cloud.Server
}

func (e *AlreadyRunningError) Error() string {
	return fmt.Sprintf("server %s already running", e.Server.ID)
}

// Pipeline is the provisioning pipeline: spawn, wait for an address,
// open a remote session and run the setup sequence.
type Pipeline struct {
	logger   *slog.Logger
	cfg      Config
	setup    provision.Config
	cloud    cloud.Cloud
	dialer   provision.Dialer
	notifier Notifier

	// bootTimeout bounds how long we wait for the provider to assign
	// a public address. WaitForIP itself polls forever.
	bootTimeout time.Duration
}

func NewPipeline(
	logger *slog.Logger,
	cfg Config,
	setup provision.Config,
	cl cloud.Cloud,
	dialer provision.Dialer,
	notifier Notifier,
) *Pipeline {
	return &Pipeline{
		logger:      logger.With("component", "pipeline"),
		cfg:         cfg,
		setup:       setup,
		cloud:       cl,
		dialer:      dialer,
		notifier:    notifier,
		bootTimeout: 10 * time.Minute,
	}
}

// Launch provisions one instance end to end and returns its record.
// a setup failure leaves the instance running so the operator can
// inspect it, cleanup is never attempted automatically.
func (p *Pipeline) Launch(ctx context.Context) (cloud.Server, error) {
	existing, err := p.cloud.List(ctx)
	if err != nil {
		return cloud.Server{}, fmt.Errorf("list servers: %w", err)
	}
	if len(existing) > 0 {
		p.logger.WarnContext(ctx, "non-empty server list while starting",
			"server_id", existing[0].ID,
			"count", len(existing),
		)
		return cloud.Server{}, &AlreadyRunningError{Server: existing[0]}
	}

	created, err := p.cloud.Spawn(ctx, p.cfg.Server.SSHKeys)
	if err != nil {
		return cloud.Server{}, fmt.Errorf("spawn server: %w", err)
	}

	bootCtx, cancel := context.WithTimeout(ctx, p.bootTimeout)
	defer cancel()

	srv, err := p.cloud.WaitForIP(bootCtx, created.ID)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return cloud.Server{}, cloud.ErrStartTimeout
		}
		return cloud.Server{}, fmt.Errorf("wait for ip: %w", err)
	}
	p.logger.InfoContext(ctx, "server is booting", "server_id", srv.ID, "ip", srv.IPv4)

	hostname := srv.IPv4.String()
	if p.cfg.DynDNS != nil {
		hostname = p.cfg.DynDNS.Hostname
		p.notifier.UpdateDNS(ctx, hostname, srv.IPv4)
	}

	sess, err := p.dialer.Dial(ctx, srv.IPv4, created.Credential)
	if err != nil {
		return cloud.Server{}, fmt.Errorf("open session: %w", err)
	}

	if err := provision.Run(ctx, p.logger, sess, p.setup); err != nil {
		_ = sess.Close()
		// the instance stays up for inspection.
		return cloud.Server{}, fmt.Errorf("setup server: %w", err)
	}

	if err := sess.Close(); err != nil {
		p.logger.WarnContext(ctx, "failed to close session", "err", err)
	}

	p.notifier.Announce(ctx, srv, hostname, created.Credential)
	return srv, nil
}
