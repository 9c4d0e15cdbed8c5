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
	"fmt"
	"log/slog"
	"net/netip"

	"github.com/spacechunks/caretaker/cloud"
	"github.com/spacechunks/caretaker/dns"
)

// sink performs notification side effects on detached goroutines. it
// shares no state with the controller, it only receives immutable
// snapshots.
type sink struct {
	logger   *slog.Logger
	dns      *dns.Client
	password string
	rconPort uint16
}

func NewNotifier(logger *slog.Logger, cfg Config) Notifier {
	s := &sink{
		logger:   logger.With("component", "notifier"),
		password: string(cfg.Server.Password),
		rconPort: cfg.Server.RconPort,
	}
	if cfg.DynDNS != nil {
		s.dns = dns.New(cfg.DynDNS.UpdateURL, cfg.DynDNS.Username, string(cfg.DynDNS.Password))
	}
	return s
}

func (s *sink) UpdateDNS(ctx context.Context, hostname string, ip netip.Addr) {
	if s.dns == nil {
		return
	}
	ctx = context.WithoutCancel(ctx)
	go func() {
		s.logger.InfoContext(ctx, "updating dyndns entry", "hostname", hostname, "ip", ip)
		if err := s.dns.Update(ctx, hostname, ip); err != nil {
			s.logger.ErrorContext(ctx, "failed to update dyndns entry",
				"hostname", hostname,
				"ip", ip,
				"err", err,
			)
		}
	}()
}

func (s *sink) Announce(ctx context.Context, srv cloud.Server, hostname string, cred cloud.Credential) {
	ctx = context.WithoutCancel(ctx)
	go func() {
		s.logger.InfoContext(ctx, "server has been set up and is starting",
			"server_id", srv.ID,
			"ip", srv.IPv4,
			"hostname", hostname,
			"access", credentialNote(cred),
		)
		fmt.Println("Server has been set up and is starting")
		fmt.Println("Connect using")
		fmt.Printf("  connect %s; password %s\n", hostname, s.password)
	}()
}

func credentialNote(cred cloud.Credential) string {
	switch cred.(type) {
	case cloud.PasswordCredential:
		return "initial root password"
	case cloud.KeyCredential:
		return "ephemeral deploy key (discarded)"
	default:
		return "unknown"
	}
}
