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

// Package caretaker schedules a single ephemeral game server: it
// provisions an instance when a run window opens and tears it down
// once the stop window is reached and nobody is playing anymore.
package caretaker

import (
	"context"
	"errors"
	"log/slog"
	"net/netip"
	"time"

	"github.com/spacechunks/caretaker/cloud"
)

const defaultTickInterval = 60 * time.Second

type State string

const (
	StateIdle     State = "IDLE"
	StateActive   State = "ACTIVE"
	StateDraining State = "DRAINING"
)

// Oracle reports how many players are connected to the instance.
type Oracle interface {
	PlayerCount(ctx context.Context, addr netip.Addr) (int, error)
}

// Notifier receives fire-and-forget side effects of controller
// transitions. implementations must not block; failures are theirs to
// log, they never influence the controllers state.
type Notifier interface {
	UpdateDNS(ctx context.Context, hostname string, ip netip.Addr)
	Announce(ctx context.Context, srv cloud.Server, hostname string, cred cloud.Credential)
}

// Launcher runs the full provisioning pipeline.
type Launcher interface {
	Launch(ctx context.Context) (cloud.Server, error)
}

// Controller is the scheduling state machine. it is the sole owner of
// the tracked instance, everything it mutates is confined to the poll
// goroutine so no locking is needed.
//
// the controller is level-triggered: every tick re-evaluates window
// membership from the schedules, so a missed tick self-corrects on the
// next poll.
type Controller struct {
	logger   *slog.Logger
	cfg      Config
	schedule Schedule

	cloud    cloud.Cloud
	launcher Launcher
	oracle   Oracle
	notifier Notifier

	grace  time.Duration
	ticker *time.Ticker
	stop   chan bool
	now    func() time.Time

	active     *cloud.Server
	drainStart time.Time
}

func NewController(
	logger *slog.Logger,
	cfg Config,
	schedule Schedule,
	cl cloud.Cloud,
	launcher Launcher,
	oracle Oracle,
	notifier Notifier,
) *Controller {
	return &Controller{
		logger:   logger.With("component", "controller"),
		cfg:      cfg,
		schedule: schedule,
		cloud:    cl,
		launcher: launcher,
		oracle:   oracle,
		notifier: notifier,
		grace:    cfg.GraceDuration(),
		ticker:   time.NewTicker(defaultTickInterval),
		stop:     make(chan bool),
		now:      time.Now,
	}
}

// State derives the current lifecycle state from the tracked instance
// and the drain timer.
func (c *Controller) State() State {
	switch {
	case c.active == nil:
		return StateIdle
	case c.drainStart.IsZero():
		return StateActive
	default:
		return StateDraining
	}
}

// Run polls until the context is cancelled or Stop is called.
// cancellation leaves a tracked instance untouched on purpose: with
// manage_existing enabled the next daemon run adopts it again.
func (c *Controller) Run(ctx context.Context) {
	if c.cfg.Server.ManageExisting {
		c.adoptExisting(ctx)
	}
	for {
		select {
		case <-c.ticker.C:
			c.tick(ctx)
		case <-ctx.Done():
			return
		case <-c.stop:
			return
		}
	}
}

func (c *Controller) Stop() {
	c.ticker.Stop()
	c.stop <- true
}

// adoptExisting takes ownership of an instance that survived a
// previous daemon run instead of provisioning a second one.
func (c *Controller) adoptExisting(ctx context.Context) {
	servers, err := c.cloud.List(ctx)
	if err != nil {
		c.logger.ErrorContext(ctx, "failed to list servers on start-up", "err", err)
		return
	}
	if len(servers) == 0 {
		return
	}
	srv := servers[0]
	c.logger.InfoContext(ctx, "taking ownership of existing server",
		"server_id", srv.ID,
		"ip", srv.IPv4,
	)
	c.active = &srv
}

// tick evaluates window membership once and performs at most one
// lifecycle action. every error is logged and ends the tick, the loop
// itself never terminates because of an operational failure.
func (c *Controller) tick(ctx context.Context) {
	var (
		now       = c.now()
		nextStart = c.schedule.NextStart(now)
		nextStop  = c.schedule.NextStop(now)
		inRun     = nextStart.After(nextStop)
	)

	if c.active == nil && inRun {
		c.drainStart = time.Time{}
		c.launch(ctx)
		return
	}

	if c.active != nil && inRun {
		// back inside the run window, a pending drain is off again.
		if !c.drainStart.IsZero() {
			c.logger.InfoContext(ctx, "re-entered run window, aborting drain", "server_id", c.active.ID)
			c.drainStart = time.Time{}
		}
		return
	}

	if c.active != nil {
		c.drain(ctx, now)
	}
}

func (c *Controller) launch(ctx context.Context) {
	c.logger.InfoContext(ctx, "inside run window, starting server")

	srv, err := c.launcher.Launch(ctx)
	if err == nil {
		c.active = &srv
		return
	}

	var already *AlreadyRunningError
	if errors.As(err, &already) && c.cfg.Server.ManageExisting {
		c.logger.InfoContext(ctx, "taking ownership of existing server",
			"server_id", already.Server.ID,
			"ip", already.Server.IPv4,
		)
		if c.cfg.DynDNS != nil {
			c.notifier.UpdateDNS(ctx, c.cfg.DynDNS.Hostname, already.Server.IPv4)
		}
		srv := already.Server
		c.active = &srv
		return
	}

	// stay idle, the next tick retries.
	c.logger.ErrorContext(ctx, "failed to start server", "err", err)
}

func (c *Controller) drain(ctx context.Context, now time.Time) {
	if c.drainStart.IsZero() {
		c.drainStart = now
		c.logger.InfoContext(ctx, "inside stop window, waiting for server to empty",
			"server_id", c.active.ID,
			"grace", c.grace,
		)
	}

	stop := false
	if now.Sub(c.drainStart) > c.grace {
		c.logger.WarnContext(ctx, "server took longer than the grace time to empty, shutting down with players left",
			"server_id", c.active.ID,
			"grace", c.grace,
		)
		stop = true
	} else {
		count, err := c.oracle.PlayerCount(ctx, c.active.IPv4)
		switch {
		case err != nil:
			// unknown occupancy counts as occupied. the grace timer
			// still bounds how long a broken oracle keeps the
			// instance alive.
			c.logger.ErrorContext(ctx, "failed to get player count", "server_id", c.active.ID, "err", err)
		case count == 0:
			stop = true
		default:
			c.logger.InfoContext(ctx, "want to stop server, but players are still connected",
				"server_id", c.active.ID,
				"players", count,
			)
		}
	}

	if !stop {
		return
	}

	c.logger.InfoContext(ctx, "stopping server", "server_id", c.active.ID)
	if err := c.cloud.Kill(ctx, c.active.ID); err != nil {
		c.logger.ErrorContext(ctx, "failed to stop server", "server_id", c.active.ID, "err", err)
		return
	}
	c.active = nil
	c.drainStart = time.Time{}
}
