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
	"log/slog"
	"net/netip"
	"os"
	"testing"
	"time"

	"github.com/spacechunks/caretaker/cloud"
	"github.com/spacechunks/caretaker/internal/mock"
	mocky "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type controllerMocks struct {
	cloud    *mock.MockCloud
	launcher *mock.MockLauncher
	oracle   *mock.MockOracle
	notifier *mock.MockNotifier
}

func TestControllerTick(t *testing.T) {
	var (
		addr = netip.MustParseAddr("203.0.113.10")
		srv  = cloud.Server{
			ID:   "42",
			Name: "caretaker-ab12cd34",
			IPv4: addr,
		}
		// run window is 18:00 -> 02:00 the next day.
		insideRun  = time.Date(2025, 6, 7, 19, 0, 0, 0, time.UTC)
		outsideRun = time.Date(2025, 6, 7, 3, 0, 0, 0, time.UTC)
	)

	tests := []struct {
		name  string
		cfg   Config
		now   time.Time
		ticks int
		prep  func(*testing.T, controllerMocks)
		setup func(*Controller)
		check func(*testing.T, *Controller)
	}{
		{
			name:  "idle inside run window starts server",
			now:   insideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				m.launcher.EXPECT().
					Launch(mocky.Anything).
					Return(srv, nil).
					Once()
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateActive, c.State())
				require.Equal(t, srv, *c.active)
			},
		},
		{
			name:  "idle outside run window does nothing",
			now:   outsideRun,
			ticks: 1,
			prep:  func(t *testing.T, m controllerMocks) {},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateIdle, c.State())
			},
		},
		{
			name:  "start failure stays idle and retries next tick",
			now:   insideRun,
			ticks: 2,
			prep: func(t *testing.T, m controllerMocks) {
				m.launcher.EXPECT().
					Launch(mocky.Anything).
					Return(cloud.Server{}, errors.New("some error")).
					Twice()
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateIdle, c.State())
			},
		},
		{
			name: "already running server is adopted when manage_existing is set",
			cfg: Config{
				Server: ServerConfig{ManageExisting: true},
				DynDNS: &DynDNSConfig{Hostname: "play.example.com"},
			},
			now:   insideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				m.launcher.EXPECT().
					Launch(mocky.Anything).
					Return(cloud.Server{}, &AlreadyRunningError{Server: srv}).
					Once()
				m.notifier.EXPECT().
					UpdateDNS(mocky.Anything, "play.example.com", addr).
					Once()
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateActive, c.State())
				require.Equal(t, srv, *c.active)
			},
		},
		{
			name:  "already running server is not adopted without manage_existing",
			now:   insideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				m.launcher.EXPECT().
					Launch(mocky.Anything).
					Return(cloud.Server{}, &AlreadyRunningError{Server: srv}).
					Once()
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateIdle, c.State())
			},
		},
		{
			name:  "empty server is stopped in stop window",
			now:   outsideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				m.oracle.EXPECT().
					PlayerCount(mocky.Anything, addr).
					Return(0, nil).
					Once()
				m.cloud.EXPECT().
					Kill(mocky.Anything, srv.ID).
					Return(nil).
					Once()
			},
			setup: func(c *Controller) {
				s := srv
				c.active = &s
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateIdle, c.State())
				require.True(t, c.drainStart.IsZero())
			},
		},
		{
			name:  "occupied server keeps draining",
			now:   outsideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				m.oracle.EXPECT().
					PlayerCount(mocky.Anything, addr).
					Return(3, nil).
					Once()
			},
			setup: func(c *Controller) {
				s := srv
				c.active = &s
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateDraining, c.State())
			},
		},
		{
			name:  "server is force stopped once the grace time is exceeded",
			now:   outsideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				// no PlayerCount expectation on purpose, occupancy
				// does not matter anymore at this point.
				m.cloud.EXPECT().
					Kill(mocky.Anything, srv.ID).
					Return(nil).
					Once()
			},
			setup: func(c *Controller) {
				s := srv
				c.active = &s
				c.drainStart = outsideRun.Add(-31 * time.Minute)
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateIdle, c.State())
			},
		},
		{
			name:  "oracle failure keeps the server alive",
			now:   outsideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				m.oracle.EXPECT().
					PlayerCount(mocky.Anything, addr).
					Return(0, errors.New("some error")).
					Once()
			},
			setup: func(c *Controller) {
				s := srv
				c.active = &s
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateDraining, c.State())
			},
		},
		{
			name:  "re-entering the run window aborts a pending drain",
			now:   insideRun,
			ticks: 1,
			prep:  func(t *testing.T, m controllerMocks) {},
			setup: func(c *Controller) {
				s := srv
				c.active = &s
				c.drainStart = insideRun.Add(-5 * time.Minute)
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateActive, c.State())
				require.True(t, c.drainStart.IsZero())
			},
		},
		{
			name:  "failed stop keeps the server tracked",
			now:   outsideRun,
			ticks: 1,
			prep: func(t *testing.T, m controllerMocks) {
				m.oracle.EXPECT().
					PlayerCount(mocky.Anything, addr).
					Return(0, nil).
					Once()
				m.cloud.EXPECT().
					Kill(mocky.Anything, srv.ID).
					Return(errors.New("some error")).
					Once()
			},
			setup: func(c *Controller) {
				s := srv
				c.active = &s
			},
			check: func(t *testing.T, c *Controller) {
				require.Equal(t, StateDraining, c.State())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				ctx = context.Background()
				m   = controllerMocks{
					cloud:    mock.NewMockCloud(t),
					launcher: mock.NewMockLauncher(t),
					oracle:   mock.NewMockOracle(t),
					notifier: mock.NewMockNotifier(t),
				}
				c = newTestController(t, tt.cfg, m)
			)

			c.now = func() time.Time {
				return tt.now
			}

			if tt.setup != nil {
				tt.setup(c)
			}

			tt.prep(t, m)

			for i := 0; i < tt.ticks; i++ {
				c.tick(ctx)
			}

			tt.check(t, c)
		})
	}
}

func TestControllerAdoptsExistingServerOnStartup(t *testing.T) {
	var (
		ctx = context.Background()
		srv = cloud.Server{
			ID:   "42",
			IPv4: netip.MustParseAddr("203.0.113.10"),
		}
		m = controllerMocks{
			cloud:    mock.NewMockCloud(t),
			launcher: mock.NewMockLauncher(t),
			oracle:   mock.NewMockOracle(t),
			notifier: mock.NewMockNotifier(t),
		}
		c = newTestController(t, Config{
			Server: ServerConfig{ManageExisting: true},
		}, m)
	)

	m.cloud.EXPECT().
		List(mocky.Anything).
		Return([]cloud.Server{srv}, nil).
		Once()

	c.adoptExisting(ctx)

	require.Equal(t, StateActive, c.State())
	require.Equal(t, srv, *c.active)
}

func newTestController(t *testing.T, cfg Config, m controllerMocks) *Controller {
	t.Helper()

	if cfg.Schedule.GraceSeconds == 0 {
		cfg.Schedule.GraceSeconds = 1800
	}

	sched, err := ParseSchedule("0 0 18 * * *", "0 0 2 * * *")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	return NewController(logger, cfg, sched, m.cloud, m.launcher, m.oracle, m.notifier)
}
