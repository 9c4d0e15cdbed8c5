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

package cli

import (
	"fmt"
	"log/slog"

	"github.com/spacechunks/caretaker/caretaker"
	"github.com/spacechunks/caretaker/cloud"
	"github.com/spacechunks/caretaker/provision"
	"github.com/spacechunks/caretaker/rcon"
)

// Context carries everything the subcommands share. it is populated
// once the config file has been read.
type Context struct {
	Logger   *slog.Logger
	Config   caretaker.Config
	Schedule caretaker.Schedule
	Cloud    cloud.Cloud
	Oracle   caretaker.Oracle
	Notifier caretaker.Notifier
	Dialer   provision.Dialer
}

// Setup wires the collaborators from the given config file. schedule
// or provider misconfiguration is fatal to the whole process.
func (c *Context) Setup(cfgPath string) error {
	cfg, err := caretaker.LoadConfig(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	schedule, err := cfg.ParseSchedule()
	if err != nil {
		return err
	}

	cl, err := cfg.Cloud()
	if err != nil {
		return err
	}

	c.Config = cfg
	c.Schedule = schedule
	c.Cloud = cl
	c.Oracle = rcon.NewClient(cfg.Server.RconPort, string(cfg.Server.RconPassword))
	c.Notifier = caretaker.NewNotifier(c.Logger, cfg)
	c.Dialer = provision.NewSSHDialer(c.Logger)
	return nil
}
