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

// Package rcon answers "is anyone playing on this instance" by talking
// Source RCON to the game server.
package rcon

import (
	"context"
	"fmt"
	"net"
	"net/netip"
	"strconv"
	"strings"
	"time"

	gorcon "github.com/gorcon/rcon"
)

type Client struct {
	port     uint16
	password string
}

func NewClient(port uint16, password string) *Client {
	return &Client{
		port:     port,
		password: password,
	}
}

// PlayerCount connects to the instance and counts the players listed
// by the status command. bots are not players.
func (c *Client) PlayerCount(ctx context.Context, addr netip.Addr) (int, error) {
	conn, err := gorcon.Dial(
		net.JoinHostPort(addr.String(), strconv.Itoa(int(c.port))),
		c.password,
		gorcon.SetDialTimeout(5*time.Second),
		gorcon.SetDeadline(5*time.Second),
	)
	if err != nil {
		return 0, fmt.Errorf("rcon dial: %w", err)
	}
	defer conn.Close()

	status, err := conn.Execute("status")
	if err != nil {
		return 0, fmt.Errorf("rcon status: %w", err)
	}
	return CountPlayers(status), nil
}

// CountPlayers parses the output of the status command. player rows
// start with '#', the column header and bot rows are skipped.
func CountPlayers(status string) int {
	count := 0
	for _, line := range strings.Split(status, "\n") {
		if !strings.HasPrefix(line, "#") {
			continue
		}
		if strings.Contains(line, "# userid") || strings.Contains(line, " BOT ") {
			continue
		}
		count++
	}
	return count
}
