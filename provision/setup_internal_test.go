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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDockerRunCommand(t *testing.T) {
	cfg := Config{
		Image: "ghcr.io/spacechunks/gameserver",
		Name:  "gameserver",
		Env: map[string]string{
			"PASSWORD": "letmein",
			"MAP":      "ctf_2fort",
			"NAME":     "tf2",
		},
		Ports: []string{
			"27015:27015",
			"27015:27015/udp",
		},
	}

	// env vars are emitted in sorted order so the command is stable.
	require.Equal(
		t,
		"docker run --name gameserver -d"+
			" -e 'MAP=ctf_2fort' -e 'NAME=tf2' -e 'PASSWORD=letmein'"+
			" -p 27015:27015 -p 27015:27015/udp"+
			" ghcr.io/spacechunks/gameserver",
		dockerRunCommand(cfg),
	)
}
