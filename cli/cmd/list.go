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

package cmd

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rodaine/table"
	"github.com/spacechunks/caretaker/cli"
	"github.com/spf13/cobra"
)

func newListCommand(ctx context.Context, cliCtx *cli.Context) *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		servers, err := cliCtx.Cloud.List(ctx)
		if err != nil {
			return fmt.Errorf("error while listing servers: %w", err)
		}
		if len(servers) == 0 {
			fmt.Println("No running server")
			return nil
		}

		t := table.New("ID", "NAME", "IP", "CREATED", "PLAYERS")
		for _, srv := range servers {
			// occupancy is best effort, a server that is still
			// booting simply shows no count.
			players := "-"
			if srv.IPv4.IsValid() {
				queryCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
				if count, err := cliCtx.Oracle.PlayerCount(queryCtx, srv.IPv4); err == nil {
					players = strconv.Itoa(count)
				}
				cancel()
			}
			t.AddRow(srv.ID, srv.Name, srv.IPv4, srv.Created.Format(time.RFC3339), players)
		}
		t.Print()
		return nil
	}

	return &cobra.Command{
		Use:          "list",
		Short:        "List running servers.",
		RunE:         run,
		SilenceUsage: true,
	}
}
