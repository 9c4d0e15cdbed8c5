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
	"os"

	"github.com/spacechunks/caretaker/cli"
	"github.com/spf13/cobra"
)

func newStopCommand(ctx context.Context, cliCtx *cli.Context) *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		servers, err := cliCtx.Cloud.List(ctx)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil
		}
		if len(servers) == 0 {
			fmt.Fprintln(os.Stderr, "No server running")
			return nil
		}
		if err := cliCtx.Cloud.Kill(ctx, servers[0].ID); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return nil
		}
		fmt.Println("Server stopped")
		return nil
	}

	return &cobra.Command{
		Use:          "stop",
		Short:        "Stop the server if one is running.",
		RunE:         run,
		SilenceUsage: true,
	}
}
