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

	"github.com/spacechunks/caretaker/cli"
	"github.com/spf13/cobra"
)

func Root(ctx context.Context, cliCtx *cli.Context) *cobra.Command {
	var cfgPath string

	daemon := newDaemonCommand(ctx, cliCtx)

	root := &cobra.Command{
		Use: "caretaker",
		Long: `Keeps a single ephemeral game server alive while it is needed:
provisions an instance when the play window opens and tears it down
again once everyone has left.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return cliCtx.Setup(cfgPath)
		},
		// running without a subcommand starts the daemon.
		RunE: daemon.RunE,
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "/etc/caretaker/config.yaml", "path to the config file")

	root.AddCommand(
		daemon,
		newStartCommand(ctx, cliCtx),
		newStopCommand(ctx, cliCtx),
		newListCommand(ctx, cliCtx),
	)
	return root
}
