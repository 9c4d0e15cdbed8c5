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

	"github.com/spacechunks/caretaker/caretaker"
	"github.com/spacechunks/caretaker/cli"
	"github.com/spf13/cobra"
)

func newDaemonCommand(ctx context.Context, cliCtx *cli.Context) *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		pipeline := caretaker.NewPipeline(
			cliCtx.Logger,
			cliCtx.Config,
			cliCtx.Config.ProvisionConfig(),
			cliCtx.Cloud,
			cliCtx.Dialer,
			cliCtx.Notifier,
		)
		ctrl := caretaker.NewController(
			cliCtx.Logger,
			cliCtx.Config,
			cliCtx.Schedule,
			cliCtx.Cloud,
			pipeline,
			cliCtx.Oracle,
			cliCtx.Notifier,
		)

		cliCtx.Logger.InfoContext(ctx, "starting scheduler loop")
		// returns on interrupt. the active instance is left alone so
		// the next run can adopt it.
		ctrl.Run(ctx)
		return nil
	}

	return &cobra.Command{
		Use:          "daemon",
		Short:        "Run the management daemon.",
		RunE:         run,
		SilenceUsage: true,
	}
}
