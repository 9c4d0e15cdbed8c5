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
	"errors"
	"fmt"
	"os"

	"github.com/spacechunks/caretaker/caretaker"
	"github.com/spacechunks/caretaker/cli"
	"github.com/spf13/cobra"
)

func newStartCommand(ctx context.Context, cliCtx *cli.Context) *cobra.Command {
	run := func(cmd *cobra.Command, args []string) error {
		pipeline := caretaker.NewPipeline(
			cliCtx.Logger,
			cliCtx.Config,
			cliCtx.Config.ProvisionConfig(),
			cliCtx.Cloud,
			cliCtx.Dialer,
			cliCtx.Notifier,
		)

		var already *caretaker.AlreadyRunningError
		if _, err := pipeline.Launch(ctx); err != nil {
			if errors.As(err, &already) {
				fmt.Println("Server already running")
				return nil
			}
			fmt.Fprintln(os.Stderr, err)
		}
		return nil
	}

	return &cobra.Command{
		Use:          "start",
		Short:        "Start a new server if none is running.",
		RunE:         run,
		SilenceUsage: true,
	}
}
