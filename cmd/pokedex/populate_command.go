package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pokedexd/internal/ipc"
)

func newPopulateCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "populate",
		Short: "Start a background sync of the configured dex range",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.PopulateStart()
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if resp.JobID != "" {
					fmt.Fprintf(out, "Populate started (job %s)\n", resp.JobID)
				} else {
					fmt.Fprintln(out, "Populate started")
				}
				fmt.Fprintln(out, "Track progress with `pokedex status`")
				return nil
			})
		},
	}
}
