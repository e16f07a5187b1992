package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"pokedexd/internal/ipc"
)

func newStatusCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show daemon status",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Status()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}

				rows := [][]string{
					{"Running", yesNo(resp.Running)},
					{"PID", fmt.Sprintf("%d", resp.PID)},
					{"Uptime", (time.Duration(resp.UptimeSeconds) * time.Second).String()},
					{"View", resp.State},
					{"Cursor", fmt.Sprintf("#%d", resp.Cursor)},
					{"Cached records", fmt.Sprintf("%d", resp.RecordCount)},
					{"Favourites", fmt.Sprintf("%d", resp.FavouriteCount)},
					{"Populate running", yesNo(resp.PopulateRunning)},
					{"Input device", yesNo(resp.InputAttached)},
					{"Database", resp.DBPath},
				}
				if resp.StatusLine != "" {
					rows = append(rows, []string{"Status line", resp.StatusLine})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Field", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit status as JSON")
	return cmd
}
