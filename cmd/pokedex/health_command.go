package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pokedexd/internal/ipc"
)

func newHealthCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Report database health",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.DatabaseHealth()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}

				rows := [][]string{
					{"Database", resp.DBPath},
					{"Exists", yesNo(resp.DatabaseExists)},
					{"Readable", yesNo(resp.DatabaseReadable)},
					{"Schema version", fmt.Sprintf("%s", resp.SchemaVersion)},
					{"Integrity check", yesNo(resp.IntegrityCheck)},
					{"Records", fmt.Sprintf("%d", resp.TotalRecords)},
					{"Favourites", fmt.Sprintf("%d", resp.TotalFavourites)},
				}
				if resp.Error != "" {
					rows = append(rows, []string{"Error", resp.Error})
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Check", "Value"}, rows, []columnAlignment{alignLeft, alignLeft}))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit health report as JSON")
	return cmd
}
