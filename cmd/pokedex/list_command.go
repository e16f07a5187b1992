package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"pokedexd/internal/ipc"
)

func newListCommand(ctx *commandContext) *cobra.Command {
	var (
		search     string
		favourites bool
		limit      int
		offset     int
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cached records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.List(ipc.ListRequest{
					Search:         search,
					FavouritesOnly: favourites,
					Limit:          limit,
					Offset:         offset,
				})
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}
				if len(resp.Records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No cached records match")
					return nil
				}
				printRecordTable(cmd, resp.Records)
				return nil
			})
		},
	}

	cmd.Flags().StringVarP(&search, "search", "s", "", "Filter by name substring")
	cmd.Flags().BoolVar(&favourites, "favourites", false, "Only show favourites")
	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum rows to return (0 for all)")
	cmd.Flags().IntVar(&offset, "offset", 0, "Rows to skip")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit records as JSON")
	return cmd
}

func printRecordTable(cmd *cobra.Command, records []ipc.Record) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		name := rec.DisplayName
		if rec.Favourite {
			name = "* " + name
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", rec.ID),
			name,
			rec.Types,
			fmt.Sprintf("%d", rec.HP),
			fmt.Sprintf("%d", rec.Attack),
			fmt.Sprintf("%d", rec.Defense),
			fmt.Sprintf("%d", rec.Speed),
		})
	}
	fmt.Fprintln(cmd.OutOrStdout(), renderTable(
		[]string{"ID", "Name", "Types", "HP", "Atk", "Def", "Spd"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
}
