package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"pokedexd/internal/ipc"
)

func newFavCommand(ctx *commandContext) *cobra.Command {
	favCmd := &cobra.Command{
		Use:   "fav <id>",
		Short: "Toggle favourite membership for a cached record",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return cmd.Help()
			}
			id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
			if err != nil || id <= 0 {
				return fmt.Errorf("invalid record id %q", args[0])
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.FavouriteToggle(id)
				if err != nil {
					return err
				}
				if resp.Favourite {
					fmt.Fprintf(cmd.OutOrStdout(), "Added #%d to favourites\n", id)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Removed #%d from favourites\n", id)
				}
				return nil
			})
		},
	}

	favCmd.AddCommand(newFavListCommand(ctx))
	return favCmd
}

func newFavListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List favourite records",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Favourites()
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}
				if len(resp.Records) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No favourites yet")
					return nil
				}
				printRecordTable(cmd, resp.Records)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit favourites as JSON")
	return cmd
}
