package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pokedexd/internal/input"
	"pokedexd/internal/ipc"
)

func newPressCommand(ctx *commandContext) *cobra.Command {
	names := make([]string, 0, len(input.Buttons()))
	for _, b := range input.Buttons() {
		names = append(names, string(b))
	}

	return &cobra.Command{
		Use:   "press <button>",
		Short: "Inject a button press (" + strings.Join(names, ", ") + ")",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Press(strings.TrimSpace(args[0]))
				if err != nil {
					return err
				}
				if resp.Delivered {
					fmt.Fprintln(cmd.OutOrStdout(), "Press delivered")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Press suppressed by debounce")
				}
				return nil
			})
		},
	}
}
