package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pokedexd/internal/ipc"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id|name>",
		Short: "Look up a record by dex number or name",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref := strings.TrimSpace(args[0])
			if ref == "" {
				return fmt.Errorf("record id or name is required")
			}
			return ctx.withClient(func(client *ipc.Client) error {
				resp, err := client.Show(ref)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, resp)
				}
				printRecordDetail(cmd, resp)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Emit record as JSON")
	return cmd
}

func printRecordDetail(cmd *cobra.Command, resp *ipc.ShowResponse) {
	out := cmd.OutOrStdout()
	rec := resp.Record

	marker := ""
	if rec.Favourite {
		marker = " *"
	}
	fmt.Fprintf(out, "#%03d %s%s\n", rec.ID, rec.DisplayName, marker)
	fmt.Fprintf(out, "Type: %s\n", rec.Types)
	if rec.HeightDM > 0 || rec.WeightHG > 0 {
		fmt.Fprintf(out, "Height: %.1f m  Weight: %.1f kg\n",
			float64(rec.HeightDM)/10, float64(rec.WeightHG)/10)
	}

	rows := [][]string{
		{"HP", fmt.Sprintf("%d", rec.HP)},
		{"Attack", fmt.Sprintf("%d", rec.Attack)},
		{"Defense", fmt.Sprintf("%d", rec.Defense)},
		{"Sp. Atk", fmt.Sprintf("%d", rec.SpAtk)},
		{"Sp. Def", fmt.Sprintf("%d", rec.SpDef)},
		{"Speed", fmt.Sprintf("%d", rec.Speed)},
	}
	fmt.Fprintln(out, renderTable([]string{"Stat", "Base"}, rows, []columnAlignment{alignLeft, alignRight}))

	if rec.FlavorText != "" {
		fmt.Fprintln(out, rec.FlavorText)
	}

	for _, evo := range resp.Evolutions {
		detail := ""
		switch {
		case evo.MinLevel > 0:
			detail = fmt.Sprintf(" (lv %d)", evo.MinLevel)
		case evo.Item != "":
			detail = fmt.Sprintf(" (%s)", evo.Item)
		case evo.Trigger != "":
			detail = fmt.Sprintf(" (%s)", evo.Trigger)
		}
		fmt.Fprintf(out, "Evolves: #%d -> #%d%s\n", evo.FromID, evo.ToID, detail)
	}
}
