package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"palette-bridge/internal/palette"
	"palette-bridge/internal/ui"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the global colors",
		Long:  `List every color record with the values each output derives from it. A dash marks a field the record lacks.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := requirePalette(cmd)
			if err != nil {
				return err
			}
			if len(p) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), ui.Muted("no global colors"))
				return nil
			}

			ascii, _ := cmd.Flags().GetBool("ascii")
			border := ui.BorderUnicode
			if ascii || !ui.IsRich() {
				border = ui.BorderASCII
			}

			fmt.Fprint(cmd.OutOrStdout(), ui.RenderTable(listColumns, listRows(p), border))
			return nil
		},
	}
	cmd.Flags().Bool("ascii", false, "Draw the table with ASCII borders")
	return cmd
}

var listColumns = []ui.TableColumn{
	{Header: "#", Align: ui.AlignRight},
	{Header: "Name", MinWidth: 8},
	{Header: "Slug", MinWidth: 8},
	{Header: "Color"},
	{Header: "Text"},
	{Header: "Variable"},
}

func listRows(p palette.Palette) [][]string {
	rows := make([][]string, 0, len(p))
	for i, rec := range p {
		text := "-"
		if rec.Color != "" {
			if c, err := palette.ReadableTextColor(rec.Color); err == nil {
				text = c
			} else {
				text = "invalid"
			}
		}
		variable := "-"
		if rec.Slug != "" {
			variable = palette.VarPrefix + rec.Slug
		}
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			orDash(rec.Name),
			orDash(rec.Slug),
			orDash(rec.Color),
			text,
			variable,
		})
	}
	return rows
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
