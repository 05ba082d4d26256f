package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"palette-bridge/internal/config"
	"palette-bridge/internal/grid"
	"palette-bridge/internal/palette"
	"palette-bridge/internal/server"
	"palette-bridge/internal/shortcode"
)

func newCSSCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "css",
		Short: "Print the palette as CSS custom properties",
		Long:  `Print the inline stylesheet declaring one --wp--preset--color--<slug> property per color. Nothing is printed for an empty palette.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, _ := cmd.Flags().GetString("format")
			format = strings.ToLower(strings.TrimSpace(format))
			if format != palette.FormatCompact && format != palette.FormatLegacy {
				return fmt.Errorf("unknown format %q (want %s or %s)", format, palette.FormatCompact, palette.FormatLegacy)
			}

			p, err := requirePalette(cmd)
			if err != nil {
				return err
			}

			if css := palette.FormatStyleCSS(format, p); css != "" {
				fmt.Fprintln(cmd.OutOrStdout(), css)
			}
			return nil
		},
	}
	cmd.Flags().String("format", palette.FormatCompact, "Output format: compact or legacy")
	return cmd
}

func newPaletteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "palette",
		Short: "Print the flattened picker palette",
		Long:  `Print the color values in palette order, as the script snippet the editor loads or as a JSON array.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			global, _ := cmd.Flags().GetString("global")
			if !config.IsJSIdentifier(global) {
				return fmt.Errorf("--global is not a valid script identifier: %q", global)
			}

			p, err := requirePalette(cmd)
			if err != nil {
				return err
			}
			values := palette.Flatten(p)

			asJSON, _ := cmd.Flags().GetBool("json")
			if asJSON {
				data, err := json.Marshal(values)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}

			if len(values) == 0 {
				return nil
			}
			body, err := server.ScriptBody(global, values)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), body)
			return nil
		},
	}
	cmd.Flags().Bool("json", false, "Print a JSON array instead of a script snippet")
	cmd.Flags().String("global", "generatePressPalette", "Script global holding the palette")
	return cmd
}

func newGridCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "grid",
		Short: "Print the swatch grid HTML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, ok, err := loadPalette(cmd)
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(cmd.OutOrStdout(), grid.RenderUnavailable())
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), grid.StyleTag()+grid.Render(p))
			return nil
		},
	}
}

func newExpandCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "expand <file>",
		Short: "Expand directives in page content",
		Long:  `Read page content from a file ("-" for stdin) and replace every [gp_global_color_grid] directive with the rendered grid.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				content []byte
				err     error
			)
			if args[0] == "-" {
				content, err = io.ReadAll(cmd.InOrStdin())
			} else {
				content, err = os.ReadFile(args[0])
			}
			if err != nil {
				return fmt.Errorf("reading content: %w", err)
			}

			p, ok, err := loadPalette(cmd)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), shortcode.ForPage(p, ok).Expand(string(content)))
			return nil
		},
	}
}
