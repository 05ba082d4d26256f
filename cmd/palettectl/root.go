package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"palette-bridge/internal/palette"
	"palette-bridge/internal/ui"
)

const defaultSettingsFile = "generate_settings.json"

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "palettectl",
		Short: "Inspect and render a theme's global color palette",
		Long: `palettectl reads an exported theme settings file and renders its
global colors the way palette-bridge serves them: as CSS custom
properties, as a picker palette, or as a swatch grid.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println("palettectl " + ui.Version)
			cmd.Println("Use 'palettectl help' to see available commands")
		},
	}

	settings := os.Getenv("SETTINGS_FILE")
	if settings == "" {
		settings = defaultSettingsFile
	}
	rootCmd.PersistentFlags().String("settings", settings, "Theme settings file (.json, .yaml or .yml)")

	rootCmd.AddCommand(newCSSCmd())
	rootCmd.AddCommand(newPaletteCmd())
	rootCmd.AddCommand(newGridCmd())
	rootCmd.AddCommand(newExpandCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newHashTokenCmd())

	return rootCmd
}

// loadPalette reads the palette named by --settings. ok is false when the
// file does not exist; any other failure is returned.
func loadPalette(cmd *cobra.Command) (palette.Palette, bool, error) {
	path, err := cmd.Flags().GetString("settings")
	if err != nil {
		return nil, false, err
	}

	p, err := palette.FileSource{Path: path}.Load(cmd.Context())
	if errors.Is(err, palette.ErrUnavailable) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return p, true, nil
}

// requirePalette is loadPalette for commands that cannot degrade.
func requirePalette(cmd *cobra.Command) (palette.Palette, error) {
	p, ok, err := loadPalette(cmd)
	if err != nil {
		return nil, err
	}
	if !ok {
		path, _ := cmd.Flags().GetString("settings")
		return nil, fmt.Errorf("settings file not found: %s", path)
	}
	return p, nil
}

func Execute() {
	rootCmd := newRootCmd()

	if err := rootCmd.Execute(); err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}
}
