package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"palette-bridge/internal/config"
	"palette-bridge/internal/palette"
	"palette-bridge/internal/server"
	"palette-bridge/internal/ui"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists
	// Missing is fine: in production the environment is set by the host
	_ = godotenv.Load()

	ui.PrintBanner()

	cfg, err := config.Load()
	if err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}
	ui.SetLevel(cfg.Env.LogLevel)

	if cfg.Env.IsDevelopment() {
		ui.LogStatus("info", "Environment: "+ui.Warn("DEVELOPMENT"))
	} else {
		ui.LogStatus("info", "Environment: "+ui.Success("PRODUCTION"))
	}
	ui.LogStatus("info", "Base URL: "+cfg.Env.BaseURL)

	if err := cfg.Validate(); err != nil {
		ui.LogStatus("error", err.Error())
		os.Exit(1)
	}

	ui.LogGroup("Configuration")
	ui.LogGroupItem("Settings", cfg.SettingsFile)
	ui.LogGroupItem("CSS format", cfg.CSSFormat)
	ui.LogGroupItem("Script global", cfg.PaletteGlobal)
	ui.LogGroupItem("Admin token", strconv.FormatBool(cfg.AdminTokenHash != ""))
	ui.LogGroupItem("Rate limit", strconv.Itoa(cfg.RateLimitRPM)+" rpm")
	ui.LogGroupEnd()

	if _, err := os.Stat(cfg.SettingsFile); err != nil {
		ui.WarningNote("Color settings file " + cfg.SettingsFile + " is not readable yet. " +
			"The stylesheet and script routes answer 204 and the grid shows an inactive notice until it appears.")
	}
	if cfg.Env.IsProduction() && cfg.AdminTokenHash == "" {
		ui.WarningNote("No admin_token_hash configured: /palette.js and /palette.json are public. " +
			"Generate one with: palettectl hash-token <token>")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	metrics := server.NewMetricsServer(cfg.MetricsListen)
	metrics.Start()
	ui.LogStatus("info", "Metrics: http://localhost"+cfg.MetricsListen+"/metrics")

	go func() {
		<-ctx.Done()
		ui.LogGracefulShutdown()
		metrics.Shutdown(context.Background())
	}()

	srv := server.NewServer(cfg, palette.FileSource{Path: cfg.SettingsFile})
	if err := srv.Start(ctx); err != nil {
		ui.LogStatus("error", "Server failed: "+err.Error())
		log.Fatal(err)
	}
}
