package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/partsplit/partsplit/internal/cli"
	"github.com/partsplit/partsplit/pkg/config"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.DefaultConfig()
	}
	color.NoColor = color.NoColor || !cfg.UI.UseColor

	rootCmd := &cobra.Command{
		Use:   "partsplit",
		Short: "Shamir's Secret Sharing over GF(256)",
		Long: `Partsplit splits a secret into N independently held parts such that
any K of them reconstruct the secret exactly, while fewer than K reveal
nothing. It uses Shamir's Secret Sharing over GF(256) with the AES field
polynomial (0x11b).

Parts are identifier-keyed: each part is an id:hex pair where the
identifier (1..N) is needed alongside the value to reconstruct. Parts
carry no integrity information - combining wrong or tampered parts
yields a wrong secret without warning.`,
		Version: fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit),
	}

	rootCmd.AddCommand(
		cli.NewSplitCommand(cfg),
		cli.NewCombineCommand(cfg),
		cli.NewStoreCommand(cfg),
		cli.NewLegacyCommand(),
	)

	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().BoolP("json", "j", false, "Output in JSON format")

	if err := rootCmd.Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
