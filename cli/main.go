package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/gammadia/mithril/api"
	"github.com/gammadia/mithril/config"
	"github.com/gammadia/mithril/provider"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Versioning information set at build time
var version, commit = "dev", "n/a"

var log *slog.Logger

var mithrilCmd = &cobra.Command{
	Use:   "mithril",
	Short: "Mithril provisions compute clusters on the Mithril spot market.",

	SilenceUsage:  true,
	SilenceErrors: true,

	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initLogger()
	},
}

func initLogger() error {
	var level slog.Level
	if err := level.UnmarshalText([]byte(viper.GetString("log-level"))); err != nil {
		return fmt.Errorf("failed to parse log level: %w", err)
	}

	options := slog.HandlerOptions{Level: level}
	switch format := viper.GetString("log-format"); format {
	case "json":
		log = slog.New(slog.NewJSONHandler(os.Stderr, &options))
	case "text":
		log = slog.New(slog.NewTextHandler(os.Stderr, &options))
	default:
		return fmt.Errorf("unknown log format '%s'", format)
	}
	return nil
}

// newProvider resolves credentials for the active (or overridden) profile
// and builds a provider on top of them.
func newProvider() (*provider.Provider, error) {
	cfg, err := resolveConfig()
	if err != nil {
		return nil, err
	}
	return provider.New(api.NewHTTPClient(cfg.APIURL, cfg.APIKey, cfg.Project), log), nil
}

func resolveConfig() (config.Config, error) {
	if profile := viper.GetString("profile"); profile != "" {
		return config.ResolveProfile(profile)
	}
	return config.Resolve()
}

func main() {
	flags := mithrilCmd.PersistentFlags()
	flags.String("profile", "", "mithril profile to use (default: current profile or environment)")
	flags.String("log-level", "WARN", "minimum log level")
	flags.String("log-format", "text", "log format (json, text)")

	viper.SetEnvPrefix("mithril")
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	lo.Must0(viper.BindPFlags(flags))

	mithrilCmd.AddCommand(
		upCmd,
		downCmd,
		pauseCmd,
		resumeCmd,
		statusCmd,
		showCmd,
		sshCmd,
		topCmd,
		versionCmd,
	)

	if err := mithrilCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.HiRedString("Error: %v", err))
		os.Exit(1)
	}
}
