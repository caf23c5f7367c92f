package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/pathmark/pathmark/pkg/buildinfo"
)

// Execute runs the pathmark CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
// Configuration defaults are loaded from ~/.config/pathmark/config.toml
// before flags are applied; flags win.
func Execute() error {
	var verbose bool

	cfg, cfgErr := loadConfig("")

	root := &cobra.Command{
		Use:          appName,
		Short:        "Pathmark reads, converts, and validates pathway documents",
		Long:         `Pathmark is a toolchain for the GPML pathway exchange format: it models pathway diagrams as a typed graph and converts, validates, and serves documents across both schema generations.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := newLogger(os.Stderr, level)
			if cfgErr != nil {
				logger.Warn("config file ignored", "err", cfgErr)
			}
			cmd.SetContext(withLogger(cmd.Context(), logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newConvertCmd(cfg))
	root.AddCommand(newValidateCmd())
	root.AddCommand(newInfoCmd(cfg))
	root.AddCommand(newServeCmd(cfg))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	return root.ExecuteContext(ctx)
}
