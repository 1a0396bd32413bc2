package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rcfind/internal/config"
	"rcfind/internal/system"
)

var (
	flagTarget   string
	flagRegistry string
	flagLogLevel string
	flagVsWhere  string

	// settings is the loaded config.yaml, flags applied on top.
	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "rcfind",
	Short: "rcfind – locate and run the Windows resource compiler",
	Long: "rcfind finds rc.exe across Windows SDK and Visual Studio layouts and compiles " +
		"resource scripts into linkable objects.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		settings = cfg
		if flagLogLevel != "" {
			settings.LogLevel = flagLogLevel
		}
		if flagVsWhere != "" {
			settings.VsWhere = flagVsWhere
		}
		if flagRegistry != "" {
			settings.Registry = flagRegistry
		}
		system.SetLevel(settings.LogLevel)
		return nil
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flagTarget, "target", "t", "", "target triple (defaults to $TARGET)")
	pf.StringVar(&flagRegistry, "registry", "", "yaml registry fixture consulted before the host registry")
	pf.StringVar(&flagLogLevel, "log-level", "", "debug, info, warn or error")
	pf.StringVar(&flagVsWhere, "vswhere", "", "path to vswhere.exe")
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
