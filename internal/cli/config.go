package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cfg "rcfind/internal/config"
)

var configWizard bool

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.Flags().BoolVarP(&configWizard, "wizard", "w", false, "edit settings interactively")
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Initialise config.yaml and print its location",
	Long:  "Create ~/.rcfind/config.yaml with defaults when missing (or normalise an existing one), then print its path.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if configWizard {
			return runConfigWizard(cmd)
		}
		p, err := cfg.Path()
		if err != nil {
			return err
		}
		existed := fileExists(p)
		c, err := cfg.LoadFile(p)
		if err != nil {
			return err
		}
		if err := cfg.SaveFile(p, c); err != nil {
			return err
		}
		if existed {
			fmt.Fprintf(cmd.OutOrStdout(), "• normalised %s\n", p)
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "✓ created %s\n", p)
		}
		return nil
	},
}

func fileExists(path string) bool {
	if st, err := os.Stat(path); err == nil && !st.IsDir() {
		return true
	}
	return false
}
