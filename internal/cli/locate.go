package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcfind/internal/arch"
	"rcfind/internal/rc"
)

var locateOnly string

func init() {
	rootCmd.AddCommand(locateCmd)
	locateCmd.Flags().StringVar(&locateOnly, "only", "", "restrict the search to probes matching this name (fuzzy)")
}

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the path of rc.exe for the target",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, target, err := arch.Resolve(lookupTarget)
		if err != nil {
			return err
		}
		f, err := newFinder(locateOnly)
		if err != nil {
			return err
		}
		p, ok := f.Find(a, target, rc.ToolName)
		if !ok {
			return fmt.Errorf("no %s found for %s (%s)", rc.ToolName, target, a)
		}
		// keep output simple for scripting
		fmt.Fprintln(cmd.OutOrStdout(), p)
		return nil
	},
}
