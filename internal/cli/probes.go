package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcfind/internal/arch"
	"rcfind/internal/rc"
	"rcfind/internal/report"
)

var probesOnly string

func init() {
	rootCmd.AddCommand(probesCmd)
	probesCmd.Flags().StringVar(&probesOnly, "only", "", "show only probes matching this name (fuzzy)")
}

var probesCmd = &cobra.Command{
	Use:   "probes",
	Short: "Run every probe and show what each one finds",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, target, err := arch.Resolve(lookupTarget)
		if err != nil {
			return err
		}
		f, err := newFinder(probesOnly)
		if err != nil {
			return err
		}
		title := fmt.Sprintf("%s for %s (%s)", rc.ToolName, target, a)
		fmt.Fprintln(cmd.OutOrStdout(), report.Probes(title, f.Trace(a, target, rc.ToolName)))
		return nil
	},
}
