package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"rcfind/internal/rc"
	"rcfind/internal/report"
)

var explainPlain bool

func init() {
	rootCmd.AddCommand(explainCmd)
	explainCmd.Flags().BoolVar(&explainPlain, "plain", false, "print raw markdown")
}

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "Describe where rc.exe is looked for, in order",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := report.Explain(rc.ToolName, explainPlain)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), out)
		return nil
	},
}
