package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"rcfind/internal/rc"
	"rcfind/internal/system"
)

var (
	compileOutDir string
	compilePrefix string
	compileOnly   string
)

func init() {
	rootCmd.AddCommand(compileCmd)
	compileCmd.Flags().StringVarP(&compileOutDir, "out-dir", "o", "", "output and include directory (config out_dir when empty)")
	compileCmd.Flags().StringVarP(&compilePrefix, "prefix", "p", "", "output name without extension (single resource only)")
	compileCmd.Flags().StringVar(&compileOnly, "only", "", "restrict discovery to probes matching this name (fuzzy)")
}

var compileCmd = &cobra.Command{
	Use:   "compile RESOURCE...",
	Short: "Compile resource scripts into linkable .lib objects",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := firstNonEmpty(compilePrefix, settings.Prefix)
		if prefix != "" && len(args) > 1 {
			return fmt.Errorf("--prefix needs exactly one resource, got %d", len(args))
		}
		c, err := newCompiler(compileOnly)
		if err != nil {
			return err
		}
		jobs := make([]rc.Job, 0, len(args))
		for _, res := range args {
			jobs = append(jobs, newJob(res, compileOutDir, prefix))
		}
		outs, err := c.CompileAll(cmd.Context(), jobs)
		if err != nil {
			return err
		}
		for _, o := range outs {
			fmt.Fprintln(cmd.OutOrStdout(), o)
		}
		return nil
	},
}

func newCompiler(only string) (*rc.Compiler, error) {
	f, err := newFinder(only)
	if err != nil {
		return nil, err
	}
	return &rc.Compiler{Finder: f, Logger: system.Logger, Lookup: lookupTarget}, nil
}

func newJob(resource, outDir, prefix string) rc.Job {
	if prefix == "" {
		base := filepath.Base(resource)
		prefix = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return rc.Job{
		OutDir:   firstNonEmpty(outDir, settings.OutDir),
		Prefix:   prefix,
		Resource: resource,
	}
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
