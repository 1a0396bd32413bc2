package cli

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"rcfind/internal/system"
	"rcfind/internal/watch"
)

var (
	watchOutDir string
	watchPrefix string
	watchDirs   []string
)

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().StringVarP(&watchOutDir, "out-dir", "o", "", "output and include directory (config out_dir when empty)")
	watchCmd.Flags().StringVarP(&watchPrefix, "prefix", "p", "", "output name without extension")
	watchCmd.Flags().StringSliceVar(&watchDirs, "dir", nil, "extra directories to watch (icons, headers)")
}

var watchCmd = &cobra.Command{
	Use:   "watch RESOURCE",
	Short: "Recompile a resource script whenever it or its inputs change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := newCompiler("")
		if err != nil {
			return err
		}
		job := newJob(args[0], watchOutDir, firstNonEmpty(watchPrefix, settings.Prefix))

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		w := &watch.Watcher{
			Dirs:     append([]string{filepath.Dir(job.Resource)}, watchDirs...),
			Debounce: settings.Debounce,
			Logger:   system.Logger,
			Build: func(ctx context.Context) error {
				out, err := c.Compile(ctx, job.OutDir, job.Prefix, job.Resource)
				if err == nil {
					system.Logger.Info("compiled", "out", out)
				}
				return err
			},
		}
		system.Logger.Info("watching", "resource", job.Resource)
		return w.Run(ctx)
	},
}
