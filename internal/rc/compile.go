package rc

import (
	"context"
	"os"

	clog "github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"rcfind/internal/arch"
	"rcfind/internal/system"
)

// Finder is the discovery half of a compile.
type Finder interface {
	Find(a arch.Arch, target, tool string) (string, bool)
}

// Compiler discovers rc.exe and runs it.
type Compiler struct {
	Finder Finder
	Logger *clog.Logger
	// Lookup reads TARGET; os.LookupEnv when nil.
	Lookup func(string) (string, bool)
	// Runner spawns the tool; Run when nil.
	Runner func(ctx context.Context, tool, outDir, prefix, resource string) error
}

// Job is one resource script to compile.
type Job struct {
	OutDir   string
	Prefix   string
	Resource string
}

// Tool returns the discovered rc.exe, or ToolName when every probe came up
// empty so that the PATH lookup of the spawn gets a chance.
func (c *Compiler) Tool() (string, error) {
	lookup := c.Lookup
	if lookup == nil {
		lookup = os.LookupEnv
	}
	a, target, err := arch.Resolve(lookup)
	if err != nil {
		return "", err
	}
	if c.Finder != nil {
		if p, ok := c.Finder.Find(a, target, ToolName); ok {
			return p, nil
		}
	}
	c.logger().Warn("rc.exe not found in any SDK location, relying on PATH", "target", target)
	return ToolName, nil
}

// Compile builds resource into <outDir>/<prefix>.lib and returns that path.
func (c *Compiler) Compile(ctx context.Context, outDir, prefix, resource string) (string, error) {
	tool, err := c.Tool()
	if err != nil {
		return "", err
	}
	run := c.Runner
	if run == nil {
		run = Run
	}
	c.logger().Debug("compiling resource", "tool", tool, "resource", resource, "out", outDir)
	if err := run(ctx, tool, outDir, prefix, resource); err != nil {
		return "", err
	}
	return Output(outDir, prefix), nil
}

// CompileAll compiles jobs concurrently. Each job runs its own discovery;
// the first failure cancels the rest.
func (c *Compiler) CompileAll(ctx context.Context, jobs []Job) ([]string, error) {
	outs := make([]string, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	for i, j := range jobs {
		i, j := i, j
		g.Go(func() error {
			out, err := c.Compile(gctx, j.OutDir, j.Prefix, j.Resource)
			if err != nil {
				return errors.WithMessagef(err, "compile %s", j.Resource)
			}
			outs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return outs, nil
}

func (c *Compiler) logger() *clog.Logger {
	if c.Logger == nil {
		return system.Logger
	}
	return c.Logger
}
