// Package rc runs the Windows resource compiler.
package rc

import (
	"context"
	"fmt"
	"os"
	"os/exec"
)

// ToolName is the resource compiler's file name, also used as the PATH
// fallback when discovery finds nothing.
const ToolName = "rc.exe"

// SpawnError means the tool could not be started at all.
type SpawnError struct {
	Tool string
	Err  error
}

func (e *SpawnError) Error() string {
	return fmt.Sprintf("could not start %s (is rc.exe installed and on PATH?): %v", e.Tool, e.Err)
}

func (e *SpawnError) Unwrap() error { return e.Err }

// ExitError means the tool ran and reported failure.
type ExitError struct {
	Tool     string
	Resource string
	Code     int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("%s failed to compile %s (exit status %d)", e.Tool, e.Resource, e.Code)
}

// Output is the archive rc.exe writes for prefix.
func Output(outDir, prefix string) string {
	return outDir + "/" + prefix + ".lib"
}

// Args is the fixed argument list: /fo <out>/<prefix>.lib /I <out> <resource>.
// The compiled .res is named .lib so the linker takes it as a library.
func Args(outDir, prefix, resource string) []string {
	return []string{"/fo", Output(outDir, prefix), "/I", outDir, resource}
}

// Run spawns tool with Args and waits for it. The child's stdout and stderr
// go straight to ours. No retries.
func Run(ctx context.Context, tool, outDir, prefix, resource string) error {
	cmd := exec.CommandContext(ctx, tool, Args(outDir, prefix, resource)...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Start(); err != nil {
		return &SpawnError{Tool: tool, Err: err}
	}
	if err := cmd.Wait(); err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			return &ExitError{Tool: tool, Resource: resource, Code: ee.ExitCode()}
		}
		return &SpawnError{Tool: tool, Err: err}
	}
	return nil
}
