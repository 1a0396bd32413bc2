// Package vswhere locates Visual Studio instances and the Windows SDK they
// build against.
package vswhere

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Instance is one entry of `vswhere -format json`.
type Instance struct {
	InstanceID          string  `json:"instanceId"`
	InstallationPath    string  `json:"installationPath"`
	InstallationVersion string  `json:"installationVersion"`
	DisplayName         string  `json:"displayName"`
	IsPrerelease        bool    `json:"isPrerelease"`
	Catalog             Catalog `json:"catalog"`
}

type Catalog struct {
	ProductLineVersion string `json:"productLineVersion"`
}

// Runner executes a command and returns its stdout.
type Runner func(ctx context.Context, name string, args ...string) ([]byte, error)

// queryArgs asks for the newest instance that carries the x86/x64 C++ tools.
var queryArgs = []string{
	"-latest",
	"-products", "*",
	"-requires", "Microsoft.VisualStudio.Component.VC.Tools.x86.x64",
	"-format", "json",
	"-utf8",
}

// DefaultPath is where the Visual Studio installer puts vswhere.exe,
// regardless of OS bitness.
func DefaultPath() string {
	base := os.Getenv("ProgramFiles(x86)")
	if strings.TrimSpace(base) == "" {
		base = `C:\Program Files (x86)`
	}
	return filepath.Join(base, "Microsoft Visual Studio", "Installer", "vswhere.exe")
}

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// Query runs vswhere at path and decodes its instances.
func Query(ctx context.Context, run Runner, path string) ([]Instance, error) {
	if run == nil {
		run = execRunner
	}
	out, err := run(ctx, path, queryArgs...)
	if err != nil {
		return nil, errors.Wrapf(err, "run %s", path)
	}
	return ParseInstances(out)
}

// ParseInstances decodes vswhere JSON output. Empty output means no instances.
func ParseInstances(b []byte) ([]Instance, error) {
	if len(strings.TrimSpace(string(b))) == 0 {
		return nil, nil
	}
	var list []Instance
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, errors.Wrap(err, "decode vswhere output")
	}
	out := list[:0]
	for _, in := range list {
		if strings.TrimSpace(in.InstallationPath) == "" {
			continue
		}
		out = append(out, in)
	}
	return out, nil
}
