package sdk

import (
	"os"
	"time"

	clog "github.com/charmbracelet/log"

	"rcfind/internal/arch"
	"rcfind/internal/system"
	"rcfind/internal/toolchain"
	"rcfind/internal/vswhere"
	"rcfind/internal/winreg"
)

// Augmenter prepares the process environment once a Windows 10 kit is found.
type Augmenter interface {
	Augment(target, kitRoot string)
}

// Finder runs the probes in a fixed order and stops at the first hit.
type Finder struct {
	Registry  winreg.Registry
	Locator   SDKLocator
	Augmenter Augmenter
	Logger    *clog.Logger
	// Only restricts the search to the named probes; empty means all.
	Only []string
}

// Probe is one installation layout the Finder knows about.
type Probe struct {
	Name        string
	Description string

	run func(f *Finder, a arch.Arch, target, tool string) (string, bool)
}

var probes = []Probe{
	{
		Name:        "kits-root-10",
		Description: `Installed Roots\KitsRoot10 -> bin\<arch>`,
		run: func(f *Finder, a arch.Arch, _, tool string) (string, bool) {
			return f.kitsTool(KitsRoot10, a, tool)
		},
	},
	{
		Name:        "kits-root-81",
		Description: `Installed Roots\KitsRoot81 -> bin\<arch>`,
		run: func(f *Finder, a arch.Arch, _, tool string) (string, bool) {
			return f.kitsTool(KitsRoot81, a, tool)
		},
	},
	{
		Name:        "kits-root",
		Description: `Installed Roots\KitsRoot -> bin\<arch>`,
		run: func(f *Finder, a arch.Arch, _, tool string) (string, bool) {
			return f.kitsTool(KitsRoot, a, tool)
		},
	},
	{
		Name:        "legacy-sdk",
		Description: `Microsoft SDKs\Windows\CurrentInstallFolder -> Bin[\x64]`,
		run: func(f *Finder, a arch.Arch, _, tool string) (string, bool) {
			return f.legacySDKTool(a, tool)
		},
	},
	{
		Name:        "kits-10-scan",
		Description: `Installed Roots\KitsRoot10 -> bin\<version>\<arch>`,
		run: func(f *Finder, a arch.Arch, target, tool string) (string, bool) {
			return f.kits10ScanTool(a, target, tool)
		},
	},
	{
		Name:        "vs-instance",
		Description: `Visual Studio Windows SDK root -> bin[\<version>]\<arch>`,
		run: func(f *Finder, a arch.Arch, _, tool string) (string, bool) {
			return f.vsInstanceTool(a, tool)
		},
	},
}

// Probes lists the probes in the order Find tries them.
func Probes() []Probe {
	out := make([]Probe, len(probes))
	copy(out, probes)
	return out
}

// NewFinder returns a Finder over the host registry, the process-wide
// Visual Studio locator and the process-wide augmenter.
func NewFinder() *Finder {
	return &Finder{
		Registry:  winreg.System(),
		Locator:   vswhere.Default(),
		Augmenter: toolchain.Process,
		Logger:    system.Logger,
	}
}

func (f *Finder) registry() winreg.Registry {
	if f.Registry == nil {
		return winreg.Map{}
	}
	return f.Registry
}

func (f *Finder) logger() *clog.Logger {
	if f.Logger == nil {
		return system.Logger
	}
	return f.Logger
}

func (f *Finder) enabled(p Probe) bool {
	if len(f.Only) == 0 {
		return true
	}
	for _, n := range f.Only {
		if n == p.Name {
			return true
		}
	}
	return false
}

// Find returns the absolute path of tool for architecture a. target is the
// full triple, used when the toolchain environment has to be resolved.
// Not finding the tool is not an error; the caller decides what to do.
func (f *Finder) Find(a arch.Arch, target, tool string) (string, bool) {
	log := f.logger()
	for _, p := range probes {
		if !f.enabled(p) {
			continue
		}
		path, ok := p.run(f, a, target, tool)
		log.Debug("probe", "name", p.Name, "arch", a, "found", ok)
		if ok {
			log.Info("found tool", "tool", tool, "path", path, "probe", p.Name)
			return path, true
		}
	}
	log.Debug("all probes exhausted", "tool", tool, "arch", a)
	return "", false
}

// Outcome is the result of one probe in a Trace.
type Outcome struct {
	Probe   Probe
	Path    string
	Found   bool
	Elapsed time.Duration
}

// Trace runs every enabled probe without short-circuiting, for diagnostics.
func (f *Finder) Trace(a arch.Arch, target, tool string) []Outcome {
	out := make([]Outcome, 0, len(probes))
	for _, p := range probes {
		if !f.enabled(p) {
			continue
		}
		start := time.Now()
		path, ok := p.run(f, a, target, tool)
		out = append(out, Outcome{Probe: p, Path: path, Found: ok, Elapsed: time.Since(start)})
	}
	return out
}

// FindWindowsSDKTool resolves the architecture from TARGET and searches
// with NewFinder. A missing TARGET is returned as arch.ErrNoTarget.
func FindWindowsSDKTool(tool string) (string, bool, error) {
	a, target, err := arch.Resolve(os.LookupEnv)
	if err != nil {
		return "", false, err
	}
	path, ok := NewFinder().Find(a, target, tool)
	return path, ok, nil
}
