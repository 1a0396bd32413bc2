package vswhere

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"time"

	"rcfind/internal/winreg"
)

// Result is what a Locator found on this host.
type Result struct {
	Instances         []Instance
	WindowsSDKRoot    string // e.g. C:\Program Files (x86)\Windows Kits\10\Lib\10.0.19041.0
	WindowsSDKVersion string
}

// Locator answers Visual Studio and Windows SDK queries. The search runs
// once per Locator; later calls reuse the result.
type Locator struct {
	Registry winreg.Registry
	// VsWhere overrides the vswhere.exe path.
	VsWhere string
	Run     Runner
	Timeout time.Duration

	once sync.Once
	res  Result
}

// New returns a Locator reading the given registry.
func New(reg winreg.Registry) *Locator {
	return &Locator{Registry: reg}
}

// Search performs the lookup (once) and returns the result.
func (l *Locator) Search(ctx context.Context) Result {
	l.once.Do(func() {
		l.res = l.search(ctx)
	})
	return l.res
}

func (l *Locator) search(ctx context.Context) Result {
	var res Result
	path := l.VsWhere
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err == nil {
		timeout := l.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		cctx, cancel := context.WithTimeout(ctx, timeout)
		if list, err := Query(cctx, l.Run, path); err == nil {
			res.Instances = list
		}
		cancel()
	}
	if l.Registry != nil {
		res.WindowsSDKRoot, res.WindowsSDKVersion = findSDKRoot(l.Registry)
	}
	return res
}

// WindowsSDKRoot reports the versioned Lib directory of the newest usable SDK.
func (l *Locator) WindowsSDKRoot() (string, bool) {
	r := l.Search(context.Background())
	return r.WindowsSDKRoot, r.WindowsSDKRoot != ""
}

// VisualStudio returns the newest instance reported by vswhere.
func (l *Locator) VisualStudio() (Instance, bool) {
	r := l.Search(context.Background())
	if len(r.Instances) == 0 {
		return Instance{}, false
	}
	best := r.Instances[0]
	for _, in := range r.Instances[1:] {
		if VersionLess(best.InstallationVersion, in.InstallationVersion) {
			best = in
		}
	}
	return best, true
}

// findSDKRoot prefers the newest Windows 10 SDK that ships kernel32.lib,
// then falls back to the 8.1 kit.
func findSDKRoot(reg winreg.Registry) (string, string) {
	if kit, ok := reg.StringValue(winreg.InstalledRootsKey, "KitsRoot10"); ok {
		lib := filepath.Join(kit, "Lib")
		best := ""
		if entries, err := os.ReadDir(lib); err == nil {
			for _, e := range entries {
				if !e.IsDir() {
					continue
				}
				if _, err := os.Stat(filepath.Join(lib, e.Name(), "um", "x64", "kernel32.lib")); err != nil {
					continue
				}
				if best == "" || VersionLess(best, e.Name()) {
					best = e.Name()
				}
			}
		}
		if best != "" {
			return filepath.Join(lib, best), best
		}
	}
	if kit, ok := reg.StringValue(winreg.InstalledRootsKey, "KitsRoot81"); ok {
		p := filepath.Join(kit, "Lib", "winv6.3")
		if st, err := os.Stat(p); err == nil && st.IsDir() {
			return p, "8.1"
		}
	}
	return "", ""
}

var defaultLocator = sync.OnceValue(func() *Locator {
	return New(winreg.System())
})

// Default is the process-wide Locator over the host registry.
func Default() *Locator { return defaultLocator() }
