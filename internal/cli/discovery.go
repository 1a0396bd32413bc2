package cli

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"rcfind/internal/arch"
	"rcfind/internal/sdk"
	"rcfind/internal/system"
	"rcfind/internal/toolchain"
	"rcfind/internal/vswhere"
	"rcfind/internal/winreg"
)

// lookupTarget lets --target stand in for $TARGET.
func lookupTarget(key string) (string, bool) {
	if key == arch.TargetEnv && flagTarget != "" {
		return flagTarget, true
	}
	return os.LookupEnv(key)
}

var (
	hostOnce sync.Once
	hostReg  winreg.Registry
	hostLoc  *vswhere.Locator
	hostErr  error
)

// host wires the registry and locator once per process so that every
// finder, and the process-wide augmenter, see the same view.
func host() (winreg.Registry, *vswhere.Locator, error) {
	hostOnce.Do(func() {
		hostReg = winreg.System()
		hostLoc = vswhere.Default()
		if settings.Registry != "" {
			m, err := winreg.LoadMap(settings.Registry)
			if err != nil {
				hostErr = err
				return
			}
			hostReg = winreg.Chain{m, hostReg}
			hostLoc = vswhere.New(hostReg)
		}
		hostLoc.VsWhere = settings.VsWhere
		toolchain.Process.Resolver = toolchain.NewMSVC(hostLoc)
	})
	return hostReg, hostLoc, hostErr
}

// newFinder builds a Finder restricted to the probes matching only.
func newFinder(only string) (*sdk.Finder, error) {
	reg, loc, err := host()
	if err != nil {
		return nil, err
	}
	f := &sdk.Finder{
		Registry:  reg,
		Locator:   loc,
		Augmenter: toolchain.Process,
		Logger:    system.Logger,
	}
	if strings.TrimSpace(only) != "" {
		names := sdk.MatchProbes(only)
		if len(names) == 0 {
			return nil, fmt.Errorf("no probe matches %q", only)
		}
		f.Only = names
	}
	return f, nil
}
