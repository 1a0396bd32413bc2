package toolchain

import (
	"os"
	"sync/atomic"

	clog "github.com/charmbracelet/log"

	"rcfind/internal/system"
	"rcfind/internal/vswhere"
)

// IncludeEnv is the variable rc.exe searches for system headers.
const IncludeEnv = "INCLUDE"

// Augmenter copies the toolchain's INCLUDE into the process environment.
// The body runs at most once per Augmenter; the atomic swap is the only
// synchronization point, so concurrent callers that lose the race return
// immediately, possibly before INCLUDE has been written.
type Augmenter struct {
	Resolver Resolver
	Setenv   func(key, value string) error
	Logger   *clog.Logger

	done atomic.Bool
}

// Process is the process-wide augmenter. It is never reset.
var Process = &Augmenter{}

// Augment runs the augmentation the first time it is called.
func (a *Augmenter) Augment(target, kitRoot string) {
	if a.done.Swap(true) {
		return
	}
	a.augment(target, kitRoot)
}

// Done reports whether augmentation has been claimed by a caller.
func (a *Augmenter) Done() bool { return a.done.Load() }

func (a *Augmenter) augment(target, kitRoot string) {
	logger := a.Logger
	if logger == nil {
		logger = system.Logger
	}
	res := a.Resolver
	if res == nil {
		res = NewMSVC(vswhere.Default())
	}
	env, ok := res.Env(target, kitRoot)
	if !ok {
		logger.Debug("toolchain not found, leaving INCLUDE alone", "target", target)
		return
	}
	include, ok := env[IncludeEnv]
	if !ok {
		return
	}
	setenv := a.Setenv
	if setenv == nil {
		setenv = os.Setenv
	}
	if err := setenv(IncludeEnv, include); err != nil {
		logger.Debug("set INCLUDE failed", "err", err)
		return
	}
	logger.Debug("INCLUDE set from toolchain", "target", target, "kitRoot", kitRoot)
}
