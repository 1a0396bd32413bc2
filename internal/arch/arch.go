package arch

import (
	"strings"

	"github.com/pkg/errors"
)

// Arch is the binary architecture a tool is picked for.
type Arch int

const (
	X86 Arch = iota
	X64
)

// TargetEnv carries the target triple of the build step.
const TargetEnv = "TARGET"

// ErrNoTarget is returned when the target triple variable is not set.
var ErrNoTarget = errors.New("no " + TargetEnv + " env var")

func (a Arch) String() string {
	if a == X64 {
		return "x64"
	}
	return "x86"
}

// Pick returns the x86 or x64 variant of a subpath.
func (a Arch) Pick(x86, x64 string) string {
	if a == X64 {
		return x64
	}
	return x86
}

// FromTriple maps a target triple to an Arch. Anything not starting with
// x86_64 is X86.
func FromTriple(triple string) Arch {
	if strings.HasPrefix(triple, "x86_64") {
		return X64
	}
	return X86
}

// Resolve reads the target triple through lookup (os.LookupEnv in practice)
// and returns the architecture along with the triple itself.
func Resolve(lookup func(string) (string, bool)) (Arch, string, error) {
	triple, ok := lookup(TargetEnv)
	if !ok {
		return X86, "", ErrNoTarget
	}
	return FromTriple(triple), triple, nil
}
