// Package toolchain resolves the environment of the MSVC C/C++ toolchain and
// copies the parts rc.exe needs into the current process.
package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"rcfind/internal/arch"
	"rcfind/internal/vswhere"
)

// Resolver produces the environment a full native toolchain would run with
// for target. kitRoot is the Windows 10 kit root the caller found, if any.
type Resolver interface {
	Env(target, kitRoot string) (map[string]string, bool)
}

// ResolverFunc adapts a function to Resolver.
type ResolverFunc func(target, kitRoot string) (map[string]string, bool)

func (f ResolverFunc) Env(target, kitRoot string) (map[string]string, bool) {
	return f(target, kitRoot)
}

const listSep = ";"

// MSVC derives cl.exe's environment from the newest Visual Studio instance.
type MSVC struct {
	Locator *vswhere.Locator
	Getenv  func(string) string
}

// NewMSVC returns a resolver backed by loc.
func NewMSVC(loc *vswhere.Locator) *MSVC {
	return &MSVC{Locator: loc, Getenv: os.Getenv}
}

func (m *MSVC) Env(target, kitRoot string) (map[string]string, bool) {
	getenv := m.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	// Inside a developer command prompt the environment is already complete.
	if getenv("VCINSTALLDIR") != "" && getenv("INCLUDE") != "" {
		return map[string]string{
			"INCLUDE": getenv("INCLUDE"),
			"LIB":     getenv("LIB"),
			"PATH":    getenv("PATH"),
		}, true
	}
	if m.Locator == nil {
		return nil, false
	}
	vs, ok := m.Locator.VisualStudio()
	if !ok {
		return nil, false
	}
	tools, ok := vcToolsDir(vs.InstallationPath)
	if !ok {
		return nil, false
	}
	res := m.Locator.Search(context.Background())
	sdkVer := res.WindowsSDKVersion
	if kitRoot == "" && res.WindowsSDKRoot != "" {
		kitRoot = filepath.Dir(filepath.Dir(res.WindowsSDKRoot))
	}
	a := arch.FromTriple(target)

	include := existing(
		filepath.Join(tools, "include"),
		filepath.Join(tools, "atlmfc", "include"),
	)
	lib := existing(
		filepath.Join(tools, "lib", a.String()),
		filepath.Join(tools, "atlmfc", "lib", a.String()),
	)
	path := existing(filepath.Join(tools, "bin", hostDir(), a.String()))
	if kitRoot != "" && sdkVer != "" {
		incBase := filepath.Join(kitRoot, "Include", sdkVer)
		libBase := filepath.Join(kitRoot, "Lib", sdkVer)
		binBase := filepath.Join(kitRoot, "bin", sdkVer)
		if sdkVer == "8.1" {
			incBase = filepath.Join(kitRoot, "Include")
			libBase = filepath.Join(kitRoot, "Lib", "winv6.3")
			binBase = filepath.Join(kitRoot, "bin")
		}
		for _, sub := range []string{"ucrt", "um", "shared", "winrt", "cppwinrt"} {
			include = append(include, existing(filepath.Join(incBase, sub))...)
		}
		for _, sub := range []string{"ucrt", "um"} {
			lib = append(lib, existing(filepath.Join(libBase, sub, a.String()))...)
		}
		path = append(path, existing(filepath.Join(binBase, a.String()))...)
	}
	if len(include) == 0 {
		return nil, false
	}
	return map[string]string{
		"INCLUDE": strings.Join(include, listSep),
		"LIB":     strings.Join(lib, listSep),
		"PATH":    strings.Join(path, listSep),
	}, true
}

// vcToolsDir reads the default MSVC toolset version of an installation.
func vcToolsDir(install string) (string, bool) {
	b, err := os.ReadFile(filepath.Join(install, "VC", "Auxiliary", "Build", "Microsoft.VCToolsVersion.default.txt"))
	if err != nil {
		return "", false
	}
	ver := strings.TrimSpace(string(b))
	if ver == "" {
		return "", false
	}
	dir := filepath.Join(install, "VC", "Tools", "MSVC", ver)
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return "", false
	}
	return dir, true
}

func hostDir() string {
	switch runtime.GOARCH {
	case "amd64":
		return "HostX64"
	case "arm64":
		return "HostARM64"
	}
	return "HostX86"
}

func existing(dirs ...string) []string {
	out := make([]string, 0, len(dirs))
	for _, d := range dirs {
		if st, err := os.Stat(d); err == nil && st.IsDir() {
			out = append(out, d)
		}
	}
	return out
}
