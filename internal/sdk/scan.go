package sdk

import (
	"os"
	"path/filepath"
	"unicode/utf8"

	"rcfind/internal/arch"
	"rcfind/internal/winreg"
)

// kits10ScanTool handles Windows 10 kits, where several SDK versions live
// side by side under bin\<version>\<arch>. os.ReadDir yields names in
// lexical order, so with several matching versions the lexically first one
// wins.
func (f *Finder) kits10ScanTool(a arch.Arch, target, tool string) (string, bool) {
	kitRoot, ok := f.registry().StringValue(winreg.InstalledRootsKey, KitsRoot10)
	if !ok {
		return "", false
	}
	// Newer SDKs need the toolchain's INCLUDE before rc.exe can find windows.h.
	if f.Augmenter != nil {
		f.Augmenter.Augment(target, kitRoot)
	}

	binDir := filepath.Join(kitRoot, "bin")
	entries, err := os.ReadDir(binDir)
	if err != nil {
		return "", false
	}
	for _, e := range entries {
		name := e.Name()
		// links and junctions to version dirs are followed by the stat in tryRoot
		if e.Type().IsRegular() || !utf8.ValidString(name) {
			continue
		}
		if p, ok := tryRoot(binDir, name+"/x86", name+"/x64", a, tool); ok {
			return p, true
		}
	}
	return "", false
}
