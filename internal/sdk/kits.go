package sdk

import (
	"rcfind/internal/arch"
	"rcfind/internal/winreg"
)

// Installed-roots value names, newest kit first.
const (
	KitsRoot10 = "KitsRoot10"
	KitsRoot81 = "KitsRoot81"
	KitsRoot   = "KitsRoot"
)

// kitsTool covers Windows 8 - 10 kits that keep tools in bin\<arch>.
func (f *Finder) kitsTool(value string, a arch.Arch, tool string) (string, bool) {
	root, ok := f.registry().StringValue(winreg.InstalledRootsKey, value)
	if !ok {
		return "", false
	}
	return tryRoot(root, "bin/x86", "bin/x64", a, tool)
}

// legacySDKTool covers the Vista / 7 era SDKs.
func (f *Finder) legacySDKTool(a arch.Arch, tool string) (string, bool) {
	root, ok := f.registry().StringValue(winreg.LegacySDKKey, "CurrentInstallFolder")
	if !ok {
		return "", false
	}
	return tryRoot(root, "Bin", "Bin/x64", a, tool)
}
