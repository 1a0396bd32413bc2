package sdk

import (
	"path/filepath"

	"rcfind/internal/arch"
)

// SDKLocator reports the Windows SDK root of the installed Visual Studio,
// e.g. C:\Program Files (x86)\Windows Kits\10\Lib\10.0.19041.0.
type SDKLocator interface {
	WindowsSDKRoot() (string, bool)
}

func (f *Finder) vsInstanceTool(a arch.Arch, tool string) (string, bool) {
	if f.Locator == nil {
		return "", false
	}
	root, ok := f.Locator.WindowsSDKRoot()
	if !ok || root == "" {
		return "", false
	}
	root = filepath.Clean(root)
	kit := filepath.Dir(filepath.Dir(root))

	// <kit>\bin\<version>\<arch>
	ver := filepath.Base(root)
	if p, ok := tryRoot(filepath.Join(kit, "bin", ver), "x86", "x64", a, tool); ok {
		return p, true
	}
	// <kit>\bin\<arch> for kits that do not nest by version
	return tryRoot(kit, "bin/x86", "bin/x64", a, tool)
}
