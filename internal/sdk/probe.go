// Package sdk finds Windows SDK tools such as rc.exe by probing the
// installation layouts used by successive SDK generations.
package sdk

import (
	"os"
	"path/filepath"

	"rcfind/internal/arch"
)

// TryBinDir joins root with the arch-selected subpath and returns it only if
// it is an existing directory.
func TryBinDir(root, x86Sub, x64Sub string, a arch.Arch) (string, bool) {
	if root == "" {
		return "", false
	}
	dir := filepath.Join(root, filepath.FromSlash(a.Pick(x86Sub, x64Sub)))
	if st, err := os.Stat(dir); err == nil && st.IsDir() {
		return dir, true
	}
	return "", false
}

// TryTool returns dir/tool if anything exists at that path. Whether it is
// runnable is left to whoever spawns it.
func TryTool(dir, tool string) (string, bool) {
	p := filepath.Join(dir, tool)
	if _, err := os.Stat(p); err == nil {
		return p, true
	}
	return "", false
}

// tryRoot is the usual TryBinDir -> TryTool chain.
func tryRoot(root, x86Sub, x64Sub string, a arch.Arch, tool string) (string, bool) {
	dir, ok := TryBinDir(root, x86Sub, x64Sub, a)
	if !ok {
		return "", false
	}
	return TryTool(dir, tool)
}
