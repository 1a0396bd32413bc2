package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tu "rcfind/internal/testutil"
	"rcfind/internal/vswhere"
	"rcfind/internal/winreg"
)

func fakeLocator(t *testing.T, dir string) *vswhere.Locator {
	t.Helper()
	vs := filepath.Join(dir, "vs")
	kit := filepath.Join(dir, "kits", "10")
	tu.WriteTree(t, dir,
		"vswhere.exe",
		"vs/VC/Tools/MSVC/14.38.33130/include/",
		"vs/VC/Tools/MSVC/14.38.33130/atlmfc/include/",
		"vs/VC/Tools/MSVC/14.38.33130/lib/x64/",
		"kits/10/Lib/10.0.19041.0/um/x64/kernel32.lib",
		"kits/10/Lib/10.0.19041.0/ucrt/x64/",
		"kits/10/Include/10.0.19041.0/ucrt/",
		"kits/10/Include/10.0.19041.0/um/",
		"kits/10/Include/10.0.19041.0/shared/",
	)
	verFile := filepath.Join(vs, "VC", "Auxiliary", "Build", "Microsoft.VCToolsVersion.default.txt")
	if err := os.MkdirAll(filepath.Dir(verFile), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(verFile, []byte("14.38.33130\r\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := `[{"installationPath": ` + quote(vs) + `, "installationVersion": "17.8"}]`
	return &vswhere.Locator{
		Registry: winreg.Map{winreg.InstalledRootsKey: {"KitsRoot10": kit}},
		VsWhere:  filepath.Join(dir, "vswhere.exe"),
		Run: func(ctx context.Context, name string, args ...string) ([]byte, error) {
			return []byte(out), nil
		},
	}
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `\`, `\\`) + `"`
}

func TestMSVC_Env(t *testing.T) {
	dir := t.TempDir()
	m := &MSVC{Locator: fakeLocator(t, dir), Getenv: func(string) string { return "" }}

	env, ok := m.Env("x86_64-pc-windows-msvc", "")
	if !ok {
		t.Fatalf("expected toolchain env")
	}
	inc := strings.Split(env["INCLUDE"], ";")
	tools := filepath.Join(dir, "vs", "VC", "Tools", "MSVC", "14.38.33130")
	kitInc := filepath.Join(dir, "kits", "10", "Include", "10.0.19041.0")
	want := []string{
		filepath.Join(tools, "include"),
		filepath.Join(tools, "atlmfc", "include"),
		filepath.Join(kitInc, "ucrt"),
		filepath.Join(kitInc, "um"),
		filepath.Join(kitInc, "shared"),
	}
	if strings.Join(inc, "|") != strings.Join(want, "|") {
		t.Fatalf("INCLUDE = %v\nwant %v", inc, want)
	}
	if !strings.Contains(env["LIB"], filepath.Join("lib", "x64")) {
		t.Fatalf("LIB should carry x64 dirs: %q", env["LIB"])
	}
}

func TestMSVC_DeveloperPrompt(t *testing.T) {
	env := map[string]string{"VCINSTALLDIR": `C:\VS\VC\`, "INCLUDE": `C:\prompt\inc`}
	m := &MSVC{Getenv: func(k string) string { return env[k] }}
	got, ok := m.Env("i686-pc-windows-msvc", "")
	if !ok || got["INCLUDE"] != `C:\prompt\inc` {
		t.Fatalf("expected prompt INCLUDE, got %v %v", got, ok)
	}
}

func TestMSVC_NoVisualStudio(t *testing.T) {
	dir := t.TempDir()
	loc := &vswhere.Locator{Registry: winreg.Map{}, VsWhere: filepath.Join(dir, "absent.exe")}
	m := &MSVC{Locator: loc, Getenv: func(string) string { return "" }}
	if _, ok := m.Env("x86_64-pc-windows-msvc", ""); ok {
		t.Fatalf("expected no env without Visual Studio")
	}
}
