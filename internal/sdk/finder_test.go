package sdk

import (
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	clog "github.com/charmbracelet/log"

	"rcfind/internal/arch"
	tu "rcfind/internal/testutil"
	"rcfind/internal/toolchain"
	"rcfind/internal/winreg"
)

const tripleX64 = "x86_64-pc-windows-msvc"

type fakeLocator struct{ root string }

func (l fakeLocator) WindowsSDKRoot() (string, bool) { return l.root, l.root != "" }

type countingAugmenter struct {
	mu    sync.Mutex
	calls []string
}

func (c *countingAugmenter) Augment(target, kitRoot string) {
	c.mu.Lock()
	c.calls = append(c.calls, kitRoot)
	c.mu.Unlock()
}

func quietFinder(reg winreg.Map) *Finder {
	return &Finder{Registry: reg, Logger: clog.New(io.Discard)}
}

func TestFind_EndToEndKitsRoot10(t *testing.T) {
	root := t.TempDir()
	tu.WriteTree(t, root, "bin/x64/rc.exe", "bin/x86/rc.exe")
	f := quietFinder(winreg.Map{winreg.InstalledRootsKey: {KitsRoot10: root}})

	a := arch.FromTriple(tripleX64)
	p, ok := f.Find(a, tripleX64, "rc.exe")
	if !ok {
		t.Fatalf("expected rc.exe to be found")
	}
	if want := filepath.Join(root, "bin", "x64", "rc.exe"); p != want {
		t.Fatalf("path = %q, want %q", p, want)
	}

	p, _ = f.Find(arch.FromTriple("i686-pc-windows-msvc"), "i686-pc-windows-msvc", "rc.exe")
	if want := filepath.Join(root, "bin", "x86", "rc.exe"); p != want {
		t.Fatalf("x86 path = %q, want %q", p, want)
	}
}

func TestFind_InstalledRootsBeatLegacySDK(t *testing.T) {
	dir := t.TempDir()
	tu.WriteTree(t, dir,
		"kits/bin/x64/rc.exe",
		"legacy/Bin/x64/rc.exe",
	)
	f := quietFinder(winreg.Map{
		winreg.InstalledRootsKey: {KitsRoot: filepath.Join(dir, "kits")},
		winreg.LegacySDKKey:      {"CurrentInstallFolder": filepath.Join(dir, "legacy")},
	})
	want := filepath.Join(dir, "kits", "bin", "x64", "rc.exe")
	for i := 0; i < 3; i++ {
		p, ok := f.Find(arch.X64, tripleX64, "rc.exe")
		if !ok || p != want {
			t.Fatalf("run %d: got %q %v, want %q", i, p, ok, want)
		}
	}

	// without the installed root the legacy SDK is used
	f.Registry = winreg.Map{winreg.LegacySDKKey: {"CurrentInstallFolder": filepath.Join(dir, "legacy")}}
	p, ok := f.Find(arch.X64, tripleX64, "rc.exe")
	if !ok || p != filepath.Join(dir, "legacy", "Bin", "x64", "rc.exe") {
		t.Fatalf("legacy: got %q %v", p, ok)
	}
}

func TestFind_KitsValueOrder(t *testing.T) {
	dir := t.TempDir()
	tu.WriteTree(t, dir, "k81/bin/x86/rc.exe", "k8/bin/x86/rc.exe", "k10/")
	f := quietFinder(winreg.Map{winreg.InstalledRootsKey: {
		KitsRoot10: filepath.Join(dir, "k10"),
		KitsRoot81: filepath.Join(dir, "k81"),
		KitsRoot:   filepath.Join(dir, "k8"),
	}})
	p, ok := f.Find(arch.X86, "i686-pc-windows-msvc", "rc.exe")
	if !ok || p != filepath.Join(dir, "k81", "bin", "x86", "rc.exe") {
		t.Fatalf("expected KitsRoot81 to win over KitsRoot, got %q %v", p, ok)
	}
}

func TestFind_Exhausted(t *testing.T) {
	f := quietFinder(winreg.Map{})
	f.Locator = fakeLocator{}
	f.Augmenter = &countingAugmenter{}
	if p, ok := f.Find(arch.X64, tripleX64, "rc.exe"); ok || p != "" {
		t.Fatalf("expected no result, got %q", p)
	}

	// a kit root that points nowhere behaves the same
	f.Registry = winreg.Map{winreg.InstalledRootsKey: {KitsRoot10: filepath.Join(t.TempDir(), "gone")}}
	if _, ok := f.Find(arch.X64, tripleX64, "rc.exe"); ok {
		t.Fatalf("expected no result for unreadable kit root")
	}
}

func TestFind_Kits10ScanTieBreak(t *testing.T) {
	kit := t.TempDir()
	tu.WriteTree(t, kit,
		"bin/10.0.19041.0/x64/rc.exe",
		"bin/10.0.17763.0/x64/rc.exe",
		"bin/10.0.22000.0/x86/rc.exe",
		"bin/readme.txt",
	)
	aug := &countingAugmenter{}
	f := quietFinder(winreg.Map{winreg.InstalledRootsKey: {KitsRoot10: kit}})
	f.Augmenter = aug

	want := filepath.Join(kit, "bin", "10.0.17763.0", "x64", "rc.exe")
	for i := 0; i < 3; i++ {
		p, ok := f.Find(arch.X64, tripleX64, "rc.exe")
		if !ok || p != want {
			t.Fatalf("run %d: got %q %v, want %q", i, p, ok, want)
		}
	}
	if len(aug.calls) != 3 || aug.calls[0] != kit {
		t.Fatalf("augmenter should be asked on every scan with the kit root: %v", aug.calls)
	}
}

func TestFind_Kits10ScanAugmentsOnceConcurrently(t *testing.T) {
	kit := t.TempDir()
	tu.WriteTree(t, kit, "bin/10.0.19041.0/x64/rc.exe")

	var resolved atomic.Int32
	aug := &toolchain.Augmenter{
		Resolver: toolchain.ResolverFunc(func(target, kitRoot string) (map[string]string, bool) {
			resolved.Add(1)
			return map[string]string{"INCLUDE": filepath.Join(kitRoot, "Include")}, true
		}),
		Setenv: func(string, string) error { return nil },
		Logger: clog.New(io.Discard),
	}

	const n = 16
	var wg sync.WaitGroup
	var found atomic.Int32
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f := quietFinder(winreg.Map{winreg.InstalledRootsKey: {KitsRoot10: kit}})
			f.Augmenter = aug
			if _, ok := f.Find(arch.X64, tripleX64, "rc.exe"); ok {
				found.Add(1)
			}
		}()
	}
	wg.Wait()

	if found.Load() != n {
		t.Fatalf("expected every discovery to succeed, got %d/%d", found.Load(), n)
	}
	if got := resolved.Load(); got != 1 {
		t.Fatalf("toolchain resolver invoked %d times, want 1", got)
	}
}

func TestFind_VsInstance(t *testing.T) {
	dir := t.TempDir()
	tu.WriteTree(t, dir,
		"Windows Kits/10/Lib/10.0.19041.0/",
		"Windows Kits/10/bin/10.0.19041.0/x64/rc.exe",
		"Windows Kits/8.1/Lib/winv6.3/",
		"Windows Kits/8.1/bin/x86/rc.exe",
	)
	f := quietFinder(winreg.Map{})

	f.Locator = fakeLocator{root: filepath.Join(dir, "Windows Kits", "10", "Lib", "10.0.19041.0")}
	p, ok := f.Find(arch.X64, tripleX64, "rc.exe")
	if !ok || p != filepath.Join(dir, "Windows Kits", "10", "bin", "10.0.19041.0", "x64", "rc.exe") {
		t.Fatalf("versioned derivation: got %q %v", p, ok)
	}

	f.Locator = fakeLocator{root: filepath.Join(dir, "Windows Kits", "8.1", "Lib", "winv6.3")}
	p, ok = f.Find(arch.X86, "i686-pc-windows-msvc", "rc.exe")
	if !ok || p != filepath.Join(dir, "Windows Kits", "8.1", "bin", "x86", "rc.exe") {
		t.Fatalf("flat derivation: got %q %v", p, ok)
	}

	if _, ok := f.Find(arch.X64, tripleX64, "rc.exe"); ok {
		t.Fatalf("flat kit has no x64 tool, expected no result")
	}
}

func TestFind_OnlyAndTrace(t *testing.T) {
	dir := t.TempDir()
	tu.WriteTree(t, dir, "kits/bin/x64/rc.exe", "legacy/Bin/x64/rc.exe")
	f := quietFinder(winreg.Map{
		winreg.InstalledRootsKey: {KitsRoot10: filepath.Join(dir, "kits")},
		winreg.LegacySDKKey:      {"CurrentInstallFolder": filepath.Join(dir, "legacy")},
	})
	f.Augmenter = &countingAugmenter{}

	f.Only = []string{"legacy-sdk"}
	p, ok := f.Find(arch.X64, tripleX64, "rc.exe")
	if !ok || p != filepath.Join(dir, "legacy", "Bin", "x64", "rc.exe") {
		t.Fatalf("Only should skip kits probes: %q %v", p, ok)
	}

	f.Only = nil
	trace := f.Trace(arch.X64, tripleX64, "rc.exe")
	if len(trace) != len(Probes()) {
		t.Fatalf("trace should cover every probe, got %d", len(trace))
	}
	hits := map[string]bool{}
	for _, o := range trace {
		hits[o.Probe.Name] = o.Found
	}
	if !hits["kits-root-10"] || !hits["legacy-sdk"] || hits["kits-root-81"] || hits["vs-instance"] {
		t.Fatalf("unexpected trace: %v", hits)
	}
}

func TestProbesOrder(t *testing.T) {
	want := []string{"kits-root-10", "kits-root-81", "kits-root", "legacy-sdk", "kits-10-scan", "vs-instance"}
	got := Probes()
	if len(got) != len(want) {
		t.Fatalf("got %d probes", len(got))
	}
	for i := range want {
		if got[i].Name != want[i] {
			t.Fatalf("probe %d = %s, want %s", i, got[i].Name, want[i])
		}
	}
}

func TestMatchProbes(t *testing.T) {
	if got := MatchProbes("legacy-sdk"); len(got) != 1 || got[0] != "legacy-sdk" {
		t.Fatalf("exact match: %v", got)
	}
	got := MatchProbes("vs")
	if len(got) == 0 || got[0] != "vs-instance" {
		t.Fatalf("fuzzy match: %v", got)
	}
	if got := MatchProbes("   "); got != nil {
		t.Fatalf("blank pattern: %v", got)
	}
	if got := MatchProbes("zzz"); len(got) != 0 {
		t.Fatalf("no match expected: %v", got)
	}
}

func TestFind_Kits10ScanSkipsNonUTF8Names(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("needs a filesystem that accepts non UTF-8 names")
	}
	kit := t.TempDir()
	bad := filepath.Join(kit, "bin", "10.0.\xff\xfe", "x64")
	if err := os.MkdirAll(bad, 0o755); err != nil {
		t.Skipf("cannot create non UTF-8 dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(bad, "rc.exe"), nil, 0o644); err != nil {
		t.Fatal(err)
	}
	f := quietFinder(winreg.Map{winreg.InstalledRootsKey: {KitsRoot10: kit}})
	f.Only = []string{"kits-10-scan"}
	if p, ok := f.Find(arch.X64, tripleX64, "rc.exe"); ok {
		t.Fatalf("non UTF-8 version dir must be skipped, got %q", p)
	}

	tu.WriteTree(t, kit, "bin/10.0.19041.0/x64/rc.exe")
	want := filepath.Join(kit, "bin", "10.0.19041.0", "x64", "rc.exe")
	if p, ok := f.Find(arch.X64, tripleX64, "rc.exe"); !ok || p != want {
		t.Fatalf("got %q %v, want %q", p, ok, want)
	}
}

func TestFind_Kits10ScanFollowsLinkedVersionDir(t *testing.T) {
	dir := t.TempDir()
	tu.WriteTree(t, dir, "store/10.0.22621.0/x64/rc.exe", "kit/bin/")
	link := filepath.Join(dir, "kit", "bin", "10.0.22621.0")
	if err := os.Symlink(filepath.Join(dir, "store", "10.0.22621.0"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	f := quietFinder(winreg.Map{winreg.InstalledRootsKey: {KitsRoot10: filepath.Join(dir, "kit")}})
	f.Only = []string{"kits-10-scan"}
	want := filepath.Join(link, "x64", "rc.exe")
	if p, ok := f.Find(arch.X64, tripleX64, "rc.exe"); !ok || p != want {
		t.Fatalf("got %q %v, want %q", p, ok, want)
	}
}

func TestTrace_OnlyKeepsProbeOrder(t *testing.T) {
	f := quietFinder(winreg.Map{})
	f.Only = []string{"vs-instance", "legacy-sdk", "kits-root-10"}
	out := f.Trace(arch.X64, tripleX64, "rc.exe")
	var got []string
	for _, o := range out {
		got = append(got, o.Probe.Name)
	}
	if want := "kits-root-10,legacy-sdk,vs-instance"; strings.Join(got, ",") != want {
		t.Fatalf("trace order = %v, want %s", got, want)
	}
}
