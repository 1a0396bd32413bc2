package cli

import (
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"rcfind/internal/arch"
	"rcfind/internal/rc"
	"rcfind/internal/toolchain"
	"rcfind/internal/vswhere"
)

type checkItem struct {
	Name    string `json:"name"`
	Status  string `json:"status"` // ok, warn or err
	Detail  string `json:"detail,omitempty"`
	Message string `json:"message,omitempty"`
}

type checkReport struct {
	Target   string      `json:"target"`
	Arch     string      `json:"arch"`
	Items    []checkItem `json:"items"`
	Errors   int         `json:"errors"`
	Warnings int         `json:"warnings"`
}

func (r *checkReport) add(it checkItem) {
	switch it.Status {
	case "err":
		r.Errors++
	case "warn":
		r.Warnings++
	}
	r.Items = append(r.Items, it)
}

var checkJSON bool

func init() {
	rootCmd.AddCommand(checkCmd)
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "output JSON report")
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the resource compiler and its SDK can be found",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, target, err := arch.Resolve(lookupTarget)
		if err != nil {
			return err
		}
		f, err := newFinder("")
		if err != nil {
			return err
		}
		_, loc, err := host()
		if err != nil {
			return err
		}
		rep := checkReport{Target: target, Arch: a.String()}

		vsw := firstNonEmpty(loc.VsWhere, vswhere.DefaultPath())
		if fileExists(vsw) {
			rep.add(checkItem{Name: "vswhere", Status: "ok", Detail: vsw})
		} else {
			rep.add(checkItem{Name: "vswhere", Status: "warn", Detail: vsw, Message: "not installed"})
		}

		if inst, ok := loc.VisualStudio(); ok {
			rep.add(checkItem{Name: "visual studio", Status: "ok", Detail: inst.InstallationPath, Message: inst.InstallationVersion})
		} else {
			rep.add(checkItem{Name: "visual studio", Status: "warn", Message: "no instance with VC tools"})
		}

		sdkRoot, hasSDK := loc.WindowsSDKRoot()
		if hasSDK {
			rep.add(checkItem{Name: "windows sdk", Status: "ok", Detail: sdkRoot})
		} else {
			rep.add(checkItem{Name: "windows sdk", Status: "warn", Message: "no usable SDK in the registry"})
		}

		if inc := includeDirs(loc, target); len(inc) > 0 {
			rep.add(checkItem{Name: "include", Status: "ok", Message: fmt.Sprintf("%d dir(s)", len(inc))})
		} else {
			rep.add(checkItem{Name: "include", Status: "warn", Message: "compiler environment unavailable"})
		}

		if p, ok := f.Find(a, target, rc.ToolName); ok {
			rep.add(checkItem{Name: rc.ToolName, Status: "ok", Detail: p})
		} else {
			rep.add(checkItem{Name: rc.ToolName, Status: "err", Message: "not found; compile falls back to PATH"})
		}

		if err := writeCheckReport(cmd.OutOrStdout(), rep, checkJSON); err != nil {
			return err
		}

		if rep.Errors > 0 {
			return fmt.Errorf("check failed: %d error(s)", rep.Errors)
		}
		return nil
	},
}

// includeDirs lists the INCLUDE a compile would get. The resolver derives the
// kit root from the locator's versioned Lib dir itself.
func includeDirs(loc *vswhere.Locator, target string) []string {
	env, ok := toolchain.NewMSVC(loc).Env(target, "")
	if !ok || env[toolchain.IncludeEnv] == "" {
		return nil
	}
	return strings.Split(env[toolchain.IncludeEnv], ";")
}

func writeCheckReport(w io.Writer, rep checkReport, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	for _, it := range rep.Items {
		line := strings.TrimSpace(it.Detail + "  " + it.Message)
		fmt.Fprintf(w, "%-4s %-14s %s\n", strings.ToUpper(it.Status), it.Name, line)
	}
	fmt.Fprintf(w, "\nSummary: %s (%s), %d error(s), %d warning(s)\n", rep.Target, rep.Arch, rep.Errors, rep.Warnings)
	return nil
}
