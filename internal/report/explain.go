package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"

	"rcfind/internal/sdk"
)

// ExplainMarkdown describes the search order as markdown.
func ExplainMarkdown(tool string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# How `%s` is located\n\n", tool)
	sb.WriteString("The architecture comes from the `TARGET` triple: `x86_64*` selects **x64**, anything else **x86**.\n\n")
	sb.WriteString("Probes run in this order; the first one that finds the file wins.\n\n")
	for i, p := range sdk.Probes() {
		fmt.Fprintf(&sb, "%d. **%s**: `%s`\n", i+1, p.Name, p.Description)
	}
	sb.WriteString("\nWhen the Windows 10 kit scan runs, the C/C++ toolchain's `INCLUDE` is copied into the ")
	sb.WriteString("environment once per process so that `windows.h` resolves.\n\n")
	fmt.Fprintf(&sb, "If nothing is found, `%s` is run from `PATH`.\n", tool)
	return sb.String()
}

// Explain renders ExplainMarkdown for the terminal. plain skips styling.
func Explain(tool string, plain bool) (string, error) {
	md := ExplainMarkdown(tool)
	if plain {
		return md, nil
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return md, err
	}
	return r.Render(md)
}
