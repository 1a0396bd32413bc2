package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	cfg "rcfind/internal/config"
	"rcfind/internal/vswhere"
)

func runConfigWizard(cmd *cobra.Command) error {
	p, err := cfg.Path()
	if err != nil {
		return err
	}
	c, err := cfg.LoadFile(p)
	if err != nil {
		return err
	}
	vsw := c.VsWhere
	if vsw == "" {
		vsw = vswhere.DefaultPath()
	}
	debounce := c.Debounce.String()

	green := lipgloss.Color("#03BF87")
	theme := huh.ThemeCharm()
	theme.FieldSeparator = lipgloss.NewStyle()
	theme.Blurred.Title = theme.Blurred.Title.Width(14).Foreground(lipgloss.Color("7"))
	theme.Focused.Title = theme.Focused.Title.Width(14).Foreground(green).Bold(true)
	theme.Focused.SelectedOption = lipgloss.NewStyle().Foreground(green)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewNote().Title("rcfind").Description("Defaults written to " + p),
			huh.NewSelect[string]().
				Title("Log level").
				Options(huh.NewOptions("debug", "info", "warn", "error")...).
				Value(&c.LogLevel),
			huh.NewInput().Title("Output dir").Value(&c.OutDir),
			huh.NewInput().Title("Prefix").Placeholder("resource name").Value(&c.Prefix),
			huh.NewInput().Title("vswhere.exe").Value(&vsw),
			huh.NewInput().
				Title("Debounce").
				Value(&debounce).
				Validate(func(s string) error {
					_, err := time.ParseDuration(strings.TrimSpace(s))
					return err
				}),
		),
	).WithTheme(theme).WithWidth(72)

	if err := form.Run(); err != nil {
		return err // form canceled or failed
	}

	if vsw != vswhere.DefaultPath() {
		c.VsWhere = strings.TrimSpace(vsw)
	}
	if d, err := time.ParseDuration(strings.TrimSpace(debounce)); err == nil {
		c.Debounce = d
	}
	if err := cfg.SaveFile(p, c); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\n✓ saved %s\n\n", p)
	return nil
}
