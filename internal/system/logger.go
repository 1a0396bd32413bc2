package system

import (
	"os"
	"strings"

	clog "github.com/charmbracelet/log"
)

// Logger is the shared application logger. It prints to stderr so that
// stdout stays reserved for paths printed by the CLI.
var Logger = clog.NewWithOptions(os.Stderr, clog.Options{
	ReportTimestamp: true,
	Prefix:          "rcfind",
})

// SetLevel applies a textual level (debug, info, warn, error) to Logger.
// Unknown or empty values leave the level untouched.
func SetLevel(level string) {
	level = strings.TrimSpace(level)
	if level == "" {
		return
	}
	if lvl, err := clog.ParseLevel(level); err == nil {
		Logger.SetLevel(lvl)
	}
}
