// Package version holds the build version, set with
// -ldflags "-X rcfind/internal/version.AppVersion=...".
package version

var AppVersion = "dev"
