// Package winreg reads string values from the local-machine registry hive.
// Every lookup is best-effort: a missing key, a missing value and a value of
// the wrong type all read as absent.
package winreg

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

const (
	// InstalledRootsKey records the base directories of Windows Kits (8.0 and later).
	InstalledRootsKey = `SOFTWARE\Microsoft\Windows Kits\Installed Roots`
	// LegacySDKKey holds CurrentInstallFolder for the Vista/7 era SDKs.
	LegacySDKKey = `SOFTWARE\Microsoft\Microsoft SDKs\Windows`
)

// Registry is a read-only view of HKEY_LOCAL_MACHINE.
type Registry interface {
	StringValue(key, name string) (string, bool)
}

// Map is an in-memory Registry keyed by key path, then value name.
// Key paths compare case-insensitively like the real registry.
type Map map[string]map[string]string

func (m Map) StringValue(key, name string) (string, bool) {
	for k, values := range m {
		if !strings.EqualFold(k, key) {
			continue
		}
		for n, v := range values {
			if strings.EqualFold(n, name) {
				return v, true
			}
		}
	}
	return "", false
}

// LoadMap reads a yaml fixture of the form
//
//	SOFTWARE\Microsoft\Windows Kits\Installed Roots:
//	  KitsRoot10: C:\Program Files (x86)\Windows Kits\10\
func LoadMap(path string) (Map, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read registry fixture")
	}
	m := Map{}
	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, errors.Wrapf(err, "parse registry fixture %s", path)
	}
	return m, nil
}

// Chain consults each registry in order and returns the first hit.
type Chain []Registry

func (c Chain) StringValue(key, name string) (string, bool) {
	for _, r := range c {
		if r == nil {
			continue
		}
		if v, ok := r.StringValue(key, name); ok {
			return v, true
		}
	}
	return "", false
}
