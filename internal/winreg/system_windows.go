//go:build windows

package winreg

import (
	"golang.org/x/sys/windows/registry"
)

type system struct{}

// System returns the host registry.
func System() Registry { return system{} }

func (system) StringValue(key, name string) (string, bool) {
	k, err := registry.OpenKey(registry.LOCAL_MACHINE, key, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()
	v, typ, err := k.GetStringValue(name)
	if err != nil {
		return "", false
	}
	if typ == registry.EXPAND_SZ {
		if expanded, err := registry.ExpandString(v); err == nil {
			v = expanded
		}
	}
	return v, true
}
