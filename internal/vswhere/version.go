package vswhere

import (
	"strings"
)

// VersionLess compares dotted SDK versions such as "10.0.19041.0"
// numerically, component by component. Missing components count as zero;
// anything after the first non-digit in a component is ignored.
// Returns true if a < b.
func VersionLess(a, b string) bool {
	a = NormalizeVersion(a)
	b = NormalizeVersion(b)
	if a == "" || b == "" {
		return a == "" && b != ""
	}
	ap := strings.Split(a, ".")
	bp := strings.Split(b, ".")
	n := len(ap)
	if len(bp) > n {
		n = len(bp)
	}
	for i := 0; i < n; i++ {
		av, bv := 0, 0
		if i < len(ap) {
			av = atoiSafe(ap[i])
		}
		if i < len(bp) {
			bv = atoiSafe(bp[i])
		}
		if av != bv {
			return av < bv
		}
	}
	return false
}

func NormalizeVersion(v string) string {
	v = strings.TrimSpace(v)
	v = strings.TrimPrefix(v, "v")
	return v
}

func atoiSafe(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			break
		}
		n = n*10 + int(r-'0')
	}
	return n
}
