package matrix

import "strings"

// Platform maps a capability signature to a CI runner label. Only the
// first (OS) and last (architecture) capability are significant.
type Platform struct {
	OS     string
	Arch   string
	Runner string
}

// Platforms is the ordered platform rule table.
var Platforms = []Platform{
	{OS: "darwin", Arch: "aarch64", Runner: "macos-latest"},
	{OS: "linux", Arch: "aarch64", Runner: "ubuntu-24.04-arm"},
	{OS: "linux", Arch: "amd64", Runner: "ubuntu-latest"},
	{OS: "windows", Arch: "amd64", Runner: "windows-latest"},
}

// ResolveRunner returns the runner for a capability list of the form
// [os, ..., arch]. At least two capabilities are required.
func ResolveRunner(capabilities []string) (string, bool) {
	if len(capabilities) < 2 {
		return "", false
	}
	first, last := capabilities[0], capabilities[len(capabilities)-1]
	for _, p := range Platforms {
		if p.OS == first && p.Arch == last {
			return p.Runner, true
		}
	}
	return "", false
}

// KnownRunner reports whether runner appears in the platform table.
func KnownRunner(runner string) bool {
	for _, p := range Platforms {
		if p.Runner == runner {
			return true
		}
	}
	return false
}

// PackageKind classifies a "packages" key.
type PackageKind int

const (
	KindSystem PackageKind = iota
	KindPython
	KindPythonPin
	KindMxPin
)

func (k PackageKind) String() string {
	switch k {
	case KindPython:
		return "python"
	case KindPythonPin:
		return "python-pin"
	case KindMxPin:
		return "mx-pin"
	default:
		return "system"
	}
}

type packageRule struct {
	kind  PackageKind
	match func(key string) (name string, ok bool)
}

// packageRules is evaluated top to bottom; the first match wins and the
// last rule always matches.
var packageRules = []packageRule{
	{kind: KindPythonPin, match: exactKey("python3")},
	{kind: KindMxPin, match: exactKey("mx")},
	{kind: KindPython, match: prefixKey("pip:")},
	{kind: KindSystem, match: groupTagKey},
	{kind: KindSystem, match: func(key string) (string, bool) { return key, true }},
}

// ClassifyPackage returns the kind of a package key and the package name
// with any classification prefix removed.
func ClassifyPackage(key string) (PackageKind, string) {
	for _, r := range packageRules {
		if name, ok := r.match(key); ok {
			return r.kind, name
		}
	}
	return KindSystem, key
}

func exactKey(want string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		return key, key == want
	}
}

func prefixKey(prefix string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if !strings.HasPrefix(key, prefix) {
			return "", false
		}
		return strings.TrimPrefix(key, prefix), true
	}
}

// groupTagKey matches system package groups such as "00:gcc" or "01:make".
func groupTagKey(key string) (string, bool) {
	if len(key) < 3 || !isDigit(key[0]) || !isDigit(key[1]) || key[2] != ':' {
		return "", false
	}
	return key[3:], true
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

// StripComparators removes leading and trailing version comparators
// ("==1.2", ">=3.11", "~=2") from a requirement string.
func StripComparators(version string) string {
	return strings.Trim(version, "=<>~")
}

// PackageToken renders a package requirement as a shell-safe token: the
// name single-quoted, followed by the raw version string.
func PackageToken(name, version string) string {
	return "'" + strings.ReplaceAll(name, "'", `'"'"'`) + "'" + version
}
