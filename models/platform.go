package models

import (
	"runtime"
	"strings"
)

// Platform family names as they appear in manifest rules and natives maps.
const (
	FamilyWindows = "windows"
	FamilyLinux   = "linux"
	FamilyOSX     = "osx"
)

// Platform describes the host a launch is resolved for.
type Platform struct {
	// OS is the operating system name as reported by the host,
	// e.g. "linux", "darwin" or "Windows 10".
	OS string

	// Arch is the architecture as reported by the host,
	// e.g. "amd64", "x86_64" or "386".
	Arch string

	// Version is the OS version, e.g. "10.0" or "14.2.1". Rules with a
	// version pattern never match an unknown version.
	Version string
}

// HostPlatform describes the running process.
func HostPlatform() Platform {
	return Platform{OS: runtime.GOOS, Arch: runtime.GOARCH}
}

// Family maps the reported OS name to a platform family.
// Unrecognised systems map to the empty string.
func (p Platform) Family() string {
	os := strings.ToLower(p.OS)
	// "darwin" contains "win".
	switch {
	case strings.Contains(os, "mac"), strings.Contains(os, "darwin"), os == FamilyOSX:
		return FamilyOSX
	case strings.Contains(os, "win"):
		return FamilyWindows
	case strings.Contains(os, "linux"):
		return FamilyLinux
	}
	return ""
}

// MatchArch reports whether a rule architecture ("x86" or "x64") matches
// the host. An empty rule architecture always matches.
func (p Platform) MatchArch(arch string) bool {
	a := strings.ToLower(p.Arch)
	switch arch {
	case "":
		return true
	case "x86":
		return strings.Contains(a, "86")
	case "x64":
		return strings.Contains(a, "64")
	}
	return false
}

// Native architectures named by native jar classifiers.
const (
	ArchX64   = "x64"
	ArchX86   = "x86"
	ArchARM64 = "arm64"
	ArchARM32 = "arm32"
)

// NativeArch returns the architecture of native builds the host loads.
func (p Platform) NativeArch() string {
	a := strings.ToLower(p.Arch)
	switch {
	case strings.Contains(a, "arm64"), strings.Contains(a, "aarch64"):
		return ArchARM64
	case strings.Contains(a, "arm"):
		return ArchARM32
	case strings.Contains(a, "64"):
		return ArchX64
	}
	return ArchX86
}

// Bits returns "64" on 64-bit hosts and "32" otherwise.
func (p Platform) Bits() string {
	if strings.Contains(p.Arch, "64") {
		return "64"
	}
	return "32"
}

// ListSeparator is the classpath separator of the platform.
func (p Platform) ListSeparator() string {
	if p.Family() == FamilyWindows {
		return ";"
	}
	return ":"
}
