// Package platform implements the environment probe: it identifies the
// host's OS family and the package manager available to envup. The probe
// runs once per invocation and its result is immutable for the run.
package platform

import (
	"os"
	"runtime"
	"strings"

	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/arthur-debert/envup/pkg/logging"
	"github.com/arthur-debert/envup/pkg/run"
)

// Family is a coarse OS classification, just fine-grained enough to pick
// package names and managers.
type Family string

const (
	FamilyDarwin  Family = "darwin"
	FamilyDebian  Family = "debian"
	FamilyFedora  Family = "fedora"
	FamilyArch    Family = "arch"
	FamilyUnknown Family = "unknown"
)

// Known package manager identifiers, in probe order. brew is probed
// first so Linuxbrew users get it over the system manager.
var managerProbeOrder = []string{"brew", "apt-get", "dnf", "pacman"}

// Profile is the probe result: OS family plus the package manager to use.
type Profile struct {
	Family  Family
	Manager string
}

// osReleasePath is a var so tests can point the probe at a fixture.
var osReleasePath = "/etc/os-release"

// Detect probes the host. It has no side effects. The returned error
// carries ErrUnsupportedPlatform when neither the OS family nor any
// known package manager can be identified.
func Detect(runner run.Runner) (Profile, error) {
	logger := logging.GetLogger("platform")

	family := detectFamily(runtime.GOOS, readOSRelease())
	manager, err := detectManager(runner)
	if err != nil {
		return Profile{}, err
	}

	profile := Profile{Family: family, Manager: manager}
	logger.Info().
		Str("family", string(family)).
		Str("manager", manager).
		Msg("Platform detected")
	return profile, nil
}

// detectFamily classifies the OS from GOOS and os-release contents.
func detectFamily(goos, osRelease string) Family {
	if goos == "darwin" {
		return FamilyDarwin
	}
	if goos != "linux" {
		return FamilyUnknown
	}

	release := strings.ToLower(osRelease)
	switch {
	case containsAny(release, "debian", "ubuntu", "mint"):
		return FamilyDebian
	case containsAny(release, "fedora", "rhel", "centos", "oracle", "rocky", "alma"):
		return FamilyFedora
	case containsAny(release, "arch", "manjaro"):
		return FamilyArch
	default:
		return FamilyUnknown
	}
}

// detectManager finds the first known package manager binary on PATH.
func detectManager(runner run.Runner) (string, error) {
	for _, name := range managerProbeOrder {
		if _, err := runner.LookPath(name); err == nil {
			return name, nil
		}
	}
	return "", errors.New(errors.ErrUnsupportedPlatform,
		"no supported package manager found (looked for brew, apt-get, dnf, pacman)")
}

func readOSRelease() string {
	data, err := os.ReadFile(osReleasePath)
	if err != nil {
		return ""
	}
	return string(data)
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
