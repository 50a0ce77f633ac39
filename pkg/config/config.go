// Package config defines the bootstrap manifest model and its loader.
// Manifests are declarative: they describe the packages, artifacts,
// symlinks, and shell profile lines the host should converge to.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/envup/pkg/errors"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// FetchMethod selects how an artifact is materialized on disk.
type FetchMethod string

const (
	// MethodClone fetches with a shallow git clone
	MethodClone FetchMethod = "clone"

	// MethodDownload fetches via HTTP and extracts archives by extension
	MethodDownload FetchMethod = "download"

	// MethodScript downloads an installer script and runs it through sh
	MethodScript FetchMethod = "script"
)

// PackageSpec names a system package. Identity is the canonical name;
// Rename maps a package manager name (apt, dnf, pacman, brew) to the
// name that manager knows the package by.
type PackageSpec struct {
	Name   string            `toml:"name" yaml:"name"`
	Rename map[string]string `toml:"rename,omitempty" yaml:"rename,omitempty"`
}

// NameFor returns the package name to use with the given manager.
func (s PackageSpec) NameFor(manager string) string {
	if override, ok := s.Rename[manager]; ok {
		return override
	}
	return s.Name
}

// ArtifactSpec describes an external artifact (repo, archive, installer
// script) that should exist at Target. Check, when set, is a path whose
// existence short-circuits the fetch; it defaults to Target.
type ArtifactSpec struct {
	Name   string      `toml:"name" yaml:"name"`
	Target string      `toml:"target" yaml:"target"`
	Method FetchMethod `toml:"method" yaml:"method"`
	URL    string      `toml:"url" yaml:"url"`
	Check  string      `toml:"check,omitempty" yaml:"check,omitempty"`
}

// PresencePath returns the path whose existence marks the artifact as present.
func (s ArtifactSpec) PresencePath() string {
	if s.Check != "" {
		return s.Check
	}
	return s.Target
}

// LinkSpec maps a file inside the repo to its runtime location.
type LinkSpec struct {
	Source string `toml:"source" yaml:"source"`
	Dest   string `toml:"dest" yaml:"dest"`
}

// ProfileConfig holds the shell profile file and the lines that must
// appear in it exactly once.
type ProfileConfig struct {
	Path  string   `toml:"path" yaml:"path"`
	Lines []string `toml:"lines" yaml:"lines"`
}

// FontSpec is a download artifact that is only installed interactively.
type FontSpec struct {
	Name   string `toml:"name" yaml:"name"`
	URL    string `toml:"url" yaml:"url"`
	Target string `toml:"target" yaml:"target"`
}

// Manifest is the root of the bootstrap configuration.
type Manifest struct {
	Upgrade   bool           `toml:"upgrade,omitempty" yaml:"upgrade,omitempty"`
	Packages  []PackageSpec  `toml:"packages,omitempty" yaml:"packages,omitempty"`
	Artifacts []ArtifactSpec `toml:"artifacts,omitempty" yaml:"artifacts,omitempty"`
	Links     []LinkSpec     `toml:"links,omitempty" yaml:"links,omitempty"`
	Profile   ProfileConfig  `toml:"profile,omitempty" yaml:"profile,omitempty"`
	Fonts     []FontSpec     `toml:"fonts,omitempty" yaml:"fonts,omitempty"`
}

// Load reads and parses a manifest file. The format is chosen by
// extension: .toml, .yaml, or .yml.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read manifest %s", path)
	}

	var m Manifest
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid TOML in %s", path)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfigParse, "invalid YAML in %s", path)
		}
	default:
		return nil, errors.Newf(errors.ErrConfigLoad, "unsupported manifest format %q", filepath.Ext(path))
	}

	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks the manifest for entries that could never be applied.
func (m *Manifest) Validate() error {
	for _, pkg := range m.Packages {
		if pkg.Name == "" {
			return errors.New(errors.ErrConfigValid, "package with empty name")
		}
	}
	for _, art := range m.Artifacts {
		if art.Target == "" {
			return errors.Newf(errors.ErrConfigValid, "artifact %q has no target", art.Name)
		}
		switch art.Method {
		case MethodClone, MethodDownload, MethodScript:
		default:
			return errors.Newf(errors.ErrConfigValid, "artifact %q has unknown method %q", art.Name, art.Method)
		}
		if art.URL == "" {
			return errors.Newf(errors.ErrConfigValid, "artifact %q has no url", art.Name)
		}
	}
	for _, link := range m.Links {
		if link.Source == "" || link.Dest == "" {
			return errors.New(errors.ErrConfigValid, "link with empty source or dest")
		}
	}
	if len(m.Profile.Lines) > 0 && m.Profile.Path == "" {
		return errors.New(errors.ErrConfigValid, "profile lines given but no profile path")
	}
	return nil
}
