// Package bootstrap sequences the environment probe, package installer,
// artifact fetcher, link manager, and profile editor into one run.
// Stages run strictly in order; failures inside a stage are collected
// per item and never abort the run. Only a failed platform probe is
// fatal, since every later stage depends on its result.
package bootstrap

import (
	"context"
	"time"

	"github.com/arthur-debert/envup/pkg/config"
	"github.com/arthur-debert/envup/pkg/fetch"
	"github.com/arthur-debert/envup/pkg/link"
	"github.com/arthur-debert/envup/pkg/logging"
	"github.com/arthur-debert/envup/pkg/paths"
	"github.com/arthur-debert/envup/pkg/pkgmgr"
	"github.com/arthur-debert/envup/pkg/platform"
	"github.com/arthur-debert/envup/pkg/profile"
	"github.com/arthur-debert/envup/pkg/run"
	"github.com/rs/zerolog"
)

// Options configures an Orchestrator.
type Options struct {
	Manifest *config.Manifest
	Paths    *paths.Paths
	Runner   run.Runner

	// NonInteractive suppresses the upgrade step, font installation,
	// and the shell handoff hint. Set for CI.
	NonInteractive bool

	// Confirm asks the user a yes/no question. Nil means yes.
	Confirm func(prompt string) bool

	// OnOutcome, when set, is called for every outcome as it happens.
	OnOutcome func(Outcome)

	// Clock provides the run timestamp used for backups. Nil means
	// time.Now.
	Clock func() time.Time
}

// Orchestrator runs the bootstrap stages.
type Orchestrator struct {
	opts   Options
	logger zerolog.Logger
}

// New creates an Orchestrator.
func New(opts Options) *Orchestrator {
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Orchestrator{
		opts:   opts,
		logger: logging.GetLogger("bootstrap"),
	}
}

// Run converges the host to the manifest. The returned error is non-nil
// only for conditions that make every stage impossible: an unsupported
// platform, or cancellation.
func (o *Orchestrator) Run(ctx context.Context) (*Result, error) {
	prof, installer, err := o.probe()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	stages := []func(context.Context, platform.Profile, *pkgmgr.Installer, *Result) error{
		o.runUpgrade,
		o.runPackages,
		o.runArtifacts,
		o.runLinks,
		o.runProfile,
		o.runFonts,
	}
	for _, stage := range stages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if err := stage(ctx, prof, installer, result); err != nil {
			return result, err
		}
	}

	if !o.opts.NonInteractive {
		o.logger.Info().Msg("Bootstrap finished; restart your shell or run `exec $SHELL` to pick up changes")
	}
	return result, nil
}

// Status performs a read-only pass: it reports what a Run would do
// without mutating anything.
func (o *Orchestrator) Status(ctx context.Context) (*Result, error) {
	_, installer, err := o.probe()
	if err != nil {
		return nil, err
	}

	result := &Result{}
	m := o.opts.Manifest

	for _, spec := range m.Packages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		installed, err := installer.IsInstalled(ctx, spec)
		switch {
		case err != nil:
			o.record(result, StagePackages, spec.Name, StatusFailed, err.Error())
		case installed:
			o.record(result, StagePackages, spec.Name, StatusPresent, "")
		default:
			o.record(result, StagePackages, spec.Name, StatusPending, "")
		}
	}

	fetcher := fetch.NewFetcher(o.opts.Runner)
	for _, spec := range m.Artifacts {
		if fetcher.IsPresent(o.expandArtifact(spec)) {
			o.record(result, StageArtifacts, spec.Name, StatusPresent, "")
		} else {
			o.record(result, StageArtifacts, spec.Name, StatusPending, "")
		}
	}

	linker := link.NewManager(o.opts.Clock())
	for _, spec := range m.Links {
		source := o.opts.Paths.ExpandHome(spec.Source)
		dest := o.opts.Paths.ExpandHome(spec.Dest)
		status, err := linker.Check(source, dest)
		switch {
		case err != nil:
			o.record(result, StageLinks, spec.Dest, StatusFailed, err.Error())
		case status == link.StatusAlreadyLinked:
			o.record(result, StageLinks, spec.Dest, StatusPresent, "")
		case status == link.StatusSkipped:
			o.record(result, StageLinks, spec.Dest, StatusSkipped, "source missing")
		default:
			o.record(result, StageLinks, spec.Dest, StatusPending, "")
		}
	}

	if m.Profile.Path != "" {
		editor := profile.NewEditor(o.opts.Paths.ExpandHome(m.Profile.Path))
		for _, line := range m.Profile.Lines {
			present, err := editor.Contains(line)
			switch {
			case err != nil:
				o.record(result, StageProfile, line, StatusFailed, err.Error())
			case present:
				o.record(result, StageProfile, line, StatusPresent, "")
			default:
				o.record(result, StageProfile, line, StatusPending, "")
			}
		}
	}

	return result, nil
}

// probe detects the platform and builds the installer. Failures here
// are the only fatal ones.
func (o *Orchestrator) probe() (platform.Profile, *pkgmgr.Installer, error) {
	prof, err := platform.Detect(o.opts.Runner)
	if err != nil {
		return platform.Profile{}, nil, err
	}
	mgr, err := pkgmgr.ForProfile(prof, o.opts.Runner)
	if err != nil {
		return platform.Profile{}, nil, err
	}
	return prof, pkgmgr.NewInstaller(mgr), nil
}

func (o *Orchestrator) runUpgrade(ctx context.Context, prof platform.Profile, installer *pkgmgr.Installer, result *Result) error {
	if !o.opts.Manifest.Upgrade {
		return nil
	}
	if o.opts.NonInteractive {
		o.record(result, StageUpgrade, prof.Manager, StatusSkipped, "non-interactive")
		return nil
	}
	if err := installer.Upgrade(ctx); err != nil {
		o.record(result, StageUpgrade, prof.Manager, StatusFailed, err.Error())
	} else {
		o.record(result, StageUpgrade, prof.Manager, StatusInstalled, "")
	}
	return nil
}

func (o *Orchestrator) runPackages(ctx context.Context, _ platform.Profile, installer *pkgmgr.Installer, result *Result) error {
	for _, spec := range o.opts.Manifest.Packages {
		if err := ctx.Err(); err != nil {
			return err
		}
		status, err := installer.Ensure(ctx, spec)
		note := ""
		if err != nil {
			o.logger.Error().Err(err).Str("package", spec.Name).Msg("Package install failed")
			note = err.Error()
		}
		o.record(result, StagePackages, spec.Name, mapInstallStatus(status), note)
	}
	return nil
}

func (o *Orchestrator) runArtifacts(ctx context.Context, _ platform.Profile, _ *pkgmgr.Installer, result *Result) error {
	fetcher := fetch.NewFetcher(o.opts.Runner)
	for _, spec := range o.opts.Manifest.Artifacts {
		if err := ctx.Err(); err != nil {
			return err
		}
		status, err := fetcher.Ensure(ctx, o.expandArtifact(spec))
		note := ""
		if err != nil {
			o.logger.Error().Err(err).Str("artifact", spec.Name).Msg("Artifact fetch failed")
			note = err.Error()
		}
		o.record(result, StageArtifacts, spec.Name, mapFetchStatus(status), note)
	}
	return nil
}

func (o *Orchestrator) runLinks(ctx context.Context, _ platform.Profile, _ *pkgmgr.Installer, result *Result) error {
	linker := link.NewManager(o.opts.Clock())
	for _, spec := range o.opts.Manifest.Links {
		if err := ctx.Err(); err != nil {
			return err
		}
		source := o.opts.Paths.ExpandHome(spec.Source)
		dest := o.opts.Paths.ExpandHome(spec.Dest)

		res, err := linker.Link(source, dest)
		if err != nil {
			o.logger.Error().Err(err).Str("dest", dest).Msg("Link failed")
			o.record(result, StageLinks, spec.Dest, StatusFailed, err.Error())
			continue
		}
		switch res.Status {
		case link.StatusAlreadyLinked:
			o.record(result, StageLinks, spec.Dest, StatusPresent, "")
		case link.StatusSkipped:
			o.record(result, StageLinks, spec.Dest, StatusSkipped, "source missing")
		case link.StatusReplaced:
			o.record(result, StageLinks, spec.Dest, StatusInstalled, "backup: "+res.Backup)
		default:
			o.record(result, StageLinks, spec.Dest, StatusInstalled, "")
		}
	}
	return nil
}

func (o *Orchestrator) runProfile(ctx context.Context, _ platform.Profile, _ *pkgmgr.Installer, result *Result) error {
	m := o.opts.Manifest
	if m.Profile.Path == "" {
		return nil
	}
	editor := profile.NewEditor(o.opts.Paths.ExpandHome(m.Profile.Path))
	for _, line := range m.Profile.Lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		appended, err := editor.AppendOnce(line)
		switch {
		case err != nil:
			o.logger.Error().Err(err).Str("line", line).Msg("Profile write failed")
			o.record(result, StageProfile, line, StatusFailed, err.Error())
		case appended:
			o.record(result, StageProfile, line, StatusInstalled, "")
		default:
			o.record(result, StageProfile, line, StatusPresent, "")
		}
	}
	return nil
}

func (o *Orchestrator) runFonts(ctx context.Context, _ platform.Profile, _ *pkgmgr.Installer, result *Result) error {
	fonts := o.opts.Manifest.Fonts
	if len(fonts) == 0 {
		return nil
	}
	if o.opts.NonInteractive {
		for _, font := range fonts {
			o.record(result, StageFonts, font.Name, StatusSkipped, "non-interactive")
		}
		return nil
	}
	if o.opts.Confirm != nil && !o.opts.Confirm("Install fonts?") {
		for _, font := range fonts {
			o.record(result, StageFonts, font.Name, StatusSkipped, "declined")
		}
		return nil
	}

	fetcher := fetch.NewFetcher(o.opts.Runner)
	for _, font := range fonts {
		if err := ctx.Err(); err != nil {
			return err
		}
		spec := config.ArtifactSpec{
			Name:   font.Name,
			Method: config.MethodDownload,
			URL:    font.URL,
			Target: o.opts.Paths.ExpandHome(font.Target),
		}
		status, err := fetcher.Ensure(ctx, spec)
		note := ""
		if err != nil {
			o.logger.Error().Err(err).Str("font", font.Name).Msg("Font install failed")
			note = err.Error()
		}
		o.record(result, StageFonts, font.Name, mapFetchStatus(status), note)
	}
	return nil
}

// expandArtifact resolves ~ and relative paths in an artifact spec.
func (o *Orchestrator) expandArtifact(spec config.ArtifactSpec) config.ArtifactSpec {
	spec.Target = o.opts.Paths.ExpandHome(spec.Target)
	if spec.Check != "" {
		spec.Check = o.opts.Paths.ExpandHome(spec.Check)
	}
	return spec
}

func (o *Orchestrator) record(result *Result, stage, item string, status Status, note string) {
	outcome := Outcome{Stage: stage, Item: item, Status: status, Note: note}
	result.Outcomes = append(result.Outcomes, outcome)
	if o.opts.OnOutcome != nil {
		o.opts.OnOutcome(outcome)
	}
}

func mapInstallStatus(s pkgmgr.Status) Status {
	switch s {
	case pkgmgr.StatusInstalled:
		return StatusInstalled
	case pkgmgr.StatusPresent:
		return StatusPresent
	default:
		return StatusFailed
	}
}

func mapFetchStatus(s fetch.Status) Status {
	switch s {
	case fetch.StatusFetched:
		return StatusInstalled
	case fetch.StatusPresent:
		return StatusPresent
	default:
		return StatusFailed
	}
}
