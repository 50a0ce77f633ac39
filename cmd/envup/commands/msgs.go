package commands

// Message constants
const (
	MsgRootShort = "A declarative, idempotent environment bootstrapper"
	MsgRootLong  = `envup reads a declarative manifest (envup.toml or envup.yaml) from your
dotfiles repo and converges the host toward it: system packages, cloned
repos and downloaded artifacts, config symlinks, and shell profile lines.

Every operation is idempotent, so re-running envup is always safe. A
single failing item never aborts the run; you get a per-item summary at
the end instead.`

	MsgFlagVerbose        = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagRoot           = "Bootstrap repo root (default: $ENVUP_ROOT, then the enclosing git repo)"
	MsgFlagNonInteractive = "Never prompt; skip the upgrade step, fonts, and shell handoff (implied by $CI)"

	MsgUpShort = "Converge the host to the manifest"
	MsgUpLong  = `The 'up' command runs the full bootstrap: it probes the platform,
installs missing packages, fetches missing artifacts, links config files
(backing up anything in the way), and appends profile lines that are not
already present.

Probe failure is the only fatal error. Everything else is reported
per item and the run continues.`
	MsgUpExample = `  # Converge to the manifest in the enclosing repo
  envup up

  # Preview what would change, without touching anything
  envup up --dry-run

  # CI usage: no prompts, no upgrade, no fonts
  CI=1 envup up`

	MsgStatusShort = "Report what a run would change, without changing anything"
	MsgStatusLong  = `The 'status' command performs a read-only pass over the manifest and
reports, per item, whether it is already satisfied or pending.`

	MsgGenconfigShort = "Print a starter manifest"
	MsgGenconfigLong  = `The 'genconfig' command writes a commented starter manifest to stdout.
Redirect it into your dotfiles repo to get going:

  envup genconfig > envup.toml`

	MsgTopicsShort = "Show help topics"
	MsgTopicsLong  = `Help topics are longer-form documents about envup concepts. Run without
arguments to list topics, or with a topic name to read one.`

	MsgVersionShort = "Print version information"

	MsgShellHandoff = "Restart your shell (or run 'exec $SHELL') to pick up profile changes"
)
