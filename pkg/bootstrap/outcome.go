package bootstrap

// Status classifies the result of applying one manifest item.
type Status string

const (
	// StatusInstalled means the item was applied this run.
	StatusInstalled Status = "installed"

	// StatusPresent means the item was already satisfied.
	StatusPresent Status = "already-present"

	// StatusSkipped means the item was deliberately not applied
	// (missing link source, non-interactive font, declined confirm).
	StatusSkipped Status = "skipped"

	// StatusFailed means applying the item failed; the run continued.
	StatusFailed Status = "failed"

	// StatusPending is only produced by read-only status passes: the
	// item is not satisfied and a real run would apply it.
	StatusPending Status = "pending"
)

// Stage names, in execution order.
const (
	StageUpgrade   = "upgrade"
	StagePackages  = "packages"
	StageArtifacts = "artifacts"
	StageLinks     = "links"
	StageProfile   = "profile"
	StageFonts     = "fonts"
)

// Outcome is one row of the end-of-run report.
type Outcome struct {
	Stage  string
	Item   string
	Status Status
	Note   string
}

// Result aggregates every outcome of a run.
type Result struct {
	Outcomes []Outcome
}

// Failed returns the outcomes that failed.
func (r *Result) Failed() []Outcome {
	var failed []Outcome
	for _, o := range r.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

// HasFailures reports whether any item failed.
func (r *Result) HasFailures() bool {
	return len(r.Failed()) > 0
}

// ByStage returns the outcomes recorded for a stage.
func (r *Result) ByStage(stage string) []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes {
		if o.Stage == stage {
			out = append(out, o)
		}
	}
	return out
}
