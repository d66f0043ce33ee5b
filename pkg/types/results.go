package types

import (
	"time"
)

// Outcome is what the sync engine did (or would do) with one entry.
type Outcome string

const (
	OutcomeLinked         Outcome = "linked"
	OutcomeAlreadyCorrect Outcome = "already-correct"
	OutcomeConflict       Outcome = "conflict-skipped"
	OutcomeBackedUp       Outcome = "backed-up-and-linked"
	OutcomeUnlinked       Outcome = "unlinked"
	OutcomeSkipped        Outcome = "skipped"
	OutcomeFailed         Outcome = "failed"
)

// EntryResult records the outcome for a single entry.
type EntryResult struct {
	Entry      TrackedEntry
	SystemPath string
	RepoPath   string
	// Prior is the state observed before any mutation.
	Prior   LinkState
	Outcome Outcome
	// BackupPath is set when conflicting content was moved aside.
	BackupPath string
	Err        error
}

// SyncReport lists per-entry results in processing order.
type SyncReport struct {
	Profile   string
	Force     bool
	DryRun    bool
	Timestamp time.Time
	Results   []EntryResult
}

// NewSyncReport creates an empty report for a profile
func NewSyncReport(profile string, force, dryRun bool) *SyncReport {
	return &SyncReport{
		Profile:   profile,
		Force:     force,
		DryRun:    dryRun,
		Timestamp: time.Now(),
	}
}

// Add appends a result
func (r *SyncReport) Add(res EntryResult) {
	r.Results = append(r.Results, res)
}

// Conflicts returns the results skipped because of a conflict
func (r *SyncReport) Conflicts() []EntryResult {
	return r.filter(OutcomeConflict)
}

// Failures returns the results that failed with an error
func (r *SyncReport) Failures() []EntryResult {
	return r.filter(OutcomeFailed)
}

// Counts returns the number of results per outcome
func (r *SyncReport) Counts() map[Outcome]int {
	counts := make(map[Outcome]int)
	for _, res := range r.Results {
		counts[res.Outcome]++
	}
	return counts
}

// Changed reports whether any entry was (or in dry-run, would be) mutated.
func (r *SyncReport) Changed() bool {
	for _, res := range r.Results {
		switch res.Outcome {
		case OutcomeLinked, OutcomeBackedUp, OutcomeUnlinked:
			return true
		}
	}
	return false
}

func (r *SyncReport) filter(o Outcome) []EntryResult {
	var out []EntryResult
	for _, res := range r.Results {
		if res.Outcome == o {
			out = append(out, res)
		}
	}
	return out
}
