package style

import (
	"fmt"

	"github.com/arthur-debert/configma/pkg/types"
	"github.com/pterm/pterm"
)

// OutcomeVerbs holds the past and dry-run wording for each sync outcome
var OutcomeVerbs = map[types.Outcome]struct {
	Past   string
	Future string
}{
	types.OutcomeLinked:         {Past: "linked", Future: "would link"},
	types.OutcomeAlreadyCorrect: {Past: "already linked", Future: "already linked"},
	types.OutcomeConflict:       {Past: "conflict, skipped", Future: "conflict, would skip"},
	types.OutcomeBackedUp:       {Past: "backed up and linked", Future: "would back up and link"},
	types.OutcomeUnlinked:       {Past: "unlinked", Future: "would unlink"},
	types.OutcomeSkipped:        {Past: "left alone", Future: "would leave alone"},
	types.OutcomeFailed:         {Past: "failed", Future: "would fail"},
}

// OutcomeStyle returns the pterm style for an outcome badge
func OutcomeStyle(outcome types.Outcome) *pterm.Style {
	switch outcome {
	case types.OutcomeLinked, types.OutcomeUnlinked:
		return pterm.NewStyle(pterm.BgGreen, pterm.FgWhite)
	case types.OutcomeBackedUp:
		return pterm.NewStyle(pterm.BgYellow, pterm.FgBlack)
	case types.OutcomeConflict:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite)
	case types.OutcomeFailed:
		return pterm.NewStyle(pterm.BgRed, pterm.FgWhite, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// StateStyle returns the pterm style for a link state
func StateStyle(state types.LinkState) *pterm.Style {
	switch state {
	case types.StateLinked:
		return pterm.NewStyle(pterm.FgGreen)
	case types.StateAbsent:
		return pterm.NewStyle(pterm.FgCyan)
	case types.StateWrongLink:
		return pterm.NewStyle(pterm.FgYellow)
	case types.StateOccupied:
		return pterm.NewStyle(pterm.FgRed, pterm.Bold)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// OutcomeIndicator returns the one-character marker for an outcome
func OutcomeIndicator(outcome types.Outcome) string {
	switch outcome {
	case types.OutcomeLinked, types.OutcomeUnlinked, types.OutcomeBackedUp:
		return SuccessIndicator
	case types.OutcomeAlreadyCorrect, types.OutcomeSkipped:
		return PendingIndicator
	case types.OutcomeConflict:
		return WarningIndicator
	case types.OutcomeFailed:
		return ErrorIndicator
	default:
		return MutedStyle.Render("•")
	}
}

// OutcomeText returns the wording for an outcome, in future tense for
// dry runs
func OutcomeText(outcome types.Outcome, dryRun bool) string {
	verbs, ok := OutcomeVerbs[outcome]
	if !ok {
		return string(outcome)
	}
	if dryRun {
		return verbs.Future
	}
	return verbs.Past
}

// RenderEntryResult renders a single sync result line
func RenderEntryResult(res types.EntryResult, dryRun bool) string {
	label := fmt.Sprintf("%-22s", OutcomeText(res.Outcome, dryRun))
	line := fmt.Sprintf("  %s %s  %s",
		OutcomeIndicator(res.Outcome),
		OutcomeStyle(res.Outcome).Sprint(label),
		PathStyle.Render(displayPath(res)))

	switch {
	case res.BackupPath != "":
		line += MutedStyle.Render("  (backup: " + res.BackupPath + ")")
	case res.Err != nil:
		line += "\n      " + ErrorStyle.Render(res.Err.Error())
	}
	return line
}

func displayPath(res types.EntryResult) string {
	p := res.SystemPath
	if p == "" {
		p = res.Entry.Rel
	}
	if res.Entry.IsDir() {
		p += "/"
	}
	return p
}
