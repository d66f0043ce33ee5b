package style

import (
	"fmt"
	"slices"
	"strings"

	"github.com/arthur-debert/configma/pkg/errors"
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/pterm/pterm"
)

// Renderer defines the interface for rendering command output
type Renderer interface {
	RenderSyncReport(report *types.SyncReport) string
	RenderStatus(profile string, statuses []types.EntryStatus) string
	RenderProfiles(infos []types.ProfileInfo) string
	RenderTrackResults(results []types.TrackResult) string
	RenderError(err error) string
}

// NewRenderer returns a terminal renderer when color is enabled and a
// plain one otherwise
func NewRenderer(color bool) Renderer {
	if color {
		return NewTerminalRenderer()
	}
	return NewPlainRenderer()
}

// outcomeOrder fixes the order of the summary line
var outcomeOrder = []types.Outcome{
	types.OutcomeLinked,
	types.OutcomeBackedUp,
	types.OutcomeUnlinked,
	types.OutcomeAlreadyCorrect,
	types.OutcomeSkipped,
	types.OutcomeConflict,
	types.OutcomeFailed,
}

// summarize renders outcome counts as "2 linked, 1 conflict, skipped"
func summarize(report *types.SyncReport) string {
	counts := report.Counts()
	var parts []string
	for _, o := range outcomeOrder {
		if n := counts[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, OutcomeText(o, report.DryRun)))
		}
	}
	return strings.Join(parts, ", ")
}

// TerminalRenderer implements Renderer with rich terminal output
type TerminalRenderer struct{}

// NewTerminalRenderer creates a new terminal renderer
func NewTerminalRenderer() *TerminalRenderer {
	return &TerminalRenderer{}
}

// RenderSyncReport renders every entry result and a summary
func (r *TerminalRenderer) RenderSyncReport(report *types.SyncReport) string {
	if report == nil || len(report.Results) == 0 {
		name := ""
		if report != nil {
			name = report.Profile
		}
		return MutedStyle.Render(fmt.Sprintf("No tracked entries in profile %s", name))
	}

	var result strings.Builder
	title := "Profile " + ProfileStyle.Render(report.Profile)
	if report.DryRun {
		title += MutedStyle.Render(" (dry run)")
	}
	result.WriteString(SubtitleStyle.Render(title) + "\n")

	for _, res := range report.Results {
		result.WriteString(RenderEntryResult(res, report.DryRun) + "\n")
	}

	result.WriteString("\n" + MutedStyle.Render(summarize(report)))
	return result.String()
}

// RenderStatus renders entry states as a table
func (r *TerminalRenderer) RenderStatus(profile string, statuses []types.EntryStatus) string {
	if len(statuses) == 0 {
		return MutedStyle.Render(fmt.Sprintf("No tracked entries in profile %s", profile))
	}

	rows := make([][]string, 0, len(statuses))
	for _, s := range statuses {
		rows = append(rows, []string{
			s.SystemPath,
			s.Kind.String(),
			StateStyle(s.State).Sprint(string(s.State)),
			s.Target,
		})
	}

	var result strings.Builder
	result.WriteString(SubtitleStyle.Render("Profile "+ProfileStyle.Render(profile)) + "\n")
	result.WriteString(RenderTable([]string{"Path", "Kind", "State", "Current target"}, rows, nil))
	return result.String()
}

// RenderProfiles renders the profile list, marking the active one
func (r *TerminalRenderer) RenderProfiles(infos []types.ProfileInfo) string {
	if len(infos) == 0 {
		return MutedStyle.Render("No profiles found; create one with 'configma new-profile <name>'")
	}

	var result strings.Builder
	for _, info := range infos {
		marker := PendingIndicator
		name := NameStyle.Render(info.Name)
		if info.Active {
			marker = SuccessIndicator
			name = ProfileStyle.Render(info.Name)
		}
		result.WriteString(fmt.Sprintf("%s %s %s\n", marker, name,
			MutedStyle.Render(fmt.Sprintf("(%d entries)", info.Entries))))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderTrackResults renders the outcome of add/remove
func (r *TerminalRenderer) RenderTrackResults(results []types.TrackResult) string {
	var result strings.Builder
	for _, res := range results {
		verb := string(res.Action)
		if res.DryRun {
			verb = "would be " + verb
		}
		arrow := "→"
		if res.Action == types.TrackRemoved {
			arrow = "←"
		}
		result.WriteString(fmt.Sprintf("%s %s %s %s %s\n",
			SuccessIndicator,
			SuccessStyle.Render(verb),
			PathStyle.Render(res.SystemPath),
			arrow,
			MutedStyle.Render(res.RepoPath)))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders an error with its code and paths
func (r *TerminalRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}

	var result strings.Builder
	result.WriteString(fmt.Sprintf("%s %s", pterm.Error.Prefix.Text, ErrorStyle.Render(err.Error())))
	for _, line := range errorDetailLines(err) {
		result.WriteString("\n  " + MutedStyle.Render(line))
	}
	return result.String()
}

// PlainRenderer implements Renderer with plain text output (no styling)
type PlainRenderer struct{}

// NewPlainRenderer creates a new plain text renderer
func NewPlainRenderer() *PlainRenderer {
	return &PlainRenderer{}
}

// RenderSyncReport renders a plain sync report
func (r *PlainRenderer) RenderSyncReport(report *types.SyncReport) string {
	if report == nil || len(report.Results) == 0 {
		name := ""
		if report != nil {
			name = report.Profile
		}
		return "No tracked entries in profile " + name
	}

	var result strings.Builder
	for _, res := range report.Results {
		result.WriteString(fmt.Sprintf("%s: %s", OutcomeText(res.Outcome, report.DryRun), displayPath(res)))
		if res.BackupPath != "" {
			result.WriteString(" (backup: " + res.BackupPath + ")")
		}
		if res.Err != nil {
			result.WriteString(": " + res.Err.Error())
		}
		result.WriteString("\n")
	}
	result.WriteString(summarize(report))
	return result.String()
}

// RenderStatus renders plain status lines
func (r *PlainRenderer) RenderStatus(profile string, statuses []types.EntryStatus) string {
	if len(statuses) == 0 {
		return "No tracked entries in profile " + profile
	}

	var result strings.Builder
	for _, s := range statuses {
		result.WriteString(fmt.Sprintf("%-10s %-9s %s", s.State, s.Kind, s.SystemPath))
		if s.Target != "" && s.State != types.StateLinked {
			result.WriteString(" -> " + s.Target)
		}
		result.WriteString("\n")
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderProfiles renders a plain profile list
func (r *PlainRenderer) RenderProfiles(infos []types.ProfileInfo) string {
	if len(infos) == 0 {
		return "No profiles found"
	}

	var result strings.Builder
	for _, info := range infos {
		marker := " "
		if info.Active {
			marker = "*"
		}
		result.WriteString(fmt.Sprintf("%s %s (%d entries)\n", marker, info.Name, info.Entries))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderTrackResults renders plain add/remove results
func (r *PlainRenderer) RenderTrackResults(results []types.TrackResult) string {
	var result strings.Builder
	for _, res := range results {
		verb := string(res.Action)
		if res.DryRun {
			verb = "would be " + verb
		}
		result.WriteString(fmt.Sprintf("%s: %s (%s)\n", verb, res.SystemPath, res.RepoPath))
	}
	return strings.TrimRight(result.String(), "\n")
}

// RenderError renders a plain error message
func (r *PlainRenderer) RenderError(err error) string {
	if err == nil {
		return ""
	}
	lines := append([]string{"Error: " + err.Error()}, errorDetailLines(err)...)
	return strings.Join(lines, "\n  ")
}

// errorDetailLines lists the paths attached to an error
func errorDetailLines(err error) []string {
	var lines []string
	if p := errors.PathOf(err); p != "" {
		lines = append(lines, "path: "+p)
	}
	sorted := slices.Clone(errors.PathsOf(err))
	slices.Sort(sorted)
	for _, p := range sorted {
		lines = append(lines, "- "+p)
	}
	return lines
}
