package style

import (
	"github.com/arthur-debert/configma/pkg/types"
	"github.com/charmbracelet/lipgloss"
)

// Colors adapt to light and dark terminal backgrounds
var (
	AccentColor  = lipgloss.AdaptiveColor{Light: "#007ACC", Dark: "#3D9EFF"}
	HeadingColor = lipgloss.AdaptiveColor{Light: "#212529", Dark: "#F8F9FA"}
	MutedColor   = lipgloss.AdaptiveColor{Light: "#6C757D", Dark: "#ADB5BD"}
	SuccessColor = lipgloss.AdaptiveColor{Light: "#10B981", Dark: "#34D399"}
	WarningColor = lipgloss.AdaptiveColor{Light: "#F59E0B", Dark: "#FBBF24"}
	ErrorColor   = lipgloss.AdaptiveColor{Light: "#DC3545", Dark: "#FF6B7D"}
	ProfileColor = lipgloss.AdaptiveColor{Light: "#8B5CF6", Dark: "#A78BFA"}
)

// stateColors is shared by the status table, sync reports and markup tags
var stateColors = map[types.LinkState]lipgloss.AdaptiveColor{
	types.StateLinked:    SuccessColor,
	types.StateAbsent:    AccentColor,
	types.StateWrongLink: WarningColor,
	types.StateOccupied:  ErrorColor,
}

var (
	SubtitleStyle = lipgloss.NewStyle().Foreground(HeadingColor).Bold(true)
	NameStyle     = lipgloss.NewStyle().Bold(true)
	MutedStyle    = lipgloss.NewStyle().Foreground(MutedColor)
	PathStyle     = lipgloss.NewStyle().Foreground(AccentColor).Italic(true)
	ProfileStyle  = lipgloss.NewStyle().Foreground(ProfileColor).Bold(true)
	SuccessStyle  = lipgloss.NewStyle().Foreground(SuccessColor).Bold(true)
	WarningStyle  = lipgloss.NewStyle().Foreground(WarningColor).Bold(true)
	ErrorStyle    = lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
)

// Line markers
var (
	SuccessIndicator = SuccessStyle.Render("✓")
	ErrorIndicator   = ErrorStyle.Render("✗")
	WarningIndicator = WarningStyle.Render("!")
	PendingIndicator = MutedStyle.Render("○")
)

// LinkStateStyle returns the style for a link state label. Occupied paths
// are the only state that loses data on a careless force, so they stand out.
func LinkStateStyle(state types.LinkState) lipgloss.Style {
	color, ok := stateColors[state]
	if !ok {
		return MutedStyle
	}
	return lipgloss.NewStyle().Foreground(color).Bold(state == types.StateOccupied)
}
