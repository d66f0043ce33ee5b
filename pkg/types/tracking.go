package types

// TrackAction names what add/remove did to a path
type TrackAction string

const (
	TrackAdded   TrackAction = "added"
	TrackRemoved TrackAction = "removed"
)

// TrackResult describes one added or removed entry
type TrackResult struct {
	Action     TrackAction
	Profile    string
	Entry      TrackedEntry
	SystemPath string
	RepoPath   string
	DryRun     bool
}

// ProfileInfo describes one profile in the repository
type ProfileInfo struct {
	Name    string `json:"name" yaml:"name"`
	Active  bool   `json:"active" yaml:"active"`
	Entries int    `json:"entries" yaml:"entries"`
}
