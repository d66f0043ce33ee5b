package types

// LinkState is the observed state of a tracked entry's system path.
type LinkState string

const (
	// StateAbsent means nothing exists at the system path.
	StateAbsent LinkState = "absent"
	// StateLinked means the system path is a symlink to the repo path.
	StateLinked LinkState = "linked"
	// StateWrongLink means the system path is a symlink pointing elsewhere.
	StateWrongLink LinkState = "wrong-link"
	// StateOccupied means real content sits where the symlink belongs.
	StateOccupied LinkState = "occupied"
)

// EntryStatus describes a tracked entry together with its observed state.
type EntryStatus struct {
	Rel        string    `json:"rel" yaml:"rel"`
	Kind       EntryKind `json:"kind" yaml:"kind"`
	SystemPath string    `json:"system_path" yaml:"system_path"`
	RepoPath   string    `json:"repo_path" yaml:"repo_path"`
	State      LinkState `json:"state" yaml:"state"`
	// Target is the current link target for linked/wrong-link states.
	Target string `json:"target,omitempty" yaml:"target,omitempty"`
}
