package models

type Branch struct {
	Name        string
	IsCurrent   bool
	HasUpstream bool
	Tracking    string // e.g., "ahead 2, behind 1" or "gone"
	LastCommit  string // relative committer date, display only
	CommitEpoch int64  // unix committer date, used for ordering
	PRNumber    int    // open PR number for this branch, 0 if none
}
