package utils

// Merge request and issue states, as GitLab reports and filters them
const (
	StateOpened = "opened"
	StateClosed = "closed"
	StateMerged = "merged"
	StateLocked = "locked"
	StateAll    = "all"
)

// Milestone states
const (
	MilestoneActive = "active"
	MilestoneClosed = "closed"
)

// State events accepted by issue and merge request updates
const (
	StateEventClose  = "close"
	StateEventReopen = "reopen"
)
