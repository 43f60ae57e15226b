package model

// ReviewState represents the state of a review as reported by the REST API.
type ReviewState string

const (
	ReviewStateApproved         ReviewState = "APPROVED"
	ReviewStateChangesRequested ReviewState = "CHANGES_REQUESTED"
	ReviewStateCommented        ReviewState = "COMMENTED"
	ReviewStatePending          ReviewState = "PENDING"
	ReviewStateDismissed        ReviewState = "DISMISSED"
)
