package model

// Review is a review submitted on a pull request. Only the reviewer identity
// feeds the export; State is kept for logging.
type Review struct {
	ReviewerLogin string
	State         ReviewState
}

// NewReview validates a review record.
func NewReview(login, state string) (Review, error) {
	if login == "" {
		return Review{}, missingField("review", "user.login")
	}
	return Review{ReviewerLogin: login, State: ReviewState(state)}, nil
}

// ReviewersOf collapses reviews into the distinct set of reviewer logins.
func ReviewersOf(reviews []Review) ReviewerSet {
	set := make(ReviewerSet, len(reviews))
	for _, r := range reviews {
		set[r.ReviewerLogin] = struct{}{}
	}
	return set
}
