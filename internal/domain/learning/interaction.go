package learning

// Interaction is the engagement record reported for one reading session.
type Interaction struct {
	UserID      string `json:"user_id"`
	ContentID   string `json:"content_id"`
	TimeSpent   int    `json:"time_spent"`
	ScrollDepth int    `json:"scroll_depth"`
	Skipped     bool   `json:"skipped"`
}
