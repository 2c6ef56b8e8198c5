package domain

// StreakState is the derived consecutive-focus-day result. It is
// recomputed from sessions on every query and never persisted.
type StreakState struct {
	Current int `json:"current"`
	Longest int `json:"longest"`
}

// Suggestion is one ranked insight for the dashboard. Priority 1 is the
// most important; consumers render in ascending priority order.
type Suggestion struct {
	Icon     string `json:"icon"`
	Text     string `json:"text"`
	Priority int    `json:"priority"`
}
