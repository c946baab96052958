package business

// ContentItem is one labelled entry of a content section.
type ContentItem struct {
	Label  string  `json:"label"`
	Value  string  `json:"value,omitempty"`
	Share  float64 `json:"share,omitempty"`
	Detail string  `json:"detail,omitempty"`
}

// ContentSection is a headed block of a page.
type ContentSection struct {
	Heading string        `json:"heading"`
	Body    string        `json:"body,omitempty"`
	Items   []ContentItem `json:"items,omitempty"`
}

// ContentPage is a static informational page.
type ContentPage struct {
	Slug     string           `json:"slug"`
	Title    string           `json:"title"`
	Summary  string           `json:"summary"`
	Sections []ContentSection `json:"sections"`
}

// StakingTier describes a staking tier by minimum stake and lock duration.
type StakingTier struct {
	Name         string  `json:"name"`
	MinimumStake float64 `json:"minimum_stake"`
	LockDays     int     `json:"lock_days"`
	Multiplier   float64 `json:"multiplier"`
}
