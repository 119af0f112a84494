package domain

// Trace links a section at one stage to its counterpart at a later stage of
// the same bill. Traces are produced by the title matcher; only matches at
// or above the matcher's confidence gate are persisted.
type Trace struct {
	Tracked
	BillID         string `json:"bill_id"`
	LeftSectionID  string `json:"left_section_id"`
	RightSectionID string `json:"right_section_id"`
	LeftStage      Stage  `json:"left_stage"`
	RightStage     Stage  `json:"right_stage"`
	// TitleSimilarity is the matcher's confidence in this pairing, as a
	// percentage. Distinct from the body similarity a diff reports.
	TitleSimilarity float64 `json:"title_similarity"`
}
