package domain

// Amendment carries cross-matched amendment metadata: which amendment a bill
// section originated from, who sponsored it, and how the vote went.
type Amendment struct {
	Tracked
	BillID   string `json:"bill_id"`
	Number   int    `json:"number"`
	Title    string `json:"title,omitempty"`
	Sponsors string `json:"sponsors,omitempty"`
	Content  string `json:"content,omitempty"`

	// Vote outcome, when the dataset records one.
	VoteType string `json:"vote_type,omitempty"`
	Yea      string `json:"yea,omitempty"`
	Nay      string `json:"nay,omitempty"`
	Agreed   string `json:"agreed,omitempty"`

	// Which bill section the amendment was matched to, and at what
	// confidence.
	MatchedSectionNumber int     `json:"matched_section_number,omitempty"`
	MatchedSectionTitle  string  `json:"matched_section_title,omitempty"`
	SimilarityScore      float64 `json:"similarity_score,omitempty"`
}
