package domain

// Analysis is the output of the complaint analysis engine. It is never
// persisted on its own; its fields are copied onto the Complaint record.
type Analysis struct {
	Category   Category `json:"category"`
	Priority   Priority `json:"priority"`
	Department string   `json:"department"`
	// Sentiment is an informational score in [-1, 1]; it is not used
	// for routing and is not stored.
	Sentiment float64 `json:"sentiment"`
	// Keywords are the deduplicated keyword hits found in the text,
	// used only for duplicate similarity. Order is irrelevant.
	Keywords []string `json:"keywords"`
}

// DuplicateCheck is the ephemeral result of comparing a new complaint
// against the submitter's recent candidate window.
type DuplicateCheck struct {
	IsDuplicate bool   `json:"is_duplicate"`
	DuplicateOf string `json:"duplicate_of,omitempty"`
	// SimilarityScore is the maximum Jaccard score seen across all
	// candidates, reported even when no duplicate is declared.
	SimilarityScore float64 `json:"similarity_score"`
}

// Candidate is one prior complaint from the externally supplied window:
// same submitter, last 7 days, newest-first, at most 10 entries.
type Candidate struct {
	ID       string   `json:"id"`
	Text     string   `json:"text"`
	Category Category `json:"category"`
	Location string   `json:"location,omitempty"`
}
