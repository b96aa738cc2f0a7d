package classifier

import (
	"strings"

	"github.com/openseva/grievance/internal/domain"
)

// DuplicateThreshold is the minimum Jaccard similarity for a candidate to
// qualify as a duplicate.
const DuplicateThreshold = 0.6

// Similarity computes the Jaccard index of the two texts' extracted
// keyword sets. Two texts with no keywords at all score 0, not 1: empty
// submissions must not be flagged as duplicates of each other.
func (e *Engine) Similarity(textA, textB string) float64 {
	a := e.matchedExtractSet(textA)
	b := e.matchedExtractSet(textB)

	if len(a) == 0 && len(b) == 0 {
		return 0
	}

	intersection := 0
	for id := range a {
		if _, ok := b[id]; ok {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

// matchedExtractSet restricts the match set to the extraction vocabulary
// (category tables plus generic terms); priority and sentiment signals do
// not participate in similarity.
func (e *Engine) matchedExtractSet(text string) map[int]struct{} {
	hits := e.matchSet(text)
	if len(hits) == 0 {
		return nil
	}
	set := make(map[int]struct{})
	for _, id := range e.extractIDs {
		if _, ok := hits[id]; ok {
			set[id] = struct{}{}
		}
	}
	return set
}

// CheckDuplicate decides whether the new complaint duplicates one of the
// submitter's recent complaints. Candidates arrive newest-first, and the
// first one that qualifies wins: qualifying means similarity above the
// threshold, matching category (when a category filter is given), and
// matching location case-insensitively (when both sides carry one). The
// scan short-circuits on that candidate, so when several qualify the most
// recent prior complaint is always the one reported. The maximum similarity
// seen is reported even when nothing qualifies.
func (e *Engine) CheckDuplicate(
	newText string,
	newCategory domain.Category,
	newLocation string,
	candidates []domain.Candidate,
) domain.DuplicateCheck {
	result := domain.DuplicateCheck{}

	for _, candidate := range candidates {
		similarity := e.Similarity(newText, candidate.Text)
		if similarity > result.SimilarityScore {
			result.SimilarityScore = similarity
		}

		if similarity <= DuplicateThreshold {
			continue
		}
		if newCategory != "" && candidate.Category != newCategory {
			continue
		}
		if !locationsMatch(newLocation, candidate.Location) {
			continue
		}

		result.IsDuplicate = true
		result.DuplicateOf = candidate.ID
		break
	}

	if result.IsDuplicate {
		e.logger.Info("duplicate complaint detected",
			"duplicate_of", result.DuplicateOf,
			"similarity", result.SimilarityScore,
		)
	}

	return result
}

// locationsMatch compares locations case-insensitively. A missing location
// on either side counts as a match.
func locationsMatch(a, b string) bool {
	if a == "" || b == "" {
		return true
	}
	return strings.EqualFold(a, b)
}
