// Package classifier implements the rule-based complaint analysis engine:
// category classification, priority assignment, sentiment scoring, and
// keyword extraction over fixed bilingual keyword tables.
//
// engine.go builds an Aho-Corasick automaton over every keyword so a single
// O(n) pass over the text replaces the naive per-keyword substring scan.
// The matched set is identical either way: a keyword counts once when it
// occurs anywhere in the text as a substring.
package classifier

import (
	"strings"

	ahocorasick "github.com/cloudflare/ahocorasick"
	"golang.org/x/text/unicode/norm"

	"github.com/openseva/grievance/internal/domain"
)

// Sentiment thresholds used by priority assignment.
const (
	veryNegativeSentiment = -0.5
	mildNegativeSentiment = -0.2
)

// Engine is a stateless complaint analyzer. All fields are written once at
// construction and only read afterwards, so a single Engine is safe for
// concurrent use from any number of request handlers.
type Engine struct {
	rules    Rules
	matcher  *ahocorasick.Matcher
	keywords []string       // id -> normalized keyword
	ids      map[string]int // normalized keyword -> id

	categoryIDs [][]int // parallel to rules.CategoryRules
	highIDs     []int
	lowIDs      []int
	negativeIDs []int
	positiveIDs []int
	extractIDs  []int // category table keywords then generic terms, deduplicated
	logger      Logger
}

// New builds an engine from the given rule tables. The tables are indexed
// once here and never mutated.
func New(log Logger, rules Rules) *Engine {
	if log == nil {
		log = nopLogger{}
	}

	e := &Engine{
		rules:  rules,
		ids:    make(map[string]int),
		logger: log,
	}

	e.categoryIDs = make([][]int, len(rules.CategoryRules))
	for i, rule := range rules.CategoryRules {
		e.categoryIDs[i] = e.intern(rule.Keywords)
	}
	e.highIDs = e.intern(rules.HighPriority)
	e.lowIDs = e.intern(rules.LowPriority)
	e.negativeIDs = e.intern(rules.Negative)
	e.positiveIDs = e.intern(rules.Positive)
	genericIDs := e.intern(rules.Generic)

	// Extraction order mirrors the scan order: category tables first,
	// then the generic complaint terms, first occurrence wins.
	seen := make(map[int]struct{}, len(e.keywords))
	for _, tbl := range e.categoryIDs {
		for _, id := range tbl {
			if _, ok := seen[id]; !ok {
				seen[id] = struct{}{}
				e.extractIDs = append(e.extractIDs, id)
			}
		}
	}
	for _, id := range genericIDs {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			e.extractIDs = append(e.extractIDs, id)
		}
	}

	e.matcher = ahocorasick.NewStringMatcher(e.keywords)

	log.Info("analysis engine initialized",
		"categories", len(rules.CategoryRules),
		"keywords", len(e.keywords),
	)

	return e
}

// intern registers each keyword and returns the table's keyword ids.
// Keywords shared between tables (e.g. "accident" appears in both the
// Public Safety and high-priority lists) get a single id.
func (e *Engine) intern(keywords []string) []int {
	ids := make([]int, 0, len(keywords))
	for _, kw := range keywords {
		kw = normalize(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		id, ok := e.ids[kw]
		if !ok {
			id = len(e.keywords)
			e.keywords = append(e.keywords, kw)
			e.ids[kw] = id
		}
		ids = append(ids, id)
	}
	return ids
}

// normalize lower-cases and NFC-normalizes text so composed and decomposed
// Devanagari spellings match the same table entries.
func normalize(s string) string {
	return norm.NFC.String(strings.ToLower(s))
}

// matchSet returns the set of keyword ids present in the text.
func (e *Engine) matchSet(text string) map[int]struct{} {
	if text == "" || len(e.keywords) == 0 {
		return nil
	}
	found := e.matcher.Match([]byte(normalize(text)))
	hits := make(map[int]struct{}, len(found))
	for _, id := range found {
		hits[id] = struct{}{}
	}
	return hits
}

// countHits returns how many distinct keywords of the table occur in hits.
func countHits(ids []int, hits map[int]struct{}) int {
	n := 0
	for _, id := range ids {
		if _, ok := hits[id]; ok {
			n++
		}
	}
	return n
}

func anyHit(ids []int, hits map[int]struct{}) bool {
	for _, id := range ids {
		if _, ok := hits[id]; ok {
			return true
		}
	}
	return false
}

// ClassifyCategory assigns one of the seven fixed categories to the text.
// The category with the strictly highest distinct-keyword count wins; with
// no matches at all the default is Administrative Delay. Ties resolve to
// the earlier table entry because only a strictly greater count replaces
// the leader.
func (e *Engine) ClassifyCategory(text string) domain.Category {
	return e.categoryFromHits(e.matchSet(text))
}

func (e *Engine) categoryFromHits(hits map[int]struct{}) domain.Category {
	best := domain.CategoryAdminDelay
	bestCount := 0
	for i, rule := range e.rules.CategoryRules {
		if n := countHits(e.categoryIDs[i], hits); n > bestCount {
			bestCount = n
			best = rule.Category
		}
	}
	return best
}

// Sentiment scores the text in [-1, 1]. Negative signals weigh twice as
// heavily as positive ones and the denominator carries a +1 smoothing term
// so a single weak signal does not saturate the scale. No signals at all
// score exactly 0.
func (e *Engine) Sentiment(text string) float64 {
	return e.sentimentFromHits(e.matchSet(text))
}

func (e *Engine) sentimentFromHits(hits map[int]struct{}) float64 {
	neg := countHits(e.negativeIDs, hits)
	pos := countHits(e.positiveIDs, hits)
	if neg+pos == 0 {
		return 0
	}
	score := float64(pos-2*neg) / float64(pos+neg+1)
	// The double negative weight can push the raw score below -1 when
	// negative signals dominate; the reported scale stays [-1, 1].
	if score < -1 {
		score = -1
	}
	return score
}

// AssignPriority determines the urgency tier. Attached image evidence bumps
// the base decision one level up, after the fact and unconditionally.
func (e *Engine) AssignPriority(text string, hasImage bool) domain.Priority {
	return e.priorityFromHits(e.matchSet(text), hasImage)
}

func (e *Engine) priorityFromHits(hits map[int]struct{}, hasImage bool) domain.Priority {
	sentiment := e.sentimentFromHits(hits)

	priority := domain.PriorityMedium
	switch {
	case anyHit(e.highIDs, hits) || sentiment < veryNegativeSentiment:
		priority = domain.PriorityHigh
	case anyHit(e.lowIDs, hits) && sentiment > mildNegativeSentiment:
		priority = domain.PriorityLow
	}

	if hasImage {
		priority = priority.Escalate()
	}
	return priority
}

// ExtractKeywords returns the deduplicated keywords found in the text:
// every category-table keyword plus a small list of generic complaint
// terms. The result is only used for set operations downstream.
func (e *Engine) ExtractKeywords(text string) []string {
	return e.keywordsFromHits(e.matchSet(text))
}

func (e *Engine) keywordsFromHits(hits map[int]struct{}) []string {
	if len(hits) == 0 {
		return []string{}
	}
	out := make([]string, 0, len(hits))
	for _, id := range e.extractIDs {
		if _, ok := hits[id]; ok {
			out = append(out, e.keywords[id])
		}
	}
	return out
}

// Department maps a category to its routing department. Unknown categories
// fall back to the administrative department.
func (e *Engine) Department(category domain.Category) string {
	if dept, ok := e.rules.Departments[category]; ok {
		return dept
	}
	return DefaultDepartment
}

// Analyze runs the full pipeline over the complaint text. It is pure and
// deterministic: identical input always yields the identical Analysis, and
// no input can make it fail. Empty or keyword-free text degrades to the
// default category, Medium priority, sentiment 0 and an empty keyword set.
func (e *Engine) Analyze(text string, hasImage bool) domain.Analysis {
	hits := e.matchSet(text)

	category := e.categoryFromHits(hits)
	analysis := domain.Analysis{
		Category:   category,
		Priority:   e.priorityFromHits(hits, hasImage),
		Department: e.Department(category),
		Sentiment:  e.sentimentFromHits(hits),
		Keywords:   e.keywordsFromHits(hits),
	}

	e.logger.Debug("complaint analyzed",
		"category", analysis.Category,
		"priority", analysis.Priority,
		"sentiment", analysis.Sentiment,
		"keyword_count", len(analysis.Keywords),
	)

	return analysis
}
