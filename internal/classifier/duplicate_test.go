//nolint:testpackage // Testing internal engine state requires same package access
package classifier

import (
	"testing"

	"github.com/openseva/grievance/internal/domain"
)

func TestEngine_Similarity(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name  string
		a, b  string
		want  float64
		above float64 // when > 0, assert want is ignored and score > above
	}{
		{name: "both empty", a: "", b: "", want: 0},
		{name: "both keyword-free", a: "hello", b: "world", want: 0},
		{name: "one keyword-free", a: "the road is broken", b: "nothing here", want: 0},
		{name: "identical keyword sets", a: "road bridge", b: "bridge road", want: 1},
		{
			name:  "overlapping garbage complaints",
			a:     "garbage not collected on my street",
			b:     "garbage pile still not collected near my street",
			above: DuplicateThreshold,
		},
		{
			name: "disjoint keyword sets",
			a:    "road pothole",
			b:    "hospital doctor",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.Similarity(tt.a, tt.b)
			if got < 0 || got > 1 {
				t.Fatalf("Similarity out of bounds: %v", got)
			}
			if tt.above > 0 {
				if got <= tt.above {
					t.Errorf("Similarity(%q, %q) = %v, want > %v", tt.a, tt.b, got, tt.above)
				}
				return
			}
			if got != tt.want {
				t.Errorf("Similarity(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestEngine_Similarity_Symmetric(t *testing.T) {
	engine := newTestEngine(t)

	pairs := [][2]string{
		{"garbage on the street", "street full of garbage and waste"},
		{"", "road"},
		{"pothole on the road", "school has no teacher"},
		{"कचरा नहीं उठाया गया", "गली में कचरा पड़ा है"},
	}
	for _, p := range pairs {
		ab := engine.Similarity(p[0], p[1])
		ba := engine.Similarity(p[1], p[0])
		if ab != ba {
			t.Errorf("Similarity(%q, %q) = %v but reversed = %v", p[0], p[1], ab, ba)
		}
	}
}

func TestEngine_Similarity_SelfIdentity(t *testing.T) {
	engine := newTestEngine(t)

	text := "garbage not collected near the drain"
	if kws := engine.ExtractKeywords(text); len(kws) == 0 {
		t.Fatal("test text must extract keywords")
	}
	if got := engine.Similarity(text, text); got != 1 {
		t.Errorf("Similarity(T, T) = %v, want 1", got)
	}
}

func TestEngine_CheckDuplicate(t *testing.T) {
	engine := newTestEngine(t)

	garbageA := "garbage not collected on my street"
	garbageB := "garbage pile still not collected near my street"

	tests := []struct {
		name        string
		text        string
		category    domain.Category
		location    string
		candidates  []domain.Candidate
		wantDup     bool
		wantDupOf   string
		wantScore0  bool
		wantScoreGT float64
	}{
		{
			name:       "no candidates",
			text:       garbageA,
			category:   domain.CategorySanitation,
			wantDup:    false,
			wantScore0: true,
		},
		{
			name:     "similar same category",
			text:     garbageA,
			category: domain.CategorySanitation,
			candidates: []domain.Candidate{
				{ID: "c1", Text: garbageB, Category: domain.CategorySanitation},
			},
			wantDup:     true,
			wantDupOf:   "c1",
			wantScoreGT: DuplicateThreshold,
		},
		{
			name:     "similar but different category",
			text:     garbageA,
			category: domain.CategoryInfrastructure,
			candidates: []domain.Candidate{
				{ID: "c1", Text: garbageB, Category: domain.CategorySanitation},
			},
			wantDup:     false,
			wantScoreGT: DuplicateThreshold,
		},
		{
			name:     "no category filter skips category check",
			text:     garbageA,
			category: "",
			candidates: []domain.Candidate{
				{ID: "c1", Text: garbageB, Category: domain.CategorySanitation},
			},
			wantDup:     true,
			wantDupOf:   "c1",
			wantScoreGT: DuplicateThreshold,
		},
		{
			name:     "locations differ",
			text:     garbageA,
			category: domain.CategorySanitation,
			location: "Ward 5",
			candidates: []domain.Candidate{
				{ID: "c1", Text: garbageB, Category: domain.CategorySanitation, Location: "Ward 9"},
			},
			wantDup:     false,
			wantScoreGT: DuplicateThreshold,
		},
		{
			name:     "locations match case-insensitively",
			text:     garbageA,
			category: domain.CategorySanitation,
			location: "ward 5",
			candidates: []domain.Candidate{
				{ID: "c1", Text: garbageB, Category: domain.CategorySanitation, Location: "WARD 5"},
			},
			wantDup:     true,
			wantDupOf:   "c1",
			wantScoreGT: DuplicateThreshold,
		},
		{
			name:     "missing location on one side still matches",
			text:     garbageA,
			category: domain.CategorySanitation,
			location: "",
			candidates: []domain.Candidate{
				{ID: "c1", Text: garbageB, Category: domain.CategorySanitation, Location: "Ward 5"},
			},
			wantDup:     true,
			wantDupOf:   "c1",
			wantScoreGT: DuplicateThreshold,
		},
		{
			name:     "dissimilar candidates",
			text:     garbageA,
			category: domain.CategorySanitation,
			candidates: []domain.Candidate{
				{ID: "c1", Text: "school has no teacher", Category: domain.CategorySanitation},
				{ID: "c2", Text: "no water supply", Category: domain.CategorySanitation},
			},
			wantDup: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.CheckDuplicate(tt.text, tt.category, tt.location, tt.candidates)

			if got.IsDuplicate != tt.wantDup {
				t.Errorf("IsDuplicate = %v, want %v", got.IsDuplicate, tt.wantDup)
			}
			if got.DuplicateOf != tt.wantDupOf {
				t.Errorf("DuplicateOf = %q, want %q", got.DuplicateOf, tt.wantDupOf)
			}
			if tt.wantScore0 && got.SimilarityScore != 0 {
				t.Errorf("SimilarityScore = %v, want 0", got.SimilarityScore)
			}
			if tt.wantScoreGT > 0 && got.SimilarityScore <= tt.wantScoreGT {
				t.Errorf("SimilarityScore = %v, want > %v", got.SimilarityScore, tt.wantScoreGT)
			}
		})
	}
}

func TestEngine_CheckDuplicate_FirstQualifyingCandidateWins(t *testing.T) {
	engine := newTestEngine(t)

	text := "garbage not collected on my street"
	candidates := []domain.Candidate{
		{ID: "newest", Text: "garbage pile still not collected near my street", Category: domain.CategorySanitation},
		{ID: "middle", Text: "no water in the tap", Category: domain.CategoryUtilities},
		{ID: "oldest", Text: "garbage still not collected on my street again", Category: domain.CategorySanitation},
	}

	got := engine.CheckDuplicate(text, domain.CategorySanitation, "", candidates)

	if !got.IsDuplicate {
		t.Fatal("expected a duplicate")
	}
	// Both "newest" and "oldest" qualify; recency order must win.
	if got.DuplicateOf != "newest" {
		t.Errorf("DuplicateOf = %q, want %q", got.DuplicateOf, "newest")
	}
}

func TestEngine_CheckDuplicate_ReportsMaxSimilarityWithoutDuplicate(t *testing.T) {
	engine := newTestEngine(t)

	text := "garbage not collected on my street"
	candidates := []domain.Candidate{
		// Similar text but category mismatch keeps it from qualifying.
		{ID: "c1", Text: "garbage pile still not collected near my street", Category: domain.CategoryInfrastructure},
	}

	got := engine.CheckDuplicate(text, domain.CategorySanitation, "", candidates)

	if got.IsDuplicate {
		t.Fatal("expected no duplicate")
	}
	if got.SimilarityScore <= DuplicateThreshold {
		t.Errorf("SimilarityScore = %v, want the observed maximum above %v", got.SimilarityScore, DuplicateThreshold)
	}
}
