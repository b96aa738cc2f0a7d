//nolint:testpackage // Testing internal engine state requires same package access
package classifier

import (
	"reflect"
	"testing"

	"github.com/openseva/grievance/internal/domain"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return New(nopLogger{}, DefaultRules())
}

func TestEngine_ClassifyCategory(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		text string
		want domain.Category
	}{
		{
			name: "pothole report",
			text: "There is a huge pothole on the main road, very dangerous, accident waiting to happen",
			want: domain.CategoryInfrastructure,
		},
		{
			name: "garbage report",
			text: "garbage not collected on my street for two weeks, very dirty",
			want: domain.CategorySanitation,
		},
		{
			name: "hospital report",
			text: "the hospital has no doctor on duty and no medicine in stock",
			want: domain.CategoryHealthcare,
		},
		{
			name: "school report",
			text: "our school has no teacher for the senior classroom",
			want: domain.CategoryEducation,
		},
		{
			name: "theft report",
			text: "there was a theft near the market, police did not respond",
			want: domain.CategoryPublicSafety,
		},
		{
			name: "power cut",
			text: "no electricity supply since yesterday, the meter seems dead",
			want: domain.CategoryUtilities,
		},
		{
			name: "stalled application",
			text: "my permit application is pending approval since March",
			want: domain.CategoryAdminDelay,
		},
		{
			name: "hindi sanitation report",
			text: "हमारी गली में कचरा और गंदगी जमा है, सफाई नहीं हुई",
			want: domain.CategorySanitation,
		},
		{
			name: "no keywords falls back to default",
			text: "hello there general kenobi",
			want: domain.CategoryAdminDelay,
		},
		{
			name: "empty text falls back to default",
			text: "",
			want: domain.CategoryAdminDelay,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.ClassifyCategory(tt.text); got != tt.want {
				t.Errorf("ClassifyCategory(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}

func TestEngine_ClassifyCategory_TieBreakFirstTableEntryWins(t *testing.T) {
	engine := newTestEngine(t)

	// One Infrastructure keyword ("road") and one Utilities keyword
	// ("water"): equal counts must resolve to the earlier table entry.
	got := engine.ClassifyCategory("water on the road")
	if got != domain.CategoryInfrastructure {
		t.Errorf("tie resolved to %q, want %q", got, domain.CategoryInfrastructure)
	}
}

func TestEngine_ClassifyCategory_ClosedSet(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"",
		"road water garbage hospital school police delay",
		"completely unrelated text about nothing",
		"दुर्घटना",
	}
	for _, text := range inputs {
		if got := engine.ClassifyCategory(text); !got.Valid() {
			t.Errorf("ClassifyCategory(%q) = %q, not in the closed category set", text, got)
		}
	}
}

func TestEngine_Sentiment(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		text string
		want float64
	}{
		{name: "no signals", text: "the weather is mild today", want: 0},
		{name: "empty text", text: "", want: 0},
		// One negative hit: (0 - 2*1) / (1 + 1) = -1.
		{name: "single negative", text: "the lamp is broken", want: -1},
		// One positive hit: (1 - 0) / (1 + 1) = 0.5.
		{name: "single positive", text: "thank you for the quick response", want: 0.5},
		// Two negative, one positive: (1 - 4) / (3 + 1) = -0.75.
		{name: "mixed", text: "thank you but the pipe is broken and damaged", want: -0.75},
		// Negative-heavy text saturates at the lower bound.
		{name: "clamped", text: "broken damaged failed problem issue angry frustrated", want: -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.Sentiment(tt.text); got != tt.want {
				t.Errorf("Sentiment(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEngine_Sentiment_Bounds(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"",
		"broken damaged failed dangerous accident urgent emergency critical problem issue",
		"thank appreciate good excellent satisfied",
		"normal text with no signals at all",
	}
	for _, text := range inputs {
		got := engine.Sentiment(text)
		if got < -1 || got > 1 {
			t.Errorf("Sentiment(%q) = %v, outside [-1, 1]", text, got)
		}
	}
}

func TestEngine_AssignPriority(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name     string
		text     string
		hasImage bool
		want     domain.Priority
	}{
		{
			name: "high priority keyword",
			text: "There is a huge pothole on the main road, very dangerous, accident waiting to happen",
			want: domain.PriorityHigh,
		},
		{
			name:     "high stays high with image",
			text:     "There is a huge pothole on the main road, very dangerous, accident waiting to happen",
			hasImage: true,
			want:     domain.PriorityHigh,
		},
		{
			name: "suggestion is low",
			text: "Just a small suggestion about the new park bench design",
			want: domain.PriorityLow,
		},
		{
			name:     "low escalates to medium with image",
			text:     "Just a small suggestion about the new park bench design",
			hasImage: true,
			want:     domain.PriorityMedium,
		},
		{
			name: "neutral text is medium",
			text: "the street light near my house flickers at night",
			want: domain.PriorityMedium,
		},
		{
			name:     "medium escalates to high with image",
			text:     "the street light near my house flickers at night",
			hasImage: true,
			want:     domain.PriorityHigh,
		},
		{
			name: "very negative sentiment is high without high keywords",
			text: "everything is broken and damaged, what a problem, I am so frustrated and angry",
			want: domain.PriorityHigh,
		},
		{
			name: "low keyword suppressed by negative sentiment",
			text: "a suggestion: the broken damaged drain is a real problem and issue",
			want: domain.PriorityHigh,
		},
		{
			name: "empty text is medium",
			text: "",
			want: domain.PriorityMedium,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := engine.AssignPriority(tt.text, tt.hasImage); got != tt.want {
				t.Errorf("AssignPriority(%q, %v) = %q, want %q", tt.text, tt.hasImage, got, tt.want)
			}
		})
	}
}

func TestEngine_AssignPriority_ImageNeverLowers(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []string{
		"",
		"just a suggestion about the park",
		"the street light flickers",
		"dangerous accident near the school",
		"कचरा और गंदगी की समस्या",
	}
	for _, text := range inputs {
		without := engine.AssignPriority(text, false)
		with := engine.AssignPriority(text, true)
		if with.Rank() < without.Rank() {
			t.Errorf("image lowered priority for %q: %q -> %q", text, without, with)
		}
	}
}

func TestEngine_ExtractKeywords(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "category and generic keywords",
			text: "the road is broken near the bridge",
			want: []string{"road", "bridge", "broken"},
		},
		{
			name: "duplicate mentions collapse",
			text: "road road road",
			want: []string{"road"},
		},
		{
			name: "no keywords",
			text: "nothing relevant here",
			want: []string{},
		},
		{
			name: "empty text",
			text: "",
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := engine.ExtractKeywords(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ExtractKeywords(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestEngine_Department(t *testing.T) {
	engine := newTestEngine(t)

	tests := []struct {
		category domain.Category
		want     string
	}{
		{domain.CategoryInfrastructure, "Municipal Department"},
		{domain.CategorySanitation, "Municipal Department"},
		{domain.CategoryHealthcare, "Health Department"},
		{domain.CategoryEducation, "Education Department"},
		{domain.CategoryPublicSafety, "Police Department"},
		{domain.CategoryUtilities, "Utilities Department"},
		{domain.CategoryAdminDelay, "Administrative Department"},
		{domain.Category("Bogus"), DefaultDepartment},
	}

	for _, tt := range tests {
		if got := engine.Department(tt.category); got != tt.want {
			t.Errorf("Department(%q) = %q, want %q", tt.category, got, tt.want)
		}
	}
}

func TestEngine_Analyze(t *testing.T) {
	engine := newTestEngine(t)

	text := "There is a huge pothole on the main road, very dangerous, accident waiting to happen"
	analysis := engine.Analyze(text, false)

	if analysis.Category != domain.CategoryInfrastructure {
		t.Errorf("category = %q, want %q", analysis.Category, domain.CategoryInfrastructure)
	}
	if analysis.Priority != domain.PriorityHigh {
		t.Errorf("priority = %q, want %q", analysis.Priority, domain.PriorityHigh)
	}
	if analysis.Department != "Municipal Department" {
		t.Errorf("department = %q, want Municipal Department", analysis.Department)
	}
	if len(analysis.Keywords) == 0 {
		t.Error("expected extracted keywords, got none")
	}
}

func TestEngine_Analyze_EmptyText(t *testing.T) {
	engine := newTestEngine(t)

	analysis := engine.Analyze("", false)

	if analysis.Category != domain.CategoryAdminDelay {
		t.Errorf("category = %q, want %q", analysis.Category, domain.CategoryAdminDelay)
	}
	if analysis.Priority != domain.PriorityMedium {
		t.Errorf("priority = %q, want %q", analysis.Priority, domain.PriorityMedium)
	}
	if analysis.Sentiment != 0 {
		t.Errorf("sentiment = %v, want 0", analysis.Sentiment)
	}
	if len(analysis.Keywords) != 0 {
		t.Errorf("keywords = %v, want empty", analysis.Keywords)
	}
}

func TestEngine_Analyze_Deterministic(t *testing.T) {
	engine := newTestEngine(t)

	inputs := []struct {
		text     string
		hasImage bool
	}{
		{"garbage pile near the drain, very dirty", false},
		{"urgent: fire near the school, emergency", true},
		{"", false},
	}

	for _, in := range inputs {
		first := engine.Analyze(in.text, in.hasImage)
		second := engine.Analyze(in.text, in.hasImage)
		if !reflect.DeepEqual(first, second) {
			t.Errorf("Analyze(%q, %v) not deterministic: %+v vs %+v", in.text, in.hasImage, first, second)
		}
	}
}

func TestDefaultRules_Validate(t *testing.T) {
	rules := DefaultRules()
	if !rules.Validate() {
		t.Fatal("default rule tables failed validation")
	}

	if len(rules.CategoryRules) != len(domain.Categories()) {
		t.Fatalf("expected %d category tables, got %d", len(domain.Categories()), len(rules.CategoryRules))
	}
	for i, want := range domain.Categories() {
		if rules.CategoryRules[i].Category != want {
			t.Errorf("table %d is %q, want %q (order is the tie-break)", i, rules.CategoryRules[i].Category, want)
		}
	}
	for _, rule := range rules.CategoryRules {
		if _, ok := rules.Departments[rule.Category]; !ok {
			t.Errorf("category %q has no department mapping", rule.Category)
		}
	}
}

func TestRules_Validate_EmptyTable(t *testing.T) {
	rules := DefaultRules()
	rules.CategoryRules[2].Keywords = nil
	if rules.Validate() {
		t.Error("expected validation failure for empty keyword table")
	}
}
