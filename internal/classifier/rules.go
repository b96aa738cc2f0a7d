package classifier

import "github.com/openseva/grievance/internal/domain"

// CategoryRule binds a category to its keyword list. English and Hindi
// keywords are kept in a single flat list per category; matching is a
// case-insensitive substring scan with no tokenization or stemming.
type CategoryRule struct {
	Category domain.Category
	Keywords []string
}

// Rules holds the immutable keyword tables the engine is built from.
// The CategoryRules slice is ordered: ties between categories with equal
// match counts resolve to the earliest entry.
type Rules struct {
	CategoryRules []CategoryRule
	Departments   map[domain.Category]string
	HighPriority  []string
	LowPriority   []string
	Negative      []string
	Positive      []string
	// Generic complaint terms contribute to keyword extraction (and so
	// to duplicate similarity) but not to category scoring.
	Generic []string
}

// DefaultDepartment is the routing fallback for an unknown category.
const DefaultDepartment = "Administrative Department"

// DefaultRules returns the built-in bilingual keyword tables.
func DefaultRules() Rules {
	return Rules{
		CategoryRules: []CategoryRule{
			{
				Category: domain.CategoryInfrastructure,
				Keywords: []string{
					"road", "bridge", "street", "pothole", "construction", "building", "structure",
					"सड़क", "पुल", "निर्माण", "इमारत", "गड्ढा", "सड़क की मरम्मत",
				},
			},
			{
				Category: domain.CategorySanitation,
				Keywords: []string{
					"garbage", "waste", "trash", "drain", "sewage", "dirty", "clean", "hygiene",
					"कचरा", "गंदगी", "नाली", "सफाई", "मलजल",
				},
			},
			{
				Category: domain.CategoryHealthcare,
				Keywords: []string{
					"hospital", "doctor", "medicine", "health", "medical", "clinic", "treatment",
					"अस्पताल", "डॉक्टर", "दवा", "स्वास्थ्य", "चिकित्सा",
				},
			},
			{
				Category: domain.CategoryEducation,
				Keywords: []string{
					"school", "teacher", "student", "education", "exam", "book", "classroom",
					"स्कूल", "शिक्षक", "छात्र", "शिक्षा", "परीक्षा",
				},
			},
			{
				Category: domain.CategoryPublicSafety,
				Keywords: []string{
					"police", "crime", "safety", "security", "theft", "accident", "emergency",
					"पुलिस", "अपराध", "सुरक्षा", "चोरी", "दुर्घटना", "आपातकाल",
				},
			},
			{
				Category: domain.CategoryUtilities,
				Keywords: []string{
					"water", "electricity", "power", "supply", "connection", "bill", "meter",
					"पानी", "बिजली", "आपूर्ति", "कनेक्शन", "बिल",
				},
			},
			{
				Category: domain.CategoryAdminDelay,
				Keywords: []string{
					"delay", "pending", "application", "document", "permit", "license", "approval",
					"विलंब", "लंबित", "आवेदन", "दस्तावेज", "अनुमति",
				},
			},
		},
		Departments: map[domain.Category]string{
			domain.CategoryInfrastructure: "Municipal Department",
			domain.CategorySanitation:     "Municipal Department",
			domain.CategoryHealthcare:     "Health Department",
			domain.CategoryEducation:      "Education Department",
			domain.CategoryPublicSafety:   "Police Department",
			domain.CategoryUtilities:      "Utilities Department",
			domain.CategoryAdminDelay:     "Administrative Department",
		},
		HighPriority: []string{
			"accident", "danger", "emergency", "urgent", "critical", "immediate", "life",
			"death", "injury", "hurt", "blood", "fire", "explosion",
			"दुर्घटना", "खतरा", "आपातकाल", "जरूरी", "जीवन", "मृत्यु", "चोट", "आग",
		},
		LowPriority: []string{
			"suggestion", "feedback", "inquiry", "question", "information",
			"सुझाव", "प्रतिक्रिया", "पूछताछ", "सवाल",
		},
		Negative: []string{
			"urgent", "emergency", "critical", "danger", "dangerous", "accident", "broken",
			"damaged", "failed", "not working", "problem", "issue", "complaint", "angry",
			"frustrated", "disappointed", "worried", "concerned",
			"जरूरी", "आपातकाल", "खतरनाक", "दुर्घटना", "टूटा", "खराब", "समस्या", "चिंतित",
		},
		Positive: []string{
			"thank", "appreciate", "good", "excellent", "satisfied",
			"धन्यवाद", "अच्छा", "संतुष्ट",
		},
		Generic: []string{
			"broken", "damaged", "not working", "problem", "issue", "complaint",
			"खराब", "टूटा", "समस्या", "शिकायत",
		},
	}
}

// Validate reports whether every table is populated. An empty table is an
// operational misconfiguration: the engine would silently over-classify
// into the default category rather than fail at runtime.
func (r Rules) Validate() bool {
	if len(r.CategoryRules) == 0 || len(r.Departments) == 0 {
		return false
	}
	for _, rule := range r.CategoryRules {
		if len(rule.Keywords) == 0 {
			return false
		}
	}
	return len(r.HighPriority) > 0 && len(r.LowPriority) > 0 &&
		len(r.Negative) > 0 && len(r.Positive) > 0 && len(r.Generic) > 0
}
