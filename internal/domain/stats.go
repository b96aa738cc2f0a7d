package domain

// Stats summarizes the complaint corpus for the analytics dashboard.
type Stats struct {
	Total          int64            `json:"total"`
	ByCategory     map[string]int64 `json:"by_category"`
	ByPriority     map[string]int64 `json:"by_priority"`
	ByStatus       map[string]int64 `json:"by_status"`
	Duplicates     int64            `json:"duplicates"`
	WithImages     int64            `json:"with_images"`
	ResolutionRate float64          `json:"resolution_rate"`
}
