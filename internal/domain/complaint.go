// Package domain holds the core entities of the grievance service.
package domain

import "time"

// Category is one of the seven fixed complaint classification labels.
type Category string

const (
	CategoryInfrastructure Category = "Infrastructure"
	CategorySanitation     Category = "Sanitation"
	CategoryHealthcare     Category = "Healthcare"
	CategoryEducation      Category = "Education"
	CategoryPublicSafety   Category = "Public Safety"
	CategoryUtilities      Category = "Utilities"
	CategoryAdminDelay     Category = "Administrative Delay"
)

// Categories lists every valid category in declaration order.
// Order matters: classification ties resolve to the first entry.
func Categories() []Category {
	return []Category{
		CategoryInfrastructure,
		CategorySanitation,
		CategoryHealthcare,
		CategoryEducation,
		CategoryPublicSafety,
		CategoryUtilities,
		CategoryAdminDelay,
	}
}

// Valid reports whether c is one of the seven known categories.
func (c Category) Valid() bool {
	for _, known := range Categories() {
		if c == known {
			return true
		}
	}
	return false
}

// Priority is the urgency tier assigned to a complaint.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Rank returns the ordering of a priority (Low < Medium < High).
// Unknown values rank below Low.
func (p Priority) Rank() int {
	switch p {
	case PriorityLow:
		return 1
	case PriorityMedium:
		return 2
	case PriorityHigh:
		return 3
	default:
		return 0
	}
}

// Escalate bumps the priority one level up. High stays High.
func (p Priority) Escalate() Priority {
	switch p {
	case PriorityLow:
		return PriorityMedium
	case PriorityMedium:
		return PriorityHigh
	default:
		return p
	}
}

// Status is the lifecycle state of a complaint.
type Status string

const (
	StatusPending    Status = "Pending"
	StatusInProgress Status = "In Progress"
	StatusResolved   Status = "Resolved"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusResolved
}

// Complaint is the persisted grievance record. It is created once at
// submission and afterwards mutated only by status transitions.
type Complaint struct {
	ID            string    `bson:"_id,omitempty"          json:"id"`
	Name          string    `bson:"name"                   json:"name"`
	Email         string    `bson:"email"                  json:"email"`
	ComplaintText string    `bson:"complaint_text"         json:"complaint_text"`
	Location      string    `bson:"location,omitempty"     json:"location,omitempty"`
	ImageURL      string    `bson:"image_url,omitempty"    json:"image_url,omitempty"`
	Category      Category  `bson:"category"               json:"category"`
	Priority      Priority  `bson:"priority"               json:"priority"`
	Department    string    `bson:"department"             json:"department"`
	Status        Status    `bson:"status"                 json:"status"`
	IsDuplicate   bool      `bson:"is_duplicate"           json:"is_duplicate"`
	DuplicateOf   string    `bson:"duplicate_of,omitempty" json:"duplicate_of,omitempty"`
	CreatedAt     time.Time `bson:"created_at"             json:"created_at"`
	UpdatedAt     time.Time `bson:"updated_at"             json:"updated_at"`
}
