package domain

import "time"

// Role distinguishes portal users from dashboard administrators.
type Role string

const (
	RoleCitizen Role = "Citizen"
	RoleAdmin   Role = "Admin"
)

// User is a registered portal account.
type User struct {
	ID           string    `bson:"_id,omitempty"  json:"id"`
	Name         string    `bson:"name"           json:"name"`
	Email        string    `bson:"email"          json:"email"`
	PasswordHash string    `bson:"password_hash"  json:"-"`
	Role         Role      `bson:"role"           json:"role"`
	CreatedAt    time.Time `bson:"created_at"     json:"created_at"`
}
