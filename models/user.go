package models

import "time"

// User represents a SmartPlates account.
type User struct {
	ID            string         `bson:"id" json:"id"`
	Username      string         `bson:"username" json:"username"`
	Email         string         `bson:"email" json:"email"`
	PasswordHash  string         `bson:"password_hash" json:"-"`
	TokenHash     string         `bson:"token_hash,omitempty" json:"-"`
	Role          string         `bson:"role" json:"role"`
	ProfileImage  string         `bson:"profileImage,omitempty" json:"profileImage,omitempty"`
	Preferences   []string       `bson:"preferences,omitempty" json:"preferences,omitempty"`
	Notifications []Notification `bson:"notifications,omitempty" json:"notifications,omitempty"`
	CreatedAt     time.Time      `bson:"createdAt" json:"createdAt"`
	UpdatedAt     time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Roles assignable to a user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Notification is an in-app message recorded on the user document.
type Notification struct {
	ID        string    `bson:"id" json:"id"`
	Title     string    `bson:"title" json:"title"`
	Body      string    `bson:"body" json:"body"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	Read      bool      `bson:"read" json:"read"`
}

// UserUpdateRequest carries the fields a user may change about themselves.
type UserUpdateRequest struct {
	ID           string   `json:"id"`
	Username     string   `json:"username,omitempty"`
	Email        string   `json:"email,omitempty"`
	ProfileImage string   `json:"profileImage,omitempty"`
	Preferences  []string `json:"preferences,omitempty"`
}
