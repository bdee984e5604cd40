package domain

import "time"

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// ValidRole reports whether role is one of the enumerated account roles.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// User models a platform account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Username     string    `json:"username"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	Role         string    `json:"role"`
	Country      string    `json:"country,omitempty"`
	Province     string    `json:"province,omitempty"`
	Languages    []string  `json:"languages,omitempty"`
	Skills       []string  `json:"skills,omitempty"`
	Experience   string    `json:"experience,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	GitHub       string    `json:"github,omitempty"`
	Portfolio    string    `json:"portfolio,omitempty"`
	ProfileImage string    `json:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserRef is the subset of user fields embedded when another record resolves
// its owner, sender, or receiver.
type UserRef struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
}
