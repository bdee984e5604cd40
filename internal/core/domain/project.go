package domain

import "time"

// Project is owned by exactly one creator. Owner is resolved at query time
// from the users collection; it is nil when the creator has been deleted.
type Project struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedBy   string    `json:"created_by"`
	Owner       *UserRef  `json:"owner,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
