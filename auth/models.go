package auth

import "time"

// User represents a registered account. The password hash is never exposed
// through the API; the json tag drops it from every response.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Phone        *string   `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}
