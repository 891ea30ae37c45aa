package models

import "time"

// User mirrors the identity provider's account record. The API never
// creates users; rows are provisioned out of band and referenced by the
// bearer token's subject claim.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// UserUpdate is a partial profile update.
type UserUpdate struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
}
