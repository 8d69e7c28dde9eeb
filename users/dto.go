// Package users handles account signup and the public user listing.
package users

// CreateUserRequest represents the signup payload.
// @Description Request body for creating a user
type CreateUserRequest struct {
	// Must be unique and at least 3 characters long.
	Username string `json:"username" example:"mluukkai"`
	Name     string `json:"name" example:"Matti Luukkainen"`
	// Plaintext, at least 3 characters and at most 72 bytes. Only its bcrypt hash is stored.
	Password string `json:"password" example:"salainen"`
}

// Password bounds are checked before hashing, since the store only ever sees
// the hash. The minimum counts characters; the maximum is bcrypt's input limit
// in bytes.
const (
	minPasswordLength = 3
	maxPasswordBytes  = 72
)
