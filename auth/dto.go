package auth

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Username string `json:"username" example:"mluukkai"`
	Password string `json:"password" example:"salainen"`
}

// LoginResponse is returned on a successful login. The client sends Token
// back as "Authorization: Bearer {token}".
type LoginResponse struct {
	Token    string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
	Username string `json:"username" example:"mluukkai"`
	Name     string `json:"name" example:"Matti Luukkainen"`
	ID       string `json:"id" example:"3f1c2a9e-6b7d-4e0a-9c1e-2b8f5d4a7c10"`
}
