package auth

// RegisterRequest is the body of PUT /auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	First    string `json:"first"`
	Last     string `json:"last"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResult pairs the authenticated user row with its session token.
type LoginResult struct {
	User  map[string]any `json:"user"`
	Token string         `json:"token"`
}
