package auth

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=8"`
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Department string `json:"department"`
	Position   string `json:"position"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

type RegisterResponse struct {
	User      AuthResponse `json:"user"`
	Persisted bool         `json:"persisted"`
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	User        AuthResponse `json:"user"`
}
