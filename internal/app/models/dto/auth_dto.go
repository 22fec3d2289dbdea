package dto

// LoginRequest represents login credentials
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@ljcourses.io"`
	Password string `json:"password" binding:"required" example:"s3cret-pass"`
}

// RegisterRequest represents a user registration request
type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email" example:"student@ljcourses.io"`
	Password string `json:"password" binding:"required,min=8" example:"s3cret-pass"`
	FullName string `json:"fullName" binding:"required,min=2,max=100" example:"Jane Doe"`
	Major    string `json:"major,omitempty" example:"Computer Science"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int64  `json:"expiresIn" example:"604800"`
}

// AuthResponse represents a successful authentication response
type AuthResponse struct {
	Token TokenResponse `json:"token"`
	User  UserResponse  `json:"user"`
}
