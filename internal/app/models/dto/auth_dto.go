package dto

// SigninRequest is the payload for POST /auth/signin.
type SigninRequest struct {
	Email    string `json:"email" binding:"required,email" example:"admin@acadport.edu"`
	Password string `json:"password" binding:"required,min=8" example:"Admin123!"`
}

// SigninResponse returns a session token on successful signin.
type SigninResponse struct {
	Token     string       `json:"token"`
	ExpiresIn int          `json:"expiresIn" example:"86400"`
	User      *UserSummary `json:"user"`
}

// UpdateProfileRequest carries the self-service editable profile fields.
// Roll number, email and user type are immutable here.
type UpdateProfileRequest struct {
	Name    string  `json:"name" binding:"required,min=2,max=100" example:"John Doe"`
	Phone   *string `json:"phone,omitempty" binding:"omitempty,max=32"`
	Address *string `json:"address,omitempty" binding:"omitempty,max=255"`
}
