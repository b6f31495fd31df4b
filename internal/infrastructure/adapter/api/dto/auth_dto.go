package dto

// RegisterRequest represents the API request for creating an account
type RegisterRequest struct {
	Username     string `form:"username" json:"username" binding:"required"`
	Password     string `form:"password" json:"password" binding:"required"`
	Confirmation string `form:"confirmation" json:"confirmation" binding:"required"`
}

// LoginRequest represents the API request for logging in
type LoginRequest struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

// UserResponse represents the logged-in user
type UserResponse struct {
	ID       uint64 `json:"id"`
	Username string `json:"username"`
	Cash     string `json:"cash"`
}
