package dto

import "time"

// LoginRequest carries the operator PIN.
type LoginRequest struct {
	Pin string `json:"pin" binding:"required"`
}

// LoginResponse represents the response for a successful login.
type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
