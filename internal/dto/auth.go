package dto

import "tradejournal_backend/internal/models"

type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	UsernameOrEmail string `json:"usernameOrEmail" validate:"required"`
	Password        string `json:"password" validate:"required"`
}

type AuthResponse struct {
	Token    string          `json:"token"`
	UserID   string          `json:"userId"`
	Username string          `json:"username"`
	Email    string          `json:"email"`
	PlanType models.PlanType `json:"planType"`
}
