// Package dto defines data transfer objects for the auth feature's HTTP transport layer.
package dto

import "hrm_backend/internal/feature/auth/domain/entity"

// RegisterReq represents the request body for the /api/auth/register endpoint.
// Password rules and the email format check live in the usecase so that the
// error messages match the rest of the API.
type RegisterReq struct {
	Name            string `json:"name" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword" binding:"required"`
	Role            string `json:"role"`
	Phone           string `json:"phone"`
}

// AuthResponse is the success body for register and login: the session token
// plus the public user projection.
type AuthResponse struct {
	Status string            `json:"status"`
	Token  string            `json:"token"`
	User   entity.PublicUser `json:"user"`
}
