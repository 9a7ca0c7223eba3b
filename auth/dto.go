// Package auth handles registration, login, token issuance and verification.
// This file defines the request and response payloads for the auth API.
package auth

// RegisterRequest represents the registration request payload.
type RegisterRequest struct {
	Email    string  `json:"email" example:"user@example.com"`
	Password string  `json:"password" example:"strongpassword123"`
	Phone    *string `json:"phone,omitempty" example:"+15551234567"`
}

// RegisterResponse confirms a successful registration. No token is issued;
// registration and login are separate steps.
type RegisterResponse struct {
	Message string `json:"message" example:"Registered"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// TokenResponse carries the bearer token returned on successful login.
type TokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}
