package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/user/auratask-go/apperror"
)

// minPasswordLength is the minimum accepted password length.
const minPasswordLength = 6

// Service implements registration and login on top of the credential store
// and the token service.
type Service struct {
	users  UserRepository
	tokens TokenService
}

// NewService creates a new auth Service.
func NewService(users UserRepository, tokens TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register validates the request, hashes the password, and creates the
// user. The plaintext password is never persisted. A duplicate email
// surfaces as the generic "email already taken" conflict.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.NewValidationError("a valid email is required", nil)
	}
	if len(req.Password) < minPasswordLength {
		return nil, apperror.NewValidationError("password must be at least 6 characters", nil)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternalError("failed to hash password", err)
	}

	user := &User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hashedPassword),
		Phone:        req.Phone,
	}
	return s.users.Create(ctx, user)
}

// Login verifies the credentials and issues a bearer token. An unknown
// email and a wrong password produce the same generic failure so that the
// response does not reveal which accounts exist.
func (s *Service) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperror.NewValidationError("email and password are required", nil)
	}

	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewBadRequestError("invalid credentials", nil)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperror.NewBadRequestError("invalid credentials", nil)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, apperror.NewInternalError("failed to issue token", err)
	}
	return &TokenResponse{Token: token}, nil
}
