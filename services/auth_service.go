package services

import (
	"context"
	"strings"

	"github.com/Dosada05/futbol5/utils"
)

// AuthService checks the credentials of the single site administrator.
type AuthService interface {
	Login(ctx context.Context, input LoginInput) (string, error)
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type authService struct {
	adminEmail        string
	adminPasswordHash string
}

// NewAuthService returns a service that rejects every login when either
// setting is empty.
func NewAuthService(adminEmail, adminPasswordHash string) AuthService {
	return &authService{
		adminEmail:        strings.ToLower(strings.TrimSpace(adminEmail)),
		adminPasswordHash: adminPasswordHash,
	}
}

// Login returns the admin email on success.
func (s *authService) Login(ctx context.Context, input LoginInput) (string, error) {
	if err := validateInput(input); err != nil {
		return "", err
	}
	if s.adminEmail == "" || s.adminPasswordHash == "" {
		return "", ErrAuthInvalidCredentials
	}
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email != s.adminEmail || !utils.CheckPasswordHash(input.Password, s.adminPasswordHash) {
		return "", ErrAuthInvalidCredentials
	}
	return s.adminEmail, nil
}
