// Package auth implements the single-credential login used by the
// cost sheet application.
package auth

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/costsheet-erp/costsheet/internal/shared"
)

// Service validates the configured admin credential. The password is
// hashed once at startup so only the digest stays in memory.
type Service struct {
	username string
	hash     []byte
}

func NewService(username, password string) (*Service, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth: hash credential: %w", err)
	}
	return &Service{username: username, hash: hash}, nil
}

// Authenticate checks the supplied credentials against the configured
// admin account.
func (s *Service) Authenticate(username, password string) error {
	if username != s.username {
		return shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.hash, []byte(password)); err != nil {
		return shared.ErrInvalidCredentials
	}
	return nil
}
