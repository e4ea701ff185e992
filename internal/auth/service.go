package auth

import (
	"errors"

	"github.com/rs/zerolog/log"

	"messenger/internal/domain"
)

// ErrInvalidCredentials is returned by Login for an unknown user or a
// wrong password; the two cases are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("incorrect username or password")

// UserFinder is the slice of the user store the service needs.
type UserFinder interface {
	FindByUsername(username string) (*domain.User, error)
}

// Service issues tokens on login and resolves presented tokens back to
// users. It implements core.TokenVerifier.
type Service struct {
	users  UserFinder
	tokens *TokenManager
}

func NewService(users UserFinder, tokens *TokenManager) *Service {
	return &Service{users: users, tokens: tokens}
}

// Login checks the password and returns a signed access token.
func (s *Service) Login(username, password string) (string, error) {
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return "", ErrInvalidCredentials
	}
	if !CheckPassword(password, user.HashedPassword) {
		return "", ErrInvalidCredentials
	}
	token, err := s.tokens.Generate(user.Username)
	if err != nil {
		log.Error().Err(err).Str("module", "auth").Str("username", username).Msg("token generation failed")
		return "", err
	}
	return token, nil
}

// Verify validates the token signature and expiry, then requires the
// subject to still exist in the user store.
func (s *Service) Verify(token string) (*domain.User, error) {
	username, err := s.tokens.Subject(token)
	if err != nil {
		return nil, err
	}
	user, err := s.users.FindByUsername(username)
	if err != nil {
		return nil, ErrInvalidToken
	}
	return user, nil
}
