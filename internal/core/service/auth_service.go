package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/core/ports"
)

// AuthService implements the credential check behind the login form.
type AuthService struct {
	repo   ports.UserRepository
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, logger: logger}
}

// Login validates input, then asks the repository for a matching user.
// The password never reaches the log.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	if username == "" || password == "" {
		return nil, domain.ErrMissingCredentials
	}

	user, err := s.repo.ObtenerUsuario(ctx, username, password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrInvalidCredentials) {
			s.logger.Warn().Str("username", username).Msg("invalid login attempt")
			return nil, domain.ErrInvalidCredentials
		}
		s.logger.Error().Err(err).Str("username", username).Msg("unexpected error during login")
		return nil, fmt.Errorf("login %q: %w", username, err)
	}
	if user == nil {
		s.logger.Warn().Str("username", username).Msg("invalid login attempt")
		return nil, domain.ErrInvalidCredentials
	}

	s.logger.Info().Str("username", user.Username).Str("rol", user.Rol.String()).Bool("admin", user.IsAdmin()).Msg("user logged in")
	return user, nil
}
