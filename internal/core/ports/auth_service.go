package ports

import (
	"context"

	"github.com/tl2/clientes-admin/internal/core/domain"
)

type AuthService interface {
	// Login returns domain.ErrMissingCredentials for empty input,
	// domain.ErrInvalidCredentials when nothing matches, or any other error
	// for unexpected failures.
	Login(ctx context.Context, username, password string) (*domain.User, error)
}
