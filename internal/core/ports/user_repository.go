package ports

import (
	"context"

	"github.com/tl2/clientes-admin/internal/core/domain"
)

// UserRepository validates credentials against the user store.
type UserRepository interface {
	// ObtenerUsuario returns the user whose username and password match, or
	// domain.ErrUserNotFound when none does. A wrong password and an unknown
	// username are indistinguishable to the caller.
	ObtenerUsuario(ctx context.Context, username, password string) (*domain.User, error)
}
