package ports

import (
	"context"

	"github.com/tl2/clientes-admin/internal/core/domain"
)

// ClienteRepository defines persistence operations for customers, keyed by
// the integer id assigned by storage.
type ClienteRepository interface {
	ObtenerClientes(ctx context.Context) ([]domain.Cliente, error)
	// ObtenerCliente returns domain.ErrClienteNotFound when id does not exist.
	ObtenerCliente(ctx context.Context, id int) (*domain.Cliente, error)
	// CrearCliente stores c and sets c.ID to the assigned identifier.
	CrearCliente(ctx context.Context, c *domain.Cliente) error
	ModificarCliente(ctx context.Context, id int, c *domain.Cliente) error
	// EliminarCliente deletes id. Whether a missing id is an error is left to
	// the implementation.
	EliminarCliente(ctx context.Context, id int) error
}
