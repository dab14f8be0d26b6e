package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/tl2/clientes-admin/internal/core/domain"
)

// ClienteRepository implements ports.ClienteRepository on top of gorm.
type ClienteRepository struct {
	db *gorm.DB
}

func NewClienteRepository(db *gorm.DB) *ClienteRepository {
	return &ClienteRepository{db: db}
}

func (r *ClienteRepository) ObtenerClientes(ctx context.Context) ([]domain.Cliente, error) {
	var records []clienteRecord
	if err := r.db.WithContext(ctx).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("find clientes: %w", err)
	}

	clientes := make([]domain.Cliente, 0, len(records))
	for _, rec := range records {
		clientes = append(clientes, rec.toDomain())
	}
	return clientes, nil
}

func (r *ClienteRepository) ObtenerCliente(ctx context.Context, id int) (*domain.Cliente, error) {
	var rec clienteRecord
	if err := r.db.WithContext(ctx).First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("find cliente %d: %w", id, err)
	}
	c := rec.toDomain()
	return &c, nil
}

func (r *ClienteRepository) CrearCliente(ctx context.Context, c *domain.Cliente) error {
	rec := newClienteRecord(c)
	rec.ID = 0
	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("insert cliente: %w", err)
	}
	c.ID = rec.ID
	return nil
}

func (r *ClienteRepository) ModificarCliente(ctx context.Context, id int, c *domain.Cliente) error {
	res := r.db.WithContext(ctx).
		Model(&clienteRecord{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"nombre":    c.Nombre,
			"domicilio": c.Domicilio,
			"telefono":  c.Telefono,
			"email":     c.Email,
		})
	if res.Error != nil {
		return fmt.Errorf("update cliente %d: %w", id, res.Error)
	}
	if res.RowsAffected == 0 {
		// MySQL reports 0 affected rows for an unchanged row too.
		var count int64
		if err := r.db.WithContext(ctx).Model(&clienteRecord{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return fmt.Errorf("update cliente %d: %w", id, err)
		}
		if count == 0 {
			return domain.ErrClienteNotFound
		}
	}
	return nil
}

// EliminarCliente deletes id; a missing id is a no-op.
func (r *ClienteRepository) EliminarCliente(ctx context.Context, id int) error {
	if err := r.db.WithContext(ctx).Delete(&clienteRecord{}, id).Error; err != nil {
		return fmt.Errorf("delete cliente %d: %w", id, err)
	}
	return nil
}
