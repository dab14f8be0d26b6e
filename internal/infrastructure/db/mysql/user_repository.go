package mysql

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/pkg/password"
)

// UserRepository implements ports.UserRepository on top of gorm.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ObtenerUsuario(ctx context.Context, username, plain string) (*domain.User, error) {
	var rec usuarioRecord
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&rec).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !password.Check(rec.PasswordHash, plain) {
		return nil, domain.ErrUserNotFound
	}
	return rec.toDomain(), nil
}

// UpsertUsuario creates or replaces a user record. Used by the seed command.
func (r *UserRepository) UpsertUsuario(ctx context.Context, user *domain.User) error {
	rec := usuarioRecord{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Rol:          user.Rol.String(),
	}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&rec).Error
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
