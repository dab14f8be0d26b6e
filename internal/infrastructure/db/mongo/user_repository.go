package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tl2/clientes-admin/internal/core/domain"
	"github.com/tl2/clientes-admin/internal/pkg/password"
)

const collectionUsers = "usuarios"

// UserRepository implements ports.UserRepository using MongoDB.
type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(collectionUsers)}
}

type mongoUser struct {
	Username     string `bson:"_id"`
	PasswordHash string `bson:"password_hash"`
	Rol          string `bson:"rol"`
}

// ObtenerUsuario looks the user up by username and checks the bcrypt hash.
func (r *UserRepository) ObtenerUsuario(ctx context.Context, username, plain string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var mu mongoUser
	if err := r.coll.FindOne(ctx, bson.M{"_id": username}).Decode(&mu); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	if !password.Check(mu.PasswordHash, plain) {
		return nil, domain.ErrUserNotFound
	}

	return &domain.User{
		Username:     mu.Username,
		PasswordHash: mu.PasswordHash,
		Rol:          domain.ParseRole(mu.Rol),
	}, nil
}

// UpsertUsuario creates or replaces a user record. Used by the seed command.
func (r *UserRepository) UpsertUsuario(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoUser{
		Username:     user.Username,
		PasswordHash: user.PasswordHash,
		Rol:          user.Rol.String(),
	}
	_, err := r.coll.ReplaceOne(ctx, bson.M{"_id": user.Username}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert user: %w", err)
	}
	return nil
}
