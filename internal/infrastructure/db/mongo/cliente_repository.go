package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/tl2/clientes-admin/internal/core/domain"
)

const (
	collectionClientes = "clientes"
	collectionCounters = "counters"
)

// ClienteRepository implements ports.ClienteRepository using MongoDB.
// Integer ids come from a per-collection sequence document in "counters".
type ClienteRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewClienteRepository(db *mongo.Database) *ClienteRepository {
	return &ClienteRepository{
		col:      db.Collection(collectionClientes),
		counters: db.Collection(collectionCounters),
	}
}

// ObtenerClientes returns every customer ordered by id.
func (r *ClienteRepository) ObtenerClientes(ctx context.Context) ([]domain.Cliente, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("find clientes: %w", err)
	}
	defer cur.Close(ctx)

	clientes := make([]domain.Cliente, 0)
	if err := cur.All(ctx, &clientes); err != nil {
		return nil, fmt.Errorf("decode clientes: %w", err)
	}
	return clientes, nil
}

func (r *ClienteRepository) ObtenerCliente(ctx context.Context, id int) (*domain.Cliente, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var c domain.Cliente
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&c); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrClienteNotFound
		}
		return nil, fmt.Errorf("find cliente %d: %w", id, err)
	}
	return &c, nil
}

func (r *ClienteRepository) CrearCliente(ctx context.Context, c *domain.Cliente) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := r.nextID(ctx)
	if err != nil {
		return err
	}

	doc := *c
	doc.ID = id
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert cliente: %w", err)
	}
	c.ID = id
	return nil
}

func (r *ClienteRepository) ModificarCliente(ctx context.Context, id int, c *domain.Cliente) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"nombre":    c.Nombre,
		"domicilio": c.Domicilio,
		"telefono":  c.Telefono,
		"email":     c.Email,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return fmt.Errorf("update cliente %d: %w", id, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrClienteNotFound
	}
	return nil
}

// EliminarCliente deletes id; a missing id is a no-op.
func (r *ClienteRepository) EliminarCliente(ctx context.Context, id int) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"_id": id}); err != nil {
		return fmt.Errorf("delete cliente %d: %w", id, err)
	}
	return nil
}

// nextID atomically increments the clientes sequence.
func (r *ClienteRepository) nextID(ctx context.Context) (int, error) {
	var counter struct {
		Seq int `bson:"seq"`
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": collectionClientes},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("next cliente id: %w", err)
	}
	return counter.Seq, nil
}

// EnsureIndexes creates the secondary indexes used by listing screens.
func (r *ClienteRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{Keys: bson.D{{Key: "nombre", Value: 1}}})
	return err
}
