package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/openseva/grievance/internal/domain"
)

// ErrDuplicateEmail is returned when registering an email that already exists.
var ErrDuplicateEmail = errors.New("email already registered")

const usersCollection = "users"

// UsersRepository persists portal accounts in MongoDB.
type UsersRepository struct {
	coll *mongo.Collection
}

// NewUsersRepository creates a repository over the users collection.
func NewUsersRepository(client *Client) *UsersRepository {
	return &UsersRepository{
		coll: client.Database().Collection(usersCollection),
	}
}

// EnsureIndexes creates the unique email index.
func (r *UsersRepository) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	}

	if _, err := r.coll.Indexes().CreateOne(ctx, index); err != nil {
		return fmt.Errorf("failed to create user indexes: %w", err)
	}
	return nil
}

// Create inserts a new account, assigning its ID and creation time.
// Returns ErrDuplicateEmail when the email is already registered.
func (r *UsersRepository) Create(ctx context.Context, u *domain.User) error {
	u.ID = primitive.NewObjectID().Hex()
	u.CreatedAt = time.Now().UTC()

	if _, err := r.coll.InsertOne(ctx, u); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to insert user: %w", err)
	}
	return nil
}

// GetByEmail fetches an account by email. Returns ErrNotFound when absent.
func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var u domain.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch user: %w", err)
	}
	return &u, nil
}
