package adminRepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"servana/database"
	"servana/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrNotFound is returned when no admin matches the lookup.
var ErrNotFound = errors.New("admin not found")

// AdminRepository defines storage operations for dashboard operators.
type AdminRepository interface {
	Create(admin *models.Admin) error
	GetByID(id string) (*models.Admin, error)
	GetByEmail(email string) (*models.Admin, error)
	UpdatePermissions(id string, permissions []string) error
}

// MongoAdminRepo implements AdminRepository using MongoDB.
type MongoAdminRepo struct {
	coll *mongo.Collection
}

// NewMongoAdminRepo creates a new AdminRepository backed by MongoDB.
func NewMongoAdminRepo() AdminRepository {
	coll := database.Collection("admins")
	repo := &MongoAdminRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	}); err != nil {
		fmt.Printf("failed to create admin indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new admin document.
func (r *MongoAdminRepo) Create(admin *models.Admin) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	admin.CreatedAt = now
	admin.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin: %w", err)
	}
	return nil
}

// GetByID retrieves an admin by its unique ID.
func (r *MongoAdminRepo) GetByID(id string) (*models.Admin, error) {
	return r.findOne(bson.M{"id": id})
}

// GetByEmail retrieves an admin by email.
func (r *MongoAdminRepo) GetByEmail(email string) (*models.Admin, error) {
	return r.findOne(bson.M{"email": email})
}

func (r *MongoAdminRepo) findOne(filter bson.M) (*models.Admin, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var admin models.Admin
	if err := r.coll.FindOne(ctx, filter).Decode(&admin); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch admin: %w", err)
	}
	return &admin, nil
}

// UpdatePermissions replaces an admin's permission strings.
func (r *MongoAdminRepo) UpdatePermissions(id string, permissions []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"permissions": permissions, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update admin %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
