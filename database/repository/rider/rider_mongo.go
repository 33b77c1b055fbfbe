package riderRepo

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

// ErrNotFound is returned when no rider matches the given id.
var ErrNotFound = errors.New("rider not found")

// RiderRepository defines storage operations for delivery riders.
type RiderRepository interface {
	Create(rider *models.Rider) error
	Update(rider *models.Rider) error
	Delete(id string) error
	GetByID(id string) (*models.Rider, error)
	GetAll() ([]models.Rider, error)
	SetActive(id string, active bool) error
}

// MongoRiderRepo implements RiderRepository using MongoDB.
type MongoRiderRepo struct {
	coll *mongo.Collection
}

// NewMongoRiderRepo creates a new RiderRepository backed by MongoDB.
func NewMongoRiderRepo() RiderRepository {
	coll := database.Collection("riders")
	repo := &MongoRiderRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		fmt.Printf("failed to create rider indexes: %v\n", err)
	}
	return repo
}

// Create inserts a new rider document.
func (r *MongoRiderRepo) Create(rider *models.Rider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	now := time.Now()
	rider.CreatedAt = now
	rider.UpdatedAt = now
	if _, err := r.coll.InsertOne(ctx, rider); err != nil {
		return fmt.Errorf("failed to create rider: %w", err)
	}
	return nil
}

// Update modifies an existing rider document.
func (r *MongoRiderRepo) Update(rider *models.Rider) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rider.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": rider.ID}, bson.M{"$set": rider})
	if err != nil {
		return fmt.Errorf("failed to update rider %s: %w", rider.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a rider document by its ID.
func (r *MongoRiderRepo) Delete(id string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete rider %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a rider by its unique ID.
func (r *MongoRiderRepo) GetByID(id string) (*models.Rider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var rider models.Rider
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&rider); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch rider %s: %w", id, err)
	}
	return &rider, nil
}

// GetAll retrieves every registered rider.
func (r *MongoRiderRepo) GetAll() ([]models.Rider, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query riders: %w", err)
	}
	defer cursor.Close(ctx)

	var riders []models.Rider
	if err := cursor.All(ctx, &riders); err != nil {
		return nil, fmt.Errorf("failed to decode riders: %w", err)
	}
	return riders, nil
}

// SetActive flips a rider's isActive flag.
func (r *MongoRiderRepo) SetActive(id string, active bool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update rider %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
