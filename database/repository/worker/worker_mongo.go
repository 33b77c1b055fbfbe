package workerRepo

import (
	"context"
	"fmt"
	"time"

	"servana/database"
	"servana/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoWorkerRepo implements WorkerRepository using MongoDB.
type MongoWorkerRepo struct {
	coll *mongo.Collection
}

// NewMongoWorkerRepo creates a new WorkerRepository backed by MongoDB.
func NewMongoWorkerRepo() WorkerRepository {
	coll := database.Collection("workers")
	repo := &MongoWorkerRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create worker indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoWorkerRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "is_active", Value: 1}}},
		{Keys: bson.D{{Key: "assigned_categories", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}

// Create inserts a new worker document.
func (r *MongoWorkerRepo) Create(worker *models.Worker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	worker.CreatedAt = now
	worker.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, worker); err != nil {
		return fmt.Errorf("failed to create worker: %w", err)
	}
	return nil
}

// Update modifies an existing worker document.
func (r *MongoWorkerRepo) Update(worker *models.Worker) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	worker.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": worker.ID}, bson.M{"$set": worker})
	if err != nil {
		return fmt.Errorf("failed to update worker %s: %w", worker.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a worker document by its ID.
func (r *MongoWorkerRepo) Delete(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete worker %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID retrieves a worker by its unique ID.
func (r *MongoWorkerRepo) GetByID(id string) (*models.Worker, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var worker models.Worker
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&worker); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch worker %s: %w", id, err)
	}
	return &worker, nil
}

// GetByCompany retrieves all workers of a company.
func (r *MongoWorkerRepo) GetByCompany(companyID string) ([]models.Worker, error) {
	return r.find(bson.M{"company_id": companyID})
}

// GetActiveByCompany retrieves the active workers of a company.
func (r *MongoWorkerRepo) GetActiveByCompany(companyID string) ([]models.Worker, error) {
	return r.find(bson.M{"company_id": companyID, "is_active": true})
}

func (r *MongoWorkerRepo) find(filter bson.M) ([]models.Worker, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query workers: %w", err)
	}
	defer cursor.Close(ctx)

	var workers []models.Worker
	if err := cursor.All(ctx, &workers); err != nil {
		return nil, fmt.Errorf("failed to decode workers: %w", err)
	}
	return workers, nil
}

// SetActive flips a worker's isActive flag.
func (r *MongoWorkerRepo) SetActive(id string, active bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"is_active": active, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update worker %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountOtherActiveWithCategory counts the company's active workers, excluding
// one worker, that are assigned to the given category.
func (r *MongoWorkerRepo) CountOtherActiveWithCategory(companyID, categoryID, excludeWorkerID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"company_id":          companyID,
		"is_active":           true,
		"assigned_categories": categoryID,
		"id":                  bson.M{"$ne": excludeWorkerID},
	}
	count, err := r.coll.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count active workers for category %s: %w", categoryID, err)
	}
	return count, nil
}
