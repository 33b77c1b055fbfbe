package catalogRepo

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

// MongoCatalogRepo implements CatalogRepository using MongoDB. Categories,
// services and the public mirror live in three collections.
type MongoCatalogRepo struct {
	categories *mongo.Collection
	services   *mongo.Collection
	mirror     *mongo.Collection
}

// NewMongoCatalogRepo creates a new CatalogRepository backed by MongoDB.
func NewMongoCatalogRepo() CatalogRepository {
	repo := &MongoCatalogRepo{
		categories: database.Collection("categories"),
		services:   database.Collection("services"),
		mirror:     database.Collection("public_catalog"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create catalog indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func (r *MongoCatalogRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	if _, err := r.categories.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}}},
		{Keys: bson.D{{Key: "master_category_id", Value: 1}, {Key: "is_active", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create category indexes: %w", err)
	}
	if _, err := r.services.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "company_id", Value: 1}, {Key: "master_category_id", Value: 1}}},
		{Keys: bson.D{{Key: "master_service_id", Value: 1}, {Key: "is_active", Value: 1}}},
	}); err != nil {
		return fmt.Errorf("failed to create service indexes: %w", err)
	}
	if _, err := r.mirror.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "kind", Value: 1}, {Key: "master_id", Value: 1}},
		Options: options.Index().SetUnique(true),
	}); err != nil {
		return fmt.Errorf("failed to create mirror index: %w", err)
	}
	return nil
}

// CreateCategory inserts a new company category.
func (r *MongoCatalogRepo) CreateCategory(category *models.Category) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	category.CreatedAt = now
	category.UpdatedAt = now
	if _, err := r.categories.InsertOne(ctx, category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	return nil
}

// UpdateCategory modifies an existing category document.
func (r *MongoCatalogRepo) UpdateCategory(category *models.Category) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	category.UpdatedAt = time.Now()
	result, err := r.categories.UpdateOne(ctx, bson.M{"id": category.ID}, bson.M{"$set": category})
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", category.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCategory removes a category document by its ID.
func (r *MongoCatalogRepo) DeleteCategory(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.categories.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete category %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetCategoryByID retrieves a category by its unique ID.
func (r *MongoCatalogRepo) GetCategoryByID(id string) (*models.Category, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var category models.Category
	if err := r.categories.FindOne(ctx, bson.M{"id": id}).Decode(&category); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch category %s: %w", id, err)
	}
	return &category, nil
}

// GetCategoriesByCompany retrieves all categories owned by a company.
func (r *MongoCatalogRepo) GetCategoriesByCompany(companyID string) ([]models.Category, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.categories.Find(ctx, bson.M{"company_id": companyID})
	if err != nil {
		return nil, fmt.Errorf("failed to query categories for company %s: %w", companyID, err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	if err := cursor.All(ctx, &categories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	return categories, nil
}

// SetCategoryActivation flips a category's activation flags.
func (r *MongoCatalogRepo) SetCategoryActivation(id string, active, autoDeactivated bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"is_active":        active,
		"auto_deactivated": autoDeactivated,
		"updated_at":       time.Now(),
	}}
	result, err := r.categories.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update category %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateService inserts a new company service.
func (r *MongoCatalogRepo) CreateService(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	service.CreatedAt = now
	service.UpdatedAt = now
	if _, err := r.services.InsertOne(ctx, service); err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	return nil
}

// UpdateService modifies an existing service document.
func (r *MongoCatalogRepo) UpdateService(service *models.Service) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	service.UpdatedAt = time.Now()
	result, err := r.services.UpdateOne(ctx, bson.M{"id": service.ID}, bson.M{"$set": service})
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", service.ID, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteService removes a service document by its ID.
func (r *MongoCatalogRepo) DeleteService(id string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := r.services.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete service %s: %w", id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// GetServiceByID retrieves a service by its unique ID.
func (r *MongoCatalogRepo) GetServiceByID(id string) (*models.Service, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var service models.Service
	if err := r.services.FindOne(ctx, bson.M{"id": id}).Decode(&service); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch service %s: %w", id, err)
	}
	return &service, nil
}

// GetServicesByCompany retrieves all services owned by a company.
func (r *MongoCatalogRepo) GetServicesByCompany(companyID string) ([]models.Service, error) {
	return r.findServices(bson.M{"company_id": companyID})
}

// GetServicesByMasterCategory retrieves a company's services under a master category.
func (r *MongoCatalogRepo) GetServicesByMasterCategory(companyID, masterCategoryID string) ([]models.Service, error) {
	return r.findServices(bson.M{"company_id": companyID, "master_category_id": masterCategoryID})
}

func (r *MongoCatalogRepo) findServices(filter bson.M) ([]models.Service, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.services.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.Service
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("failed to decode services: %w", err)
	}
	return services, nil
}

// SetServiceActivation flips a service's activation flags.
func (r *MongoCatalogRepo) SetServiceActivation(id string, active, autoDeactivated bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"is_active":        active,
		"auto_deactivated": autoDeactivated,
		"updated_at":       time.Now(),
	}}
	result, err := r.services.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to update service %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CountActiveByMasterCategory counts, across all companies, categories that
// reference the master category and are still active.
func (r *MongoCatalogRepo) CountActiveByMasterCategory(masterCategoryID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.categories.CountDocuments(ctx, bson.M{
		"master_category_id": masterCategoryID,
		"is_active":          true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active categories for master %s: %w", masterCategoryID, err)
	}
	return count, nil
}

// CountActiveByMasterService counts, across all companies, services that
// reference the master service and are still active.
func (r *MongoCatalogRepo) CountActiveByMasterService(masterServiceID string) (int64, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	count, err := r.services.CountDocuments(ctx, bson.M{
		"master_service_id": masterServiceID,
		"is_active":         true,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to count active services for master %s: %w", masterServiceID, err)
	}
	return count, nil
}

// SetMirrorVisibility upserts the public mirror row for a master category or service.
func (r *MongoCatalogRepo) SetMirrorVisibility(kind, masterID string, visible bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"kind": kind, "master_id": masterID}
	update := bson.M{"$set": bson.M{"visible": visible, "updated_at": time.Now()}}
	opts := options.Update().SetUpsert(true)
	if _, err := r.mirror.UpdateOne(ctx, filter, update, opts); err != nil {
		return fmt.Errorf("failed to sync mirror %s/%s: %w", kind, masterID, err)
	}
	return nil
}
