package promoRepo

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

// ErrNotFound is returned when no promo document matches the given id.
var ErrNotFound = errors.New("promo entry not found")

// PromoRepository defines storage operations for coupons, banners, hotspots
// and push campaigns. They are all single-entity CRUD with no derived state.
type PromoRepository interface {
	CreateCoupon(coupon *models.Coupon) error
	UpdateCoupon(coupon *models.Coupon) error
	DeleteCoupon(id string) error
	GetCoupons() ([]models.Coupon, error)

	CreateBanner(banner *models.Banner) error
	DeleteBanner(id string) error
	GetBanners() ([]models.Banner, error)

	CreateHotspot(hotspot *models.Hotspot) error
	UpdateHotspot(hotspot *models.Hotspot) error
	DeleteHotspot(id string) error
	GetHotspots() ([]models.Hotspot, error)

	CreateCampaign(campaign *models.PushCampaign) error
	GetCampaignByID(id string) (*models.PushCampaign, error)
	SetCampaignStatus(id, status string, sentAt *time.Time) error
}

// MongoPromoRepo implements PromoRepository using MongoDB.
type MongoPromoRepo struct {
	coupons   *mongo.Collection
	banners   *mongo.Collection
	hotspots  *mongo.Collection
	campaigns *mongo.Collection
}

// NewMongoPromoRepo creates a new PromoRepository backed by MongoDB.
func NewMongoPromoRepo() PromoRepository {
	repo := &MongoPromoRepo{
		coupons:   database.Collection("coupons"),
		banners:   database.Collection("banners"),
		hotspots:  database.Collection("hotspots"),
		campaigns: database.Collection("push_campaigns"),
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, coll := range []*mongo.Collection{repo.coupons, repo.banners, repo.hotspots, repo.campaigns} {
		if _, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetUnique(true),
		}); err != nil {
			fmt.Printf("failed to create promo indexes: %v\n", err)
		}
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

func insertOne(coll *mongo.Collection, doc interface{}, what string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create %s: %w", what, err)
	}
	return nil
}

func updateByID(coll *mongo.Collection, id string, doc interface{}, what string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := coll.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", what, id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func deleteByID(coll *mongo.Collection, id, what string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	result, err := coll.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", what, id, err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateCoupon inserts a new coupon document.
func (r *MongoPromoRepo) CreateCoupon(coupon *models.Coupon) error {
	now := time.Now()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	return insertOne(r.coupons, coupon, "coupon")
}

// UpdateCoupon modifies an existing coupon document.
func (r *MongoPromoRepo) UpdateCoupon(coupon *models.Coupon) error {
	coupon.UpdatedAt = time.Now()
	return updateByID(r.coupons, coupon.ID, coupon, "coupon")
}

// DeleteCoupon removes a coupon document by its ID.
func (r *MongoPromoRepo) DeleteCoupon(id string) error {
	return deleteByID(r.coupons, id, "coupon")
}

// GetCoupons retrieves every coupon.
func (r *MongoPromoRepo) GetCoupons() ([]models.Coupon, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.coupons.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer cursor.Close(ctx)

	var coupons []models.Coupon
	if err := cursor.All(ctx, &coupons); err != nil {
		return nil, fmt.Errorf("failed to decode coupons: %w", err)
	}
	return coupons, nil
}

// CreateBanner inserts a new banner document.
func (r *MongoPromoRepo) CreateBanner(banner *models.Banner) error {
	now := time.Now()
	banner.CreatedAt = now
	banner.UpdatedAt = now
	return insertOne(r.banners, banner, "banner")
}

// DeleteBanner removes a banner document by its ID.
func (r *MongoPromoRepo) DeleteBanner(id string) error {
	return deleteByID(r.banners, id, "banner")
}

// GetBanners retrieves every banner.
func (r *MongoPromoRepo) GetBanners() ([]models.Banner, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.banners.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer cursor.Close(ctx)

	var banners []models.Banner
	if err := cursor.All(ctx, &banners); err != nil {
		return nil, fmt.Errorf("failed to decode banners: %w", err)
	}
	return banners, nil
}

// CreateHotspot inserts a new hotspot document.
func (r *MongoPromoRepo) CreateHotspot(hotspot *models.Hotspot) error {
	now := time.Now()
	hotspot.CreatedAt = now
	hotspot.UpdatedAt = now
	return insertOne(r.hotspots, hotspot, "hotspot")
}

// UpdateHotspot modifies an existing hotspot document.
func (r *MongoPromoRepo) UpdateHotspot(hotspot *models.Hotspot) error {
	hotspot.UpdatedAt = time.Now()
	return updateByID(r.hotspots, hotspot.ID, hotspot, "hotspot")
}

// DeleteHotspot removes a hotspot document by its ID.
func (r *MongoPromoRepo) DeleteHotspot(id string) error {
	return deleteByID(r.hotspots, id, "hotspot")
}

// GetHotspots retrieves every hotspot.
func (r *MongoPromoRepo) GetHotspots() ([]models.Hotspot, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	cursor, err := r.hotspots.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("failed to query hotspots: %w", err)
	}
	defer cursor.Close(ctx)

	var hotspots []models.Hotspot
	if err := cursor.All(ctx, &hotspots); err != nil {
		return nil, fmt.Errorf("failed to decode hotspots: %w", err)
	}
	return hotspots, nil
}

// CreateCampaign inserts a new push campaign document.
func (r *MongoPromoRepo) CreateCampaign(campaign *models.PushCampaign) error {
	campaign.CreatedAt = time.Now()
	return insertOne(r.campaigns, campaign, "push campaign")
}

// GetCampaignByID retrieves a push campaign by its unique ID.
func (r *MongoPromoRepo) GetCampaignByID(id string) (*models.PushCampaign, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var campaign models.PushCampaign
	if err := r.campaigns.FindOne(ctx, bson.M{"id": id}).Decode(&campaign); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to fetch push campaign %s: %w", id, err)
	}
	return &campaign, nil
}

// SetCampaignStatus records the fanout outcome of a push campaign.
func (r *MongoPromoRepo) SetCampaignStatus(id, status string, sentAt *time.Time) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	fields := bson.M{"status": status}
	if sentAt != nil {
		fields["sent_at"] = sentAt
	}
	result, err := r.campaigns.UpdateOne(ctx, bson.M{"id": id}, bson.M{"$set": fields})
	if err != nil {
		return fmt.Errorf("failed to update push campaign %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
