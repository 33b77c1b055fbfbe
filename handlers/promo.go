package handlers

import (
	"errors"
	"net/http"
	"time"

	promoRepo "servana/database/repository/promo"
	"servana/models"
	"servana/services/storage"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CampaignEnqueuer hands a stored push campaign to the background worker.
type CampaignEnqueuer interface {
	EnqueueCampaign(campaignID string) error
}

// PromoHandler exposes the marketplace promotion surfaces: coupons, banners,
// hotspots and push campaigns.
type PromoHandler struct {
	Repo      promoRepo.PromoRepository
	Storage   storage.StorageService
	Campaigns CampaignEnqueuer
}

// NewPromoHandler creates a PromoHandler.
func NewPromoHandler(repo promoRepo.PromoRepository, store storage.StorageService, campaigns CampaignEnqueuer) *PromoHandler {
	return &PromoHandler{Repo: repo, Storage: store, Campaigns: campaigns}
}

// CreateCouponHandler registers a new coupon code.
func (h *PromoHandler) CreateCouponHandler(c *gin.Context) {
	var input models.Coupon
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = uuid.New().String()
	input.IsActive = true
	if err := input.Validate(time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Repo.CreateCoupon(&input); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"coupon": input})
}

// UpdateCouponHandler rewrites an existing coupon.
func (h *PromoHandler) UpdateCouponHandler(c *gin.Context) {
	var input models.Coupon
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	input.ID = c.Param("id")
	if err := input.Validate(time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.Repo.UpdateCoupon(&input); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupon": input})
}

// DeleteCouponHandler removes a coupon.
func (h *PromoHandler) DeleteCouponHandler(c *gin.Context) {
	if err := h.Repo.DeleteCoupon(c.Param("id")); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListCouponsHandler returns every coupon.
func (h *PromoHandler) ListCouponsHandler(c *gin.Context) {
	coupons, err := h.Repo.GetCoupons()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load coupons, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"coupons": coupons})
}

// bannerInput binds from multipart form; the image is mandatory for banners.
type bannerInput struct {
	Title     string `form:"title" json:"title" binding:"required"`
	TargetURL string `form:"targetUrl" json:"targetUrl"`
}

// CreateBannerHandler registers a new promotional banner with its image.
func (h *PromoHandler) CreateBannerHandler(c *gin.Context) {
	var input bannerInput
	if err := c.ShouldBind(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	imageID, uploaded, err := savePhoto(c, h.Storage, "banners")
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "image upload failed, try again"})
		return
	}
	if !uploaded {
		c.JSON(http.StatusBadRequest, gin.H{"error": "banner image is required"})
		return
	}

	banner := models.Banner{
		ID:        uuid.New().String(),
		Title:     input.Title,
		ImageID:   imageID,
		TargetURL: input.TargetURL,
		IsActive:  true,
	}
	if err := h.Repo.CreateBanner(&banner); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"banner": banner})
}

// DeleteBannerHandler removes a banner.
func (h *PromoHandler) DeleteBannerHandler(c *gin.Context) {
	if err := h.Repo.DeleteBanner(c.Param("id")); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListBannersHandler returns every banner.
func (h *PromoHandler) ListBannersHandler(c *gin.Context) {
	banners, err := h.Repo.GetBanners()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load banners, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"banners": banners})
}

// CreateHotspotHandler registers a new delivery zone.
func (h *PromoHandler) CreateHotspotHandler(c *gin.Context) {
	var input models.Hotspot
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Name == "" || input.RadiusKM <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hotspot needs a name and a positive radius"})
		return
	}
	input.ID = uuid.New().String()
	input.IsActive = true

	if err := h.Repo.CreateHotspot(&input); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"hotspot": input})
}

// UpdateHotspotHandler rewrites an existing hotspot.
func (h *PromoHandler) UpdateHotspotHandler(c *gin.Context) {
	var input models.Hotspot
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}
	if input.Name == "" || input.RadiusKM <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "hotspot needs a name and a positive radius"})
		return
	}
	input.ID = c.Param("id")

	if err := h.Repo.UpdateHotspot(&input); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotspot": input})
}

// DeleteHotspotHandler removes a hotspot.
func (h *PromoHandler) DeleteHotspotHandler(c *gin.Context) {
	if err := h.Repo.DeleteHotspot(c.Param("id")); err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "deleted"})
}

// ListHotspotsHandler returns every hotspot.
func (h *PromoHandler) ListHotspotsHandler(c *gin.Context) {
	hotspots, err := h.Repo.GetHotspots()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load hotspots, try again"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"hotspots": hotspots})
}

// SendCampaignHandler stores a push campaign and hands it to the background
// worker for fanout. The response reports "queued"; the worker records the
// final sent/failed status on the document.
func (h *PromoHandler) SendCampaignHandler(c *gin.Context) {
	var input struct {
		Title string `json:"title" binding:"required"`
		Body  string `json:"body" binding:"required"`
		Topic string `json:"topic" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	campaign := models.PushCampaign{
		ID:     uuid.New().String(),
		Title:  input.Title,
		Body:   input.Body,
		Topic:  input.Topic,
		Status: "queued",
	}
	if err := h.Repo.CreateCampaign(&campaign); err != nil {
		respondPromoError(c, err)
		return
	}
	if err := h.Campaigns.EnqueueCampaign(campaign.ID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue campaign, try again"})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"campaign": campaign})
}

// GetCampaignHandler returns one campaign with its fanout status.
func (h *PromoHandler) GetCampaignHandler(c *gin.Context) {
	campaign, err := h.Repo.GetCampaignByID(c.Param("id"))
	if err != nil {
		respondPromoError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"campaign": campaign})
}

func respondPromoError(c *gin.Context, err error) {
	if errors.Is(err, promoRepo.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "entry not found"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "operation failed, try again"})
}
