package handlers

import (
	adminRepo "servana/database/repository/admin"
)

// HandlerBundle collects every handler the route registration needs, plus the
// admin repository the auth middleware reads sessions from.
type HandlerBundle struct {
	AdminRepo adminRepo.AdminRepository

	Auth         *AuthHandler
	Booking      *BookingHandler
	Worker       *WorkerHandler
	Notification *NotificationHandler
	Overview     *OverviewHandler
	Catalog      *CatalogHandler
	Rider        *RiderHandler
	Promo        *PromoHandler
	Storage      *StorageHandler
}
