// Package overview derives the service-dashboard statistics by reducing the
// company's booking list. It owns no state of its own.
package overview

import (
	"fmt"
	"sort"
	"time"

	bookingRepo "servana/database/repository/booking"
	"servana/models"
	"servana/services/booking"
)

// DayCount is one bucket of the weekly chart.
type DayCount struct {
	Date  string `json:"date"` // "YYYY-MM-DD"
	Count int    `json:"count"`
}

// ServiceCount ranks a service by booking volume.
type ServiceCount struct {
	ServiceName string `json:"serviceName"`
	Count       int    `json:"count"`
}

// Stats is the overview payload for one company.
type Stats struct {
	Weekly       []DayCount     `json:"weekly"`
	TopServices  []ServiceCount `json:"topServices"`
	Revenue      float64        `json:"revenue"`
	StatusCounts map[string]int `json:"statusCounts"`
}

// TopServiceLimit caps the ranked service list.
const TopServiceLimit = 5

// Compute reduces a booking slice into overview stats at the given instant.
// Statuses are the derived display statuses, so lazily expired bookings count
// as expired here too.
func Compute(bookings []models.Booking, now time.Time) Stats {
	stats := Stats{
		StatusCounts: make(map[string]int),
	}

	// Seed the last seven days, oldest first.
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayIndex := make(map[string]int, 7)
	for i := 6; i >= 0; i-- {
		date := today.AddDate(0, 0, -i).Format("2006-01-02")
		dayIndex[date] = len(stats.Weekly)
		stats.Weekly = append(stats.Weekly, DayCount{Date: date})
	}

	serviceCounts := make(map[string]int)
	for _, b := range bookings {
		status := booking.DeriveDisplayStatus(b, now)
		stats.StatusCounts[status]++

		if status == models.BookingStatusCompleted {
			stats.Revenue += b.TotalPrice
		}
		if idx, ok := dayIndex[b.Date]; ok {
			stats.Weekly[idx].Count++
		}
		if b.ServiceName != "" {
			serviceCounts[b.ServiceName]++
		}
	}

	for name, count := range serviceCounts {
		stats.TopServices = append(stats.TopServices, ServiceCount{ServiceName: name, Count: count})
	}
	sort.Slice(stats.TopServices, func(i, j int) bool {
		if stats.TopServices[i].Count != stats.TopServices[j].Count {
			return stats.TopServices[i].Count > stats.TopServices[j].Count
		}
		return stats.TopServices[i].ServiceName < stats.TopServices[j].ServiceName
	})
	if len(stats.TopServices) > TopServiceLimit {
		stats.TopServices = stats.TopServices[:TopServiceLimit]
	}
	return stats
}

// OverviewService fetches and reduces booking data for the dashboard.
type OverviewService interface {
	ForCompany(companyID string, now time.Time) (*Stats, error)
}

// DefaultOverviewService implements OverviewService.
type DefaultOverviewService struct {
	Repo bookingRepo.BookingRepository
}

// ForCompany computes overview stats from the company's bookings.
func (svc *DefaultOverviewService) ForCompany(companyID string, now time.Time) (*Stats, error) {
	bookings, err := svc.Repo.GetByCompany(companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load bookings for overview: %w", err)
	}
	stats := Compute(bookings, now)
	return &stats, nil
}
