package booking

import (
	"testing"
	"time"

	"servana/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingEnqueuer struct {
	enqueued  []string
	companies []string
}

func (r *recordingEnqueuer) EnqueueExpiry(companyID, bookingID, fromStatus string) error {
	r.enqueued = append(r.enqueued, bookingID)
	r.companies = append(r.companies, companyID)
	return nil
}

func listFixture() []models.Booking {
	return []models.Booking{
		{ID: "b1", CompanyID: "c1", CustomerName: "Meera", ServiceName: "Plumbing", Date: "2025-03-10", Status: models.BookingStatusPending},
		{ID: "b2", CompanyID: "c1", CustomerName: "Arjun", ServiceName: "Electrical", Date: "2025-03-01", Status: models.BookingStatusPending},
		{ID: "b3", CompanyID: "c1", CustomerName: "Sana", ServiceName: "Plumbing", Date: "2025-03-11", Status: models.BookingStatusCompleted},
		{ID: "b4", CompanyID: "c1", CustomerName: "Vikram", ServiceName: "Cleaning", Date: "2025-03-10", Status: models.BookingStatusRejected},
	}
}

func TestListDerivesExpiryAndEnqueuesPersistence(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	repo.On("GetByCompany", "c1").Return(listFixture(), nil)
	enqueuer := &recordingEnqueuer{}

	svc := &DefaultBookingService{Repo: repo, Expiry: enqueuer, Logger: zap.NewNop()}
	views, err := svc.List("c1", ListFilter{Group: GroupAll}, now)
	require.NoError(t, err)
	require.Len(t, views, 4)

	byID := make(map[string]models.BookingView)
	for _, v := range views {
		byID[v.ID] = v
	}
	assert.Equal(t, models.BookingStatusPending, byID["b1"].DisplayStatus)
	assert.Equal(t, models.BookingStatusExpired, byID["b2"].DisplayStatus)
	assert.Equal(t, []string{"b2"}, enqueuer.enqueued, "only the fresh expiry is persisted")
	assert.Equal(t, []string{"c1"}, enqueuer.companies, "the background write stays scoped to the owner")
}

func TestListGroupFilters(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		group string
		want  []string
	}{
		{GroupAll, []string{"b1", "b2", "b3", "b4"}},
		{GroupPending, []string{"b1"}},
		{GroupCompleted, []string{"b3"}},
		{GroupClosed, []string{"b2", "b4"}},
		{GroupAssigned, nil},
	}
	for _, tt := range tests {
		t.Run(tt.group, func(t *testing.T) {
			repo := &mockBookingRepo{}
			repo.On("GetByCompany", "c1").Return(listFixture(), nil)
			svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

			views, err := svc.List("c1", ListFilter{Group: tt.group}, now)
			require.NoError(t, err)
			var ids []string
			for _, v := range views {
				ids = append(ids, v.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}
}

func TestListSearchIsCaseInsensitive(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	repo.On("GetByCompany", "c1").Return(listFixture(), nil)
	svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

	views, err := svc.List("c1", ListFilter{Group: GroupAll, Search: "plumb"}, now)
	require.NoError(t, err)
	require.Len(t, views, 2)

	views, err = svc.List("c1", ListFilter{Group: GroupAll, Search: "MEERA"}, now)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "b1", views[0].ID)

	views, err = svc.List("c1", ListFilter{Group: GroupAll, Search: "b4"}, now)
	require.NoError(t, err)
	require.Len(t, views, 1)
}

func TestListFlagsUrgentStatuses(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	repo := &mockBookingRepo{}
	repo.On("GetByCompany", "c1").Return(listFixture(), nil)
	svc := &DefaultBookingService{Repo: repo, Logger: zap.NewNop()}

	views, err := svc.List("c1", ListFilter{Group: GroupAll}, now)
	require.NoError(t, err)
	for _, v := range views {
		switch v.ID {
		case "b1":
			assert.True(t, v.Urgent)
		case "b2", "b3", "b4":
			assert.False(t, v.Urgent)
		}
	}
}
