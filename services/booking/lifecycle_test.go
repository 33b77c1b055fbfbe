package booking

import (
	"context"
	"testing"

	bookingRepo "servana/database/repository/booking"
	"servana/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(b *models.Booking) error {
	return m.Called(b).Error(0)
}

func (m *mockBookingRepo) GetByID(companyID, id string) (*models.Booking, error) {
	args := m.Called(companyID, id)
	if b, ok := args.Get(0).(*models.Booking); ok {
		return b, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetByCompany(companyID string) ([]models.Booking, error) {
	args := m.Called(companyID)
	if bs, ok := args.Get(0).([]models.Booking); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) GetRecentByCompany(companyID string, limit int64) ([]models.Booking, error) {
	args := m.Called(companyID, limit)
	if bs, ok := args.Get(0).([]models.Booking); ok {
		return bs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBookingRepo) Transition(companyID, id, fromStatus string, fields map[string]interface{}) error {
	return m.Called(companyID, id, fromStatus, fields).Error(0)
}

func (m *mockBookingRepo) WatchInserts(ctx context.Context, companyID string) (<-chan models.Booking, func(), error) {
	return nil, func() {}, nil
}

type mockWorkerRepo struct {
	mock.Mock
}

func (m *mockWorkerRepo) Create(w *models.Worker) error { return m.Called(w).Error(0) }
func (m *mockWorkerRepo) Update(w *models.Worker) error { return m.Called(w).Error(0) }
func (m *mockWorkerRepo) Delete(id string) error        { return m.Called(id).Error(0) }

func (m *mockWorkerRepo) GetByID(id string) (*models.Worker, error) {
	args := m.Called(id)
	if w, ok := args.Get(0).(*models.Worker); ok {
		return w, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkerRepo) GetByCompany(companyID string) ([]models.Worker, error) {
	args := m.Called(companyID)
	if ws, ok := args.Get(0).([]models.Worker); ok {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkerRepo) GetActiveByCompany(companyID string) ([]models.Worker, error) {
	args := m.Called(companyID)
	if ws, ok := args.Get(0).([]models.Worker); ok {
		return ws, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockWorkerRepo) SetActive(id string, active bool) error {
	return m.Called(id, active).Error(0)
}

func (m *mockWorkerRepo) CountOtherActiveWithCategory(companyID, categoryID, excludeWorkerID string) (int64, error) {
	args := m.Called(companyID, categoryID, excludeWorkerID)
	return args.Get(0).(int64), args.Error(1)
}

func newTestService(repo *mockBookingRepo, workers *mockWorkerRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:       repo,
		WorkerRepo: workers,
		Logger:     zap.NewNop(),
	}
}

func TestAssignRequiresWorkerSelection(t *testing.T) {
	svc := newTestService(&mockBookingRepo{}, &mockWorkerRepo{})

	_, err := svc.Assign("c1", "b1", "")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAssignRejectsInactiveWorker(t *testing.T) {
	workers := &mockWorkerRepo{}
	workers.On("GetActiveByCompany", "c1").Return([]models.Worker{
		{ID: "w2", Name: "Asha", CompanyID: "c1", IsActive: true},
	}, nil)
	svc := newTestService(&mockBookingRepo{}, workers)

	_, err := svc.Assign("c1", "b1", "w1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestAssignTransitionsFromPendingOnly(t *testing.T) {
	repo := &mockBookingRepo{}
	workers := &mockWorkerRepo{}
	workers.On("GetActiveByCompany", "c1").Return([]models.Worker{
		{ID: "w1", Name: "Ravi", CompanyID: "c1", IsActive: true},
	}, nil)
	repo.On("Transition", "c1", "b1", models.BookingStatusPending, mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["status"] == models.BookingStatusAssigned &&
			fields["worker_id"] == "w1" &&
			fields["worker_name"] == "Ravi"
	})).Return(nil)
	repo.On("GetByID", "c1", "b1").Return(&models.Booking{
		ID: "b1", Status: models.BookingStatusAssigned, WorkerID: "w1", WorkerName: "Ravi",
	}, nil)

	svc := newTestService(repo, workers)
	b, err := svc.Assign("c1", "b1", "w1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusAssigned, b.Status)
	repo.AssertExpectations(t)
}

func TestAssignSurfacesStaleStatus(t *testing.T) {
	repo := &mockBookingRepo{}
	workers := &mockWorkerRepo{}
	workers.On("GetActiveByCompany", "c1").Return([]models.Worker{
		{ID: "w1", Name: "Ravi", CompanyID: "c1", IsActive: true},
	}, nil)
	repo.On("Transition", "c1", "b1", models.BookingStatusPending, mock.Anything).
		Return(bookingRepo.ErrStaleStatus)

	svc := newTestService(repo, workers)
	_, err := svc.Assign("c1", "b1", "w1")
	assert.ErrorIs(t, err, bookingRepo.ErrStaleStatus)
}

func TestStartGeneratesSixDigitCode(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("Transition", "c1", "b1", models.BookingStatusAssigned, mock.MatchedBy(func(fields map[string]interface{}) bool {
		otp, ok := fields["start_otp"].(string)
		if !ok || len(otp) != 6 {
			return false
		}
		for _, r := range otp {
			if r < '0' || r > '9' {
				return false
			}
		}
		return fields["status"] == models.BookingStatusStarted && fields["otp_verified"] == false
	})).Return(nil)
	repo.On("GetByID", "c1", "b1").Return(&models.Booking{ID: "b1", Status: models.BookingStatusStarted}, nil)

	svc := newTestService(repo, &mockWorkerRepo{})
	b, err := svc.Start("c1", "b1")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusStarted, b.Status)
	repo.AssertExpectations(t)
}

func TestCompleteRejectsWrongCodeWithoutWriting(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", "c1", "b1").Return(&models.Booking{
		ID: "b1", Status: models.BookingStatusStarted, StartOtp: "483920",
	}, nil)

	svc := newTestService(repo, &mockWorkerRepo{})
	_, err := svc.Complete("c1", "b1", "483921")
	assert.ErrorIs(t, err, ErrInvalidCode)
	repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCompleteVerifiesCodeAndClearsIt(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", "c1", "b1").Return(&models.Booking{
		ID: "b1", Status: models.BookingStatusStarted, StartOtp: "483920",
	}, nil).Once()
	repo.On("Transition", "c1", "b1", models.BookingStatusStarted, mock.MatchedBy(func(fields map[string]interface{}) bool {
		return fields["status"] == models.BookingStatusCompleted &&
			fields["otp_verified"] == true &&
			fields["start_otp"] == ""
	})).Return(nil)
	repo.On("GetByID", "c1", "b1").Return(&models.Booking{
		ID: "b1", Status: models.BookingStatusCompleted, OtpVerified: true,
	}, nil)

	svc := newTestService(repo, &mockWorkerRepo{})
	b, err := svc.Complete("c1", "b1", "483920")
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusCompleted, b.Status)
	assert.True(t, b.OtpVerified)
	repo.AssertExpectations(t)
}

func TestCompleteRequiresStartedStatus(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", "c1", "b1").Return(&models.Booking{
		ID: "b1", Status: models.BookingStatusAssigned,
	}, nil)

	svc := newTestService(repo, &mockWorkerRepo{})
	_, err := svc.Complete("c1", "b1", "483920")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
}

func TestLifecycleResolvesForeignBookingAsNotFound(t *testing.T) {
	// The repository scopes every single-booking read and write to the owning
	// company, so a session addressing another company's booking sees not
	// found and causes no transition.
	repo := &mockBookingRepo{}
	repo.On("GetByID", "c2", "b1").Return(nil, bookingRepo.ErrNotFound)
	repo.On("Transition", "c2", "b1", models.BookingStatusAssigned, mock.Anything).
		Return(bookingRepo.ErrNotFound)

	svc := newTestService(repo, &mockWorkerRepo{})

	_, err := svc.Complete("c2", "b1", "483920")
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)

	_, err = svc.Reject("c2", "b1")
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)

	_, err = svc.Start("c2", "b1")
	assert.ErrorIs(t, err, bookingRepo.ErrNotFound)

	repo.AssertNotCalled(t, "Transition", "c2", "b1", models.BookingStatusStarted, mock.Anything)
}

func TestRejectRefusesTerminalBooking(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("GetByID", "c1", "b1").Return(&models.Booking{
		ID: "b1", Status: models.BookingStatusCompleted,
	}, nil)

	svc := newTestService(repo, &mockWorkerRepo{})
	_, err := svc.Reject("c1", "b1")
	require.Error(t, err)
	assert.True(t, IsValidation(err))
	repo.AssertNotCalled(t, "Transition", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestPersistExpiryTreatsStaleAsDone(t *testing.T) {
	repo := &mockBookingRepo{}
	repo.On("Transition", "c1", "b1", models.BookingStatusPending, mock.Anything).
		Return(bookingRepo.ErrStaleStatus)

	err := PersistExpiry(repo, "c1", "b1", models.BookingStatusPending, zap.NewNop())
	assert.NoError(t, err, "a booking that already moved on is not an error")
}

func TestPersistExpiryIsIdempotent(t *testing.T) {
	repo := &mockBookingRepo{}
	// First run persists the expiry; the second finds the status already
	// changed and does nothing.
	repo.On("Transition", "c1", "b1", models.BookingStatusPending, mock.Anything).
		Return(nil).Once()
	repo.On("Transition", "c1", "b1", models.BookingStatusPending, mock.Anything).
		Return(bookingRepo.ErrStaleStatus).Once()

	require.NoError(t, PersistExpiry(repo, "c1", "b1", models.BookingStatusPending, zap.NewNop()))
	require.NoError(t, PersistExpiry(repo, "c1", "b1", models.BookingStatusPending, zap.NewNop()))
	repo.AssertExpectations(t)
}
