package worker

import (
	"testing"

	workerRepo "servana/database/repository/worker"
	"servana/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

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

type mockCatalogRepo struct {
	mock.Mock
}

func (m *mockCatalogRepo) CreateCategory(c *models.Category) error { return m.Called(c).Error(0) }
func (m *mockCatalogRepo) UpdateCategory(c *models.Category) error { return m.Called(c).Error(0) }
func (m *mockCatalogRepo) DeleteCategory(id string) error          { return m.Called(id).Error(0) }

func (m *mockCatalogRepo) GetCategoryByID(id string) (*models.Category, error) {
	args := m.Called(id)
	if c, ok := args.Get(0).(*models.Category); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogRepo) GetCategoriesByCompany(companyID string) ([]models.Category, error) {
	args := m.Called(companyID)
	if cs, ok := args.Get(0).([]models.Category); ok {
		return cs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogRepo) SetCategoryActivation(id string, active, autoDeactivated bool) error {
	return m.Called(id, active, autoDeactivated).Error(0)
}

func (m *mockCatalogRepo) CreateService(s *models.Service) error { return m.Called(s).Error(0) }
func (m *mockCatalogRepo) UpdateService(s *models.Service) error { return m.Called(s).Error(0) }
func (m *mockCatalogRepo) DeleteService(id string) error         { return m.Called(id).Error(0) }

func (m *mockCatalogRepo) GetServiceByID(id string) (*models.Service, error) {
	args := m.Called(id)
	if s, ok := args.Get(0).(*models.Service); ok {
		return s, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogRepo) GetServicesByCompany(companyID string) ([]models.Service, error) {
	args := m.Called(companyID)
	if ss, ok := args.Get(0).([]models.Service); ok {
		return ss, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogRepo) GetServicesByMasterCategory(companyID, masterCategoryID string) ([]models.Service, error) {
	args := m.Called(companyID, masterCategoryID)
	if ss, ok := args.Get(0).([]models.Service); ok {
		return ss, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockCatalogRepo) SetServiceActivation(id string, active, autoDeactivated bool) error {
	return m.Called(id, active, autoDeactivated).Error(0)
}

func (m *mockCatalogRepo) CountActiveByMasterCategory(masterCategoryID string) (int64, error) {
	args := m.Called(masterCategoryID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCatalogRepo) CountActiveByMasterService(masterServiceID string) (int64, error) {
	args := m.Called(masterServiceID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCatalogRepo) SetMirrorVisibility(kind, masterID string, visible bool) error {
	return m.Called(kind, masterID, visible).Error(0)
}

func plumbingWorker(active bool) *models.Worker {
	return &models.Worker{
		ID:                 "w2",
		CompanyID:          "c1",
		Name:               "Ravi",
		IsActive:           active,
		AssignedCategories: []string{"cat-plumbing"},
	}
}

func TestDisableLastWorkerDeactivatesCategoryAndHidesMirror(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	workers.On("GetByID", "w2").Return(plumbingWorker(true), nil)
	workers.On("SetActive", "w2", false).Return(nil)
	workers.On("CountOtherActiveWithCategory", "c1", "cat-plumbing", "w2").Return(int64(0), nil)

	catalog.On("GetCategoryByID", "cat-plumbing").Return(&models.Category{
		ID: "cat-plumbing", CompanyID: "c1", MasterCategoryID: "m-plumbing", Name: "Plumbing", IsActive: true,
	}, nil)
	catalog.On("SetCategoryActivation", "cat-plumbing", false, true).Return(nil)
	catalog.On("GetServicesByMasterCategory", "c1", "m-plumbing").Return([]models.Service{
		{ID: "s1", MasterServiceID: "m-tap", IsActive: true},
		{ID: "s2", MasterServiceID: "m-pipe", IsActive: true},
	}, nil)
	catalog.On("SetServiceActivation", "s1", false, true).Return(nil)
	catalog.On("SetServiceActivation", "s2", false, true).Return(nil)

	// No company anywhere keeps Plumbing active, so the mirror hides it.
	catalog.On("CountActiveByMasterCategory", "m-plumbing").Return(int64(0), nil)
	catalog.On("SetMirrorVisibility", models.MirrorKindCategory, "m-plumbing", false).Return(nil)
	catalog.On("CountActiveByMasterService", "m-tap").Return(int64(0), nil)
	catalog.On("SetMirrorVisibility", models.MirrorKindService, "m-tap", false).Return(nil)
	catalog.On("CountActiveByMasterService", "m-pipe").Return(int64(1), nil)
	catalog.On("SetMirrorVisibility", models.MirrorKindService, "m-pipe", true).Return(nil)

	affected, err := svc.SetActive("c1", "w2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbing"}, affected)
	catalog.AssertExpectations(t)
	workers.AssertExpectations(t)
}

func TestDisableWithAnotherActiveWorkerIsANoOp(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	workers.On("GetByID", "w2").Return(plumbingWorker(true), nil)
	workers.On("SetActive", "w2", false).Return(nil)
	workers.On("CountOtherActiveWithCategory", "c1", "cat-plumbing", "w2").Return(int64(1), nil)

	affected, err := svc.SetActive("c1", "w2", false)
	require.NoError(t, err)
	assert.Empty(t, affected)
	catalog.AssertNotCalled(t, "SetCategoryActivation", mock.Anything, mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "SetMirrorVisibility", mock.Anything, mock.Anything, mock.Anything)
}

func TestDisableIsIdempotent(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	// Second run: the worker is already inactive, the category and services
	// already deactivated. Nothing is written.
	workers.On("GetByID", "w2").Return(plumbingWorker(false), nil)
	workers.On("CountOtherActiveWithCategory", "c1", "cat-plumbing", "w2").Return(int64(0), nil)
	catalog.On("GetCategoryByID", "cat-plumbing").Return(&models.Category{
		ID: "cat-plumbing", CompanyID: "c1", MasterCategoryID: "m-plumbing", Name: "Plumbing",
		IsActive: false, AutoDeactivated: true,
	}, nil)
	catalog.On("GetServicesByMasterCategory", "c1", "m-plumbing").Return([]models.Service{
		{ID: "s1", MasterServiceID: "m-tap", IsActive: false, AutoDeactivated: true},
	}, nil)

	affected, err := svc.SetActive("c1", "w2", false)
	require.NoError(t, err)
	assert.Empty(t, affected)
	workers.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "SetCategoryActivation", mock.Anything, mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "SetServiceActivation", mock.Anything, mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "SetMirrorVisibility", mock.Anything, mock.Anything, mock.Anything)
}

func TestEnableReactivatesCategoryAndServices(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	workers.On("GetByID", "w2").Return(plumbingWorker(false), nil)
	workers.On("SetActive", "w2", true).Return(nil)
	catalog.On("GetCategoryByID", "cat-plumbing").Return(&models.Category{
		ID: "cat-plumbing", CompanyID: "c1", MasterCategoryID: "m-plumbing", Name: "Plumbing",
		IsActive: false, AutoDeactivated: true,
	}, nil)
	catalog.On("SetCategoryActivation", "cat-plumbing", true, false).Return(nil)
	catalog.On("GetServicesByMasterCategory", "c1", "m-plumbing").Return([]models.Service{
		{ID: "s1", MasterServiceID: "m-tap", IsActive: false, AutoDeactivated: true},
	}, nil)
	catalog.On("SetServiceActivation", "s1", true, false).Return(nil)

	catalog.On("CountActiveByMasterCategory", "m-plumbing").Return(int64(1), nil)
	catalog.On("SetMirrorVisibility", models.MirrorKindCategory, "m-plumbing", true).Return(nil)
	catalog.On("CountActiveByMasterService", "m-tap").Return(int64(1), nil)
	catalog.On("SetMirrorVisibility", models.MirrorKindService, "m-tap", true).Return(nil)

	affected, err := svc.SetActive("c1", "w2", true)
	require.NoError(t, err)
	assert.Equal(t, []string{"Plumbing"}, affected)
	catalog.AssertExpectations(t)
}

func TestSetActiveRefusesForeignWorker(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	// The worker exists but belongs to another company; the session sees not
	// found and no cascade runs.
	workers.On("GetByID", "w2").Return(plumbingWorker(true), nil)

	_, err := svc.SetActive("c2", "w2", false)
	assert.ErrorIs(t, err, workerRepo.ErrNotFound)
	workers.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "SetCategoryActivation", mock.Anything, mock.Anything, mock.Anything)
	catalog.AssertNotCalled(t, "SetMirrorVisibility", mock.Anything, mock.Anything, mock.Anything)
}

func TestPartialFailureAbortsOnlyThatCategory(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	w := &models.Worker{
		ID: "w2", CompanyID: "c1", Name: "Ravi", IsActive: true,
		AssignedCategories: []string{"cat-a", "cat-b"},
	}
	workers.On("GetByID", "w2").Return(w, nil)
	workers.On("SetActive", "w2", false).Return(nil)

	// cat-a fails at the category read; cat-b succeeds.
	workers.On("CountOtherActiveWithCategory", "c1", "cat-a", "w2").Return(int64(0), nil)
	catalog.On("GetCategoryByID", "cat-a").Return(nil, assert.AnError)

	workers.On("CountOtherActiveWithCategory", "c1", "cat-b", "w2").Return(int64(0), nil)
	catalog.On("GetCategoryByID", "cat-b").Return(&models.Category{
		ID: "cat-b", CompanyID: "c1", MasterCategoryID: "m-b", Name: "Cleaning", IsActive: true,
	}, nil)
	catalog.On("SetCategoryActivation", "cat-b", false, true).Return(nil)
	catalog.On("GetServicesByMasterCategory", "c1", "m-b").Return([]models.Service{}, nil)
	catalog.On("CountActiveByMasterCategory", "m-b").Return(int64(0), nil)
	catalog.On("SetMirrorVisibility", models.MirrorKindCategory, "m-b", false).Return(nil)

	affected, err := svc.SetActive("c1", "w2", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cleaning"}, affected)
}
