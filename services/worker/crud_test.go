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

func catalogFixture(catalog *mockCatalogRepo) {
	catalog.On("GetCategoriesByCompany", "c1").Return([]models.Category{
		{ID: "cat-plumbing", CompanyID: "c1", MasterCategoryID: "m-plumbing", Name: "Plumbing"},
		{ID: "cat-cleaning", CompanyID: "c1", MasterCategoryID: "m-cleaning", Name: "Cleaning"},
	}, nil)
	catalog.On("GetServicesByCompany", "c1").Return([]models.Service{
		{ID: "s-tap", CompanyID: "c1", MasterCategoryID: "m-plumbing"},
		{ID: "s-sofa", CompanyID: "c1", MasterCategoryID: "m-cleaning"},
	}, nil)
}

func TestRegisterEnforcesServiceContainment(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	catalogFixture(catalog)
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	w := &models.Worker{
		ID: "w1", CompanyID: "c1", Name: "Ravi", Phone: "9000000000",
		AssignedCategories: []string{"cat-plumbing"},
		AssignedServices:   []string{"s-sofa"}, // belongs to cleaning
	}
	err := svc.Register(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
	workers.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRegisterAcceptsContainedServices(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	catalogFixture(catalog)
	workers.On("Create", mock.Anything).Return(nil)
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	w := &models.Worker{
		ID: "w1", CompanyID: "c1", Name: "Ravi", Phone: "9000000000",
		AadharNumber:       "123456789012",
		AssignedCategories: []string{"cat-plumbing"},
		AssignedServices:   []string{"s-tap"},
	}
	require.NoError(t, svc.Register(w))
	workers.AssertExpectations(t)
}

func TestUpdateRefusesForeignWorker(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	workers.On("GetByID", "w1").Return(&models.Worker{ID: "w1", CompanyID: "c9"}, nil)

	w := &models.Worker{ID: "w1", CompanyID: "c1", Name: "Ravi", Phone: "9000000000"}
	err := svc.Update(w)
	assert.ErrorIs(t, err, workerRepo.ErrNotFound)
	workers.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDeleteRefusesForeignWorker(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	workers.On("GetByID", "w1").Return(&models.Worker{ID: "w1", CompanyID: "c9"}, nil)

	err := svc.Delete("c1", "w1")
	assert.ErrorIs(t, err, workerRepo.ErrNotFound)
	workers.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestRegisterRejectsBadAadhar(t *testing.T) {
	workers := &mockWorkerRepo{}
	catalog := &mockCatalogRepo{}
	catalogFixture(catalog)
	svc := &DefaultWorkerService{Repo: workers, Catalog: catalog, Logger: zap.NewNop()}

	w := &models.Worker{
		ID: "w1", CompanyID: "c1", Name: "Ravi", Phone: "9000000000",
		AadharNumber: "12345",
	}
	err := svc.Register(w)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)
}
