package regions

import (
	"context"
	"errors"
	"testing"

	"itrack_admin/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dbName := "mem_" + uuid.New().String()
	testDB, err := gorm.Open(sqlite.Open("file:"+dbName+"?mode=memory&cache=shared&_busy_timeout=5000"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, testDB.AutoMigrate(&models.RegionDraft{}))
	return testDB
}

// bengaluruReference is the India / Karnataka / Bengaluru data set
func bengaluruReference() models.ReferenceSnapshot {
	return models.ReferenceSnapshot{
		Companies: []models.Company{{ID: "9", Name: "Acme Field Services"}},
		Countries: []models.Country{{ID: "1", Name: "India"}, {ID: "2", Name: "Nepal"}},
		States: []models.State{
			{ID: "KA", Name: "Karnataka", CountryID: "1"},
			{ID: "TN", Name: "Tamil Nadu", CountryID: "1"},
			{ID: "BA", Name: "Bagmati", CountryID: "2"},
		},
		Districts: []models.District{
			{ID: "BLR", Name: "Bengaluru", StateID: "KA"},
			{ID: "MYS", Name: "Mysuru", StateID: "KA"},
			{ID: "CHN", Name: "Chennai", StateID: "TN"},
		},
		Pincodes: []models.Pincode{
			{Code: "560001", DistrictID: "BLR", Assigned: false},
			{Code: "560002", DistrictID: "BLR", Assigned: true},
			{Code: "560003", DistrictID: "BLR", Assigned: false},
			{Code: "570001", DistrictID: "MYS", Assigned: false},
			{Code: "570002", DistrictID: "MYS", Assigned: false},
			{Code: "570003", DistrictID: "MYS", Assigned: true},
			{Code: "600001", DistrictID: "CHN", Assigned: false},
		},
	}
}

type fakeMasterData struct {
	ref     models.ReferenceSnapshot
	failing map[string]error

	regions map[string]*models.Region
	page    *models.RegionPage

	created   []*models.RegionPayload
	updated   map[string]*models.RegionPayload
	deleted   []string
	createErr error
	updateErr error
	deleteErr error
	getErr    error
}

func newFakeMasterData() *fakeMasterData {
	return &fakeMasterData{
		ref:     bengaluruReference(),
		failing: map[string]error{},
		regions: map[string]*models.Region{},
		updated: map[string]*models.RegionPayload{},
	}
}

func (f *fakeMasterData) ListCompanies(ctx context.Context) ([]models.Company, error) {
	if err := f.failing[DimensionCompanies]; err != nil {
		return nil, err
	}
	return f.ref.Companies, nil
}

func (f *fakeMasterData) ListCountries(ctx context.Context) ([]models.Country, error) {
	if err := f.failing[DimensionCountries]; err != nil {
		return nil, err
	}
	return f.ref.Countries, nil
}

func (f *fakeMasterData) ListStates(ctx context.Context) ([]models.State, error) {
	if err := f.failing[DimensionStates]; err != nil {
		return nil, err
	}
	return f.ref.States, nil
}

func (f *fakeMasterData) ListDistricts(ctx context.Context) ([]models.District, error) {
	if err := f.failing[DimensionDistricts]; err != nil {
		return nil, err
	}
	return f.ref.Districts, nil
}

func (f *fakeMasterData) ListPincodes(ctx context.Context) ([]models.Pincode, error) {
	if err := f.failing[DimensionPincodes]; err != nil {
		return nil, err
	}
	return f.ref.Pincodes, nil
}

func (f *fakeMasterData) ListRegions(ctx context.Context, params *models.RegionListParams) (*models.RegionPage, error) {
	if f.page == nil {
		return nil, errors.New("no page")
	}
	page := *f.page
	page.Regions = append([]models.Region(nil), f.page.Regions...)
	page.Page, page.Limit = params.Page, params.Limit
	return &page, nil
}

func (f *fakeMasterData) GetRegion(ctx context.Context, id string) (*models.Region, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	region, ok := f.regions[id]
	if !ok {
		return nil, errors.New("unexpected region id " + id)
	}
	return region, nil
}

func (f *fakeMasterData) CreateRegion(ctx context.Context, payload *models.RegionPayload) (*models.Region, error) {
	f.created = append(f.created, payload)
	if f.createErr != nil {
		return nil, f.createErr
	}
	return &models.Region{ID: "100", RegionName: payload.RegionName, Pincodes: payload.Pincodes}, nil
}

func (f *fakeMasterData) UpdateRegion(ctx context.Context, id string, payload *models.RegionPayload) (*models.Region, error) {
	f.updated[id] = payload
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return &models.Region{ID: models.FlexibleID(id), RegionName: payload.RegionName, Pincodes: payload.Pincodes}, nil
}

func (f *fakeMasterData) DeleteRegion(ctx context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return f.deleteErr
}

func newCreateDraft() *models.RegionDraft {
	return &models.RegionDraft{
		Flow:             models.DraftFlowCreate,
		SelectedPincodes: []string{},
		Reference:        bengaluruReference(),
	}
}
