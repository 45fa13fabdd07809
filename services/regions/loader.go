package regions

import (
	"context"

	"itrack_admin/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// ReferenceSource is the read side of the Master Data Service used by the editor
type ReferenceSource interface {
	ListCompanies(ctx context.Context) ([]models.Company, error)
	ListCountries(ctx context.Context) ([]models.Country, error)
	ListStates(ctx context.Context) ([]models.State, error)
	ListDistricts(ctx context.Context) ([]models.District, error)
	ListPincodes(ctx context.Context) ([]models.Pincode, error)
}

// Reference dimension names, used in load warnings
const (
	DimensionCompanies = "companies"
	DimensionCountries = "countries"
	DimensionStates    = "states"
	DimensionDistricts = "districts"
	DimensionPincodes  = "pincodes"
)

// LoadReference fetches the five lookup tables concurrently and waits for all of them.
// A failed fetch never fails the load: the table is left empty and named in Warnings.
func LoadReference(ctx context.Context, src ReferenceSource) models.ReferenceSnapshot {
	snapshot := models.ReferenceSnapshot{
		Companies: []models.Company{},
		Countries: []models.Country{},
		States:    []models.State{},
		Districts: []models.District{},
		Pincodes:  []models.Pincode{},
	}

	dimensions := []string{DimensionCompanies, DimensionCountries, DimensionStates, DimensionDistricts, DimensionPincodes}
	failed := make([]bool, len(dimensions))

	// Each task writes only its own field and its own slot in failed
	tasks := []func() error{
		func() (err error) { snapshot.Companies, err = src.ListCompanies(ctx); return },
		func() (err error) { snapshot.Countries, err = src.ListCountries(ctx); return },
		func() (err error) { snapshot.States, err = src.ListStates(ctx); return },
		func() (err error) { snapshot.Districts, err = src.ListDistricts(ctx); return },
		func() (err error) { snapshot.Pincodes, err = src.ListPincodes(ctx); return },
	}

	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			if err := task(); err != nil {
				failed[i] = true
				if ctx.Err() == nil {
					logrus.WithError(err).WithField("dimension", dimensions[i]).Warn("Failed to load reference data")
				}
			}
			return nil
		})
	}
	_ = g.Wait()

	for i, dimension := range dimensions {
		if !failed[i] {
			continue
		}
		snapshot.Warnings = append(snapshot.Warnings, dimension)
		switch dimension {
		case DimensionCompanies:
			snapshot.Companies = nil
		case DimensionCountries:
			snapshot.Countries = nil
		case DimensionStates:
			snapshot.States = nil
		case DimensionDistricts:
			snapshot.Districts = nil
		case DimensionPincodes:
			snapshot.Pincodes = nil
		}
	}

	if snapshot.Companies == nil {
		snapshot.Companies = []models.Company{}
	}
	if snapshot.Countries == nil {
		snapshot.Countries = []models.Country{}
	}
	if snapshot.States == nil {
		snapshot.States = []models.State{}
	}
	if snapshot.Districts == nil {
		snapshot.Districts = []models.District{}
	}
	if snapshot.Pincodes == nil {
		snapshot.Pincodes = []models.Pincode{}
	}

	return snapshot
}
