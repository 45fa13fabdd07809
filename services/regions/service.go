package regions

import (
	"context"
	"fmt"

	"itrack_admin/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// MasterData is everything the region screens need from the Master Data Service
type MasterData interface {
	ReferenceSource
	RegionWriter
	ListRegions(ctx context.Context, params *models.RegionListParams) (*models.RegionPage, error)
	GetRegion(ctx context.Context, id string) (*models.Region, error)
	DeleteRegion(ctx context.Context, id string) error
}

// StartCreate opens an empty draft backed by a fresh reference snapshot
func StartCreate(ctx context.Context, db *gorm.DB, md MasterData) (*models.RegionDraft, error) {
	ref := LoadReference(ctx, md)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	draft := &models.RegionDraft{
		Flow:             models.DraftFlowCreate,
		Active:           true,
		SelectedPincodes: []string{},
		Reference:        ref,
	}
	if err := CreateDraft(db, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// StartEdit opens a draft hydrated from an existing region. Reference data is
// loaded first because classifying the saved pincodes needs the full table.
func StartEdit(ctx context.Context, db *gorm.DB, md MasterData, regionID string) (*models.RegionDraft, error) {
	ref := LoadReference(ctx, md)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	region, err := md.GetRegion(ctx, regionID)
	if err != nil {
		return nil, err
	}

	sel := Hydrate(region)
	draft := &models.RegionDraft{
		Flow:               models.DraftFlowEdit,
		RegionID:           region.ID.String(),
		RegionName:         region.RegionName,
		CompanyID:          region.CompanyID.String(),
		Active:             bool(region.Active),
		OriginalDistrictID: sel.DistrictID,
		OriginalPincodes:   append([]string{}, sel.Selected...),
		Reference:          ref,
	}
	NewEditor(draft).setSelection(sel)

	if err := CreateDraft(db, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Mutate loads a draft, applies fn and stores the result. A positive
// expectedVersion must match the stored version or ErrDraftConflict is returned.
func Mutate(db *gorm.DB, draftID string, expectedVersion int, fn func(*Editor) error) (*models.RegionDraft, error) {
	draft, err := GetDraft(db, draftID)
	if err != nil {
		return nil, err
	}
	if expectedVersion > 0 && draft.Version != expectedVersion {
		return nil, ErrDraftConflict
	}

	if err := fn(NewEditor(draft)); err != nil {
		return nil, err
	}
	if err := UpdateDraft(db, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// SaveDraft submits a draft and discards it once the service accepted it.
// On failure the draft stays untouched.
func SaveDraft(ctx context.Context, db *gorm.DB, md RegionWriter, draftID string) (*models.RegionDraft, *SaveResult, error) {
	draft, err := GetDraft(db, draftID)
	if err != nil {
		return nil, nil, err
	}

	result, err := Save(ctx, md, draft)
	if err != nil {
		return draft, nil, err
	}

	if err := DeleteDraft(db, draft.ID); err != nil {
		// The region is saved; a leftover draft is purged later
		logrus.WithError(err).WithField("draft_id", draft.ID).Warn("Failed to discard saved region draft")
	}
	return draft, result, nil
}

// DeleteRegion removes a region from the Master Data Service
func DeleteRegion(ctx context.Context, md MasterData, regionID string) error {
	if regionID == "" {
		return fmt.Errorf("region id is required")
	}
	return md.DeleteRegion(ctx, regionID)
}
