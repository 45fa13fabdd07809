package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DraftFlow distinguishes a brand-new region from an edit of an existing one
type DraftFlow string

const (
	DraftFlowCreate DraftFlow = "create"
	DraftFlowEdit   DraftFlow = "edit"
)

// RegionDraft is the in-progress form state of one region editing session.
// It lives in the local database only until the region is saved or discarded.
type RegionDraft struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`

	Flow     DraftFlow `gorm:"size:10;not null" json:"flow"`
	RegionID string    `gorm:"size:64" json:"region_id,omitempty"` // Empty on the create flow

	RegionName string `gorm:"size:100" json:"region_name"`
	CompanyID  string `gorm:"size:64" json:"company_id"`
	CountryID  string `gorm:"size:64" json:"country_id"`
	StateID    string `gorm:"size:64" json:"state_id"`
	DistrictID string `gorm:"size:64" json:"district_id"`
	Active     bool   `json:"active"`

	// Selected pincodes in click order
	SelectedPincodes []string `gorm:"serializer:json;type:text" json:"selected_pincodes"`

	// Edit flow: the district and pincodes the region was saved with.
	// These codes stay selectable for that district even though the service marks them assigned.
	OriginalDistrictID string   `gorm:"size:64" json:"original_district_id,omitempty"`
	OriginalPincodes   []string `gorm:"serializer:json;type:text" json:"original_pincodes,omitempty"`

	Reference ReferenceSnapshot `gorm:"serializer:json;type:text" json:"-"`

	// Version guards against two requests overwriting each other's changes
	Version int `gorm:"not null;default:1" json:"version"`
}

// BeforeCreate hook to generate UUID
func (d *RegionDraft) BeforeCreate(tx *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	if d.Version == 0 {
		d.Version = 1
	}
	return nil
}

// TableName specifies the table name
func (RegionDraft) TableName() string {
	return "region_drafts"
}

// IsEdit reports whether the draft edits an existing region
func (d *RegionDraft) IsEdit() bool {
	return d.Flow == DraftFlowEdit && d.RegionID != ""
}
