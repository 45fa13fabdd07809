package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RegionExport records a spreadsheet written to storage so it can be served and expired
type RegionExport struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Key         string `gorm:"size:255;uniqueIndex;not null" json:"key"`
	FileName    string `gorm:"size:255;uniqueIndex;not null" json:"file_name"`
	FileSize    int64  `json:"file_size"`
	RegionCount int    `json:"region_count"`
	ActorID     string `gorm:"size:64" json:"actor_id,omitempty"`
}

// BeforeCreate hook to generate UUID
func (e *RegionExport) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	return nil
}

// TableName specifies the table name
func (RegionExport) TableName() string {
	return "region_exports"
}
