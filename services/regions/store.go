package regions

import (
	"errors"
	"fmt"
	"time"

	"itrack_admin/models"

	"gorm.io/gorm"
)

var (
	// ErrDraftNotFound is returned when a draft was saved, discarded or expired
	ErrDraftNotFound = errors.New("region draft not found")
	// ErrDraftConflict is returned when a draft changed since the caller read it
	ErrDraftConflict = errors.New("region draft was modified by another request")
)

// CreateDraft persists a new draft
func CreateDraft(db *gorm.DB, draft *models.RegionDraft) error {
	if err := db.Create(draft).Error; err != nil {
		return fmt.Errorf("failed to create region draft: %w", err)
	}
	return nil
}

// GetDraft loads a draft by id
func GetDraft(db *gorm.DB, id string) (*models.RegionDraft, error) {
	var draft models.RegionDraft
	if err := db.First(&draft, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, fmt.Errorf("failed to load region draft: %w", err)
	}
	return &draft, nil
}

// UpdateDraft writes every field of draft if nobody else updated it since it was
// read, and bumps its version
func UpdateDraft(db *gorm.DB, draft *models.RegionDraft) error {
	expected := draft.Version
	draft.Version = expected + 1

	result := db.Model(draft).
		Where("version = ?", expected).
		Select("*").
		Omit("id", "created_at").
		Updates(draft)
	if result.Error != nil {
		draft.Version = expected
		return fmt.Errorf("failed to update region draft: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		draft.Version = expected
		var count int64
		if err := db.Model(&models.RegionDraft{}).Where("id = ?", draft.ID).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to update region draft: %w", err)
		}
		if count == 0 {
			return ErrDraftNotFound
		}
		return ErrDraftConflict
	}

	return nil
}

// DeleteDraft removes a draft. Deleting a missing draft returns ErrDraftNotFound.
func DeleteDraft(db *gorm.DB, id string) error {
	result := db.Where("id = ?", id).Delete(&models.RegionDraft{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete region draft: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrDraftNotFound
	}
	return nil
}

// PurgeStaleDrafts deletes drafts that have not been touched for longer than ttl
func PurgeStaleDrafts(db *gorm.DB, ttl time.Duration) (int64, error) {
	cutoff := time.Now().Add(-ttl)
	result := db.Where("updated_at < ?", cutoff).Delete(&models.RegionDraft{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to purge region drafts: %w", result.Error)
	}
	return result.RowsAffected, nil
}
