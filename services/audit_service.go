package services

import (
	"encoding/json"
	"fmt"
	"time"

	"itrack_admin/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Resource types recorded in the audit log
const (
	AuditResourceRegion      = "Region"
	AuditResourceRegionDraft = "RegionDraft"
)

// AuditContext contains contextual information for audit logging
type AuditContext struct {
	ActorID   string
	ActorName string
	IPAddress string
	UserAgent string
}

// AuditEvent describes one change to record
type AuditEvent struct {
	Action       models.AuditAction
	ResourceType string
	ResourceID   string
	ResourceName string
	Description  string
	OldValues    interface{}
	NewValues    interface{}
}

// RecordAuditEvent writes an audit entry synchronously
func RecordAuditEvent(db *gorm.DB, ctx AuditContext, event AuditEvent) error {
	auditLog := models.AuditLog{
		ActorID:      ctx.ActorID,
		ActorName:    ctx.ActorName,
		ResourceType: event.ResourceType,
		ResourceID:   event.ResourceID,
		ResourceName: event.ResourceName,
		Action:       event.Action,
		Description:  event.Description,
		OldValues:    encodeAuditValues(event.OldValues),
		NewValues:    encodeAuditValues(event.NewValues),
		IPAddress:    ctx.IPAddress,
		UserAgent:    ctx.UserAgent,
	}

	if err := db.Create(&auditLog).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// LogAuditEvent creates a new audit log entry asynchronously
func LogAuditEvent(db *gorm.DB, ctx AuditContext, event AuditEvent) {
	// Run in goroutine to avoid blocking the request
	go func() {
		if err := RecordAuditEvent(db, ctx, event); err != nil {
			logrus.WithError(err).WithFields(logrus.Fields{
				"action":        event.Action,
				"resource_type": event.ResourceType,
				"resource_id":   event.ResourceID,
			}).Error("Audit write failed")
		}
	}()
}

func encodeAuditValues(v interface{}) string {
	if v == nil {
		return ""
	}
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// GetResourceAuditHistory retrieves the audit history for a specific resource, newest first
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditLog, error) {
	var logs []models.AuditLog
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// AuditLogFilters contains filter options for audit log queries
type AuditLogFilters struct {
	ActorID      string
	ResourceType string
	Action       string
	DateFrom     time.Time
	DateTo       time.Time
	SearchQuery  string
}

// GetAuditLogs retrieves paginated audit logs
func GetAuditLogs(db *gorm.DB, filters AuditLogFilters, page, pageSize int) ([]models.AuditLog, int64, error) {
	query := db.Model(&models.AuditLog{})

	if filters.ActorID != "" {
		query = query.Where("actor_id = ?", filters.ActorID)
	}
	if filters.ResourceType != "" {
		query = query.Where("resource_type = ?", filters.ResourceType)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}
	if filters.SearchQuery != "" {
		searchPattern := "%" + filters.SearchQuery + "%"
		query = query.Where(
			"resource_name LIKE ? OR description LIKE ? OR actor_name LIKE ?",
			searchPattern, searchPattern, searchPattern,
		)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	var logs []models.AuditLog
	err := query.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&logs).Error

	return logs, total, err
}
