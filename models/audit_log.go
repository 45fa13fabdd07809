package models

import (
	"encoding/json"
	"reflect"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuditAction represents the type of operation performed
type AuditAction string

const (
	AuditActionCreate  AuditAction = "CREATE"
	AuditActionUpdate  AuditAction = "UPDATE"
	AuditActionDelete  AuditAction = "DELETE"
	AuditActionDiscard AuditAction = "DISCARD" // Draft abandoned without saving
	AuditActionExport  AuditAction = "EXPORT"
)

// AuditLog is an immutable record of a change pushed to the Master Data Service
type AuditLog struct {
	ID        string    `gorm:"type:uuid;primarykey" json:"id"`
	CreatedAt time.Time `gorm:"index:idx_audit_created_at" json:"created_at"`

	// Actor, taken from the credential claims. Denormalized because the users live upstream.
	ActorID   string `gorm:"size:64;index:idx_audit_actor" json:"actor_id,omitempty"`
	ActorName string `json:"actor_name,omitempty"`

	ResourceType string `gorm:"not null;index:idx_audit_resource" json:"resource_type"` // e.g. "Region", "RegionDraft"
	ResourceID   string `gorm:"index:idx_audit_resource" json:"resource_id"`
	ResourceName string `json:"resource_name,omitempty"`

	Action      AuditAction `gorm:"not null;index:idx_audit_action" json:"action"`
	Description string      `gorm:"type:text" json:"description,omitempty"`

	OldValues string `gorm:"type:text" json:"old_values,omitempty"` // JSON encoded
	NewValues string `gorm:"type:text" json:"new_values,omitempty"` // JSON encoded

	IPAddress string `json:"ip_address,omitempty"`
	UserAgent string `json:"user_agent,omitempty"`
}

// AuditChange represents a single field change
type AuditChange struct {
	Field string
	Old   interface{}
	New   interface{}
}

// Changes parses OldValues and NewValues into the fields that differ, sorted by name
func (a *AuditLog) Changes() []AuditChange {
	var changes []AuditChange
	oldMap := make(map[string]interface{})
	newMap := make(map[string]interface{})

	if a.OldValues != "" {
		_ = json.Unmarshal([]byte(a.OldValues), &oldMap)
	}
	if a.NewValues != "" {
		_ = json.Unmarshal([]byte(a.NewValues), &newMap)
	}

	keys := make(map[string]struct{})
	for k := range oldMap {
		keys[k] = struct{}{}
	}
	for k := range newMap {
		keys[k] = struct{}{}
	}

	for k := range keys {
		o := oldMap[k]
		n := newMap[k]
		if !reflect.DeepEqual(o, n) {
			changes = append(changes, AuditChange{Field: k, Old: o, New: n})
		}
	}

	sort.Slice(changes, func(i, j int) bool { return changes[i].Field < changes[j].Field })
	return changes
}

// BeforeCreate generates UUID
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	return nil
}

// BeforeUpdate prevents modification of audit logs (immutability)
func (a *AuditLog) BeforeUpdate(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// BeforeDelete prevents deletion of audit logs (immutability)
func (a *AuditLog) BeforeDelete(tx *gorm.DB) error {
	return gorm.ErrRecordNotFound
}

// TableName specifies the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}
