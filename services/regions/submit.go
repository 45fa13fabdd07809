package regions

import (
	"context"
	"errors"
	"fmt"
	"html"
	"net/http"
	"strings"

	"itrack_admin/models"
	"itrack_admin/services/masterdata"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
)

// RegionWriter is the write side of the Master Data Service
type RegionWriter interface {
	CreateRegion(ctx context.Context, payload *models.RegionPayload) (*models.Region, error)
	UpdateRegion(ctx context.Context, id string, payload *models.RegionPayload) (*models.Region, error)
}

// Operation names the user action an error message is written for
type Operation string

const (
	OpCreate Operation = "create"
	OpUpdate Operation = "update"
	OpDelete Operation = "delete"
	OpLoad   Operation = "load"
)

// User-facing messages
const (
	MsgCreated        = "Region created successfully"
	MsgUpdated        = "Region updated successfully"
	MsgDeleted        = "Region deleted successfully"
	MsgNotFound       = "Region not found. It may have already been deleted."
	MsgForbidden      = "You do not have permission to perform this action."
	MsgAlreadyExists  = "Region already exists. Please use a different name."
	MsgPincodesMapped = "Some pincodes are already mapped to a region."
	MsgSaveFailed     = "Failed to save region. Please try again."
	MsgDeleteFailed   = "Failed to delete region. Please try again."
	MsgLoadFailed     = "Failed to load region. Please try again."
	MsgDraftExpired   = "This form has expired. Please start again."
	MsgDraftConflict  = "This form was changed in another tab. Please reload it."
)

var (
	validate   = validator.New()
	namePolicy = bluemonday.StrictPolicy()
)

// ValidationError lists the form inputs that are missing or invalid
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Problems, " ")
}

var fieldMessages = map[string]string{
	"RegionName": "Region name is required.",
	"CompanyID":  "Please select a company.",
	"CountryID":  "Please select a country.",
	"StateID":    "Please select a state.",
	"DistrictID": "Please select a district.",
	"Pincodes":   "Please select at least one pincode.",
}

// ValidatePayload checks the payload locally before it is sent
func ValidatePayload(payload *models.RegionPayload) error {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("failed to validate region: %w", err)
	}

	verr := &ValidationError{}
	seen := make(map[string]bool)
	for _, fe := range fieldErrs {
		field := fe.StructField()
		if seen[field] {
			continue
		}
		seen[field] = true

		msg, ok := fieldMessages[field]
		if field == "RegionName" && fe.Tag() == "max" {
			msg, ok = "Region name must be at most 100 characters.", true
		}
		if !ok {
			msg = fmt.Sprintf("%s is invalid.", field)
		}
		verr.Problems = append(verr.Problems, msg)
	}
	return verr
}

// maxSanitizePasses bounds how many layers of entity encoding SanitizeName peels
const maxSanitizePasses = 5

// SanitizeName strips markup from a region name and returns plain text.
// Entities are decoded before each pass, so encoded tags are removed like literal ones.
func SanitizeName(name string) string {
	text := name
	for pass := 0; pass < maxSanitizePasses; pass++ {
		next := html.UnescapeString(namePolicy.Sanitize(html.UnescapeString(text)))
		if next == text {
			return strings.TrimSpace(text)
		}
		text = next
	}
	return strings.TrimSpace(strings.NewReplacer("<", "", ">", "").Replace(text))
}

// SaveResult describes a successful save
type SaveResult struct {
	Region  *models.Region
	Created bool
	Message string
}

// Save submits the draft: a create when it has no region id, an update otherwise.
// The draft itself is never modified, so a failed save can be corrected and retried.
func Save(ctx context.Context, w RegionWriter, draft *models.RegionDraft) (*SaveResult, error) {
	payload := NewEditor(draft).Payload()
	payload.RegionName = SanitizeName(payload.RegionName)

	if err := ValidatePayload(payload); err != nil {
		return nil, err
	}

	if !draft.IsEdit() {
		region, err := w.CreateRegion(ctx, payload)
		if err != nil {
			return nil, err
		}
		return &SaveResult{Region: region, Created: true, Message: MsgCreated}, nil
	}

	region, err := w.UpdateRegion(ctx, draft.RegionID, payload)
	if err != nil {
		return nil, err
	}
	return &SaveResult{Region: region, Message: MsgUpdated}, nil
}

// ErrorMessage maps a failure of op to the message shown to the user
func ErrorMessage(op Operation, err error) string {
	var verr *ValidationError
	if errors.As(err, &verr) {
		return verr.Error()
	}
	if errors.Is(err, ErrDraftNotFound) {
		return MsgDraftExpired
	}
	if errors.Is(err, ErrDraftConflict) {
		return MsgDraftConflict
	}

	switch masterdata.StatusCode(err) {
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusConflict:
		if op == OpCreate || op == OpUpdate {
			return MsgAlreadyExists
		}
	case http.StatusBadRequest:
		if op == OpCreate {
			return MsgPincodesMapped
		}
	}

	switch op {
	case OpDelete:
		return MsgDeleteFailed
	case OpLoad:
		return MsgLoadFailed
	default:
		return MsgSaveFailed
	}
}

// StatusFor picks the HTTP status a handler answers with for a failure
func StatusFor(err error) int {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.Is(err, ErrDraftNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDraftConflict):
		return http.StatusConflict
	}
	if status := masterdata.StatusCode(err); status >= 400 && status < 500 {
		return status
	}
	return http.StatusBadGateway
}
