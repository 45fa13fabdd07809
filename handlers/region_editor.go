package handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"itrack_admin/db"
	"itrack_admin/middleware"
	"itrack_admin/models"
	"itrack_admin/services"
	"itrack_admin/services/regions"
	"itrack_admin/templates/pages"
	"itrack_admin/templates/partials/editor"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
)

const msgFormUpdateFailed = "Failed to update the form. Please try again."

var errUnknownPincode = errors.New("pincode is not a candidate of the selected district")

// NewRegionHandler opens a create draft and sends the browser to its editor
// GET /regions/new
func NewRegionHandler(c echo.Context) error {
	draft, err := regions.StartCreate(c.Request().Context(), db.DB, masterDataFor(c))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return c.NoContent(http.StatusNoContent)
		}
		logrus.WithError(err).Error("Failed to start region draft")
		return middleware.ErrorToast(c, http.StatusInternalServerError, msgFormUpdateFailed)
	}
	return redirect(c, editor.DraftPath(draft))
}

// EditRegionHandler opens a draft hydrated from an existing region
// GET /regions/:id/edit
func EditRegionHandler(c echo.Context) error {
	draft, err := regions.StartEdit(c.Request().Context(), db.DB, masterDataFor(c), c.Param("id"))
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return c.NoContent(http.StatusNoContent)
		}
		logrus.WithError(err).WithField("region_id", c.Param("id")).Warn("Failed to open region for editing")
		msg := regions.ErrorMessage(regions.OpLoad, err)
		if middleware.IsHTMX(c) || wantsJSON(c) {
			return middleware.ErrorToast(c, regions.StatusFor(err), msg)
		}
		// Full page navigation: back to the list with the message as a flash toast
		middleware.SetToast(c, middleware.ToastError, msg)
		return c.Redirect(http.StatusSeeOther, "/regions")
	}
	return redirect(c, editor.DraftPath(draft))
}

// ShowDraftHandler renders the editor of a draft
// GET /regions/drafts/:draft
func ShowDraftHandler(c echo.Context) error {
	draft, err := regions.GetDraft(db.DB, c.Param("draft"))
	if err != nil {
		return draftError(c, err)
	}
	return renderEditor(c, draft)
}

// GetDraftStatesHandler returns the states of a country from the draft's reference data
// GET /regions/drafts/:draft/states?country_id=xxx
func GetDraftStatesHandler(c echo.Context) error {
	draft, err := regions.GetDraft(db.DB, c.Param("draft"))
	if err != nil {
		return draftError(c, err)
	}

	states := regions.StateOptions(&draft.Reference, c.QueryParam("country_id"))
	if middleware.IsHTMX(c) {
		return render(c, http.StatusOK, editor.StateOptionList(states, ""))
	}
	return c.JSON(http.StatusOK, states)
}

// GetDraftDistrictsHandler returns the districts of a state from the draft's reference data
// GET /regions/drafts/:draft/districts?state_id=xxx
func GetDraftDistrictsHandler(c echo.Context) error {
	draft, err := regions.GetDraft(db.DB, c.Param("draft"))
	if err != nil {
		return draftError(c, err)
	}

	districts := regions.DistrictOptions(&draft.Reference, c.QueryParam("state_id"))
	if middleware.IsHTMX(c) {
		return render(c, http.StatusOK, editor.DistrictOptionList(districts, ""))
	}
	return c.JSON(http.StatusOK, districts)
}

// CascadeHandler changes the country, state or district of a draft
// POST /regions/drafts/:draft/cascade
func CascadeHandler(c echo.Context) error {
	field, err := regions.ParseField(c.FormValue("field"))
	if err != nil {
		return middleware.ErrorToast(c, http.StatusBadRequest, "Unknown field.")
	}

	change := regions.Change{Field: field, Value: c.FormValue("value")}
	return mutateDraft(c, func(e *regions.Editor) error {
		e.Apply(change)
		return nil
	})
}

// UpdateDraftFieldsHandler stores region name, company and active flag
// POST /regions/drafts/:draft/fields
func UpdateDraftFieldsHandler(c echo.Context) error {
	var fields regions.Fields
	if err := c.Bind(&fields); err != nil {
		return middleware.ErrorToast(c, http.StatusBadRequest, "Invalid form data.")
	}

	return mutateDraft(c, func(e *regions.Editor) error {
		e.SetFields(fields)
		return nil
	})
}

// TogglePincodeHandler moves one pincode between the two columns
// POST /regions/drafts/:draft/pincodes/toggle
func TogglePincodeHandler(c echo.Context) error {
	code := c.FormValue("code")
	return mutateDraft(c, func(e *regions.Editor) error {
		if !e.Toggle(code) {
			return errUnknownPincode
		}
		return nil
	})
}

// SelectAllPincodesHandler selects every available pincode, or clears the selection
// POST /regions/drafts/:draft/pincodes/select-all
func SelectAllPincodesHandler(c echo.Context) error {
	return mutateDraft(c, func(e *regions.Editor) error {
		e.SelectAll()
		return nil
	})
}

// SaveDraftHandler submits a draft to the Master Data Service
// POST /regions/drafts/:draft/save
func SaveDraftHandler(c echo.Context) error {
	current, err := regions.GetDraft(db.DB, c.Param("draft"))
	if err != nil {
		return draftError(c, err)
	}
	if version, _ := strconv.Atoi(c.FormValue("version")); version > 0 && version != current.Version {
		return draftError(c, regions.ErrDraftConflict)
	}

	op := regions.OpCreate
	if current.IsEdit() {
		op = regions.OpUpdate
	}

	draft, result, err := regions.SaveDraft(c.Request().Context(), db.DB, masterDataFor(c), current.ID)
	if err != nil {
		if errors.Is(err, regions.ErrDraftNotFound) {
			return draftError(c, err)
		}
		var verr *regions.ValidationError
		if !errors.As(err, &verr) {
			logrus.WithError(err).WithField("draft_id", current.ID).Warn("Failed to save region")
		}
		// The draft is kept as is so the user can correct it and try again
		return middleware.ErrorToast(c, regions.StatusFor(err), regions.ErrorMessage(op, err))
	}

	recordSave(c, draft, result)

	if wantsJSON(c) {
		return c.JSON(http.StatusOK, map[string]interface{}{"message": result.Message, "data": result.Region})
	}
	middleware.SetToast(c, middleware.ToastSuccess, result.Message)
	return redirect(c, "/regions")
}

// DiscardDraftHandler drops a draft without saving it
// DELETE /regions/drafts/:draft
func DiscardDraftHandler(c echo.Context) error {
	draftID := c.Param("draft")
	if err := regions.DeleteDraft(db.DB, draftID); err != nil && !errors.Is(err, regions.ErrDraftNotFound) {
		logrus.WithError(err).WithField("draft_id", draftID).Error("Failed to discard region draft")
		return middleware.ErrorToast(c, http.StatusInternalServerError, msgFormUpdateFailed)
	} else if err == nil {
		services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), services.AuditEvent{
			Action:       models.AuditActionDiscard,
			ResourceType: services.AuditResourceRegionDraft,
			ResourceID:   draftID,
			Description:  "Region form discarded",
		})
	}

	if wantsJSON(c) {
		return c.NoContent(http.StatusNoContent)
	}
	return redirect(c, "/regions")
}

// mutateDraft applies fn to the draft named in the path and re-renders the editor.
// The version form value guards against lost updates from another tab.
func mutateDraft(c echo.Context, fn func(*regions.Editor) error) error {
	version, _ := strconv.Atoi(c.FormValue("version"))

	draft, err := regions.Mutate(db.DB, c.Param("draft"), version, fn)
	if err != nil {
		return draftError(c, err)
	}
	return renderEditor(c, draft)
}

func renderEditor(c echo.Context, draft *models.RegionDraft) error {
	state := regions.NewEditor(draft).State()
	if wantsJSON(c) {
		return c.JSON(http.StatusOK, editorJSON(state))
	}

	form := editor.Form(state, middleware.GetCSRFToken(c))
	if middleware.IsHTMX(c) {
		return render(c, http.StatusOK, form)
	}
	return render(c, http.StatusOK, pages.Layout(editor.Title(draft), form))
}

func editorJSON(state regions.EditorState) map[string]interface{} {
	return map[string]interface{}{
		"draft":            state.Draft,
		"state_options":    state.StateOptions,
		"district_options": state.DistrictOptions,
		"available":        state.Available,
		"selected":         state.Selected,
		"all_selected":     state.AllSelected,
		"select_all_label": state.SelectAllLabel(),
		"warnings":         state.Warnings,
	}
}

// draftError answers a failed draft operation
func draftError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, regions.ErrDraftNotFound):
		return middleware.ErrorToast(c, http.StatusNotFound, regions.MsgDraftExpired)
	case errors.Is(err, regions.ErrDraftConflict):
		return middleware.ErrorToast(c, http.StatusConflict, regions.MsgDraftConflict)
	case errors.Is(err, errUnknownPincode):
		return middleware.ErrorToast(c, http.StatusUnprocessableEntity, "That pincode is not available for this district.")
	}
	logrus.WithError(err).WithField("draft_id", c.Param("draft")).Error("Region draft operation failed")
	return middleware.ErrorToast(c, http.StatusInternalServerError, msgFormUpdateFailed)
}

// recordSave writes the audit entry of a successful create or update
func recordSave(c echo.Context, draft *models.RegionDraft, result *regions.SaveResult) {
	payload := regions.NewEditor(draft).Payload()
	event := services.AuditEvent{
		Action:       models.AuditActionCreate,
		ResourceType: services.AuditResourceRegion,
		ResourceID:   draft.RegionID,
		ResourceName: regions.SanitizeName(payload.RegionName),
		Description:  result.Message,
		NewValues: map[string]interface{}{
			"region_name": regions.SanitizeName(payload.RegionName),
			"company_id":  payload.CompanyID,
			"district_id": payload.DistrictID,
			"active":      payload.Active,
			"pincodes":    payload.Pincodes,
		},
	}
	if result.Region != nil && result.Region.ID != "" {
		event.ResourceID = result.Region.ID.String()
	}
	if !result.Created {
		event.Action = models.AuditActionUpdate
		event.OldValues = map[string]interface{}{
			"district_id": draft.OriginalDistrictID,
			"pincodes":    draft.OriginalPincodes,
		}
	}
	services.LogAuditEvent(db.DB, middleware.GetAuditContext(c), event)
}
