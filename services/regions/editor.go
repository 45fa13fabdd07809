package regions

import (
	"itrack_admin/models"
)

// Editor applies user edits to a region draft and derives what the form shows
type Editor struct {
	draft *models.RegionDraft
}

// NewEditor wraps a draft. Changes are made in place; persisting them is the caller's job.
func NewEditor(draft *models.RegionDraft) *Editor {
	return &Editor{draft: draft}
}

// Draft returns the wrapped draft
func (e *Editor) Draft() *models.RegionDraft {
	return e.draft
}

// Selection returns the cascade part of the draft
func (e *Editor) Selection() Selection {
	return Selection{
		CountryID:  e.draft.CountryID,
		StateID:    e.draft.StateID,
		DistrictID: e.draft.DistrictID,
		Selected:   append([]string(nil), e.draft.SelectedPincodes...),
	}
}

func (e *Editor) setSelection(sel Selection) {
	e.draft.CountryID = sel.CountryID
	e.draft.StateID = sel.StateID
	e.draft.DistrictID = sel.DistrictID
	e.draft.SelectedPincodes = sel.Selected
	if e.draft.SelectedPincodes == nil {
		e.draft.SelectedPincodes = []string{}
	}
}

// owned returns the saved pincodes of the region being edited when the
// draft still points at the district they were saved under
func (e *Editor) owned() []string {
	if e.draft.IsEdit() && e.draft.DistrictID == e.draft.OriginalDistrictID {
		return e.draft.OriginalPincodes
	}
	return nil
}

// Allocation returns the pincode partition for the current district
func (e *Editor) Allocation() *Allocation {
	candidates := Candidates(&e.draft.Reference, e.draft.DistrictID, e.owned())
	return NewAllocation(candidates, e.draft.SelectedPincodes)
}

// Apply runs a cascade change through the reducer
func (e *Editor) Apply(change Change) {
	e.setSelection(Reduce(e.Selection(), change))
}

// Toggle moves one pincode between the available and selected columns
func (e *Editor) Toggle(code string) bool {
	alloc := e.Allocation()
	if !alloc.Toggle(code) {
		return false
	}
	e.draft.SelectedPincodes = alloc.Selected()
	return true
}

// SelectAll selects every available pincode, or clears the selection when none is left
func (e *Editor) SelectAll() {
	alloc := e.Allocation()
	alloc.SelectAll()
	e.draft.SelectedPincodes = alloc.Selected()
}

// Fields are the plain inputs of the region form
type Fields struct {
	RegionName string `form:"region_name" json:"region_name"`
	CompanyID  string `form:"company_id" json:"company_id"`
	Active     bool   `form:"active" json:"active"`
}

// SetFields stores the plain form inputs
func (e *Editor) SetFields(fields Fields) {
	e.draft.RegionName = fields.RegionName
	e.draft.CompanyID = fields.CompanyID
	e.draft.Active = fields.Active
}

// Payload assembles the create/update body from the draft
func (e *Editor) Payload() *models.RegionPayload {
	return &models.RegionPayload{
		RegionName: e.draft.RegionName,
		CompanyID:  e.draft.CompanyID,
		CountryID:  e.draft.CountryID,
		StateID:    e.draft.StateID,
		DistrictID: e.draft.DistrictID,
		Active:     e.draft.Active,
		Pincodes:   e.Allocation().Selected(),
	}
}

// EditorState is everything the region form renders
type EditorState struct {
	Draft           *models.RegionDraft
	Companies       []models.Company
	Countries       []models.Country
	StateOptions    []models.State
	DistrictOptions []models.District
	Available       []string
	Selected        []string
	AllSelected     bool
	Warnings        []string
}

// State derives the render state of the form
func (e *Editor) State() EditorState {
	ref := &e.draft.Reference
	alloc := e.Allocation()
	return EditorState{
		Draft:           e.draft,
		Companies:       ref.Companies,
		Countries:       ref.Countries,
		StateOptions:    StateOptions(ref, e.draft.CountryID),
		DistrictOptions: DistrictOptions(ref, e.draft.StateID),
		Available:       alloc.Available(),
		Selected:        alloc.Selected(),
		AllSelected:     alloc.AllSelected(),
		Warnings:        ref.Warnings,
	}
}

// SelectAllLabel names what the bidirectional button will do next
func (s EditorState) SelectAllLabel() string {
	if len(s.Available) == 0 && len(s.Selected) > 0 {
		return "Deselect All"
	}
	return "Select All"
}
