package editor

import (
	"bytes"
	"context"
	"testing"

	"itrack_admin/models"
	"itrack_admin/services/regions"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func renderString(t *testing.T, render func(*bytes.Buffer) error) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, render(&buf))
	return buf.String()
}

func sampleState() regions.EditorState {
	draft := &models.RegionDraft{
		ID:         "d-1",
		Flow:       models.DraftFlowCreate,
		RegionName: `North "Zone"`,
		CompanyID:  "9",
		CountryID:  "1",
		StateID:    "KA",
		DistrictID: "BLR",
		Active:     true,
		Version:    3,
	}
	return regions.EditorState{
		Draft:           draft,
		Companies:       []models.Company{{ID: "9", Name: "Acme"}},
		Countries:       []models.Country{{ID: "1", Name: "India"}},
		StateOptions:    []models.State{{ID: "KA", Name: "Karnataka", CountryID: "1"}},
		DistrictOptions: []models.District{{ID: "BLR", Name: "Bengaluru", StateID: "KA"}},
		Available:       []string{"560003"},
		Selected:        []string{"560001"},
		Warnings:        []string{"pincodes"},
	}
}

func TestForm(t *testing.T) {
	state := sampleState()
	html := renderString(t, func(buf *bytes.Buffer) error {
		return Form(state, "csrf-abc").Render(context.Background(), buf)
	})

	assert.Contains(t, html, `id="region-editor"`)
	assert.Contains(t, html, `data-version="3"`)
	assert.Contains(t, html, "Create Region")
	assert.Contains(t, html, `value="North &#34;Zone&#34;"`)
	assert.Contains(t, html, `<option value="9" selected>Acme</option>`)
	assert.Contains(t, html, `<option value="KA" selected>Karnataka</option>`)
	assert.Contains(t, html, "Some reference data could not be loaded: Pincodes.")
	assert.Contains(t, html, "csrf-abc")
	assert.Contains(t, html, `hx-post="/regions/drafts/d-1/save"`)
	assert.Contains(t, html, `hx-delete="/regions/drafts/d-1"`)
	assert.Contains(t, html, `hx-vals="{&#34;field&#34;:&#34;country&#34;,&#34;version&#34;:3}"`)
	assert.Contains(t, html, `hx-vals="{&#34;field&#34;:&#34;district&#34;,&#34;version&#34;:3}"`)
}

func TestPincodeColumns(t *testing.T) {
	state := sampleState()
	html := renderString(t, func(buf *bytes.Buffer) error {
		return PincodeColumns(state).Render(context.Background(), buf)
	})

	assert.Contains(t, html, "Available Pincodes")
	assert.Contains(t, html, "Selected Pincodes")
	assert.Contains(t, html, `data-pincode="560003"`)
	assert.Contains(t, html, `data-pincode="560001"`)
	assert.Contains(t, html, `hx-post="/regions/drafts/d-1/pincodes/toggle"`)
	assert.Contains(t, html, "&#34;code&#34;:&#34;560003&#34;")
	assert.Contains(t, html, ">Select All<")

	state.Available = nil
	html = renderString(t, func(buf *bytes.Buffer) error {
		return PincodeColumns(state).Render(context.Background(), buf)
	})
	assert.Contains(t, html, "No pincodes available")
	assert.Contains(t, html, ">Deselect All<")

	state.Selected = nil
	html = renderString(t, func(buf *bytes.Buffer) error {
		return PincodeColumns(state).Render(context.Background(), buf)
	})
	assert.Contains(t, html, "No pincodes selected")
	assert.Contains(t, html, " disabled>Select All<")
}

func TestOptionLists(t *testing.T) {
	html := renderString(t, func(buf *bytes.Buffer) error {
		return DistrictOptionList([]models.District{{ID: "BLR", Name: "Bengaluru"}, {ID: "MYS", Name: "Mysuru"}}, "MYS").
			Render(context.Background(), buf)
	})
	assert.Equal(t, `<option value="">Select a district</option><option value="BLR">Bengaluru</option><option value="MYS" selected>Mysuru</option>`, html)

	html = renderString(t, func(buf *bytes.Buffer) error {
		return StateOptionList(nil, "").Render(context.Background(), buf)
	})
	assert.Equal(t, `<option value="" selected>Select a state</option>`, html)
}

func TestLabels(t *testing.T) {
	edit := &models.RegionDraft{Flow: models.DraftFlowEdit, RegionID: "7"}
	assert.Equal(t, "Edit Region", Title(edit))
	assert.Equal(t, "Update Region", SubmitLabel(edit))
	assert.Equal(t, "Districts", WarningLabel("districts"))
	assert.Equal(t, "other", WarningLabel("other"))
}
