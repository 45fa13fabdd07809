package editor

import (
	"context"
	"io"
	"strconv"

	"itrack_admin/models"
	"itrack_admin/services/regions"
	"itrack_admin/templates/components"

	"github.com/a-h/templ"
)

// Form renders the whole region editor. Every action swaps it as a unit,
// so the version carried in hx-vals is always the one of the stored draft.
func Form(state regions.EditorState, csrfToken string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		d := state.Draft
		base := DraftPath(d)
		version := strconv.Itoa(d.Version)
		h := components.NewHTML(ctx, w)

		h.Raw(`<div id="region-editor" class="region-editor"`).
			Attr("data-draft", d.ID).
			Attr("data-version", version).
			Attr("hx-headers", components.JSON(map[string]string{"X-CSRF-Token": csrfToken})).
			Attr("hx-target", "#region-editor").
			Attr("hx-swap", "outerHTML").
			Raw(">")

		h.Raw(`<h1 class="text-xl font-semibold">`).Text(Title(d)).Raw(`</h1>`)

		if len(state.Warnings) > 0 {
			h.Raw(`<div class="alert alert-warning" role="alert">Some reference data could not be loaded: `)
			for i, dim := range state.Warnings {
				if i > 0 {
					h.Raw(", ")
				}
				h.Text(WarningLabel(dim))
			}
			h.Raw(`.</div>`)
		}

		// Plain inputs
		h.Raw(`<form class="region-fields" hx-trigger="change"`).Attr("hx-post", base+"/fields").Raw(">")
		h.Raw(`<input type="hidden" name="version"`).Attr("value", version).Raw(">")
		h.Raw(`<label for="region_name">Region Name</label>`)
		h.Raw(`<input id="region_name" name="region_name" type="text" maxlength="100" required`).Attr("value", d.RegionName).Raw(">")
		h.Raw(`<label for="company_id">Company</label>`)
		h.Raw(`<select id="company_id" name="company_id" required><option value="">Select a company</option>`)
		for _, company := range state.Companies {
			h.Component(option(company.ID.String(), company.Name, d.CompanyID))
		}
		h.Raw(`</select>`)
		h.Raw(`<label class="inline-flex items-center gap-2"><input type="checkbox" name="active" value="true"`).
			BoolAttr("checked", d.Active).Raw(`> Active</label>`)
		h.Raw(`</form>`)

		// Cascade
		h.Raw(`<div class="region-cascade">`)
		h.Component(cascadeSelect(base, d.Version, regions.FieldCountry, "Country", "Select a country", d.CountryID, countryOptions(state.Countries)))
		h.Component(cascadeSelect(base, d.Version, regions.FieldState, "State", "Select a state", d.StateID, stateOptions(state.StateOptions)))
		h.Component(cascadeSelect(base, d.Version, regions.FieldDistrict, "District", "Select a district", d.DistrictID, districtOptions(state.DistrictOptions)))
		h.Raw(`</div>`)

		h.Component(PincodeColumns(state))

		h.Raw(`<div class="region-actions">`)
		h.Raw(`<button type="button" class="btn btn-primary"`).Attr("hx-post", base+"/save").
			Attr("hx-vals", components.JSON(map[string]int{"version": d.Version})).Raw(">").
			Text(SubmitLabel(d)).Raw(`</button>`)
		h.Raw(`<button type="button" class="btn btn-secondary" hx-confirm="Discard your changes?"`).
			Attr("hx-delete", base).Raw(">Cancel</button>")
		h.Raw(`</div></div>`)

		return h.Err()
	})
}

// PincodeColumns renders the available and selected columns with the bidirectional select-all button
func PincodeColumns(state regions.EditorState) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		d := state.Draft
		base := DraftPath(d)
		h := components.NewHTML(ctx, w)

		h.Raw(`<div id="pincode-allocation" class="pincode-allocation">`)
		h.Raw(`<div class="pincode-toolbar"><button type="button" class="btn btn-link"`).
			Attr("hx-post", base+"/pincodes/select-all").
			Attr("hx-vals", components.JSON(map[string]int{"version": d.Version})).
			BoolAttr("disabled", len(state.Available) == 0 && len(state.Selected) == 0).
			Raw(">").Text(state.SelectAllLabel()).Raw(`</button></div>`)

		h.Component(pincodeColumn(base, d.Version, "available-pincodes", "Available Pincodes", "No pincodes available", state.Available, false))
		h.Component(pincodeColumn(base, d.Version, "selected-pincodes", "Selected Pincodes", "No pincodes selected", state.Selected, true))
		h.Raw(`</div>`)

		return h.Err()
	})
}

func pincodeColumn(base string, version int, id, title, empty string, codes []string, selected bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		h.Raw(`<section class="pincode-column"`).Attr("id", id).Raw(`><h2>`).Text(title).
			Raw(` <span class="count">(`).Text(strconv.Itoa(len(codes))).Raw(`)</span></h2>`)

		if len(codes) == 0 {
			h.Raw(`<p class="empty-state">`).Text(empty).Raw(`</p>`)
		} else {
			h.Raw(`<ul class="pincode-list">`)
			for _, code := range codes {
				h.Raw(`<li><button type="button"`).
					Attr("class", ChipClass(selected)).
					Attr("data-pincode", code).
					Attr("hx-post", base+"/pincodes/toggle").
					Attr("hx-vals", components.JSON(map[string]interface{}{"code": code, "version": version})).
					Raw(">").Text(code).Raw(`</button></li>`)
			}
			h.Raw(`</ul>`)
		}
		h.Raw(`</section>`)
		return h.Err()
	})
}

type optionItem struct {
	value string
	label string
}

func cascadeSelect(base string, version int, field regions.Field, label, placeholder, current string, items []optionItem) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		id := string(field) + "_id"
		h.Raw(`<label`).Attr("for", id).Raw(">").Text(label).Raw(`</label>`)
		h.Raw(`<select name="value" hx-trigger="change"`).
			Attr("id", id).
			Attr("hx-post", base+"/cascade").
			Attr("hx-vals", components.JSON(map[string]interface{}{"field": string(field), "version": version})).
			BoolAttr("disabled", len(items) == 0 && current == "").
			Raw(">")
		h.Component(option("", placeholder, current))
		for _, item := range items {
			h.Component(option(item.value, item.label, current))
		}
		h.Raw(`</select>`)
		return h.Err()
	})
}

func option(value, label, current string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		h.Raw(`<option`).Attr("value", value).BoolAttr("selected", value == current).Raw(">").Text(label).Raw(`</option>`)
		return h.Err()
	})
}

func countryOptions(countries []models.Country) []optionItem {
	items := make([]optionItem, 0, len(countries))
	for _, c := range countries {
		items = append(items, optionItem{c.ID.String(), c.Name})
	}
	return items
}

func stateOptions(states []models.State) []optionItem {
	items := make([]optionItem, 0, len(states))
	for _, s := range states {
		items = append(items, optionItem{s.ID.String(), s.Name})
	}
	return items
}

func districtOptions(districts []models.District) []optionItem {
	items := make([]optionItem, 0, len(districts))
	for _, d := range districts {
		items = append(items, optionItem{d.ID.String(), d.Name})
	}
	return items
}

// StateOptionList renders <option> elements for a state select
func StateOptionList(states []models.State, current string) templ.Component {
	return optionList("Select a state", stateOptions(states), current)
}

// DistrictOptionList renders <option> elements for a district select
func DistrictOptionList(districts []models.District, current string) templ.Component {
	return optionList("Select a district", districtOptions(districts), current)
}

func optionList(placeholder string, items []optionItem, current string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		h.Component(option("", placeholder, current))
		for _, item := range items {
			h.Component(option(item.value, item.label, current))
		}
		return h.Err()
	})
}
