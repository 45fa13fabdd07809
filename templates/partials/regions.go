package partials

import (
	"context"
	"io"
	"strconv"

	"itrack_admin/models"
	"itrack_admin/services/regions"
	"itrack_admin/templates/components"
	"itrack_admin/templates/pages"

	"github.com/a-h/templ"
)

const pincodePreview = 5

// RegionsScreen is the body of the region list page: filters, the list
// container and the modal slot used by delete confirmations.
func RegionsScreen(view pages.RegionListView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		h.Raw(`<div id="regions-screen"`).
			Attr("hx-headers", components.JSON(map[string]string{"X-CSRF-Token": view.CSRFToken})).
			Raw(`><div class="flex items-center justify-between"><h1 class="text-xl font-semibold">Regions</h1>`).
			Raw(`<div class="flex gap-2"><a class="btn btn-primary" href="/regions/new">Create Region</a>`).
			Raw(`<button type="button" class="btn btn-secondary" hx-post="/regions/export" hx-include="#region-filters" hx-target="#export-result">Export</button></div></div>`)

		h.Raw(`<form id="region-filters" class="flex gap-2" hx-get="/htmx/regions" hx-target="#region-list" hx-swap="innerHTML" hx-trigger="input changed delay:300ms from:input, change from:select">`).
			Raw(`<input type="hidden" name="limit"`).Attr("value", strconv.Itoa(view.Limit)).Raw(">").
			Raw(`<input type="search" name="search" placeholder="Search regions"`).Attr("value", view.Search).Raw(">").
			Raw(`<select name="status">`)
		for _, opt := range []struct{ value, label string }{
			{regions.StatusAll, "All"},
			{regions.StatusActive, "Active"},
			{regions.StatusInactive, "Inactive"},
		} {
			h.Raw(`<option`).Attr("value", opt.value).BoolAttr("selected", opt.value == view.Status).Raw(">").Text(opt.label).Raw(`</option>`)
		}
		h.Raw(`</select></form>`)

		h.Raw(`<div id="export-result"></div>`)
		h.Raw(`<div id="region-list">`).Component(RegionList(view)).Raw(`</div>`)
		h.Raw(`<div id="modal"></div></div>`)
		return h.Err()
	})
}

// RegionList renders one page of regions with pagination
func RegionList(view pages.RegionListView) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)

		if view.Error != "" {
			h.Raw(`<div class="alert alert-error" role="alert">`).Text(view.Error).Raw(`</div>`)
			return h.Err()
		}
		if len(view.Regions) == 0 {
			h.Raw(`<p class="empty-state">No regions found</p>`)
		} else {
			h.Raw(`<table class="table w-full"><thead><tr><th>Region Name</th><th>Company</th><th>Status</th><th>Pincodes</th><th></th></tr></thead><tbody>`)
			for _, region := range view.Regions {
				h.Component(regionRow(view, region))
			}
			h.Raw(`</tbody></table>`)
		}

		h.Raw(`<nav class="pagination flex items-center gap-2">`)
		if view.HasPrev() {
			h.Raw(`<button type="button" class="btn btn-link" hx-target="#region-list"`).Attr("hx-get", view.PageURL(view.Page-1)).Raw(`>Previous</button>`)
		}
		h.Raw(`<span>Page `).Text(strconv.Itoa(view.Page)).Raw(` of `).Text(strconv.Itoa(view.TotalPages())).
			Raw(` (`).Text(strconv.Itoa(view.Total)).Raw(` regions)</span>`)
		if view.HasNext() {
			h.Raw(`<button type="button" class="btn btn-link" hx-target="#region-list"`).Attr("hx-get", view.PageURL(view.Page+1)).Raw(`>Next</button>`)
		}
		h.Raw(`</nav>`)
		return h.Err()
	})
}

func regionRow(view pages.RegionListView, region models.Region) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := region.ID.String()
		h := components.NewHTML(ctx, w)
		h.Raw(`<tr`).Attr("id", "region-"+id).Raw(`><td>`).Text(region.RegionName).Raw(`</td>`).
			Raw(`<td>`).Text(view.CompanyName(region.CompanyID.String())).Raw(`</td>`).
			Raw(`<td><span`).Attr("class", statusClass(bool(region.Active))).Raw(">").Text(statusLabel(bool(region.Active))).Raw(`</span></td>`).
			Raw(`<td>`).Text(pincodeSummary(region.Pincodes, pincodePreview)).Raw(`</td>`).
			Raw(`<td class="actions">`).
			Raw(`<a class="btn btn-link"`).Attr("href", "/regions/"+id+"/edit").Raw(`>Edit</a>`).
			Raw(`<button type="button" class="btn btn-link" hx-target="#modal"`).Attr("hx-get", "/regions/"+id+"/history").Raw(`>History</button>`).
			Raw(`<button type="button" class="btn btn-link text-red-600" hx-target="#modal"`).Attr("hx-get", "/regions/"+id+"/delete").Raw(`>Delete</button>`).
			Raw(`</td></tr>`)
		return h.Err()
	})
}

// DeleteConfirm asks before a region is removed
func DeleteConfirm(region *models.Region) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		id := region.ID.String()
		h := components.NewHTML(ctx, w)
		h.Raw(`<div class="modal" role="dialog" aria-modal="true"><div class="modal-body">`).
			Raw(`<h2>Delete Region</h2><p>Are you sure you want to delete <strong>`).Text(region.RegionName).
			Raw(`</strong>? This cannot be undone.</p><div class="flex gap-2">`).
			Raw(`<button type="button" class="btn btn-danger" hx-swap="outerHTML"`).
			Attr("hx-delete", "/regions/"+id).
			Attr("hx-target", "#region-"+id).
			Attr("hx-on::after-request", "document.getElementById('modal').innerHTML=''").
			Raw(`>Delete</button>`).
			Raw(`<button type="button" class="btn btn-secondary" hx-on:click="document.getElementById('modal').innerHTML=''">Cancel</button>`).
			Raw(`</div></div></div>`)
		return h.Err()
	})
}

// ExportLink offers the stored workbook for download
func ExportLink(url string, count int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		h.Raw(`<div class="alert alert-success">Exported `).Text(strconv.Itoa(count)).Raw(` regions. <a download`).
			Attr("href", url).Raw(`>Download spreadsheet</a></div>`)
		return h.Err()
	})
}

// RegionHistory lists the recorded changes of one region, newest first
func RegionHistory(logs []models.AuditLog) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := components.NewHTML(ctx, w)
		h.Raw(`<div class="modal" role="dialog" aria-modal="true"><div class="modal-body"><h2>Change History</h2>`)
		if len(logs) == 0 {
			h.Raw(`<p class="empty-state">No changes recorded</p>`)
		} else {
			h.Raw(`<ul class="history">`)
			for i := range logs {
				log := &logs[i]
				actor := log.ActorName
				if actor == "" {
					actor = "Unknown user"
				}
				h.Raw(`<li><span class="badge">`).Text(string(log.Action)).Raw(`</span> `).
					Text(log.Description).Raw(` <span class="meta">by `).Text(actor).Raw(`, `).
					Text(formatRelativeTime(log.CreatedAt)).Raw(`</span>`)
				if changes := log.Changes(); len(changes) > 0 {
					h.Raw(`<ul class="changes">`)
					for _, change := range changes {
						h.Raw(`<li>`).Text(change.Field).Raw(`: `).Text(components.JSON(change.Old)).Raw(` &rarr; `).Text(components.JSON(change.New)).Raw(`</li>`)
					}
					h.Raw(`</ul>`)
				}
				h.Raw(`</li>`)
			}
			h.Raw(`</ul>`)
		}
		h.Raw(`<button type="button" class="btn btn-secondary" hx-on:click="document.getElementById('modal').innerHTML=''">Close</button></div></div>`)
		return h.Err()
	})
}
