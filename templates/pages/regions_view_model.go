package pages

import (
	"net/url"
	"strconv"

	"itrack_admin/models"
)

// RegionListView holds the data for the region list screen
type RegionListView struct {
	Regions   []models.Region
	Companies map[string]string
	Page      int
	Limit     int
	Total     int
	Search    string
	Status    string
	// Error is shown instead of the table when the page could not be fetched
	Error     string
	CSRFToken string
}

// TotalPages is the number of server pages, at least one
func (v RegionListView) TotalPages() int {
	if v.Limit <= 0 || v.Total <= 0 {
		return 1
	}
	return (v.Total + v.Limit - 1) / v.Limit
}

func (v RegionListView) HasPrev() bool {
	return v.Page > 1
}

func (v RegionListView) HasNext() bool {
	return v.Page < v.TotalPages()
}

// CompanyName resolves a company id, falling back to the id itself
func (v RegionListView) CompanyName(id string) string {
	if name, ok := v.Companies[id]; ok && name != "" {
		return name
	}
	return id
}

// PageURL is the list partial URL for another page with the current filters
func (v RegionListView) PageURL(page int) string {
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(v.Limit))
	if v.Search != "" {
		q.Set("search", v.Search)
	}
	if v.Status != "" {
		q.Set("status", v.Status)
	}
	return "/htmx/regions?" + q.Encode()
}
