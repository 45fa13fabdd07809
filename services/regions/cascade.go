package regions

import (
	"fmt"

	"itrack_admin/models"
)

// Field names one level of the country -> state -> district cascade
type Field string

const (
	FieldCountry  Field = "country"
	FieldState    Field = "state"
	FieldDistrict Field = "district"
)

// ParseField validates a field name coming from a form
func ParseField(s string) (Field, error) {
	switch Field(s) {
	case FieldCountry, FieldState, FieldDistrict:
		return Field(s), nil
	}
	return "", fmt.Errorf("unknown cascade field %q", s)
}

// Selection is the part of a region draft the cascade owns.
// Selected holds pincode codes in the order they were picked.
type Selection struct {
	CountryID  string
	StateID    string
	DistrictID string
	Selected   []string
}

// Change is one user-driven edit of a cascade field
type Change struct {
	Field Field
	Value string
}

// Reduce returns the selection that results from applying change to prev.
// Every level clears what depends on it: a new country clears state, district and
// pincodes; a new state clears district and pincodes; a new district clears pincodes.
// Picking the value that is already selected changes nothing.
func Reduce(prev Selection, change Change) Selection {
	next := prev
	next.Selected = append([]string(nil), prev.Selected...)

	switch change.Field {
	case FieldCountry:
		if change.Value == prev.CountryID {
			return next
		}
		next.CountryID = change.Value
		next.StateID = ""
		next.DistrictID = ""
		next.Selected = nil
	case FieldState:
		if change.Value == prev.StateID {
			return next
		}
		next.StateID = change.Value
		next.DistrictID = ""
		next.Selected = nil
	case FieldDistrict:
		if change.Value == prev.DistrictID {
			return next
		}
		next.DistrictID = change.Value
		next.Selected = nil
	}

	return next
}

// Hydrate builds the selection of a saved region without applying any resets
func Hydrate(region *models.Region) Selection {
	return Selection{
		CountryID:  region.CountryID.String(),
		StateID:    region.StateID.String(),
		DistrictID: region.DistrictID.String(),
		Selected:   dedupe(region.Pincodes),
	}
}

// StateOptions lists the states of a country, in reference order
func StateOptions(ref *models.ReferenceSnapshot, countryID string) []models.State {
	options := []models.State{}
	if countryID == "" {
		return options
	}
	for _, state := range ref.States {
		if state.CountryID.String() == countryID {
			options = append(options, state)
		}
	}
	return options
}

// DistrictOptions lists the districts of a state, in reference order
func DistrictOptions(ref *models.ReferenceSnapshot, stateID string) []models.District {
	options := []models.District{}
	if stateID == "" {
		return options
	}
	for _, district := range ref.Districts {
		if district.StateID.String() == stateID {
			options = append(options, district)
		}
	}
	return options
}

// Candidates returns the pincodes of a district that may be selected: every unassigned
// code of the district, in reference order. Codes in owned are the region's own saved
// pincodes; they stay eligible although the service reports them as assigned, and are
// appended when the reference table does not list them.
func Candidates(ref *models.ReferenceSnapshot, districtID string, owned []string) []string {
	codes := []string{}
	if districtID == "" {
		return codes
	}

	isOwned := make(map[string]bool, len(owned))
	for _, code := range owned {
		isOwned[code] = true
	}

	seen := make(map[string]bool)
	for _, p := range ref.Pincodes {
		code := p.Code.String()
		if code == "" || seen[code] || p.DistrictID.String() != districtID {
			continue
		}
		if bool(p.Assigned) && !isOwned[code] {
			continue
		}
		seen[code] = true
		codes = append(codes, code)
	}

	for _, code := range owned {
		if code != "" && !seen[code] {
			seen[code] = true
			codes = append(codes, code)
		}
	}

	return codes
}

func dedupe(codes []string) []string {
	out := make([]string, 0, len(codes))
	seen := make(map[string]bool, len(codes))
	for _, code := range codes {
		if code == "" || seen[code] {
			continue
		}
		seen[code] = true
		out = append(out, code)
	}
	return out
}
