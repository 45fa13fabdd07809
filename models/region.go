package models

import (
	"bytes"
	"encoding/json"
)

// Region is a territory as returned by the Master Data Service
type Region struct {
	ID         FlexibleID  `json:"region_id"`
	RegionName string      `json:"region_name"`
	CompanyID  FlexibleID  `json:"company_id"`
	CountryID  FlexibleID  `json:"country_id"`
	StateID    FlexibleID  `json:"state_id"`
	DistrictID FlexibleID  `json:"district_id"`
	Active     LooseBool   `json:"active"`
	Pincodes   PincodeList `json:"pincodes"`
}

// PincodeList decodes the pincodes attached to a region. Entries may be plain codes
// ("560001" or 560001) or objects carrying a "pincode" key.
type PincodeList []string

func (l *PincodeList) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		// Anything that is not an array is treated as "no pincodes"
		*l = PincodeList{}
		return nil
	}

	codes := make(PincodeList, 0, len(raw))
	for _, entry := range raw {
		entry = bytes.TrimSpace(entry)
		if len(entry) > 0 && entry[0] == '{' {
			var obj struct {
				Pincode FlexibleID `json:"pincode"`
			}
			if err := json.Unmarshal(entry, &obj); err == nil && obj.Pincode != "" {
				codes = append(codes, obj.Pincode.String())
			}
			continue
		}

		var id FlexibleID
		if err := json.Unmarshal(entry, &id); err == nil && id != "" {
			codes = append(codes, id.String())
		}
	}

	*l = codes
	return nil
}

// RegionPayload is the body of POST /masters/regions and PUT /masters/regions/{id}
type RegionPayload struct {
	RegionName string   `json:"region_name" validate:"required,max=100"`
	CompanyID  string   `json:"company_id" validate:"required"`
	CountryID  string   `json:"country_id" validate:"required"`
	StateID    string   `json:"state_id" validate:"required"`
	DistrictID string   `json:"district_id" validate:"required"`
	Active     bool     `json:"active"`
	Pincodes   []string `json:"pincodes" validate:"required,min=1,dive,required"`
}

// RegionListParams contains parameters for listing regions
type RegionListParams struct {
	Page   int
	Limit  int
	Search string
	Status string // all, active, inactive
}

// RegionPage is one server page of regions
type RegionPage struct {
	Regions []Region
	Total   int
	Page    int
	Limit   int
}
