package models

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// FlexibleID is an identifier the Master Data Service may send as a JSON number or a string.
// It is always held as its string form.
type FlexibleID string

// UnmarshalJSON accepts "12", 12 and null
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = FlexibleID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("invalid id %s: %w", string(data), err)
	}
	*id = FlexibleID(n.String())
	return nil
}

func (id FlexibleID) String() string {
	return string(id)
}

// LooseBool decodes flags that arrive as booleans, 0/1 numbers or "true"/"false" strings.
// Only true, "true", 1 and "1" are truthy; every other value, including malformed input, is false.
type LooseBool bool

// UnmarshalJSON never fails so a single odd flag cannot discard a whole list
func (b *LooseBool) UnmarshalJSON(data []byte) error {
	*b = LooseBool(ParseLooseBool(data))
	return nil
}

// ParseLooseBool applies the truthiness rule to a raw JSON value
func ParseLooseBool(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	switch string(raw) {
	case "true", `"true"`, `"1"`:
		return true
	}

	if len(raw) == 0 || raw[0] == '"' {
		return false
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		f, err := n.Float64()
		return err == nil && f == 1
	}
	return false
}

// Company is a tenant a region can be scoped to
type Company struct {
	ID   FlexibleID `json:"company_id"`
	Name string     `json:"name"`
}

// Country is read-only reference data
type Country struct {
	ID   FlexibleID `json:"country_id"`
	Name string     `json:"country_name"`
}

// State belongs to exactly one country
type State struct {
	ID        FlexibleID `json:"state_id"`
	Name      string     `json:"state_name"`
	CountryID FlexibleID `json:"country_id"`
}

// District belongs to exactly one state
type District struct {
	ID      FlexibleID `json:"district_id"`
	Name    string     `json:"district_name"`
	StateID FlexibleID `json:"state_id"`
}

// Pincode belongs to exactly one district. Assigned means a region already owns it.
type Pincode struct {
	Code       FlexibleID `json:"pincode"`
	DistrictID FlexibleID `json:"district_id"`
	Assigned   LooseBool  `json:"assigned"`
}

// ReferenceSnapshot is the read-only set of lookup tables an editing session works against
type ReferenceSnapshot struct {
	Companies []Company  `json:"companies"`
	Countries []Country  `json:"countries"`
	States    []State    `json:"states"`
	Districts []District `json:"districts"`
	Pincodes  []Pincode  `json:"pincodes"`
	// Warnings names the dimensions that failed to load and were replaced by empty lists
	Warnings []string `json:"warnings,omitempty"`
}
