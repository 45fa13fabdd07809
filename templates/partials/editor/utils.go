package editor

import (
	"itrack_admin/models"
)

// DraftPath is the base URL of every editor action on a draft
func DraftPath(d *models.RegionDraft) string {
	return "/regions/drafts/" + d.ID
}

// Title is the heading of the editor page
func Title(d *models.RegionDraft) string {
	if d.IsEdit() {
		return "Edit Region"
	}
	return "Create Region"
}

// SubmitLabel is the text of the save button
func SubmitLabel(d *models.RegionDraft) string {
	if d.IsEdit() {
		return "Update Region"
	}
	return "Create Region"
}

// ChipClass styles a pincode chip by column
func ChipClass(selected bool) string {
	if selected {
		return "pincode-chip pincode-chip--selected"
	}
	return "pincode-chip"
}

// warningLabels turns loader dimension names into readable text
var warningLabels = map[string]string{
	"companies": "Companies",
	"countries": "Countries",
	"states":    "States",
	"districts": "Districts",
	"pincodes":  "Pincodes",
}

// WarningLabel names a reference list that failed to load
func WarningLabel(dimension string) string {
	if label, ok := warningLabels[dimension]; ok {
		return label
	}
	return dimension
}
