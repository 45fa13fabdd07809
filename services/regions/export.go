package regions

import (
	"bytes"
	"fmt"
	"strings"

	"itrack_admin/models"

	"github.com/xuri/excelize/v2"
)

const exportSheet = "Regions"

// ExportRegions writes regions to an xlsx workbook. Company names are resolved
// from the reference list when available.
func ExportRegions(regions []models.Region, companies []models.Company) (*bytes.Buffer, error) {
	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", exportSheet)

	companyNames := make(map[string]string, len(companies))
	for _, c := range companies {
		companyNames[c.ID.String()] = c.Name
	}

	headers := []string{"Region ID", "Region Name", "Company", "Country ID", "State ID", "District ID", "Status", "Pincode Count", "Pincodes"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(exportSheet, cell, header)
	}
	headerStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(exportSheet, "A1", "I1", headerStyle)

	for i, region := range regions {
		row := i + 2
		company := companyNames[region.CompanyID.String()]
		if company == "" {
			company = region.CompanyID.String()
		}
		status := "Inactive"
		if bool(region.Active) {
			status = "Active"
		}

		values := []interface{}{
			region.ID.String(),
			region.RegionName,
			company,
			region.CountryID.String(),
			region.StateID.String(),
			region.DistrictID.String(),
			status,
			len(region.Pincodes),
			strings.Join(region.Pincodes, ", "),
		}
		cell, _ := excelize.CoordinatesToCellName(1, row)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", row, err)
		}
	}

	f.SetColWidth(exportSheet, "A", "H", 16)
	f.SetColWidth(exportSheet, "I", "I", 60)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}
