package load

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/LilVoxy/migration_dashboard/ETL/models"
)

// ExportSheet is the sheet name of exported workbooks
const ExportSheet = "Aggregated"

// ExportHeader is the first row of an exported workbook
var ExportHeader = []interface{}{
	models.ColumnCountry,
	models.ColumnYear,
	models.ColumnNetMigration,
	models.ColumnInflow,
	models.ColumnOutflow,
	"log Net",
	"log Inflow",
	"log Outflow",
}

// ExportXLSX writes the aggregated table to an xlsx workbook at path
func ExportXLSX(ds *models.Dataset, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", ExportSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := ExportHeader
	if err := f.SetSheetRow(ExportSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, row := range ds.Rows() {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := []interface{}{
			row.Country, row.Year,
			row.NetMigration, row.Inflow, row.Outflow,
			row.LogNet, row.LogInflow, row.LogOutflow,
		}
		if err := f.SetSheetRow(ExportSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(ExportSheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		return fmt.Errorf("freeze header: %w", err)
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}
