package export

import (
	"fmt"
	"io"

	"waste-route-service/internal/domain"

	"github.com/xuri/excelize/v2"
)

const allocationsSheet = "Allocations"

var excelHeaders = []string{
	"Date", "ID", "Vehicle Model", "Driver Name", "Waste Area",
	"Distance", "Fuel Required (l)", "Travel Time", "Route",
}

// WriteExcel renders the ledger as a single-sheet workbook, one row per
// allocation, dates in lexicographic order.
func WriteExcel(w io.Writer, ledger *domain.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", allocationsSheet); err != nil {
		return fmt.Errorf("write ledger xlsx: rename sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
	if err != nil {
		return fmt.Errorf("write ledger xlsx: header style: %w", err)
	}

	for i, h := range excelHeaders {
		if err := f.SetCellValue(allocationsSheet, cell(i, 1), h); err != nil {
			return fmt.Errorf("write ledger xlsx: header: %w", err)
		}
	}
	lastCol := cell(len(excelHeaders)-1, 1)
	if err := f.SetCellStyle(allocationsSheet, "A1", lastCol, headerStyle); err != nil {
		return fmt.Errorf("write ledger xlsx: header style: %w", err)
	}

	row := 2
	if ledger != nil {
		for _, date := range ledger.Dates() {
			for _, rec := range ledger.Records(date) {
				values := []any{
					date,
					rec.ID,
					rec.VehicleModel,
					rec.DriverName,
					rec.WasteArea,
					rec.Distance,
					rec.FuelRequired,
					fmt.Sprintf("%dh %02dm", rec.TravelTime.Hours, rec.TravelTime.Minutes),
					rec.RouteString(),
				}
				if err := f.SetSheetRow(allocationsSheet, cell(0, row), &values); err != nil {
					return fmt.Errorf("write ledger xlsx: row %d: %w", row, err)
				}
				row++
			}
		}
	}

	if err := f.SetColWidth(allocationsSheet, "A", "H", 16); err != nil {
		return fmt.Errorf("write ledger xlsx: col width: %w", err)
	}
	if err := f.SetColWidth(allocationsSheet, "I", "I", 60); err != nil {
		return fmt.Errorf("write ledger xlsx: col width: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write ledger xlsx: %w", err)
	}
	return nil
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col+1, row)
	return name
}
