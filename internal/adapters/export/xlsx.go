// internal/adapters/export/xlsx.go
package export

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stock-tracker/internal/core/domain"
)

// SheetName is the worksheet written by WriteWorkbook and read by ReadWorkbook
const SheetName = "Inventory"

// Headers of the inventory sheet, in column order
var Headers = []string{"Item", "Quantity", "Low Stock"}

// WriteWorkbook renders stock as a single-sheet workbook. Items below
// threshold are flagged in the Low Stock column.
func WriteWorkbook(w io.Writer, stock *domain.Stock, threshold domain.Quantity) error {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return fmt.Errorf("failed to add worksheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, header := range Headers {
		cell := headerRow.AddCell()
		cell.Value = header
		cell.GetStyle().Font.Bold = true
		cell.GetStyle().Fill.PatternType = "solid"
		cell.GetStyle().Fill.FgColor = "CCCCCC"
	}

	for _, e := range stock.Entries() {
		row := sheet.AddRow()
		row.AddCell().SetString(e.Item.String())
		// numeric cells are float64 in xlsx, so large counts are written as text
		qty := row.AddCell()
		if e.Quantity <= 1<<53 {
			qty.SetInt64(int64(e.Quantity))
		} else {
			qty.SetString(strconv.FormatUint(uint64(e.Quantity), 10))
		}
		low := "no"
		if e.Quantity < threshold {
			low = "yes"
		}
		row.AddCell().SetString(low)
	}

	for i := range Headers {
		sheet.SetColWidth(i+1, i+1, 15)
	}

	if err := file.Write(w); err != nil {
		return fmt.Errorf("failed to write Excel file: %w", err)
	}

	return nil
}

// ReadWorkbook parses the first sheet of a workbook laid out like the one
// WriteWorkbook produces. Rows with an empty item cell are skipped; a
// repeated item adds to the earlier row.
func ReadWorkbook(data []byte) (*domain.Stock, error) {
	file, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}

	stock := domain.NewStock()
	if len(file.Sheets) == 0 {
		return stock, nil
	}

	rowIdx := 0
	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		rowIdx++
		if rowIdx == 1 {
			return nil
		}

		get := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			return strings.TrimSpace(c.String())
		}

		item, err := domain.ParseItemName(get(0))
		if err != nil {
			return nil
		}

		qty, err := domain.ParseQuantityString(get(1))
		if err != nil {
			return fmt.Errorf("row %d: %w", rowIdx, err)
		}

		current, _ := stock.Get(item)
		if qty > domain.Quantity(math.MaxUint64)-current {
			return fmt.Errorf("row %d: %w: total for '%s' overflows", rowIdx, domain.ErrInvalidQuantity, item)
		}
		stock.Set(item, current+qty)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process Excel rows: %w", err)
	}

	return stock, nil
}
