package export_test

import (
	"bytes"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/stock-tracker/internal/adapters/export"
	"github.com/ammerola/stock-tracker/internal/core/domain"
	"github.com/ammerola/stock-tracker/test/helpers"
)

func readRows(t *testing.T, data []byte) [][]string {
	t.Helper()

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	rows, err := file.ToSlice()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	return rows[0]
}

func TestWriteWorkbook(t *testing.T) {
	stock := helpers.CreateTestStock(
		domain.StockEntry{Item: "banana", Quantity: 15},
		domain.StockEntry{Item: "apple", Quantity: 7},
		domain.StockEntry{Item: "kiwi", Quantity: 0},
	)

	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, stock, 10))

	file, err := xlsx.OpenBinary(buf.Bytes())
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)
	assert.Equal(t, export.SheetName, file.Sheets[0].Name)

	header, err := file.Sheets[0].Cell(0, 0)
	require.NoError(t, err)
	assert.True(t, header.GetStyle().Font.Bold)

	assert.Equal(t, [][]string{
		{"Item", "Quantity", "Low Stock"},
		{"banana", "15", "no"},
		{"apple", "7", "yes"},
		{"kiwi", "0", "yes"},
	}, readRows(t, buf.Bytes()))
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, domain.NewStock(), domain.DefaultLowStockThreshold))

	assert.Equal(t, [][]string{{"Item", "Quantity", "Low Stock"}}, readRows(t, buf.Bytes()))
}

func TestReadWorkbook_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, helpers.DefaultTestStock(), 5))

	stock, err := export.ReadWorkbook(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, helpers.DefaultTestStock().Entries(), stock.Entries())
}

func TestReadWorkbook_RoundTripLargeQuantities(t *testing.T) {
	original := helpers.CreateTestStock(
		domain.StockEntry{Item: "nuts", Quantity: math.MaxInt64 + 1},
		domain.StockEntry{Item: "washers", Quantity: math.MaxUint64},
	)

	var buf bytes.Buffer
	require.NoError(t, export.WriteWorkbook(&buf, original, 5))

	stock, err := export.ReadWorkbook(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, original.Entries(), stock.Entries())
}

func TestReadWorkbook_MergesAndSkips(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Imported")
	require.NoError(t, err)

	for _, values := range [][]string{
		{"Item", "Quantity"},
		{"apple", "3"},
		{"", "99"},
		{"pear", " 4 "},
		{"apple", "2"},
	} {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	stock, err := export.ReadWorkbook(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, []domain.StockEntry{
		{Item: "apple", Quantity: 5},
		{Item: "pear", Quantity: 4},
	}, stock.Entries())
}

func TestReadWorkbook_Errors(t *testing.T) {
	_, err := export.ReadWorkbook([]byte("not a workbook"))
	assert.Error(t, err)

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Inventory")
	require.NoError(t, err)
	sheet.AddRow().AddCell().SetString("Item")
	row := sheet.AddRow()
	row.AddCell().SetString("apple")
	row.AddCell().SetString("-4")

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	_, err = export.ReadWorkbook(buf.Bytes())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
}

func TestReadWorkbook_RepeatedRowsOverflow(t *testing.T) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Inventory")
	require.NoError(t, err)

	for _, values := range [][]string{
		{"Item", "Quantity"},
		{"apple", strconv.FormatUint(math.MaxUint64, 10)},
		{"apple", "1"},
	} {
		row := sheet.AddRow()
		for _, v := range values {
			row.AddCell().SetString(v)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	_, err = export.ReadWorkbook(buf.Bytes())
	assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	assert.ErrorContains(t, err, "overflows")
}
