package reports

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProfitReport() *ProfitReport {
	rows := []ProfitRow{
		{ItemID: 2, Name: "Dear, fancy", SKU: "D-2", Quantity: 1, Revenue: dec("100.00"), Cost: dec("40.00"), Profit: dec("60.00")},
		{ItemID: 1, Name: "Cheap", SKU: "C-1", Quantity: 4, Revenue: dec("40.00"), Cost: dec("8.00"), Profit: dec("32.00")},
	}
	report := &ProfitReport{Rows: rows, TotalRevenue: decimal.Zero, TotalCost: decimal.Zero, TotalProfit: decimal.Zero}
	for _, row := range rows {
		report.TotalRevenue = report.TotalRevenue.Add(row.Revenue)
		report.TotalCost = report.TotalCost.Add(row.Cost)
		report.TotalProfit = report.TotalProfit.Add(row.Profit)
	}
	return report
}

func TestWriteProfitCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfitCSV(&buf, sampleProfitReport()))

	raw := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3], "export must start with a UTF-8 BOM")

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 rows + totals

	assert.Equal(t, []string{"ID", "Product", "SKU", "Quantity", "Revenue", "Cost", "Profit", "Margin %"}, records[0])
	assert.Equal(t, []string{"2", "Dear, fancy", "D-2", "1", "100.00", "40.00", "60.00", "60.00"}, records[1])
	assert.Equal(t, []string{"1", "Cheap", "C-1", "4", "40.00", "8.00", "32.00", "80.00"}, records[2])

	totals := records[3]
	assert.Equal(t, "", totals[0])
	assert.Equal(t, "TOTALS", totals[1])
	assert.Equal(t, "5", totals[3])
	assert.Equal(t, "140.00", totals[4])
	assert.Equal(t, "48.00", totals[5])
	assert.Equal(t, "92.00", totals[6])
}

// Summing the exported data rows back up reproduces the TOTALS row.
func TestProfitCSVRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteProfitCSV(&buf, sampleProfitReport()))

	records, err := csv.NewReader(bytes.NewReader(buf.Bytes()[3:])).ReadAll()
	require.NoError(t, err)

	dataRows := records[1 : len(records)-1]
	totals := records[len(records)-1]

	sumRevenue, sumCost, sumProfit := decimal.Zero, decimal.Zero, decimal.Zero
	for _, row := range dataRows {
		sumRevenue = sumRevenue.Add(dec(row[4]))
		sumCost = sumCost.Add(dec(row[5]))
		sumProfit = sumProfit.Add(dec(row[6]))
	}

	assert.Equal(t, sumRevenue.StringFixed(2), totals[4])
	assert.Equal(t, sumCost.StringFixed(2), totals[5])
	assert.Equal(t, sumProfit.StringFixed(2), totals[6])
}

func TestWriteInventoryCSV(t *testing.T) {
	report := &InventoryReport{
		Rows: []InventoryRow{
			{
				ItemID: 11, Name: "Shirt (Size: Medium)", SKU: "S-M", Stock: 3,
				PurchasePrice: dec("5.00"), SalePrice: dec("12.00"),
				Investment: dec("15.00"), Value: dec("36.00"), Profit: dec("21.00"),
				Margin: dec("58.3333333333333333"),
			},
		},
		TotalInvestment: dec("15.00"),
		TotalValue:      dec("36.00"),
		TotalProfit:     dec("21.00"),
		AverageMargin:   dec("58.3333333333333333"),
	}

	var buf bytes.Buffer
	require.NoError(t, WriteInventoryCSV(&buf, report))

	raw := buf.Bytes()
	assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, raw[:3])

	records, err := csv.NewReader(bytes.NewReader(raw[3:])).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, []string{"ID", "Product", "SKU", "Stock", "Purchase Price", "Sale Price", "Investment", "Value", "Potential Profit", "Margin %"}, records[0])
	assert.Equal(t, []string{"11", "Shirt (Size: Medium)", "S-M", "3", "5.00", "12.00", "15.00", "36.00", "21.00", "58.33"}, records[1])
	assert.Equal(t, []string{"", "TOTALS", "", "", "", "", "15.00", "36.00", "21.00", "58.33"}, records[2])
}

func TestCSVFilenames(t *testing.T) {
	assert.Equal(t, "profit-report-2026-08-01-to-2026-08-28.csv",
		ProfitCSVFilename(day("2026-08-01"), day("2026-08-28")))
	assert.Equal(t, "capital-inventory-report-2026-08-28.csv",
		InventoryCSVFilename(day("2026-08-28")))
}
