package reports

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/autoazul/store-profit/pkg/money"
)

// utf8BOM prefixes every export so spreadsheet tools pick up the encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

const totalsLabel = "TOTALS"

// WriteProfitCSV writes the profit report: BOM, header, one row per item and
// a final TOTALS row carrying the global aggregates.
func WriteProfitCSV(w io.Writer, report *ProfitReport) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ID", "Product", "SKU", "Quantity", "Revenue", "Cost", "Profit", "Margin %"}); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{
			strconv.FormatUint(uint64(row.ItemID), 10),
			row.Name,
			row.SKU,
			strconv.Itoa(row.Quantity),
			money.Fixed2(row.Revenue),
			money.Fixed2(row.Cost),
			money.Fixed2(row.Profit),
			money.Fixed2(row.Margin()),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	totals := []string{
		"",
		totalsLabel,
		"",
		strconv.Itoa(report.TotalQuantity()),
		money.Fixed2(report.TotalRevenue),
		money.Fixed2(report.TotalCost),
		money.Fixed2(report.TotalProfit),
		money.Fixed2(report.Margin()),
	}
	if err := cw.Write(totals); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

// WriteInventoryCSV writes the capital report in the same shape: BOM, header,
// data rows, TOTALS row. The totals row leaves the per-item columns blank.
func WriteInventoryCSV(w io.Writer, report *InventoryReport) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	header := []string{"ID", "Product", "SKU", "Stock", "Purchase Price", "Sale Price", "Investment", "Value", "Potential Profit", "Margin %"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, row := range report.Rows {
		record := []string{
			strconv.FormatUint(uint64(row.ItemID), 10),
			row.Name,
			row.SKU,
			strconv.Itoa(row.Stock),
			money.Fixed2(row.PurchasePrice),
			money.Fixed2(row.SalePrice),
			money.Fixed2(row.Investment),
			money.Fixed2(row.Value),
			money.Fixed2(row.Profit),
			money.Fixed2(row.Margin),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	totals := []string{
		"",
		totalsLabel,
		"",
		"",
		"",
		"",
		money.Fixed2(report.TotalInvestment),
		money.Fixed2(report.TotalValue),
		money.Fixed2(report.TotalProfit),
		money.Fixed2(report.AverageMargin),
	}
	if err := cw.Write(totals); err != nil {
		return err
	}

	cw.Flush()
	return cw.Error()
}

func ProfitCSVFilename(start, end time.Time) string {
	return fmt.Sprintf("profit-report-%s-to-%s.csv", start.Format("2006-01-02"), end.Format("2006-01-02"))
}

func InventoryCSVFilename(now time.Time) string {
	return fmt.Sprintf("capital-inventory-report-%s.csv", now.Format("2006-01-02"))
}
