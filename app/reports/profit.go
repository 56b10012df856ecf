package reports

import (
	"errors"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/autoazul/store-profit/models"
)

// ReportStatuses are the order states counted as realized sales.
var ReportStatuses = []string{models.OrderCompleted, models.OrderProcessing}

var oneHundred = decimal.NewFromInt(100)

type OrderSource interface {
	GetByStatusAndDateRange(statuses []string, start, end time.Time) ([]models.Order, error)
}

type ItemResolver interface {
	ResolveItem(productID, variationID uint) (*models.Priceable, error)
}

type PriceReader interface {
	Get(itemID uint) (decimal.Decimal, bool, error)
}

// ProfitRow accumulates one catalog item's sales over the report range.
// Profit always equals Revenue minus Cost.
type ProfitRow struct {
	ItemID   uint            `json:"item_id"`
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Quantity int             `json:"quantity"`
	Revenue  decimal.Decimal `json:"revenue"`
	Cost     decimal.Decimal `json:"cost"`
	Profit   decimal.Decimal `json:"profit"`
}

// Margin is the row's profit as a percentage of its revenue, 0 when the row
// has no positive revenue.
func (r ProfitRow) Margin() decimal.Decimal {
	if !r.Revenue.IsPositive() {
		return decimal.Zero
	}
	return r.Profit.Div(r.Revenue).Mul(oneHundred)
}

// ProfitReport is the aggregate over one date range: per-item rows sorted by
// profit descending, plus global totals.
type ProfitReport struct {
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	Rows         []ProfitRow     `json:"rows"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	TotalProfit  decimal.Decimal `json:"total_profit"`
}

func (r ProfitReport) Margin() decimal.Decimal {
	if !r.TotalRevenue.IsPositive() {
		return decimal.Zero
	}
	return r.TotalProfit.Div(r.TotalRevenue).Mul(oneHundred)
}

func (r ProfitReport) TotalQuantity() int {
	total := 0
	for _, row := range r.Rows {
		total += row.Quantity
	}
	return total
}

// ProfitAggregator computes sales profit over a date range by joining order
// lines to their stored purchase prices.
type ProfitAggregator struct {
	orders OrderSource
	items  ItemResolver
	prices PriceReader
}

func NewProfitAggregator(orders OrderSource, items ItemResolver, prices PriceReader) *ProfitAggregator {
	return &ProfitAggregator{
		orders: orders,
		items:  items,
		prices: prices,
	}
}

// Aggregate walks every line of every completed or processing order created
// within [start, end] (whole days, inclusive). Lines whose catalog item no
// longer resolves are skipped; a missing purchase price counts as zero cost.
func (a *ProfitAggregator) Aggregate(start, end time.Time) (*ProfitReport, error) {
	report := &ProfitReport{
		StartDate:    start,
		EndDate:      end,
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		TotalProfit:  decimal.Zero,
	}

	orders, err := a.orders.GetByStatusAndDateRange(ReportStatuses, dayStart(start), dayEnd(end))
	if err != nil {
		return nil, err
	}

	index := make(map[uint]int)
	for _, order := range orders {
		for _, line := range order.Lines {
			item, err := a.items.ResolveItem(line.ProductID, line.VariationID)
			if err != nil {
				if errors.Is(err, models.ErrItemNotFound) {
					continue // line skipped, order continues
				}
				return nil, err
			}

			purchasePrice, ok, err := a.prices.Get(line.EffectiveItemID())
			if err != nil {
				return nil, err
			}
			if !ok {
				purchasePrice = decimal.Zero
			}

			cost := purchasePrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			profit := line.Total.Sub(cost)

			i, seen := index[item.ItemID]
			if !seen {
				report.Rows = append(report.Rows, ProfitRow{
					ItemID:  item.ItemID,
					Name:    item.Name,
					SKU:     item.SKU,
					Revenue: decimal.Zero,
					Cost:    decimal.Zero,
					Profit:  decimal.Zero,
				})
				i = len(report.Rows) - 1
				index[item.ItemID] = i
			}

			row := &report.Rows[i]
			row.Quantity += line.Quantity
			row.Revenue = row.Revenue.Add(line.Total)
			row.Cost = row.Cost.Add(cost)
			row.Profit = row.Profit.Add(profit)

			report.TotalRevenue = report.TotalRevenue.Add(line.Total)
			report.TotalCost = report.TotalCost.Add(cost)
			report.TotalProfit = report.TotalProfit.Add(profit)
		}
	}

	// Highest profit first; ties keep insertion order.
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Profit.GreaterThan(report.Rows[j].Profit)
	})

	return report, nil
}

// DefaultRange is the report window used when no dates are supplied: the
// first day of the current month through today.
func DefaultRange(now time.Time) (start, end time.Time) {
	start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	end = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return start, end
}

func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
