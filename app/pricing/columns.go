package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/autoazul/store-profit/models"
	"github.com/autoazul/store-profit/pkg/money"
)

// dash is the placeholder shown when a column has nothing to display.
const dash = "–"

// ColumnCells are the two computed listing columns for one product row.
type ColumnCells struct {
	PurchasePrice string
	Profit        string
}

// Cells computes the purchase-price and profit column values for one product.
// prices maps item id (product or variation) to its stored purchase price.
//
// Simple products show the stored value and the profit against the effective
// sale price with its percentage. Variable products collapse their variations
// to a min/max range. Anything without the needed inputs shows a dash.
func Cells(p *models.Product, prices map[uint]decimal.Decimal, format money.Formatter) ColumnCells {
	if p.Type == models.TypeVariable {
		return variableCells(p, prices, format)
	}
	return simpleCells(p, prices, format)
}

func simpleCells(p *models.Product, prices map[uint]decimal.Decimal, format money.Formatter) ColumnCells {
	cells := ColumnCells{PurchasePrice: dash, Profit: dash}

	purchasePrice, ok := prices[p.ID]
	if !ok {
		return cells
	}
	cells.PurchasePrice = format.Format(purchasePrice)

	price := p.EffectivePrice()
	if price.IsZero() {
		return cells
	}

	profit := price.Sub(purchasePrice)
	pct := decimal.Zero
	if price.IsPositive() {
		pct = profit.Div(price).Mul(decimal.NewFromInt(100))
	}
	cells.Profit = format.Format(profit) + " (" + money.Percent(pct) + ")"
	return cells
}

func variableCells(p *models.Product, prices map[uint]decimal.Decimal, format money.Formatter) ColumnCells {
	cells := ColumnCells{PurchasePrice: dash, Profit: dash}

	var costs, profits []decimal.Decimal
	for _, v := range p.Variations {
		purchasePrice, ok := prices[v.ID]
		if !ok {
			continue
		}
		costs = append(costs, purchasePrice)
		if !v.Price.IsZero() {
			profits = append(profits, v.Price.Sub(purchasePrice))
		}
	}

	if len(costs) > 0 {
		cells.PurchasePrice = format.Range(decimal.Min(costs[0], costs...), decimal.Max(costs[0], costs...))
	}
	if len(profits) > 0 {
		cells.Profit = format.Range(decimal.Min(profits[0], profits...), decimal.Max(profits[0], profits...))
	}
	return cells
}
