package reports

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/autoazul/store-profit/models"
)

type CatalogSource interface {
	GetPublishedProducts() ([]models.Product, error)
	TermLookup() models.TermLookup
}

type PriceBatchReader interface {
	GetMany(itemIDs []uint) (map[uint]decimal.Decimal, error)
}

// InventoryRow is one in-stock, cost-tagged item of the capital report.
type InventoryRow struct {
	ItemID        uint            `json:"item_id"`
	Name          string          `json:"name"`
	SKU           string          `json:"sku"`
	Stock         int             `json:"stock"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Investment    decimal.Decimal `json:"investment"`
	Value         decimal.Decimal `json:"value"`
	Profit        decimal.Decimal `json:"profit"`
	Margin        decimal.Decimal `json:"margin"`
}

// InventoryReport aggregates the capital tied up in on-hand inventory. Rows
// are sorted by investment descending; AverageMargin is the arithmetic mean
// of the row margins.
type InventoryReport struct {
	Rows            []InventoryRow  `json:"rows"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	TotalValue      decimal.Decimal `json:"total_value"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	AverageMargin   decimal.Decimal `json:"average_margin"`
}

// InventoryAggregator computes investment and potential profit for every
// published item with positive stock, a stored purchase price and a sale
// price. Items failing any one of those conditions are left out.
type InventoryAggregator struct {
	catalog CatalogSource
	prices  PriceBatchReader
}

func NewInventoryAggregator(catalog CatalogSource, prices PriceBatchReader) *InventoryAggregator {
	return &InventoryAggregator{
		catalog: catalog,
		prices:  prices,
	}
}

func (a *InventoryAggregator) Aggregate() (*InventoryReport, error) {
	report := &InventoryReport{
		TotalInvestment: decimal.Zero,
		TotalValue:      decimal.Zero,
		TotalProfit:     decimal.Zero,
		AverageMargin:   decimal.Zero,
	}

	products, err := a.catalog.GetPublishedProducts()
	if err != nil {
		return nil, err
	}

	var itemIDs []uint
	for _, p := range products {
		switch p.Type {
		case models.TypeVariable:
			for _, v := range p.Variations {
				itemIDs = append(itemIDs, v.ID)
			}
		default:
			itemIDs = append(itemIDs, p.ID)
		}
	}

	prices, err := a.prices.GetMany(itemIDs)
	if err != nil {
		return nil, err
	}

	terms := a.catalog.TermLookup()
	marginSum := decimal.Zero

	appendItem := func(item models.Priceable) {
		if !item.InStock() {
			return
		}
		purchasePrice, ok := prices[item.ItemID]
		if !ok {
			return
		}
		if !item.HasPrice() {
			return
		}

		stock := decimal.NewFromInt(int64(*item.Stock))
		investment := purchasePrice.Mul(stock)
		value := item.SalePrice.Mul(stock)
		profit := value.Sub(investment)
		margin := decimal.Zero
		if value.IsPositive() {
			margin = profit.Div(value).Mul(oneHundred)
		}

		report.Rows = append(report.Rows, InventoryRow{
			ItemID:        item.ItemID,
			Name:          item.Name,
			SKU:           item.SKU,
			Stock:         *item.Stock,
			PurchasePrice: purchasePrice,
			SalePrice:     item.SalePrice,
			Investment:    investment,
			Value:         value,
			Profit:        profit,
			Margin:        margin,
		})

		report.TotalInvestment = report.TotalInvestment.Add(investment)
		report.TotalValue = report.TotalValue.Add(value)
		report.TotalProfit = report.TotalProfit.Add(profit)
		marginSum = marginSum.Add(margin)
	}

	for i := range products {
		p := &products[i]
		switch p.Type {
		case models.TypeVariable:
			for j := range p.Variations {
				appendItem(models.PriceableFromVariation(p, &p.Variations[j], terms))
			}
		default:
			appendItem(models.PriceableFromProduct(p))
		}
	}

	// Largest investment first; ties keep insertion order.
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Investment.GreaterThan(report.Rows[j].Investment)
	})

	if n := len(report.Rows); n > 0 {
		report.AverageMargin = marginSum.Div(decimal.NewFromInt(int64(n)))
	}

	return report, nil
}
