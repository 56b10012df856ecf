package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/autoazul/store-profit/models"
	"github.com/autoazul/store-profit/pkg/money"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCellsSimpleProduct(t *testing.T) {
	format := money.Formatter{Symbol: "€"}

	testCases := []struct {
		name         string
		product      models.Product
		prices       map[uint]decimal.Decimal
		wantPurchase string
		wantProfit   string
	}{
		{
			name:         "price and cost set",
			product:      models.Product{ID: 1, Type: models.TypeSimple, RegularPrice: dec("20.00")},
			prices:       map[uint]decimal.Decimal{1: dec("8.00")},
			wantPurchase: "€8.00",
			wantProfit:   "€12.00 (60.00%)",
		},
		{
			name:         "sale price wins over regular",
			product:      models.Product{ID: 1, Type: models.TypeSimple, RegularPrice: dec("20.00"), SalePrice: dec("10.00")},
			prices:       map[uint]decimal.Decimal{1: dec("8.00")},
			wantPurchase: "€8.00",
			wantProfit:   "€2.00 (20.00%)",
		},
		{
			name:         "no purchase price shows dashes",
			product:      models.Product{ID: 1, Type: models.TypeSimple, RegularPrice: dec("20.00")},
			prices:       map[uint]decimal.Decimal{},
			wantPurchase: "–",
			wantProfit:   "–",
		},
		{
			name:         "no sale price shows profit dash only",
			product:      models.Product{ID: 1, Type: models.TypeSimple},
			prices:       map[uint]decimal.Decimal{1: dec("8.00")},
			wantPurchase: "€8.00",
			wantProfit:   "–",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cells := Cells(&tc.product, tc.prices, format)
			assert.Equal(t, tc.wantPurchase, cells.PurchasePrice)
			assert.Equal(t, tc.wantProfit, cells.Profit)
		})
	}
}

func TestCellsVariableProduct(t *testing.T) {
	format := money.Formatter{Symbol: "€"}

	product := models.Product{
		ID:   1,
		Type: models.TypeVariable,
		Variations: []models.Variation{
			{ID: 11, Price: dec("12.00")},
			{ID: 12, Price: dec("15.00")},
			{ID: 13, Price: dec("15.00")}, // no purchase price stored
		},
	}

	testCases := []struct {
		name         string
		prices       map[uint]decimal.Decimal
		wantPurchase string
		wantProfit   string
	}{
		{
			name: "distinct costs render a range",
			prices: map[uint]decimal.Decimal{
				11: dec("5.00"), // profit 7.00
				12: dec("8.00"), // profit 7.00 as well
			},
			wantPurchase: "€5.00 – €8.00",
			wantProfit:   "€7.00",
		},
		{
			name: "equal values collapse to one",
			prices: map[uint]decimal.Decimal{
				11: dec("5.00"),
			},
			wantPurchase: "€5.00",
			wantProfit:   "€7.00",
		},
		{
			name:         "nothing stored shows dashes",
			prices:       map[uint]decimal.Decimal{},
			wantPurchase: "–",
			wantProfit:   "–",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cells := Cells(&product, tc.prices, format)
			assert.Equal(t, tc.wantPurchase, cells.PurchasePrice)
			assert.Equal(t, tc.wantProfit, cells.Profit)
		})
	}
}

func TestCellsVariableProfitRange(t *testing.T) {
	format := money.Formatter{Symbol: "€"}
	product := models.Product{
		ID:   1,
		Type: models.TypeVariable,
		Variations: []models.Variation{
			{ID: 11, Price: dec("12.00")},
			{ID: 12, Price: dec("20.00")},
		},
	}
	prices := map[uint]decimal.Decimal{
		11: dec("5.00"), // profit 7.00
		12: dec("8.00"), // profit 12.00
	}

	cells := Cells(&product, prices, format)
	assert.Equal(t, "€5.00 – €8.00", cells.PurchasePrice)
	assert.Equal(t, "€7.00 – €12.00", cells.Profit)
}

func TestCellsVariationWithoutPriceSkipped(t *testing.T) {
	format := money.Formatter{Symbol: "€"}
	product := models.Product{
		ID:   1,
		Type: models.TypeVariable,
		Variations: []models.Variation{
			{ID: 11}, // no sale price: contributes to cost range only
		},
	}
	prices := map[uint]decimal.Decimal{11: dec("5.00")}

	cells := Cells(&product, prices, format)
	assert.Equal(t, "€5.00", cells.PurchasePrice)
	assert.Equal(t, "–", cells.Profit)
}
