package seeder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateTable(t *testing.T) {
	_, err := NewRateTable(nil)
	assert.Error(t, err)

	_, err = NewRateTable(map[string]float64{"USD": 1, "EUR": 0})
	assert.ErrorContains(t, err, "EUR")

	_, err = NewRateTable(map[string]float64{"USD": 2})
	assert.ErrorContains(t, err, "base currency")

	table, err := NewRateTable(map[string]float64{"USD": 1, "CHF": 1.1, "EUR": 1.08})
	require.NoError(t, err)
	assert.Equal(t, []string{"USD", "EUR", "CHF"}, table.Codes())
}

func TestDefaultRateTable(t *testing.T) {
	table := DefaultRateTable()
	assert.Equal(t, Currencies, table.Codes())
	assert.Equal(t, 1.0, table.Rate(BaseCurrency))
	assert.Equal(t, 0.012, table.Rate("INR"))
}

func TestRateFallsBackOnZeroOrMissing(t *testing.T) {
	table := RateTable{rates: map[string]float64{"EUR": 0, "GBP": -2}}
	assert.Equal(t, 1.0, table.Rate("EUR"))
	assert.Equal(t, 1.0, table.Rate("GBP"))
	assert.Equal(t, 1.0, table.Rate("XYZ"))
}

func TestConvertPriceWithZeroRate(t *testing.T) {
	r := NewStreams(3, 4, fixedNow).Rand
	base := decimal.RequireFromString("100.00")

	assert.NotPanics(t, func() {
		price := convertPrice(r, base, 0)
		assert.True(t, price.GreaterThanOrEqual(decimal.RequireFromString("80")))
		assert.True(t, price.LessThanOrEqual(decimal.RequireFromString("120")))
	})
}

func TestTransactionsWithZeroRateCurrency(t *testing.T) {
	counts := scenarioCounts()
	s := NewStreams(5, 6, fixedNow)
	ref, err := GenerateReference(counts, s)
	require.NoError(t, err)
	ref.Rates = RateTable{rates: map[string]float64{"EUR": 0}}

	products, err := GenerateCatalog(counts.Products, ref, s)
	require.NoError(t, err)
	tx, err := GenerateTransactions(counts, ref, products, s)
	require.NoError(t, err)

	prices := make(map[string]decimal.Decimal, len(products))
	for _, p := range products {
		prices[p.ID] = p.PriceUSD
	}
	for _, o := range tx.Orders {
		assert.Equal(t, "EUR", o.Currency)
	}
	for _, item := range tx.OrderItems {
		base := prices[item.ProductID]
		low := base.Mul(decimal.NewFromFloat(0.8)).Sub(decimal.NewFromFloat(0.01))
		high := base.Mul(decimal.NewFromFloat(1.2)).Add(decimal.NewFromFloat(0.01))
		assert.True(t, item.UnitPrice.GreaterThanOrEqual(low), "unit %s below %s", item.UnitPrice, low)
		assert.True(t, item.UnitPrice.LessThanOrEqual(high), "unit %s above %s", item.UnitPrice, high)
	}
}
