package seeder

import (
	"fmt"
	"sort"
)

const BaseCurrency = "USD"

// Currencies is the fixed set orders and products are priced in, in draw order.
var Currencies = []string{"USD", "EUR", "INR", "GBP", "JPY", "AUD", "CAD"}

var defaultRates = map[string]float64{
	"USD": 1.0,
	"EUR": 1.08,
	"INR": 0.012,
	"GBP": 1.25,
	"JPY": 0.0068,
	"AUD": 0.64,
	"CAD": 0.74,
}

// RateTable maps a currency code to the number of base-currency units one
// unit of that currency is worth.
type RateTable struct {
	rates map[string]float64
}

func NewRateTable(rates map[string]float64) (RateTable, error) {
	if len(rates) == 0 {
		return RateTable{}, fmt.Errorf("rate table is empty")
	}
	copied := make(map[string]float64, len(rates))
	for code, rate := range rates {
		if rate <= 0 {
			return RateTable{}, fmt.Errorf("rate for %s must be positive, got %v", code, rate)
		}
		copied[code] = rate
	}
	if copied[BaseCurrency] != 1.0 {
		return RateTable{}, fmt.Errorf("base currency %s must have rate 1.0", BaseCurrency)
	}
	return RateTable{rates: copied}, nil
}

func DefaultRateTable() RateTable {
	table, err := NewRateTable(defaultRates)
	if err != nil {
		panic(err)
	}
	return table
}

// Rate returns the rate for code. Unknown or non-positive rates read as 1.0
// so conversion never divides by zero.
func (t RateTable) Rate(code string) float64 {
	rate, ok := t.rates[code]
	if !ok || rate <= 0 {
		return 1.0
	}
	return rate
}

// Codes returns the currencies in the fixed draw order, followed by any
// extra codes sorted alphabetically.
func (t RateTable) Codes() []string {
	codes := make([]string, 0, len(t.rates))
	seen := make(map[string]bool, len(t.rates))
	for _, code := range Currencies {
		if _, ok := t.rates[code]; ok {
			codes = append(codes, code)
			seen[code] = true
		}
	}
	var extra []string
	for code := range t.rates {
		if !seen[code] {
			extra = append(extra, code)
		}
	}
	sort.Strings(extra)
	return append(codes, extra...)
}
