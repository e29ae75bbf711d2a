package seeder

import (
	"fmt"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
)

// rootCategories is how many leading category ids are always roots.
const rootCategories = 5

var (
	timezones = []string{
		"UTC", "Asia/Kolkata", "Europe/London", "America/New_York",
		"Asia/Singapore", "Europe/Berlin", "America/Los_Angeles",
	}
	warehouseCities = []string{"Mumbai", "Bengaluru", "Delhi", "London", "New York", "Berlin", "Singapore", "Sydney"}
)

func CustomerID(i int) string  { return fmt.Sprintf("C%05d", i) }
func SupplierID(i int) string  { return fmt.Sprintf("S%04d", i) }
func WarehouseID(i int) string { return fmt.Sprintf("W%03d", i) }
func ProductID(i int) string   { return fmt.Sprintf("P%05d", i) }
func OrderID(i int) string     { return fmt.Sprintf("O%08d", i) }
func ShipmentID(i int) string  { return fmt.Sprintf("SH%08d", i) }
func ReturnID(i int) string    { return fmt.Sprintf("R%08d", i) }

func GenerateReference(counts config.Counts, s Streams) (*Reference, error) {
	if err := counts.Validate(); err != nil {
		return nil, err
	}

	ref := &Reference{
		Customers:  make([]Customer, 0, counts.Customers),
		Suppliers:  make([]Supplier, 0, counts.Suppliers),
		Warehouses: make([]Warehouse, 0, counts.Warehouses),
		Categories: make([]Category, 0, counts.Categories),
		Rates:      DefaultRateTable(),
	}

	for i := 1; i <= counts.Customers; i++ {
		tz := pick(s.Rand, timezones)
		created := s.Faker.TimeWithinYears(3)
		ref.Customers = append(ref.Customers, Customer{
			ID:        CustomerID(i),
			Name:      s.Faker.Name(),
			Email:     fmt.Sprintf("user%d@%s", i, s.Faker.FreeEmailDomain()),
			CreatedAt: created,
			Country:   s.Faker.Country(),
			Timezone:  tz,
		})
	}

	for i := 1; i <= counts.Suppliers; i++ {
		ref.Suppliers = append(ref.Suppliers, Supplier{
			ID:      SupplierID(i),
			Name:    s.Faker.Company(),
			Rating:  round2(uniform(s.Rand, 2.5, 5.0)),
			Country: s.Faker.Country(),
		})
	}

	for i := 1; i <= counts.Warehouses; i++ {
		ref.Warehouses = append(ref.Warehouses, Warehouse{
			ID:       WarehouseID(i),
			Name:     fmt.Sprintf("WH-%d", i),
			Country:  s.Faker.Country(),
			City:     pick(s.Rand, warehouseCities),
			Capacity: intBetween(s.Rand, 10000, 200000),
		})
	}

	for i := 1; i <= counts.Categories; i++ {
		category := Category{ID: i, Name: fmt.Sprintf("Category %d", i)}
		if i > rootCategories {
			parent := intBetween(s.Rand, 1, min(rootCategories, i-1))
			category.ParentID = &parent
		}
		ref.Categories = append(ref.Categories, category)
	}

	today := s.Now.Truncate(24 * time.Hour)
	for _, code := range ref.Rates.Codes() {
		ref.ExchangeRates = append(ref.ExchangeRates, ExchangeRate{
			Currency:    code,
			RateToUSD:   ref.Rates.Rate(code),
			LastUpdated: today,
		})
	}

	return ref, nil
}
