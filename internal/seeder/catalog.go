package seeder

import (
	"fmt"
)

const (
	minPriceUSD = 5.0
	maxPriceUSD = 2000.0
)

func GenerateCatalog(n int, ref *Reference, s Streams) ([]Product, error) {
	if n <= 0 {
		return nil, fmt.Errorf("product count must be positive, got %d", n)
	}
	if ref == nil || len(ref.Categories) == 0 || len(ref.Suppliers) == 0 {
		return nil, fmt.Errorf("catalog needs at least one category and one supplier")
	}

	codes := ref.Rates.Codes()
	if len(codes) == 0 {
		return nil, fmt.Errorf("catalog needs at least one exchange rate")
	}
	products := make([]Product, 0, n)
	for i := 1; i <= n; i++ {
		category := ref.Categories[s.Rand.Intn(len(ref.Categories))]
		supplier := ref.Suppliers[s.Rand.Intn(len(ref.Suppliers))]
		price := money(uniform(s.Rand, minPriceUSD, maxPriceUSD))
		currency := pick(s.Rand, codes)
		created := s.Faker.TimeWithinYears(2)

		products = append(products, Product{
			ID:         ProductID(i),
			Name:       fmt.Sprintf("Product %d %s", i, s.Faker.Word()),
			CategoryID: category.ID,
			SupplierID: supplier.ID,
			PriceUSD:   price,
			Currency:   currency,
			CreatedAt:  created,
		})
	}

	return products, nil
}
