package seeder

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/config"
	"github.com/shopspring/decimal"
)

// ErrInvariant marks generated rows that break a cross-table invariant.
var ErrInvariant = errors.New("generated data violates invariant")

const (
	returnChance      = 0.02
	meanShippingDelay = 12.0
	stdShippingDelay  = 10.0
)

var (
	statusWeights = []weighted[OrderStatus]{
		{StatusPlaced, 0.05},
		{StatusShipped, 0.25},
		{StatusDelivered, 0.60},
		{StatusCancelled, 0.05},
		{StatusReturned, 0.05},
	}
	carriers      = []string{"DHL", "FedEx", "BlueDart", "IndiaPost", "UPS", "ShipRocket"}
	returnReasons = []string{"Damaged", "Not as described", "Wrong item", "Buyer remorse"}
)

func GenerateTransactions(counts config.Counts, ref *Reference, products []Product, s Streams) (*Transactions, error) {
	if err := counts.Validate(); err != nil {
		return nil, err
	}
	if ref == nil || len(ref.Customers) == 0 || len(ref.Warehouses) == 0 {
		return nil, fmt.Errorf("transactions need at least one customer and one warehouse")
	}
	if len(products) == 0 {
		return nil, fmt.Errorf("transactions need at least one product")
	}

	codes := ref.Rates.Codes()
	if len(codes) == 0 {
		return nil, fmt.Errorf("transactions need at least one exchange rate")
	}
	tx := &Transactions{
		Orders:    make([]Order, 0, counts.Orders),
		Shipments: make([]Shipment, 0, counts.Orders),
	}

	for i := 1; i <= counts.Orders; i++ {
		orderID := OrderID(i)
		customer := ref.Customers[s.Rand.Intn(len(ref.Customers))]
		orderedAt := s.Faker.TimeWithinYears(1)
		currency := pick(s.Rand, codes)
		rate := ref.Rates.Rate(currency)

		itemCount := intBetween(s.Rand, 1, counts.MaxItemsPerOrder)
		items := make([]OrderItem, 0, itemCount)
		total := decimal.Zero
		for line := 1; line <= itemCount; line++ {
			product := products[s.Rand.Intn(len(products))]
			quantity := intBetween(s.Rand, 1, counts.MaxQuantity)
			unit := convertPrice(s.Rand, product.PriceUSD, rate)

			item := OrderItem{
				OrderID:   orderID,
				LineNo:    line,
				ProductID: product.ID,
				Quantity:  quantity,
				UnitPrice: unit,
			}
			total = total.Add(item.LineTotal())
			items = append(items, item)
		}

		order := Order{
			ID:                 orderID,
			CustomerID:         customer.ID,
			OrderedAt:          orderedAt,
			Timezone:           customer.Timezone,
			TotalAmount:        total.Round(2),
			Currency:           currency,
			Status:             weightedChoice(s.Rand, statusWeights),
			WarehouseID:        ref.Warehouses[s.Rand.Intn(len(ref.Warehouses))].ID,
			ShippingDelayHours: shippingDelay(s.Rand),
		}
		if err := verifyOrderTotal(order, items); err != nil {
			return nil, err
		}

		tx.Orders = append(tx.Orders, order)
		tx.OrderItems = append(tx.OrderItems, items...)

		shipment := newShipment(s.Rand, len(tx.Shipments)+1, order)
		tx.Shipments = append(tx.Shipments, shipment)

		if order.Status == StatusReturned || s.Rand.Float64() < returnChance {
			tx.Returns = append(tx.Returns, newReturn(s.Rand, len(tx.Returns)+1, shipment, items))
		}
	}

	return tx, nil
}

// convertPrice perturbs a base-currency price by up to ±20% and expresses it
// in the currency whose rate-to-base is rate.
func convertPrice(r *rand.Rand, base decimal.Decimal, rate float64) decimal.Decimal {
	if rate <= 0 {
		rate = 1.0
	}
	perturbed := base.Mul(decimal.NewFromFloat(uniform(r, 0.8, 1.2))).Round(2)
	return perturbed.Div(decimal.NewFromFloat(rate)).Round(2)
}

func shippingDelay(r *rand.Rand) int {
	hours := r.NormFloat64()*stdShippingDelay + meanShippingDelay
	return int(math.Max(0, math.Trunc(hours)))
}

func newShipment(r *rand.Rand, seq int, order Order) Shipment {
	shippedAt := order.OrderedAt.Add(time.Duration(intBetween(r, 1, 48)) * time.Hour)
	deliveredAt := shippedAt.Add(time.Duration(intBetween(r, 12, 240)) * time.Hour)

	shipment := Shipment{
		ID:        ShipmentID(seq),
		OrderID:   order.ID,
		ShippedAt: shippedAt,
		Status:    order.Status,
		Carrier:   pick(r, carriers),
	}
	if order.Status.Completed() {
		shipment.DeliveredAt = &deliveredAt
	}
	return shipment
}

// newReturn picks one line of the order being generated; items must be that
// order's own lines.
func newReturn(r *rand.Rand, seq int, shipment Shipment, items []OrderItem) Return {
	item := items[r.Intn(len(items))]
	refund := item.LineTotal().Mul(decimal.NewFromFloat(uniform(r, 0.5, 1.0))).Round(2)

	return Return{
		ID:           ReturnID(seq),
		OrderID:      shipment.OrderID,
		ProductID:    item.ProductID,
		Reason:       pick(r, returnReasons),
		ReturnedAt:   shipment.ShippedAt.AddDate(0, 0, intBetween(r, 2, 20)),
		RefundAmount: refund,
	}
}

func verifyOrderTotal(order Order, items []OrderItem) error {
	if len(items) == 0 {
		return fmt.Errorf("%w: order %s has no items", ErrInvariant, order.ID)
	}
	sum := decimal.Zero
	for _, item := range items {
		if item.OrderID != order.ID {
			return fmt.Errorf("%w: item for %s attached to order %s", ErrInvariant, item.OrderID, order.ID)
		}
		sum = sum.Add(item.LineTotal())
	}
	if !sum.Round(2).Equal(order.TotalAmount) {
		return fmt.Errorf("%w: order %s total %s != item sum %s", ErrInvariant, order.ID, order.TotalAmount, sum.Round(2))
	}
	return nil
}
