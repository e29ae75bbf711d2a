package seeder

import (
	"time"

	"github.com/Lumos-Labs-HQ/shopseed/internal/types"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPlaced    OrderStatus = "placed"
	StatusShipped   OrderStatus = "shipped"
	StatusDelivered OrderStatus = "delivered"
	StatusCancelled OrderStatus = "cancelled"
	StatusReturned  OrderStatus = "returned"
)

// Completed reports whether a shipment for this status carries a delivery time.
func (s OrderStatus) Completed() bool {
	return s == StatusDelivered || s == StatusReturned
}

type Customer struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
	Country   string
	Timezone  string
}

type Supplier struct {
	ID      string
	Name    string
	Rating  float64
	Country string
}

type Warehouse struct {
	ID       string
	Name     string
	Country  string
	City     string
	Capacity int
}

type Category struct {
	ID       int
	Name     string
	ParentID *int
}

type ExchangeRate struct {
	Currency    string
	RateToUSD   float64
	LastUpdated time.Time
}

type Product struct {
	ID         string
	Name       string
	CategoryID int
	SupplierID string
	PriceUSD   decimal.Decimal
	Currency   string
	CreatedAt  time.Time
}

type Order struct {
	ID                 string
	CustomerID         string
	OrderedAt          time.Time
	Timezone           string
	TotalAmount        decimal.Decimal
	Currency           string
	Status             OrderStatus
	WarehouseID        string
	ShippingDelayHours int
}

type OrderItem struct {
	OrderID   string
	LineNo    int
	ProductID string
	Quantity  int
	UnitPrice decimal.Decimal
}

// LineTotal is unit price times quantity in the order's currency.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Shipment struct {
	ID          string
	OrderID     string
	ShippedAt   time.Time
	DeliveredAt *time.Time
	Status      OrderStatus
	Carrier     string
}

type Return struct {
	ID           string
	OrderID      string
	ProductID    string
	Reason       string
	ReturnedAt   time.Time
	RefundAmount decimal.Decimal
}

// Reference is the output of the first stage. Nothing in it depends on any
// other generated entity.
type Reference struct {
	Customers     []Customer
	Suppliers     []Supplier
	Warehouses    []Warehouse
	Categories    []Category
	ExchangeRates []ExchangeRate
	Rates         RateTable
}

type Transactions struct {
	Orders     []Order
	OrderItems []OrderItem
	Shipments  []Shipment
	Returns    []Return
}

type Dataset struct {
	Reference    *Reference
	Products     []Product
	Transactions *Transactions
}

var (
	customerColumns     = []string{"customer_id", "name", "email", "created_at", "country", "timezone"}
	supplierColumns     = []string{"supplier_id", "name", "rating", "country"}
	warehouseColumns    = []string{"warehouse_id", "name", "country", "city", "capacity"}
	categoryColumns     = []string{"category_id", "name", "parent_id"}
	exchangeRateColumns = []string{"currency", "rate_to_usd", "last_updated"}
	productColumns      = []string{"product_id", "name", "category_id", "supplier_id", "price_usd", "currency", "created_at"}
	orderColumns        = []string{"order_id", "customer_id", "order_datetime", "order_timezone", "total_amount", "currency", "status", "warehouse_id", "shipping_delay_hours"}
	orderItemColumns    = []string{"order_id", "line_no", "product_id", "quantity", "unit_price"}
	shipmentColumns     = []string{"shipment_id", "order_id", "shipped_at", "delivered_at", "status", "carrier"}
	returnColumns       = []string{"return_id", "order_id", "product_id", "return_reason", "return_datetime", "refund_amount"}
)

// Tables flattens the dataset into one table per entity, in insertion order.
func (d *Dataset) Tables() []types.Table {
	ref := d.Reference
	tx := d.Transactions

	tables := []types.Table{
		{Name: "customers", Columns: customerColumns, Rows: make([][]interface{}, 0, len(ref.Customers))},
		{Name: "suppliers", Columns: supplierColumns, Rows: make([][]interface{}, 0, len(ref.Suppliers))},
		{Name: "warehouses", Columns: warehouseColumns, Rows: make([][]interface{}, 0, len(ref.Warehouses))},
		{Name: "categories", Columns: categoryColumns, Rows: make([][]interface{}, 0, len(ref.Categories))},
		{Name: "products", Columns: productColumns, Rows: make([][]interface{}, 0, len(d.Products))},
		{Name: "exchange_rates", Columns: exchangeRateColumns, Rows: make([][]interface{}, 0, len(ref.ExchangeRates))},
		{Name: "orders", Columns: orderColumns, Rows: make([][]interface{}, 0, len(tx.Orders))},
		{Name: "order_items", Columns: orderItemColumns, Rows: make([][]interface{}, 0, len(tx.OrderItems))},
		{Name: "shipments", Columns: shipmentColumns, Rows: make([][]interface{}, 0, len(tx.Shipments))},
		{Name: "returns", Columns: returnColumns, Rows: make([][]interface{}, 0, len(tx.Returns))},
	}

	for _, c := range ref.Customers {
		tables[0].Rows = append(tables[0].Rows, []interface{}{c.ID, c.Name, c.Email, c.CreatedAt, c.Country, c.Timezone})
	}
	for _, s := range ref.Suppliers {
		tables[1].Rows = append(tables[1].Rows, []interface{}{s.ID, s.Name, s.Rating, s.Country})
	}
	for _, w := range ref.Warehouses {
		tables[2].Rows = append(tables[2].Rows, []interface{}{w.ID, w.Name, w.Country, w.City, w.Capacity})
	}
	for _, c := range ref.Categories {
		var parent interface{}
		if c.ParentID != nil {
			parent = *c.ParentID
		}
		tables[3].Rows = append(tables[3].Rows, []interface{}{c.ID, c.Name, parent})
	}
	for _, p := range d.Products {
		tables[4].Rows = append(tables[4].Rows, []interface{}{p.ID, p.Name, p.CategoryID, p.SupplierID, p.PriceUSD, p.Currency, p.CreatedAt})
	}
	for _, r := range ref.ExchangeRates {
		tables[5].Rows = append(tables[5].Rows, []interface{}{r.Currency, r.RateToUSD, r.LastUpdated.Format(time.DateOnly)})
	}
	for _, o := range tx.Orders {
		tables[6].Rows = append(tables[6].Rows, []interface{}{o.ID, o.CustomerID, o.OrderedAt, o.Timezone, o.TotalAmount, o.Currency, string(o.Status), o.WarehouseID, o.ShippingDelayHours})
	}
	for _, i := range tx.OrderItems {
		tables[7].Rows = append(tables[7].Rows, []interface{}{i.OrderID, i.LineNo, i.ProductID, i.Quantity, i.UnitPrice})
	}
	for _, s := range tx.Shipments {
		var delivered interface{}
		if s.DeliveredAt != nil {
			delivered = *s.DeliveredAt
		}
		tables[8].Rows = append(tables[8].Rows, []interface{}{s.ID, s.OrderID, s.ShippedAt, delivered, string(s.Status), s.Carrier})
	}
	for _, r := range tx.Returns {
		tables[9].Rows = append(tables[9].Rows, []interface{}{r.ID, r.OrderID, r.ProductID, r.Reason, r.ReturnedAt, r.RefundAmount})
	}

	return tables
}
