package seeder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaInsertionOrder(t *testing.T) {
	g := NewSchemaGraph()

	order, err := g.InsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"customers", "suppliers", "warehouses", "categories", "products",
		"exchange_rates", "orders", "order_items", "shipments", "returns",
	}, order)

	truncate, err := g.TruncationOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"returns", "shipments", "order_items", "orders", "exchange_rates",
		"products", "categories", "warehouses", "suppliers", "customers",
	}, truncate)
}

func TestInsertionOrderPutsDependenciesFirst(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(&TableInfo{Name: "returns", Dependencies: []string{"orders"}})
	g.AddTable(&TableInfo{Name: "orders", Dependencies: []string{"customers"}})
	g.AddTable(&TableInfo{Name: "customers"})

	order, err := g.BuildInsertionOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"customers", "orders", "returns"}, order)
}

func TestInsertionOrderDetectsCycles(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(&TableInfo{Name: "a", Dependencies: []string{"b"}})
	g.AddTable(&TableInfo{Name: "b", Dependencies: []string{"a"}})

	_, err := g.BuildInsertionOrder()
	assert.ErrorContains(t, err, "circular dependency")
}

func TestInsertionOrderUnknownTable(t *testing.T) {
	g := NewDependencyGraph()
	g.AddTable(&TableInfo{Name: "orders", Dependencies: []string{"customers"}})

	_, err := g.BuildInsertionOrder()
	assert.ErrorContains(t, err, "not registered")
}

func TestTablesFollowSchemaOrder(t *testing.T) {
	ds := generate(t, scenarioCounts(), 5)
	order, err := NewSchemaGraph().InsertionOrder()
	require.NoError(t, err)

	tables := ds.Tables()
	require.Len(t, tables, len(order))
	for i, table := range tables {
		assert.Equal(t, order[i], table.Name)
		for _, row := range table.Rows {
			require.Len(t, row, len(table.Columns), table.Name)
		}
	}
}
