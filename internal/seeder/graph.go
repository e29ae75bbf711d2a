package seeder

import "fmt"

// TableInfo names a target table and the tables its foreign keys point at.
type TableInfo struct {
	Name         string
	Dependencies []string
}

// SchemaTables lists the target tables and their foreign keys in the order
// they are registered with the graph.
func SchemaTables() []*TableInfo {
	return []*TableInfo{
		{Name: "customers"},
		{Name: "suppliers"},
		{Name: "warehouses"},
		{Name: "categories", Dependencies: []string{"categories"}},
		{Name: "products", Dependencies: []string{"categories", "suppliers"}},
		{Name: "exchange_rates"},
		{Name: "orders", Dependencies: []string{"customers", "warehouses"}},
		{Name: "order_items", Dependencies: []string{"orders", "products"}},
		{Name: "shipments", Dependencies: []string{"orders"}},
		{Name: "returns", Dependencies: []string{"orders", "products"}},
	}
}

type DependencyGraph struct {
	tables map[string]*TableInfo
	names  []string
	order  []string
}

func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		tables: make(map[string]*TableInfo),
	}
}

func NewSchemaGraph() *DependencyGraph {
	g := NewDependencyGraph()
	for _, table := range SchemaTables() {
		g.AddTable(table)
	}
	return g
}

func (g *DependencyGraph) AddTable(table *TableInfo) {
	if _, exists := g.tables[table.Name]; !exists {
		g.names = append(g.names, table.Name)
	}
	g.tables[table.Name] = table
	g.order = nil
}

// BuildInsertionOrder returns every table after the tables it depends on.
// Ties keep registration order, so the result is stable across runs.
func (g *DependencyGraph) BuildInsertionOrder() ([]string, error) {
	visited := make(map[string]bool)
	temp := make(map[string]bool)
	var order []string

	var visit func(string) error
	visit = func(tableName string) error {
		if temp[tableName] {
			return fmt.Errorf("circular dependency detected involving table: %s", tableName)
		}
		if visited[tableName] {
			return nil
		}

		table, ok := g.tables[tableName]
		if !ok {
			return fmt.Errorf("table %s is referenced but not registered", tableName)
		}

		temp[tableName] = true
		for _, dep := range table.Dependencies {
			if dep == tableName {
				continue // self-references are satisfied row by row
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		temp[tableName] = false
		visited[tableName] = true
		order = append(order, tableName)
		return nil
	}

	for _, tableName := range g.names {
		if err := visit(tableName); err != nil {
			return nil, err
		}
	}

	g.order = order
	return order, nil
}

func (g *DependencyGraph) InsertionOrder() ([]string, error) {
	if g.order != nil {
		return g.order, nil
	}
	return g.BuildInsertionOrder()
}

// TruncationOrder is the insertion order reversed: dependents first.
func (g *DependencyGraph) TruncationOrder() ([]string, error) {
	order, err := g.InsertionOrder()
	if err != nil {
		return nil, err
	}
	reversed := make([]string, len(order))
	for i, name := range order {
		reversed[len(order)-1-i] = name
	}
	return reversed, nil
}
