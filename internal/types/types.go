package types

// Table is one generated entity in column order, the shape shared by the
// flat-file exporters and the bulk loader.
type Table struct {
	Name    string
	Columns []string
	Rows    [][]interface{}
}

func (t Table) Len() int {
	return len(t.Rows)
}

// Batches splits the rows into chunks of at most size rows. A non-positive
// size yields a single chunk.
func (t Table) Batches(size int) [][][]interface{} {
	if len(t.Rows) == 0 {
		return nil
	}
	if size <= 0 || size >= len(t.Rows) {
		return [][][]interface{}{t.Rows}
	}

	batches := make([][][]interface{}, 0, (len(t.Rows)+size-1)/size)
	for start := 0; start < len(t.Rows); start += size {
		end := start + size
		if end > len(t.Rows) {
			end = len(t.Rows)
		}
		batches = append(batches, t.Rows[start:end])
	}
	return batches
}

type TableCount struct {
	Name string `json:"name" yaml:"name"`
	Rows int    `json:"rows" yaml:"rows"`
}

func Counts(tables []Table) []TableCount {
	counts := make([]TableCount, 0, len(tables))
	for _, t := range tables {
		counts = append(counts, TableCount{Name: t.Name, Rows: t.Len()})
	}
	return counts
}
