// internal/export/materialize.go
package export

// Column is one output column: a display title and the field key its cells
// are read from.
type Column struct {
	Title string `json:"title"`
	Key   string `json:"key"`
}

const (
	ColumnRegistry    = "idRegistro"
	ColumnParticipant = "idParticipante"
	ColumnDate        = "fechaRegistro"
	ColumnGroup       = "grupo"
)

// BaseColumns are the identity columns every row starts with.
func BaseColumns() []Column {
	return []Column{
		{Title: "ID registro", Key: ColumnRegistry},
		{Title: "ID participante", Key: ColumnParticipant},
		{Title: "Fecha de registro", Key: ColumnDate},
	}
}

// CharacteristicBlock is the column block repeated once per group slot: the
// group name followed by every field of the export table.
func CharacteristicBlock() []Column {
	cols := make([]Column, 0, len(Fields)+1)
	cols = append(cols, Column{Title: "Grupo", Key: ColumnGroup})
	for _, f := range Fields {
		cols = append(cols, Column{Title: f.Title, Key: f.Key})
	}
	return cols
}

// Table is the materialized export. Cells are float64, string, or nil for a
// blank cell.
type Table struct {
	Columns []Column `json:"columns"`
	Rows    [][]any  `json:"rows"`
	// Blocks is the number of characteristic blocks per row.
	Blocks int `json:"blocks"`
}

// Titles returns the column titles in order.
func (t Table) Titles() []string {
	titles := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		titles[i] = c.Title
	}
	return titles
}

// MaxGroupsPerRegistry counts the aggregates of every registry and returns
// the largest count.
func MaxGroupsPerRegistry(aggs []GroupAggregate) int {
	counts := make(map[string]int)
	most := 0
	for _, a := range aggs {
		counts[a.RegistryID]++
		if counts[a.RegistryID] > most {
			most = counts[a.RegistryID]
		}
	}
	return most
}

// Materialize lays the aggregates out as one row per registry id, in first
// appearance order. Each of a registry's aggregates fills the next block
// slot; slots past its group count stay blank. The block is repeated
// unchanged for every slot.
func Materialize(aggs []GroupAggregate, base, block []Column) Table {
	k := MaxGroupsPerRegistry(aggs)

	columns := make([]Column, 0, len(base)+k*len(block))
	columns = append(columns, base...)
	for i := 0; i < k; i++ {
		columns = append(columns, block...)
	}

	var order []string
	byRegistry := make(map[string][]GroupAggregate)
	for _, a := range aggs {
		if _, seen := byRegistry[a.RegistryID]; !seen {
			order = append(order, a.RegistryID)
		}
		byRegistry[a.RegistryID] = append(byRegistry[a.RegistryID], a)
	}

	rows := make([][]any, 0, len(order))
	for _, id := range order {
		group := byRegistry[id]
		row := make([]any, len(columns))
		for i, c := range base {
			row[i] = group[0].Value(c.Key)
		}
		for slot, a := range group {
			offset := len(base) + slot*len(block)
			for i, c := range block {
				row[offset+i] = a.Value(c.Key)
			}
		}
		rows = append(rows, row)
	}

	return Table{Columns: columns, Rows: rows, Blocks: k}
}
