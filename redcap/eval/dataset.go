package eval

import (
	"fmt"

	"github.com/croften/redcap-logic/redcap"
)

// Dataset is an in-memory tabular view of study data: named columns of
// response values, all with the same row count. The loader collaborators
// materialize raw string tables; a Dataset classifies them into value
// arrays once at load time.
type Dataset struct {
	fields []string
	cols   map[string]*redcap.ValueArray
	rows   int
}

// NewDataset creates an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{
		cols: make(map[string]*redcap.ValueArray),
	}
}

// AddColumn classifies raws with the default classifier and adds the
// column. The first column fixes the dataset's row count.
func (d *Dataset) AddColumn(name string, raws []string) error {
	return d.AddColumnArray(name, redcap.NewValueArray(raws))
}

// AddColumnArray adds a pre-built column.
func (d *Dataset) AddColumnArray(name string, col *redcap.ValueArray) error {
	if _, exists := d.cols[name]; exists {
		return fmt.Errorf("eval: duplicate column %q", name)
	}
	if len(d.fields) > 0 && col.Len() != d.rows {
		return fmt.Errorf("eval: column %q has %d rows, dataset has %d", name, col.Len(), d.rows)
	}
	if len(d.fields) == 0 {
		d.rows = col.Len()
	}
	d.fields = append(d.fields, name)
	d.cols[name] = col
	return nil
}

// HasField reports whether the dataset has a column with the given name.
func (d *Dataset) HasField(name string) bool {
	_, ok := d.cols[name]
	return ok
}

// Column returns the named column, or nil if absent.
func (d *Dataset) Column(name string) *redcap.ValueArray {
	return d.cols[name]
}

// Fields returns the column names in insertion order.
func (d *Dataset) Fields() []string {
	out := make([]string, len(d.fields))
	copy(out, d.fields)
	return out
}

// Len returns the row count.
func (d *Dataset) Len() int { return d.rows }
