package eval

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croften/redcap-logic/redcap"
)

func TestDatasetColumns(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddColumn("record_id", []string{"1", "2", "3"}))
	require.NoError(t, ds.AddColumn("bmi", []string{"23.6", "", "31.2"}))

	assert.Equal(t, 3, ds.Len())
	assert.Equal(t, []string{"record_id", "bmi"}, ds.Fields())
	assert.True(t, ds.HasField("bmi"))
	assert.False(t, ds.HasField("weight"))
	assert.Nil(t, ds.Column("weight"))

	col := ds.Column("bmi")
	require.NotNil(t, col)
	assert.Equal(t, []string{"23.6", "", "31.2"}, col.Raws())
	assert.Equal(t, redcap.CategoryMissing, col.Get(1).Category())
}

func TestDatasetAddColumnErrors(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddColumn("a", []string{"1", "2"}))

	err := ds.AddColumn("a", []string{"3", "4"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate")

	err = ds.AddColumn("b", []string{"1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rows")

	// The failed adds must not corrupt the dataset.
	assert.Equal(t, []string{"a"}, ds.Fields())
	assert.Equal(t, 2, ds.Len())
}

func TestDatasetCustomClassifierColumn(t *testing.T) {
	c := redcap.NewClassifier(redcap.Config{
		MissingCodes: []string{"NA-2"},
		DateLayouts:  redcap.DefaultDateLayouts,
	})

	ds := NewDataset()
	require.NoError(t, ds.AddColumnArray("status", c.Array([]string{"1", "NA-2"})))

	col := ds.Column("status")
	assert.Equal(t, redcap.CategoryCode, col.Get(1).Category())
}

func TestTableFormatterDataset(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddColumn("record_id", []string{"1", "2"}))
	require.NoError(t, ds.AddColumn("status", []string{"Healthy", ""}))

	f := NewTableFormatter()
	out := f.FormatDataset(ds)
	assert.Contains(t, out, "record_id")
	assert.Contains(t, out, "Healthy")
}

func TestTableFormatterMask(t *testing.T) {
	ds := NewDataset()
	require.NoError(t, ds.AddColumn("record_id", []string{"1", "2", "3"}))

	f := NewTableFormatter()
	out := f.FormatMask(ds, []bool{true, false, true}, "eligible")
	assert.Contains(t, out, "eligible")
	assert.Contains(t, out, "2 of 3 rows match")
}

func TestTableFormatterTruncation(t *testing.T) {
	ds := NewDataset()
	long := strings.Repeat("x", 200)
	require.NoError(t, ds.AddColumn("note", []string{long}))

	f := NewTableFormatter()
	f.MaxWidth = 10
	out := f.FormatDataset(ds)
	assert.NotContains(t, out, long)
	assert.Contains(t, out, f.TruncateString)
}

func TestTableFormatterTruncationMultibyte(t *testing.T) {
	ds := NewDataset()
	long := strings.Repeat("é", 30)
	require.NoError(t, ds.AddColumn("note", []string{long}))

	f := NewTableFormatter()
	f.MaxWidth = 10
	out := f.FormatDataset(ds)

	// Truncation lands on a rune boundary, never mid-character.
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 10)+f.TruncateString)
	assert.NotContains(t, out, strings.Repeat("é", 11))

	// A value over the byte limit but within the rune limit stays whole.
	short := strings.Repeat("é", 8)
	ds2 := NewDataset()
	require.NoError(t, ds2.AddColumn("note", []string{short}))
	out2 := f.FormatDataset(ds2)
	assert.Contains(t, out2, short)
	assert.NotContains(t, out2, f.TruncateString)
}
