package eval

import (
	"fmt"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/renderer"
	"github.com/olekukonko/tablewriter/tw"
)

// TableFormatter renders datasets as markdown tables, optionally with a
// predicate's row mask alongside the data.
type TableFormatter struct {
	// MaxWidth is the maximum width for a cell value
	MaxWidth int
	// TruncateString is the string to append when truncating
	TruncateString string
}

// NewTableFormatter creates a table formatter with default settings.
func NewTableFormatter() *TableFormatter {
	return &TableFormatter{
		MaxWidth:       50,
		TruncateString: "...",
	}
}

// FormatDataset renders the dataset as a markdown table.
func (tf *TableFormatter) FormatDataset(ds *Dataset) string {
	return tf.format(ds, nil, "")
}

// FormatMask renders the dataset with an extra column holding the boolean
// mask, typically a predicate's result. The mask must have one entry per
// row.
func (tf *TableFormatter) FormatMask(ds *Dataset, mask []bool, maskName string) string {
	if maskName == "" {
		maskName = "match"
	}
	return tf.format(ds, mask, maskName)
}

func (tf *TableFormatter) format(ds *Dataset, mask []bool, maskName string) string {
	if ds == nil || len(ds.Fields()) == 0 {
		return "_Empty dataset_"
	}
	if ds.Len() == 0 {
		return fmt.Sprintf("_Columns: %v_\n\n_No rows_", ds.Fields())
	}

	fields := ds.Fields()
	headers := make([]string, 0, len(fields)+1)
	headers = append(headers, fields...)
	if mask != nil {
		headers = append(headers, maskName)
	}

	tableString := &strings.Builder{}

	alignment := make([]tw.Align, len(headers))
	for i := range alignment {
		alignment[i] = tw.AlignNone
	}

	table := tablewriter.NewTable(tableString,
		tablewriter.WithRenderer(renderer.NewMarkdown()),
		tablewriter.WithAlignment(alignment),
		tablewriter.WithHeaderAutoFormat(tw.Off),
	)
	table.Header(headers)

	matched := 0
	for i := 0; i < ds.Len(); i++ {
		row := make([]string, 0, len(headers))
		for _, field := range fields {
			row = append(row, tf.formatCell(ds.Column(field).Get(i).Raw()))
		}
		if mask != nil {
			row = append(row, fmt.Sprintf("%t", mask[i]))
			if mask[i] {
				matched++
			}
		}
		table.Append(row)
	}

	table.Render()

	if mask != nil {
		tableString.WriteString(fmt.Sprintf("\n_%d of %d rows match_\n", matched, ds.Len()))
	} else {
		tableString.WriteString(fmt.Sprintf("\n_%d rows_\n", ds.Len()))
	}

	return tableString.String()
}

func (tf *TableFormatter) formatCell(s string) string {
	if tf.MaxWidth <= 0 || len(s) <= tf.MaxWidth {
		return s
	}
	// Truncate on a rune boundary so multibyte free text never splits
	// mid-character.
	runes := []rune(s)
	if len(runes) <= tf.MaxWidth {
		return s
	}
	return string(runes[:tf.MaxWidth]) + tf.TruncateString
}
