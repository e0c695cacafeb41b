package report

import (
	"errors"
	"fmt"
	"strings"
)

const tableClass = "table table-bordered table-striped table-hover"

// ErrShapeMismatch is returned when records in one table do not share the same columns.
var ErrShapeMismatch = errors.New("records do not share the same columns")

// RenderTable turns records into an HTML table. Columns come from the first
// record; values are written verbatim.
func RenderTable(records []DisplayRecord) (string, error) {
	if len(records) == 0 {
		return "", nil
	}

	columns := records[0].Columns()
	for i, rec := range records[1:] {
		if !sameColumns(columns, rec) {
			return "", fmt.Errorf("record %d: %w", i+1, ErrShapeMismatch)
		}
	}

	var b strings.Builder
	b.WriteString(`<table class="` + tableClass + `">`)
	writeHead(&b, columns)
	writeBody(&b, records)
	b.WriteString("</table>")
	return b.String(), nil
}

func sameColumns(columns []string, rec DisplayRecord) bool {
	if len(columns) != len(rec) {
		return false
	}
	for i, f := range rec {
		if f.Name != columns[i] {
			return false
		}
	}
	return true
}

func writeHead(b *strings.Builder, columns []string) {
	b.WriteString("<thead><tr>")
	for _, c := range columns {
		b.WriteString("<th>")
		b.WriteString(c)
		b.WriteString("</th>")
	}
	b.WriteString("</tr></thead>")
}

func writeBody(b *strings.Builder, records []DisplayRecord) {
	b.WriteString("<tbody>")
	for _, rec := range records {
		b.WriteString("<tr>")
		for _, f := range rec {
			b.WriteString("<td>")
			b.WriteString(f.Value)
			b.WriteString("</td>")
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody>")
}
