package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/frc1418/go-tba/record"
)

// Output formats accepted by --output.
const (
	formatJSON  = "json"
	formatTable = "table"
)

// printer writes command results as indented JSON or as a table limited to
// the requested columns.
type printer struct {
	w       io.Writer
	format  string
	columns []string
}

func newPrinter(w io.Writer, format string, columns []string) (*printer, error) {
	switch format {
	case formatJSON, formatTable:
	default:
		return nil, errors.Newf("unknown output format %q (want json or table)", format)
	}
	return &printer{w: w, format: format, columns: columns}, nil
}

func (p *printer) print(v any) error {
	if p.format == formatJSON {
		return p.printJSON(v)
	}

	switch value := v.(type) {
	case record.Record:
		p.renderFields(value)
	case []record.Record:
		p.renderRows(value, nil, "")
	case map[string]record.Record:
		p.renderRecordMap(value)
	case []string:
		p.renderList("key", value)
	case []int:
		items := make([]string, len(value))
		for i, n := range value {
			items[i] = strconv.Itoa(n)
		}
		p.renderList("value", items)
	default:
		// Nothing tabular; fall back to JSON.
		return p.printJSON(v)
	}
	return nil
}

func (p *printer) printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return errors.Wrap(err, "encode output")
	}
	_, err = fmt.Fprintln(p.w, string(out))
	return errors.Wrap(err, "write output")
}

func (p *printer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(p.w)
	t.SetStyle(table.StyleRounded)
	return t
}

// renderFields prints one record as field/value rows.
func (p *printer) renderFields(r record.Record) {
	t := p.newTable()
	t.AppendHeader(table.Row{"Field", "Value"})

	keys := p.columns
	if len(keys) == 0 {
		keys = r.Keys()
	}
	for _, key := range keys {
		t.AppendRow(table.Row{key, cell(r, key)})
	}

	t.Render()
}

func (p *printer) renderRecordMap(m map[string]record.Record) {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	records := make([]record.Record, len(ids))
	for i, id := range ids {
		records[i] = m[id]
	}
	p.renderRows(records, ids, "key")
}

// renderRows prints one row per record, led by ids when given. Without
// explicit columns the sorted union of all keys is used.
func (p *printer) renderRows(records []record.Record, ids []string, keyHeader string) {
	columns := p.columns
	if len(columns) == 0 {
		columns = unionKeys(records)
	}

	t := p.newTable()

	header := table.Row{}
	if ids != nil {
		header = append(header, keyHeader)
	}
	for _, c := range columns {
		header = append(header, c)
	}
	t.AppendHeader(header)

	for i, r := range records {
		row := table.Row{}
		if ids != nil {
			row = append(row, ids[i])
		}
		for _, c := range columns {
			row = append(row, cell(r, c))
		}
		t.AppendRow(row)
	}

	t.AppendFooter(table.Row{fmt.Sprintf("%d rows", len(records))})
	t.Render()
}

func (p *printer) renderList(header string, items []string) {
	t := p.newTable()
	t.AppendHeader(table.Row{header})
	for _, item := range items {
		t.AppendRow(table.Row{item})
	}
	t.Render()
}

func unionKeys(records []record.Record) []string {
	seen := map[string]bool{}
	var keys []string
	for _, r := range records {
		for _, k := range r.Keys() {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	slices.Sort(keys)
	return keys
}

// cell formats one field. Absent fields print empty, nested values as compact JSON.
func cell(r record.Record, key string) string {
	v, err := r.Get(key)
	if err != nil || v == nil {
		return ""
	}

	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(value)
	default:
		out, err := json.Marshal(value)
		if err != nil {
			return fmt.Sprint(value)
		}
		return string(out)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
