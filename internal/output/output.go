// Package output renders students for the one-shot commands.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/aanand-mishra/students-client/internal/types"
)

// Format is an output format name.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat checks s against the known formats.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatTable, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Formatter writes data to w.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter returns the formatter for format. Unknown formats get a
// table.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{}
	}
}

// JSONFormatter writes indented JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) Format(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// YAMLFormatter writes YAML using the yaml struct tags.
type YAMLFormatter struct{}

func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return err
	}
	return enc.Close()
}

// TableFormatter writes a student list as columns and a single student
// as a field/value listing. Anything else falls back to JSON.
type TableFormatter struct {
	NoHeaders bool
}

func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case nil:
		return nil
	case []types.Student:
		return f.list(w, v)
	case types.Student:
		return f.record(w, v)
	case *types.Student:
		if v == nil {
			return nil
		}
		return f.record(w, *v)
	default:
		return (&JSONFormatter{}).Format(w, data)
	}
}

func (f *TableFormatter) list(w io.Writer, students []types.Student) error {
	t := &Table{}
	if !f.NoHeaders {
		t.SetHeaders("ID", "NAME", "MOBILE", "EMAIL", "CITY", "STATE", "PINCODE")
	}
	for _, s := range students {
		t.AddRow(strconv.FormatInt(s.ID, 10), cell(s.Name), cell(s.Mobile),
			cell(s.Email), cell(s.City), cell(s.State), cell(s.Pincode))
	}
	return t.Render(w)
}

func (f *TableFormatter) record(w io.Writer, s types.Student) error {
	t := &Table{}
	if !f.NoHeaders {
		t.SetHeaders("FIELD", "VALUE")
	}
	t.AddRow("stdid", strconv.FormatInt(s.ID, 10))
	t.AddRow("stdname", cell(s.Name))
	t.AddRow("mobileno", cell(s.Mobile))
	t.AddRow("email", cell(s.Email))
	t.AddRow("city", cell(s.City))
	t.AddRow("state", cell(s.State))
	t.AddRow("pincode", cell(s.Pincode))
	t.AddRow("address1", cell(s.Address1))
	t.AddRow("address2", cell(s.Address2))
	return t.Render(w)
}

func cell(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// Table is tabular text.
type Table struct {
	Headers []string
	Rows    [][]string
}

// SetHeaders sets the header row.
func (t *Table) SetHeaders(headers ...string) { t.Headers = headers }

// AddRow appends a row.
func (t *Table) AddRow(cells ...string) { t.Rows = append(t.Rows, cells) }

// Render writes the table with two-space column gaps.
func (t *Table) Render(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if len(t.Headers) > 0 {
		if err := writeRow(tw, t.Headers); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		if err := writeRow(tw, row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

func writeRow(w io.Writer, cells []string) error {
	for i, c := range cells {
		if i > 0 {
			if _, err := io.WriteString(w, "\t"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, c); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}
