// Package tabular maps record collections to and from a multi-sheet workbook.
// The workbook here is an in-memory value; encoding it to an actual file
// format is the codec's job. Export emits a fixed five-sheet layout; import
// tolerates legacy column headers through ordered alias lists and falls back
// to sheet position when a sheet name is missing.
package tabular

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/lockbox/internal/records"
)

const timeLayout = "2006-01-02 15:04:05"

// Sheet is a named grid of rows keyed by column header.
type Sheet struct {
	Name    string
	Columns []string
	Rows    []map[string]string
}

// Workbook is an ordered list of sheets.
type Workbook struct {
	Sheets []Sheet
}

// SheetNamed returns the sheet with the exact name, or nil.
func (w *Workbook) SheetNamed(name string) *Sheet {
	for i := range w.Sheets {
		if w.Sheets[i].Name == name {
			return &w.Sheets[i]
		}
	}
	return nil
}

// Rejection describes one import row that failed validation.
type Rejection struct {
	Sheet  string
	Row    int // 1-based spreadsheet row, header is row 1
	Reason string
}

func (r Rejection) String() string {
	return fmt.Sprintf("%s row %d: %s", r.Sheet, r.Row, r.Reason)
}

// ImportResult is the aggregate outcome of an import. Rows are independent,
// so partial success is the normal case.
type ImportResult struct {
	Added    []records.Record
	Rejected []Rejection
}

// Reasons renders rejection messages for display, at most max of them, with
// a trailing count when more were suppressed.
func (r *ImportResult) Reasons(max int) []string {
	out := make([]string, 0, len(r.Rejected))
	for i, rej := range r.Rejected {
		if i == max {
			out = append(out, fmt.Sprintf("... and %d more", len(r.Rejected)-max))
			break
		}
		out = append(out, rej.String())
	}
	return out
}

// sheetSpec binds a record kind to its sheet layout. The order of specs is
// the sheet order of every export and the positional fallback order of
// imports.
type sheetSpec struct {
	kind    records.Kind
	name    string
	columns []string
	export  func(records.Record) map[string]string
	input   func(row map[string]string) records.Input
}

// cell resolves a logical field through its header aliases, first non-empty
// value wins. Older exports used different header strings for the same field.
func cell(row map[string]string, aliases ...string) string {
	for _, a := range aliases {
		if v := strings.TrimSpace(row[a]); v != "" {
			return v
		}
	}
	return ""
}

func formatTime(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).Format(timeLayout)
}

var sheetSpecs = []sheetSpec{
	{
		kind:    records.KindAccount,
		name:    "Accounts",
		columns: []string{"Site URL", "Service Name", "Username (Email)", "Password", "Notes", "Created", "Updated"},
		export: func(r records.Record) map[string]string {
			return map[string]string{
				"Site URL":         r.SiteURL,
				"Service Name":     r.ServiceName,
				"Username (Email)": r.Username,
				"Password":         r.Password,
				"Notes":            r.Notes,
				"Created":          formatTime(r.CreatedAt),
				"Updated":          formatTime(r.UpdatedAt),
			}
		},
		input: func(row map[string]string) records.Input {
			return records.Input{
				ServiceName: cell(row, "Service Name", "Site Name", "Service/Site Name", "Service"),
				Username:    cell(row, "Username (Email)", "Username/Email", "Username", "Email"),
				Password:    cell(row, "Password"),
				Notes:       cell(row, "Notes", "Remarks"),
				SiteURL:     cell(row, "Site URL"),
			}
		},
	},
	{
		kind:    records.KindBank,
		name:    "Banks",
		columns: []string{"Bank Name", "Account Number", "Password", "Notes", "Created", "Updated"},
		export: func(r records.Record) map[string]string {
			return map[string]string{
				"Bank Name":      r.ServiceName,
				"Account Number": r.Username,
				"Password":       r.Password,
				"Notes":          r.Notes,
				"Created":        formatTime(r.CreatedAt),
				"Updated":        formatTime(r.UpdatedAt),
			}
		},
		input: func(row map[string]string) records.Input {
			return records.Input{
				ServiceName: cell(row, "Bank Name", "Name"),
				Username:    cell(row, "Account Number", "Account"),
				Password:    cell(row, "Password"),
				Notes:       cell(row, "Notes"),
			}
		},
	},
	{
		kind:    records.KindInsurance,
		name:    "Insurance",
		columns: []string{"Insurance Company", "Service Name", "Insurance Number", "Username (Email)", "Password", "Notes", "Created", "Updated"},
		export: func(r records.Record) map[string]string {
			return map[string]string{
				"Insurance Company": r.InsuranceCompany,
				"Service Name":      r.ServiceName,
				"Insurance Number":  r.InsuranceNumber,
				"Username (Email)":  r.Username,
				"Password":          r.Password,
				"Notes":             r.Notes,
				"Created":           formatTime(r.CreatedAt),
				"Updated":           formatTime(r.UpdatedAt),
			}
		},
		input: func(row map[string]string) records.Input {
			return records.Input{
				ServiceName:      cell(row, "Service Name", "Service/Site Name", "Service"),
				InsuranceCompany: cell(row, "Insurance Company"),
				InsuranceNumber:  cell(row, "Insurance Number"),
				Username:         cell(row, "Username (Email)", "Username/Email", "Username", "Email"),
				Password:         cell(row, "Password"),
				Notes:            cell(row, "Notes"),
			}
		},
	},
	{
		kind:    records.KindExtra,
		name:    "Extras",
		columns: []string{"Item Name", "Content", "Created", "Updated"},
		export: func(r records.Record) map[string]string {
			return map[string]string{
				"Item Name": r.ServiceName,
				"Content":   r.Notes,
				"Created":   formatTime(r.CreatedAt),
				"Updated":   formatTime(r.UpdatedAt),
			}
		},
		input: func(row map[string]string) records.Input {
			return records.Input{
				ServiceName: cell(row, "Item Name", "Name", "Category"),
				Notes:       cell(row, "Content", "Value", "Notes"),
			}
		},
	},
	{
		kind:    records.KindWifi,
		name:    "WiFi",
		columns: []string{"WiFi Name (SSID)", "Password", "Notes", "Created", "Updated"},
		export: func(r records.Record) map[string]string {
			return map[string]string{
				"WiFi Name (SSID)": r.ServiceName,
				"Password":         r.Password,
				"Notes":            r.Notes,
				"Created":          formatTime(r.CreatedAt),
				"Updated":          formatTime(r.UpdatedAt),
			}
		},
		input: func(row map[string]string) records.Input {
			return records.Input{
				ServiceName: cell(row, "WiFi Name (SSID)", "WiFi Name", "SSID", "Name"),
				Password:    cell(row, "Password"),
				Notes:       cell(row, "Notes"),
			}
		},
	},
}

// SheetNames returns the canonical sheet names in export order.
func SheetNames() []string {
	out := make([]string, len(sheetSpecs))
	for i, s := range sheetSpecs {
		out[i] = s.name
	}
	return out
}

func blankRow(columns []string) map[string]string {
	row := make(map[string]string, len(columns))
	for _, c := range columns {
		row[c] = ""
	}
	return row
}

// Export builds the five-sheet workbook for the collection. Every sheet is
// always present with its full column set; a kind with no records gets one
// blank row so the headers survive the trip through the file format.
func Export(c records.Collection) *Workbook {
	wb := &Workbook{}
	for _, spec := range sheetSpecs {
		sheet := Sheet{Name: spec.name, Columns: spec.columns}
		for _, r := range c.ByKind(spec.kind) {
			sheet.Rows = append(sheet.Rows, spec.export(r))
		}
		if len(sheet.Rows) == 0 {
			sheet.Rows = append(sheet.Rows, blankRow(spec.columns))
		}
		wb.Sheets = append(wb.Sheets, sheet)
	}
	return wb
}

// sheetFor picks the sheet for position i: exact name match first, then the
// i-th sheet. The positional fallback keeps exports from before the sheets
// were named importable.
func sheetFor(wb *Workbook, spec sheetSpec, i int) *Sheet {
	if s := wb.SheetNamed(spec.name); s != nil {
		return s
	}
	if i < len(wb.Sheets) {
		return &wb.Sheets[i]
	}
	return nil
}

func rowEmpty(row map[string]string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// Import turns a workbook back into records owned by ownerID. Every accepted
// row becomes a new record with fresh timestamps; rows failing a kind's
// required-field rule are rejected individually and do not stop the rest.
// Fully blank rows, such as the placeholder row in an empty export, are
// skipped silently. Import performs no I/O; persisting Added is the caller's
// job.
func Import(wb *Workbook, ownerID string) *ImportResult {
	res := &ImportResult{}

	for i, spec := range sheetSpecs {
		sheet := sheetFor(wb, spec, i)
		if sheet == nil {
			continue
		}

		for j, row := range sheet.Rows {
			if rowEmpty(row) {
				continue
			}

			rec, err := records.Build(spec.kind, spec.input(row), nil)
			if err != nil {
				res.Rejected = append(res.Rejected, Rejection{
					Sheet:  sheet.Name,
					Row:    j + 2,
					Reason: err.Error(),
				})
				continue
			}

			rec.OwnerID = ownerID
			res.Added = append(res.Added, *rec)
		}
	}

	return res
}
