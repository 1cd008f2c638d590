// =============================================================================
// Quote Analyzer - HTML Preview
// =============================================================================
//
// Renders the comparison groups as a self-contained HTML fragment: one
// table per product group, mirroring the spreadsheet layout (item rows,
// tax row, total row) with static computed values instead of formulas.
//
// =============================================================================

package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/quotedesk/quote-analyzer/internal/compare"
)

// previewTemplate renders one page of comparison tables. The style block
// mirrors the spreadsheet's look: bordered cells, blue-gray header,
// highlighted total row.
const previewTemplate = `<div style="overflow-x:auto;">
<style>
    table {
        border-collapse: collapse !important;
        width: 100%;
        margin-bottom: 40px;
        font-family: Arial, sans-serif;
        background-color: #ffffff;
        color: #000000;
        border: 1px solid #bfbfbf;
    }

    th, td {
        border: 1px solid #bfbfbf !important;
        padding: 6px 8px;
        vertical-align: middle;
        text-align: left;
        background-clip: padding-box;
    }

    th {
        background-color: #dae9f8;
        font-weight: 600;
    }

    .total-row td {
        background-color: #fce4d6;
        font-weight: bold;
    }
</style>
{{range .Groups}}{{$g := .}}<table>
<tr>
<th>Details</th><th></th><th>QTY</th><th>Items</th>
{{- range $g.Suppliers}}
<th>{{.}}</th>
{{- end}}
</tr>
{{- range $i, $row := $g.Rows}}
<tr>
{{- if eq $i 0}}
<td rowspan="{{$g.BodyRows}}"><b>Brand</b><br>{{$g.Brand}}<br><br><b>Code</b><br>{{$g.Code}}<br><br><b>Power Type</b><br>{{$g.PowerType}}</td>
<td rowspan="{{$g.BodyRows}}"></td>
{{- end}}
<td>1</td>
<td>{{$row.Description}}</td>
{{- range $row.Prices}}
<td>{{.}}</td>
{{- end}}
</tr>
{{- end}}
<tr>
<td></td><td><b>Tax</b></td>
{{- range $g.Suppliers}}
<td>{{$g.TaxLabel}}</td>
{{- end}}
</tr>
<tr class="total-row">
<td></td><td>Total</td>
{{- range $g.Totals}}
<td>{{.}}</td>
{{- end}}
</tr>
</table>
{{end}}</div>
`

// groupView is the template model for one comparison table.
type groupView struct {
	Brand     string
	Code      string
	PowerType string
	Suppliers []string
	BodyRows  int
	Rows      []rowView
	TaxLabel  string
	Totals    []string
}

// rowView is one description row with its per-supplier prices.
type rowView struct {
	Description string
	Prices      []string
}

// HTML renders the comparison groups into an HTML fragment.
func HTML(groups []*compare.Group) (string, error) {
	tmpl, err := template.New("preview").Parse(previewTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse preview template: %w", err)
	}

	views := make([]groupView, 0, len(groups))
	for _, g := range groups {
		view := groupView{
			Brand:     g.Brand,
			Code:      g.Key.Code,
			PowerType: g.Key.PowerType,
			Suppliers: g.Suppliers,
			// Description rows plus the tax and total rows share the
			// merged details cell.
			BodyRows: len(g.Descriptions) + 2,
			TaxLabel: fmt.Sprintf("%.2f%%", g.TaxPercent),
		}

		for _, desc := range g.Descriptions {
			row := rowView{Description: desc}
			for _, sup := range g.Suppliers {
				row.Prices = append(row.Prices, Money(g.Price(desc, sup)))
			}
			view.Rows = append(view.Rows, row)
		}

		for _, sup := range g.Suppliers {
			view.Totals = append(view.Totals, Money(g.Totals[sup]))
		}

		views = append(views, view)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, struct{ Groups []groupView }{views}); err != nil {
		return "", fmt.Errorf("failed to render preview: %w", err)
	}
	return sb.String(), nil
}

// Money formats a value as a dollar amount with thousands separators,
// e.g. 12345.5 -> "$12,345.50".
func Money(v float64) string {
	negative := v < 0
	if negative {
		v = -v
	}

	s := fmt.Sprintf("%.2f", v)
	intPart := s[:len(s)-3]
	fracPart := s[len(s)-3:]

	var sb strings.Builder
	for i, digit := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(digit)
	}

	if negative {
		return "-$" + sb.String() + fracPart
	}
	return "$" + sb.String() + fracPart
}
