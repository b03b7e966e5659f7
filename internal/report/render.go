package report

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/shopspring/decimal"
)

const summaryHTMLTemplate = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <title>Order Report {{.From}} – {{.To}}</title>
  <style>
    :root {
      --font: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, Helvetica, Arial, sans-serif;
    }
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 40px;
      font-family: var(--font);
      color: #1a1f36;
      background: #f7f9fc;
      -webkit-font-smoothing: antialiased;
    }
    .report-card {
      background: #ffffff;
      max-width: 1080px;
      margin: 0 auto;
      padding: 48px;
      box-shadow: 0 2px 5px rgba(0,0,0,0.04);
      border-radius: 4px;
    }
    h1 { margin: 0 0 8px; font-size: 24px; }
    .period { color: #8792a2; margin-bottom: 32px; }
    .cards { display: flex; gap: 16px; margin-bottom: 40px; }
    .card {
      flex: 1;
      border: 1px solid #e3e8ee;
      border-radius: 4px;
      padding: 16px;
    }
    .card-title { color: #8792a2; font-size: 12px; text-transform: uppercase; }
    .card-value { font-size: 22px; font-weight: 700; margin-top: 4px; }
    table { width: 100%; border-collapse: collapse; font-size: 14px; }
    th, td { padding: 8px 10px; border-bottom: 1px solid #e3e8ee; text-align: left; }
    th.number, td.number { text-align: right; }
    tfoot td { font-weight: 700; }
    .undefined { color: #8792a2; }
  </style>
</head>
<body>
  <div class="report-card">
    <h1>Order &amp; Ad Spend Report</h1>
    <div class="period">{{.From}} – {{.To}} · run {{.RunID}}</div>

    <div class="cards">
      <div class="card">
        <div class="card-title">Revenue (ex. tax)</div>
        <div class="card-value">{{money .Total.Revenue}}</div>
      </div>
      <div class="card">
        <div class="card-title">Orders</div>
        <div class="card-value">{{.Total.OrderCount}}</div>
      </div>
      <div class="card">
        <div class="card-title">Ad Spend</div>
        <div class="card-value">{{money .Total.TotalSpend}}</div>
      </div>
      <div class="card">
        <div class="card-title">ROI</div>
        <div class="card-value">{{roi .Total}}</div>
      </div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Date</th>
          <th class="number">Orders</th>
          <th class="number">Items</th>
          <th class="number">Revenue</th>
          <th class="number">Google Ads</th>
          <th class="number">Facebook</th>
          <th class="number">Spend</th>
          <th class="number">ROI %</th>
        </tr>
      </thead>
      <tbody>
        {{range .Days}}
        <tr>
          <td>{{.Date.Format "2006-01-02"}}</td>
          <td class="number">{{.OrderCount}}</td>
          <td class="number">{{.Quantity}}</td>
          <td class="number">{{money .Revenue}}</td>
          <td class="number">{{money .GoogleSpend}}</td>
          <td class="number">{{money .FacebookSpend}}</td>
          <td class="number">{{money .TotalSpend}}</td>
          {{if .ROIValid}}<td class="number">{{.ROIPercent.StringFixed 1}}</td>{{else}}<td class="number undefined">—</td>{{end}}
        </tr>
        {{end}}
      </tbody>
      <tfoot>
        <tr>
          <td>Total</td>
          <td class="number">{{.Total.OrderCount}}</td>
          <td class="number">{{.Total.Quantity}}</td>
          <td class="number">{{money .Total.Revenue}}</td>
          <td class="number">{{money .Total.GoogleSpend}}</td>
          <td class="number">{{money .Total.FacebookSpend}}</td>
          <td class="number">{{money .Total.TotalSpend}}</td>
          <td class="number">{{roi .Total}}</td>
        </tr>
      </tfoot>
    </table>
  </div>
</body>
</html>
`

var summaryTemplate = template.Must(
	template.New("summary").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string {
			return "€" + d.StringFixed(2)
		},
		"roi": func(row DailySummary) string {
			if !row.ROIValid {
				return "—"
			}
			return row.ROIPercent.StringFixed(1) + "%"
		},
	}).Parse(summaryHTMLTemplate),
)

type summaryView struct {
	From  string
	To    string
	RunID string
	Days  []DailySummary
	Total DailySummary
}

// RenderHTML renders the merged daily series as a standalone HTML report.
func RenderHTML(days []DailySummary, from, to time.Time, runID string) ([]byte, error) {
	view := summaryView{
		From:  from.Format("2006-01-02"),
		To:    to.Format("2006-01-02"),
		RunID: runID,
		Days:  days,
		Total: Totals(days),
	}
	var buf bytes.Buffer
	if err := summaryTemplate.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("render summary: %w", err)
	}
	return buf.Bytes(), nil
}
