package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/vevoretail/orderpulse/internal/aggregate"
	"github.com/vevoretail/orderpulse/internal/flatten"
	"github.com/vevoretail/orderpulse/internal/invoicefeed"
	"github.com/vevoretail/orderpulse/internal/order"
	"github.com/vevoretail/orderpulse/internal/report"
	"github.com/vevoretail/orderpulse/pkg/csvutil"
)

// Writers produces the CSV and HTML artifacts for one run. Every filename
// carries the same date-range suffix so artifacts of a run sort together.
type Writers struct {
	outputDir string
	log       *zap.Logger
}

func NewWriters(outputDir string, log *zap.Logger) *Writers {
	return &Writers{outputDir: outputDir, log: log.Named("writers")}
}

func (w *Writers) suffix(from, to time.Time) string {
	return fmt.Sprintf("%s-%s", from.Format("20060102"), to.Format("20060102"))
}

func (w *Writers) path(name string, from, to time.Time, ext string) string {
	return filepath.Join(w.outputDir, fmt.Sprintf("%s_%s.%s", name, w.suffix(from, to), ext))
}

var itemExportHeader = []string{
	"order_num", "order_id", "external_ref", "purchase_date", "status_name",
	"total_items_in_order", "item_number",
	"item_label", "item_ean", "item_quantity",
	"item_unit_price", "item_total_without_tax", "item_tax_rate", "item_tax_amount", "item_total_with_tax",
	"customer_name", "customer_email", "customer_company_id", "customer_vat_id",
	"order_total", "order_currency",
	"invoice_street", "invoice_city", "invoice_zip", "invoice_country",
	"delivery_street", "delivery_city", "delivery_zip", "delivery_country",
}

// WriteItemExport writes the row-per-item export. Orders without line items
// still get a single order-only row here so they stay visible to accounting,
// even though they are invisible to the aggregates.
func (w *Writers) WriteItemExport(rows []flatten.Row, zeroItem []order.Order, from, to time.Time) (string, error) {
	records := make([][]string, 0, len(rows)+len(zeroItem))
	for _, row := range rows {
		var delivery order.Address
		if row.DeliveryAddress != nil {
			delivery = *row.DeliveryAddress
		}
		records = append(records, []string{
			row.OrderNumber, row.OrderID, row.ExternalRef,
			row.PurchaseDate.Format("2006-01-02 15:04:05"), row.StatusLabel,
			strconv.Itoa(row.ItemCount), strconv.Itoa(row.ItemPosition),
			row.ItemLabel, row.ItemEAN, strconv.FormatInt(row.ItemQuantity, 10),
			row.ItemUnitPrice.StringFixed(2), row.ItemTotalWithoutTax.StringFixed(2),
			row.ItemTaxRate.String(), row.ItemTaxAmount.StringFixed(2), row.ItemTotalWithTax.StringFixed(2),
			row.CustomerName, row.CustomerEmail, row.CustomerCompanyID, row.CustomerVATID,
			row.OrderTotal.StringFixed(2), row.OrderCurrency,
			row.InvoiceAddress.Street, row.InvoiceAddress.City, row.InvoiceAddress.Zip, row.InvoiceAddress.Country,
			delivery.Street, delivery.City, delivery.Zip, delivery.Country,
		})
	}
	for _, o := range zeroItem {
		var delivery order.Address
		if o.DeliveryAddress != nil {
			delivery = *o.DeliveryAddress
		}
		records = append(records, []string{
			o.Number, o.ID, o.ExternalRef,
			o.PurchaseDate.Format("2006-01-02 15:04:05"), o.StatusLabel,
			"0", "",
			"", "", "",
			"", "", "", "", "",
			o.Customer.Name, o.Customer.Email, o.Customer.CompanyID, o.Customer.VATID,
			o.TotalWithTax.StringFixed(2), o.Currency,
			o.InvoiceAddress.Street, o.InvoiceAddress.City, o.InvoiceAddress.Zip, o.InvoiceAddress.Country,
			delivery.Street, delivery.City, delivery.Zip, delivery.Country,
		})
	}

	path := w.path("export", from, to, "csv")
	if err := csvutil.WriteFile(path, itemExportHeader, records); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDateProductAggregate writes the (date, product) grouping.
func (w *Writers) WriteDateProductAggregate(records []aggregate.Record, from, to time.Time) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Date.Format("2006-01-02"),
			rec.Product,
			strconv.FormatInt(rec.Quantity, 10),
			rec.Revenue.StringFixed(2),
			strconv.Itoa(rec.OrderCount),
		})
	}
	path := w.path("aggregate_by_date_product", from, to, "csv")
	header := []string{"date", "product_name", "total_quantity", "total_price_without_tax", "order_count"}
	if err := csvutil.WriteFile(path, header, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDateAggregate writes the date-only grouping.
func (w *Writers) WriteDateAggregate(records []aggregate.Record, from, to time.Time) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Date.Format("2006-01-02"),
			strconv.FormatInt(rec.Quantity, 10),
			rec.Revenue.StringFixed(2),
			strconv.Itoa(rec.OrderCount),
			strconv.Itoa(rec.RowCount),
		})
	}
	path := w.path("aggregate_by_date", from, to, "csv")
	header := []string{"date", "total_quantity", "total_revenue_without_tax", "unique_orders", "total_items"}
	if err := csvutil.WriteFile(path, header, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteProductAggregate writes the product-only grouping, sorted by revenue.
func (w *Writers) WriteProductAggregate(records []aggregate.Record, from, to time.Time) (string, error) {
	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		rows = append(rows, []string{
			rec.Product,
			strconv.FormatInt(rec.Quantity, 10),
			rec.Revenue.StringFixed(2),
			strconv.Itoa(rec.OrderCount),
		})
	}
	path := w.path("aggregate_by_product", from, to, "csv")
	header := []string{"product_name", "total_quantity", "total_revenue_without_tax", "unique_orders"}
	if err := csvutil.WriteFile(path, header, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteDailySummary writes the merged order/spend series. The ROI column is
// empty, not zero, on days without spend.
func (w *Writers) WriteDailySummary(days []report.DailySummary, from, to time.Time) (string, error) {
	rows := make([][]string, 0, len(days))
	for _, day := range days {
		roi := ""
		if day.ROIValid {
			roi = day.ROIPercent.StringFixed(1)
		}
		rows = append(rows, []string{
			day.Date.Format("2006-01-02"),
			strconv.FormatInt(day.Quantity, 10),
			day.Revenue.StringFixed(2),
			strconv.Itoa(day.OrderCount),
			day.GoogleSpend.StringFixed(2),
			day.FacebookSpend.StringFixed(2),
			day.TotalSpend.StringFixed(2),
			roi,
		})
	}
	path := w.path("daily_summary", from, to, "csv")
	header := []string{"date", "total_quantity", "total_revenue_without_tax", "unique_orders", "google_ads_spend", "fb_ads_spend", "total_spend", "roi_percent"}
	if err := csvutil.WriteFile(path, header, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteInvoiceCandidates writes the invoice-eligibility feed.
func (w *Writers) WriteInvoiceCandidates(candidates []invoicefeed.Candidate, from, to time.Time) (string, error) {
	rows := make([][]string, 0, len(candidates))
	for _, c := range candidates {
		rows = append(rows, []string{
			c.OrderNumber, c.OrderID,
			c.PurchaseDate.Format("2006-01-02"),
			c.StatusLabel, string(c.Payment),
			c.CustomerName, c.CustomerEmail,
			c.Total.StringFixed(2), c.Currency,
			strconv.Itoa(c.Items),
		})
	}
	path := w.path("invoice_candidates", from, to, "csv")
	header := []string{"order_num", "order_id", "purchase_date", "status", "payment_method", "customer_name", "customer_email", "order_total", "currency", "items"}
	if err := csvutil.WriteFile(path, header, rows); err != nil {
		return "", err
	}
	return path, nil
}

// WriteHTMLReport writes the rendered summary report next to the CSVs.
func (w *Writers) WriteHTMLReport(html []byte, from, to time.Time) (string, error) {
	path := w.path("report", from, to, "html")
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(path, html, 0o644); err != nil {
		return "", err
	}
	return path, nil
}
