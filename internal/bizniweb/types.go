package bizniweb

import "github.com/shopspring/decimal"

// Raw wire shapes for the getOrderList response. Decimal fields decode
// through shopspring so price values never pass through a float.

type rawCurrency struct {
	Symbol string `json:"symbol"`
	Code   string `json:"code"`
}

type rawPrice struct {
	Value      decimal.Decimal `json:"value"`
	Formatted  string          `json:"formatted"`
	IsNetPrice bool            `json:"is_net_price"`
	Currency   *rawCurrency    `json:"currency"`
}

type rawWeight struct {
	Value decimal.Decimal `json:"value"`
	Unit  string          `json:"unit"`
}

type rawStatus struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

type rawCustomer struct {
	CompanyName string `json:"company_name"`
	CompanyID   string `json:"company_id"`
	VatID       string `json:"vat_id"`
	VatID2      string `json:"vat_id2"`
	Name        string `json:"name"`
	Surname     string `json:"surname"`
	Phone       string `json:"phone"`
	Email       string `json:"email"`
}

type rawAddress struct {
	Street            string `json:"street"`
	DescriptiveNumber string `json:"descriptive_number"`
	OrientationNumber string `json:"orientation_number"`
	City              string `json:"city"`
	Zip               string `json:"zip"`
	Country           string `json:"country"`
}

type rawInvoice struct {
	ID         string `json:"id"`
	InvoiceNum string `json:"invoice_num"`
}

type rawItem struct {
	ItemLabel       string          `json:"item_label"`
	EAN             string          `json:"ean"`
	ImportCode      string          `json:"import_code"`
	WarehouseNumber string          `json:"warehouse_number"`
	Quantity        decimal.Decimal `json:"quantity"`
	TaxRate         decimal.Decimal `json:"tax_rate"`
	Weight          *rawWeight      `json:"weight"`
	RecycleFee      *rawPrice       `json:"recycle_fee"`
	Price           *rawPrice       `json:"price"`
}

type rawPriceElement struct {
	ID      string          `json:"id"`
	Title   string          `json:"title"`
	Type    string          `json:"type"`
	TaxRate decimal.Decimal `json:"tax_rate"`
	Value   decimal.Decimal `json:"value"`
	Price   *rawPrice       `json:"price"`
}

type rawOrder struct {
	ID              string            `json:"id"`
	OrderNum        string            `json:"order_num"`
	ExternalRef     string            `json:"external_ref"`
	PurDate         string            `json:"pur_date"`
	VarSymb         string            `json:"var_symb"`
	LastChange      string            `json:"last_change"`
	OSS             bool              `json:"oss"`
	OSSCountry      string            `json:"oss_country"`
	Status          *rawStatus        `json:"status"`
	Customer        *rawCustomer      `json:"customer"`
	InvoiceAddress  *rawAddress       `json:"invoice_address"`
	DeliveryAddress *rawAddress       `json:"delivery_address"`
	Invoices        []rawInvoice      `json:"invoices"`
	Items           []rawItem         `json:"items"`
	PriceElements   []rawPriceElement `json:"price_elements"`
	Sum             *rawPrice         `json:"sum"`
}

type rawPageInfo struct {
	HasNextPage     bool   `json:"hasNextPage"`
	HasPreviousPage bool   `json:"hasPreviousPage"`
	NextCursor      string `json:"nextCursor"`
	PreviousCursor  string `json:"previousCursor"`
	PageIndex       int    `json:"pageIndex"`
	TotalPages      int    `json:"totalPages"`
}

type orderListResponse struct {
	GetOrderList struct {
		Data     []rawOrder  `json:"data"`
		PageInfo rawPageInfo `json:"pageInfo"`
	} `json:"getOrderList"`
}
