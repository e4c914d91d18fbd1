package models

// CardBrand selects the Level 3 endpoint
type CardBrand string

const (
	BrandVisa       CardBrand = "visa"
	BrandMastercard CardBrand = "mastercard"
)

// Valid reports whether the brand has an enhanced-data endpoint
func (b CardBrand) Valid() bool {
	return b == BrandVisa || b == BrandMastercard
}

// EnhancedData carries Level 3 commercial card detail. It is only submitted when Brand
// is a valid CardBrand and the base transaction succeeded.
//
// Monetary fields are minor units; nil means "not provided". Rates are hundredths of a
// percent point, so 825 is 8.25.
type EnhancedData struct {
	Brand CardBrand

	InvoiceID           string
	CustomerReferenceID string
	MerchantTaxID       string
	CustomerTaxID       string
	CommodityCode       string

	TaxAmount           *int64
	NationalTaxAmount   *int64
	DiscountAmount      *int64
	FreightAmount       *int64
	DutyAmount          *int64
	AdditionalTaxAmount *int64
	AdditionalTaxRate   *int64

	SourceAddress   *Address
	ShippingAddress *Address

	LineItems []LineItem
}

// Enabled reports whether an enhanced-data call should follow the base transaction
func (e *EnhancedData) Enabled() bool {
	return e != nil && e.Brand.Valid()
}

// LineItem is one Level 3 line. Amounts are minor units; rates are hundredths.
type LineItem struct {
	ProductID     string
	CommodityCode string
	Description   string
	Quantity      int
	UnitOfMeasure string
	UnitCost      *int64
	Amount        *int64

	DiscountAmount      *int64
	DiscountRate        *int64
	AdditionalTaxAmount *int64
	AdditionalTaxRate   *int64

	// MasterCard only
	AdditionalTaxIncluded *bool
	DiscountIncluded      *bool
	LineItemIsGross       *bool
}

// Cents is a helper for building optional minor-unit fields
func Cents(v int64) *int64 {
	return &v
}

// Flag is a helper for building optional boolean fields
func Flag(v bool) *bool {
	return &v
}
