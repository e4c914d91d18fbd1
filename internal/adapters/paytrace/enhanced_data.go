package paytrace

import (
	"encoding/json"

	"github.com/kevin07696/paytrace-gateway/internal/domain/models"
)

func enhancedDataEndpoint(brand models.CardBrand) string {
	if brand == models.BrandMastercard {
		return endpointLevel3Mastercard
	}
	return endpointLevel3Visa
}

// buildEnhancedDataRequest maps Level 3 detail onto the transaction the base call
// produced. sourceFallback supplies the source zip when the options carry none; capture
// passes its own address here.
func buildEnhancedDataRequest(transactionID string, data *models.EnhancedData, sourceFallback *models.Address) map[string]any {
	post := map[string]any{}
	post["transaction_id"] = transactionIDValue(transactionID)

	setIfPresent(post, "invoice_id", data.InvoiceID)
	setIfPresent(post, "customer_reference_id", data.CustomerReferenceID)
	setIfPresent(post, "merchant_tax_id", data.MerchantTaxID)
	setIfPresent(post, "customer_tax_id", data.CustomerTaxID)
	setIfPresent(post, "commodity_code", data.CommodityCode)

	setAmountIfPresent(post, "tax_amount", data.TaxAmount)
	setAmountIfPresent(post, "national_tax_amount", data.NationalTaxAmount)
	setAmountIfPresent(post, "discount_amount", data.DiscountAmount)
	setAmountIfPresent(post, "freight_amount", data.FreightAmount)
	setAmountIfPresent(post, "duty_amount", data.DutyAmount)
	setAmountIfPresent(post, "additional_tax_amount", data.AdditionalTaxAmount)
	setAmountIfPresent(post, "additional_tax_rate", data.AdditionalTaxRate)

	if zip := sourceZip(data.SourceAddress, sourceFallback); zip != "" {
		post["source_address"] = map[string]any{"zip": zip}
	}

	if ship := data.ShippingAddress; !ship.IsEmpty() {
		fields := map[string]any{}
		setIfPresent(fields, "zip", ship.Zip)
		setIfPresent(fields, "country", ship.Country)
		if len(fields) > 0 {
			post["shipping_address"] = fields
		}
	}

	if len(data.LineItems) > 0 {
		post["line_items"] = lineItemFields(data.LineItems, data.Brand)
	}
	return post
}

func lineItemFields(items []models.LineItem, brand models.CardBrand) []map[string]any {
	lines := make([]map[string]any, 0, len(items))
	for _, item := range items {
		line := map[string]any{}
		setIfPresent(line, "product_id", item.ProductID)
		setIfPresent(line, "commodity_code", item.CommodityCode)
		setIfPresent(line, "description", item.Description)
		setIfPresent(line, "unit_of_measure", item.UnitOfMeasure)
		if item.Quantity != 0 {
			line["quantity"] = item.Quantity
		}
		setAmountIfPresent(line, "unit_cost", item.UnitCost)
		setAmountIfPresent(line, "amount", item.Amount)
		setAmountIfPresent(line, "discount_amount", item.DiscountAmount)
		setAmountIfPresent(line, "discount_rate", item.DiscountRate)
		setAmountIfPresent(line, "additional_tax_amount", item.AdditionalTaxAmount)
		setAmountIfPresent(line, "additional_tax_rate", item.AdditionalTaxRate)

		if brand == models.BrandMastercard {
			setFlagIfPresent(line, "additional_tax_included", item.AdditionalTaxIncluded)
			setFlagIfPresent(line, "discount_included", item.DiscountIncluded)
			setFlagIfPresent(line, "line_item_is_gross", item.LineItemIsGross)
		}
		lines = append(lines, line)
	}
	return lines
}

// setAmountIfPresent writes minor units as a JSON number with two decimals (499 → 4.99)
func setAmountIfPresent(m map[string]any, key string, cents *int64) {
	if cents != nil {
		m[key] = json.Number(models.FormatAmount(*cents))
	}
}

func setFlagIfPresent(m map[string]any, key string, v *bool) {
	if v != nil {
		m[key] = *v
	}
}

// sourceZip prefers the Level 3 source address zip and falls back field by field
func sourceZip(source, fallback *models.Address) string {
	if source != nil && source.Zip != "" {
		return source.Zip
	}
	if fallback != nil {
		return fallback.Zip
	}
	return ""
}
