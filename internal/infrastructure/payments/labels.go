package payments

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var brandNames = map[string]string{
	"amex":       "American Express",
	"diners":     "Diners Club",
	"mastercard": "Mastercard",
	"unionpay":   "UnionPay",
	"visa":       "Visa",
	"master":     "Mastercard",
	"elo":        "Elo",
	"hipercard":  "Hipercard",
}

// cardLabel builds the human readable method shown on receipts.
func cardLabel(brand, last4 string) string {
	name := brandName(brand)
	if last4 == "" {
		return name
	}
	return name + " ending in " + last4
}

func brandName(brand string) string {
	brand = strings.ToLower(strings.TrimSpace(brand))
	if name, ok := brandNames[brand]; ok {
		return name
	}
	if brand == "" {
		return "Card"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(brand, "_", " "))
}
