package validator

import (
	"log"

	"subtrack/internal/models"

	"github.com/go-playground/validator/v10"
)

// ExtraCurrencies - коды из списка формы, которые не укладываются в 3 буквы ISO 4217
var ExtraCurrencies = []string{"DASH", "DOGE"}

// Currencies - список валют, который показывает форма
var Currencies = []string{
	"USD", "GBP", "EUR", "AUD", "NZD", "AED", "AFN", "ALL", "AMD", "ANG",
	"AOA", "ARS", "AWG", "AZN", "BAM", "BBD", "BDT", "BGN", "BHD", "BIF",
	"BMD", "BND", "BOB", "BRL", "BSD", "BTC", "BTN", "BTS", "BWP", "BYN",
	"BZD", "CAD", "CDF", "CHF", "CLF", "CLP", "CNH", "CNY", "COP", "CRC",
	"CUC", "CUP", "CVE", "CZK", "DASH", "DJF", "DKK", "DOGE", "DOP", "DZD",
	"EAC", "EGP", "EMC", "ERN", "ETB", "ETH", "FCT", "FJD",
}

func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	mustRegister("currency-code", validateCurrency)
	mustRegister("billing-cycle", validateBillingCycle)
	mustRegister("subscription-type", validateSubscriptionType)
}

// IsCurrencyCode: три заглавные латинские буквы или код из ExtraCurrencies
func IsCurrencyCode(value string) bool {
	for _, c := range ExtraCurrencies {
		if value == c {
			return true
		}
	}
	if len(value) != 3 {
		return false
	}
	for _, r := range value {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

func validateCurrency(fl validator.FieldLevel) bool {
	return IsCurrencyCode(fl.Field().String())
}

func validateBillingCycle(fl validator.FieldLevel) bool {
	value := models.BillingCycle(fl.Field().String())
	for _, c := range models.BillingCycles {
		if value == c {
			return true
		}
	}
	return false
}

func validateSubscriptionType(fl validator.FieldLevel) bool {
	value := models.SubscriptionType(fl.Field().String())
	for _, t := range models.SubscriptionTypes {
		if value == t {
			return true
		}
	}
	return false
}

func billingCycleValues() []string {
	out := make([]string, 0, len(models.BillingCycles))
	for _, c := range models.BillingCycles {
		out = append(out, string(c))
	}
	return out
}

func subscriptionTypeValues() []string {
	out := make([]string, 0, len(models.SubscriptionTypes))
	for _, t := range models.SubscriptionTypes {
		out = append(out, string(t))
	}
	return out
}
